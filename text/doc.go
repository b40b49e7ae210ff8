// Package text holds the display-width model and styled text values.
//
// Every width and truncation decision in the engine goes through Width and
// Truncate. A display column is one well-formed Unicode code point; there is
// no East-Asian width table, and malformed UTF-8 is skipped rather than
// reported.
package text
