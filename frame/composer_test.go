package frame

import (
	"fmt"
	"regexp"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/charmbracelet/x/ansi"

	"pkt.systems/tabterm/schema"
	"pkt.systems/tabterm/text"
)

var cursorMove = regexp.MustCompile(`\x1b\[\d+;1H`)

var demoTabs = []string{"Dashboard", "Settings", "Data", "Scroll", "About"}

// screenRows splits a frame into plain-text rows: top border, content rows,
// bottom border.
func screenRows(t *testing.T, f Frame) []string {
	t.Helper()
	raw := string(f.Bytes)
	if !strings.HasPrefix(raw, frameStart) || !strings.HasSuffix(raw, frameEnd) {
		t.Fatalf("frame is not wrapped in home/clear sequences: %q", raw)
	}
	parts := cursorMove.Split(raw, -1)
	rows := make([]string, 0, len(parts))
	for _, part := range parts {
		rows = append(rows, ansi.Strip(part))
	}
	return rows
}

func width(s string) int {
	return utf8.RuneCountInString(s)
}

func numberedLines(n int) []text.Line {
	lines := make([]text.Line, 0, n)
	for i := 0; i < n; i++ {
		lines = append(lines, text.Plain(fmt.Sprintf("line %02d", i+1)))
	}
	return lines
}

func TestComposeRowWidths(t *testing.T) {
	lines := []text.Line{
		text.Plain("short"),
		text.Colored("a line that is certainly longer than a narrow terminal can show in one row", text.Green),
		text.Plain("café ünïcödé").AddColored(" → mixed", text.Cyan),
		text.Plain(""),
		text.Plain("[x] option > cursor"),
	}
	for cols := 10; cols <= 90; cols += 7 {
		for rows := 5; rows <= 30; rows += 5 {
			f, ok := Compose(Input{
				Size:   schema.Size{Cols: cols, Rows: rows},
				Tabs:   demoTabs,
				Active: 2,
				Lines:  lines,
				Hint:   HintMultiSelect,
			})
			if !ok {
				t.Fatalf("%dx%d: expected a frame", cols, rows)
			}
			screen := screenRows(t, f)
			if len(screen) != ContentRows(rows)+2 {
				t.Fatalf("%dx%d: expected %d rows, got %d", cols, rows, ContentRows(rows)+2, len(screen))
			}
			for i, row := range screen {
				if width(row) != cols {
					t.Fatalf("%dx%d row %d: width %d, want %d: %q", cols, rows, i, width(row), cols, row)
				}
			}
			for _, row := range screen[1 : len(screen)-1] {
				if !strings.HasPrefix(row, border) || !strings.HasSuffix(row, border) {
					t.Fatalf("%dx%d: content row missing borders: %q", cols, rows, row)
				}
				inner := strings.TrimSuffix(strings.TrimPrefix(row, border), border)
				if width(inner) != cols-2 {
					t.Fatalf("%dx%d: inner width %d, want %d", cols, rows, width(inner), cols-2)
				}
			}
		}
	}
}

func TestComposeBelowFloorIsNoop(t *testing.T) {
	for _, size := range []schema.Size{{Cols: 9, Rows: 24}, {Cols: 80, Rows: 4}, {}} {
		if f, ok := Compose(Input{Size: size, Tabs: demoTabs}); ok || f.Bytes != nil {
			t.Fatalf("expected no frame for %+v", size)
		}
	}
}

func TestComposeTabOverflow(t *testing.T) {
	f, ok := Compose(Input{Size: schema.Size{Cols: 40, Rows: 10}, Tabs: demoTabs, Active: 4})
	if !ok {
		t.Fatalf("expected a frame")
	}
	top := screenRows(t, f)[0]
	if !strings.HasPrefix(top, "┌─< ") {
		t.Fatalf("expected left indicator, got %q", top)
	}
	if strings.Contains(top, "Dashboard") {
		t.Fatalf("expected Dashboard to be hidden, got %q", top)
	}
	if !strings.Contains(top, " About ") {
		t.Fatalf("expected active tab, got %q", top)
	}
	if !strings.Contains(string(f.Bytes), "\x1b[0;1;7m About \x1b[0m") {
		t.Fatalf("expected active tab to be bold and reversed")
	}
	if f.Tabs.First != 1 {
		t.Fatalf("expected next tab offset 1, got %d", f.Tabs.First)
	}
}

func TestComposeScrollIndicator(t *testing.T) {
	f, ok := Compose(Input{
		Size:   schema.Size{Cols: 60, Rows: 13},
		Tabs:   demoTabs,
		Active: 3,
		Lines:  numberedLines(50),
		Offset: 3,
	})
	if !ok {
		t.Fatalf("expected a frame")
	}
	screen := screenRows(t, f)
	bottom := screen[len(screen)-1]
	if !strings.HasSuffix(bottom, " 4-13/50 ┘") {
		t.Fatalf("expected scroll indicator, got %q", bottom)
	}
	if !strings.Contains(bottom, strings.TrimSpace(scrollHint)) {
		t.Fatalf("expected scroll hint, got %q", bottom)
	}
	if !strings.HasPrefix(screen[1], "│ line 04") {
		t.Fatalf("expected first visible line 04, got %q", screen[1])
	}
}

func TestComposeClampsStaleOffset(t *testing.T) {
	f, ok := Compose(Input{
		Size:   schema.Size{Cols: 40, Rows: 13},
		Tabs:   demoTabs,
		Lines:  numberedLines(12),
		Offset: 30,
	})
	if !ok {
		t.Fatalf("expected a frame")
	}
	if f.Offset != 2 {
		t.Fatalf("expected offset clamped to 2, got %d", f.Offset)
	}
}

func TestComposeNoIndicatorWhenContentFits(t *testing.T) {
	f, _ := Compose(Input{Size: schema.Size{Cols: 80, Rows: 24}, Tabs: demoTabs, Lines: numberedLines(5)})
	screen := screenRows(t, f)
	bottom := screen[len(screen)-1]
	if strings.Contains(bottom, "/5") {
		t.Fatalf("did not expect scroll indicator, got %q", bottom)
	}
	inner := strings.TrimSuffix(strings.TrimPrefix(bottom, "└"), "┘")
	left := width(inner) - width(strings.TrimLeft(inner, "─"))
	right := width(inner) - width(strings.TrimRight(inner, "─"))
	if right < left || right-left > 1 {
		t.Fatalf("expected centred hint, got left %d right %d", left, right)
	}
}

func TestComposeUsesRequestedHint(t *testing.T) {
	f, _ := Compose(Input{Size: schema.Size{Cols: 120, Rows: 10}, Tabs: demoTabs, Hint: HintSelect})
	if !strings.Contains(ansi.Strip(string(f.Bytes)), "[Enter] choose") {
		t.Fatalf("expected select hint")
	}
	if HintFor(true, true) != HintMultiSelect || HintFor(true, false) != HintSelect || HintFor(false, true) != HintScroll {
		t.Fatalf("unexpected hint selection")
	}
}

func TestScrollIndicator(t *testing.T) {
	if got := ScrollIndicator(0, 10, 10); got != "" {
		t.Fatalf("expected empty indicator, got %q", got)
	}
	if got := ScrollIndicator(40, 10, 50); got != " 41-50/50 " {
		t.Fatalf("unexpected indicator %q", got)
	}
}
