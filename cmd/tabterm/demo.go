package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"pkt.systems/pslog"
	"pkt.systems/tabterm"
	"pkt.systems/tabterm/internal/appconfig"
	"pkt.systems/tabterm/internal/version"
	"pkt.systems/tabterm/terminal"
	"pkt.systems/tabterm/text"
	"pkt.systems/tabterm/widget"
)

const (
	progressLine = 2
	progressStep = 0.02
	statusLine   = 4
)

func newDemoCmd() *cobra.Command {
	var cfgPath string
	var startTab int
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Run the interactive multi-tab demo",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := appconfig.Load(cfgPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("tab") {
				cfg.Demo.StartTab = startTab
			}
			runLog, closeLog, err := openRunLogger(cfg.Logging)
			if err != nil {
				return err
			}
			defer func() { _ = closeLog() }()

			ctx := pslog.ContextWithLogger(cmd.Context(), runLog)
			app := newDemoApp(cfg, nil)
			runLog.Info("demo start", "tab", cfg.Demo.StartTab, "pages", app.PageCount())
			return app.Run(ctx)
		},
	}
	cmd.Flags().StringVarP(&cfgPath, "config", "c", "", "path to config file")
	cmd.Flags().IntVar(&startTab, "tab", 0, "index of the tab selected at start")
	return cmd
}

// openRunLogger returns the logger used while the terminal is in raw mode.
// Without a log file the output is discarded so it cannot corrupt frames.
func openRunLogger(cfg appconfig.LoggingConfig) (pslog.Logger, func() error, error) {
	var w io.Writer = io.Discard
	closeFn := func() error { return nil }
	if path := strings.TrimSpace(cfg.File); path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, nil, err
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		w = f
		closeFn = f.Close
	}
	return pslog.NewWithOptions(w, logOptions(cfg.Level)), closeFn, nil
}

func logOptions(level string) pslog.Options {
	opts := pslog.Options{
		Mode:          pslog.ModeStructured,
		NoColor:       true,
		MinLevel:      pslog.InfoLevel,
		VerboseFields: true,
	}
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		opts.MinLevel = pslog.TraceLevel
	case "debug":
		opts.MinLevel = pslog.DebugLevel
	case "error":
		opts.MinLevel = pslog.ErrorLevel
	}
	return opts
}

// newDemoApp builds the demo pages. platform may be nil to use the console.
func newDemoApp(cfg appconfig.Config, platform terminal.Platform) *tabterm.App {
	app := tabterm.New(tabterm.Options{
		Platform: platform,
		Console: terminal.ConsoleOptions{
			PollInterval: cfg.Input.PollInterval(),
			DrainLimit:   cfg.Input.EscapeDrainLimit,
		},
		Session: terminal.SessionOptions{
			ExitCode: cfg.Input.SignalExitCode,
		},
	})

	dashboard := app.AddPage("Dashboard")
	bar := widget.NewProgressBar()
	dashboard.AddLine(text.Styled("System overview", text.Fg(text.BrightCyan).Bold()))
	dashboard.AddBlank()
	dashboard.AddLine(progressRow(bar))
	dashboard.AddBlank()
	dashboard.AddLine(text.Colored("Status: idle", text.BrightBlack))
	app.SetOnTick(func() {
		next := bar.Value() + progressStep
		if next > 1 {
			next = 0
		}
		bar.SetValue(next)
		dashboard.UpdateLine(progressLine, progressRow(bar))
	})

	settings := app.AddPage("Settings")
	settings.AddLine(text.Styled("Features", text.Style{}.Bold()))
	settings.AddText("Space toggles, Enter applies.")
	settings.AddBlank()
	options := widget.NewList()
	options.SetMultiSelect(true)
	options.SetCursorStyle(text.Fg(text.BrightYellow).Reversed())
	for _, item := range []string{"Line numbers", "Soft wrap", "Auto save", "Telemetry", "Dark theme"} {
		options.AddItem(item, nil)
	}
	options.OnSelect(func(int, string) {
		selected := options.Selected()
		status := "Status: nothing enabled"
		if len(selected) > 0 {
			status = "Status: enabled " + strings.Join(selected, ", ")
		}
		dashboard.UpdateLine(statusLine, text.Colored(status, text.Green))
	})
	settings.SetSelector(options)

	data := app.AddPage("Data")
	data.AddLine(text.Styled(fmt.Sprintf("%-10s %8s %8s", "Region", "Requests", "Errors"), text.Style{}.Bold().Underline()))
	for _, row := range []struct {
		region   string
		requests int
		errors   int
	}{
		{"north", 18234, 3},
		{"south", 9120, 0},
		{"east", 22871, 41},
		{"west", 4410, 7},
	} {
		color := text.Green
		if row.errors > 10 {
			color = text.Red
		} else if row.errors > 0 {
			color = text.Yellow
		}
		data.AddLine(text.Plain(fmt.Sprintf("%-10s %8d ", row.region, row.requests)).
			AddColored(fmt.Sprintf("%8d", row.errors), color))
	}

	scroll := app.AddPage("Scroll")
	for i := 1; i <= 50; i++ {
		line := text.Plain(fmt.Sprintf("Line %02d ", i))
		if i%5 == 0 {
			line = line.AddColored("milestone", text.Magenta)
		}
		scroll.AddLine(line)
	}

	about := app.AddPage("About")
	about.AddLine(text.Styled("tabterm", text.Style{}.Bold()))
	about.AddText(version.Read().String())
	about.AddBlank()
	about.AddText("Arrow keys navigate, q quits.")

	app.SetActiveTab(cfg.Demo.StartTab)
	return app
}

func progressRow(bar *widget.ProgressBar) text.Line {
	spans := append([]text.Span{{Text: "Build  "}}, bar.Line(30).Spans()...)
	return text.NewLine(spans...)
}
