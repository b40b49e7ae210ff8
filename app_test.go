package tabterm

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/charmbracelet/x/ansi"

	"pkt.systems/tabterm/keys"
	"pkt.systems/tabterm/schema"
	"pkt.systems/tabterm/terminal"
	"pkt.systems/tabterm/widget"
)

const frameMarker = "\x1b[H\x1b[0m"

type scriptedKeys struct {
	keys []schema.Key
}

func (s *scriptedKeys) Next() schema.Key {
	if len(s.keys) == 0 {
		return schema.KeyQuit
	}
	k := s.keys[0]
	s.keys = s.keys[1:]
	return k
}

type fakePlatform struct {
	mu       sync.Mutex
	size     schema.Size
	script   []schema.Key
	out      bytes.Buffer
	frames   []string
	raw      bool
	writeErr error
}

func newFakePlatform(cols, rows int, script ...schema.Key) *fakePlatform {
	return &fakePlatform{size: schema.Size{Cols: cols, Rows: rows}, script: script}
}

func (f *fakePlatform) EnterRawMode() error { f.raw = true; return nil }
func (f *fakePlatform) ExitRawMode() error  { f.raw = false; return nil }
func (f *fakePlatform) Size() schema.Size   { return f.size }
func (f *fakePlatform) HideCursor() error   { return nil }
func (f *fakePlatform) ShowCursor() error   { return nil }

func (f *fakePlatform) Write(p []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.writeErr != nil && bytes.HasPrefix(p, []byte(frameMarker)) {
		return f.writeErr
	}
	if bytes.HasPrefix(p, []byte(frameMarker)) {
		f.frames = append(f.frames, string(p))
	}
	f.out.Write(p)
	return nil
}

func (f *fakePlatform) Keys(func() bool) keys.Reader {
	return &scriptedKeys{keys: f.script}
}

func (f *fakePlatform) lastFrame(t *testing.T) string {
	t.Helper()
	if len(f.frames) == 0 {
		t.Fatalf("no frames written")
	}
	return ansi.Strip(f.frames[len(f.frames)-1])
}

func demoApp(p terminal.Platform) *App {
	app := New(Options{Platform: p})
	for _, title := range []string{"Dashboard", "Settings", "Data", "Scroll", "About"} {
		page := app.AddPage(title)
		page.AddText(title + " content")
	}
	return app
}

func TestRunWithoutPages(t *testing.T) {
	if err := New(Options{Platform: newFakePlatform(80, 24)}).Run(context.Background()); !errors.Is(err, schema.ErrNoPages) {
		t.Fatalf("expected ErrNoPages, got %v", err)
	}
}

func TestRunSwitchesTabsAndRestores(t *testing.T) {
	p := newFakePlatform(40, 12, schema.KeyRight, schema.KeyRight, schema.KeyRight, schema.KeyRight, schema.KeyRight)
	app := demoApp(p)
	if err := app.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if app.ActiveTab() != 4 {
		t.Fatalf("expected active tab 4, got %d", app.ActiveTab())
	}
	last := p.lastFrame(t)
	if strings.Contains(last, "Dashboard") || !strings.Contains(last, "< ") || !strings.Contains(last, "About content") {
		t.Fatalf("unexpected last frame %q", last)
	}
	if len(p.frames) != 6 {
		t.Fatalf("expected 6 frames, got %d", len(p.frames))
	}
	if p.raw {
		t.Fatalf("expected raw mode to be restored")
	}
	if !bytes.HasSuffix(p.out.Bytes(), terminal.RestoreSequence()) {
		t.Fatalf("expected restore sequence at the end of output")
	}
	if terminal.Active() {
		t.Fatalf("expected session to be closed")
	}
}

func TestRunLeftPullsTabOffsetBack(t *testing.T) {
	p := newFakePlatform(40, 12, schema.KeyLeft, schema.KeyLeft, schema.KeyLeft, schema.KeyLeft)
	app := demoApp(p)
	app.SetActiveTab(4)
	if err := app.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if app.ActiveTab() != 0 {
		t.Fatalf("expected active tab 0, got %d", app.ActiveTab())
	}
	if last := p.lastFrame(t); !strings.Contains(last, " Dashboard ") || strings.Contains(last, "< ") {
		t.Fatalf("expected unscrolled tab bar, got %q", last)
	}
}

func TestRunScrollsActivePage(t *testing.T) {
	script := make([]schema.Key, 0, 46)
	for i := 0; i < 45; i++ {
		script = append(script, schema.KeyDown)
	}
	script = append(script, schema.KeyUp)
	p := newFakePlatform(60, 13, script...)
	app := New(Options{Platform: p})
	page := app.AddPage("Scroll")
	for i := 0; i < 50; i++ {
		page.AddText(fmt.Sprintf("line %02d", i+1))
	}
	if err := app.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if page.Offset() != 39 {
		t.Fatalf("expected offset 39, got %d", page.Offset())
	}
	if last := p.lastFrame(t); !strings.Contains(last, " 40-49/50 ") {
		t.Fatalf("expected scroll indicator, got %q", last)
	}
}

func TestRunSinkClaimsFirst(t *testing.T) {
	p := newFakePlatform(80, 24, schema.KeyRight, schema.KeyEnter)
	app := demoApp(p)
	var seen []schema.Key
	app.OnKey(func(k schema.Key) bool {
		seen = append(seen, k)
		return k == schema.KeyRight
	})
	if err := app.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if app.ActiveTab() != 0 {
		t.Fatalf("expected claimed key to skip navigation, got tab %d", app.ActiveTab())
	}
	if len(seen) != 2 {
		t.Fatalf("expected sink to see 2 keys, got %v", seen)
	}
	if len(p.frames) != 2 {
		t.Fatalf("expected initial frame plus one redraw, got %d", len(p.frames))
	}
}

func TestRunSelectorClaimsBeforeScroll(t *testing.T) {
	p := newFakePlatform(80, 24, schema.KeyDown, schema.KeySpace, schema.KeyDown, schema.KeyEnter)
	app := New(Options{Platform: p})
	page := app.AddPage("Settings")
	page.AddText("Options")
	list := widget.NewList()
	list.SetMultiSelect(true)
	var chosen []string
	for _, item := range []string{"alpha", "beta", "gamma"} {
		list.AddItem(item, nil)
	}
	list.OnSelect(func(int, string) { chosen = list.Selected() })
	page.SetSelector(list)
	if err := app.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if list.Cursor() != 2 || page.Offset() != 0 {
		t.Fatalf("expected cursor 2 without scrolling, got cursor %d offset %d", list.Cursor(), page.Offset())
	}
	if strings.Join(chosen, ",") != "beta" {
		t.Fatalf("expected beta chosen, got %v", chosen)
	}
	if last := p.lastFrame(t); !strings.Contains(last, "[Space] toggle") || !strings.Contains(last, "> [ ] gamma") {
		t.Fatalf("unexpected frame %q", last)
	}
}

func TestRunTicksOnIdle(t *testing.T) {
	p := newFakePlatform(80, 24, schema.KeyNone, schema.KeyNone, schema.KeyOther)
	app := demoApp(p)
	ticks := 0
	app.SetOnTick(func() {
		ticks++
		app.ActivePage().UpdateLine(0, app.ActivePage().Content(10)[0].AddColored(" tick", 0))
	})
	if err := app.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if ticks != 2 {
		t.Fatalf("expected 2 ticks, got %d", ticks)
	}
	if len(p.frames) != 3 {
		t.Fatalf("expected 3 frames, got %d", len(p.frames))
	}
	if !strings.Contains(p.lastFrame(t), "Dashboard content tick tick") {
		t.Fatalf("expected tick updates in the last frame")
	}
}

func TestRunStopsFromSink(t *testing.T) {
	p := newFakePlatform(80, 24, schema.KeyEnter, schema.KeyRight, schema.KeyRight)
	app := demoApp(p)
	app.OnKey(func(k schema.Key) bool {
		if k == schema.KeyEnter {
			app.Stop()
			return true
		}
		return false
	})
	if err := app.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if app.ActiveTab() != 0 {
		t.Fatalf("expected loop to stop before navigation, got tab %d", app.ActiveTab())
	}
}

func TestRunHonoursCancelledContext(t *testing.T) {
	p := newFakePlatform(80, 24, schema.KeyRight)
	app := demoApp(p)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := app.Run(ctx); err != nil {
		t.Fatalf("run: %v", err)
	}
	if app.ActiveTab() != 0 {
		t.Fatalf("expected no key handling after cancel")
	}
}

func TestRunDropsFailedFrames(t *testing.T) {
	p := newFakePlatform(80, 24, schema.KeyRight)
	p.writeErr = fmt.Errorf("%w: broken pipe", schema.ErrWriteAborted)
	app := demoApp(p)
	if err := app.Run(context.Background()); err != nil {
		t.Fatalf("expected dropped frames to be tolerated, got %v", err)
	}
	if app.ActiveTab() != 1 {
		t.Fatalf("expected navigation to continue, got tab %d", app.ActiveTab())
	}
}

func TestRunSkipsTinyTerminal(t *testing.T) {
	p := newFakePlatform(8, 4, schema.KeyRight)
	app := demoApp(p)
	if err := app.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(p.frames) != 0 {
		t.Fatalf("expected no frames below the minimum size, got %d", len(p.frames))
	}
}

func TestAppPageAccessors(t *testing.T) {
	app := demoApp(newFakePlatform(80, 24))
	if app.PageCount() != 5 || app.Page(2).Title() != "Data" || app.Page(9) != nil {
		t.Fatalf("unexpected page accessors")
	}
	app.SetActiveTab(7)
	if app.ActiveTab() != 0 {
		t.Fatalf("expected out of range tab to be ignored")
	}
	app.SetActiveTab(3)
	if app.ActivePage().Title() != "Scroll" {
		t.Fatalf("expected Scroll page")
	}
}
