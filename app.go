// Package tabterm runs a full-screen, tabbed terminal UI: pages of styled
// lines, optional selectors, and a single-threaded key loop that redraws a
// complete frame after every handled event.
package tabterm

import (
	"context"
	"sync/atomic"

	"pkt.systems/pslog"
	"pkt.systems/tabterm/core"
	"pkt.systems/tabterm/frame"
	"pkt.systems/tabterm/internal/logx"
	"pkt.systems/tabterm/schema"
	"pkt.systems/tabterm/terminal"
)

// KeySink may claim a key before the active page and the default navigation
// see it. Returning true consumes the key.
type KeySink func(key schema.Key) bool

// Options configures an App.
type Options struct {
	// Platform overrides the OS console.
	Platform terminal.Platform
	Console  terminal.ConsoleOptions
	Session  terminal.SessionOptions
}

// App owns the pages and runs the key loop.
type App struct {
	opts      Options
	pages     []*core.Page
	active    int
	tabOffset int
	onTick    func()
	sinks     []KeySink
	stopped   atomic.Bool
}

// New returns an App with no pages.
func New(opts Options) *App {
	return &App{opts: opts}
}

// AddPage appends a tab and returns its page.
func (a *App) AddPage(title string) *core.Page {
	p := core.NewPage(title)
	a.pages = append(a.pages, p)
	return p
}

// Page returns page i, or nil when out of range.
func (a *App) Page(i int) *core.Page {
	if i < 0 || i >= len(a.pages) {
		return nil
	}
	return a.pages[i]
}

// ActivePage returns the selected page, or nil when there are none.
func (a *App) ActivePage() *core.Page {
	return a.Page(a.active)
}

func (a *App) PageCount() int { return len(a.pages) }
func (a *App) ActiveTab() int { return a.active }

// SetActiveTab selects tab i. Out of range indexes are ignored.
func (a *App) SetActiveTab(i int) {
	if i < 0 || i >= len(a.pages) {
		return
	}
	a.active = i
	if a.active < a.tabOffset {
		a.tabOffset = a.active
	}
}

// SetOnTick registers a callback run after every idle poll interval. A
// frame is drawn after each call.
func (a *App) SetOnTick(fn func()) {
	a.onTick = fn
}

// OnKey adds a key sink. Sinks are offered keys in registration order.
func (a *App) OnKey(sink KeySink) {
	if sink != nil {
		a.sinks = append(a.sinks, sink)
	}
}

// Stop makes Run return after the current poll interval. It is safe to call
// from any goroutine.
func (a *App) Stop() {
	a.stopped.Store(true)
}

// Run opens the terminal session and processes keys until quit, interrupt,
// Stop or context cancellation. The terminal is restored before Run returns.
func (a *App) Run(ctx context.Context) error {
	if len(a.pages) == 0 {
		return schema.ErrNoPages
	}
	if ctx == nil {
		ctx = context.Background()
	}
	platform := a.opts.Platform
	if platform == nil {
		platform = terminal.NewConsole(a.opts.Console)
	}
	sess, err := terminal.Open(ctx, platform, a.opts.Session)
	if err != nil {
		return err
	}
	defer sess.Close()

	log := pslog.Ctx(ctx)
	logx.WithSize(log, sess.Size()).Info("tabterm run start", "pages", len(a.pages))
	reader := sess.Keys()
	a.render(ctx, sess)
	for {
		if ctx.Err() != nil {
			log.Info("tabterm run stop", "reason", "context")
			return nil
		}
		if a.stopped.Load() {
			log.Info("tabterm run stop", "reason", "stop")
			return nil
		}
		key := reader.Next()
		if key.Stops() {
			logx.WithKey(log, key).Info("tabterm run stop", "reason", "key")
			return nil
		}
		if a.dispatch(ctx, key, sess.Size()) {
			a.render(ctx, sess)
		}
	}
}

// dispatch applies key and reports whether a redraw is due.
func (a *App) dispatch(ctx context.Context, key schema.Key, size schema.Size) bool {
	log := pslog.Ctx(ctx)
	switch key {
	case schema.KeyNone:
		if a.onTick == nil {
			return false
		}
		a.onTick()
		return true
	case schema.KeyResize:
		logx.WithSize(log, size).Debug("tabterm resize")
		return true
	}

	for _, sink := range a.sinks {
		if sink(key) {
			logx.WithKey(log, key).Trace("tabterm key claimed", "by", "sink")
			return true
		}
	}

	rows := frame.ContentRows(size.Rows)
	page := a.ActivePage()
	if page.HandleKey(key, rows) {
		logx.WithKey(log, key).Trace("tabterm key claimed", "by", "selector")
		return true
	}

	switch key {
	case schema.KeyLeft:
		if a.active > 0 {
			a.SetActiveTab(a.active - 1)
			a.logTab(log).Debug("tabterm tab switch")
		}
		return true
	case schema.KeyRight:
		if a.active+1 < len(a.pages) {
			a.SetActiveTab(a.active + 1)
			a.logTab(log).Debug("tabterm tab switch")
		}
		return true
	case schema.KeyUp:
		page.ScrollUp(1)
		return true
	case schema.KeyDown:
		page.ScrollDown(1, rows)
		return true
	}
	return false
}

func (a *App) logTab(log pslog.Logger) pslog.Logger {
	return logx.WithPage(log, a.active, a.ActivePage().Title())
}

// Compose builds the frame for size from the current state without writing
// it. The sticky tab offset is updated as if the frame had been drawn.
func (a *App) Compose(size schema.Size) (frame.Frame, bool) {
	page := a.ActivePage()
	if page == nil {
		return frame.Frame{}, false
	}
	page.Fit(frame.ContentRows(size.Rows))
	hint := frame.HintScroll
	if sel := page.Selector(); sel != nil {
		hint = frame.HintFor(true, sel.MultiSelect())
	}
	titles := make([]string, len(a.pages))
	for i, p := range a.pages {
		titles[i] = p.Title()
	}
	f, ok := frame.Compose(frame.Input{
		Size:      size,
		Tabs:      titles,
		Active:    a.active,
		TabOffset: a.tabOffset,
		Lines:     page.Content(frame.ContentWidth(size.Cols)),
		Offset:    page.Offset(),
		Hint:      hint,
	})
	if ok {
		a.tabOffset = f.Tabs.First
	}
	return f, ok
}

func (a *App) render(ctx context.Context, sess *terminal.Session) {
	size := sess.Size()
	f, ok := a.Compose(size)
	log := pslog.Ctx(ctx)
	if !ok {
		logx.WithSize(log, size).Trace("tabterm frame skipped", "reason", "below minimum size")
		return
	}
	if err := sess.WriteFrame(f.Bytes); err != nil {
		log.Warn("tabterm frame dropped", "err", err)
	}
}
