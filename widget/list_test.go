package widget

import (
	"strings"
	"testing"

	"pkt.systems/tabterm/schema"
	"pkt.systems/tabterm/text"
)

func TestListNavigationBoundsAreNotClaimed(t *testing.T) {
	l := NewList()
	l.AddItem("one", nil)
	l.AddItem("two", nil)
	if l.HandleKey(schema.KeyUp) {
		t.Fatalf("up at the first item should fall through")
	}
	if !l.HandleKey(schema.KeyDown) || l.Cursor() != 1 {
		t.Fatalf("expected cursor 1, got %d", l.Cursor())
	}
	if l.HandleKey(schema.KeyDown) {
		t.Fatalf("down at the last item should fall through")
	}
	if l.HandleKey(schema.KeyLeft) {
		t.Fatalf("left should never be claimed")
	}
}

func TestListEnterRunsActionThenHook(t *testing.T) {
	var order []string
	l := NewList()
	l.AddItem("alpha", func() { order = append(order, "action") })
	l.OnSelect(func(i int, label string) {
		order = append(order, "hook:"+label)
	})
	if !l.HandleKey(schema.KeyEnter) {
		t.Fatalf("expected enter to be claimed")
	}
	if strings.Join(order, ",") != "action,hook:alpha" {
		t.Fatalf("unexpected order %v", order)
	}
}

func TestListMultiSelect(t *testing.T) {
	l := NewList()
	for _, item := range []string{"a", "b", "c"} {
		l.AddItem(item, nil)
	}
	if l.HandleKey(schema.KeySpace) {
		t.Fatalf("space should fall through outside multi-select")
	}
	l.SetMultiSelect(true)
	l.HandleKey(schema.KeySpace)
	l.HandleKey(schema.KeyDown)
	l.HandleKey(schema.KeyDown)
	l.HandleKey(schema.KeySpace)
	if got := strings.Join(l.Selected(), ","); got != "a,c" {
		t.Fatalf("expected a,c selected, got %q", got)
	}
	lines := l.Lines(20)
	if lines[0].PlainText() != "  [x] a" || lines[2].PlainText() != "> [x] c" || lines[1].PlainText() != "  [ ] b" {
		t.Fatalf("unexpected rendering %q %q %q", lines[0].PlainText(), lines[1].PlainText(), lines[2].PlainText())
	}
	l.ClearSelection()
	if len(l.Selected()) != 0 {
		t.Fatalf("expected empty selection")
	}
}

func TestListLinesTruncate(t *testing.T) {
	l := NewList()
	l.AddItem("a long item label", nil)
	lines := l.Lines(8)
	if got := lines[0].PlainText(); got != "> a long" {
		t.Fatalf("unexpected truncation %q", got)
	}
	if text.Width(lines[0].PlainText()) != 8 {
		t.Fatalf("expected width 8")
	}
}

func TestListClearResets(t *testing.T) {
	l := NewList()
	l.AddItem("a", nil)
	l.AddItem("b", nil)
	l.HandleKey(schema.KeyDown)
	l.Clear()
	if l.Len() != 0 || l.Cursor() != 0 || l.HandleKey(schema.KeyEnter) {
		t.Fatalf("expected empty list after clear")
	}
	if l.Current() != "" || l.Item(4) != "" {
		t.Fatalf("expected empty labels")
	}
}
