package scripting

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"
)

func TestGojaEngine_ContextCancellation(t *testing.T) {
	engine := NewEngine()

	ctx, cancel := context.WithTimeout(context.Background(), 25*time.Millisecond)
	defer cancel()

	if _, err := engine.Execute(ctx, "while (true) {}"); err == nil || !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected context deadline error, got %v", err)
	}

	if _, err := engine.Execute(context.Background(), "1 + 1"); err != nil {
		t.Fatalf("engine should recover after cancellation, got %v", err)
	}
}

func TestGojaEngine_ImmediateCancel(t *testing.T) {
	engine := NewEngine()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := engine.Execute(ctx, "42"); err == nil || !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context canceled error, got %v", err)
	}
}

func TestGojaEngine_ReturnsExportedValue(t *testing.T) {
	engine := NewEngine()
	val, err := engine.Execute(context.Background(), "6 * 7")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if n, ok := val.(int64); !ok || n != 42 {
		t.Fatalf("val = %v (%T)", val, val)
	}
}

// fakeEditor records calls so binding wiring can be checked without a full
// session.
type fakeEditor struct {
	ids     []string
	deleted []string
	rotated map[string]int
	moved   map[string]int
	alerts  []string
	undos   int
	redos   int
}

func newFakeEditor(ids ...string) *fakeEditor {
	return &fakeEditor{ids: ids, rotated: map[string]int{}, moved: map[string]int{}}
}

func (f *fakeEditor) PageIDs() []string { return append([]string(nil), f.ids...) }

func (f *fakeEditor) DeletePages(pageIDs []string) error {
	for _, id := range pageIDs {
		found := false
		for _, have := range f.ids {
			if have == id {
				found = true
			}
		}
		if !found {
			return fmt.Errorf("unknown page %s", id)
		}
	}
	f.deleted = append(f.deleted, pageIDs...)
	return nil
}

func (f *fakeEditor) DuplicatePages(pageIDs []string) ([]string, error) {
	out := make([]string, len(pageIDs))
	for i, id := range pageIDs {
		out[i] = id + "-copy"
	}
	return out, nil
}

func (f *fakeEditor) RotatePages(pageIDs []string, degrees int) error {
	for _, id := range pageIDs {
		f.rotated[id] += degrees
	}
	return nil
}

func (f *fakeEditor) MovePage(pageID string, to int) error {
	f.moved[pageID] = to
	return nil
}

func (f *fakeEditor) InsertDivider(index int) (string, error) { return "div-1", nil }
func (f *fakeEditor) ReorderByIDs(pageIDs []string) error     { f.ids = pageIDs; return nil }
func (f *fakeEditor) Undo() bool                              { f.undos++; return true }
func (f *fakeEditor) Redo() bool                              { f.redos++; return true }
func (f *fakeEditor) CanUndo() bool                           { return f.undos == 0 }
func (f *fakeEditor) CanRedo() bool                           { return false }
func (f *fakeEditor) Alert(message string)                    { f.alerts = append(f.alerts, message) }

func TestGojaEngine_DeckBindings(t *testing.T) {
	engine := NewEngine()
	ed := newFakeEditor("p0", "p1", "p2")
	if err := engine.RegisterEditor(ed); err != nil {
		t.Fatalf("register: %v", err)
	}

	script := `
		var ids = deck.pageIds();
		deck.rotatePages([ids[0]], 90);
		deck.deletePages([ids[2]]);
		deck.movePage(ids[1], 0);
		var copies = deck.duplicatePages([ids[0]]);
		deck.undo();
		app.alert("done " + ids.length + " " + copies[0]);
		copies[0];
	`
	val, err := engine.Execute(context.Background(), script)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if val != "p0-copy" {
		t.Fatalf("script result = %v", val)
	}
	if ed.rotated["p0"] != 90 {
		t.Fatalf("rotated = %v", ed.rotated)
	}
	if len(ed.deleted) != 1 || ed.deleted[0] != "p2" {
		t.Fatalf("deleted = %v", ed.deleted)
	}
	if to, ok := ed.moved["p1"]; !ok || to != 0 {
		t.Fatalf("moved = %v", ed.moved)
	}
	if ed.undos != 1 {
		t.Fatalf("undos = %d", ed.undos)
	}
	if len(ed.alerts) != 1 || ed.alerts[0] != "done 3 p0-copy" {
		t.Fatalf("alerts = %v", ed.alerts)
	}
}

func TestGojaEngine_EditorErrorsThrow(t *testing.T) {
	engine := NewEngine()
	if err := engine.RegisterEditor(newFakeEditor("p0")); err != nil {
		t.Fatalf("register: %v", err)
	}

	if _, err := engine.Execute(context.Background(), `deck.deletePages(["ghost"])`); err == nil {
		t.Fatal("editor error should surface as a script error")
	}

	// The thrown error is catchable inside the script.
	val, err := engine.Execute(context.Background(), `
		var caught = false;
		try { deck.deletePages(["ghost"]); } catch (e) { caught = true; }
		caught;
	`)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if caught, ok := val.(bool); !ok || !caught {
		t.Fatalf("caught = %v", val)
	}
}
