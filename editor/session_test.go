package editor

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/wudi/pdfdeck/command"
	"github.com/wudi/pdfdeck/document"
	"github.com/wudi/pdfdeck/persist"
)

func newImport(sourceID string, n int) (*document.SourceFile, []*document.PageReference) {
	src := &document.SourceFile{
		ID:        sourceID,
		Filename:  sourceID + ".pdf",
		PageCount: n,
		FileSize:  1 << 20,
		AddedAt:   1700000000000,
	}
	pages := make([]*document.PageReference, n)
	for i := 0; i < n; i++ {
		pages[i] = &document.PageReference{
			ID:              fmt.Sprintf("%s-p%d", sourceID, i),
			SourceFileID:    sourceID,
			SourcePageIndex: i,
		}
	}
	return src, pages
}

func assertIDs(t *testing.T, s *Session, want ...string) {
	t.Helper()
	got := s.PageIDs()
	if len(got) != len(want) {
		t.Fatalf("ids = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("ids = %v, want %v", got, want)
		}
	}
}

func TestSessionEditCycle(t *testing.T) {
	s := NewSession(Options{})
	defer s.Close()

	if err := s.ImportSource(newImport("a", 3)); err != nil {
		t.Fatalf("import: %v", err)
	}
	assertIDs(t, s, "a-p0", "a-p1", "a-p2")

	if err := s.DeletePages([]string{"a-p1"}); err != nil {
		t.Fatalf("delete: %v", err)
	}
	assertIDs(t, s, "a-p0", "a-p2")

	if err := s.RotatePages([]string{"a-p0"}, 90); err != nil {
		t.Fatalf("rotate: %v", err)
	}
	if got := s.Document().PageByID("a-p0").Rotation; got != 90 {
		t.Fatalf("rotation = %d", got)
	}

	// Undo all three, then redo all three.
	for s.Undo() {
	}
	if s.Document().Len() != 0 || s.CanUndo() {
		t.Fatalf("unwind left %d entries", s.Document().Len())
	}
	for s.Redo() {
	}
	assertIDs(t, s, "a-p0", "a-p2")
	if got := s.Document().PageByID("a-p0").Rotation; got != 90 {
		t.Fatalf("rotation after redo = %d", got)
	}
}

func TestSessionMovePage(t *testing.T) {
	s := NewSession(Options{})
	defer s.Close()
	if err := s.ImportSource(newImport("a", 3)); err != nil {
		t.Fatal(err)
	}

	if err := s.MovePage("a-p2", 0); err != nil {
		t.Fatalf("move: %v", err)
	}
	assertIDs(t, s, "a-p2", "a-p0", "a-p1")

	s.Undo()
	assertIDs(t, s, "a-p0", "a-p1", "a-p2")

	if err := s.MovePage("nope", 0); err == nil {
		t.Fatal("unknown page accepted")
	}
	if err := s.MovePage("a-p0", 9); err == nil {
		t.Fatal("out-of-range target accepted")
	}
}

func TestSessionReorderByIDs(t *testing.T) {
	s := NewSession(Options{})
	defer s.Close()
	if err := s.ImportSource(newImport("a", 3)); err != nil {
		t.Fatal(err)
	}

	if err := s.ReorderByIDs([]string{"a-p1", "a-p2", "a-p0"}); err != nil {
		t.Fatalf("reorder: %v", err)
	}
	assertIDs(t, s, "a-p1", "a-p2", "a-p0")

	if err := s.ReorderByIDs([]string{"a-p1"}); err == nil {
		t.Fatal("short id list accepted")
	}
	if err := s.ReorderByIDs([]string{"a-p1", "a-p2", "ghost"}); err == nil {
		t.Fatal("unknown id accepted")
	}
	if err := s.ReorderByIDs([]string{"a-p1", "a-p1", "a-p0"}); err == nil {
		t.Fatal("repeated id accepted")
	}
	// Rejected orders must leave the list untouched.
	assertIDs(t, s, "a-p1", "a-p2", "a-p0")
}

func TestSessionDuplicateAndDivider(t *testing.T) {
	s := NewSession(Options{})
	defer s.Close()
	if err := s.ImportSource(newImport("a", 2)); err != nil {
		t.Fatal(err)
	}

	copies, err := s.DuplicatePages([]string{"a-p0"})
	if err != nil || len(copies) != 1 {
		t.Fatalf("duplicate: ids=%v err=%v", copies, err)
	}
	assertIDs(t, s, "a-p0", copies[0], "a-p1")

	divID, err := s.InsertDivider(1)
	if err != nil || divID == "" {
		t.Fatalf("divider: id=%q err=%v", divID, err)
	}
	assertIDs(t, s, "a-p0", divID, copies[0], "a-p1")

	s.Undo()
	s.Undo()
	assertIDs(t, s, "a-p0", "a-p1")
}

func TestSessionBatchIsOneHistoryEntry(t *testing.T) {
	s := NewSession(Options{})
	defer s.Close()
	if err := s.ImportSource(newImport("a", 3)); err != nil {
		t.Fatal(err)
	}
	before := s.History().Len()

	rot, err := command.NewRotatePages(s.Document(), []string{"a-p0"}, 90)
	if err != nil {
		t.Fatal(err)
	}
	del, err := command.NewDeletePages(s.Document(), []string{"a-p2"})
	if err != nil {
		t.Fatal(err)
	}
	if err := s.ExecuteBatch("Rotate and trim", []command.Command{rot, del}); err != nil {
		t.Fatalf("batch: %v", err)
	}
	if s.History().Len() != before+1 {
		t.Fatalf("history grew by %d entries", s.History().Len()-before)
	}

	s.Undo()
	assertIDs(t, s, "a-p0", "a-p1", "a-p2")
	if s.Document().PageByID("a-p0").Rotation != 0 {
		t.Fatal("batch undo incomplete")
	}
}

func TestSessionRedactionsAndOutline(t *testing.T) {
	s := NewSession(Options{})
	defer s.Close()
	if err := s.ImportSource(newImport("a", 1)); err != nil {
		t.Fatal(err)
	}

	mark := document.RedactionMark{ID: "r1", X: 10, Y: 10, Width: 50, Height: 20}
	if err := s.AddRedaction("a-p0", mark); err != nil {
		t.Fatalf("add redaction: %v", err)
	}
	mark.Width = 80
	if err := s.UpdateRedaction("a-p0", mark); err != nil {
		t.Fatalf("update redaction: %v", err)
	}
	if got, ok := s.Document().RedactionByID("a-p0", "r1"); !ok || got.Width != 80 {
		t.Fatalf("mark = %+v ok=%v", got, ok)
	}
	if err := s.DeleteRedaction("a-p0", "r1"); err != nil {
		t.Fatalf("delete redaction: %v", err)
	}
	s.Undo()
	if got, ok := s.Document().RedactionByID("a-p0", "r1"); !ok || got.Width != 80 {
		t.Fatalf("restored mark = %+v ok=%v", got, ok)
	}

	if err := s.SetOutline([]document.OutlineItem{{Title: "One", PageID: "a-p0"}}, true); err != nil {
		t.Fatalf("outline: %v", err)
	}
	outline, dirty := s.Document().Outline()
	if len(outline) != 1 || !dirty {
		t.Fatalf("outline = %+v dirty=%v", outline, dirty)
	}
}

func TestSessionPersistenceRoundTrip(t *testing.T) {
	store, err := persist.NewFileStore(filepath.Join(t.TempDir(), "session.snap"))
	if err != nil {
		t.Fatal(err)
	}

	s := NewSession(Options{Store: store})
	if err := s.ImportSource(newImport("a", 3)); err != nil {
		t.Fatal(err)
	}
	if err := s.RotatePages([]string{"a-p1"}, 90); err != nil {
		t.Fatal(err)
	}
	if err := s.DeletePages([]string{"a-p2"}); err != nil {
		t.Fatal(err)
	}
	s.Undo() // pointer one below the tail
	if err := s.Save(context.Background()); err != nil {
		t.Fatalf("save: %v", err)
	}
	s.Close()

	restored, err := LoadSession(context.Background(), store, Options{})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	defer restored.Close()

	assertIDs(t, restored, "a-p0", "a-p1", "a-p2")
	if got := restored.Document().PageByID("a-p1").Rotation; got != 90 {
		t.Fatalf("rotation = %d", got)
	}
	if !restored.CanUndo() || !restored.CanRedo() {
		t.Fatal("history availability lost across restart")
	}

	// The undone delete is still redoable after restart.
	restored.Redo()
	assertIDs(t, restored, "a-p0", "a-p1")

	// And the restored commands undo cleanly without re-execution drift.
	restored.Undo()
	restored.Undo()
	if got := restored.Document().PageByID("a-p1").Rotation; got != 0 {
		t.Fatalf("rotation after unwind = %d", got)
	}
}

func TestLoadSessionMissingSnapshot(t *testing.T) {
	store, err := persist.NewFileStore(filepath.Join(t.TempDir(), "none.snap"))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := LoadSession(context.Background(), store, Options{}); err == nil {
		t.Fatal("missing snapshot should fail load")
	}
	if _, err := LoadSession(context.Background(), nil, Options{}); err == nil {
		t.Fatal("nil store should fail load")
	}
}

func TestSessionSaveWithoutStore(t *testing.T) {
	s := NewSession(Options{})
	defer s.Close()
	if err := s.Save(context.Background()); err == nil {
		t.Fatal("save without store should fail")
	}
}
