package command

import (
	"testing"

	"github.com/wudi/pdfdeck/document"
)

func TestReorderPagesSwapsWholeList(t *testing.T) {
	doc := testDoc(t, 3)
	prev := doc.Entries()
	next := []document.PageEntry{prev[2], prev[1], prev[0]}

	cmd, err := NewReorderPages(doc, prev, next)
	if err != nil {
		t.Fatalf("construct: %v", err)
	}
	cmd.Execute()
	assertOrder(t, doc, "p2", "p1", "p0")
	cmd.Undo()
	assertOrder(t, doc, "p0", "p1", "p2")
	cmd.Execute()
	assertOrder(t, doc, "p2", "p1", "p0")
}

func TestReorderPagesValidatesPermutation(t *testing.T) {
	doc := testDoc(t, 2)
	prev := doc.Entries()

	t.Run("length change", func(t *testing.T) {
		if _, err := NewReorderPages(doc, prev, prev[:1]); err == nil {
			t.Fatal("shrunk order should be rejected")
		}
	})
	t.Run("foreign entry", func(t *testing.T) {
		alien := []document.PageEntry{prev[0], &document.PageReference{ID: "alien", SourceFileID: "src"}}
		if _, err := NewReorderPages(doc, prev, alien); err == nil {
			t.Fatal("non-permutation should be rejected")
		}
	})
	t.Run("repeated entry", func(t *testing.T) {
		// Same length and every entry known, but p0 appears twice and p1 is
		// gone. Executing this would put a duplicate id in the page list.
		repeated := []document.PageEntry{prev[0], prev[0]}
		if _, err := NewReorderPages(doc, prev, repeated); err == nil {
			t.Fatal("repeated entry should be rejected")
		}
	})
}

func TestDecodeReorderRejectsRepeatedEntry(t *testing.T) {
	doc := testDoc(t, 2)
	prev := doc.Entries()
	p := reorderPagesPayload{
		ID:            "c1",
		PreviousOrder: document.EntryList(prev),
		NewOrder:      document.EntryList([]document.PageEntry{prev[0], prev[0]}),
	}
	if _, err := decodeReorderPages(doc, p, 0); err == nil {
		t.Fatal("tampered payload with repeated entry should fail decode")
	}
}
