package command

import (
	"fmt"
	"testing"

	"github.com/wudi/pdfdeck/document"
)

var dims595x842 = document.Dimensions{Width: 595, Height: 842}

// testDoc builds a document with n pages p0..p(n-1) from one source "src".
func testDoc(t *testing.T, n int) *document.Document {
	t.Helper()
	doc := document.New()
	doc.AddSourceMetadata(&document.SourceFile{ID: "src", Filename: "test.pdf", PageCount: n})
	entries := make([]document.PageEntry, n)
	for i := 0; i < n; i++ {
		entries[i] = &document.PageReference{
			ID:              fmt.Sprintf("p%d", i),
			SourceFileID:    "src",
			SourcePageIndex: i,
		}
	}
	doc.InsertAt(0, entries...)
	return doc
}

func docIDs(doc *document.Document) []string {
	entries := doc.Entries()
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.EntryID()
	}
	return out
}

func assertOrder(t *testing.T, doc *document.Document, want ...string) {
	t.Helper()
	got := docIDs(doc)
	if len(got) != len(want) {
		t.Fatalf("order = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
}
