// Package persist turns one editing session into a durable blob and back.
// A snapshot carries the materialized page list and source map together with
// the serialized history and its pointer, written atomically in one piece.
// A crash inside the debounce window loses the latest edits but can never
// leave document and history mutually inconsistent.
package persist

import (
	"github.com/wudi/pdfdeck/command"
	"github.com/wudi/pdfdeck/document"
)

// FormatVersion is the snapshot container version, independent of the
// per-command envelope schema version.
const FormatVersion = 1

// Snapshot is the full persisted state of one session.
type Snapshot struct {
	Version      int                    `json:"version"`
	SavedAt      int64                  `json:"savedAt"` // epoch milliseconds
	Pages        document.EntryList     `json:"pages"`
	Sources      []*document.SourceFile `json:"sources"`
	Outline      []document.OutlineItem `json:"outline,omitempty"`
	OutlineDirty bool                   `json:"outlineDirty,omitempty"`
	History      []command.Envelope     `json:"history"`
	Pointer      int                    `json:"pointer"`
}

// Capture materializes the document into a snapshot. History envelopes and
// pointer come from the stack's own Serialize.
func Capture(doc *document.Document, history []command.Envelope, pointer int, savedAt int64) *Snapshot {
	outline, dirty := doc.Outline()
	return &Snapshot{
		Version:      FormatVersion,
		SavedAt:      savedAt,
		Pages:        document.EntryList(doc.Entries()),
		Sources:      doc.Sources(),
		Outline:      document.CloneOutline(outline),
		OutlineDirty: dirty,
		History:      history,
		Pointer:      pointer,
	}
}

// Restore materializes the snapshot's document state into doc. History is
// deliberately not replayed here; rehydrate the stack separately.
func Restore(doc *document.Document, snap *Snapshot) {
	doc.ReplaceAll(snap.Pages)
	for _, s := range snap.Sources {
		doc.AddSourceMetadata(s)
	}
	doc.SetOutline(snap.Outline, snap.OutlineDirty)
}
