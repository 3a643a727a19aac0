package command

import (
	"errors"
	"fmt"

	"github.com/wudi/pdfdeck/document"
)

// RemoveSource deletes every page belonging to a source and then removes the
// source's metadata record. The page snapshots are captured at construction
// (or supplied by the decoder), so Execute removes exactly those known ids —
// metadata-only removal, never a mass delete by source id. Undo re-adds the
// metadata if absent and restores the pages by ascending index, same rule
// as a plain delete.
type RemoveSource struct {
	meta
	doc       *document.Document
	source    *document.SourceFile
	snapshots []document.EntrySnapshot
}

func NewRemoveSource(doc *document.Document, sourceID string) (*RemoveSource, error) {
	if doc == nil {
		return nil, errors.New("remove source: nil document")
	}
	src, ok := doc.Source(sourceID)
	if !ok {
		return nil, fmt.Errorf("remove source: unknown source %s", sourceID)
	}
	return &RemoveSource{
		meta:      newMeta(fmt.Sprintf("Remove %q", src.Filename)),
		doc:       doc,
		source:    src.Clone(),
		snapshots: doc.SnapshotForSource(sourceID),
	}, nil
}

func (c *RemoveSource) Execute() {
	ids := make([]string, len(c.snapshots))
	for i, s := range c.snapshots {
		ids[i] = s.Entry.EntryID()
	}
	c.doc.DeleteByIDs(ids...)
	c.doc.RemoveSourceMetadataOnly(c.source.ID)
}

func (c *RemoveSource) Undo() {
	if !c.doc.HasSource(c.source.ID) {
		c.doc.AddSourceMetadata(c.source.Clone())
	}
	// Ascending index restore, see DeletePages.Undo.
	for _, s := range c.snapshots {
		c.doc.InsertAt(s.Index, s.Entry)
	}
}

type removeSourcePayload struct {
	ID        string                   `json:"id"`
	Label     string                   `json:"label,omitempty"`
	Source    *document.SourceFile     `json:"source"`
	Snapshots []document.EntrySnapshot `json:"snapshots,omitempty"`
}

func (c *RemoveSource) payload() removeSourcePayload {
	return removeSourcePayload{ID: c.id, Label: c.label, Source: c.source, Snapshots: c.snapshots}
}

func decodeRemoveSource(doc *document.Document, p removeSourcePayload, createdAt int64) (*RemoveSource, error) {
	if p.Source == nil || p.Source.ID == "" {
		return nil, errors.New("remove source: payload missing source")
	}
	return &RemoveSource{
		meta:      restoredMeta(p.ID, p.Label, createdAt),
		doc:       doc,
		source:    p.Source,
		snapshots: p.Snapshots,
	}, nil
}
