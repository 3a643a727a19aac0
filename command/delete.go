package command

import (
	"errors"
	"fmt"

	"github.com/wudi/pdfdeck/document"
)

// DeletePages removes a set of entries from the page list and restores them
// to their exact original indices on undo.
type DeletePages struct {
	meta
	doc     *document.Document
	pageIDs []string

	// Captured on first Execute only; stays populated across redo so the
	// restore targets the positions from the original delete.
	snapshots []document.EntrySnapshot
}

func NewDeletePages(doc *document.Document, pageIDs []string) (*DeletePages, error) {
	if doc == nil {
		return nil, errors.New("delete pages: nil document")
	}
	if len(pageIDs) == 0 {
		return nil, errors.New("delete pages: no page ids given")
	}
	return &DeletePages{
		meta:    newMeta(fmt.Sprintf("Delete %d page(s)", len(pageIDs))),
		doc:     doc,
		pageIDs: append([]string(nil), pageIDs...),
	}, nil
}

func (c *DeletePages) Execute() {
	// An empty snapshot buffer marks the first run; redo after undo keeps
	// the original capture.
	if len(c.snapshots) == 0 {
		targets := make(map[string]struct{}, len(c.pageIDs))
		for _, id := range c.pageIDs {
			targets[id] = struct{}{}
		}
		for i, e := range c.doc.Entries() {
			if _, ok := targets[e.EntryID()]; ok {
				c.snapshots = append(c.snapshots, document.EntrySnapshot{Entry: e, Index: i})
			}
		}
	}
	c.doc.DeleteByIDs(c.pageIDs...)
}

func (c *DeletePages) Undo() {
	// Snapshots are in list order, so indices ascend. Inserting the lowest
	// index first guarantees later insertions land at their recorded index
	// without being shifted by earlier ones. Descending order silently
	// corrupts positions whenever two non-adjacent pages were deleted.
	for _, s := range c.snapshots {
		c.doc.InsertAt(s.Index, s.Entry)
	}
}

type deletePagesPayload struct {
	ID        string                   `json:"id"`
	Label     string                   `json:"label,omitempty"`
	PageIDs   []string                 `json:"pageIds"`
	Snapshots []document.EntrySnapshot `json:"snapshots,omitempty"`
}

func (c *DeletePages) payload() deletePagesPayload {
	return deletePagesPayload{ID: c.id, Label: c.label, PageIDs: c.pageIDs, Snapshots: c.snapshots}
}

func decodeDeletePages(doc *document.Document, p deletePagesPayload, createdAt int64) (*DeletePages, error) {
	if len(p.PageIDs) == 0 {
		return nil, errors.New("delete pages: payload has no page ids")
	}
	return &DeletePages{
		meta:      restoredMeta(p.ID, p.Label, createdAt),
		doc:       doc,
		pageIDs:   p.PageIDs,
		snapshots: p.Snapshots,
	}, nil
}
