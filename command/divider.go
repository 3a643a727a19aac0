package command

import (
	"errors"
	"fmt"

	"github.com/wudi/pdfdeck/document"
)

// InsertDivider places a synthetic divider entry at a fixed index, splitting
// the export into separate output files there. The divider id is minted once
// at construction and persisted, so undo (and any later "remove this exact
// divider" command) always targets the same instance.
type InsertDivider struct {
	meta
	doc       *document.Document
	index     int
	dividerID string
}

func NewInsertDivider(doc *document.Document, index int) (*InsertDivider, error) {
	if doc == nil {
		return nil, errors.New("insert divider: nil document")
	}
	if index < 0 {
		return nil, fmt.Errorf("insert divider: negative index %d", index)
	}
	return &InsertDivider{
		meta:      newMeta("Split document"),
		doc:       doc,
		index:     index,
		dividerID: document.NewID(),
	}, nil
}

// DividerID returns the id of the divider this command inserts.
func (c *InsertDivider) DividerID() string { return c.dividerID }

func (c *InsertDivider) Execute() {
	c.doc.InsertAt(c.index, &document.DividerReference{ID: c.dividerID})
}

func (c *InsertDivider) Undo() {
	c.doc.DeleteByIDs(c.dividerID)
}

type insertDividerPayload struct {
	ID        string `json:"id"`
	Label     string `json:"label,omitempty"`
	Index     int    `json:"index"`
	DividerID string `json:"dividerId"`
}

func (c *InsertDivider) payload() insertDividerPayload {
	return insertDividerPayload{ID: c.id, Label: c.label, Index: c.index, DividerID: c.dividerID}
}

func decodeInsertDivider(doc *document.Document, p insertDividerPayload, createdAt int64) (*InsertDivider, error) {
	if p.Index < 0 {
		return nil, fmt.Errorf("insert divider: payload index %d", p.Index)
	}
	if p.DividerID == "" {
		return nil, errors.New("insert divider: payload missing divider id")
	}
	return &InsertDivider{
		meta:      restoredMeta(p.ID, p.Label, createdAt),
		doc:       doc,
		index:     p.Index,
		dividerID: p.DividerID,
	}, nil
}
