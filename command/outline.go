package command

import (
	"errors"

	"github.com/wudi/pdfdeck/document"
)

// UpdateOutline swaps the assembled document's bookmark tree, carrying full
// previous and next snapshots plus the dirty-flag transition. Same pattern
// as ReorderPages: whole-snapshot swap instead of tree diffing.
type UpdateOutline struct {
	meta
	doc       *document.Document
	previous  []document.OutlineItem
	next      []document.OutlineItem
	prevDirty bool
	nextDirty bool
}

func NewUpdateOutline(doc *document.Document, next []document.OutlineItem, nextDirty bool) (*UpdateOutline, error) {
	if doc == nil {
		return nil, errors.New("update outline: nil document")
	}
	prev, prevDirty := doc.Outline()
	return &UpdateOutline{
		meta:      newMeta("Edit outline"),
		doc:       doc,
		previous:  document.CloneOutline(prev),
		next:      document.CloneOutline(next),
		prevDirty: prevDirty,
		nextDirty: nextDirty,
	}, nil
}

func (c *UpdateOutline) Execute() {
	c.doc.SetOutline(document.CloneOutline(c.next), c.nextDirty)
}

func (c *UpdateOutline) Undo() {
	c.doc.SetOutline(document.CloneOutline(c.previous), c.prevDirty)
}

type updateOutlinePayload struct {
	ID        string                 `json:"id"`
	Label     string                 `json:"label,omitempty"`
	Previous  []document.OutlineItem `json:"previous"`
	Next      []document.OutlineItem `json:"next"`
	PrevDirty bool                   `json:"prevDirty"`
	NextDirty bool                   `json:"nextDirty"`
}

func (c *UpdateOutline) payload() updateOutlinePayload {
	return updateOutlinePayload{
		ID:        c.id,
		Label:     c.label,
		Previous:  c.previous,
		Next:      c.next,
		PrevDirty: c.prevDirty,
		NextDirty: c.nextDirty,
	}
}

func decodeUpdateOutline(doc *document.Document, p updateOutlinePayload, createdAt int64) (*UpdateOutline, error) {
	return &UpdateOutline{
		meta:      restoredMeta(p.ID, p.Label, createdAt),
		doc:       doc,
		previous:  p.Previous,
		next:      p.Next,
		prevDirty: p.PrevDirty,
		nextDirty: p.NextDirty,
	}, nil
}
