package command

import (
	"errors"
	"fmt"

	"github.com/wudi/pdfdeck/document"
)

// AddRedaction appends one redaction mark to a page.
type AddRedaction struct {
	meta
	doc    *document.Document
	pageID string
	mark   document.RedactionMark
}

func NewAddRedaction(doc *document.Document, pageID string, mark document.RedactionMark) (*AddRedaction, error) {
	if doc == nil {
		return nil, errors.New("add redaction: nil document")
	}
	if pageID == "" {
		return nil, errors.New("add redaction: missing page id")
	}
	if mark.Width <= 0 || mark.Height <= 0 {
		return nil, fmt.Errorf("add redaction: degenerate rect %gx%g", mark.Width, mark.Height)
	}
	if mark.ID == "" {
		mark.ID = document.NewID()
	}
	return &AddRedaction{
		meta:   newMeta("Add redaction"),
		doc:    doc,
		pageID: pageID,
		mark:   mark,
	}, nil
}

func (c *AddRedaction) Execute() { c.doc.AddRedaction(c.pageID, c.mark) }
func (c *AddRedaction) Undo()    { c.doc.RemoveRedaction(c.pageID, c.mark.ID) }

type addRedactionPayload struct {
	ID     string                 `json:"id"`
	Label  string                 `json:"label,omitempty"`
	PageID string                 `json:"pageId"`
	Mark   document.RedactionMark `json:"mark"`
}

func (c *AddRedaction) payload() addRedactionPayload {
	return addRedactionPayload{ID: c.id, Label: c.label, PageID: c.pageID, Mark: c.mark}
}

func decodeAddRedaction(doc *document.Document, p addRedactionPayload, createdAt int64) (*AddRedaction, error) {
	if p.PageID == "" || p.Mark.ID == "" {
		return nil, errors.New("add redaction: payload missing ids")
	}
	return &AddRedaction{
		meta:   restoredMeta(p.ID, p.Label, createdAt),
		doc:    doc,
		pageID: p.PageID,
		mark:   p.Mark,
	}, nil
}

// UpdateRedaction replaces an existing mark. Both the previous and the next
// full record are stored, so undo and redo are symmetric snapshot swaps.
type UpdateRedaction struct {
	meta
	doc      *document.Document
	pageID   string
	previous document.RedactionMark
	next     document.RedactionMark
}

func NewUpdateRedaction(doc *document.Document, pageID string, next document.RedactionMark) (*UpdateRedaction, error) {
	if doc == nil {
		return nil, errors.New("update redaction: nil document")
	}
	if pageID == "" || next.ID == "" {
		return nil, errors.New("update redaction: missing ids")
	}
	prev, ok := doc.RedactionByID(pageID, next.ID)
	if !ok {
		return nil, fmt.Errorf("update redaction: mark %s not on page %s", next.ID, pageID)
	}
	return &UpdateRedaction{
		meta:     newMeta("Edit redaction"),
		doc:      doc,
		pageID:   pageID,
		previous: prev,
		next:     next,
	}, nil
}

func (c *UpdateRedaction) Execute() { c.doc.UpdateRedaction(c.pageID, c.next) }
func (c *UpdateRedaction) Undo()    { c.doc.UpdateRedaction(c.pageID, c.previous) }

type updateRedactionPayload struct {
	ID       string                 `json:"id"`
	Label    string                 `json:"label,omitempty"`
	PageID   string                 `json:"pageId"`
	Previous document.RedactionMark `json:"previous"`
	Next     document.RedactionMark `json:"next"`
}

func (c *UpdateRedaction) payload() updateRedactionPayload {
	return updateRedactionPayload{ID: c.id, Label: c.label, PageID: c.pageID, Previous: c.previous, Next: c.next}
}

func decodeUpdateRedaction(doc *document.Document, p updateRedactionPayload, createdAt int64) (*UpdateRedaction, error) {
	if p.PageID == "" || p.Next.ID == "" {
		return nil, errors.New("update redaction: payload missing ids")
	}
	return &UpdateRedaction{
		meta:     restoredMeta(p.ID, p.Label, createdAt),
		doc:      doc,
		pageID:   p.PageID,
		previous: p.Previous,
		next:     p.Next,
	}, nil
}

// DeleteRedaction removes one mark from a page; the full record is captured
// at construction so undo can re-add it.
type DeleteRedaction struct {
	meta
	doc    *document.Document
	pageID string
	mark   document.RedactionMark
}

func NewDeleteRedaction(doc *document.Document, pageID, markID string) (*DeleteRedaction, error) {
	if doc == nil {
		return nil, errors.New("delete redaction: nil document")
	}
	if pageID == "" || markID == "" {
		return nil, errors.New("delete redaction: missing ids")
	}
	mark, ok := doc.RedactionByID(pageID, markID)
	if !ok {
		return nil, fmt.Errorf("delete redaction: mark %s not on page %s", markID, pageID)
	}
	return &DeleteRedaction{
		meta:   newMeta("Delete redaction"),
		doc:    doc,
		pageID: pageID,
		mark:   mark,
	}, nil
}

func (c *DeleteRedaction) Execute() { c.doc.RemoveRedaction(c.pageID, c.mark.ID) }
func (c *DeleteRedaction) Undo()    { c.doc.AddRedaction(c.pageID, c.mark) }

type deleteRedactionPayload struct {
	ID     string                 `json:"id"`
	Label  string                 `json:"label,omitempty"`
	PageID string                 `json:"pageId"`
	Mark   document.RedactionMark `json:"mark"`
}

func (c *DeleteRedaction) payload() deleteRedactionPayload {
	return deleteRedactionPayload{ID: c.id, Label: c.label, PageID: c.pageID, Mark: c.mark}
}

func decodeDeleteRedaction(doc *document.Document, p deleteRedactionPayload, createdAt int64) (*DeleteRedaction, error) {
	if p.PageID == "" || p.Mark.ID == "" {
		return nil, errors.New("delete redaction: payload missing ids")
	}
	return &DeleteRedaction{
		meta:   restoredMeta(p.ID, p.Label, createdAt),
		doc:    doc,
		pageID: p.PageID,
		mark:   p.Mark,
	}, nil
}
