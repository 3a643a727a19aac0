package command

import (
	"errors"
	"fmt"

	"github.com/wudi/pdfdeck/document"
)

// RotatePages applies a fixed ±90° delta to each targeted page, wrapping
// modulo 360. Undo applies the negated delta to the same set. Arbitrary
// angles are not supported.
type RotatePages struct {
	meta
	doc     *document.Document
	pageIDs []string
	degrees int
}

func NewRotatePages(doc *document.Document, pageIDs []string, degrees int) (*RotatePages, error) {
	if doc == nil {
		return nil, errors.New("rotate pages: nil document")
	}
	if len(pageIDs) == 0 {
		return nil, errors.New("rotate pages: no page ids given")
	}
	if degrees != 90 && degrees != -90 {
		return nil, fmt.Errorf("rotate pages: delta must be 90 or -90, got %d", degrees)
	}
	label := "Rotate right"
	if degrees < 0 {
		label = "Rotate left"
	}
	return &RotatePages{
		meta:    newMeta(label),
		doc:     doc,
		pageIDs: append([]string(nil), pageIDs...),
		degrees: degrees,
	}, nil
}

func (c *RotatePages) Execute() {
	for _, id := range c.pageIDs {
		c.doc.Rotate(id, c.degrees)
	}
}

func (c *RotatePages) Undo() {
	for _, id := range c.pageIDs {
		c.doc.Rotate(id, -c.degrees)
	}
}

type rotatePagesPayload struct {
	ID      string   `json:"id"`
	Label   string   `json:"label,omitempty"`
	PageIDs []string `json:"pageIds"`
	Degrees int      `json:"degrees"`
}

func (c *RotatePages) payload() rotatePagesPayload {
	return rotatePagesPayload{ID: c.id, Label: c.label, PageIDs: c.pageIDs, Degrees: c.degrees}
}

func decodeRotatePages(doc *document.Document, p rotatePagesPayload, createdAt int64) (*RotatePages, error) {
	if len(p.PageIDs) == 0 {
		return nil, errors.New("rotate pages: payload has no page ids")
	}
	if p.Degrees != 90 && p.Degrees != -90 {
		return nil, fmt.Errorf("rotate pages: payload delta %d", p.Degrees)
	}
	return &RotatePages{
		meta:    restoredMeta(p.ID, p.Label, createdAt),
		doc:     doc,
		pageIDs: p.PageIDs,
		degrees: p.Degrees,
	}, nil
}
