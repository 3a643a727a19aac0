package command

import (
	"errors"
	"fmt"

	"github.com/wudi/pdfdeck/document"
)

// ResizePages overrides the export size of the targeted pages. The previous
// overrides, including explicit "no override" nil states, are captured on
// first Execute and restored verbatim on undo.
type ResizePages struct {
	meta
	doc     *document.Document
	pageIDs []string
	dims    *document.Dimensions // nil clears the override

	previous []*document.Dimensions // previous[i] matches pageIDs[i]
}

func NewResizePages(doc *document.Document, pageIDs []string, dims *document.Dimensions) (*ResizePages, error) {
	if doc == nil {
		return nil, errors.New("resize pages: nil document")
	}
	if len(pageIDs) == 0 {
		return nil, errors.New("resize pages: no page ids given")
	}
	if dims != nil && (dims.Width <= 0 || dims.Height <= 0) {
		return nil, fmt.Errorf("resize pages: dimensions must be positive, got %gx%g", dims.Width, dims.Height)
	}
	label := "Reset page size"
	if dims != nil {
		label = fmt.Sprintf("Resize %d page(s)", len(pageIDs))
	}
	c := &ResizePages{
		meta:    newMeta(label),
		doc:     doc,
		pageIDs: append([]string(nil), pageIDs...),
	}
	if dims != nil {
		d := *dims
		c.dims = &d
	}
	return c, nil
}

func (c *ResizePages) Execute() {
	if len(c.previous) == 0 {
		c.previous = make([]*document.Dimensions, len(c.pageIDs))
		for i, id := range c.pageIDs {
			if p := c.doc.PageByID(id); p != nil && p.TargetDims != nil {
				d := *p.TargetDims
				c.previous[i] = &d
			}
		}
	}
	for _, id := range c.pageIDs {
		c.doc.SetTargetDimensions(id, c.dims)
	}
}

func (c *ResizePages) Undo() {
	for i, id := range c.pageIDs {
		c.doc.SetTargetDimensions(id, c.previous[i])
	}
}

type resizePagesPayload struct {
	ID       string                 `json:"id"`
	Label    string                 `json:"label,omitempty"`
	PageIDs  []string               `json:"pageIds"`
	Dims     *document.Dimensions   `json:"targetDimensions"`
	Previous []*document.Dimensions `json:"previous,omitempty"`
}

func (c *ResizePages) payload() resizePagesPayload {
	return resizePagesPayload{ID: c.id, Label: c.label, PageIDs: c.pageIDs, Dims: c.dims, Previous: c.previous}
}

func decodeResizePages(doc *document.Document, p resizePagesPayload, createdAt int64) (*ResizePages, error) {
	if len(p.PageIDs) == 0 {
		return nil, errors.New("resize pages: payload has no page ids")
	}
	if len(p.Previous) != 0 && len(p.Previous) != len(p.PageIDs) {
		return nil, errors.New("resize pages: payload previous/target length mismatch")
	}
	return &ResizePages{
		meta:     restoredMeta(p.ID, p.Label, createdAt),
		doc:      doc,
		pageIDs:  p.PageIDs,
		dims:     p.Dims,
		previous: p.Previous,
	}, nil
}
