package command

import (
	"errors"
	"fmt"

	"github.com/wudi/pdfdeck/document"
)

// AddPages inserts page references for an imported source and registers the
// source metadata when it is not present yet. Whether this command owns the
// metadata registration is decided once, at construction, so undo removes
// the source record only if this command added it. Pages can be appended to
// an already-registered source without the metadata changing hands.
type AddPages struct {
	meta
	doc         *document.Document
	source      *document.SourceFile
	pages       []*document.PageReference
	index       int // -1 appends
	addedSource bool
}

// NewAddPages builds the command. index -1 appends at the end of the list.
func NewAddPages(doc *document.Document, source *document.SourceFile, pages []*document.PageReference, index int) (*AddPages, error) {
	if doc == nil {
		return nil, errors.New("add pages: nil document")
	}
	if source == nil || source.ID == "" {
		return nil, errors.New("add pages: missing source metadata")
	}
	if len(pages) == 0 {
		return nil, errors.New("add pages: no pages given")
	}
	if index < -1 {
		return nil, fmt.Errorf("add pages: negative index %d", index)
	}
	for _, p := range pages {
		if p.SourceFileID != source.ID {
			return nil, fmt.Errorf("add pages: page %s references source %s, not %s", p.ID, p.SourceFileID, source.ID)
		}
	}
	return &AddPages{
		meta:        newMeta(fmt.Sprintf("Add %q", source.Filename)),
		doc:         doc,
		source:      source.Clone(),
		pages:       clonePages(pages),
		index:       index,
		addedSource: !doc.HasSource(source.ID),
	}, nil
}

func clonePages(pages []*document.PageReference) []*document.PageReference {
	out := make([]*document.PageReference, len(pages))
	for i, p := range pages {
		out[i] = p.Clone().(*document.PageReference)
	}
	return out
}

func (c *AddPages) Execute() {
	if c.addedSource && !c.doc.HasSource(c.source.ID) {
		c.doc.AddSourceMetadata(c.source.Clone())
	}
	at := c.index
	if at == -1 {
		at = c.doc.Len()
	}
	entries := make([]document.PageEntry, len(c.pages))
	for i, p := range c.pages {
		entries[i] = p.Clone()
	}
	c.doc.InsertAt(at, entries...)
}

func (c *AddPages) Undo() {
	ids := make([]string, len(c.pages))
	for i, p := range c.pages {
		ids[i] = p.ID
	}
	c.doc.DeleteByIDs(ids...)
	if c.addedSource {
		c.doc.RemoveSourceMetadataOnly(c.source.ID)
	}
}

type addPagesPayload struct {
	ID          string                      `json:"id"`
	Label       string                      `json:"label,omitempty"`
	Source      *document.SourceFile        `json:"source"`
	Pages       []*document.PageReference   `json:"pages"`
	Index       int                         `json:"index"`
	AddedSource bool                        `json:"addedSource"`
}

func (c *AddPages) payload() addPagesPayload {
	return addPagesPayload{
		ID:          c.id,
		Label:       c.label,
		Source:      c.source,
		Pages:       c.pages,
		Index:       c.index,
		AddedSource: c.addedSource,
	}
}

func decodeAddPages(doc *document.Document, p addPagesPayload, createdAt int64) (*AddPages, error) {
	if p.Source == nil || p.Source.ID == "" {
		return nil, errors.New("add pages: payload missing source")
	}
	if len(p.Pages) == 0 {
		return nil, errors.New("add pages: payload has no pages")
	}
	return &AddPages{
		meta:        restoredMeta(p.ID, p.Label, createdAt),
		doc:         doc,
		source:      p.Source,
		pages:       p.Pages,
		index:       p.Index,
		addedSource: p.AddedSource,
	}, nil
}
