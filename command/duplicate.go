package command

import (
	"errors"
	"fmt"
	"sort"

	"github.com/wudi/pdfdeck/document"
)

// DuplicatePages inserts a copy of each targeted page immediately after the
// original. The ids of the copies are minted once at construction and kept
// in the payload, so redo recreates the same pages and undo can always
// delete them by id.
type DuplicatePages struct {
	meta
	doc     *document.Document
	pageIDs []string
	newIDs  []string // newIDs[i] is the copy of pageIDs[i]

	// Populated by Execute, in the original relative order of the targets.
	insertedIDs     []string
	insertedIndices []int
}

func NewDuplicatePages(doc *document.Document, pageIDs []string) (*DuplicatePages, error) {
	if doc == nil {
		return nil, errors.New("duplicate pages: nil document")
	}
	if len(pageIDs) == 0 {
		return nil, errors.New("duplicate pages: no page ids given")
	}
	newIDs := make([]string, len(pageIDs))
	for i := range newIDs {
		newIDs[i] = document.NewID()
	}
	return &DuplicatePages{
		meta:    newMeta(fmt.Sprintf("Duplicate %d page(s)", len(pageIDs))),
		doc:     doc,
		pageIDs: append([]string(nil), pageIDs...),
		newIDs:  newIDs,
	}, nil
}

// InsertedIDs returns the ids of the copies created by the last Execute, in
// the original relative order of the duplicated set.
func (c *DuplicatePages) InsertedIDs() []string { return append([]string(nil), c.insertedIDs...) }

// InsertedIndices returns the final indices of the copies, matching
// InsertedIDs.
func (c *DuplicatePages) InsertedIndices() []int { return append([]int(nil), c.insertedIndices...) }

func (c *DuplicatePages) Execute() {
	type target struct {
		pos   int // position in pageIDs, picks the reserved new id
		index int // current list index
	}
	var targets []target
	for pos, id := range c.pageIDs {
		if idx := c.doc.IndexOf(id); idx >= 0 {
			targets = append(targets, target{pos: pos, index: idx})
		}
	}
	// Process the highest index first: insertions above never shift the
	// indices of targets still waiting below.
	sort.Slice(targets, func(i, j int) bool { return targets[i].index > targets[j].index })

	c.insertedIDs = c.insertedIDs[:0]
	for _, t := range targets {
		src := c.doc.PageByID(c.pageIDs[t.pos])
		if src == nil {
			continue
		}
		cp := src.Clone().(*document.PageReference)
		cp.ID = c.newIDs[t.pos]
		c.doc.InsertAt(t.index+1, cp)
		c.insertedIDs = append(c.insertedIDs, cp.ID)
	}
	// Collected in descending-processing order; report in original order.
	reverse(c.insertedIDs)
	// Insertion-time indices go stale: each later insertion at a lower index
	// shifts the copies already placed above it. Report final positions only
	// once the list has settled.
	c.insertedIndices = c.insertedIndices[:0]
	for _, id := range c.insertedIDs {
		c.insertedIndices = append(c.insertedIndices, c.doc.IndexOf(id))
	}
}

func (c *DuplicatePages) Undo() {
	// Deletion by id is index-order-agnostic, no ordering rule needed.
	c.doc.DeleteByIDs(c.newIDs...)
}

func reverse(s []string) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}

type duplicatePagesPayload struct {
	ID      string   `json:"id"`
	Label   string   `json:"label,omitempty"`
	PageIDs []string `json:"pageIds"`
	NewIDs  []string `json:"newIds"`
}

func (c *DuplicatePages) payload() duplicatePagesPayload {
	return duplicatePagesPayload{ID: c.id, Label: c.label, PageIDs: c.pageIDs, NewIDs: c.newIDs}
}

func decodeDuplicatePages(doc *document.Document, p duplicatePagesPayload, createdAt int64) (*DuplicatePages, error) {
	if len(p.PageIDs) == 0 {
		return nil, errors.New("duplicate pages: payload has no page ids")
	}
	if len(p.NewIDs) != len(p.PageIDs) {
		return nil, fmt.Errorf("duplicate pages: %d new ids for %d targets", len(p.NewIDs), len(p.PageIDs))
	}
	return &DuplicatePages{
		meta:    restoredMeta(p.ID, p.Label, createdAt),
		doc:     doc,
		pageIDs: p.PageIDs,
		newIDs:  p.NewIDs,
	}, nil
}
