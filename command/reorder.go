package command

import (
	"errors"
	"fmt"

	"github.com/wudi/pdfdeck/document"
)

// ReorderPages swaps the entire page list for a new order. Storing both full
// snapshots instead of a diff trades memory for an implementation that is
// trivially correct for every reordering strategy: drag-drop, move-to-index
// and keyboard moves all reduce to "compute the new full order".
type ReorderPages struct {
	meta
	doc           *document.Document
	previousOrder []document.PageEntry
	newOrder      []document.PageEntry
}

func NewReorderPages(doc *document.Document, previousOrder, newOrder []document.PageEntry) (*ReorderPages, error) {
	if doc == nil {
		return nil, errors.New("reorder pages: nil document")
	}
	if err := validateReorder(previousOrder, newOrder); err != nil {
		return nil, err
	}
	return &ReorderPages{
		meta:          newMeta("Reorder pages"),
		doc:           doc,
		previousOrder: append([]document.PageEntry(nil), previousOrder...),
		newOrder:      append([]document.PageEntry(nil), newOrder...),
	}, nil
}

func (c *ReorderPages) Execute() { c.doc.ReplaceAll(c.newOrder) }
func (c *ReorderPages) Undo()    { c.doc.ReplaceAll(c.previousOrder) }

// validateReorder requires newOrder to be a multiset-exact permutation of
// previousOrder. A length check alone would let a repeated entry smuggle a
// duplicate id into the list while silently dropping another page.
func validateReorder(previousOrder, newOrder []document.PageEntry) error {
	if len(previousOrder) != len(newOrder) {
		return fmt.Errorf("reorder pages: order length changed from %d to %d", len(previousOrder), len(newOrder))
	}
	prev := make(map[string]int, len(previousOrder))
	for _, e := range previousOrder {
		prev[e.EntryID()]++
	}
	for _, e := range newOrder {
		id := e.EntryID()
		if prev[id] == 0 {
			return fmt.Errorf("reorder pages: entry %s repeated or not in previous order", id)
		}
		prev[id]--
	}
	return nil
}

type reorderPagesPayload struct {
	ID            string             `json:"id"`
	Label         string             `json:"label,omitempty"`
	PreviousOrder document.EntryList `json:"previousOrder"`
	NewOrder      document.EntryList `json:"newOrder"`
}

func (c *ReorderPages) payload() reorderPagesPayload {
	return reorderPagesPayload{
		ID:            c.id,
		Label:         c.label,
		PreviousOrder: document.EntryList(c.previousOrder),
		NewOrder:      document.EntryList(c.newOrder),
	}
}

func decodeReorderPages(doc *document.Document, p reorderPagesPayload, createdAt int64) (*ReorderPages, error) {
	if err := validateReorder(p.PreviousOrder, p.NewOrder); err != nil {
		return nil, err
	}
	return &ReorderPages{
		meta:          restoredMeta(p.ID, p.Label, createdAt),
		doc:           doc,
		previousOrder: p.PreviousOrder,
		newOrder:      p.NewOrder,
	}, nil
}
