package document

import "sort"

// Document holds the canonical page list and source map for one editing
// session. Its primitive operations are intentionally dumb: they know
// nothing about undo, validate nothing beyond shape, and are total over
// their inputs: operating on a missing id is a no-op, not an error, which
// keeps redo idempotent after external drift.
type Document struct {
	entries []PageEntry
	sources map[string]*SourceFile

	outline      []OutlineItem
	outlineDirty bool
}

func New() *Document {
	return &Document{sources: make(map[string]*SourceFile)}
}

// Len returns the number of page list entries, dividers included.
func (d *Document) Len() int { return len(d.entries) }

// Entries returns a copy of the page list slice. The entries themselves are
// shared, not cloned.
func (d *Document) Entries() []PageEntry {
	return append([]PageEntry(nil), d.entries...)
}

// EntryAt returns the entry at index, or nil when out of range.
func (d *Document) EntryAt(index int) PageEntry {
	if index < 0 || index >= len(d.entries) {
		return nil
	}
	return d.entries[index]
}

// IndexOf returns the index of the entry with the given id, or -1.
func (d *Document) IndexOf(id string) int {
	for i, e := range d.entries {
		if e.EntryID() == id {
			return i
		}
	}
	return -1
}

// PageByID returns the page reference with the given id, or nil when the id
// is absent or names a divider.
func (d *Document) PageByID(id string) *PageReference {
	if i := d.IndexOf(id); i >= 0 {
		if p, ok := d.entries[i].(*PageReference); ok {
			return p
		}
	}
	return nil
}

// InsertAt inserts entries at index, clamping index into [0, Len].
func (d *Document) InsertAt(index int, entries ...PageEntry) {
	if len(entries) == 0 {
		return
	}
	if index < 0 {
		index = 0
	}
	if index > len(d.entries) {
		index = len(d.entries)
	}
	d.entries = append(d.entries[:index], append(append([]PageEntry(nil), entries...), d.entries[index:]...)...)
}

// DeleteByIDs removes every entry whose id is in ids, preserving the order
// of survivors. Missing ids are ignored. Returns the number removed.
func (d *Document) DeleteByIDs(ids ...string) int {
	if len(ids) == 0 {
		return 0
	}
	drop := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		drop[id] = struct{}{}
	}
	kept := d.entries[:0]
	removed := 0
	for _, e := range d.entries {
		if _, ok := drop[e.EntryID()]; ok {
			removed++
			continue
		}
		kept = append(kept, e)
	}
	for i := len(kept); i < len(d.entries); i++ {
		d.entries[i] = nil
	}
	d.entries = kept
	return removed
}

// ReplaceAll swaps the entire page list.
func (d *Document) ReplaceAll(entries []PageEntry) {
	d.entries = append([]PageEntry(nil), entries...)
}

// AddSourceMetadata registers a source record. Returns false when a source
// with the same id is already present (the existing record wins).
func (d *Document) AddSourceMetadata(src *SourceFile) bool {
	if src == nil || src.ID == "" {
		return false
	}
	if _, ok := d.sources[src.ID]; ok {
		return false
	}
	d.sources[src.ID] = src
	return true
}

// RemoveSourceMetadataOnly removes the source record without touching any
// page entries that reference it. Callers are responsible for deleting the
// referencing pages first.
func (d *Document) RemoveSourceMetadataOnly(id string) bool {
	if _, ok := d.sources[id]; !ok {
		return false
	}
	delete(d.sources, id)
	return true
}

// Source returns the source record for id.
func (d *Document) Source(id string) (*SourceFile, bool) {
	s, ok := d.sources[id]
	return s, ok
}

// HasSource reports whether a source record with the given id exists.
func (d *Document) HasSource(id string) bool {
	_, ok := d.sources[id]
	return ok
}

// Sources returns all source records ordered by AddedAt, then id.
func (d *Document) Sources() []*SourceFile {
	out := make([]*SourceFile, 0, len(d.sources))
	for _, s := range d.sources {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].AddedAt != out[j].AddedAt {
			return out[i].AddedAt < out[j].AddedAt
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// SnapshotForSource captures {entry, index} for every page referencing the
// source, in list order. The snapshots alias the live entries.
func (d *Document) SnapshotForSource(sourceID string) []EntrySnapshot {
	var out []EntrySnapshot
	for i, e := range d.entries {
		if p, ok := e.(*PageReference); ok && p.SourceFileID == sourceID {
			out = append(out, EntrySnapshot{Entry: p, Index: i})
		}
	}
	return out
}

// Rotate adds delta degrees to the page's rotation, wrapping modulo 360.
func (d *Document) Rotate(id string, delta int) bool {
	p := d.PageByID(id)
	if p == nil {
		return false
	}
	p.Rotation = NormalizeRotation(p.Rotation + delta)
	return true
}

// SetRotation sets the page's rotation to a normalized absolute value.
func (d *Document) SetRotation(id string, deg int) bool {
	p := d.PageByID(id)
	if p == nil {
		return false
	}
	p.Rotation = NormalizeRotation(deg)
	return true
}

// SetTargetDimensions overrides (or, with nil, clears) the page's export
// size.
func (d *Document) SetTargetDimensions(id string, dims *Dimensions) bool {
	p := d.PageByID(id)
	if p == nil {
		return false
	}
	if dims == nil {
		p.TargetDims = nil
	} else {
		cp := *dims
		p.TargetDims = &cp
	}
	return true
}

// SetCachedSize records the display size probed for the page.
func (d *Document) SetCachedSize(id string, width, height float64) bool {
	p := d.PageByID(id)
	if p == nil {
		return false
	}
	p.Width, p.Height = width, height
	return true
}

// AddRedaction appends a redaction mark to the page.
func (d *Document) AddRedaction(pageID string, mark RedactionMark) bool {
	p := d.PageByID(pageID)
	if p == nil {
		return false
	}
	p.Redactions = append(p.Redactions, mark)
	return true
}

// UpdateRedaction replaces the mark with the same id. Missing marks are
// ignored.
func (d *Document) UpdateRedaction(pageID string, mark RedactionMark) bool {
	p := d.PageByID(pageID)
	if p == nil {
		return false
	}
	for i := range p.Redactions {
		if p.Redactions[i].ID == mark.ID {
			p.Redactions[i] = mark
			return true
		}
	}
	return false
}

// RemoveRedaction deletes the mark with the given id from the page.
func (d *Document) RemoveRedaction(pageID, markID string) bool {
	p := d.PageByID(pageID)
	if p == nil {
		return false
	}
	for i := range p.Redactions {
		if p.Redactions[i].ID == markID {
			p.Redactions = append(p.Redactions[:i], p.Redactions[i+1:]...)
			if len(p.Redactions) == 0 {
				p.Redactions = nil
			}
			return true
		}
	}
	return false
}

// RedactionByID returns a copy of the named mark on the page.
func (d *Document) RedactionByID(pageID, markID string) (RedactionMark, bool) {
	p := d.PageByID(pageID)
	if p == nil {
		return RedactionMark{}, false
	}
	for _, m := range p.Redactions {
		if m.ID == markID {
			return m, true
		}
	}
	return RedactionMark{}, false
}

// Outline returns the assembled document's bookmark tree and its dirty flag.
// The returned slice aliases internal state; callers that mutate must go
// through SetOutline.
func (d *Document) Outline() ([]OutlineItem, bool) {
	return d.outline, d.outlineDirty
}

// SetOutline swaps the assembled document's bookmark tree.
func (d *Document) SetOutline(items []OutlineItem, dirty bool) {
	d.outline = items
	d.outlineDirty = dirty
}

// Segments partitions the page list at dividers. Dividers themselves are not
// part of any segment; empty segments produced by leading, trailing or
// adjacent dividers are dropped. The result is the literal export order.
func (d *Document) Segments() [][]*PageReference {
	var out [][]*PageReference
	var cur []*PageReference
	for _, e := range d.entries {
		if e.IsDivider() {
			if len(cur) > 0 {
				out = append(out, cur)
				cur = nil
			}
			continue
		}
		if p, ok := e.(*PageReference); ok {
			cur = append(cur, p)
		}
	}
	if len(cur) > 0 {
		out = append(out, cur)
	}
	return out
}
