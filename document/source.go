package document

// OutlineItem is one node of a bookmark tree. PageID refers to a page list
// entry rather than a source page, so outlines survive reordering.
type OutlineItem struct {
	Title    string        `json:"title"`
	PageID   string        `json:"pageId,omitempty"`
	Children []OutlineItem `json:"children,omitempty"`
}

// CloneOutline deep-copies a bookmark tree.
func CloneOutline(items []OutlineItem) []OutlineItem {
	if items == nil {
		return nil
	}
	out := make([]OutlineItem, len(items))
	for i, it := range items {
		out[i] = it
		out[i].Children = CloneOutline(it.Children)
	}
	return out
}

// PageMeta is per-page metadata captured at import time.
type PageMeta struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Rotate int     `json:"rotate,omitempty"`
}

// SourceFile is the metadata record for one imported document. Identity is
// ID; PageCount and FileSize never change after import (replacing a source
// means importing under a new id).
type SourceFile struct {
	ID            string                 `json:"id"`
	Filename      string                 `json:"filename"`
	PageCount     int                    `json:"pageCount"`
	FileSize      int64                  `json:"fileSize"`
	AddedAt       int64                  `json:"addedAt"` // epoch milliseconds
	Color         string                 `json:"color,omitempty"`
	Outline       []OutlineItem          `json:"outline,omitempty"`
	Metadata      map[string]interface{} `json:"metadata,omitempty"`
	PageMetaData  []PageMeta             `json:"pageMetaData,omitempty"`
	IsImageSource bool                   `json:"isImageSource,omitempty"`
}

// Clone returns a deep copy of the source record.
func (s *SourceFile) Clone() *SourceFile {
	cp := *s
	cp.Outline = CloneOutline(s.Outline)
	if s.Metadata != nil {
		cp.Metadata = make(map[string]interface{}, len(s.Metadata))
		for k, v := range s.Metadata {
			cp.Metadata[k] = v
		}
	}
	if s.PageMetaData != nil {
		cp.PageMetaData = append([]PageMeta(nil), s.PageMetaData...)
	}
	return &cp
}
