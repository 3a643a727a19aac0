// Package source builds SourceFile records and page references for imported
// files. PDF parsing itself lives outside the engine; callers describe a
// parsed PDF, while images are probed directly for their dimensions.
package source

import (
	"errors"
	"fmt"
	"time"

	"github.com/wudi/pdfdeck/document"
)

// colorPalette tags sources in the UI; assignment cycles by import count.
var colorPalette = []string{
	"#3b82f6", "#ef4444", "#22c55e", "#eab308",
	"#a855f7", "#ec4899", "#14b8a6", "#f97316",
}

// ColorForIndex returns the UI tag color for the n-th imported source.
func ColorForIndex(n int) string {
	if n < 0 {
		n = 0
	}
	return colorPalette[n%len(colorPalette)]
}

// PDFInfo describes a PDF that the external parser has already opened.
type PDFInfo struct {
	Filename  string
	PageCount int
	FileSize  int64
	PageSizes []document.PageMeta // optional, len 0 or PageCount
	Outline   []document.OutlineItem
	Metadata  map[string]interface{}
}

// FromPDF builds the source record and one page reference per page.
func FromPDF(info PDFInfo, colorIndex int) (*document.SourceFile, []*document.PageReference, error) {
	if info.Filename == "" {
		return nil, nil, errors.New("import pdf: missing filename")
	}
	if info.PageCount <= 0 {
		return nil, nil, fmt.Errorf("import pdf %s: page count %d", info.Filename, info.PageCount)
	}
	if len(info.PageSizes) != 0 && len(info.PageSizes) != info.PageCount {
		return nil, nil, fmt.Errorf("import pdf %s: %d page sizes for %d pages", info.Filename, len(info.PageSizes), info.PageCount)
	}
	src := &document.SourceFile{
		ID:           document.NewID(),
		Filename:     info.Filename,
		PageCount:    info.PageCount,
		FileSize:     info.FileSize,
		AddedAt:      time.Now().UnixMilli(),
		Color:        ColorForIndex(colorIndex),
		Outline:      document.CloneOutline(info.Outline),
		Metadata:     info.Metadata,
		PageMetaData: append([]document.PageMeta(nil), info.PageSizes...),
	}
	pages := make([]*document.PageReference, info.PageCount)
	for i := range pages {
		p := &document.PageReference{
			ID:              document.NewID(),
			SourceFileID:    src.ID,
			SourcePageIndex: i,
		}
		if len(info.PageSizes) == info.PageCount {
			p.Width = info.PageSizes[i].Width
			p.Height = info.PageSizes[i].Height
			p.Rotation = document.NormalizeRotation(info.PageSizes[i].Rotate)
		}
		pages[i] = p
	}
	return src, pages, nil
}
