package source

import (
	"fmt"
	"image"
	"io"
	"time"

	// Register decoders; DecodeConfig picks the right one by signature.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/wudi/pdfdeck/document"
)

// imagePointScale converts the common 72-per-inch assumption: image pixels
// map 1:1 to PDF points, matching how the export path places full-bleed
// image pages.
const imagePointScale = 1.0

// FromImage probes an image stream for its dimensions and builds a
// single-page image source. The stream is only read far enough to decode
// the header.
func FromImage(filename string, r io.Reader, fileSize int64, colorIndex int) (*document.SourceFile, []*document.PageReference, error) {
	cfg, format, err := image.DecodeConfig(r)
	if err != nil {
		return nil, nil, fmt.Errorf("import image %s: %w", filename, err)
	}
	w := float64(cfg.Width) * imagePointScale
	h := float64(cfg.Height) * imagePointScale
	src := &document.SourceFile{
		ID:            document.NewID(),
		Filename:      filename,
		PageCount:     1,
		FileSize:      fileSize,
		AddedAt:       time.Now().UnixMilli(),
		Color:         ColorForIndex(colorIndex),
		Metadata:      map[string]interface{}{"format": format},
		PageMetaData:  []document.PageMeta{{Width: w, Height: h}},
		IsImageSource: true,
	}
	page := &document.PageReference{
		ID:              document.NewID(),
		SourceFileID:    src.ID,
		SourcePageIndex: 0,
		Width:           w,
		Height:          h,
	}
	return src, []*document.PageReference{page}, nil
}
