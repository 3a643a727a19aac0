package document

// Rotations are additive and always normalized into {0, 90, 180, 270}.
const (
	Rotate0   = 0
	Rotate90  = 90
	Rotate180 = 180
	Rotate270 = 270
)

// NormalizeRotation wraps an arbitrary degree value into {0,90,180,270}.
// Values that are not multiples of 90 are snapped down to the nearest one.
func NormalizeRotation(deg int) int {
	deg %= 360
	if deg < 0 {
		deg += 360
	}
	return deg - deg%90
}

// Dimensions is a width/height pair in PDF points.
type Dimensions struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// RedactionMark is an opaque rectangle burned over a region of a page at
// export time. Coordinates are in page space, origin bottom-left.
type RedactionMark struct {
	ID     string  `json:"id"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Color  string  `json:"color,omitempty"`
}

// PageEntry is one slot of the ordered page list: either a PageReference
// pointing into an imported source, or a DividerReference marking an
// export-segment boundary.
type PageEntry interface {
	// EntryID returns the stable identity of the entry.
	EntryID() string
	// IsDivider reports whether the entry is a segment boundary.
	IsDivider() bool
	// Clone returns a deep copy of the entry.
	Clone() PageEntry
}

// PageReference points at one page of one imported source, plus the display
// transforms and annotations applied to it in the assembled document.
type PageReference struct {
	ID              string          `json:"id"`
	SourceFileID    string          `json:"sourceFileId"`
	SourcePageIndex int             `json:"sourcePageIndex"`
	Rotation        int             `json:"rotation"`
	GroupID         string          `json:"groupId,omitempty"`
	TargetDims      *Dimensions     `json:"targetDimensions,omitempty"`
	Redactions      []RedactionMark `json:"redactions,omitempty"`

	// Cached display size in points; zero means unknown.
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`
}

func (p *PageReference) EntryID() string { return p.ID }
func (p *PageReference) IsDivider() bool { return false }

func (p *PageReference) Clone() PageEntry {
	cp := *p
	if p.TargetDims != nil {
		d := *p.TargetDims
		cp.TargetDims = &d
	}
	if p.Redactions != nil {
		cp.Redactions = append([]RedactionMark(nil), p.Redactions...)
	}
	return &cp
}

// DividerReference is a virtual entry with no backing source page. Export
// splits the page list into separate output files at each divider.
type DividerReference struct {
	ID string `json:"id"`
}

func (d *DividerReference) EntryID() string { return d.ID }
func (d *DividerReference) IsDivider() bool { return true }

func (d *DividerReference) Clone() PageEntry {
	cp := *d
	return &cp
}

// EntrySnapshot captures an entry together with the index it occupied, so an
// inverse operation can restore it to the exact position.
type EntrySnapshot struct {
	Entry PageEntry
	Index int
}
