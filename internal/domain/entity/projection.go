package entity

// Highlight is a presentation state for a projected cell
type Highlight string

const (
	HighlightNone      Highlight = ""
	HighlightCompleted Highlight = "completed"
	HighlightInWork    Highlight = "in_work"
	HighlightPending   Highlight = "pending"
)

// ParseHighlight maps a status string to a highlight. Unknown values map to none.
func ParseHighlight(s string) Highlight {
	switch Highlight(s) {
	case HighlightCompleted, HighlightInWork, HighlightPending:
		return Highlight(s)
	default:
		return HighlightNone
	}
}

// GridPos addresses a projected cell, 0-based like the Sheets grid API
type GridPos struct {
	Row int
	Col int
}

// Hyperlink renders as a HYPERLINK formula in the sink
type Hyperlink struct {
	URL  string
	Text string
}

// SheetProjection is a full-sheet replacement: values plus presentation metadata
type SheetProjection struct {
	Values [][]string
	Colors map[GridPos]Highlight
	Links  map[GridPos]Hyperlink
	Notes  map[GridPos]string
}

// NewSheetProjection returns a projection with its maps initialised
func NewSheetProjection() *SheetProjection {
	return &SheetProjection{
		Colors: make(map[GridPos]Highlight),
		Links:  make(map[GridPos]Hyperlink),
		Notes:  make(map[GridPos]string),
	}
}

// Width returns the widest row length
func (p *SheetProjection) Width() int {
	w := 0
	for _, row := range p.Values {
		if len(row) > w {
			w = len(row)
		}
	}
	return w
}
