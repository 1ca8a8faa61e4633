package entity

// Grid is a row-major block of cell values read from a document
type Grid [][]string

// CellRef addresses a document cell, 1-based like the sheet UI
type CellRef struct {
	Row int
	Col int
}

// Cells indexes the non-empty cells of a grid by position
type Cells struct {
	byRef map[CellRef]string
	rows  int
}

// NewCells builds the index. Empty cells are not stored.
func NewCells(g Grid) *Cells {
	c := &Cells{byRef: make(map[CellRef]string), rows: len(g)}
	for r, row := range g {
		for col, v := range row {
			if v == "" {
				continue
			}
			c.byRef[CellRef{Row: r + 1, Col: col + 1}] = v
		}
	}
	return c
}

// Get returns the value at ref and whether it is non-empty
func (c *Cells) Get(ref CellRef) (string, bool) {
	v, ok := c.byRef[ref]
	return v, ok
}

// Column walks one column top to bottom, skipping empty cells.
// Iteration stops when fn returns false.
func (c *Cells) Column(col int, fn func(row int, value string) bool) {
	for r := 1; r <= c.rows; r++ {
		v, ok := c.byRef[CellRef{Row: r, Col: col}]
		if !ok {
			continue
		}
		if !fn(r, v) {
			return
		}
	}
}
