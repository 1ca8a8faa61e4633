package repository

import (
	"context"

	"workshop-service/internal/domain/entity"
)

// SheetWriter defines the interface for the presentation sink
type SheetWriter interface {
	// ReplaceSheet clears the whole sheet and writes the projection in one batch
	ReplaceSheet(ctx context.Context, sheetTitle string, projection *entity.SheetProjection) error

	// ColorCells sets the background of a rectangular block; HighlightNone paints white
	ColorCells(ctx context.Context, sheetTitle string, from entity.GridPos, rows, cols int, highlight entity.Highlight) error

	// SetNote sets or, with a nil note, clears one cell note
	SetNote(ctx context.Context, sheetTitle string, pos entity.GridPos, note *string) error

	// SheetTitles lists the tabs of the target spreadsheet
	SheetTitles(ctx context.Context) ([]string, error)
}
