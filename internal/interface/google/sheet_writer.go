package google

import (
	"context"
	"fmt"
	"strings"

	"workshop-service/internal/domain/entity"
	"workshop-service/internal/domain/repository"
	"workshop-service/pkg/logger"

	"google.golang.org/api/sheets/v4"
)

// Palette maps highlights to background colors. HighlightNone is white.
var Palette = map[entity.Highlight]*sheets.Color{
	entity.HighlightNone:      {Red: 1, Green: 1, Blue: 1},
	entity.HighlightCompleted: {Red: 0.7, Green: 0.9, Blue: 0.7},
	entity.HighlightInWork:    {Red: 1, Green: 0.9, Blue: 0.6},
	entity.HighlightPending:   {Red: 1, Green: 0.65, Blue: 0.1},
}

var linkColor = &sheets.Color{Blue: 1}

const gridFields = "userEnteredValue,userEnteredFormat.backgroundColor,userEnteredFormat.textFormat,note"

// SheetWriter renders projections into tabs of one spreadsheet
type SheetWriter struct {
	sheets        *sheets.Service
	spreadsheetID string
	logger        logger.Logger
}

// NewSheetWriter creates a new writer bound to spreadsheetID
func NewSheetWriter(sheetsService *sheets.Service, spreadsheetID string, logger logger.Logger) repository.SheetWriter {
	return &SheetWriter{
		sheets:        sheetsService,
		spreadsheetID: spreadsheetID,
		logger:        logger,
	}
}

// ReplaceSheet clears the tab and writes values, colors, links and notes in one batch
func (w *SheetWriter) ReplaceSheet(ctx context.Context, sheetTitle string, projection *entity.SheetProjection) error {
	sheetID, err := w.sheetID(ctx, sheetTitle)
	if err != nil {
		return err
	}
	if err := w.batchUpdate(ctx, ReplaceRequests(sheetID, projection)); err != nil {
		return fmt.Errorf("failed to replace sheet %q: %w", sheetTitle, err)
	}
	w.logger.Debug("Sheet replaced", "sheet", sheetTitle, "rows", len(projection.Values))
	return nil
}

// ColorCells paints a rows x cols block starting at from
func (w *SheetWriter) ColorCells(ctx context.Context, sheetTitle string, from entity.GridPos, rows, cols int, highlight entity.Highlight) error {
	sheetID, err := w.sheetID(ctx, sheetTitle)
	if err != nil {
		return err
	}
	if err := w.batchUpdate(ctx, []*sheets.Request{ColorRequest(sheetID, from, rows, cols, highlight)}); err != nil {
		return fmt.Errorf("failed to color cells of %q: %w", sheetTitle, err)
	}
	return nil
}

// SetNote sets or clears one note
func (w *SheetWriter) SetNote(ctx context.Context, sheetTitle string, pos entity.GridPos, note *string) error {
	sheetID, err := w.sheetID(ctx, sheetTitle)
	if err != nil {
		return err
	}
	if err := w.batchUpdate(ctx, []*sheets.Request{NoteRequest(sheetID, pos, note)}); err != nil {
		return fmt.Errorf("failed to set note on %q: %w", sheetTitle, err)
	}
	return nil
}

// SheetTitles lists the tab titles
func (w *SheetWriter) SheetTitles(ctx context.Context) ([]string, error) {
	props, err := w.sheetProperties(ctx)
	if err != nil {
		return nil, err
	}
	titles := make([]string, 0, len(props))
	for _, p := range props {
		titles = append(titles, p.Title)
	}
	return titles, nil
}

func (w *SheetWriter) sheetProperties(ctx context.Context) ([]*sheets.SheetProperties, error) {
	ss, err := w.sheets.Spreadsheets.Get(w.spreadsheetID).Fields("sheets.properties").Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to read spreadsheet %s: %w", w.spreadsheetID, err)
	}
	props := make([]*sheets.SheetProperties, 0, len(ss.Sheets))
	for _, sh := range ss.Sheets {
		if sh.Properties != nil {
			props = append(props, sh.Properties)
		}
	}
	return props, nil
}

func (w *SheetWriter) sheetID(ctx context.Context, title string) (int64, error) {
	props, err := w.sheetProperties(ctx)
	if err != nil {
		return 0, err
	}
	for _, p := range props {
		if p.Title == title {
			return p.SheetId, nil
		}
	}
	return 0, fmt.Errorf("sheet %q in %s: %w", title, w.spreadsheetID, repository.ErrNotFound)
}

func (w *SheetWriter) batchUpdate(ctx context.Context, requests []*sheets.Request) error {
	_, err := w.sheets.Spreadsheets.BatchUpdate(w.spreadsheetID, &sheets.BatchUpdateSpreadsheetRequest{
		Requests: requests,
	}).Context(ctx).Do()
	return err
}

// ReplaceRequests clears every cell of the sheet, then writes the projection from A1
func ReplaceRequests(sheetID int64, p *entity.SheetProjection) []*sheets.Request {
	reset := &sheets.Request{
		UpdateCells: &sheets.UpdateCellsRequest{
			Range:  &sheets.GridRange{SheetId: sheetID, ForceSendFields: []string{"SheetId"}},
			Fields: "*",
		},
	}

	width := p.Width()
	rows := make([]*sheets.RowData, len(p.Values))
	for r, values := range p.Values {
		cells := make([]*sheets.CellData, width)
		for c := 0; c < width; c++ {
			var value string
			if c < len(values) {
				value = values[c]
			}
			cells[c] = cellData(entity.GridPos{Row: r, Col: c}, value, p)
		}
		rows[r] = &sheets.RowData{Values: cells}
	}

	write := &sheets.Request{
		UpdateCells: &sheets.UpdateCellsRequest{
			Start: &sheets.GridCoordinate{
				SheetId:         sheetID,
				ForceSendFields: []string{"SheetId", "RowIndex", "ColumnIndex"},
			},
			Rows:   rows,
			Fields: gridFields,
		},
	}
	return []*sheets.Request{reset, write}
}

func cellData(pos entity.GridPos, value string, p *entity.SheetProjection) *sheets.CellData {
	cell := &sheets.CellData{
		UserEnteredFormat: &sheets.CellFormat{BackgroundColor: Palette[p.Colors[pos]]},
	}

	if link, ok := p.Links[pos]; ok {
		formula := HyperlinkFormula(link)
		cell.UserEnteredValue = &sheets.ExtendedValue{FormulaValue: &formula}
		cell.UserEnteredFormat.TextFormat = &sheets.TextFormat{
			ForegroundColor: linkColor,
			Underline:       true,
		}
	} else if value != "" {
		v := value
		cell.UserEnteredValue = &sheets.ExtendedValue{StringValue: &v}
	}

	if note, ok := p.Notes[pos]; ok {
		cell.Note = note
	}
	return cell
}

// HyperlinkFormula renders a link cell
func HyperlinkFormula(link entity.Hyperlink) string {
	return fmt.Sprintf(`=HYPERLINK("%s"; "%s")`, quoteFormula(link.URL), quoteFormula(link.Text))
}

func quoteFormula(s string) string {
	return strings.ReplaceAll(s, `"`, `""`)
}

// ColorRequest paints the background of a rows x cols block
func ColorRequest(sheetID int64, from entity.GridPos, rows, cols int, h entity.Highlight) *sheets.Request {
	return &sheets.Request{
		RepeatCell: &sheets.RepeatCellRequest{
			Range: blockRange(sheetID, from, rows, cols),
			Cell: &sheets.CellData{
				UserEnteredFormat: &sheets.CellFormat{BackgroundColor: Palette[h]},
			},
			Fields: "userEnteredFormat.backgroundColor",
		},
	}
}

// NoteRequest sets one note; a nil note clears it
func NoteRequest(sheetID int64, pos entity.GridPos, note *string) *sheets.Request {
	cell := &sheets.CellData{}
	if note != nil {
		cell.Note = *note
	}
	return &sheets.Request{
		UpdateCells: &sheets.UpdateCellsRequest{
			Range:  blockRange(sheetID, pos, 1, 1),
			Rows:   []*sheets.RowData{{Values: []*sheets.CellData{cell}}},
			Fields: "note",
		},
	}
}

func blockRange(sheetID int64, from entity.GridPos, rows, cols int) *sheets.GridRange {
	return &sheets.GridRange{
		SheetId:          sheetID,
		StartRowIndex:    int64(from.Row),
		EndRowIndex:      int64(from.Row + rows),
		StartColumnIndex: int64(from.Col),
		EndColumnIndex:   int64(from.Col + cols),
		ForceSendFields:  []string{"SheetId", "StartRowIndex", "StartColumnIndex"},
	}
}
