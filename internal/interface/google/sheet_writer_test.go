package google

import (
	"testing"

	"workshop-service/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReplaceRequests(t *testing.T) {
	p := entity.NewSheetProjection()
	p.Values = [][]string{
		{"Project", "Name", "10_COAT"},
		{"P1", "Valve"},
	}
	p.Colors[entity.GridPos{Row: 1, Col: 0}] = entity.HighlightCompleted
	p.Links[entity.GridPos{Row: 1, Col: 1}] = entity.Hyperlink{URL: "https://docs.google.com/x", Text: "Valve"}
	p.Notes[entity.GridPos{Row: 0, Col: 2}] = "coating"

	reqs := ReplaceRequests(0, p)
	require.Len(t, reqs, 2)

	reset := reqs[0].UpdateCells
	require.NotNil(t, reset)
	assert.Equal(t, "*", reset.Fields)
	assert.Contains(t, reset.Range.ForceSendFields, "SheetId")

	write := reqs[1].UpdateCells
	require.NotNil(t, write)
	assert.Equal(t, gridFields, write.Fields)
	assert.Equal(t, int64(0), write.Start.RowIndex)
	require.Len(t, write.Rows, 2)

	// short rows are padded to the widest row
	require.Len(t, write.Rows[1].Values, 3)
	assert.Nil(t, write.Rows[1].Values[2].UserEnteredValue)
	assert.Equal(t, Palette[entity.HighlightNone], write.Rows[1].Values[2].UserEnteredFormat.BackgroundColor)

	header := write.Rows[0].Values[0]
	require.NotNil(t, header.UserEnteredValue.StringValue)
	assert.Equal(t, "Project", *header.UserEnteredValue.StringValue)
	assert.Equal(t, "coating", write.Rows[0].Values[2].Note)

	assert.Equal(t, Palette[entity.HighlightCompleted], write.Rows[1].Values[0].UserEnteredFormat.BackgroundColor)

	link := write.Rows[1].Values[1]
	require.NotNil(t, link.UserEnteredValue.FormulaValue)
	assert.Equal(t, `=HYPERLINK("https://docs.google.com/x"; "Valve")`, *link.UserEnteredValue.FormulaValue)
	assert.True(t, link.UserEnteredFormat.TextFormat.Underline)
}

func TestHyperlinkFormula_QuotesDoubled(t *testing.T) {
	got := HyperlinkFormula(entity.Hyperlink{URL: "https://x", Text: `Pump "A"`})
	assert.Equal(t, `=HYPERLINK("https://x"; "Pump ""A""")`, got)
}

func TestColorRequest(t *testing.T) {
	req := ColorRequest(7, entity.GridPos{Row: 3, Col: 0}, 1, 6, entity.HighlightCompleted)
	require.NotNil(t, req.RepeatCell)

	r := req.RepeatCell.Range
	assert.Equal(t, int64(7), r.SheetId)
	assert.Equal(t, int64(3), r.StartRowIndex)
	assert.Equal(t, int64(4), r.EndRowIndex)
	assert.Equal(t, int64(0), r.StartColumnIndex)
	assert.Equal(t, int64(6), r.EndColumnIndex)
	assert.Equal(t, "userEnteredFormat.backgroundColor", req.RepeatCell.Fields)
	assert.Equal(t, Palette[entity.HighlightCompleted], req.RepeatCell.Cell.UserEnteredFormat.BackgroundColor)
}

func TestNoteRequest(t *testing.T) {
	note := "waiting for parts"
	req := NoteRequest(1, entity.GridPos{Row: 2, Col: 4}, &note)
	require.NotNil(t, req.UpdateCells)
	assert.Equal(t, "note", req.UpdateCells.Fields)
	assert.Equal(t, note, req.UpdateCells.Rows[0].Values[0].Note)
	assert.Equal(t, int64(5), req.UpdateCells.Range.EndColumnIndex)

	cleared := NoteRequest(1, entity.GridPos{Row: 2, Col: 4}, nil)
	assert.Empty(t, cleared.UpdateCells.Rows[0].Values[0].Note)
}
