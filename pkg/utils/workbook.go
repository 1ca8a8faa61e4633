package utils

import (
	"fmt"
	"io"

	"workshop-service/internal/domain/entity"

	"github.com/xuri/excelize/v2"
)

// DecodeWorkbook reads the active sheet of an xlsx stream into a grid
func DecodeWorkbook(r io.Reader) (entity.Grid, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	if sheet == "" {
		return nil, fmt.Errorf("workbook has no active sheet")
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	return entity.Grid(rows), nil
}
