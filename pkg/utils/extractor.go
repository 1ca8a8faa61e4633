package utils

import (
	"strings"

	"workshop-service/internal/domain/entity"
)

// JobCardExtractor turns a raw job card grid into header fields and an operations skeleton
type JobCardExtractor struct {
	layout JobCardLayout
}

// NewJobCardExtractor creates an extractor for the given layout
func NewJobCardExtractor(layout JobCardLayout) *JobCardExtractor {
	return &JobCardExtractor{layout: layout}
}

// Extract parses the grid. Every operation gets an empty record and the
// sentinel operation is always present.
func (e *JobCardExtractor) Extract(grid entity.Grid) *ExtractedJobCard {
	cells := entity.NewCells(grid)

	out := &ExtractedJobCard{
		Operations: e.ExtractOperations(cells),
	}
	out.Name, _ = cells.Get(e.layout.Name)
	out.PartNumber, _ = cells.Get(e.layout.PartNumber)
	if serial, ok := cells.Get(e.layout.SerialNumber); ok {
		out.SerialNumber = &serial
	}
	return out
}

// ExtractOperations collects the operation names listed between the start and end markers
func (e *JobCardExtractor) ExtractOperations(cells *entity.Cells) entity.Operations {
	ops := make(entity.Operations)
	collecting := false

	cells.Column(e.layout.OperationColumn, func(_ int, value string) bool {
		if strings.Contains(value, e.layout.EndMarker) {
			return false
		}
		if collecting {
			name := strings.ReplaceAll(value, "\n", "")
			if name != "" {
				ops[name] = entity.OperationRecord{}
			}
		}
		if strings.Contains(value, e.layout.StartMarker) {
			collecting = true
		}
		return true
	})

	ops[entity.SentinelOperation] = entity.OperationRecord{}
	return ops
}
