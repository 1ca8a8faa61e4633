package utils

import "workshop-service/internal/domain/entity"

// JobCardLayout locates the header fields and the operation list in a job card grid
type JobCardLayout struct {
	Name            entity.CellRef
	PartNumber      entity.CellRef
	SerialNumber    entity.CellRef
	OperationColumn int
	StartMarker     string
	EndMarker       string
}

// DefaultJobCardLayout matches the workshop's job card template
func DefaultJobCardLayout() JobCardLayout {
	return JobCardLayout{
		Name:            entity.CellRef{Row: 7, Col: 1},
		PartNumber:      entity.CellRef{Row: 9, Col: 1},
		SerialNumber:    entity.CellRef{Row: 9, Col: 7},
		OperationColumn: 1,
		StartMarker:     "Start date",
		EndMarker:       "End date",
	}
}

// ExtractedJobCard is the normalized content of one job card document
type ExtractedJobCard struct {
	Name         string
	PartNumber   string
	SerialNumber *string
	Operations   entity.Operations
}

// Constants
const (
	// DocumentURLPrefix builds the link to a job card spreadsheet
	DocumentURLPrefix = "https://docs.google.com/spreadsheets/d/"

	CreationDateLayout = "2006-01-02 15:04"
	DisplayDateLayout  = "02.01.2006 15:04"
)
