package usecase

import (
	"fmt"
	"sort"
	"strconv"
	"time"

	"workshop-service/internal/domain/entity"
	"workshop-service/pkg/utils"
)

const (
	// gridFixedColumns precede the operation columns in the master grid
	gridFixedColumns = 5
	gridNameColumn   = 2

	// ClosedRowColumns is how many leading columns turn completed when a card closes
	ClosedRowColumns = 6
)

// ProjectionBuilder renders reconciled job cards into sheet projections
type ProjectionBuilder struct {
	deriver *StatusDeriver
	now     func() time.Time
	loc     *time.Location
}

// NewProjectionBuilder creates a builder. Timestamps are displayed in loc.
func NewProjectionBuilder(deriver *StatusDeriver, now func() time.Time, loc *time.Location) *ProjectionBuilder {
	if now == nil {
		now = time.Now
	}
	if loc == nil {
		loc = time.UTC
	}
	return &ProjectionBuilder{deriver: deriver, now: now, loc: loc}
}

func (b *ProjectionBuilder) stamp() string {
	return b.now().In(b.loc).Format(utils.DisplayDateLayout)
}

// BuildJobCardGrid renders one row per active card with one column per distinct operation
func (b *ProjectionBuilder) BuildJobCardGrid(cards []*entity.JobCard) *entity.SheetProjection {
	proj := entity.NewSheetProjection()

	active := make([]*entity.JobCard, 0, len(cards))
	distinct := make(map[string]struct{})
	for _, card := range cards {
		if !card.IsActive {
			continue
		}
		active = append(active, card)
		for name := range card.Operations {
			distinct[name] = struct{}{}
		}
	}

	opNames := make([]string, 0, len(distinct))
	for name := range distinct {
		opNames = append(opNames, name)
	}
	sort.Strings(opNames)

	opColumn := make(map[string]int, len(opNames))
	header := []string{"project", "creation_date", "name", "part_number", "serial_number"}
	for i, name := range opNames {
		opColumn[name] = gridFixedColumns + i
		header = append(header, name)
	}
	header = append(header, "last_update", b.stamp())
	proj.Values = append(proj.Values, header)

	width := gridFixedColumns + len(opNames)
	for i, card := range active {
		rowIdx := i + 1
		row := make([]string, width)
		row[0] = card.ProjectName()
		row[1] = card.CreationDttm.Format(utils.CreationDateLayout)
		row[gridNameColumn] = card.Name
		row[3] = card.PartNumber
		if card.SerialNumber != nil {
			row[4] = *card.SerialNumber
		}

		proj.Links[entity.GridPos{Row: rowIdx, Col: gridNameColumn}] = entity.Hyperlink{
			URL:  utils.DocumentURLPrefix + card.DriveID,
			Text: card.Name,
		}

		names := card.Operations.Names()
		for j, name := range names {
			col := opColumn[name]
			row[col] = name
			pos := entity.GridPos{Row: rowIdx, Col: col}
			rec := card.Operations[name]

			switch rec.Status() {
			case entity.StatusCompleted:
				proj.Colors[pos] = entity.HighlightCompleted
				if name == entity.SentinelOperation {
					for c := 0; c < ClosedRowColumns; c++ {
						proj.Colors[entity.GridPos{Row: rowIdx, Col: c}] = entity.HighlightCompleted
					}
				} else if j+1 < len(names) {
					next := entity.GridPos{Row: rowIdx, Col: opColumn[names[j+1]]}
					proj.Colors[next] = entity.HighlightPending
				}
			case entity.StatusInWork:
				proj.Colors[pos] = entity.HighlightInWork
			}

			if rec.Comment != nil && *rec.Comment != "" {
				proj.Notes[pos] = *rec.Comment
			}
		}
		proj.Values = append(proj.Values, row)
	}
	return proj
}

// BuildProjectRollup renders one row per project with per-group counts
func (b *ProjectionBuilder) BuildProjectRollup(projects []string, cards []*entity.JobCard) *entity.SheetProjection {
	proj := entity.NewSheetProjection()

	header := []string{"Last update", b.stamp()}
	header = append(header, OperationGroups...)
	header = append(header, "HOURS_FROM_LAST_OP")
	proj.Values = append(proj.Values, header)

	for _, project := range projects {
		stats := b.deriver.Project(project, cards)
		if stats.TotalCards == 0 {
			continue
		}
		row := []string{project, fmt.Sprintf("%d/%d", stats.ClosedCards, stats.TotalCards)}
		for _, group := range OperationGroups {
			c := stats.Group(group)
			row = append(row, fmt.Sprintf("%d/%d/%d", c.InWork, c.Completed, c.ToDo))
		}
		row = append(row, FormatHours(stats.HoursSince))
		proj.Values = append(proj.Values, row)
	}
	return proj
}

// FormatHours renders hours with at most two decimals, or "" when absent
func FormatHours(h *float64) string {
	if h == nil {
		return ""
	}
	return strconv.FormatFloat(*h, 'f', -1, 64)
}
