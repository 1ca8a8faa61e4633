package usecase

import (
	"regexp"
	"time"

	"workshop-service/internal/domain/entity"
	"workshop-service/pkg/utils"
)

// OperationGroups are the rollup columns, in display order
var OperationGroups = []string{"COAT", "MECH", "OTK", "NDT", "CEX_TO", "OUT", entity.SentinelOperation}

var operationPrefix = regexp.MustCompile(`^\d+_`)

// NormalizeOperationGroup strips the leading ordinal ("10_COAT" -> "COAT").
// The sentinel is returned unchanged.
func NormalizeOperationGroup(name string) string {
	if name == entity.SentinelOperation {
		return name
	}
	return operationPrefix.ReplaceAllString(name, "")
}

// StatusCounts tallies operations by lifecycle state
type StatusCounts struct {
	InWork    int
	Completed int
	ToDo      int
}

// Add counts one status
func (c *StatusCounts) Add(s entity.OperationStatus) {
	switch s {
	case entity.StatusCompleted:
		c.Completed++
	case entity.StatusInWork:
		c.InWork++
	default:
		c.ToDo++
	}
}

// Total is the number of operations counted
func (c StatusCounts) Total() int {
	return c.InWork + c.Completed + c.ToDo
}

// JobCardStats is the per-card aggregation
type JobCardStats struct {
	Counts       StatusCounts
	Groups       map[string]*StatusCounts
	Closed       bool
	LastActivity *time.Time
	HoursSince   *float64
}

// ProjectStats is the per-project aggregation over active cards
type ProjectStats struct {
	Project      string
	Groups       map[string]*StatusCounts
	ClosedCards  int
	TotalCards   int
	LastActivity *time.Time
	HoursSince   *float64
}

// Group returns the counts for a group, zero when the group never appeared
func (p *ProjectStats) Group(name string) StatusCounts {
	if c, ok := p.Groups[name]; ok {
		return *c
	}
	return StatusCounts{}
}

// StatusDeriver classifies operations and aggregates them
type StatusDeriver struct {
	now func() time.Time
	loc *time.Location
}

// NewStatusDeriver creates a deriver. Operation timestamps are read in loc.
func NewStatusDeriver(now func() time.Time, loc *time.Location) *StatusDeriver {
	if now == nil {
		now = time.Now
	}
	if loc == nil {
		loc = time.UTC
	}
	return &StatusDeriver{now: now, loc: loc}
}

// LastActivity returns the latest start or end timestamp across the operations
func (d *StatusDeriver) LastActivity(ops entity.Operations) *time.Time {
	var last *time.Time
	for _, rec := range ops {
		for _, raw := range []*string{rec.StartDttm, rec.EndDttm} {
			if raw == nil {
				continue
			}
			t, ok := utils.ParseOperationTime(*raw, d.loc)
			if !ok {
				continue
			}
			if last == nil || t.After(*last) {
				last = &t
			}
		}
	}
	return last
}

// HoursSince returns hours elapsed since t, or nil when t is nil
func (d *StatusDeriver) HoursSince(t *time.Time) *float64 {
	if t == nil {
		return nil
	}
	h := utils.HoursBetween(*t, d.now())
	return &h
}

// JobCard aggregates one card
func (d *StatusDeriver) JobCard(card *entity.JobCard) JobCardStats {
	stats := JobCardStats{
		Groups: make(map[string]*StatusCounts),
		Closed: card.Operations.IsClosed(),
	}
	for name, rec := range card.Operations {
		status := rec.Status()
		stats.Counts.Add(status)
		group := NormalizeOperationGroup(name)
		if stats.Groups[group] == nil {
			stats.Groups[group] = &StatusCounts{}
		}
		stats.Groups[group].Add(status)
	}
	stats.LastActivity = d.LastActivity(card.Operations)
	stats.HoursSince = d.HoursSince(stats.LastActivity)
	return stats
}

// Project aggregates the active cards labelled with project
func (d *StatusDeriver) Project(project string, cards []*entity.JobCard) ProjectStats {
	stats := ProjectStats{
		Project: project,
		Groups:  make(map[string]*StatusCounts),
	}
	for _, card := range cards {
		if !card.IsActive || card.ProjectName() != project {
			continue
		}
		stats.TotalCards++

		cardStats := d.JobCard(card)
		if cardStats.Closed {
			stats.ClosedCards++
		}
		for group, counts := range cardStats.Groups {
			if stats.Groups[group] == nil {
				stats.Groups[group] = &StatusCounts{}
			}
			stats.Groups[group].InWork += counts.InWork
			stats.Groups[group].Completed += counts.Completed
			stats.Groups[group].ToDo += counts.ToDo
		}
		if cardStats.LastActivity != nil &&
			(stats.LastActivity == nil || cardStats.LastActivity.After(*stats.LastActivity)) {
			stats.LastActivity = cardStats.LastActivity
		}
	}
	stats.HoursSince = d.HoursSince(stats.LastActivity)
	return stats
}

// ClosedFraction is the share of cards whose sentinel operation is completed
func (p *ProjectStats) ClosedFraction() float64 {
	if p.TotalCards == 0 {
		return 0
	}
	return float64(p.ClosedCards) / float64(p.TotalCards)
}
