package usecase

import (
	"context"
	"fmt"

	"workshop-service/internal/domain/entity"
	"workshop-service/internal/domain/repository"
	"workshop-service/pkg/logger"
	"workshop-service/pkg/metrics"
)

// PublishConfig names the target tabs of the master spreadsheet
type PublishConfig struct {
	MasterSheet   string
	ProjectsSheet string
}

// Publisher writes projections and single-cell annotations to the sheet sink
type Publisher struct {
	jobCards repository.JobCardRepository
	builder  *ProjectionBuilder
	sink     repository.SheetWriter
	cfg      PublishConfig
	metrics  *metrics.Metrics
	logger   logger.Logger
}

// NewPublisher creates a new publisher
func NewPublisher(
	jobCards repository.JobCardRepository,
	builder *ProjectionBuilder,
	sink repository.SheetWriter,
	cfg PublishConfig,
	metrics *metrics.Metrics,
	logger logger.Logger,
) *Publisher {
	return &Publisher{
		jobCards: jobCards,
		builder:  builder,
		sink:     sink,
		cfg:      cfg,
		metrics:  metrics,
		logger:   logger,
	}
}

// PublishMasterGrid replaces the master sheet with the job card grid
func (p *Publisher) PublishMasterGrid(ctx context.Context) (int, error) {
	cards, err := p.jobCards.GetAllActive(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to load active job cards: %w", err)
	}

	proj := p.builder.BuildJobCardGrid(cards)
	if err := p.sink.ReplaceSheet(ctx, p.cfg.MasterSheet, proj); err != nil {
		p.metrics.ErrorsCount.WithLabelValues("publish_master").Inc()
		return 0, fmt.Errorf("failed to write master sheet: %w", err)
	}

	p.metrics.SheetsPublished.WithLabelValues(p.cfg.MasterSheet).Inc()
	p.logger.Info("Master sheet published", "rows", len(proj.Values)-1, "colors", len(proj.Colors), "notes", len(proj.Notes))
	return len(proj.Values) - 1, nil
}

// PublishProjects replaces the projects sheet with the per-project rollup
func (p *Publisher) PublishProjects(ctx context.Context) (int, error) {
	projects, err := p.jobCards.GetDistinctProjects(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to load projects: %w", err)
	}
	cards, err := p.jobCards.GetAllActive(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to load active job cards: %w", err)
	}

	proj := p.builder.BuildProjectRollup(projects, cards)
	if err := p.sink.ReplaceSheet(ctx, p.cfg.ProjectsSheet, proj); err != nil {
		p.metrics.ErrorsCount.WithLabelValues("publish_projects").Inc()
		return 0, fmt.Errorf("failed to write projects sheet: %w", err)
	}

	p.metrics.SheetsPublished.WithLabelValues(p.cfg.ProjectsSheet).Inc()
	p.logger.Info("Projects sheet published", "projects", len(proj.Values)-1)
	return len(proj.Values) - 1, nil
}

// ColorCell paints one master sheet cell with a status color, or white
func (p *Publisher) ColorCell(ctx context.Context, pos entity.GridPos, h entity.Highlight) error {
	return p.sink.ColorCells(ctx, p.cfg.MasterSheet, pos, 1, 1, h)
}

// CloseJobCardRow paints the leading columns of a closed card's row
func (p *Publisher) CloseJobCardRow(ctx context.Context, row int) error {
	return p.sink.ColorCells(ctx, p.cfg.MasterSheet, entity.GridPos{Row: row}, 1, ClosedRowColumns, entity.HighlightCompleted)
}

// PlaceNote sets or clears one master sheet note
func (p *Publisher) PlaceNote(ctx context.Context, pos entity.GridPos, note *string) error {
	return p.sink.SetNote(ctx, p.cfg.MasterSheet, pos, note)
}
