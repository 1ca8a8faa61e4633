package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"workshop-service/internal/domain/entity"
	"workshop-service/internal/domain/repository"
	"workshop-service/pkg/logger"
	"workshop-service/pkg/metrics"
	"workshop-service/pkg/utils"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// SyncConfig locates the watched folder hierarchy
type SyncConfig struct {
	ProjectsFolderID string
	InWorkMarker     string
	JobCardRange     string
	Concurrency      int
}

// FailedDocument is a document skipped during a sync pass
type FailedDocument struct {
	DriveID string `json:"driveId"`
	Project string `json:"project"`
	Error   string `json:"error"`
}

// FailedFolder is a folder whose listing failed during a sync pass.
// Cards of its project are neither refreshed nor inactivated in that pass.
type FailedFolder struct {
	FolderID string `json:"folderId"`
	Project  string `json:"project"`
	Error    string `json:"error"`
}

// SyncReport summarises one sync pass
type SyncReport struct {
	RunID         string           `json:"runId"`
	Discovered    int              `json:"discovered"`
	Updated       []string         `json:"updated"`
	Failed        []FailedDocument `json:"failed"`
	FailedFolders []FailedFolder   `json:"failedFolders"`
	Inactivated   []string         `json:"inactivated"`
	Duration      time.Duration    `json:"duration"`
}

// SyncScheduler keeps the stored job cards consistent with the Drive hierarchy
type SyncScheduler struct {
	source    repository.DocumentSource
	jobCards  repository.JobCardRepository
	extractor *utils.JobCardExtractor
	cfg       SyncConfig
	metrics   *metrics.Metrics
	logger    logger.Logger
}

// NewSyncScheduler creates a new sync scheduler
func NewSyncScheduler(
	source repository.DocumentSource,
	jobCards repository.JobCardRepository,
	extractor *utils.JobCardExtractor,
	cfg SyncConfig,
	metrics *metrics.Metrics,
	logger logger.Logger,
) *SyncScheduler {
	if cfg.Concurrency < 1 {
		cfg.Concurrency = 1
	}
	return &SyncScheduler{
		source:    source,
		jobCards:  jobCards,
		extractor: extractor,
		cfg:       cfg,
		metrics:   metrics,
		logger:    logger,
	}
}

// Run performs one full sync pass.
//
// A failing document or project folder is logged and reported but does not
// stop the pass; stored cards of a project that could not be listed are kept
// active. Failing to list the root folder or to read the store aborts the
// pass before anything is inactivated.
func (s *SyncScheduler) Run(ctx context.Context) (*SyncReport, error) {
	started := time.Now()
	report := &SyncReport{RunID: uuid.NewString()}
	log := s.logger.With("syncRun", report.RunID)

	log.Info("Starting sync pass", "projectsFolder", s.cfg.ProjectsFolderID)

	docs, failedFolders, err := s.Discover(ctx)
	if err != nil {
		s.metrics.ErrorsCount.WithLabelValues("discover").Inc()
		return nil, fmt.Errorf("failed to enumerate job cards: %w", err)
	}
	report.Discovered = len(docs)
	report.FailedFolders = failedFolders

	partial := make(map[string]struct{}, len(failedFolders))
	for _, f := range failedFolders {
		log.Error("Failed to list folder", "folderId", f.FolderID, "project", f.Project, "error", f.Error)
		s.metrics.ErrorsCount.WithLabelValues("list_folder").Inc()
		partial[f.Project] = struct{}{}
	}

	states, err := s.jobCards.GetSyncStates(ctx)
	if err != nil {
		s.metrics.ErrorsCount.WithLabelValues("sync_states").Inc()
		return nil, fmt.Errorf("failed to load stored job cards: %w", err)
	}

	pending := NeedsProcessing(docs, states)
	log.Info("Job cards to update", "discovered", len(docs), "toUpdate", len(pending))

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.Concurrency)

	for _, doc := range pending {
		g.Go(func() error {
			err := s.ProcessDocument(gctx, doc)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				log.Error("Failed to process job card", "driveId", doc.ID, "project", doc.Project, "error", err)
				s.metrics.DocumentsFailed.Inc()
				report.Failed = append(report.Failed, FailedDocument{
					DriveID: doc.ID,
					Project: doc.Project,
					Error:   err.Error(),
				})
				return nil
			}
			s.metrics.DocumentsProcessed.Inc()
			report.Updated = append(report.Updated, doc.ID)
			return nil
		})
	}
	_ = g.Wait()
	if err := ctx.Err(); err != nil {
		return report, err
	}

	vanished := Vanished(docs, states, partial)
	if len(vanished) > 0 {
		n, err := s.jobCards.SetInactive(ctx, vanished)
		if err != nil {
			s.metrics.ErrorsCount.WithLabelValues("set_inactive").Inc()
			return report, fmt.Errorf("failed to inactivate job cards: %w", err)
		}
		s.metrics.JobCardsInactivated.Add(float64(n))
		report.Inactivated = vanished
	}

	sort.Strings(report.Updated)
	report.Duration = time.Since(started)
	s.metrics.SyncPasses.Inc()
	s.metrics.SyncDuration.Observe(report.Duration.Seconds())

	log.Info("Sync pass completed",
		"discovered", report.Discovered,
		"updated", len(report.Updated),
		"failed", len(report.Failed),
		"failedFolders", len(report.FailedFolders),
		"inactivated", len(report.Inactivated))

	return report, nil
}

// Discover walks projects -> in-work folders -> job card documents.
//
// Only a failure to list the root folder is returned as an error. A project
// or in-work folder that cannot be listed is reported and skipped.
func (s *SyncScheduler) Discover(ctx context.Context) ([]entity.DocumentEntry, []FailedFolder, error) {
	projects, err := s.source.ListFolder(ctx, s.cfg.ProjectsFolderID, entity.FolderFilter{})
	if err != nil {
		return nil, nil, fmt.Errorf("list projects folder: %w", err)
	}

	var (
		docs   []entity.DocumentEntry
		failed []FailedFolder
	)
	for _, project := range projects {
		inWork, err := s.source.ListFolder(ctx, project.ID, entity.FolderFilter{
			FoldersOnly:  true,
			NameContains: s.cfg.InWorkMarker,
		})
		if err != nil {
			failed = append(failed, FailedFolder{
				FolderID: project.ID,
				Project:  project.Name,
				Error:    fmt.Sprintf("list in-work folders: %v", err),
			})
			continue
		}

		for _, folder := range inWork {
			files, err := s.source.ListFolder(ctx, folder.ID, entity.FolderFilter{})
			if err != nil {
				failed = append(failed, FailedFolder{
					FolderID: folder.ID,
					Project:  project.Name,
					Error:    fmt.Sprintf("list job cards of %s: %v", folder.Name, err),
				})
				continue
			}
			for _, f := range files {
				f.Project = project.Name
				docs = append(docs, f)
			}
		}
	}
	return docs, failed, nil
}

// NeedsProcessing returns the documents that are new, changed, or stored inactive
func NeedsProcessing(docs []entity.DocumentEntry, states map[string]entity.SyncState) []entity.DocumentEntry {
	var out []entity.DocumentEntry
	for _, doc := range docs {
		state, ok := states[doc.ID]
		if !ok || !state.ModifiedDttm.Equal(doc.ModifiedTime) || !state.IsActive {
			out = append(out, doc)
		}
	}
	return out
}

// Vanished returns the active stored ids not observed in the current
// enumeration, sorted. Cards of projects listed in partial are left alone.
func Vanished(docs []entity.DocumentEntry, states map[string]entity.SyncState, partial map[string]struct{}) []string {
	seen := make(map[string]struct{}, len(docs))
	for _, doc := range docs {
		seen[doc.ID] = struct{}{}
	}
	var out []string
	for id, state := range states {
		if !state.IsActive {
			continue
		}
		if _, ok := partial[state.Project]; ok {
			continue
		}
		if _, ok := seen[id]; !ok {
			out = append(out, id)
		}
	}
	sort.Strings(out)
	return out
}

// ProcessDocument extracts, reconciles and upserts one job card
func (s *SyncScheduler) ProcessDocument(ctx context.Context, doc entity.DocumentEntry) error {
	grid, err := s.readGrid(ctx, doc.ID)
	if err != nil {
		return err
	}
	extracted := s.extractor.Extract(grid)

	var stored entity.Operations
	creation := doc.ModifiedTime
	existing, err := s.jobCards.GetByKey(ctx, doc.ID)
	switch {
	case err == nil:
		stored = existing.Operations
		creation = existing.CreationDttm
	case errors.Is(err, repository.ErrNotFound):
	default:
		return fmt.Errorf("load stored job card: %w", err)
	}

	card := &entity.JobCard{
		DriveID:      doc.ID,
		Name:         extracted.Name,
		CreationDttm: creation,
		PartNumber:   extracted.PartNumber,
		SerialNumber: extracted.SerialNumber,
		ModifiedDttm: doc.ModifiedTime,
		Operations:   Reconcile(stored, extracted.Operations),
		IsActive:     true,
	}
	if doc.Project != "" {
		project := doc.Project
		card.Project = &project
	}

	if err := s.jobCards.Upsert(ctx, card); err != nil {
		return fmt.Errorf("upsert job card: %w", err)
	}
	s.logger.Debug("Job card synced", "driveId", doc.ID, "operations", len(card.Operations))
	return nil
}

// readGrid tries the structured read first and falls back to decoding the
// raw workbook only when the source rejects the document format
func (s *SyncScheduler) readGrid(ctx context.Context, id string) (entity.Grid, error) {
	grid, err := s.source.ReadGrid(ctx, id, s.cfg.JobCardRange)
	if err == nil {
		return grid, nil
	}
	if !errors.Is(err, repository.ErrUnsupportedFormat) {
		return nil, fmt.Errorf("read grid: %w", err)
	}

	s.logger.Info("Structured read rejected, decoding workbook", "driveId", id)
	body, err := s.source.ReadRawBytes(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("download workbook: %w", err)
	}
	defer body.Close()

	grid, err = utils.DecodeWorkbook(body)
	if err != nil {
		return nil, fmt.Errorf("decode workbook: %w", err)
	}
	return grid, nil
}
