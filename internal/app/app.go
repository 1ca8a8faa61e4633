// Package app wires the collaborators shared by the server and the CLI.
package app

import (
	"context"
	"fmt"
	"time"

	"workshop-service/internal/domain/repository"
	"workshop-service/internal/infrastructure/config"
	"workshop-service/internal/infrastructure/oauth"
	"workshop-service/internal/infrastructure/persistence"
	"workshop-service/internal/interface/google"
	repo "workshop-service/internal/interface/repository"
	"workshop-service/internal/usecase"
	"workshop-service/pkg/logger"
	"workshop-service/pkg/metrics"
	"workshop-service/pkg/utils"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

const metricsNamespace = "workshop"

// App holds every long-lived collaborator, built once at startup
type App struct {
	Config   *config.Config
	Logger   logger.Logger
	Metrics  *metrics.Metrics
	Registry *prometheus.Registry

	JobCards  repository.JobCardRepository
	OpLog     repository.OperationLogRepository
	Documents repository.DocumentSource
	Sheets    repository.SheetWriter

	Scheduler  *usecase.SyncScheduler
	Publisher  *usecase.Publisher
	Operations *usecase.OperationManager
	Dispatcher *usecase.Dispatcher

	db          *gorm.DB
	mongoClient *mongo.Client
}

// New connects to the stores and Google APIs and assembles the use cases
func New(ctx context.Context, cfg *config.Config, log logger.Logger) (*App, error) {
	a := &App{
		Config:   cfg,
		Logger:   log,
		Registry: prometheus.NewRegistry(),
	}
	a.Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	a.Metrics = metrics.NewMetricsWithRegistry(metricsNamespace, a.Registry)

	log.Info("Connecting to PostgreSQL")
	db, err := persistence.NewPostgresDB(ctx, cfg.DatabaseURL, persistence.PostgresOptions{
		MaxOpenConns:   cfg.DBMaxOpenConns,
		MinIdleConns:   cfg.DBMinIdleConns,
		AcquireTimeout: cfg.DBAcquireTimeout,
	}, log)
	if err != nil {
		return nil, err
	}
	a.db = db
	a.JobCards = repo.NewGormJobCardRepository(db, cfg.DBAcquireTimeout)

	switch cfg.OpLogBackend {
	case config.OpLogMongo:
		log.Info("Connecting to MongoDB for the operation log")
		client, mdb, err := persistence.NewMongoClient(ctx, cfg.MongoURI, cfg.MongoDB, cfg.MongoUser, cfg.MongoPassword)
		if err != nil {
			a.Close(ctx)
			return nil, err
		}
		a.mongoClient = client
		a.OpLog = repo.NewMongoOperationLogRepository(mdb)
	default:
		a.OpLog = repo.NewGormOperationLogRepository(db)
	}

	creds, err := oauth.NewGoogleCredentials(ctx, cfg.GoogleCredsPath, log)
	if err != nil {
		a.Close(ctx)
		return nil, err
	}
	driveService, err := creds.DriveService(ctx)
	if err != nil {
		a.Close(ctx)
		return nil, err
	}
	sheetsService, err := creds.SheetsService(ctx)
	if err != nil {
		a.Close(ctx)
		return nil, err
	}
	a.Documents = google.NewDocumentSource(driveService, sheetsService, log)
	a.Sheets = google.NewSheetWriter(sheetsService, cfg.MasterSpreadsheetID, log)

	a.assemble(time.Now)
	return a, nil
}

// assemble builds the use cases on top of the ports already set on a
func (a *App) assemble(now func() time.Time) {
	cfg := a.Config
	loc := cfg.Location()

	a.Scheduler = usecase.NewSyncScheduler(
		a.Documents,
		a.JobCards,
		utils.NewJobCardExtractor(utils.DefaultJobCardLayout()),
		usecase.SyncConfig{
			ProjectsFolderID: cfg.ProjectsFolderID,
			InWorkMarker:     cfg.InWorkMarker,
			JobCardRange:     cfg.JobCardRange,
			Concurrency:      cfg.SyncConcurrency,
		},
		a.Metrics,
		a.Logger,
	)

	deriver := usecase.NewStatusDeriver(now, loc)
	a.Publisher = usecase.NewPublisher(
		a.JobCards,
		usecase.NewProjectionBuilder(deriver, now, loc),
		a.Sheets,
		usecase.PublishConfig{
			MasterSheet:   cfg.MasterSheetTitle,
			ProjectsSheet: cfg.ProjectsSheetTitle,
		},
		a.Metrics,
		a.Logger,
	)
	a.Operations = usecase.NewOperationManager(a.JobCards, a.OpLog, a.Metrics, a.Logger, now)
	a.Dispatcher = usecase.NewDispatcher(a.Scheduler, a.Publisher)
}

// RefreshAll runs a sync pass and republishes both projections
func (a *App) RefreshAll(ctx context.Context) error {
	if _, err := a.Scheduler.Run(ctx); err != nil {
		return fmt.Errorf("sync: %w", err)
	}
	if _, err := a.Publisher.PublishMasterGrid(ctx); err != nil {
		return fmt.Errorf("publish master grid: %w", err)
	}
	if _, err := a.Publisher.PublishProjects(ctx); err != nil {
		return fmt.Errorf("publish projects: %w", err)
	}
	return nil
}

// Close releases the store connections
func (a *App) Close(ctx context.Context) {
	if a.mongoClient != nil {
		if err := a.mongoClient.Disconnect(ctx); err != nil {
			a.Logger.Error("MongoDB disconnect error", "error", err)
		}
	}
	if a.db != nil {
		if err := persistence.ClosePostgresDB(a.db); err != nil {
			a.Logger.Error("PostgreSQL close error", "error", err)
		}
	}
}
