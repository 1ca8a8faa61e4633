package repository

import (
	"context"

	"workshop-service/internal/domain/entity"
)

// JobCardRepository defines the interface for job card persistence
type JobCardRepository interface {
	GetByKey(ctx context.Context, driveID string) (*entity.JobCard, error)
	GetAllActive(ctx context.Context) ([]*entity.JobCard, error)
	GetSyncStates(ctx context.Context) (map[string]entity.SyncState, error)
	GetDistinctProjects(ctx context.Context) ([]string, error)
	Upsert(ctx context.Context, card *entity.JobCard) error
	SetInactive(ctx context.Context, driveIDs []string) (int64, error)
	ApplyOperationUpdate(ctx context.Context, update *entity.OperationUpdate) (bool, error)
	Ping(ctx context.Context) error
}
