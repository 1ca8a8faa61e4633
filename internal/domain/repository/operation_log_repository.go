package repository

import (
	"context"

	"workshop-service/internal/domain/entity"
)

// OperationLogRepository defines the interface for the append-only audit log
type OperationLogRepository interface {
	Append(ctx context.Context, entry *entity.OperationLogEntry) error
}
