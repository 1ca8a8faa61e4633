package usecase

import (
	"context"
	"fmt"
	"time"

	"workshop-service/internal/domain/entity"
	"workshop-service/internal/domain/repository"
	"workshop-service/pkg/logger"
	"workshop-service/pkg/metrics"
)

// UpdateResult reports what a direct operation update did
type UpdateResult struct {
	Applied bool   `json:"applied"`
	Reason  string `json:"reason,omitempty"`
}

// Reasons an update was not applied
const (
	ReasonMissingField     = "missing field "
	ReasonNoFields         = "no operation fields in payload"
	ReasonUnknownOperation = "job card or operation not found"
)

// OperationManager handles direct edits of operation records and their audit trail
type OperationManager struct {
	jobCards repository.JobCardRepository
	opLog    repository.OperationLogRepository
	metrics  *metrics.Metrics
	logger   logger.Logger
	now      func() time.Time
}

// NewOperationManager creates a new operation manager
func NewOperationManager(
	jobCards repository.JobCardRepository,
	opLog repository.OperationLogRepository,
	metrics *metrics.Metrics,
	logger logger.Logger,
	now func() time.Time,
) *OperationManager {
	if now == nil {
		now = time.Now
	}
	return &OperationManager{
		jobCards: jobCards,
		opLog:    opLog,
		metrics:  metrics,
		logger:   logger,
		now:      now,
	}
}

// ApplyOperationUpdate writes the present fields into the addressed operation
// and appends the raw payload to the operation log.
//
// Payloads missing jobCardCode or operation, or addressing an unknown card or
// operation, change nothing and are reported as not applied. They are still logged.
func (m *OperationManager) ApplyOperationUpdate(ctx context.Context, update *entity.OperationUpdate) (*UpdateResult, error) {
	result := &UpdateResult{}

	switch missing := update.MissingAddress(); {
	case missing != "":
		result.Reason = ReasonMissingField + missing
	case !update.HasFields():
		result.Reason = ReasonNoFields
	default:
		applied, err := m.jobCards.ApplyOperationUpdate(ctx, update)
		if err != nil {
			m.metrics.ErrorsCount.WithLabelValues("apply_operation_update").Inc()
			return nil, fmt.Errorf("failed to update operation: %w", err)
		}
		result.Applied = applied
		if !applied {
			result.Reason = ReasonUnknownOperation
		}
	}

	if err := m.opLog.Append(ctx, &entity.OperationLogEntry{
		MessageDttm: m.now(),
		Message:     update.Raw,
	}); err != nil {
		m.metrics.ErrorsCount.WithLabelValues("operation_log").Inc()
		return nil, fmt.Errorf("failed to append operation log: %w", err)
	}

	outcome := "applied"
	if !result.Applied {
		outcome = "ignored"
		m.logger.Warn("Operation update not applied",
			"jobCardCode", update.JobCardCode,
			"operation", update.Operation,
			"reason", result.Reason)
	}
	m.metrics.OperationUpdates.WithLabelValues(outcome).Inc()

	return result, nil
}

// GetJobCard returns one job card or repository.ErrNotFound
func (m *OperationManager) GetJobCard(ctx context.Context, driveID string) (*entity.JobCard, error) {
	return m.jobCards.GetByKey(ctx, driveID)
}

// GetOperation returns one operation record or repository.ErrNotFound
func (m *OperationManager) GetOperation(ctx context.Context, driveID, operation string) (*entity.OperationRecord, error) {
	card, err := m.jobCards.GetByKey(ctx, driveID)
	if err != nil {
		return nil, err
	}
	rec, ok := card.Operations[operation]
	if !ok {
		return nil, fmt.Errorf("operation %q of %s: %w", operation, driveID, repository.ErrNotFound)
	}
	return &rec, nil
}
