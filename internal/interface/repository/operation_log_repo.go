package repository

import (
	"context"
	"time"

	"workshop-service/internal/domain/entity"
	"workshop-service/internal/domain/repository"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// GormOperationLogRepository implements the OperationLogRepository interface
type GormOperationLogRepository struct {
	db *gorm.DB
}

// NewGormOperationLogRepository creates a new GORM operation log repository
func NewGormOperationLogRepository(db *gorm.DB) repository.OperationLogRepository {
	return &GormOperationLogRepository{
		db: db,
	}
}

// OperationLog GORM model for database mapping. The id is generated by the database.
type OperationLog struct {
	ID          int            `gorm:"column:id;primaryKey;<-:false"`
	MessageDttm time.Time      `gorm:"column:message_dttm"`
	Message     datatypes.JSON `gorm:"column:message"`
}

// TableName overrides the default table name
func (OperationLog) TableName() string {
	return "operation_log"
}

// Append inserts one log entry
func (r *GormOperationLogRepository) Append(ctx context.Context, entry *entity.OperationLogEntry) error {
	model := &OperationLog{
		MessageDttm: entry.MessageDttm,
		Message:     datatypes.JSON(entry.Message),
	}
	return classifyError(r.db.WithContext(ctx).Create(model).Error)
}
