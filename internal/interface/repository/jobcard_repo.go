package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"workshop-service/internal/domain/entity"
	"workshop-service/internal/domain/repository"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormJobCardRepository implements the JobCardRepository interface
type GormJobCardRepository struct {
	db      *gorm.DB
	timeout time.Duration
}

// NewGormJobCardRepository creates a new GORM job card repository.
// Every call is bounded by timeout, which covers waiting for a pooled connection.
func NewGormJobCardRepository(db *gorm.DB, timeout time.Duration) repository.JobCardRepository {
	return &GormJobCardRepository{
		db:      db,
		timeout: timeout,
	}
}

// JobCards GORM model for database mapping
type JobCards struct {
	DriveID      string         `gorm:"column:drive_id;primaryKey"`
	Name         string         `gorm:"column:name"`
	CreationDttm time.Time      `gorm:"column:creation_dttm"`
	PartNumber   string         `gorm:"column:part_number"`
	SerialNumber *string        `gorm:"column:serial_number"`
	ModifiedDttm time.Time      `gorm:"column:modified_dttm"`
	Operations   datatypes.JSON `gorm:"column:operations"`
	Project      *string        `gorm:"column:project"`
	IsActive     bool           `gorm:"column:is_active"`
}

// TableName overrides the default table name
func (JobCards) TableName() string {
	return "job_cards"
}

type syncStateRow struct {
	DriveID      string    `gorm:"column:drive_id"`
	ModifiedDttm time.Time `gorm:"column:modified_dttm"`
	IsActive     bool      `gorm:"column:is_active"`
	Project      *string   `gorm:"column:project"`
}

func (r *GormJobCardRepository) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, r.timeout)
}

// GetByKey finds a job card by its drive id
func (r *GormJobCardRepository) GetByKey(ctx context.Context, driveID string) (*entity.JobCard, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var model JobCards
	if err := r.db.WithContext(ctx).Where("drive_id = ?", driveID).First(&model).Error; err != nil {
		return nil, classifyError(err)
	}
	return toJobCard(&model)
}

// GetAllActive returns the active job cards ordered by project, then name
func (r *GormJobCardRepository) GetAllActive(ctx context.Context) ([]*entity.JobCard, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var models []JobCards
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("project").
		Order("name").
		Find(&models).Error
	if err != nil {
		return nil, classifyError(err)
	}

	cards := make([]*entity.JobCard, 0, len(models))
	for i := range models {
		card, err := toJobCard(&models[i])
		if err != nil {
			return nil, err
		}
		cards = append(cards, card)
	}
	return cards, nil
}

// GetSyncStates returns the modification time and active flag of every stored card
func (r *GormJobCardRepository) GetSyncStates(ctx context.Context) (map[string]entity.SyncState, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var rows []syncStateRow
	err := r.db.WithContext(ctx).
		Model(&JobCards{}).
		Select("drive_id", "modified_dttm", "is_active", "project").
		Find(&rows).Error
	if err != nil {
		return nil, classifyError(err)
	}

	states := make(map[string]entity.SyncState, len(rows))
	for _, row := range rows {
		state := entity.SyncState{
			ModifiedDttm: row.ModifiedDttm,
			IsActive:     row.IsActive,
		}
		if row.Project != nil {
			state.Project = *row.Project
		}
		states[row.DriveID] = state
	}
	return states, nil
}

// GetDistinctProjects returns the projects of active cards in ascending order
func (r *GormJobCardRepository) GetDistinctProjects(ctx context.Context) ([]string, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var projects []string
	err := r.db.WithContext(ctx).
		Model(&JobCards{}).
		Where("is_active = ? AND project IS NOT NULL", true).
		Distinct().
		Order("project").
		Pluck("project", &projects).Error
	if err != nil {
		return nil, classifyError(err)
	}
	return projects, nil
}

// Upsert inserts a job card or overwrites every column except creation_dttm
func (r *GormJobCardRepository) Upsert(ctx context.Context, card *entity.JobCard) error {
	model, err := fromJobCard(card)
	if err != nil {
		return err
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	err = r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "drive_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"name",
			"part_number",
			"serial_number",
			"modified_dttm",
			"operations",
			"project",
			"is_active",
		}),
	}).Create(model).Error
	return classifyError(err)
}

// SetInactive flags the given cards inactive in a single statement
func (r *GormJobCardRepository) SetInactive(ctx context.Context, driveIDs []string) (int64, error) {
	if len(driveIDs) == 0 {
		return 0, nil
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	result := r.db.WithContext(ctx).
		Model(&JobCards{}).
		Where("drive_id IN ?", driveIDs).
		Update("is_active", false)
	if result.Error != nil {
		return 0, classifyError(result.Error)
	}
	return result.RowsAffected, nil
}

// applyOperationSQL shallow-merges a patch into one operation record.
// Cards without the addressed operation are left untouched.
const applyOperationSQL = `
UPDATE job_cards
SET operations = jsonb_set(
        operations::jsonb,
        ARRAY[?::text],
        COALESCE(operations::jsonb -> ?::text, '{}'::jsonb) || ?::jsonb,
        true
    )::json
WHERE drive_id = ?
  AND jsonb_exists(operations::jsonb, ?::text)`

// ApplyOperationUpdate writes the present fields of update and reports whether a row changed
func (r *GormJobCardRepository) ApplyOperationUpdate(ctx context.Context, update *entity.OperationUpdate) (bool, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	result, err := applyOperation(r.db.WithContext(ctx), update)
	if err != nil {
		return false, err
	}
	if result.Error != nil {
		return false, classifyError(result.Error)
	}
	return result.RowsAffected > 0, nil
}

// applyOperation executes the shallow merge; fields set to null in the
// payload are stored as JSON null
func applyOperation(db *gorm.DB, update *entity.OperationUpdate) (*gorm.DB, error) {
	patch, err := json.Marshal(update.Fields())
	if err != nil {
		return nil, fmt.Errorf("failed to encode operation patch: %w", err)
	}
	return db.Exec(applyOperationSQL,
		update.Operation,
		update.Operation,
		string(patch),
		update.JobCardCode,
		update.Operation,
	), nil
}

// Ping checks that the database answers
func (r *GormJobCardRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()
	return classifyError(sqlDB.PingContext(ctx))
}

func toJobCard(m *JobCards) (*entity.JobCard, error) {
	card := &entity.JobCard{
		DriveID:      m.DriveID,
		Name:         m.Name,
		CreationDttm: m.CreationDttm,
		PartNumber:   m.PartNumber,
		SerialNumber: m.SerialNumber,
		ModifiedDttm: m.ModifiedDttm,
		Project:      m.Project,
		IsActive:     m.IsActive,
	}
	if len(m.Operations) > 0 && string(m.Operations) != "null" {
		if err := json.Unmarshal(m.Operations, &card.Operations); err != nil {
			return nil, fmt.Errorf("failed to decode operations of %s: %w", m.DriveID, err)
		}
	}
	return card, nil
}

func fromJobCard(card *entity.JobCard) (*JobCards, error) {
	m := &JobCards{
		DriveID:      card.DriveID,
		Name:         card.Name,
		CreationDttm: card.CreationDttm.UTC(),
		PartNumber:   card.PartNumber,
		SerialNumber: card.SerialNumber,
		ModifiedDttm: card.ModifiedDttm.UTC(),
		Project:      card.Project,
		IsActive:     card.IsActive,
	}
	if card.Operations != nil {
		ops, err := json.Marshal(card.Operations)
		if err != nil {
			return nil, fmt.Errorf("failed to encode operations of %s: %w", card.DriveID, err)
		}
		m.Operations = datatypes.JSON(ops)
	}
	return m, nil
}
