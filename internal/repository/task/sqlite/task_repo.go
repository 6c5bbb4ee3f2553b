package sqlite

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"taskboard/internal/models"
	"taskboard/internal/repository"
)

// Storage is the GORM-backed repository over a local SQLite file. The schema
// is derived from the model tags via AutoMigrate.
type Storage struct {
	db *gorm.DB
}

func New(path string) (*Storage, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("opening sqlite database: %w", err)
	}

	if err := db.AutoMigrate(&models.Task{}); err != nil {
		return nil, fmt.Errorf("migrating sqlite schema: %w", err)
	}

	return &Storage{db: db}, nil
}

// NewWithDB wraps an existing gorm handle, used by tests with :memory:.
func NewWithDB(db *gorm.DB) (*Storage, error) {
	if err := db.AutoMigrate(&models.Task{}); err != nil {
		return nil, fmt.Errorf("migrating sqlite schema: %w", err)
	}
	return &Storage{db: db}, nil
}

func (s *Storage) HealthCheck(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("unwrapping sqlite handle: %w", err)
	}
	return sqlDB.PingContext(ctx)
}

func (s *Storage) Create(ctx context.Context, t *models.Task) error {
	if err := s.db.WithContext(ctx).Create(t).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return repository.ErrConflict
		}
		return fmt.Errorf("creating task: %w", err)
	}
	return nil
}

func (s *Storage) GetByID(ctx context.Context, id uuid.UUID) (*models.Task, error) {
	var t models.Task
	if err := s.db.WithContext(ctx).First(&t, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("finding task: %w", err)
	}
	return &t, nil
}

func (s *Storage) Update(ctx context.Context, t *models.Task) error {
	// Updates with a map so that NULLed due_date/completed_at are written;
	// struct-based Updates skips zero values.
	result := s.db.WithContext(ctx).Model(&models.Task{}).
		Where("id = ?", t.ID).
		Updates(map[string]any{
			"title":        t.Title,
			"description":  t.Description,
			"status":       t.Status,
			"priority":     t.Priority,
			"due_date":     t.DueDate,
			"completed_at": t.CompletedAt,
			"updated_at":   time.Now(),
		})
	if err := result.Error; err != nil {
		return fmt.Errorf("updating task: %w", err)
	}
	if result.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (s *Storage) Delete(ctx context.Context, id uuid.UUID) error {
	result := s.db.WithContext(ctx).Delete(&models.Task{}, "id = ?", id)
	if err := result.Error; err != nil {
		return fmt.Errorf("deleting task: %w", err)
	}
	if result.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (s *Storage) List(ctx context.Context, offset, limit int) ([]*models.Task, error) {
	var tasks []*models.Task
	err := s.db.WithContext(ctx).
		Order("created_at ASC, id ASC").
		Offset(offset).
		Limit(limit).
		Find(&tasks).Error
	if err != nil {
		return nil, fmt.Errorf("listing tasks: %w", err)
	}
	return tasks, nil
}

func (s *Storage) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.WithContext(ctx).Model(&models.Task{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("counting tasks: %w", err)
	}
	return n, nil
}

func (s *Storage) CountPending(ctx context.Context) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&models.Task{}).
		Where("status <> ? AND completed_at IS NULL", models.StatusDone).
		Count(&n).Error
	if err != nil {
		return 0, fmt.Errorf("counting pending tasks: %w", err)
	}
	return n, nil
}

func (s *Storage) CountOverdue(ctx context.Context, before time.Time) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&models.Task{}).
		Where("status <> ? AND completed_at IS NULL AND due_date < ?", models.StatusDone, before).
		Count(&n).Error
	if err != nil {
		return 0, fmt.Errorf("counting overdue tasks: %w", err)
	}
	return n, nil
}

func (s *Storage) CountCompletedBetween(ctx context.Context, from, to time.Time) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&models.Task{}).
		Where("completed_at >= ? AND completed_at <= ?", from, to).
		Count(&n).Error
	if err != nil {
		return 0, fmt.Errorf("counting completed tasks: %w", err)
	}
	return n, nil
}

func (s *Storage) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

var _ repository.TaskRepository = (*Storage)(nil)
