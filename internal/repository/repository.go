package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"taskboard/internal/models"
)

// TaskRepository is the persistence boundary of the service. The service
// hands over already-validated tasks; implementations own durability and
// identifier uniqueness.
type TaskRepository interface {
	Create(ctx context.Context, t *models.Task) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Task, error)
	Update(ctx context.Context, t *models.Task) error
	Delete(ctx context.Context, id uuid.UUID) error

	// List returns a page of tasks ordered by created_at, then id.
	List(ctx context.Context, offset, limit int) ([]*models.Task, error)
	Count(ctx context.Context) (int64, error)

	CountPending(ctx context.Context) (int64, error)
	CountOverdue(ctx context.Context, before time.Time) (int64, error)
	CountCompletedBetween(ctx context.Context, from, to time.Time) (int64, error)

	HealthCheck(ctx context.Context) error
}
