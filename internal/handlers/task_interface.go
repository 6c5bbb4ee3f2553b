package handlers

import (
	"context"

	"github.com/google/uuid"

	"taskboard/internal/models"
	"taskboard/internal/service"
)

type TaskService interface {
	Create(ctx context.Context, in service.CreateTaskInput) (*models.Task, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Task, error)
	Update(ctx context.Context, id uuid.UUID, in service.UpdateTaskInput) (*models.Task, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, page, perPage int) ([]*models.Task, *service.Pagination, error)
	Stats(ctx context.Context) (*models.DashboardStats, error)
	HealthCheck(ctx context.Context) error
}
