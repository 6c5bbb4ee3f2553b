package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"taskboard/internal/logger"
	"taskboard/internal/models"
	"taskboard/internal/repository"
)

const statsCacheKey = "stats:dashboard"

// StatsCache is the optional cache-aside collaborator for dashboard stats.
type StatsCache interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any) error
	Delete(ctx context.Context, key string) error
}

type TaskService struct {
	repo  repository.TaskRepository
	cache StatsCache
	now   func() time.Time
}

type Option func(*TaskService)

func WithStatsCache(c StatsCache) Option {
	return func(s *TaskService) {
		s.cache = c
	}
}

// WithClock overrides the time source, used by tests.
func WithClock(now func() time.Time) Option {
	return func(s *TaskService) {
		s.now = now
	}
}

func NewTaskService(repo repository.TaskRepository, opts ...Option) *TaskService {
	s := &TaskService{
		repo: repo,
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type CreateTaskInput struct {
	Title       string
	Description string
	Status      *models.Status
	Priority    *models.Priority
	DueDate     *string
}

type UpdateTaskInput struct {
	Title       *string
	Description *string
	Status      *models.Status
	Priority    *models.Priority
	DueDate     *string
}

type Pagination struct {
	Page       int   `json:"page"`
	Total      int64 `json:"total"`
	PerPage    int   `json:"perPage"`
	TotalPages int   `json:"totalPages"`
}

func (s *TaskService) Create(ctx context.Context, in CreateTaskInput) (*models.Task, error) {
	var dueDate *time.Time
	if in.DueDate != nil {
		normalized, err := NormalizeDueDate(*in.DueDate, false, s.now())
		if err != nil {
			return nil, err
		}
		dueDate = &normalized
	}

	t := &models.Task{
		ID:          uuid.New(),
		Title:       in.Title,
		Description: in.Description,
		Status:      models.StatusToDo,
		Priority:    models.PriorityMedium,
		DueDate:     dueDate,
	}
	if in.Status != nil {
		t.Status = *in.Status
	}
	if in.Priority != nil {
		t.Priority = *in.Priority
	}
	if t.Status == models.StatusDone {
		completedAt := s.now()
		t.CompletedAt = &completedAt
	}

	if err := s.repo.Create(ctx, t); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, NewConflict("a task with this identifier already exists")
		}
		return nil, fmt.Errorf("creating task: %w", err)
	}

	s.invalidateStats(ctx)
	return t, nil
}

func (s *TaskService) GetByID(ctx context.Context, id uuid.UUID) (*models.Task, error) {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			logger.Info("Service: task not found", zap.String("task_id", id.String()))
			return nil, NewTaskNotFound(id.String())
		}
		return nil, fmt.Errorf("fetching task: %w", err)
	}
	return t, nil
}

// Update merges the partial input into the stored task and recomputes
// CompletedAt from the status transition. When the input omits status, the
// stored CompletedAt is preserved as-is; an explicit status actively sets
// (DONE) or clears (anything else) the timestamp.
func (s *TaskService) Update(ctx context.Context, id uuid.UUID, in UpdateTaskInput) (*models.Task, error) {
	t, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.DueDate != nil {
		normalized, err := NormalizeDueDate(*in.DueDate, false, s.now())
		if err != nil {
			return nil, err
		}
		t.DueDate = &normalized
	}

	if in.Title != nil {
		t.Title = *in.Title
	}
	if in.Description != nil {
		t.Description = *in.Description
	}
	if in.Priority != nil {
		t.Priority = *in.Priority
	}

	if in.Status != nil {
		if *in.Status == models.StatusDone {
			completedAt := s.now()
			t.CompletedAt = &completedAt
		} else {
			t.CompletedAt = nil
		}
		t.Status = *in.Status
	}

	if err := s.repo.Update(ctx, t); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, NewTaskNotFound(id.String())
		}
		return nil, fmt.Errorf("updating task: %w", err)
	}

	s.invalidateStats(ctx)
	return t, nil
}

func (s *TaskService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return NewTaskNotFound(id.String())
		}
		return fmt.Errorf("deleting task: %w", err)
	}

	s.invalidateStats(ctx)
	return nil
}

// List returns one page of tasks plus pagination metadata. The page fetch
// and the total count are independent reads and run concurrently.
func (s *TaskService) List(ctx context.Context, page, perPage int) ([]*models.Task, *Pagination, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 10
	}
	offset := (page - 1) * perPage

	var (
		tasks []*models.Task
		total int64
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		tasks, err = s.repo.List(gctx, offset, perPage)
		return err
	})
	g.Go(func() error {
		var err error
		total, err = s.repo.Count(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, fmt.Errorf("listing tasks: %w", err)
	}

	meta := &Pagination{
		Page:       page,
		Total:      total,
		PerPage:    perPage,
		TotalPages: int(math.Ceil(float64(total) / float64(perPage))),
	}
	return tasks, meta, nil
}

// Stats computes the dashboard aggregates relative to the start of the
// current UTC day. The completed-this-week window spans from seven days
// before today's midnight up to the precise current instant; the asymmetry
// keeps tasks completed moments ago counted immediately.
func (s *TaskService) Stats(ctx context.Context) (*models.DashboardStats, error) {
	if s.cache != nil {
		var cached models.DashboardStats
		hit, err := s.cache.Get(ctx, statsCacheKey, &cached)
		if err != nil {
			logger.Warn("Service: stats cache read failed", zap.Error(err))
		} else if hit {
			return &cached, nil
		}
	}

	now := s.now()
	startOfToday := StartOfDayUTC(now)
	weekAgo := startOfToday.AddDate(0, 0, -7)

	var stats models.DashboardStats
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		stats.Pending, err = s.repo.CountPending(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		stats.Overdue, err = s.repo.CountOverdue(gctx, startOfToday)
		return err
	})
	g.Go(func() error {
		var err error
		stats.CompletedThisWeek, err = s.repo.CountCompletedBetween(gctx, weekAgo, now)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("computing dashboard stats: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, statsCacheKey, &stats); err != nil {
			logger.Warn("Service: stats cache write failed", zap.Error(err))
		}
	}
	return &stats, nil
}

func (s *TaskService) HealthCheck(ctx context.Context) error {
	if err := s.repo.HealthCheck(ctx); err != nil {
		return fmt.Errorf("repository health check: %w", err)
	}
	return nil
}

func (s *TaskService) invalidateStats(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, statsCacheKey); err != nil {
		logger.Warn("Service: stats cache invalidation failed", zap.Error(err))
	}
}
