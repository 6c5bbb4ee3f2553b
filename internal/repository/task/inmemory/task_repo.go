package inmemory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"taskboard/internal/models"
	"taskboard/internal/repository"
)

// TaskStorage keeps tasks in a map guarded by a RWMutex, with a separate
// slice preserving insertion order for stable pagination.
type TaskStorage struct {
	storage map[uuid.UUID]*models.Task
	ids     []uuid.UUID
	mtx     sync.RWMutex
}

func NewTaskStorage() *TaskStorage {
	return &TaskStorage{
		storage: make(map[uuid.UUID]*models.Task),
		ids:     []uuid.UUID{},
	}
}

func (s *TaskStorage) HealthCheck(ctx context.Context) error {
	return nil
}

func (s *TaskStorage) Create(ctx context.Context, t *models.Task) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if _, exists := s.storage[t.ID]; exists {
		return repository.ErrConflict
	}

	now := time.Now()
	t.CreatedAt = now
	t.UpdatedAt = now

	copied := *t
	s.storage[t.ID] = &copied
	s.ids = append(s.ids, t.ID)
	return nil
}

func (s *TaskStorage) GetByID(ctx context.Context, id uuid.UUID) (*models.Task, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	t, ok := s.storage[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *t
	return &copied, nil
}

func (s *TaskStorage) Update(ctx context.Context, t *models.Task) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	existing, ok := s.storage[t.ID]
	if !ok {
		return repository.ErrNotFound
	}

	t.CreatedAt = existing.CreatedAt
	t.UpdatedAt = time.Now()

	copied := *t
	s.storage[t.ID] = &copied
	return nil
}

func (s *TaskStorage) Delete(ctx context.Context, id uuid.UUID) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if _, ok := s.storage[id]; !ok {
		return repository.ErrNotFound
	}

	delete(s.storage, id)
	for i, v := range s.ids {
		if v == id {
			s.ids = append(s.ids[:i], s.ids[i+1:]...)
			break
		}
	}
	return nil
}

func (s *TaskStorage) List(ctx context.Context, offset, limit int) ([]*models.Task, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	ordered := make([]*models.Task, 0, len(s.ids))
	for _, id := range s.ids {
		ordered = append(ordered, s.storage[id])
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].CreatedAt.Equal(ordered[j].CreatedAt) {
			return ordered[i].ID.String() < ordered[j].ID.String()
		}
		return ordered[i].CreatedAt.Before(ordered[j].CreatedAt)
	})

	res := []*models.Task{}
	for i := offset; i < len(ordered) && len(res) < limit; i++ {
		copied := *ordered[i]
		res = append(res, &copied)
	}
	return res, nil
}

func (s *TaskStorage) Count(ctx context.Context) (int64, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	return int64(len(s.storage)), nil
}

func (s *TaskStorage) CountPending(ctx context.Context) (int64, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	var n int64
	for _, t := range s.storage {
		if t.Status != models.StatusDone && t.CompletedAt == nil {
			n++
		}
	}
	return n, nil
}

func (s *TaskStorage) CountOverdue(ctx context.Context, before time.Time) (int64, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	var n int64
	for _, t := range s.storage {
		if t.Status != models.StatusDone && t.CompletedAt == nil &&
			t.DueDate != nil && t.DueDate.Before(before) {
			n++
		}
	}
	return n, nil
}

func (s *TaskStorage) CountCompletedBetween(ctx context.Context, from, to time.Time) (int64, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	var n int64
	for _, t := range s.storage {
		if t.CompletedAt == nil {
			continue
		}
		at := *t.CompletedAt
		if !at.Before(from) && !at.After(to) {
			n++
		}
	}
	return n, nil
}

var _ repository.TaskRepository = (*TaskStorage)(nil)
