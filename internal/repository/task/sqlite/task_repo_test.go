package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"taskboard/internal/models"
	"taskboard/internal/repository"
	"taskboard/internal/repository/task/sqlite"
)

func setupStorage(t *testing.T) *sqlite.Storage {
	t.Helper()

	db, err := gorm.Open(gormsqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	storage, err := sqlite.NewWithDB(db)
	require.NoError(t, err)
	return storage
}

func newTask(title string) *models.Task {
	now := time.Now().UTC()
	return &models.Task{
		ID:        uuid.New(),
		Title:     title,
		Status:    models.StatusToDo,
		Priority:  models.PriorityMedium,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestStorage_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	storage := setupStorage(t)

	task := newTask("persisted")
	require.NoError(t, storage.Create(ctx, task))

	got, err := storage.GetByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, task.ID, got.ID)
	assert.Equal(t, "persisted", got.Title)
	assert.Equal(t, models.StatusToDo, got.Status)
	assert.Nil(t, got.CompletedAt)
}

func TestStorage_GetMissing(t *testing.T) {
	storage := setupStorage(t)

	_, err := storage.GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestStorage_Update(t *testing.T) {
	ctx := context.Background()
	storage := setupStorage(t)

	task := newTask("original")
	require.NoError(t, storage.Create(ctx, task))

	completedAt := time.Now().UTC()
	task.Title = "renamed"
	task.Status = models.StatusDone
	task.CompletedAt = &completedAt
	require.NoError(t, storage.Update(ctx, task))

	got, err := storage.GetByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, "renamed", got.Title)
	assert.Equal(t, models.StatusDone, got.Status)
	require.NotNil(t, got.CompletedAt)

	// Clearing completed_at must write the NULL through.
	task.Status = models.StatusToDo
	task.CompletedAt = nil
	require.NoError(t, storage.Update(ctx, task))

	got, err = storage.GetByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Nil(t, got.CompletedAt)

	assert.ErrorIs(t, storage.Update(ctx, newTask("missing")), repository.ErrNotFound)
}

func TestStorage_Delete(t *testing.T) {
	ctx := context.Background()
	storage := setupStorage(t)

	task := newTask("to delete")
	require.NoError(t, storage.Create(ctx, task))
	require.NoError(t, storage.Delete(ctx, task.ID))

	_, err := storage.GetByID(ctx, task.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.ErrorIs(t, storage.Delete(ctx, task.ID), repository.ErrNotFound)
}

func TestStorage_ListOrderAndPagination(t *testing.T) {
	ctx := context.Background()
	storage := setupStorage(t)

	base := time.Now().UTC().Add(-time.Hour)
	for i, title := range []string{"first", "second", "third"} {
		task := newTask(title)
		task.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		require.NoError(t, storage.Create(ctx, task))
	}

	page1, err := storage.List(ctx, 0, 2)
	require.NoError(t, err)
	require.Len(t, page1, 2)
	assert.Equal(t, "first", page1[0].Title)
	assert.Equal(t, "second", page1[1].Title)

	page2, err := storage.List(ctx, 2, 2)
	require.NoError(t, err)
	require.Len(t, page2, 1)
	assert.Equal(t, "third", page2[0].Title)

	total, err := storage.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
}

func TestStorage_StatsCounts(t *testing.T) {
	ctx := context.Background()
	storage := setupStorage(t)

	now := time.Now().UTC()
	startOfToday := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	yesterday := startOfToday.AddDate(0, 0, -1)
	tomorrow := startOfToday.AddDate(0, 0, 1)

	pending := newTask("pending")
	pending.DueDate = &tomorrow
	require.NoError(t, storage.Create(ctx, pending))

	overdue := newTask("overdue")
	overdue.DueDate = &yesterday
	require.NoError(t, storage.Create(ctx, overdue))

	done := newTask("done recently")
	done.Status = models.StatusDone
	completedAt := now.Add(-2 * time.Hour)
	done.CompletedAt = &completedAt
	require.NoError(t, storage.Create(ctx, done))

	pendingCount, err := storage.CountPending(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), pendingCount)

	overdueCount, err := storage.CountOverdue(ctx, startOfToday)
	require.NoError(t, err)
	assert.Equal(t, int64(1), overdueCount)

	completedCount, err := storage.CountCompletedBetween(ctx, startOfToday.AddDate(0, 0, -7), now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), completedCount)
}
