package models

import (
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusToDo  Status = "TO_DO"
	StatusDoing Status = "DOING"
	StatusDone  Status = "DONE"
)

func (s Status) Valid() bool {
	switch s {
	case StatusToDo, StatusDoing, StatusDone:
		return true
	}
	return false
}

type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityMedium Priority = "MEDIUM"
	PriorityHigh   Priority = "HIGH"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Task is the single entity of the service. DueDate, when set, is always a
// UTC midnight instant; CompletedAt is non-nil exactly while Status is DONE.
type Task struct {
	ID          uuid.UUID  `json:"id" gorm:"primarykey;size:36" db:"id"`
	Title       string     `json:"title" gorm:"size:255;not null" db:"title"`
	Description string     `json:"description" gorm:"size:2000;not null;default:''" db:"description"`
	Status      Status     `json:"status" gorm:"size:16;not null;default:TO_DO;index" db:"status"`
	Priority    Priority   `json:"priority" gorm:"size:16;not null;default:MEDIUM" db:"priority"`
	DueDate     *time.Time `json:"dueDate" gorm:"index" db:"due_date"`
	CompletedAt *time.Time `json:"completedAt" gorm:"index" db:"completed_at"`
	CreatedAt   time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time  `json:"updatedAt" db:"updated_at"`
}

func (Task) TableName() string {
	return "tasks"
}

// DashboardStats is the read-only aggregate for the dashboard cards.
type DashboardStats struct {
	Pending           int64 `json:"pending"`
	Overdue           int64 `json:"overdue"`
	CompletedThisWeek int64 `json:"completedThisWeek"`
}
