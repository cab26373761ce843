package domain

import (
	"math"
	"time"
)

type TaskStatus string

// Known statuses. Status is an open field: any other string is stored verbatim.
const (
	TaskStatusPending    TaskStatus = "PENDING"
	TaskStatusInProgress TaskStatus = "IN_PROGRESS"
	TaskStatusCompleted  TaskStatus = "COMPLETED"
)

// Task is a to-do item owned by a single user.
type Task struct {
	ID          string
	Title       string
	Description string
	Status      TaskStatus
	OwnerID     string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TaskPatch carries the fields of a partial update. Empty values mean "leave unchanged".
type TaskPatch struct {
	Title       string
	Description string
	Status      TaskStatus
}

// Empty reports whether the patch would change nothing.
func (p TaskPatch) Empty() bool {
	return p.Title == "" && p.Description == "" && p.Status == ""
}

// Page selects a window of a listing. A zero Limit means no paging.
type Page struct {
	Number int
	Limit  int
}

func (p Page) Offset() int {
	if p.Number <= 1 || p.Limit <= 0 {
		return 0
	}
	if p.Number-1 > math.MaxInt/p.Limit {
		return math.MaxInt
	}
	return (p.Number - 1) * p.Limit
}
