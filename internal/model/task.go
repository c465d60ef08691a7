package model

import "time"

// TaskPriority orders tasks for the broker's attention.
type TaskPriority string

const (
	TaskLow    TaskPriority = "low"
	TaskMedium TaskPriority = "medium"
	TaskHigh   TaskPriority = "high"
)

// Valid reports whether p belongs to the declared priority set.
func (p TaskPriority) Valid() bool {
	switch p {
	case TaskLow, TaskMedium, TaskHigh:
		return true
	}
	return false
}

// TaskStatus is the lifecycle status of a task.
type TaskStatus string

const (
	TaskPending    TaskStatus = "pending"
	TaskInProgress TaskStatus = "in_progress"
	TaskCompleted  TaskStatus = "completed"
)

// Valid reports whether s belongs to the declared status set.
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskPending, TaskInProgress, TaskCompleted:
		return true
	}
	return false
}

// Task is a broker to-do, optionally tied to a client and/or application.
// CompletedAt is non-nil exactly when Status is completed; the service layer
// maintains that invariant on every transition.
type Task struct {
	ID            string       `json:"id"`
	BrokerID      string       `json:"broker_id"`
	ClientID      *string      `json:"client_id,omitempty"`
	ApplicationID *string      `json:"application_id,omitempty"`
	Title         string       `json:"title"`
	Description   string       `json:"description"`
	DueDate       time.Time    `json:"due_date"`
	Priority      TaskPriority `json:"priority"`
	Status        TaskStatus   `json:"status"`
	CompletedAt   *time.Time   `json:"completed_at,omitempty"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}
