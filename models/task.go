package models

import (
	"time"
)

// TaskStatus is the lifecycle state of a task.
type TaskStatus string

const (
	StatusTodo       TaskStatus = "TODO"
	StatusInProgress TaskStatus = "IN_PROGRESS"
	StatusBlocked    TaskStatus = "BLOCKED"
	StatusCompleted  TaskStatus = "COMPLETED"
)

// TaskPriority is ordered: Low < Medium < High < Critical.
type TaskPriority string

const (
	PriorityLow      TaskPriority = "LOW"
	PriorityMedium   TaskPriority = "MEDIUM"
	PriorityHigh     TaskPriority = "HIGH"
	PriorityCritical TaskPriority = "CRITICAL"
)

// Task is a unit of work. A task with no subtasks is a leaf whose status and
// estimated hours are authoritative; once it has subtasks both become derived
// values read through the hierarchy aggregator.
type Task struct {
	ID             uint         `gorm:"primaryKey" json:"id"`
	Title          string       `gorm:"type:varchar(100)" json:"title"`
	Description    string       `gorm:"type:text" json:"description"`
	DueDate        *time.Time   `json:"due_date,omitempty"`
	Priority       TaskPriority `gorm:"type:varchar(20);default:MEDIUM" json:"priority"`
	Status         TaskStatus   `gorm:"type:varchar(20);default:TODO" json:"status"`
	EstimatedHours float64      `gorm:"default:0" json:"estimated_hours"`
	AssigneeID     *uint        `json:"assignee_id,omitempty"`
	SprintID       *uint        `json:"sprint_id,omitempty"`
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`
	Subtasks       []Subtask    `gorm:"foreignKey:TaskID" json:"subtasks,omitempty"`
}
