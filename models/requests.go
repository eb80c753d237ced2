package models

import (
	"fmt"
	"time"
)

// LoginRequest carries a federated ID token from the SPA.
type LoginRequest struct {
	IDToken string `json:"id_token" binding:"required"`
}

// RegisterRequest is the admin provisioning payload: a local record plus a
// matching identity-provider account created with a temporary password.
type RegisterRequest struct {
	Username string   `json:"username" binding:"required"`
	Email    string   `json:"email" binding:"required,email"`
	FullName string   `json:"full_name"`
	Role     UserRole `json:"role"`
	WorkMode WorkMode `json:"work_mode"`
}

// CreateTaskRequest is the payload for a new root task.
type CreateTaskRequest struct {
	Title          string       `json:"title" binding:"required"`
	Description    string       `json:"description"`
	DueDate        *time.Time   `json:"due_date"`
	Priority       TaskPriority `json:"priority"`
	EstimatedHours float64      `json:"estimated_hours"`
	AssigneeID     *uint        `json:"assignee_id"`
	SprintID       *uint        `json:"sprint_id"`
}

func (r *CreateTaskRequest) Validate() error {
	if r.EstimatedHours < 0 {
		return fmt.Errorf("estimated_hours must be non-negative")
	}
	if r.DueDate != nil {
		utc := r.DueDate.UTC()
		r.DueDate = &utc
	}
	if r.Priority == "" {
		r.Priority = PriorityMedium
	}
	return nil
}

// AddSubtaskRequest attaches a subtask under an existing task.
type AddSubtaskRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
}

// SetStatusRequest forces a status onto a task and all its descendants.
type SetStatusRequest struct {
	Status TaskStatus `json:"status" binding:"required"`
}

func (r *SetStatusRequest) Validate() error {
	switch r.Status {
	case StatusTodo, StatusInProgress, StatusBlocked, StatusCompleted:
		return nil
	}
	return fmt.Errorf("invalid status %q", r.Status)
}

// UpdateProfileRequest is a partial update: nil fields are left untouched.
// FirebaseUID identifies the federated counterpart for the best-effort
// display-name mirror; it is not itself a patched field.
type UpdateProfileRequest struct {
	FullName    *string   `json:"full_name"`
	WorkMode    *WorkMode `json:"work_mode"`
	Role        *UserRole `json:"role"`
	FirebaseUID string    `json:"firebase_uid,omitempty"`
}

// SuggestSubtasksRequest optionally caps how many suggestions come back.
type SuggestSubtasksRequest struct {
	MaxSuggestions int `json:"max_suggestions"`
}
