package models

import "time"

// Subtask is the persisted projection of a nested task. It deliberately
// carries no estimated hours, priority or due date: those are inherited from
// the parent when the hierarchy is rebuilt, and the stored shape must stay
// compatible with the record format the API clients already persist.
type Subtask struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Title       string     `gorm:"type:varchar(100)" json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	Status      TaskStatus `gorm:"type:varchar(20);default:TODO" json:"status"`
	TaskID      uint       `gorm:"index" json:"task_id"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}
