package models

import "time"

// Submission is the single row per (task, user) pair. Resubmission after a
// rejection resets this row to pending instead of inserting a second one, so
// the unique index doubles as the "at most one active submission" guarantee.
type Submission struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	TaskID      uint       `gorm:"not null;uniqueIndex:idx_task_user" json:"task_id"`
	UserID      uint       `gorm:"not null;uniqueIndex:idx_task_user" json:"user_id"`
	User        User       `gorm:"foreignKey:UserID" json:"-"`
	FilePath    string     `gorm:"size:512;not null" json:"file_path"`
	Status      string     `gorm:"size:20;not null;default:'pending'" json:"status"`
	SubmittedAt time.Time  `json:"submitted_at"`
	ReviewedAt  *time.Time `json:"reviewed_at,omitempty"`
	ReviewerID  *uint      `json:"reviewer_id,omitempty"`
}

const (
	SubmissionStatusPending  = "pending"
	SubmissionStatusVerified = "verified"
	SubmissionStatusRejected = "rejected"
)
