package models

import "time"

type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"size:100;uniqueIndex;not null" json:"username"`
	Email        string    `gorm:"size:255;index" json:"email,omitempty"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	StudentID    string    `gorm:"size:50;index" json:"student_id,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}
