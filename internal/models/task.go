package models

import "time"

type Task struct {
	ID          uint         `gorm:"primaryKey" json:"id"`
	RoomID      uint         `gorm:"not null;index" json:"room_id"`
	Title       string       `gorm:"size:200;not null" json:"title"`
	Description string       `gorm:"size:2000" json:"description,omitempty"`
	Type        string       `gorm:"size:20;not null" json:"type"`
	XPValue     int          `gorm:"not null" json:"xp_value"`
	Deadline    time.Time    `gorm:"not null" json:"deadline"`
	CreatorID   uint         `gorm:"not null" json:"creator_id"`
	Submissions []Submission `gorm:"foreignKey:TaskID;constraint:OnDelete:CASCADE" json:"submissions,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
}

const (
	TaskTypeLecture    = "lecture"
	TaskTypeAssignment = "assignment"
	TaskTypeProject    = "project"
	TaskTypeQuiz       = "quiz"
	TaskTypeLab        = "lab"
	TaskTypeOther      = "other"
)

func ValidTaskType(t string) bool {
	switch t {
	case TaskTypeLecture, TaskTypeAssignment, TaskTypeProject, TaskTypeQuiz, TaskTypeLab, TaskTypeOther:
		return true
	}
	return false
}

// IsExpired reports whether the deadline has passed. Expiry is a computed
// predicate, never a stored flag, so it is monotonic in now.
func (t *Task) IsExpired(now time.Time) bool {
	return !now.Before(t.Deadline)
}
