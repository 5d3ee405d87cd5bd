package services

import (
	"time"

	"github.com/MoamenFouad/UniQuest/internal/models"

	"gorm.io/gorm"
)

type SubmissionService struct {
	db    *gorm.DB
	rooms *RoomService
}

func NewSubmissionService(db *gorm.DB, rooms *RoomService) *SubmissionService {
	return &SubmissionService{db: db, rooms: rooms}
}

// Submit records a member's proof for a task. The check for an existing
// active submission and the insert run in one transaction so two concurrent
// submits cannot both pass; the unique (task,user) index backs this up at
// the database level.
func (s *SubmissionService) Submit(taskID, userID uint, filePath string, now time.Time) (*models.Submission, error) {
	var result models.Submission

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var task models.Task
		if err := tx.First(&task, taskID).Error; err != nil {
			return models.ErrNotFound("task not found")
		}

		var member models.RoomMember
		if err := tx.Where("room_id = ? AND user_id = ?", task.RoomID, userID).First(&member).Error; err != nil {
			return models.ErrPermissionDenied("not a member of the task's room")
		}

		if task.IsExpired(now) {
			return models.ErrForbidden("task deadline has passed")
		}

		var existing models.Submission
		err := tx.Where("task_id = ? AND user_id = ?", taskID, userID).First(&existing).Error
		switch {
		case err == nil && existing.Status == models.SubmissionStatusRejected:
			// Resubmission resets the rejected row to pending.
			existing.FilePath = filePath
			existing.Status = models.SubmissionStatusPending
			existing.SubmittedAt = now
			existing.ReviewedAt = nil
			existing.ReviewerID = nil
			if err := tx.Save(&existing).Error; err != nil {
				return err
			}
			result = existing
			return nil
		case err == nil:
			return models.ErrConflict("an active submission for this task already exists")
		}

		result = models.Submission{
			TaskID:      taskID,
			UserID:      userID,
			FilePath:    filePath,
			Status:      models.SubmissionStatusPending,
			SubmittedAt: now,
		}
		return tx.Create(&result).Error
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// Verify applies an admin review decision. The XP credit for a verified
// submission is implicit: totals are summed over rows whose status is
// exactly "verified", so the transition into that status is the one and
// only credit per (task, user) no matter how many reject/resubmit cycles
// preceded it.
func (s *SubmissionService) Verify(taskID, submissionID, reviewerID uint, decision string, now time.Time) (*models.Submission, error) {
	if decision != models.SubmissionStatusVerified && decision != models.SubmissionStatusRejected {
		return nil, models.ErrValidation("decision must be verified or rejected")
	}

	var result models.Submission

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var sub models.Submission
		if err := tx.First(&sub, submissionID).Error; err != nil {
			return models.ErrNotFound("submission not found")
		}
		if sub.TaskID != taskID {
			return models.ErrNotFound("submission does not belong to this task")
		}

		var task models.Task
		if err := tx.First(&task, sub.TaskID).Error; err != nil {
			return models.ErrNotFound("task not found")
		}
		if !s.rooms.isAdmin(tx, task.RoomID, reviewerID) {
			return models.ErrPermissionDenied("only room admins can review submissions")
		}

		switch sub.Status {
		case models.SubmissionStatusVerified:
			return models.ErrInvalidState("submission is already verified")
		case models.SubmissionStatusRejected:
			return models.ErrInvalidState("submission was rejected, awaiting resubmission")
		}

		sub.Status = decision
		sub.ReviewedAt = &now
		sub.ReviewerID = &reviewerID
		if err := tx.Save(&sub).Error; err != nil {
			return err
		}
		result = sub
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

type SubmissionView struct {
	models.Submission
	Username string `json:"username"`
}

func (s *SubmissionService) ListSubmissions(taskID, actorID uint) ([]SubmissionView, error) {
	var task models.Task
	if err := s.db.First(&task, taskID).Error; err != nil {
		return nil, models.ErrNotFound("task not found")
	}
	if !s.rooms.isAdmin(s.db, task.RoomID, actorID) {
		return nil, models.ErrPermissionDenied("only room admins can list submissions")
	}

	var subs []models.Submission
	if err := s.db.Where("task_id = ?", taskID).Order("submitted_at ASC").Find(&subs).Error; err != nil {
		return nil, err
	}

	views := make([]SubmissionView, 0, len(subs))
	for _, sub := range subs {
		var user models.User
		s.db.First(&user, sub.UserID)
		views = append(views, SubmissionView{Submission: sub, Username: user.Username})
	}
	return views, nil
}

type RoomSubmissionRow struct {
	TaskID      uint       `json:"task_id"`
	TaskTitle   string     `json:"task_title"`
	Username    string     `json:"username"`
	Status      string     `json:"status"`
	XPValue     int        `json:"xp_value"`
	SubmittedAt time.Time  `json:"submitted_at"`
	ReviewedAt  *time.Time `json:"reviewed_at,omitempty"`
}

// ListRoomSubmissions flattens every submission in the room for the admin
// review queue and the CSV export.
func (s *SubmissionService) ListRoomSubmissions(code string, actorID uint) ([]RoomSubmissionRow, error) {
	room, err := s.rooms.GetRoomByCode(code)
	if err != nil {
		return nil, err
	}
	if !s.rooms.isAdmin(s.db, room.ID, actorID) {
		return nil, models.ErrPermissionDenied("only room admins can list submissions")
	}

	var rows []RoomSubmissionRow
	err = s.db.Model(&models.Submission{}).
		Select("submissions.task_id, tasks.title AS task_title, users.username, submissions.status, tasks.xp_value, submissions.submitted_at, submissions.reviewed_at").
		Joins("JOIN tasks ON tasks.id = submissions.task_id").
		Joins("JOIN users ON users.id = submissions.user_id").
		Where("tasks.room_id = ?", room.ID).
		Order("submissions.submitted_at ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
