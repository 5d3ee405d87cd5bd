package services

import (
	"strings"
	"time"

	"github.com/MoamenFouad/UniQuest/internal/models"

	"gorm.io/gorm"
)

type TaskService struct {
	db    *gorm.DB
	clock *Clock
	rooms *RoomService
}

func NewTaskService(db *gorm.DB, clock *Clock, rooms *RoomService) *TaskService {
	return &TaskService{db: db, clock: clock, rooms: rooms}
}

type CreateTaskInput struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Type        string `json:"type" binding:"required"`
	XPValue     int    `json:"xp_value" binding:"required"`
	// Deadline is a wall-clock value in the platform's reference timezone,
	// e.g. "2026-09-15T23:59".
	Deadline string `json:"deadline" binding:"required"`
}

func (s *TaskService) CreateTask(code string, actorID uint, in CreateTaskInput, now time.Time) (*models.Task, error) {
	room, err := s.rooms.GetRoomByCode(code)
	if err != nil {
		return nil, err
	}
	if !s.rooms.isAdmin(s.db, room.ID, actorID) {
		return nil, models.ErrPermissionDenied("only room admins can create tasks")
	}

	if strings.TrimSpace(in.Title) == "" {
		return nil, models.ErrValidation("task title is required")
	}
	if in.XPValue <= 0 {
		return nil, models.ErrValidation("xp value must be positive")
	}
	if !models.ValidTaskType(in.Type) {
		return nil, models.ErrValidation("invalid task type")
	}

	deadline, err := s.clock.Resolve(in.Deadline)
	if err != nil {
		return nil, err
	}
	if !deadline.After(now) {
		return nil, models.ErrValidation("deadline must be in the future")
	}

	task := models.Task{
		RoomID:      room.ID,
		Title:       strings.TrimSpace(in.Title),
		Description: in.Description,
		Type:        in.Type,
		XPValue:     in.XPValue,
		Deadline:    deadline,
		CreatorID:   actorID,
	}
	if err := s.db.Create(&task).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// TaskView is a task annotated with the caller's relationship to it.
type TaskView struct {
	models.Task
	DeadlineLocal string `json:"deadline_local"`
	IsExpired     bool   `json:"is_expired"`
	IsSubmitted   bool   `json:"is_submitted"`
	Completed     bool   `json:"completed"`
}

func (s *TaskService) ListTasks(code string, userID uint, now time.Time) ([]TaskView, error) {
	room, err := s.rooms.GetRoomByCode(code)
	if err != nil {
		return nil, err
	}

	var tasks []models.Task
	if err := s.db.Where("room_id = ?", room.ID).Order("deadline ASC").Find(&tasks).Error; err != nil {
		return nil, err
	}

	var subs []models.Submission
	s.db.Joins("JOIN tasks ON tasks.id = submissions.task_id").
		Where("submissions.user_id = ? AND tasks.room_id = ?", userID, room.ID).
		Find(&subs)
	byTask := make(map[uint]models.Submission, len(subs))
	for _, sub := range subs {
		byTask[sub.TaskID] = sub
	}

	views := make([]TaskView, 0, len(tasks))
	for _, t := range tasks {
		sub, ok := byTask[t.ID]
		views = append(views, TaskView{
			Task:          t,
			DeadlineLocal: s.clock.Display(t.Deadline),
			IsExpired:     t.IsExpired(now),
			IsSubmitted:   ok && sub.Status != models.SubmissionStatusRejected,
			Completed:     ok && sub.Status == models.SubmissionStatusVerified,
		})
	}
	return views, nil
}

func (s *TaskService) GetTask(taskID uint) (*models.Task, error) {
	var task models.Task
	if err := s.db.First(&task, taskID).Error; err != nil {
		return nil, models.ErrNotFound("task not found")
	}
	return &task, nil
}

// DeleteTask removes a task and all its submissions. Any verified XP the
// submissions carried disappears from the ledger on the next recomputation.
func (s *TaskService) DeleteTask(code string, actorID, taskID uint) error {
	room, err := s.rooms.GetRoomByCode(code)
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if !s.rooms.isAdmin(tx, room.ID, actorID) {
			return models.ErrPermissionDenied("only room admins can delete tasks")
		}

		var task models.Task
		if err := tx.Where("id = ? AND room_id = ?", taskID, room.ID).First(&task).Error; err != nil {
			return models.ErrNotFound("task not found in this room")
		}

		if err := tx.Where("task_id = ?", task.ID).Delete(&models.Submission{}).Error; err != nil {
			return err
		}
		return tx.Delete(&task).Error
	})
}
