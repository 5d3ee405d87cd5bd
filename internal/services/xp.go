package services

import (
	"github.com/MoamenFouad/UniQuest/internal/models"

	"gorm.io/gorm"
)

// XPPerLevel is a fixed platform rule, not configurable per room.
const XPPerLevel = 100

type XPService struct {
	db *gorm.DB
}

func NewXPService(db *gorm.DB) *XPService {
	return &XPService{db: db}
}

// TotalXP sums the task XP of the user's verified submissions across all
// rooms. XP is never stored as a counter; recomputing by summation keeps the
// ledger consistent with submission state after any verify, reject or
// cascade delete.
func (s *XPService) TotalXP(userID uint) (int, error) {
	return s.sumXP(s.db.Where("submissions.user_id = ?", userID))
}

// RoomXP sums verified XP for tasks belonging to one room only.
func (s *XPService) RoomXP(userID, roomID uint) (int, error) {
	return s.sumXP(s.db.Where("submissions.user_id = ? AND tasks.room_id = ?", userID, roomID))
}

func (s *XPService) sumXP(q *gorm.DB) (int, error) {
	var total int64
	err := q.Model(&models.Submission{}).
		Joins("JOIN tasks ON tasks.id = submissions.task_id").
		Where("submissions.status = ?", models.SubmissionStatusVerified).
		Select("COALESCE(SUM(tasks.xp_value), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, err
	}
	return int(total), nil
}

type LevelInfo struct {
	Level            int     `json:"level"`
	XPIntoLevel      int     `json:"xp_into_level"`
	ProgressFraction float64 `json:"progress_fraction"`
}

// LevelForXP derives the level tier from total XP at 100 XP per level.
func LevelForXP(totalXP int) LevelInfo {
	if totalXP < 0 {
		totalXP = 0
	}
	level := totalXP/XPPerLevel + 1
	into := totalXP - (level-1)*XPPerLevel
	fraction := float64(into) / float64(XPPerLevel)
	if fraction < 0 {
		fraction = 0
	}
	if fraction > 1 {
		fraction = 1
	}
	return LevelInfo{Level: level, XPIntoLevel: into, ProgressFraction: fraction}
}
