package services

import (
	"github.com/MoamenFouad/UniQuest/internal/models"

	"gorm.io/gorm"
)

type LeaderboardService struct {
	db *gorm.DB
}

func NewLeaderboardService(db *gorm.DB) *LeaderboardService {
	return &LeaderboardService{db: db}
}

type LeaderboardEntry struct {
	Rank     int    `json:"rank"`
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	TotalXP  int    `json:"total_xp"`
}

// Global ranks every user by total verified XP across all rooms. limit <= 0
// returns the full board.
func (l *LeaderboardService) Global(limit int) ([]LeaderboardEntry, error) {
	rows, err := l.queryTotals(
		l.db.Table("users").
			Select("users.id AS user_id, users.username, COALESCE(SUM(tasks.xp_value), 0) AS total_xp").
			Joins("LEFT JOIN submissions ON submissions.user_id = users.id AND submissions.status = ?", models.SubmissionStatusVerified).
			Joins("LEFT JOIN tasks ON tasks.id = submissions.task_id").
			Group("users.id, users.username"),
	)
	if err != nil {
		return nil, err
	}
	entries := rank(rows)
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

// Room ranks the room's members by verified XP earned on that room's tasks
// only. Members without verified submissions appear with zero XP.
func (l *LeaderboardService) Room(code string) ([]LeaderboardEntry, error) {
	var room models.Room
	if err := l.db.Where("code = ?", code).First(&room).Error; err != nil {
		return nil, models.ErrNotFound("room not found")
	}

	rows, err := l.queryTotals(
		l.db.Table("room_members").
			Select("users.id AS user_id, users.username, COALESCE(SUM(tasks.xp_value), 0) AS total_xp").
			Joins("JOIN users ON users.id = room_members.user_id").
			Joins("LEFT JOIN submissions ON submissions.user_id = users.id AND submissions.status = ?", models.SubmissionStatusVerified).
			Joins("LEFT JOIN tasks ON tasks.id = submissions.task_id AND tasks.room_id = ?", room.ID).
			Where("room_members.room_id = ?", room.ID).
			Group("users.id, users.username"),
	)
	if err != nil {
		return nil, err
	}
	return rank(rows), nil
}

func (l *LeaderboardService) queryTotals(q *gorm.DB) ([]LeaderboardEntry, error) {
	var rows []LeaderboardEntry
	// Tie-break on ascending user id: deterministic and independent of any
	// mutable data.
	if err := q.Order("total_xp DESC, user_id ASC").Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// rank assigns standard competition ranks: tied totals share the smallest
// rank, and the next distinct total resumes at its one-based position.
func rank(rows []LeaderboardEntry) []LeaderboardEntry {
	for i := range rows {
		if i > 0 && rows[i].TotalXP == rows[i-1].TotalXP {
			rows[i].Rank = rows[i-1].Rank
		} else {
			rows[i].Rank = i + 1
		}
	}
	return rows
}
