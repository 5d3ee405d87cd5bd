package services

import (
	"sort"
	"time"

	"github.com/MoamenFouad/UniQuest/internal/models"

	"gorm.io/gorm"
)

type DashboardService struct {
	db          *gorm.DB
	xp          *XPService
	leaderboard *LeaderboardService
	clock       *Clock
}

func NewDashboardService(db *gorm.DB, xp *XPService, leaderboard *LeaderboardService, clock *Clock) *DashboardService {
	return &DashboardService{db: db, xp: xp, leaderboard: leaderboard, clock: clock}
}

type DailyXP struct {
	Date string `json:"date"`
	XP   int    `json:"xp"`
}

type RoomXP struct {
	RoomID   uint   `json:"room_id"`
	RoomName string `json:"room_name"`
	RoomCode string `json:"room_code"`
	XP       int    `json:"xp"`
}

type Activity struct {
	QuestTitle string    `json:"quest_title"`
	RoomName   string    `json:"room_name"`
	XPEarned   int       `json:"xp_earned"`
	Status     string    `json:"status"`
	Timestamp  time.Time `json:"timestamp"`
}

type Dashboard struct {
	TotalXP          int                `json:"total_xp"`
	Level            int                `json:"level"`
	XPIntoLevel      int                `json:"xp_into_level"`
	ProgressFraction float64            `json:"progress_fraction"`
	CurrentStreak    int                `json:"current_streak"`
	QuestsCompleted  int                `json:"quests_completed"`
	XPByDay          []DailyXP          `json:"xp_by_day"`
	XPByRoom         []RoomXP           `json:"xp_by_room"`
	RecentActivities []Activity         `json:"recent_activities"`
	TopAdventurers   []LeaderboardEntry `json:"top_adventurers"`
	GlobalRank       int                `json:"global_rank"`
}

type dashboardRow struct {
	TaskTitle   string
	RoomID      uint
	RoomName    string
	RoomCode    string
	XPValue     int
	Status      string
	SubmittedAt time.Time
}

func (s *DashboardService) GetDashboard(userID uint, now time.Time) (*Dashboard, error) {
	total, err := s.xp.TotalXP(userID)
	if err != nil {
		return nil, err
	}
	level := LevelForXP(total)

	var rows []dashboardRow
	err = s.db.Model(&models.Submission{}).
		Select("tasks.title AS task_title, rooms.id AS room_id, rooms.name AS room_name, rooms.code AS room_code, tasks.xp_value, submissions.status, submissions.submitted_at").
		Joins("JOIN tasks ON tasks.id = submissions.task_id").
		Joins("JOIN rooms ON rooms.id = tasks.room_id").
		Where("submissions.user_id = ?", userID).
		Order("submissions.submitted_at ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	dash := &Dashboard{
		TotalXP:          total,
		Level:            level.Level,
		XPIntoLevel:      level.XPIntoLevel,
		ProgressFraction: level.ProgressFraction,
		CurrentStreak:    s.streak(rows, now),
		XPByDay:          []DailyXP{},
		XPByRoom:         []RoomXP{},
		RecentActivities: []Activity{},
	}

	byDay := make(map[string]int)
	byRoom := make(map[uint]*RoomXP)
	var roomOrder []uint
	for _, r := range rows {
		if r.Status == models.SubmissionStatusVerified {
			dash.QuestsCompleted++
			byDay[s.clock.DateKey(r.SubmittedAt)] += r.XPValue
			if _, ok := byRoom[r.RoomID]; !ok {
				byRoom[r.RoomID] = &RoomXP{RoomID: r.RoomID, RoomName: r.RoomName, RoomCode: r.RoomCode}
				roomOrder = append(roomOrder, r.RoomID)
			}
			byRoom[r.RoomID].XP += r.XPValue
		}
	}

	days := make([]string, 0, len(byDay))
	for d := range byDay {
		days = append(days, d)
	}
	sort.Strings(days)
	if len(days) > 30 {
		days = days[len(days)-30:]
	}
	for _, d := range days {
		dash.XPByDay = append(dash.XPByDay, DailyXP{Date: d, XP: byDay[d]})
	}
	for _, id := range roomOrder {
		dash.XPByRoom = append(dash.XPByRoom, *byRoom[id])
	}

	// Last five submissions, newest first.
	for i := len(rows) - 1; i >= 0 && len(dash.RecentActivities) < 5; i-- {
		r := rows[i]
		earned := 0
		if r.Status == models.SubmissionStatusVerified {
			earned = r.XPValue
		}
		dash.RecentActivities = append(dash.RecentActivities, Activity{
			QuestTitle: r.TaskTitle,
			RoomName:   r.RoomName,
			XPEarned:   earned,
			Status:     r.Status,
			Timestamp:  r.SubmittedAt,
		})
	}

	board, err := s.leaderboard.Global(0)
	if err != nil {
		return nil, err
	}
	for _, entry := range board {
		if len(dash.TopAdventurers) < 10 {
			dash.TopAdventurers = append(dash.TopAdventurers, entry)
		}
		if entry.UserID == userID {
			dash.GlobalRank = entry.Rank
		}
	}

	return dash, nil
}

// streak counts consecutive reference-zone days ending today or yesterday on
// which the user submitted anything. Any submission keeps the streak alive;
// verification is not required for streak purposes.
func (s *DashboardService) streak(rows []dashboardRow, now time.Time) int {
	seen := make(map[string]bool, len(rows))
	var days []string
	for _, r := range rows {
		key := s.clock.DateKey(r.SubmittedAt)
		if !seen[key] {
			seen[key] = true
			days = append(days, key)
		}
	}
	if len(days) == 0 {
		return 0
	}
	sort.Sort(sort.Reverse(sort.StringSlice(days)))

	today := s.clock.DateKey(now)
	yesterday := s.clock.DateKey(now.AddDate(0, 0, -1))
	if days[0] != today && days[0] != yesterday {
		return 0
	}

	streak := 1
	prev, _ := time.Parse("2006-01-02", days[0])
	for _, d := range days[1:] {
		cur, _ := time.Parse("2006-01-02", d)
		if prev.Sub(cur) == 24*time.Hour {
			streak++
			prev = cur
		} else {
			break
		}
	}
	return streak
}
