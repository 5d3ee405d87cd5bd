package services

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/MoamenFouad/UniQuest/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDBSeq atomic.Int64

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", testDBSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Room{},
		&models.RoomMember{},
		&models.Task{},
		&models.Submission{},
	))
	return db
}

func createUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := models.User{Username: username, PasswordHash: "x"}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

// createRoom sets up a room with its creator as first admin, mirroring
// RoomService.CreateRoom without going through code generation.
func createRoom(t *testing.T, db *gorm.DB, code string, creator *models.User) *models.Room {
	t.Helper()
	room := models.Room{Name: "Room " + code, Code: code, CreatorID: creator.ID, IsPublic: true}
	require.NoError(t, db.Create(&room).Error)
	member := models.RoomMember{RoomID: room.ID, UserID: creator.ID, IsAdmin: true, JoinedAt: time.Now()}
	require.NoError(t, db.Create(&member).Error)
	return &room
}

func addMember(t *testing.T, db *gorm.DB, room *models.Room, user *models.User, admin bool) {
	t.Helper()
	member := models.RoomMember{RoomID: room.ID, UserID: user.ID, IsAdmin: admin, JoinedAt: time.Now()}
	require.NoError(t, db.Create(&member).Error)
}

func createTask(t *testing.T, db *gorm.DB, room *models.Room, title string, xp int, deadline time.Time) *models.Task {
	t.Helper()
	task := models.Task{
		RoomID:    room.ID,
		Title:     title,
		Type:      models.TaskTypeAssignment,
		XPValue:   xp,
		Deadline:  deadline,
		CreatorID: room.CreatorID,
	}
	require.NoError(t, db.Create(&task).Error)
	return &task
}
