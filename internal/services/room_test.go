package services

import (
	"testing"
	"time"

	"github.com/MoamenFouad/UniQuest/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateRoomMakesCreatorAdmin(t *testing.T) {
	db := openTestDB(t)
	svc := NewRoomService(db)
	creator := createUser(t, db, "creator")

	room, err := svc.CreateRoom(creator.ID, "Study Hall", "desc", true)
	require.NoError(t, err)
	assert.Len(t, room.Code, 8)

	member := svc.GetMember(room.ID, creator.ID)
	require.NotNil(t, member)
	assert.True(t, member.IsAdmin)
}

func TestCreateRoomRequiresName(t *testing.T) {
	db := openTestDB(t)
	svc := NewRoomService(db)
	creator := createUser(t, db, "creator")

	_, err := svc.CreateRoom(creator.ID, "   ", "", true)
	require.Error(t, err)
	assert.Equal(t, models.KindValidation, models.KindOf(err))
}

func TestJoinRoom(t *testing.T) {
	db := openTestDB(t)
	svc := NewRoomService(db)
	admin := createUser(t, db, "admin")
	joiner := createUser(t, db, "joiner")
	room := createRoom(t, db, "JOINROOM", admin)

	_, err := svc.JoinRoom(room.Code, joiner.ID)
	require.NoError(t, err)

	member := svc.GetMember(room.ID, joiner.ID)
	require.NotNil(t, member)
	assert.False(t, member.IsAdmin)

	_, err = svc.JoinRoom(room.Code, joiner.ID)
	require.Error(t, err)
	assert.Equal(t, models.KindConflict, models.KindOf(err))

	_, err = svc.JoinRoom("NOSUCHRM", joiner.ID)
	require.Error(t, err)
	assert.Equal(t, models.KindNotFound, models.KindOf(err))
}

func TestLeaveRoomSoleAdminWithMembersBlocked(t *testing.T) {
	db := openTestDB(t)
	svc := NewRoomService(db)
	admin := createUser(t, db, "admin")
	member := createUser(t, db, "member")
	room := createRoom(t, db, "LEAVERM1", admin)
	addMember(t, db, room, member, false)

	err := svc.LeaveRoom(room.Code, admin.ID)
	require.Error(t, err)
	assert.Equal(t, models.KindInvalidState, models.KindOf(err))

	// After promoting another admin the original one may leave.
	require.NoError(t, svc.SetRole(room.Code, admin.ID, member.ID, true))
	require.NoError(t, svc.LeaveRoom(room.Code, admin.ID))
	assert.Nil(t, svc.GetMember(room.ID, admin.ID))
}

func TestLeaveRoomLastMemberDeletesRoom(t *testing.T) {
	db := openTestDB(t)
	svc := NewRoomService(db)
	admin := createUser(t, db, "admin")
	room := createRoom(t, db, "LEAVERM2", admin)

	require.NoError(t, svc.LeaveRoom(room.Code, admin.ID))

	_, err := svc.GetRoomByCode(room.Code)
	require.Error(t, err)
	assert.Equal(t, models.KindNotFound, models.KindOf(err))
}

func TestLeaveRoomNonMember(t *testing.T) {
	db := openTestDB(t)
	svc := NewRoomService(db)
	admin := createUser(t, db, "admin")
	stranger := createUser(t, db, "stranger")
	room := createRoom(t, db, "LEAVERM3", admin)

	err := svc.LeaveRoom(room.Code, stranger.ID)
	require.Error(t, err)
	assert.Equal(t, models.KindNotFound, models.KindOf(err))
}

func TestSetRole(t *testing.T) {
	db := openTestDB(t)
	svc := NewRoomService(db)
	admin := createUser(t, db, "admin")
	member := createUser(t, db, "member")
	room := createRoom(t, db, "ROLEROOM", admin)
	addMember(t, db, room, member, false)

	// Non-admin actors cannot change roles.
	err := svc.SetRole(room.Code, member.ID, admin.ID, false)
	require.Error(t, err)
	assert.Equal(t, models.KindPermissionDenied, models.KindOf(err))

	// Demoting the only admin is blocked even for themselves.
	err = svc.SetRole(room.Code, admin.ID, admin.ID, false)
	require.Error(t, err)
	assert.Equal(t, models.KindInvalidState, models.KindOf(err))

	// Promote, then demotion of the original admin succeeds.
	require.NoError(t, svc.SetRole(room.Code, admin.ID, member.ID, true))
	require.NoError(t, svc.SetRole(room.Code, admin.ID, admin.ID, false))

	demoted := svc.GetMember(room.ID, admin.ID)
	require.NotNil(t, demoted)
	assert.False(t, demoted.IsAdmin)
}

func TestSetRoleUnknownTarget(t *testing.T) {
	db := openTestDB(t)
	svc := NewRoomService(db)
	admin := createUser(t, db, "admin")
	stranger := createUser(t, db, "stranger")
	room := createRoom(t, db, "ROLERM2X", admin)

	err := svc.SetRole(room.Code, admin.ID, stranger.ID, true)
	require.Error(t, err)
	assert.Equal(t, models.KindNotFound, models.KindOf(err))
}

func TestUpdateRoomAdminOnly(t *testing.T) {
	db := openTestDB(t)
	svc := NewRoomService(db)
	admin := createUser(t, db, "admin")
	member := createUser(t, db, "member")
	room := createRoom(t, db, "UPDATERM", admin)
	addMember(t, db, room, member, false)

	name := "Renamed"
	private := false
	_, err := svc.UpdateRoom(room.Code, member.ID, UpdateRoomInput{Name: &name})
	require.Error(t, err)
	assert.Equal(t, models.KindPermissionDenied, models.KindOf(err))

	updated, err := svc.UpdateRoom(room.Code, admin.ID, UpdateRoomInput{Name: &name, IsPublic: &private})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)
	assert.False(t, updated.IsPublic)
}

func TestDeleteRoomCascades(t *testing.T) {
	db := openTestDB(t)
	svc := NewRoomService(db)
	xp := NewXPService(db)

	admin := createUser(t, db, "admin")
	member := createUser(t, db, "member")
	room := createRoom(t, db, "DELETERM", admin)
	addMember(t, db, room, member, false)
	task := createTask(t, db, room, "task", 40, time.Now().Add(time.Hour))
	require.NoError(t, db.Create(&models.Submission{TaskID: task.ID, UserID: member.ID, FilePath: "f", Status: models.SubmissionStatusVerified, SubmittedAt: time.Now()}).Error)

	err := svc.DeleteRoom(room.Code, member.ID)
	require.Error(t, err)
	assert.Equal(t, models.KindPermissionDenied, models.KindOf(err))

	require.NoError(t, svc.DeleteRoom(room.Code, admin.ID))

	var taskCount, subCount, memberCount int64
	db.Model(&models.Task{}).Where("room_id = ?", room.ID).Count(&taskCount)
	db.Model(&models.Submission{}).Where("task_id = ?", task.ID).Count(&subCount)
	db.Model(&models.RoomMember{}).Where("room_id = ?", room.ID).Count(&memberCount)
	assert.Zero(t, taskCount)
	assert.Zero(t, subCount)
	assert.Zero(t, memberCount)

	total, err := xp.TotalXP(member.ID)
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestSetArchived(t *testing.T) {
	db := openTestDB(t)
	svc := NewRoomService(db)
	admin := createUser(t, db, "admin")
	room := createRoom(t, db, "ARCHIVRM", admin)

	require.NoError(t, svc.SetArchived(room.Code, admin.ID, true))
	rooms, err := svc.MyRooms(admin.ID)
	require.NoError(t, err)
	require.Len(t, rooms, 1)
	assert.True(t, rooms[0].Archived)

	require.NoError(t, svc.SetArchived(room.Code, admin.ID, false))
	rooms, _ = svc.MyRooms(admin.ID)
	assert.False(t, rooms[0].Archived)
}
