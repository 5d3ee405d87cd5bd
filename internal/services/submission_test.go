package services

import (
	"testing"
	"time"

	"github.com/MoamenFouad/UniQuest/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func submissionFixture(t *testing.T) (*gorm.DB, *SubmissionService, *XPService, *models.User, *models.User, *models.Task, time.Time) {
	t.Helper()
	db := openTestDB(t)
	svc := NewSubmissionService(db, NewRoomService(db))
	xp := NewXPService(db)
	admin := createUser(t, db, "admin")
	member := createUser(t, db, "member")
	room := createRoom(t, db, "SUBMROOM", admin)
	addMember(t, db, room, member, false)
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	task := createTask(t, db, room, "quest", 50, now.Add(time.Hour))
	return db, svc, xp, admin, member, task, now
}

func TestSubmitVerifyAwardsXPOnce(t *testing.T) {
	_, svc, xp, admin, member, task, now := submissionFixture(t)

	sub, err := svc.Submit(task.ID, member.ID, "proof.pdf", now)
	require.NoError(t, err)
	assert.Equal(t, models.SubmissionStatusPending, sub.Status)

	// Pending alone grants nothing.
	total, err := xp.TotalXP(member.ID)
	require.NoError(t, err)
	assert.Zero(t, total)

	verified, err := svc.Verify(task.ID, sub.ID, admin.ID, models.SubmissionStatusVerified, now.Add(time.Minute))
	require.NoError(t, err)
	assert.Equal(t, models.SubmissionStatusVerified, verified.Status)
	require.NotNil(t, verified.ReviewedAt)
	require.NotNil(t, verified.ReviewerID)
	assert.Equal(t, admin.ID, *verified.ReviewerID)

	total, err = xp.TotalXP(member.ID)
	require.NoError(t, err)
	assert.Equal(t, 50, total)

	// Resubmitting a verified task conflicts.
	_, err = svc.Submit(task.ID, member.ID, "again.pdf", now.Add(2*time.Minute))
	require.Error(t, err)
	assert.Equal(t, models.KindConflict, models.KindOf(err))

	// Verification is final; a second verify cannot double-credit.
	_, err = svc.Verify(task.ID, verified.ID, admin.ID, models.SubmissionStatusVerified, now.Add(3*time.Minute))
	require.Error(t, err)
	assert.Equal(t, models.KindInvalidState, models.KindOf(err))

	total, err = xp.TotalXP(member.ID)
	require.NoError(t, err)
	assert.Equal(t, 50, total)
}

func TestSubmitDuplicatePendingConflicts(t *testing.T) {
	_, svc, _, _, member, task, now := submissionFixture(t)

	_, err := svc.Submit(task.ID, member.ID, "one.pdf", now)
	require.NoError(t, err)

	_, err = svc.Submit(task.ID, member.ID, "two.pdf", now.Add(time.Minute))
	require.Error(t, err)
	assert.Equal(t, models.KindConflict, models.KindOf(err))
}

func TestSubmitAfterDeadlineForbidden(t *testing.T) {
	_, svc, _, _, member, task, now := submissionFixture(t)

	late := now.Add(2 * time.Hour)
	_, err := svc.Submit(task.ID, member.ID, "late.pdf", late)
	require.Error(t, err)
	assert.Equal(t, models.KindForbidden, models.KindOf(err))
}

func TestSubmitRequiresMembership(t *testing.T) {
	db, svc, _, _, _, task, now := submissionFixture(t)
	stranger := createUser(t, db, "stranger")

	_, err := svc.Submit(task.ID, stranger.ID, "nope.pdf", now)
	require.Error(t, err)
	assert.Equal(t, models.KindPermissionDenied, models.KindOf(err))
}

func TestRejectThenResubmitThenVerify(t *testing.T) {
	_, svc, xp, admin, member, task, now := submissionFixture(t)

	sub, err := svc.Submit(task.ID, member.ID, "v1.pdf", now)
	require.NoError(t, err)

	rejected, err := svc.Verify(task.ID, sub.ID, admin.ID, models.SubmissionStatusRejected, now.Add(time.Minute))
	require.NoError(t, err)
	assert.Equal(t, models.SubmissionStatusRejected, rejected.Status)

	// Rejection grants nothing.
	total, err := xp.TotalXP(member.ID)
	require.NoError(t, err)
	assert.Zero(t, total)

	// Resubmission resets the same row to pending and clears review metadata.
	resub, err := svc.Submit(task.ID, member.ID, "v2.pdf", now.Add(2*time.Minute))
	require.NoError(t, err)
	assert.Equal(t, sub.ID, resub.ID)
	assert.Equal(t, models.SubmissionStatusPending, resub.Status)
	assert.Equal(t, "v2.pdf", resub.FilePath)
	assert.Nil(t, resub.ReviewedAt)
	assert.Nil(t, resub.ReviewerID)

	_, err = svc.Verify(task.ID, resub.ID, admin.ID, models.SubmissionStatusVerified, now.Add(3*time.Minute))
	require.NoError(t, err)

	// Exactly one credit across the whole reject/resubmit cycle.
	total, err = xp.TotalXP(member.ID)
	require.NoError(t, err)
	assert.Equal(t, 50, total)
}

func TestVerifyRequiresAdmin(t *testing.T) {
	_, svc, _, _, member, task, now := submissionFixture(t)

	sub, err := svc.Submit(task.ID, member.ID, "proof.pdf", now)
	require.NoError(t, err)

	_, err = svc.Verify(task.ID, sub.ID, member.ID, models.SubmissionStatusVerified, now)
	require.Error(t, err)
	assert.Equal(t, models.KindPermissionDenied, models.KindOf(err))
}

func TestVerifyRejectedAwaitsResubmission(t *testing.T) {
	_, svc, _, admin, member, task, now := submissionFixture(t)

	sub, err := svc.Submit(task.ID, member.ID, "proof.pdf", now)
	require.NoError(t, err)
	_, err = svc.Verify(task.ID, sub.ID, admin.ID, models.SubmissionStatusRejected, now.Add(time.Minute))
	require.NoError(t, err)

	_, err = svc.Verify(task.ID, sub.ID, admin.ID, models.SubmissionStatusVerified, now.Add(2*time.Minute))
	require.Error(t, err)
	assert.Equal(t, models.KindInvalidState, models.KindOf(err))
}

func TestVerifyWrongTask(t *testing.T) {
	db, svc, _, admin, member, task, now := submissionFixture(t)

	sub, err := svc.Submit(task.ID, member.ID, "proof.pdf", now)
	require.NoError(t, err)

	var room models.Room
	require.NoError(t, db.First(&room, task.RoomID).Error)
	other := createTask(t, db, &room, "other quest", 10, now.Add(time.Hour))

	_, err = svc.Verify(other.ID, sub.ID, admin.ID, models.SubmissionStatusVerified, now)
	require.Error(t, err)
	assert.Equal(t, models.KindNotFound, models.KindOf(err))
}

func TestVerifyInvalidDecision(t *testing.T) {
	_, svc, _, admin, member, task, now := submissionFixture(t)

	sub, err := svc.Submit(task.ID, member.ID, "proof.pdf", now)
	require.NoError(t, err)

	_, err = svc.Verify(task.ID, sub.ID, admin.ID, "approved", now)
	require.Error(t, err)
	assert.Equal(t, models.KindValidation, models.KindOf(err))
}

func TestListSubmissionsAdminOnly(t *testing.T) {
	_, svc, _, admin, member, task, now := submissionFixture(t)

	_, err := svc.Submit(task.ID, member.ID, "proof.pdf", now)
	require.NoError(t, err)

	_, err = svc.ListSubmissions(task.ID, member.ID)
	require.Error(t, err)
	assert.Equal(t, models.KindPermissionDenied, models.KindOf(err))

	views, err := svc.ListSubmissions(task.ID, admin.ID)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "member", views[0].Username)
}
