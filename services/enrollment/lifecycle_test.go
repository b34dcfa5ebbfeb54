package enrollment

import (
	"fmt"
	"testing"

	roadmapModels "lms/models/roadmap"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnroll(t *testing.T) {
	svc, db := newTestService(t)
	user := createUser(t, db, "enroll@example.com")
	cat := createCategory(t, db, "Backend")
	rm := createRoadmap(t, db, cat.ID)

	enr, err := svc.Enroll(user.ID, rm.ID)
	require.NoError(t, err)
	assert.Equal(t, user.ID, enr.UserID)
	assert.Equal(t, rm.ID, enr.RoadmapID)
	assert.Zero(t, enr.Progress)
	assert.False(t, enr.IsCompleted)
	assert.False(t, enr.EnrolledAt.IsZero())

	var fresh roadmapModels.Roadmap
	require.NoError(t, db.First(&fresh, rm.ID).Error)
	assert.EqualValues(t, 1, fresh.EnrolledCount)
}

func TestEnrollDuplicate(t *testing.T) {
	svc, db := newTestService(t)
	user, rm, _ := seedEnrollment(t, svc, db, 1)

	_, err := svc.Enroll(user.ID, rm.ID)
	assert.ErrorIs(t, err, ErrAlreadyEnrolled)

	// State unchanged: still one enrollment, counter still 1
	var count int64
	require.NoError(t, db.Model(&roadmapModels.Enrollment{}).
		Where("user_id = ? AND roadmap_id = ?", user.ID, rm.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	var fresh roadmapModels.Roadmap
	require.NoError(t, db.First(&fresh, rm.ID).Error)
	assert.EqualValues(t, 1, fresh.EnrolledCount)
}

func TestEnrollUnknownRoadmap(t *testing.T) {
	svc, db := newTestService(t)
	user := createUser(t, db, "nobody@example.com")

	_, err := svc.Enroll(user.ID, 9999)
	assert.ErrorIs(t, err, ErrRoadmapNotFound)
}

func TestEnrollUnpublishedRoadmap(t *testing.T) {
	svc, db := newTestService(t)
	user := createUser(t, db, "early@example.com")
	cat := createCategory(t, db, "Backend")
	rm := &roadmapModels.Roadmap{Title: "Draft", CategoryID: cat.ID, Status: "DRAFT"}
	require.NoError(t, db.Create(rm).Error)

	_, err := svc.Enroll(user.ID, rm.ID)
	assert.ErrorIs(t, err, ErrRoadmapNotFound)
}

func TestEnrollUnknownUser(t *testing.T) {
	svc, db := newTestService(t)
	cat := createCategory(t, db, "Backend")
	rm := createRoadmap(t, db, cat.ID)

	_, err := svc.Enroll(4242, rm.ID)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUnenrollCascade(t *testing.T) {
	svc, db := newTestService(t)
	user, rm, lessons := seedEnrollment(t, svc, db, 3)

	for _, lesson := range lessons {
		_, err := svc.RecordLessonProgress(user.ID, lesson.ID, floatPtr(75), true)
		require.NoError(t, err)
	}

	removed, err := svc.Unenroll(user.ID, rm.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	// No progress rows may survive the enrollment
	var progressCount int64
	require.NoError(t, db.Model(&roadmapModels.LessonProgress{}).
		Where("user_id = ? AND roadmap_id = ?", user.ID, rm.ID).Count(&progressCount).Error)
	assert.Zero(t, progressCount)

	var enrollmentCount int64
	require.NoError(t, db.Model(&roadmapModels.Enrollment{}).
		Where("user_id = ? AND roadmap_id = ?", user.ID, rm.ID).Count(&enrollmentCount).Error)
	assert.Zero(t, enrollmentCount)

	var fresh roadmapModels.Roadmap
	require.NoError(t, db.First(&fresh, rm.ID).Error)
	assert.EqualValues(t, 0, fresh.EnrolledCount)
}

func TestUnenrollNotEnrolled(t *testing.T) {
	svc, db := newTestService(t)
	user := createUser(t, db, "ghost@example.com")
	cat := createCategory(t, db, "Backend")
	rm := createRoadmap(t, db, cat.ID)

	removed, err := svc.Unenroll(user.ID, rm.ID)
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestReEnrollAfterUnenrollStartsClean(t *testing.T) {
	svc, db := newTestService(t)
	user, rm, lessons := seedEnrollment(t, svc, db, 1)

	_, err := svc.RecordLessonProgress(user.ID, lessons[0].ID, floatPtr(100), true)
	require.NoError(t, err)

	removed, err := svc.Unenroll(user.ID, rm.ID)
	require.NoError(t, err)
	require.True(t, removed)

	enr, err := svc.Enroll(user.ID, rm.ID)
	require.NoError(t, err)
	assert.Zero(t, enr.Progress)
	assert.False(t, enr.IsCompleted)
}

func TestUpdateProgressManually(t *testing.T) {
	svc, db := newTestService(t)
	user, rm, _ := seedEnrollment(t, svc, db, 4)

	// Override works without any lesson-progress rows
	enr, err := svc.UpdateProgressManually(user.ID, rm.ID, 57, nil)
	require.NoError(t, err)
	assert.InDelta(t, 57.0, enr.Progress, 0.001)
	assert.False(t, enr.IsCompleted)

	enr, err = svc.UpdateProgressManually(user.ID, rm.ID, 100, floatPtr(91))
	require.NoError(t, err)
	assert.True(t, enr.IsCompleted)
	assert.NotNil(t, enr.CompletedAt)
	assert.InDelta(t, 91.0, enr.AverageScore, 0.001)
}

func TestUpdateProgressManuallyValidation(t *testing.T) {
	svc, db := newTestService(t)
	user, rm, _ := seedEnrollment(t, svc, db, 1)

	_, err := svc.UpdateProgressManually(user.ID, rm.ID, -1, nil)
	assert.ErrorIs(t, err, ErrInvalidProgress)

	_, err = svc.UpdateProgressManually(user.ID, rm.ID, 101, nil)
	assert.ErrorIs(t, err, ErrInvalidProgress)

	_, err = svc.UpdateProgressManually(user.ID, rm.ID, 50, floatPtr(150))
	assert.ErrorIs(t, err, ErrInvalidScore)
}

func TestManualOverrideOverwrittenByRecalculation(t *testing.T) {
	svc, db := newTestService(t)
	user, rm, lessons := seedEnrollment(t, svc, db, 2)

	_, err := svc.RecordLessonProgress(user.ID, lessons[0].ID, nil, true)
	require.NoError(t, err)

	_, err = svc.UpdateProgressManually(user.ID, rm.ID, 95, nil)
	require.NoError(t, err)

	// The next recalculation rederives from lesson progress; the override is
	// a one-time correction
	enr, err := svc.Recalculate(user.ID, rm.ID)
	require.NoError(t, err)
	assert.InDelta(t, 50.0, enr.Progress, 0.001)
}

func TestBulkEnroll(t *testing.T) {
	svc, db := newTestService(t)
	cat := createCategory(t, db, "Backend")
	rm := createRoadmap(t, db, cat.ID)

	userIDs := make([]uint, 0, 5)
	for i := 0; i < 5; i++ {
		user := createUser(t, db, fmt.Sprintf("bulk%d@example.com", i))
		userIDs = append(userIDs, user.ID)
	}

	// Pre-enroll one user so exactly one item fails
	_, err := svc.Enroll(userIDs[2], rm.ID)
	require.NoError(t, err)

	result, err := svc.BulkEnroll(rm.ID, userIDs, 100)
	require.NoError(t, err)
	assert.Len(t, result.Successful, 4)
	require.Len(t, result.Failed, 1)
	assert.Equal(t, userIDs[2], result.Failed[0].UserID)
	assert.Contains(t, result.Failed[0].Reason, "already enrolled")

	var fresh roadmapModels.Roadmap
	require.NoError(t, db.First(&fresh, rm.ID).Error)
	assert.EqualValues(t, 5, fresh.EnrolledCount)
}

func TestBulkEnrollLimit(t *testing.T) {
	svc, db := newTestService(t)
	cat := createCategory(t, db, "Backend")
	rm := createRoadmap(t, db, cat.ID)

	_, err := svc.BulkEnroll(rm.ID, []uint{1, 2, 3}, 2)
	assert.ErrorIs(t, err, ErrBulkLimitExceeded)
}

func TestBulkEnrollEmpty(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.BulkEnroll(1, nil, 100)
	assert.ErrorIs(t, err, ErrEmptyBulkRequest)
}

func TestIsEnrolled(t *testing.T) {
	svc, db := newTestService(t)
	user, rm, _ := seedEnrollment(t, svc, db, 1)

	enrolled, err := svc.IsEnrolled(user.ID, rm.ID)
	require.NoError(t, err)
	assert.True(t, enrolled)

	enrolled, err = svc.IsEnrolled(user.ID, rm.ID+1)
	require.NoError(t, err)
	assert.False(t, enrolled)
}

func TestListEnrollmentsStatusFilter(t *testing.T) {
	svc, db := newTestService(t)
	user := createUser(t, db, "lister@example.com")
	cat := createCategory(t, db, "Backend")

	done := createRoadmap(t, db, cat.ID)
	lessons := createLessons(t, db, done.ID, 1)
	_, err := svc.Enroll(user.ID, done.ID)
	require.NoError(t, err)
	_, err = svc.RecordLessonProgress(user.ID, lessons[0].ID, nil, true)
	require.NoError(t, err)

	open := createRoadmap(t, db, cat.ID)
	_, err = svc.Enroll(user.ID, open.ID)
	require.NoError(t, err)

	all, err := svc.ListEnrollments(user.ID, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	completed, err := svc.ListEnrollments(user.ID, "completed")
	require.NoError(t, err)
	require.Len(t, completed, 1)
	assert.Equal(t, done.ID, completed[0].RoadmapID)

	active, err := svc.ListEnrollments(user.ID, "active")
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, open.ID, active[0].RoadmapID)
}
