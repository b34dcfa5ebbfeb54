package enrollment

import (
	"testing"

	roadmapModels "lms/models/roadmap"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecalculateProgressPercent(t *testing.T) {
	svc, db := newTestService(t)
	user, rm, lessons := seedEnrollment(t, svc, db, 4)

	_, err := svc.RecordLessonProgress(user.ID, lessons[0].ID, floatPtr(80), true)
	require.NoError(t, err)

	enr, err := svc.GetEnrollment(user.ID, rm.ID)
	require.NoError(t, err)
	assert.InDelta(t, 25.0, enr.Progress, 0.001)
	assert.InDelta(t, 80.0, enr.AverageScore, 0.001)
	assert.False(t, enr.IsCompleted)
	assert.Nil(t, enr.CompletedAt)
}

func TestRecalculateIdempotent(t *testing.T) {
	svc, db := newTestService(t)
	user, rm, lessons := seedEnrollment(t, svc, db, 3)

	_, err := svc.RecordLessonProgress(user.ID, lessons[0].ID, floatPtr(70), true)
	require.NoError(t, err)
	_, err = svc.RecordLessonProgress(user.ID, lessons[1].ID, nil, true)
	require.NoError(t, err)

	first, err := svc.Recalculate(user.ID, rm.ID)
	require.NoError(t, err)
	second, err := svc.Recalculate(user.ID, rm.ID)
	require.NoError(t, err)

	assert.Equal(t, first.Progress, second.Progress)
	assert.Equal(t, first.AverageScore, second.AverageScore)
	assert.Equal(t, first.IsCompleted, second.IsCompleted)
	assert.Equal(t, first.CompletedAt, second.CompletedAt)
}

func TestCompletionBoundary(t *testing.T) {
	svc, db := newTestService(t)
	user, rm, lessons := seedEnrollment(t, svc, db, 1)

	_, err := svc.RecordLessonProgress(user.ID, lessons[0].ID, floatPtr(95), true)
	require.NoError(t, err)

	enr, err := svc.GetEnrollment(user.ID, rm.ID)
	require.NoError(t, err)
	assert.InDelta(t, 100.0, enr.Progress, 0.001)
	assert.True(t, enr.IsCompleted)
	require.NotNil(t, enr.CompletedAt)
}

func TestRecalculateZeroLessonRoadmap(t *testing.T) {
	svc, db := newTestService(t)
	user, rm, _ := seedEnrollment(t, svc, db, 0)

	enr, err := svc.Recalculate(user.ID, rm.ID)
	require.NoError(t, err)
	assert.Zero(t, enr.Progress)
	assert.Zero(t, enr.AverageScore)
	assert.False(t, enr.IsCompleted)
}

func TestRecalculateNotEnrolled(t *testing.T) {
	svc, db := newTestService(t)
	user := createUser(t, db, "loner@example.com")
	cat := createCategory(t, db, "Backend")
	rm := createRoadmap(t, db, cat.ID)

	_, err := svc.Recalculate(user.ID, rm.ID)
	assert.ErrorIs(t, err, ErrEnrollmentNotFound)
}

func TestCompletionIsOneDirectional(t *testing.T) {
	svc, db := newTestService(t)
	user, rm, lessons := seedEnrollment(t, svc, db, 2)

	for _, lesson := range lessons {
		_, err := svc.RecordLessonProgress(user.ID, lesson.ID, nil, true)
		require.NoError(t, err)
	}

	enr, err := svc.GetEnrollment(user.ID, rm.ID)
	require.NoError(t, err)
	require.True(t, enr.IsCompleted)
	completedAt := enr.CompletedAt

	// Un-completing a lesson drops progress but never the completion flag
	_, err = svc.RecordLessonProgress(user.ID, lessons[0].ID, nil, false)
	require.NoError(t, err)

	enr, err = svc.GetEnrollment(user.ID, rm.ID)
	require.NoError(t, err)
	assert.InDelta(t, 50.0, enr.Progress, 0.001)
	assert.True(t, enr.IsCompleted)
	require.NotNil(t, enr.CompletedAt)
	assert.WithinDuration(t, *completedAt, *enr.CompletedAt, 0)
}

func TestRecordLessonProgressUpsert(t *testing.T) {
	svc, db := newTestService(t)
	user, _, lessons := seedEnrollment(t, svc, db, 2)

	_, err := svc.RecordLessonProgress(user.ID, lessons[0].ID, floatPtr(40), false)
	require.NoError(t, err)
	_, err = svc.RecordLessonProgress(user.ID, lessons[0].ID, floatPtr(90), true)
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Model(&roadmapModels.LessonProgress{}).
		Where("user_id = ? AND lesson_id = ?", user.ID, lessons[0].ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	var row roadmapModels.LessonProgress
	require.NoError(t, db.Where("user_id = ? AND lesson_id = ?", user.ID, lessons[0].ID).First(&row).Error)
	assert.True(t, row.IsCompleted)
	require.NotNil(t, row.Score)
	assert.InDelta(t, 90.0, *row.Score, 0.001)
	assert.NotNil(t, row.CompletedAt)
}

func TestCompletedAtTracksCompletion(t *testing.T) {
	svc, db := newTestService(t)
	user, _, lessons := seedEnrollment(t, svc, db, 1)

	row, err := svc.RecordLessonProgress(user.ID, lessons[0].ID, nil, false)
	require.NoError(t, err)
	assert.Nil(t, row.CompletedAt)

	row, err = svc.RecordLessonProgress(user.ID, lessons[0].ID, nil, true)
	require.NoError(t, err)
	require.NotNil(t, row.CompletedAt)
	stamped := *row.CompletedAt

	// A second completed write keeps the original stamp
	row, err = svc.RecordLessonProgress(user.ID, lessons[0].ID, floatPtr(60), true)
	require.NoError(t, err)
	require.NotNil(t, row.CompletedAt)
	assert.WithinDuration(t, stamped, *row.CompletedAt, 0)

	row, err = svc.RecordLessonProgress(user.ID, lessons[0].ID, nil, false)
	require.NoError(t, err)
	assert.Nil(t, row.CompletedAt)
}

func TestRecordLessonProgressValidation(t *testing.T) {
	svc, db := newTestService(t)
	user, _, lessons := seedEnrollment(t, svc, db, 1)

	_, err := svc.RecordLessonProgress(user.ID, lessons[0].ID, floatPtr(101), true)
	assert.ErrorIs(t, err, ErrInvalidScore)

	_, err = svc.RecordLessonProgress(user.ID, lessons[0].ID, floatPtr(-1), true)
	assert.ErrorIs(t, err, ErrInvalidScore)
}

func TestRecordLessonProgressRequiresEnrollment(t *testing.T) {
	svc, db := newTestService(t)
	user := createUser(t, db, "stranger@example.com")
	cat := createCategory(t, db, "Backend")
	rm := createRoadmap(t, db, cat.ID)
	lessons := createLessons(t, db, rm.ID, 1)

	_, err := svc.RecordLessonProgress(user.ID, lessons[0].ID, nil, true)
	assert.ErrorIs(t, err, ErrEnrollmentNotFound)
}

func TestAverageScoreIgnoresUnscoredLessons(t *testing.T) {
	svc, db := newTestService(t)
	user, rm, lessons := seedEnrollment(t, svc, db, 3)

	_, err := svc.RecordLessonProgress(user.ID, lessons[0].ID, floatPtr(60), true)
	require.NoError(t, err)
	_, err = svc.RecordLessonProgress(user.ID, lessons[1].ID, nil, true)
	require.NoError(t, err)

	enr, err := svc.GetEnrollment(user.ID, rm.ID)
	require.NoError(t, err)
	assert.InDelta(t, 60.0, enr.AverageScore, 0.001)
}

func TestInactiveLessonsExcludedFromRecalculation(t *testing.T) {
	svc, db := newTestService(t)
	user, rm, lessons := seedEnrollment(t, svc, db, 2)

	_, err := svc.RecordLessonProgress(user.ID, lessons[0].ID, nil, true)
	require.NoError(t, err)

	// Deactivating the completed lesson removes it from both numerator and
	// denominator
	require.NoError(t, db.Model(&roadmapModels.Lesson{}).
		Where("id = ?", lessons[0].ID).Update("is_active", false).Error)

	enr, err := svc.Recalculate(user.ID, rm.ID)
	require.NoError(t, err)
	assert.Zero(t, enr.Progress)
}

func TestResetProgress(t *testing.T) {
	svc, db := newTestService(t)
	user, rm, lessons := seedEnrollment(t, svc, db, 2)

	_, err := svc.RecordLessonProgress(user.ID, lessons[0].ID, floatPtr(88), true)
	require.NoError(t, err)

	enr, err := svc.ResetProgress(user.ID, rm.ID)
	require.NoError(t, err)
	assert.Zero(t, enr.Progress)
	assert.Zero(t, enr.AverageScore)

	var count int64
	require.NoError(t, db.Model(&roadmapModels.LessonProgress{}).
		Where("user_id = ? AND roadmap_id = ?", user.ID, rm.ID).Count(&count).Error)
	assert.Zero(t, count)
}
