package enrollment

import (
	"fmt"
	"strings"
	"testing"

	"lms/models"
	roadmapModels "lms/models/roadmap"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestService opens a fresh in-memory sqlite database per test. The DSN is
// keyed on the test name so parallel tests never share state.
func newTestService(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&roadmapModels.Category{},
		&roadmapModels.Roadmap{},
		&roadmapModels.Lesson{},
		&roadmapModels.Enrollment{},
		&roadmapModels.LessonProgress{},
		&roadmapModels.Certificate{},
	)
	require.NoError(t, err)

	return NewService(db), db
}

func createUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	user := &models.User{
		Name:     "Test User",
		Email:    email,
		Password: "hashed",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createCategory(t *testing.T, db *gorm.DB, name string) *roadmapModels.Category {
	t.Helper()

	cat := &roadmapModels.Category{Name: name}
	require.NoError(t, db.Create(cat).Error)
	return cat
}

func createRoadmap(t *testing.T, db *gorm.DB, categoryID uint) *roadmapModels.Roadmap {
	t.Helper()

	rm := &roadmapModels.Roadmap{
		Title:       "Test Roadmap",
		CategoryID:  categoryID,
		Status:      "ACTIVE",
		IsPublished: true,
	}
	require.NoError(t, db.Create(rm).Error)
	return rm
}

func createLessons(t *testing.T, db *gorm.DB, roadmapID uint, count int) []roadmapModels.Lesson {
	t.Helper()

	lessons := make([]roadmapModels.Lesson, count)
	for i := 0; i < count; i++ {
		lessons[i] = roadmapModels.Lesson{
			RoadmapID:  roadmapID,
			Title:      fmt.Sprintf("Lesson %d", i+1),
			OrderIndex: i,
			IsActive:   true,
		}
		require.NoError(t, db.Create(&lessons[i]).Error)
	}
	return lessons
}

// seedEnrollment creates a user, an ACTIVE published roadmap with the given
// number of lessons and enrolls the user.
func seedEnrollment(t *testing.T, svc *Service, db *gorm.DB, lessonCount int) (*models.User, *roadmapModels.Roadmap, []roadmapModels.Lesson) {
	t.Helper()

	user := createUser(t, db, fmt.Sprintf("%s@example.com", strings.ToLower(strings.ReplaceAll(t.Name(), "/", "."))))
	cat := createCategory(t, db, "Backend")
	rm := createRoadmap(t, db, cat.ID)
	lessons := createLessons(t, db, rm.ID, lessonCount)

	_, err := svc.Enroll(user.ID, rm.ID)
	require.NoError(t, err)

	return user, rm, lessons
}

func floatPtr(v float64) *float64 {
	return &v
}
