package enrollment

import (
	"errors"
	"fmt"
	"time"

	"lms/models"
	roadmapModels "lms/models/roadmap"

	"gorm.io/gorm"
)

// Enroll creates an enrollment for the user in the roadmap and bumps the
// roadmap's cached enrolled-count in the same transaction. Returns
// ErrAlreadyEnrolled if an enrollment exists.
func (s *Service) Enroll(userID, roadmapID uint) (*roadmapModels.Enrollment, error) {
	var enr roadmapModels.Enrollment

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return err
		}

		var rm roadmapModels.Roadmap
		if err := tx.Where("id = ? AND is_deleted = ? AND status = ? AND is_published = ?",
			roadmapID, false, "ACTIVE", true).First(&rm).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRoadmapNotFound
			}
			return err
		}

		var existing roadmapModels.Enrollment
		err := tx.Where("user_id = ? AND roadmap_id = ?", userID, roadmapID).First(&existing).Error
		if err == nil {
			return ErrAlreadyEnrolled
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		now := time.Now()
		enr = roadmapModels.Enrollment{
			UserID:         userID,
			RoadmapID:      roadmapID,
			EnrolledAt:     now,
			LastAccessedAt: now,
		}
		if err := tx.Create(&enr).Error; err != nil {
			return err
		}

		// Atomic counter update, never read-modify-write
		return tx.Model(&roadmapModels.Roadmap{}).Where("id = ?", roadmapID).
			UpdateColumn("enrolled_count", gorm.Expr("enrolled_count + 1")).Error
	})
	if err != nil {
		return nil, err
	}

	return &enr, nil
}

// Unenroll removes the enrollment and every lesson-progress row the user has
// under the roadmap, and decrements the roadmap's enrolled-count. All three
// happen in one transaction so progress rows never outlive their enrollment.
// Returns false without error when the user was never enrolled.
func (s *Service) Unenroll(userID, roadmapID uint) (bool, error) {
	removed := false

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var enr roadmapModels.Enrollment
		if err := tx.Where("user_id = ? AND roadmap_id = ?", userID, roadmapID).First(&enr).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil // not enrolled is not an error
			}
			return err
		}

		// Cascade cleanup: stale progress rows must not resurrect aggregates
		// on re-enrollment
		if err := tx.Where("user_id = ? AND roadmap_id = ?", userID, roadmapID).
			Delete(&roadmapModels.LessonProgress{}).Error; err != nil {
			return err
		}

		if err := tx.Delete(&enr).Error; err != nil {
			return err
		}

		if err := tx.Model(&roadmapModels.Roadmap{}).
			Where("id = ? AND enrolled_count > 0", roadmapID).
			UpdateColumn("enrolled_count", gorm.Expr("enrolled_count - 1")).Error; err != nil {
			return err
		}

		removed = true
		return nil
	})
	if err != nil {
		return false, err
	}

	return removed, nil
}

// IsEnrolled reports whether the user has an enrollment for the roadmap.
func (s *Service) IsEnrolled(userID, roadmapID uint) (bool, error) {
	var count int64
	err := s.db.Model(&roadmapModels.Enrollment{}).
		Where("user_id = ? AND roadmap_id = ?", userID, roadmapID).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// GetEnrollment returns the user's enrollment for the roadmap.
func (s *Service) GetEnrollment(userID, roadmapID uint) (*roadmapModels.Enrollment, error) {
	var enr roadmapModels.Enrollment
	err := s.db.Where("user_id = ? AND roadmap_id = ?", userID, roadmapID).First(&enr).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEnrollmentNotFound
		}
		return nil, err
	}
	return &enr, nil
}

// ListEnrollments returns the user's enrollments, newest first. Status filters
// the result: "completed" keeps completed ones, "active" keeps the rest, any
// other value keeps all.
func (s *Service) ListEnrollments(userID uint, status string) ([]roadmapModels.Enrollment, error) {
	db := s.db.Where("user_id = ?", userID)

	switch status {
	case "completed":
		db = db.Where("is_completed = ?", true)
	case "active":
		db = db.Where("is_completed = ?", false)
	}

	var enrollments []roadmapModels.Enrollment
	if err := db.Order("enrolled_at desc").Find(&enrollments).Error; err != nil {
		return nil, err
	}
	return enrollments, nil
}

// UpdateProgressManually overrides the derived progress fields directly,
// without touching lesson-progress rows. It is a one-time correction: the next
// recalculation recomputes the fields from lesson progress and overwrites it
// (last write wins). Completion stays one-directional here too.
func (s *Service) UpdateProgressManually(userID, roadmapID uint, progress float64, averageScore *float64) (*roadmapModels.Enrollment, error) {
	if progress < 0 || progress > 100 {
		return nil, ErrInvalidProgress
	}
	if averageScore != nil && (*averageScore < 0 || *averageScore > 100) {
		return nil, ErrInvalidScore
	}

	var enr roadmapModels.Enrollment
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ? AND roadmap_id = ?", userID, roadmapID).First(&enr).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrEnrollmentNotFound
			}
			return err
		}

		now := time.Now()
		enr.Progress = progress
		if averageScore != nil {
			enr.AverageScore = *averageScore
		}
		if enr.Progress >= 100 && !enr.IsCompleted {
			enr.IsCompleted = true
			enr.CompletedAt = &now
		}
		enr.LastAccessedAt = now

		return tx.Save(&enr).Error
	})
	if err != nil {
		return nil, err
	}

	return &enr, nil
}

// BulkEnroll enrolls up to the configured limit of users into a roadmap.
// Best-effort per item: each user enrolls in its own transaction and failures
// are collected instead of aborting the batch.
func (s *Service) BulkEnroll(roadmapID uint, userIDs []uint, limit int) (*BulkEnrollResult, error) {
	if len(userIDs) == 0 {
		return nil, ErrEmptyBulkRequest
	}
	if limit > 0 && len(userIDs) > limit {
		return nil, fmt.Errorf("%w: got %d users, limit is %d", ErrBulkLimitExceeded, len(userIDs), limit)
	}

	var rm roadmapModels.Roadmap
	if err := s.db.Where("id = ? AND is_deleted = ? AND status = ? AND is_published = ?",
		roadmapID, false, "ACTIVE", true).First(&rm).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoadmapNotFound
		}
		return nil, err
	}

	result := &BulkEnrollResult{
		Successful: make([]uint, 0, len(userIDs)),
		Failed:     make([]BulkEnrollFailure, 0),
	}

	for _, userID := range userIDs {
		if _, err := s.Enroll(userID, roadmapID); err != nil {
			result.Failed = append(result.Failed, BulkEnrollFailure{
				UserID: userID,
				Reason: err.Error(),
			})
			continue
		}
		result.Successful = append(result.Successful, userID)
	}

	return result, nil
}
