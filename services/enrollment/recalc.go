package enrollment

import (
	"errors"
	"time"

	roadmapModels "lms/models/roadmap"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Recalculate rederives the enrollment's progress percentage, average score
// and completion flag from the user's lesson-progress rows. The reads and the
// enrollment write share one transaction so concurrent recalculations cannot
// interleave a stale write. Exactly one enrollment row is mutated; progress
// rows are never touched.
func (s *Service) Recalculate(userID, roadmapID uint) (*roadmapModels.Enrollment, error) {
	var enr roadmapModels.Enrollment

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ? AND roadmap_id = ?", userID, roadmapID).First(&enr).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrEnrollmentNotFound
			}
			return err
		}
		return recalculateTx(tx, &enr)
	})
	if err != nil {
		return nil, err
	}

	return &enr, nil
}

// recalculateTx runs the derivation inside the caller's transaction. Lesson
// progress rows only count when their lesson is still active; rows for
// deactivated lessons are ignored rather than deleted.
func recalculateTx(tx *gorm.DB, enr *roadmapModels.Enrollment) error {
	var lessonIDs []uint
	if err := tx.Model(&roadmapModels.Lesson{}).
		Where("roadmap_id = ? AND is_active = ? AND is_deleted = ?", enr.RoadmapID, true, false).
		Pluck("id", &lessonIDs).Error; err != nil {
		return err
	}

	completed := 0
	scoreSum := 0.0
	scored := 0

	if len(lessonIDs) > 0 {
		var rows []roadmapModels.LessonProgress
		if err := tx.Where("user_id = ? AND lesson_id IN ?", enr.UserID, lessonIDs).
			Find(&rows).Error; err != nil {
			return err
		}

		for _, row := range rows {
			if !row.IsCompleted {
				continue
			}
			completed++
			if row.Score != nil {
				scoreSum += *row.Score
				scored++
			}
		}
	}

	// Zero active lessons is defined as 0% progress, not a division error
	if len(lessonIDs) > 0 {
		enr.Progress = float64(completed) / float64(len(lessonIDs)) * 100
	} else {
		enr.Progress = 0
	}

	if scored > 0 {
		enr.AverageScore = scoreSum / float64(scored)
	} else {
		enr.AverageScore = 0
	}

	now := time.Now()
	if enr.Progress >= 100 && !enr.IsCompleted {
		enr.IsCompleted = true
		enr.CompletedAt = &now
	}
	// Completion is one-directional: a drop below 100 never clears the flag
	enr.LastAccessedAt = now

	return tx.Save(enr).Error
}

// RecordLessonProgress upserts the user's progress row for a lesson and, in
// the same transaction, recalculates the owning enrollment's aggregates. The
// upsert is keyed on the (user_id, lesson_id) unique index: first write
// creates the row, every later write mutates it.
func (s *Service) RecordLessonProgress(userID, lessonID uint, score *float64, completed bool) (*roadmapModels.LessonProgress, error) {
	if score != nil && (*score < 0 || *score > 100) {
		return nil, ErrInvalidScore
	}

	var row roadmapModels.LessonProgress

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var lesson roadmapModels.Lesson
		if err := tx.Where("id = ? AND is_active = ? AND is_deleted = ?", lessonID, true, false).
			First(&lesson).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrLessonNotFound
			}
			return err
		}

		var enr roadmapModels.Enrollment
		if err := tx.Where("user_id = ? AND roadmap_id = ?", userID, lesson.RoadmapID).
			First(&enr).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrEnrollmentNotFound
			}
			return err
		}

		// Find-or-create on the (user, lesson) key
		err := tx.Where("user_id = ? AND lesson_id = ?", userID, lessonID).First(&row).Error
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			row = roadmapModels.LessonProgress{
				UserID:    userID,
				LessonID:  lessonID,
				RoadmapID: lesson.RoadmapID,
			}
		}

		now := time.Now()
		if score != nil {
			row.Score = score
		}
		if completed && !row.IsCompleted {
			// CompletedAt is stamped exactly on the false-to-true transition
			row.CompletedAt = &now
		}
		if !completed {
			row.CompletedAt = nil
		}
		row.IsCompleted = completed

		if row.ID == 0 {
			// OnConflict backstop: a concurrent first write for the same
			// (user, lesson) pair collapses into an update instead of a
			// unique-index violation
			if err := tx.Clauses(clause.OnConflict{
				Columns: []clause.Column{{Name: "user_id"}, {Name: "lesson_id"}},
				DoUpdates: clause.AssignmentColumns([]string{
					"score", "is_completed", "completed_at", "updated_at",
				}),
			}).Create(&row).Error; err != nil {
				return err
			}
		} else {
			if err := tx.Save(&row).Error; err != nil {
				return err
			}
		}

		// Synchronous, same transaction: the aggregate may never lag the fact
		return recalculateTx(tx, &enr)
	})
	if err != nil {
		return nil, err
	}

	return &row, nil
}

// ResetProgress deletes every lesson-progress row the user has under the
// roadmap and recalculates the enrollment back to a clean slate, as one
// transaction.
func (s *Service) ResetProgress(userID, roadmapID uint) (*roadmapModels.Enrollment, error) {
	var enr roadmapModels.Enrollment

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ? AND roadmap_id = ?", userID, roadmapID).First(&enr).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrEnrollmentNotFound
			}
			return err
		}

		if err := tx.Where("user_id = ? AND roadmap_id = ?", userID, roadmapID).
			Delete(&roadmapModels.LessonProgress{}).Error; err != nil {
			return err
		}

		return recalculateTx(tx, &enr)
	})
	if err != nil {
		return nil, err
	}

	return &enr, nil
}
