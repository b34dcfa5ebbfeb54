// Package enrollment keeps a user's enrollment aggregates (progress
// percentage, average score, completion flag) consistent with the set of
// per-lesson progress rows underneath them.
//
// Every multi-step write runs inside a single gorm transaction: a lesson
// progress upsert and the recalculation it triggers commit or roll back as one
// unit, and the cascade cleanup on unenrollment is atomic with the enrollment
// delete. The cached enrolled-count on roadmaps is only ever touched through
// SQL increment/decrement expressions, never read-modify-write.
package enrollment

import "gorm.io/gorm"

// Service is the enrollment and lesson-progress engine.
type Service struct {
	db *gorm.DB
}

// NewService returns a Service bound to the given database handle.
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// BulkEnrollFailure describes a single failed item of a bulk enrollment.
type BulkEnrollFailure struct {
	UserID uint   `json:"user_id"`
	Reason string `json:"reason"`
}

// BulkEnrollResult collects per-item outcomes of a bulk enrollment. Items are
// isolated: one failure never aborts the batch.
type BulkEnrollResult struct {
	Successful []uint              `json:"successful"`
	Failed     []BulkEnrollFailure `json:"failed"`
}

// CategoryCount is one entry of a user's favorite categories ranking.
type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// UserStats aggregates a user's enrollments across all roadmaps.
type UserStats struct {
	TotalEnrollments   int             `json:"total_enrollments"`
	TotalCompletions   int             `json:"total_completions"`
	AverageScore       float64         `json:"average_score"`
	CompletionRate     float64         `json:"completion_rate"`
	FavoriteCategories []CategoryCount `json:"favorite_categories"`
}
