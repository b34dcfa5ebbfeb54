package roadmap

import "time"

// Enrollment tracks a user's membership in a roadmap with derived progress.
//
// Progress, AverageScore, IsCompleted and CompletedAt are derived fields: the
// recalculation engine is their only writer, apart from the explicit manual
// override operation. IsCompleted never reverts to false once set, even if
// progress later drops below 100.
//
// No soft delete here: unenrollment removes the row outright so the
// (user_id, roadmap_id) unique index never collides on re-enrollment.
type Enrollment struct {
	ID             uint       `json:"id" gorm:"primarykey"`
	UserID         uint       `json:"user_id" gorm:"uniqueIndex:idx_user_roadmap;not null"`
	RoadmapID      uint       `json:"roadmap_id" gorm:"uniqueIndex:idx_user_roadmap;not null"`
	Progress       float64    `json:"progress" gorm:"default:0"`      // Completion percentage (0-100)
	AverageScore   float64    `json:"average_score" gorm:"default:0"` // Mean score over completed scored lessons (0-100)
	IsCompleted    bool       `json:"is_completed" gorm:"default:false"`
	CompletedAt    *time.Time `json:"completed_at"`
	EnrolledAt     time.Time  `json:"enrolled_at"` // immutable after creation
	LastAccessedAt time.Time  `json:"last_accessed_at"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}
