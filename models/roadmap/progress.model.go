package roadmap

import "time"

// LessonProgress is the per-(user, lesson) completion fact.
//
// At most one row exists per (user_id, lesson_id) pair; writes go through an
// upsert keyed on that index. CompletedAt is non-nil exactly when IsCompleted
// is true and is stamped on the false-to-true transition. RoadmapID is
// denormalised from the owning lesson so cascade deletes and recalculation
// filters stay cheap.
type LessonProgress struct {
	ID          uint       `json:"id" gorm:"primarykey"`
	UserID      uint       `json:"user_id" gorm:"uniqueIndex:idx_user_lesson;not null"`
	LessonID    uint       `json:"lesson_id" gorm:"uniqueIndex:idx_user_lesson;not null"`
	RoadmapID   uint       `json:"roadmap_id" gorm:"index;not null"`
	Score       *float64   `json:"score"` // nullable, 0-100
	IsCompleted bool       `json:"is_completed" gorm:"default:false"`
	CompletedAt *time.Time `json:"completed_at"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (LessonProgress) TableName() string {
	return "lesson_progress"
}
