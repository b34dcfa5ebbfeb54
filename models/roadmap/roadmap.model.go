package roadmap

import "gorm.io/gorm"

// Roadmap represents a learning roadmap containing an ordered set of lessons
type Roadmap struct {
	gorm.Model
	Title         string `json:"title"`
	Description   string `json:"description"`
	CategoryID    uint   `json:"category_id" gorm:"index"`
	Status        string `json:"status" gorm:"default:'DRAFT'"` // DRAFT, ACTIVE, INACTIVE
	ThumbnailURL  string `json:"thumbnail_url"`
	IsPublished   bool   `json:"is_published" gorm:"default:false"`
	EnrolledCount int64  `json:"enrolled_count" gorm:"default:0"` // cached counter, updated via atomic SQL expression only
	IsDeleted     bool   `gorm:"default:false"`
}
