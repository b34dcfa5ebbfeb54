package roadmap

import "gorm.io/gorm"

// Lesson is the atomic unit of content within a roadmap
type Lesson struct {
	gorm.Model
	RoadmapID   uint   `json:"roadmap_id" gorm:"index;not null"`
	Title       string `json:"title"`
	Description string `json:"description"`
	ContentURL  string `json:"content_url"`
	OrderIndex  int    `json:"order_index" gorm:"default:0"` // Lesson order in roadmap
	IsActive    bool   `json:"is_active" gorm:"default:true"`
	IsDeleted   bool   `gorm:"default:false"`
}
