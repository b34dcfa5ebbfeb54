package roadmap

import "gorm.io/gorm"

// Category groups roadmaps by topic (e.g. Backend, DevOps)
type Category struct {
	gorm.Model
	Name        string `json:"name" gorm:"unique;not null"`
	Description string `json:"description"`
	IsDeleted   bool   `gorm:"default:false"`
}
