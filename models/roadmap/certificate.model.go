package roadmap

import (
	"time"

	"gorm.io/gorm"
)

// Certificate represents an issued certificate for roadmap completion
type Certificate struct {
	gorm.Model
	UserID       uint      `json:"user_id" gorm:"index;not null"`
	RoadmapID    uint      `json:"roadmap_id" gorm:"index;not null"`
	SerialNumber string    `json:"serial_number" gorm:"unique"`
	IssuedAt     time.Time `json:"issued_at"`
	IsDeleted    bool      `gorm:"default:false"`
}
