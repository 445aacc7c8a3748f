package models

import (
	"time"

	"gorm.io/gorm"
)

type Interview struct {
	gorm.Model
	UserID      uint      `gorm:"index;not null" json:"user_id"`
	Round       int       `gorm:"not null" json:"round"` // 1..3
	ScheduledAt time.Time `json:"scheduled_at"`
	Interviewer string    `gorm:"default:''" json:"interviewer"`
	Result      string    `gorm:"default:'PENDING'" json:"result"` // PENDING, CLEARED, FAILED
	Feedback    string    `gorm:"default:''" json:"feedback"`
	IsDeleted   bool      `gorm:"default:false"`
	User        User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}
