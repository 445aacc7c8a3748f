package models

import (
	"time"

	"gorm.io/gorm"
)

type IDCard struct {
	gorm.Model
	UserID     uint      `gorm:"uniqueIndex;not null" json:"user_id"`
	CardNumber string    `gorm:"unique;not null" json:"card_number"`
	IssuedAt   time.Time `json:"issued_at"`
	FilePath   string    `gorm:"default:''" json:"file_path"`
	IsDeleted  bool      `gorm:"default:false"`
	User       User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}
