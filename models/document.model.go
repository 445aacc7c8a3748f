package models

import (
	"gorm.io/gorm"
)

type Document struct {
	gorm.Model
	UserID       uint   `gorm:"index;not null" json:"user_id"`
	Kind         string `gorm:"not null" json:"kind"` // AADHAAR, PAN, EDUCATION, EXPERIENCE, OFFER_LETTER
	FilePath     string `gorm:"not null" json:"file_path"`
	ReviewStatus string `gorm:"default:'PENDING'" json:"review_status"` // PENDING, APPROVED, REJECTED
	ReviewNote   string `gorm:"default:''" json:"review_note"`
	ReviewedBy   uint   `json:"reviewed_by,omitempty"`
	IsDeleted    bool   `gorm:"default:false"`
	User         User   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}
