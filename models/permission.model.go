package models

import (
	"gorm.io/gorm"
)

type Permission struct {
	gorm.Model
	UserID     uint   `gorm:"not null;index"`
	User       User   `gorm:"foreignKey:UserID"`
	Role       string
	Permission string `gorm:"type:varchar(255)"` // e.g. "record-interview"
	IsDeleted  bool   `gorm:"default:false"`
}
