package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	ProfileImage        string    `gorm:"default:''"`
	Name                string    `gorm:"default:''"`
	Email               string    `gorm:"unique;not null"`
	Mobile              string    `gorm:"default:''"`
	Role                string    `gorm:"default:'CANDIDATE'"` // CANDIDATE, EMPLOYEE, HR
	Password            string    `gorm:"not null"`
	IsMobileVerified    bool      `gorm:"default:false"`
	IsEmailVerified     bool      `gorm:"default:false"`
	LastLogin           time.Time `gorm:"default:NULL"`
	DateOfBirth         string
	Address             string
	City                string
	State               string
	PinCode             string
	Qualification       string
	PreviousEmployer    string
	ExperienceYears     float32
	AppliedPosition     string
	Department          string
	EmployeeCode        string     `gorm:"default:''"` // assigned once onboarding completes
	FailedLoginAttempts int        `gorm:"default:0"`
	LastFailedLogin     *time.Time `json:"last_failed_login"`
	IsBlocked           bool       `gorm:"default:false"`
	BlockedUntil        *time.Time `json:"blocked_until"`
	IsDeleted           bool       `gorm:"default:false"`
}
