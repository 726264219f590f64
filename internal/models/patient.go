package models

import (
	"time"
)

// Patient represents a patient profile. UserID is nulled when the account is
// deactivated; the row itself is never deleted.
type Patient struct {
	BaseModel
	UserID         *uint      `gorm:"index" json:"userId,omitempty"`
	FullName       string     `gorm:"size:100;not null" json:"fullName"`
	DateOfBirth    *time.Time `json:"dateOfBirth,omitempty"`
	Gender         string     `gorm:"size:10" json:"gender"`
	ContactNumber  string     `gorm:"size:15" json:"contactNumber"`
	Email          string     `gorm:"size:255" json:"email"`
	Address        string     `gorm:"size:200" json:"address"`
	MedicalHistory string     `gorm:"type:text" json:"medicalHistory"`
}
