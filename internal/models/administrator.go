package models

// Administrator is the profile row behind an admin login account.
type Administrator struct {
	BaseModel
	UserID   *uint  `gorm:"index" json:"userId,omitempty"`
	FullName string `gorm:"size:100;not null" json:"fullName"`
	Email    string `gorm:"size:255" json:"email"`
}
