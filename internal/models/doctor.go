package models

// Doctor represents a practitioner profile. UserID is nulled when the account
// is deactivated; the row itself is never deleted.
type Doctor struct {
	BaseModel
	UserID          *uint  `gorm:"index" json:"userId,omitempty"`
	FullName        string `gorm:"size:100;not null" json:"fullName"`
	Email           string `gorm:"size:255" json:"email"`
	ExperienceYears int    `json:"experienceYears"`
	Qualification   string `gorm:"size:100" json:"qualification"`
	Designation     string `gorm:"size:50" json:"designation"`
}

// DesignationInactive marks a deactivated doctor; inactive doctors are
// excluded from directory searches.
const DesignationInactive = "Inactive"

// Specialization is reference data (Cardiology, Dermatology, ...).
type Specialization struct {
	BaseModel
	SpecializationName string `gorm:"uniqueIndex;size:100;not null" json:"specializationName"`
}

// DoctorSpecialization is the doctor<->specialization join row.
type DoctorSpecialization struct {
	BaseModel
	DoctorID         uint `gorm:"index:idx_doctor_specialization,unique" json:"doctorId"`
	SpecializationID uint `gorm:"index:idx_doctor_specialization,unique" json:"specializationId"`
}
