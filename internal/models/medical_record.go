package models

import (
	"time"
)

// MedicalRecord is the clinical document produced by a consultation. The
// appointment linkage is 1:1 and immutable; clinical fields stay editable by
// the owning doctor. TotalPrice covers tests and medications only - the
// consultation fee lives on the Billing row.
type MedicalRecord struct {
	BaseModel
	AppointmentID       uint       `gorm:"uniqueIndex;not null" json:"appointmentId"`
	DoctorID            uint       `gorm:"index;not null" json:"doctorId"`
	PatientID           uint       `gorm:"index;not null" json:"patientId"`
	Symptoms            string     `gorm:"type:text" json:"symptoms"`
	PhysicalExamination string     `gorm:"type:text" json:"physicalExamination"`
	TreatmentPlan       string     `gorm:"type:text" json:"treatmentPlan"`
	FollowUpDate        *time.Time `json:"followUpDate,omitempty"`
	TotalPrice          float64    `gorm:"type:decimal(10,2)" json:"totalPrice"`
	BillingID           *uint      `gorm:"index" json:"billingId,omitempty"`
}

// MedicalRecordTest is the record<->ordered-test join row.
type MedicalRecordTest struct {
	BaseModel
	RecordID uint `gorm:"index;not null" json:"recordId"`
	TestID   uint `gorm:"index;not null" json:"testId"`
}
