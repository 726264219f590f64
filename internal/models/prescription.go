package models

// Prescription is one prescribed medication on a medical record. Medication
// name and price are snapshotted at consultation time; TotalPrice is
// Quantity x unit price as of that moment and is never recomputed from a
// later medication price.
type Prescription struct {
	BaseModel
	RecordID       uint    `gorm:"index;not null" json:"recordId"`
	MedicationID   uint    `gorm:"index;not null" json:"medicationId"`
	MedicationName string  `gorm:"size:100" json:"medicationName"`
	Dosage         string  `gorm:"size:100" json:"dosage"`
	DurationDays   int     `json:"durationDays"`
	Quantity       int     `json:"quantity"`
	TotalPrice     float64 `gorm:"type:decimal(10,2)" json:"totalPrice"`
	BillingID      *uint   `gorm:"index" json:"billingId,omitempty"`
}
