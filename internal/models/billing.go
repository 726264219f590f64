package models

// BillingStatus represents the payment status of a billing row
type BillingStatus string

const (
	BillingDue     BillingStatus = "Due"
	BillingPending BillingStatus = "Pending"
	BillingPaid    BillingStatus = "Paid"
)

// Billing is the authoritative monetary rollup of one consultation.
// GrandTotal is always ConsultationFee + TotalTestsPrice +
// TotalMedicationsPrice and is never edited independently.
type Billing struct {
	BaseModel
	PatientID             uint          `gorm:"index;not null" json:"patientId"`
	DoctorID              uint          `gorm:"index;not null" json:"doctorId"`
	MedicalRecordID       uint          `gorm:"uniqueIndex;not null" json:"medicalRecordId"`
	InvoiceNumber         string        `gorm:"size:36;uniqueIndex" json:"invoiceNumber"`
	ConsultationFee       float64       `gorm:"type:decimal(10,2)" json:"consultationFee"`
	TotalTestsPrice       float64       `gorm:"type:decimal(10,2)" json:"totalTestsPrice"`
	TotalMedicationsPrice float64       `gorm:"type:decimal(10,2)" json:"totalMedicationsPrice"`
	GrandTotal            float64       `gorm:"type:decimal(10,2)" json:"grandTotal"`
	Status                BillingStatus `gorm:"size:10;default:'Due'" json:"status"`
}
