package models

// LabTest is priced reference data for orderable diagnostic tests.
type LabTest struct {
	BaseModel
	TestName  string  `gorm:"size:100;not null" json:"testName"`
	TestPrice float64 `gorm:"type:decimal(10,2)" json:"testPrice"`
}

// TableName overrides gorm's default pluralization.
func (LabTest) TableName() string { return "lab_tests" }

// Medication is priced reference data for prescribable medications.
type Medication struct {
	BaseModel
	MedicationName string  `gorm:"size:100;not null" json:"medicationName"`
	PricePerUnit   float64 `gorm:"type:decimal(10,2)" json:"pricePerUnit"`
}
