package models

import (
	"time"
)

// HolidayStatus represents the status of a doctor holiday
type HolidayStatus string

const (
	HolidayScheduled HolidayStatus = "Scheduled"
	HolidayCancelled HolidayStatus = "Cancelled"
	HolidayCompleted HolidayStatus = "Completed"
)

// DoctorHoliday is a doctor-declared unavailability range, inclusive on both
// ends. Only Scheduled holidays participate in booking conflict checks.
// Retired via status, never deleted.
type DoctorHoliday struct {
	BaseModel
	DoctorID  uint          `gorm:"index;not null" json:"doctorId"`
	StartDate time.Time     `json:"startDate"`
	EndDate   time.Time     `json:"endDate"`
	Status    HolidayStatus `gorm:"size:20;default:'Scheduled'" json:"status"`
}
