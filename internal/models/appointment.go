package models

import (
	"time"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	AppointmentScheduled AppointmentStatus = "Scheduled"
	AppointmentCompleted AppointmentStatus = "Completed"
	AppointmentCanceled  AppointmentStatus = "Canceled"
)

// Appointment represents a scheduled patient-doctor encounter. Appointments
// are never deleted, only status-transitioned.
type Appointment struct {
	BaseModel
	PatientID       uint              `gorm:"index;not null" json:"patientId"`
	DoctorID        uint              `gorm:"index;not null" json:"doctorId"`
	AppointmentDate time.Time         `json:"appointmentDate"`
	Status          AppointmentStatus `gorm:"size:50;default:'Scheduled'" json:"status"`
	Symptoms        string            `gorm:"type:text" json:"symptoms"`
}
