package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"amazecare-server/internal/services"
	"amazecare-server/internal/utils"
)

// PatientHandler handles patient self-service requests.
type PatientHandler struct {
	patients *services.PatientService
}

func NewPatientHandler(patients *services.PatientService) *PatientHandler {
	return &PatientHandler{patients: patients}
}

// UpdateProfileRequest represents a patient profile edit.
type UpdateProfileRequest struct {
	FullName       string     `json:"fullName" binding:"required"`
	ContactNumber  string     `json:"contactNumber"`
	Address        string     `json:"address"`
	MedicalHistory string     `json:"medicalHistory"`
	DateOfBirth    *time.Time `json:"dateOfBirth"`
	Gender         string     `json:"gender"`
}

// BookAppointmentRequest represents a new appointment booking.
type BookAppointmentRequest struct {
	DoctorID        uint      `json:"doctorId" binding:"required"`
	AppointmentDate time.Time `json:"appointmentDate" binding:"required"`
	Symptoms        string    `json:"symptoms"`
}

// RescheduleRequest carries the replacement date for an appointment.
type RescheduleRequest struct {
	AppointmentDate time.Time `json:"appointmentDate" binding:"required"`
}

// UpdateProfile overwrites the calling patient's personal details.
func (h *PatientHandler) UpdateProfile(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	var req UpdateProfileRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	patient, err := h.patients.UpdatePersonalInfo(c.Request.Context(), userID, services.PatientUpdate{
		FullName:       req.FullName,
		ContactNumber:  req.ContactNumber,
		Address:        req.Address,
		MedicalHistory: req.MedicalHistory,
		DateOfBirth:    req.DateOfBirth,
		Gender:         req.Gender,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.Success(c, "Profile updated successfully", patient)
}

// BookAppointment schedules a new appointment for the calling patient.
func (h *PatientHandler) BookAppointment(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	var req BookAppointmentRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	appointment, err := h.patients.ScheduleAppointment(c.Request.Context(), userID, services.BookingRequest{
		DoctorID:        req.DoctorID,
		AppointmentDate: req.AppointmentDate,
		Symptoms:        req.Symptoms,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.Created(c, "Appointment booked successfully", appointment)
}

// GetAppointments lists the calling patient's appointments.
func (h *PatientHandler) GetAppointments(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	appointments, err := h.patients.GetAppointments(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.Success(c, "Appointments retrieved successfully", appointments)
}

// CancelAppointment cancels one of the calling patient's scheduled
// appointments.
func (h *PatientHandler) CancelAppointment(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	appointmentID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	if err := h.patients.CancelAppointment(c.Request.Context(), userID, appointmentID); err != nil {
		respondServiceError(c, err)
		return
	}

	utils.Success(c, "Appointment cancelled successfully", nil)
}

// RescheduleAppointment moves one of the calling patient's scheduled
// appointments to a new future date.
func (h *PatientHandler) RescheduleAppointment(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	appointmentID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var req RescheduleRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	if err := h.patients.RescheduleAppointment(c.Request.Context(), userID, appointmentID, req.AppointmentDate); err != nil {
		respondServiceError(c, err)
		return
	}

	utils.Success(c, "Appointment rescheduled successfully", nil)
}

// SearchDoctors lists doctors, optionally filtered by specialization name.
func (h *PatientHandler) SearchDoctors(c *gin.Context) {
	doctors, err := h.patients.SearchDoctors(c.Request.Context(), c.Query("specialization"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.Success(c, "Doctors retrieved successfully", doctors)
}

// GetMedicalHistory returns the calling patient's full consultation
// history with tests, prescriptions and billing per visit.
func (h *PatientHandler) GetMedicalHistory(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	history, err := h.patients.GetMedicalHistory(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.Success(c, "Medical history retrieved successfully", history)
}

// GetPrescriptions lists every prescription issued to the calling patient.
func (h *PatientHandler) GetPrescriptions(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	prescriptions, err := h.patients.GetPrescriptionDetails(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.Success(c, "Prescriptions retrieved successfully", prescriptions)
}

// GetTests lists every lab test ordered for the calling patient.
func (h *PatientHandler) GetTests(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	tests, err := h.patients.GetTestDetails(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.Success(c, "Tests retrieved successfully", tests)
}

// GetBillings lists the calling patient's billing records.
func (h *PatientHandler) GetBillings(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	billings, err := h.patients.GetBillingDetails(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.Success(c, "Billing details retrieved successfully", billings)
}
