package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"amazecare-server/internal/services"
	"amazecare-server/internal/utils"
)

// AdminHandler handles administrative account and appointment management.
type AdminHandler struct {
	admins *services.AdminService
}

func NewAdminHandler(admins *services.AdminService) *AdminHandler {
	return &AdminHandler{admins: admins}
}

// RegisterAdminRequest represents a new administrator account.
type RegisterAdminRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50"`
	Password string `json:"password" binding:"required,min=6"`
	FullName string `json:"fullName" binding:"required"`
	Email    string `json:"email" binding:"omitempty,email"`
}

// RegisterDoctorRequest represents a new doctor account and profile.
type RegisterDoctorRequest struct {
	Username          string `json:"username" binding:"required,min=3,max=50"`
	Password          string `json:"password" binding:"required,min=6"`
	FullName          string `json:"fullName" binding:"required"`
	Email             string `json:"email" binding:"required,email"`
	ExperienceYears   int    `json:"experienceYears" binding:"min=0"`
	Qualification     string `json:"qualification"`
	Designation       string `json:"designation"`
	SpecializationIDs []uint `json:"specializationIds"`
}

// UpdateDoctorRequest carries the optional doctor profile fields.
type UpdateDoctorRequest struct {
	FullName          string `json:"fullName"`
	Email             string `json:"email" binding:"omitempty,email"`
	ExperienceYears   *int   `json:"experienceYears"`
	Qualification     string `json:"qualification"`
	Designation       string `json:"designation"`
	SpecializationIDs []uint `json:"specializationIds"`
}

// UpdatePatientRequest carries the optional patient profile fields.
type UpdatePatientRequest struct {
	FullName       string     `json:"fullName"`
	ContactNumber  string     `json:"contactNumber"`
	Address        string     `json:"address"`
	MedicalHistory string     `json:"medicalHistory"`
	DateOfBirth    *time.Time `json:"dateOfBirth"`
	Gender         string     `json:"gender"`
}

// DeleteAccountRequest identifies the user row behind a profile being
// deactivated.
type DeleteAccountRequest struct {
	UserID uint `json:"userId" binding:"required"`
}

// RegisterAdmin creates another administrator account.
func (h *AdminHandler) RegisterAdmin(c *gin.Context) {
	var req RegisterAdminRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	admin, err := h.admins.RegisterAdmin(c.Request.Context(), services.AdminRegistration{
		Username: req.Username,
		Password: req.Password,
		FullName: req.FullName,
		Email:    req.Email,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.Created(c, "Admin registered successfully", admin)
}

// RegisterDoctor creates a doctor account with its profile and
// specializations.
func (h *AdminHandler) RegisterDoctor(c *gin.Context) {
	var req RegisterDoctorRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	doctor, err := h.admins.RegisterDoctor(c.Request.Context(), services.DoctorRegistration{
		Username:          req.Username,
		Password:          req.Password,
		FullName:          req.FullName,
		Email:             req.Email,
		ExperienceYears:   req.ExperienceYears,
		Qualification:     req.Qualification,
		Designation:       req.Designation,
		SpecializationIDs: req.SpecializationIDs,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.Created(c, "Doctor registered successfully", doctor)
}

// UpdateDoctor edits a doctor's profile.
func (h *AdminHandler) UpdateDoctor(c *gin.Context) {
	doctorID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var req UpdateDoctorRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	err := h.admins.UpdateDoctorDetails(c.Request.Context(), doctorID, services.DoctorUpdate{
		FullName:          req.FullName,
		Email:             req.Email,
		ExperienceYears:   req.ExperienceYears,
		Qualification:     req.Qualification,
		Designation:       req.Designation,
		SpecializationIDs: req.SpecializationIDs,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.Success(c, "Doctor updated successfully", nil)
}

// DeleteDoctor deactivates a doctor: the login account is removed, the
// profile is kept for history and the doctor's scheduled appointments are
// cancelled.
func (h *AdminHandler) DeleteDoctor(c *gin.Context) {
	doctorID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var req DeleteAccountRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	if err := h.admins.DeleteDoctor(c.Request.Context(), req.UserID, doctorID); err != nil {
		respondServiceError(c, err)
		return
	}

	utils.Success(c, "Doctor deleted successfully", nil)
}

// GetDoctor returns a doctor's profile with specializations and holidays.
func (h *AdminHandler) GetDoctor(c *gin.Context) {
	doctorID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	profile, err := h.admins.GetDoctorDetails(c.Request.Context(), doctorID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.Success(c, "Doctor retrieved successfully", profile)
}

// UpdatePatient edits a patient's profile.
func (h *AdminHandler) UpdatePatient(c *gin.Context) {
	patientID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var req UpdatePatientRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	patient, err := h.admins.UpdatePatientDetails(c.Request.Context(), patientID, services.PatientUpdate{
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

	utils.Success(c, "Patient updated successfully", patient)
}

// DeletePatient deactivates a patient: the login account is removed, the
// profile is kept for history and the patient's scheduled appointments are
// cancelled.
func (h *AdminHandler) DeletePatient(c *gin.Context) {
	patientID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var req DeleteAccountRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	if err := h.admins.DeletePatient(c.Request.Context(), req.UserID, patientID); err != nil {
		respondServiceError(c, err)
		return
	}

	utils.Success(c, "Patient deleted successfully", nil)
}

// GetPatient returns a patient's profile.
func (h *AdminHandler) GetPatient(c *gin.Context) {
	patientID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	patient, err := h.admins.GetPatientDetails(c.Request.Context(), patientID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.Success(c, "Patient retrieved successfully", patient)
}

// RescheduleAppointment moves any scheduled appointment to a new date.
func (h *AdminHandler) RescheduleAppointment(c *gin.Context) {
	appointmentID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var req RescheduleRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	appointment, err := h.admins.RescheduleAppointment(c.Request.Context(), appointmentID, req.AppointmentDate)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.Success(c, "Appointment rescheduled successfully", appointment)
}

// GetAppointment returns any appointment by id.
func (h *AdminHandler) GetAppointment(c *gin.Context) {
	appointmentID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	appointment, err := h.admins.ViewAppointmentDetails(c.Request.Context(), appointmentID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.Success(c, "Appointment retrieved successfully", appointment)
}

// UpdateHoliday edits the dates of a doctor's holiday.
func (h *AdminHandler) UpdateHoliday(c *gin.Context) {
	doctorID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	holidayID, ok := parseUintParam(c, "holidayId")
	if !ok {
		return
	}

	var req HolidayRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	err := h.admins.UpdateHoliday(c.Request.Context(), doctorID, holidayID, req.StartDate, req.EndDate)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.Success(c, "Holiday updated successfully", nil)
}

// CancelHoliday cancels a doctor's holiday if it is still scheduled.
func (h *AdminHandler) CancelHoliday(c *gin.Context) {
	doctorID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	holidayID, ok := parseUintParam(c, "holidayId")
	if !ok {
		return
	}

	message, err := h.admins.CancelHoliday(c.Request.Context(), doctorID, holidayID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.Success(c, message, nil)
}
