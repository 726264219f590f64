package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"amazecare-server/internal/models"
	"amazecare-server/internal/services"
	"amazecare-server/internal/utils"
)

// DoctorHandler handles the doctor-facing clinical workflow.
type DoctorHandler struct {
	doctors *services.DoctorService
}

func NewDoctorHandler(doctors *services.DoctorService) *DoctorHandler {
	return &DoctorHandler{doctors: doctors}
}

// PrescriptionItem is one requested medication within a consultation.
type PrescriptionItem struct {
	MedicationID uint   `json:"medicationId" binding:"required"`
	Dosage       string `json:"dosage" binding:"required"`
	DurationDays int    `json:"durationDays" binding:"required,min=1"`
	Quantity     int    `json:"quantity" binding:"required,min=1"`
}

// ConsultationRequest represents the findings and orders recorded when a
// doctor conducts an appointment.
type ConsultationRequest struct {
	Symptoms            string             `json:"symptoms" binding:"required"`
	PhysicalExamination string             `json:"physicalExamination" binding:"required"`
	TreatmentPlan       string             `json:"treatmentPlan" binding:"required"`
	FollowUpDate        *time.Time         `json:"followUpDate"`
	TestIDs             []uint             `json:"testIds"`
	Prescriptions       []PrescriptionItem `json:"prescriptions"`
	ConsultationFee     float64            `json:"consultationFee"`
}

// UpdateRecordRequest carries the optional clinical fields of a
// medical-record edit.
type UpdateRecordRequest struct {
	Symptoms            *string    `json:"symptoms"`
	PhysicalExamination *string    `json:"physicalExamination"`
	TreatmentPlan       *string    `json:"treatmentPlan"`
	FollowUpDate        *time.Time `json:"followUpDate"`
}

// HolidayRequest represents a holiday date range.
type HolidayRequest struct {
	StartDate time.Time `json:"startDate" binding:"required"`
	EndDate   time.Time `json:"endDate" binding:"required"`
}

// UpdateHolidayRequest represents a holiday edit including its status.
type UpdateHolidayRequest struct {
	StartDate time.Time `json:"startDate" binding:"required"`
	EndDate   time.Time `json:"endDate" binding:"required"`
	Status    string    `json:"status" binding:"required,oneof=Scheduled Cancelled Completed"`
}

// GetAppointments lists the calling doctor's appointments filtered by
// status (defaults to Scheduled).
func (h *DoctorHandler) GetAppointments(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	status := models.AppointmentStatus(c.DefaultQuery("status", string(models.AppointmentScheduled)))
	switch status {
	case models.AppointmentScheduled, models.AppointmentCompleted, models.AppointmentCanceled:
	default:
		utils.BadRequest(c, "Invalid status filter")
		return
	}

	appointments, err := h.doctors.GetAppointmentsByStatus(c.Request.Context(), userID, status)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.Success(c, "Appointments retrieved successfully", appointments)
}

// CancelAppointment cancels one of the calling doctor's scheduled
// appointments.
func (h *DoctorHandler) CancelAppointment(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	appointmentID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	if err := h.doctors.CancelScheduledAppointment(c.Request.Context(), userID, appointmentID); err != nil {
		respondServiceError(c, err)
		return
	}

	utils.Success(c, "Appointment cancelled successfully", nil)
}

// RescheduleAppointment moves one of the calling doctor's scheduled
// appointments to a new future date.
func (h *DoctorHandler) RescheduleAppointment(c *gin.Context) {
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

	if err := h.doctors.RescheduleAppointment(c.Request.Context(), userID, appointmentID, req.AppointmentDate); err != nil {
		respondServiceError(c, err)
		return
	}

	utils.Success(c, "Appointment rescheduled successfully", nil)
}

// ConductConsultation records a consultation against a scheduled
// appointment and returns the generated billing.
func (h *DoctorHandler) ConductConsultation(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	appointmentID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var req ConsultationRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	prescriptions := make([]services.PrescriptionRequest, 0, len(req.Prescriptions))
	for _, p := range req.Prescriptions {
		prescriptions = append(prescriptions, services.PrescriptionRequest{
			MedicationID: p.MedicationID,
			Dosage:       p.Dosage,
			DurationDays: p.DurationDays,
			Quantity:     p.Quantity,
		})
	}

	billing, err := h.doctors.ConductConsultation(c.Request.Context(), userID, appointmentID, services.ConsultationRequest{
		Symptoms:            req.Symptoms,
		PhysicalExamination: req.PhysicalExamination,
		TreatmentPlan:       req.TreatmentPlan,
		FollowUpDate:        req.FollowUpDate,
		TestIDs:             req.TestIDs,
		Prescriptions:       prescriptions,
		ConsultationFee:     req.ConsultationFee,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.Created(c, "Consultation recorded successfully", billing)
}

// GetPatientMedicalRecords returns a patient's full consultation history
// with tests, prescriptions and billing per visit.
func (h *DoctorHandler) GetPatientMedicalRecords(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	patientID, ok := parseUintParam(c, "patientId")
	if !ok {
		return
	}

	history, err := h.doctors.GetPatientMedicalRecords(c.Request.Context(), userID, patientID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.Success(c, "Medical records retrieved successfully", history)
}

// UpdateMedicalRecord edits the clinical fields of a record the calling
// doctor wrote for the given patient.
func (h *DoctorHandler) UpdateMedicalRecord(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	recordID, ok := parseUintParam(c, "recordId")
	if !ok {
		return
	}
	patientID, ok := parseUintParam(c, "patientId")
	if !ok {
		return
	}

	var req UpdateRecordRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	err := h.doctors.UpdateMedicalRecord(c.Request.Context(), userID, recordID, patientID, services.RecordUpdate{
		Symptoms:            req.Symptoms,
		PhysicalExamination: req.PhysicalExamination,
		TreatmentPlan:       req.TreatmentPlan,
		FollowUpDate:        req.FollowUpDate,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.Success(c, "Medical record updated successfully", nil)
}

// MarkBillingPaid settles one of the calling doctor's pending billings.
func (h *DoctorHandler) MarkBillingPaid(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	billingID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	if err := h.doctors.UpdateBillingStatus(c.Request.Context(), userID, billingID); err != nil {
		respondServiceError(c, err)
		return
	}

	utils.Success(c, "Billing marked as paid", nil)
}

// ListTests returns the orderable lab tests.
func (h *DoctorHandler) ListTests(c *gin.Context) {
	tests, err := h.doctors.ListTests(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.Success(c, "Tests retrieved successfully", tests)
}

// ListMedications returns the prescribable medications.
func (h *DoctorHandler) ListMedications(c *gin.Context) {
	medications, err := h.doctors.ListMedications(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.Success(c, "Medications retrieved successfully", medications)
}

// AddHoliday declares a new holiday for the calling doctor.
func (h *DoctorHandler) AddHoliday(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	var req HolidayRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	holiday, err := h.doctors.AddHoliday(c.Request.Context(), userID, req.StartDate, req.EndDate)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.Created(c, "Holiday added successfully", holiday)
}

// UpdateHoliday edits the dates and status of the calling doctor's
// holiday.
func (h *DoctorHandler) UpdateHoliday(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	holidayID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var req UpdateHolidayRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	err := h.doctors.UpdateHoliday(c.Request.Context(), userID, holidayID,
		req.StartDate, req.EndDate, models.HolidayStatus(req.Status))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.Success(c, "Holiday updated successfully", nil)
}

// CancelHoliday cancels the calling doctor's holiday if it is still
// scheduled.
func (h *DoctorHandler) CancelHoliday(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	holidayID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	message, err := h.doctors.CancelHoliday(c.Request.Context(), userID, holidayID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.Success(c, message, nil)
}

// GetHolidays lists the calling doctor's holidays.
func (h *DoctorHandler) GetHolidays(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	holidays, err := h.doctors.GetHolidays(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.Success(c, "Holidays retrieved successfully", holidays)
}
