package services

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"amazecare-server/internal/models"
	"amazecare-server/internal/store"
)

// PatientService covers the patient-facing appointment lifecycle and the
// read views over a patient's own clinical and billing history.
type PatientService struct {
	store store.Store
	log   zerolog.Logger
}

// NewPatientService creates a new PatientService.
func NewPatientService(st store.Store, log zerolog.Logger) *PatientService {
	return &PatientService{store: st, log: log}
}

func (s *PatientService) patientByUser(ctx context.Context, userID uint) (*models.Patient, error) {
	patient, err := s.store.GetPatientByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, notFoundError("patient not found")
		}
		return nil, internalError(err)
	}
	return patient, nil
}

// PatientUpdate carries the editable personal-info fields.
type PatientUpdate struct {
	FullName       string
	ContactNumber  string
	Address        string
	MedicalHistory string
	DateOfBirth    *time.Time
	Gender         string
}

// UpdatePersonalInfo overwrites the patient's own profile fields.
func (s *PatientService) UpdatePersonalInfo(ctx context.Context, userID uint, update PatientUpdate) (*models.Patient, error) {
	patient, err := s.patientByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	patient.FullName = update.FullName
	patient.ContactNumber = update.ContactNumber
	patient.Address = update.Address
	patient.MedicalHistory = update.MedicalHistory
	patient.DateOfBirth = update.DateOfBirth
	patient.Gender = update.Gender

	if err := s.store.SavePatient(ctx, patient); err != nil {
		return nil, internalError(err)
	}
	return patient, nil
}

// BookingRequest is a patient's request for a new appointment.
type BookingRequest struct {
	DoctorID        uint
	AppointmentDate time.Time
	Symptoms        string
}

// ScheduleAppointment books a new appointment for the calling patient.
// Booking is refused while the doctor has a Scheduled holiday covering the
// requested instant. Past instants are accepted here; only rescheduling
// enforces a future date.
func (s *PatientService) ScheduleAppointment(ctx context.Context, userID uint, req BookingRequest) (*models.Appointment, error) {
	patient, err := s.patientByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	onHoliday, err := s.store.HasScheduledHolidayCovering(ctx, req.DoctorID, req.AppointmentDate)
	if err != nil {
		return nil, internalError(err)
	}
	if onHoliday {
		return nil, conflictError("The selected appointment date falls within the doctor's holiday period. Please choose another date.")
	}

	appointment := models.Appointment{
		PatientID:       patient.ID,
		DoctorID:        req.DoctorID,
		AppointmentDate: req.AppointmentDate,
		Symptoms:        req.Symptoms,
		Status:          models.AppointmentScheduled,
	}
	if err := s.store.CreateAppointment(ctx, &appointment); err != nil {
		return nil, internalError(err)
	}

	s.log.Info().Uint("appointmentId", appointment.ID).Uint("doctorId", req.DoctorID).
		Uint("patientId", patient.ID).Msg("appointment scheduled")
	return &appointment, nil
}

// GetAppointments lists all of the calling patient's appointments.
func (s *PatientService) GetAppointments(ctx context.Context, userID uint) ([]models.Appointment, error) {
	patient, err := s.patientByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	appointments, err := s.store.ListAppointmentsByPatient(ctx, patient.ID)
	if err != nil {
		return nil, internalError(err)
	}
	return appointments, nil
}

// CancelAppointment transitions the patient's own appointment from
// Scheduled to Canceled. The transition is a conditional write, so an
// appointment that is missing, owned by someone else, or no longer
// Scheduled fails the same way.
func (s *PatientService) CancelAppointment(ctx context.Context, userID, appointmentID uint) error {
	patient, err := s.patientByUser(ctx, userID)
	if err != nil {
		return err
	}
	ok, err := s.store.TransitionAppointmentStatus(ctx, appointmentID,
		models.AppointmentScheduled, models.AppointmentCanceled,
		store.Owner{PatientID: patient.ID})
	if err != nil {
		return internalError(err)
	}
	if !ok {
		return notFoundError("appointment not found or not scheduled")
	}
	return nil
}

// RescheduleAppointment moves the patient's own appointment to a new
// instant. The new date must be in the future and clear of the doctor's
// Scheduled holidays; the appointment's status is left untouched.
func (s *PatientService) RescheduleAppointment(ctx context.Context, userID, appointmentID uint, newDate time.Time) error {
	patient, err := s.patientByUser(ctx, userID)
	if err != nil {
		return err
	}

	appointment, err := s.store.GetAppointmentOwned(ctx, appointmentID, store.Owner{PatientID: patient.ID})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return notFoundError("appointment not found or unauthorized access")
		}
		return internalError(err)
	}

	if !newDate.After(time.Now()) {
		return invalidError("the new appointment date and time must be in the future")
	}

	onHoliday, err := s.store.HasScheduledHolidayCovering(ctx, appointment.DoctorID, newDate)
	if err != nil {
		return internalError(err)
	}
	if onHoliday {
		return conflictError("the new appointment date conflicts with the doctor's holiday period")
	}

	if err := s.store.UpdateAppointmentDate(ctx, appointmentID, newDate); err != nil {
		return internalError(err)
	}
	return nil
}

// DoctorProfile is the directory view of a doctor.
type DoctorProfile struct {
	DoctorID        uint                   `json:"doctorId"`
	FullName        string                 `json:"fullName"`
	ExperienceYears int                    `json:"experienceYears"`
	Qualification   string                 `json:"qualification"`
	Designation     string                 `json:"designation"`
	Specializations []string               `json:"specializations"`
	Holidays        []models.DoctorHoliday `json:"holidays"`
}

// SearchDoctors lists active doctors, optionally filtered by specialization
// name, with their specializations and upcoming Scheduled holidays.
func (s *PatientService) SearchDoctors(ctx context.Context, specialization string) ([]DoctorProfile, error) {
	doctors, err := s.store.SearchDoctors(ctx, specialization)
	if err != nil {
		return nil, internalError(err)
	}

	profiles := make([]DoctorProfile, 0, len(doctors))
	for _, doctor := range doctors {
		specializations, err := s.store.ListDoctorSpecializations(ctx, doctor.ID)
		if err != nil {
			return nil, internalError(err)
		}
		names := make([]string, 0, len(specializations))
		for _, sp := range specializations {
			names = append(names, sp.SpecializationName)
		}

		holidays, err := s.store.ListHolidays(ctx, doctor.ID)
		if err != nil {
			return nil, internalError(err)
		}
		scheduled := make([]models.DoctorHoliday, 0, len(holidays))
		for _, h := range holidays {
			if h.Status == models.HolidayScheduled {
				scheduled = append(scheduled, h)
			}
		}

		profiles = append(profiles, DoctorProfile{
			DoctorID:        doctor.ID,
			FullName:        doctor.FullName,
			ExperienceYears: doctor.ExperienceYears,
			Qualification:   doctor.Qualification,
			Designation:     doctor.Designation,
			Specializations: names,
			Holidays:        scheduled,
		})
	}
	return profiles, nil
}

// GetMedicalHistory assembles the calling patient's own consultation
// history; see medicalHistoryByPatient.
func (s *PatientService) GetMedicalHistory(ctx context.Context, userID uint) ([]MedicalHistoryEntry, error) {
	patient, err := s.patientByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return medicalHistoryByPatient(ctx, s.store, patient.ID)
}

// GetPrescriptionDetails lists every prescription across the patient's
// medical records.
func (s *PatientService) GetPrescriptionDetails(ctx context.Context, userID uint) ([]models.Prescription, error) {
	patient, err := s.patientByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	prescriptions, err := s.store.ListPrescriptionsByPatient(ctx, patient.ID)
	if err != nil {
		return nil, internalError(err)
	}
	return prescriptions, nil
}

// GetTestDetails lists every ordered test across the patient's medical
// records.
func (s *PatientService) GetTestDetails(ctx context.Context, userID uint) ([]models.LabTest, error) {
	patient, err := s.patientByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	records, err := s.store.ListMedicalRecordsByPatient(ctx, patient.ID)
	if err != nil {
		return nil, internalError(err)
	}
	var tests []models.LabTest
	for _, record := range records {
		recordTests, err := s.store.ListRecordTestDetails(ctx, record.ID)
		if err != nil {
			return nil, internalError(err)
		}
		tests = append(tests, recordTests...)
	}
	return tests, nil
}

// GetBillingDetails lists the patient's billing rollups.
func (s *PatientService) GetBillingDetails(ctx context.Context, userID uint) ([]models.Billing, error) {
	patient, err := s.patientByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	billings, err := s.store.ListBillingsByPatient(ctx, patient.ID)
	if err != nil {
		return nil, internalError(err)
	}
	return billings, nil
}
