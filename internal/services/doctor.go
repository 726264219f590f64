package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"amazecare-server/internal/models"
	"amazecare-server/internal/store"
)

// DoctorService covers the doctor-facing appointment lifecycle, the
// consultation/billing engine and holiday management.
type DoctorService struct {
	store store.Store
	log   zerolog.Logger
}

// NewDoctorService creates a new DoctorService.
func NewDoctorService(st store.Store, log zerolog.Logger) *DoctorService {
	return &DoctorService{store: st, log: log}
}

func (s *DoctorService) doctorByUser(ctx context.Context, userID uint) (*models.Doctor, error) {
	doctor, err := s.store.GetDoctorByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, notFoundError("doctor not found")
		}
		return nil, internalError(err)
	}
	return doctor, nil
}

// GetAppointmentsByStatus lists the doctor's appointments in the given
// lifecycle state, soonest first.
func (s *DoctorService) GetAppointmentsByStatus(ctx context.Context, userID uint, status models.AppointmentStatus) ([]models.Appointment, error) {
	doctor, err := s.doctorByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	appointments, err := s.store.ListAppointmentsByDoctorAndStatus(ctx, doctor.ID, status)
	if err != nil {
		return nil, internalError(err)
	}
	return appointments, nil
}

// CancelScheduledAppointment transitions the doctor's own appointment from
// Scheduled to Canceled via a conditional write.
func (s *DoctorService) CancelScheduledAppointment(ctx context.Context, userID, appointmentID uint) error {
	doctor, err := s.doctorByUser(ctx, userID)
	if err != nil {
		return err
	}
	ok, err := s.store.TransitionAppointmentStatus(ctx, appointmentID,
		models.AppointmentScheduled, models.AppointmentCanceled,
		store.Owner{DoctorID: doctor.ID})
	if err != nil {
		return internalError(err)
	}
	if !ok {
		return notFoundError("appointment not found or not scheduled")
	}
	return nil
}

// RescheduleAppointment moves the doctor's own appointment to a new future
// instant clear of the doctor's Scheduled holidays.
func (s *DoctorService) RescheduleAppointment(ctx context.Context, userID, appointmentID uint, newDate time.Time) error {
	doctor, err := s.doctorByUser(ctx, userID)
	if err != nil {
		return err
	}

	if _, err := s.store.GetAppointmentOwned(ctx, appointmentID, store.Owner{DoctorID: doctor.ID}); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return notFoundError("appointment not found or unauthorized access")
		}
		return internalError(err)
	}

	if !newDate.After(time.Now()) {
		return invalidError("the new appointment date and time must be in the future")
	}

	onHoliday, err := s.store.HasScheduledHolidayCovering(ctx, doctor.ID, newDate)
	if err != nil {
		return internalError(err)
	}
	if onHoliday {
		return conflictError("the new appointment date conflicts with the doctor's scheduled holiday")
	}

	if err := s.store.UpdateAppointmentDate(ctx, appointmentID, newDate); err != nil {
		return internalError(err)
	}
	return nil
}

// PrescriptionRequest is one requested medication within a consultation.
type PrescriptionRequest struct {
	MedicationID uint
	Dosage       string
	DurationDays int
	Quantity     int
}

// ConsultationRequest carries the clinical findings and orders for one
// consultation. ConsultationFee is taken as supplied.
type ConsultationRequest struct {
	Symptoms            string
	PhysicalExamination string
	TreatmentPlan       string
	FollowUpDate        *time.Time
	TestIDs             []uint
	Prescriptions       []PrescriptionRequest
	ConsultationFee     float64
}

// ConductConsultation closes out a Scheduled appointment: it writes the
// medical record, the ordered-test rows, the prescriptions with prices
// snapshotted at consultation time, and the billing rollup, then completes
// the appointment. The whole write runs in one transaction so a failure at
// any step leaves no trace of the consultation.
//
// Unknown test ids are skipped; a prescription whose medication id is
// unknown is dropped entirely. Totals cover only what resolved.
func (s *DoctorService) ConductConsultation(ctx context.Context, userID, appointmentID uint, req ConsultationRequest) (*models.Billing, error) {
	doctor, err := s.doctorByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	var billing models.Billing
	err = s.store.Transaction(ctx, func(tx store.Store) error {
		appointment, err := tx.GetAppointmentOwned(ctx, appointmentID, store.Owner{DoctorID: doctor.ID})
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return notFoundError("appointment not found or unauthorized access")
			}
			return internalError(err)
		}
		if appointment.Status != models.AppointmentScheduled {
			return conflictError("appointment is not in a scheduled state")
		}

		record := models.MedicalRecord{
			AppointmentID:       appointment.ID,
			DoctorID:            doctor.ID,
			PatientID:           appointment.PatientID,
			Symptoms:            req.Symptoms,
			PhysicalExamination: req.PhysicalExamination,
			TreatmentPlan:       req.TreatmentPlan,
			FollowUpDate:        req.FollowUpDate,
			TotalPrice:          0,
		}
		if err := tx.CreateMedicalRecord(ctx, &record); err != nil {
			return internalError(err)
		}

		var totalTestsPrice float64
		tests, err := tx.GetTestsByIDs(ctx, req.TestIDs)
		if err != nil {
			return internalError(err)
		}
		recordTests := make([]models.MedicalRecordTest, 0, len(tests))
		for _, test := range tests {
			recordTests = append(recordTests, models.MedicalRecordTest{RecordID: record.ID, TestID: test.ID})
			totalTestsPrice += test.TestPrice
		}
		if err := tx.CreateMedicalRecordTests(ctx, recordTests); err != nil {
			return internalError(err)
		}

		var totalMedicationsPrice float64
		prescriptions := make([]models.Prescription, 0, len(req.Prescriptions))
		for _, p := range req.Prescriptions {
			medication, err := tx.GetMedication(ctx, p.MedicationID)
			if err != nil {
				if errors.Is(err, store.ErrNotFound) {
					continue
				}
				return internalError(err)
			}
			prescription := models.Prescription{
				RecordID:       record.ID,
				MedicationID:   medication.ID,
				MedicationName: medication.MedicationName,
				Dosage:         p.Dosage,
				DurationDays:   p.DurationDays,
				Quantity:       p.Quantity,
				TotalPrice:     medication.PricePerUnit * float64(p.Quantity),
			}
			totalMedicationsPrice += prescription.TotalPrice
			prescriptions = append(prescriptions, prescription)
		}
		if err := tx.CreatePrescriptions(ctx, prescriptions); err != nil {
			return internalError(err)
		}

		// Record total covers tests and medications only; the consultation
		// fee lives on the billing row.
		record.TotalPrice = totalTestsPrice + totalMedicationsPrice
		if err := tx.SaveMedicalRecord(ctx, &record); err != nil {
			return internalError(err)
		}

		billing = models.Billing{
			PatientID:             appointment.PatientID,
			DoctorID:              doctor.ID,
			MedicalRecordID:       record.ID,
			InvoiceNumber:         uuid.NewString(),
			ConsultationFee:       req.ConsultationFee,
			TotalTestsPrice:       totalTestsPrice,
			TotalMedicationsPrice: totalMedicationsPrice,
			GrandTotal:            req.ConsultationFee + totalTestsPrice + totalMedicationsPrice,
			Status:                models.BillingPending,
		}
		if err := tx.CreateBilling(ctx, &billing); err != nil {
			return internalError(err)
		}

		record.BillingID = &billing.ID
		if err := tx.SaveMedicalRecord(ctx, &record); err != nil {
			return internalError(err)
		}
		if err := tx.SetPrescriptionsBilling(ctx, record.ID, billing.ID); err != nil {
			return internalError(err)
		}

		ok, err := tx.TransitionAppointmentStatus(ctx, appointment.ID,
			models.AppointmentScheduled, models.AppointmentCompleted,
			store.Owner{DoctorID: doctor.ID})
		if err != nil {
			return internalError(err)
		}
		if !ok {
			return conflictError("appointment is no longer in a scheduled state")
		}
		return nil
	})
	if err != nil {
		var svcErr *Error
		if errors.As(err, &svcErr) {
			return nil, err
		}
		return nil, internalError(err)
	}

	s.log.Info().Uint("appointmentId", appointmentID).Uint("billingId", billing.ID).
		Float64("grandTotal", billing.GrandTotal).Msg("consultation completed")
	return &billing, nil
}

// GetPatientMedicalRecords assembles a patient's consultation history for a
// doctor preparing a visit. The view is not limited to the calling doctor's
// own records; any authenticated doctor can read any patient's history.
func (s *DoctorService) GetPatientMedicalRecords(ctx context.Context, userID, patientID uint) ([]MedicalHistoryEntry, error) {
	if _, err := s.doctorByUser(ctx, userID); err != nil {
		return nil, err
	}
	return medicalHistoryByPatient(ctx, s.store, patientID)
}

// RecordUpdate carries the optional clinical fields of a medical-record
// edit; nil fields are left as they are.
type RecordUpdate struct {
	Symptoms            *string
	PhysicalExamination *string
	TreatmentPlan       *string
	FollowUpDate        *time.Time
}

// UpdateMedicalRecord edits the clinical fields of a record owned by the
// calling doctor for the given patient. Billing is never recomputed here.
func (s *DoctorService) UpdateMedicalRecord(ctx context.Context, userID, recordID, patientID uint, update RecordUpdate) error {
	doctor, err := s.doctorByUser(ctx, userID)
	if err != nil {
		return err
	}

	record, err := s.store.GetMedicalRecordOwned(ctx, recordID, doctor.ID, patientID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return notFoundError("medical record not found")
		}
		return internalError(err)
	}

	if update.Symptoms != nil {
		record.Symptoms = *update.Symptoms
	}
	if update.PhysicalExamination != nil {
		record.PhysicalExamination = *update.PhysicalExamination
	}
	if update.TreatmentPlan != nil {
		record.TreatmentPlan = *update.TreatmentPlan
	}
	if update.FollowUpDate != nil {
		record.FollowUpDate = update.FollowUpDate
	}

	if err := s.store.SaveMedicalRecord(ctx, record); err != nil {
		return internalError(err)
	}
	return nil
}

// UpdateBillingStatus marks the doctor's own Pending billing as Paid. The
// transition is one-way; a second call on the same billing fails.
func (s *DoctorService) UpdateBillingStatus(ctx context.Context, userID, billingID uint) error {
	doctor, err := s.doctorByUser(ctx, userID)
	if err != nil {
		return err
	}
	ok, err := s.store.MarkBillingPaid(ctx, billingID, doctor.ID)
	if err != nil {
		return internalError(err)
	}
	if !ok {
		return notFoundError("billing not found, unauthorized, or already paid")
	}
	return nil
}

// ListTests returns the orderable lab tests.
func (s *DoctorService) ListTests(ctx context.Context) ([]models.LabTest, error) {
	tests, err := s.store.ListTests(ctx)
	if err != nil {
		return nil, internalError(err)
	}
	return tests, nil
}

// ListMedications returns the prescribable medications.
func (s *DoctorService) ListMedications(ctx context.Context) ([]models.Medication, error) {
	medications, err := s.store.ListMedications(ctx)
	if err != nil {
		return nil, internalError(err)
	}
	return medications, nil
}

// AddHoliday declares a new Scheduled holiday range for the calling doctor.
// Overlapping ranges are accepted.
func (s *DoctorService) AddHoliday(ctx context.Context, userID uint, start, end time.Time) (*models.DoctorHoliday, error) {
	doctor, err := s.doctorByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	holiday := models.DoctorHoliday{
		DoctorID:  doctor.ID,
		StartDate: start,
		EndDate:   end,
		Status:    models.HolidayScheduled,
	}
	if err := s.store.CreateHoliday(ctx, &holiday); err != nil {
		return nil, internalError(err)
	}
	return &holiday, nil
}

// UpdateHoliday rewrites the range and status of the doctor's own holiday.
func (s *DoctorService) UpdateHoliday(ctx context.Context, userID, holidayID uint, start, end time.Time, status models.HolidayStatus) error {
	doctor, err := s.doctorByUser(ctx, userID)
	if err != nil {
		return err
	}

	holiday, err := s.store.GetDoctorHoliday(ctx, holidayID, doctor.ID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return notFoundError("holiday not found for this doctor")
		}
		return internalError(err)
	}

	holiday.StartDate = start
	holiday.EndDate = end
	holiday.Status = status
	if err := s.store.SaveHoliday(ctx, holiday); err != nil {
		return internalError(err)
	}
	return nil
}

// CancelHoliday retires the doctor's own holiday; see cancelHoliday for the
// already-retired messaging.
func (s *DoctorService) CancelHoliday(ctx context.Context, userID, holidayID uint) (string, error) {
	doctor, err := s.doctorByUser(ctx, userID)
	if err != nil {
		return "", err
	}
	return cancelHoliday(ctx, s.store, holidayID, doctor.ID)
}

// GetHolidays lists all of the doctor's holidays regardless of status.
func (s *DoctorService) GetHolidays(ctx context.Context, userID uint) ([]models.DoctorHoliday, error) {
	doctor, err := s.doctorByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	holidays, err := s.store.ListHolidays(ctx, doctor.ID)
	if err != nil {
		return nil, internalError(err)
	}
	return holidays, nil
}
