package services

import (
	"context"
	"errors"
	"time"

	"amazecare-server/internal/models"
	"amazecare-server/internal/store"
)

// MedicalHistoryEntry is one completed consultation in a patient's history.
type MedicalHistoryEntry struct {
	AppointmentDate     time.Time             `json:"appointmentDate"`
	DoctorName          string                `json:"doctorName"`
	Symptoms            string                `json:"symptoms"`
	PhysicalExamination string                `json:"physicalExamination"`
	TreatmentPlan       string                `json:"treatmentPlan"`
	FollowUpDate        *time.Time            `json:"followUpDate,omitempty"`
	Tests               []models.LabTest      `json:"tests"`
	Prescriptions       []models.Prescription `json:"prescriptions"`
	Billing             *models.Billing       `json:"billing,omitempty"`
}

// medicalHistoryByPatient assembles a patient's consultation history: for
// every appointment with a medical record, the record's clinical fields plus
// its ordered tests, prescriptions and billing rollup. Appointments without
// a record are skipped.
func medicalHistoryByPatient(ctx context.Context, st store.Store, patientID uint) ([]MedicalHistoryEntry, error) {
	appointments, err := st.ListAppointmentsByPatient(ctx, patientID)
	if err != nil {
		return nil, internalError(err)
	}

	entries := make([]MedicalHistoryEntry, 0, len(appointments))
	for _, appointment := range appointments {
		record, err := st.GetMedicalRecordByAppointment(ctx, appointment.ID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				continue
			}
			return nil, internalError(err)
		}

		tests, err := st.ListRecordTestDetails(ctx, record.ID)
		if err != nil {
			return nil, internalError(err)
		}
		prescriptions, err := st.ListPrescriptionsByRecord(ctx, record.ID)
		if err != nil {
			return nil, internalError(err)
		}

		entry := MedicalHistoryEntry{
			AppointmentDate:     appointment.AppointmentDate,
			Symptoms:            record.Symptoms,
			PhysicalExamination: record.PhysicalExamination,
			TreatmentPlan:       record.TreatmentPlan,
			FollowUpDate:        record.FollowUpDate,
			Tests:               tests,
			Prescriptions:       prescriptions,
		}

		if doctor, err := st.GetDoctor(ctx, appointment.DoctorID); err == nil {
			entry.DoctorName = doctor.FullName
		} else if !errors.Is(err, store.ErrNotFound) {
			return nil, internalError(err)
		}

		if billing, err := st.GetBillingByRecord(ctx, record.ID); err == nil {
			entry.Billing = billing
		} else if !errors.Is(err, store.ErrNotFound) {
			return nil, internalError(err)
		}

		entries = append(entries, entry)
	}
	return entries, nil
}
