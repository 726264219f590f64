package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"amazecare-server/internal/models"
)

func TestScheduleAppointment(t *testing.T) {
	st := newMemStore()
	svc := NewPatientService(st, testLog)
	userPat, patient := seedPatient(st, "alice")
	_, doctor := seedDoctor(st, "bob")

	appointment, err := svc.ScheduleAppointment(context.Background(), userPat.ID, BookingRequest{
		DoctorID:        doctor.ID,
		AppointmentDate: time.Now().Add(48 * time.Hour),
		Symptoms:        "fever",
	})
	require.NoError(t, err)
	assert.Equal(t, models.AppointmentScheduled, appointment.Status)
	assert.Equal(t, patient.ID, appointment.PatientID)
	assert.Equal(t, doctor.ID, appointment.DoctorID)
	assert.Equal(t, "fever", appointment.Symptoms)
}

func TestScheduleAppointmentPastDateAccepted(t *testing.T) {
	st := newMemStore()
	svc := NewPatientService(st, testLog)
	userPat, _ := seedPatient(st, "alice")
	_, doctor := seedDoctor(st, "bob")

	// Booking does not gate on the clock; only rescheduling does.
	_, err := svc.ScheduleAppointment(context.Background(), userPat.ID, BookingRequest{
		DoctorID:        doctor.ID,
		AppointmentDate: time.Now().Add(-24 * time.Hour),
	})
	require.NoError(t, err)
}

func TestScheduleAppointmentDuringHoliday(t *testing.T) {
	st := newMemStore()
	svc := NewPatientService(st, testLog)
	userPat, _ := seedPatient(st, "alice")
	_, doctor := seedDoctor(st, "bob")

	start := time.Now().Add(24 * time.Hour)
	end := start.Add(72 * time.Hour)
	seedHoliday(st, doctor.ID, start, end, models.HolidayScheduled)

	cases := []struct {
		name string
		at   time.Time
	}{
		{"inside range", start.Add(24 * time.Hour)},
		{"start boundary", start},
		{"end boundary", end},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.ScheduleAppointment(context.Background(), userPat.ID, BookingRequest{
				DoctorID:        doctor.ID,
				AppointmentDate: tc.at,
			})
			assert.ErrorIs(t, err, ErrConflict)
		})
	}

	// Just outside the inclusive range the slot is free again.
	_, err := svc.ScheduleAppointment(context.Background(), userPat.ID, BookingRequest{
		DoctorID:        doctor.ID,
		AppointmentDate: end.Add(time.Minute),
	})
	require.NoError(t, err)
}

func TestScheduleAppointmentIgnoresRetiredHolidays(t *testing.T) {
	st := newMemStore()
	svc := NewPatientService(st, testLog)
	userPat, _ := seedPatient(st, "alice")
	_, doctor := seedDoctor(st, "bob")

	at := time.Now().Add(48 * time.Hour)
	seedHoliday(st, doctor.ID, at.Add(-time.Hour), at.Add(time.Hour), models.HolidayCancelled)
	seedHoliday(st, doctor.ID, at.Add(-time.Hour), at.Add(time.Hour), models.HolidayCompleted)

	_, err := svc.ScheduleAppointment(context.Background(), userPat.ID, BookingRequest{
		DoctorID:        doctor.ID,
		AppointmentDate: at,
	})
	require.NoError(t, err)
}

func TestCancelAppointment(t *testing.T) {
	st := newMemStore()
	svc := NewPatientService(st, testLog)
	userPat, patient := seedPatient(st, "alice")
	_, doctor := seedDoctor(st, "bob")
	appointment := seedAppointment(st, patient.ID, doctor.ID, time.Now().Add(24*time.Hour), models.AppointmentScheduled)

	require.NoError(t, svc.CancelAppointment(context.Background(), userPat.ID, appointment.ID))
	assert.Equal(t, models.AppointmentCanceled, st.appointments[appointment.ID].Status)

	// Canceled is terminal; a second cancel finds nothing to transition.
	err := svc.CancelAppointment(context.Background(), userPat.ID, appointment.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCancelAppointmentNotOwned(t *testing.T) {
	st := newMemStore()
	svc := NewPatientService(st, testLog)
	userPat, _ := seedPatient(st, "alice")
	_, other := seedPatient(st, "mallory")
	_, doctor := seedDoctor(st, "bob")
	appointment := seedAppointment(st, other.ID, doctor.ID, time.Now().Add(24*time.Hour), models.AppointmentScheduled)

	err := svc.CancelAppointment(context.Background(), userPat.ID, appointment.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, models.AppointmentScheduled, st.appointments[appointment.ID].Status)
}

func TestCancelAppointmentCompleted(t *testing.T) {
	st := newMemStore()
	svc := NewPatientService(st, testLog)
	userPat, patient := seedPatient(st, "alice")
	_, doctor := seedDoctor(st, "bob")
	appointment := seedAppointment(st, patient.ID, doctor.ID, time.Now().Add(-24*time.Hour), models.AppointmentCompleted)

	err := svc.CancelAppointment(context.Background(), userPat.ID, appointment.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, models.AppointmentCompleted, st.appointments[appointment.ID].Status)
}

func TestRescheduleAppointment(t *testing.T) {
	st := newMemStore()
	svc := NewPatientService(st, testLog)
	userPat, patient := seedPatient(st, "alice")
	_, doctor := seedDoctor(st, "bob")
	appointment := seedAppointment(st, patient.ID, doctor.ID, time.Now().Add(24*time.Hour), models.AppointmentScheduled)

	newDate := time.Now().Add(96 * time.Hour)
	require.NoError(t, svc.RescheduleAppointment(context.Background(), userPat.ID, appointment.ID, newDate))
	assert.True(t, st.appointments[appointment.ID].AppointmentDate.Equal(newDate))
}

func TestRescheduleAppointmentPastDate(t *testing.T) {
	st := newMemStore()
	svc := NewPatientService(st, testLog)
	userPat, patient := seedPatient(st, "alice")
	_, doctor := seedDoctor(st, "bob")
	original := time.Now().Add(24 * time.Hour)
	appointment := seedAppointment(st, patient.ID, doctor.ID, original, models.AppointmentScheduled)

	err := svc.RescheduleAppointment(context.Background(), userPat.ID, appointment.ID, time.Now().Add(-time.Hour))
	assert.ErrorIs(t, err, ErrInvalid)
	assert.True(t, st.appointments[appointment.ID].AppointmentDate.Equal(original))
}

func TestRescheduleAppointmentIntoHoliday(t *testing.T) {
	st := newMemStore()
	svc := NewPatientService(st, testLog)
	userPat, patient := seedPatient(st, "alice")
	_, doctor := seedDoctor(st, "bob")
	appointment := seedAppointment(st, patient.ID, doctor.ID, time.Now().Add(24*time.Hour), models.AppointmentScheduled)

	target := time.Now().Add(96 * time.Hour)
	seedHoliday(st, doctor.ID, target.Add(-time.Hour), target.Add(time.Hour), models.HolidayScheduled)

	err := svc.RescheduleAppointment(context.Background(), userPat.ID, appointment.ID, target)
	assert.ErrorIs(t, err, ErrConflict)
}

func TestSearchDoctors(t *testing.T) {
	st := newMemStore()
	svc := NewPatientService(st, testLog)
	_, cardio := seedDoctor(st, "bob")
	_, derm := seedDoctor(st, "carol")
	_, inactive := seedDoctor(st, "dave")

	d := st.doctors[inactive.ID]
	d.Designation = models.DesignationInactive
	st.doctors[inactive.ID] = d

	cardiology := seedSpecialization(st, "Cardiology")
	dermatology := seedSpecialization(st, "Dermatology")
	st.doctorSpecs = append(st.doctorSpecs,
		models.DoctorSpecialization{DoctorID: cardio.ID, SpecializationID: cardiology.ID},
		models.DoctorSpecialization{DoctorID: derm.ID, SpecializationID: dermatology.ID},
	)
	seedHoliday(st, cardio.ID, time.Now(), time.Now().Add(24*time.Hour), models.HolidayScheduled)
	seedHoliday(st, cardio.ID, time.Now(), time.Now().Add(24*time.Hour), models.HolidayCancelled)

	all, err := svc.SearchDoctors(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	profiles, err := svc.SearchDoctors(context.Background(), "Cardiology")
	require.NoError(t, err)
	require.Len(t, profiles, 1)
	assert.Equal(t, cardio.ID, profiles[0].DoctorID)
	assert.Equal(t, []string{"Cardiology"}, profiles[0].Specializations)
	// Only Scheduled holidays surface in the directory view.
	assert.Len(t, profiles[0].Holidays, 1)
}

func TestGetMedicalHistory(t *testing.T) {
	st := newMemStore()
	patientSvc := NewPatientService(st, testLog)
	doctorSvc := NewDoctorService(st, testLog)
	userPat, patient := seedPatient(st, "alice")
	userDoc, doctor := seedDoctor(st, "bob")
	bloodPanel := seedLabTest(st, "Blood Panel", 80)
	ibuprofen := seedMedication(st, "Ibuprofen", 15)
	appointment := seedAppointment(st, patient.ID, doctor.ID, time.Now().Add(time.Hour), models.AppointmentScheduled)

	_, err := doctorSvc.ConductConsultation(context.Background(), userDoc.ID, appointment.ID, ConsultationRequest{
		Symptoms:            "fever",
		PhysicalExamination: "normal",
		TreatmentPlan:       "rest",
		TestIDs:             []uint{bloodPanel.ID},
		Prescriptions: []PrescriptionRequest{
			{MedicationID: ibuprofen.ID, Dosage: "200mg", DurationDays: 5, Quantity: 2},
		},
		ConsultationFee: 100,
	})
	require.NoError(t, err)

	history, err := patientSvc.GetMedicalHistory(context.Background(), userPat.ID)
	require.NoError(t, err)
	require.Len(t, history, 1)

	entry := history[0]
	assert.Equal(t, "Dr. bob", entry.DoctorName)
	assert.Equal(t, "fever", entry.Symptoms)
	require.Len(t, entry.Tests, 1)
	assert.Equal(t, "Blood Panel", entry.Tests[0].TestName)
	require.Len(t, entry.Prescriptions, 1)
	assert.Equal(t, "Ibuprofen", entry.Prescriptions[0].MedicationName)
	require.NotNil(t, entry.Billing)
	assert.Equal(t, 210.0, entry.Billing.GrandTotal)

	// Appointments without a record contribute nothing.
	seedAppointment(st, patient.ID, doctor.ID, time.Now().Add(2*time.Hour), models.AppointmentScheduled)
	history, err = patientSvc.GetMedicalHistory(context.Background(), userPat.ID)
	require.NoError(t, err)
	assert.Len(t, history, 1)
}

func TestUpdatePersonalInfo(t *testing.T) {
	st := newMemStore()
	svc := NewPatientService(st, testLog)
	userPat, patient := seedPatient(st, "alice")

	dob := time.Date(1990, 3, 14, 0, 0, 0, 0, time.UTC)
	updated, err := svc.UpdatePersonalInfo(context.Background(), userPat.ID, PatientUpdate{
		FullName:      "Alice Smith",
		ContactNumber: "555-0100",
		DateOfBirth:   &dob,
		Gender:        "F",
	})
	require.NoError(t, err)
	assert.Equal(t, "Alice Smith", updated.FullName)
	assert.Equal(t, "Alice Smith", st.patients[patient.ID].FullName)
	assert.Equal(t, "555-0100", st.patients[patient.ID].ContactNumber)
}

func TestPatientViewsUnknownUser(t *testing.T) {
	st := newMemStore()
	svc := NewPatientService(st, testLog)

	_, err := svc.GetAppointments(context.Background(), 99)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = svc.GetBillingDetails(context.Background(), 99)
	assert.ErrorIs(t, err, ErrNotFound)
}
