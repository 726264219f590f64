package services

import (
	"time"

	"github.com/rs/zerolog"

	"amazecare-server/internal/models"
)

var testLog = zerolog.Nop()

func seedUser(s *memStore, username string, role models.Role) models.User {
	user := models.User{Username: username, Role: role}
	_ = user.SetPassword("secret123")
	user.ID = s.id()
	s.users[user.ID] = user
	return user
}

func seedDoctor(s *memStore, username string) (models.User, models.Doctor) {
	user := seedUser(s, username, models.RoleDoctor)
	doctor := models.Doctor{
		UserID:          &user.ID,
		FullName:        "Dr. " + username,
		Email:           username + "@clinic.test",
		ExperienceYears: 5,
		Qualification:   "MD",
		Designation:     "Consultant",
	}
	doctor.ID = s.id()
	s.doctors[doctor.ID] = doctor
	return user, doctor
}

func seedPatient(s *memStore, username string) (models.User, models.Patient) {
	user := seedUser(s, username, models.RolePatient)
	patient := models.Patient{
		UserID:   &user.ID,
		FullName: username,
		Email:    username + "@mail.test",
	}
	patient.ID = s.id()
	s.patients[patient.ID] = patient
	return user, patient
}

func seedSpecialization(s *memStore, name string) models.Specialization {
	sp := models.Specialization{SpecializationName: name}
	sp.ID = s.id()
	s.specs[sp.ID] = sp
	return sp
}

func seedLabTest(s *memStore, name string, price float64) models.LabTest {
	t := models.LabTest{TestName: name, TestPrice: price}
	t.ID = s.id()
	s.tests[t.ID] = t
	return t
}

func seedMedication(s *memStore, name string, price float64) models.Medication {
	m := models.Medication{MedicationName: name, PricePerUnit: price}
	m.ID = s.id()
	s.medications[m.ID] = m
	return m
}

func seedAppointment(s *memStore, patientID, doctorID uint, at time.Time, status models.AppointmentStatus) models.Appointment {
	a := models.Appointment{
		PatientID:       patientID,
		DoctorID:        doctorID,
		AppointmentDate: at,
		Status:          status,
		Symptoms:        "headache",
	}
	a.ID = s.id()
	s.appointments[a.ID] = a
	return a
}

func seedHoliday(s *memStore, doctorID uint, start, end time.Time, status models.HolidayStatus) models.DoctorHoliday {
	h := models.DoctorHoliday{
		DoctorID:  doctorID,
		StartDate: start,
		EndDate:   end,
		Status:    status,
	}
	h.ID = s.id()
	s.holidays[h.ID] = h
	return h
}
