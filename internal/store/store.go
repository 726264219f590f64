package store

import (
	"context"
	"errors"
	"time"

	"amazecare-server/internal/models"
)

// ErrNotFound is returned by Get* methods when no row matches.
var ErrNotFound = errors.New("record not found")

// Owner scopes a conditional appointment transition to the appointment's
// doctor or patient. The zero value leaves the transition unscoped (admin).
type Owner struct {
	DoctorID  uint
	PatientID uint
}

// Store is the persistence boundary for the clinic. Entities are flat rows
// addressed by id with explicit foreign-key fields; there is no tracked
// object graph, and cross-entity reads are explicit queries.
//
// Status transitions are conditional writes: they only apply when the row is
// still in the expected prior state, and report whether a row was updated.
type Store interface {
	// Transaction runs fn against a Store bound to a single database
	// transaction. Any error from fn rolls back every write made through it.
	Transaction(ctx context.Context, fn func(Store) error) error

	// Users
	CreateUser(ctx context.Context, user *models.User) error
	CreateAdministrator(ctx context.Context, admin *models.Administrator) error
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	UsernameTaken(ctx context.Context, username string) (bool, error)
	DeleteUser(ctx context.Context, userID uint) error

	// Doctors
	CreateDoctor(ctx context.Context, doctor *models.Doctor) error
	GetDoctor(ctx context.Context, doctorID uint) (*models.Doctor, error)
	GetDoctorByUserID(ctx context.Context, userID uint) (*models.Doctor, error)
	SaveDoctor(ctx context.Context, doctor *models.Doctor) error
	ReplaceDoctorSpecializations(ctx context.Context, doctorID uint, specializationIDs []uint) error
	ListDoctorSpecializations(ctx context.Context, doctorID uint) ([]models.Specialization, error)
	SearchDoctors(ctx context.Context, specialization string) ([]models.Doctor, error)

	// Patients
	CreatePatient(ctx context.Context, patient *models.Patient) error
	GetPatient(ctx context.Context, patientID uint) (*models.Patient, error)
	GetPatientByUserID(ctx context.Context, userID uint) (*models.Patient, error)
	SavePatient(ctx context.Context, patient *models.Patient) error

	// Reference data
	ListTests(ctx context.Context) ([]models.LabTest, error)
	GetTestsByIDs(ctx context.Context, testIDs []uint) ([]models.LabTest, error)
	ListMedications(ctx context.Context) ([]models.Medication, error)
	GetMedication(ctx context.Context, medicationID uint) (*models.Medication, error)

	// Holidays
	CreateHoliday(ctx context.Context, holiday *models.DoctorHoliday) error
	GetDoctorHoliday(ctx context.Context, holidayID, doctorID uint) (*models.DoctorHoliday, error)
	SaveHoliday(ctx context.Context, holiday *models.DoctorHoliday) error
	ListHolidays(ctx context.Context, doctorID uint) ([]models.DoctorHoliday, error)
	HasScheduledHolidayCovering(ctx context.Context, doctorID uint, at time.Time) (bool, error)
	CompleteExpiredHolidays(ctx context.Context, now time.Time) (int64, error)

	// Appointments
	CreateAppointment(ctx context.Context, appointment *models.Appointment) error
	GetAppointment(ctx context.Context, appointmentID uint) (*models.Appointment, error)
	GetAppointmentOwned(ctx context.Context, appointmentID uint, owner Owner) (*models.Appointment, error)
	UpdateAppointmentDate(ctx context.Context, appointmentID uint, newDate time.Time) error
	TransitionAppointmentStatus(ctx context.Context, appointmentID uint, from, to models.AppointmentStatus, owner Owner) (bool, error)
	ListAppointmentsByDoctorAndStatus(ctx context.Context, doctorID uint, status models.AppointmentStatus) ([]models.Appointment, error)
	ListAppointmentsByPatient(ctx context.Context, patientID uint) ([]models.Appointment, error)
	CancelScheduledAppointments(ctx context.Context, owner Owner) (int64, error)

	// Medical records
	CreateMedicalRecord(ctx context.Context, record *models.MedicalRecord) error
	GetMedicalRecordOwned(ctx context.Context, recordID, doctorID, patientID uint) (*models.MedicalRecord, error)
	GetMedicalRecordByAppointment(ctx context.Context, appointmentID uint) (*models.MedicalRecord, error)
	SaveMedicalRecord(ctx context.Context, record *models.MedicalRecord) error
	ListMedicalRecordsByPatient(ctx context.Context, patientID uint) ([]models.MedicalRecord, error)
	CreateMedicalRecordTests(ctx context.Context, tests []models.MedicalRecordTest) error
	ListRecordTestDetails(ctx context.Context, recordID uint) ([]models.LabTest, error)

	// Prescriptions
	CreatePrescriptions(ctx context.Context, prescriptions []models.Prescription) error
	SetPrescriptionsBilling(ctx context.Context, recordID, billingID uint) error
	ListPrescriptionsByRecord(ctx context.Context, recordID uint) ([]models.Prescription, error)
	ListPrescriptionsByPatient(ctx context.Context, patientID uint) ([]models.Prescription, error)

	// Billing
	CreateBilling(ctx context.Context, billing *models.Billing) error
	GetBillingByRecord(ctx context.Context, recordID uint) (*models.Billing, error)
	MarkBillingPaid(ctx context.Context, billingID, doctorID uint) (bool, error)
	ListBillingsByPatient(ctx context.Context, patientID uint) ([]models.Billing, error)
}
