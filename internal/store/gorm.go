package store

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"amazecare-server/internal/models"
)

// gormStore implements Store on a MySQL-backed *gorm.DB.
type gormStore struct {
	db *gorm.DB
}

// New creates a Store backed by the given gorm connection.
func New(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) Transaction(ctx context.Context, fn func(Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormStore{db: tx})
	})
}

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// -- Users --

func (s *gormStore) CreateUser(ctx context.Context, user *models.User) error {
	return s.db.WithContext(ctx).Create(user).Error
}

func (s *gormStore) CreateAdministrator(ctx context.Context, admin *models.Administrator) error {
	return s.db.WithContext(ctx).Create(admin).Error
}

func (s *gormStore) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (s *gormStore) UsernameTaken(ctx context.Context, username string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.User{}).Where("username = ?", username).Count(&count).Error
	return count > 0, err
}

func (s *gormStore) DeleteUser(ctx context.Context, userID uint) error {
	return s.db.WithContext(ctx).Delete(&models.User{}, userID).Error
}

// -- Doctors --

func (s *gormStore) CreateDoctor(ctx context.Context, doctor *models.Doctor) error {
	return s.db.WithContext(ctx).Create(doctor).Error
}

func (s *gormStore) GetDoctor(ctx context.Context, doctorID uint) (*models.Doctor, error) {
	var doctor models.Doctor
	if err := s.db.WithContext(ctx).First(&doctor, doctorID).Error; err != nil {
		return nil, translate(err)
	}
	return &doctor, nil
}

func (s *gormStore) GetDoctorByUserID(ctx context.Context, userID uint) (*models.Doctor, error) {
	var doctor models.Doctor
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&doctor).Error; err != nil {
		return nil, translate(err)
	}
	return &doctor, nil
}

func (s *gormStore) SaveDoctor(ctx context.Context, doctor *models.Doctor) error {
	return s.db.WithContext(ctx).Save(doctor).Error
}

func (s *gormStore) ReplaceDoctorSpecializations(ctx context.Context, doctorID uint, specializationIDs []uint) error {
	tx := s.db.WithContext(ctx)
	if err := tx.Where("doctor_id = ?", doctorID).Delete(&models.DoctorSpecialization{}).Error; err != nil {
		return err
	}
	if len(specializationIDs) == 0 {
		return nil
	}
	rows := make([]models.DoctorSpecialization, 0, len(specializationIDs))
	for _, specializationID := range specializationIDs {
		rows = append(rows, models.DoctorSpecialization{DoctorID: doctorID, SpecializationID: specializationID})
	}
	return tx.Create(&rows).Error
}

func (s *gormStore) ListDoctorSpecializations(ctx context.Context, doctorID uint) ([]models.Specialization, error) {
	var specializations []models.Specialization
	err := s.db.WithContext(ctx).
		Joins("JOIN doctor_specializations ds ON ds.specialization_id = specializations.id").
		Where("ds.doctor_id = ?", doctorID).
		Find(&specializations).Error
	return specializations, err
}

func (s *gormStore) SearchDoctors(ctx context.Context, specialization string) ([]models.Doctor, error) {
	query := s.db.WithContext(ctx).Model(&models.Doctor{}).
		Where("designation <> ?", models.DesignationInactive)
	if specialization != "" {
		query = query.
			Joins("JOIN doctor_specializations ds ON ds.doctor_id = doctors.id").
			Joins("JOIN specializations sp ON sp.id = ds.specialization_id").
			Where("sp.specialization_name = ?", specialization)
	}
	var doctors []models.Doctor
	err := query.Find(&doctors).Error
	return doctors, err
}

// -- Patients --

func (s *gormStore) CreatePatient(ctx context.Context, patient *models.Patient) error {
	return s.db.WithContext(ctx).Create(patient).Error
}

func (s *gormStore) GetPatient(ctx context.Context, patientID uint) (*models.Patient, error) {
	var patient models.Patient
	if err := s.db.WithContext(ctx).First(&patient, patientID).Error; err != nil {
		return nil, translate(err)
	}
	return &patient, nil
}

func (s *gormStore) GetPatientByUserID(ctx context.Context, userID uint) (*models.Patient, error) {
	var patient models.Patient
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&patient).Error; err != nil {
		return nil, translate(err)
	}
	return &patient, nil
}

func (s *gormStore) SavePatient(ctx context.Context, patient *models.Patient) error {
	return s.db.WithContext(ctx).Save(patient).Error
}

// -- Reference data --

func (s *gormStore) ListTests(ctx context.Context) ([]models.LabTest, error) {
	var tests []models.LabTest
	err := s.db.WithContext(ctx).Find(&tests).Error
	return tests, err
}

func (s *gormStore) GetTestsByIDs(ctx context.Context, testIDs []uint) ([]models.LabTest, error) {
	if len(testIDs) == 0 {
		return nil, nil
	}
	var tests []models.LabTest
	err := s.db.WithContext(ctx).Where("id IN ?", testIDs).Find(&tests).Error
	return tests, err
}

func (s *gormStore) ListMedications(ctx context.Context) ([]models.Medication, error) {
	var medications []models.Medication
	err := s.db.WithContext(ctx).Find(&medications).Error
	return medications, err
}

func (s *gormStore) GetMedication(ctx context.Context, medicationID uint) (*models.Medication, error) {
	var medication models.Medication
	if err := s.db.WithContext(ctx).First(&medication, medicationID).Error; err != nil {
		return nil, translate(err)
	}
	return &medication, nil
}

// -- Holidays --

func (s *gormStore) CreateHoliday(ctx context.Context, holiday *models.DoctorHoliday) error {
	return s.db.WithContext(ctx).Create(holiday).Error
}

func (s *gormStore) GetDoctorHoliday(ctx context.Context, holidayID, doctorID uint) (*models.DoctorHoliday, error) {
	var holiday models.DoctorHoliday
	err := s.db.WithContext(ctx).
		Where("id = ? AND doctor_id = ?", holidayID, doctorID).
		First(&holiday).Error
	if err != nil {
		return nil, translate(err)
	}
	return &holiday, nil
}

func (s *gormStore) SaveHoliday(ctx context.Context, holiday *models.DoctorHoliday) error {
	return s.db.WithContext(ctx).Save(holiday).Error
}

func (s *gormStore) ListHolidays(ctx context.Context, doctorID uint) ([]models.DoctorHoliday, error) {
	var holidays []models.DoctorHoliday
	err := s.db.WithContext(ctx).Where("doctor_id = ?", doctorID).Find(&holidays).Error
	return holidays, err
}

func (s *gormStore) HasScheduledHolidayCovering(ctx context.Context, doctorID uint, at time.Time) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.DoctorHoliday{}).
		Where("doctor_id = ? AND status = ? AND start_date <= ? AND end_date >= ?",
			doctorID, models.HolidayScheduled, at, at).
		Count(&count).Error
	return count > 0, err
}

func (s *gormStore) CompleteExpiredHolidays(ctx context.Context, now time.Time) (int64, error) {
	res := s.db.WithContext(ctx).Model(&models.DoctorHoliday{}).
		Where("status = ? AND end_date < ?", models.HolidayScheduled, now).
		Update("status", models.HolidayCompleted)
	return res.RowsAffected, res.Error
}

// -- Appointments --

func (s *gormStore) CreateAppointment(ctx context.Context, appointment *models.Appointment) error {
	return s.db.WithContext(ctx).Create(appointment).Error
}

func (s *gormStore) GetAppointment(ctx context.Context, appointmentID uint) (*models.Appointment, error) {
	var appointment models.Appointment
	if err := s.db.WithContext(ctx).First(&appointment, appointmentID).Error; err != nil {
		return nil, translate(err)
	}
	return &appointment, nil
}

func (s *gormStore) GetAppointmentOwned(ctx context.Context, appointmentID uint, owner Owner) (*models.Appointment, error) {
	query := s.db.WithContext(ctx).Where("id = ?", appointmentID)
	if owner.DoctorID != 0 {
		query = query.Where("doctor_id = ?", owner.DoctorID)
	}
	if owner.PatientID != 0 {
		query = query.Where("patient_id = ?", owner.PatientID)
	}
	var appointment models.Appointment
	if err := query.First(&appointment).Error; err != nil {
		return nil, translate(err)
	}
	return &appointment, nil
}

func (s *gormStore) UpdateAppointmentDate(ctx context.Context, appointmentID uint, newDate time.Time) error {
	return s.db.WithContext(ctx).Model(&models.Appointment{}).
		Where("id = ?", appointmentID).
		Update("appointment_date", newDate).Error
}

// TransitionAppointmentStatus is a compare-and-swap on the status column:
// the update applies only while the row is still in the expected prior
// state, so two concurrent callers cannot both win the same transition.
func (s *gormStore) TransitionAppointmentStatus(ctx context.Context, appointmentID uint, from, to models.AppointmentStatus, owner Owner) (bool, error) {
	query := s.db.WithContext(ctx).Model(&models.Appointment{}).
		Where("id = ? AND status = ?", appointmentID, from)
	if owner.DoctorID != 0 {
		query = query.Where("doctor_id = ?", owner.DoctorID)
	}
	if owner.PatientID != 0 {
		query = query.Where("patient_id = ?", owner.PatientID)
	}
	res := query.Update("status", to)
	return res.RowsAffected > 0, res.Error
}

func (s *gormStore) ListAppointmentsByDoctorAndStatus(ctx context.Context, doctorID uint, status models.AppointmentStatus) ([]models.Appointment, error) {
	var appointments []models.Appointment
	err := s.db.WithContext(ctx).
		Where("doctor_id = ? AND status = ?", doctorID, status).
		Order("appointment_date asc").
		Find(&appointments).Error
	return appointments, err
}

func (s *gormStore) ListAppointmentsByPatient(ctx context.Context, patientID uint) ([]models.Appointment, error) {
	var appointments []models.Appointment
	err := s.db.WithContext(ctx).
		Where("patient_id = ?", patientID).
		Order("appointment_date asc").
		Find(&appointments).Error
	return appointments, err
}

func (s *gormStore) CancelScheduledAppointments(ctx context.Context, owner Owner) (int64, error) {
	query := s.db.WithContext(ctx).Model(&models.Appointment{}).
		Where("status = ?", models.AppointmentScheduled)
	if owner.DoctorID != 0 {
		query = query.Where("doctor_id = ?", owner.DoctorID)
	}
	if owner.PatientID != 0 {
		query = query.Where("patient_id = ?", owner.PatientID)
	}
	res := query.Update("status", models.AppointmentCanceled)
	return res.RowsAffected, res.Error
}

// -- Medical records --

func (s *gormStore) CreateMedicalRecord(ctx context.Context, record *models.MedicalRecord) error {
	return s.db.WithContext(ctx).Create(record).Error
}

func (s *gormStore) GetMedicalRecordOwned(ctx context.Context, recordID, doctorID, patientID uint) (*models.MedicalRecord, error) {
	var record models.MedicalRecord
	err := s.db.WithContext(ctx).
		Where("id = ? AND doctor_id = ? AND patient_id = ?", recordID, doctorID, patientID).
		First(&record).Error
	if err != nil {
		return nil, translate(err)
	}
	return &record, nil
}

func (s *gormStore) GetMedicalRecordByAppointment(ctx context.Context, appointmentID uint) (*models.MedicalRecord, error) {
	var record models.MedicalRecord
	err := s.db.WithContext(ctx).
		Where("appointment_id = ?", appointmentID).
		First(&record).Error
	if err != nil {
		return nil, translate(err)
	}
	return &record, nil
}

func (s *gormStore) SaveMedicalRecord(ctx context.Context, record *models.MedicalRecord) error {
	return s.db.WithContext(ctx).Save(record).Error
}

func (s *gormStore) ListMedicalRecordsByPatient(ctx context.Context, patientID uint) ([]models.MedicalRecord, error) {
	var records []models.MedicalRecord
	err := s.db.WithContext(ctx).Where("patient_id = ?", patientID).Find(&records).Error
	return records, err
}

func (s *gormStore) CreateMedicalRecordTests(ctx context.Context, tests []models.MedicalRecordTest) error {
	if len(tests) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).Create(&tests).Error
}

func (s *gormStore) ListRecordTestDetails(ctx context.Context, recordID uint) ([]models.LabTest, error) {
	var tests []models.LabTest
	err := s.db.WithContext(ctx).Model(&models.LabTest{}).
		Joins("JOIN medical_record_tests mrt ON mrt.test_id = lab_tests.id").
		Where("mrt.record_id = ?", recordID).
		Find(&tests).Error
	return tests, err
}

// -- Prescriptions --

func (s *gormStore) CreatePrescriptions(ctx context.Context, prescriptions []models.Prescription) error {
	if len(prescriptions) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).Create(&prescriptions).Error
}

func (s *gormStore) SetPrescriptionsBilling(ctx context.Context, recordID, billingID uint) error {
	return s.db.WithContext(ctx).Model(&models.Prescription{}).
		Where("record_id = ?", recordID).
		Update("billing_id", billingID).Error
}

func (s *gormStore) ListPrescriptionsByRecord(ctx context.Context, recordID uint) ([]models.Prescription, error) {
	var prescriptions []models.Prescription
	err := s.db.WithContext(ctx).Where("record_id = ?", recordID).Find(&prescriptions).Error
	return prescriptions, err
}

func (s *gormStore) ListPrescriptionsByPatient(ctx context.Context, patientID uint) ([]models.Prescription, error) {
	var prescriptions []models.Prescription
	err := s.db.WithContext(ctx).Model(&models.Prescription{}).
		Joins("JOIN medical_records mr ON mr.id = prescriptions.record_id").
		Where("mr.patient_id = ?", patientID).
		Find(&prescriptions).Error
	return prescriptions, err
}

// -- Billing --

func (s *gormStore) CreateBilling(ctx context.Context, billing *models.Billing) error {
	return s.db.WithContext(ctx).Create(billing).Error
}

func (s *gormStore) GetBillingByRecord(ctx context.Context, recordID uint) (*models.Billing, error) {
	var billing models.Billing
	err := s.db.WithContext(ctx).
		Where("medical_record_id = ?", recordID).
		First(&billing).Error
	if err != nil {
		return nil, translate(err)
	}
	return &billing, nil
}

// MarkBillingPaid is the one-way Pending -> Paid gate, scoped to the owning
// doctor. A row that is absent, owned by someone else, or already Paid
// leaves RowsAffected at zero.
func (s *gormStore) MarkBillingPaid(ctx context.Context, billingID, doctorID uint) (bool, error) {
	res := s.db.WithContext(ctx).Model(&models.Billing{}).
		Where("id = ? AND doctor_id = ? AND status = ?", billingID, doctorID, models.BillingPending).
		Update("status", models.BillingPaid)
	return res.RowsAffected > 0, res.Error
}

func (s *gormStore) ListBillingsByPatient(ctx context.Context, patientID uint) ([]models.Billing, error) {
	var billings []models.Billing
	err := s.db.WithContext(ctx).Where("patient_id = ?", patientID).Find(&billings).Error
	return billings, err
}
