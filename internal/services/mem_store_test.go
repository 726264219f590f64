package services

import (
	"context"
	"errors"
	"sort"
	"time"

	"amazecare-server/internal/models"
	"amazecare-server/internal/store"
)

// errInjected is returned by memStore when a test forces a failure on a
// specific method to exercise rollback paths.
var errInjected = errors.New("injected store failure")

// memStore is a map-backed store.Store used by the service tests.
// Transaction takes a snapshot of every table and restores it when the
// callback fails, mirroring the rollback semantics of the real store.
type memStore struct {
	nextID uint

	users         map[uint]models.User
	admins        map[uint]models.Administrator
	doctors       map[uint]models.Doctor
	patients      map[uint]models.Patient
	specs         map[uint]models.Specialization
	doctorSpecs   []models.DoctorSpecialization
	tests         map[uint]models.LabTest
	medications   map[uint]models.Medication
	holidays      map[uint]models.DoctorHoliday
	appointments  map[uint]models.Appointment
	records       map[uint]models.MedicalRecord
	recordTests   []models.MedicalRecordTest
	prescriptions map[uint]models.Prescription
	billings      map[uint]models.Billing

	// failOn names a method that should fail with errInjected.
	failOn string
}

func newMemStore() *memStore {
	return &memStore{
		users:         map[uint]models.User{},
		admins:        map[uint]models.Administrator{},
		doctors:       map[uint]models.Doctor{},
		patients:      map[uint]models.Patient{},
		specs:         map[uint]models.Specialization{},
		tests:         map[uint]models.LabTest{},
		medications:   map[uint]models.Medication{},
		holidays:      map[uint]models.DoctorHoliday{},
		appointments:  map[uint]models.Appointment{},
		records:       map[uint]models.MedicalRecord{},
		prescriptions: map[uint]models.Prescription{},
		billings:      map[uint]models.Billing{},
	}
}

func (s *memStore) id() uint {
	s.nextID++
	return s.nextID
}

func (s *memStore) fail(op string) error {
	if s.failOn == op {
		return errInjected
	}
	return nil
}

func cloneMap[V any](m map[uint]V) map[uint]V {
	out := make(map[uint]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func (s *memStore) snapshot() *memStore {
	cp := *s
	cp.users = cloneMap(s.users)
	cp.admins = cloneMap(s.admins)
	cp.doctors = cloneMap(s.doctors)
	cp.patients = cloneMap(s.patients)
	cp.specs = cloneMap(s.specs)
	cp.doctorSpecs = append([]models.DoctorSpecialization(nil), s.doctorSpecs...)
	cp.tests = cloneMap(s.tests)
	cp.medications = cloneMap(s.medications)
	cp.holidays = cloneMap(s.holidays)
	cp.appointments = cloneMap(s.appointments)
	cp.records = cloneMap(s.records)
	cp.recordTests = append([]models.MedicalRecordTest(nil), s.recordTests...)
	cp.prescriptions = cloneMap(s.prescriptions)
	cp.billings = cloneMap(s.billings)
	return &cp
}

func (s *memStore) Transaction(ctx context.Context, fn func(store.Store) error) error {
	saved := s.snapshot()
	if err := fn(s); err != nil {
		*s = *saved
		return err
	}
	return nil
}

// -- Users --

func (s *memStore) CreateUser(ctx context.Context, user *models.User) error {
	if err := s.fail("CreateUser"); err != nil {
		return err
	}
	user.ID = s.id()
	s.users[user.ID] = *user
	return nil
}

func (s *memStore) CreateAdministrator(ctx context.Context, admin *models.Administrator) error {
	if err := s.fail("CreateAdministrator"); err != nil {
		return err
	}
	admin.ID = s.id()
	s.admins[admin.ID] = *admin
	return nil
}

func (s *memStore) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	for _, u := range s.users {
		if u.Username == username {
			u := u
			return &u, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *memStore) UsernameTaken(ctx context.Context, username string) (bool, error) {
	_, err := s.GetUserByUsername(ctx, username)
	if errors.Is(err, store.ErrNotFound) {
		return false, nil
	}
	return err == nil, err
}

func (s *memStore) DeleteUser(ctx context.Context, userID uint) error {
	if err := s.fail("DeleteUser"); err != nil {
		return err
	}
	delete(s.users, userID)
	return nil
}

// -- Doctors --

func (s *memStore) CreateDoctor(ctx context.Context, doctor *models.Doctor) error {
	if err := s.fail("CreateDoctor"); err != nil {
		return err
	}
	doctor.ID = s.id()
	s.doctors[doctor.ID] = *doctor
	return nil
}

func (s *memStore) GetDoctor(ctx context.Context, doctorID uint) (*models.Doctor, error) {
	d, ok := s.doctors[doctorID]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &d, nil
}

func (s *memStore) GetDoctorByUserID(ctx context.Context, userID uint) (*models.Doctor, error) {
	for _, d := range s.doctors {
		if d.UserID != nil && *d.UserID == userID {
			d := d
			return &d, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *memStore) SaveDoctor(ctx context.Context, doctor *models.Doctor) error {
	s.doctors[doctor.ID] = *doctor
	return nil
}

func (s *memStore) ReplaceDoctorSpecializations(ctx context.Context, doctorID uint, specializationIDs []uint) error {
	kept := s.doctorSpecs[:0]
	for _, ds := range s.doctorSpecs {
		if ds.DoctorID != doctorID {
			kept = append(kept, ds)
		}
	}
	s.doctorSpecs = kept
	for _, specID := range specializationIDs {
		s.doctorSpecs = append(s.doctorSpecs, models.DoctorSpecialization{DoctorID: doctorID, SpecializationID: specID})
	}
	return nil
}

func (s *memStore) ListDoctorSpecializations(ctx context.Context, doctorID uint) ([]models.Specialization, error) {
	var out []models.Specialization
	for _, ds := range s.doctorSpecs {
		if ds.DoctorID == doctorID {
			if sp, ok := s.specs[ds.SpecializationID]; ok {
				out = append(out, sp)
			}
		}
	}
	return out, nil
}

func (s *memStore) SearchDoctors(ctx context.Context, specialization string) ([]models.Doctor, error) {
	var out []models.Doctor
	for _, d := range s.doctors {
		if d.Designation == models.DesignationInactive {
			continue
		}
		if specialization != "" && !s.doctorHasSpec(d.ID, specialization) {
			continue
		}
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *memStore) doctorHasSpec(doctorID uint, name string) bool {
	for _, ds := range s.doctorSpecs {
		if ds.DoctorID != doctorID {
			continue
		}
		if sp, ok := s.specs[ds.SpecializationID]; ok && sp.SpecializationName == name {
			return true
		}
	}
	return false
}

// -- Patients --

func (s *memStore) CreatePatient(ctx context.Context, patient *models.Patient) error {
	if err := s.fail("CreatePatient"); err != nil {
		return err
	}
	patient.ID = s.id()
	s.patients[patient.ID] = *patient
	return nil
}

func (s *memStore) GetPatient(ctx context.Context, patientID uint) (*models.Patient, error) {
	p, ok := s.patients[patientID]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &p, nil
}

func (s *memStore) GetPatientByUserID(ctx context.Context, userID uint) (*models.Patient, error) {
	for _, p := range s.patients {
		if p.UserID != nil && *p.UserID == userID {
			p := p
			return &p, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *memStore) SavePatient(ctx context.Context, patient *models.Patient) error {
	s.patients[patient.ID] = *patient
	return nil
}

// -- Reference data --

func (s *memStore) ListTests(ctx context.Context) ([]models.LabTest, error) {
	out := make([]models.LabTest, 0, len(s.tests))
	for _, t := range s.tests {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *memStore) GetTestsByIDs(ctx context.Context, testIDs []uint) ([]models.LabTest, error) {
	var out []models.LabTest
	for _, id := range testIDs {
		if t, ok := s.tests[id]; ok {
			out = append(out, t)
		}
	}
	return out, nil
}

func (s *memStore) ListMedications(ctx context.Context) ([]models.Medication, error) {
	out := make([]models.Medication, 0, len(s.medications))
	for _, m := range s.medications {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *memStore) GetMedication(ctx context.Context, medicationID uint) (*models.Medication, error) {
	m, ok := s.medications[medicationID]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &m, nil
}

// -- Holidays --

func (s *memStore) CreateHoliday(ctx context.Context, holiday *models.DoctorHoliday) error {
	holiday.ID = s.id()
	s.holidays[holiday.ID] = *holiday
	return nil
}

func (s *memStore) GetDoctorHoliday(ctx context.Context, holidayID, doctorID uint) (*models.DoctorHoliday, error) {
	h, ok := s.holidays[holidayID]
	if !ok || h.DoctorID != doctorID {
		return nil, store.ErrNotFound
	}
	return &h, nil
}

func (s *memStore) SaveHoliday(ctx context.Context, holiday *models.DoctorHoliday) error {
	s.holidays[holiday.ID] = *holiday
	return nil
}

func (s *memStore) ListHolidays(ctx context.Context, doctorID uint) ([]models.DoctorHoliday, error) {
	var out []models.DoctorHoliday
	for _, h := range s.holidays {
		if h.DoctorID == doctorID {
			out = append(out, h)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *memStore) HasScheduledHolidayCovering(ctx context.Context, doctorID uint, at time.Time) (bool, error) {
	for _, h := range s.holidays {
		if h.DoctorID == doctorID && h.Status == models.HolidayScheduled &&
			!at.Before(h.StartDate) && !at.After(h.EndDate) {
			return true, nil
		}
	}
	return false, nil
}

func (s *memStore) CompleteExpiredHolidays(ctx context.Context, now time.Time) (int64, error) {
	var n int64
	for id, h := range s.holidays {
		if h.Status == models.HolidayScheduled && h.EndDate.Before(now) {
			h.Status = models.HolidayCompleted
			s.holidays[id] = h
			n++
		}
	}
	return n, nil
}

// -- Appointments --

func (s *memStore) CreateAppointment(ctx context.Context, appointment *models.Appointment) error {
	if err := s.fail("CreateAppointment"); err != nil {
		return err
	}
	appointment.ID = s.id()
	s.appointments[appointment.ID] = *appointment
	return nil
}

func (s *memStore) GetAppointment(ctx context.Context, appointmentID uint) (*models.Appointment, error) {
	a, ok := s.appointments[appointmentID]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &a, nil
}

func ownerMatches(a models.Appointment, owner store.Owner) bool {
	if owner.DoctorID != 0 && a.DoctorID != owner.DoctorID {
		return false
	}
	if owner.PatientID != 0 && a.PatientID != owner.PatientID {
		return false
	}
	return true
}

func (s *memStore) GetAppointmentOwned(ctx context.Context, appointmentID uint, owner store.Owner) (*models.Appointment, error) {
	a, ok := s.appointments[appointmentID]
	if !ok || !ownerMatches(a, owner) {
		return nil, store.ErrNotFound
	}
	return &a, nil
}

func (s *memStore) UpdateAppointmentDate(ctx context.Context, appointmentID uint, newDate time.Time) error {
	a, ok := s.appointments[appointmentID]
	if !ok {
		return nil
	}
	a.AppointmentDate = newDate
	s.appointments[appointmentID] = a
	return nil
}

func (s *memStore) TransitionAppointmentStatus(ctx context.Context, appointmentID uint, from, to models.AppointmentStatus, owner store.Owner) (bool, error) {
	if err := s.fail("TransitionAppointmentStatus"); err != nil {
		return false, err
	}
	a, ok := s.appointments[appointmentID]
	if !ok || a.Status != from || !ownerMatches(a, owner) {
		return false, nil
	}
	a.Status = to
	s.appointments[appointmentID] = a
	return true, nil
}

func (s *memStore) ListAppointmentsByDoctorAndStatus(ctx context.Context, doctorID uint, status models.AppointmentStatus) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, a := range s.appointments {
		if a.DoctorID == doctorID && a.Status == status {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AppointmentDate.Before(out[j].AppointmentDate) })
	return out, nil
}

func (s *memStore) ListAppointmentsByPatient(ctx context.Context, patientID uint) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, a := range s.appointments {
		if a.PatientID == patientID {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AppointmentDate.Before(out[j].AppointmentDate) })
	return out, nil
}

func (s *memStore) CancelScheduledAppointments(ctx context.Context, owner store.Owner) (int64, error) {
	var n int64
	for id, a := range s.appointments {
		if a.Status == models.AppointmentScheduled && ownerMatches(a, owner) {
			a.Status = models.AppointmentCanceled
			s.appointments[id] = a
			n++
		}
	}
	return n, nil
}

// -- Medical records --

func (s *memStore) CreateMedicalRecord(ctx context.Context, record *models.MedicalRecord) error {
	if err := s.fail("CreateMedicalRecord"); err != nil {
		return err
	}
	record.ID = s.id()
	s.records[record.ID] = *record
	return nil
}

func (s *memStore) GetMedicalRecordOwned(ctx context.Context, recordID, doctorID, patientID uint) (*models.MedicalRecord, error) {
	r, ok := s.records[recordID]
	if !ok || r.DoctorID != doctorID || r.PatientID != patientID {
		return nil, store.ErrNotFound
	}
	return &r, nil
}

func (s *memStore) GetMedicalRecordByAppointment(ctx context.Context, appointmentID uint) (*models.MedicalRecord, error) {
	for _, r := range s.records {
		if r.AppointmentID == appointmentID {
			r := r
			return &r, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *memStore) SaveMedicalRecord(ctx context.Context, record *models.MedicalRecord) error {
	s.records[record.ID] = *record
	return nil
}

func (s *memStore) ListMedicalRecordsByPatient(ctx context.Context, patientID uint) ([]models.MedicalRecord, error) {
	var out []models.MedicalRecord
	for _, r := range s.records {
		if r.PatientID == patientID {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *memStore) CreateMedicalRecordTests(ctx context.Context, tests []models.MedicalRecordTest) error {
	if err := s.fail("CreateMedicalRecordTests"); err != nil {
		return err
	}
	for _, t := range tests {
		t.ID = s.id()
		s.recordTests = append(s.recordTests, t)
	}
	return nil
}

func (s *memStore) ListRecordTestDetails(ctx context.Context, recordID uint) ([]models.LabTest, error) {
	var out []models.LabTest
	for _, rt := range s.recordTests {
		if rt.RecordID == recordID {
			if t, ok := s.tests[rt.TestID]; ok {
				out = append(out, t)
			}
		}
	}
	return out, nil
}

// -- Prescriptions --

func (s *memStore) CreatePrescriptions(ctx context.Context, prescriptions []models.Prescription) error {
	if err := s.fail("CreatePrescriptions"); err != nil {
		return err
	}
	for i := range prescriptions {
		prescriptions[i].ID = s.id()
		s.prescriptions[prescriptions[i].ID] = prescriptions[i]
	}
	return nil
}

func (s *memStore) SetPrescriptionsBilling(ctx context.Context, recordID, billingID uint) error {
	for id, p := range s.prescriptions {
		if p.RecordID == recordID {
			billingID := billingID
			p.BillingID = &billingID
			s.prescriptions[id] = p
		}
	}
	return nil
}

func (s *memStore) ListPrescriptionsByRecord(ctx context.Context, recordID uint) ([]models.Prescription, error) {
	var out []models.Prescription
	for _, p := range s.prescriptions {
		if p.RecordID == recordID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *memStore) ListPrescriptionsByPatient(ctx context.Context, patientID uint) ([]models.Prescription, error) {
	var out []models.Prescription
	for _, p := range s.prescriptions {
		if r, ok := s.records[p.RecordID]; ok && r.PatientID == patientID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// -- Billing --

func (s *memStore) CreateBilling(ctx context.Context, billing *models.Billing) error {
	if err := s.fail("CreateBilling"); err != nil {
		return err
	}
	billing.ID = s.id()
	s.billings[billing.ID] = *billing
	return nil
}

func (s *memStore) GetBillingByRecord(ctx context.Context, recordID uint) (*models.Billing, error) {
	for _, b := range s.billings {
		if b.MedicalRecordID == recordID {
			b := b
			return &b, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *memStore) MarkBillingPaid(ctx context.Context, billingID, doctorID uint) (bool, error) {
	b, ok := s.billings[billingID]
	if !ok || b.DoctorID != doctorID || b.Status != models.BillingPending {
		return false, nil
	}
	b.Status = models.BillingPaid
	s.billings[billingID] = b
	return true, nil
}

func (s *memStore) ListBillingsByPatient(ctx context.Context, patientID uint) ([]models.Billing, error) {
	var out []models.Billing
	for _, b := range s.billings {
		if b.PatientID == patientID {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
