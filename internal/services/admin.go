package services

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"amazecare-server/internal/models"
	"amazecare-server/internal/store"
)

// AdminService covers account administration and appointment arbitration.
type AdminService struct {
	store store.Store
	log   zerolog.Logger
}

// NewAdminService creates a new AdminService.
func NewAdminService(st store.Store, log zerolog.Logger) *AdminService {
	return &AdminService{store: st, log: log}
}

func (s *AdminService) usernameAvailable(ctx context.Context, username string) error {
	taken, err := s.store.UsernameTaken(ctx, username)
	if err != nil {
		return internalError(err)
	}
	if taken {
		return conflictError("Username is already taken. Please choose a different username.")
	}
	return nil
}

// AdminRegistration is the payload for onboarding another administrator.
type AdminRegistration struct {
	Username string
	Password string
	FullName string
	Email    string
}

// RegisterAdmin creates the login account and administrator profile
// together.
func (s *AdminService) RegisterAdmin(ctx context.Context, reg AdminRegistration) (*models.Administrator, error) {
	if err := s.usernameAvailable(ctx, reg.Username); err != nil {
		return nil, err
	}

	user := models.User{Username: reg.Username, Role: models.RoleAdmin}
	if err := user.SetPassword(reg.Password); err != nil {
		return nil, internalError(err)
	}

	var admin models.Administrator
	err := s.store.Transaction(ctx, func(tx store.Store) error {
		if err := tx.CreateUser(ctx, &user); err != nil {
			return err
		}
		admin = models.Administrator{
			UserID:   &user.ID,
			FullName: reg.FullName,
			Email:    reg.Email,
		}
		return tx.CreateAdministrator(ctx, &admin)
	})
	if err != nil {
		return nil, internalError(err)
	}

	s.log.Info().Uint("adminId", admin.ID).Msg("admin registered")
	return &admin, nil
}

// DoctorRegistration is the admin payload for onboarding a doctor.
type DoctorRegistration struct {
	Username          string
	Password          string
	FullName          string
	Email             string
	ExperienceYears   int
	Qualification     string
	Designation       string
	SpecializationIDs []uint
}

// RegisterDoctor creates the login account, doctor profile and
// specialization assignments together.
func (s *AdminService) RegisterDoctor(ctx context.Context, reg DoctorRegistration) (*models.Doctor, error) {
	if err := s.usernameAvailable(ctx, reg.Username); err != nil {
		return nil, err
	}

	user := models.User{Username: reg.Username, Role: models.RoleDoctor}
	if err := user.SetPassword(reg.Password); err != nil {
		return nil, internalError(err)
	}

	var doctor models.Doctor
	err := s.store.Transaction(ctx, func(tx store.Store) error {
		if err := tx.CreateUser(ctx, &user); err != nil {
			return err
		}
		doctor = models.Doctor{
			UserID:          &user.ID,
			FullName:        reg.FullName,
			Email:           reg.Email,
			ExperienceYears: reg.ExperienceYears,
			Qualification:   reg.Qualification,
			Designation:     reg.Designation,
		}
		if err := tx.CreateDoctor(ctx, &doctor); err != nil {
			return err
		}
		return tx.ReplaceDoctorSpecializations(ctx, doctor.ID, reg.SpecializationIDs)
	})
	if err != nil {
		return nil, internalError(err)
	}

	s.log.Info().Uint("doctorId", doctor.ID).Msg("doctor registered")
	return &doctor, nil
}

// DoctorUpdate carries the optional doctor profile fields; empty/nil values
// are left as they are.
type DoctorUpdate struct {
	FullName          string
	Email             string
	ExperienceYears   *int
	Qualification     string
	Designation       string
	SpecializationIDs []uint
}

// UpdateDoctorDetails edits a doctor profile; specializations are replaced
// only when a non-empty set is supplied.
func (s *AdminService) UpdateDoctorDetails(ctx context.Context, doctorID uint, update DoctorUpdate) error {
	doctor, err := s.store.GetDoctor(ctx, doctorID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return notFoundError("doctor not found")
		}
		return internalError(err)
	}

	if update.FullName != "" {
		doctor.FullName = update.FullName
	}
	if update.Email != "" {
		doctor.Email = update.Email
	}
	if update.ExperienceYears != nil {
		doctor.ExperienceYears = *update.ExperienceYears
	}
	if update.Qualification != "" {
		doctor.Qualification = update.Qualification
	}
	if update.Designation != "" {
		doctor.Designation = update.Designation
	}

	if err := s.store.SaveDoctor(ctx, doctor); err != nil {
		return internalError(err)
	}
	if len(update.SpecializationIDs) > 0 {
		if err := s.store.ReplaceDoctorSpecializations(ctx, doctorID, update.SpecializationIDs); err != nil {
			return internalError(err)
		}
	}
	return nil
}

// DeleteDoctor deactivates a doctor account: the profile row is kept with a
// cleared user link and an Inactive designation, every Scheduled
// appointment of the doctor is bulk-canceled, and the login account is
// removed - all in one transaction.
func (s *AdminService) DeleteDoctor(ctx context.Context, userID, doctorID uint) error {
	err := s.store.Transaction(ctx, func(tx store.Store) error {
		doctor, err := tx.GetDoctor(ctx, doctorID)
		if err != nil {
			return err
		}
		if doctor.UserID == nil || *doctor.UserID != userID {
			return store.ErrNotFound
		}

		doctor.UserID = nil
		doctor.Designation = models.DesignationInactive
		if err := tx.SaveDoctor(ctx, doctor); err != nil {
			return err
		}

		canceled, err := tx.CancelScheduledAppointments(ctx, store.Owner{DoctorID: doctorID})
		if err != nil {
			return err
		}
		s.log.Info().Uint("doctorId", doctorID).Int64("canceledAppointments", canceled).
			Msg("doctor deactivated")

		return tx.DeleteUser(ctx, userID)
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return notFoundError("doctor not found")
		}
		return internalError(err)
	}
	return nil
}

// UpdatePatientDetails edits a patient profile; empty fields are left as
// they are, DateOfBirth is overwritten as supplied.
func (s *AdminService) UpdatePatientDetails(ctx context.Context, patientID uint, update PatientUpdate) (*models.Patient, error) {
	patient, err := s.store.GetPatient(ctx, patientID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, notFoundError("patient not found")
		}
		return nil, internalError(err)
	}

	if update.FullName != "" {
		patient.FullName = update.FullName
	}
	if update.ContactNumber != "" {
		patient.ContactNumber = update.ContactNumber
	}
	if update.Address != "" {
		patient.Address = update.Address
	}
	if update.MedicalHistory != "" {
		patient.MedicalHistory = update.MedicalHistory
	}
	if update.Gender != "" {
		patient.Gender = update.Gender
	}
	patient.DateOfBirth = update.DateOfBirth

	if err := s.store.SavePatient(ctx, patient); err != nil {
		return nil, internalError(err)
	}
	return patient, nil
}

// DeletePatient deactivates a patient account: the profile row is kept with
// a cleared user link, every Scheduled appointment of the patient is
// bulk-canceled, and the login account is removed - all in one transaction.
func (s *AdminService) DeletePatient(ctx context.Context, userID, patientID uint) error {
	err := s.store.Transaction(ctx, func(tx store.Store) error {
		patient, err := tx.GetPatient(ctx, patientID)
		if err != nil {
			return err
		}
		if patient.UserID == nil || *patient.UserID != userID {
			return store.ErrNotFound
		}

		patient.UserID = nil
		if err := tx.SavePatient(ctx, patient); err != nil {
			return err
		}

		canceled, err := tx.CancelScheduledAppointments(ctx, store.Owner{PatientID: patientID})
		if err != nil {
			return err
		}
		s.log.Info().Uint("patientId", patientID).Int64("canceledAppointments", canceled).
			Msg("patient deactivated")

		return tx.DeleteUser(ctx, userID)
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return notFoundError("patient not found")
		}
		return internalError(err)
	}
	return nil
}

// GetDoctorDetails returns a doctor's directory profile including
// specializations and all holidays.
func (s *AdminService) GetDoctorDetails(ctx context.Context, doctorID uint) (*DoctorProfile, error) {
	doctor, err := s.store.GetDoctor(ctx, doctorID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, notFoundError("doctor not found")
		}
		return nil, internalError(err)
	}

	specializations, err := s.store.ListDoctorSpecializations(ctx, doctorID)
	if err != nil {
		return nil, internalError(err)
	}
	names := make([]string, 0, len(specializations))
	for _, sp := range specializations {
		names = append(names, sp.SpecializationName)
	}

	holidays, err := s.store.ListHolidays(ctx, doctorID)
	if err != nil {
		return nil, internalError(err)
	}

	return &DoctorProfile{
		DoctorID:        doctor.ID,
		FullName:        doctor.FullName,
		ExperienceYears: doctor.ExperienceYears,
		Qualification:   doctor.Qualification,
		Designation:     doctor.Designation,
		Specializations: names,
		Holidays:        holidays,
	}, nil
}

// GetPatientDetails returns a patient profile.
func (s *AdminService) GetPatientDetails(ctx context.Context, patientID uint) (*models.Patient, error) {
	patient, err := s.store.GetPatient(ctx, patientID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, notFoundError("patient not found")
		}
		return nil, internalError(err)
	}
	return patient, nil
}

// RescheduleAppointment moves any appointment to a new instant. The admin
// path checks only the holiday conflict; unlike the patient and doctor
// paths it accepts past instants.
func (s *AdminService) RescheduleAppointment(ctx context.Context, appointmentID uint, newDate time.Time) (*models.Appointment, error) {
	appointment, err := s.store.GetAppointment(ctx, appointmentID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, notFoundError("appointment not found")
		}
		return nil, internalError(err)
	}

	onHoliday, err := s.store.HasScheduledHolidayCovering(ctx, appointment.DoctorID, newDate)
	if err != nil {
		return nil, internalError(err)
	}
	if onHoliday {
		return nil, conflictError("the new appointment date conflicts with the doctor's holiday period")
	}

	if err := s.store.UpdateAppointmentDate(ctx, appointmentID, newDate); err != nil {
		return nil, internalError(err)
	}
	appointment.AppointmentDate = newDate
	return appointment, nil
}

// ViewAppointmentDetails returns any appointment by id.
func (s *AdminService) ViewAppointmentDetails(ctx context.Context, appointmentID uint) (*models.Appointment, error) {
	appointment, err := s.store.GetAppointment(ctx, appointmentID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, notFoundError("appointment not found")
		}
		return nil, internalError(err)
	}
	return appointment, nil
}

// UpdateHoliday rewrites the date range of any doctor's holiday.
func (s *AdminService) UpdateHoliday(ctx context.Context, doctorID, holidayID uint, start, end time.Time) error {
	holiday, err := s.store.GetDoctorHoliday(ctx, holidayID, doctorID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return notFoundError("holiday not found for this doctor")
		}
		return internalError(err)
	}

	holiday.StartDate = start
	holiday.EndDate = end
	if err := s.store.SaveHoliday(ctx, holiday); err != nil {
		return internalError(err)
	}
	return nil
}

// CancelHoliday retires any doctor's holiday; see cancelHoliday for the
// already-retired messaging.
func (s *AdminService) CancelHoliday(ctx context.Context, doctorID, holidayID uint) (string, error) {
	return cancelHoliday(ctx, s.store, holidayID, doctorID)
}
