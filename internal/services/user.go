package services

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"amazecare-server/internal/models"
	"amazecare-server/internal/store"
)

// UserService covers registration and credential checks shared by all roles.
type UserService struct {
	store store.Store
	log   zerolog.Logger
}

// NewUserService creates a new UserService.
func NewUserService(st store.Store, log zerolog.Logger) *UserService {
	return &UserService{store: st, log: log}
}

// CheckUsernameAvailability reports whether a username is free along with a
// user-facing message.
func (s *UserService) CheckUsernameAvailability(ctx context.Context, username string) (bool, string, error) {
	taken, err := s.store.UsernameTaken(ctx, username)
	if err != nil {
		return false, "", internalError(err)
	}
	if taken {
		return false, "Username is already taken. Please choose a different username.", nil
	}
	return true, "Username is available.", nil
}

// PatientRegistration is the self-service patient signup payload.
type PatientRegistration struct {
	Username       string
	Password       string
	FullName       string
	Email          string
	DateOfBirth    *time.Time
	Gender         string
	ContactNumber  string
	Address        string
	MedicalHistory string
}

// RegisterPatient creates the login account and patient profile together.
func (s *UserService) RegisterPatient(ctx context.Context, reg PatientRegistration) (*models.Patient, error) {
	available, message, err := s.CheckUsernameAvailability(ctx, reg.Username)
	if err != nil {
		return nil, err
	}
	if !available {
		return nil, conflictError(message)
	}

	user := models.User{Username: reg.Username, Role: models.RolePatient}
	if err := user.SetPassword(reg.Password); err != nil {
		return nil, internalError(err)
	}

	var patient models.Patient
	err = s.store.Transaction(ctx, func(tx store.Store) error {
		if err := tx.CreateUser(ctx, &user); err != nil {
			return err
		}
		patient = models.Patient{
			UserID:         &user.ID,
			FullName:       reg.FullName,
			Email:          reg.Email,
			DateOfBirth:    reg.DateOfBirth,
			Gender:         reg.Gender,
			ContactNumber:  reg.ContactNumber,
			Address:        reg.Address,
			MedicalHistory: reg.MedicalHistory,
		}
		return tx.CreatePatient(ctx, &patient)
	})
	if err != nil {
		return nil, internalError(err)
	}

	s.log.Info().Uint("userId", user.ID).Uint("patientId", patient.ID).Msg("patient registered")
	return &patient, nil
}

// Authenticate verifies a username/password pair and returns the account.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.store.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, notFoundError("invalid username or password")
		}
		return nil, internalError(err)
	}
	if !user.CheckPassword(password) {
		return nil, notFoundError("invalid username or password")
	}
	return user, nil
}
