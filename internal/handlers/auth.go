package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"amazecare-server/internal/config"
	"amazecare-server/internal/services"
	"amazecare-server/internal/utils"
)

// AuthHandler handles registration and login requests.
type AuthHandler struct {
	users *services.UserService
	cfg   *config.Config
}

func NewAuthHandler(users *services.UserService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{users: users, cfg: cfg}
}

// RegisterPatientRequest represents the patient self-registration payload.
type RegisterPatientRequest struct {
	Username       string     `json:"username" binding:"required,min=3,max=50"`
	Password       string     `json:"password" binding:"required,min=6"`
	FullName       string     `json:"fullName" binding:"required"`
	Email          string     `json:"email" binding:"required,email"`
	DateOfBirth    *time.Time `json:"dateOfBirth"`
	Gender         string     `json:"gender"`
	ContactNumber  string     `json:"contactNumber"`
	Address        string     `json:"address"`
	MedicalHistory string     `json:"medicalHistory"`
}

// LoginRequest represents the login payload.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RegisterPatient creates a patient account with its login credentials.
func (h *AuthHandler) RegisterPatient(c *gin.Context) {
	var req RegisterPatientRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	patient, err := h.users.RegisterPatient(c.Request.Context(), services.PatientRegistration{
		Username:       req.Username,
		Password:       req.Password,
		FullName:       req.FullName,
		Email:          req.Email,
		DateOfBirth:    req.DateOfBirth,
		Gender:         req.Gender,
		ContactNumber:  req.ContactNumber,
		Address:        req.Address,
		MedicalHistory: req.MedicalHistory,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.Created(c, "Patient registered successfully", patient)
}

// Login authenticates a user and issues a JWT access token.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	user, err := h.users.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		utils.Unauthorized(c, "Invalid username or password")
		return
	}

	token, err := utils.GenerateToken(user, h.cfg)
	if err != nil {
		utils.InternalServerError(c, "Failed to generate token")
		return
	}

	utils.Success(c, "Login successful", gin.H{
		"token":    token,
		"userId":   user.ID,
		"username": user.Username,
		"role":     user.Role,
	})
}

// CheckUsername reports whether a username is still available.
func (h *AuthHandler) CheckUsername(c *gin.Context) {
	username := c.Query("username")
	if username == "" {
		utils.BadRequest(c, "username query parameter is required")
		return
	}

	available, message, err := h.users.CheckUsernameAvailability(c.Request.Context(), username)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.Success(c, message, gin.H{"available": available})
}
