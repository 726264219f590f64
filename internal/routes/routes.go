package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"amazecare-server/internal/config"
	"amazecare-server/internal/handlers"
	"amazecare-server/internal/middleware"
	"amazecare-server/internal/models"
	"amazecare-server/internal/services"
	"amazecare-server/internal/store"
)

// SetupRoutes configures the application routes.
func SetupRoutes(router *gin.Engine, db *gorm.DB, cfg *config.Config, log zerolog.Logger) {
	st := store.New(db)

	userService := services.NewUserService(st, log)
	patientService := services.NewPatientService(st, log)
	doctorService := services.NewDoctorService(st, log)
	adminService := services.NewAdminService(st, log)

	authHandler := handlers.NewAuthHandler(userService, cfg)
	patientHandler := handlers.NewPatientHandler(patientService)
	doctorHandler := handlers.NewDoctorHandler(doctorService)
	adminHandler := handlers.NewAdminHandler(adminService)

	// Public routes (no authentication required)
	public := router.Group("/api/v1")
	{
		authRoutes := public.Group("/auth")
		{
			authRoutes.POST("/register", authHandler.RegisterPatient)
			authRoutes.POST("/login", authHandler.Login)
			authRoutes.GET("/username-availability", authHandler.CheckUsername)
		}
	}

	// Authenticated routes
	private := router.Group("/api/v1")
	private.Use(middleware.AuthMiddleware(cfg))
	{
		patientRoutes := private.Group("/patient")
		patientRoutes.Use(middleware.RoleAuthMiddleware(models.RolePatient))
		{
			patientRoutes.PUT("/profile", patientHandler.UpdateProfile)
			patientRoutes.GET("/doctors", patientHandler.SearchDoctors)
			patientRoutes.POST("/appointments", patientHandler.BookAppointment)
			patientRoutes.GET("/appointments", patientHandler.GetAppointments)
			patientRoutes.PATCH("/appointments/:id/cancel", patientHandler.CancelAppointment)
			patientRoutes.PATCH("/appointments/:id/reschedule", patientHandler.RescheduleAppointment)
			patientRoutes.GET("/medical-history", patientHandler.GetMedicalHistory)
			patientRoutes.GET("/prescriptions", patientHandler.GetPrescriptions)
			patientRoutes.GET("/tests", patientHandler.GetTests)
			patientRoutes.GET("/billings", patientHandler.GetBillings)
		}

		doctorRoutes := private.Group("/doctor")
		doctorRoutes.Use(middleware.RoleAuthMiddleware(models.RoleDoctor))
		{
			doctorRoutes.GET("/appointments", doctorHandler.GetAppointments)
			doctorRoutes.PATCH("/appointments/:id/cancel", doctorHandler.CancelAppointment)
			doctorRoutes.PATCH("/appointments/:id/reschedule", doctorHandler.RescheduleAppointment)
			doctorRoutes.POST("/appointments/:id/consultation", doctorHandler.ConductConsultation)
			doctorRoutes.GET("/patients/:patientId/medical-records", doctorHandler.GetPatientMedicalRecords)
			doctorRoutes.PUT("/patients/:patientId/records/:recordId", doctorHandler.UpdateMedicalRecord)
			doctorRoutes.PATCH("/billings/:id/pay", doctorHandler.MarkBillingPaid)
			doctorRoutes.GET("/tests", doctorHandler.ListTests)
			doctorRoutes.GET("/medications", doctorHandler.ListMedications)
			doctorRoutes.POST("/holidays", doctorHandler.AddHoliday)
			doctorRoutes.GET("/holidays", doctorHandler.GetHolidays)
			doctorRoutes.PUT("/holidays/:id", doctorHandler.UpdateHoliday)
			doctorRoutes.PATCH("/holidays/:id/cancel", doctorHandler.CancelHoliday)
		}

		adminRoutes := private.Group("/admin")
		adminRoutes.Use(middleware.RoleAuthMiddleware(models.RoleAdmin))
		{
			adminRoutes.POST("/admins", adminHandler.RegisterAdmin)
			adminRoutes.POST("/doctors", adminHandler.RegisterDoctor)
			adminRoutes.GET("/doctors/:id", adminHandler.GetDoctor)
			adminRoutes.PUT("/doctors/:id", adminHandler.UpdateDoctor)
			adminRoutes.DELETE("/doctors/:id", adminHandler.DeleteDoctor)
			adminRoutes.GET("/patients/:id", adminHandler.GetPatient)
			adminRoutes.PUT("/patients/:id", adminHandler.UpdatePatient)
			adminRoutes.DELETE("/patients/:id", adminHandler.DeletePatient)
			adminRoutes.GET("/appointments/:id", adminHandler.GetAppointment)
			adminRoutes.PATCH("/appointments/:id/reschedule", adminHandler.RescheduleAppointment)
			adminRoutes.PUT("/doctors/:id/holidays/:holidayId", adminHandler.UpdateHoliday)
			adminRoutes.PATCH("/doctors/:id/holidays/:holidayId/cancel", adminHandler.CancelHoliday)
		}
	}
}
