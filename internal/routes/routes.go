package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/charmcut/charmcut-api/internal/audit"
	"github.com/charmcut/charmcut-api/internal/config"
	"github.com/charmcut/charmcut-api/internal/domain/actor"
	"github.com/charmcut/charmcut-api/internal/handlers"
	infraRepo "github.com/charmcut/charmcut-api/internal/infra/repository"
	"github.com/charmcut/charmcut-api/internal/middleware"
	"github.com/charmcut/charmcut-api/internal/pwa"
	"github.com/charmcut/charmcut-api/internal/storage"
	ucAppointment "github.com/charmcut/charmcut-api/internal/usecase/appointment"
)

type Deps struct {
	DB         *gorm.DB
	Config     *config.Config
	Blobs      storage.BlobStore
	PWAManager *pwa.Manager
	SeenStore  pwa.SeenStore
	Cache      *pwa.Cache
}

func RegisterRoutes(r *gin.Engine, d Deps) {

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(d.DB)

	auditLogger := audit.New(d.DB)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	// ======================================================
	// USE CASES — APPOINTMENTS
	// ======================================================
	createAppointmentUC := ucAppointment.NewCreateAppointment(
		appointmentRepo,
		auditDispatcher,
	)

	transitionAppointmentUC := ucAppointment.NewTransitionAppointment(
		appointmentRepo,
		auditDispatcher,
	)

	listAgendaUC := ucAppointment.NewListAgenda(appointmentRepo)
	listForClientUC := ucAppointment.NewListForClient(appointmentRepo)
	buildReportUC := ucAppointment.NewBuildReport(appointmentRepo)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(d.DB, d.Config)
	meHandler := handlers.NewMeHandler(d.DB)

	serviceHandler := handlers.NewServiceHandler(d.DB)
	barberHandler := handlers.NewBarberHandler(d.DB, d.Blobs)
	clientHandler := handlers.NewClientHandler(d.DB)
	shopConfigHandler := handlers.NewShopConfigHandler(d.DB, d.Blobs)

	appointmentHandler := handlers.NewAppointmentHandler(
		createAppointmentUC,
		transitionAppointmentUC,
		listAgendaUC,
		listForClientUC,
	)

	reportHandler := handlers.NewReportHandler(buildReportUC)
	auditLogsHandler := handlers.NewAuditLogsHandler(d.DB)

	pwaHandler := handlers.NewPWAHandler(d.PWAManager, d.SeenStore, d.Cache)

	// ======================================================
	// APP SHELL (served through the offline cache)
	// ======================================================
	r.GET("/app/*filepath", pwaHandler.Asset)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLIC
		// ------------------------------
		api.GET("/shop", shopConfigHandler.Get)
		api.GET("/services", serviceHandler.ListPublic)
		api.GET("/barbers", barberHandler.ListPublic)

		// ------------------------------
		// PWA
		// ------------------------------
		pwaAPI := api.Group("/pwa")
		{
			pwaAPI.GET("/state", pwaHandler.State)
			pwaAPI.POST("/signal", pwaHandler.Signal)
			pwaAPI.POST("/install", pwaHandler.Install)
			pwaAPI.POST("/dismiss", pwaHandler.DismissPrompt)
		}

		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// SECURED
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(d.Config))
		{
			secured.GET("/me", meHandler.GetMe)

			// ------------------------------
			// CLIENT
			// ------------------------------
			client := secured.Group("/me")
			client.Use(middleware.RequireRole(actor.RoleClient))
			{
				client.POST("/appointments", appointmentHandler.Create)
				client.GET("/appointments", appointmentHandler.ListMine)
				client.PATCH("/appointments/:id/cancel", appointmentHandler.Cancel)
			}

			// ------------------------------
			// BARBER
			// ------------------------------
			barber := secured.Group("/barber")
			barber.Use(middleware.RequireRole(actor.RoleBarber))
			{
				barber.GET("/agenda", appointmentHandler.Agenda)
				barber.PATCH("/profile", barberHandler.UpdateProfile)
				barber.POST("/avatar", barberHandler.UploadAvatar)
			}

			// ------------------------------
			// STAFF (barber or admin)
			// ------------------------------
			staff := secured.Group("/staff")
			staff.Use(middleware.RequireRole(actor.RoleBarber, actor.RoleAdmin))
			{
				staff.GET("/clients", clientHandler.List)
				staff.PATCH("/appointments/:id/status", appointmentHandler.Transition)
			}

			// ------------------------------
			// ADMIN
			// ------------------------------
			admin := secured.Group("/admin")
			admin.Use(middleware.RequireRole(actor.RoleAdmin))
			{
				admin.GET("/services", serviceHandler.List)
				admin.POST("/services", serviceHandler.Create)
				admin.PATCH("/services/:id", serviceHandler.Update)

				admin.GET("/barbers", barberHandler.List)
				admin.POST("/barbers", barberHandler.Create)
				admin.PATCH("/barbers/:id", barberHandler.Update)

				admin.PATCH("/shop", shopConfigHandler.Update)
				admin.POST("/shop/logo", shopConfigHandler.UploadLogo)

				admin.GET("/reports", reportHandler.Get)
				admin.GET("/audit-logs", auditLogsHandler.List)
			}
		}
	}
}
