package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/slot-scheduler/internal/audit"
	"github.com/BruksfildServices01/slot-scheduler/internal/cache"
	"github.com/BruksfildServices01/slot-scheduler/internal/config"
	"github.com/BruksfildServices01/slot-scheduler/internal/handlers"
	infraRepo "github.com/BruksfildServices01/slot-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/slot-scheduler/internal/middleware"
	ucSchedule "github.com/BruksfildServices01/slot-scheduler/internal/usecase/schedule"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, rdb *redis.Client, cfg *config.Config) {

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	scheduleRepo := infraRepo.NewScheduleGormRepository(db)
	availabilityCache := cache.NewAvailability(rdb)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	// ======================================================
	// USE CASES — SCHEDULE
	// ======================================================
	createAvailabilityUC := ucSchedule.NewCreateAvailability(
		scheduleRepo,
		auditDispatcher,
		availabilityCache,
		cfg.DefaultSlotCapacity,
	)

	bookSlotUC := ucSchedule.NewBookSlot(
		scheduleRepo,
		auditDispatcher,
		availabilityCache,
	)

	deleteSlotUC := ucSchedule.NewDeleteSlot(
		scheduleRepo,
		auditDispatcher,
		availabilityCache,
	)

	listAvailabilityUC := ucSchedule.NewListAvailability(
		scheduleRepo,
		availabilityCache,
	)

	listBookersUC := ucSchedule.NewListBookedMembers(scheduleRepo)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	meHandler := handlers.NewMeHandler(db)

	availabilityHandler := handlers.NewAvailabilityHandler(
		createAvailabilityUC,
		bookSlotUC,
		deleteSlotUC,
		listAvailabilityUC,
		listBookersUC,
	)

	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	api.Use(middleware.RateLimitMiddleware(cfg.MaxRequestsPerMin))
	{
		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// API PRIVADA
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", meHandler.GetMe)

			// ------------------------------
			// AVAILABILITY
			// ------------------------------
			secured.GET("/availability", availabilityHandler.List)
			secured.POST("/availability/slots/:slotId/book", availabilityHandler.Book)
			secured.GET("/availability/slots/:slotId/bookers", availabilityHandler.ListBookers)

			providerOnly := secured.Group("/")
			providerOnly.Use(middleware.RequireProvider())
			{
				providerOnly.POST("/availability", availabilityHandler.Create)
				providerOnly.DELETE("/availability/slots/:slotId", availabilityHandler.Delete)
				providerOnly.GET("/audit-logs", auditLogsHandler.List)
			}
		}
	}
}
