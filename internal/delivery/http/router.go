package http

import (
	"net/http"

	"github.com/frontandrew/vmaster/internal/delivery/http/middleware"
	"github.com/frontandrew/vmaster/internal/domain"
	"github.com/frontandrew/vmaster/internal/pkg/config"
	"github.com/frontandrew/vmaster/internal/pkg/jwt"
	"github.com/frontandrew/vmaster/internal/pkg/logger"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

// Router содержит все зависимости для HTTP роутера
type Router struct {
	authHandler       *AuthHandler
	vehicleHandler    *VehicleHandler
	consumableHandler *ConsumableHandler
	serviceLogHandler *ServiceLogHandler
	analysisHandler   *AnalysisHandler
	settingsHandler   *SettingsHandler
	uploadHandler     *UploadHandler
	tokenService      *jwt.TokenService
	config            *config.Config
	logger            logger.Logger
}

// NewRouter создает новый HTTP router
func NewRouter(
	authHandler *AuthHandler,
	vehicleHandler *VehicleHandler,
	consumableHandler *ConsumableHandler,
	serviceLogHandler *ServiceLogHandler,
	analysisHandler *AnalysisHandler,
	settingsHandler *SettingsHandler,
	uploadHandler *UploadHandler,
	tokenService *jwt.TokenService,
	config *config.Config,
	logger logger.Logger,
) *Router {
	return &Router{
		authHandler:       authHandler,
		vehicleHandler:    vehicleHandler,
		consumableHandler: consumableHandler,
		serviceLogHandler: serviceLogHandler,
		analysisHandler:   analysisHandler,
		settingsHandler:   settingsHandler,
		uploadHandler:     uploadHandler,
		tokenService:      tokenService,
		config:            config,
		logger:            logger,
	}
}

// Setup настраивает все маршруты
func (rt *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Глобальные middleware
	r.Use(chiMiddleware.RequestID)
	r.Use(middleware.RecoveryMiddleware(rt.logger))
	r.Use(middleware.LoggingMiddleware(rt.logger))
	r.Use(middleware.CORSMiddleware(middleware.CORSConfig{
		AllowedOrigins: rt.config.CORS.AllowedOrigins,
		AllowedMethods: rt.config.CORS.AllowedMethods,
		AllowedHeaders: rt.config.CORS.AllowedHeaders,
	}))

	// Health check endpoint (публичный)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{
			"status": "healthy",
		})
	})

	// Раздача загруженных фотографий
	fileServer := http.FileServer(http.Dir(rt.config.Upload.Dir))
	r.Handle("/uploads/*", http.StripPrefix("/uploads/", fileServer))

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		// Public routes (без аутентификации)
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", rt.authHandler.Register)
			r.Post("/login", rt.authHandler.Login)
			r.Post("/refresh", rt.authHandler.RefreshToken)
			r.Post("/logout", rt.authHandler.Logout)
		})

		// Protected routes (требуют аутентификации)
		r.Group(func(r chi.Router) {
			r.Use(middleware.AuthMiddleware(rt.tokenService))

			// Current user endpoints
			r.Get("/auth/me", rt.authHandler.GetMe)

			// Vehicle endpoints
			r.Route("/vehicles", func(r chi.Router) {
				r.Get("/me", rt.vehicleHandler.GetMyVehicles)
				r.Post("/", rt.vehicleHandler.CreateVehicle)
				r.Get("/{id}", rt.vehicleHandler.GetVehicleByID)
				r.Put("/{id}", rt.vehicleHandler.UpdateVehicle)
				r.Delete("/{id}", rt.vehicleHandler.DeleteVehicle)

				// Consumables автомобиля
				r.Post("/{id}/consumables", rt.consumableHandler.CreateConsumable)
				r.Get("/{id}/consumables", rt.consumableHandler.GetVehicleConsumables)

				// История обслуживания
				r.Post("/{id}/services", rt.serviceLogHandler.RecordService)
				r.Get("/{id}/services", rt.serviceLogHandler.GetVehicleServiceLogs)

				// Аналитика
				r.Get("/{id}/analysis", rt.analysisHandler.GetCostAnalysis)
				r.Get("/{id}/maintenance", rt.analysisHandler.GetMaintenanceStatus)
				r.Get("/{id}/warnings", rt.analysisHandler.GetWarnings)

				// Admin only endpoints
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireRole(domain.RoleAdmin))
					r.Get("/", rt.vehicleHandler.ListVehicles)
				})
			})

			// Consumable endpoints
			r.Route("/consumables", func(r chi.Router) {
				r.Put("/{id}", rt.consumableHandler.UpdateConsumable)
				r.Delete("/{id}", rt.consumableHandler.DeleteConsumable)
			})

			// Service log endpoints
			r.Delete("/services/{id}", rt.serviceLogHandler.DeleteServiceLog)

			// Settings endpoints
			r.Route("/settings", func(r chi.Router) {
				r.Get("/", rt.settingsHandler.GetSettings)
				r.Put("/", rt.settingsHandler.UpdateSettings)
				r.Post("/refresh-prices", rt.settingsHandler.RefreshFuelPrices)
			})

			// Photo upload
			r.Post("/uploads", rt.uploadHandler.UploadPhoto)
		})
	})

	return r
}
