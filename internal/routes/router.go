package routes

import (
	"context"
	"net/http"

	"github.com/Augusto140/Englife-server/internal/config"
	"github.com/Augusto140/Englife-server/internal/delivery/http/handler"
	"github.com/Augusto140/Englife-server/internal/infrastructure/database/postgres"
	"github.com/Augusto140/Englife-server/internal/logger"
	"github.com/Augusto140/Englife-server/internal/middleware"
	"github.com/Augusto140/Englife-server/internal/usecase/dashboard"
	"github.com/Augusto140/Englife-server/internal/usecase/device"
	"github.com/Augusto140/Englife-server/internal/usecase/reading"
	"github.com/Augusto140/Englife-server/internal/usecase/registration"
	"github.com/Augusto140/Englife-server/pkg/utils"
	"github.com/Augusto140/Englife-server/web"

	"github.com/gin-gonic/gin"
)

const liveStatsPath = "/api/estatisticas"

// SetupRoutes builds the engine. Background work started here stops when ctx
// is cancelled.
func SetupRoutes(ctx context.Context, cfg *config.Config, db *postgres.DB) (*gin.Engine, error) {
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	templates, err := web.Templates()
	if err != nil {
		return nil, err
	}

	router := gin.New()
	router.SetHTMLTemplate(templates)

	// Order: recovery, request ID, logging, security headers, CORS, request size limit, rate limit, db session
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware(liveStatsPath, "/health"))
	router.Use(middleware.SecurityHeadersMiddleware())
	router.Use(middleware.CORSMiddleware(&cfg.CORS))
	router.Use(middleware.RequestSizeLimitMiddleware(middleware.DefaultMaxRequestSize))
	router.Use(middleware.RateLimitMiddleware(ctx, cfg.RateLimit.GeneralRPS, cfg.RateLimit.GeneralBurst))
	router.Use(middleware.DatabaseSessionMiddleware(db))

	router.GET("/health", func(c *gin.Context) {
		if err := db.Health(c.Request.Context()); err != nil {
			utils.StatusJSON(c, http.StatusServiceUnavailable, "unhealthy", "Database connection failed")
			return
		}

		utils.StatusJSON(c, http.StatusOK, "healthy", "Service is running")
	})

	locationRepository := postgres.NewLocationRepository(db)
	deviceRepository := postgres.NewDeviceRepository(db)
	sensorRepository := postgres.NewSensorRepository(db)
	alertRepository := postgres.NewAlertRepository(db)
	feederRepository := postgres.NewFeederRepository(db)
	thresholdRepository := postgres.NewThresholdRepository(db)

	dashboardService := dashboard.NewService(deviceRepository, locationRepository, sensorRepository, alertRepository, cfg.Query)
	deviceService := device.NewService(deviceRepository)
	readingService := reading.NewService(sensorRepository, locationRepository, cfg.Query)
	registrationService := registration.NewService(
		locationRepository,
		deviceRepository,
		sensorRepository,
		feederRepository,
		thresholdRepository,
	)

	root := router.Group("")
	{
		handler.NewDashboardHandler(dashboardService).RegisterRoutes(root)
		handler.NewDeviceHandler(deviceService).RegisterRoutes(root)
		handler.NewReadingHandler(readingService).RegisterRoutes(root)
		handler.NewRegistrationHandler(registrationService, deviceService).RegisterRoutes(root)
	}

	logger.Info("All routes initialized")
	return router, nil
}
