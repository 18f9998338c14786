package router

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"teecole/internal/config"
	"teecole/internal/middleware"
	"teecole/internal/modules/auth"
	"teecole/internal/modules/catalog"
	"teecole/internal/modules/contact"
	"teecole/internal/modules/gallery"
	"teecole/internal/modules/upload"
	"teecole/internal/notification"
	"teecole/internal/pkg/jwt"
	"teecole/internal/pkg/response"
	"teecole/internal/repository"
)

const Version = "1.0.0"

type Deps struct {
	Config *config.AppConfig
	DB     *gorm.DB
	Log    logrus.FieldLogger
	// Mailer overrides the mailer chosen from the SMTP settings.
	Mailer notification.Mailer
	// Ctx bounds background housekeeping; nil disables it.
	Ctx context.Context
}

// New wires repositories, services and handlers into one engine.
func New(d Deps) *gin.Engine {
	cfg := d.Config
	log := d.Log

	mailer := d.Mailer
	if mailer == nil {
		mailer = newMailer(cfg, log)
	}

	jwtService := jwt.New(cfg.JWTSecret, cfg.JWTTTL)

	serviceRepo := repository.NewServiceRepository(d.DB)
	contactRepo := repository.NewContactRepository(d.DB)
	adminRepo := repository.NewAdminUserRepository(d.DB)
	galleryRepo := repository.NewGalleryRepository(d.DB)

	files := upload.NewService(cfg.UploadDir, cfg.UploadURLPrefix, cfg.MaxUploadSize, log)

	catalogHandler := catalog.NewHandler(catalog.NewService(serviceRepo))
	contactHandler := contact.NewHandler(contact.NewService(contactRepo, mailer, cfg.NotifyEmail, log))
	authHandler := auth.NewHandler(auth.NewService(adminRepo, jwtService))
	galleryHandler := gallery.NewHandler(gallery.NewService(galleryRepo, files, log), files)
	uploadHandler := upload.NewHandler(files)

	limiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst, log)
	if d.Ctx != nil {
		go cleanupLoop(d.Ctx, limiter, 5*time.Minute)
	}
	metrics := middleware.NewMetrics()

	r := gin.New()
	// Only listed proxies may set the client address used by the rate limiter.
	if err := r.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		log.WithError(err).Warn("invalid trusted proxies, trusting none")
		_ = r.SetTrustedProxies(nil)
	}
	r.Use(
		middleware.ErrorLogger(log),
		middleware.RequestLogger(log),
		metrics.Middleware(),
		middleware.CORS(cfg.FrontendURL),
	)
	r.MaxMultipartMemory = cfg.MaxUploadSize

	r.Static(cfg.UploadURLPrefix, cfg.UploadDir)
	r.GET("/", index)
	r.GET("/health", health(d.DB))
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	gate := []gin.HandlerFunc{middleware.JWTAuth(jwtService), middleware.AdminOnly()}

	api := r.Group("/api")
	{
		catalogHandler.RegisterRoutes(api)
		galleryHandler.RegisterPublicRoutes(api)
		contactHandler.RegisterPublicRoutes(api, limiter.Middleware())

		protected := api.Group("", gate...)
		contactHandler.RegisterProtectedRoutes(protected)
	}

	admin := api.Group("/admin")
	{
		authHandler.RegisterPublicRoutes(admin, limiter.Middleware())

		gated := admin.Group("", gate...)
		authHandler.RegisterProtectedRoutes(gated)
		galleryHandler.RegisterProtectedRoutes(gated)
		uploadHandler.RegisterProtectedRoutes(gated)
	}

	r.NoRoute(func(c *gin.Context) {
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Route not found")
	})

	return r
}

func newMailer(cfg *config.AppConfig, log logrus.FieldLogger) notification.Mailer {
	if !cfg.SMTP.Enabled() {
		log.Warn("SMTP_HOST not set, contact notifications will only be logged")
		return notification.NewLogMailer(log)
	}
	return notification.NewSMTPMailer(notification.SMTPConfig{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		User:     cfg.SMTP.User,
		Password: cfg.SMTP.Password,
		From:     cfg.SMTP.From,
		Timeout:  cfg.SMTP.Timeout,
	})
}

func cleanupLoop(ctx context.Context, limiter *middleware.RateLimiter, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			limiter.Cleanup()
		}
	}
}

func index(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{
		"message": "Teecole API",
		"version": Version,
		"endpoints": gin.H{
			"services": "/api/services",
			"gallery":  "/api/gallery",
			"contact":  "/api/contact",
			"admin":    "/api/admin",
			"health":   "/health",
		},
	})
}

func health(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		status, dbState, code := "ok", "connected", http.StatusOK

		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(ctx)
		}
		if err != nil {
			_ = c.Error(err)
			status, dbState, code = "degraded", "unavailable", http.StatusServiceUnavailable
		}

		c.JSON(code, gin.H{
			"status":    status,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"database":  dbState,
		})
	}
}
