package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"vaultguard/api/handler"
	apiMiddleware "vaultguard/api/middleware"
	"vaultguard/api/routes"
	"vaultguard/config"
	"vaultguard/internal/repository"
	"vaultguard/internal/service"
	"vaultguard/internal/storage"
	"vaultguard/internal/utils"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	cfg, err := config.Load()
	if err != nil {
		logger.WithError(err).Fatal("configuration")
	}

	db, err := config.ConnectDB(cfg.DatabaseURL)
	if err != nil {
		logger.WithError(err).Fatal("database connection")
	}

	validate := validator.New()

	tokenManager := &utils.TokenManager{
		Secret:     cfg.JWTSecret,
		Issuer:     cfg.JWTIssuer,
		SessionTTL: cfg.SessionTokenTTL,
		ResetTTL:   cfg.ResetTokenTTL,
	}

	objectStore, err := storage.NewS3Store(context.Background(), storage.S3Options{
		Region:       cfg.S3Region,
		Bucket:       cfg.S3Bucket,
		BaseEndpoint: cfg.S3BaseEndpoint,
		AccessKey:    cfg.S3AccessKey,
		SecretKey:    cfg.S3SecretKey,
	})
	if err != nil {
		logger.WithError(err).Fatal("object storage")
	}

	userRepo := repository.NewUserRepository(db)
	documentRepo := repository.NewDocumentRepository(db)
	activityRepo := repository.NewActivityRepository(db)

	activityService := service.NewActivityService(activityRepo, logger)
	emailSender := service.NewResendEmailSender(cfg.ResendAPIKey, cfg.EmailFrom, cfg.AppBaseURL)

	authService := service.NewAuthService(
		userRepo,
		emailSender,
		service.BcryptPasswordHasher{Cost: cfg.BcryptCost},
		tokenManager,
		service.NewTOTPProvider(cfg.JWTIssuer),
		activityService,
		service.RealClock{},
		service.AuthConfig{
			TOTPIssuer:        cfg.JWTIssuer,
			MinPasswordLength: 6,
		},
	)
	documentService := service.NewDocumentService(documentRepo, objectStore, activityService, service.RealClock{})

	dev := cfg.IsDevelopment()
	authHandler := handler.NewAuthHandler(authService, validate, logger)
	authHandler.Dev = dev
	settingsHandler := handler.NewSettingsHandler(authService, validate, logger)
	settingsHandler.Dev = dev
	documentHandler := handler.NewDocumentHandler(documentService, logger)
	documentHandler.Dev = dev
	activityHandler := handler.NewActivityHandler(activityService, logger)
	activityHandler.Dev = dev

	app := echo.New()
	app.HideBanner = true
	app.HidePort = true
	app.Use(echoMiddleware.Recover())
	app.Use(echoMiddleware.RequestLoggerWithConfig(echoMiddleware.RequestLoggerConfig{
		LogStatus:   true,
		LogMethod:   true,
		LogURI:      true,
		LogRemoteIP: true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v echoMiddleware.RequestLoggerValues) error {
			entry := logger.WithFields(logrus.Fields{
				"status": v.Status,
				"method": v.Method,
				"uri":    v.URI,
				"ip":     v.RemoteIP,
			})
			if v.Error != nil {
				entry.WithError(v.Error).Error("request")
				return nil
			}
			entry.Info("request")
			return nil
		},
	}))

	authMiddleware := apiMiddleware.AuthMiddleware{Tokens: tokenManager, Users: userRepo}
	router := routes.NewRouter(app, authHandler, settingsHandler, documentHandler, activityHandler, authMiddleware)
	router.RegisterRoutes()

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.WithField("addr", cfg.HTTPAddr).Info("server started")
	if err := app.StartServer(server); err != nil {
		logger.WithError(err).Fatal("server stopped")
	}
}
