package routes

import (
	"time"

	"vaultguard/api/handler"
	"vaultguard/api/middleware"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"
)

type Router struct {
	Echo           *echo.Echo
	Auth           *handler.AuthHandler
	Settings       *handler.SettingsHandler
	Documents      *handler.DocumentHandler
	Activities     *handler.ActivityHandler
	AuthMiddleware middleware.AuthMiddleware
	AuthRate       *middleware.RateLimiter
	LoginRate      *middleware.RateLimiter
}

func NewRouter(
	e *echo.Echo,
	auth *handler.AuthHandler,
	settings *handler.SettingsHandler,
	documents *handler.DocumentHandler,
	activities *handler.ActivityHandler,
	authMiddleware middleware.AuthMiddleware,
) *Router {
	return &Router{
		Echo:           e,
		Auth:           auth,
		Settings:       settings,
		Documents:      documents,
		Activities:     activities,
		AuthMiddleware: authMiddleware,
		AuthRate:       middleware.NewRateLimiter(rate.Limit(5), 10, 5*time.Minute),
		LoginRate:      middleware.NewRateLimiter(rate.Limit(2), 4, 10*time.Minute),
	}
}

func (r *Router) RegisterRoutes() {
	e := r.Echo

	e.POST("/signup", r.Auth.Signup, r.AuthRate.Middleware())
	e.POST("/login", r.Auth.Login, r.LoginRate.Middleware())
	e.POST("/forgot-password", r.Auth.ForgotPassword, r.LoginRate.Middleware())
	e.POST("/reset-password", r.Auth.ResetPassword, r.AuthRate.Middleware())

	e.POST("/change-password", r.Settings.ChangePassword, r.AuthMiddleware.RequireAuth)
	e.GET("/profile", r.Settings.GetProfile, r.AuthMiddleware.RequireAuth)
	e.PUT("/profile", r.Settings.UpdateProfile, r.AuthMiddleware.RequireAuth)
	e.GET("/setup-2fa", r.Settings.SetupTwoFactor, r.AuthMiddleware.RequireAuth)
	e.POST("/enable-2fa", r.Settings.EnableTwoFactor, r.AuthMiddleware.RequireAuth)
	e.POST("/disable-2fa", r.Settings.DisableTwoFactor, r.AuthMiddleware.RequireAuth)

	e.POST("/documents/upload", r.Documents.Upload, r.AuthMiddleware.RequireAuth)
	e.GET("/documents", r.Documents.List, r.AuthMiddleware.RequireAuth)
	e.GET("/documents/search", r.Documents.Search, r.AuthMiddleware.RequireAuth)
	e.GET("/documents/download/:id", r.Documents.Download, r.AuthMiddleware.RequireAuth)
	e.PUT("/documents/rename/:id", r.Documents.Rename, r.AuthMiddleware.RequireAuth)
	e.DELETE("/documents/:id", r.Documents.Delete, r.AuthMiddleware.RequireAuth)

	e.GET("/activities", r.Activities.Recent, r.AuthMiddleware.RequireAuth)
}
