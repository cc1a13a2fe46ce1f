package router

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	appuser "github.com/oksasatya/user-account-service/internal/application"
	"github.com/oksasatya/user-account-service/internal/container"
	handlers "github.com/oksasatya/user-account-service/internal/interface/http"
	"github.com/oksasatya/user-account-service/internal/interface/middleware"
	"github.com/oksasatya/user-account-service/internal/router/modules"
	"github.com/oksasatya/user-account-service/pkg/helpers"
)

// Deps are the constructed services the HTTP modules are built from.
type Deps struct {
	Auth         *appuser.AuthService
	Users        *appuser.UserService
	Hasher       helpers.PasswordHasher
	Logger       *logrus.Logger
	DebugMetrics bool
	HTTPLog      bool
}

// DepsFromContainer collects Deps from the application container.
func DepsFromContainer() Deps {
	cfg := container.GetConfig()
	return Deps{
		Auth:         container.GetAuthService(),
		Users:        container.GetUserService(),
		Hasher:       container.GetHasher(),
		Logger:       container.GetLogger(),
		DebugMetrics: cfg != nil && cfg.DebugMetricsEnabled,
		HTTPLog:      cfg != nil && cfg.HTTPLogEnabled,
	}
}

// InitModules registers all application modules and their shared middleware.
// This function should be called once during application startup.
func InitModules(r *Registry, d Deps) {
	r.Use(middleware.RequestIDMiddleware(), middleware.RealIP())
	if d.HTTPLog && d.Logger != nil {
		r.Use(middleware.AccessLog(d.Logger))
	}

	authMW := middleware.Auth(d.Auth, d.Logger)
	r.Add(modules.NewHealthModule(handlers.NewHealthHandler(d.Users, d.Logger)))
	r.Add(modules.NewAuthModule(handlers.NewAuthHandler(d.Auth, d.Logger)))
	r.Add(modules.NewUserModule(handlers.NewUserHandler(d.Users, d.Hasher, d.Logger), authMW))
	if d.DebugMetrics {
		r.Add(modules.NewDebugModule())
	}
}

// New builds the engine with every module registered under /api.
func New(engine *gin.Engine, d Deps) *Registry {
	reg := NewRegistry(engine)
	InitModules(reg, d)
	reg.RegisterAll()
	return reg
}
