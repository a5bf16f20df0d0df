package pkg

import (
	"context"
	"fmt"

	"imagehost/internal/app/auth"
	"imagehost/internal/app/config"
	"imagehost/internal/app/dsn"
	"imagehost/internal/app/filetype"
	"imagehost/internal/app/handler"
	"imagehost/internal/app/middleware"
	"imagehost/internal/app/redis"
	"imagehost/internal/app/repository"
	"imagehost/internal/app/storage"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type Application struct {
	Config         *config.Config
	Router         *gin.Engine
	Handler        *handler.Handler
	AuthMiddleware *middleware.AuthMiddleware
}

// NewApp собирает все зависимости приложения
func NewApp(cfg *config.Config) (*Application, error) {
	repo, err := repository.New(dsn.FromEnv())
	if err != nil {
		return nil, fmt.Errorf("failed to init repository: %w", err)
	}

	objectStorage, err := storage.NewMinIOStorage(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to init object storage: %w", err)
	}

	// Redis опционален: без него logout не отзывает токены
	var redisClient *redis.Client
	if cfg.Redis.Host != "" {
		redisClient, err = redis.New(context.Background(), cfg.Redis)
		if err != nil {
			logrus.Warnf("Redis unavailable, token revocation disabled: %v", err)
			redisClient = nil
		}
	}

	authService := auth.NewService(cfg)
	validator := filetype.NewValidator(cfg.Upload.AllowedTypes, cfg.Upload.TrustClientType)

	h := handler.NewHandler(repo, objectStorage, redisClient, authService, validator, cfg)
	authMiddleware := middleware.NewAuthMiddleware(redisClient, authService)

	return &Application{
		Config:         cfg,
		Router:         gin.Default(),
		Handler:        h,
		AuthMiddleware: authMiddleware,
	}, nil
}

func (a *Application) RunApp() {
	logrus.Info("Server start up")

	a.Handler.RegisterRoutes(a.Router, a.AuthMiddleware)

	serverAddress := fmt.Sprintf("%s:%d", a.Config.ServiceHost, a.Config.ServicePort)
	logrus.Infof("Starting server on %s", serverAddress)

	if err := a.Router.Run(serverAddress); err != nil {
		logrus.Fatal(err)
	}

	logrus.Info("Server down")
}
