package handler

import (
	"net/http"
	"strings"

	"imagehost/internal/app/auth"
	"imagehost/internal/app/config"
	"imagehost/internal/app/ds"
	"imagehost/internal/app/dto"
	"imagehost/internal/app/filetype"
	"imagehost/internal/app/redis"
	"imagehost/internal/app/repository"
	"imagehost/internal/app/storage"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type Handler struct {
	Repository  *repository.Repository
	Storage     storage.ObjectStorage
	RedisClient *redis.Client
	Auth        *auth.Service
	Validator   *filetype.Validator
	Config      *config.Config
}

func NewHandler(
	r *repository.Repository,
	objectStorage storage.ObjectStorage,
	redisClient *redis.Client,
	authService *auth.Service,
	validator *filetype.Validator,
	cfg *config.Config,
) *Handler {
	return &Handler{
		Repository:  r,
		Storage:     objectStorage,
		RedisClient: redisClient,
		Auth:        authService,
		Validator:   validator,
		Config:      cfg,
	}
}

// errorResponse отправляет ошибку в едином формате {error, message}
func (h *Handler) errorResponse(ctx *gin.Context, statusCode int, code, message string) {
	ctx.JSON(statusCode, dto.ErrorResponse{
		Error:   code,
		Message: message,
	})
}

// internalError логирует причину, наружу уходит только общий текст
func (h *Handler) internalError(ctx *gin.Context, err error) {
	logrus.Error(err.Error())
	h.errorResponse(ctx, http.StatusInternalServerError, "internal_error", "Internal server error")
}

// publicURL строит публичную ссылку на объект
func (h *Handler) publicURL(filename string) string {
	return strings.TrimRight(h.Config.PublicBaseURL, "/") + "/images/" + filename
}

func (h *Handler) userResponse(user *ds.User) dto.UserResponse {
	return dto.UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		Avatar:    user.Avatar,
		IsActive:  user.IsActive,
		Role:      string(user.Role),
		CreatedAt: user.CreatedAt,
	}
}

// Ping проверяет работоспособность API
// @Summary Проверка работоспособности
// @Description Возвращает простой ответ для проверки работы сервера
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /ping [get]
func (h *Handler) Ping(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"message": "pong"})
}
