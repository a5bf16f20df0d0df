package handler

import (
	"errors"
	"net/http"
	"time"

	"imagehost/internal/app/ds"
	"imagehost/internal/app/dto"
	"imagehost/internal/app/middleware"
	"imagehost/internal/app/role"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// RegisterUser регистрация нового пользователя
// @Summary Регистрация пользователя
// @Description Создание нового пользователя. Аккаунт создается неактивным и требует активации администратором
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "Данные для регистрации"
// @Success 201 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/register [post]
func (h *Handler) RegisterUser(ctx *gin.Context) {
	var request dto.RegisterRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		h.errorResponse(ctx, http.StatusBadRequest, "bad_request", err.Error())
		return
	}

	// Проверяем уникальность логина
	exists, err := h.Repository.UserExistsByUsername(request.Username)
	if err != nil {
		h.internalError(ctx, err)
		return
	}
	if exists {
		h.errorResponse(ctx, http.StatusConflict, "conflict", "Username already taken")
		return
	}

	// Email уникален, когда указан
	if request.Email != nil && *request.Email != "" {
		exists, err = h.Repository.UserExistsByEmail(*request.Email)
		if err != nil {
			h.internalError(ctx, err)
			return
		}
		if exists {
			h.errorResponse(ctx, http.StatusConflict, "conflict", "Email already taken")
			return
		}
	}

	hashedPassword, err := h.Auth.HashPassword(request.Password)
	if err != nil {
		h.internalError(ctx, err)
		return
	}

	// Аккаунт всегда создается неактивным, активацию выполняет администратор
	user := ds.User{
		Username: request.Username,
		Password: hashedPassword,
		Email:    request.Email,
		IsActive: false,
		Role:     role.User,
	}
	if err := h.Repository.CreateUser(&user); err != nil {
		logrus.Error("Error creating user: ", err)
		h.errorResponse(ctx, http.StatusInternalServerError, "internal_error", "Registration failed")
		return
	}

	ctx.JSON(http.StatusCreated, dto.SuccessResponse{
		Success: true,
		Message: "User registered successfully. Awaiting activation.",
	})
}

// LoginUser аутентификация пользователя
// @Summary Вход в систему
// @Description Аутентификация пользователя с возвратом JWT токена. Неактивированные аккаунты не допускаются
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Данные для входа"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Router /api/login [post]
func (h *Handler) LoginUser(ctx *gin.Context) {
	var request dto.LoginRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		h.errorResponse(ctx, http.StatusBadRequest, "bad_request", err.Error())
		return
	}

	user, err := h.Repository.GetUserByUsername(request.Username)
	if err != nil || !h.Auth.VerifyPassword(request.Password, user.Password) {
		h.errorResponse(ctx, http.StatusUnauthorized, "invalid_credentials", "Invalid username or password")
		return
	}

	// Активация проверяется до выдачи токена
	if !user.IsActive {
		h.errorResponse(ctx, http.StatusForbidden, "not_activated", "Account not activated")
		return
	}

	accessToken, err := h.Auth.GenerateToken(user)
	if err != nil {
		h.internalError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.LoginResponse{
		Success: true,
		User:    h.userResponse(user),
		Token:   accessToken,
	})
}

// LogoutUser выход пользователя из системы
// @Summary Выход из системы
// @Description Добавляет токен в blacklist до истечения его срока действия
// @Tags Authentication
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.SuccessResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/logout [post]
func (h *Handler) LogoutUser(ctx *gin.Context) {
	tokenString := ctx.GetString(middleware.ContextToken)
	if tokenString == "" {
		h.errorResponse(ctx, http.StatusUnauthorized, "unauthorized", "authorization header missing")
		return
	}

	// Без Redis отзыв токенов невозможен, logout выполняется на клиенте
	if h.RedisClient == nil {
		ctx.JSON(http.StatusOK, dto.SuccessResponse{
			Success: true,
			Message: "Logged out",
		})
		return
	}

	claims := h.Auth.VerifyToken(tokenString)
	if claims == nil {
		h.errorResponse(ctx, http.StatusUnauthorized, "unauthorized", "invalid token")
		return
	}

	// Токен живет в blacklist ровно до своего истечения
	ttl := time.Until(time.Unix(claims.ExpiresAt, 0))
	if ttl > 0 {
		err := h.RedisClient.WriteJWTToBlacklist(ctx.Request.Context(), tokenString, ttl)
		if err != nil {
			h.internalError(ctx, err)
			return
		}
	}

	ctx.JSON(http.StatusOK, dto.SuccessResponse{
		Success: true,
		Message: "Logged out",
	})
}

// GetProfile получение профиля текущего пользователя
// @Summary Профиль пользователя
// @Description Возвращает информацию о текущем пользователе
// @Tags Authentication
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/user [get]
func (h *Handler) GetProfile(ctx *gin.Context) {
	userID, ok := middleware.UserIDFromContext(ctx)
	if !ok {
		h.errorResponse(ctx, http.StatusUnauthorized, "unauthorized", "not authenticated")
		return
	}

	user, err := h.Repository.GetUserByID(userID)
	if err != nil {
		h.errorResponse(ctx, http.StatusNotFound, "not_found", "User not found")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"user": h.userResponse(user)})
}

// UpdateProfile обновление профиля текущего пользователя
// @Summary Обновление профиля
// @Description Изменение email, аватара или пароля текущего пользователя
// @Tags Authentication
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UpdateProfileRequest true "Изменяемые поля"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /api/user [put]
func (h *Handler) UpdateProfile(ctx *gin.Context) {
	userID, ok := middleware.UserIDFromContext(ctx)
	if !ok {
		h.errorResponse(ctx, http.StatusUnauthorized, "unauthorized", "not authenticated")
		return
	}

	var request dto.UpdateProfileRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		h.errorResponse(ctx, http.StatusBadRequest, "bad_request", err.Error())
		return
	}

	user, err := h.Repository.GetUserByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			h.errorResponse(ctx, http.StatusNotFound, "not_found", "User not found")
			return
		}
		h.internalError(ctx, err)
		return
	}

	if request.Email != nil && *request.Email != "" {
		if user.Email == nil || *user.Email != *request.Email {
			exists, err := h.Repository.UserExistsByEmail(*request.Email)
			if err != nil {
				h.internalError(ctx, err)
				return
			}
			if exists {
				h.errorResponse(ctx, http.StatusConflict, "conflict", "Email already taken")
				return
			}
		}
		user.Email = request.Email
	}

	if request.Avatar != nil {
		user.Avatar = *request.Avatar
	}

	if request.Password != nil && *request.Password != "" {
		hashedPassword, err := h.Auth.HashPassword(*request.Password)
		if err != nil {
			h.internalError(ctx, err)
			return
		}
		user.Password = hashedPassword
	}

	if err := h.Repository.UpdateUser(user); err != nil {
		h.internalError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.SuccessResponse{
		Success: true,
		Message: "Profile updated",
	})
}
