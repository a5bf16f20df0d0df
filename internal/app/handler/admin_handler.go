package handler

import (
	"errors"
	"net/http"

	"imagehost/internal/app/dto"
	"imagehost/internal/app/middleware"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// GetUsers возвращает список всех пользователей
// @Summary Список пользователей (админ)
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.UserListResponse
// @Failure 403 {object} dto.ErrorResponse
// @Router /api/admin/users [get]
func (h *Handler) GetUsers(ctx *gin.Context) {
	users, err := h.Repository.GetAllUsers()
	if err != nil {
		h.internalError(ctx, err)
		return
	}

	response := dto.UserListResponse{Users: make([]dto.UserResponse, 0, len(users))}
	for i := range users {
		response.Users = append(response.Users, h.userResponse(&users[i]))
	}

	ctx.JSON(http.StatusOK, response)
}

// ActivateUser включает или выключает аккаунт пользователя
// @Summary Активация пользователя (админ)
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ActivateUserRequest true "ID пользователя и новое состояние"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/admin/users/activate [post]
func (h *Handler) ActivateUser(ctx *gin.Context) {
	var request dto.ActivateUserRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		h.errorResponse(ctx, http.StatusBadRequest, "bad_request", err.Error())
		return
	}

	if _, err := h.Repository.GetUserByID(request.UserID); err != nil {
		h.errorResponse(ctx, http.StatusNotFound, "not_found", "User not found")
		return
	}

	if err := h.Repository.SetUserActive(request.UserID, *request.IsActive); err != nil {
		h.internalError(ctx, err)
		return
	}

	message := "User deactivated"
	if *request.IsActive {
		message = "User activated"
	}
	ctx.JSON(http.StatusOK, dto.SuccessResponse{
		Success: true,
		Message: message,
	})
}

// UpdateUserPassword сбрасывает пароль пользователя
// @Summary Сброс пароля пользователя (админ)
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UpdatePasswordRequest true "ID пользователя и новый пароль"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/admin/users/update-password [post]
func (h *Handler) UpdateUserPassword(ctx *gin.Context) {
	var request dto.UpdatePasswordRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		h.errorResponse(ctx, http.StatusBadRequest, "bad_request", err.Error())
		return
	}

	if _, err := h.Repository.GetUserByID(request.UserID); err != nil {
		h.errorResponse(ctx, http.StatusNotFound, "not_found", "User not found")
		return
	}

	hashedPassword, err := h.Auth.HashPassword(request.NewPassword)
	if err != nil {
		h.internalError(ctx, err)
		return
	}

	if err := h.Repository.UpdateUserPassword(request.UserID, hashedPassword); err != nil {
		h.internalError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.SuccessResponse{
		Success: true,
		Message: "Password updated",
	})
}

// DeleteUser удаляет пользователя вместе со всеми его файлами
// @Summary Удаление пользователя (админ)
// @Description Каскадно удаляет записи файлов и их объекты в хранилище. Администратор не может удалить собственный аккаунт
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.DeleteUserRequest true "ID пользователя"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/admin/users/delete [post]
func (h *Handler) DeleteUser(ctx *gin.Context) {
	callerID, _ := middleware.UserIDFromContext(ctx)

	var request dto.DeleteUserRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		h.errorResponse(ctx, http.StatusBadRequest, "bad_request", err.Error())
		return
	}

	// Администратор не удаляет сам себя
	if request.UserID == callerID {
		h.errorResponse(ctx, http.StatusForbidden, "forbidden", "Admin account cannot delete itself")
		return
	}

	user, err := h.Repository.GetUserByID(request.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			h.errorResponse(ctx, http.StatusNotFound, "not_found", "User not found")
			return
		}
		h.internalError(ctx, err)
		return
	}

	// Объекты удаляются до строк БД; ошибка по отдельному объекту не
	// прерывает каскад, висячих строк не останется
	files, err := h.Repository.GetFilesByUser(user.ID)
	if err != nil {
		h.internalError(ctx, err)
		return
	}
	for _, f := range files {
		if err := h.Storage.Delete(ctx.Request.Context(), f.FileName); err != nil {
			logrus.Warnf("Failed to delete object %s of user %d: %v", f.FileName, user.ID, err)
		}
	}

	if err := h.Repository.DeleteUserWithFiles(user.ID); err != nil {
		h.internalError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.SuccessResponse{
		Success: true,
		Message: "User deleted",
	})
}

// GetAllFiles возвращает все файлы с логинами владельцев
// @Summary Список всех файлов (админ)
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} dto.ErrorResponse
// @Router /api/admin/files [get]
func (h *Handler) GetAllFiles(ctx *gin.Context) {
	files, err := h.Repository.GetAllFilesWithUsers()
	if err != nil {
		h.internalError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"files": files})
}
