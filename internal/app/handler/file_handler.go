package handler

import (
	"errors"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"imagehost/internal/app/ds"
	"imagehost/internal/app/dto"
	"imagehost/internal/app/middleware"
	"imagehost/internal/app/role"
	"imagehost/internal/app/storage"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// UploadFile загружает изображение в объектное хранилище
// @Summary Загрузка изображения
// @Description Проверяет тип и размер файла, сохраняет объект с контентно-адресуемым именем и создает запись метаданных
// @Tags Files
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "Файл изображения"
// @Success 200 {object} dto.UploadResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 413 {object} dto.ErrorResponse
// @Failure 415 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/upload [post]
func (h *Handler) UploadFile(ctx *gin.Context) {
	userID, ok := middleware.UserIDFromContext(ctx)
	if !ok {
		h.errorResponse(ctx, http.StatusUnauthorized, "unauthorized", "not authenticated")
		return
	}

	// Загрузка доступна только активированным аккаунтам
	user, err := h.Repository.GetUserByID(userID)
	if err != nil {
		h.errorResponse(ctx, http.StatusUnauthorized, "unauthorized", "user not found")
		return
	}
	if !user.IsActive {
		h.errorResponse(ctx, http.StatusForbidden, "not_activated", "Account not activated")
		return
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		h.errorResponse(ctx, http.StatusBadRequest, "bad_request", "File missing from request")
		return
	}

	openedFile, err := fileHeader.Open()
	if err != nil {
		h.internalError(ctx, err)
		return
	}
	defer openedFile.Close()

	fileData, err := io.ReadAll(openedFile)
	if err != nil {
		h.internalError(ctx, err)
		return
	}

	// Заявленный клиентом MIME тип проверяется по allow-list и сигнатуре содержимого
	declaredType := fileHeader.Header.Get("Content-Type")
	if !h.Validator.Validate(fileData, declaredType) {
		h.errorResponse(ctx, http.StatusUnsupportedMediaType, "unsupported_type", "File type is not allowed")
		return
	}

	if int64(len(fileData)) > h.Config.Upload.MaxFileSize {
		h.errorResponse(ctx, http.StatusRequestEntityTooLarge, "too_large", "File exceeds maximum allowed size")
		return
	}

	fileName := storage.GenerateFileName(fileData, fileHeader.Filename)
	fileUUID := uuid.New().String()
	uploadedAt := time.Now().UTC()

	info := storage.ObjectInfo{
		ContentType:  declaredType,
		Size:         int64(len(fileData)),
		OriginalName: fileHeader.Filename,
		UploadedAt:   uploadedAt,
		UUID:         fileUUID,
	}

	// Сначала объект, затем метаданные: при ошибке записи объекта
	// строка в БД не создается
	if err := h.Storage.Put(ctx.Request.Context(), fileName, fileData, info); err != nil {
		logrus.Error("Error uploading object: ", err)
		h.errorResponse(ctx, http.StatusInternalServerError, "internal_error", "Upload failed")
		return
	}

	file := ds.File{
		UserID:       userID,
		FileName:     fileName,
		OriginalName: fileHeader.Filename,
		FileSize:     int64(len(fileData)),
		FileType:     declaredType,
		UploadedAt:   uploadedAt,
	}
	if err := h.Repository.CreateFile(&file); err != nil {
		// Компенсация: без строки метаданных объект станет невидимой утечкой,
		// поэтому удаляем его
		logrus.Error("Error creating file record: ", err)
		if delErr := h.Storage.Delete(ctx.Request.Context(), fileName); delErr != nil {
			logrus.Warnf("Failed to clean up orphaned object %s: %v", fileName, delErr)
		}
		h.errorResponse(ctx, http.StatusInternalServerError, "internal_error", "Upload failed")
		return
	}

	ctx.JSON(http.StatusOK, dto.UploadResponse{
		Success:      true,
		Filename:     fileName,
		URL:          h.publicURL(fileName),
		ContentType:  declaredType,
		UploadedAt:   uploadedAt,
		OriginalName: fileHeader.Filename,
		FileSize:     int64(len(fileData)),
		UUID:         fileUUID,
	})
}

// GetFiles возвращает список файлов пользователя
// @Summary Список файлов
// @Description Возвращает файлы текущего пользователя. Администратор может запросить файлы любого пользователя через ?userId=
// @Tags Files
// @Produce json
// @Security BearerAuth
// @Param userId query int false "ID пользователя (только для администратора)"
// @Success 200 {object} dto.FileListResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Router /api/files [get]
func (h *Handler) GetFiles(ctx *gin.Context) {
	userID, ok := middleware.UserIDFromContext(ctx)
	if !ok {
		h.errorResponse(ctx, http.StatusUnauthorized, "unauthorized", "not authenticated")
		return
	}
	userRole, _ := middleware.RoleFromContext(ctx)

	targetID := userID
	if idStr := ctx.Query("userId"); idStr != "" {
		if userRole != role.Admin {
			h.errorResponse(ctx, http.StatusForbidden, "forbidden", "Only admin may list other users' files")
			return
		}
		id, err := strconv.ParseUint(idStr, 10, 32)
		if err != nil || id == 0 {
			h.errorResponse(ctx, http.StatusBadRequest, "bad_request", "Invalid userId")
			return
		}
		targetID = uint(id)
	}

	files, err := h.Repository.GetFilesByUser(targetID)
	if err != nil {
		h.internalError(ctx, err)
		return
	}

	response := dto.FileListResponse{Files: make([]dto.FileResponse, 0, len(files))}
	for _, f := range files {
		response.Files = append(response.Files, dto.FileResponse{
			ID:           f.ID,
			FileName:     f.FileName,
			URL:          h.publicURL(f.FileName),
			OriginalName: f.OriginalName,
			FileSize:     f.FileSize,
			FileType:     f.FileType,
			UploadedAt:   f.UploadedAt,
		})
	}

	ctx.JSON(http.StatusOK, response)
}

// DeleteFile удаляет файл владельца (или любой файл для администратора)
// @Summary Удаление файла
// @Description Удаляет объект из хранилища и запись метаданных. Порядок: сначала объект, затем строка БД
// @Tags Files
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.DeleteFileRequest true "ID файла"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/files [delete]
func (h *Handler) DeleteFile(ctx *gin.Context) {
	userID, ok := middleware.UserIDFromContext(ctx)
	if !ok {
		h.errorResponse(ctx, http.StatusUnauthorized, "unauthorized", "not authenticated")
		return
	}
	userRole, _ := middleware.RoleFromContext(ctx)

	var request dto.DeleteFileRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		h.errorResponse(ctx, http.StatusBadRequest, "bad_request", err.Error())
		return
	}

	file, err := h.Repository.GetFileByID(request.FileID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			h.errorResponse(ctx, http.StatusNotFound, "not_found", "File not found")
			return
		}
		h.internalError(ctx, err)
		return
	}

	if file.UserID != userID && userRole != role.Admin {
		h.errorResponse(ctx, http.StatusForbidden, "forbidden", "Not the file owner")
		return
	}

	// Сначала объект: если удаление строки БД после этого не удастся,
	// останется висячая запись (отдаст 404 при обращении) — это видимый
	// и потому приемлемый режим деградации
	if err := h.Storage.Delete(ctx.Request.Context(), file.FileName); err != nil {
		logrus.Error("Error deleting object: ", err)
		h.errorResponse(ctx, http.StatusInternalServerError, "internal_error", "Delete failed")
		return
	}

	if err := h.Repository.DeleteFile(file.ID); err != nil {
		logrus.Warnf("Object %s deleted but DB row remains: %v", file.FileName, err)
		h.errorResponse(ctx, http.StatusInternalServerError, "internal_error", "Delete failed")
		return
	}

	ctx.JSON(http.StatusOK, dto.SuccessResponse{
		Success: true,
		Message: "File deleted",
	})
}

// ServeImage отдает изображение по публичной ссылке
// @Summary Получение изображения
// @Description Отдает содержимое объекта с Content-Type из метаданных, ETag и Cache-Control. Опциональная защита от хотлинка по Referer
// @Tags Files
// @Produce octet-stream
// @Param name path string true "Имя файла в хранилище"
// @Success 200 {string} binary "Содержимое файла"
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /images/{name} [get]
func (h *Handler) ServeImage(ctx *gin.Context) {
	name := ctx.Param("name")
	if name == "" || strings.Contains(name, "/") {
		h.errorResponse(ctx, http.StatusNotFound, "not_found", "Image not found")
		return
	}

	if h.Config.Hotlink.Enabled && !h.refererAllowed(ctx.GetHeader("Referer")) {
		// Вместо блокировки можно отдать настроенную заглушку
		if h.Config.Hotlink.DefaultImage != "" && h.Config.Hotlink.DefaultImage != name {
			h.serveObject(ctx, h.Config.Hotlink.DefaultImage)
			return
		}
		h.errorResponse(ctx, http.StatusForbidden, "forbidden", "Hotlinking is not allowed")
		return
	}

	h.serveObject(ctx, name)
}

func (h *Handler) serveObject(ctx *gin.Context, name string) {
	data, info, err := h.Storage.Get(ctx.Request.Context(), name)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			h.errorResponse(ctx, http.StatusNotFound, "not_found", "Image not found")
			return
		}
		h.internalError(ctx, err)
		return
	}

	etag := `"` + info.ETag + `"`
	ctx.Header("Cache-Control", "public, max-age=86400")
	if info.ETag != "" {
		ctx.Header("ETag", etag)
		if ctx.GetHeader("If-None-Match") == etag {
			ctx.Status(http.StatusNotModified)
			return
		}
	}

	contentType := info.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	ctx.Data(http.StatusOK, contentType, data)
}

// refererAllowed проверяет Referer по allow-list. Пустой Referer
// (прямое обращение) всегда разрешен
func (h *Handler) refererAllowed(referer string) bool {
	if referer == "" {
		return true
	}

	parsed, err := url.Parse(referer)
	if err != nil {
		return false
	}

	for _, allowed := range h.Config.Hotlink.AllowedReferers {
		if allowed == "*" {
			return true
		}
		host := strings.TrimSpace(allowed)
		if strings.EqualFold(parsed.Host, host) || strings.HasSuffix(strings.ToLower(parsed.Host), "."+strings.ToLower(host)) {
			return true
		}
	}
	return false
}
