package dto

import "time"

// ============ Общие структуры ============

// Единый формат ошибки: {error: <код>, message: <текст>}
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// ============ Пользователи ============

type UserResponse struct {
	ID        uint      `json:"id"`
	Username  string    `json:"username"`
	Email     *string   `json:"email,omitempty"`
	Avatar    string    `json:"avatar,omitempty"`
	IsActive  bool      `json:"is_active"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

type RegisterRequest struct {
	Username string  `json:"username" binding:"required,min=3,max=50"`
	Password string  `json:"password" binding:"required,min=6"`
	Email    *string `json:"email" binding:"omitempty,email"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Success bool         `json:"success"`
	User    UserResponse `json:"user"`
	Token   string       `json:"token"`
}

type UpdateProfileRequest struct {
	Email    *string `json:"email" binding:"omitempty,email"`
	Avatar   *string `json:"avatar"`
	Password *string `json:"password" binding:"omitempty,min=6"`
}

// ============ Файлы ============

type UploadResponse struct {
	Success      bool      `json:"success"`
	Filename     string    `json:"filename"`
	URL          string    `json:"url"`
	ContentType  string    `json:"contentType"`
	UploadedAt   time.Time `json:"uploadedAt"`
	OriginalName string    `json:"originalName"`
	FileSize     int64     `json:"fileSize"`
	UUID         string    `json:"uuid"`
}

type FileResponse struct {
	ID           uint      `json:"id"`
	FileName     string    `json:"file_name"`
	URL          string    `json:"url"`
	OriginalName string    `json:"original_name"`
	FileSize     int64     `json:"file_size"`
	FileType     string    `json:"file_type"`
	UploadedAt   time.Time `json:"uploaded_at"`
}

type FileListResponse struct {
	Files []FileResponse `json:"files"`
}

type DeleteFileRequest struct {
	FileID uint `json:"fileId" binding:"required"`
}

// ============ Админка ============

type UserListResponse struct {
	Users []UserResponse `json:"users"`
}

type ActivateUserRequest struct {
	UserID   uint  `json:"userId" binding:"required"`
	IsActive *bool `json:"isActive" binding:"required"`
}

type UpdatePasswordRequest struct {
	UserID      uint   `json:"userId" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,min=6"`
}

type DeleteUserRequest struct {
	UserID uint `json:"userId" binding:"required"`
}
