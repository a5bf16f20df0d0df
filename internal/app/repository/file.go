package repository

import (
	"time"

	"imagehost/internal/app/ds"
)

// Методы для файлов (ORM)

// FileWithUser — запись файла вместе с логином владельца (для админки)
type FileWithUser struct {
	ID           uint      `json:"id"`
	UserID       uint      `json:"user_id"`
	Username     string    `json:"username"`
	FileName     string    `json:"file_name"`
	OriginalName string    `json:"original_name"`
	FileSize     int64     `json:"file_size"`
	FileType     string    `json:"file_type"`
	UploadedAt   time.Time `json:"uploaded_at"`
}

func (r *Repository) CreateFile(file *ds.File) error {
	return r.db.Create(file).Error
}

func (r *Repository) GetFileByID(id uint) (*ds.File, error) {
	var file ds.File
	err := r.db.First(&file, id).Error
	if err != nil {
		return nil, err
	}
	return &file, nil
}

func (r *Repository) GetFilesByUser(userID uint) ([]ds.File, error) {
	var files []ds.File
	err := r.db.Where("user_id = ?", userID).Order("uploaded_at DESC").Find(&files).Error
	return files, err
}

func (r *Repository) GetAllFilesWithUsers() ([]FileWithUser, error) {
	var files []FileWithUser
	err := r.db.Model(&ds.File{}).
		Select("files.id, files.user_id, users.username, files.file_name, files.original_name, files.file_size, files.file_type, files.uploaded_at").
		Joins("JOIN users ON users.id = files.user_id").
		Order("files.uploaded_at DESC").
		Scan(&files).Error
	return files, err
}

func (r *Repository) DeleteFile(id uint) error {
	return r.db.Delete(&ds.File{}, id).Error
}
