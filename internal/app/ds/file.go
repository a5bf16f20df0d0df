package ds

import "time"

// Таблица загруженных файлов
type File struct {
	ID           uint      `gorm:"primaryKey"`
	UserID       uint      `gorm:"not null;index"`
	FileName     string    `gorm:"type:varchar(255);uniqueIndex;not null"` // Ключ в объектном хранилище
	OriginalName string    `gorm:"type:varchar(255)"`
	FileSize     int64     `gorm:"not null"`
	FileType     string    `gorm:"type:varchar(100)"`
	UploadedAt   time.Time `gorm:"not null"`

	User User `gorm:"foreignKey:UserID"`
}
