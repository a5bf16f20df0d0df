package ds

import (
	"time"

	"imagehost/internal/app/role"
)

// Таблица пользователей
type User struct {
	ID        uint      `gorm:"primaryKey"`
	Username  string    `gorm:"type:varchar(50);unique;not null"`
	Password  string    `gorm:"type:varchar(255);not null"`
	Email     *string   `gorm:"type:varchar(100);uniqueIndex"` // Nullable, уникален когда задан
	Avatar    string    `gorm:"type:varchar(255)"`
	IsActive  bool      `gorm:"type:boolean;default:false;not null"`
	Role      role.Role `gorm:"type:varchar(20);default:'user';not null"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}
