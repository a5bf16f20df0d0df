package repository

import (
	"imagehost/internal/app/ds"

	"gorm.io/gorm"
)

// Методы для пользователей (ORM)

func (r *Repository) GetUserByID(id uint) (*ds.User, error) {
	var user ds.User
	err := r.db.First(&user, id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *Repository) GetUserByUsername(username string) (*ds.User, error) {
	var user ds.User
	err := r.db.Where("username = ?", username).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *Repository) UserExistsByUsername(username string) (bool, error) {
	var count int64
	err := r.db.Model(&ds.User{}).Where("username = ?", username).Count(&count).Error
	return count > 0, err
}

func (r *Repository) UserExistsByEmail(email string) (bool, error) {
	var count int64
	err := r.db.Model(&ds.User{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}

func (r *Repository) CreateUser(user *ds.User) error {
	return r.db.Create(user).Error
}

func (r *Repository) UpdateUser(user *ds.User) error {
	return r.db.Save(user).Error
}

func (r *Repository) SetUserActive(id uint, isActive bool) error {
	return r.db.Model(&ds.User{}).Where("id = ?", id).Update("is_active", isActive).Error
}

func (r *Repository) UpdateUserPassword(id uint, password string) error {
	return r.db.Model(&ds.User{}).Where("id = ?", id).Update("password", password).Error
}

func (r *Repository) GetAllUsers() ([]ds.User, error) {
	var users []ds.User
	err := r.db.Order("id").Find(&users).Error
	return users, err
}

// DeleteUserWithFiles удаляет пользователя и записи его файлов одной транзакцией.
// Объекты в хранилище удаляет вызывающий до обращения сюда
func (r *Repository) DeleteUserWithFiles(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", id).Delete(&ds.File{}).Error; err != nil {
			return err
		}
		return tx.Delete(&ds.User{}, id).Error
	})
}
