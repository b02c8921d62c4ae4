package repository

import (
	"github.com/roastline/roastline-backend/internal/app/model"
	"github.com/roastline/roastline-backend/pkg/logger"
	"gorm.io/gorm"
)

type AdminUserRepository interface {
	Create(user *model.AdminUser) error
	FindByID(id uint) (*model.AdminUser, error)
	FindByUsername(username string) (*model.AdminUser, error)
	FindByEmail(email string) (*model.AdminUser, error)
}

type adminUserRepository struct {
	db *gorm.DB
}

func NewAdminUserRepository(db *gorm.DB) AdminUserRepository {
	return &adminUserRepository{db: db}
}

func (r *adminUserRepository) Create(user *model.AdminUser) error {
	logger.Debug("Creating admin user in database", map[string]interface{}{
		"username": user.Username,
		"email":    user.Email,
	})

	if err := r.db.Create(user).Error; err != nil {
		logger.Error("Failed to create admin user in database", err, map[string]interface{}{
			"username": user.Username,
		})
		return err
	}

	logger.Debug("Admin user created in database", map[string]interface{}{
		"admin_user_id": user.ID,
		"username":      user.Username,
	})
	return nil
}

func (r *adminUserRepository) FindByID(id uint) (*model.AdminUser, error) {
	var user model.AdminUser
	if err := r.db.First(&user, id).Error; err != nil {
		logger.Error("Failed to find admin user by ID in database", err, map[string]interface{}{
			"admin_user_id": id,
		})
		return nil, err
	}
	return &user, nil
}

func (r *adminUserRepository) FindByUsername(username string) (*model.AdminUser, error) {
	var user model.AdminUser
	if err := r.db.Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *adminUserRepository) FindByEmail(email string) (*model.AdminUser, error) {
	var user model.AdminUser
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}
