package database

import (
	"errors"

	"gorm.io/gorm"

	"github.com/rpupo63/portfolio-site-backend/models"
)

type UserRepo struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) *UserRepo {
	return &UserRepo{db}
}

// FindByUsername returns nil without error when no user matches.
func (r *UserRepo) FindByUsername(username string) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, "username = ?", username).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByUsernameOrEmail is used by registration to detect duplicates.
func (r *UserRepo) FindByUsernameOrEmail(username, email string) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, "username = ? OR email = ?", username, email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepo) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.User{}).Count(&count).Error
	return count, err
}

func (r *UserRepo) Add(user *models.User) error {
	return r.db.Create(user).Error
}
