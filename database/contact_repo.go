package database

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rpupo63/portfolio-site-backend/models"
)

type ContactRepo struct {
	db *gorm.DB
}

func NewContactRepo(db *gorm.DB) *ContactRepo {
	return &ContactRepo{db}
}

// FindAll returns all contact messages, newest first.
func (r *ContactRepo) FindAll() ([]*models.ContactMessage, error) {
	var messages []*models.ContactMessage
	err := r.db.Order("created_at DESC").Find(&messages).Error
	return messages, err
}

func (r *ContactRepo) FindByID(id uuid.UUID) (*models.ContactMessage, error) {
	var message models.ContactMessage
	err := r.db.First(&message, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &message, nil
}

func (r *ContactRepo) Add(message *models.ContactMessage) error {
	return r.db.Create(message).Error
}

// UpdateStatus sets the status of a message and returns the updated record.
func (r *ContactRepo) UpdateStatus(id uuid.UUID, status string) (*models.ContactMessage, error) {
	message, err := r.FindByID(id)
	if err != nil {
		return nil, err
	}
	message.Status = status
	if err := r.db.Save(message).Error; err != nil {
		return nil, err
	}
	return message, nil
}

func (r *ContactRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.ContactMessage{}, "id = ?", id).Error
}
