package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rpupo63/portfolio-site-backend/errs"
)

// Contact message statuses.
const (
	MessageStatusNew  = "new"
	MessageStatusRead = "read"
)

// ContactMessage is a message submitted through the public contact form.
// IPAddress is recorded server-side and never serialized to clients.
type ContactMessage struct {
	ID        uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey"`
	Name      string    `json:"name" db:"name" gorm:"type:text;not null"`
	Email     string    `json:"email" db:"email" gorm:"type:text;not null"`
	Subject   string    `json:"subject" db:"subject" gorm:"type:text;not null"`
	Message   string    `json:"message" db:"message" gorm:"type:text;not null"`
	Status    string    `json:"status" db:"status" gorm:"type:text;not null;default:new"`
	IPAddress string    `json:"-" db:"ip_address" gorm:"type:text"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

func (m *ContactMessage) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

func (m *ContactMessage) EntityID() uuid.UUID      { return m.ID }
func (m *ContactMessage) SetEntityID(id uuid.UUID) { m.ID = id }

func (m *ContactMessage) Stamp(now time.Time) {
	if m.CreatedAt.IsZero() {
		m.CreatedAt = now
	}
	m.UpdatedAt = now
}

func (m *ContactMessage) Normalize() {
	m.Name = strings.TrimSpace(m.Name)
	m.Email = strings.TrimSpace(m.Email)
	m.Subject = strings.TrimSpace(m.Subject)
	m.Message = strings.TrimSpace(m.Message)
	if m.Status == "" {
		m.Status = MessageStatusNew
	}
}

func (m *ContactMessage) Validate() error {
	if m.Name == "" || m.Email == "" || m.Subject == "" || m.Message == "" {
		return errs.BadRequest("All fields are required")
	}
	if m.Status != MessageStatusNew && m.Status != MessageStatusRead {
		return errs.NewInvalidFieldError("status", "must be 'new' or 'read'")
	}
	return nil
}
