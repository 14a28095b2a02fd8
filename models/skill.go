package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rpupo63/portfolio-site-backend/errs"
)

// SkillCategory groups skills for display (e.g. "Frontend", "Databases").
type SkillCategory struct {
	ID           uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey"`
	Name         string    `json:"name" db:"name" gorm:"type:text;not null"`
	Description  string    `json:"description" db:"description" gorm:"type:text;not null"`
	Icon         string    `json:"icon" db:"icon" gorm:"type:text;not null"`
	DisplayOrder int       `json:"order" db:"display_order" gorm:"type:integer;not null;default:0"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`
}

func (c *SkillCategory) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

func (c *SkillCategory) EntityID() uuid.UUID      { return c.ID }
func (c *SkillCategory) SetEntityID(id uuid.UUID) { c.ID = id }

func (c *SkillCategory) Stamp(now time.Time) {
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
	c.UpdatedAt = now
}

func (c *SkillCategory) Normalize() {
	c.Name = strings.TrimSpace(c.Name)
	c.Description = strings.TrimSpace(c.Description)
	c.Icon = strings.TrimSpace(c.Icon)
}

func (c *SkillCategory) Validate() error {
	if c.Name == "" {
		return errs.NewMissingRequiredFieldError("name")
	}
	if c.Description == "" {
		return errs.NewMissingRequiredFieldError("description")
	}
	if c.Icon == "" {
		return errs.NewMissingRequiredFieldError("icon")
	}
	return nil
}

// Skill belongs to exactly one SkillCategory. A skill whose category was
// deleted out from under it keeps its CategoryID; renderers show "Unknown".
type Skill struct {
	ID           uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey"`
	Name         string    `json:"name" db:"name" gorm:"type:text;not null"`
	CategoryID   uuid.UUID `json:"categoryId" db:"category_id" gorm:"type:uuid;not null;index:idx_skill_category_id"`
	Icon         string    `json:"icon" db:"icon" gorm:"type:text;not null"`
	Percent      int       `json:"percent" db:"percent" gorm:"type:integer;not null"`
	DisplayOrder int       `json:"order" db:"display_order" gorm:"type:integer;not null;default:0"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`

	// Embedded on list/create/update responses so renderers don't need a
	// second lookup. Never written through this field.
	Category *SkillCategory `json:"category,omitempty" gorm:"foreignKey:CategoryID;references:ID"`
}

func (s *Skill) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

func (s *Skill) EntityID() uuid.UUID      { return s.ID }
func (s *Skill) SetEntityID(id uuid.UUID) { s.ID = id }

func (s *Skill) Stamp(now time.Time) {
	if s.CreatedAt.IsZero() {
		s.CreatedAt = now
	}
	s.UpdatedAt = now
}

// Normalize clamps percent into [0,100]. Out-of-range values are clamped, not
// rejected, so the result is deterministic on every path.
func (s *Skill) Normalize() {
	s.Name = strings.TrimSpace(s.Name)
	s.Icon = strings.TrimSpace(s.Icon)
	if s.Percent < 0 {
		s.Percent = 0
	}
	if s.Percent > 100 {
		s.Percent = 100
	}
}

func (s *Skill) Validate() error {
	if s.Name == "" {
		return errs.NewMissingRequiredFieldError("name")
	}
	if s.CategoryID == uuid.Nil {
		return errs.NewMissingRequiredFieldError("categoryId")
	}
	if s.Icon == "" {
		return errs.NewMissingRequiredFieldError("icon")
	}
	return nil
}

// CategoryName returns the embedded category name, or "Unknown" for a
// dangling reference.
func (s *Skill) CategoryName() string {
	if s.Category == nil || s.Category.Name == "" {
		return "Unknown"
	}
	return s.Category.Name
}
