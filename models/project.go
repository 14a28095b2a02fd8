package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/rpupo63/portfolio-site-backend/errs"
)

// Project categories accepted by the API.
const (
	CategoryWeb    = "web"
	CategoryMobile = "mobile"
	CategoryAPI    = "api"
	CategoryGame   = "game"
	CategoryOther  = "other"
)

var projectCategories = map[string]bool{
	CategoryWeb:    true,
	CategoryMobile: true,
	CategoryAPI:    true,
	CategoryGame:   true,
	CategoryOther:  true,
}

// Project represents a portfolio project
type Project struct {
	ID           uuid.UUID                   `json:"id" db:"id" gorm:"type:uuid;primaryKey"`
	Title        string                      `json:"title" db:"title" gorm:"type:text;not null"`
	Category     string                      `json:"category" db:"category" gorm:"type:text;not null"`
	Description  string                      `json:"description" db:"description" gorm:"type:text;not null"`
	Image        string                      `json:"image" db:"image" gorm:"type:text"`
	Icon         string                      `json:"icon" db:"icon" gorm:"type:text;default:code"`
	LiveURL      string                      `json:"liveUrl" db:"live_url" gorm:"type:text"`
	GithubURL    string                      `json:"githubUrl" db:"github_url" gorm:"type:text"`
	Technologies datatypes.JSONSlice[string] `json:"technologies" db:"technologies"`
	Featured     bool                        `json:"featured" db:"featured" gorm:"default:false"`
	CreatedAt    time.Time                   `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time                   `json:"updatedAt" db:"updated_at"`
}

func (p *Project) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

func (p *Project) EntityID() uuid.UUID      { return p.ID }
func (p *Project) SetEntityID(id uuid.UUID) { p.ID = id }

func (p *Project) Stamp(now time.Time) {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now
}

// Normalize trims text fields, applies the default icon and removes duplicate
// technologies while preserving their order.
func (p *Project) Normalize() {
	p.Title = strings.TrimSpace(p.Title)
	p.Category = strings.TrimSpace(p.Category)
	p.Description = strings.TrimSpace(p.Description)
	if p.Icon == "" {
		p.Icon = "code"
	}
	if len(p.Technologies) > 0 {
		seen := make(map[string]bool, len(p.Technologies))
		deduped := p.Technologies[:0]
		for _, tech := range p.Technologies {
			tech = strings.TrimSpace(tech)
			if tech == "" || seen[tech] {
				continue
			}
			seen[tech] = true
			deduped = append(deduped, tech)
		}
		p.Technologies = deduped
	}
}

func (p *Project) Validate() error {
	if p.Title == "" {
		return errs.NewMissingRequiredFieldError("title")
	}
	if p.Category == "" {
		return errs.NewMissingRequiredFieldError("category")
	}
	if !projectCategories[p.Category] {
		return errs.NewInvalidFieldError("category", fmt.Sprintf("%q is not a valid category", p.Category))
	}
	if p.Description == "" {
		return errs.NewMissingRequiredFieldError("description")
	}
	return nil
}
