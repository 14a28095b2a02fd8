package database

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rpupo63/portfolio-site-backend/models"
)

type SkillCategoryRepo struct {
	db *gorm.DB
}

func NewSkillCategoryRepo(db *gorm.DB) *SkillCategoryRepo {
	return &SkillCategoryRepo{db}
}

// FindAll returns all skill categories in display order.
func (r *SkillCategoryRepo) FindAll() ([]*models.SkillCategory, error) {
	var categories []*models.SkillCategory
	err := r.db.Order("display_order, created_at").Find(&categories).Error
	return categories, err
}

func (r *SkillCategoryRepo) FindByID(id uuid.UUID) (*models.SkillCategory, error) {
	var category models.SkillCategory
	err := r.db.First(&category, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *SkillCategoryRepo) Add(category *models.SkillCategory) error {
	return r.db.Create(category).Error
}

func (r *SkillCategoryRepo) Update(category *models.SkillCategory) error {
	return r.db.Save(category).Error
}

// Delete removes a category and every skill that references it. The cascade
// is explicit and runs in a single transaction.
func (r *SkillCategoryRepo) Delete(id uuid.UUID) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.Skill{}, "category_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&models.SkillCategory{}, "id = ?", id).Error
	})
}

type SkillRepo struct {
	db *gorm.DB
}

func NewSkillRepo(db *gorm.DB) *SkillRepo {
	return &SkillRepo{db}
}

// FindAll returns all skills in display order with their category embedded.
func (r *SkillRepo) FindAll() ([]*models.Skill, error) {
	var skills []*models.Skill
	err := r.db.Preload("Category").Order("display_order, created_at").Find(&skills).Error
	return skills, err
}

func (r *SkillRepo) FindByID(id uuid.UUID) (*models.Skill, error) {
	var skill models.Skill
	err := r.db.Preload("Category").First(&skill, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &skill, nil
}

func (r *SkillRepo) Add(skill *models.Skill) error {
	return r.db.Omit("Category").Create(skill).Error
}

func (r *SkillRepo) Update(skill *models.Skill) error {
	return r.db.Omit("Category").Save(skill).Error
}

func (r *SkillRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.Skill{}, "id = ?", id).Error
}
