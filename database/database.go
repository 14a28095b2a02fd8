package database

import (
	"gorm.io/gorm"

	"github.com/rpupo63/portfolio-site-backend/models"
)

type Database struct {
	projectRepo       *ProjectRepo
	skillCategoryRepo *SkillCategoryRepo
	skillRepo         *SkillRepo
	contactRepo       *ContactRepo
	userRepo          *UserRepo
}

// New initializes a new Database struct with each repository using a shared GORM database instance
func New(db *gorm.DB) Database {
	return Database{
		projectRepo:       NewProjectRepo(db),
		skillCategoryRepo: NewSkillCategoryRepo(db),
		skillRepo:         NewSkillRepo(db),
		contactRepo:       NewContactRepo(db),
		userRepo:          NewUserRepo(db),
	}
}

// Migrate creates or updates the schema for every model.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Project{},
		&models.SkillCategory{},
		&models.Skill{},
		&models.ContactMessage{},
		&models.User{},
	)
}

// Accessor methods for each repository

func (d Database) ProjectRepo() *ProjectRepo {
	return d.projectRepo
}

func (d Database) SkillCategoryRepo() *SkillCategoryRepo {
	return d.skillCategoryRepo
}

func (d Database) SkillRepo() *SkillRepo {
	return d.skillRepo
}

func (d Database) ContactRepo() *ContactRepo {
	return d.contactRepo
}

func (d Database) UserRepo() *UserRepo {
	return d.userRepo
}
