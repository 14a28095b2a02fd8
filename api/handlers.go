package api

import (
	"time"

	"github.com/rpupo63/portfolio-site-backend/database"
)

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(database database.Database, jwtSecret string, startupTime time.Time) *routeHandlers {
	return &routeHandlers{
		authHandler:    newAuthHandler(database.UserRepo(), jwtSecret),
		projectHandler: newProjectHandler(database.ProjectRepo()),
		skillHandler:   newSkillHandler(database.SkillCategoryRepo(), database.SkillRepo()),
		contactHandler: newContactHandler(database.ContactRepo()),
		healthHandler:  newHealthHandler(startupTime),
	}
}
