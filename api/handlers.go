package api

import (
	"html/template"

	"github.com/misionvictoriosa/site-backend/database"
)

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(db database.Database, templates *template.Template, sessions sessionManager) *routeHandlers {
	return &routeHandlers{
		siteHandler:    newSiteHandler(templates, db.ProjectRepo(), db.UserRepo(), sessions),
		projectHandler: newProjectHandler(templates, db.ProjectRepo(), db.MediaRepo(), db.UserRepo()),
		userHandler:    newUserHandler(templates, db.UserRepo()),
	}
}
