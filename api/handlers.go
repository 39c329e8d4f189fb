package api

import (
	"github.com/mdsajjadhossain25/portfolio-backend/database"
	"github.com/mdsajjadhossain25/portfolio-backend/services"
	"github.com/mdsajjadhossain25/portfolio-backend/storage"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// Dependencies are the collaborators the HTTP layer is built from. Redis and
// Notifier may be nil.
type Dependencies struct {
	Database database.Database
	Files    storage.FileStorage
	Notifier services.ContactNotifier
	Redis    *redis.Client
}

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(deps Dependencies, siteBaseURL, passwordHash string, tokens tokenManager) *routeHandlers {
	db := deps.Database
	assets := assetResolver{files: deps.Files}

	return &routeHandlers{
		authHandler:       newAuthHandler(passwordHash, tokens),
		profileHandler:    newProfileHandler(db.ProfileRepo(), assets),
		projectHandler:    newProjectHandler(db.ProjectRepo(), db.ProjectTypeRepo(), assets, siteBaseURL),
		blogPostHandler:   newBlogPostHandler(db, assets, siteBaseURL),
		serviceHandler:    newServiceHandler(db.ServiceRepo(), siteBaseURL),
		skillHandler:      newSkillHandler(db.SkillCategoryRepo(), db.SkillRepo()),
		experienceHandler: newExperienceHandler(db.ExperienceRepo()),
		contactHandler:    newContactHandler(db.ContactMessageRepo(), deps.Notifier),
		uploadHandler:     newUploadHandler(assets),
		reorderResponder:  NewResponder(log.With().Str("handlerName", "reorderHandler").Logger()),
	}
}
