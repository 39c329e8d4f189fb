package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/mdsajjadhossain25/portfolio-backend/database"
)

// setupPublicRoutes mounts the read-only site API and the two public forms
func setupPublicRoutes(r chi.Router, handlers *routeHandlers, limiter rateLimiter) {
	r.Get("/profile", handlers.profileHandler.getProfile())

	r.Get("/project-types", handlers.projectHandler.listProjectTypes())
	r.Get("/projects", handlers.projectHandler.listProjects())
	r.Get("/projects/{slug}", handlers.projectHandler.getProjectBySlug())

	r.Get("/blog/posts", handlers.blogPostHandler.listPublishedPosts())
	r.Get("/blog/posts/{slug}", handlers.blogPostHandler.getPublishedPost())
	r.Get("/blog/categories", handlers.blogPostHandler.listCategories())
	r.Get("/blog/tags", handlers.blogPostHandler.listTags())
	r.With(limiter.middleware("comment")).Post("/blog/posts/{slug}/comments", handlers.blogPostHandler.submitComment())

	r.Get("/services", handlers.serviceHandler.list(true))
	r.Get("/services/{slug}", handlers.serviceHandler.getActiveService())
	r.Get("/skills", handlers.skillHandler.listCategories())
	r.Get("/experiences", handlers.experienceHandler.listExperiences())

	r.With(limiter.middleware("contact")).Post("/contact", handlers.contactHandler.submitMessage())
}

// setupAdminRoutes mounts the content management API under /admin. Only login
// is reachable without a token.
func setupAdminRoutes(r chi.Router, handlers *routeHandlers, db database.Database, auth authMiddleware, limiter rateLimiter) {
	r.Route("/admin", func(r chi.Router) {
		r.With(limiter.middleware("login")).Post("/login", handlers.authHandler.login())

		r.Group(func(r chi.Router) {
			r.Use(auth.authenticate)
			reorder := func(scope func(*http.Request) (database.Scope, error)) http.HandlerFunc {
				return reorderHandler(handlers.reorderResponder, db, scope)
			}

			r.Put("/profile", handlers.profileHandler.saveProfile())
			r.Post("/uploads", handlers.uploadHandler.upload())

			r.Get("/project-types", handlers.projectHandler.listProjectTypes())
			r.Post("/project-types", handlers.projectHandler.createProjectType())
			r.Put("/project-types/reorder", reorder(fixedScope(database.ProjectTypeScope())))
			r.Put("/project-types/{typeID}", handlers.projectHandler.updateProjectType())
			r.Delete("/project-types/{typeID}", handlers.projectHandler.deleteProjectType())

			r.Get("/projects", handlers.projectHandler.listProjects())
			r.Post("/projects", handlers.projectHandler.createProject())
			r.Put("/projects/reorder", reorder(fixedScope(database.ProjectScope())))
			r.Get("/projects/{projectID}", handlers.projectHandler.getProject())
			r.Put("/projects/{projectID}", handlers.projectHandler.updateProject())
			r.Patch("/projects/{projectID}/toggle-status", handlers.projectHandler.toggleProjectStatus())
			r.Delete("/projects/{projectID}", handlers.projectHandler.deleteProject())

			r.Get("/blog/posts", handlers.blogPostHandler.listAllPosts())
			r.Post("/blog/posts", handlers.blogPostHandler.createPost())
			r.Get("/blog/posts/{postID}", handlers.blogPostHandler.getPost())
			r.Put("/blog/posts/{postID}", handlers.blogPostHandler.updatePost())
			r.Patch("/blog/posts/{postID}/publish", handlers.blogPostHandler.setPublished(true))
			r.Patch("/blog/posts/{postID}/unpublish", handlers.blogPostHandler.setPublished(false))
			r.Delete("/blog/posts/{postID}", handlers.blogPostHandler.deletePost())

			r.Get("/blog/categories", handlers.blogPostHandler.listCategories())
			r.Post("/blog/categories", handlers.blogPostHandler.createCategory())
			r.Put("/blog/categories/{categoryID}", handlers.blogPostHandler.updateCategory())
			r.Delete("/blog/categories/{categoryID}", handlers.blogPostHandler.deleteCategory())

			r.Get("/blog/tags", handlers.blogPostHandler.listTags())
			r.Post("/blog/tags", handlers.blogPostHandler.createTag())
			r.Put("/blog/tags/{tagID}", handlers.blogPostHandler.updateTag())
			r.Delete("/blog/tags/{tagID}", handlers.blogPostHandler.deleteTag())

			r.Get("/blog/comments", handlers.blogPostHandler.listComments())
			r.Patch("/blog/comments/{commentID}/approve", handlers.blogPostHandler.setCommentApproved(true))
			r.Patch("/blog/comments/{commentID}/unapprove", handlers.blogPostHandler.setCommentApproved(false))
			r.Delete("/blog/comments/{commentID}", handlers.blogPostHandler.deleteComment())

			r.Get("/services", handlers.serviceHandler.list(false))
			r.Post("/services", handlers.serviceHandler.createService())
			r.Put("/services/reorder", reorder(fixedScope(database.ServiceScope())))
			r.Get("/services/{serviceID}", handlers.serviceHandler.getService())
			r.Put("/services/{serviceID}", handlers.serviceHandler.updateService())
			r.Delete("/services/{serviceID}", handlers.serviceHandler.deleteService())

			r.Get("/skill-categories", handlers.skillHandler.listCategories())
			r.Post("/skill-categories", handlers.skillHandler.createCategory())
			r.Put("/skill-categories/reorder", reorder(fixedScope(database.SkillCategoryScope())))
			r.Put("/skill-categories/{categoryID}", handlers.skillHandler.updateCategory())
			r.Delete("/skill-categories/{categoryID}", handlers.skillHandler.deleteCategory())
			r.Put("/skill-categories/{categoryID}/skills/reorder", reorder(handlers.skillHandler.skillScope))

			r.Get("/skills", handlers.skillHandler.listSkills())
			r.Post("/skills", handlers.skillHandler.createSkill())
			r.Put("/skills/{skillID}", handlers.skillHandler.updateSkill())
			r.Delete("/skills/{skillID}", handlers.skillHandler.deleteSkill())

			r.Get("/experiences", handlers.experienceHandler.listExperiences())
			r.Post("/experiences", handlers.experienceHandler.createExperience())
			r.Put("/experiences/reorder", reorder(fixedScope(database.ExperienceScope())))
			r.Put("/experiences/{experienceID}", handlers.experienceHandler.updateExperience())
			r.Delete("/experiences/{experienceID}", handlers.experienceHandler.deleteExperience())

			r.Get("/contact-messages", handlers.contactHandler.listMessages())
			r.Get("/contact-messages/{messageID}", handlers.contactHandler.getMessage())
			r.Patch("/contact-messages/{messageID}", handlers.contactHandler.updateFlags())
			r.Delete("/contact-messages/{messageID}", handlers.contactHandler.deleteMessage())
		})
	})
}
