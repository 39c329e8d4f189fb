package api

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	authHandler       authHandler
	profileHandler    profileHandler
	projectHandler    projectHandler
	blogPostHandler   blogPostHandler
	serviceHandler    serviceHandler
	skillHandler      skillHandler
	experienceHandler experienceHandler
	contactHandler    contactHandler
	uploadHandler     uploadHandler
	reorderResponder  Responder
}

// ErrorResponse represents an error response from the API
// @Description Error response structure
type ErrorResponse struct {
	Error   string            `json:"error" example:"Internal Server Error"`
	Status  string            `json:"status" example:"error"`
	Field   string            `json:"field,omitempty" example:"title"`
	Details string            `json:"details,omitempty" example:"Additional error details"`
	Fields  map[string]string `json:"fields,omitempty"`
	Cause   string            `json:"cause,omitempty" example:"Underlying error cause"`
}

type healthResponse struct {
	Status      string `json:"status"`
	Database    string `json:"database"`
	StartupTime string `json:"startup_time"`
	Uptime      string `json:"uptime"`
}
