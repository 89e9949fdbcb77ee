package api

import (
	"embed"         // Embedded templates
	"html/template" // Page templates
	"time"          // CORS preflight cache

	"money_tracker/internal/middleware" // Session and logging middleware

	"github.com/gin-contrib/cors" // CORS for the JSON API
	"github.com/gin-gonic/gin"    // Gin web framework
)

//go:embed templates/*.html
var templatesFS embed.FS

// corsConfig allows the configured origins, or any origin without credentials
func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = origins
	cfg.AllowCredentials = true // Lets browsers send the session cookie
	return cfg
}

// Register mounts the pages, form endpoints and JSON API on r
func Register(r *gin.Engine, d *Deps, corsOrigins []string) {
	r.SetHTMLTemplate(template.Must(template.ParseFS(templatesFS, "templates/*.html")))

	r.Use(middleware.RequestLogger(d.Log)) // Structured request log
	r.Use(cors.New(corsConfig(corsOrigins)))

	// Pages
	r.GET("/", EntryPageHandler(d))           // Entry page
	r.GET("/index.html", EntryPageHandler(d)) // Entry page
	r.GET("/home.html", HomePageHandler(d))   // Home page with the tracker list

	// Form posts
	r.POST("/signup", SignUpHandler(d))                      // Create account
	r.POST("/signin", SignInHandler(d))                      // Sign in
	r.POST("/signout", SignOutHandler(d))                    // Sign out
	r.POST("/users", AddUserHandler(d))                      // Add entry
	r.POST("/users/:id/delete", DeleteUserHandler(d))        // Delete entry
	r.POST("/validate/email", ValidateEmailHandler(d))       // Live email check
	r.POST("/validate/password", ValidatePasswordHandler(d)) // Live password check

	// JSON API (session cookie or Bearer token)
	apiGroup := r.Group("/api")
	apiGroup.Use(middleware.SessionAuthMiddleware(d.Provider))
	apiGroup.GET("/me", MeHandler())                     // Signed-in account
	apiGroup.GET("/users", ListEntriesHandler(d))        // List entries
	apiGroup.POST("/users", CreateEntryHandler(d))       // Add entry
	apiGroup.DELETE("/users/:id", DeleteEntryHandler(d)) // Delete entry
}
