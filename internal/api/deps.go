package api

import (
	"net/http" // HTTP status codes

	"money_tracker/internal/auth"     // Identity provider and gateway
	"money_tracker/internal/docstore" // Document collections
	"money_tracker/internal/view"     // Page and controller

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// Deps holds what the handlers share across requests
type Deps struct {
	Provider      auth.IdentityProvider  // Identity backend
	Profiles      docstore.ProfileStore  // profiles collection
	Users         docstore.UserListStore // tracker_users collection
	Log           logrus.FieldLogger     // Logger handed to every component
	SecureCookies bool                   // Mark the session cookie Secure
}

// session is the per-request view state: one page, its controller and the
// auth subscription that feeds it
type session struct {
	page   *view.Page
	ctrl   *view.Controller
	unbind func()
}

// open builds the gateway, controller and page for one request and binds them
func (d *Deps) open(c *gin.Context, path string) *session {
	tokens := newCookieTokens(c, d.SecureCookies)                     // Session token lives in a cookie
	gateway := auth.NewGateway(d.Provider, d.Profiles, tokens, d.Log) // Gateway scoped to this client
	ctrl := view.NewController(gateway, d.Users, d.Log)               // Controller scoped to this page
	page := view.NewPage(path)
	return &session{page: page, ctrl: ctrl, unbind: ctrl.Bind(c.Request.Context(), page)}
}

// redirected reports whether the auth state observer already sent the page elsewhere
func (s *session) redirected() bool {
	_, ok := s.page.Redirect()
	return ok
}

// render follows the last requested navigation or renders the page template
func render(c *gin.Context, page *view.Page, name string) {
	if target, ok := page.Redirect(); ok {
		c.Redirect(http.StatusSeeOther, target) // Post/Redirect/Get
		return
	}
	c.HTML(http.StatusOK, name, page)
}
