package api

import (
	"net/http" // HTTP status codes

	"money_tracker/internal/validator" // Field states
	"money_tracker/internal/view"      // Page and controller

	"github.com/gin-gonic/gin" // Gin web framework
)

// Template names
const (
	entryTemplate = "index.html"
	homeTemplate  = "home.html"
)

// EntryPageHandler renders the sign-in / sign-up page, or sends signed-in users home
func EntryPageHandler(d *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		s := d.open(c, c.Request.URL.Path) // "/" and "/index.html" are both entry pages
		defer s.unbind()
		render(c, s.page, entryTemplate)
	}
}

// SignUpHandler creates an account from the posted form
func SignUpHandler(d *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		s := d.open(c, view.EntryPath)
		defer s.unbind()
		// Already signed in: the observer has sent the page home
		if !s.redirected() {
			s.ctrl.SignUp(c.Request.Context(), s.page, c.PostForm("email"), c.PostForm("password"))
		}
		render(c, s.page, entryTemplate) // Success redirects through the observer
	}
}

// SignInHandler signs in with the posted form
func SignInHandler(d *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		s := d.open(c, view.EntryPath)
		defer s.unbind()
		// Already signed in: the observer has sent the page home
		if !s.redirected() {
			s.ctrl.SignIn(c.Request.Context(), s.page, c.PostForm("email"), c.PostForm("password"))
		}
		render(c, s.page, entryTemplate)
	}
}

// SignOutHandler ends the session and goes back to the entry page
func SignOutHandler(d *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		s := d.open(c, view.HomePath)
		defer s.unbind()
		s.ctrl.SignOut(c.Request.Context(), s.page)
		// On failure the home page is shown again with the error
		if !s.redirected() {
			s.ctrl.LoadList(c.Request.Context(), s.page)
		}
		render(c, s.page, homeTemplate)
	}
}

// ValidateEmailHandler returns the live state of the email input
func ValidateEmailHandler(d *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		page := view.NewPage(view.EntryPath)
		view.NewController(nil, nil, d.Log).OnEmailInput(page, c.PostForm("value"))
		c.JSON(http.StatusOK, validator.FieldState{Invalid: page.Email.Invalid, Message: page.Banner.Text})
	}
}

// ValidatePasswordHandler returns the live state of the password input
func ValidatePasswordHandler(d *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		page := view.NewPage(view.EntryPath)
		view.NewController(nil, nil, d.Log).OnPasswordInput(page, c.PostForm("value"))
		c.JSON(http.StatusOK, validator.FieldState{Invalid: page.Password.Invalid, Message: page.Banner.Text})
	}
}
