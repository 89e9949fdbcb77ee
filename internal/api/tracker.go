package api

import (
	"money_tracker/internal/view" // Page and controller

	"github.com/gin-gonic/gin" // Gin web framework
)

// HomePageHandler renders the tracker list for a signed-in user
func HomePageHandler(d *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		s := d.open(c, view.HomePath)
		defer s.unbind()
		// Signed-out visitors are sent to the entry page by the observer
		if !s.redirected() {
			s.ctrl.LoadList(c.Request.Context(), s.page)
		}
		render(c, s.page, homeTemplate)
	}
}

// AddUserHandler adds one entry from the posted add form
func AddUserHandler(d *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		s := d.open(c, view.HomePath)
		defer s.unbind()
		if s.redirected() {
			render(c, s.page, homeTemplate) // Not signed in
			return
		}
		var form view.AddForm // Raw field values, no validation
		if err := c.ShouldBind(&form); err != nil {
			// Whatever was parsed is still stored, like an empty form
			d.Log.WithField("error", err.Error()).Debug("Add form bind failed")
		}
		s.ctrl.AddUser(c.Request.Context(), s.page, form)
		finishListChange(c, s)
	}
}

// DeleteUserHandler deletes the entry the row's delete control points at
func DeleteUserHandler(d *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		s := d.open(c, view.HomePath)
		defer s.unbind()
		if s.redirected() {
			render(c, s.page, homeTemplate) // Not signed in
			return
		}
		s.ctrl.DeleteRow(c.Request.Context(), s.page, c.Param("id"))
		finishListChange(c, s)
	}
}

// finishListChange redirects home after a successful change, or re-renders
// the list with the error banner
func finishListChange(c *gin.Context, s *session) {
	if !s.page.Banner.Visible {
		s.page.Navigate(view.HomePath)
	} else {
		s.ctrl.LoadList(c.Request.Context(), s.page)
	}
	render(c, s.page, homeTemplate)
}
