package api

import (
	"net/http" // HTTP status codes

	"money_tracker/internal/domain"     // Importing domain models
	"money_tracker/internal/middleware" // Signed-in account
	"money_tracker/internal/view"       // List total

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// CreateEntryRequest is the JSON body of POST /api/users
type CreateEntryRequest struct {
	Name     string          `json:"name"`     // Person name
	AllMoney domain.AllMoney `json:"allMoney"` // String or number, kept as sent
	Email    string          `json:"email"`    // Contact email
}

// MeHandler returns the signed-in account
func MeHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		account, ok := middleware.CurrentAccount(c) // Set by SessionAuthMiddleware
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"uid": account.UID, "email": account.Email})
	}
}

// ListEntriesHandler returns the tracker list with the total of numeric amounts
func ListEntriesHandler(d *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		records, err := d.Users.ListAll(c.Request.Context()) // Cached snapshot when a cache is configured
		if err != nil {
			d.Log.WithField("error", err.Error()).Error("Listing entries failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch entries"})
			return
		}
		if records == nil {
			records = []domain.TrackerRecord{} // Render an empty list as []
		}
		c.JSON(http.StatusOK, gin.H{
			"users": records,                           // Entries in insertion order
			"count": len(records),                      // Number of entries
			"total": view.SumAmounts(records).String(), // Sum of numeric amounts
		})
	}
}

// CreateEntryHandler adds one entry from a JSON body
func CreateEntryHandler(d *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateEntryRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		id, err := d.Users.Add(c.Request.Context(), domain.TrackerRecord{
			Name:     req.Name,
			AllMoney: req.AllMoney,
			Email:    req.Email,
		})
		if err != nil {
			d.Log.WithField("error", err.Error()).Error("Saving entry failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save entry"})
			return
		}
		d.Log.WithFields(logrus.Fields{"id": id}).Info("Entry added")
		c.JSON(http.StatusCreated, gin.H{"id": id})
	}
}

// DeleteEntryHandler deletes one entry; unknown ids succeed
func DeleteEntryHandler(d *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		if err := d.Users.Delete(c.Request.Context(), id); err != nil {
			d.Log.WithFields(logrus.Fields{"id": id, "error": err.Error()}).Error("Deleting entry failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete entry"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Entry deleted"})
	}
}
