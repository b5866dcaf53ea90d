package handlers

import (
	"net/http"

	"mentora/models"
	"mentora/utils"

	"github.com/gin-gonic/gin"
)

// respondError maps the service error taxonomy onto HTTP statuses.
func respondError(c *gin.Context, err error) {
	switch utils.ErrorCode(err) {
	case utils.CodeConflict, utils.CodeOverlap, utils.CodeInvalidTransition:
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case utils.CodeNotFound:
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case utils.CodeForbidden:
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case utils.CodeSignatureMismatch:
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case utils.CodeWindowClosed:
		c.JSON(http.StatusGone, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

// currentActor reads the identity the auth middleware stored on the context.
func currentActor(c *gin.Context) models.Actor {
	return models.Actor{
		ID:   c.GetString("actorID"),
		Role: c.GetString("actorRole"),
	}
}
