package handlers

import (
	"net/http"

	"github.com/MoamenFouad/UniQuest/internal/models"

	"github.com/gin-gonic/gin"
)

type ErrorResponse struct {
	Error string `json:"error" example:"something went wrong"`
}

type MessageResponse struct {
	Message string `json:"message" example:"operation successful"`
}

// Type aliases so swag can resolve models in annotations.
type Room = models.Room
type Task = models.Task
type Submission = models.Submission

// respondError maps a domain error kind to its HTTP status. Non-domain
// errors fall back to 400.
func respondError(c *gin.Context, err error) {
	status := http.StatusBadRequest
	switch models.KindOf(err) {
	case models.KindValidation:
		status = http.StatusBadRequest
	case models.KindPermissionDenied, models.KindForbidden:
		status = http.StatusForbidden
	case models.KindNotFound:
		status = http.StatusNotFound
	case models.KindConflict:
		status = http.StatusConflict
	case models.KindInvalidState:
		status = http.StatusUnprocessableEntity
	}
	c.JSON(status, ErrorResponse{Error: err.Error()})
}
