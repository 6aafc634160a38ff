package http

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/davidegradoni/ritmo-api/internal/core/domain"
)

type errorResponse struct {
	ErrorCode string `json:"error_code"`
	Message   string `json:"message"`
}

// handleError translates domain errors into stable wire errors. Anything
// outside the domain set is a storage or programming fault and surfaces as an
// opaque 500.
func handleError(c *gin.Context, err error) {
	var domainErr *domain.DomainError
	if !errors.As(err, &domainErr) {
		log.Printf("Unhandled error on %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	status := http.StatusBadRequest
	switch domainErr {
	case domain.ErrHabitNotFound, domain.ErrCompletionNotFound, domain.ErrGoalNotFound:
		status = http.StatusNotFound
	case domain.ErrWeeklyTargetAlreadyMet:
		status = http.StatusConflict
	}

	c.JSON(status, errorResponse{
		ErrorCode: domainErr.Code,
		Message:   domainErr.Message,
	})
}
