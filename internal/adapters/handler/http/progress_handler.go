package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/davidegradoni/ritmo-api/internal/adapters/handler/http/middleware"
	"github.com/davidegradoni/ritmo-api/internal/core/domain"
	"github.com/davidegradoni/ritmo-api/internal/core/services"
)

type ProgressHandler struct {
	svc *services.ProgressService
}

func NewProgressHandler(svc *services.ProgressService) *ProgressHandler {
	return &ProgressHandler{
		svc: svc,
	}
}

func (h *ProgressHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/progress", h.GetWeekly)
}

// GetWeekly reports quota progress for the week containing ?date, defaulting
// to the current UTC day.
func (h *ProgressHandler) GetWeekly(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	day := domain.DateOf(time.Now().UTC())
	if raw := c.Query("date"); raw != "" {
		parsed, err := domain.ParseDate(raw)
		if err != nil {
			handleError(c, err)
			return
		}
		day = parsed
	}

	progress, err := h.svc.GetWeeklyProgress(c.Request.Context(), userID, day)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, progress)
}
