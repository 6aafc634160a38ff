package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/davidegradoni/ritmo-api/internal/adapters/handler/http/middleware"
	"github.com/davidegradoni/ritmo-api/internal/core/services"
)

type CompletionHandler struct {
	svc *services.CompletionService
}

func NewCompletionHandler(svc *services.CompletionService) *CompletionHandler {
	return &CompletionHandler{
		svc: svc,
	}
}

type createCompletionRequest struct {
	HabitID             string  `json:"habit_id" binding:"required"`
	Date                string  `json:"date" binding:"required"`
	Text                *string `json:"text"`
	ClientTimezone      string  `json:"client_timezone"`
	ClientOffsetMinutes *int    `json:"client_tz_offset_minutes"`
}

func (h *CompletionHandler) RegisterRoutes(router *gin.RouterGroup) {
	completions := router.Group("/completions")
	{
		completions.POST("", h.Create)
		completions.GET("", h.ListRange)
		completions.DELETE("/:id", h.Delete)
	}

	router.GET("/habits/:id/completions", h.ListByHabit)
}

func (h *CompletionHandler) Create(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	var req createCompletionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	input := services.CreateCompletionInput{
		HabitID:             req.HabitID,
		UserID:              userID,
		Date:                req.Date,
		Text:                req.Text,
		ClientTimezone:      req.ClientTimezone,
		ClientOffsetMinutes: req.ClientOffsetMinutes,
	}

	completion, err := h.svc.Create(c.Request.Context(), input)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, completion)
}

// Delete reads the client's timezone from query parameters since DELETE
// requests carry no body.
func (h *CompletionHandler) Delete(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	tz := c.Query("client_timezone")
	offset := parseOffsetParam(c)

	if err := h.svc.Delete(c.Request.Context(), c.Param("id"), userID, tz, offset); err != nil {
		handleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *CompletionHandler) ListRange(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	completions, err := h.svc.ListRange(c.Request.Context(), userID, c.Query("from"), c.Query("to"))
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, completions)
}

func (h *CompletionHandler) ListByHabit(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	completions, err := h.svc.ListByHabit(c.Request.Context(), c.Param("id"), userID, limit, offset)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, completions)
}

func parseOffsetParam(c *gin.Context) *int {
	raw := c.Query("client_tz_offset_minutes")
	if raw == "" {
		return nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &v
}
