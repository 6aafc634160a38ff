package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/davidegradoni/ritmo-api/internal/adapters/handler/http/middleware"
	"github.com/davidegradoni/ritmo-api/internal/core/services"
)

type HabitHandler struct {
	svc *services.HabitService
}

func NewHabitHandler(svc *services.HabitService) *HabitHandler {
	return &HabitHandler{
		svc: svc,
	}
}

type createHabitRequest struct {
	Name         string  `json:"name" binding:"required"`
	OrderIndex   int     `json:"order_index"`
	WeeklyTarget int     `json:"weekly_target" binding:"required,min=1"`
	RequiresText bool    `json:"requires_text_on_completion"`
	LinkedGoalID *string `json:"linked_goal_id"`
	Description  *string `json:"description"`
}

type updateHabitRequest struct {
	Name         string  `json:"name" binding:"required"`
	OrderIndex   int     `json:"order_index"`
	WeeklyTarget int     `json:"weekly_target" binding:"required,min=1"`
	RequiresText bool    `json:"requires_text_on_completion"`
	LinkedGoalID *string `json:"linked_goal_id"`
	Description  *string `json:"description"`
}

func (h *HabitHandler) RegisterRoutes(router *gin.RouterGroup) {
	habits := router.Group("/habits")
	{
		habits.POST("", h.Create)
		habits.GET("", h.List)
		habits.PUT("/:id", h.Update)
		habits.DELETE("/:id", h.Delete)
	}
}

func (h *HabitHandler) Create(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	var req createHabitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	input := services.CreateHabitInput{
		UserID:       userID,
		Name:         req.Name,
		OrderIndex:   req.OrderIndex,
		WeeklyTarget: req.WeeklyTarget,
		RequiresText: req.RequiresText,
		LinkedGoalID: req.LinkedGoalID,
		Description:  req.Description,
	}

	habit, err := h.svc.Create(c.Request.Context(), input)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, habit)
}

func (h *HabitHandler) List(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	list, err := h.svc.ListByUserID(c.Request.Context(), userID)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, list)
}

func (h *HabitHandler) Update(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	var req updateHabitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	input := services.UpdateHabitInput{
		ID:           c.Param("id"),
		UserID:       userID,
		Name:         req.Name,
		OrderIndex:   req.OrderIndex,
		WeeklyTarget: req.WeeklyTarget,
		RequiresText: req.RequiresText,
		LinkedGoalID: req.LinkedGoalID,
		Description:  req.Description,
	}

	if err := h.svc.Update(c.Request.Context(), input); err != nil {
		handleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *HabitHandler) Delete(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	if err := h.svc.Delete(c.Request.Context(), c.Param("id"), userID); err != nil {
		handleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
