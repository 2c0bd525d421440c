package http

import (
	"net/http"
	"time"

	"github.com/comitanigiacomo/kanso-habits/internal/core/domain"
	"github.com/comitanigiacomo/kanso-habits/internal/core/services"
	"github.com/gin-gonic/gin"
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
	Name string `json:"name" binding:"required"`
	Icon string `json:"icon"`
}

type renameHabitRequest struct {
	Name string `json:"name" binding:"required"`
	Icon string `json:"icon"`
}

// notificationRequest with enabled=false clears the reminder.
type notificationRequest struct {
	Enabled         bool   `json:"enabled"`
	ReminderTime    string `json:"reminderTime"`
	Recurring       bool   `json:"recurring"`
	IntervalMinutes int    `json:"intervalMinutes"`
}

type remindersResponse struct {
	HabitID  int64       `json:"habitId"`
	Triggers []time.Time `json:"triggers"`
}

func (h *HabitHandler) RegisterRoutes(router *gin.RouterGroup) {
	habits := router.Group("/habits")
	{
		habits.POST("", h.Create)
		habits.GET("", h.List)
		habits.GET("/:id", h.Get)
		habits.PUT("/:id", h.Rename)
		habits.DELETE("/:id", h.Delete)
		habits.POST("/:id/toggle", h.Toggle)
		habits.PUT("/:id/notification", h.ConfigureNotification)
		habits.GET("/:id/reminders", h.Reminders)
	}
}

// Create godoc
// @Summary   Add a habit
// @Tags      habits
// @Security  BearerAuth
// @Param     body  body      createHabitRequest  true  "habit"
// @Success   201   {object}  domain.Habit
// @Router    /habits [post]
func (h *HabitHandler) Create(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var req createHabitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	habit, err := h.svc.Add(c.Request.Context(), services.AddHabitInput{
		UserID: userID,
		Name:   req.Name,
		Icon:   req.Icon,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, habit)
}

// List godoc
// @Summary   List habits in creation order
// @Tags      habits
// @Security  BearerAuth
// @Success   200  {array}  domain.Habit
// @Router    /habits [get]
func (h *HabitHandler) List(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	habits, err := h.svc.List(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, habits)
}

func (h *HabitHandler) Get(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := habitIDParam(c)
	if !ok {
		return
	}

	habit, err := h.svc.Get(c.Request.Context(), userID, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, habit)
}

func (h *HabitHandler) Rename(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := habitIDParam(c)
	if !ok {
		return
	}

	var req renameHabitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	habit, err := h.svc.Rename(c.Request.Context(), services.RenameHabitInput{
		UserID:  userID,
		HabitID: id,
		Name:    req.Name,
		Icon:    req.Icon,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, habit)
}

// Delete godoc
// @Summary   Remove a habit; its completion history is kept
// @Tags      habits
// @Security  BearerAuth
// @Param     id  path  int  true  "habit id"
// @Success   204
// @Router    /habits/{id} [delete]
func (h *HabitHandler) Delete(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := habitIDParam(c)
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), userID, id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Toggle godoc
// @Summary   Flip today's completion of a habit
// @Tags      habits
// @Security  BearerAuth
// @Param     id  path      int  true  "habit id"
// @Success   200 {object}  domain.Habit
// @Router    /habits/{id}/toggle [post]
func (h *HabitHandler) Toggle(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := habitIDParam(c)
	if !ok {
		return
	}

	habit, err := h.svc.Toggle(c.Request.Context(), userID, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, habit)
}

func (h *HabitHandler) ConfigureNotification(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := habitIDParam(c)
	if !ok {
		return
	}

	var req notificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var settings *domain.NotificationSettings
	if req.Enabled {
		settings = &domain.NotificationSettings{
			Enabled:         true,
			ReminderTime:    req.ReminderTime,
			Recurring:       req.Recurring,
			IntervalMinutes: req.IntervalMinutes,
		}
	}

	habit, err := h.svc.ConfigureNotification(c.Request.Context(), userID, id, settings)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, habit)
}

func (h *HabitHandler) Reminders(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := habitIDParam(c)
	if !ok {
		return
	}

	triggers, err := h.svc.Reminders(c.Request.Context(), userID, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, remindersResponse{HabitID: id, Triggers: triggers})
}
