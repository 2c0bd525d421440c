package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/kanso-habits/internal/core/domain"
	"github.com/comitanigiacomo/kanso-habits/internal/core/services"
)

// DataHandler exposes the whole state blob for backup, import and reset.
type DataHandler struct {
	store *services.StateStore
}

func NewDataHandler(store *services.StateStore) *DataHandler {
	return &DataHandler{store: store}
}

func (h *DataHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/data", h.Export)
	r.PUT("/data", h.Import)
	r.DELETE("/data", h.Reset)
}

// Export godoc
// @Summary   Download the full state blob
// @Tags      data
// @Security  BearerAuth
// @Success   200  {object}  domain.AppData
// @Router    /data [get]
func (h *DataHandler) Export(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	data, _, err := h.store.Snapshot(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, data)
}

// Import godoc
// @Summary   Replace the full state blob
// @Tags      data
// @Security  BearerAuth
// @Param     body  body      domain.AppData  true  "state"
// @Success   200   {object}  domain.AppData
// @Router    /data [put]
func (h *DataHandler) Import(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var data domain.AppData
	if err := c.ShouldBindJSON(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if data.Habits == nil {
		data.Habits = []domain.Habit{}
	}
	if data.HabitHistory == nil {
		data.HabitHistory = domain.CompletionHistory{}
	}

	if err := h.store.Replace(c.Request.Context(), userID, &data); err != nil {
		respondError(c, err)
		return
	}

	current, _, err := h.store.Snapshot(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, current)
}

// Reset godoc
// @Summary   Erase all habits and history
// @Tags      data
// @Security  BearerAuth
// @Success   204
// @Router    /data [delete]
func (h *DataHandler) Reset(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	if err := h.store.Reset(c.Request.Context(), userID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
