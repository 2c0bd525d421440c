package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/kanso-habits/internal/core/services"
	"github.com/comitanigiacomo/kanso-habits/internal/core/stats"
)

// maxMonthOffset bounds how far the calendar may be paged.
const maxMonthOffset = 120

type StatsHandler struct {
	svc *services.StatsService
}

func NewStatsHandler(svc *services.StatsService) *StatsHandler {
	return &StatsHandler{svc: svc}
}

func (h *StatsHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/stats", h.GetOverview)
	r.GET("/stats/weekly", h.GetWeeklyStats)
	r.GET("/stats/monthly", h.GetMonthlyCalendar)
	r.GET("/achievements", h.GetAchievements)
	r.GET("/achievements/:id", h.GetAchievement)
}

// GetOverview godoc
// @Summary   Derived statistics, optionally for one habit
// @Tags      stats
// @Security  BearerAuth
// @Param     habit_id  query     int  false  "restrict to one habit"
// @Success   200       {object}  domain.DerivedStatistics
// @Router    /stats [get]
func (h *StatsHandler) GetOverview(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	habitID, ok := optionalHabitID(c)
	if !ok {
		return
	}

	overview, err := h.svc.Overview(c.Request.Context(), userID, habitID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, overview)
}

// GetWeeklyStats godoc
// @Summary   Seven days of completion progress
// @Tags      stats
// @Security  BearerAuth
// @Param     mode      query  string  false  "rolling (default) or week"
// @Param     habit_id  query  int     false  "restrict to one habit"
// @Success   200       {array}  domain.DayProgress
// @Router    /stats/weekly [get]
func (h *StatsHandler) GetWeeklyStats(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	habitID, ok := optionalHabitID(c)
	if !ok {
		return
	}

	mode, valid := stats.ParseWeekMode(c.Query("mode"))
	if !valid {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid mode, expected rolling or week"})
		return
	}

	series, err := h.svc.Weekly(c.Request.Context(), userID, habitID, mode)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, series)
}

// GetMonthlyCalendar godoc
// @Summary   Month calendar grid
// @Tags      stats
// @Security  BearerAuth
// @Param     offset    query  int  false  "months relative to the current one"
// @Param     habit_id  query  int  false  "restrict to one habit"
// @Success   200       {object}  domain.MonthCalendar
// @Router    /stats/monthly [get]
func (h *StatsHandler) GetMonthlyCalendar(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	habitID, ok := optionalHabitID(c)
	if !ok {
		return
	}

	offset := 0
	if raw := c.Query("offset"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < -maxMonthOffset || parsed > maxMonthOffset {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid offset"})
			return
		}
		offset = parsed
	}

	calendar, err := h.svc.Month(c.Request.Context(), userID, habitID, offset)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, calendar)
}

// GetAchievements godoc
// @Summary   Unlocked and locked achievements
// @Tags      stats
// @Security  BearerAuth
// @Success   200  {object}  achievements.Evaluation
// @Router    /achievements [get]
func (h *StatsHandler) GetAchievements(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	evaluation, err := h.svc.Achievements(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, evaluation)
}

// GetAchievement godoc
// @Summary   One achievement with its current value and progress
// @Tags      stats
// @Security  BearerAuth
// @Param     id   path      string  true  "achievement id"
// @Success   200  {object}  achievements.Status
// @Failure   404  {object}  map[string]string
// @Router    /achievements/{id} [get]
func (h *StatsHandler) GetAchievement(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	status, err := h.svc.Achievement(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, status)
}
