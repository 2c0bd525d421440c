package http

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/kanso-habits/internal/adapters/handler/http/middleware"
	"github.com/comitanigiacomo/kanso-habits/internal/core/achievements"
	"github.com/comitanigiacomo/kanso-habits/internal/core/domain"
)

var (
	errUserContextMissing = errors.New("user context missing")
	errInvalidHabitID     = errors.New("invalid habit id")
)

// respondError maps domain errors to status codes. Anything unrecognised is
// logged and reported as a 500 without leaking the cause.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrHabitNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "habit not found"})
	case errors.Is(err, achievements.ErrUnknownAchievement):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		c.JSON(http.StatusConflict, gin.H{"error": "email already exists"})
	case errors.Is(err, domain.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
	case errors.Is(err, domain.ErrHabitNameEmpty),
		errors.Is(err, domain.ErrHabitNameTooLong),
		errors.Is(err, domain.ErrInvalidReminder),
		errors.Is(err, domain.ErrInvalidInterval),
		errors.Is(err, domain.ErrDuplicateHabitID),
		errors.Is(err, domain.ErrInvalidEmail),
		errors.Is(err, domain.ErrPasswordTooShort),
		errors.Is(err, domain.ErrDisplayNameTooLong),
		errors.Is(err, domain.ErrProfileNameEmpty),
		errors.Is(err, domain.ErrProfileNameTooLong),
		errors.Is(err, domain.ErrInvalidBirthDate),
		errors.Is(err, domain.ErrInvalidTheme),
		errors.Is(err, errInvalidHabitID):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, errUserContextMissing):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
	default:
		log.Printf("[HTTP] %s %s failed: %v", c.Request.Method, c.FullPath(), err)
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

func requireUser(c *gin.Context) (string, bool) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		respondError(c, errUserContextMissing)
	}
	return userID, ok
}

func habitIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, errInvalidHabitID)
		return 0, false
	}
	return id, true
}

// optionalHabitID reads the habit_id query filter. An absent value means all habits.
func optionalHabitID(c *gin.Context) (*int64, bool) {
	raw := c.Query("habit_id")
	if raw == "" {
		return nil, true
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		respondError(c, errInvalidHabitID)
		return nil, false
	}
	return &id, true
}
