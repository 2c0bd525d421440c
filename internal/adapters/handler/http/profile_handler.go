package http

import (
	"net/http"

	"github.com/comitanigiacomo/kanso-habits/internal/core/domain"
	"github.com/comitanigiacomo/kanso-habits/internal/core/services"
	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	svc *services.ProfileService
}

func NewProfileHandler(svc *services.ProfileService) *ProfileHandler {
	return &ProfileHandler{
		svc: svc,
	}
}

type profileRequest struct {
	Name         string `json:"name" binding:"required"`
	DOB          string `json:"dob" binding:"required"`
	ProfileImage string `json:"profileImage"`
}

type themeRequest struct {
	Theme domain.Theme `json:"theme" binding:"required"`
}

func (h *ProfileHandler) RegisterRoutes(router *gin.RouterGroup) {
	profile := router.Group("/profile")
	{
		profile.GET("", h.Get)
		profile.PUT("", h.Update)
		profile.PUT("/theme", h.SetTheme)
	}
}

// Get godoc
// @Summary   Read the in-app profile and theme
// @Tags      profile
// @Security  BearerAuth
// @Success   200  {object}  services.Profile
// @Router    /profile [get]
func (h *ProfileHandler) Get(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	profile, err := h.svc.Get(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// Update godoc
// @Summary   Set name, date of birth and picture
// @Tags      profile
// @Security  BearerAuth
// @Param     body  body      profileRequest  true  "profile"
// @Success   200   {object}  services.Profile
// @Router    /profile [put]
func (h *ProfileHandler) Update(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var req profileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	profile, err := h.svc.Update(c.Request.Context(), services.UpdateProfileInput{
		UserID:       userID,
		Name:         req.Name,
		DOB:          req.DOB,
		ProfileImage: req.ProfileImage,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// SetTheme godoc
// @Summary   Switch between light, dark and system theme
// @Tags      profile
// @Security  BearerAuth
// @Param     body  body      themeRequest  true  "theme"
// @Success   200   {object}  services.Profile
// @Router    /profile/theme [put]
func (h *ProfileHandler) SetTheme(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var req themeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	profile, err := h.svc.SetTheme(c.Request.Context(), userID, req.Theme)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}
