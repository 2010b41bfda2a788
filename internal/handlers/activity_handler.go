package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/anonto42/heritage-feed/backend/internal/repositories"
	"github.com/anonto42/heritage-feed/backend/internal/services"
)

// ActivityHandler exposes the activity log of a profile
type ActivityHandler struct {
	activityRepository repositories.ActivityRepository
	profileService     services.ProfileService
}

func NewActivityHandler(activityRepo repositories.ActivityRepository, profileService services.ProfileService) *ActivityHandler {
	return &ActivityHandler{activityRepository: activityRepo, profileService: profileService}
}

// RegisterActivityRoutes registers activity routes
func (h *ActivityHandler) RegisterActivityRoutes(g *echo.Group) {
	g.GET("/profiles/:id/activity", h.GetActivity)
}

// GetActivity lists follows and likes received by the profile, newest first.
func (h *ActivityHandler) GetActivity(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	page, err := parsePage(c)
	if err != nil {
		return err
	}
	if _, err := h.profileService.Get(ctx, id); err != nil {
		return err
	}

	activities, err := h.activityRepository.ListByRecipient(ctx, id, int64(page.Offset), int64(page.Limit))
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, activities)
}
