package handlers

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/anonto42/heritage-feed/backend/internal/errs"
	"github.com/anonto42/heritage-feed/backend/internal/models"
	"github.com/anonto42/heritage-feed/backend/internal/services"
)

// ProfileHandler handles profile HTTP requests
type ProfileHandler struct {
	profileService services.ProfileService
}

func NewProfileHandler(profileService services.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

// RegisterProfileRoutes registers profile routes
func (h *ProfileHandler) RegisterProfileRoutes(g *echo.Group) {
	g.POST("/profiles", h.CreateProfile)
	g.GET("/profiles", h.ListProfiles)
	g.GET("/profiles/search", h.SearchProfiles)
	g.GET("/profiles/:id", h.GetProfile)
	g.PUT("/profiles/:id", h.UpdateProfile)
	g.DELETE("/profiles/:id", h.DeleteProfile)
	g.POST("/profiles/:id/activate", h.setStatus(h.profileService.Activate))
	g.POST("/profiles/:id/deactivate", h.setStatus(h.profileService.Deactivate))
	g.POST("/profiles/:id/verify", h.setStatus(h.profileService.Verify))
	g.POST("/profiles/:id/deverify", h.setStatus(h.profileService.Deverify))
}

func (h *ProfileHandler) CreateProfile(c echo.Context) error {
	var req models.CreateProfileRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	profile, err := h.profileService.Create(c.Request().Context(), &req)
	if err != nil {
		return err
	}
	return success(c, http.StatusCreated, profile)
}

func (h *ProfileHandler) ListProfiles(c echo.Context) error {
	page, err := parsePage(c)
	if err != nil {
		return err
	}
	profiles, err := h.profileService.List(c.Request().Context(), page)
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, profiles)
}

// SearchProfiles matches usernames containing q, ignoring case.
func (h *ProfileHandler) SearchProfiles(c echo.Context) error {
	q := c.QueryParam("q")
	if q == "" {
		return errs.Validation("q", "q is required")
	}
	profiles, err := h.profileService.Search(c.Request().Context(), q)
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, profiles)
}

func (h *ProfileHandler) GetProfile(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	profile, err := h.profileService.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, profile)
}

func (h *ProfileHandler) UpdateProfile(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var req models.UpdateProfileRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	profile, err := h.profileService.Update(c.Request().Context(), id, &req)
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, profile)
}

func (h *ProfileHandler) DeleteProfile(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if err := h.profileService.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

type statusFunc func(ctx context.Context, id uint) (*models.Profile, error)

func (h *ProfileHandler) setStatus(fn statusFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := parseID(c, "id")
		if err != nil {
			return err
		}
		profile, err := fn(c.Request().Context(), id)
		if err != nil {
			return err
		}
		return success(c, http.StatusOK, profile)
	}
}
