package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/anonto42/heritage-feed/backend/internal/services"
)

// FollowHandler handles follow/unfollow HTTP requests
type FollowHandler struct {
	graphService services.GraphService
}

// NewFollowHandler creates a new FollowHandler
func NewFollowHandler(graphService services.GraphService) *FollowHandler {
	return &FollowHandler{graphService: graphService}
}

// RegisterFollowRoutes registers follow-related routes
func (h *FollowHandler) RegisterFollowRoutes(g *echo.Group) {
	g.GET("/profiles/:id/stats", h.GetStats)
	g.GET("/profiles/:id/followers", h.ListFollowers)
	g.GET("/profiles/:id/following", h.ListFollowing)
	g.GET("/profiles/:id/following/:target", h.IsFollowing)
	g.PUT("/profiles/:id/following/:target", h.Follow)
	g.DELETE("/profiles/:id/following/:target", h.Unfollow)
}

func (h *FollowHandler) edge(c echo.Context) (uint, uint, error) {
	followerID, err := parseID(c, "id")
	if err != nil {
		return 0, 0, err
	}
	followedID, err := parseID(c, "target")
	if err != nil {
		return 0, 0, err
	}
	return followerID, followedID, nil
}

// Follow makes :id follow :target. Repeating it is harmless.
func (h *FollowHandler) Follow(c echo.Context) error {
	followerID, followedID, err := h.edge(c)
	if err != nil {
		return err
	}
	if err := h.graphService.Follow(c.Request().Context(), followerID, followedID); err != nil {
		return err
	}
	return success(c, http.StatusOK, echo.Map{"follower_id": followerID, "followed_id": followedID, "following": true})
}

func (h *FollowHandler) Unfollow(c echo.Context) error {
	followerID, followedID, err := h.edge(c)
	if err != nil {
		return err
	}
	if err := h.graphService.Unfollow(c.Request().Context(), followerID, followedID); err != nil {
		return err
	}
	return success(c, http.StatusOK, echo.Map{"follower_id": followerID, "followed_id": followedID, "following": false})
}

func (h *FollowHandler) IsFollowing(c echo.Context) error {
	followerID, followedID, err := h.edge(c)
	if err != nil {
		return err
	}
	following, err := h.graphService.IsFollowing(c.Request().Context(), followerID, followedID)
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, echo.Map{"follower_id": followerID, "followed_id": followedID, "following": following})
}

func (h *FollowHandler) ListFollowers(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	page, err := parsePage(c)
	if err != nil {
		return err
	}
	profiles, err := h.graphService.Followers(c.Request().Context(), id, page)
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, profiles)
}

func (h *FollowHandler) ListFollowing(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	page, err := parsePage(c)
	if err != nil {
		return err
	}
	profiles, err := h.graphService.Following(c.Request().Context(), id, page)
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, profiles)
}

func (h *FollowHandler) GetStats(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	stats, err := h.graphService.Stats(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, stats)
}
