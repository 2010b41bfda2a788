package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/anonto42/heritage-feed/backend/internal/services"
)

// FeedHandler serves timelines
type FeedHandler struct {
	timelineService services.TimelineService
}

func NewFeedHandler(timelineService services.TimelineService) *FeedHandler {
	return &FeedHandler{timelineService: timelineService}
}

// RegisterFeedRoutes registers feed routes
func (h *FeedHandler) RegisterFeedRoutes(g *echo.Group) {
	g.GET("/profiles/:id/timeline", h.GetTimeline)
	g.GET("/profiles/:id/posts", h.GetProfilePosts)
}

// GetTimeline returns the profile's posts and those of the profiles it
// follows, newest first.
func (h *FeedHandler) GetTimeline(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	page, err := parsePage(c)
	if err != nil {
		return err
	}
	posts, err := h.timelineService.Timeline(c.Request().Context(), id, page)
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, posts)
}

func (h *FeedHandler) GetProfilePosts(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	page, err := parsePage(c)
	if err != nil {
		return err
	}
	posts, err := h.timelineService.MyPosts(c.Request().Context(), id, page)
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, posts)
}
