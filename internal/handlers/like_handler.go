package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/anonto42/heritage-feed/backend/internal/services"
)

// LikeHandler handles like HTTP requests
type LikeHandler struct {
	engagementService services.EngagementService
}

// NewLikeHandler creates a new LikeHandler
func NewLikeHandler(engagementService services.EngagementService) *LikeHandler {
	return &LikeHandler{engagementService: engagementService}
}

// RegisterLikeRoutes registers like routes
func (h *LikeHandler) RegisterLikeRoutes(g *echo.Group) {
	g.GET("/posts/:id/likes", h.GetLikesForPost)
	g.GET("/posts/:id/likes/:profile_id", h.GetLikeStatus)
	g.PUT("/posts/:id/likes/:profile_id", h.LikePost)
	g.DELETE("/posts/:id/likes/:profile_id", h.UnlikePost)
	g.GET("/likes/:id", h.GetLike)
	g.DELETE("/likes/:id", h.DeleteLike)
}

func (h *LikeHandler) pair(c echo.Context) (uint, uint, error) {
	postID, err := parseID(c, "id")
	if err != nil {
		return 0, 0, err
	}
	profileID, err := parseID(c, "profile_id")
	if err != nil {
		return 0, 0, err
	}
	return postID, profileID, nil
}

// LikePost records a like of :profile_id on :id. Liking twice keeps one like.
func (h *LikeHandler) LikePost(c echo.Context) error {
	postID, profileID, err := h.pair(c)
	if err != nil {
		return err
	}
	if err := h.engagementService.Like(c.Request().Context(), profileID, postID); err != nil {
		return err
	}
	return success(c, http.StatusOK, echo.Map{"post_id": postID, "profile_id": profileID, "liked": true})
}

func (h *LikeHandler) UnlikePost(c echo.Context) error {
	postID, profileID, err := h.pair(c)
	if err != nil {
		return err
	}
	if err := h.engagementService.Unlike(c.Request().Context(), profileID, postID); err != nil {
		return err
	}
	return success(c, http.StatusOK, echo.Map{"post_id": postID, "profile_id": profileID, "liked": false})
}

func (h *LikeHandler) GetLikeStatus(c echo.Context) error {
	postID, profileID, err := h.pair(c)
	if err != nil {
		return err
	}
	liked, err := h.engagementService.HasLiked(c.Request().Context(), profileID, postID)
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, echo.Map{"post_id": postID, "profile_id": profileID, "liked": liked})
}

func (h *LikeHandler) GetLikesForPost(c echo.Context) error {
	ctx := c.Request().Context()
	postID, err := parseID(c, "id")
	if err != nil {
		return err
	}
	likes, err := h.engagementService.LikesByPost(ctx, postID)
	if err != nil {
		return err
	}
	count, err := h.engagementService.LikesCount(ctx, postID)
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, echo.Map{"post_id": postID, "likes_count": count, "likes": likes})
}

func (h *LikeHandler) GetLike(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	like, err := h.engagementService.GetLike(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, like)
}

func (h *LikeHandler) DeleteLike(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if err := h.engagementService.DeleteLike(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
