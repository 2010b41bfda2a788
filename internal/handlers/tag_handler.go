package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/anonto42/heritage-feed/backend/internal/models"
	"github.com/anonto42/heritage-feed/backend/internal/services"
)

// TagHandler handles tags and their attachment to posts
type TagHandler struct {
	contentService services.ContentService
}

func NewTagHandler(contentService services.ContentService) *TagHandler {
	return &TagHandler{contentService: contentService}
}

// RegisterTagRoutes registers tag routes
func (h *TagHandler) RegisterTagRoutes(g *echo.Group) {
	g.POST("/tags", h.CreateTag)
	g.GET("/tags", h.ListTags)
	g.GET("/tags/:id", h.GetTag)
	g.PUT("/tags/:id", h.UpdateTag)
	g.DELETE("/tags/:id", h.DeleteTag)
	g.GET("/posts/:id/tags/:tag_id", h.HasTag)
	g.PUT("/posts/:id/tags/:tag_id", h.AddTag)
	g.DELETE("/posts/:id/tags/:tag_id", h.RemoveTag)
}

func (h *TagHandler) CreateTag(c echo.Context) error {
	var req models.TagRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	tag, err := h.contentService.CreateTag(c.Request().Context(), &req)
	if err != nil {
		return err
	}
	return success(c, http.StatusCreated, tag)
}

func (h *TagHandler) ListTags(c echo.Context) error {
	tags, err := h.contentService.ListTags(c.Request().Context())
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, tags)
}

func (h *TagHandler) GetTag(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	tag, err := h.contentService.GetTag(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, tag)
}

func (h *TagHandler) UpdateTag(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var req models.TagRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	tag, err := h.contentService.UpdateTag(c.Request().Context(), id, &req)
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, tag)
}

func (h *TagHandler) DeleteTag(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if err := h.contentService.DeleteTag(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *TagHandler) pair(c echo.Context) (uint, uint, error) {
	postID, err := parseID(c, "id")
	if err != nil {
		return 0, 0, err
	}
	tagID, err := parseID(c, "tag_id")
	if err != nil {
		return 0, 0, err
	}
	return postID, tagID, nil
}

func (h *TagHandler) AddTag(c echo.Context) error {
	postID, tagID, err := h.pair(c)
	if err != nil {
		return err
	}
	if err := h.contentService.AddTag(c.Request().Context(), postID, tagID); err != nil {
		return err
	}
	return success(c, http.StatusOK, echo.Map{"post_id": postID, "tag_id": tagID, "tagged": true})
}

func (h *TagHandler) RemoveTag(c echo.Context) error {
	postID, tagID, err := h.pair(c)
	if err != nil {
		return err
	}
	if err := h.contentService.RemoveTag(c.Request().Context(), postID, tagID); err != nil {
		return err
	}
	return success(c, http.StatusOK, echo.Map{"post_id": postID, "tag_id": tagID, "tagged": false})
}

func (h *TagHandler) HasTag(c echo.Context) error {
	postID, tagID, err := h.pair(c)
	if err != nil {
		return err
	}
	tagged, err := h.contentService.HasTag(c.Request().Context(), postID, tagID)
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, echo.Map{"post_id": postID, "tag_id": tagID, "tagged": tagged})
}
