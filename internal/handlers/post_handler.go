package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/anonto42/heritage-feed/backend/internal/errs"
	"github.com/anonto42/heritage-feed/backend/internal/models"
	"github.com/anonto42/heritage-feed/backend/internal/services"
)

// PostHandler handles post HTTP requests
type PostHandler struct {
	contentService services.ContentService
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(contentService services.ContentService) *PostHandler {
	return &PostHandler{contentService: contentService}
}

// RegisterPostRoutes registers post routes
func (h *PostHandler) RegisterPostRoutes(g *echo.Group) {
	g.POST("/posts", h.CreatePost)
	g.GET("/posts", h.SearchPosts)
	g.GET("/posts/:id", h.GetPost)
	g.PUT("/posts/:id", h.UpdatePost)
	g.DELETE("/posts/:id", h.DeletePost)
}

func (h *PostHandler) CreatePost(c echo.Context) error {
	var req models.CreatePostRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	post, err := h.contentService.CreatePost(c.Request().Context(), &req)
	if err != nil {
		return err
	}
	return success(c, http.StatusCreated, post)
}

// SearchPosts filters by exact name, type, category, location and licensing.
// order=timestamp sorts newest first.
func (h *PostHandler) SearchPosts(c echo.Context) error {
	filter := models.PostFilter{
		PostName:      c.QueryParam("name"),
		PostType:      models.MediaType(c.QueryParam("type")),
		PostCategory:  models.Category(c.QueryParam("category")),
		PostLocation:  c.QueryParam("location"),
		PostLicensing: models.Licensing(c.QueryParam("licensing")),
	}
	switch c.QueryParam("order") {
	case "":
	case "timestamp":
		filter.OrderByTimestamp = true
	default:
		return errs.Validation("order", "order must be timestamp")
	}

	posts, err := h.contentService.SearchPosts(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, posts)
}

func (h *PostHandler) GetPost(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	post, err := h.contentService.GetPost(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, post)
}

func (h *PostHandler) UpdatePost(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var req models.UpdatePostRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	post, err := h.contentService.UpdatePost(c.Request().Context(), id, &req)
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, post)
}

func (h *PostHandler) DeletePost(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if err := h.contentService.DeletePost(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
