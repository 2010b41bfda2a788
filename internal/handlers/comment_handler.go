package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/anonto42/heritage-feed/backend/internal/models"
	"github.com/anonto42/heritage-feed/backend/internal/services"
)

// CommentHandler handles comment HTTP requests
type CommentHandler struct {
	contentService services.ContentService
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(contentService services.ContentService) *CommentHandler {
	return &CommentHandler{contentService: contentService}
}

// RegisterCommentRoutes registers comment routes
func (h *CommentHandler) RegisterCommentRoutes(g *echo.Group) {
	g.POST("/posts/:id/comments", h.CreateComment)
	g.GET("/posts/:id/comments", h.GetCommentsForPost)
	g.GET("/comments/:id", h.GetComment)
	g.PUT("/comments/:id", h.UpdateComment)
	g.DELETE("/comments/:id", h.DeleteComment)
}

func (h *CommentHandler) CreateComment(c echo.Context) error {
	postID, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var req models.CreateCommentRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	comment, err := h.contentService.AddComment(c.Request().Context(), postID, &req)
	if err != nil {
		return err
	}
	return success(c, http.StatusCreated, comment)
}

// GetCommentsForPost returns a post's comments, oldest first.
func (h *CommentHandler) GetCommentsForPost(c echo.Context) error {
	postID, err := parseID(c, "id")
	if err != nil {
		return err
	}
	comments, err := h.contentService.ListComments(c.Request().Context(), postID)
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, comments)
}

func (h *CommentHandler) GetComment(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	comment, err := h.contentService.GetComment(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, comment)
}

func (h *CommentHandler) UpdateComment(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var req models.UpdateCommentRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	comment, err := h.contentService.UpdateComment(c.Request().Context(), id, &req)
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, comment)
}

func (h *CommentHandler) DeleteComment(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if err := h.contentService.DeleteComment(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
