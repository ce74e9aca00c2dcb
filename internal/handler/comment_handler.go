package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"blogspace/internal/auth"
	"blogspace/internal/errors"
	"blogspace/internal/service"
)

// CommentHandler handles comment endpoints.
type CommentHandler struct {
	commentService service.CommentService
}

// NewCommentHandler creates a new comment handler.
func NewCommentHandler(commentService service.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

// CreateCommentRequest represents a comment creation request.
type CreateCommentRequest struct {
	Content string `json:"content" validate:"required"`
}

// UpdateCommentRequest represents a partial comment update.
type UpdateCommentRequest struct {
	Content string `json:"content"`
}

// ListByPost godoc
// @Summary List a post's comments newest first
// @Tags comments
// @Produce json
// @Param postId path string true "Post ID"
// @Success 200 {array} model.Comment
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /comments/post/{postId} [get]
func (h *CommentHandler) ListByPost(c echo.Context) error {
	postID, err := parseID(c, "postId")
	if err != nil {
		return err
	}

	comments, err := h.commentService.ListByPost(c.Request().Context(), postID)
	if err != nil {
		return mapServiceError(err)
	}
	return c.JSON(http.StatusOK, comments)
}

// CreateComment godoc
// @Summary Comment on a post
// @Tags comments
// @Accept json
// @Produce json
// @Param postId path string true "Post ID"
// @Param request body CreateCommentRequest true "Comment data"
// @Success 201 {object} model.Comment
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /comments/post/{postId} [post]
func (h *CommentHandler) CreateComment(c echo.Context) error {
	postID, err := parseID(c, "postId")
	if err != nil {
		return err
	}

	var req CreateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		validationErr := errors.NewValidationError(err)
		return echo.NewHTTPError(validationErr.StatusCode, validationErr.ToErrorResponse())
	}

	comment, err := h.commentService.CreateComment(c.Request().Context(), auth.CurrentUser(c), postID, req.Content)
	if err != nil {
		return mapServiceError(err)
	}
	return c.JSON(http.StatusCreated, comment)
}

// UpdateComment godoc
// @Summary Update a comment (owner or admin only)
// @Tags comments
// @Accept json
// @Produce json
// @Param id path string true "Comment ID"
// @Param request body UpdateCommentRequest true "Fields to update"
// @Success 200 {object} model.Comment
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /comments/{id} [put]
func (h *CommentHandler) UpdateComment(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	var req UpdateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	comment, err := h.commentService.UpdateComment(c.Request().Context(), auth.CurrentUser(c), id, req.Content)
	if err != nil {
		return mapServiceError(err)
	}
	return c.JSON(http.StatusOK, comment)
}

// DeleteComment godoc
// @Summary Delete a comment (owner or admin only)
// @Tags comments
// @Produce json
// @Param id path string true "Comment ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /comments/{id} [delete]
func (h *CommentHandler) DeleteComment(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	if err := h.commentService.DeleteComment(c.Request().Context(), auth.CurrentUser(c), id); err != nil {
		return mapServiceError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{
		"message": "comment removed",
	})
}
