package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/streampass/video-platform/internal/core/ports"
)

// CommentHandler handles threaded comments on videos.
type CommentHandler struct {
	comments ports.CommentService
}

func NewCommentHandler(comments ports.CommentService) *CommentHandler {
	return &CommentHandler{comments: comments}
}

// Add handles POST /v1/videos/:id/comments.
//
// @Summary      Comment on a video
// @Tags         comments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "Video id"
// @Param        body  body      addCommentRequest  true  "Comment"
// @Success      201   {object}  commentResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/videos/{id}/comments [post]
func (h *CommentHandler) Add(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req addCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	comment, err := h.comments.Add(c.Request().Context(), principal, ports.AddCommentInput{
		VideoID:  c.Param("id"),
		ParentID: req.ParentID,
		Content:  req.Content,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, commentResponse{
		ID:        comment.ID,
		UserID:    comment.UserID,
		Username:  comment.Username,
		Content:   comment.Content,
		CreatedAt: comment.CreatedAt,
	})
}

// List handles GET /v1/videos/:id/comments — the threaded comment tree.
//
// @Summary      List a video's comments
// @Tags         comments
// @Produce      json
// @Param        id   path      string  true  "Video id"
// @Success      200  {array}   commentResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/videos/{id}/comments [get]
func (h *CommentHandler) List(c echo.Context) error {
	threads, err := h.comments.ListThreads(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toCommentResponses(threads))
}
