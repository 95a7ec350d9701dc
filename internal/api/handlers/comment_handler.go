package handlers

import (
	"video_sharing_service/internal/video/app"
	"video_sharing_service/pkg/middlewares"

	"github.com/gofiber/fiber/v2"
)

// CommentHandler handles comment routes nested under videos
type CommentHandler struct {
	Comments app.CommentUseCase
}

// NewCommentHandler create a new CommentHandler
func NewCommentHandler(comments app.CommentUseCase) *CommentHandler {
	return &CommentHandler{Comments: comments}
}

// Add comment on a video
// @Summary Add a comment
// @Tags Comments
// @Accept json
// @Produce json
// @Success 201 {object} domain.CommentView "created comment"
// @Failure 404 {object} string "video not found"
// @Router /api/videos/{videoId}/comments [post]
func (h *CommentHandler) Add(c *fiber.Ctx) error {
	actorID, ok := c.Locals(middlewares.TokenUserID).(string)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "missing token"})
	}

	type request struct {
		Text string `json:"text"`
	}
	var req request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request"})
	}

	comment, err := h.Comments.Add(c.Context(), actorID, c.Params("videoId"), req.Text)
	if err != nil {
		return errJSON(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"comment": comment})
}

// List the comment thread of a video
// @Summary List comments
// @Tags Comments
// @Produce json
// @Success 200 {array} domain.CommentView "comments, newest first"
// @Failure 404 {object} string "video not found"
// @Router /api/videos/{videoId}/comments [get]
func (h *CommentHandler) List(c *fiber.Ctx) error {
	comments, err := h.Comments.ListByVideo(c.Context(), c.Params("videoId"))
	if err != nil {
		return errJSON(c, err)
	}
	return c.JSON(fiber.Map{"comments": comments})
}

// Edit rewrite a comment, author only
// @Summary Edit a comment
// @Tags Comments
// @Accept json
// @Produce json
// @Success 200 {object} domain.Comment "updated comment"
// @Failure 403 {object} string "not the comment author"
// @Router /api/videos/{videoId}/comments/{commentId} [put]
func (h *CommentHandler) Edit(c *fiber.Ctx) error {
	actorID, ok := c.Locals(middlewares.TokenUserID).(string)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "missing token"})
	}

	type request struct {
		Text string `json:"text"`
	}
	var req request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request"})
	}

	comment, err := h.Comments.Edit(c.Context(), actorID, c.Params("commentId"), req.Text)
	if err != nil {
		return errJSON(c, err)
	}
	return c.JSON(fiber.Map{"comment": comment})
}

// Delete remove a comment, author only
// @Summary Delete a comment
// @Tags Comments
// @Produce json
// @Success 200 {object} string "comment deleted"
// @Failure 403 {object} string "not the comment author"
// @Router /api/videos/{videoId}/comments/{commentId} [delete]
func (h *CommentHandler) Delete(c *fiber.Ctx) error {
	actorID, ok := c.Locals(middlewares.TokenUserID).(string)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "missing token"})
	}

	if err := h.Comments.Delete(c.Context(), actorID, c.Params("commentId")); err != nil {
		return errJSON(c, err)
	}
	return c.JSON(fiber.Map{"message": "comment deleted"})
}
