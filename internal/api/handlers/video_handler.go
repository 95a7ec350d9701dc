package handlers

import (
	"video_sharing_service/internal/video/app"
	"video_sharing_service/internal/video/domain"
	"video_sharing_service/pkg/middlewares"

	"github.com/gofiber/fiber/v2"
)

// VideoHandler handles video routes
type VideoHandler struct {
	Videos app.VideoUseCase
}

// NewVideoHandler create a new VideoHandler
func NewVideoHandler(videos app.VideoUseCase) *VideoHandler {
	return &VideoHandler{Videos: videos}
}

// Upload publish a new video
// @Summary Upload a video
// @Description Multipart video and thumbnail; the caller must own a channel
// @Tags Videos
// @Accept mpfd
// @Produce json
// @Success 201 {object} domain.Video "created video"
// @Failure 400 {object} string "missing files or no channel"
// @Router /api/videos/upload [post]
func (h *VideoHandler) Upload(c *fiber.Ctx) error {
	actorID, ok := c.Locals(middlewares.TokenUserID).(string)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "missing token"})
	}

	videoFile, err := formFile(c, "video")
	if err != nil {
		return errJSON(c, err)
	}
	thumbFile, err := formFile(c, "thumbnail")
	if err != nil {
		return errJSON(c, err)
	}

	req := domain.UploadVideoReq{
		Title:       c.FormValue("title"),
		Description: c.FormValue("description"),
		Category:    c.FormValue("category"),
		Video:       videoFile,
		Thumbnail:   thumbFile,
	}

	video, err := h.Videos.Upload(c.Context(), actorID, &req)
	if err != nil {
		return errJSON(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"video": video})
}

// List all videos, newest first
// @Summary List videos
// @Tags Videos
// @Produce json
// @Success 200 {array} domain.VideoView "videos"
// @Router /api/videos [get]
func (h *VideoHandler) List(c *fiber.Ctx) error {
	videos, err := h.Videos.List(c.Context())
	if err != nil {
		return errJSON(c, err)
	}
	return c.JSON(fiber.Map{"videos": videos})
}

// Search keyword search over title and description
// @Summary Search videos
// @Tags Videos
// @Param q query string true "keyword"
// @Produce json
// @Success 200 {array} domain.VideoView "matching videos"
// @Failure 400 {object} string "missing keyword"
// @Router /api/videos/search [get]
func (h *VideoHandler) Search(c *fiber.Ctx) error {
	videos, err := h.Videos.Search(c.Context(), c.Query("q"))
	if err != nil {
		return errJSON(c, err)
	}
	return c.JSON(fiber.Map{"videos": videos})
}

// Get one video with its comment thread
// @Summary Get a video
// @Tags Videos
// @Produce json
// @Success 200 {object} domain.VideoView "video"
// @Failure 404 {object} string "video not found"
// @Router /api/videos/{id} [get]
func (h *VideoHandler) Get(c *fiber.Ctx) error {
	video, err := h.Videos.Get(c.Context(), c.Params("id"))
	if err != nil {
		return errJSON(c, err)
	}
	return c.JSON(fiber.Map{"video": video})
}

// Update edit metadata or swap media, uploader only
// @Summary Update a video
// @Tags Videos
// @Accept mpfd
// @Produce json
// @Success 200 {object} domain.Video "updated video"
// @Failure 403 {object} string "not the uploader"
// @Router /api/videos/{id} [put]
func (h *VideoHandler) Update(c *fiber.Ctx) error {
	actorID, ok := c.Locals(middlewares.TokenUserID).(string)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "missing token"})
	}

	videoFile, err := formFile(c, "video")
	if err != nil {
		return errJSON(c, err)
	}
	thumbFile, err := formFile(c, "thumbnail")
	if err != nil {
		return errJSON(c, err)
	}

	req := domain.UpdateVideoReq{
		Title:       c.FormValue("title"),
		Description: c.FormValue("description"),
		Category:    c.FormValue("category"),
		Video:       videoFile,
		Thumbnail:   thumbFile,
	}

	video, err := h.Videos.Update(c.Context(), actorID, c.Params("id"), &req)
	if err != nil {
		return errJSON(c, err)
	}
	return c.JSON(fiber.Map{"video": video})
}

// Delete remove the video and its comments, uploader only
// @Summary Delete a video
// @Tags Videos
// @Produce json
// @Success 200 {object} string "video deleted"
// @Failure 403 {object} string "not the uploader"
// @Router /api/videos/{id} [delete]
func (h *VideoHandler) Delete(c *fiber.Ctx) error {
	actorID, ok := c.Locals(middlewares.TokenUserID).(string)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "missing token"})
	}

	if err := h.Videos.Delete(c.Context(), actorID, c.Params("id")); err != nil {
		return errJSON(c, err)
	}
	return c.JSON(fiber.Map{"message": "video deleted"})
}

// ToggleLike like or take the like back
// @Summary Toggle like
// @Tags Videos
// @Produce json
// @Success 200 {object} domain.Video "updated video"
// @Failure 404 {object} string "video not found"
// @Router /api/videos/{id}/like [post]
func (h *VideoHandler) ToggleLike(c *fiber.Ctx) error {
	actorID, ok := c.Locals(middlewares.TokenUserID).(string)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "missing token"})
	}

	video, err := h.Videos.ToggleLike(c.Context(), actorID, c.Params("id"))
	if err != nil {
		return errJSON(c, err)
	}
	return c.JSON(fiber.Map{"video": video})
}

// ToggleDislike dislike or take the dislike back
// @Summary Toggle dislike
// @Tags Videos
// @Produce json
// @Success 200 {object} domain.Video "updated video"
// @Failure 404 {object} string "video not found"
// @Router /api/videos/{id}/dislike [post]
func (h *VideoHandler) ToggleDislike(c *fiber.Ctx) error {
	actorID, ok := c.Locals(middlewares.TokenUserID).(string)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "missing token"})
	}

	video, err := h.Videos.ToggleDislike(c.Context(), actorID, c.Params("id"))
	if err != nil {
		return errJSON(c, err)
	}
	return c.JSON(fiber.Map{"video": video})
}

// IncreaseViews bump the view counter
// @Summary Increase views
// @Tags Videos
// @Produce json
// @Success 200 {object} domain.Video "updated video"
// @Failure 404 {object} string "video not found"
// @Router /api/videos/{id}/views [patch]
func (h *VideoHandler) IncreaseViews(c *fiber.Ctx) error {
	video, err := h.Videos.IncreaseViews(c.Context(), c.Params("id"))
	if err != nil {
		return errJSON(c, err)
	}
	return c.JSON(fiber.Map{"video": video})
}
