package handlers

import (
	"video_sharing_service/internal/channel/app"
	"video_sharing_service/internal/channel/domain"
	"video_sharing_service/pkg/middlewares"

	"github.com/gofiber/fiber/v2"
)

// ChannelHandler handles channel routes
type ChannelHandler struct {
	Channels app.ChannelUseCase
}

// NewChannelHandler create a new ChannelHandler
func NewChannelHandler(channels app.ChannelUseCase) *ChannelHandler {
	return &ChannelHandler{Channels: channels}
}

// Create open the caller's channel
// @Summary Create a channel
// @Description One channel per user; optional multipart banner
// @Tags Channels
// @Accept mpfd
// @Produce json
// @Success 201 {object} domain.Channel "created channel"
// @Failure 400 {object} string "validation or owner already has a channel"
// @Router /api/channels [post]
func (h *ChannelHandler) Create(c *fiber.Ctx) error {
	actorID, ok := c.Locals(middlewares.TokenUserID).(string)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "missing token"})
	}

	banner, err := formFile(c, "channelBanner")
	if err != nil {
		return errJSON(c, err)
	}

	req := domain.CreateChannelReq{
		ChannelName: c.FormValue("channelName"),
		Description: c.FormValue("description"),
		Banner:      banner,
	}

	channel, err := h.Channels.Create(c.Context(), actorID, &req)
	if err != nil {
		return errJSON(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"channel": channel})
}

// Get channel page
// @Summary Get a channel
// @Description Returns the channel with its owner and video listing
// @Tags Channels
// @Produce json
// @Success 200 {object} domain.ChannelDetail "channel and videos"
// @Failure 404 {object} string "channel not found"
// @Router /api/channels/{id} [get]
func (h *ChannelHandler) Get(c *fiber.Ctx) error {
	detail, err := h.Channels.Get(c.Context(), c.Params("id"))
	if err != nil {
		return errJSON(c, err)
	}
	return c.JSON(detail)
}

// Update edit the channel, owner only
// @Summary Update a channel
// @Tags Channels
// @Accept mpfd
// @Produce json
// @Success 200 {object} domain.Channel "updated channel"
// @Failure 403 {object} string "not the channel owner"
// @Router /api/channels/{id} [put]
func (h *ChannelHandler) Update(c *fiber.Ctx) error {
	actorID, ok := c.Locals(middlewares.TokenUserID).(string)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "missing token"})
	}

	banner, err := formFile(c, "channelBanner")
	if err != nil {
		return errJSON(c, err)
	}

	req := domain.UpdateChannelReq{
		ChannelName: c.FormValue("channelName"),
		Description: c.FormValue("description"),
		Banner:      banner,
	}

	channel, err := h.Channels.Update(c.Context(), actorID, c.Params("id"), &req)
	if err != nil {
		return errJSON(c, err)
	}
	return c.JSON(fiber.Map{"channel": channel})
}

// Delete remove the channel and everything under it, owner only
// @Summary Delete a channel
// @Tags Channels
// @Produce json
// @Success 200 {object} string "channel deleted"
// @Failure 403 {object} string "not the channel owner"
// @Router /api/channels/{id} [delete]
func (h *ChannelHandler) Delete(c *fiber.Ctx) error {
	actorID, ok := c.Locals(middlewares.TokenUserID).(string)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "missing token"})
	}

	if err := h.Channels.Delete(c.Context(), actorID, c.Params("id")); err != nil {
		return errJSON(c, err)
	}
	return c.JSON(fiber.Map{"message": "channel deleted"})
}

// ToggleSubscription subscribe or unsubscribe the caller
// @Summary Toggle subscription
// @Description Subscribes on first call, unsubscribes on the second
// @Tags Channels
// @Produce json
// @Success 200 {object} domain.ChannelView "updated channel"
// @Failure 404 {object} string "channel not found"
// @Router /api/channels/{id}/subscribe [post]
func (h *ChannelHandler) ToggleSubscription(c *fiber.Ctx) error {
	actorID, ok := c.Locals(middlewares.TokenUserID).(string)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "missing token"})
	}

	channel, err := h.Channels.ToggleSubscription(c.Context(), actorID, c.Params("id"))
	if err != nil {
		return errJSON(c, err)
	}
	return c.JSON(fiber.Map{"channel": channel})
}
