package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	accountdomain "video_sharing_service/internal/account/domain"
	"video_sharing_service/pkg/apperr"
	"video_sharing_service/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
)

// ConnectCheck check api connect start
// @Summary Check API server status
// @Description Returns a simple confirmation message
// @Tags Shared
// @Success 200 {string} string "api server start!"
// @Router / [get]
func ConnectCheck(c *fiber.Ctx) error {
	return c.SendString("api server start!")
}

// DebugLogFlag toggle debug log flag
// @Summary Toggle Debug Log Flag
// @Description Enable or disable debug logging
// @Tags Shared
// @Param status query bool true "Debug status"
// @Success 200 {string} string "debug mode updated"
// @Failure 400 {string} string "Invalid status value"
// @Router /debug [post]
func DebugLogFlag(c *fiber.Ctx) error {
	status, err := strconv.ParseBool(c.Query("status"))
	if err != nil {
		return c.SendStatus(fiber.StatusBadRequest)
	}

	logger.Log.SetDebugMode(status)
	logger.Log.Info("debug", zap.Bool("status", status))
	return c.SendString(fmt.Sprintf("debug mode is : %t", status))
}

// errJSON maps a usecase error to its HTTP status and client message.
// This is the only place errors turn into status codes.
func errJSON(c *fiber.Ctx, err error) error {
	return c.Status(apperr.StatusCode(err)).JSON(fiber.Map{"error": apperr.Message(err)})
}

// formFile reads an optional multipart file fully into memory. A missing
// field returns nil without error; a malformed form is a client error.
func formFile(c *fiber.Ctx, field string) (*accountdomain.FileUpload, error) {
	fh, err := c.FormFile(field)
	switch {
	case err == nil:
	case errors.Is(err, fasthttp.ErrMissingFile),
		errors.Is(err, http.ErrMissingFile),
		errors.Is(err, fasthttp.ErrNoMultipartForm):
		return nil, nil
	default:
		return nil, apperr.Wrap(apperr.KindValidation, "malformed multipart form", err)
	}

	f, err := fh.Open()
	if err != nil {
		return nil, apperr.Wrap(apperr.KindValidation, "could not read uploaded file", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindValidation, "could not read uploaded file", err)
	}
	return &accountdomain.FileUpload{Filename: fh.Filename, Data: data}, nil
}
