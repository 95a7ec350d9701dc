package router

import (
	"video_sharing_service/internal/api/handlers"
	"video_sharing_service/pkg/middlewares"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
)

// RegisterRoutes register the service routes
// @title Video Sharing Service API
// @version 1.0
// @description API documentation for Video Sharing Service
// @host localhost:8080
// @BasePath /
func RegisterRoutes(app *fiber.App,
	sessions middlewares.SessionChecker,
	authHandler *handlers.AuthHandler,
	channelHandler *handlers.ChannelHandler,
	videoHandler *handlers.VideoHandler,
	commentHandler *handlers.CommentHandler,
) {
	app.Get("/swagger/*", swagger.HandlerDefault)
	app.Get("/", handlers.ConnectCheck)
	app.Post("/debug", handlers.DebugLogFlag)

	jwt := middlewares.JWTMiddleware(sessions)
	api := app.Group("/api")

	authRoutes := api.Group("/auth")
	authRoutes.Post("/register", authHandler.Register)
	authRoutes.Post("/login", authHandler.Login)
	authRoutes.Get("/me", jwt, authHandler.Me)
	authRoutes.Post("/logout", jwt, authHandler.Logout)

	channelRoutes := api.Group("/channels")
	channelRoutes.Post("/", jwt, channelHandler.Create)
	channelRoutes.Get("/:id", channelHandler.Get)
	channelRoutes.Put("/:id", jwt, channelHandler.Update)
	channelRoutes.Delete("/:id", jwt, channelHandler.Delete)
	channelRoutes.Post("/:id/subscribe", jwt, channelHandler.ToggleSubscription)

	videoRoutes := api.Group("/videos")
	videoRoutes.Get("/", videoHandler.List)
	videoRoutes.Get("/search", videoHandler.Search)
	videoRoutes.Post("/upload", jwt, videoHandler.Upload)
	videoRoutes.Get("/:id", videoHandler.Get)
	videoRoutes.Put("/:id", jwt, videoHandler.Update)
	videoRoutes.Delete("/:id", jwt, videoHandler.Delete)
	videoRoutes.Post("/:id/like", jwt, videoHandler.ToggleLike)
	videoRoutes.Post("/:id/dislike", jwt, videoHandler.ToggleDislike)
	videoRoutes.Patch("/:id/views", videoHandler.IncreaseViews)

	videoRoutes.Get("/:videoId/comments", commentHandler.List)
	videoRoutes.Post("/:videoId/comments", jwt, commentHandler.Add)
	videoRoutes.Put("/:videoId/comments/:commentId", jwt, commentHandler.Edit)
	videoRoutes.Delete("/:videoId/comments/:commentId", jwt, commentHandler.Delete)
}
