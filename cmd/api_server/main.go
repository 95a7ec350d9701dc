package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	accountapp "video_sharing_service/internal/account/app"
	accountdomain "video_sharing_service/internal/account/domain"
	accountrepo "video_sharing_service/internal/account/repository"
	"video_sharing_service/internal/api/handlers"
	"video_sharing_service/internal/api/router"
	channelapp "video_sharing_service/internal/channel/app"
	channelrepo "video_sharing_service/internal/channel/repository"
	videoapp "video_sharing_service/internal/video/app"
	videorepo "video_sharing_service/internal/video/repository"
	"video_sharing_service/pkg/config"
	"video_sharing_service/pkg/database"
	"video_sharing_service/pkg/logger"
	"video_sharing_service/pkg/media"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

func main() {
	logger.Log = logger.Initialize(config.EnvConfig.APIServer, config.EnvConfig.APIServerLogPath)

	cfg := config.LoadConfig[config.APIServer](config.EnvConfig.APIServer, config.EnvConfig.APIServerYAMLPath)

	ctx := context.Background()

	// 1. MongoDB
	mongoURI := fmt.Sprintf("mongodb://%s:%s@%s:%d",
		cfg.Mongo.User, cfg.Mongo.Password, cfg.Mongo.Host, cfg.Mongo.Port)
	mongoDB, err := database.NewMongoDB(ctx, database.Connection{
		ConnectStr:    mongoURI,
		RetryCount:    cfg.Mongo.RetryCount,
		RetryInterval: time.Duration(cfg.Mongo.RetryInterval) * time.Second,
	}, cfg.Mongo.Database)
	if err != nil {
		logger.Log.Fatal("Unable to connect to MongoDB after retries",
			zap.String("address", fmt.Sprintf("%s:%d", cfg.Mongo.Host, cfg.Mongo.Port)),
			zap.Error(err),
		)
	}
	defer func() {
		if err := mongoDB.Close(ctx); err != nil {
			logger.Log.Error("MongoDB disconnect failed", zap.Error(err))
		}
	}()

	// 2. MinIO
	minioEndpoint := fmt.Sprintf("%s:%d", cfg.MinIO.Host, cfg.MinIO.Port)
	minioClient, err := database.NewMinIOConnection(database.MinIOConnection{
		Endpoint:      minioEndpoint,
		User:          cfg.MinIO.User,
		Password:      cfg.MinIO.Password,
		BucketName:    cfg.MinIO.BucketName,
		UseSSL:        cfg.MinIO.UseSSL,
		RetryCount:    cfg.MinIO.RetryCount,
		RetryInterval: time.Duration(cfg.MinIO.RetryInterval),
	})
	if err != nil {
		logger.Log.Fatal("Unable to connect to minio after retries",
			zap.String("address", minioEndpoint),
			zap.Error(err),
		)
	}

	// 3. Redis session store
	redisRepo, err := database.NewRedisRepository[accountdomain.UserSession](cfg.Redis.Addr, cfg.Redis.RedisDB)
	if err != nil {
		logger.Log.Fatal("Unable to connect to redis",
			zap.String("address", cfg.Redis.Addr),
			zap.Error(err),
		)
	}

	scheme := "http"
	if cfg.MinIO.UseSSL {
		scheme = "https"
	}
	mediaStore := media.NewStore(minioClient, fmt.Sprintf("%s://%s/%s", scheme, minioEndpoint, cfg.MinIO.BucketName))

	// 4. Repositories and usecases
	userRepo := accountrepo.NewUserRepository(mongoDB.Database)
	channelRepo := channelrepo.NewChannelRepository(mongoDB.Database)
	videoRepo := videorepo.NewVideoRepository(mongoDB.Database)
	commentRepo := videorepo.NewCommentRepository(mongoDB.Database)

	// unique indexes back the email and one-channel-per-owner rules
	if err := userRepo.EnsureIndexes(ctx); err != nil {
		logger.Log.Fatal("could not create user indexes", zap.Error(err))
	}
	if err := channelRepo.EnsureIndexes(ctx); err != nil {
		logger.Log.Fatal("could not create channel indexes", zap.Error(err))
	}

	accountUC := accountapp.NewAccountUseCase(userRepo, channelRepo, mediaStore, cfg.SessionTTL, redisRepo)
	channelUC := channelapp.NewChannelUseCase(channelRepo, userRepo, videoRepo, commentRepo, mediaStore)
	videoUC := videoapp.NewVideoUseCase(videoRepo, commentRepo, channelRepo, userRepo, mediaStore)
	commentUC := videoapp.NewCommentUseCase(commentRepo, videoRepo, userRepo)

	// 5. HTTP surface
	app := fiber.New(fiber.Config{
		BodyLimit: 512 * 1024 * 1024, // raw video uploads
	})

	router.RegisterRoutes(app,
		accountUC,
		handlers.NewAuthHandler(accountUC),
		handlers.NewChannelHandler(channelUC),
		handlers.NewVideoHandler(videoUC),
		handlers.NewCommentHandler(commentUC),
	)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit

		logger.Log.Info("shutting down")
		if err := app.Shutdown(); err != nil {
			logger.Log.Error("server shutdown failed", zap.Error(err))
		}
	}()

	logger.Log.Info(fmt.Sprintf("api server listening on :%s", cfg.Port))
	if err := app.Listen(":" + cfg.Port); err != nil {
		logger.Log.Fatal("Server failed to start", zap.Error(err))
	}

	logger.Log.Sync()
}
