package repository

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	accountdomain "video_sharing_service/internal/account/domain"
	accountrepo "video_sharing_service/internal/account/repository"
	"video_sharing_service/internal/channel/domain"
	videodomain "video_sharing_service/internal/video/domain"
	videorepo "video_sharing_service/internal/video/repository"
	"video_sharing_service/pkg/database"
	"video_sharing_service/pkg/logger"
	testtool "video_sharing_service/pkg/test_tool"

	"github.com/stretchr/testify/assert"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Exercises the server-side update operators against a real Mongo:
// subscription symmetry, like/dislike exclusivity and concurrent view
// increments. Needs Docker, skipped in -short.
func TestRepositoryOperators(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container-backed repository test in -short")
	}

	logger.SetNewNop()
	ctx := context.Background()

	mongoContainer, host, port, err := testtool.SetupContainer(ctx, testcontainers.ContainerRequest{
		Image:        "mongo:7",
		ExposedPorts: []string{"27017/tcp"},
		WaitingFor:   wait.ForListeningPort("27017/tcp"),
	})
	if err != nil {
		t.Skipf("could not start mongo container: %v", err)
	}
	defer func() { _ = mongoContainer.Terminate(ctx) }()

	mongoDB, err := database.NewMongoDB(ctx, database.Connection{
		ConnectStr:    fmt.Sprintf("mongodb://%s:%s", host, port),
		RetryCount:    5,
		RetryInterval: time.Second,
	}, "testdb")
	if err != nil {
		t.Fatalf("could not connect to mongo: %v", err)
	}
	defer mongoDB.Close(ctx)

	userRepo := accountrepo.NewUserRepository(mongoDB.Database)
	channelRepo := NewChannelRepository(mongoDB.Database)
	videoRepo := videorepo.NewVideoRepository(mongoDB.Database)

	assert.NoError(t, userRepo.EnsureIndexes(ctx))
	assert.NoError(t, channelRepo.EnsureIndexes(ctx))

	ownerID, err := userRepo.CreateUser(ctx, &accountdomain.User{
		Username: "owner",
		Email:    "owner@example.com",
		Password: "hash",
	})
	assert.NoError(t, err)

	subscriberID, err := userRepo.CreateUser(ctx, &accountdomain.User{
		Username: "subscriber",
		Email:    "subscriber@example.com",
		Password: "hash",
	})
	assert.NoError(t, err)

	channelID, err := channelRepo.Create(ctx, &domain.Channel{
		ChannelID:   "ext-id",
		ChannelName: "owner channel",
		Owner:       ownerID,
	})
	assert.NoError(t, err)

	t.Run("unique indexes reject duplicates", func(t *testing.T) {
		_, err := userRepo.CreateUser(ctx, &accountdomain.User{
			Username: "copycat",
			Email:    "owner@example.com",
			Password: "hash",
		})
		assert.Error(t, err)

		_, err = channelRepo.Create(ctx, &domain.Channel{
			ChannelID:   "another-ext-id",
			ChannelName: "second channel",
			Owner:       ownerID,
		})
		assert.Error(t, err)
	})

	t.Run("subscription moves both sides and recounts", func(t *testing.T) {
		assert.NoError(t, channelRepo.AddSubscriber(ctx, channelID, subscriberID))
		assert.NoError(t, userRepo.AddSubscription(ctx, subscriberID, channelID))

		// a second add must not duplicate
		assert.NoError(t, channelRepo.AddSubscriber(ctx, channelID, subscriberID))
		assert.NoError(t, userRepo.AddSubscription(ctx, subscriberID, channelID))

		channel, err := channelRepo.FindByID(ctx, channelID)
		assert.NoError(t, err)
		assert.Equal(t, 1, channel.Subscribers)
		assert.Equal(t, []string{subscriberID.Hex()}, hexAll(channel.SubscribersList))

		user, err := userRepo.FindByID(ctx, subscriberID)
		assert.NoError(t, err)
		assert.Equal(t, []string{channelID.Hex()}, hexAll(user.Subscriptions))

		assert.NoError(t, channelRepo.RemoveSubscriber(ctx, channelID, subscriberID))
		assert.NoError(t, userRepo.RemoveSubscription(ctx, subscriberID, channelID))

		channel, err = channelRepo.FindByID(ctx, channelID)
		assert.NoError(t, err)
		assert.Equal(t, 0, channel.Subscribers)
		assert.Empty(t, channel.SubscribersList)
	})

	videoID, err := videoRepo.Create(ctx, &videodomain.Video{
		Title:    "clip",
		Category: "music",
		Uploader: ownerID,
		Channel:  channelID,
	})
	assert.NoError(t, err)

	t.Run("like clears dislike in one update", func(t *testing.T) {
		assert.NoError(t, videoRepo.SetDislike(ctx, videoID, subscriberID))
		assert.NoError(t, videoRepo.SetLike(ctx, videoID, subscriberID))

		video, err := videoRepo.FindByID(ctx, videoID)
		assert.NoError(t, err)
		assert.Equal(t, []string{subscriberID.Hex()}, hexAll(video.Likes))
		assert.Empty(t, video.Dislikes)

		assert.NoError(t, videoRepo.UnsetLike(ctx, videoID, subscriberID))

		video, err = videoRepo.FindByID(ctx, videoID)
		assert.NoError(t, err)
		assert.Empty(t, video.Likes)
	})

	t.Run("concurrent view increments are all counted", func(t *testing.T) {
		before, err := videoRepo.FindByID(ctx, videoID)
		assert.NoError(t, err)

		var wg sync.WaitGroup
		for i := 0; i < 3; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, _ = videoRepo.IncViews(ctx, videoID)
			}()
		}
		wg.Wait()

		after, err := videoRepo.FindByID(ctx, videoID)
		assert.NoError(t, err)
		assert.Equal(t, before.Views+3, after.Views)
	})
}

func hexAll(ids []primitive.ObjectID) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, id.Hex())
	}
	return out
}
