package app

import (
	"context"
	"errors"
	"testing"

	accountdomain "video_sharing_service/internal/account/domain"
	"video_sharing_service/internal/channel/domain"
	videodomain "video_sharing_service/internal/video/domain"
	"video_sharing_service/pkg/apperr"
	"video_sharing_service/pkg/logger"
	"video_sharing_service/pkg/media"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestChannelUseCase_Create(t *testing.T) {
	ctx := context.Background()
	actor := primitive.NewObjectID()

	logger.SetNewNop()

	t.Run("create ok", func(t *testing.T) {
		mockChannels := new(MockChannelRepo)
		mockUsers := new(MockUserRepo)

		channelID := primitive.NewObjectID()
		mockChannels.On("FindByOwner", ctx, actor).Return(nil, mongo.ErrNoDocuments).Once()
		mockChannels.On("Create", ctx, mock.Anything).Return(channelID, nil).Once()
		mockUsers.On("AddChannel", ctx, actor, channelID).Return(nil).Once()

		uc := NewChannelUseCase(mockChannels, mockUsers, new(MockVideoRepo), new(MockCommentRepo), new(MockMediaStore))
		channel, err := uc.Create(ctx, actor.Hex(), &domain.CreateChannelReq{ChannelName: "my channel"})

		assert.NoError(t, err)
		assert.Equal(t, "my channel", channel.ChannelName)
		assert.NotEmpty(t, channel.ChannelID)
		mockChannels.AssertExpectations(t)
		mockUsers.AssertExpectations(t)
	})

	t.Run("second channel is rejected", func(t *testing.T) {
		mockChannels := new(MockChannelRepo)

		mockChannels.On("FindByOwner", ctx, actor).
			Return(&domain.Channel{ID: primitive.NewObjectID(), Owner: actor}, nil).Once()

		uc := NewChannelUseCase(mockChannels, new(MockUserRepo), new(MockVideoRepo), new(MockCommentRepo), new(MockMediaStore))
		_, err := uc.Create(ctx, actor.Hex(), &domain.CreateChannelReq{ChannelName: "another"})

		assert.Error(t, err)
		assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
	})

	t.Run("ownership check failure blocks the create", func(t *testing.T) {
		mockChannels := new(MockChannelRepo)

		mockChannels.On("FindByOwner", ctx, actor).
			Return(nil, errors.New("connection reset by peer")).Once()

		uc := NewChannelUseCase(mockChannels, new(MockUserRepo), new(MockVideoRepo), new(MockCommentRepo), new(MockMediaStore))
		_, err := uc.Create(ctx, actor.Hex(), &domain.CreateChannelReq{ChannelName: "second channel"})

		assert.Error(t, err)
		assert.Equal(t, apperr.KindUnknown, apperr.KindOf(err))
		mockChannels.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("missing name", func(t *testing.T) {
		uc := NewChannelUseCase(new(MockChannelRepo), new(MockUserRepo), new(MockVideoRepo), new(MockCommentRepo), new(MockMediaStore))
		_, err := uc.Create(ctx, actor.Hex(), &domain.CreateChannelReq{})

		assert.Error(t, err)
		assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	})

	t.Run("banner upload failure is fatal", func(t *testing.T) {
		mockChannels := new(MockChannelRepo)
		mockMedia := new(MockMediaStore)

		mockChannels.On("FindByOwner", ctx, actor).Return(nil, mongo.ErrNoDocuments).Once()
		mockMedia.On("Upload", ctx, []byte("img"), "banner.png", media.KindBanner).
			Return(nil, apperr.New(apperr.KindMediaUpload, "media upload failed")).Once()

		uc := NewChannelUseCase(mockChannels, new(MockUserRepo), new(MockVideoRepo), new(MockCommentRepo), mockMedia)
		_, err := uc.Create(ctx, actor.Hex(), &domain.CreateChannelReq{
			ChannelName: "my channel",
			Banner:      &accountdomain.FileUpload{Filename: "banner.png", Data: []byte("img")},
		})

		assert.Error(t, err)
		assert.Equal(t, apperr.KindMediaUpload, apperr.KindOf(err))
	})
}

func TestChannelUseCase_Get(t *testing.T) {
	ctx := context.Background()

	logger.SetNewNop()

	t.Run("get ok", func(t *testing.T) {
		mockChannels := new(MockChannelRepo)
		mockUsers := new(MockUserRepo)
		mockVideos := new(MockVideoRepo)

		owner := primitive.NewObjectID()
		channel := &domain.Channel{ID: primitive.NewObjectID(), ChannelName: "my channel", Owner: owner}

		mockChannels.On("FindByID", ctx, channel.ID).Return(channel, nil).Once()
		mockVideos.On("FindByChannel", ctx, channel.ID).
			Return([]videodomain.Video{{ID: primitive.NewObjectID(), Title: "first"}}, nil).Once()
		mockUsers.On("FindByID", ctx, owner).
			Return(&accountdomain.User{ID: owner, Username: "tester"}, nil).Once()

		uc := NewChannelUseCase(mockChannels, mockUsers, mockVideos, new(MockCommentRepo), new(MockMediaStore))
		detail, err := uc.Get(ctx, channel.ID.Hex())

		assert.NoError(t, err)
		assert.Equal(t, "my channel", detail.Channel.ChannelName)
		assert.Equal(t, "tester", detail.Channel.OwnerInfo.Username)
		assert.Len(t, detail.Videos, 1)
	})

	t.Run("unknown channel", func(t *testing.T) {
		mockChannels := new(MockChannelRepo)
		id := primitive.NewObjectID()
		mockChannels.On("FindByID", ctx, id).Return(nil, errors.New("no documents")).Once()

		uc := NewChannelUseCase(mockChannels, new(MockUserRepo), new(MockVideoRepo), new(MockCommentRepo), new(MockMediaStore))
		_, err := uc.Get(ctx, id.Hex())

		assert.Error(t, err)
		assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	})
}

func TestChannelUseCase_Update(t *testing.T) {
	ctx := context.Background()
	actor := primitive.NewObjectID()

	logger.SetNewNop()

	t.Run("owner can edit, old banner is released", func(t *testing.T) {
		mockChannels := new(MockChannelRepo)
		mockMedia := new(MockMediaStore)

		channel := &domain.Channel{
			ID:             primitive.NewObjectID(),
			ChannelName:    "old name",
			Owner:          actor,
			ChannelBanner:  "http://cdn/banners/old.png",
			BannerPublicID: "banners/old.png",
		}

		mockChannels.On("FindByID", ctx, channel.ID).Return(channel, nil).Once()
		mockMedia.On("Upload", ctx, []byte("img"), "new.png", media.KindBanner).
			Return(&media.Asset{URL: "http://cdn/banners/new.png", Handle: "banners/new.png"}, nil).Once()
		mockMedia.On("Delete", ctx, "banners/old.png", media.KindBanner).Return(nil).Once()
		mockChannels.On("Update", ctx, mock.Anything).Return(nil).Once()

		uc := NewChannelUseCase(mockChannels, new(MockUserRepo), new(MockVideoRepo), new(MockCommentRepo), mockMedia)
		updated, err := uc.Update(ctx, actor.Hex(), channel.ID.Hex(), &domain.UpdateChannelReq{
			ChannelName: "new name",
			Banner:      &accountdomain.FileUpload{Filename: "new.png", Data: []byte("img")},
		})

		assert.NoError(t, err)
		assert.Equal(t, "new name", updated.ChannelName)
		assert.Equal(t, "banners/new.png", updated.BannerPublicID)
		mockMedia.AssertExpectations(t)
	})

	t.Run("non-owner is forbidden", func(t *testing.T) {
		mockChannels := new(MockChannelRepo)

		channel := &domain.Channel{ID: primitive.NewObjectID(), Owner: primitive.NewObjectID()}
		mockChannels.On("FindByID", ctx, channel.ID).Return(channel, nil).Once()

		uc := NewChannelUseCase(mockChannels, new(MockUserRepo), new(MockVideoRepo), new(MockCommentRepo), new(MockMediaStore))
		_, err := uc.Update(ctx, actor.Hex(), channel.ID.Hex(), &domain.UpdateChannelReq{ChannelName: "x"})

		assert.Error(t, err)
		assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))
	})
}

func TestChannelUseCase_Delete(t *testing.T) {
	ctx := context.Background()
	actor := primitive.NewObjectID()

	logger.SetNewNop()

	t.Run("cascade removes comments, videos, media and the user link", func(t *testing.T) {
		mockChannels := new(MockChannelRepo)
		mockUsers := new(MockUserRepo)
		mockVideos := new(MockVideoRepo)
		mockComments := new(MockCommentRepo)
		mockMedia := new(MockMediaStore)

		channel := &domain.Channel{
			ID:             primitive.NewObjectID(),
			Owner:          actor,
			BannerPublicID: "banners/b.png",
		}
		video := videodomain.Video{
			ID:                primitive.NewObjectID(),
			VideoPublicID:     "videos/v.mp4",
			ThumbnailPublicID: "thumbnails/t.png",
		}

		mockChannels.On("FindByID", ctx, channel.ID).Return(channel, nil).Once()
		mockVideos.On("FindByChannel", ctx, channel.ID).Return([]videodomain.Video{video}, nil).Once()
		mockComments.On("DeleteByVideoIDs", ctx, []primitive.ObjectID{video.ID}).Return(nil).Once()
		mockMedia.On("Delete", ctx, "videos/v.mp4", media.KindVideo).Return(nil).Once()
		mockMedia.On("Delete", ctx, "thumbnails/t.png", media.KindThumbnail).Return(nil).Once()
		mockVideos.On("DeleteByChannel", ctx, channel.ID).Return(nil).Once()
		mockMedia.On("Delete", ctx, "banners/b.png", media.KindBanner).Return(nil).Once()
		mockChannels.On("Delete", ctx, channel.ID).Return(nil).Once()
		mockUsers.On("RemoveChannel", ctx, actor, channel.ID).Return(nil).Once()

		uc := NewChannelUseCase(mockChannels, mockUsers, mockVideos, mockComments, mockMedia)
		err := uc.Delete(ctx, actor.Hex(), channel.ID.Hex())

		assert.NoError(t, err)
		mockChannels.AssertExpectations(t)
		mockVideos.AssertExpectations(t)
		mockComments.AssertExpectations(t)
		mockMedia.AssertExpectations(t)
		mockUsers.AssertExpectations(t)
	})

	t.Run("media delete failure does not stop the cascade", func(t *testing.T) {
		mockChannels := new(MockChannelRepo)
		mockUsers := new(MockUserRepo)
		mockVideos := new(MockVideoRepo)
		mockComments := new(MockCommentRepo)
		mockMedia := new(MockMediaStore)

		channel := &domain.Channel{ID: primitive.NewObjectID(), Owner: actor, BannerPublicID: "banners/b.png"}

		mockChannels.On("FindByID", ctx, channel.ID).Return(channel, nil).Once()
		mockVideos.On("FindByChannel", ctx, channel.ID).Return([]videodomain.Video{}, nil).Once()
		mockComments.On("DeleteByVideoIDs", ctx, []primitive.ObjectID{}).Return(nil).Once()
		mockVideos.On("DeleteByChannel", ctx, channel.ID).Return(nil).Once()
		mockMedia.On("Delete", ctx, "banners/b.png", media.KindBanner).
			Return(apperr.New(apperr.KindMediaDelete, "media delete failed")).Once()
		mockChannels.On("Delete", ctx, channel.ID).Return(nil).Once()
		mockUsers.On("RemoveChannel", ctx, actor, channel.ID).Return(nil).Once()

		uc := NewChannelUseCase(mockChannels, mockUsers, mockVideos, mockComments, mockMedia)
		err := uc.Delete(ctx, actor.Hex(), channel.ID.Hex())

		assert.NoError(t, err)
		mockChannels.AssertExpectations(t)
	})

	t.Run("non-owner is forbidden", func(t *testing.T) {
		mockChannels := new(MockChannelRepo)

		channel := &domain.Channel{ID: primitive.NewObjectID(), Owner: primitive.NewObjectID()}
		mockChannels.On("FindByID", ctx, channel.ID).Return(channel, nil).Once()

		uc := NewChannelUseCase(mockChannels, new(MockUserRepo), new(MockVideoRepo), new(MockCommentRepo), new(MockMediaStore))
		err := uc.Delete(ctx, actor.Hex(), channel.ID.Hex())

		assert.Error(t, err)
		assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))
	})
}

func TestChannelUseCase_ToggleSubscription(t *testing.T) {
	ctx := context.Background()
	actor := primitive.NewObjectID()

	logger.SetNewNop()

	t.Run("subscribe moves both sides", func(t *testing.T) {
		mockChannels := new(MockChannelRepo)
		mockUsers := new(MockUserRepo)

		owner := primitive.NewObjectID()
		channel := &domain.Channel{ID: primitive.NewObjectID(), Owner: owner}
		after := &domain.Channel{
			ID:              channel.ID,
			Owner:           owner,
			Subscribers:     1,
			SubscribersList: []primitive.ObjectID{actor},
		}

		mockChannels.On("FindByID", ctx, channel.ID).Return(channel, nil).Once()
		mockChannels.On("AddSubscriber", ctx, channel.ID, actor).Return(nil).Once()
		mockUsers.On("AddSubscription", ctx, actor, channel.ID).Return(nil).Once()
		mockChannels.On("FindByID", ctx, channel.ID).Return(after, nil).Once()
		mockUsers.On("FindByID", ctx, owner).
			Return(&accountdomain.User{ID: owner, Username: "owner"}, nil).Once()

		uc := NewChannelUseCase(mockChannels, mockUsers, new(MockVideoRepo), new(MockCommentRepo), new(MockMediaStore))
		view, err := uc.ToggleSubscription(ctx, actor.Hex(), channel.ID.Hex())

		assert.NoError(t, err)
		assert.Equal(t, 1, view.Subscribers)
		assert.Equal(t, "owner", view.OwnerInfo.Username)
		mockChannels.AssertExpectations(t)
		mockUsers.AssertExpectations(t)
	})

	t.Run("second toggle unsubscribes", func(t *testing.T) {
		mockChannels := new(MockChannelRepo)
		mockUsers := new(MockUserRepo)

		owner := primitive.NewObjectID()
		channel := &domain.Channel{
			ID:              primitive.NewObjectID(),
			Owner:           owner,
			Subscribers:     1,
			SubscribersList: []primitive.ObjectID{actor},
		}
		after := &domain.Channel{ID: channel.ID, Owner: owner}

		mockChannels.On("FindByID", ctx, channel.ID).Return(channel, nil).Once()
		mockChannels.On("RemoveSubscriber", ctx, channel.ID, actor).Return(nil).Once()
		mockUsers.On("RemoveSubscription", ctx, actor, channel.ID).Return(nil).Once()
		mockChannels.On("FindByID", ctx, channel.ID).Return(after, nil).Once()
		mockUsers.On("FindByID", ctx, owner).
			Return(&accountdomain.User{ID: owner, Username: "owner"}, nil).Once()

		uc := NewChannelUseCase(mockChannels, mockUsers, new(MockVideoRepo), new(MockCommentRepo), new(MockMediaStore))
		view, err := uc.ToggleSubscription(ctx, actor.Hex(), channel.ID.Hex())

		assert.NoError(t, err)
		assert.Equal(t, 0, view.Subscribers)
		mockChannels.AssertExpectations(t)
		mockUsers.AssertExpectations(t)
	})

	t.Run("unknown channel", func(t *testing.T) {
		mockChannels := new(MockChannelRepo)
		id := primitive.NewObjectID()
		mockChannels.On("FindByID", ctx, id).Return(nil, errors.New("no documents")).Once()

		uc := NewChannelUseCase(mockChannels, new(MockUserRepo), new(MockVideoRepo), new(MockCommentRepo), new(MockMediaStore))
		_, err := uc.ToggleSubscription(ctx, actor.Hex(), id.Hex())

		assert.Error(t, err)
		assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	})
}
