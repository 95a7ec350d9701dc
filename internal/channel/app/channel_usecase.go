package app

import (
	"context"
	"errors"

	accountrepo "video_sharing_service/internal/account/repository"
	"video_sharing_service/internal/channel/domain"
	"video_sharing_service/internal/channel/repository"
	videorepo "video_sharing_service/internal/video/repository"
	"video_sharing_service/pkg/apperr"
	"video_sharing_service/pkg/logger"
	"video_sharing_service/pkg/media"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// ChannelUseCase application services around channels and subscriptions
type ChannelUseCase interface {
	Create(ctx context.Context, actorID string, req *domain.CreateChannelReq) (*domain.Channel, error)
	Get(ctx context.Context, channelID string) (*domain.ChannelDetail, error)
	Update(ctx context.Context, actorID, channelID string, req *domain.UpdateChannelReq) (*domain.Channel, error)
	Delete(ctx context.Context, actorID, channelID string) error
	ToggleSubscription(ctx context.Context, actorID, channelID string) (*domain.ChannelView, error)
}

type channelUseCase struct {
	channelRepo repository.ChannelRepository
	userRepo    accountrepo.UserRepository
	videoRepo   videorepo.VideoRepository
	commentRepo videorepo.CommentRepository
	mediaStore  media.Store
}

// NewChannelUseCase create a new ChannelUseCase
func NewChannelUseCase(channelRepo repository.ChannelRepository,
	userRepo accountrepo.UserRepository,
	videoRepo videorepo.VideoRepository,
	commentRepo videorepo.CommentRepository,
	mediaStore media.Store,
) ChannelUseCase {
	return &channelUseCase{
		channelRepo: channelRepo,
		userRepo:    userRepo,
		videoRepo:   videoRepo,
		commentRepo: commentRepo,
		mediaStore:  mediaStore,
	}
}

// Create opens the actor's channel. A user owns at most one channel, a
// second create is rejected before anything is written.
func (c *channelUseCase) Create(ctx context.Context, actorID string, req *domain.CreateChannelReq) (*domain.Channel, error) {
	if req.ChannelName == "" {
		return nil, apperr.New(apperr.KindValidation, "channelName is required")
	}

	actor, err := primitive.ObjectIDFromHex(actorID)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindValidation, "invalid user id", err)
	}

	// Only a clean miss clears the actor to open a channel. Any other
	// lookup error must not fall through to the insert, or a transient
	// outage would let a second channel in.
	if _, err := c.channelRepo.FindByOwner(ctx, actor); err == nil {
		return nil, apperr.New(apperr.KindConflict, "user already owns a channel")
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.Wrap(apperr.KindUnknown, "could not check channel ownership", err)
	}

	channel := domain.Channel{
		ChannelID:   uuid.New().String(),
		ChannelName: req.ChannelName,
		Description: req.Description,
		Owner:       actor,
	}

	if req.Banner != nil {
		asset, err := c.mediaStore.Upload(ctx, req.Banner.Data, req.Banner.Filename, media.KindBanner)
		if err != nil {
			return nil, err
		}
		channel.ChannelBanner = asset.URL
		channel.BannerPublicID = asset.Handle
	}

	id, err := c.channelRepo.Create(ctx, &channel)
	if err != nil {
		c.releaseAsset(ctx, channel.BannerPublicID, media.KindBanner)
		return nil, apperr.Wrap(apperr.KindUnknown, "could not create channel", err)
	}

	if err := c.userRepo.AddChannel(ctx, actor, id); err != nil {
		return nil, apperr.Wrap(apperr.KindUnknown, "could not link channel to user", err)
	}

	logger.Log.Info("channel created", zap.String("channel", id.Hex()), zap.String("owner", actorID))
	return &channel, nil
}

// Get returns the channel page, the channel with its owner's display name
// and the channel's video listing.
func (c *channelUseCase) Get(ctx context.Context, channelID string) (*domain.ChannelDetail, error) {
	id, err := primitive.ObjectIDFromHex(channelID)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindValidation, "invalid channel id", err)
	}

	channel, err := c.channelRepo.FindByID(ctx, id)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindNotFound, "channel not found", err)
	}

	videos, err := c.videoRepo.FindByChannel(ctx, id)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindUnknown, "could not load channel videos", err)
	}

	return &domain.ChannelDetail{
		Channel: c.viewOf(ctx, channel),
		Videos:  videos,
	}, nil
}

// Update edits name, description and banner, owner only. A replaced banner
// has its old object removed best-effort once the new one is stored.
func (c *channelUseCase) Update(ctx context.Context, actorID, channelID string, req *domain.UpdateChannelReq) (*domain.Channel, error) {
	channel, err := c.ownedChannel(ctx, actorID, channelID)
	if err != nil {
		return nil, err
	}

	if req.ChannelName != "" {
		channel.ChannelName = req.ChannelName
	}
	if req.Description != "" {
		channel.Description = req.Description
	}

	if req.Banner != nil {
		asset, err := c.mediaStore.Upload(ctx, req.Banner.Data, req.Banner.Filename, media.KindBanner)
		if err != nil {
			return nil, err
		}
		c.releaseAsset(ctx, channel.BannerPublicID, media.KindBanner)
		channel.ChannelBanner = asset.URL
		channel.BannerPublicID = asset.Handle
	}

	if err := c.channelRepo.Update(ctx, channel); err != nil {
		return nil, apperr.Wrap(apperr.KindUnknown, "could not update channel", err)
	}
	return channel, nil
}

// Delete removes the channel and everything under it: comments on its
// videos, the videos and their media, the banner, and the owner's link.
// Media removals are best-effort, the documents go regardless.
func (c *channelUseCase) Delete(ctx context.Context, actorID, channelID string) error {
	channel, err := c.ownedChannel(ctx, actorID, channelID)
	if err != nil {
		return err
	}

	videos, err := c.videoRepo.FindByChannel(ctx, channel.ID)
	if err != nil {
		return apperr.Wrap(apperr.KindUnknown, "could not load channel videos", err)
	}

	videoIDs := make([]primitive.ObjectID, 0, len(videos))
	for _, v := range videos {
		videoIDs = append(videoIDs, v.ID)
	}

	if err := c.commentRepo.DeleteByVideoIDs(ctx, videoIDs); err != nil {
		return apperr.Wrap(apperr.KindUnknown, "could not delete channel comments", err)
	}

	for _, v := range videos {
		c.releaseAsset(ctx, v.VideoPublicID, media.KindVideo)
		c.releaseAsset(ctx, v.ThumbnailPublicID, media.KindThumbnail)
	}

	if err := c.videoRepo.DeleteByChannel(ctx, channel.ID); err != nil {
		return apperr.Wrap(apperr.KindUnknown, "could not delete channel videos", err)
	}

	c.releaseAsset(ctx, channel.BannerPublicID, media.KindBanner)

	if err := c.channelRepo.Delete(ctx, channel.ID); err != nil {
		return apperr.Wrap(apperr.KindUnknown, "could not delete channel", err)
	}

	if err := c.userRepo.RemoveChannel(ctx, channel.Owner, channel.ID); err != nil {
		return apperr.Wrap(apperr.KindUnknown, "could not unlink channel from user", err)
	}

	logger.Log.Info("channel deleted", zap.String("channel", channelID), zap.Int("videos", len(videos)))
	return nil
}

// ToggleSubscription subscribes the actor if they are not on the list and
// unsubscribes them if they are. Both sides of the relation move together:
// the channel's subscribersList and the user's subscriptions.
func (c *channelUseCase) ToggleSubscription(ctx context.Context, actorID, channelID string) (*domain.ChannelView, error) {
	actor, err := primitive.ObjectIDFromHex(actorID)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindValidation, "invalid user id", err)
	}
	id, err := primitive.ObjectIDFromHex(channelID)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindValidation, "invalid channel id", err)
	}

	channel, err := c.channelRepo.FindByID(ctx, id)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindNotFound, "channel not found", err)
	}

	subscribed := false
	for _, s := range channel.SubscribersList {
		if s == actor {
			subscribed = true
			break
		}
	}

	if subscribed {
		if err := c.channelRepo.RemoveSubscriber(ctx, id, actor); err != nil {
			return nil, apperr.Wrap(apperr.KindUnknown, "could not unsubscribe", err)
		}
		if err := c.userRepo.RemoveSubscription(ctx, actor, id); err != nil {
			return nil, apperr.Wrap(apperr.KindUnknown, "could not unsubscribe", err)
		}
	} else {
		if err := c.channelRepo.AddSubscriber(ctx, id, actor); err != nil {
			return nil, apperr.Wrap(apperr.KindUnknown, "could not subscribe", err)
		}
		if err := c.userRepo.AddSubscription(ctx, actor, id); err != nil {
			return nil, apperr.Wrap(apperr.KindUnknown, "could not subscribe", err)
		}
	}

	channel, err = c.channelRepo.FindByID(ctx, id)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindNotFound, "channel not found", err)
	}

	view := c.viewOf(ctx, channel)
	return &view, nil
}

// ownedChannel loads the channel and enforces ownership
func (c *channelUseCase) ownedChannel(ctx context.Context, actorID, channelID string) (*domain.Channel, error) {
	actor, err := primitive.ObjectIDFromHex(actorID)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindValidation, "invalid user id", err)
	}
	id, err := primitive.ObjectIDFromHex(channelID)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindValidation, "invalid channel id", err)
	}

	channel, err := c.channelRepo.FindByID(ctx, id)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindNotFound, "channel not found", err)
	}
	if channel.Owner != actor {
		return nil, apperr.New(apperr.KindForbidden, "not the channel owner")
	}
	return channel, nil
}

// viewOf attaches the owner's display name when the owner still exists
func (c *channelUseCase) viewOf(ctx context.Context, channel *domain.Channel) domain.ChannelView {
	view := domain.ChannelView{Channel: *channel}
	if owner, err := c.userRepo.FindByID(ctx, channel.Owner); err == nil {
		view.OwnerInfo = &domain.OwnerInfo{ID: owner.ID, Username: owner.Username}
	}
	return view
}

// releaseAsset best-effort media removal, failures are logged and dropped
func (c *channelUseCase) releaseAsset(ctx context.Context, handle string, kind media.Kind) {
	if handle == "" {
		return
	}
	if err := c.mediaStore.Delete(ctx, handle, kind); err != nil {
		logger.Log.Warn("could not remove media object", zap.String("handle", handle), zap.Error(err))
	}
}
