package app

import (
	"context"
	"errors"

	accountrepo "video_sharing_service/internal/account/repository"
	channelrepo "video_sharing_service/internal/channel/repository"
	"video_sharing_service/internal/video/domain"
	"video_sharing_service/internal/video/repository"
	"video_sharing_service/pkg/apperr"
	"video_sharing_service/pkg/logger"
	"video_sharing_service/pkg/media"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// VideoUseCase application services around videos and reactions
type VideoUseCase interface {
	Upload(ctx context.Context, actorID string, req *domain.UploadVideoReq) (*domain.Video, error)
	List(ctx context.Context) ([]domain.VideoView, error)
	Search(ctx context.Context, keyword string) ([]domain.VideoView, error)
	Get(ctx context.Context, videoID string) (*domain.VideoView, error)
	Update(ctx context.Context, actorID, videoID string, req *domain.UpdateVideoReq) (*domain.Video, error)
	Delete(ctx context.Context, actorID, videoID string) error
	ToggleLike(ctx context.Context, actorID, videoID string) (*domain.Video, error)
	ToggleDislike(ctx context.Context, actorID, videoID string) (*domain.Video, error)
	IncreaseViews(ctx context.Context, videoID string) (*domain.Video, error)
}

type videoUseCase struct {
	videoRepo   repository.VideoRepository
	commentRepo repository.CommentRepository
	channelRepo channelrepo.ChannelRepository
	userRepo    accountrepo.UserRepository
	mediaStore  media.Store
}

// NewVideoUseCase create a new VideoUseCase
func NewVideoUseCase(videoRepo repository.VideoRepository,
	commentRepo repository.CommentRepository,
	channelRepo channelrepo.ChannelRepository,
	userRepo accountrepo.UserRepository,
	mediaStore media.Store,
) VideoUseCase {
	return &videoUseCase{
		videoRepo:   videoRepo,
		commentRepo: commentRepo,
		channelRepo: channelRepo,
		userRepo:    userRepo,
		mediaStore:  mediaStore,
	}
}

// Upload stores the media first and the document second. The uploader must
// already own a channel; the video lands on it. If a later step fails, the
// objects stored so far are released.
func (v *videoUseCase) Upload(ctx context.Context, actorID string, req *domain.UploadVideoReq) (*domain.Video, error) {
	if req.Title == "" || req.Category == "" {
		return nil, apperr.New(apperr.KindValidation, "title and category are required")
	}
	if req.Video == nil || req.Thumbnail == nil {
		return nil, apperr.New(apperr.KindValidation, "video and thumbnail files are required")
	}

	actor, err := primitive.ObjectIDFromHex(actorID)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindValidation, "invalid user id", err)
	}

	channel, err := v.channelRepo.FindByOwner(ctx, actor)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.Wrap(apperr.KindValidation, "user has no channel", err)
	} else if err != nil {
		return nil, apperr.Wrap(apperr.KindUnknown, "could not check channel ownership", err)
	}

	videoAsset, err := v.mediaStore.Upload(ctx, req.Video.Data, req.Video.Filename, media.KindVideo)
	if err != nil {
		return nil, err
	}

	video := domain.Video{
		Title:         req.Title,
		Description:   req.Description,
		Category:      req.Category,
		VideoURL:      videoAsset.URL,
		VideoPublicID: videoAsset.Handle,
		Uploader:      actor,
		Channel:       channel.ID,
		Duration:      videoAsset.DurationSeconds,
	}

	thumbAsset, err := v.mediaStore.Upload(ctx, req.Thumbnail.Data, req.Thumbnail.Filename, media.KindThumbnail)
	if err != nil {
		v.releaseAsset(ctx, videoAsset.Handle, media.KindVideo)
		return nil, err
	}
	video.ThumbnailURL = thumbAsset.URL
	video.ThumbnailPublicID = thumbAsset.Handle

	id, err := v.videoRepo.Create(ctx, &video)
	if err != nil {
		v.releaseAsset(ctx, video.VideoPublicID, media.KindVideo)
		v.releaseAsset(ctx, video.ThumbnailPublicID, media.KindThumbnail)
		return nil, apperr.Wrap(apperr.KindUnknown, "could not create video", err)
	}

	if err := v.channelRepo.AddVideo(ctx, channel.ID, id); err != nil {
		return nil, apperr.Wrap(apperr.KindUnknown, "could not link video to channel", err)
	}

	logger.Log.Info("video uploaded",
		zap.String("video", id.Hex()),
		zap.String("channel", channel.ID.Hex()),
		zap.Int("duration", video.Duration))
	return &video, nil
}

// List returns all videos, newest first, with uploader and channel populated
func (v *videoUseCase) List(ctx context.Context) ([]domain.VideoView, error) {
	videos, err := v.videoRepo.FindAll(ctx)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindUnknown, "could not list videos", err)
	}
	return v.viewsOf(ctx, videos)
}

// Search case-insensitive keyword match on title and description
func (v *videoUseCase) Search(ctx context.Context, keyword string) ([]domain.VideoView, error) {
	if keyword == "" {
		return nil, apperr.New(apperr.KindValidation, "search keyword is required")
	}

	videos, err := v.videoRepo.Search(ctx, keyword)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindUnknown, "could not search videos", err)
	}
	return v.viewsOf(ctx, videos)
}

// Get returns one video with uploader, channel and the comment thread populated
func (v *videoUseCase) Get(ctx context.Context, videoID string) (*domain.VideoView, error) {
	id, err := primitive.ObjectIDFromHex(videoID)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindValidation, "invalid video id", err)
	}

	video, err := v.videoRepo.FindByID(ctx, id)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindNotFound, "video not found", err)
	}

	views, err := v.viewsOf(ctx, []domain.Video{*video})
	if err != nil {
		return nil, err
	}
	view := views[0]

	comments, err := v.commentRepo.FindByVideo(ctx, id)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindUnknown, "could not load comments", err)
	}
	view.Comments, err = v.commentViewsOf(ctx, comments)
	if err != nil {
		return nil, err
	}

	return &view, nil
}

// Update edits metadata and optionally swaps the media, uploader only.
// Replaced objects are removed best-effort after the new ones are stored.
func (v *videoUseCase) Update(ctx context.Context, actorID, videoID string, req *domain.UpdateVideoReq) (*domain.Video, error) {
	video, err := v.uploadedVideo(ctx, actorID, videoID)
	if err != nil {
		return nil, err
	}

	if req.Title != "" {
		video.Title = req.Title
	}
	if req.Description != "" {
		video.Description = req.Description
	}
	video.Category = req.Category

	if req.Video != nil {
		asset, err := v.mediaStore.Upload(ctx, req.Video.Data, req.Video.Filename, media.KindVideo)
		if err != nil {
			return nil, err
		}
		v.releaseAsset(ctx, video.VideoPublicID, media.KindVideo)
		video.VideoURL = asset.URL
		video.VideoPublicID = asset.Handle
		video.Duration = asset.DurationSeconds
	}

	if req.Thumbnail != nil {
		asset, err := v.mediaStore.Upload(ctx, req.Thumbnail.Data, req.Thumbnail.Filename, media.KindThumbnail)
		if err != nil {
			return nil, err
		}
		v.releaseAsset(ctx, video.ThumbnailPublicID, media.KindThumbnail)
		video.ThumbnailURL = asset.URL
		video.ThumbnailPublicID = asset.Handle
	}

	if err := v.videoRepo.Update(ctx, video); err != nil {
		return nil, apperr.Wrap(apperr.KindUnknown, "could not update video", err)
	}
	return video, nil
}

// Delete removes the video, its comments, its media and the channel link.
// Media removals are best-effort.
func (v *videoUseCase) Delete(ctx context.Context, actorID, videoID string) error {
	video, err := v.uploadedVideo(ctx, actorID, videoID)
	if err != nil {
		return err
	}

	if err := v.commentRepo.DeleteByVideo(ctx, video.ID); err != nil {
		return apperr.Wrap(apperr.KindUnknown, "could not delete video comments", err)
	}

	v.releaseAsset(ctx, video.VideoPublicID, media.KindVideo)
	v.releaseAsset(ctx, video.ThumbnailPublicID, media.KindThumbnail)

	if err := v.videoRepo.Delete(ctx, video.ID); err != nil {
		return apperr.Wrap(apperr.KindUnknown, "could not delete video", err)
	}

	if err := v.channelRepo.RemoveVideo(ctx, video.Channel, video.ID); err != nil {
		return apperr.Wrap(apperr.KindUnknown, "could not unlink video from channel", err)
	}

	logger.Log.Info("video deleted", zap.String("video", videoID))
	return nil
}

// ToggleLike likes the video, or takes the like back if it is already
// there. Setting a like always clears the actor's dislike in the same
// update, so the two can never coexist.
func (v *videoUseCase) ToggleLike(ctx context.Context, actorID, videoID string) (*domain.Video, error) {
	actor, id, video, err := v.reactionTarget(ctx, actorID, videoID)
	if err != nil {
		return nil, err
	}

	if contains(video.Likes, actor) {
		err = v.videoRepo.UnsetLike(ctx, id, actor)
	} else {
		err = v.videoRepo.SetLike(ctx, id, actor)
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.KindUnknown, "could not toggle like", err)
	}

	return v.refetch(ctx, id)
}

// ToggleDislike mirror of ToggleLike
func (v *videoUseCase) ToggleDislike(ctx context.Context, actorID, videoID string) (*domain.Video, error) {
	actor, id, video, err := v.reactionTarget(ctx, actorID, videoID)
	if err != nil {
		return nil, err
	}

	if contains(video.Dislikes, actor) {
		err = v.videoRepo.UnsetDislike(ctx, id, actor)
	} else {
		err = v.videoRepo.SetDislike(ctx, id, actor)
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.KindUnknown, "could not toggle dislike", err)
	}

	return v.refetch(ctx, id)
}

// IncreaseViews bumps the view counter server-side and returns the new state
func (v *videoUseCase) IncreaseViews(ctx context.Context, videoID string) (*domain.Video, error) {
	id, err := primitive.ObjectIDFromHex(videoID)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindValidation, "invalid video id", err)
	}

	video, err := v.videoRepo.IncViews(ctx, id)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.Wrap(apperr.KindNotFound, "video not found", err)
	} else if err != nil {
		return nil, apperr.Wrap(apperr.KindUnknown, "could not increase views", err)
	}
	return video, nil
}

// uploadedVideo loads the video and enforces that the actor uploaded it
func (v *videoUseCase) uploadedVideo(ctx context.Context, actorID, videoID string) (*domain.Video, error) {
	actor, err := primitive.ObjectIDFromHex(actorID)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindValidation, "invalid user id", err)
	}
	id, err := primitive.ObjectIDFromHex(videoID)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindValidation, "invalid video id", err)
	}

	video, err := v.videoRepo.FindByID(ctx, id)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindNotFound, "video not found", err)
	}
	if video.Uploader != actor {
		return nil, apperr.New(apperr.KindForbidden, "not the uploader")
	}
	return video, nil
}

func (v *videoUseCase) reactionTarget(ctx context.Context, actorID, videoID string) (primitive.ObjectID, primitive.ObjectID, *domain.Video, error) {
	actor, err := primitive.ObjectIDFromHex(actorID)
	if err != nil {
		return primitive.NilObjectID, primitive.NilObjectID, nil, apperr.Wrap(apperr.KindValidation, "invalid user id", err)
	}
	id, err := primitive.ObjectIDFromHex(videoID)
	if err != nil {
		return primitive.NilObjectID, primitive.NilObjectID, nil, apperr.Wrap(apperr.KindValidation, "invalid video id", err)
	}

	video, err := v.videoRepo.FindByID(ctx, id)
	if err != nil {
		return primitive.NilObjectID, primitive.NilObjectID, nil, apperr.Wrap(apperr.KindNotFound, "video not found", err)
	}
	return actor, id, video, nil
}

func (v *videoUseCase) refetch(ctx context.Context, id primitive.ObjectID) (*domain.Video, error) {
	video, err := v.videoRepo.FindByID(ctx, id)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindNotFound, "video not found", err)
	}
	return video, nil
}

// viewsOf batch-populates uploader and channel display fields
func (v *videoUseCase) viewsOf(ctx context.Context, videos []domain.Video) ([]domain.VideoView, error) {
	uploaderSet := map[primitive.ObjectID]struct{}{}
	channelSet := map[primitive.ObjectID]struct{}{}
	for _, vid := range videos {
		uploaderSet[vid.Uploader] = struct{}{}
		channelSet[vid.Channel] = struct{}{}
	}

	uploaderIDs := make([]primitive.ObjectID, 0, len(uploaderSet))
	for id := range uploaderSet {
		uploaderIDs = append(uploaderIDs, id)
	}
	channelIDs := make([]primitive.ObjectID, 0, len(channelSet))
	for id := range channelSet {
		channelIDs = append(channelIDs, id)
	}

	users, err := v.userRepo.FindByIDs(ctx, uploaderIDs)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindUnknown, "could not load uploaders", err)
	}
	channels, err := v.channelRepo.FindByIDs(ctx, channelIDs)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindUnknown, "could not load channels", err)
	}

	uploaderByID := map[primitive.ObjectID]domain.UploaderInfo{}
	for _, u := range users {
		uploaderByID[u.ID] = domain.UploaderInfo{ID: u.ID, Username: u.Username}
	}
	channelByID := map[primitive.ObjectID]domain.ChannelInfo{}
	for _, ch := range channels {
		channelByID[ch.ID] = domain.ChannelInfo{ID: ch.ID, ChannelName: ch.ChannelName, ChannelBanner: ch.ChannelBanner}
	}

	views := make([]domain.VideoView, 0, len(videos))
	for _, vid := range videos {
		views = append(views, domain.VideoView{
			ID:           vid.ID,
			Title:        vid.Title,
			Description:  vid.Description,
			Category:     vid.Category,
			VideoURL:     vid.VideoURL,
			ThumbnailURL: vid.ThumbnailURL,
			Uploader:     uploaderByID[vid.Uploader],
			Channel:      channelByID[vid.Channel],
			Likes:        vid.Likes,
			Dislikes:     vid.Dislikes,
			Duration:     vid.Duration,
			Views:        vid.Views,
			CreatedAt:    vid.CreatedAt,
			UpdatedAt:    vid.UpdatedAt,
		})
	}
	return views, nil
}

// commentViewsOf batch-populates comment author display names
func (v *videoUseCase) commentViewsOf(ctx context.Context, comments []domain.Comment) ([]domain.CommentView, error) {
	authorSet := map[primitive.ObjectID]struct{}{}
	for _, c := range comments {
		authorSet[c.Author] = struct{}{}
	}
	authorIDs := make([]primitive.ObjectID, 0, len(authorSet))
	for id := range authorSet {
		authorIDs = append(authorIDs, id)
	}

	users, err := v.userRepo.FindByIDs(ctx, authorIDs)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindUnknown, "could not load comment authors", err)
	}
	authorByID := map[primitive.ObjectID]domain.AuthorInfo{}
	for _, u := range users {
		authorByID[u.ID] = domain.AuthorInfo{ID: u.ID, Username: u.Username}
	}

	views := make([]domain.CommentView, 0, len(comments))
	for _, c := range comments {
		views = append(views, domain.CommentView{
			ID:        c.ID,
			Text:      c.Text,
			Author:    authorByID[c.Author],
			Video:     c.Video,
			CreatedAt: c.CreatedAt,
			UpdatedAt: c.UpdatedAt,
		})
	}
	return views, nil
}

// releaseAsset best-effort media removal, failures are logged and dropped
func (v *videoUseCase) releaseAsset(ctx context.Context, handle string, kind media.Kind) {
	if handle == "" {
		return
	}
	if err := v.mediaStore.Delete(ctx, handle, kind); err != nil {
		logger.Log.Warn("could not remove media object", zap.String("handle", handle), zap.Error(err))
	}
}

func contains(ids []primitive.ObjectID, id primitive.ObjectID) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
