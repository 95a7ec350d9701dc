package app

import (
	"context"

	accountrepo "video_sharing_service/internal/account/repository"
	"video_sharing_service/internal/video/domain"
	"video_sharing_service/internal/video/repository"
	"video_sharing_service/pkg/apperr"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CommentUseCase application services around video comments
type CommentUseCase interface {
	Add(ctx context.Context, actorID, videoID, text string) (*domain.CommentView, error)
	ListByVideo(ctx context.Context, videoID string) ([]domain.CommentView, error)
	Edit(ctx context.Context, actorID, commentID, text string) (*domain.Comment, error)
	Delete(ctx context.Context, actorID, commentID string) error
}

type commentUseCase struct {
	commentRepo repository.CommentRepository
	videoRepo   repository.VideoRepository
	userRepo    accountrepo.UserRepository
}

// NewCommentUseCase create a new CommentUseCase
func NewCommentUseCase(commentRepo repository.CommentRepository,
	videoRepo repository.VideoRepository,
	userRepo accountrepo.UserRepository,
) CommentUseCase {
	return &commentUseCase{
		commentRepo: commentRepo,
		videoRepo:   videoRepo,
		userRepo:    userRepo,
	}
}

// Add creates the comment and links it from the video's comment list
func (c *commentUseCase) Add(ctx context.Context, actorID, videoID, text string) (*domain.CommentView, error) {
	if text == "" {
		return nil, apperr.New(apperr.KindValidation, "text is required")
	}

	actor, err := primitive.ObjectIDFromHex(actorID)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindValidation, "invalid user id", err)
	}
	vid, err := primitive.ObjectIDFromHex(videoID)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindValidation, "invalid video id", err)
	}

	if _, err := c.videoRepo.FindByID(ctx, vid); err != nil {
		return nil, apperr.Wrap(apperr.KindNotFound, "video not found", err)
	}

	comment := domain.Comment{
		Text:   text,
		Author: actor,
		Video:  vid,
	}
	id, err := c.commentRepo.Create(ctx, &comment)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindUnknown, "could not create comment", err)
	}

	if err := c.videoRepo.AddComment(ctx, vid, id); err != nil {
		return nil, apperr.Wrap(apperr.KindUnknown, "could not link comment to video", err)
	}

	view := domain.CommentView{
		ID:        comment.ID,
		Text:      comment.Text,
		Author:    domain.AuthorInfo{ID: actor},
		Video:     vid,
		CreatedAt: comment.CreatedAt,
		UpdatedAt: comment.UpdatedAt,
	}
	if author, err := c.userRepo.FindByID(ctx, actor); err == nil {
		view.Author.Username = author.Username
	}
	return &view, nil
}

// ListByVideo returns the comment thread, newest first, authors populated
func (c *commentUseCase) ListByVideo(ctx context.Context, videoID string) ([]domain.CommentView, error) {
	vid, err := primitive.ObjectIDFromHex(videoID)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindValidation, "invalid video id", err)
	}

	if _, err := c.videoRepo.FindByID(ctx, vid); err != nil {
		return nil, apperr.Wrap(apperr.KindNotFound, "video not found", err)
	}

	comments, err := c.commentRepo.FindByVideo(ctx, vid)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindUnknown, "could not load comments", err)
	}

	authorSet := map[primitive.ObjectID]struct{}{}
	for _, cm := range comments {
		authorSet[cm.Author] = struct{}{}
	}
	authorIDs := make([]primitive.ObjectID, 0, len(authorSet))
	for id := range authorSet {
		authorIDs = append(authorIDs, id)
	}

	users, err := c.userRepo.FindByIDs(ctx, authorIDs)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindUnknown, "could not load comment authors", err)
	}
	authorByID := map[primitive.ObjectID]domain.AuthorInfo{}
	for _, u := range users {
		authorByID[u.ID] = domain.AuthorInfo{ID: u.ID, Username: u.Username}
	}

	views := make([]domain.CommentView, 0, len(comments))
	for _, cm := range comments {
		views = append(views, domain.CommentView{
			ID:        cm.ID,
			Text:      cm.Text,
			Author:    authorByID[cm.Author],
			Video:     cm.Video,
			CreatedAt: cm.CreatedAt,
			UpdatedAt: cm.UpdatedAt,
		})
	}
	return views, nil
}

// Edit rewrites the text, author only
func (c *commentUseCase) Edit(ctx context.Context, actorID, commentID, text string) (*domain.Comment, error) {
	if text == "" {
		return nil, apperr.New(apperr.KindValidation, "text is required")
	}

	comment, err := c.authoredComment(ctx, actorID, commentID)
	if err != nil {
		return nil, err
	}

	if err := c.commentRepo.UpdateText(ctx, comment.ID, text); err != nil {
		return nil, apperr.Wrap(apperr.KindUnknown, "could not update comment", err)
	}
	comment.Text = text
	return comment, nil
}

// Delete removes the comment and its link on the video, author only
func (c *commentUseCase) Delete(ctx context.Context, actorID, commentID string) error {
	comment, err := c.authoredComment(ctx, actorID, commentID)
	if err != nil {
		return err
	}

	if err := c.videoRepo.RemoveComment(ctx, comment.Video, comment.ID); err != nil {
		return apperr.Wrap(apperr.KindUnknown, "could not unlink comment from video", err)
	}
	if err := c.commentRepo.Delete(ctx, comment.ID); err != nil {
		return apperr.Wrap(apperr.KindUnknown, "could not delete comment", err)
	}
	return nil
}

// authoredComment loads the comment and enforces authorship
func (c *commentUseCase) authoredComment(ctx context.Context, actorID, commentID string) (*domain.Comment, error) {
	actor, err := primitive.ObjectIDFromHex(actorID)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindValidation, "invalid user id", err)
	}
	id, err := primitive.ObjectIDFromHex(commentID)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindValidation, "invalid comment id", err)
	}

	comment, err := c.commentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindNotFound, "comment not found", err)
	}
	if comment.Author != actor {
		return nil, apperr.New(apperr.KindForbidden, "not the comment author")
	}
	return comment, nil
}
