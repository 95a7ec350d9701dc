package repository

import (
	"context"
	"time"

	"video_sharing_service/internal/video/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// VideoRepository definition get Video info
type VideoRepository interface {
	Create(ctx context.Context, video *domain.Video) (primitive.ObjectID, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Video, error)
	FindAll(ctx context.Context) ([]domain.Video, error)
	FindByChannel(ctx context.Context, channelID primitive.ObjectID) ([]domain.Video, error)
	Search(ctx context.Context, keyword string) ([]domain.Video, error)
	Update(ctx context.Context, video *domain.Video) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	DeleteByChannel(ctx context.Context, channelID primitive.ObjectID) error
	AddComment(ctx context.Context, videoID, commentID primitive.ObjectID) error
	RemoveComment(ctx context.Context, videoID, commentID primitive.ObjectID) error
	SetLike(ctx context.Context, videoID, userID primitive.ObjectID) error
	UnsetLike(ctx context.Context, videoID, userID primitive.ObjectID) error
	SetDislike(ctx context.Context, videoID, userID primitive.ObjectID) error
	UnsetDislike(ctx context.Context, videoID, userID primitive.ObjectID) error
	IncViews(ctx context.Context, videoID primitive.ObjectID) (*domain.Video, error)
}

type videoRepository struct {
	videosColl *mongo.Collection
}

// NewVideoRepository create a VideoRepository backed by the videos collection
func NewVideoRepository(db *mongo.Database) VideoRepository {
	return &videoRepository{
		videosColl: db.Collection("videos"),
	}
}

func (r *videoRepository) Create(ctx context.Context, video *domain.Video) (primitive.ObjectID, error) {
	now := time.Now()
	video.CreatedAt = now
	video.UpdatedAt = now
	if video.Likes == nil {
		video.Likes = []primitive.ObjectID{}
	}
	if video.Dislikes == nil {
		video.Dislikes = []primitive.ObjectID{}
	}
	if video.Comments == nil {
		video.Comments = []primitive.ObjectID{}
	}

	res, err := r.videosColl.InsertOne(ctx, video)
	if err != nil {
		return primitive.NilObjectID, err
	}
	id := res.InsertedID.(primitive.ObjectID)
	video.ID = id
	return id, nil
}

func (r *videoRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Video, error) {
	var video domain.Video
	if err := r.videosColl.FindOne(ctx, bson.M{"_id": id}).Decode(&video); err != nil {
		return nil, err
	}
	return &video, nil
}

// FindAll latest first
func (r *videoRepository) FindAll(ctx context.Context) ([]domain.Video, error) {
	return r.find(ctx, bson.M{})
}

func (r *videoRepository) FindByChannel(ctx context.Context, channelID primitive.ObjectID) ([]domain.Video, error) {
	return r.find(ctx, bson.M{"channel": channelID})
}

// Search case-insensitive regex match on title or description
func (r *videoRepository) Search(ctx context.Context, keyword string) ([]domain.Video, error) {
	filter := bson.M{"$or": bson.A{
		bson.M{"title": bson.M{"$regex": keyword, "$options": "i"}},
		bson.M{"description": bson.M{"$regex": keyword, "$options": "i"}},
	}}
	return r.find(ctx, filter)
}

func (r *videoRepository) find(ctx context.Context, filter bson.M) ([]domain.Video, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.videosColl.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var videos []domain.Video
	if err := cursor.All(ctx, &videos); err != nil {
		return nil, err
	}
	return videos, nil
}

func (r *videoRepository) Update(ctx context.Context, video *domain.Video) error {
	video.UpdatedAt = time.Now()
	update := bson.M{"$set": bson.M{
		"title":             video.Title,
		"description":       video.Description,
		"category":          video.Category,
		"videoUrl":          video.VideoURL,
		"videoPublicId":     video.VideoPublicID,
		"thumbnailUrl":      video.ThumbnailURL,
		"thumbnailPublicId": video.ThumbnailPublicID,
		"duration":          video.Duration,
		"updatedAt":         video.UpdatedAt,
	}}
	res, err := r.videosColl.UpdateOne(ctx, bson.M{"_id": video.ID}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *videoRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.videosColl.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

func (r *videoRepository) DeleteByChannel(ctx context.Context, channelID primitive.ObjectID) error {
	_, err := r.videosColl.DeleteMany(ctx, bson.M{"channel": channelID})
	return err
}

func (r *videoRepository) AddComment(ctx context.Context, videoID, commentID primitive.ObjectID) error {
	return r.updateOne(ctx, videoID, bson.M{"$push": bson.M{"comments": commentID}})
}

func (r *videoRepository) RemoveComment(ctx context.Context, videoID, commentID primitive.ObjectID) error {
	return r.updateOne(ctx, videoID, bson.M{"$pull": bson.M{"comments": commentID}})
}

// SetLike adds the user to likes and pulls them from dislikes in one
// update, so the two sets can never both contain the same user.
func (r *videoRepository) SetLike(ctx context.Context, videoID, userID primitive.ObjectID) error {
	return r.updateOne(ctx, videoID, bson.M{
		"$addToSet": bson.M{"likes": userID},
		"$pull":     bson.M{"dislikes": userID},
	})
}

func (r *videoRepository) UnsetLike(ctx context.Context, videoID, userID primitive.ObjectID) error {
	return r.updateOne(ctx, videoID, bson.M{"$pull": bson.M{"likes": userID}})
}

// SetDislike mirror of SetLike
func (r *videoRepository) SetDislike(ctx context.Context, videoID, userID primitive.ObjectID) error {
	return r.updateOne(ctx, videoID, bson.M{
		"$addToSet": bson.M{"dislikes": userID},
		"$pull":     bson.M{"likes": userID},
	})
}

func (r *videoRepository) UnsetDislike(ctx context.Context, videoID, userID primitive.ObjectID) error {
	return r.updateOne(ctx, videoID, bson.M{"$pull": bson.M{"dislikes": userID}})
}

// IncViews server-side $inc, returning the document after the increment.
// Concurrent calls each add exactly 1.
func (r *videoRepository) IncViews(ctx context.Context, videoID primitive.ObjectID) (*domain.Video, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	update := bson.M{
		"$inc": bson.M{"views": 1},
		"$set": bson.M{"updatedAt": time.Now()},
	}

	var video domain.Video
	if err := r.videosColl.FindOneAndUpdate(ctx, bson.M{"_id": videoID}, update, opts).Decode(&video); err != nil {
		return nil, err
	}
	return &video, nil
}

func (r *videoRepository) updateOne(ctx context.Context, videoID primitive.ObjectID, update bson.M) error {
	if _, ok := update["$set"]; !ok {
		update["$set"] = bson.M{"updatedAt": time.Now()}
	}
	res, err := r.videosColl.UpdateOne(ctx, bson.M{"_id": videoID}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
