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

// CommentRepository definition get Comment info
type CommentRepository interface {
	Create(ctx context.Context, comment *domain.Comment) (primitive.ObjectID, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Comment, error)
	FindByVideo(ctx context.Context, videoID primitive.ObjectID) ([]domain.Comment, error)
	UpdateText(ctx context.Context, id primitive.ObjectID, text string) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	DeleteByVideo(ctx context.Context, videoID primitive.ObjectID) error
	DeleteByVideoIDs(ctx context.Context, videoIDs []primitive.ObjectID) error
}

type commentRepository struct {
	commentsColl *mongo.Collection
}

// NewCommentRepository create a CommentRepository backed by the comments collection
func NewCommentRepository(db *mongo.Database) CommentRepository {
	return &commentRepository{
		commentsColl: db.Collection("comments"),
	}
}

func (r *commentRepository) Create(ctx context.Context, comment *domain.Comment) (primitive.ObjectID, error) {
	now := time.Now()
	comment.CreatedAt = now
	comment.UpdatedAt = now

	res, err := r.commentsColl.InsertOne(ctx, comment)
	if err != nil {
		return primitive.NilObjectID, err
	}
	id := res.InsertedID.(primitive.ObjectID)
	comment.ID = id
	return id, nil
}

func (r *commentRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Comment, error) {
	var comment domain.Comment
	if err := r.commentsColl.FindOne(ctx, bson.M{"_id": id}).Decode(&comment); err != nil {
		return nil, err
	}
	return &comment, nil
}

// FindByVideo newest first
func (r *commentRepository) FindByVideo(ctx context.Context, videoID primitive.ObjectID) ([]domain.Comment, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.commentsColl.Find(ctx, bson.M{"video": videoID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var comments []domain.Comment
	if err := cursor.All(ctx, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

func (r *commentRepository) UpdateText(ctx context.Context, id primitive.ObjectID, text string) error {
	update := bson.M{"$set": bson.M{"text": text, "updatedAt": time.Now()}}
	res, err := r.commentsColl.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *commentRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.commentsColl.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

func (r *commentRepository) DeleteByVideo(ctx context.Context, videoID primitive.ObjectID) error {
	_, err := r.commentsColl.DeleteMany(ctx, bson.M{"video": videoID})
	return err
}

func (r *commentRepository) DeleteByVideoIDs(ctx context.Context, videoIDs []primitive.ObjectID) error {
	if len(videoIDs) == 0 {
		return nil
	}
	_, err := r.commentsColl.DeleteMany(ctx, bson.M{"video": bson.M{"$in": videoIDs}})
	return err
}
