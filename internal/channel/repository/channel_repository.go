package repository

import (
	"context"
	"time"

	"video_sharing_service/internal/channel/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ChannelRepository definition get Channel info
type ChannelRepository interface {
	EnsureIndexes(ctx context.Context) error
	Create(ctx context.Context, channel *domain.Channel) (primitive.ObjectID, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Channel, error)
	FindByOwner(ctx context.Context, ownerID primitive.ObjectID) (*domain.Channel, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]domain.Channel, error)
	Update(ctx context.Context, channel *domain.Channel) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	AddVideo(ctx context.Context, channelID, videoID primitive.ObjectID) error
	RemoveVideo(ctx context.Context, channelID, videoID primitive.ObjectID) error
	AddSubscriber(ctx context.Context, channelID, userID primitive.ObjectID) error
	RemoveSubscriber(ctx context.Context, channelID, userID primitive.ObjectID) error
}

type channelRepository struct {
	channelsColl *mongo.Collection
}

// NewChannelRepository create a ChannelRepository backed by the channels collection
func NewChannelRepository(db *mongo.Database) ChannelRepository {
	return &channelRepository{
		channelsColl: db.Collection("channels"),
	}
}

// EnsureIndexes backs the one-channel-per-owner rule with a unique index,
// so a duplicate slipping past the application check still cannot be
// inserted.
func (r *channelRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.channelsColl.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "owner", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func (r *channelRepository) Create(ctx context.Context, channel *domain.Channel) (primitive.ObjectID, error) {
	now := time.Now()
	channel.CreatedAt = now
	channel.UpdatedAt = now
	if channel.SubscribersList == nil {
		channel.SubscribersList = []primitive.ObjectID{}
	}
	if channel.Videos == nil {
		channel.Videos = []primitive.ObjectID{}
	}

	res, err := r.channelsColl.InsertOne(ctx, channel)
	if err != nil {
		return primitive.NilObjectID, err
	}
	id := res.InsertedID.(primitive.ObjectID)
	channel.ID = id
	return id, nil
}

func (r *channelRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Channel, error) {
	var channel domain.Channel
	if err := r.channelsColl.FindOne(ctx, bson.M{"_id": id}).Decode(&channel); err != nil {
		return nil, err
	}
	return &channel, nil
}

func (r *channelRepository) FindByOwner(ctx context.Context, ownerID primitive.ObjectID) (*domain.Channel, error) {
	var channel domain.Channel
	if err := r.channelsColl.FindOne(ctx, bson.M{"owner": ownerID}).Decode(&channel); err != nil {
		return nil, err
	}
	return &channel, nil
}

func (r *channelRepository) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]domain.Channel, error) {
	if len(ids) == 0 {
		return []domain.Channel{}, nil
	}

	cursor, err := r.channelsColl.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var channels []domain.Channel
	if err := cursor.All(ctx, &channels); err != nil {
		return nil, err
	}
	return channels, nil
}

func (r *channelRepository) Update(ctx context.Context, channel *domain.Channel) error {
	channel.UpdatedAt = time.Now()
	update := bson.M{"$set": bson.M{
		"channelName":    channel.ChannelName,
		"description":    channel.Description,
		"channelBanner":  channel.ChannelBanner,
		"bannerPublicId": channel.BannerPublicID,
		"updatedAt":      channel.UpdatedAt,
	}}
	res, err := r.channelsColl.UpdateOne(ctx, bson.M{"_id": channel.ID}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *channelRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.channelsColl.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

func (r *channelRepository) AddVideo(ctx context.Context, channelID, videoID primitive.ObjectID) error {
	return r.updateOne(ctx, channelID, bson.M{"$push": bson.M{"videos": videoID}})
}

func (r *channelRepository) RemoveVideo(ctx context.Context, channelID, videoID primitive.ObjectID) error {
	return r.updateOne(ctx, channelID, bson.M{"$pull": bson.M{"videos": videoID}})
}

// AddSubscriber adds the user to subscribersList with $addToSet, then
// recomputes the subscribers counter from the list length server-side, so
// concurrent toggles cannot drift the counter away from the list.
func (r *channelRepository) AddSubscriber(ctx context.Context, channelID, userID primitive.ObjectID) error {
	if err := r.updateOne(ctx, channelID, bson.M{"$addToSet": bson.M{"subscribersList": userID}}); err != nil {
		return err
	}
	return r.recountSubscribers(ctx, channelID)
}

func (r *channelRepository) RemoveSubscriber(ctx context.Context, channelID, userID primitive.ObjectID) error {
	if err := r.updateOne(ctx, channelID, bson.M{"$pull": bson.M{"subscribersList": userID}}); err != nil {
		return err
	}
	return r.recountSubscribers(ctx, channelID)
}

// recountSubscribers uses a pipeline update so the count is taken from the
// document as stored, not from a value read earlier by this request.
func (r *channelRepository) recountSubscribers(ctx context.Context, channelID primitive.ObjectID) error {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$set", Value: bson.M{"subscribers": bson.M{"$size": "$subscribersList"}}}},
	}
	_, err := r.channelsColl.UpdateOne(ctx, bson.M{"_id": channelID}, pipeline)
	return err
}

func (r *channelRepository) updateOne(ctx context.Context, channelID primitive.ObjectID, update bson.M) error {
	update["$set"] = bson.M{"updatedAt": time.Now()}
	res, err := r.channelsColl.UpdateOne(ctx, bson.M{"_id": channelID}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
