package repository

import (
	"context"
	"time"

	"video_sharing_service/internal/account/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// UserRepository definition get User info
type UserRepository interface {
	EnsureIndexes(ctx context.Context) error
	CreateUser(ctx context.Context, user *domain.User) (primitive.ObjectID, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]domain.User, error)
	AddChannel(ctx context.Context, userID, channelID primitive.ObjectID) error
	RemoveChannel(ctx context.Context, userID, channelID primitive.ObjectID) error
	AddSubscription(ctx context.Context, userID, channelID primitive.ObjectID) error
	RemoveSubscription(ctx context.Context, userID, channelID primitive.ObjectID) error
}

type userRepository struct {
	usersColl *mongo.Collection
}

// NewUserRepository create a UserRepository backed by the users collection
func NewUserRepository(db *mongo.Database) UserRepository {
	return &userRepository{
		usersColl: db.Collection("users"),
	}
}

// EnsureIndexes backs the email-uniqueness rule with a unique index, so a
// duplicate slipping past the application check still cannot be inserted.
func (r *userRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.usersColl.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func (r *userRepository) CreateUser(ctx context.Context, user *domain.User) (primitive.ObjectID, error) {
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	if user.Channels == nil {
		user.Channels = []primitive.ObjectID{}
	}
	if user.Subscriptions == nil {
		user.Subscriptions = []primitive.ObjectID{}
	}

	res, err := r.usersColl.InsertOne(ctx, user)
	if err != nil {
		return primitive.NilObjectID, err
	}
	id := res.InsertedID.(primitive.ObjectID)
	user.ID = id
	return id, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	if err := r.usersColl.FindOne(ctx, bson.M{"email": email}).Decode(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	var user domain.User
	if err := r.usersColl.FindOne(ctx, bson.M{"_id": id}).Decode(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]domain.User, error) {
	if len(ids) == 0 {
		return []domain.User{}, nil
	}

	cursor, err := r.usersColl.Find(ctx, bson.M{"_id": bson.M{"$in": ids}}, options.Find())
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var users []domain.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepository) AddChannel(ctx context.Context, userID, channelID primitive.ObjectID) error {
	return r.updateOne(ctx, userID, bson.M{"$push": bson.M{"channels": channelID}})
}

func (r *userRepository) RemoveChannel(ctx context.Context, userID, channelID primitive.ObjectID) error {
	return r.updateOne(ctx, userID, bson.M{"$pull": bson.M{"channels": channelID}})
}

// AddSubscription uses $addToSet so a repeated toggle can never duplicate
// the channel reference.
func (r *userRepository) AddSubscription(ctx context.Context, userID, channelID primitive.ObjectID) error {
	return r.updateOne(ctx, userID, bson.M{"$addToSet": bson.M{"subscriptions": channelID}})
}

func (r *userRepository) RemoveSubscription(ctx context.Context, userID, channelID primitive.ObjectID) error {
	return r.updateOne(ctx, userID, bson.M{"$pull": bson.M{"subscriptions": channelID}})
}

func (r *userRepository) updateOne(ctx context.Context, userID primitive.ObjectID, update bson.M) error {
	update["$set"] = bson.M{"updatedAt": time.Now()}
	res, err := r.usersColl.UpdateOne(ctx, bson.M{"_id": userID}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
