package app

import (
	"context"
	"time"

	accountdomain "video_sharing_service/internal/account/domain"
	channeldomain "video_sharing_service/internal/channel/domain"
	"video_sharing_service/pkg/media"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MockUserRepo mock UserRepository
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) EnsureIndexes(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUserRepo) CreateUser(ctx context.Context, user *accountdomain.User) (primitive.ObjectID, error) {
	args := m.Called(ctx, user)
	return args.Get(0).(primitive.ObjectID), args.Error(1)
}

func (m *MockUserRepo) FindByEmail(ctx context.Context, email string) (*accountdomain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) != nil {
		return args.Get(0).(*accountdomain.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*accountdomain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) != nil {
		return args.Get(0).(*accountdomain.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepo) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]accountdomain.User, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) != nil {
		return args.Get(0).([]accountdomain.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepo) AddChannel(ctx context.Context, userID, channelID primitive.ObjectID) error {
	args := m.Called(ctx, userID, channelID)
	return args.Error(0)
}

func (m *MockUserRepo) RemoveChannel(ctx context.Context, userID, channelID primitive.ObjectID) error {
	args := m.Called(ctx, userID, channelID)
	return args.Error(0)
}

func (m *MockUserRepo) AddSubscription(ctx context.Context, userID, channelID primitive.ObjectID) error {
	args := m.Called(ctx, userID, channelID)
	return args.Error(0)
}

func (m *MockUserRepo) RemoveSubscription(ctx context.Context, userID, channelID primitive.ObjectID) error {
	args := m.Called(ctx, userID, channelID)
	return args.Error(0)
}

// MockChannelRepo mock ChannelRepository
type MockChannelRepo struct {
	mock.Mock
}

func (m *MockChannelRepo) EnsureIndexes(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockChannelRepo) Create(ctx context.Context, channel *channeldomain.Channel) (primitive.ObjectID, error) {
	args := m.Called(ctx, channel)
	return args.Get(0).(primitive.ObjectID), args.Error(1)
}

func (m *MockChannelRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*channeldomain.Channel, error) {
	args := m.Called(ctx, id)
	if args.Get(0) != nil {
		return args.Get(0).(*channeldomain.Channel), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockChannelRepo) FindByOwner(ctx context.Context, ownerID primitive.ObjectID) (*channeldomain.Channel, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) != nil {
		return args.Get(0).(*channeldomain.Channel), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockChannelRepo) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]channeldomain.Channel, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) != nil {
		return args.Get(0).([]channeldomain.Channel), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockChannelRepo) Update(ctx context.Context, channel *channeldomain.Channel) error {
	args := m.Called(ctx, channel)
	return args.Error(0)
}

func (m *MockChannelRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockChannelRepo) AddVideo(ctx context.Context, channelID, videoID primitive.ObjectID) error {
	args := m.Called(ctx, channelID, videoID)
	return args.Error(0)
}

func (m *MockChannelRepo) RemoveVideo(ctx context.Context, channelID, videoID primitive.ObjectID) error {
	args := m.Called(ctx, channelID, videoID)
	return args.Error(0)
}

func (m *MockChannelRepo) AddSubscriber(ctx context.Context, channelID, userID primitive.ObjectID) error {
	args := m.Called(ctx, channelID, userID)
	return args.Error(0)
}

func (m *MockChannelRepo) RemoveSubscriber(ctx context.Context, channelID, userID primitive.ObjectID) error {
	args := m.Called(ctx, channelID, userID)
	return args.Error(0)
}

// MockMediaStore mock media.Store
type MockMediaStore struct {
	mock.Mock
}

func (m *MockMediaStore) Upload(ctx context.Context, data []byte, filename string, kind media.Kind) (*media.Asset, error) {
	args := m.Called(ctx, data, filename, kind)
	if args.Get(0) != nil {
		return args.Get(0).(*media.Asset), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockMediaStore) Delete(ctx context.Context, handle string, kind media.Kind) error {
	args := m.Called(ctx, handle, kind)
	return args.Error(0)
}

// MockRedisRepo mock RedisRepository for UserSession
type MockRedisRepo struct {
	mock.Mock
}

func (m *MockRedisRepo) Set(ctx context.Context, key string, value accountdomain.UserSession, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *MockRedisRepo) Get(ctx context.Context, key string) (accountdomain.UserSession, error) {
	args := m.Called(ctx, key)
	if args.Get(0) != nil {
		return args.Get(0).(accountdomain.UserSession), args.Error(1)
	}
	return accountdomain.UserSession{}, args.Error(1)
}

func (m *MockRedisRepo) Exists(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

func (m *MockRedisRepo) Del(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockRedisRepo) GetTTL(ctx context.Context, key string) (int, error) {
	args := m.Called(ctx, key)
	return args.Int(0), args.Error(1)
}

func (m *MockRedisRepo) ExtendTTL(ctx context.Context, key string, ttl time.Duration) error {
	args := m.Called(ctx, key, ttl)
	return args.Error(0)
}
