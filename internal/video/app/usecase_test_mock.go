package app

import (
	"context"

	accountdomain "video_sharing_service/internal/account/domain"
	channeldomain "video_sharing_service/internal/channel/domain"
	videodomain "video_sharing_service/internal/video/domain"
	"video_sharing_service/pkg/media"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

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

// MockVideoRepo mock VideoRepository
type MockVideoRepo struct {
	mock.Mock
}

func (m *MockVideoRepo) Create(ctx context.Context, video *videodomain.Video) (primitive.ObjectID, error) {
	args := m.Called(ctx, video)
	return args.Get(0).(primitive.ObjectID), args.Error(1)
}

func (m *MockVideoRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*videodomain.Video, error) {
	args := m.Called(ctx, id)
	if args.Get(0) != nil {
		return args.Get(0).(*videodomain.Video), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockVideoRepo) FindAll(ctx context.Context) ([]videodomain.Video, error) {
	args := m.Called(ctx)
	if args.Get(0) != nil {
		return args.Get(0).([]videodomain.Video), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockVideoRepo) FindByChannel(ctx context.Context, channelID primitive.ObjectID) ([]videodomain.Video, error) {
	args := m.Called(ctx, channelID)
	if args.Get(0) != nil {
		return args.Get(0).([]videodomain.Video), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockVideoRepo) Search(ctx context.Context, keyword string) ([]videodomain.Video, error) {
	args := m.Called(ctx, keyword)
	if args.Get(0) != nil {
		return args.Get(0).([]videodomain.Video), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockVideoRepo) Update(ctx context.Context, video *videodomain.Video) error {
	args := m.Called(ctx, video)
	return args.Error(0)
}

func (m *MockVideoRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockVideoRepo) DeleteByChannel(ctx context.Context, channelID primitive.ObjectID) error {
	args := m.Called(ctx, channelID)
	return args.Error(0)
}

func (m *MockVideoRepo) AddComment(ctx context.Context, videoID, commentID primitive.ObjectID) error {
	args := m.Called(ctx, videoID, commentID)
	return args.Error(0)
}

func (m *MockVideoRepo) RemoveComment(ctx context.Context, videoID, commentID primitive.ObjectID) error {
	args := m.Called(ctx, videoID, commentID)
	return args.Error(0)
}

func (m *MockVideoRepo) SetLike(ctx context.Context, videoID, userID primitive.ObjectID) error {
	args := m.Called(ctx, videoID, userID)
	return args.Error(0)
}

func (m *MockVideoRepo) UnsetLike(ctx context.Context, videoID, userID primitive.ObjectID) error {
	args := m.Called(ctx, videoID, userID)
	return args.Error(0)
}

func (m *MockVideoRepo) SetDislike(ctx context.Context, videoID, userID primitive.ObjectID) error {
	args := m.Called(ctx, videoID, userID)
	return args.Error(0)
}

func (m *MockVideoRepo) UnsetDislike(ctx context.Context, videoID, userID primitive.ObjectID) error {
	args := m.Called(ctx, videoID, userID)
	return args.Error(0)
}

func (m *MockVideoRepo) IncViews(ctx context.Context, videoID primitive.ObjectID) (*videodomain.Video, error) {
	args := m.Called(ctx, videoID)
	if args.Get(0) != nil {
		return args.Get(0).(*videodomain.Video), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockCommentRepo mock CommentRepository
type MockCommentRepo struct {
	mock.Mock
}

func (m *MockCommentRepo) Create(ctx context.Context, comment *videodomain.Comment) (primitive.ObjectID, error) {
	args := m.Called(ctx, comment)
	return args.Get(0).(primitive.ObjectID), args.Error(1)
}

func (m *MockCommentRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*videodomain.Comment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) != nil {
		return args.Get(0).(*videodomain.Comment), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCommentRepo) FindByVideo(ctx context.Context, videoID primitive.ObjectID) ([]videodomain.Comment, error) {
	args := m.Called(ctx, videoID)
	if args.Get(0) != nil {
		return args.Get(0).([]videodomain.Comment), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCommentRepo) UpdateText(ctx context.Context, id primitive.ObjectID, text string) error {
	args := m.Called(ctx, id, text)
	return args.Error(0)
}

func (m *MockCommentRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCommentRepo) DeleteByVideo(ctx context.Context, videoID primitive.ObjectID) error {
	args := m.Called(ctx, videoID)
	return args.Error(0)
}

func (m *MockCommentRepo) DeleteByVideoIDs(ctx context.Context, videoIDs []primitive.ObjectID) error {
	args := m.Called(ctx, videoIDs)
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
