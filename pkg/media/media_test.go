package media

import (
	"context"
	"strings"
	"testing"

	"video_sharing_service/pkg/apperr"
	"video_sharing_service/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockObjectClient Mock ObjectClient
type MockObjectClient struct {
	mock.Mock
}

// UploadBytes mock upload
func (m *MockObjectClient) UploadBytes(ctx context.Context, objectName string, data []byte, contentType string) error {
	args := m.Called(ctx, objectName, data, contentType)
	return args.Error(0)
}

// RemoveObject mock remove
func (m *MockObjectClient) RemoveObject(ctx context.Context, objectName string) error {
	args := m.Called(ctx, objectName)
	return args.Error(0)
}

func TestFolderFor(t *testing.T) {
	assert.Equal(t, "videos", folderFor(KindVideo))
	assert.Equal(t, "thumbnails", folderFor(KindThumbnail))
	assert.Equal(t, "profiles", folderFor(KindProfile))
	assert.Equal(t, "banners", folderFor(KindBanner))
}

func TestUploadBuildsURLAndHandle(t *testing.T) {
	logger.SetNewNop()
	ctx := context.Background()

	client := new(MockObjectClient)
	client.On("UploadBytes", ctx, mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()

	store := NewStore(client, "http://localhost:9000/videoshare/")
	asset, err := store.Upload(ctx, []byte("fake image bytes"), "banner.png", KindBanner)

	assert.NoError(t, err)
	assert.True(t, strings.HasPrefix(asset.Handle, "banners/"))
	assert.Equal(t, "http://localhost:9000/videoshare/"+asset.Handle, asset.URL)
	assert.Equal(t, 0, asset.DurationSeconds)
	client.AssertExpectations(t)
}

func TestUploadProbesVideoDuration(t *testing.T) {
	logger.SetNewNop()
	ctx := context.Background()

	origProbe := probeDuration
	probeDuration = func(path string) (int, error) { return 120, nil }
	defer func() { probeDuration = origProbe }()

	client := new(MockObjectClient)
	client.On("UploadBytes", ctx, mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()

	store := NewStore(client, "http://localhost:9000/videoshare")
	asset, err := store.Upload(ctx, []byte("fake video bytes"), "clip.mp4", KindVideo)

	assert.NoError(t, err)
	assert.True(t, strings.HasPrefix(asset.Handle, "videos/"))
	assert.Equal(t, 120, asset.DurationSeconds)
	client.AssertExpectations(t)
}

func TestUploadEmptyBufferFails(t *testing.T) {
	logger.SetNewNop()

	client := new(MockObjectClient)
	store := NewStore(client, "http://localhost:9000/videoshare")

	_, err := store.Upload(context.Background(), nil, "clip.mp4", KindVideo)
	assert.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	client.AssertNotCalled(t, "UploadBytes")
}

func TestUploadFailureIsFatal(t *testing.T) {
	logger.SetNewNop()
	ctx := context.Background()

	client := new(MockObjectClient)
	client.On("UploadBytes", ctx, mock.Anything, mock.Anything, mock.Anything).Return(assert.AnError).Once()

	store := NewStore(client, "http://localhost:9000/videoshare")
	_, err := store.Upload(ctx, []byte("bytes"), "banner.png", KindBanner)

	assert.Error(t, err)
	assert.Equal(t, apperr.KindMediaUpload, apperr.KindOf(err))
}

func TestDeleteClassifiesFailure(t *testing.T) {
	logger.SetNewNop()
	ctx := context.Background()

	client := new(MockObjectClient)
	client.On("RemoveObject", ctx, "banners/x.png").Return(assert.AnError).Once()

	store := NewStore(client, "http://localhost:9000/videoshare")
	err := store.Delete(ctx, "banners/x.png", KindBanner)

	assert.Error(t, err)
	assert.Equal(t, apperr.KindMediaDelete, apperr.KindOf(err))

	// empty handle is a no-op
	assert.NoError(t, store.Delete(ctx, "", KindBanner))
}
