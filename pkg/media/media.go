package media

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"video_sharing_service/pkg/apperr"
	"video_sharing_service/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Kind selects the storage folder for an uploaded asset.
type Kind string

const (
	// KindVideo video media files
	KindVideo Kind = "video"
	// KindThumbnail video thumbnail images
	KindThumbnail Kind = "thumbnail"
	// KindProfile user profile pictures
	KindProfile Kind = "profile"
	// KindBanner channel banner images
	KindBanner Kind = "banner"
)

// Asset is the durable result of an upload. Handle is the object key
// needed to delete the asset later.
type Asset struct {
	URL             string
	Handle          string
	DurationSeconds int
}

// Store uploads and deletes binary assets on the external object store.
// Upload failures are fatal to the enclosing operation; Delete failures
// are best-effort and must be logged, never propagated as fatal.
type Store interface {
	Upload(ctx context.Context, data []byte, filename string, kind Kind) (*Asset, error)
	Delete(ctx context.Context, handle string, kind Kind) error
}

// ObjectClient is the part of the object-store client the gateway needs.
type ObjectClient interface {
	UploadBytes(ctx context.Context, objectName string, data []byte, contentType string) error
	RemoveObject(ctx context.Context, objectName string) error
}

type minioStore struct {
	client  ObjectClient
	baseURL string
}

// NewStore create a media store gateway on top of an object-store client.
// baseURL is the public prefix assets are served from, e.g.
// "http://localhost:9000/videoshare".
func NewStore(client ObjectClient, baseURL string) Store {
	return &minioStore{
		client:  client,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// folderFor maps an asset kind to its bucket folder
func folderFor(kind Kind) string {
	switch kind {
	case KindVideo:
		return "videos"
	case KindThumbnail:
		return "thumbnails"
	case KindProfile:
		return "profiles"
	case KindBanner:
		return "banners"
	default:
		return "misc"
	}
}

// probeDuration shells out to ffprobe; swapped out in tests.
var probeDuration = func(path string) (int, error) {
	cmd := exec.Command("ffprobe",
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		path,
	)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return 0, fmt.Errorf("ffprobe error: %v, output: %s", err, string(output))
	}
	seconds, err := strconv.ParseFloat(strings.TrimSpace(string(output)), 64)
	if err != nil {
		return 0, fmt.Errorf("ffprobe parse error: %v", err)
	}
	return int(seconds), nil
}

func (s *minioStore) Upload(ctx context.Context, data []byte, filename string, kind Kind) (*Asset, error) {
	if len(data) == 0 {
		return nil, apperr.New(apperr.KindValidation, "empty file")
	}

	objectName := fmt.Sprintf("%s/%s%s", folderFor(kind), uuid.New().String(), filepath.Ext(filename))
	contentType := http.DetectContentType(data)

	if err := s.client.UploadBytes(ctx, objectName, data, contentType); err != nil {
		return nil, apperr.Wrap(apperr.KindMediaUpload, "media upload failed", err)
	}

	asset := &Asset{
		URL:    s.baseURL + "/" + objectName,
		Handle: objectName,
	}

	// Duration metadata only exists for video media. A failed probe is not
	// fatal: the asset is already stored, duration stays zero.
	if kind == KindVideo {
		duration, err := durationOf(data, filename)
		if err != nil {
			logger.Log.Warn("could not probe video duration", zap.String("object", objectName), zap.Error(err))
		}
		asset.DurationSeconds = duration
	}

	return asset, nil
}

func (s *minioStore) Delete(ctx context.Context, handle string, kind Kind) error {
	if handle == "" {
		return nil
	}
	if err := s.client.RemoveObject(ctx, handle); err != nil {
		return apperr.Wrap(apperr.KindMediaDelete, "media delete failed", err)
	}
	return nil
}

// durationOf writes the buffer to a temp file and runs ffprobe against it
func durationOf(data []byte, filename string) (int, error) {
	tmpFile, err := os.CreateTemp("", "probe-*"+filepath.Ext(filename))
	if err != nil {
		return 0, err
	}
	defer os.Remove(tmpFile.Name())
	defer tmpFile.Close()

	if _, err := tmpFile.Write(data); err != nil {
		return 0, err
	}
	if err := tmpFile.Close(); err != nil {
		return 0, err
	}

	return probeDuration(tmpFile.Name())
}
