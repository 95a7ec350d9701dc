package app

import (
	"context"
	"errors"
	"time"

	"video_sharing_service/internal/account/domain"
	"video_sharing_service/internal/account/repository"
	channelrepo "video_sharing_service/internal/channel/repository"
	"video_sharing_service/pkg/apperr"
	"video_sharing_service/pkg/config"
	"video_sharing_service/pkg/database"
	"video_sharing_service/pkg/encrypt"
	"video_sharing_service/pkg/logger"
	"video_sharing_service/pkg/media"
	token "video_sharing_service/pkg/token"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// AccountUseCase application services around registration and sessions
type AccountUseCase interface {
	Register(ctx context.Context, req *domain.RegisterReq) (*domain.UserView, error)
	Login(ctx context.Context, email, password string) (string, *domain.UserView, error)
	Me(ctx context.Context, userID string) (*domain.UserView, error)
	Logout(ctx context.Context, tokenStr string) error
	SessionExists(ctx context.Context, userID string) (bool, error)
}

type accountUseCase struct {
	userRepo    repository.UserRepository
	channelRepo channelrepo.ChannelRepository
	mediaStore  media.Store
	sessionTTL  time.Duration
	redisRepo   database.RedisRepository[domain.UserSession]
}

// NewAccountUseCase create a new AccountUseCase
func NewAccountUseCase(userRepo repository.UserRepository,
	channelRepo channelrepo.ChannelRepository,
	mediaStore media.Store,
	sessionTTL time.Duration,
	redisRepo database.RedisRepository[domain.UserSession],
) AccountUseCase {
	return &accountUseCase{
		userRepo:    userRepo,
		channelRepo: channelRepo,
		mediaStore:  mediaStore,
		sessionTTL:  sessionTTL,
		redisRepo:   redisRepo,
	}
}

// Register creates the account, hashing the password and uploading the
// optional profile picture before the user document is written.
func (a *accountUseCase) Register(ctx context.Context, req *domain.RegisterReq) (*domain.UserView, error) {
	if req.Username == "" || req.Email == "" || req.Password == "" {
		return nil, apperr.New(apperr.KindValidation, "username, email and password are required")
	}
	if err := encrypt.ValidatePasswordStrength(req.Password); err != nil {
		return nil, apperr.Wrap(apperr.KindValidation, err.Error(), err)
	}

	// Only a clean miss clears the email for use. Any other lookup error
	// must not fall through to the insert, or a transient outage would
	// let a duplicate in.
	if _, err := a.userRepo.FindByEmail(ctx, req.Email); err == nil {
		return nil, apperr.New(apperr.KindConflict, "email already exists")
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.Wrap(apperr.KindUnknown, "could not check email", err)
	}

	pw, err := encrypt.HashPassword(req.Password)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindUnknown, "could not hash password", err)
	}

	user := domain.User{
		Username: req.Username,
		Email:    req.Email,
		Password: pw,
	}

	var profileHandle string
	if req.Profile != nil {
		asset, err := a.mediaStore.Upload(ctx, req.Profile.Data, req.Profile.Filename, media.KindProfile)
		if err != nil {
			return nil, err
		}
		user.ProfilePic = asset.URL
		profileHandle = asset.Handle
	}

	if _, err := a.userRepo.CreateUser(ctx, &user); err != nil {
		// the picture is already stored, release it so it does not leak
		if profileHandle != "" {
			if delErr := a.mediaStore.Delete(ctx, profileHandle, media.KindProfile); delErr != nil {
				logger.Log.Warn("could not release profile picture", zap.Error(delErr))
			}
		}
		return nil, apperr.Wrap(apperr.KindUnknown, "could not create user", err)
	}

	logger.Log.Info("user registered", zap.String("email", user.Email))

	return a.viewOf(ctx, &user)
}

// Login verifies the credentials, opens a redis session bound to the user
// id and returns the signed token with the populated profile.
func (a *accountUseCase) Login(ctx context.Context, email, password string) (string, *domain.UserView, error) {
	user, err := a.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return "", nil, apperr.Wrap(apperr.KindNotFound, "user not found", err)
	}

	if err := user.IsPasswordMatch(password); err != nil {
		return "", nil, apperr.Wrap(apperr.KindAuth, "wrong password", err)
	}

	t, err := token.GenerateJWT(user.ID.Hex(), config.EnvConfig.APIServer)
	if err != nil {
		return "", nil, apperr.Wrap(apperr.KindUnknown, "could not sign token", err)
	}

	now := time.Now()
	session := domain.UserSession{
		Token:        t,
		UserID:       user.ID.Hex(),
		CreatedAt:    now,
		LastActivity: now,
		ExpiredAt:    now.Add(a.sessionTTL),
	}
	if err := a.redisRepo.Set(ctx, user.ID.Hex(), session, a.sessionTTL); err != nil {
		logger.Log.Warn("could not store session", zap.Error(err))
	}

	view, err := a.viewOf(ctx, user)
	if err != nil {
		return "", nil, err
	}
	return t, view, nil
}

// Me returns the caller's profile without the password hash
func (a *accountUseCase) Me(ctx context.Context, userID string) (*domain.UserView, error) {
	id, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindValidation, "invalid user id", err)
	}

	user, err := a.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindNotFound, "user not found", err)
	}
	return a.viewOf(ctx, user)
}

// Logout drops the redis session of the token's user
func (a *accountUseCase) Logout(ctx context.Context, tokenStr string) error {
	claims, err := token.ParseJWT(tokenStr)
	if err != nil {
		return apperr.Wrap(apperr.KindAuth, "invalid token", err)
	}
	logger.Log.Debug("logout", zap.String("user", claims.UserID))

	return a.redisRepo.Del(ctx, claims.UserID)
}

// SessionExists reports whether the user still holds a live session.
// Protected routes call this through the auth middleware, which makes a
// logged-out or expired token useless even while its signature is valid.
func (a *accountUseCase) SessionExists(ctx context.Context, userID string) (bool, error) {
	return a.redisRepo.Exists(ctx, userID)
}

// viewOf swaps the channel id list for the channel documents themselves
func (a *accountUseCase) viewOf(ctx context.Context, user *domain.User) (*domain.UserView, error) {
	channels, err := a.channelRepo.FindByIDs(ctx, user.Channels)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindUnknown, "could not load channels", err)
	}

	summaries := make([]domain.ChannelSummary, 0, len(channels))
	for _, ch := range channels {
		summaries = append(summaries, domain.ChannelSummary{
			ID:            ch.ID,
			ChannelName:   ch.ChannelName,
			ChannelBanner: ch.ChannelBanner,
			Subscribers:   ch.Subscribers,
		})
	}

	return &domain.UserView{
		ID:            user.ID,
		Username:      user.Username,
		Email:         user.Email,
		ProfilePic:    user.ProfilePic,
		Channels:      summaries,
		Subscriptions: user.Subscriptions,
		CreatedAt:     user.CreatedAt,
		UpdatedAt:     user.UpdatedAt,
	}, nil
}
