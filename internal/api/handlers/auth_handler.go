package handlers

import (
	"video_sharing_service/internal/account/app"
	"video_sharing_service/internal/account/domain"
	"video_sharing_service/pkg/apperr"
	"video_sharing_service/pkg/logger"
	"video_sharing_service/pkg/middlewares"
	token "video_sharing_service/pkg/token"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// AuthHandler handles registration, login and session routes
type AuthHandler struct {
	Accounts app.AccountUseCase
}

// NewAuthHandler create a new AuthHandler
func NewAuthHandler(accounts app.AccountUseCase) *AuthHandler {
	return &AuthHandler{Accounts: accounts}
}

// Register register a new user
// @Summary Register a new user
// @Description Creates an account, optional multipart profile picture
// @Tags Auth
// @Accept mpfd
// @Produce json
// @Success 201 {object} domain.UserView "created user"
// @Failure 400 {object} string "validation or duplicate email"
// @Router /api/auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	profile, err := formFile(c, "profilePic")
	if err != nil {
		return errJSON(c, err)
	}

	req := domain.RegisterReq{
		Username: c.FormValue("username"),
		Email:    c.FormValue("email"),
		Password: c.FormValue("password"),
		Profile:  profile,
	}

	logger.Log.Debug("Register request", zap.String("email", req.Email))

	user, err := h.Accounts.Register(c.Context(), &req)
	if err != nil {
		return errJSON(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"user": user})
}

// Login user login
// @Summary User login
// @Description Verifies credentials and returns a signed token
// @Tags Auth
// @Accept json
// @Produce json
// @Success 200 {object} string "token and user"
// @Failure 401 {object} string "wrong password"
// @Failure 404 {object} string "unknown email"
// @Router /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	type request struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	var req request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request"})
	}

	logger.Log.Debug("Login request", zap.String("email", req.Email))

	t, user, err := h.Accounts.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		return errJSON(c, err)
	}
	return c.JSON(fiber.Map{"token": t, "user": user})
}

// Me current user profile
// @Summary Current user profile
// @Description Returns the caller's profile, password excluded
// @Tags Auth
// @Produce json
// @Success 200 {object} domain.UserView "user"
// @Failure 401 {object} string "missing or invalid token"
// @Router /api/auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	userID, ok := c.Locals(middlewares.TokenUserID).(string)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "missing token"})
	}

	user, err := h.Accounts.Me(c.Context(), userID)
	if err != nil {
		return errJSON(c, err)
	}
	return c.JSON(fiber.Map{"user": user})
}

// Logout user logout
// @Summary User logout
// @Description Drops the caller's session
// @Tags Auth
// @Produce json
// @Success 200 {object} string "logout success"
// @Failure 401 {object} string "missing or invalid token"
// @Router /api/auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	t, err := token.StripBearer(c.Get("Authorization"))
	if err != nil {
		return errJSON(c, apperr.Wrap(apperr.KindAuth, "invalid token", err))
	}

	if err := h.Accounts.Logout(c.Context(), t); err != nil {
		return errJSON(c, err)
	}
	return c.JSON(fiber.Map{"message": "logout success"})
}
