package middlewares

import (
	"context"

	t_token "video_sharing_service/pkg/token"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

const (
	// TokenUserID get user id from token, set c.locals name
	TokenUserID = "UserID"
)

// SessionChecker reports whether the token's user still holds a live
// session. Logout and expiry drop the session, so a stale token fails
// here even though its signature is still valid.
type SessionChecker interface {
	SessionExists(ctx context.Context, userID string) (bool, error)
}

// JWTMiddleware validates the bearer JWT in the Authorization header and
// confirms the bound user's session is still live before trusting it.
func JWTMiddleware(sessions SessionChecker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenStr, err := t_token.StripBearer(c.Get(fiber.HeaderAuthorization))
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Missing token",
			})
		}

		token, err := jwt.ParseWithClaims(tokenStr, &t_token.Claims{}, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fiber.NewError(fiber.StatusUnauthorized, "Unexpected signing method")
			}
			return t_token.JWTSecret, nil
		})

		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid token",
			})
		}

		claims, ok := token.Claims.(*t_token.Claims)
		if !ok || !token.Valid {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid token claims",
			})
		}

		live, err := sessions.SessionExists(c.Context(), claims.UserID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Session lookup failed",
			})
		}
		if !live {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Session expired",
			})
		}

		c.Locals(TokenUserID, claims.UserID)
		return c.Next()
	}
}
