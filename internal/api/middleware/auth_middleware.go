package middleware

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	config "github.com/maheshrc27/tripnest-api/configs"
	"github.com/maheshrc27/tripnest-api/internal/transfer"
	"github.com/maheshrc27/tripnest-api/pkg/utils"
)

const UserIDKey = "user_id"

type AuthMiddleware struct {
	cfg config.Config
}

func NewAuthMiddleware(cfg config.Config) *AuthMiddleware {
	return &AuthMiddleware{cfg: cfg}
}

// AuthMiddleware rejects requests without a valid session cookie.
func (m *AuthMiddleware) AuthMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := c.Cookies(m.cfg.CookieName)
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "請先登入",
			})
		}

		claims, err := utils.ValidateToken(m.cfg.SecretKey, tokenString, transfer.TokenPurposeSession)
		if err != nil {
			m.clearCookie(c)
			slog.Info("token validation failed", "error", err)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid or expired token",
			})
		}

		c.Locals(UserIDKey, claims.UserID)
		return c.Next()
	}
}

// OptionalAuth sets the user when a valid cookie is present and lets
// anonymous requests through.
func (m *AuthMiddleware) OptionalAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := c.Cookies(m.cfg.CookieName)
		if tokenString == "" {
			return c.Next()
		}
		claims, err := utils.ValidateToken(m.cfg.SecretKey, tokenString, transfer.TokenPurposeSession)
		if err != nil {
			m.clearCookie(c)
			return c.Next()
		}
		c.Locals(UserIDKey, claims.UserID)
		return c.Next()
	}
}

func (m *AuthMiddleware) clearCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:   m.cfg.CookieName,
		Value:  "",
		Path:   "/",
		MaxAge: -1,
	})
}
