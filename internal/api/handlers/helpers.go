package handlers

import (
	"errors"
	"log/slog"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	config "github.com/maheshrc27/tripnest-api/configs"
	"github.com/maheshrc27/tripnest-api/internal/api/middleware"
	"github.com/maheshrc27/tripnest-api/internal/service"
	"github.com/maheshrc27/tripnest-api/internal/transfer"
	"github.com/maheshrc27/tripnest-api/pkg/utils"
)

// GetUserID returns the session user, or 0 on routes where auth is optional.
func GetUserID(c *fiber.Ctx) int64 {
	raw, _ := c.Locals(middleware.UserIDKey).(string)
	userID, _ := strconv.ParseInt(raw, 10, 64)
	return userID
}

func paramID(c *fiber.Ctx, name string) (int64, error) {
	id, err := c.ParamsInt(name)
	if err != nil || id < 1 {
		return 0, service.NewValidationError(name, "無效的編號")
	}
	return int64(id), nil
}

func badJSON(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": "Unable to parse json",
	})
}

// respondError maps service errors to status codes.
func respondError(c *fiber.Ctx, err error) error {
	var ve *service.ValidationError
	switch {
	case errors.As(err, &ve):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": ve.Message, "field": ve.Field})
	case errors.Is(err, service.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "未授權"})
	case errors.Is(err, service.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "沒有權限"})
	case errors.Is(err, service.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "找不到資料"})
	case errors.Is(err, service.ErrAlreadyFavorited):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": service.ErrAlreadyFavorited.Error()})
	case errors.Is(err, service.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "資料已存在"})
	case errors.Is(err, service.ErrTooManyAttempts):
		return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": service.ErrTooManyAttempts.Error()})
	case errors.Is(err, service.ErrOTPExpired), errors.Is(err, service.ErrOTPInvalid):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error(), "field": "code"})
	}

	slog.Error(err.Error(), "method", c.Method(), "path", c.Path())
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": "something went wrong",
	})
}

// setSession signs a session token for userID and stores it in the cookie.
func setSession(c *fiber.Ctx, cfg config.Config, userID int64) error {
	token, err := utils.GenerateToken(cfg.SecretKey, strconv.FormatInt(userID, 10), transfer.TokenPurposeSession, cfg.SessionTTL)
	if err != nil {
		return err
	}

	c.Cookie(&fiber.Cookie{
		Name:     cfg.CookieName,
		Value:    token,
		HTTPOnly: true,
		Secure:   cfg.CookieSecure,
		SameSite: sameSite(cfg),
		Path:     "/",
		Expires:  time.Now().Add(cfg.SessionTTL),
	})
	return nil
}

func clearSession(c *fiber.Ctx, cfg config.Config) {
	c.Cookie(&fiber.Cookie{
		Name:     cfg.CookieName,
		Value:    "",
		HTTPOnly: true,
		Secure:   cfg.CookieSecure,
		SameSite: sameSite(cfg),
		Path:     "/",
		MaxAge:   -1,
	})
}

// SameSite=None is only accepted by browsers on secure cookies.
func sameSite(cfg config.Config) string {
	if cfg.CookieSecure {
		return fiber.CookieSameSiteNoneMode
	}
	return fiber.CookieSameSiteLaxMode
}

func parseFormID(values []string) (int64, error) {
	if len(values) == 0 {
		return 0, strconv.ErrSyntax
	}
	id, err := strconv.ParseInt(values[0], 10, 64)
	if err != nil || id < 1 {
		return 0, strconv.ErrSyntax
	}
	return id, nil
}
