package handlers

import (
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	config "github.com/maheshrc27/tripnest-api/configs"
	"github.com/maheshrc27/tripnest-api/internal/service"
	"github.com/maheshrc27/tripnest-api/internal/transfer"
	"github.com/maheshrc27/tripnest-api/pkg/utils"
)

const (
	oauthStateCookie = "oauth_state"
	oauthStateTTL    = 10 * time.Minute
)

type AuthHandler struct {
	s   service.AuthService
	ps  service.PasswordService
	us  service.UserService
	cfg config.Config
}

func NewAuthHandler(cfg config.Config, service service.AuthService, ps service.PasswordService, us service.UserService) *AuthHandler {
	return &AuthHandler{s: service, ps: ps, us: us, cfg: cfg}
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req transfer.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return badJSON(c)
	}

	user, err := h.s.Register(c.Context(), &req)
	if err != nil {
		return respondError(c, err)
	}
	if err := setSession(c, h.cfg, user.ID); err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req transfer.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return badJSON(c)
	}

	res, err := h.s.Login(c.Context(), &req)
	if err != nil {
		return respondError(c, err)
	}
	if res.Requires2FA {
		return c.JSON(fiber.Map{"requires_2fa": true})
	}
	if err := setSession(c, h.cfg, res.UserID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"requires_2fa": false, "user_id": res.UserID})
}

func (h *AuthHandler) Verify2FA(c *fiber.Ctx) error {
	var req transfer.Verify2FARequest
	if err := c.BodyParser(&req); err != nil {
		return badJSON(c)
	}

	userID, err := h.s.Verify2FA(c.Context(), &req)
	if err != nil {
		return respondError(c, err)
	}
	if err := setSession(c, h.cfg, userID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"user_id": userID})
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	clearSession(c, h.cfg)
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *AuthHandler) Me(c *fiber.Ctx) error {
	user, err := h.us.GetUserInfo(c.Context(), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(user)
}

func (h *AuthHandler) GoogleLogin(c *fiber.Ctx) error {
	state, err := utils.GenerateRandomKey(16)
	if err != nil {
		return respondError(c, err)
	}

	c.Cookie(&fiber.Cookie{
		Name:     oauthStateCookie,
		Value:    state,
		HTTPOnly: true,
		Secure:   h.cfg.CookieSecure,
		SameSite: fiber.CookieSameSiteLaxMode,
		Path:     "/",
		Expires:  time.Now().Add(oauthStateTTL),
	})
	return c.Redirect(h.s.GoogleAuthURL(state), fiber.StatusTemporaryRedirect)
}

func (h *AuthHandler) LoginCallbackHandler(c *fiber.Ctx) error {
	state := c.Cookies(oauthStateCookie)
	c.ClearCookie(oauthStateCookie)
	if state == "" || state != c.Query("state") {
		slog.Info("oauth state mismatch")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid oauth state",
		})
	}

	userID, err := h.s.LoginCallback(c.Context(), c.Query("code"))
	if err != nil {
		return respondError(c, err)
	}
	if err := setSession(c, h.cfg, userID); err != nil {
		return respondError(c, err)
	}

	return c.Redirect(h.cfg.FrontendURL, fiber.StatusTemporaryRedirect)
}

func (h *AuthHandler) ForgotPassword(c *fiber.Ctx) error {
	var req transfer.ForgotPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return badJSON(c)
	}
	if err := h.ps.ForgotPassword(c.Context(), req.Email); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "若此電子郵件已註冊，驗證碼已寄出"})
}

func (h *AuthHandler) VerifyOTP(c *fiber.Ctx) error {
	var req transfer.VerifyOTPRequest
	if err := c.BodyParser(&req); err != nil {
		return badJSON(c)
	}

	token, err := h.ps.VerifyOTP(c.Context(), req.Email, req.Code)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(transfer.VerifyOTPResponse{ResetToken: token})
}

func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	var req transfer.ResetPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return badJSON(c)
	}
	if err := h.ps.ResetPassword(c.Context(), req.ResetToken, req.NewPassword); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "密碼已更新"})
}
