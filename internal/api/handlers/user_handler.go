package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/maheshrc27/tripnest-api/internal/service"
	"github.com/maheshrc27/tripnest-api/internal/transfer"
)

type UserHandler struct {
	s service.UserService
}

func NewUserHandler(service service.UserService) *UserHandler {
	return &UserHandler{s: service}
}

func (h *UserHandler) GetProfile(c *fiber.Ctx) error {
	userID, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	profile, err := h.s.GetProfile(c.Context(), userID, GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(profile)
}

func (h *UserHandler) ToggleFollow(c *fiber.Ctx) error {
	userID, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	following, err := h.s.ToggleFollow(c.Context(), GetUserID(c), userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(transfer.FollowResponse{Following: following})
}

func (h *UserHandler) Followers(c *fiber.Ctx) error {
	userID, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	users, err := h.s.Followers(c.Context(), userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(users)
}

func (h *UserHandler) Following(c *fiber.Ctx) error {
	userID, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	users, err := h.s.Following(c.Context(), userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(users)
}
