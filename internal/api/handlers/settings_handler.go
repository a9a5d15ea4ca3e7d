package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/maheshrc27/tripnest-api/internal/service"
	"github.com/maheshrc27/tripnest-api/internal/transfer"
)

type SettingsHandler struct {
	s service.SettingsService
}

func NewSettingsHandler(service service.SettingsService) *SettingsHandler {
	return &SettingsHandler{s: service}
}

func (h *SettingsHandler) GetSettingsInfo(c *fiber.Ctx) error {
	settingsInfo, err := h.s.GetSettingsInfo(c.Context(), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(settingsInfo)
}

func (h *SettingsHandler) UpdateSettings(c *fiber.Ctx) error {
	var settings transfer.SettingsUpdate
	if err := c.BodyParser(&settings); err != nil {
		return badJSON(c)
	}

	user, err := h.s.UpdateSettings(c.Context(), GetUserID(c), &settings)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(user)
}

func (h *SettingsHandler) UploadAvatar(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "請選擇檔案", "field": "file"})
	}
	url, err := h.s.UploadAvatar(c.Context(), GetUserID(c), file)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"profile_picture": url})
}
