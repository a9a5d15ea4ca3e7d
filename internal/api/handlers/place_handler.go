package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/maheshrc27/tripnest-api/internal/service"
	"github.com/maheshrc27/tripnest-api/internal/transfer"
)

type PlaceHandler struct {
	s service.PlaceService
}

func NewPlaceHandler(service service.PlaceService) *PlaceHandler {
	return &PlaceHandler{s: service}
}

func (h *PlaceHandler) ListLocations(c *fiber.Ctx) error {
	locations, err := h.s.ListLocations(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(locations)
}

func (h *PlaceHandler) Search(c *fiber.Ctx) error {
	places, err := h.s.Search(c.Context(), transfer.PlaceQuery{
		Keyword:    c.Query("keyword"),
		LocationID: int64(c.QueryInt("location_id", 0)),
		Category:   c.Query("category"),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(places)
}

func (h *PlaceHandler) GetWithLocation(c *fiber.Ctx) error {
	placeID, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	place, err := h.s.GetWithLocation(c.Context(), placeID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(place)
}

func (h *PlaceHandler) ListGallery(c *fiber.Ctx) error {
	placeID, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	images, err := h.s.ListGallery(c.Context(), placeID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(images)
}

func (h *PlaceHandler) UploadGallery(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse form",
		})
	}
	placeID, err := parseFormID(form.Value["place_id"])
	if err != nil {
		return respondError(c, service.NewValidationError("place_id", "請選擇地點"))
	}

	resp, err := h.s.UploadGallery(c.Context(), GetUserID(c), placeID, form.File["files"])
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

func (h *PlaceHandler) DeleteGalleryImage(c *fiber.Ctx) error {
	imageID, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	if err := h.s.DeleteGalleryImage(c.Context(), GetUserID(c), imageID); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
