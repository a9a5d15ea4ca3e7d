package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/maheshrc27/tripnest-api/internal/service"
	"github.com/maheshrc27/tripnest-api/internal/transfer"
)

type TripHandler struct {
	s  service.TripService
	is service.ItineraryService
}

func NewTripHandler(service service.TripService, is service.ItineraryService) *TripHandler {
	return &TripHandler{s: service, is: is}
}

func (h *TripHandler) ListMine(c *fiber.Ctx) error {
	trips, err := h.s.ListMine(c.Context(), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"trips": trips})
}

func (h *TripHandler) ListPublic(c *fiber.Ctx) error {
	trips, page, err := h.s.ListPublic(c.Context(), c.QueryInt("page", 1), c.QueryInt("limit", 0))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"trips": trips, "page": page.Page, "limit": page.Limit, "has_more": page.HasMore})
}

func (h *TripHandler) ListByUser(c *fiber.Ctx) error {
	ownerID, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	trips, err := h.s.ListUserPublic(c.Context(), ownerID, GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"trips": trips})
}

func (h *TripHandler) Create(c *fiber.Ctx) error {
	var in transfer.TripInput
	if err := c.BodyParser(&in); err != nil {
		return badJSON(c)
	}

	resp, err := h.s.Create(c.Context(), GetUserID(c), &in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

func (h *TripHandler) Detail(c *fiber.Ctx) error {
	tripID, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	detail, err := h.s.Detail(c.Context(), tripID, GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(detail)
}

func (h *TripHandler) Update(c *fiber.Ctx) error {
	tripID, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var in transfer.TripInput
	if err := c.BodyParser(&in); err != nil {
		return badJSON(c)
	}

	if err := h.s.Update(c.Context(), GetUserID(c), tripID, &in); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "行程已更新"})
}

func (h *TripHandler) Delete(c *fiber.Ctx) error {
	tripID, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	if err := h.s.Delete(c.Context(), GetUserID(c), tripID); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *TripHandler) Copy(c *fiber.Ctx) error {
	tripID, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	newID, err := h.s.Copy(c.Context(), tripID, GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(transfer.CopyTripResponse{NewTripID: newID})
}

func (h *TripHandler) UploadCover(c *fiber.Ctx) error {
	tripID, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	file, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "請選擇檔案", "field": "file"})
	}

	url, err := h.s.UploadCover(c.Context(), GetUserID(c), tripID, file)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"cover_image_url": url})
}

func (h *TripHandler) AddItem(c *fiber.Ctx) error {
	dayID, err := paramID(c, "dayId")
	if err != nil {
		return respondError(c, err)
	}
	var req transfer.AddTripItemRequest
	if err := c.BodyParser(&req); err != nil {
		return badJSON(c)
	}

	item, err := h.is.AddItem(c.Context(), GetUserID(c), dayID, &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(item)
}

func (h *TripHandler) UpdateItem(c *fiber.Ctx) error {
	itemID, err := paramID(c, "itemId")
	if err != nil {
		return respondError(c, err)
	}
	var req transfer.UpdateTripItemRequest
	if err := c.BodyParser(&req); err != nil {
		return badJSON(c)
	}

	if err := h.is.UpdateItem(c.Context(), GetUserID(c), itemID, &req); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *TripHandler) RemoveItem(c *fiber.Ctx) error {
	itemID, err := paramID(c, "itemId")
	if err != nil {
		return respondError(c, err)
	}
	if err := h.is.RemoveItem(c.Context(), GetUserID(c), itemID); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *TripHandler) UpdateOrder(c *fiber.Ctx) error {
	itemID, err := paramID(c, "itemId")
	if err != nil {
		return respondError(c, err)
	}
	var req transfer.UpdateOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return badJSON(c)
	}

	if err := h.is.UpdateOrder(c.Context(), GetUserID(c), itemID, req.SortOrder); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *TripHandler) ReorderDay(c *fiber.Ctx) error {
	dayID, err := paramID(c, "dayId")
	if err != nil {
		return respondError(c, err)
	}
	var req transfer.ReorderDayRequest
	if err := c.BodyParser(&req); err != nil {
		return badJSON(c)
	}

	if err := h.is.ReorderDay(c.Context(), GetUserID(c), dayID, req.ItemIDs); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
