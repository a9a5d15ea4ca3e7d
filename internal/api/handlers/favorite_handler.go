package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/maheshrc27/tripnest-api/internal/service"
	"github.com/maheshrc27/tripnest-api/internal/transfer"
)

type FavoriteHandler struct {
	s service.FavoriteService
}

func NewFavoriteHandler(service service.FavoriteService) *FavoriteHandler {
	return &FavoriteHandler{s: service}
}

func (h *FavoriteHandler) Lists(c *fiber.Ctx) error {
	ownerID, err := paramID(c, "userId")
	if err != nil {
		return respondError(c, err)
	}
	lists, err := h.s.Lists(c.Context(), GetUserID(c), ownerID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(lists)
}

func (h *FavoriteHandler) GetList(c *fiber.Ctx) error {
	listID, err := paramID(c, "listId")
	if err != nil {
		return respondError(c, err)
	}
	detail, err := h.s.GetList(c.Context(), GetUserID(c), listID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(detail)
}

func (h *FavoriteHandler) CreateList(c *fiber.Ctx) error {
	var req transfer.CreateFavoriteListRequest
	if err := c.BodyParser(&req); err != nil {
		return badJSON(c)
	}
	list, err := h.s.CreateList(c.Context(), GetUserID(c), req.Name)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(list)
}

func (h *FavoriteHandler) DeleteList(c *fiber.Ctx) error {
	listID, err := paramID(c, "listId")
	if err != nil {
		return respondError(c, err)
	}
	if err := h.s.DeleteList(c.Context(), GetUserID(c), listID); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *FavoriteHandler) AddPlace(c *fiber.Ctx) error {
	var req transfer.FavoriteRequest
	if err := c.BodyParser(&req); err != nil {
		return badJSON(c)
	}
	if err := h.s.AddPlace(c.Context(), GetUserID(c), req.ListID, req.PlaceID); err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "已加入收藏"})
}

// RemovePlace reads list_id and place_id from the body, or the query string
// for clients that cannot send a DELETE body.
func (h *FavoriteHandler) RemovePlace(c *fiber.Ctx) error {
	var req transfer.FavoriteRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return badJSON(c)
		}
	} else {
		req.ListID = int64(c.QueryInt("list_id", 0))
		req.PlaceID = int64(c.QueryInt("place_id", 0))
	}

	if err := h.s.RemovePlace(c.Context(), GetUserID(c), req.ListID, req.PlaceID); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *FavoriteHandler) FavoriteTrip(c *fiber.Ctx) error {
	tripID, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	if err := h.s.FavoriteTrip(c.Context(), GetUserID(c), tripID); err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"favorited": true})
}

func (h *FavoriteHandler) UnfavoriteTrip(c *fiber.Ctx) error {
	tripID, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	if err := h.s.UnfavoriteTrip(c.Context(), GetUserID(c), tripID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"favorited": false})
}

func (h *FavoriteHandler) ListTrips(c *fiber.Ctx) error {
	trips, err := h.s.ListTrips(c.Context(), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"trips": trips})
}

func (h *FavoriteHandler) Index(c *fiber.Ctx) error {
	idx, err := h.s.Index(c.Context(), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(idx)
}
