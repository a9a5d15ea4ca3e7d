package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/maheshrc27/tripnest-api/internal/service"
	"github.com/maheshrc27/tripnest-api/internal/transfer"
)

const defaultTagLimit = 20

type PostHandler struct {
	s  service.PostService
	cs service.CommentService
}

func NewPostHandler(service service.PostService, cs service.CommentService) *PostHandler {
	return &PostHandler{s: service, cs: cs}
}

func (h *PostHandler) ListPosts(c *fiber.Ctx) error {
	page, err := h.s.List(c.Context(), GetUserID(c), transfer.PostQuery{
		Page:     c.QueryInt("page", 1),
		Limit:    c.QueryInt("limit", 0),
		Tag:      c.Query("tag"),
		AuthorID: int64(c.QueryInt("author_id", 0)),
		Keyword:  c.Query("keyword"),
		Feed:     c.Query("feed"),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(page)
}

func (h *PostHandler) GetPost(c *fiber.Ctx) error {
	postID, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	post, err := h.s.Get(c.Context(), postID, GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(post)
}

func (h *PostHandler) CreatePost(c *fiber.Ctx) error {
	var in transfer.PostInput
	if err := c.BodyParser(&in); err != nil {
		return badJSON(c)
	}
	post, err := h.s.Create(c.Context(), GetUserID(c), &in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(post)
}

func (h *PostHandler) UpdatePost(c *fiber.Ctx) error {
	postID, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var in transfer.PostInput
	if err := c.BodyParser(&in); err != nil {
		return badJSON(c)
	}
	post, err := h.s.Update(c.Context(), GetUserID(c), postID, &in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(post)
}

func (h *PostHandler) RemovePost(c *fiber.Ctx) error {
	postID, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	if err := h.s.Remove(c.Context(), GetUserID(c), postID); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *PostHandler) UploadPhotos(c *fiber.Ctx) error {
	postID, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	form, err := c.MultipartForm()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse form",
		})
	}

	resp, err := h.s.UploadPhotos(c.Context(), GetUserID(c), postID, form.File["files"])
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

func (h *PostHandler) ToggleLike(c *fiber.Ctx) error {
	postID, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	resp, err := h.s.ToggleLike(c.Context(), GetUserID(c), postID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

func (h *PostHandler) ToggleBookmark(c *fiber.Ctx) error {
	postID, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	resp, err := h.s.ToggleBookmark(c.Context(), GetUserID(c), postID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

func (h *PostHandler) ListBookmarks(c *fiber.Ctx) error {
	page, err := h.s.ListBookmarks(c.Context(), GetUserID(c), c.QueryInt("page", 1), c.QueryInt("limit", 0))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(page)
}

func (h *PostHandler) ListTags(c *fiber.Ctx) error {
	tags, err := h.s.ListTags(c.Context(), c.QueryInt("limit", defaultTagLimit))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(tags)
}

func (h *PostHandler) ListComments(c *fiber.Ctx) error {
	postID, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	comments, err := h.cs.List(c.Context(), postID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(comments)
}

func (h *PostHandler) CreateComment(c *fiber.Ctx) error {
	postID, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var in transfer.CommentInput
	if err := c.BodyParser(&in); err != nil {
		return badJSON(c)
	}
	comment, err := h.cs.Create(c.Context(), GetUserID(c), postID, in.Content)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(comment)
}

func (h *PostHandler) RemoveComment(c *fiber.Ctx) error {
	commentID, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	if err := h.cs.Remove(c.Context(), GetUserID(c), commentID); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
