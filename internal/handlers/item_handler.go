package handlers

import (
	"errors"

	"github.com/foundlyhq/foundly-backend/internal/dto"
	"github.com/foundlyhq/foundly-backend/internal/middleware"
	"github.com/foundlyhq/foundly-backend/internal/models"
	"github.com/foundlyhq/foundly-backend/internal/services"
	"github.com/foundlyhq/foundly-backend/internal/storage"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ItemHandler struct {
	itemService *services.ItemService
	aiService   *services.AIService
	store       *storage.Store
}

func NewItemHandler(itemService *services.ItemService, aiService *services.AIService, store *storage.Store) *ItemHandler {
	return &ItemHandler{itemService: itemService, aiService: aiService, store: store}
}

func (h *ItemHandler) List(c *fiber.Ctx) error {
	var q dto.ItemQuery
	if err := c.QueryParser(&q); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid query parameters",
		})
	}

	items, total, err := h.itemService.List(&q)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to load items",
		})
	}

	limit := q.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	page := q.Page
	if page < 1 {
		page = 1
	}

	return c.JSON(dto.ItemListResponse{Items: items, Total: total, Page: page, Limit: limit})
}

func (h *ItemHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid item id",
		})
	}

	item, err := h.itemService.GetByID(id)
	if err != nil {
		if errors.Is(err, services.ErrItemNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to load item",
		})
	}

	similar, _ := h.itemService.Similar(item, 4)

	resp := dto.ItemDetailResponse{
		Item:    *item,
		Owner:   dto.PartyResponse{ID: item.Owner.ID.String(), Name: item.Owner.Name, Email: item.Owner.Email},
		Similar: similar,
	}
	if item.Finder != nil {
		resp.Finder = &dto.PartyResponse{ID: item.Finder.ID.String(), Name: item.Finder.Name, Email: item.Finder.Email}
	}

	// Viewer-relative data when a token is present; the detail page is
	// public, so a missing token is fine. Payout details are only attached
	// for the two parties.
	if userID, err := middleware.CurrentUserID(c); err == nil {
		resp.IsOwner = item.IsOwner(userID)
		resp.IsFinder = item.IsFinder(userID)
		if resp.IsOwner || resp.IsFinder {
			resp.Payment = dto.NewPaymentInfo(item)
		}
	}

	return c.JSON(resp)
}

func (h *ItemHandler) MyItems(c *fiber.Ctx) error {
	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	posted, found, err := h.itemService.MyItems(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to load your items",
		})
	}
	return c.JSON(dto.MyItemsResponse{Posted: posted, Found: found})
}

func (h *ItemHandler) Create(c *fiber.Ctx) error {
	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	var req dto.CreateItemRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	imageRef := ""
	if file, err := c.FormFile("image"); err == nil {
		imageRef, err = h.store.Save(file)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
	}

	item, err := h.itemService.Create(userID, &req, imageRef)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(item)
}

func (h *ItemHandler) Update(c *fiber.Ctx) error {
	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid item id",
		})
	}

	var req dto.UpdateItemRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	imageRef := ""
	if file, err := c.FormFile("image"); err == nil {
		imageRef, err = h.store.Save(file)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
	}

	item, err := h.itemService.Update(id, userID, &req, imageRef)
	if err != nil {
		return itemError(c, err)
	}
	return c.JSON(item)
}

func (h *ItemHandler) Delete(c *fiber.Ctx) error {
	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid item id",
		})
	}

	if err := h.itemService.Delete(id, userID); err != nil {
		return itemError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Item deleted"})
}

// Enhance runs the AI listing assistance over a draft description. With an
// item_id the result is also persisted on the caller's listing.
func (h *ItemHandler) Enhance(c *fiber.Ctx) error {
	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	var req dto.EnhanceRequest
	if err := c.BodyParser(&req); err != nil || req.Description == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "description is required",
		})
	}

	description, category := h.aiService.Enhance(req.Description)

	if req.ItemID != "" {
		itemID, err := uuid.Parse(req.ItemID)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: "Invalid item id",
			})
		}
		if err := h.itemService.SetAIDescription(itemID, userID, description); err != nil {
			return itemError(c, err)
		}
	}

	return c.JSON(dto.EnhanceResponse{Description: description, Category: category})
}

func itemError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrItemNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	case errors.Is(err, services.ErrNotItemOwner):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	case errors.Is(err, services.ErrBadCategory):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "category must be one of: " + joinCategories(),
		})
	}
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
		Error: true, Message: err.Error(),
	})
}

func joinCategories() string {
	out := ""
	for i, cat := range models.ItemCategories {
		if i > 0 {
			out += ", "
		}
		out += cat
	}
	return out
}
