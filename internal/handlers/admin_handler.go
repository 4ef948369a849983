package handlers

import (
	"errors"

	"github.com/foundlyhq/foundly-backend/internal/dto"
	"github.com/foundlyhq/foundly-backend/internal/middleware"
	"github.com/foundlyhq/foundly-backend/internal/models"
	"github.com/foundlyhq/foundly-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AdminHandler struct {
	db          *gorm.DB
	itemService *services.ItemService
}

func NewAdminHandler(db *gorm.DB, itemService *services.ItemService) *AdminHandler {
	return &AdminHandler{db: db, itemService: itemService}
}

// Stats aggregates the dashboard counters in a handful of queries.
func (h *AdminHandler) Stats(c *fiber.Ctx) error {
	var resp dto.AdminStatsResponse

	h.db.Model(&models.User{}).Count(&resp.TotalUsers)
	h.db.Model(&models.User{}).Where("is_active = ?", true).Count(&resp.ActiveUsers)
	h.db.Model(&models.Item{}).Count(&resp.TotalItems)
	h.db.Model(&models.Item{}).Where("status = ?", models.StatusLost).Count(&resp.LostItems)
	h.db.Model(&models.Item{}).Where("status = ?", models.StatusFound).Count(&resp.FoundItems)
	h.db.Model(&models.Item{}).Where("settled_at IS NOT NULL").Count(&resp.SettledItems)

	h.db.Model(&models.Item{}).
		Where("settled_at IS NOT NULL").
		Select("COALESCE(SUM(reward), 0)").
		Scan(&resp.TotalRewards)

	type categoryCount struct {
		Category string
		Count    int64
	}
	var byCategory []categoryCount
	h.db.Model(&models.Item{}).
		Select("category, COUNT(*) as count").
		Group("category").
		Scan(&byCategory)
	resp.ByCategory = make(map[string]int64, len(byCategory))
	for _, cc := range byCategory {
		resp.ByCategory[cc.Category] = cc.Count
	}

	h.db.Order("created_at DESC").Limit(5).Find(&resp.RecentItems)
	h.db.Order("created_at DESC").Limit(5).Find(&resp.RecentUsers)

	return c.JSON(resp)
}

func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	limit := c.QueryInt("limit", 20)
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	query := h.db.Model(&models.User{})
	if search := c.Query("search"); search != "" {
		like := "%" + search + "%"
		query = query.Where("email ILIKE ? OR name ILIKE ?", like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to load users",
		})
	}

	var users []models.User
	if err := query.Order("created_at DESC").
		Offset((page - 1) * limit).Limit(limit).
		Find(&users).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to load users",
		})
	}

	return c.JSON(dto.UserListResponse{Users: users, Total: total, Page: page, Limit: limit})
}

// SetUserActive suspends or reinstates an account. Suspended users cannot
// log in; their existing sessions expire with the access token.
func (h *AdminHandler) SetUserActive(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid user id",
		})
	}

	var req dto.SetActiveRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	result := h.db.Model(&models.User{}).Where("id = ?", id).Update("is_active", req.Active)
	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to update user",
		})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: "User not found",
		})
	}

	return c.JSON(fiber.Map{"message": "User updated", "active": req.Active})
}

// ListItems backs the moderation table: every listing, newest first, with
// both parties resolved.
func (h *AdminHandler) ListItems(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	limit := c.QueryInt("limit", 20)
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	query := h.db.Model(&models.Item{})
	if status := c.Query("status"); status != "" && status != "all" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to load items",
		})
	}

	var items []models.Item
	if err := query.Preload("Owner").Preload("Finder").
		Order("created_at DESC").
		Offset((page - 1) * limit).Limit(limit).
		Find(&items).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to load items",
		})
	}

	entries := make([]dto.AdminItemEntry, 0, len(items))
	for i := range items {
		item := items[i]
		entry := dto.AdminItemEntry{
			Item:  item,
			Owner: dto.PartyResponse{ID: item.Owner.ID.String(), Name: item.Owner.Name, Email: item.Owner.Email},
		}
		if item.Finder != nil {
			entry.Finder = &dto.PartyResponse{ID: item.Finder.ID.String(), Name: item.Finder.Name, Email: item.Finder.Email}
		}
		entries = append(entries, entry)
	}

	return c.JSON(dto.AdminItemsResponse{Items: entries, Total: total, Page: page, Limit: limit})
}

// SetUserRole promotes or demotes an account. Admins cannot change their
// own role.
func (h *AdminHandler) SetUserRole(c *fiber.Ctx) error {
	actor, err := middleware.CurrentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid user id",
		})
	}
	if id == actor {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Error: true, Message: "You cannot modify your own role",
		})
	}

	var req dto.SetRoleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}
	if req.Role != "admin" && req.Role != "user" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "role must be admin or user",
		})
	}

	result := h.db.Model(&models.User{}).Where("id = ?", id).Update("role", req.Role)
	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to update user role",
		})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: "User not found",
		})
	}

	return c.JSON(fiber.Map{"message": "User role updated", "role": req.Role})
}

// DeleteUser removes an account. Admins cannot delete themselves, and a
// user still owning listings must have them transferred or removed first.
func (h *AdminHandler) DeleteUser(c *fiber.Ctx) error {
	actor, err := middleware.CurrentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid user id",
		})
	}
	if id == actor {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Error: true, Message: "You cannot delete your own account",
		})
	}

	var user models.User
	if err := h.db.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "User not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to load user",
		})
	}

	var ownedItems int64
	if err := h.db.Model(&models.Item{}).Where("owner_id = ?", id).Count(&ownedItems).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to load user",
		})
	}
	if ownedItems > 0 {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Error: true, Message: "Cannot delete a user with active items. Transfer or delete their items first.",
		})
	}

	err = h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", id).Delete(&models.RefreshToken{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.PaymentProfile{}).Error; err != nil {
			return err
		}
		return tx.Delete(&user).Error
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to delete user",
		})
	}

	return c.JSON(fiber.Map{"message": "User deleted"})
}

func (h *AdminHandler) DeleteItem(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid item id",
		})
	}

	if err := h.itemService.AdminDelete(id); err != nil {
		if errors.Is(err, services.ErrItemNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to delete item",
		})
	}
	return c.JSON(fiber.Map{"message": "Item deleted"})
}
