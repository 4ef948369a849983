package handlers

import (
	"errors"

	"github.com/foundlyhq/foundly-backend/internal/dto"
	"github.com/foundlyhq/foundly-backend/internal/middleware"
	"github.com/foundlyhq/foundly-backend/internal/models"
	"github.com/foundlyhq/foundly-backend/internal/reward"
	"github.com/foundlyhq/foundly-backend/internal/services"
	"github.com/foundlyhq/foundly-backend/internal/storage"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// RewardHandler exposes the settlement workflow over HTTP. Every endpoint
// resolves the acting user from the JWT and delegates the transition to the
// reward service; the handler only translates outcomes to status codes.
type RewardHandler struct {
	rewardService *services.RewardService
	store         *storage.Store
}

func NewRewardHandler(rewardService *services.RewardService, store *storage.Store) *RewardHandler {
	return &RewardHandler{rewardService: rewardService, store: store}
}

func (h *RewardHandler) MarkFound(c *fiber.Ctx) error {
	itemID, actor, ok := workflowParams(c)
	if !ok {
		return nil
	}

	var req dto.FoundReportRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	item, err := h.rewardService.MarkFound(itemID, actor, &req)
	if err != nil {
		return workflowError(c, err)
	}
	return c.JSON(dto.NewWorkflowResponse("Item marked as found. The owner has been notified.", item, ""))
}

func (h *RewardHandler) OwnerMarkFound(c *fiber.Ctx) error {
	itemID, actor, ok := workflowParams(c)
	if !ok {
		return nil
	}

	var req dto.FoundReportRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	item, err := h.rewardService.OwnerMarkFound(itemID, actor, &req)
	if err != nil {
		return workflowError(c, err)
	}
	return c.JSON(dto.NewWorkflowResponse("Item marked as found.", item, ""))
}

func (h *RewardHandler) ConfirmReceipt(c *fiber.Ctx) error {
	itemID, actor, ok := workflowParams(c)
	if !ok {
		return nil
	}

	item, err := h.rewardService.ConfirmReceipt(itemID, actor)
	if err != nil {
		return workflowError(c, err)
	}
	return c.JSON(dto.NewWorkflowResponse("Receipt confirmed. The finder can now claim the reward.", item, ""))
}

func (h *RewardHandler) ClaimReward(c *fiber.Ctx) error {
	itemID, actor, ok := workflowParams(c)
	if !ok {
		return nil
	}

	var req dto.ClaimRewardRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	item, err := h.rewardService.ClaimReward(itemID, actor, &req)
	if err != nil {
		return workflowError(c, err)
	}
	return c.JSON(dto.NewWorkflowResponse("Reward claimed. Waiting for the owner to pay.", item, ""))
}

func (h *RewardHandler) PayReward(c *fiber.Ctx) error {
	itemID, actor, ok := workflowParams(c)
	if !ok {
		return nil
	}

	var req dto.PayRewardRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	proofRef := ""
	if file, err := c.FormFile("proof"); err == nil {
		proofRef, err = h.store.Save(file)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
	}

	item, code, err := h.rewardService.PayReward(itemID, actor, &req, proofRef)
	if err != nil {
		return workflowError(c, err)
	}
	return c.JSON(dto.NewWorkflowResponse("Payment recorded. Share the confirmation code with the finder.", item, code))
}

func (h *RewardHandler) ConfirmPayment(c *fiber.Ctx) error {
	itemID, actor, ok := workflowParams(c)
	if !ok {
		return nil
	}

	var req dto.ConfirmRewardRequest
	if err := c.BodyParser(&req); err != nil || req.Code == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "code is required",
		})
	}

	item, err := h.rewardService.ConfirmPayment(itemID, actor, req.Code)
	if err != nil {
		return workflowError(c, err)
	}
	return c.JSON(dto.NewWorkflowResponse("Payment confirmed. Thank you!", item, ""))
}

func (h *RewardHandler) RejectClaim(c *fiber.Ctx) error {
	itemID, actor, ok := workflowParams(c)
	if !ok {
		return nil
	}

	item, err := h.rewardService.RejectClaim(itemID, actor)
	if err != nil {
		return workflowError(c, err)
	}
	return c.JSON(dto.NewWorkflowResponse("Claim rejected.", item, ""))
}

func (h *RewardHandler) Settle(c *fiber.Ctx) error {
	itemID, actor, ok := workflowParams(c)
	if !ok {
		return nil
	}

	item, err := h.rewardService.Settle(itemID, actor)
	if err != nil {
		return workflowError(c, err)
	}
	return c.JSON(dto.NewWorkflowResponse("Case settled and archived.", item, ""))
}

func (h *RewardHandler) ChangeStatus(c *fiber.Ctx) error {
	itemID, actor, ok := workflowParams(c)
	if !ok {
		return nil
	}

	var req dto.ChangeStatusRequest
	if err := c.BodyParser(&req); err != nil || req.Status == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "status is required",
		})
	}

	item, err := h.rewardService.ChangeStatus(itemID, actor, models.ItemStatus(req.Status))
	if err != nil {
		return workflowError(c, err)
	}
	return c.JSON(dto.NewWorkflowResponse("Status updated.", item, ""))
}

// workflowParams resolves the item id and acting user. On failure it writes
// the error response itself and reports ok=false so callers just bail.
func workflowParams(c *fiber.Ctx) (itemID, actor uuid.UUID, ok bool) {
	actor, err := middleware.CurrentUserID(c)
	if err != nil {
		_ = c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
		return uuid.Nil, uuid.Nil, false
	}
	itemID, err = uuid.Parse(c.Params("id"))
	if err != nil {
		_ = c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid item id",
		})
		return uuid.Nil, uuid.Nil, false
	}
	return itemID, actor, true
}

func workflowError(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, services.ErrItemNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, reward.ErrUnauthorized):
		status = fiber.StatusForbidden
	case errors.Is(err, reward.ErrInvalidState), errors.Is(err, services.ErrVersionConflict):
		status = fiber.StatusConflict
	case errors.Is(err, reward.ErrCodeExpired):
		status = fiber.StatusGone
	case errors.Is(err, reward.ErrValidation), errors.Is(err, reward.ErrCodeMismatch):
		status = fiber.StatusBadRequest
	}
	if status == fiber.StatusInternalServerError {
		return c.Status(status).JSON(dto.ErrorResponse{
			Error: true, Message: "Something went wrong",
		})
	}
	return c.Status(status).JSON(dto.ErrorResponse{
		Error: true, Message: err.Error(),
	})
}
