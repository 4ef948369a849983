package services

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/foundlyhq/foundly-backend/internal/dto"
	"github.com/foundlyhq/foundly-backend/internal/models"
	"github.com/foundlyhq/foundly-backend/internal/reward"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrVersionConflict means another request modified the item between our
// read and write. The actor retries against the fresh state.
var ErrVersionConflict = errors.New("item was modified concurrently, retry")

// RewardService runs the settlement engine against persisted items. Each
// transition is one read-apply-write cycle guarded by the item's version
// column, so two parties racing on the same item cannot both win.
type RewardService struct {
	db *gorm.DB
}

func NewRewardService(db *gorm.DB) *RewardService {
	return &RewardService{db: db}
}

func (s *RewardService) MarkFound(itemID, actor uuid.UUID, req *dto.FoundReportRequest) (*models.Item, error) {
	return s.transition(itemID, "mark_found", actor, func(item *models.Item, now time.Time) error {
		return reward.MarkFound(item, actor, reward.FoundReport{Location: req.Location, Notes: req.Notes}, now)
	})
}

func (s *RewardService) OwnerMarkFound(itemID, actor uuid.UUID, req *dto.FoundReportRequest) (*models.Item, error) {
	return s.transition(itemID, "owner_mark_found", actor, func(item *models.Item, now time.Time) error {
		return reward.OwnerMarkFound(item, actor, reward.FoundReport{Location: req.Location, Notes: req.Notes}, now)
	})
}

func (s *RewardService) ConfirmReceipt(itemID, actor uuid.UUID) (*models.Item, error) {
	return s.transition(itemID, "confirm_receipt", actor, func(item *models.Item, now time.Time) error {
		return reward.ConfirmReceipt(item, actor, now)
	})
}

// ClaimReward records the finder's claim. Empty payout fields fall back to
// the finder's saved payment profile.
func (s *RewardService) ClaimReward(itemID, actor uuid.UUID, req *dto.ClaimRewardRequest) (*models.Item, error) {
	claim := reward.Claim{
		Method:        req.Method,
		UPIID:         req.UPIID,
		BankName:      req.BankName,
		AccountNumber: req.AccountNumber,
		AccountHolder: req.AccountHolder,
		IFSCCode:      req.IFSCCode,
		Details:       req.Details,
	}
	s.fillFromProfile(actor, &claim)

	return s.transition(itemID, "claim_reward", actor, func(item *models.Item, now time.Time) error {
		return reward.ClaimReward(item, actor, claim, now)
	})
}

func (s *RewardService) fillFromProfile(userID uuid.UUID, claim *reward.Claim) {
	var profile models.PaymentProfile
	if err := s.db.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return
	}
	if claim.UPIID == "" {
		claim.UPIID = profile.UPIID
	}
	if claim.BankName == "" {
		claim.BankName = profile.BankName
	}
	if claim.AccountNumber == "" {
		claim.AccountNumber = profile.AccountNumber
	}
	if claim.AccountHolder == "" {
		claim.AccountHolder = profile.AccountHolder
	}
	if claim.IFSCCode == "" {
		claim.IFSCCode = profile.IFSCCode
	}
}

// PayReward records the owner's payment and returns the fresh confirmation
// code for the owner to hand to the finder out of band.
func (s *RewardService) PayReward(itemID, actor uuid.UUID, req *dto.PayRewardRequest, proofRef string) (*models.Item, string, error) {
	var code string
	item, err := s.transition(itemID, "pay_reward", actor, func(item *models.Item, now time.Time) error {
		var err error
		code, err = reward.PayReward(item, actor, reward.Payment{TransactionID: req.TransactionID, ProofRef: proofRef}, now)
		return err
	})
	if err != nil {
		return nil, "", err
	}
	return item, code, nil
}

func (s *RewardService) ConfirmPayment(itemID, actor uuid.UUID, code string) (*models.Item, error) {
	return s.transition(itemID, "confirm_payment", actor, func(item *models.Item, now time.Time) error {
		return reward.ConfirmPayment(item, actor, code, now)
	})
}

func (s *RewardService) RejectClaim(itemID, actor uuid.UUID) (*models.Item, error) {
	return s.transition(itemID, "reject_claim", actor, func(item *models.Item, now time.Time) error {
		return reward.RejectClaim(item, actor, now)
	})
}

func (s *RewardService) Settle(itemID, actor uuid.UUID) (*models.Item, error) {
	return s.transition(itemID, "settle", actor, func(item *models.Item, now time.Time) error {
		return reward.Settle(item, actor, now)
	})
}

func (s *RewardService) ChangeStatus(itemID, actor uuid.UUID, newStatus models.ItemStatus) (*models.Item, error) {
	return s.transition(itemID, "change_status", actor, func(item *models.Item, now time.Time) error {
		return reward.ChangeStatus(item, actor, newStatus, now)
	})
}

// transition loads the item, applies one engine transition and persists the
// result only if nobody else wrote the item in between.
func (s *RewardService) transition(itemID uuid.UUID, action string, actor uuid.UUID, apply func(*models.Item, time.Time) error) (*models.Item, error) {
	var item models.Item
	if err := s.db.First(&item, "id = ?", itemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, fmt.Errorf("failed to load item: %w", err)
	}

	if err := apply(&item, time.Now().UTC()); err != nil {
		return nil, err
	}

	prev := item.Version
	item.Version = prev + 1

	result := s.db.Model(&models.Item{}).
		Where("id = ? AND version = ?", item.ID, prev).
		Select("*").
		Omit("id", "created_at", "deleted_at").
		Updates(&item)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to persist transition: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, ErrVersionConflict
	}

	slog.Info("reward transition applied",
		"action", action,
		"item_id", item.ID.String(),
		"actor", actor.String(),
		"status", string(item.Status),
		"reward_status", string(item.RewardStatus),
	)
	return &item, nil
}
