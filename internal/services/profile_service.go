package services

import (
	"errors"
	"fmt"

	"github.com/foundlyhq/foundly-backend/internal/dto"
	"github.com/foundlyhq/foundly-backend/internal/models"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrNoPaymentProfile = errors.New("no payment profile saved")
	ErrWrongPassword    = errors.New("current password is incorrect")
)

type ProfileService struct {
	db *gorm.DB
}

func NewProfileService(db *gorm.DB) *ProfileService {
	return &ProfileService{db: db}
}

func (s *ProfileService) Get(userID uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *ProfileService) Update(userID uuid.UUID, req *dto.UpdateProfileRequest) (*models.User, error) {
	user, err := s.Get(userID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Name != nil && *req.Name != "" {
		updates["name"] = *req.Name
	}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}
	if req.Address != nil {
		updates["address"] = *req.Address
	}
	if req.Bio != nil {
		updates["bio"] = *req.Bio
	}
	if len(updates) == 0 {
		return user, nil
	}

	if err := s.db.Model(user).Updates(updates).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// ChangePassword verifies the current password before writing the new hash.
// Refresh tokens are revoked in the same transaction so sessions minted
// under the old password die with it.
func (s *ProfileService) ChangePassword(userID uuid.UUID, current, newPassword string) error {
	user, err := s.Get(userID)
	if err != nil {
		return err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(current)) != nil {
		return ErrWrongPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(user).Update("password", string(hash)).Error; err != nil {
			return err
		}
		return tx.Where("user_id = ?", userID).Delete(&models.RefreshToken{}).Error
	})
}

func (s *ProfileService) SetPicture(userID uuid.UUID, ref string) error {
	return s.db.Model(&models.User{}).Where("id = ?", userID).Update("profile_picture", ref).Error
}

func (s *ProfileService) GetPaymentProfile(userID uuid.UUID) (*models.PaymentProfile, error) {
	var profile models.PaymentProfile
	if err := s.db.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoPaymentProfile
		}
		return nil, err
	}
	return &profile, nil
}

// SavePaymentProfile upserts the user's payout details.
func (s *ProfileService) SavePaymentProfile(userID uuid.UUID, req *dto.PaymentProfileRequest) (*models.PaymentProfile, error) {
	profile := models.PaymentProfile{
		ID:            uuid.New(),
		UserID:        userID,
		UPIID:         req.UPIID,
		BankName:      req.BankName,
		AccountNumber: req.AccountNumber,
		AccountHolder: req.AccountHolder,
		IFSCCode:      req.IFSCCode,
	}

	err := s.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"upi_id", "bank_name", "account_number", "account_holder", "ifsc_code", "updated_at",
		}),
	}).Create(&profile).Error
	if err != nil {
		return nil, err
	}

	return s.GetPaymentProfile(userID)
}
