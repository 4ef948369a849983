package models

import (
	"time"

	"github.com/google/uuid"
)

// PaymentProfile holds a user's saved payout details, used to prefill a
// reward claim. One row per user, upserted from the profile screen.
type PaymentProfile struct {
	ID            uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID        uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	UPIID         string    `gorm:"size:100" json:"upi_id,omitempty"`
	BankName      string    `gorm:"size:100" json:"bank_name,omitempty"`
	AccountNumber string    `gorm:"size:30" json:"account_number,omitempty"`
	AccountHolder string    `gorm:"size:100" json:"account_holder,omitempty"`
	IFSCCode      string    `gorm:"size:20" json:"ifsc_code,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
	User          User      `gorm:"foreignKey:UserID" json:"-"`
}
