package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ItemStatus is the resolution state of a listing. It only ever advances:
// lost -> found -> returned.
type ItemStatus string

const (
	StatusLost     ItemStatus = "lost"
	StatusFound    ItemStatus = "found"
	StatusReturned ItemStatus = "returned"
)

// statusRank orders ItemStatus for monotonicity checks.
var statusRank = map[ItemStatus]int{
	StatusLost:     0,
	StatusFound:    1,
	StatusReturned: 2,
}

// Rank returns the position of s in the lost -> found -> returned
// progression, or -1 for an unknown value.
func (s ItemStatus) Rank() int {
	if r, ok := statusRank[s]; ok {
		return r
	}
	return -1
}

// RewardStatus is the single source of truth for the settlement workflow.
// The main line is not_claimed -> claimed -> paid -> confirmed; rejected and
// disputed are side states. Settlement is tracked by SettledAt so a settled
// item still reports confirmed.
type RewardStatus string

const (
	RewardNotClaimed RewardStatus = "not_claimed"
	RewardClaimed    RewardStatus = "claimed"
	RewardRejected   RewardStatus = "rejected"
	RewardPaid       RewardStatus = "paid"
	RewardConfirmed  RewardStatus = "confirmed"

	// RewardDisputed is part of the status domain but no transition produces
	// it yet; the trigger is an open product decision.
	RewardDisputed RewardStatus = "disputed"
)

var rewardRank = map[RewardStatus]int{
	RewardNotClaimed: 0,
	RewardClaimed:    1,
	RewardPaid:       2,
	RewardConfirmed:  3,
}

// Rank returns the position of s on the main settlement line, or -1 for the
// side states rejected and disputed.
func (s RewardStatus) Rank() int {
	if r, ok := rewardRank[s]; ok {
		return r
	}
	return -1
}

// Item is the aggregate root of the reward workflow. Owner is immutable
// after creation; Finder is bound at most once, on the first mark-found.
// Version guards every workflow transition with an optimistic check.
type Item struct {
	ID            uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Title         string    `gorm:"size:200;not null" json:"title"`
	Description   string    `gorm:"type:text" json:"description"`
	AIDescription string    `gorm:"type:text" json:"ai_description,omitempty"`
	Category      string    `gorm:"size:50;index" json:"category"`
	Location      string    `gorm:"size:255" json:"location"`
	Reward        float64   `gorm:"default:0" json:"reward"`
	Image         string    `gorm:"size:255" json:"image,omitempty"`
	ContactName   string    `gorm:"size:100" json:"contact_name,omitempty"`
	ContactPhone  string    `gorm:"size:30" json:"contact_phone,omitempty"`
	ContactEmail  string    `gorm:"size:255" json:"contact_email,omitempty"`

	OwnerID uuid.UUID `gorm:"type:uuid;not null;index" json:"owner_id"`
	Owner   User      `gorm:"foreignKey:OwnerID" json:"-"`

	Status ItemStatus `gorm:"size:20;not null;default:'lost';index" json:"status"`

	FinderID    *uuid.UUID     `gorm:"type:uuid;index" json:"finder_id,omitempty"`
	Finder      *User          `gorm:"foreignKey:FinderID" json:"-"`
	FoundReport datatypes.JSON `gorm:"type:jsonb" json:"found_report,omitempty"`
	FoundAt     *time.Time     `json:"found_at,omitempty"`

	OwnerConfirmedAt *time.Time `json:"owner_confirmed_at,omitempty"`

	RewardStatus RewardStatus `gorm:"size:20;not null;default:'not_claimed';index" json:"reward_status"`
	ClaimedAt    *time.Time   `json:"claimed_at,omitempty"`
	RejectedAt   *time.Time   `json:"rejected_at,omitempty"`
	PaidAt       *time.Time   `json:"paid_at,omitempty"`
	ConfirmedAt  *time.Time   `json:"confirmed_at,omitempty"`
	SettledAt    *time.Time   `json:"settled_at,omitempty"`

	// Payout data never rides the public item JSON; the owner/finder-facing
	// responses attach it explicitly.
	PaymentMethod  string         `gorm:"size:20" json:"-"`
	PaymentDetails datatypes.JSON `gorm:"type:jsonb" json:"-"`
	TransactionID  string         `gorm:"size:100" json:"-"`
	PaymentProof   string         `gorm:"size:255" json:"-"`

	ConfirmationCode    string     `gorm:"size:6" json:"-"`
	ConfirmationExpires *time.Time `json:"-"`

	Version   int            `gorm:"not null;default:1" json:"-"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// OwnerConfirmed reports whether the owner has acknowledged having the item
// back (either via confirm-receipt or by self-resolving).
func (i *Item) OwnerConfirmed() bool {
	return i.OwnerConfirmedAt != nil
}

// RewardClaimed reports whether a claim has ever been recorded. Derived from
// the status enum so it can never contradict the later milestones.
func (i *Item) RewardClaimed() bool {
	return i.RewardStatus.Rank() >= rewardRank[RewardClaimed] || i.RewardStatus == RewardRejected
}

// RewardPaid reports whether payment has been recorded.
func (i *Item) RewardPaid() bool {
	return i.RewardStatus.Rank() >= rewardRank[RewardPaid]
}

// RewardConfirmed reports whether the finder has verified receipt of the
// payment with a confirmation code.
func (i *Item) RewardConfirmed() bool {
	return i.RewardStatus.Rank() >= rewardRank[RewardConfirmed]
}

// Settled reports whether the owner has closed the exchange.
func (i *Item) Settled() bool {
	return i.SettledAt != nil
}

// IsOwner reports whether userID is the posting owner.
func (i *Item) IsOwner(userID uuid.UUID) bool {
	return i.OwnerID == userID
}

// IsFinder reports whether userID is the bound finder.
func (i *Item) IsFinder(userID uuid.UUID) bool {
	return i.FinderID != nil && *i.FinderID == userID
}

// ItemCategories is the fixed category list the create/edit screens offer.
var ItemCategories = []string{
	"Electronics", "Documents", "Jewelry", "Clothing", "Bags", "Keys", "Pets", "Other",
}

// ValidCategory reports whether c is one of ItemCategories.
func ValidCategory(c string) bool {
	for _, cat := range ItemCategories {
		if cat == c {
			return true
		}
	}
	return false
}
