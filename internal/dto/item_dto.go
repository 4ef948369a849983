package dto

import (
	"github.com/foundlyhq/foundly-backend/internal/models"
	"gorm.io/datatypes"
)

// ItemQuery captures the list screen's search/filter/sort parameters.
type ItemQuery struct {
	Search   string `query:"search"`
	Status   string `query:"status"`
	Category string `query:"category"`
	Sort     string `query:"sort"`
	Page     int    `query:"page"`
	Limit    int    `query:"limit"`
}

type CreateItemRequest struct {
	Title        string  `form:"title" json:"title"`
	Description  string  `form:"description" json:"description"`
	Category     string  `form:"category" json:"category"`
	Location     string  `form:"location" json:"location"`
	Reward       float64 `form:"reward" json:"reward"`
	ContactName  string  `form:"contact_name" json:"contact_name"`
	ContactPhone string  `form:"contact_phone" json:"contact_phone"`
	ContactEmail string  `form:"contact_email" json:"contact_email"`
}

type UpdateItemRequest struct {
	Title        string  `form:"title" json:"title"`
	Description  string  `form:"description" json:"description"`
	Category     string  `form:"category" json:"category"`
	Location     string  `form:"location" json:"location"`
	Reward       float64 `form:"reward" json:"reward"`
	ContactName  string  `form:"contact_name" json:"contact_name"`
	ContactPhone string  `form:"contact_phone" json:"contact_phone"`
	ContactEmail string  `form:"contact_email" json:"contact_email"`
}

type ItemListResponse struct {
	Items []models.Item `json:"items"`
	Total int64         `json:"total"`
	Page  int           `json:"page"`
	Limit int           `json:"limit"`
}

type ItemDetailResponse struct {
	Item     models.Item    `json:"item"`
	Owner    PartyResponse  `json:"owner"`
	Finder   *PartyResponse `json:"finder,omitempty"`
	Similar  []models.Item  `json:"similar_items"`
	IsOwner  bool           `json:"is_owner"`
	IsFinder bool           `json:"is_finder"`

	// Only set when the viewer is the owner or the bound finder.
	Payment *PaymentInfo `json:"payment,omitempty"`
}

// PaymentInfo is the payout slice of an item, shown only to the two parties.
type PaymentInfo struct {
	Method        string         `json:"method,omitempty"`
	Details       datatypes.JSON `json:"details,omitempty"`
	TransactionID string         `json:"transaction_id,omitempty"`
	Proof         string         `json:"proof,omitempty"`
}

// NewPaymentInfo extracts the payout fields of an item, or nil when no claim
// has been recorded yet.
func NewPaymentInfo(item *models.Item) *PaymentInfo {
	if item.PaymentMethod == "" && len(item.PaymentDetails) == 0 && item.TransactionID == "" {
		return nil
	}
	return &PaymentInfo{
		Method:        item.PaymentMethod,
		Details:       item.PaymentDetails,
		TransactionID: item.TransactionID,
		Proof:         item.PaymentProof,
	}
}

// PartyResponse is the public slice of a user shown on an item page.
type PartyResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type MyItemsResponse struct {
	Posted []models.Item `json:"posted"`
	Found  []models.Item `json:"found"`
}

// EnhanceRequest optionally names an existing listing; when ItemID is set the
// polished description is stored on it as well as returned.
type EnhanceRequest struct {
	ItemID      string `json:"item_id,omitempty"`
	Description string `json:"description"`
}

type EnhanceResponse struct {
	Description string `json:"description"`
	Category    string `json:"category"`
}
