package dto

import "github.com/foundlyhq/foundly-backend/internal/models"

type FoundReportRequest struct {
	Location string `form:"location" json:"location"`
	Notes    string `form:"notes" json:"notes"`
}

type ClaimRewardRequest struct {
	Method        string `json:"method"`
	UPIID         string `json:"upi_id"`
	BankName      string `json:"bank_name"`
	AccountNumber string `json:"account_number"`
	AccountHolder string `json:"account_holder"`
	IFSCCode      string `json:"ifsc_code"`
	Details       string `json:"details"`
}

type PayRewardRequest struct {
	TransactionID string `form:"transaction_id" json:"transaction_id"`
}

type ConfirmRewardRequest struct {
	Code string `json:"code"`
}

type ChangeStatusRequest struct {
	Status string `json:"status"`
}

// WorkflowResponse is returned by every successful transition: the new item
// state plus a user-facing outcome message. Payout data is included because
// every transition is invoked by one of the two parties; PayReward
// additionally carries the confirmation code for the owner to hand to the
// finder.
type WorkflowResponse struct {
	Message          string       `json:"message"`
	Item             models.Item  `json:"item"`
	Payment          *PaymentInfo `json:"payment,omitempty"`
	ConfirmationCode string       `json:"confirmation_code,omitempty"`
}

// NewWorkflowResponse assembles the party-facing view of a transition result.
func NewWorkflowResponse(message string, item *models.Item, code string) WorkflowResponse {
	return WorkflowResponse{
		Message:          message,
		Item:             *item,
		Payment:          NewPaymentInfo(item),
		ConfirmationCode: code,
	}
}
