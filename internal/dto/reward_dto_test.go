package dto

import (
	"encoding/json"
	"testing"

	"github.com/foundlyhq/foundly-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func claimedItem() *models.Item {
	return &models.Item{
		Title:          "Black leather wallet",
		RewardStatus:   models.RewardPaid,
		PaymentMethod:  "bank",
		PaymentDetails: datatypes.JSON(`{"account_number":"1234567890","ifsc_code":"SBIN0001"}`),
		TransactionID:  "TXN-42",
		PaymentProof:   "/uploads/proof.png",
	}
}

// The workflow response goes to the acting party, so it must carry the
// payout data the item JSON itself withholds.
func TestWorkflowResponseCarriesPayment(t *testing.T) {
	resp := NewWorkflowResponse("Payment recorded.", claimedItem(), "654321")

	raw, err := json.Marshal(resp)
	require.NoError(t, err)
	out := string(raw)

	assert.Contains(t, out, "1234567890")
	assert.Contains(t, out, "SBIN0001")
	assert.Contains(t, out, `"transaction_id":"TXN-42"`)
	assert.Contains(t, out, `"confirmation_code":"654321"`)
}

func TestNewPaymentInfoNilBeforeClaim(t *testing.T) {
	item := &models.Item{Title: "Keys", RewardStatus: models.RewardNotClaimed}
	assert.Nil(t, NewPaymentInfo(item))

	resp := NewWorkflowResponse("Item marked as found.", item, "")
	raw, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), `"payment"`)
}
