package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func TestRewardStatusRank(t *testing.T) {
	assert.Less(t, RewardNotClaimed.Rank(), RewardClaimed.Rank())
	assert.Less(t, RewardClaimed.Rank(), RewardPaid.Rank())
	assert.Less(t, RewardPaid.Rank(), RewardConfirmed.Rank())

	// Side states sit off the main line.
	assert.Equal(t, -1, RewardRejected.Rank())
	assert.Equal(t, -1, RewardDisputed.Rank())
	assert.Equal(t, -1, RewardStatus("bogus").Rank())
}

func TestItemStatusRank(t *testing.T) {
	assert.Less(t, StatusLost.Rank(), StatusFound.Rank())
	assert.Less(t, StatusFound.Rank(), StatusReturned.Rank())
	assert.Equal(t, -1, ItemStatus("misplaced").Rank())
}

func TestMilestonesDerivedFromStatus(t *testing.T) {
	tests := []struct {
		status    RewardStatus
		claimed   bool
		paid      bool
		confirmed bool
	}{
		{RewardNotClaimed, false, false, false},
		{RewardClaimed, true, false, false},
		{RewardRejected, true, false, false},
		{RewardPaid, true, true, false},
		{RewardConfirmed, true, true, true},
	}
	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			item := Item{RewardStatus: tt.status}
			assert.Equal(t, tt.claimed, item.RewardClaimed())
			assert.Equal(t, tt.paid, item.RewardPaid())
			assert.Equal(t, tt.confirmed, item.RewardConfirmed())
		})
	}
}

func TestSettledTrackedSeparately(t *testing.T) {
	now := time.Now()
	item := Item{RewardStatus: RewardConfirmed}
	assert.False(t, item.Settled())

	item.SettledAt = &now
	assert.True(t, item.Settled())
	// Settling does not move the reward status past confirmed.
	assert.Equal(t, RewardConfirmed, item.RewardStatus)
}

func TestPartyChecks(t *testing.T) {
	owner := uuid.New()
	finder := uuid.New()
	stranger := uuid.New()

	item := Item{OwnerID: owner}
	assert.True(t, item.IsOwner(owner))
	assert.False(t, item.IsOwner(stranger))
	assert.False(t, item.IsFinder(finder), "no finder bound yet")

	item.FinderID = &finder
	assert.True(t, item.IsFinder(finder))
	assert.False(t, item.IsFinder(owner))
}

// The item JSON feeds public listing and detail endpoints, so nothing about
// the finder's payout or the confirmation secret may serialize from it.
func TestItemJSONHidesPayoutAndSecrets(t *testing.T) {
	now := time.Now()
	item := Item{
		ID:                  uuid.New(),
		Title:               "Black leather wallet",
		RewardStatus:        RewardPaid,
		PaymentMethod:       "bank",
		PaymentDetails:      datatypes.JSON(`{"account_number":"1234567890","ifsc_code":"SBIN0001"}`),
		TransactionID:       "TXN-42",
		PaymentProof:        "/uploads/proof.png",
		ConfirmationCode:    "123456",
		ConfirmationExpires: &now,
	}

	raw, err := json.Marshal(item)
	require.NoError(t, err)
	out := string(raw)

	for _, leak := range []string{
		"1234567890", "SBIN0001", "TXN-42", "proof.png", "123456",
		"payment_details", "transaction_id", "payment_method", "confirmation",
	} {
		assert.NotContains(t, out, leak)
	}
	// The workflow stage itself stays visible.
	assert.Contains(t, out, `"reward_status":"paid"`)
}

func TestValidCategory(t *testing.T) {
	assert.True(t, ValidCategory("Electronics"))
	assert.True(t, ValidCategory("Other"))
	assert.False(t, ValidCategory("electronics"))
	assert.False(t, ValidCategory(""))
}
