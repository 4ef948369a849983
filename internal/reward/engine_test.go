package reward

import (
	"testing"
	"time"

	"github.com/foundlyhq/foundly-backend/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	owner  = uuid.New()
	finder = uuid.New()
	now    = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
)

func lostItem() *models.Item {
	return &models.Item{
		ID:           uuid.New(),
		Title:        "Black leather wallet",
		Category:     "Bags",
		Reward:       50,
		OwnerID:      owner,
		Status:       models.StatusLost,
		RewardStatus: models.RewardNotClaimed,
		Version:      1,
	}
}

// advance runs the workflow up to the named stage and returns the item plus
// the confirmation code issued at payment (empty before that).
func advance(t *testing.T, stage string) (*models.Item, string) {
	t.Helper()
	item := lostItem()

	require.NoError(t, MarkFound(item, finder, FoundReport{Location: "Cafe on 5th"}, now))
	if stage == "found" {
		return item, ""
	}

	require.NoError(t, ConfirmReceipt(item, owner, now.Add(time.Hour)))
	if stage == "confirmed_receipt" {
		return item, ""
	}

	require.NoError(t, ClaimReward(item, finder, Claim{Method: "upi", UPIID: "finder@upi"}, now.Add(2*time.Hour)))
	if stage == "claimed" {
		return item, ""
	}

	code, err := PayReward(item, owner, Payment{TransactionID: "TXN-1"}, now.Add(3*time.Hour))
	require.NoError(t, err)
	if stage == "paid" {
		return item, code
	}

	require.NoError(t, ConfirmPayment(item, finder, code, now.Add(4*time.Hour)))
	if stage == "payment_confirmed" {
		return item, code
	}

	require.NoError(t, Settle(item, owner, now.Add(5*time.Hour)))
	return item, code
}

func TestFullSettlementScenario(t *testing.T) {
	item := lostItem()

	require.NoError(t, MarkFound(item, finder, FoundReport{Location: "Cafe on 5th", Notes: "left on a table"}, now))
	assert.Equal(t, models.StatusFound, item.Status)
	require.NotNil(t, item.FinderID)
	assert.Equal(t, finder, *item.FinderID)
	assert.False(t, item.OwnerConfirmed())

	require.NoError(t, ConfirmReceipt(item, owner, now.Add(time.Hour)))
	assert.True(t, item.OwnerConfirmed())

	require.NoError(t, ClaimReward(item, finder, Claim{Method: "upi", UPIID: "finder@upi"}, now.Add(2*time.Hour)))
	assert.Equal(t, models.RewardClaimed, item.RewardStatus)
	assert.Equal(t, "upi", item.PaymentMethod)

	code, err := PayReward(item, owner, Payment{TransactionID: "TXN-482913", ProofRef: "/uploads/proof.png"}, now.Add(3*time.Hour))
	require.NoError(t, err)
	require.Len(t, code, 6)
	assert.Equal(t, models.RewardPaid, item.RewardStatus)
	require.NotNil(t, item.ConfirmationExpires)
	assert.Equal(t, now.Add(3*time.Hour).Add(CodeTTL), *item.ConfirmationExpires)

	// Within 24h, correct code.
	require.NoError(t, ConfirmPayment(item, finder, code, now.Add(20*time.Hour)))
	assert.Equal(t, models.RewardConfirmed, item.RewardStatus)
	assert.Empty(t, item.ConfirmationCode)

	require.NoError(t, Settle(item, owner, now.Add(21*time.Hour)))
	assert.True(t, item.Settled())
	assert.Equal(t, models.RewardConfirmed, item.RewardStatus)
}

// The milestone implication chain must hold at every stage.
func TestMilestoneChainMonotonic(t *testing.T) {
	stages := []string{"found", "confirmed_receipt", "claimed", "paid", "payment_confirmed", "settled"}
	for _, stage := range stages {
		t.Run(stage, func(t *testing.T) {
			item, _ := advance(t, stage)
			if item.Settled() {
				assert.True(t, item.RewardConfirmed())
			}
			if item.RewardConfirmed() {
				assert.True(t, item.RewardPaid())
			}
			if item.RewardPaid() {
				assert.True(t, item.RewardClaimed())
			}
			if item.RewardClaimed() {
				assert.True(t, item.OwnerConfirmed())
			}
		})
	}
}

func TestMarkFoundByOwnerRejected(t *testing.T) {
	item := lostItem()
	err := MarkFound(item, owner, FoundReport{Location: "home"}, now)
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Equal(t, models.StatusLost, item.Status)
	assert.Nil(t, item.FinderID)
}

func TestMarkFoundTwiceRejected(t *testing.T) {
	item, _ := advance(t, "found")
	other := uuid.New()
	err := MarkFound(item, other, FoundReport{Location: "elsewhere"}, now)
	assert.ErrorIs(t, err, ErrInvalidState)
	// First finder binding is untouched.
	assert.Equal(t, finder, *item.FinderID)
}

func TestOwnerMarkFoundSelfResolves(t *testing.T) {
	item := lostItem()
	require.NoError(t, OwnerMarkFound(item, owner, FoundReport{Location: "jacket pocket"}, now))
	assert.Equal(t, models.StatusFound, item.Status)
	assert.True(t, item.OwnerConfirmed())
	assert.Nil(t, item.FinderID)

	// With no finder bound, nobody can claim.
	err := ClaimReward(item, finder, Claim{Method: "upi", UPIID: "x@upi"}, now)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestOwnerMarkFoundByStrangerRejected(t *testing.T) {
	item := lostItem()
	err := OwnerMarkFound(item, finder, FoundReport{}, now)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestConfirmReceiptChecks(t *testing.T) {
	t.Run("not found yet", func(t *testing.T) {
		item := lostItem()
		assert.ErrorIs(t, ConfirmReceipt(item, owner, now), ErrInvalidState)
	})

	t.Run("wrong actor", func(t *testing.T) {
		item, _ := advance(t, "found")
		assert.ErrorIs(t, ConfirmReceipt(item, finder, now), ErrUnauthorized)
	})

	t.Run("idempotence: second confirm rejected, state unchanged", func(t *testing.T) {
		item, _ := advance(t, "found")
		first := now.Add(time.Hour)
		require.NoError(t, ConfirmReceipt(item, owner, first))

		err := ConfirmReceipt(item, owner, now.Add(2*time.Hour))
		assert.ErrorIs(t, err, ErrInvalidState)
		require.NotNil(t, item.OwnerConfirmedAt)
		assert.Equal(t, first, *item.OwnerConfirmedAt)
	})
}

func TestClaimBeforeReceiptAlwaysRejected(t *testing.T) {
	item, _ := advance(t, "found")
	claim := Claim{Method: "upi", UPIID: "finder@upi"}

	// Regardless of actor.
	for _, actor := range []uuid.UUID{finder, owner, uuid.New()} {
		err := ClaimReward(item, actor, claim, now)
		require.Error(t, err)
		assert.Equal(t, models.RewardNotClaimed, item.RewardStatus)
	}
	// For the finder specifically it is the state, not the role.
	assert.ErrorIs(t, ClaimReward(item, finder, claim, now), ErrInvalidState)
}

func TestClaimValidation(t *testing.T) {
	tests := []struct {
		name  string
		claim Claim
	}{
		{"unknown method", Claim{Method: "cash"}},
		{"upi without id", Claim{Method: "upi"}},
		{"bank missing fields", Claim{Method: "bank", BankName: "SBI"}},
		{"other without details", Claim{Method: "other"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item, _ := advance(t, "confirmed_receipt")
			err := ClaimReward(item, finder, tt.claim, now)
			assert.ErrorIs(t, err, ErrValidation)
			assert.Equal(t, models.RewardNotClaimed, item.RewardStatus)
		})
	}
}

func TestClaimTwiceRejected(t *testing.T) {
	item, _ := advance(t, "claimed")
	err := ClaimReward(item, finder, Claim{Method: "upi", UPIID: "finder@upi"}, now)
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestPayBeforeClaimRejected(t *testing.T) {
	item, _ := advance(t, "confirmed_receipt")
	_, err := PayReward(item, owner, Payment{TransactionID: "TXN-1"}, now)
	assert.ErrorIs(t, err, ErrInvalidState)
	assert.False(t, item.RewardPaid())
}

func TestPayRewardChecks(t *testing.T) {
	t.Run("wrong actor", func(t *testing.T) {
		item, _ := advance(t, "claimed")
		_, err := PayReward(item, finder, Payment{TransactionID: "TXN-1"}, now)
		assert.ErrorIs(t, err, ErrUnauthorized)
	})

	t.Run("missing transaction id", func(t *testing.T) {
		item, _ := advance(t, "claimed")
		_, err := PayReward(item, owner, Payment{}, now)
		assert.ErrorIs(t, err, ErrValidation)
		assert.Equal(t, models.RewardClaimed, item.RewardStatus)
	})

	t.Run("double pay with live code rejected", func(t *testing.T) {
		item, _ := advance(t, "paid")
		_, err := PayReward(item, owner, Payment{TransactionID: "TXN-2"}, now.Add(4*time.Hour))
		assert.ErrorIs(t, err, ErrInvalidState)
	})
}

func TestConfirmPaymentWrongCode(t *testing.T) {
	item, code := advance(t, "paid")
	wrong := "000000"
	if wrong == code {
		wrong = "000001"
	}

	err := ConfirmPayment(item, finder, wrong, now.Add(4*time.Hour))
	assert.ErrorIs(t, err, ErrCodeMismatch)
	assert.Equal(t, models.RewardPaid, item.RewardStatus)
}

func TestConfirmPaymentExpiredCode(t *testing.T) {
	item, code := advance(t, "paid")

	err := ConfirmPayment(item, finder, code, now.Add(3*time.Hour).Add(CodeTTL).Add(time.Minute))
	assert.ErrorIs(t, err, ErrCodeExpired)
	assert.Equal(t, models.RewardPaid, item.RewardStatus)
}

func TestExpiredCodeCanBeReissued(t *testing.T) {
	item, oldCode := advance(t, "paid")
	late := now.Add(3 * time.Hour).Add(CodeTTL).Add(time.Hour)

	require.ErrorIs(t, ConfirmPayment(item, finder, oldCode, late), ErrCodeExpired)

	newCode, err := PayReward(item, owner, Payment{TransactionID: "TXN-2"}, late)
	require.NoError(t, err)
	require.NoError(t, ConfirmPayment(item, finder, newCode, late.Add(time.Hour)))
	assert.Equal(t, models.RewardConfirmed, item.RewardStatus)
}

func TestConfirmPaymentWrongActor(t *testing.T) {
	item, code := advance(t, "paid")
	err := ConfirmPayment(item, owner, code, now.Add(4*time.Hour))
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestRejectClaim(t *testing.T) {
	item, _ := advance(t, "claimed")
	require.NoError(t, RejectClaim(item, owner, now.Add(3*time.Hour)))
	assert.Equal(t, models.RewardRejected, item.RewardStatus)

	// Terminal: no payment, no re-claim.
	_, err := PayReward(item, owner, Payment{TransactionID: "TXN-1"}, now.Add(4*time.Hour))
	assert.ErrorIs(t, err, ErrInvalidState)
	assert.ErrorIs(t, ClaimReward(item, finder, Claim{Method: "upi", UPIID: "x@upi"}, now.Add(4*time.Hour)), ErrInvalidState)
}

func TestRejectClaimRequiresPendingClaim(t *testing.T) {
	item, _ := advance(t, "paid")
	assert.ErrorIs(t, RejectClaim(item, owner, now), ErrInvalidState)
}

func TestSettleBeforeConfirmationRejected(t *testing.T) {
	for _, stage := range []string{"claimed", "paid"} {
		t.Run(stage, func(t *testing.T) {
			item, _ := advance(t, stage)
			err := Settle(item, owner, now.Add(6*time.Hour))
			assert.ErrorIs(t, err, ErrInvalidState)
			assert.False(t, item.Settled())
		})
	}
}

func TestSettleChecks(t *testing.T) {
	t.Run("wrong actor", func(t *testing.T) {
		item, _ := advance(t, "payment_confirmed")
		assert.ErrorIs(t, Settle(item, finder, now), ErrUnauthorized)
	})

	t.Run("already settled", func(t *testing.T) {
		item, _ := advance(t, "settled")
		assert.ErrorIs(t, Settle(item, owner, now.Add(24*time.Hour)), ErrInvalidState)
	})
}

func TestChangeStatus(t *testing.T) {
	t.Run("advances", func(t *testing.T) {
		item := lostItem()
		require.NoError(t, ChangeStatus(item, owner, models.StatusFound, now))
		assert.Equal(t, models.StatusFound, item.Status)
		require.NotNil(t, item.FoundAt)

		require.NoError(t, ChangeStatus(item, owner, models.StatusReturned, now.Add(time.Hour)))
		assert.True(t, item.OwnerConfirmed())
	})

	t.Run("never regresses", func(t *testing.T) {
		item, _ := advance(t, "found")
		assert.ErrorIs(t, ChangeStatus(item, owner, models.StatusLost, now), ErrInvalidState)
		assert.ErrorIs(t, ChangeStatus(item, owner, models.StatusFound, now), ErrInvalidState)
	})

	t.Run("owner only", func(t *testing.T) {
		item := lostItem()
		assert.ErrorIs(t, ChangeStatus(item, finder, models.StatusFound, now), ErrUnauthorized)
	})

	t.Run("unknown status", func(t *testing.T) {
		item := lostItem()
		assert.ErrorIs(t, ChangeStatus(item, owner, models.ItemStatus("misplaced"), now), ErrValidation)
	})
}

func TestGenerateCodeShape(t *testing.T) {
	for i := 0; i < 50; i++ {
		code, err := generateCode()
		require.NoError(t, err)
		require.Len(t, code, 6)
		assert.GreaterOrEqual(t, code[0], byte('1'))
		for _, c := range code {
			assert.True(t, c >= '0' && c <= '9')
		}
	}
}
