// Package reward implements the settlement state machine between an item's
// owner and its finder. The two parties are mutually untrusted, so every
// transition re-validates both the actor's role relative to the item and the
// current state before mutating anything; no stage can be skipped and no
// party can advance a stage the other is responsible for.
package reward

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/json"
	"fmt"
	"math/big"
	"time"

	"github.com/foundlyhq/foundly-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// CodeTTL is how long a payment confirmation code stays valid. Expiry forces
// the owner to record the payment again rather than silently extending trust.
const CodeTTL = 24 * time.Hour

// FoundReport is what a finder (or self-resolving owner) submits with
// mark-found.
type FoundReport struct {
	Location string `json:"location"`
	Notes    string `json:"notes,omitempty"`
}

// Claim carries the finder's payout details.
type Claim struct {
	Method        string `json:"method"`
	UPIID         string `json:"upi_id,omitempty"`
	BankName      string `json:"bank_name,omitempty"`
	AccountNumber string `json:"account_number,omitempty"`
	AccountHolder string `json:"account_holder,omitempty"`
	IFSCCode      string `json:"ifsc_code,omitempty"`
	Details       string `json:"details,omitempty"`
}

// Payment carries the owner's proof of having sent the reward.
type Payment struct {
	TransactionID string
	ProofRef      string
}

// MarkFound records that the acting user found someone else's lost item and
// binds them as the finder. The owner still has to confirm receipt.
func MarkFound(item *models.Item, actor uuid.UUID, report FoundReport, now time.Time) error {
	if item.IsOwner(actor) {
		return fmt.Errorf("%w: you cannot mark your own item as found", ErrUnauthorized)
	}
	if item.Status != models.StatusLost {
		return fmt.Errorf("%w: item is already marked as found", ErrInvalidState)
	}

	raw, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("%w: bad found report", ErrValidation)
	}

	item.Status = models.StatusFound
	item.FinderID = &actor
	item.FoundReport = datatypes.JSON(raw)
	item.FoundAt = &now
	return nil
}

// OwnerMarkFound records that the owner recovered the item themselves. No
// finder is bound and receipt is confirmed implicitly, so no reward cycle
// can start.
func OwnerMarkFound(item *models.Item, actor uuid.UUID, report FoundReport, now time.Time) error {
	if !item.IsOwner(actor) {
		return fmt.Errorf("%w: only the owner can resolve their own item", ErrUnauthorized)
	}
	if item.Status != models.StatusLost {
		return fmt.Errorf("%w: item is already marked as found", ErrInvalidState)
	}

	raw, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("%w: bad found report", ErrValidation)
	}

	item.Status = models.StatusFound
	item.FoundReport = datatypes.JSON(raw)
	item.FoundAt = &now
	item.OwnerConfirmedAt = &now
	return nil
}

// ConfirmReceipt is the owner acknowledging the item is back in their hands.
// Only after this can the finder claim the reward.
func ConfirmReceipt(item *models.Item, actor uuid.UUID, now time.Time) error {
	if !item.IsOwner(actor) {
		return fmt.Errorf("%w: only the owner can confirm receipt", ErrUnauthorized)
	}
	if item.Status != models.StatusFound {
		return fmt.Errorf("%w: item must be marked as found before confirming receipt", ErrInvalidState)
	}
	if item.OwnerConfirmed() {
		return fmt.Errorf("%w: receipt already confirmed", ErrInvalidState)
	}

	item.OwnerConfirmedAt = &now
	return nil
}

// ClaimReward records the finder's claim with their payout details.
func ClaimReward(item *models.Item, actor uuid.UUID, claim Claim, now time.Time) error {
	if !item.IsFinder(actor) {
		return fmt.Errorf("%w: only the finder can claim the reward", ErrUnauthorized)
	}
	if !item.OwnerConfirmed() {
		return fmt.Errorf("%w: owner must confirm receipt before the reward can be claimed", ErrInvalidState)
	}
	if item.RewardStatus != models.RewardNotClaimed {
		return fmt.Errorf("%w: reward already claimed", ErrInvalidState)
	}
	if err := validateClaim(claim); err != nil {
		return err
	}

	details, err := json.Marshal(claim)
	if err != nil {
		return fmt.Errorf("%w: bad payment details", ErrValidation)
	}

	item.RewardStatus = models.RewardClaimed
	item.ClaimedAt = &now
	item.PaymentMethod = claim.Method
	item.PaymentDetails = datatypes.JSON(details)
	return nil
}

func validateClaim(claim Claim) error {
	switch claim.Method {
	case "upi":
		if claim.UPIID == "" {
			return fmt.Errorf("%w: upi_id is required", ErrValidation)
		}
	case "bank":
		if claim.BankName == "" || claim.AccountNumber == "" || claim.AccountHolder == "" || claim.IFSCCode == "" {
			return fmt.Errorf("%w: bank_name, account_number, account_holder and ifsc_code are required", ErrValidation)
		}
	case "other":
		if claim.Details == "" {
			return fmt.Errorf("%w: details are required", ErrValidation)
		}
	default:
		return fmt.Errorf("%w: payment method must be upi, bank or other", ErrValidation)
	}
	return nil
}

// PayReward records the owner's payment and issues a fresh confirmation code
// the finder must echo back to prove receipt. Re-running it on a paid item
// whose code has expired starts a new payment-record cycle.
func PayReward(item *models.Item, actor uuid.UUID, payment Payment, now time.Time) (string, error) {
	if !item.IsOwner(actor) {
		return "", fmt.Errorf("%w: only the owner can pay the reward", ErrUnauthorized)
	}
	switch {
	case item.RewardStatus == models.RewardClaimed:
	case item.RewardStatus == models.RewardPaid && codeExpired(item, now):
		// reissue
	default:
		return "", fmt.Errorf("%w: reward must be claimed before payment", ErrInvalidState)
	}
	if payment.TransactionID == "" {
		return "", fmt.Errorf("%w: transaction_id is required", ErrValidation)
	}

	code, err := generateCode()
	if err != nil {
		return "", fmt.Errorf("failed to generate confirmation code: %w", err)
	}
	expires := now.Add(CodeTTL)

	item.RewardStatus = models.RewardPaid
	item.PaidAt = &now
	item.TransactionID = payment.TransactionID
	if payment.ProofRef != "" {
		item.PaymentProof = payment.ProofRef
	}
	item.ConfirmationCode = code
	item.ConfirmationExpires = &expires
	return code, nil
}

func codeExpired(item *models.Item, now time.Time) bool {
	return item.ConfirmationExpires == nil || now.After(*item.ConfirmationExpires)
}

// ConfirmPayment is the finder verifying, with the time-boxed code, that the
// reward actually arrived. This exists so the owner cannot unilaterally
// declare the exchange settled.
func ConfirmPayment(item *models.Item, actor uuid.UUID, code string, now time.Time) error {
	if !item.IsFinder(actor) {
		return fmt.Errorf("%w: only the finder can confirm the reward", ErrUnauthorized)
	}
	if item.RewardStatus != models.RewardPaid {
		return fmt.Errorf("%w: reward must be paid before it can be confirmed", ErrInvalidState)
	}
	if code == "" || item.ConfirmationCode == "" ||
		subtle.ConstantTimeCompare([]byte(code), []byte(item.ConfirmationCode)) != 1 {
		return fmt.Errorf("%w: the code does not match", ErrCodeMismatch)
	}
	if codeExpired(item, now) {
		return fmt.Errorf("%w: ask the owner to record the payment again", ErrCodeExpired)
	}

	item.RewardStatus = models.RewardConfirmed
	item.ConfirmedAt = &now
	item.ConfirmationCode = ""
	item.ConfirmationExpires = nil
	return nil
}

// RejectClaim lets the owner decline a pending claim. Terminal for the
// reward; the item itself stays resolved.
func RejectClaim(item *models.Item, actor uuid.UUID, now time.Time) error {
	if !item.IsOwner(actor) {
		return fmt.Errorf("%w: only the owner can reject a claim", ErrUnauthorized)
	}
	if item.RewardStatus != models.RewardClaimed {
		return fmt.Errorf("%w: there is no pending claim to reject", ErrInvalidState)
	}

	item.RewardStatus = models.RewardRejected
	item.RejectedAt = &now
	return nil
}

// Settle closes the exchange. Requires the finder's independent confirmation
// of payment, so settlement cannot precede it.
func Settle(item *models.Item, actor uuid.UUID, now time.Time) error {
	if !item.IsOwner(actor) {
		return fmt.Errorf("%w: only the owner can settle", ErrUnauthorized)
	}
	if item.Settled() {
		return fmt.Errorf("%w: already settled", ErrInvalidState)
	}
	if item.RewardStatus != models.RewardConfirmed {
		return fmt.Errorf("%w: reward must be confirmed before settling", ErrInvalidState)
	}

	item.SettledAt = &now
	return nil
}

// ChangeStatus lets the owner advance the listing status directly. Status
// never regresses; advancing to returned implies the owner has the item, so
// receipt is confirmed if it was not already.
func ChangeStatus(item *models.Item, actor uuid.UUID, newStatus models.ItemStatus, now time.Time) error {
	if !item.IsOwner(actor) {
		return fmt.Errorf("%w: only the owner can change the status", ErrUnauthorized)
	}
	newRank := newStatus.Rank()
	if newRank < 0 {
		return fmt.Errorf("%w: unknown status %q", ErrValidation, newStatus)
	}
	if newRank <= item.Status.Rank() {
		return fmt.Errorf("%w: status can only advance", ErrInvalidState)
	}

	item.Status = newStatus
	if newRank >= models.StatusFound.Rank() && item.FoundAt == nil {
		item.FoundAt = &now
	}
	if newStatus == models.StatusReturned && !item.OwnerConfirmed() {
		item.OwnerConfirmedAt = &now
	}
	return nil
}

// generateCode returns a 6-digit numeric confirmation code.
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}
