package reward

import "errors"

// Transition rejections. Every rejection is terminal for the request: the
// item is left untouched and the actor gets the specific reason back.
var (
	// ErrUnauthorized means the actor is not the role this transition
	// requires for this item (owner vs finder).
	ErrUnauthorized = errors.New("not allowed for this item")

	// ErrInvalidState means the item is not in the state the transition
	// requires (out of order, already done, or skipped a stage).
	ErrInvalidState = errors.New("invalid item state")

	// ErrValidation means the payload is missing or malformed.
	ErrValidation = errors.New("invalid input")

	// ErrCodeMismatch means the supplied confirmation code does not match
	// the stored one.
	ErrCodeMismatch = errors.New("invalid confirmation code")

	// ErrCodeExpired means the confirmation code is past its expiry and the
	// owner must record the payment again to issue a fresh one.
	ErrCodeExpired = errors.New("confirmation code expired")
)
