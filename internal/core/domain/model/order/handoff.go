package order

import (
	"errors"
	"fmt"
	"time"

	"gascylinder/internal/pkg/errs"
	"gascylinder/internal/pkg/guard"
)

var (
	// ErrHandoffCodeMismatch is returned when a presented code, purpose, or
	// scanned identity does not match what was issued for the order.
	ErrHandoffCodeMismatch = errors.New("handoff code mismatch")

	// ErrHandoffCodeExpired is returned when a code is presented after its
	// expiry timestamp, regardless of correctness.
	ErrHandoffCodeExpired = errors.New("handoff code expired")

	// ErrCylinderMismatch is returned when the cylinder identity presented at
	// a handoff (scan or QR payload) does not match the order's recorded
	// cylinder.
	ErrCylinderMismatch = errors.New("cylinder does not match order")

	// ErrHandoffCredentialIsNotConstructed is returned when a HandoffCredential
	// was not created via NewHandoffCredential.
	ErrHandoffCredentialIsNotConstructed = errors.New(
		"HandoffCredential must be created via NewHandoffCredential")
)

// HandoffPurpose binds an issued code to exactly one custody transfer.
type HandoffPurpose int

const (
	// HandoffPurposeUnknown represents an invalid or undefined purpose.
	HandoffPurposeUnknown HandoffPurpose = iota

	// HandoffPurposePickup authenticates the supplier-to-agent transfer.
	HandoffPurposePickup

	// HandoffPurposeDelivery authenticates the agent-to-customer transfer.
	HandoffPurposeDelivery
)

// Validate checks if the HandoffPurpose is one of the closed set.
func (p HandoffPurpose) Validate() error {
	if p != HandoffPurposePickup && p != HandoffPurposeDelivery {
		return errs.NewValueIsInvalidErrorWithCause(
			"handoff purpose", fmt.Errorf("%d is not a valid purpose", p))
	}
	return nil
}

// String implements fmt.Stringer.
func (p HandoffPurpose) String() string {
	switch p {
	case HandoffPurposePickup:
		return "pickup"
	case HandoffPurposeDelivery:
		return "delivery"
	default:
		return "unknown"
	}
}

// HandoffPurposeFromString parses a persisted purpose literal.
func HandoffPurposeFromString(s string) (HandoffPurpose, error) {
	switch s {
	case "pickup":
		return HandoffPurposePickup, nil
	case "delivery":
		return HandoffPurposeDelivery, nil
	default:
		return HandoffPurposeUnknown, errs.NewValueIsInvalidErrorWithCause(
			"handoff purpose", fmt.Errorf("%q is not a valid purpose", s))
	}
}

// HandoffCredential is the transient server-side state of an issued one-time
// code: the purpose it is bound to, a salted hash of the code, and the expiry
// timestamp. The plaintext code is never stored; it is returned to the caller
// exactly once at issuance. The credential is cleared from the order in the
// same write that records a successful verification, making each code
// single-use.
type HandoffCredential struct { //nolint:recvcheck //using for validation
	purpose   HandoffPurpose
	codeHash  string
	expiresAt time.Time

	guard guard.ConstructorGuard
}

// NewHandoffCredential creates a credential for an issued code.
// codeHash is the opaque salted-hash encoding produced by the handoff
// verifier; this package never sees plaintext codes.
func NewHandoffCredential(purpose HandoffPurpose, codeHash string, expiresAt time.Time) (HandoffCredential, error) {
	if err := purpose.Validate(); err != nil {
		return HandoffCredential{}, err
	}
	if codeHash == "" {
		return HandoffCredential{}, errs.NewValueIsRequiredError("code hash")
	}
	if expiresAt.IsZero() {
		return HandoffCredential{}, errs.NewValueIsRequiredError("expiry timestamp")
	}

	return HandoffCredential{
		purpose:   purpose,
		codeHash:  codeHash,
		expiresAt: expiresAt,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the credential was created through the constructor.
func (h HandoffCredential) Validate() error {
	return h.guard.Validate(ErrHandoffCredentialIsNotConstructed)
}

// Purpose returns the custody transfer this credential authenticates.
func (h HandoffCredential) Purpose() HandoffPurpose {
	return h.purpose
}

// CodeHash returns the opaque salted-hash encoding of the code.
func (h HandoffCredential) CodeHash() string {
	return h.codeHash
}

// ExpiresAt returns the expiry timestamp.
func (h HandoffCredential) ExpiresAt() time.Time {
	return h.expiresAt
}

// ExpiredAt reports whether the credential is expired at the given instant.
func (h HandoffCredential) ExpiredAt(now time.Time) bool {
	return now.After(h.expiresAt)
}
