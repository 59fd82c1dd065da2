package services

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"gascylinder/internal/core/domain/model/kernel"
	"gascylinder/internal/core/domain/model/order"
	"gascylinder/internal/pkg/errs"
)

const (
	// handoffCodeDigits is the length of a generated one-time code.
	handoffCodeDigits = 6
	// handoffSaltBytes is the length of the per-code salt.
	handoffSaltBytes = 16
	// DefaultHandoffTTL bounds how long an issued code stays valid.
	DefaultHandoffTTL = 20 * time.Minute
)

// Handoff verification errors.
var (
	// ErrNoHandoffIssued is returned when verifying an order that has no outstanding code.
	ErrNoHandoffIssued = errors.New("no handoff code has been issued for the order")
	// ErrHandoffPurposeMismatch is returned when a code issued for pickup is presented at delivery or vice versa.
	ErrHandoffPurposeMismatch = errors.New("handoff code was issued for a different purpose")
	// ErrOrderMismatch is returned when a scanned QR payload references a different order.
	ErrOrderMismatch = errors.New("scanned payload references a different order")
)

// HandoffVerifier issues and checks the one-time codes that gate
// custody-changing order transitions. Codes are short-lived, single-use and
// stored only as a salted hash; the plaintext exists once, in the issue
// response shown to the customer or supplier.
type HandoffVerifier struct {
	ttl time.Duration
}

// NewHandoffVerifier creates a verifier with the given code lifetime.
// Non-positive values fall back to DefaultHandoffTTL.
func NewHandoffVerifier(ttl time.Duration) HandoffVerifier {
	if ttl <= 0 {
		ttl = DefaultHandoffTTL
	}
	return HandoffVerifier{ttl: ttl}
}

// IssueCode generates a fresh code for the given purpose, attaches its
// salted hash to the order and returns the plaintext. Issuing replaces any
// previously outstanding code.
func (v HandoffVerifier) IssueCode(o *order.Order, purpose order.HandoffPurpose, now time.Time) (string, error) {
	if err := o.Validate(); err != nil {
		return "", err
	}
	if err := purpose.Validate(); err != nil {
		return "", err
	}

	code, err := generateHandoffCode()
	if err != nil {
		return "", err
	}

	codeHash, err := hashHandoffCode(code)
	if err != nil {
		return "", err
	}

	credential, err := order.NewHandoffCredential(purpose, codeHash, now.Add(v.ttl))
	if err != nil {
		return "", err
	}

	if err := o.AttachHandoff(credential); err != nil {
		return "", err
	}

	return code, nil
}

// VerifyPickup checks a pickup code against the order's outstanding
// credential and consumes it on success, making the code single-use.
func (v HandoffVerifier) VerifyPickup(o *order.Order, code string, now time.Time) error {
	return v.verify(o, order.HandoffPurposePickup, code, now)
}

// VerifyDelivery checks a delivery code and the presented cylinder identity.
// The code is consumed on success. When the order's snapshot records a
// cylinder and a label was presented, the two must match; an empty
// presentedCylID means the agent did not scan the unit and skips the check.
func (v HandoffVerifier) VerifyDelivery(o *order.Order, code string, presentedCylID string, now time.Time) error {
	if err := o.Validate(); err != nil {
		return err
	}

	if err := matchSnapshotCylinder(o, presentedCylID); err != nil {
		return err
	}

	return v.verify(o, order.HandoffPurposeDelivery, code, now)
}

// VerifyDeliveryScan validates a scanned QR payload as an alternative to
// the delivery code. The payload must reference this order and carry the
// cylinder recorded in its snapshot. It does not consume any outstanding
// code; the two delivery paths are independent.
func (v HandoffVerifier) VerifyDeliveryScan(o *order.Order, scannedOrderID kernel.UUID, scannedCylID string) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if err := scannedOrderID.Validate(); err != nil {
		return err
	}

	if !o.ID().IsEqual(scannedOrderID) {
		return ErrOrderMismatch
	}
	if scannedCylID == "" {
		return errs.NewValueIsRequiredError("scanned cylinder id")
	}

	return matchSnapshotCylinder(o, scannedCylID)
}

func (v HandoffVerifier) verify(o *order.Order, purpose order.HandoffPurpose, code string, now time.Time) error {
	if err := o.Validate(); err != nil {
		return err
	}

	credential := o.Handoff()
	if credential == nil {
		return ErrNoHandoffIssued
	}
	if credential.Purpose() != purpose {
		return ErrHandoffPurposeMismatch
	}
	if credential.ExpiredAt(now) {
		return order.ErrHandoffCodeExpired
	}

	match, err := compareHandoffCode(credential.CodeHash(), code)
	if err != nil {
		return err
	}
	if !match {
		return order.ErrHandoffCodeMismatch
	}

	o.ConsumeHandoff()
	return nil
}

func matchSnapshotCylinder(o *order.Order, presentedCylID string) error {
	if presentedCylID == "" || !o.Snapshot().HasCylinder() {
		return nil
	}
	if o.Snapshot().CylID() != presentedCylID {
		return order.ErrCylinderMismatch
	}
	return nil
}

// generateHandoffCode returns a zero-padded numeric code drawn from
// crypto/rand.
func generateHandoffCode() (string, error) {
	maxCode := big.NewInt(1)
	for i := 0; i < handoffCodeDigits; i++ {
		maxCode.Mul(maxCode, big.NewInt(10))
	}

	n, err := rand.Int(rand.Reader, maxCode)
	if err != nil {
		return "", fmt.Errorf("generate handoff code: %w", err)
	}

	return fmt.Sprintf("%0*d", handoffCodeDigits, n), nil
}

// hashHandoffCode stores the code as "saltHex:sha256Hex" so equal codes
// never produce equal records.
func hashHandoffCode(code string) (string, error) {
	salt := make([]byte, handoffSaltBytes)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generate handoff salt: %w", err)
	}

	digest := sha256.Sum256(append(salt, []byte(code)...))
	return hex.EncodeToString(salt) + ":" + hex.EncodeToString(digest[:]), nil
}

// compareHandoffCode re-derives the salted digest and compares it in
// constant time.
func compareHandoffCode(codeHash string, code string) (bool, error) {
	saltHex, digestHex, ok := strings.Cut(codeHash, ":")
	if !ok {
		return false, errors.New("malformed handoff code hash")
	}

	salt, err := hex.DecodeString(saltHex)
	if err != nil {
		return false, fmt.Errorf("malformed handoff code hash: %w", err)
	}

	stored, err := hex.DecodeString(digestHex)
	if err != nil {
		return false, fmt.Errorf("malformed handoff code hash: %w", err)
	}

	digest := sha256.Sum256(append(salt, []byte(code)...))
	return subtle.ConstantTimeCompare(stored, digest[:]) == 1, nil
}
