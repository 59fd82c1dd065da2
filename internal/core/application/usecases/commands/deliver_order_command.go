package commands

import (
	"errors"

	"gascylinder/internal/core/domain/model/kernel"
	"gascylinder/internal/pkg/errs"
	"gascylinder/internal/pkg/guard"
)

var ErrDeliverOrderCommandIsNotConstructed = errors.New(
	"DeliverOrderCommand must be created via NewDeliverOrderCommand constructor",
)

// DeliverOrderCommand represents the agent completing a delivery. The
// handoff is authenticated either by the customer's one-time code or by a
// scanned QR payload referencing the order and its cylinder; exactly one
// path must be provided.
type DeliverOrderCommand struct { //nolint:recvcheck //using for validation
	agentID       kernel.UUID
	orderID       kernel.UUID
	otp           string
	scannedCylID  string
	qrOrderID     *kernel.UUID
	qrCylID       string
	agentLocation *kernel.Location

	guard guard.ConstructorGuard
}

// NewDeliverOrderCommand creates a delivery command authenticated by the
// customer's code. scannedCylID is optional; when present it must match the
// order's recorded cylinder.
func NewDeliverOrderCommand(
	agentID kernel.UUID,
	orderID kernel.UUID,
	otp string,
	scannedCylID string,
	agentLocation *kernel.Location,
) (DeliverOrderCommand, error) {
	command := DeliverOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setAgentID(agentID),
		command.setOrderID(orderID),
		command.setOTP(otp),
		command.setAgentLocation(agentLocation),
	); err != nil {
		return DeliverOrderCommand{}, err
	}

	command.scannedCylID = scannedCylID
	return command, nil
}

// NewDeliverOrderByQRCommand creates a delivery command authenticated by a
// scanned QR payload.
func NewDeliverOrderByQRCommand(
	agentID kernel.UUID,
	orderID kernel.UUID,
	qrOrderID kernel.UUID,
	qrCylID string,
	agentLocation *kernel.Location,
) (DeliverOrderCommand, error) {
	command := DeliverOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setAgentID(agentID),
		command.setOrderID(orderID),
		command.setQRPayload(qrOrderID, qrCylID),
		command.setAgentLocation(agentLocation),
	); err != nil {
		return DeliverOrderCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through a constructor.
func (c DeliverOrderCommand) Validate() error {
	return c.guard.Validate(ErrDeliverOrderCommandIsNotConstructed)
}

// AgentID returns the delivering agent.
func (c DeliverOrderCommand) AgentID() kernel.UUID {
	return c.agentID
}

// OrderID returns the delivered order.
func (c DeliverOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// ByQR reports whether the QR path authenticates this delivery.
func (c DeliverOrderCommand) ByQR() bool {
	return c.qrOrderID != nil
}

// OTP returns the presented one-time code, empty on the QR path.
func (c DeliverOrderCommand) OTP() string {
	return c.otp
}

// ScannedCylID returns the label the agent scanned on the OTP path, empty
// when the agent did not scan.
func (c DeliverOrderCommand) ScannedCylID() string {
	return c.scannedCylID
}

// QROrderID returns the order referenced by the QR payload, nil on the OTP path.
func (c DeliverOrderCommand) QROrderID() *kernel.UUID {
	return c.qrOrderID
}

// QRCylID returns the cylinder referenced by the QR payload.
func (c DeliverOrderCommand) QRCylID() string {
	return c.qrCylID
}

// AgentLocation returns where the agent delivered, or nil.
func (c DeliverOrderCommand) AgentLocation() *kernel.Location {
	return c.agentLocation
}

func (c *DeliverOrderCommand) setAgentID(agentID kernel.UUID) error {
	if err := agentID.Validate(); err != nil {
		return err
	}

	c.agentID = agentID
	return nil
}

func (c *DeliverOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *DeliverOrderCommand) setOTP(otp string) error {
	if otp == "" {
		return errs.NewValueIsRequiredError("otp")
	}

	c.otp = otp
	return nil
}

func (c *DeliverOrderCommand) setQRPayload(qrOrderID kernel.UUID, qrCylID string) error {
	if err := qrOrderID.Validate(); err != nil {
		return err
	}
	if qrCylID == "" {
		return errs.NewValueIsRequiredError("qr cylId")
	}

	c.qrOrderID = &qrOrderID
	c.qrCylID = qrCylID
	return nil
}

func (c *DeliverOrderCommand) setAgentLocation(agentLocation *kernel.Location) error {
	if agentLocation != nil {
		if err := agentLocation.Validate(); err != nil {
			return err
		}
	}

	c.agentLocation = agentLocation
	return nil
}
