// Package http exposes the application over echo. Every operation binds a
// strict request struct (unknown JSON fields are rejected) and maps domain
// errors onto HTTP status codes in one place. Actor identity arrives in the
// X-Actor-Id and X-Actor-Role headers injected by the upstream gateway; this
// layer trusts them and only checks that the role matches the operation.
package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"gascylinder/internal/core/application/usecases/commands"
	"gascylinder/internal/core/application/usecases/queries"
	"gascylinder/internal/core/domain/model/cylinder"
	"gascylinder/internal/core/domain/model/kernel"
	"gascylinder/internal/core/domain/model/loyalty"
	"gascylinder/internal/core/domain/model/order"
	"gascylinder/internal/core/domain/services"
	"gascylinder/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

const (
	headerActorID   = "X-Actor-Id"
	headerActorRole = "X-Actor-Role"

	roleCustomer = "customer"
	roleSupplier = "supplier"
	roleAgent    = "agent"
)

// Handlers bundles the command and query handlers the server dispatches to.
type Handlers struct {
	CreateCylinder      commands.CreateCylinderCommandHandler
	UpdateCylinder      commands.UpdateCylinderCommandHandler
	ReportCylinderLost  commands.ReportCylinderLostCommandHandler
	CreateOrder         commands.CreateOrderCommandHandler
	ReviewOrder         commands.ReviewOrderCommandHandler
	MarkOrderAtSupplier commands.MarkOrderAtSupplierCommandHandler
	AssignAgent         commands.AssignAgentCommandHandler
	RespondAssignment   commands.RespondAssignmentCommandHandler
	IssueHandoffOTP     commands.IssueHandoffOTPCommandHandler
	PickupOrder         commands.PickupOrderCommandHandler
	PickupAtSupplier    commands.PickupAtSupplierCommandHandler
	DeliverOrder        commands.DeliverOrderCommandHandler
	ResyncCylinder      commands.ResyncCylinderCommandHandler
	SaveLoyaltyProgram  commands.SaveLoyaltyProgramCommandHandler
	RequestRedemption   commands.RequestRedemptionCommandHandler
	ProcessRedemption   commands.ProcessRedemptionCommandHandler

	SupplierCylinders queries.GetSupplierCylindersQueryHandler
	UncompletedOrders queries.GetUncompletedOrdersQueryHandler
	Redemptions       queries.GetRedemptionsQueryHandler
}

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	handlers Handlers
}

// NewServer creates the HTTP server over the given handlers.
func NewServer(handlers Handlers) *Server {
	return &Server{handlers: handlers}
}

// RegisterRoutes attaches every endpoint to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)

	e.POST("/cylinders", s.CreateCylinder)
	e.GET("/cylinders", s.GetCylinders)
	e.PATCH("/cylinders/:cylId", s.UpdateCylinder)
	e.POST("/cylinders/:cylId/report-lost", s.ReportCylinderLost)

	e.POST("/orders", s.CreateOrder)
	e.GET("/orders", s.GetOrders)
	e.PATCH("/orders/:id", s.PatchOrder)
	e.POST("/orders/:id/pickup", s.PickupOrder)
	e.POST("/orders/:id/pickup-supplier", s.PickupAtSupplier)
	e.POST("/orders/:id/deliver", s.DeliverOrder)
	e.POST("/orders/:id/generate-supplier-otp", s.GenerateSupplierOTP)
	e.POST("/orders/:id/issue-otp", s.IssueDeliveryOTP)
	e.POST("/orders/:id/resync", s.ResyncCylinder)

	e.PUT("/suppliers/me/loyalty", s.SaveLoyaltyProgram)
	e.POST("/suppliers/me/loyalty/redemptions", s.RequestRedemption)
	e.PATCH("/suppliers/me/loyalty/redemptions/:id", s.ProcessRedemption)
	e.GET("/suppliers/me/loyalty/redemptions", s.GetRedemptions)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

type createCylinderRequest struct {
	CylID        string   `json:"cylId"`
	Size         string   `json:"size"`
	Brand        string   `json:"brand"`
	Price        float64  `json:"price"`
	RefillPrice  float64  `json:"refillPrice"`
	Condition    string   `json:"condition"`
	LocationText string   `json:"locationText"`
	Lat          *float64 `json:"lat"`
	Lon          *float64 `json:"lon"`
}

// CreateCylinder handles POST /cylinders. A duplicate (supplier, cylId) pair
// answers 409.
func (s *Server) CreateCylinder(ctx echo.Context) error {
	supplierID, err := actor(ctx, roleSupplier)
	if err != nil {
		return respondError(ctx, err)
	}

	var req createCylinderRequest
	if err = bindStrict(ctx, &req); err != nil {
		return respondError(ctx, err)
	}

	condition, err := cylinder.ConditionFromString(req.Condition)
	if err != nil {
		return respondError(ctx, err)
	}

	location, err := locationFromRequest(req.Lat, req.Lon)
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewCreateCylinderCommand(
		supplierID, req.CylID, req.Size, req.Brand,
		req.Price, req.RefillPrice, condition, req.LocationText, location)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.handlers.CreateCylinder.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, map[string]string{"id": req.CylID})
}

type updateCylinderRequest struct {
	Size         *string  `json:"size"`
	Brand        *string  `json:"brand"`
	Price        *float64 `json:"price"`
	RefillPrice  *float64 `json:"refillPrice"`
	Condition    *string  `json:"condition"`
	LocationText *string  `json:"locationText"`
	Lat          *float64 `json:"lat"`
	Lon          *float64 `json:"lon"`
	Status       *string  `json:"status"`
	Owner        *string  `json:"owner"`
}

// UpdateCylinder handles PATCH /cylinders/:cylId. Absent fields keep their
// current values; status and owner must be corrected together.
func (s *Server) UpdateCylinder(ctx echo.Context) error {
	supplierID, err := actor(ctx, roleSupplier)
	if err != nil {
		return respondError(ctx, err)
	}

	var req updateCylinderRequest
	if err = bindStrict(ctx, &req); err != nil {
		return respondError(ctx, err)
	}

	var condition *cylinder.Condition
	if req.Condition != nil {
		parsed, parseErr := cylinder.ConditionFromString(*req.Condition)
		if parseErr != nil {
			return respondError(ctx, parseErr)
		}
		condition = &parsed
	}

	var status *cylinder.Status
	if req.Status != nil {
		parsed, parseErr := cylinder.StatusFromString(*req.Status)
		if parseErr != nil {
			return respondError(ctx, parseErr)
		}
		status = &parsed
	}

	var owner *cylinder.Owner
	if req.Owner != nil {
		parsed, parseErr := cylinder.OwnerFromString(*req.Owner)
		if parseErr != nil {
			return respondError(ctx, parseErr)
		}
		owner = &parsed
	}

	location, err := locationFromRequest(req.Lat, req.Lon)
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewUpdateCylinderCommand(
		supplierID, ctx.Param("cylId"), req.Size, req.Brand,
		req.Price, req.RefillPrice, condition, req.LocationText, location,
		status, owner)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.handlers.UpdateCylinder.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusOK)
}

type reportCylinderLostRequest struct {
	SupplierID string `json:"supplierId"`
}

// ReportCylinderLost handles POST /cylinders/:cylId/report-lost. Only the
// customer a cylinder was delivered to may report it lost.
func (s *Server) ReportCylinderLost(ctx echo.Context) error {
	customerID, err := actor(ctx, roleCustomer)
	if err != nil {
		return respondError(ctx, err)
	}

	var req reportCylinderLostRequest
	if err = bindStrict(ctx, &req); err != nil {
		return respondError(ctx, err)
	}

	supplierID, err := kernel.UUIDFromString(req.SupplierID)
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewReportCylinderLostCommand(customerID, supplierID, ctx.Param("cylId"))
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.handlers.ReportCylinderLost.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusOK)
}

// GetCylinders handles GET /cylinders - the supplier's own fleet.
func (s *Server) GetCylinders(ctx echo.Context) error {
	supplierID, err := actor(ctx, roleSupplier)
	if err != nil {
		return respondError(ctx, err)
	}

	query, err := queries.NewGetSupplierCylindersQuery(supplierID)
	if err != nil {
		return respondError(ctx, err)
	}

	cylinders, err := s.handlers.SupplierCylinders.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, cylinders)
}

type createOrderRequest struct {
	SupplierID string `json:"supplierId"`
	Type       string `json:"type"`
	Cylinder   struct {
		ID    *string `json:"id"`
		Size  string  `json:"size"`
		Brand string  `json:"brand"`
		Price float64 `json:"price"`
	} `json:"cylinder"`
	Delivery struct {
		Date       time.Time `json:"date"`
		Timeslot   string    `json:"timeslot"`
		DistanceKm float64   `json:"distanceKm"`
		Fee        float64   `json:"fee"`
	} `json:"delivery"`
	Total float64 `json:"total"`
}

// CreateOrder handles POST /orders. When the customer picked a concrete
// cylinder its booking happens atomically with order creation; a cylinder
// someone else booked first answers 409.
func (s *Server) CreateOrder(ctx echo.Context) error {
	customerID, err := actor(ctx, roleCustomer)
	if err != nil {
		return respondError(ctx, err)
	}

	var req createOrderRequest
	if err = bindStrict(ctx, &req); err != nil {
		return respondError(ctx, err)
	}

	supplierID, err := kernel.UUIDFromString(req.SupplierID)
	if err != nil {
		return respondError(ctx, err)
	}

	orderType, err := order.TypeFromString(req.Type)
	if err != nil {
		return respondError(ctx, err)
	}

	cylID := ""
	if req.Cylinder.ID != nil {
		cylID = *req.Cylinder.ID
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(
		orderID, customerID, supplierID, orderType,
		cylID, req.Cylinder.Size, req.Cylinder.Brand, req.Cylinder.Price,
		req.Delivery.Date, req.Delivery.Timeslot, req.Delivery.DistanceKm,
		req.Delivery.Fee, req.Total)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.handlers.CreateOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, map[string]string{"id": orderID.String()})
}

// GetOrders handles GET /orders - uncompleted orders scoped to the actor.
func (s *Server) GetOrders(ctx echo.Context) error {
	actorID, err := kernel.UUIDFromString(ctx.Request().Header.Get(headerActorID))
	if err != nil {
		return respondError(ctx, errs.NewValueIsRequiredError(headerActorID + " header"))
	}

	var query queries.GetUncompletedOrdersQuery
	switch ctx.Request().Header.Get(headerActorRole) {
	case roleCustomer:
		query, err = queries.NewGetUncompletedOrdersQueryForCustomer(actorID)
	case roleSupplier:
		query, err = queries.NewGetUncompletedOrdersQueryForSupplier(actorID)
	case roleAgent:
		query, err = queries.NewGetUncompletedOrdersQueryForAgent(actorID)
	default:
		err = errs.NewValueIsInvalidError(headerActorRole + " header")
	}
	if err != nil {
		return respondError(ctx, err)
	}

	orders, err := s.handlers.UncompletedOrders.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orders)
}

type patchOrderRequest struct {
	Status          *string `json:"status"`
	AssignedAgentID *string `json:"assignedAgentId"`
	Accept          *bool   `json:"accept"`
}

// PatchOrder handles PATCH /orders/:id. The body selects the transition:
// a supplier reviews (status Approved/Rejected), marks a refill arrived
// (status AtSupplier) or assigns an agent; an agent accepts or declines an
// assignment.
func (s *Server) PatchOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return respondError(ctx, err)
	}

	var req patchOrderRequest
	if err = bindStrict(ctx, &req); err != nil {
		return respondError(ctx, err)
	}

	switch {
	case req.Accept != nil:
		return s.respondAssignment(ctx, orderID, *req.Accept)
	case req.AssignedAgentID != nil:
		return s.assignAgent(ctx, orderID, *req.AssignedAgentID)
	case req.Status != nil:
		return s.transitionOrder(ctx, orderID, *req.Status)
	default:
		return respondError(ctx, errs.NewValueIsRequiredError("status, assignedAgentId or accept"))
	}
}

func (s *Server) respondAssignment(ctx echo.Context, orderID kernel.UUID, accept bool) error {
	agentID, err := actor(ctx, roleAgent)
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewRespondAssignmentCommand(agentID, orderID, accept)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.handlers.RespondAssignment.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusOK)
}

func (s *Server) assignAgent(ctx echo.Context, orderID kernel.UUID, rawAgentID string) error {
	supplierID, err := actor(ctx, roleSupplier)
	if err != nil {
		return respondError(ctx, err)
	}

	agentID, err := kernel.UUIDFromString(rawAgentID)
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewAssignAgentCommand(supplierID, orderID, agentID)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.handlers.AssignAgent.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusOK)
}

func (s *Server) transitionOrder(ctx echo.Context, orderID kernel.UUID, rawStatus string) error {
	supplierID, err := actor(ctx, roleSupplier)
	if err != nil {
		return respondError(ctx, err)
	}

	status, err := order.StatusFromString(rawStatus)
	if err != nil {
		return respondError(ctx, err)
	}

	switch status {
	case order.Approved, order.Rejected:
		cmd, cmdErr := commands.NewReviewOrderCommand(supplierID, orderID, status == order.Approved)
		if cmdErr != nil {
			return respondError(ctx, cmdErr)
		}
		if handleErr := s.handlers.ReviewOrder.Handle(ctx.Request().Context(), cmd); handleErr != nil {
			return respondError(ctx, handleErr)
		}
	case order.AtSupplier:
		cmd, cmdErr := commands.NewMarkOrderAtSupplierCommand(supplierID, orderID)
		if cmdErr != nil {
			return respondError(ctx, cmdErr)
		}
		if handleErr := s.handlers.MarkOrderAtSupplier.Handle(ctx.Request().Context(), cmd); handleErr != nil {
			return respondError(ctx, handleErr)
		}
	default:
		return respondError(ctx, errs.NewValueIsInvalidError("status"))
	}

	return ctx.NoContent(http.StatusOK)
}

type pickupOrderRequest struct {
	ScanCylID string   `json:"scanCylId"`
	Lat       *float64 `json:"lat"`
	Lon       *float64 `json:"lon"`
}

// PickupOrder handles POST /orders/:id/pickup - the scan-match path for
// order-type pickups.
func (s *Server) PickupOrder(ctx echo.Context) error {
	agentID, err := actor(ctx, roleAgent)
	if err != nil {
		return respondError(ctx, err)
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return respondError(ctx, err)
	}

	var req pickupOrderRequest
	if err = bindStrict(ctx, &req); err != nil {
		return respondError(ctx, err)
	}

	location, err := locationFromRequest(req.Lat, req.Lon)
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewPickupOrderCommand(agentID, orderID, req.ScanCylID, location)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.handlers.PickupOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusOK)
}

type pickupAtSupplierRequest struct {
	OTP string   `json:"otp"`
	Lat *float64 `json:"lat"`
	Lon *float64 `json:"lon"`
}

// PickupAtSupplier handles POST /orders/:id/pickup-supplier - the
// OTP-authenticated refill pickup.
func (s *Server) PickupAtSupplier(ctx echo.Context) error {
	agentID, err := actor(ctx, roleAgent)
	if err != nil {
		return respondError(ctx, err)
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return respondError(ctx, err)
	}

	var req pickupAtSupplierRequest
	if err = bindStrict(ctx, &req); err != nil {
		return respondError(ctx, err)
	}

	location, err := locationFromRequest(req.Lat, req.Lon)
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewPickupAtSupplierCommand(agentID, orderID, req.OTP, location)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.handlers.PickupAtSupplier.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusOK)
}

type deliverOrderRequest struct {
	OTP               *string `json:"otp"`
	ScanCylID         *string `json:"scanCylId"`
	CustomerQrPayload *struct {
		OrderID string `json:"orderId"`
		CylID   string `json:"cylId"`
	} `json:"customerQrPayload"`
	Lat *float64 `json:"lat"`
	Lon *float64 `json:"lon"`
}

// DeliverOrder handles POST /orders/:id/deliver. Exactly one of otp and
// customerQrPayload authenticates the handoff.
func (s *Server) DeliverOrder(ctx echo.Context) error {
	agentID, err := actor(ctx, roleAgent)
	if err != nil {
		return respondError(ctx, err)
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return respondError(ctx, err)
	}

	var req deliverOrderRequest
	if err = bindStrict(ctx, &req); err != nil {
		return respondError(ctx, err)
	}

	location, err := locationFromRequest(req.Lat, req.Lon)
	if err != nil {
		return respondError(ctx, err)
	}

	var cmd commands.DeliverOrderCommand
	switch {
	case req.OTP != nil && req.CustomerQrPayload == nil:
		scanCylID := ""
		if req.ScanCylID != nil {
			scanCylID = *req.ScanCylID
		}
		cmd, err = commands.NewDeliverOrderCommand(agentID, orderID, *req.OTP, scanCylID, location)
	case req.CustomerQrPayload != nil && req.OTP == nil:
		var qrOrderID kernel.UUID
		qrOrderID, err = kernel.UUIDFromString(req.CustomerQrPayload.OrderID)
		if err != nil {
			return respondError(ctx, err)
		}
		cmd, err = commands.NewDeliverOrderByQRCommand(
			agentID, orderID, qrOrderID, req.CustomerQrPayload.CylID, location)
	default:
		return respondError(ctx, errs.NewValueIsRequiredError("exactly one of otp and customerQrPayload"))
	}
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.handlers.DeliverOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusOK)
}

type issuedOTPResponse struct {
	OTP              string `json:"otp"`
	ExpiresInMinutes int    `json:"expiresInMinutes"`
}

// GenerateSupplierOTP handles POST /orders/:id/generate-supplier-otp. The
// supplier issues the pickup code; the plaintext is returned once and only
// its hash is stored.
func (s *Server) GenerateSupplierOTP(ctx echo.Context) error {
	return s.issueOTP(ctx, roleSupplier, order.HandoffPurposePickup)
}

// IssueDeliveryOTP handles POST /orders/:id/issue-otp. The customer issues
// the delivery code for the agent arriving at the door.
func (s *Server) IssueDeliveryOTP(ctx echo.Context) error {
	return s.issueOTP(ctx, roleCustomer, order.HandoffPurposeDelivery)
}

func (s *Server) issueOTP(ctx echo.Context, role string, purpose order.HandoffPurpose) error {
	actorID, err := actor(ctx, role)
	if err != nil {
		return respondError(ctx, err)
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewIssueHandoffOTPCommand(actorID, orderID, purpose)
	if err != nil {
		return respondError(ctx, err)
	}

	issued, err := s.handlers.IssueHandoffOTP.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, issuedOTPResponse{
		OTP:              issued.Code,
		ExpiresInMinutes: issued.ExpiresInMinutes,
	})
}

// ResyncCylinder handles POST /orders/:id/resync - the idempotent
// reconciliation entry point re-projecting the order onto its cylinder.
func (s *Server) ResyncCylinder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewResyncCylinderCommand(orderID)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.handlers.ResyncCylinder.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusOK)
}

type saveLoyaltyProgramRequest struct {
	PointsDivisor int `json:"pointsDivisor"`
	Tiers         []struct {
		Name      string `json:"name"`
		MinPoints int    `json:"minPoints"`
	} `json:"tiers"`
	Rules []struct {
		ID          *string `json:"id"`
		TriggerType string  `json:"triggerType"`
		Nth         int     `json:"nth"`
		RewardType  string  `json:"rewardType"`
		Value       float64 `json:"value"`
		Active      bool    `json:"active"`
	} `json:"rules"`
}

// SaveLoyaltyProgram handles PUT /suppliers/me/loyalty - wholesale replace
// of the supplier's program.
func (s *Server) SaveLoyaltyProgram(ctx echo.Context) error {
	supplierID, err := actor(ctx, roleSupplier)
	if err != nil {
		return respondError(ctx, err)
	}

	var req saveLoyaltyProgramRequest
	if err = bindStrict(ctx, &req); err != nil {
		return respondError(ctx, err)
	}

	tiers := make([]loyalty.Tier, 0, len(req.Tiers))
	for _, t := range req.Tiers {
		tier, tierErr := loyalty.NewTier(t.Name, t.MinPoints)
		if tierErr != nil {
			return respondError(ctx, tierErr)
		}
		tiers = append(tiers, tier)
	}

	rules := make([]loyalty.Rule, 0, len(req.Rules))
	for _, r := range req.Rules {
		ruleID := kernel.NewUUID()
		if r.ID != nil {
			ruleID, err = kernel.UUIDFromString(*r.ID)
			if err != nil {
				return respondError(ctx, err)
			}
		}

		triggerType, parseErr := loyalty.TriggerTypeFromString(r.TriggerType)
		if parseErr != nil {
			return respondError(ctx, parseErr)
		}
		rewardType, parseErr := loyalty.RewardTypeFromString(r.RewardType)
		if parseErr != nil {
			return respondError(ctx, parseErr)
		}

		rule, ruleErr := loyalty.NewRule(ruleID, triggerType, r.Nth, rewardType, r.Value, r.Active)
		if ruleErr != nil {
			return respondError(ctx, ruleErr)
		}
		rules = append(rules, rule)
	}

	cmd, err := commands.NewSaveLoyaltyProgramCommand(supplierID, req.PointsDivisor, tiers, rules)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.handlers.SaveLoyaltyProgram.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusOK)
}

type requestRedemptionRequest struct {
	CustomerID string  `json:"customerId"`
	RuleID     string  `json:"ruleId"`
	OrderID    *string `json:"orderId"`
}

// RequestRedemption handles POST /suppliers/me/loyalty/redemptions.
// Eligibility is computed and frozen server-side at request time.
func (s *Server) RequestRedemption(ctx echo.Context) error {
	supplierID, err := actor(ctx, roleSupplier)
	if err != nil {
		return respondError(ctx, err)
	}

	var req requestRedemptionRequest
	if err = bindStrict(ctx, &req); err != nil {
		return respondError(ctx, err)
	}

	customerID, err := kernel.UUIDFromString(req.CustomerID)
	if err != nil {
		return respondError(ctx, err)
	}

	ruleID, err := kernel.UUIDFromString(req.RuleID)
	if err != nil {
		return respondError(ctx, err)
	}

	var orderID *kernel.UUID
	if req.OrderID != nil {
		parsed, parseErr := kernel.UUIDFromString(*req.OrderID)
		if parseErr != nil {
			return respondError(ctx, parseErr)
		}
		orderID = &parsed
	}

	redemptionID := kernel.NewUUID()
	cmd, err := commands.NewRequestRedemptionCommand(redemptionID, customerID, supplierID, ruleID, orderID)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.handlers.RequestRedemption.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, map[string]string{"id": redemptionID.String()})
}

type processRedemptionRequest struct {
	Status string `json:"status"`
}

// ProcessRedemption handles PATCH /suppliers/me/loyalty/redemptions/:id.
// The body carries the verdict: "approved" or "rejected".
func (s *Server) ProcessRedemption(ctx echo.Context) error {
	supplierID, err := actor(ctx, roleSupplier)
	if err != nil {
		return respondError(ctx, err)
	}

	redemptionID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return respondError(ctx, err)
	}

	var req processRedemptionRequest
	if err = bindStrict(ctx, &req); err != nil {
		return respondError(ctx, err)
	}

	var approve bool
	switch req.Status {
	case "approved":
		approve = true
	case "rejected":
		approve = false
	default:
		return respondError(ctx, errs.NewValueIsInvalidError("status"))
	}

	cmd, err := commands.NewProcessRedemptionCommand(supplierID, redemptionID, approve)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.handlers.ProcessRedemption.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusOK)
}

// GetRedemptions handles GET /suppliers/me/loyalty/redemptions.
func (s *Server) GetRedemptions(ctx echo.Context) error {
	supplierID, err := actor(ctx, roleSupplier)
	if err != nil {
		return respondError(ctx, err)
	}

	query, err := queries.NewGetRedemptionsQuery(supplierID)
	if err != nil {
		return respondError(ctx, err)
	}

	redemptions, err := s.handlers.Redemptions.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, redemptions)
}

// actor reads the trusted identity headers and checks the role.
func actor(ctx echo.Context, role string) (kernel.UUID, error) {
	if got := ctx.Request().Header.Get(headerActorRole); got != role {
		return kernel.UUID{}, errs.NewActionIsForbiddenError(
			"perform a " + role + " operation as role " + got)
	}

	id, err := kernel.UUIDFromString(ctx.Request().Header.Get(headerActorID))
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsRequiredError(headerActorID + " header")
	}

	return id, nil
}

// bindStrict decodes the JSON body rejecting unknown fields, so malformed
// or mistyped payloads fail loudly instead of being silently coerced.
func bindStrict(ctx echo.Context, target any) error {
	decoder := json.NewDecoder(ctx.Request().Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(target); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("request body", err)
	}

	return nil
}

func locationFromRequest(lat, lon *float64) (*kernel.Location, error) {
	if lat == nil && lon == nil {
		return nil, nil //nolint:nilnil //absence of coordinates is a valid state
	}
	if lat == nil || lon == nil {
		return nil, errs.NewValueIsRequiredError("both lat and lon")
	}

	location, err := kernel.NewLocation(*lat, *lon)
	if err != nil {
		return nil, err
	}

	return &location, nil
}

type errorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func respondError(ctx echo.Context, err error) error {
	code := statusForError(err)
	return ctx.JSON(code, errorResponse{Code: code, Message: err.Error()})
}

// statusForError maps the error taxonomy onto HTTP statuses: conflicts and
// duplicates 409, role/ownership violations 403, missing objects 404, failed
// handoff authentication 401, everything else about the request itself 400.
func statusForError(err error) int {
	var (
		notFound      *errs.ObjectNotFoundError
		alreadyExists *errs.ObjectAlreadyExistsError
		forbidden     *errs.ActionIsForbiddenError
	)

	switch {
	case errors.As(err, &notFound),
		errors.Is(err, loyalty.ErrRuleNotFound):
		return http.StatusNotFound
	case errors.As(err, &alreadyExists),
		errors.Is(err, cylinder.ErrNotAvailable),
		errors.Is(err, cylinder.ErrEditForbiddenWhileBooked),
		errors.Is(err, cylinder.ErrEditRestrictedWhileDelivered),
		errors.Is(err, loyalty.ErrRedemptionAlreadyProcessed),
		errors.Is(err, loyalty.ErrRuleInactive):
		return http.StatusConflict
	case errors.As(err, &forbidden),
		errors.Is(err, order.ErrAgentNotAssigned),
		errors.Is(err, order.ErrAssignmentNotAccepted):
		return http.StatusForbidden
	case errors.Is(err, order.ErrHandoffCodeMismatch),
		errors.Is(err, order.ErrHandoffCodeExpired),
		errors.Is(err, order.ErrCylinderMismatch),
		errors.Is(err, services.ErrNoHandoffIssued),
		errors.Is(err, services.ErrHandoffPurposeMismatch),
		errors.Is(err, services.ErrOrderMismatch):
		return http.StatusUnauthorized
	default:
		return http.StatusBadRequest
	}
}
