package controllers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/learnhub-io/learnhub-backend/app/models"
	"github.com/learnhub-io/learnhub-backend/app/repository"
	"github.com/learnhub-io/learnhub-backend/internal/pkg/middleware"
	"github.com/learnhub-io/learnhub-backend/internal/pkg/payments"
	"github.com/learnhub-io/learnhub-backend/internal/pkg/respond"
)

// PaymentController handles order creation and payment reconciliation.
type PaymentController struct {
	service  *payments.Service
	plans    repository.PlanRepository
	payments repository.PaymentRepository
}

func NewPaymentController(service *payments.Service, plans repository.PlanRepository, paymentLedger repository.PaymentRepository) *PaymentController {
	return &PaymentController{service: service, plans: plans, payments: paymentLedger}
}

type createOrderRequest struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	UserID   uint   `json:"userId"`
}

// HandleCreateOrder opens a gateway order and hands the client everything it
// needs to start checkout.
func (pc *PaymentController) HandleCreateOrder(c *fiber.Ctx) error {
	var req createOrderRequest
	if err := parseBody(c, &req); err != nil {
		return respond.Error(c, err)
	}

	order, err := pc.service.CreateOrder(req.Amount, req.Currency, req.UserID)
	if err != nil {
		return respond.Error(c, err)
	}

	currency := req.Currency
	if currency == "" {
		currency = "INR"
	}
	return respond.OK(c, "Order created successfully", fiber.Map{
		"orderId":  order.ID,
		"amount":   req.Amount,
		"currency": currency,
		"keyId":    pc.service.KeyID(),
	})
}

type razorpayDetails struct {
	OrderID   string `json:"orderId"`
	PaymentID string `json:"paymentId"`
	Signature string `json:"signature"`
}

type paymentDetails struct {
	Amount      int64  `json:"amount"`
	Currency    string `json:"currency"`
	UserID      uint   `json:"userId"`
	PaymentType string `json:"paymentType"`
	ContentID   uint   `json:"contentId"`
	ContentType string `json:"contentType"`
	PlanTypeID  uint   `json:"planTypeId"`
}

type insertPaymentRequest struct {
	RazorpayDetails razorpayDetails `json:"razorpay_details"`
	PaymentDetails  paymentDetails  `json:"payment_details"`
	PaymentStatus   string          `json:"paymentStatus"`
}

// HandleInsertPayment verifies a client-reported payment and applies the
// entitlement it paid for.
func (pc *PaymentController) HandleInsertPayment(c *fiber.Ctx) error {
	var req insertPaymentRequest
	if err := parseBody(c, &req); err != nil {
		return respond.Error(c, err)
	}

	payment, err := pc.service.ReconcilePayment(payments.ReconcileInput{
		OrderID:      req.RazorpayDetails.OrderID,
		PaymentID:    req.RazorpayDetails.PaymentID,
		Signature:    req.RazorpayDetails.Signature,
		Amount:       req.PaymentDetails.Amount,
		Currency:     req.PaymentDetails.Currency,
		UserID:       req.PaymentDetails.UserID,
		PaymentType:  req.PaymentDetails.PaymentType,
		ContentID:    req.PaymentDetails.ContentID,
		ContentType:  req.PaymentDetails.ContentType,
		PlanTypeID:   req.PaymentDetails.PlanTypeID,
		ClientStatus: req.PaymentStatus,
	})
	if err != nil {
		return respond.Error(c, err)
	}

	if payment.PaymentStatus == models.PaymentStatusFailed {
		return respond.OK(c, "Payment failed!!", payment)
	}
	return respond.OK(c, "Payment verified and recorded successfully", payment)
}

const paymentHistoryPageSize = 20

// HandleListPayments returns the caller's payment attempts, newest first.
func (pc *PaymentController) HandleListPayments(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	history, err := pc.payments.ListByUser(middleware.UserID(c), (page-1)*paymentHistoryPageSize, paymentHistoryPageSize)
	if err != nil {
		return respond.Error(c, err)
	}
	return respond.OK(c, "Payments fetched successfully", history)
}

// HandleListPlans returns the plan catalog with allowed content, so clients
// can render the paywall.
func (pc *PaymentController) HandleListPlans(c *fiber.Ctx) error {
	plans, err := pc.plans.List()
	if err != nil {
		return respond.Error(c, err)
	}
	return respond.OK(c, "Plans fetched successfully", plans)
}
