package payments

import (
	"errors"
	"fmt"
	"time"

	"github.com/learnhub-io/learnhub-backend/app/models"
	"github.com/learnhub-io/learnhub-backend/internal/pkg/apperror"
	"github.com/learnhub-io/learnhub-backend/internal/pkg/catalog"
	"github.com/learnhub-io/learnhub-backend/internal/pkg/entitlements"
	"github.com/learnhub-io/learnhub-backend/internal/pkg/env"
	"gorm.io/gorm"
)

// ClientStatusFailure is the status a client reports when checkout failed on
// its side before any server verification.
const ClientStatusFailure = "failure"

// Service turns client-reported gateway callbacks into durable, verified
// payment records and entitlement grants.
type Service struct {
	repo      Repository
	gateway   Gateway
	keyID     string
	keySecret string
	now       func() time.Time
}

// NewService creates a payments service from injected collaborators.
func NewService(repo Repository, gateway Gateway, keyID, keySecret string) *Service {
	return &Service{
		repo:      repo,
		gateway:   gateway,
		keyID:     keyID,
		keySecret: keySecret,
		now:       time.Now,
	}
}

// NewServiceFromDB creates a payments service wired to the Razorpay client
// configured in the environment.
func NewServiceFromDB(db *gorm.DB) *Service {
	keyID := env.GetEnv("RAZORPAY_KEY_ID", "")
	keySecret := env.GetEnv("RAZORPAY_KEY_SECRET", "")
	return NewService(NewRepository(db), NewRazorpayGateway(keyID, keySecret), keyID, keySecret)
}

// KeyID returns the public gateway key the client needs for checkout.
func (s *Service) KeyID() string {
	return s.keyID
}

// CreateOrder opens a gateway order for the given amount.
func (s *Service) CreateOrder(amount int64, currency string, userID uint) (*Order, error) {
	if amount <= 0 || userID == 0 {
		return nil, apperror.BadRequest("Amount, and userId are required")
	}
	if currency == "" {
		currency = "INR"
	}

	if _, err := s.repo.GetUser(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("User not found")
		}
		return nil, err
	}

	receipt := fmt.Sprintf("receipt_%d", s.now().UnixMilli())
	order, err := s.gateway.CreateOrder(amount, currency, receipt)
	if err != nil {
		return nil, apperror.Internal("Failed to create order")
	}
	return order, nil
}

// ReconcileInput is the client-reported callback for one payment attempt.
type ReconcileInput struct {
	OrderID   string
	PaymentID string
	Signature string

	Amount      int64
	Currency    string
	UserID      uint
	PaymentType string
	ContentID   uint
	ContentType string
	PlanTypeID  uint

	// ClientStatus is "failure" when checkout already failed client-side.
	ClientStatus string
}

// ReconcilePayment runs the verification state machine. Every terminal
// verification failure (client-reported, bad signature, not captured, amount
// mismatch) is persisted as a failed Payment before the error is returned, so
// failed attempts stay auditable. Only a verified, captured payment reaches
// the transactional entitlement grant.
func (s *Service) ReconcilePayment(in ReconcileInput) (*models.Payment, error) {
	if in.OrderID == "" || in.PaymentID == "" || in.Signature == "" {
		return nil, apperror.BadRequest("Razorpay details are required")
	}
	if in.Amount <= 0 || in.UserID == 0 || in.PaymentType == "" {
		return nil, apperror.BadRequest("Amount, userId, and paymentType are required")
	}
	if in.Currency == "" {
		in.Currency = "INR"
	}

	if _, err := s.repo.GetUser(in.UserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("User not found")
		}
		return nil, err
	}

	// Normalize the legacy "Quiz" alias before anything is persisted.
	if in.ContentType != "" {
		if kind, err := catalog.Parse(in.ContentType); err == nil {
			in.ContentType = kind.String()
		}
	}

	// Client already knows the checkout failed; record it and stop.
	if in.ClientStatus == ClientStatusFailure {
		payment := s.buildFailedPayment(in, "Payment failed at client side")
		if err := s.repo.CreatePayment(payment); err != nil {
			return nil, err
		}
		return payment, nil
	}

	if !VerifySignature(in.OrderID, in.PaymentID, in.Signature, s.keySecret) {
		payment := s.buildFailedPayment(in, "Invalid payment signature")
		if err := s.repo.CreatePayment(payment); err != nil {
			return nil, err
		}
		return nil, apperror.BadRequest("Invalid payment signature")
	}

	var (
		kind catalog.Kind
		plan *models.SubscriptionPlan
	)
	switch in.PaymentType {
	case models.PaymentTypeIndividual:
		if in.ContentID == 0 || in.ContentType == "" {
			return nil, apperror.BadRequest("ContentId and contentType are required for individual purchases")
		}
		var err error
		kind, err = catalog.Parse(in.ContentType)
		if err != nil {
			return nil, apperror.BadRequest("Invalid content type")
		}
		if _, err := s.repo.GetContent(kind, in.ContentID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperror.NotFound(fmt.Sprintf("%s not found", kind))
			}
			return nil, err
		}
	case models.PaymentTypeSubscription:
		if in.PlanTypeID == 0 {
			return nil, apperror.BadRequest("PlanType is required for subscription")
		}
		var err error
		plan, err = s.repo.GetPlan(in.PlanTypeID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperror.BadRequest("Invalid plan type")
			}
			return nil, err
		}
	default:
		return nil, apperror.BadRequest("Invalid payment type")
	}

	gatewayPayment, err := s.gateway.FetchPayment(in.PaymentID)
	if err != nil {
		return nil, err
	}
	if gatewayPayment.Status != GatewayStatusCaptured {
		reason := fmt.Sprintf("Payment not captured. Status: %s", gatewayPayment.Status)
		payment := s.buildFailedPayment(in, reason)
		if err := s.repo.CreatePayment(payment); err != nil {
			return nil, err
		}
		return nil, apperror.BadRequest(reason)
	}

	// The paid amount must match one plan price exactly; whichever matches
	// determines the duration. No tolerance.
	duration := ""
	if in.PaymentType == models.PaymentTypeSubscription {
		switch in.Amount {
		case plan.MonthlyPrice:
			duration = models.DurationMonthly
		case plan.YearlyPrice:
			duration = models.DurationYearly
		default:
			payment := s.buildFailedPayment(in, "Invalid payment amount for the selected plan")
			if err := s.repo.CreatePayment(payment); err != nil {
				return nil, err
			}
			return nil, apperror.BadRequest("Invalid payment amount for the selected plan")
		}
	}

	payment := s.buildPaidPayment(in, duration)
	if err := payment.Validate(); err != nil {
		return nil, apperror.BadRequest(err.Error())
	}
	if err := s.repo.CreatePayment(payment); err != nil {
		return nil, err
	}

	// The grant is all-or-nothing across subscription, individual grants and
	// the user row. The paid Payment above is deliberately outside: it stays
	// even if the grant fails, and the attempt remains auditable.
	err = s.repo.Transaction(func(tx entitlements.GrantStore) error {
		now := s.now()
		if in.PaymentType == models.PaymentTypeIndividual {
			_, err := entitlements.GrantIndividual(tx, in.UserID, kind, in.ContentID, now, entitlements.LifetimeEnd(now), false)
			return err
		}
		end := now.AddDate(0, 1, 0)
		if duration == models.DurationYearly {
			end = now.AddDate(1, 0, 0)
		}
		_, err := entitlements.GrantPlan(tx, in.UserID, in.PlanTypeID, now, end, false)
		return err
	})
	if err != nil {
		return nil, err
	}

	return payment, nil
}

func (s *Service) buildFailedPayment(in ReconcileInput, reason string) *models.Payment {
	payment := &models.Payment{
		UserID:            in.UserID,
		RazorpayOrderID:   in.OrderID,
		RazorpayPaymentID: in.PaymentID,
		RazorpaySignature: in.Signature,
		Amount:            in.Amount,
		Currency:          in.Currency,
		PaymentStatus:     models.PaymentStatusFailed,
		FailureReason:     reason,
		PaymentType:       in.PaymentType,
	}
	if in.PaymentType == models.PaymentTypeIndividual {
		if in.ContentID != 0 {
			contentID := in.ContentID
			payment.ContentID = &contentID
		}
		payment.ContentType = in.ContentType
	} else {
		if in.PlanTypeID != 0 {
			planTypeID := in.PlanTypeID
			payment.PlanTypeID = &planTypeID
		}
		payment.Duration = models.DurationInactive
		payment.SubscriptionStatus = models.SubscriptionStatusInactive
	}
	return payment
}

func (s *Service) buildPaidPayment(in ReconcileInput, duration string) *models.Payment {
	payment := &models.Payment{
		UserID:            in.UserID,
		RazorpayOrderID:   in.OrderID,
		RazorpayPaymentID: in.PaymentID,
		RazorpaySignature: in.Signature,
		Amount:            in.Amount,
		Currency:          in.Currency,
		PaymentStatus:     models.PaymentStatusPaid,
		PaymentType:       in.PaymentType,
	}
	if in.PaymentType == models.PaymentTypeIndividual {
		contentID := in.ContentID
		payment.ContentID = &contentID
		payment.ContentType = in.ContentType
	} else {
		planTypeID := in.PlanTypeID
		payment.PlanTypeID = &planTypeID
		payment.Duration = duration
		payment.SubscriptionStatus = models.SubscriptionStatusActive
	}
	return payment
}
