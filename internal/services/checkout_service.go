package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"reflect"
	"regexp"
	"strings"
	"time"

	"storefront/internal/models"
	"storefront/internal/repositories"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var (
	// ErrCheckoutInFlight is returned when a submission starts while a
	// previous one has not finished.
	ErrCheckoutInFlight = errors.New("a checkout submission is already in progress")
	// ErrEmptyCart is returned when checkout is attempted on an empty cart.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrPaymentFailed wraps payment processor failures. The cart is left
	// untouched so the user can retry.
	ErrPaymentFailed = errors.New("payment failed")
)

// CheckoutForm is the flat field set collected at checkout. Fields are
// named, not string-keyed, and each carries its validator rules.
type CheckoutForm struct {
	FullName   string `json:"full_name" validate:"notblank"`
	Email      string `json:"email" validate:"notblank,email"`
	Address    string `json:"address" validate:"notblank"`
	City       string `json:"city" validate:"notblank"`
	PostalCode string `json:"postal_code" validate:"notblank"`
	Country    string `json:"country" validate:"notblank"`
	CardNumber string `json:"card_number" validate:"notblank,cardnumber"`
	CardExpiry string `json:"card_expiry" validate:"notblank,cardexpiry"`
	CardCVC    string `json:"card_cvc" validate:"notblank,cardcvc"`
}

// ValidationError carries the complete per-field error map for a
// rejected form. All fields are validated together; the map covers
// every failing field, not just the first.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("checkout form validation failed for %d field(s)", len(e.Fields))
}

// PaymentProcessor models the payment round trip. The real system has
// no payment gateway; the simulated implementation below just waits.
type PaymentProcessor interface {
	Process(ctx context.Context, amount float64) error
}

// SimulatedPaymentProcessor sleeps for a fixed delay and succeeds.
// The delay respects context cancellation.
type SimulatedPaymentProcessor struct {
	Delay time.Duration
}

func (p SimulatedPaymentProcessor) Process(ctx context.Context, amount float64) error {
	if p.Delay <= 0 {
		return nil
	}
	timer := time.NewTimer(p.Delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

var (
	cardNumberRe = regexp.MustCompile(`^\d{16}$`)
	cardExpiryRe = regexp.MustCompile(`^(0[1-9]|1[0-2])/\d{2}$`)
	cardCVCRe    = regexp.MustCompile(`^\d{3,4}$`)
)

// CheckoutService validates the checkout form and turns the current
// cart into an order. A single in-flight flag rejects re-entrant
// submissions; idempotence after success is therefore enforced here,
// not left to the caller.
type CheckoutService struct {
	cart      *CartService
	orderRepo repositories.OrderRepository
	publisher OrderEventPublisher
	processor PaymentProcessor
	validate  *validator.Validate
	taxRate   float64

	inFlight chan struct{} // 1-slot token guarding submission
}

// NewCheckoutService creates a CheckoutService. publisher may be nil.
func NewCheckoutService(cart *CartService, orderRepo repositories.OrderRepository, publisher OrderEventPublisher, processor PaymentProcessor, taxRate float64) *CheckoutService {
	v := validator.New()

	// Report errors under the json field name.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// required alone accepts whitespace; checkout fields must be
	// non-empty after trimming.
	v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	v.RegisterValidation("cardnumber", func(fl validator.FieldLevel) bool {
		return cardNumberRe.MatchString(strings.ReplaceAll(fl.Field().String(), " ", ""))
	})
	v.RegisterValidation("cardexpiry", func(fl validator.FieldLevel) bool {
		return cardExpiryRe.MatchString(strings.TrimSpace(fl.Field().String()))
	})
	v.RegisterValidation("cardcvc", func(fl validator.FieldLevel) bool {
		return cardCVCRe.MatchString(strings.TrimSpace(fl.Field().String()))
	})

	guard := make(chan struct{}, 1)
	guard <- struct{}{}

	return &CheckoutService{
		cart:      cart,
		orderRepo: orderRepo,
		publisher: publisher,
		processor: processor,
		validate:  v,
		taxRate:   taxRate,
		inFlight:  guard,
	}
}

// fieldLabels maps form fields to the labels used in error messages.
var fieldLabels = map[string]string{
	"full_name":   "Full name",
	"email":       "Email",
	"address":     "Address",
	"city":        "City",
	"postal_code": "Postal code",
	"country":     "Country",
	"card_number": "Card number",
	"card_expiry": "Expiry date",
	"card_cvc":    "CVC",
}

// Validate checks the whole form and returns the per-field error map,
// empty when the form is valid. Stored state is never touched.
func (s *CheckoutService) Validate(form CheckoutForm) map[string]string {
	fieldErrors := make(map[string]string)

	err := s.validate.Struct(form)
	if err == nil {
		return fieldErrors
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		fieldErrors["form"] = err.Error()
		return fieldErrors
	}

	for _, fe := range verrs {
		field := fe.Field()
		label := fieldLabels[field]
		if label == "" {
			label = field
		}
		switch fe.Tag() {
		case "notblank":
			fieldErrors[field] = label + " is required"
		case "email":
			fieldErrors[field] = label + " is invalid"
		case "cardnumber":
			fieldErrors[field] = label + " must be 16 digits"
		case "cardexpiry":
			fieldErrors[field] = label + " must be in MM/YY format"
		case "cardcvc":
			fieldErrors[field] = label + " must be 3 or 4 digits"
		default:
			fieldErrors[field] = label + " is invalid"
		}
	}
	return fieldErrors
}

// Submit runs the checkout pipeline: validate, process payment, append
// the order, publish order.created, clear the cart.
//
// On validation failure it returns a *ValidationError and changes
// nothing. On payment failure the cart is preserved for retry. A second
// call while one is in flight returns ErrCheckoutInFlight.
func (s *CheckoutService) Submit(ctx context.Context, form CheckoutForm) (*models.Order, error) {
	select {
	case <-s.inFlight:
		defer func() { s.inFlight <- struct{}{} }()
	default:
		return nil, ErrCheckoutInFlight
	}

	if fieldErrors := s.Validate(form); len(fieldErrors) > 0 {
		return nil, &ValidationError{Fields: fieldErrors}
	}

	summary := s.cart.Summary()
	if len(summary.Items) == 0 {
		return nil, ErrEmptyCart
	}

	order := s.buildOrder(form, summary)

	if err := s.processor.Process(ctx, order.TotalAmount); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPaymentFailed, err)
	}

	if err := s.orderRepo.Create(order); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	if s.publisher != nil {
		payload := map[string]interface{}{
			"order_id": order.ID,
			"status":   string(order.Status),
			"total":    order.TotalAmount,
		}
		if err := s.publisher.PublishOrderEvent(EventOrderCreated, payload); err != nil {
			log.Printf("Warning: failed to publish order created event for order %s: %v", order.ID, err)
		}
	}

	s.cart.Clear()
	return order, nil
}

// buildOrder snapshots the cart into a pending order. Item prices are
// copied so later catalog changes cannot drift into the order.
func (s *CheckoutService) buildOrder(form CheckoutForm, summary models.CartSummary) *models.Order {
	items := make([]models.OrderItem, 0, len(summary.Items))
	for _, line := range summary.Items {
		items = append(items, models.OrderItem{
			ProductID: line.Product.ID,
			Name:      line.Product.Name,
			Category:  line.Product.Category,
			Price:     line.Product.Price,
			Quantity:  line.Quantity,
		})
	}

	subtotal := summary.Subtotal
	tax := subtotal * s.taxRate
	cardDigits := strings.ReplaceAll(form.CardNumber, " ", "")

	return &models.Order{
		ID:       uuid.New().String(),
		Items:    items,
		Subtotal: subtotal,
		Tax:      tax,
		// Shipping is free, so the grand total is subtotal plus tax.
		TotalAmount: subtotal + tax,
		Status:      models.StatusPending,
		ShippingAddress: models.ShippingAddress{
			Name:       strings.TrimSpace(form.FullName),
			Street:     strings.TrimSpace(form.Address),
			City:       strings.TrimSpace(form.City),
			PostalCode: strings.TrimSpace(form.PostalCode),
			Country:    strings.TrimSpace(form.Country),
		},
		PaymentMethod: models.PaymentMethod{
			Type:    "credit_card",
			Details: "ending in " + cardDigits[len(cardDigits)-4:],
		},
		OrderDate: time.Now(),
	}
}
