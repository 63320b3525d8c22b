package handlers

import (
	"errors"
	"log"

	"storefront/internal/services"

	"github.com/gofiber/fiber/v2"
)

// CheckoutHandler handles the checkout submission.
type CheckoutHandler struct {
	service *services.CheckoutService
}

// NewCheckoutHandler creates a new CheckoutHandler.
func NewCheckoutHandler(service *services.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{
		service: service,
	}
}

// RegisterRoutes registers the checkout routes with the Fiber app.
func (h *CheckoutHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/checkout", h.HandleSubmit)
}

// HandleSubmit validates the checkout form and places the order. Field
// errors come back as a complete map, never just the first failure.
func (h *CheckoutHandler) HandleSubmit(c *fiber.Ctx) error {
	var form services.CheckoutForm
	if err := c.BodyParser(&form); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	order, err := h.service.Submit(c.Context(), form)
	if err != nil {
		var verr *services.ValidationError
		switch {
		case errors.As(err, &verr):
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"message": "Checkout form validation failed",
				"errors":  verr.Fields,
			})
		case errors.Is(err, services.ErrCheckoutInFlight):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"message": "A checkout is already in progress",
			})
		case errors.Is(err, services.ErrEmptyCart):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Your cart is empty",
			})
		case errors.Is(err, services.ErrPaymentFailed):
			// Form-level error; the cart is preserved so the user can retry.
			return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
				"message": "An error occurred during checkout. Please try again.",
			})
		default:
			log.Printf("Error submitting checkout: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Could not complete checkout",
				"error":   err.Error(),
			})
		}
	}

	return c.Status(fiber.StatusCreated).JSON(order)
}
