package handlers

import (
	"errors"
	"log"

	"storefront/internal/repositories"
	"storefront/internal/services"

	"github.com/gofiber/fiber/v2"
)

// CartHandler handles HTTP requests for the shopping cart. Products are
// resolved through the catalog so the cart only ever references real
// catalog records.
type CartHandler struct {
	cart    *services.CartService
	catalog *services.CatalogService
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(cart *services.CartService, catalog *services.CatalogService) *CartHandler {
	return &CartHandler{
		cart:    cart,
		catalog: catalog,
	}
}

// RegisterRoutes registers the cart routes with the Fiber app.
func (h *CartHandler) RegisterRoutes(router fiber.Router) {
	cartRoutes := router.Group("/cart")
	cartRoutes.Get("/", h.HandleGetCart)
	cartRoutes.Post("/items", h.HandleAddItem)
	cartRoutes.Patch("/items/:productId", h.HandleUpdateQuantity)
	cartRoutes.Delete("/items/:productId", h.HandleRemoveItem)
	cartRoutes.Delete("/", h.HandleClearCart)
}

// HandleGetCart returns the cart summary.
func (h *CartHandler) HandleGetCart(c *fiber.Ctx) error {
	return c.JSON(h.cart.Summary())
}

// HandleAddItem adds a product to the cart, merging quantities when the
// product is already present.
func (h *CartHandler) HandleAddItem(c *fiber.Ctx) error {
	var input struct {
		ProductID string `json:"product_id"`
		Quantity  int    `json:"quantity"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if input.Quantity == 0 {
		input.Quantity = 1
	}
	if input.Quantity < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Quantity must be at least 1",
		})
	}

	product, err := h.catalog.GetProductByID(input.ProductID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Product not found",
			})
		}
		log.Printf("Error resolving product %s for cart: %v", input.ProductID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not add item to cart",
			"error":   err.Error(),
		})
	}

	h.cart.AddItem(*product, input.Quantity)
	return c.Status(fiber.StatusCreated).JSON(h.cart.Summary())
}

// HandleUpdateQuantity sets the quantity on a cart line. Quantities
// below 1 are rejected; the line must be removed instead.
func (h *CartHandler) HandleUpdateQuantity(c *fiber.Ctx) error {
	productID := c.Params("productId")
	var input struct {
		Quantity int `json:"quantity"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if input.Quantity < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Quantity must be at least 1; remove the item instead",
		})
	}

	h.cart.UpdateQuantity(productID, input.Quantity)
	return c.JSON(h.cart.Summary())
}

// HandleRemoveItem deletes a cart line. Removing an absent line still
// succeeds.
func (h *CartHandler) HandleRemoveItem(c *fiber.Ctx) error {
	h.cart.RemoveItem(c.Params("productId"))
	return c.JSON(h.cart.Summary())
}

// HandleClearCart empties the cart.
func (h *CartHandler) HandleClearCart(c *fiber.Ctx) error {
	h.cart.Clear()
	return c.JSON(h.cart.Summary())
}
