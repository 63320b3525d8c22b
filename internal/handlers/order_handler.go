package handlers

import (
	"errors"
	"log"
	"strings"

	"storefront/internal/repositories"
	"storefront/internal/services"

	"github.com/gofiber/fiber/v2"
)

// OrderHandler handles HTTP requests for order history.
type OrderHandler struct {
	service *services.OrderService
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(service *services.OrderService) *OrderHandler {
	return &OrderHandler{
		service: service,
	}
}

// RegisterRoutes registers the order routes with the Fiber app.
func (h *OrderHandler) RegisterRoutes(router fiber.Router) {
	orderRoutes := router.Group("/orders")
	orderRoutes.Get("/", h.HandleGetOrders)
	orderRoutes.Get("/:id", h.HandleGetOrderByID)
	orderRoutes.Patch("/:id/status", h.HandleUpdateOrderStatus)
	orderRoutes.Post("/:id/ship", h.HandleMarkShipped)
	orderRoutes.Post("/:id/deliver", h.HandleMarkDelivered)
	orderRoutes.Post("/:id/cancel", h.HandleCancelOrder)
}

// HandleGetOrders retrieves orders, optionally filtered by status
// ("?status=shipped"); "all" or no filter returns everything.
func (h *OrderHandler) HandleGetOrders(c *fiber.Ctx) error {
	orders, err := h.service.GetAllOrders(c.Query("status"))
	if err != nil {
		log.Printf("Error getting all orders: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve orders",
			"error":   err.Error(),
		})
	}
	return c.JSON(orders)
}

// HandleGetOrderByID retrieves a single order plus its derived
// shipment progress stage.
func (h *OrderHandler) HandleGetOrderByID(c *fiber.Ctx) error {
	orderID := c.Params("id")
	order, err := h.service.GetOrderByID(orderID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Order not found",
			})
		}
		log.Printf("Error getting order by ID %s: %v", orderID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve order",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"order":          order,
		"progress_stage": services.ProgressStage(*order),
	})
}

// HandleUpdateOrderStatus moves an order to a new status.
func (h *OrderHandler) HandleUpdateOrderStatus(c *fiber.Ctx) error {
	orderID := c.Params("id")
	var updateData struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&updateData); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body for status update",
			"error":   err.Error(),
		})
	}
	if updateData.Status == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Status is required for order status update.",
		})
	}

	order, err := h.service.UpdateOrderStatus(orderID, updateData.Status)
	if err != nil {
		return h.statusUpdateError(c, orderID, err)
	}
	return c.JSON(order)
}

// HandleMarkShipped ships an order, recording the tracking number.
func (h *OrderHandler) HandleMarkShipped(c *fiber.Ctx) error {
	orderID := c.Params("id")
	var input struct {
		TrackingNumber string `json:"tracking_number"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	order, err := h.service.MarkShipped(orderID, input.TrackingNumber)
	if err != nil {
		return h.statusUpdateError(c, orderID, err)
	}
	return c.JSON(order)
}

// HandleMarkDelivered marks an order delivered.
func (h *OrderHandler) HandleMarkDelivered(c *fiber.Ctx) error {
	orderID := c.Params("id")
	order, err := h.service.MarkDelivered(orderID)
	if err != nil {
		return h.statusUpdateError(c, orderID, err)
	}
	return c.JSON(order)
}

// HandleCancelOrder cancels a non-delivered order.
func (h *OrderHandler) HandleCancelOrder(c *fiber.Ctx) error {
	orderID := c.Params("id")
	order, err := h.service.CancelOrder(orderID)
	if err != nil {
		return h.statusUpdateError(c, orderID, err)
	}
	return c.JSON(order)
}

func (h *OrderHandler) statusUpdateError(c *fiber.Ctx, orderID string, err error) error {
	if errors.Is(err, repositories.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Order not found",
		})
	}
	if strings.Contains(err.Error(), "invalid order status") ||
		strings.Contains(err.Error(), "cannot transition") {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": err.Error(),
		})
	}
	log.Printf("Error updating order %s: %v", orderID, err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"message": "Could not update order status",
		"error":   err.Error(),
	})
}
