package handlers

import (
	"storefront/internal/services"

	"github.com/gofiber/fiber/v2"
)

// AnalyticsHandler exposes the dashboard aggregates.
type AnalyticsHandler struct {
	service *services.AnalyticsService
}

// NewAnalyticsHandler creates a new AnalyticsHandler.
func NewAnalyticsHandler(service *services.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{
		service: service,
	}
}

// RegisterRoutes registers the analytics routes with the Fiber app.
func (h *AnalyticsHandler) RegisterRoutes(router fiber.Router) {
	analyticsRoutes := router.Group("/analytics")
	analyticsRoutes.Get("/report", h.HandleGetReport)
	analyticsRoutes.Get("/monthly", h.HandleGetMonthlySales)
	analyticsRoutes.Get("/categories", h.HandleGetCategoryBreakdown)
	analyticsRoutes.Get("/top-products", h.HandleGetTopProducts)
}

// HandleGetReport returns the headline scalars.
func (h *AnalyticsHandler) HandleGetReport(c *fiber.Ctx) error {
	return c.JSON(h.service.Report())
}

// HandleGetMonthlySales returns the monthly revenue series.
func (h *AnalyticsHandler) HandleGetMonthlySales(c *fiber.Ctx) error {
	return c.JSON(h.service.MonthlySales())
}

// HandleGetCategoryBreakdown returns the per-category sales table.
func (h *AnalyticsHandler) HandleGetCategoryBreakdown(c *fiber.Ctx) error {
	return c.JSON(h.service.CategoryBreakdown())
}

// HandleGetTopProducts returns the product performance table.
func (h *AnalyticsHandler) HandleGetTopProducts(c *fiber.Ctx) error {
	return c.JSON(h.service.TopProducts())
}
