package handlers

import (
	"errors"
	"log"
	"strings"

	"storefront/internal/models"
	"storefront/internal/repositories"
	"storefront/internal/services"

	"github.com/gofiber/fiber/v2"
)

// ProfileHandler handles HTTP requests for the profile and settings
// area.
type ProfileHandler struct {
	service *services.ProfileService
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(service *services.ProfileService) *ProfileHandler {
	return &ProfileHandler{
		service: service,
	}
}

// RegisterRoutes registers the profile routes with the Fiber app.
func (h *ProfileHandler) RegisterRoutes(router fiber.Router) {
	profileRoutes := router.Group("/profile")
	profileRoutes.Get("/", h.HandleGetProfile)
	profileRoutes.Put("/", h.HandleUpdateProfile)
	profileRoutes.Put("/settings", h.HandleUpdateSettings)
	profileRoutes.Post("/password", h.HandleChangePassword)
}

// HandleGetProfile returns the profile record.
func (h *ProfileHandler) HandleGetProfile(c *fiber.Ctx) error {
	user, err := h.service.GetProfile()
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Profile not found",
			})
		}
		log.Printf("Error getting profile: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve profile",
			"error":   err.Error(),
		})
	}
	return c.JSON(user)
}

// HandleUpdateProfile applies the editable profile fields.
func (h *ProfileHandler) HandleUpdateProfile(c *fiber.Ctx) error {
	var update services.ProfileUpdate
	if err := c.BodyParser(&update); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	user, err := h.service.UpdateProfile(update)
	if err != nil {
		if strings.Contains(err.Error(), "invalid profile update") ||
			strings.Contains(err.Error(), "already registered") {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": err.Error(),
			})
		}
		log.Printf("Error updating profile: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not update profile",
			"error":   err.Error(),
		})
	}
	return c.JSON(user)
}

// HandleUpdateSettings replaces the dashboard preferences.
func (h *ProfileHandler) HandleUpdateSettings(c *fiber.Ctx) error {
	var settings models.Settings
	if err := c.BodyParser(&settings); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	user, err := h.service.UpdateSettings(settings)
	if err != nil {
		if strings.Contains(err.Error(), "invalid settings") {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": err.Error(),
			})
		}
		log.Printf("Error updating settings: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not update settings",
			"error":   err.Error(),
		})
	}
	return c.JSON(user)
}

// HandleChangePassword verifies the current password and stores the
// new one.
func (h *ProfileHandler) HandleChangePassword(c *fiber.Ctx) error {
	var input struct {
		CurrentPassword string `json:"current_password"`
		NewPassword     string `json:"new_password"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.service.ChangePassword(input.CurrentPassword, input.NewPassword); err != nil {
		if errors.Is(err, services.ErrWrongPassword) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Current password is incorrect",
			})
		}
		if strings.Contains(err.Error(), "at least 6 characters") {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": err.Error(),
			})
		}
		log.Printf("Error changing password: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not change password",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{"message": "Password updated successfully"})
}
