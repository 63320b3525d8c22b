package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"storefront/internal/handlers"
	"storefront/internal/models"
	"storefront/internal/repositories"
	"storefront/internal/seed"
	"storefront/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// testEnv bundles the app with the stores the tests poke at directly.
type testEnv struct {
	app  *fiber.App
	cart *services.CartService
}

// setupApp sets up a Fiber app for testing with in-memory SQLite and
// all handlers/services wired the way main does it.
func setupApp() (*testEnv, error) {
	// A unique shared-cache name keeps each test's database isolated
	// while surviving GORM's connection pooling.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.New().String())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to in-memory database: %w", err)
	}

	if err := db.AutoMigrate(&models.Product{}, &models.User{}); err != nil {
		return nil, fmt.Errorf("failed to auto-migrate database: %w", err)
	}

	// Initialize Repositories
	productRepo := repositories.NewGORMProductRepository(db)
	userRepo := repositories.NewGORMUserRepository(db)
	orderRepo := repositories.NewMockOrderRepository()

	for _, product := range seed.Products() {
		p := product
		if err := productRepo.Create(&p); err != nil {
			return nil, fmt.Errorf("failed to seed product %s: %w", p.Name, err)
		}
	}
	for _, order := range seed.Orders() {
		o := order
		if err := orderRepo.Create(&o); err != nil {
			return nil, fmt.Errorf("failed to seed order %s: %w", o.ID, err)
		}
	}
	profile, err := seed.Profile("password123")
	if err != nil {
		return nil, err
	}
	if err := userRepo.Create(profile); err != nil {
		return nil, fmt.Errorf("failed to seed profile: %w", err)
	}

	// Initialize Services (nil publisher, zero payment delay)
	cartService := services.NewCartService()
	catalogService := services.NewCatalogService(productRepo)
	orderService := services.NewOrderService(orderRepo, nil)
	checkoutService := services.NewCheckoutService(cartService, orderRepo, nil, services.SimulatedPaymentProcessor{Delay: 0}, 0.1)
	analyticsService := services.NewAnalyticsService(seed.MonthlySales(), seed.CategorySales(), seed.TopProducts())
	profileService := services.NewProfileService(userRepo, "user-1")

	// Initialize Handlers
	app := fiber.New()
	apiV1 := app.Group("/api/v1")
	handlers.NewCatalogHandler(catalogService).RegisterRoutes(apiV1)
	handlers.NewCartHandler(cartService, catalogService).RegisterRoutes(apiV1)
	handlers.NewCheckoutHandler(checkoutService).RegisterRoutes(apiV1)
	handlers.NewOrderHandler(orderService).RegisterRoutes(apiV1)
	handlers.NewAnalyticsHandler(analyticsService).RegisterRoutes(apiV1)
	handlers.NewProfileHandler(profileService).RegisterRoutes(apiV1)

	return &testEnv{app: app, cart: cartService}, nil
}

// TestMain runs setup and teardown for all tests
func TestMain(m *testing.M) {
	// Suppress logging during tests for cleaner output
	log.SetOutput(io.Discard)
	code := m.Run()
	os.Exit(code)
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body interface{}) (*http.Response, []byte) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		assert.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	assert.NoError(t, err)
	return resp, raw
}

func TestListProductsAndCategories(t *testing.T) {
	env, err := setupApp()
	assert.NoError(t, err)

	resp, body := doJSON(t, env.app, http.MethodGet, "/api/v1/products", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var products []models.Product
	assert.NoError(t, json.Unmarshal(body, &products))
	assert.Len(t, products, 10)

	resp, body = doJSON(t, env.app, http.MethodGet, "/api/v1/products?category=Kitchen&sort=price-low", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NoError(t, json.Unmarshal(body, &products))
	assert.Len(t, products, 2)
	assert.Equal(t, "Stainless Steel Cookware Set", products[0].Name)

	resp, body = doJSON(t, env.app, http.MethodGet, "/api/v1/categories", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var payload struct {
		Categories []string `json:"categories"`
	}
	assert.NoError(t, json.Unmarshal(body, &payload))
	assert.Equal(t, []string{"Appliances", "Electronics", "Furniture", "Gaming", "Kitchen", "Wearables"}, payload.Categories)

	resp, _ = doJSON(t, env.app, http.MethodGet, "/api/v1/products/prod-99", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCartEndpoints(t *testing.T) {
	env, err := setupApp()
	assert.NoError(t, err)

	resp, _ := doJSON(t, env.app, http.MethodPost, "/api/v1/cart/items", fiber.Map{"product_id": "prod-1", "quantity": 2})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	// Adding the same product merges quantities.
	resp, body := doJSON(t, env.app, http.MethodPost, "/api/v1/cart/items", fiber.Map{"product_id": "prod-1", "quantity": 1})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var summary models.CartSummary
	assert.NoError(t, json.Unmarshal(body, &summary))
	assert.Equal(t, 1, summary.ItemCount)
	assert.Equal(t, 3, summary.TotalItems)
	assert.InDelta(t, 3*199.99, summary.Subtotal, 0.001)

	// Unknown product.
	resp, _ = doJSON(t, env.app, http.MethodPost, "/api/v1/cart/items", fiber.Map{"product_id": "prod-99", "quantity": 1})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// Quantities below 1 are rejected, the line is untouched.
	resp, _ = doJSON(t, env.app, http.MethodPatch, "/api/v1/cart/items/prod-1", fiber.Map{"quantity": 0})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, 3, env.cart.Items()[0].Quantity)

	resp, body = doJSON(t, env.app, http.MethodPatch, "/api/v1/cart/items/prod-1", fiber.Map{"quantity": 5})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NoError(t, json.Unmarshal(body, &summary))
	assert.Equal(t, 5, summary.TotalItems)

	// Removal is idempotent.
	resp, _ = doJSON(t, env.app, http.MethodDelete, "/api/v1/cart/items/prod-1", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp, body = doJSON(t, env.app, http.MethodDelete, "/api/v1/cart/items/prod-1", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NoError(t, json.Unmarshal(body, &summary))
	assert.Empty(t, summary.Items)
	assert.Equal(t, 0.0, summary.Subtotal)
}

func TestCheckoutValidation(t *testing.T) {
	env, err := setupApp()
	assert.NoError(t, err)

	resp, body := doJSON(t, env.app, http.MethodPost, "/api/v1/checkout", fiber.Map{})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	var payload struct {
		Errors map[string]string `json:"errors"`
	}
	assert.NoError(t, json.Unmarshal(body, &payload))
	assert.Len(t, payload.Errors, 9)
	assert.Equal(t, "Card number must be 16 digits", payload.Errors["card_number"])
}

func TestCheckoutPlacesOrderAndClearsCart(t *testing.T) {
	env, err := setupApp()
	assert.NoError(t, err)

	// Checkout on an empty cart is rejected.
	form := fiber.Map{
		"full_name":   "Jane Smith",
		"email":       "jane@example.com",
		"address":     "450 Park Avenue",
		"city":        "New York",
		"postal_code": "10022",
		"country":     "USA",
		"card_number": "1234 5678 9012 3456",
		"card_expiry": "12/25",
		"card_cvc":    "123",
	}
	resp, _ := doJSON(t, env.app, http.MethodPost, "/api/v1/checkout", form)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = doJSON(t, env.app, http.MethodPost, "/api/v1/cart/items", fiber.Map{"product_id": "prod-7", "quantity": 2})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, body := doJSON(t, env.app, http.MethodPost, "/api/v1/checkout", form)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var order models.Order
	assert.NoError(t, json.Unmarshal(body, &order))
	assert.Equal(t, models.StatusPending, order.Status)
	assert.InDelta(t, 259.98, order.Subtotal, 0.001)
	assert.InDelta(t, order.Subtotal*1.1, order.TotalAmount, 0.001)
	assert.Equal(t, "ending in 3456", order.PaymentMethod.Details)

	// The cart is cleared and the order shows up in the history.
	assert.Empty(t, env.cart.Items())

	resp, body = doJSON(t, env.app, http.MethodGet, "/api/v1/orders/"+order.ID, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var detail struct {
		Order         models.Order `json:"order"`
		ProgressStage int          `json:"progress_stage"`
	}
	assert.NoError(t, json.Unmarshal(body, &detail))
	assert.Equal(t, order.ID, detail.Order.ID)
	assert.Equal(t, services.StageOrdered, detail.ProgressStage)
}

func TestOrderEndpoints(t *testing.T) {
	env, err := setupApp()
	assert.NoError(t, err)

	resp, body := doJSON(t, env.app, http.MethodGet, "/api/v1/orders/", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var orders []models.Order
	assert.NoError(t, json.Unmarshal(body, &orders))
	assert.Len(t, orders, 3)
	assert.Equal(t, "ORD-1001", orders[0].ID)

	resp, body = doJSON(t, env.app, http.MethodGet, "/api/v1/orders/?status=shipped", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NoError(t, json.Unmarshal(body, &orders))
	assert.Len(t, orders, 1)
	assert.Equal(t, "ORD-1002", orders[0].ID)

	resp, _ = doJSON(t, env.app, http.MethodGet, "/api/v1/orders/ORD-9999", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// Ship the processing order with a tracking number.
	resp, body = doJSON(t, env.app, http.MethodPost, "/api/v1/orders/ORD-1001/ship", fiber.Map{"tracking_number": "TRK-NEW-1"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var shipped models.Order
	assert.NoError(t, json.Unmarshal(body, &shipped))
	assert.Equal(t, models.StatusShipped, shipped.Status)
	assert.Equal(t, "TRK-NEW-1", shipped.TrackingNumber)
	assert.NotNil(t, shipped.ShippedDate)

	resp, _ = doJSON(t, env.app, http.MethodPost, "/api/v1/orders/ORD-1001/deliver", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// A delivered order cannot be cancelled.
	resp, _ = doJSON(t, env.app, http.MethodPost, "/api/v1/orders/ORD-1001/cancel", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Backward transition is rejected.
	resp, _ = doJSON(t, env.app, http.MethodPatch, "/api/v1/orders/ORD-1002/status", fiber.Map{"status": "pending"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAnalyticsEndpoints(t *testing.T) {
	env, err := setupApp()
	assert.NoError(t, err)

	resp, body := doJSON(t, env.app, http.MethodGet, "/api/v1/analytics/report", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var report models.SalesReport
	assert.NoError(t, json.Unmarshal(body, &report))
	assert.Equal(t, 368000.0, report.TotalSales)
	assert.Equal(t, 3680, report.TotalOrders)
	assert.InDelta(t, 100.0, report.AverageOrderValue, 0.001)

	resp, body = doJSON(t, env.app, http.MethodGet, "/api/v1/analytics/categories", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var categories []models.CategorySales
	assert.NoError(t, json.Unmarshal(body, &categories))
	assert.Len(t, categories, 6)

	resp, body = doJSON(t, env.app, http.MethodGet, "/api/v1/analytics/top-products", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var top []models.ProductPerformance
	assert.NoError(t, json.Unmarshal(body, &top))
	assert.Len(t, top, 5)
}

func TestProfileEndpoints(t *testing.T) {
	env, err := setupApp()
	assert.NoError(t, err)

	resp, body := doJSON(t, env.app, http.MethodGet, "/api/v1/profile/", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var user models.User
	assert.NoError(t, json.Unmarshal(body, &user))
	assert.Equal(t, "eg.doe@example.com", user.Email)
	assert.True(t, user.Notifications)

	resp, body = doJSON(t, env.app, http.MethodPut, "/api/v1/profile/", fiber.Map{
		"name":     "Eg Doe",
		"email":    "eg.doe@example.com",
		"bio":      "Updated bio",
		"location": "Boston, USA",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NoError(t, json.Unmarshal(body, &user))
	assert.Equal(t, "Boston, USA", user.Location)

	resp, body = doJSON(t, env.app, http.MethodPut, "/api/v1/profile/settings", fiber.Map{
		"notifications":   false,
		"dark_mode":       true,
		"email_frequency": "weekly",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NoError(t, json.Unmarshal(body, &user))
	assert.True(t, user.DarkMode)
	assert.Equal(t, "weekly", user.EmailFrequency)

	resp, _ = doJSON(t, env.app, http.MethodPost, "/api/v1/profile/password", fiber.Map{
		"current_password": "wrong",
		"new_password":     "next-password",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = doJSON(t, env.app, http.MethodPost, "/api/v1/profile/password", fiber.Map{
		"current_password": "password123",
		"new_password":     "next-password",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
