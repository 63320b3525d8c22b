package main_test

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"

	mainapp "storefront"
	"storefront/internal/models"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	viper.Set("DB_DRIVER", "sqlite")
	viper.Set("DATABASE_DSN", fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.New().String()))
	viper.Set("CHECKOUT_DELAY_MS", 0)
	viper.Set("TAX_RATE", 0.1)
	viper.Set("SEED_PROFILE_PASSWORD", "password123")

	app, err := mainapp.NewApp(nil)
	assert.NoError(t, err)
	return app
}

func TestHealthCheck(t *testing.T) {
	app := newTestApp(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil), -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	assert.NoError(t, err)
	var payload map[string]string
	assert.NoError(t, json.Unmarshal(body, &payload))
	assert.Equal(t, "healthy", payload["status"])
}

func TestAppSeedsCatalogAndOrders(t *testing.T) {
	app := newTestApp(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/products", nil), -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	assert.NoError(t, err)
	var products []models.Product
	assert.NoError(t, json.Unmarshal(body, &products))
	assert.Len(t, products, 10)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/orders", nil), -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body, err = io.ReadAll(resp.Body)
	assert.NoError(t, err)
	var orders []models.Order
	assert.NoError(t, json.Unmarshal(body, &orders))
	assert.Len(t, orders, 3)
}

func TestAppRunsOnInMemoryRepositories(t *testing.T) {
	viper.Set("DB_DRIVER", "memory")
	viper.Set("CHECKOUT_DELAY_MS", 0)
	viper.Set("TAX_RATE", 0.1)
	viper.Set("SEED_PROFILE_PASSWORD", "password123")

	app, err := mainapp.NewApp(nil)
	assert.NoError(t, err)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/products", nil), -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	assert.NoError(t, err)
	var products []models.Product
	assert.NoError(t, json.Unmarshal(body, &products))
	assert.Len(t, products, 10)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/profile/", nil), -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body, err = io.ReadAll(resp.Body)
	assert.NoError(t, err)
	var profile models.User
	assert.NoError(t, json.Unmarshal(body, &profile))
	assert.Equal(t, "eg.doe@example.com", profile.Email)
}

func TestAppServesAnalyticsReport(t *testing.T) {
	app := newTestApp(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/analytics/report", nil), -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	assert.NoError(t, err)
	var report models.SalesReport
	assert.NoError(t, json.Unmarshal(body, &report))
	assert.Equal(t, 368000.0, report.TotalSales)
	assert.InDelta(t, 100.0, report.AverageOrderValue, 0.001)
}
