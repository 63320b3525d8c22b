// Package seed holds the storefront's static demo data: the product
// catalog, a handful of historical orders, the analytics datasets and
// the admin profile.
package seed

import (
	"fmt"
	"time"

	"storefront/internal/models"

	"golang.org/x/crypto/bcrypt"
)

// Products returns the demo catalog.
func Products() []models.Product {
	return []models.Product{
		{
			ID:          "prod-1",
			Name:        "Wireless Bluetooth Headphones",
			Description: "Over-ear headphones with active noise cancellation and 30-hour battery life",
			Price:       199.99,
			Category:    "Electronics",
			Stock:       45,
			Rating:      4.6,
			Tags:        []string{"audio", "wireless", "bluetooth"},
		},
		{
			ID:          "prod-2",
			Name:        "Smartphone Pro Max",
			Description: "6.7-inch flagship smartphone with triple camera system",
			Price:       999.99,
			Category:    "Electronics",
			Stock:       30,
			Rating:      4.8,
			Tags:        []string{"mobile", "camera", "5g"},
		},
		{
			ID:          "prod-3",
			Name:        "Ergonomic Office Chair",
			Description: "Adjustable mesh-back chair with lumbar support",
			Price:       289.99,
			Category:    "Furniture",
			Stock:       18,
			Rating:      4.4,
			Tags:        []string{"office", "ergonomic"},
		},
		{
			ID:          "prod-4",
			Name:        "Ultra HD Smart TV",
			Description: "55-inch 4K smart TV with HDR and built-in streaming apps",
			Price:       799.99,
			Category:    "Electronics",
			Stock:       12,
			Rating:      4.7,
			Tags:        []string{"tv", "4k", "smart-home"},
		},
		{
			ID:          "prod-5",
			Name:        "Stainless Steel Cookware Set",
			Description: "10-piece induction-compatible cookware set",
			Price:       249.99,
			Category:    "Kitchen",
			Stock:       25,
			Rating:      4.3,
			Tags:        []string{"cooking", "induction"},
		},
		{
			ID:          "prod-6",
			Name:        "Fitness Smartwatch",
			Description: "Water-resistant smartwatch with heart-rate and sleep tracking",
			Price:       179.99,
			Category:    "Wearables",
			Stock:       60,
			Rating:      4.5,
			Tags:        []string{"fitness", "wearable", "health"},
		},
		{
			ID:          "prod-7",
			Name:        "Mechanical Gaming Keyboard",
			Description: "RGB mechanical keyboard with hot-swappable switches",
			Price:       129.99,
			Category:    "Gaming",
			Stock:       40,
			Rating:      4.6,
			Tags:        []string{"gaming", "keyboard", "rgb"},
		},
		{
			ID:          "prod-8",
			Name:        "Robot Vacuum Cleaner",
			Description: "Self-charging robot vacuum with room mapping",
			Price:       399.99,
			Category:    "Appliances",
			Stock:       15,
			Rating:      4.2,
			Tags:        []string{"cleaning", "smart-home"},
		},
		{
			ID:          "prod-9",
			Name:        "Espresso Machine",
			Description: "15-bar pump espresso machine with milk frother",
			Price:       329.99,
			Category:    "Kitchen",
			Stock:       20,
			Rating:      4.4,
			Tags:        []string{"coffee", "espresso"},
		},
		{
			ID:          "prod-10",
			Name:        "Adjustable Standing Desk",
			Description: "Electric sit-stand desk with memory height presets",
			Price:       349.99,
			Category:    "Furniture",
			Stock:       10,
			Rating:      4.5,
			Tags:        []string{"office", "ergonomic", "desk"},
		},
	}
}

// Orders returns the demo order history: one order per lifecycle stage
// past pending.
func Orders() []models.Order {
	ordered := time.Date(2023, 11, 2, 10, 30, 0, 0, time.UTC)
	shipped := time.Date(2023, 11, 4, 9, 0, 0, 0, time.UTC)
	delivered := time.Date(2023, 11, 8, 16, 45, 0, 0, time.UTC)

	address := models.ShippingAddress{
		Name:       "Eg Doe",
		Street:     "450 Park Avenue",
		City:       "New York",
		PostalCode: "10022",
		Country:    "USA",
	}

	return []models.Order{
		{
			ID: "ORD-1001",
			Items: []models.OrderItem{
				{ProductID: "prod-1", Name: "Wireless Bluetooth Headphones", Category: "Electronics", Price: 199.99, Quantity: 1},
				{ProductID: "prod-6", Name: "Fitness Smartwatch", Category: "Wearables", Price: 179.99, Quantity: 1},
			},
			Subtotal:        379.98,
			Tax:             38.00,
			TotalAmount:     417.98,
			Status:          models.StatusProcessing,
			ShippingAddress: address,
			PaymentMethod:   models.PaymentMethod{Type: "credit_card", Details: "ending in 4242"},
			OrderDate:       ordered,
		},
		{
			ID: "ORD-1002",
			Items: []models.OrderItem{
				{ProductID: "prod-7", Name: "Mechanical Gaming Keyboard", Category: "Gaming", Price: 129.99, Quantity: 2},
			},
			Subtotal:        259.98,
			Tax:             26.00,
			TotalAmount:     285.98,
			Status:          models.StatusShipped,
			ShippingAddress: address,
			PaymentMethod:   models.PaymentMethod{Type: "credit_card", Details: "ending in 4242"},
			TrackingNumber:  "TRK-48291054",
			OrderDate:       ordered,
			ShippedDate:     &shipped,
		},
		{
			ID: "ORD-1003",
			Items: []models.OrderItem{
				{ProductID: "prod-4", Name: "Ultra HD Smart TV", Category: "Electronics", Price: 799.99, Quantity: 1},
			},
			Subtotal:        799.99,
			Tax:             80.00,
			TotalAmount:     879.99,
			Status:          models.StatusDelivered,
			ShippingAddress: address,
			PaymentMethod:   models.PaymentMethod{Type: "paypal", Details: "eg.doe@example.com"},
			TrackingNumber:  "TRK-77120349",
			OrderDate:       ordered,
			ShippedDate:     &shipped,
			DeliveredDate:   &delivered,
		},
	}
}

// MonthlySales returns the 2023 monthly revenue series.
func MonthlySales() []models.SalesData {
	return []models.SalesData{
		{Date: "2023-01", Revenue: 12500, Orders: 125},
		{Date: "2023-02", Revenue: 15000, Orders: 150},
		{Date: "2023-03", Revenue: 18500, Orders: 185},
		{Date: "2023-04", Revenue: 22000, Orders: 220},
		{Date: "2023-05", Revenue: 24500, Orders: 245},
		{Date: "2023-06", Revenue: 28000, Orders: 280},
		{Date: "2023-07", Revenue: 32500, Orders: 325},
		{Date: "2023-08", Revenue: 36000, Orders: 360},
		{Date: "2023-09", Revenue: 39500, Orders: 395},
		{Date: "2023-10", Revenue: 43000, Orders: 430},
		{Date: "2023-11", Revenue: 46500, Orders: 465},
		{Date: "2023-12", Revenue: 50000, Orders: 500},
	}
}

// CategorySales returns the per-category sales table. Sourced
// independently of the monthly series.
func CategorySales() []models.CategorySales {
	return []models.CategorySales{
		{Category: "Electronics", Sales: 45000},
		{Category: "Furniture", Sales: 25000},
		{Category: "Kitchen", Sales: 18000},
		{Category: "Wearables", Sales: 15000},
		{Category: "Gaming", Sales: 12000},
		{Category: "Appliances", Sales: 10000},
	}
}

// TopProducts returns the product performance table.
func TopProducts() []models.ProductPerformance {
	return []models.ProductPerformance{
		{ProductID: "prod-2", Name: "Smartphone Pro Max", Sales: 120, Revenue: 119998.80, Views: 5600},
		{ProductID: "prod-4", Name: "Ultra HD Smart TV", Sales: 85, Revenue: 67999.15, Views: 4200},
		{ProductID: "prod-1", Name: "Wireless Bluetooth Headphones", Sales: 150, Revenue: 29998.50, Views: 6800},
		{ProductID: "prod-10", Name: "Adjustable Standing Desk", Sales: 65, Revenue: 22749.35, Views: 3100},
		{ProductID: "prod-6", Name: "Fitness Smartwatch", Sales: 110, Revenue: 19798.90, Views: 5200},
	}
}

// Profile returns the admin profile with password hashed via bcrypt.
func Profile(password string) (*models.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash seed password: %w", err)
	}
	return &models.User{
		ID:           "user-1",
		Name:         "Eg Doe",
		Email:        "eg.doe@example.com",
		Role:         "Admin",
		AvatarURL:    "https://placehold.co/400x400",
		Bio:          "E-commerce specialist with 5+ years of experience in online retail management.",
		Location:     "New York, USA",
		JoinDate:     "January 2022",
		PasswordHash: string(hashed),
		Settings: models.Settings{
			Notifications:  true,
			DarkMode:       false,
			EmailFrequency: "daily",
		},
	}, nil
}
