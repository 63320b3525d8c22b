package models

// SalesData is one month of revenue and order counts.
type SalesData struct {
	Date    string  `json:"date"` // YYYY-MM
	Revenue float64 `json:"revenue"`
	Orders  int     `json:"orders"`
}

// CategorySales is total sales attributed to one product category.
// Category figures are sourced independently of the monthly series, so
// their sum is not required to match TotalSales.
type CategorySales struct {
	Category string  `json:"category"`
	Sales    float64 `json:"sales"`
}

// ProductPerformance is a per-product sales summary row.
type ProductPerformance struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Sales     int     `json:"sales"`
	Revenue   float64 `json:"revenue"`
	Views     int     `json:"views"`
}

// SalesReport is the set of scalars derived from a monthly series.
type SalesReport struct {
	TotalSales        float64 `json:"total_sales"`
	TotalOrders       int     `json:"total_orders"`
	AverageOrderValue float64 `json:"average_order_value"`
}
