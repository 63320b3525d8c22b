package services

import (
	"storefront/internal/models"
)

// AnalyticsService computes dashboard aggregates over static sales
// datasets. All computations are pure; the datasets are fixed at
// construction.
type AnalyticsService struct {
	monthlySales  []models.SalesData
	categorySales []models.CategorySales
	topProducts   []models.ProductPerformance
}

// NewAnalyticsService creates an AnalyticsService over the given
// datasets. The category and product tables are independently sourced;
// their sums are not reconciled against the monthly series.
func NewAnalyticsService(monthlySales []models.SalesData, categorySales []models.CategorySales, topProducts []models.ProductPerformance) *AnalyticsService {
	return &AnalyticsService{
		monthlySales:  monthlySales,
		categorySales: categorySales,
		topProducts:   topProducts,
	}
}

// Report derives the headline scalars from the monthly series. The
// average order value is zero for an empty series, never a division by
// zero.
func (s *AnalyticsService) Report() models.SalesReport {
	var totalSales float64
	var totalOrders int
	for _, month := range s.monthlySales {
		totalSales += month.Revenue
		totalOrders += month.Orders
	}

	averageOrderValue := 0.0
	if totalOrders > 0 {
		averageOrderValue = totalSales / float64(totalOrders)
	}

	return models.SalesReport{
		TotalSales:        totalSales,
		TotalOrders:       totalOrders,
		AverageOrderValue: averageOrderValue,
	}
}

// MonthlySales returns a copy of the monthly revenue series.
func (s *AnalyticsService) MonthlySales() []models.SalesData {
	out := make([]models.SalesData, len(s.monthlySales))
	copy(out, s.monthlySales)
	return out
}

// CategoryBreakdown returns a copy of the per-category sales table.
func (s *AnalyticsService) CategoryBreakdown() []models.CategorySales {
	out := make([]models.CategorySales, len(s.categorySales))
	copy(out, s.categorySales)
	return out
}

// TopProducts returns a copy of the product performance table.
func (s *AnalyticsService) TopProducts() []models.ProductPerformance {
	out := make([]models.ProductPerformance, len(s.topProducts))
	copy(out, s.topProducts)
	return out
}
