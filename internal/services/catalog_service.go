package services

import (
	"sort"
	"strings"

	"storefront/internal/models"
	"storefront/internal/repositories"
)

// Product listing sort keys.
const (
	SortByName      = "name"
	SortByPriceLow  = "price-low"
	SortByPriceHigh = "price-high"
	SortByRating    = "rating"
)

// CatalogService handles product browsing: listing, search, category
// filtering and sorting. The catalog itself is immutable reference
// data.
type CatalogService struct {
	repo repositories.ProductRepository
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(repo repositories.ProductRepository) *CatalogService {
	return &CatalogService{
		repo: repo,
	}
}

// ListProducts returns products matching the free-text query and
// category filter, sorted by sortBy. An empty query matches everything;
// category "" or "All" disables the category filter; unknown sort keys
// fall back to name order.
func (s *CatalogService) ListProducts(query, category, sortBy string) ([]models.Product, error) {
	products, err := s.repo.GetAll()
	if err != nil {
		return nil, err
	}

	query = strings.ToLower(strings.TrimSpace(query))
	result := make([]models.Product, 0, len(products))
	for _, p := range products {
		if category != "" && category != "All" && p.Category != category {
			continue
		}
		if query != "" && !matchesQuery(p, query) {
			continue
		}
		result = append(result, p)
	}

	switch sortBy {
	case SortByPriceLow:
		sort.SliceStable(result, func(i, j int) bool { return result[i].Price < result[j].Price })
	case SortByPriceHigh:
		sort.SliceStable(result, func(i, j int) bool { return result[i].Price > result[j].Price })
	case SortByRating:
		sort.SliceStable(result, func(i, j int) bool { return result[i].Rating > result[j].Rating })
	default:
		sort.SliceStable(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	}

	return result, nil
}

// matchesQuery reports whether the lowercase query appears in the
// product's name, description, category or any tag.
func matchesQuery(p models.Product, query string) bool {
	if strings.Contains(strings.ToLower(p.Name), query) ||
		strings.Contains(strings.ToLower(p.Description), query) ||
		strings.Contains(strings.ToLower(p.Category), query) {
		return true
	}
	for _, tag := range p.Tags {
		if strings.Contains(strings.ToLower(tag), query) {
			return true
		}
	}
	return false
}

// GetProductByID retrieves a single product by its ID.
func (s *CatalogService) GetProductByID(id string) (*models.Product, error) {
	return s.repo.GetByID(id)
}

// Categories returns the distinct category labels present in the
// catalog, sorted alphabetically.
func (s *CatalogService) Categories() ([]string, error) {
	products, err := s.repo.GetAll()
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var categories []string
	for _, p := range products {
		if p.Category != "" && !seen[p.Category] {
			seen[p.Category] = true
			categories = append(categories, p.Category)
		}
	}
	sort.Strings(categories)
	return categories, nil
}
