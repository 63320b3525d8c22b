package services

import (
	"sync"

	"storefront/internal/models"
)

// CartService holds the shopping cart state. It is created once and
// injected into every consumer; all mutation goes through its methods
// under a single lock, so there is no ambient global cart.
//
// Line items keep insertion order and there is never more than one line
// per product ID: adding an existing product merges quantities. The
// total is recomputed from the current lines on every read and is never
// cached.
type CartService struct {
	mu          sync.Mutex
	items       []models.CartItem
	subscribers []func(models.CartSummary)
}

// NewCartService creates an empty cart.
func NewCartService() *CartService {
	return &CartService{}
}

// Subscribe registers a listener that receives a fresh summary after
// every mutation that changed the cart.
func (s *CartService) Subscribe(fn func(models.CartSummary)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribers = append(s.subscribers, fn)
}

// AddItem puts quantity units of product into the cart, merging with an
// existing line for the same product. Non-positive quantities are a
// no-op.
func (s *CartService) AddItem(product models.Product, quantity int) {
	if quantity <= 0 {
		return
	}

	s.mu.Lock()
	merged := false
	for i := range s.items {
		if s.items[i].Product.ID == product.ID {
			s.items[i].Quantity += quantity
			merged = true
			break
		}
	}
	if !merged {
		s.items = append(s.items, models.CartItem{Product: product, Quantity: quantity})
	}
	summary, listeners := s.snapshotLocked()
	s.mu.Unlock()

	notify(listeners, summary)
}

// UpdateQuantity sets the quantity on an existing line. Values below 1
// are rejected as a no-op; callers remove the line instead of zeroing
// it. Unknown product IDs are also a no-op.
func (s *CartService) UpdateQuantity(productID string, quantity int) {
	if quantity < 1 {
		return
	}

	s.mu.Lock()
	changed := false
	for i := range s.items {
		if s.items[i].Product.ID == productID {
			changed = s.items[i].Quantity != quantity
			s.items[i].Quantity = quantity
			break
		}
	}
	summary, listeners := s.snapshotLocked()
	s.mu.Unlock()

	if changed {
		notify(listeners, summary)
	}
}

// RemoveItem deletes the line for productID. Removing an absent product
// is a no-op, so the operation is idempotent.
func (s *CartService) RemoveItem(productID string) {
	s.mu.Lock()
	removed := false
	for i := range s.items {
		if s.items[i].Product.ID == productID {
			s.items = append(s.items[:i], s.items[i+1:]...)
			removed = true
			break
		}
	}
	summary, listeners := s.snapshotLocked()
	s.mu.Unlock()

	if removed {
		notify(listeners, summary)
	}
}

// Clear empties the cart. Clearing an already-empty cart is a no-op.
func (s *CartService) Clear() {
	s.mu.Lock()
	cleared := len(s.items) > 0
	s.items = nil
	summary, listeners := s.snapshotLocked()
	s.mu.Unlock()

	if cleared {
		notify(listeners, summary)
	}
}

// Items returns a copy of the cart lines in insertion order.
func (s *CartService) Items() []models.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyItems(s.items)
}

// Total recomputes the cart subtotal from the current lines.
func (s *CartService) Total() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return itemsTotal(s.items)
}

// Summary returns the cart lines plus derived counts and subtotal.
func (s *CartService) Summary() models.CartSummary {
	s.mu.Lock()
	defer s.mu.Unlock()
	summary, _ := s.snapshotLocked()
	return summary
}

// snapshotLocked builds a summary and copies the subscriber list. The
// caller must hold s.mu; listeners are invoked after it is released so
// a subscriber may call back into the cart.
func (s *CartService) snapshotLocked() (models.CartSummary, []func(models.CartSummary)) {
	totalItems := 0
	for _, item := range s.items {
		totalItems += item.Quantity
	}
	summary := models.CartSummary{
		Items:      copyItems(s.items),
		ItemCount:  len(s.items),
		TotalItems: totalItems,
		Subtotal:   itemsTotal(s.items),
	}
	listeners := make([]func(models.CartSummary), len(s.subscribers))
	copy(listeners, s.subscribers)
	return summary, listeners
}

func notify(listeners []func(models.CartSummary), summary models.CartSummary) {
	for _, fn := range listeners {
		fn(summary)
	}
}

func copyItems(items []models.CartItem) []models.CartItem {
	out := make([]models.CartItem, len(items))
	copy(out, items)
	return out
}

func itemsTotal(items []models.CartItem) float64 {
	var total float64
	for _, item := range items {
		total += item.LineTotal()
	}
	return total
}
