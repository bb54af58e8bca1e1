package repository

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ShaminAkarsha/Swiftlogistics-CMS1/internal/model"
)

var ErrNotFound = errors.New("order not found")

// ListFilter narrows List results. Status "all" or empty means no status
// filtering; Search matches case-insensitively against tracking number,
// contacts, addresses and package description.
type ListFilter struct {
	Status string
	Search string
}

type Page struct {
	Limit  int
	Offset int
}

type ListResult struct {
	Items   []model.Order
	Total   int
	HasMore bool
}

// InMemoryOrderRepository owns the canonical order collection, newest
// first. All access goes through the mutex; callers get copies.
type InMemoryOrderRepository struct {
	mu     sync.RWMutex
	orders []model.Order
}

func NewInMemoryOrderRepository() *InMemoryOrderRepository {
	return &InMemoryOrderRepository{}
}

// Insert assigns the surrogate id and timestamps, then prepends so the
// newest order is always first. The whole step is one critical section.
func (r *InMemoryOrderRepository) Insert(ctx context.Context, o model.Order) (model.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	o.ID = uuid.NewString()
	o.CreatedAt = now
	o.UpdatedAt = now

	r.orders = append([]model.Order{o}, r.orders...)
	return o, nil
}

func (r *InMemoryOrderRepository) FindByTrackingNumber(ctx context.Context, trackingNumber string) (model.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, o := range r.orders {
		if o.TrackingNumber == trackingNumber {
			return o, nil
		}
	}
	return model.Order{}, ErrNotFound
}

func (r *InMemoryOrderRepository) List(ctx context.Context, filter ListFilter, page Page) (ListResult, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []model.Order
	for _, o := range r.orders {
		if filter.Status != "" && filter.Status != "all" && o.Status != filter.Status {
			continue
		}
		if filter.Search != "" && !matchesSearch(o, filter.Search) {
			continue
		}
		matched = append(matched, o)
	}

	total := len(matched)

	limit := page.Limit
	if limit <= 0 {
		limit = 50
	}
	offset := page.Offset
	if offset < 0 {
		offset = 0
	}

	start := offset
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}

	return ListResult{
		Items:   matched[start:end],
		Total:   total,
		HasMore: offset+limit < total,
	}, nil
}

func matchesSearch(o model.Order, term string) bool {
	term = strings.ToLower(term)
	for _, field := range []string{
		o.TrackingNumber,
		o.Pickup.Contact,
		o.Delivery.Contact,
		o.Pickup.Address,
		o.Delivery.Address,
		o.Package.Description,
	} {
		if strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}
	return false
}

// UpdateStatus mutates status, notes, currentLocation and updatedAt in
// place. The status value is not validated; any string is accepted.
func (r *InMemoryOrderRepository) UpdateStatus(ctx context.Context, trackingNumber, status, notes, location string) (model.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.orders {
		if r.orders[i].TrackingNumber == trackingNumber {
			r.orders[i].Status = status
			r.orders[i].Notes = notes
			r.orders[i].CurrentLocation = location
			r.orders[i].UpdatedAt = time.Now()
			return r.orders[i], nil
		}
	}
	return model.Order{}, ErrNotFound
}

func (r *InMemoryOrderRepository) Count(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.orders), nil
}

// CountByStatus feeds the dashboard summary. Unknown statuses only count
// towards "all".
func (r *InMemoryOrderRepository) CountByStatus(ctx context.Context) (map[string]int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	counts := map[string]int{
		"all":                  len(r.orders),
		model.StatusSubmitted:  0,
		model.StatusProcessing: 0,
		model.StatusInTransit:  0,
		model.StatusDelivered:  0,
	}
	for _, o := range r.orders {
		if _, ok := counts[o.Status]; ok {
			counts[o.Status]++
		}
	}
	return counts, nil
}

// Clear empties the store. Test/reset use only.
func (r *InMemoryOrderRepository) Clear(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orders = nil
	return nil
}

// Close releases the store. There is nothing to release for the
// slice-backed implementation; it exists so callers can treat the store
// and the producer with the same open/close lifecycle.
func (r *InMemoryOrderRepository) Close() error {
	return nil
}
