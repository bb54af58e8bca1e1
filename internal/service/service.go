package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/ShaminAkarsha/Swiftlogistics-CMS1/internal/dto"
	"github.com/ShaminAkarsha/Swiftlogistics-CMS1/internal/metrics"
	"github.com/ShaminAkarsha/Swiftlogistics-CMS1/internal/model"
	"github.com/ShaminAkarsha/Swiftlogistics-CMS1/internal/repository"
)

// OrderRepository is the contract the store must implement.
type OrderRepository interface {
	Insert(ctx context.Context, o model.Order) (model.Order, error)
	FindByTrackingNumber(ctx context.Context, trackingNumber string) (model.Order, error)
	List(ctx context.Context, filter repository.ListFilter, page repository.Page) (repository.ListResult, error)
	UpdateStatus(ctx context.Context, trackingNumber, status, notes, location string) (model.Order, error)
	CountByStatus(ctx context.Context) (map[string]int, error)
}

// Notifier publishes events to the message broker. Publishing is
// best-effort: the service logs failures and moves on.
type Notifier interface {
	Publish(queue string, payload any) error
}

// ValidationError reports every missing required field at once.
type ValidationError struct {
	MissingFields []string
}

func (e *ValidationError) Error() string {
	return "missing required fields: " + strings.Join(e.MissingFields, ", ")
}

// Notification is the event shape consumed by the downstream worker.
type Notification struct {
	Type           string `json:"type"`
	TrackingNumber string `json:"trackingNumber"`
	Message        string `json:"message"`
	Timestamp      string `json:"timestamp"`
	Priority       string `json:"priority"`
}

type OrderService struct {
	repo     OrderRepository
	notifier Notifier
	pricing  *PricingEngine
	tracking *TrackingNumberGenerator
	log      *zap.Logger

	ordersQueue        string
	notificationsQueue string
}

func NewOrderService(repo OrderRepository, notifier Notifier, pricing *PricingEngine, tracking *TrackingNumberGenerator, log *zap.Logger, ordersQueue, notificationsQueue string) *OrderService {
	return &OrderService{
		repo:               repo,
		notifier:           notifier,
		pricing:            pricing,
		tracking:           tracking,
		log:                log,
		ordersQueue:        ordersQueue,
		notificationsQueue: notificationsQueue,
	}
}

// CreateOrder validates the request, derives cost, ETA, tracking number
// and priority, stores the order, then publishes the order and a
// notification. Dispatch failures never roll back the insert.
func (s *OrderService) CreateOrder(ctx context.Context, req dto.CreateOrderRequest) (model.Order, error) {
	if missing := missingFields(req); len(missing) > 0 {
		return model.Order{}, &ValidationError{MissingFields: missing}
	}

	serviceType := req.ServiceType
	if serviceType == "" {
		serviceType = model.ServiceStandard
	}
	urgency := req.Urgency
	if urgency == "" {
		urgency = model.UrgencyNormal
	}

	order := model.Order{
		TrackingNumber: s.tracking.Generate(),
		Pickup: model.Endpoint{
			Address: req.PickupAddress,
			Contact: req.PickupContact,
			Phone:   req.PickupPhone,
		},
		Delivery: model.Endpoint{
			Address:      req.DeliveryAddress,
			Contact:      req.DeliveryContact,
			Phone:        req.DeliveryPhone,
			Instructions: req.DeliveryInstructions,
		},
		Package: model.Package{
			Description:   req.PackageDescription,
			WeightKg:      req.PackageWeight,
			DeclaredValue: req.PackageValue,
		},
		Service: model.Service{
			Type:              serviceType,
			Urgency:           urgency,
			ShippingCost:      s.pricing.Cost(req.PackageWeight, serviceType, urgency),
			EstimatedDelivery: s.pricing.EstimatedDelivery(serviceType, time.Now()),
		},
		Status:   model.StatusSubmitted,
		Priority: derivePriority(urgency),
	}

	stored, err := s.repo.Insert(ctx, order)
	if err != nil {
		return model.Order{}, err
	}
	metrics.OrdersCreatedTotal.Inc()

	s.dispatch(s.ordersQueue, stored)
	s.dispatch(s.notificationsQueue, Notification{
		Type:           "order_created",
		TrackingNumber: stored.TrackingNumber,
		Message:        fmt.Sprintf("New order %s created successfully", stored.TrackingNumber),
		Timestamp:      time.Now().Format(time.RFC3339),
		Priority:       stored.Priority,
	})

	return stored, nil
}

func (s *OrderService) GetOrder(ctx context.Context, trackingNumber string) (model.Order, error) {
	return s.repo.FindByTrackingNumber(ctx, trackingNumber)
}

func (s *OrderService) ListOrders(ctx context.Context, q dto.ListOrdersQuery) (repository.ListResult, error) {
	return s.repo.List(ctx,
		repository.ListFilter{Status: q.Status, Search: q.Search},
		repository.Page{Limit: q.Limit, Offset: q.Offset},
	)
}

func (s *OrderService) StatusCounts(ctx context.Context) (map[string]int, error) {
	return s.repo.CountByStatus(ctx)
}

// UpdateStatus applies the update to the store and publishes a
// status_update notification. Status transitions are not validated.
func (s *OrderService) UpdateStatus(ctx context.Context, trackingNumber string, req dto.UpdateStatusRequest) (model.Order, error) {
	updated, err := s.repo.UpdateStatus(ctx, trackingNumber, req.Status, req.Notes, req.Location)
	if err != nil {
		return model.Order{}, err
	}
	metrics.StatusUpdatesTotal.Inc()

	s.dispatch(s.notificationsQueue, Notification{
		Type:           "status_update",
		TrackingNumber: trackingNumber,
		Message:        fmt.Sprintf("Order %s status updated to %s", trackingNumber, req.Status),
		Timestamp:      time.Now().Format(time.RFC3339),
		Priority:       model.PriorityNormal,
	})

	return updated, nil
}

func (s *OrderService) dispatch(queue string, payload any) {
	if err := s.notifier.Publish(queue, payload); err != nil {
		metrics.DispatchFailuresTotal.WithLabelValues(queue).Inc()
		s.log.Warn("dispatch failed",
			zap.String("queue", queue),
			zap.Error(err),
		)
	}
}

func derivePriority(urgency string) string {
	switch urgency {
	case model.UrgencyUrgent:
		return model.PriorityHigh
	case model.UrgencyHigh:
		return model.PriorityMedium
	default:
		return model.PriorityNormal
	}
}

// missingFields mirrors the order form contract: zero values count as
// missing, so weight 0 and declared value 0 are reported too.
func missingFields(req dto.CreateOrderRequest) []string {
	var missing []string
	checks := []struct {
		name  string
		empty bool
	}{
		{"pickupAddress", req.PickupAddress == ""},
		{"pickupContact", req.PickupContact == ""},
		{"pickupPhone", req.PickupPhone == ""},
		{"deliveryAddress", req.DeliveryAddress == ""},
		{"deliveryContact", req.DeliveryContact == ""},
		{"deliveryPhone", req.DeliveryPhone == ""},
		{"packageDescription", req.PackageDescription == ""},
		{"packageWeight", req.PackageWeight == 0},
		{"packageValue", req.PackageValue == 0},
	}
	for _, c := range checks {
		if c.empty {
			missing = append(missing, c.name)
		}
	}
	return missing
}
