// models.go
package model

import "time"

// Order statuses shown on the dashboard.
const (
	StatusSubmitted  = "submitted"
	StatusProcessing = "processing"
	StatusInTransit  = "in-transit"
	StatusDelivered  = "delivered"
)

// Service tiers and urgency levels.
const (
	ServiceStandard = "standard"
	ServiceExpress  = "express"
	ServiceSameDay  = "same-day"

	UrgencyNormal = "normal"
	UrgencyHigh   = "high"
	UrgencyUrgent = "urgent"

	PriorityNormal = "normal"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// Order is the canonical logistics order entity. TrackingNumber is the
// human-facing identifier; ID is the storage-assigned surrogate key.
type Order struct {
	ID              string    `json:"id"`
	TrackingNumber  string    `json:"trackingNumber"`
	Pickup          Endpoint  `json:"pickup"`
	Delivery        Endpoint  `json:"delivery"`
	Package         Package   `json:"package"`
	Service         Service   `json:"service"`
	Status          string    `json:"status"`
	Priority        string    `json:"priority"`
	CurrentLocation string    `json:"currentLocation,omitempty"`
	Notes           string    `json:"notes,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

type Endpoint struct {
	Address      string `json:"address"`
	Contact      string `json:"contact"`
	Phone        string `json:"phone"`
	Instructions string `json:"instructions,omitempty"`
}

type Package struct {
	Description   string  `json:"description"`
	WeightKg      float64 `json:"weightKg"`
	DeclaredValue float64 `json:"declaredValue"`
}

// Service carries the tier the customer picked plus the values derived at
// creation time. ShippingCost and EstimatedDelivery are never recomputed.
type Service struct {
	Type              string    `json:"type"`
	Urgency           string    `json:"urgency"`
	ShippingCost      float64   `json:"shippingCost"`
	EstimatedDelivery time.Time `json:"estimatedDelivery"`
}
