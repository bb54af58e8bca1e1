// dto.go
package dto

// CreateOrderRequest is the flat order form posted by the dashboard.
// Required-field validation happens in the service so that every missing
// field can be reported at once, not just the first.
type CreateOrderRequest struct {
	PickupAddress        string  `json:"pickupAddress"`
	PickupContact        string  `json:"pickupContact"`
	PickupPhone          string  `json:"pickupPhone"`
	DeliveryAddress      string  `json:"deliveryAddress"`
	DeliveryContact      string  `json:"deliveryContact"`
	DeliveryPhone        string  `json:"deliveryPhone"`
	DeliveryInstructions string  `json:"deliveryInstructions"`
	PackageDescription   string  `json:"packageDescription"`
	PackageWeight        float64 `json:"packageWeight"`
	PackageValue         float64 `json:"packageValue"`
	ServiceType          string  `json:"serviceType"`
	Urgency              string  `json:"urgency"`
}

type UpdateStatusRequest struct {
	Status   string `json:"status" binding:"required"`
	Notes    string `json:"notes"`
	Location string `json:"location"`
}

// ListOrdersQuery is bound from query parameters on GET /api/orders.
type ListOrdersQuery struct {
	Status string `form:"status"`
	Search string `form:"search"`
	Limit  int    `form:"limit,default=50"`
	Offset int    `form:"offset"`
}

// SendToQueueRequest publishes an arbitrary payload to a named queue.
type SendToQueueRequest struct {
	QueueName string         `json:"queueName" binding:"required"`
	Message   map[string]any `json:"message" binding:"required"`
}

type SendToExchangeRequest struct {
	ExchangeName string         `json:"exchangeName" binding:"required"`
	RoutingKey   string         `json:"routingKey" binding:"required"`
	Message      map[string]any `json:"message" binding:"required"`
	ExchangeType string         `json:"exchangeType"`
}
