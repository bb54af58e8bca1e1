package service

import (
	"math"
	"time"

	"github.com/ShaminAkarsha/Swiftlogistics-CMS1/internal/model"
)

// Base rate per kilogram by service tier, in rupees.
const (
	rateStandard = 350
	rateExpress  = 800
	rateSameDay  = 1200
)

// PricingEngine derives shipping cost and delivery estimates. Unknown
// service types and urgencies silently fall back to the standard/normal
// behavior; callers depend on this, do not turn it into validation.
type PricingEngine struct{}

func NewPricingEngine() *PricingEngine {
	return &PricingEngine{}
}

// Cost returns weight * base rate * urgency multiplier, rounded to two
// decimal places.
func (p *PricingEngine) Cost(weightKg float64, serviceType, urgency string) float64 {
	var baseRate float64
	switch serviceType {
	case model.ServiceSameDay:
		baseRate = rateSameDay
	case model.ServiceExpress:
		baseRate = rateExpress
	default:
		baseRate = rateStandard
	}

	cost := weightKg * baseRate

	switch urgency {
	case model.UrgencyUrgent:
		cost *= 1.5
	case model.UrgencyHigh:
		cost *= 1.25
	}

	return math.Round(cost*100) / 100
}

// EstimatedDelivery adds the tier's fixed day offset to from. Calendar
// days only; no weekend or business-day handling.
func (p *PricingEngine) EstimatedDelivery(serviceType string, from time.Time) time.Time {
	var days int
	switch serviceType {
	case model.ServiceSameDay:
		days = 0
	case model.ServiceExpress:
		days = 1
	default:
		days = 2
	}
	return from.AddDate(0, 0, days)
}
