package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPricingEngine_Cost(t *testing.T) {
	p := NewPricingEngine()

	tests := []struct {
		name        string
		weightKg    float64
		serviceType string
		urgency     string
		want        float64
	}{
		{"standard normal", 2.5, "standard", "normal", 875.00},
		{"express urgent", 2.5, "express", "urgent", 3000.00},
		{"same-day high", 1, "same-day", "high", 1500.00},
		{"standard urgent", 2.5, "standard", "urgent", 1312.5},
		{"express normal", 5, "express", "normal", 4000.00},
		{"unknown service type falls back to standard", 2.5, "overnight", "normal", 875.00},
		{"unknown urgency falls back to no multiplier", 2.5, "standard", "asap", 875.00},
		{"empty enums behave as standard/normal", 1, "", "", 350.00},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.want, p.Cost(tc.weightKg, tc.serviceType, tc.urgency), 0.001)
		})
	}
}

func TestPricingEngine_CostMonotonicity(t *testing.T) {
	p := NewPricingEngine()

	for _, serviceType := range []string{"standard", "express", "same-day"} {
		prev := 0.0
		for _, w := range []float64{0.5, 1, 2, 5, 10, 50} {
			cost := p.Cost(w, serviceType, "normal")
			assert.Greater(t, cost, prev, "cost must grow with weight for %s", serviceType)
			prev = cost
		}

		// normal <= high <= urgent at fixed weight
		normal := p.Cost(3, serviceType, "normal")
		high := p.Cost(3, serviceType, "high")
		urgent := p.Cost(3, serviceType, "urgent")
		assert.LessOrEqual(t, normal, high)
		assert.LessOrEqual(t, high, urgent)
	}
}

func TestPricingEngine_EstimatedDelivery(t *testing.T) {
	p := NewPricingEngine()
	from := time.Date(2025, 6, 15, 10, 30, 0, 0, time.Local)

	tests := []struct {
		serviceType string
		wantDays    int
	}{
		{"same-day", 0},
		{"express", 1},
		{"standard", 2},
		{"carrier-pigeon", 2}, // unknown behaves as standard
	}

	for _, tc := range tests {
		t.Run(tc.serviceType, func(t *testing.T) {
			got := p.EstimatedDelivery(tc.serviceType, from)
			assert.Equal(t, from.AddDate(0, 0, tc.wantDays), got)
		})
	}
}
