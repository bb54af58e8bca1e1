package service

import (
	"fmt"
	"math/rand"
	"time"
)

// TrackingNumberGenerator produces human-readable tracking numbers of the
// form "SL" + last 8 digits of the epoch millis + 3 random digits. Not
// cryptographically secure and not guaranteed unique: two calls in the
// same millisecond collide with roughly 1-in-1000 probability, and the
// store does not reject duplicates.
type TrackingNumberGenerator struct{}

func NewTrackingNumberGenerator() *TrackingNumberGenerator {
	return &TrackingNumberGenerator{}
}

func (g *TrackingNumberGenerator) Generate() string {
	millis := fmt.Sprintf("%d", time.Now().UnixMilli())
	if len(millis) > 8 {
		millis = millis[len(millis)-8:]
	}
	return fmt.Sprintf("SL%s%03d", millis, rand.Intn(1000))
}
