package service

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var trackingFormat = regexp.MustCompile(`^SL\d{8}\d{3}$`)

func TestTrackingNumberGenerator_Format(t *testing.T) {
	g := NewTrackingNumberGenerator()

	for i := 0; i < 20; i++ {
		tn := g.Generate()
		require.True(t, trackingFormat.MatchString(tn), "unexpected format: %s", tn)
	}
}

// Two calls in the same millisecond can collide; spaced a millisecond
// apart they must differ.
func TestTrackingNumberGenerator_DistinctAcrossMillis(t *testing.T) {
	g := NewTrackingNumberGenerator()

	first := g.Generate()
	time.Sleep(2 * time.Millisecond)
	second := g.Generate()

	assert.NotEqual(t, first, second)
}
