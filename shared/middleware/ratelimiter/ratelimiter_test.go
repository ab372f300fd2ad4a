package ratelimiter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAllowWithinCapacity(t *testing.T) {
	rl := New(1, 3, time.Hour)

	assert.True(t, rl.Allow("ip-1"))
	assert.True(t, rl.Allow("ip-1"))
	assert.True(t, rl.Allow("ip-1"))
	assert.False(t, rl.Allow("ip-1"))
}

func TestIdentitiesAreIndependent(t *testing.T) {
	rl := New(1, 1, time.Hour)

	assert.True(t, rl.Allow("ip-1"))
	assert.False(t, rl.Allow("ip-1"))
	assert.True(t, rl.Allow("ip-2"))
}

func TestRefill(t *testing.T) {
	// 100 tokens per second so the test does not need a long sleep
	rl := New(100, 1, time.Hour)

	assert.True(t, rl.Allow("ip-1"))
	assert.False(t, rl.Allow("ip-1"))

	time.Sleep(50 * time.Millisecond)

	assert.True(t, rl.Allow("ip-1"))
}

func TestSweepEvictsIdleIdentities(t *testing.T) {
	rl := New(1, 1, 10*time.Millisecond)

	assert.True(t, rl.Allow("ip-1"))
	assert.Equal(t, 1, rl.Len())

	time.Sleep(20 * time.Millisecond)

	// any call past the expiration window triggers the sweep
	assert.True(t, rl.Allow("ip-2"))
	assert.Equal(t, 1, rl.Len())
}
