package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEventRegistrationOpen(t *testing.T) {
	now := time.Now()
	event := &Event{
		IsActive:          true,
		RegistrationFrom:  now.Add(-time.Hour),
		RegistrationUntil: now.Add(time.Hour),
	}

	assert.True(t, event.RegistrationOpen(now))
	assert.False(t, event.RegistrationOpen(now.Add(-2*time.Hour)))
	assert.False(t, event.RegistrationOpen(now.Add(2*time.Hour)))

	event.IsActive = false
	assert.False(t, event.RegistrationOpen(now))
}

func TestEventHasCapacity(t *testing.T) {
	event := &Event{MaxParticipants: 10}

	assert.True(t, event.HasCapacity(0))
	assert.True(t, event.HasCapacity(9))
	// the last seat is gone once the count reaches the limit
	assert.False(t, event.HasCapacity(10))
	assert.False(t, event.HasCapacity(11))
}

func TestEventHasCapacityUnlimited(t *testing.T) {
	event := &Event{MaxParticipants: 0}
	assert.True(t, event.HasCapacity(100000))
}
