package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRegistrationOpen(t *testing.T) {
	start := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 1, 20, 23, 59, 59, 0, time.UTC)

	event := &ProjectEvent{IsActive: true, RegistrationStart: start, RegistrationEnd: end}

	assert.False(t, event.RegistrationOpen(start.Add(-time.Hour)))
	assert.True(t, event.RegistrationOpen(start))
	assert.True(t, event.RegistrationOpen(start.AddDate(0, 0, 5)))
	assert.True(t, event.RegistrationOpen(end))
	assert.False(t, event.RegistrationOpen(end.Add(time.Second)))

	event.IsActive = false
	assert.False(t, event.RegistrationOpen(start.AddDate(0, 0, 5)))
}
