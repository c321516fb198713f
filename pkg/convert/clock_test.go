package convert

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGtfsClock(t *testing.T) {
	reference := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		instant  time.Time
		expected string
	}{
		{"same day morning", reference.Add(8 * time.Hour), "08:00:00"},
		{"same day evening", reference.Add(23*time.Hour + 45*time.Minute), "23:45:00"},
		{"past midnight", reference.Add(24*time.Hour + 25*time.Minute), "24:25:00"},
		{"deep into next day", reference.Add(25*time.Hour + 15*time.Minute), "25:15:00"},
		{"two midnights later", reference.Add(49*time.Hour + 5*time.Minute), "49:05:00"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.expected, gtfsClock(test.instant, reference))
		})
	}
}

func TestGtfsClockKeepsSeconds(t *testing.T) {
	reference := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	instant := reference.Add(9*time.Hour + 30*time.Minute + 42*time.Second)

	assert.Equal(t, "09:30:42", gtfsClock(instant, reference))
}
