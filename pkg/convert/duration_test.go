package convert

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRunTime(t *testing.T) {
	tests := []struct {
		code     string
		expected int
	}{
		{"PT0S", 0},
		{"PT30S", 30},
		{"PT90S", 90},
		{"PT5M", 300},
		{"PT10M", 600},
		{"PT1H", 3600},
		{"PT1H30M", 5400},
		{"PT2M30S", 150},
		{"PT1H2M3S", 3723},
	}

	for _, test := range tests {
		t.Run(test.code, func(t *testing.T) {
			seconds, err := ParseRunTime(test.code)

			assert.NoError(t, err)
			assert.Equal(t, test.expected, seconds)
		})
	}
}

func TestParseRunTimeMalformed(t *testing.T) {
	for _, code := range []string{"", "5M", "P1D", "PTXM", "300"} {
		t.Run(code, func(t *testing.T) {
			_, err := ParseRunTime(code)

			var malformed *MalformedDurationError
			assert.ErrorAs(t, err, &malformed)
			assert.Equal(t, code, malformed.Code)
		})
	}
}
