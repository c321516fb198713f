package convert

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseWeekdays(t *testing.T) {
	tests := []struct {
		expr     string
		expected [7]int
	}{
		{"MondayToFriday", [7]int{1, 1, 1, 1, 1, 0, 0}},
		{"MondayToSunday", [7]int{1, 1, 1, 1, 1, 1, 1}},
		{"Weekend", [7]int{0, 0, 0, 0, 0, 1, 1}},
		{"Monday", [7]int{1, 0, 0, 0, 0, 0, 0}},
		{"Monday|Wednesday|Friday", [7]int{1, 0, 1, 0, 1, 0, 0}},
		{"saturday|sunday", [7]int{0, 0, 0, 0, 0, 1, 1}},
		{"TuesdayToThursday", [7]int{0, 1, 1, 1, 0, 0, 0}},
		{"MondayToFriday|Sunday", [7]int{1, 1, 1, 1, 1, 0, 1}},
	}

	for _, test := range tests {
		t.Run(test.expr, func(t *testing.T) {
			set, err := ParseWeekdays(test.expr)

			assert.NoError(t, err)
			assert.Equal(t, test.expected, set.Flags())
		})
	}
}

func TestParseWeekdaysRejectsUnknownTokens(t *testing.T) {
	for _, expr := range []string{"Funday", "Monday|Funday", "SaturdaySunday", ""} {
		t.Run(expr, func(t *testing.T) {
			_, err := ParseWeekdays(expr)

			var unknown *UnknownWeekdayError
			assert.ErrorAs(t, err, &unknown)
		})
	}
}

func TestParseWeekdaysRejectsReversedRange(t *testing.T) {
	_, err := ParseWeekdays("FridayToMonday")

	var unknown *UnknownWeekdayError
	assert.ErrorAs(t, err, &unknown)
	assert.Equal(t, "fridaytomonday", unknown.Token)
}

func TestDaySetString(t *testing.T) {
	set, err := ParseWeekdays("MondayToFriday")
	assert.NoError(t, err)
	assert.Equal(t, "monday|tuesday|wednesday|thursday|friday", set.String())

	weekend, err := ParseWeekdays("Weekend")
	assert.NoError(t, err)
	assert.Equal(t, "saturday|sunday", weekend.String())
}
