package models

import "testing"

func TestPercentage(t *testing.T) {
	tests := []struct {
		part, whole int
		want        int
	}{
		{0, 0, 0},
		{3, 0, 0},
		{0, 4, 0},
		{1, 2, 50},
		{1, 3, 33},
		{2, 3, 67},
		{1, 8, 13}, // 12.5 rounds up
		{5, 8, 63}, // 62.5 rounds up
		{4, 4, 100},
	}

	for _, tc := range tests {
		if got := Percentage(tc.part, tc.whole); got != tc.want {
			t.Errorf("Percentage(%d, %d): expected %d, got %d", tc.part, tc.whole, tc.want, got)
		}
	}
}
