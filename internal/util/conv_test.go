package util

import "testing"

func TestRoundPercent(t *testing.T) {
	cases := []struct {
		correct, total int
		want           int
	}{
		{0, 0, 0},
		{0, 4, 0},
		{3, 4, 75},
		{1, 3, 33},
		{2, 3, 67},
		{4, 4, 100},
		{1, 8, 12}, // 12.5 rounds half to even
	}
	for _, c := range cases {
		if got := RoundPercent(c.correct, c.total); got != c.want {
			t.Errorf("RoundPercent(%d, %d) = %d, want %d", c.correct, c.total, got, c.want)
		}
	}
}

func TestRound2(t *testing.T) {
	cases := []struct {
		in   float64
		want float64
	}{
		{33.333333, 33.33},
		{66.666666, 66.67},
		{100, 100},
		{0, 0},
		{12.344, 12.34},
	}
	for _, c := range cases {
		if got := Round2(c.in); got != c.want {
			t.Errorf("Round2(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}
