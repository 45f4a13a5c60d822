package service

import "testing"

func TestClampDays(t *testing.T) {
	cases := []struct{ in, want int }{
		{0, 1},
		{-5, 1},
		{1, 1},
		{15, 15},
		{30, 30},
		{31, 30},
		{999, 30},
	}
	for _, tc := range cases {
		if got := clampDays(tc.in); got != tc.want {
			t.Fatalf("clampDays(%d) = %d, want %d", tc.in, got, tc.want)
		}
	}
}
