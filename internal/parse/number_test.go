package parse

import "testing"

func TestNumber(t *testing.T) {
	cases := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"3", 3, true},
		{"1,250", 1250, true},
		{"2.5", 2.5, true},
		{"two", 2, true},
		{"twenty three guests", 23, true},
		{"twenty-one", 21, true},
		{"two hundred", 200, true},
		{"one thousand and five", 1005, true},
		{"three rooms", 3, true},
		{"two nights and one room", 3, true},
		{"zero", 0, true},
		{"abc", 0, false},
		{"twenty bananas", 0, false},
		{"", 0, false},
		{"   ", 0, false},
	}
	for _, tc := range cases {
		got, ok := Number(tc.in)
		if ok != tc.ok {
			t.Fatalf("Number(%q) ok = %v, want %v", tc.in, ok, tc.ok)
		}
		if ok && got != tc.want {
			t.Fatalf("Number(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
