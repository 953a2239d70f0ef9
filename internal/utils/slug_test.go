package utils

import "testing"

func TestSlugify(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Kitchen Remodels", "kitchen-remodels"},
		{"  Bathrooms & Tile  ", "bathrooms-and-tile"},
		{"Design/Build", "design-build"},
		{"Owner's Suite", "owners-suite"},
		{"--Already--Sluggy--", "already-sluggy"},
	}
	for _, tc := range cases {
		if got := Slugify(tc.in); got != tc.want {
			t.Fatalf("Slugify(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
