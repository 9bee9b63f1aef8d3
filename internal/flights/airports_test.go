package flights

import "testing"

func TestResolveAirportCode(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"Barcelona", "BCN"},
		{"barcelona", "BCN"},
		{"bcn", "BCN"},
		{"  Lisbon  ", "LIS"},
		{"Palma", "PMI"},
		{"XYZ", "XYZ"},
		{"xyz", "XYZ"},
		{"Atlantis", ""},
		{"", ""},
	}
	for _, tc := range cases {
		if got := ResolveAirportCode(tc.input); got != tc.want {
			t.Fatalf("ResolveAirportCode(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}

func TestCatalogsNonEmpty(t *testing.T) {
	if len(HomeAirports) == 0 || len(Destinations) == 0 {
		t.Fatalf("expected populated catalogs")
	}
	if HomeAirports[0].Code != "DUB" {
		t.Fatalf("expected Dublin first")
	}
}
