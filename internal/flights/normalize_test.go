package flights

import (
	"testing"
)

func TestFormatDuration(t *testing.T) {
	cases := []struct {
		minutes int
		want    string
	}{
		{0, "0m"},
		{45, "45m"},
		{60, "1h"},
		{120, "2h"},
		{125, "2h 5m"},
		{61, "1h 1m"},
	}
	for _, tc := range cases {
		if got := FormatDuration(tc.minutes); got != tc.want {
			t.Fatalf("FormatDuration(%d) = %q, want %q", tc.minutes, got, tc.want)
		}
	}
}

func TestExtractTime(t *testing.T) {
	if got := ExtractTime("2025-07-01 08:30"); got != "08:30" {
		t.Fatalf("unexpected time: %q", got)
	}
	if got := ExtractTime("08:30"); got != "08:30" {
		t.Fatalf("expected passthrough, got %q", got)
	}
	if got := ExtractTime(""); got != "" {
		t.Fatalf("expected empty, got %q", got)
	}
}

func TestBuildCacheKey(t *testing.T) {
	if got := BuildCacheKey("DUB", "BCN", "2025-07-01"); got != "DUB_BCN_2025-07-01" {
		t.Fatalf("unexpected key: %q", got)
	}
}

const sampleResponse = `{
	"search_metadata": {"google_flights_url": "https://www.google.com/travel/flights"},
	"price_insights": {"lowest_price": 180},
	"best_flights": [
		{
			"flights": [
				{
					"departure_airport": {"name": "Dublin", "id": "DUB", "time": "2025-07-01 08:30"},
					"arrival_airport": {"name": "Frankfurt", "id": "FRA", "time": "2025-07-01 11:45"},
					"duration": 135,
					"airline": "Lufthansa",
					"airline_logo": "https://logos/lh.png",
					"flight_number": "LH 979",
					"airplane": "Airbus A320",
					"legroom": "29 in",
					"often_delayed_by_over_30_min": true
				},
				{
					"departure_airport": {"name": "Frankfurt", "id": "FRA", "time": "2025-07-01 13:05"},
					"arrival_airport": {"name": "Barcelona", "id": "BCN", "time": "2025-07-01 15:00"},
					"duration": 115,
					"airline": "Lufthansa",
					"flight_number": "LH 1138"
				}
			],
			"layovers": [
				{"name": "Frankfurt Airport", "id": "FRA", "duration": 80, "overnight": false}
			],
			"total_duration": 330,
			"price": 200,
			"airline_logo": "https://logos/lh.png",
			"extensions": ["Checked bag for a fee"],
			"booking_token": "tok-1"
		}
	],
	"other_flights": [
		{
			"flights": [
				{
					"departure_airport": {"name": "Dublin", "id": "DUB", "time": "2025-07-01 06:10"},
					"arrival_airport": {"name": "Barcelona", "id": "BCN", "time": "2025-07-01 09:55"},
					"duration": 165,
					"airline": "Ryanair",
					"flight_number": "FR 7328"
				}
			],
			"layovers": [],
			"total_duration": 165,
			"price": 200
		},
		{
			"flights": [
				{
					"departure_airport": {"name": "Dublin", "id": "DUB", "time": "2025-07-01 17:40"},
					"arrival_airport": {"name": "Barcelona", "id": "BCN", "time": "2025-07-01 21:20"},
					"duration": 160,
					"airline": "Aer Lingus",
					"flight_number": "EI 562"
				}
			],
			"layovers": [],
			"total_duration": 160,
			"price": 250
		}
	]
}`

func TestNormalize(t *testing.T) {
	result, err := Normalize([]byte(sampleResponse))
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if len(result.Flights) != 3 {
		t.Fatalf("expected 3 options, got %d", len(result.Flights))
	}
	if result.GoogleFlightsURL == "" {
		t.Fatalf("expected google flights url")
	}
	if result.PriceInsights == nil {
		t.Fatalf("expected price insights")
	}

	first := result.Flights[0]
	if first.ID != "fl_0" {
		t.Fatalf("unexpected id: %s", first.ID)
	}
	if first.DepartureCode != "DUB" || first.ArrivalCode != "BCN" {
		t.Fatalf("expected first departure / last arrival, got %s -> %s", first.DepartureCode, first.ArrivalCode)
	}
	if first.DepartureTime != "08:30" || first.ArrivalTime != "15:00" {
		t.Fatalf("unexpected times: %s -> %s", first.DepartureTime, first.ArrivalTime)
	}
	if first.Stops != 1 || first.TotalDuration != "5h 30m" {
		t.Fatalf("unexpected stops/duration: %d %s", first.Stops, first.TotalDuration)
	}
	if first.MainAirline != "Lufthansa" {
		t.Fatalf("unexpected airline: %s", first.MainAirline)
	}
	if len(first.Legs) != 2 || !first.Legs[0].OftenDelayed {
		t.Fatalf("unexpected segments: %+v", first.Legs)
	}
	if len(first.Layovers) != 1 || first.Layovers[0].Duration != "1h 20m" {
		t.Fatalf("unexpected layovers: %+v", first.Layovers)
	}
}

// The best flag is reconciled by price, so an "other" flight sharing a best
// flight's price is marked best too. Observed provider behavior, kept as is.
func TestNormalizeBestFlightPriceQuirk(t *testing.T) {
	result, err := Normalize([]byte(sampleResponse))
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}

	best := 0
	for _, f := range result.Flights {
		if f.IsBestFlight {
			best++
		}
	}
	if best != 2 {
		t.Fatalf("expected exactly 2 best-flagged options, got %d", best)
	}
	if !result.Flights[1].IsBestFlight {
		t.Fatalf("price-colliding other flight should be flagged best")
	}
	if result.Flights[2].IsBestFlight {
		t.Fatalf("price 250 option must not be flagged")
	}
}

func TestNormalizeEmptyOption(t *testing.T) {
	result, err := Normalize([]byte(`{"other_flights":[{}]}`))
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	opt := result.Flights[0]
	if opt.MainAirline != "Unknown" {
		t.Fatalf("expected Unknown airline, got %q", opt.MainAirline)
	}
	if opt.TotalDuration != "0m" || opt.Stops != 0 {
		t.Fatalf("unexpected zero option: %+v", opt)
	}
}

func TestNormalizeBadJSON(t *testing.T) {
	if _, err := Normalize([]byte("{")); err == nil {
		t.Fatalf("expected error")
	}
}

func TestBuildSummary(t *testing.T) {
	result, _ := Normalize([]byte(sampleResponse))
	summary := BuildSummary(result.Flights[0])
	if summary.Airline != "Lufthansa" || summary.Price != 200 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	if summary.Duration != "5h 30m" || summary.Stops != 1 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	if len(summary.Legs) != 2 || len(summary.Layovers) != 1 {
		t.Fatalf("expected segment detail preserved")
	}
}
