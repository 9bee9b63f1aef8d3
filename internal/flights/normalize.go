package flights

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xbraken/holiday-planner/internal/document"
)

// FormatDuration renders total minutes as "2h 5m", dropping the zero part.
func FormatDuration(minutes int) string {
	h := minutes / 60
	m := minutes % 60
	if h == 0 {
		return fmt.Sprintf("%dm", m)
	}
	if m == 0 {
		return fmt.Sprintf("%dh", h)
	}
	return fmt.Sprintf("%dh %dm", h, m)
}

// ExtractTime keeps the clock part of the provider's "2006-01-02 15:04"
// datetime strings.
func ExtractTime(dateTime string) string {
	if dateTime == "" {
		return ""
	}
	parts := strings.SplitN(dateTime, " ", 2)
	if len(parts) == 2 {
		return parts[1]
	}
	return dateTime
}

// BuildCacheKey derives the deterministic route+date key a search result set
// is cached under.
func BuildCacheKey(from, to, date string) string {
	return from + "_" + to + "_" + date
}

// parseFlightOption flattens one raw provider option into the planner's
// canonical shape. The id is positional and only stable within one result
// set, which is exactly why selections carry a denormalized summary.
func parseFlightOption(opt rawOption, index int) document.FlightOption {
	segments := opt.Flights
	var first, last rawSegment
	if len(segments) > 0 {
		first = segments[0]
		last = segments[len(segments)-1]
	}

	legs := make([]document.FlightLeg, 0, len(segments))
	for _, seg := range segments {
		legs = append(legs, document.FlightLeg{
			Airline:      seg.Airline,
			AirlineLogo:  seg.AirlineLogo,
			FlightNumber: seg.FlightNumber,
			Departure: document.Endpoint{
				Airport: seg.DepartureAirport.Name,
				Code:    seg.DepartureAirport.ID,
				Time:    ExtractTime(seg.DepartureAirport.Time),
			},
			Arrival: document.Endpoint{
				Airport: seg.ArrivalAirport.Name,
				Code:    seg.ArrivalAirport.ID,
				Time:    ExtractTime(seg.ArrivalAirport.Time),
			},
			Duration:     FormatDuration(seg.Duration),
			DurationMin:  seg.Duration,
			Airplane:     seg.Airplane,
			Legroom:      seg.Legroom,
			OftenDelayed: seg.OftenDelayed,
		})
	}

	layovers := make([]document.Layover, 0, len(opt.Layovers))
	for _, l := range opt.Layovers {
		layovers = append(layovers, document.Layover{
			Airport:     l.Name,
			Code:        l.ID,
			Duration:    FormatDuration(l.Duration),
			DurationMin: l.Duration,
			Overnight:   l.Overnight,
		})
	}

	mainAirline := first.Airline
	if mainAirline == "" {
		mainAirline = "Unknown"
	}
	logo := opt.AirlineLogo
	if logo == "" {
		logo = first.AirlineLogo
	}

	return document.FlightOption{
		ID:               fmt.Sprintf("fl_%d", index),
		Legs:             legs,
		Layovers:         layovers,
		TotalDuration:    FormatDuration(opt.TotalDuration),
		TotalDurationMin: opt.TotalDuration,
		Price:            opt.Price,
		Stops:            len(opt.Layovers),
		MainAirline:      mainAirline,
		AirlineLogo:      logo,
		DepartureTime:    ExtractTime(first.DepartureAirport.Time),
		DepartureCode:    first.DepartureAirport.ID,
		ArrivalTime:      ExtractTime(last.ArrivalAirport.Time),
		ArrivalCode:      last.ArrivalAirport.ID,
		Extensions:       opt.Extensions,
		BookingToken:     opt.BookingToken,
	}
}

// Normalize merges the provider's best and other lists into one canonical
// option list. isBestFlight is reconciled by price because the provider does
// not tag individual options: colliding prices mark several options best.
// That quirk is kept as observed, not fixed.
func Normalize(body []byte) (document.CachedFlightResult, error) {
	var raw rawResponse
	if err := json.Unmarshal(body, &raw); err != nil {
		return document.CachedFlightResult{}, err
	}

	bestPrices := make(map[float64]struct{}, len(raw.BestFlights))
	for _, f := range raw.BestFlights {
		bestPrices[f.Price] = struct{}{}
	}

	all := make([]rawOption, 0, len(raw.BestFlights)+len(raw.OtherFlights))
	all = append(all, raw.BestFlights...)
	all = append(all, raw.OtherFlights...)

	options := make([]document.FlightOption, 0, len(all))
	for i, f := range all {
		opt := parseFlightOption(f, i)
		_, opt.IsBestFlight = bestPrices[f.Price]
		options = append(options, opt)
	}

	return document.CachedFlightResult{
		Flights:          options,
		PriceInsights:    raw.PriceInsights,
		GoogleFlightsURL: raw.SearchMetadata.GoogleFlightsURL,
	}, nil
}

// BuildSummary is the denormalized snapshot stored with a selection so it
// stays renderable after the cache entry expires.
func BuildSummary(opt document.FlightOption) document.FlightSummary {
	return document.FlightSummary{
		Airline:       opt.MainAirline,
		AirlineLogo:   opt.AirlineLogo,
		DepartureTime: opt.DepartureTime,
		ArrivalTime:   opt.ArrivalTime,
		DepartureCode: opt.DepartureCode,
		ArrivalCode:   opt.ArrivalCode,
		Duration:      opt.TotalDuration,
		Stops:         opt.Stops,
		Price:         opt.Price,
		Legs:          opt.Legs,
		Layovers:      opt.Layovers,
		Extensions:    opt.Extensions,
	}
}
