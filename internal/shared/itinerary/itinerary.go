package itinerary

import (
	"sort"

	"github.com/xbraken/holiday-planner/internal/document"
)

// SortedLeg pairs a leg with its map key so callers can address it after
// ordering.
type SortedLeg struct {
	ID string
	document.Leg
}

// SortedLegs returns the plan's legs ascending by order. The sort is stable;
// order values are unique by construction, so ties only arise from corrupted
// data and keep their relative position.
func SortedLegs(legs map[string]document.Leg) []SortedLeg {
	out := make([]SortedLeg, 0, len(legs))
	for id, leg := range legs {
		out = append(out, SortedLeg{ID: id, Leg: leg})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Order != out[j].Order {
			return out[i].Order < out[j].Order
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// OriginFor is the implied departure airport for leg index's outbound
// flight: the home airport for the first leg, otherwise the previous leg's
// destination code, falling back to home when that leg has no resolved code.
func OriginFor(legs []SortedLeg, index int, homeAirport string) string {
	if index == 0 {
		return homeAirport
	}
	if code := legs[index-1].Destination.Code; code != "" {
		return code
	}
	return homeAirport
}

// InboundDestinationFor is the implied arrival airport for leg index's
// return flight: home for the last leg, otherwise the next leg's destination
// code with the same fallback.
func InboundDestinationFor(legs []SortedLeg, index int, homeAirport string) string {
	if index >= len(legs)-1 {
		return homeAirport
	}
	if code := legs[index+1].Destination.Code; code != "" {
		return code
	}
	return homeAirport
}

// OriginNameFor resolves the human-readable city for the outbound origin
// using the same adjacency rule as OriginFor.
func OriginNameFor(legs []SortedLeg, index int, homeAirportName string) string {
	if index == 0 {
		return homeAirportName
	}
	if city := legs[index-1].Destination.City; city != "" {
		return city
	}
	return homeAirportName
}

func InboundDestinationNameFor(legs []SortedLeg, index int, homeAirportName string) string {
	if index >= len(legs)-1 {
		return homeAirportName
	}
	if city := legs[index+1].Destination.City; city != "" {
		return city
	}
	return homeAirportName
}

// TripTotal sums the prices of already-selected flights across all legs.
// It is a running total of selections, not a forecast.
func TripTotal(legs []SortedLeg) float64 {
	total := 0.0
	for _, leg := range legs {
		if leg.Outbound != nil {
			total += leg.Outbound.Summary.Price
		}
		if leg.Inbound != nil {
			total += leg.Inbound.Summary.Price
		}
	}
	return total
}
