package planner

import (
	"errors"

	"github.com/xbraken/holiday-planner/internal/document"
)

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrLegNotFound     = errors.New("leg not found")
	ErrFlightNotFound  = errors.New("flight not found in cache")
	ErrInvalidCurrency = errors.New("unsupported currency")
	ErrNoAirportCode   = errors.New("destination has no airport code")
	ErrBadDirection    = errors.New("direction must be outbound or inbound")
)

// State is the full shared document plus backend liveness, the payload every
// client bootstraps from.
type State struct {
	Document  *document.Document `json:"document"`
	Connected bool               `json:"connected"`
}

type SettingsRequest struct {
	HomeAirport     string `json:"homeAirport"`
	HomeAirportName string `json:"homeAirportName"`
	Currency        string `json:"currency"`
}

type LegRequest struct {
	City          string `json:"city"`
	Country       string `json:"country"`
	Code          string `json:"code"`
	DepartureDate string `json:"departureDate"`
	ReturnDate    string `json:"returnDate"`
}

// LegPatch uses pointers so an omitted field is distinguishable from one set
// to the empty string. Dates and destination changes invalidate selections.
type LegPatch struct {
	City          *string `json:"city"`
	Country       *string `json:"country"`
	Code          *string `json:"code"`
	DepartureDate *string `json:"departureDate"`
	ReturnDate    *string `json:"returnDate"`
}

type SelectFlightRequest struct {
	Direction string `json:"direction"`
	CacheKey  string `json:"cacheKey"`
	FlightID  string `json:"flightId"`
}

// LegView is a leg annotated with the routing the itinerary implies for it:
// where its outbound departs from and where its return lands.
type LegView struct {
	ID string `json:"id"`
	document.Leg
	Origin                 string `json:"origin"`
	OriginName             string `json:"originName"`
	InboundDestination     string `json:"inboundDestination"`
	InboundDestinationName string `json:"inboundDestinationName"`
}

type TripSummary struct {
	User            string    `json:"user"`
	HomeAirport     string    `json:"homeAirport"`
	HomeAirportName string    `json:"homeAirportName"`
	Currency        string    `json:"currency"`
	Legs            []LegView `json:"legs"`
	Total           float64   `json:"total"`
}

// DirectionResult is one direction of a leg search: the route that was
// searched and the result set, cached or fresh.
type DirectionResult struct {
	CacheKey  string                       `json:"cacheKey"`
	From      string                       `json:"from"`
	To        string                       `json:"to"`
	Date      string                       `json:"date"`
	FromCache bool                         `json:"fromCache"`
	Result    *document.CachedFlightResult `json:"result"`
}

type SearchResponse struct {
	Outbound *DirectionResult `json:"outbound"`
	Inbound  *DirectionResult `json:"inbound"`
}
