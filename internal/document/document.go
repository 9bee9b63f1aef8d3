package document

import "time"

// CacheMaxAge is the validity window for a cached flight search result.
// Entries older than this are treated as absent, never purged.
const CacheMaxAge = 6 * time.Hour

const (
	DefaultHomeAirport     = "DUB"
	DefaultHomeAirportName = "Dublin"
	DefaultCurrency        = "EUR"
)

// Currencies is the set of currency codes the planner accepts.
var Currencies = []string{"EUR", "GBP", "USD"}

// Document is the single shared JSON document synchronized across all
// clients of one planning session.
type Document struct {
	Users       []string                     `json:"users"`
	TripPlans   map[string]TripPlan          `json:"tripPlans"`
	FlightCache map[string]CachedFlightResult `json:"flightCache"`
	LastUpdated int64                        `json:"lastUpdated"`
}

// TripPlan is one user's multi-leg itinerary. It is owned by exactly one
// user; the schema imposes no server-side access control.
type TripPlan struct {
	HomeAirport     string         `json:"homeAirport"`
	HomeAirportName string         `json:"homeAirportName"`
	Currency        string         `json:"currency"`
	Legs            map[string]Leg `json:"legs"`
}

// Leg is one destination stay within a multi-city trip. Order values are
// unique per plan and monotonically increasing, never reused after deletion.
type Leg struct {
	Order         int              `json:"order"`
	Destination   Destination      `json:"destination"`
	DepartureDate string           `json:"departureDate"`
	ReturnDate    string           `json:"returnDate"`
	Outbound      *FlightSelection `json:"outbound"`
	Inbound       *FlightSelection `json:"inbound"`
}

// Destination's Code may be empty for free-text destinations that were not
// matched to a known airport.
type Destination struct {
	City    string `json:"city"`
	Country string `json:"country"`
	Code    string `json:"code"`
}

// FlightSelection records a chosen flight option. Summary is a denormalized
// snapshot captured at selection time so the selection stays renderable even
// after the cache entry it was drawn from expires.
type FlightSelection struct {
	FlightID   string        `json:"flightId"`
	CacheKey   string        `json:"cacheKey"`
	Date       string        `json:"date"`
	Summary    FlightSummary `json:"summary"`
	SelectedAt int64         `json:"selectedAt"`
}

type FlightSummary struct {
	Airline       string      `json:"airline"`
	AirlineLogo   string      `json:"airlineLogo"`
	DepartureTime string      `json:"departureTime"`
	ArrivalTime   string      `json:"arrivalTime"`
	DepartureCode string      `json:"departureCode"`
	ArrivalCode   string      `json:"arrivalCode"`
	Duration      string      `json:"duration"`
	Stops         int         `json:"stops"`
	Price         float64     `json:"price"`
	Legs          []FlightLeg `json:"legs"`
	Layovers      []Layover   `json:"layovers"`
	Extensions    []string    `json:"extensions"`
}

// CachedFlightResult is one normalized search response shared through the
// document so any user's search benefits the whole group.
type CachedFlightResult struct {
	Flights          []FlightOption `json:"flights"`
	PriceInsights    any            `json:"priceInsights"`
	GoogleFlightsURL string         `json:"googleFlightsUrl"`
	SearchedAt       int64          `json:"searchedAt"`
}

// FlightOption is a provider flight option normalized for the planner. IDs
// are stable only within one search response.
type FlightOption struct {
	ID               string      `json:"id"`
	Legs             []FlightLeg `json:"legs"`
	Layovers         []Layover   `json:"layovers"`
	TotalDuration    string      `json:"totalDuration"`
	TotalDurationMin int         `json:"totalDurationMin"`
	Price            float64     `json:"price"`
	Stops            int         `json:"stops"`
	MainAirline      string      `json:"mainAirline"`
	AirlineLogo      string      `json:"airlineLogo"`
	DepartureTime    string      `json:"departureTime"`
	DepartureCode    string      `json:"departureCode"`
	ArrivalTime      string      `json:"arrivalTime"`
	ArrivalCode      string      `json:"arrivalCode"`
	Extensions       []string    `json:"extensions"`
	BookingToken     string      `json:"bookingToken"`
	IsBestFlight     bool        `json:"isBestFlight"`
}

type FlightLeg struct {
	Airline      string   `json:"airline"`
	AirlineLogo  string   `json:"airlineLogo"`
	FlightNumber string   `json:"flightNumber"`
	Departure    Endpoint `json:"departure"`
	Arrival      Endpoint `json:"arrival"`
	Duration     string   `json:"duration"`
	DurationMin  int      `json:"durationMin"`
	Airplane     string   `json:"airplane"`
	Legroom      string   `json:"legroom"`
	OftenDelayed bool     `json:"oftenDelayed"`
}

type Endpoint struct {
	Airport string `json:"airport"`
	Code    string `json:"code"`
	Time    string `json:"time"`
}

type Layover struct {
	Airport     string `json:"airport"`
	Code        string `json:"code"`
	Duration    string `json:"duration"`
	DurationMin int    `json:"durationMin"`
	Overnight   bool   `json:"overnight"`
}

// Default returns the document every session starts from.
func Default() *Document {
	return &Document{
		Users:       []string{},
		TripPlans:   map[string]TripPlan{},
		FlightCache: map[string]CachedFlightResult{},
		LastUpdated: NowMillis(),
	}
}

// DefaultPlan returns the trip plan lazily created when a user first joins.
func DefaultPlan() TripPlan {
	return TripPlan{
		HomeAirport:     DefaultHomeAirport,
		HomeAirportName: DefaultHomeAirportName,
		Currency:        DefaultCurrency,
		Legs:            map[string]Leg{},
	}
}

func ValidCurrency(code string) bool {
	for _, c := range Currencies {
		if c == code {
			return true
		}
	}
	return false
}

// NowMillis returns the current time as unix milliseconds, the timestamp
// unit used throughout the document.
func NowMillis() int64 {
	return time.Now().UnixMilli()
}
