package flights

// Raw shapes of the SerpAPI Google Flights response. Only the fields the
// normalizer reads are declared; the HTTP proxy passes the body through
// untouched.
type rawResponse struct {
	BestFlights    []rawOption `json:"best_flights"`
	OtherFlights   []rawOption `json:"other_flights"`
	PriceInsights  any         `json:"price_insights"`
	SearchMetadata struct {
		GoogleFlightsURL string `json:"google_flights_url"`
	} `json:"search_metadata"`
}

type rawOption struct {
	Flights       []rawSegment `json:"flights"`
	Layovers      []rawLayover `json:"layovers"`
	TotalDuration int          `json:"total_duration"`
	Price         float64      `json:"price"`
	AirlineLogo   string       `json:"airline_logo"`
	Extensions    []string     `json:"extensions"`
	BookingToken  string       `json:"booking_token"`
}

type rawSegment struct {
	DepartureAirport rawAirport `json:"departure_airport"`
	ArrivalAirport   rawAirport `json:"arrival_airport"`
	Duration         int        `json:"duration"`
	Airplane         string     `json:"airplane"`
	Airline          string     `json:"airline"`
	AirlineLogo      string     `json:"airline_logo"`
	FlightNumber     string     `json:"flight_number"`
	Legroom          string     `json:"legroom"`
	OftenDelayed     bool       `json:"often_delayed_by_over_30_min"`
}

type rawAirport struct {
	Name string `json:"name"`
	ID   string `json:"id"`
	Time string `json:"time"`
}

type rawLayover struct {
	Name      string `json:"name"`
	ID        string `json:"id"`
	Duration  int    `json:"duration"`
	Overnight bool   `json:"overnight"`
}
