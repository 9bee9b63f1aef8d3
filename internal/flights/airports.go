package flights

import (
	"regexp"
	"strings"
)

type Airport struct {
	Code    string `json:"code"`
	Name    string `json:"name"`
	Country string `json:"country"`
}

type Destination struct {
	City    string `json:"city"`
	Country string `json:"country"`
	Code    string `json:"code"`
}

// HomeAirports are the departure points offered in user settings.
var HomeAirports = []Airport{
	{Code: "DUB", Name: "Dublin", Country: "Ireland"},
	{Code: "LHR", Name: "London Heathrow", Country: "UK"},
	{Code: "STN", Name: "London Stansted", Country: "UK"},
	{Code: "MAN", Name: "Manchester", Country: "UK"},
	{Code: "BHX", Name: "Birmingham", Country: "UK"},
	{Code: "EDI", Name: "Edinburgh", Country: "UK"},
	{Code: "BFS", Name: "Belfast", Country: "UK"},
	{Code: "SNN", Name: "Shannon", Country: "Ireland"},
	{Code: "ORK", Name: "Cork", Country: "Ireland"},
	{Code: "KNO", Name: "Knock", Country: "Ireland"},
}

// Destinations is the curated catalog leg destinations autocomplete from.
// Free-text destinations outside the catalog are allowed with an empty code.
var Destinations = []Destination{
	{City: "Barcelona", Country: "Spain", Code: "BCN"},
	{City: "Madrid", Country: "Spain", Code: "MAD"},
	{City: "Malaga", Country: "Spain", Code: "AGP"},
	{City: "Alicante", Country: "Spain", Code: "ALC"},
	{City: "Palma de Mallorca", Country: "Spain", Code: "PMI"},
	{City: "Ibiza", Country: "Spain", Code: "IBZ"},
	{City: "Tenerife", Country: "Spain", Code: "TFS"},
	{City: "Lanzarote", Country: "Spain", Code: "ACE"},
	{City: "Gran Canaria", Country: "Spain", Code: "LPA"},
	{City: "Fuerteventura", Country: "Spain", Code: "FUE"},
	{City: "Menorca", Country: "Spain", Code: "MAH"},
	{City: "Faro", Country: "Portugal", Code: "FAO"},
	{City: "Lisbon", Country: "Portugal", Code: "LIS"},
	{City: "Porto", Country: "Portugal", Code: "OPO"},
	{City: "Rome", Country: "Italy", Code: "FCO"},
	{City: "Milan", Country: "Italy", Code: "MXP"},
	{City: "Naples", Country: "Italy", Code: "NAP"},
	{City: "Venice", Country: "Italy", Code: "VCE"},
	{City: "Paris", Country: "France", Code: "CDG"},
	{City: "Nice", Country: "France", Code: "NCE"},
	{City: "Amsterdam", Country: "Netherlands", Code: "AMS"},
	{City: "Berlin", Country: "Germany", Code: "BER"},
	{City: "Munich", Country: "Germany", Code: "MUC"},
	{City: "Prague", Country: "Czech Republic", Code: "PRG"},
	{City: "Vienna", Country: "Austria", Code: "VIE"},
	{City: "Budapest", Country: "Hungary", Code: "BUD"},
	{City: "Krakow", Country: "Poland", Code: "KRK"},
	{City: "Warsaw", Country: "Poland", Code: "WAW"},
	{City: "Gdansk", Country: "Poland", Code: "GDN"},
	{City: "Wroclaw", Country: "Poland", Code: "WRO"},
	{City: "Athens", Country: "Greece", Code: "ATH"},
	{City: "Rhodes", Country: "Greece", Code: "RHO"},
	{City: "Corfu", Country: "Greece", Code: "CFU"},
	{City: "Crete", Country: "Greece", Code: "HER"},
	{City: "Santorini", Country: "Greece", Code: "JTR"},
	{City: "Dubrovnik", Country: "Croatia", Code: "DBV"},
	{City: "Split", Country: "Croatia", Code: "SPU"},
	{City: "Zagreb", Country: "Croatia", Code: "ZAG"},
	{City: "Istanbul", Country: "Turkey", Code: "IST"},
	{City: "Antalya", Country: "Turkey", Code: "AYT"},
	{City: "Bodrum", Country: "Turkey", Code: "BJV"},
	{City: "Marrakech", Country: "Morocco", Code: "RAK"},
	{City: "Copenhagen", Country: "Denmark", Code: "CPH"},
	{City: "Stockholm", Country: "Sweden", Code: "ARN"},
	{City: "Oslo", Country: "Norway", Code: "OSL"},
	{City: "Helsinki", Country: "Finland", Code: "HEL"},
	{City: "Reykjavik", Country: "Iceland", Code: "KEF"},
	{City: "Riga", Country: "Latvia", Code: "RIX"},
	{City: "Tallinn", Country: "Estonia", Code: "TLL"},
	{City: "Vilnius", Country: "Lithuania", Code: "VNO"},
	{City: "Malta", Country: "Malta", Code: "MLA"},
	{City: "Larnaca", Country: "Cyprus", Code: "LCA"},
	{City: "Paphos", Country: "Cyprus", Code: "PFO"},
	{City: "Sofia", Country: "Bulgaria", Code: "SOF"},
	{City: "Bucharest", Country: "Romania", Code: "OTP"},
	{City: "Belgrade", Country: "Serbia", Code: "BEG"},
	{City: "Ljubljana", Country: "Slovenia", Code: "LJU"},
	{City: "Bratislava", Country: "Slovakia", Code: "BTS"},
	{City: "Dubai", Country: "UAE", Code: "DXB"},
	{City: "New York", Country: "USA", Code: "JFK"},
	{City: "Miami", Country: "USA", Code: "MIA"},
	{City: "Los Angeles", Country: "USA", Code: "LAX"},
	{City: "Cancun", Country: "Mexico", Code: "CUN"},
	{City: "Bangkok", Country: "Thailand", Code: "BKK"},
	{City: "Bali", Country: "Indonesia", Code: "DPS"},
	{City: "Tokyo", Country: "Japan", Code: "NRT"},
	{City: "London", Country: "UK", Code: "LHR"},
	{City: "Edinburgh", Country: "UK", Code: "EDI"},
}

var iataCode = regexp.MustCompile(`^[A-Za-z]{3}$`)

// ResolveAirportCode maps free text to an airport code: exact city or code
// match first, then partial city match, then a raw 3-letter code. Empty
// string means unresolved, which is a valid custom destination.
func ResolveAirportCode(input string) string {
	trimmed := strings.TrimSpace(input)
	lower := strings.ToLower(trimmed)
	if lower == "" {
		return ""
	}

	for _, d := range Destinations {
		if strings.ToLower(d.City) == lower || strings.ToLower(d.Code) == lower {
			return d.Code
		}
	}
	for _, d := range Destinations {
		city := strings.ToLower(d.City)
		if strings.Contains(city, lower) || strings.Contains(lower, city) {
			return d.Code
		}
	}
	if iataCode.MatchString(trimmed) {
		return strings.ToUpper(trimmed)
	}
	return ""
}
