package document

import "testing"

func TestDefaultDocument(t *testing.T) {
	doc := Default()
	if doc.Users == nil || len(doc.Users) != 0 {
		t.Fatalf("expected empty users")
	}
	if doc.TripPlans == nil || doc.FlightCache == nil {
		t.Fatalf("expected initialized maps")
	}
	if doc.LastUpdated == 0 {
		t.Fatalf("expected lastUpdated stamp")
	}
}

func TestDefaultPlan(t *testing.T) {
	plan := DefaultPlan()
	if plan.HomeAirport != "DUB" || plan.HomeAirportName != "Dublin" {
		t.Fatalf("unexpected home airport: %+v", plan)
	}
	if plan.Currency != "EUR" {
		t.Fatalf("unexpected currency: %s", plan.Currency)
	}
	if plan.Legs == nil {
		t.Fatalf("expected initialized legs map")
	}
}

func TestValidCurrency(t *testing.T) {
	for _, code := range []string{"EUR", "GBP", "USD"} {
		if !ValidCurrency(code) {
			t.Fatalf("expected %s valid", code)
		}
	}
	if ValidCurrency("JPY") {
		t.Fatalf("expected JPY rejected")
	}
}
