package planner

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/xbraken/holiday-planner/internal/document"
	"github.com/xbraken/holiday-planner/internal/flights"
	"github.com/xbraken/holiday-planner/internal/shared/itinerary"
	"github.com/xbraken/holiday-planner/internal/store"
)

// FlightSearcher is the one-way search capability the planner needs from the
// flights gateway.
type FlightSearcher interface {
	SearchOneWay(ctx context.Context, from, to, date, currency string) (document.CachedFlightResult, error)
}

// Service implements the planning session over the shared document store.
// All mutations go through path-scoped writes so concurrent editors only
// clobber each other at the level of the node they touch.
type Service struct {
	store    store.Store
	searcher FlightSearcher
}

func NewService(st store.Store, searcher FlightSearcher) *Service {
	return &Service{store: st, searcher: searcher}
}

// State returns the current snapshot plus backend liveness.
func (s *Service) State() State {
	return State{
		Document:  s.store.Snapshot(),
		Connected: s.store.Connected(),
	}
}

// Join registers a user and lazily creates their trip plan. Joining twice is
// a no-op; an existing plan is never reset.
func (s *Service) Join(ctx context.Context, name string) error {
	doc := s.store.Snapshot()

	known := false
	for _, u := range doc.Users {
		if u == name {
			known = true
			break
		}
	}
	if !known {
		users := make([]string, 0, len(doc.Users)+1)
		users = append(users, doc.Users...)
		users = append(users, name)
		if err := s.store.WriteAt(ctx, "users", users); err != nil {
			return err
		}
	}

	if _, ok := doc.TripPlans[name]; !ok {
		return s.store.WriteAt(ctx, "tripPlans/"+name, document.DefaultPlan())
	}
	return nil
}

// ClearAll resets the whole session back to the default document.
func (s *Service) ClearAll(ctx context.Context) error {
	return s.store.WriteAt(ctx, "", document.Default())
}

func (s *Service) UpdateSettings(ctx context.Context, user string, req SettingsRequest) (document.TripPlan, error) {
	plan, err := s.plan(user)
	if err != nil {
		return document.TripPlan{}, err
	}

	if req.Currency != "" {
		if !document.ValidCurrency(req.Currency) {
			return document.TripPlan{}, ErrInvalidCurrency
		}
		plan.Currency = req.Currency
	}
	if req.HomeAirport != "" {
		plan.HomeAirport = strings.ToUpper(strings.TrimSpace(req.HomeAirport))
	}
	if req.HomeAirportName != "" {
		plan.HomeAirportName = req.HomeAirportName
	}

	if err := s.store.WriteAt(ctx, "tripPlans/"+user, plan); err != nil {
		return document.TripPlan{}, err
	}
	return plan, nil
}

// AddLeg appends a destination stay. The order value is one past the highest
// existing order, so deleted positions are never reused and the first leg is
// order 0.
func (s *Service) AddLeg(ctx context.Context, user string, req LegRequest) (string, document.Leg, error) {
	plan, err := s.plan(user)
	if err != nil {
		return "", document.Leg{}, err
	}

	code := strings.ToUpper(strings.TrimSpace(req.Code))
	if code == "" {
		code = flights.ResolveAirportCode(req.City)
	}

	order := 0
	for _, l := range plan.Legs {
		if l.Order >= order {
			order = l.Order + 1
		}
	}

	leg := document.Leg{
		Order: order,
		Destination: document.Destination{
			City:    strings.TrimSpace(req.City),
			Country: strings.TrimSpace(req.Country),
			Code:    code,
		},
		DepartureDate: req.DepartureDate,
		ReturnDate:    req.ReturnDate,
	}

	id := uuid.NewString()
	if err := s.store.WriteAt(ctx, legPath(user, id), leg); err != nil {
		return "", document.Leg{}, err
	}
	return id, leg, nil
}

// UpdateLeg patches a leg. A changed destination code drops both flight
// selections; a changed departure or return date drops the selection it
// dates. The implied routes no longer match, so the picks are void.
func (s *Service) UpdateLeg(ctx context.Context, user, legID string, patch LegPatch) (document.Leg, error) {
	plan, err := s.plan(user)
	if err != nil {
		return document.Leg{}, err
	}
	leg, ok := plan.Legs[legID]
	if !ok {
		return document.Leg{}, ErrLegNotFound
	}

	if patch.City != nil {
		leg.Destination.City = strings.TrimSpace(*patch.City)
	}
	if patch.Country != nil {
		leg.Destination.Country = strings.TrimSpace(*patch.Country)
	}
	if patch.Code != nil {
		code := strings.ToUpper(strings.TrimSpace(*patch.Code))
		if code != leg.Destination.Code {
			leg.Destination.Code = code
			leg.Outbound = nil
			leg.Inbound = nil
		}
	}
	if patch.DepartureDate != nil && *patch.DepartureDate != leg.DepartureDate {
		leg.DepartureDate = *patch.DepartureDate
		leg.Outbound = nil
	}
	if patch.ReturnDate != nil && *patch.ReturnDate != leg.ReturnDate {
		leg.ReturnDate = *patch.ReturnDate
		leg.Inbound = nil
	}

	if err := s.store.WriteAt(ctx, legPath(user, legID), leg); err != nil {
		return document.Leg{}, err
	}
	return leg, nil
}

func (s *Service) RemoveLeg(ctx context.Context, user, legID string) error {
	plan, err := s.plan(user)
	if err != nil {
		return err
	}
	if _, ok := plan.Legs[legID]; !ok {
		return ErrLegNotFound
	}
	return s.store.WriteAt(ctx, legPath(user, legID), nil)
}

// SelectFlight pins a cached option onto a leg. The summary is denormalized
// into the selection so it outlives the cache entry it came from.
func (s *Service) SelectFlight(ctx context.Context, user, legID string, req SelectFlightRequest) (document.FlightSelection, error) {
	if req.Direction != "outbound" && req.Direction != "inbound" {
		return document.FlightSelection{}, ErrBadDirection
	}
	plan, err := s.plan(user)
	if err != nil {
		return document.FlightSelection{}, err
	}
	leg, ok := plan.Legs[legID]
	if !ok {
		return document.FlightSelection{}, ErrLegNotFound
	}

	entry, ok := s.CachedFlights(req.CacheKey)
	if !ok {
		return document.FlightSelection{}, ErrFlightNotFound
	}
	var option *document.FlightOption
	for i := range entry.Flights {
		if entry.Flights[i].ID == req.FlightID {
			option = &entry.Flights[i]
			break
		}
	}
	if option == nil {
		return document.FlightSelection{}, ErrFlightNotFound
	}

	date := leg.DepartureDate
	if req.Direction == "inbound" {
		date = leg.ReturnDate
	}
	selection := document.FlightSelection{
		FlightID:   option.ID,
		CacheKey:   req.CacheKey,
		Date:       date,
		Summary:    flights.BuildSummary(*option),
		SelectedAt: document.NowMillis(),
	}

	if err := s.store.WriteAt(ctx, legPath(user, legID)+"/"+req.Direction, selection); err != nil {
		return document.FlightSelection{}, err
	}
	return selection, nil
}

func (s *Service) ClearFlight(ctx context.Context, user, legID, direction string) error {
	if direction != "outbound" && direction != "inbound" {
		return ErrBadDirection
	}
	plan, err := s.plan(user)
	if err != nil {
		return err
	}
	if _, ok := plan.Legs[legID]; !ok {
		return ErrLegNotFound
	}
	return s.store.WriteAt(ctx, legPath(user, legID)+"/"+direction, nil)
}

// Summary renders one user's itinerary in travel order with the implied
// routing per leg and the running total of selected flight prices.
func (s *Service) Summary(user string) (TripSummary, error) {
	plan, err := s.plan(user)
	if err != nil {
		return TripSummary{}, err
	}

	sorted := itinerary.SortedLegs(plan.Legs)
	views := make([]LegView, 0, len(sorted))
	for i, leg := range sorted {
		views = append(views, LegView{
			ID:                     leg.ID,
			Leg:                    leg.Leg,
			Origin:                 itinerary.OriginFor(sorted, i, plan.HomeAirport),
			OriginName:             itinerary.OriginNameFor(sorted, i, plan.HomeAirportName),
			InboundDestination:     itinerary.InboundDestinationFor(sorted, i, plan.HomeAirport),
			InboundDestinationName: itinerary.InboundDestinationNameFor(sorted, i, plan.HomeAirportName),
		})
	}

	return TripSummary{
		User:            user,
		HomeAirport:     plan.HomeAirport,
		HomeAirportName: plan.HomeAirportName,
		Currency:        plan.Currency,
		Legs:            views,
		Total:           itinerary.TripTotal(sorted),
	}, nil
}

// SearchLeg finds flight options for both directions of one leg. Fresh cache
// entries are reused; the missing directions are searched concurrently and
// written back into the shared cache so every user benefits.
func (s *Service) SearchLeg(ctx context.Context, user, legID string) (SearchResponse, error) {
	plan, err := s.plan(user)
	if err != nil {
		return SearchResponse{}, err
	}
	leg, ok := plan.Legs[legID]
	if !ok {
		return SearchResponse{}, ErrLegNotFound
	}
	if leg.Destination.Code == "" {
		return SearchResponse{}, ErrNoAirportCode
	}

	sorted := itinerary.SortedLegs(plan.Legs)
	idx := 0
	for i, l := range sorted {
		if l.ID == legID {
			idx = i
			break
		}
	}

	var outbound, inbound *DirectionResult
	if leg.DepartureDate != "" {
		outbound = &DirectionResult{
			From: itinerary.OriginFor(sorted, idx, plan.HomeAirport),
			To:   leg.Destination.Code,
			Date: leg.DepartureDate,
		}
	}
	if leg.ReturnDate != "" {
		inbound = &DirectionResult{
			From: leg.Destination.Code,
			To:   itinerary.InboundDestinationFor(sorted, idx, plan.HomeAirport),
			Date: leg.ReturnDate,
		}
	}

	var directions []*DirectionResult
	for _, d := range []*DirectionResult{outbound, inbound} {
		if d != nil {
			directions = append(directions, d)
		}
	}

	errs := make([]error, len(directions))
	var wg sync.WaitGroup
	for i, d := range directions {
		d.CacheKey = flights.BuildCacheKey(d.From, d.To, d.Date)
		if cached, ok := s.CachedFlights(d.CacheKey); ok {
			d.Result = cached
			d.FromCache = true
			continue
		}

		wg.Add(1)
		go func(i int, d *DirectionResult) {
			defer wg.Done()
			result, err := s.searcher.SearchOneWay(ctx, d.From, d.To, d.Date, plan.Currency)
			if err != nil {
				errs[i] = err
				return
			}
			if err := s.CacheFlights(ctx, d.CacheKey, &result); err != nil {
				errs[i] = err
				return
			}
			d.Result = &result
		}(i, d)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return SearchResponse{}, err
		}
	}

	return SearchResponse{Outbound: outbound, Inbound: inbound}, nil
}

func (s *Service) plan(user string) (document.TripPlan, error) {
	doc := s.store.Snapshot()
	plan, ok := doc.TripPlans[user]
	if !ok {
		return document.TripPlan{}, ErrUserNotFound
	}
	return plan, nil
}

// CachedFlights returns a flight cache entry if it is still inside the
// validity window. Stale entries are treated as absent, never deleted.
func (s *Service) CachedFlights(key string) (*document.CachedFlightResult, bool) {
	doc := s.store.Snapshot()
	entry, ok := doc.FlightCache[key]
	if !ok {
		return nil, false
	}
	if document.NowMillis()-entry.SearchedAt > document.CacheMaxAge.Milliseconds() {
		return nil, false
	}
	return &entry, true
}

// CacheFlights stamps searchedAt and shares a search result through the
// document, so any user's search benefits the whole group.
func (s *Service) CacheFlights(ctx context.Context, key string, result *document.CachedFlightResult) error {
	result.SearchedAt = document.NowMillis()
	return s.store.WriteAt(ctx, "flightCache/"+key, result)
}

func legPath(user, legID string) string {
	return "tripPlans/" + user + "/legs/" + legID
}
