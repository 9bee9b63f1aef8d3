package flights

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/xbraken/holiday-planner/internal/config"
	"github.com/xbraken/holiday-planner/internal/document"
)

// edgeTTL bounds how long identical upstream responses are replayed from the
// proxy edge. It is deliberately shorter than the 6h document-level cache.
const edgeTTL = time.Hour

// ErrNoAPIKey distinguishes a misconfigured deployment from a bad request.
var ErrNoAPIKey = errors.New("SERPAPI_KEY environment variable not set")

// Service proxies one-way flight queries to the SerpAPI Google Flights
// engine and normalizes its responses. Successful upstream bodies are cached
// for an hour, in redis when available, otherwise in process memory.
type Service struct {
	apiKey      string
	upstreamURL string
	httpClient  *http.Client
	redis       *redis.Client

	mu  sync.Mutex
	mem map[string]edgeEntry
}

type edgeEntry struct {
	body []byte
	at   time.Time
}

func NewService(cfg config.Config, redisClient *redis.Client) *Service {
	return &Service{
		apiKey:      cfg.SerpAPIKey,
		upstreamURL: cfg.SerpAPIURL,
		httpClient:  &http.Client{},
		redis:       redisClient,
		mem:         map[string]edgeEntry{},
	}
}

// Query is a validated one-way search request.
type Query struct {
	DepartureID  string
	ArrivalID    string
	OutboundDate string
	Currency     string
	Type         string
}

func (q Query) normalized() Query {
	if q.Currency == "" {
		q.Currency = "EUR"
	}
	if q.Type == "" {
		q.Type = "2"
	}
	return q
}

func (q Query) cacheKey() string {
	return "flights:" + q.DepartureID + ":" + q.ArrivalID + ":" + q.OutboundDate + ":" + q.Currency + ":" + q.Type
}

// upstreamError carries a non-2xx provider response through to the caller
// with status and body preserved for diagnostics.
type upstreamError struct {
	Status int
	Body   string
}

func (e *upstreamError) Error() string {
	return fmt.Sprintf("SerpAPI error: %d", e.Status)
}

// Fetch returns the raw upstream response body for a query, replaying the
// edge cache for identical queries inside the TTL. Upstream failures are not
// retried.
func (s *Service) Fetch(ctx context.Context, q Query) ([]byte, error) {
	if s.apiKey == "" {
		return nil, ErrNoAPIKey
	}
	q = q.normalized()

	if body, ok := s.cachedBody(ctx, q.cacheKey()); ok {
		return body, nil
	}

	params := url.Values{}
	params.Set("engine", "google_flights")
	params.Set("departure_id", q.DepartureID)
	params.Set("arrival_id", q.ArrivalID)
	params.Set("outbound_date", q.OutboundDate)
	params.Set("currency", q.Currency)
	params.Set("hl", "en")
	params.Set("gl", "uk")
	params.Set("type", q.Type)
	params.Set("api_key", s.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.upstreamURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &upstreamError{Status: resp.StatusCode, Body: string(body)}
	}

	s.storeBody(ctx, q.cacheKey(), body)
	return body, nil
}

func (s *Service) cachedBody(ctx context.Context, key string) ([]byte, bool) {
	if s.redis != nil {
		raw, err := s.redis.Get(ctx, key).Bytes()
		if err == nil {
			return raw, true
		}
		return nil, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.mem[key]
	if !ok || time.Since(entry.at) > edgeTTL {
		return nil, false
	}
	return entry.body, true
}

func (s *Service) storeBody(ctx context.Context, key string, body []byte) {
	if s.redis != nil {
		_ = s.redis.Set(ctx, key, body, edgeTTL).Err()
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.mem[key] = edgeEntry{body: body, at: time.Now()}
}

// SearchOneWay fetches and normalizes one leg's options. The caller stamps
// searchedAt when it writes the result into the shared cache.
func (s *Service) SearchOneWay(ctx context.Context, from, to, date, currency string) (document.CachedFlightResult, error) {
	body, err := s.Fetch(ctx, Query{
		DepartureID:  from,
		ArrivalID:    to,
		OutboundDate: date,
		Currency:     currency,
	})
	if err != nil {
		return document.CachedFlightResult{}, err
	}
	return Normalize(body)
}
