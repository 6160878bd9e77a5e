// Package rates fetches the reference exchange rate used to value account
// balances in US dollars.
package rates

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sony/gobreaker"

	apperrors "ledger/internal/errors"
	"ledger/internal/logger"
)

// breakerTrips is the number of consecutive failed fetches that opens the circuit.
const breakerTrips = 3

// quote is one entry of the quotes endpoint response.
type quote struct {
	Casa struct {
		Nombre string `json:"nombre"`
		Compra string `json:"compra"`
		Venta  string `json:"venta"`
	} `json:"casa"`
}

// DolarProvider fetches the sell rate of a single exchange house from a
// quotes endpoint. Rates are cached in memory for ttl, and remote calls go
// through a circuit breaker so a failing endpoint is not hammered.
type DolarProvider struct {
	httpClient *http.Client
	url        string
	house      string
	ttl        time.Duration
	breaker    *gobreaker.CircuitBreaker
	now        func() time.Time

	mu        sync.RWMutex
	rate      decimal.Decimal
	fetchedAt time.Time
}

// NewDolarProvider creates a DolarProvider for the named exchange house
// (e.g. "Dolar Bolsa").
func NewDolarProvider(httpClient *http.Client, url, house string, ttl time.Duration) *DolarProvider {
	return &DolarProvider{
		httpClient: httpClient,
		url:        url,
		house:      house,
		ttl:        ttl,
		now:        time.Now,
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:    "dolar-rates",
			Timeout: 30 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= breakerTrips
			},
			OnStateChange: func(name string, from, to gobreaker.State) {
				logger.Get().Warnw("Circuit breaker state changed", "breaker", name, "from", from.String(), "to", to.String())
			},
		}),
	}
}

// Rate returns how many pesos one US dollar sells for. Any failure is
// reported as ErrRateUnavailable wrapping the cause.
func (p *DolarProvider) Rate(ctx context.Context) (decimal.Decimal, error) {
	p.mu.RLock()
	rate, fetchedAt := p.rate, p.fetchedAt
	p.mu.RUnlock()
	if !fetchedAt.IsZero() && p.now().Sub(fetchedAt) < p.ttl {
		return rate, nil
	}

	result, err := p.breaker.Execute(func() (interface{}, error) {
		return p.fetch(ctx)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			logger.Get().Warnw("Rate request rejected by circuit breaker", "house", p.house, "error", err)
		}
		return decimal.Zero, apperrors.Wrap(apperrors.ErrRateUnavailable, err)
	}

	rate = result.(decimal.Decimal)
	p.mu.Lock()
	p.rate = rate
	p.fetchedAt = p.now()
	p.mu.Unlock()

	return rate, nil
}

// fetch requests the quotes and extracts the configured house's sell rate.
func (p *DolarProvider) fetch(ctx context.Context) (decimal.Decimal, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.url, nil)
	if err != nil {
		return decimal.Zero, fmt.Errorf("building rates request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return decimal.Zero, fmt.Errorf("rates http request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return decimal.Zero, fmt.Errorf("rates request: unexpected status %d", resp.StatusCode)
	}

	var quotes []quote
	if err := json.NewDecoder(resp.Body).Decode(&quotes); err != nil {
		return decimal.Zero, fmt.Errorf("decoding rates response: %w", err)
	}

	for _, q := range quotes {
		if q.Casa.Nombre != p.house {
			continue
		}
		rate, err := ParseQuote(q.Casa.Venta)
		if err != nil {
			return decimal.Zero, fmt.Errorf("rate for %s: %w", p.house, err)
		}
		if !rate.IsPositive() {
			return decimal.Zero, fmt.Errorf("invalid rate for %s: %s", p.house, rate)
		}
		return rate, nil
	}

	return decimal.Zero, fmt.Errorf("%s rate not found", p.house)
}

// ParseQuote parses a quote written with a comma decimal separator and
// optional dot thousands separators, such as "1.234,56" or "350,50".
func ParseQuote(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, errors.New("empty quote")
	}
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	}
	rate, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid quote %q: %w", s, err)
	}
	return rate, nil
}
