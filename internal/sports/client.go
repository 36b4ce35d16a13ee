package sports

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog/log"

	"sportiq/internal/common"
)

// MetricsInterface defines metrics methods needed by the fetcher
type MetricsInterface interface {
	FetchObserve(sport string, seconds float64)
	FetchFailedInc(sport, reason string)
	ItemsSkippedAdd(sport string, n int)
	MatchesFetchedAdd(sport string, n int)
	PayloadShapeInc(shape string)
}

// RequestFailedError reports a non-success HTTP status from the vendor.
type RequestFailedError struct {
	Sport  Sport
	Status int
}

func (e *RequestFailedError) Error() string {
	return fmt.Sprintf("API error %d", e.Status)
}

// FetchResult is the normalized outcome of a single fetch.
type FetchResult struct {
	Sport Sport
	Payload
}

// Fetcher is the contract consumed by the prediction session.
type Fetcher interface {
	Fetch(ctx context.Context, sport Sport) (FetchResult, error)
}

// ClientConfig configures a Client.
type ClientConfig struct {
	APIKey  string
	Vendor  string
	Timeout time.Duration
	// Endpoints replaces the built-in URL for individual sports.
	Endpoints map[string]string
	Metrics   MetricsInterface
}

// Client issues one authenticated GET per fetch. It does not retry.
type Client struct {
	key       string
	header    string
	endpoints map[Sport]Endpoint
	rest      *resty.Client
	metrics   MetricsInterface
}

// NewClient validates the key and vendor and builds the endpoint table,
// applying per-sport URL overrides.
func NewClient(c ClientConfig) (*Client, error) {
	if c.APIKey == "" {
		return nil, errors.New(common.ErrMsgAPIKeyRequired)
	}

	endpoints, err := DefaultEndpoints(c.Vendor)
	if err != nil {
		return nil, err
	}
	for key, url := range c.Endpoints {
		sp, err := ParseSport(key)
		if err != nil {
			return nil, fmt.Errorf("endpoint override: %w", err)
		}
		ep := endpoints[sp]
		ep.URL = url
		endpoints[sp] = ep
	}

	header := common.HeaderAPISportsKey
	if c.Vendor == common.VendorRapidAPI {
		header = common.HeaderRapidAPIKey
	}

	r := resty.New()
	if c.Timeout > 0 {
		r.SetTimeout(c.Timeout)
	} else {
		r.SetTimeout(10 * time.Second)
	}

	return &Client{
		key:       c.APIKey,
		header:    header,
		endpoints: endpoints,
		rest:      r,
		metrics:   c.Metrics,
	}, nil
}

// Endpoint returns the URL the client will hit for a sport.
func (c *Client) Endpoint(sport Sport) (string, bool) {
	ep, ok := c.endpoints[sport]
	return ep.URL, ok
}

// Fetch retrieves and normalizes the live matches for sport. On any error
// the returned result carries no matches.
func (c *Client) Fetch(ctx context.Context, sport Sport) (FetchResult, error) {
	ep, ok := c.endpoints[sport]
	if !ok {
		return FetchResult{Sport: sport}, fmt.Errorf("%w: %q", ErrUnknownSport, sport)
	}

	req := c.rest.R().
		SetContext(ctx).
		SetHeader(c.header, c.key).
		SetHeader("Accept", "application/json")
	if ep.Host != "" {
		req.SetHeader(common.HeaderRapidAPIHost, ep.Host)
	}

	start := time.Now()
	resp, err := req.Get(ep.URL)
	if c.metrics != nil {
		c.metrics.FetchObserve(sport.String(), time.Since(start).Seconds())
	}
	if err != nil {
		c.failed(sport, "transport")
		return FetchResult{Sport: sport}, fmt.Errorf("request failed: %w", err)
	}

	if !resp.IsSuccess() {
		c.failed(sport, "status")
		log.Warn().
			Str("sport", sport.String()).
			Int("status", resp.StatusCode()).
			Msg("sports API returned non-success status")
		return FetchResult{Sport: sport}, &RequestFailedError{Sport: sport, Status: resp.StatusCode()}
	}

	payload, err := DecodePayload(resp.Body())
	if err != nil {
		c.failed(sport, "decode")
		return FetchResult{Sport: sport}, err
	}

	if c.metrics != nil {
		c.metrics.PayloadShapeInc(payload.Shape.String())
		c.metrics.MatchesFetchedAdd(sport.String(), len(payload.Matches))
		if payload.Skipped > 0 {
			c.metrics.ItemsSkippedAdd(sport.String(), payload.Skipped)
		}
	}

	log.Info().
		Str("sport", sport.String()).
		Str("shape", payload.Shape.String()).
		Int("items", payload.Items).
		Int("matches", len(payload.Matches)).
		Int("skipped", payload.Skipped).
		Msg("fetched live matches")

	return FetchResult{Sport: sport, Payload: payload}, nil
}

func (c *Client) failed(sport Sport, reason string) {
	if c.metrics != nil {
		c.metrics.FetchFailedInc(sport.String(), reason)
	}
}
