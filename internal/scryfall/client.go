package scryfall

import (
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

const (
	// DefaultBaseURL is the production Scryfall API endpoint.
	DefaultBaseURL = "https://api.scryfall.com"

	userAgent      = "mtgproxy/0.1 (+https://github.com/chrisi5700/mtgproxy)"
	requestTimeout = 15 * time.Second
)

// Client is a Scryfall API client. The rate limiter is injected and
// shared with every other component that talks to Scryfall, so the
// 10 req/s budget applies process-wide.
type Client struct {
	baseURL     string
	httpClient  *http.Client
	rateLimiter *rate.Limiter
}

// NewClient creates a Scryfall client using the shared rate limiter.
func NewClient(limiter *rate.Limiter) *Client {
	return &Client{
		baseURL: DefaultBaseURL,
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
		rateLimiter: limiter,
	}
}

// NewClientWithBaseURL creates a client against a non-default endpoint.
// Used by tests to point at a local server.
func NewClientWithBaseURL(limiter *rate.Limiter, baseURL string) *Client {
	c := NewClient(limiter)
	c.baseURL = baseURL
	return c
}

// NewLimiter returns a rate limiter allowing perSec requests per second
// with no burst beyond a single request.
func NewLimiter(perSec float64) *rate.Limiter {
	return rate.NewLimiter(rate.Limit(perSec), 1)
}

// CardImageURL returns the generic "render this card as an image"
// redirect URL for a card ID at the given quality tier. Last-resort
// image source when a card record exposes no usable image URIs.
func (c *Client) CardImageURL(cardID, tier string) string {
	return c.baseURL + "/cards/" + cardID + "?format=image&version=" + tier
}
