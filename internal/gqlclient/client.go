// Package gqlclient is the typed client for the pharmacy GraphQL
// backend. Every backend interaction in the application goes through
// one of the named operations defined here; the client owns the bearer
// header, the process-wide response cache and the circuit breaker.
package gqlclient

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"farmapos/internal/apierror"

	"github.com/google/uuid"
	"github.com/machinebox/graphql"
	gocache "github.com/patrickmn/go-cache"
	"github.com/rs/zerolog/log"
)

// TokenSource supplies the persisted access token for the bearer
// header. The token store is the single authority; there is no second
// sourcing path.
type TokenSource interface {
	Load() (string, error)
}

// Client executes the named queries and mutations against the backend.
type Client struct {
	gql        *graphql.Client
	tokens     TokenSource
	cache      *gocache.Cache
	breaker    *Breaker
	httpClient *http.Client
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client (used by tests to
// point at a stub server with no timeout).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithBreaker overrides the default circuit breaker configuration.
func WithBreaker(cfg BreakerConfig) Option {
	return func(c *Client) { c.breaker = NewBreaker(cfg) }
}

// New builds a client for the given endpoint. The HTTP timeout bounds
// every round-trip. There is no retry: failed operations are re-driven
// manually by the operator.
func New(endpoint string, tokens TokenSource, timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		tokens:  tokens,
		cache:   gocache.New(5*time.Minute, 10*time.Minute),
		breaker: NewBreaker(DefaultBreakerConfig()),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{Timeout: timeout}
	}
	c.gql = graphql.NewClient(endpoint, graphql.WithHTTPClient(c.httpClient))
	return c
}

// ClearCache drops the whole response cache. Called on login and logout
// to prevent cross-session data leakage; there is no selective
// invalidation.
func (c *Client) ClearCache() {
	c.cache.Flush()
}

// BreakerState exposes the circuit state for the health display.
func (c *Client) BreakerState() BreakerState {
	return c.breaker.State()
}

// run executes one named operation. GraphQL-level errors mean the
// backend answered, so they do not count against the breaker; only
// transport failures do.
func (c *Client) run(ctx context.Context, op, doc string, vars map[string]interface{}, out interface{}) error {
	req := graphql.NewRequest(doc)
	for k, v := range vars {
		req.Var(k, v)
	}

	token, err := c.tokens.Load()
	if err != nil {
		log.Warn().Err(err).Str("op", op).Msg("no se pudo leer el token persistido")
	}
	if token != "" {
		req.Header.Set("Authorization", "JWT "+token)
	}

	reqID := uuid.NewString()[:8]
	start := time.Now()

	var gqlErr error
	execErr := c.breaker.Execute(func() error {
		runErr := c.gql.Run(ctx, req, out)
		if runErr == nil {
			return nil
		}
		classified := apierror.FromTransport(runErr)
		if classified.Kind == apierror.KindGraphQL {
			gqlErr = classified
			return nil
		}
		return classified
	})

	switch {
	case execErr != nil:
		log.Warn().Str("op", op).Str("req_id", reqID).Dur("elapsed", time.Since(start)).
			Err(execErr).Msg("operacion fallida")
		return apierror.FromTransport(execErr)
	case gqlErr != nil:
		log.Debug().Str("op", op).Str("req_id", reqID).Dur("elapsed", time.Since(start)).
			Err(gqlErr).Msg("error graphql")
		return gqlErr
	}

	log.Debug().Str("op", op).Str("req_id", reqID).Dur("elapsed", time.Since(start)).Msg("ok")
	return nil
}

// query executes a read operation. When cached is true the response is
// served from the process cache if present and stored there on a miss;
// everything else is network-only, matching the original fetch policy.
func (c *Client) query(ctx context.Context, op, doc string, vars map[string]interface{}, out interface{}, cached bool) error {
	if cached {
		if raw, ok := c.cache.Get(op); ok {
			if err := json.Unmarshal(raw.([]byte), out); err == nil {
				return nil
			}
			c.cache.Delete(op)
		}
	}
	if err := c.run(ctx, op, doc, vars, out); err != nil {
		return err
	}
	if cached {
		if raw, err := json.Marshal(out); err == nil {
			c.cache.Set(op, raw, gocache.DefaultExpiration)
		}
	}
	return nil
}
