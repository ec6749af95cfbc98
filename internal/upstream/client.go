// Package upstream forwards lookups to the weather provider and hands back
// its reply untouched.
package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/trace"

	"weatherapi/internal/config"
)

// Kind selects which provider endpoint a lookup is sent to.
type Kind string

const (
	KindCurrent  Kind = "weather"
	KindForecast Kind = "forecast"
)

// Valid reports whether k names a known provider endpoint.
func (k Kind) Valid() bool {
	return k == KindCurrent || k == KindForecast
}

// Units is the fixed unit system requested from the provider.
const Units = "metric"

var (
	ErrUpstreamTransport = errors.New("upstream request failed")
	ErrUpstreamPayload   = errors.New("upstream returned a non-JSON body")
	ErrBaseURLInvalid    = errors.New("upstream base url is invalid")
	ErrUnknownKind       = errors.New("unknown lookup kind")
)

// Response is the provider reply as received. Body is never decoded.
type Response struct {
	Kind        Kind
	City        string
	StatusCode  int
	ContentType string
	Body        json.RawMessage
	Duration    time.Duration
}

// Client fetches weather documents from the provider.
type Client interface {
	// FetchCurrent returns the provider's current-weather document for city.
	FetchCurrent(ctx context.Context, city string) (*Response, error)
	// FetchForecast returns the provider's forecast document for city.
	FetchForecast(ctx context.Context, city string) (*Response, error)
}

// Option configures the client built by New.
type Option func(*httpClient)

// WithHTTPClient sends lookups through hc. Its transport is still wrapped so
// the key is added and the call is traced.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) { c.http = hc }
}

// WithMetrics records per-call Prometheus metrics.
func WithMetrics(m *Metrics) Option {
	return func(c *httpClient) { c.metrics = m }
}

// WithTracerProvider traces outbound calls on tp instead of the global provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(c *httpClient) { c.tracerProvider = tp }
}

type httpClient struct {
	base           *url.URL
	http           *http.Client
	metrics        *Metrics
	tracerProvider trace.TracerProvider
}

// New builds a provider client from cfg. The outbound transport is traced
// with otelhttp; cfg.Timeout() of zero leaves requests unbounded.
//
// The API key is attached below the tracing layer, so client spans only ever
// record the lookup URL without appid.
func New(cfg config.WeatherConfig, opts ...Option) (Client, error) {
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrBaseURLInvalid, cfg.BaseURL)
	}

	c := &httpClient{
		base: base,
		http: &http.Client{Timeout: cfg.Timeout()},
	}
	for _, opt := range opts {
		opt(c)
	}

	hc := *c.http
	next := hc.Transport
	if next == nil {
		next = http.DefaultTransport
	}
	var otelOpts []otelhttp.Option
	if c.tracerProvider != nil {
		otelOpts = append(otelOpts, otelhttp.WithTracerProvider(c.tracerProvider))
	}
	hc.Transport = otelhttp.NewTransport(&apiKeyTransport{next: next, key: cfg.APIKey}, otelOpts...)
	c.http = &hc

	return c, nil
}

func (c *httpClient) FetchCurrent(ctx context.Context, city string) (*Response, error) {
	return c.fetch(ctx, KindCurrent, city)
}

func (c *httpClient) FetchForecast(ctx context.Context, city string) (*Response, error) {
	return c.fetch(ctx, KindForecast, city)
}

// lookupURL embeds city and units as query parameters. city is not
// validated; it is only query-escaped.
func (c *httpClient) lookupURL(kind Kind, city string) string {
	u := *c.base
	u.Path = u.Path + "/" + string(kind)

	q := url.Values{}
	q.Set("q", city)
	q.Set("units", Units)
	u.RawQuery = q.Encode()

	return u.String()
}

// apiKeyTransport adds appid to every outgoing request. An empty key is sent
// as "appid=" and left for the provider to reject.
type apiKeyTransport struct {
	next http.RoundTripper
	key  string
}

func (t *apiKeyTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	r := req.Clone(req.Context())
	q := r.URL.Query()
	q.Set("appid", t.key)
	r.URL.RawQuery = q.Encode()
	return t.next.RoundTrip(r)
}

func (c *httpClient) fetch(ctx context.Context, kind Kind, city string) (*Response, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.lookupURL(kind, city), nil)
	if err != nil {
		return nil, fmt.Errorf("build %s request: %w", kind, err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.metrics.observe(kind, "error", time.Since(start))
		return nil, fmt.Errorf("%w: %s: %w", ErrUpstreamTransport, kind, redact(err))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	duration := time.Since(start)
	if err != nil {
		c.metrics.observe(kind, "error", duration)
		return nil, fmt.Errorf("%w: read %s body: %w", ErrUpstreamTransport, kind, err)
	}
	c.metrics.observe(kind, strconv.Itoa(resp.StatusCode), duration)

	if !json.Valid(body) {
		return nil, fmt.Errorf("%w: %s status %d", ErrUpstreamPayload, kind, resp.StatusCode)
	}

	return &Response{
		Kind:        kind,
		City:        city,
		StatusCode:  resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
		Body:        json.RawMessage(body),
		Duration:    duration,
	}, nil
}

// redact strips request URLs from transport errors. A custom transport may
// report the keyed URL in its own url.Error, so every layer is removed.
func redact(err error) error {
	var ue *url.Error
	for errors.As(err, &ue) {
		err = ue.Err
	}
	return err
}
