package gateway

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"
)

const instrumentationName = "gestao-cli/internal/gateway"

const RequestIDHeader = "X-Request-Id"

type Config struct {
	BaseURL    string
	Timeout    time.Duration
	RetryCount int
	// RateLimit is the steady request rate per second; zero disables throttling.
	RateLimit float64
	Burst     int
	UserAgent string
}

// Client talks to the remote admin API. One Client is shared by every Resource.
type Client struct {
	http    *resty.Client
	limiter *rate.Limiter
	log     zerolog.Logger

	tracer   trace.Tracer
	requests metric.Int64Counter
	latency  metric.Float64Histogram
}

func New(cfg Config, logger *zerolog.Logger) (*Client, error) {
	base := strings.TrimSpace(cfg.BaseURL)
	if base == "" {
		return nil, errors.New("gateway: base url obrigatória")
	}
	u, err := url.Parse(base)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("gateway: base url inválida: %q", base)
	}

	c := &Client{
		http:   resty.New(),
		log:    zerolog.Nop(),
		tracer: otel.Tracer(instrumentationName),
	}
	if logger != nil {
		c.log = logger.With().Str("component", "gateway").Logger()
	}

	meter := otel.Meter(instrumentationName)
	c.requests, err = meter.Int64Counter("gateway.requests",
		metric.WithDescription("Requests sent to the admin API"))
	if err != nil {
		return nil, fmt.Errorf("gateway: counter: %w", err)
	}
	c.latency, err = meter.Float64Histogram("gateway.request.duration",
		metric.WithDescription("Admin API request latency"),
		metric.WithUnit("s"))
	if err != nil {
		return nil, fmt.Errorf("gateway: histogram: %w", err)
	}

	if cfg.RateLimit > 0 {
		burst := cfg.Burst
		if burst <= 0 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), burst)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	ua := strings.TrimSpace(cfg.UserAgent)
	if ua == "" {
		ua = "gestao-cli"
	}

	c.http.
		SetHostURL(strings.TrimRight(base, "/")).
		SetTimeout(timeout).
		SetRetryCount(cfg.RetryCount).
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", ua).
		OnBeforeRequest(c.beforeRequest).
		OnAfterResponse(c.afterResponse)

	return c, nil
}

func (c *Client) beforeRequest(_ *resty.Client, r *resty.Request) error {
	r.SetHeader(RequestIDHeader, uuid.NewString())
	otel.GetTextMapPropagator().Inject(r.Context(), propagation.HeaderCarrier(r.Header))
	if c.limiter != nil {
		if err := c.limiter.Wait(r.Context()); err != nil {
			return fmt.Errorf("rate limit: %w", err)
		}
	}
	return nil
}

func (c *Client) afterResponse(_ *resty.Client, resp *resty.Response) error {
	c.log.Debug().
		Str("method", resp.Request.Method).
		Str("url", resp.Request.URL).
		Str("request_id", resp.Request.Header.Get(RequestIDHeader)).
		Int("status", resp.StatusCode()).
		Dur("duration", resp.Time()).
		Msg("gateway_response")
	return nil
}

// errorBody is the error payload of the API. Both {"message": "..."} and
// {"error": {"message": "..."}} are accepted.
type errorBody struct {
	Message string `json:"message"`
	Error   *struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (b *errorBody) text() string {
	if b == nil {
		return ""
	}
	if strings.TrimSpace(b.Message) != "" {
		return strings.TrimSpace(b.Message)
	}
	if b.Error != nil {
		return strings.TrimSpace(b.Error.Message)
	}
	return ""
}

// do executes one request. route is the templated path (e.g. /produtos/{id})
// and doubles as the span name.
func (c *Client) do(ctx context.Context, method, route string, build func(*resty.Request) *resty.Request) (*resty.Response, error) {
	ctx, span := c.tracer.Start(ctx, method+" "+route, trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()
	span.SetAttributes(
		attribute.String("http.request.method", method),
		attribute.String("url.template", route),
	)

	start := time.Now()
	req := c.http.R().SetContext(ctx).SetError(&errorBody{})
	if build != nil {
		req = build(req)
	}
	resp, err := req.Execute(method, route)

	status := 0
	if resp != nil {
		status = resp.StatusCode()
	}
	attrs := metric.WithAttributes(
		attribute.String("http.request.method", method),
		attribute.String("url.template", route),
		attribute.Int("http.response.status_code", status),
	)
	c.requests.Add(ctx, 1, attrs)
	c.latency.Record(ctx, time.Since(start).Seconds(), attrs)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "transport error")
		return resp, fmt.Errorf("%s %s: %w", method, route, err)
	}
	span.SetAttributes(attribute.Int("http.response.status_code", status))
	if resp.IsError() {
		apiErr := &APIError{Method: method, Path: route, Status: status}
		if body, ok := resp.Error().(*errorBody); ok {
			apiErr.Message = body.text()
		}
		span.RecordError(apiErr)
		span.SetStatus(codes.Error, apiErr.Error())
		return resp, apiErr
	}
	return resp, nil
}
