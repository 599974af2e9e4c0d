package registry

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/fedcompute-project/fedcompute/pkg/fcerrors"
	"github.com/fedcompute-project/fedcompute/pkg/system"
	"github.com/fedcompute-project/fedcompute/pkg/util/closer"
)

const apiPrefix = "/api/"

// Client issues signed calls against a registry's named endpoints. All
// endpoints share the same shape: a JSON body POSTed under the base
// address, answered with the outputParameters/Result envelope.
type Client struct {
	BaseURL        string
	DefaultHeaders map[string]string

	Client *http.Client
}

// NewClient returns a client for the registry at baseURL.
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL:        baseURL,
		DefaultHeaders: map[string]string{},

		Client: &http.Client{
			Timeout: 300 * time.Second,
			Transport: otelhttp.NewTransport(nil,
				otelhttp.WithSpanOptions(
					trace.WithAttributes(
						attribute.String("registry", baseURL),
					),
				),
			),
		},
	}
}

// Invoke posts reqData to the named endpoint and parses the tabular result
// envelope. A 401 surfaces as AuthorizationRequired (the session layer
// evicts cached tokens on seeing it), any other non-success status as
// RemoteFailure with the endpoint and status preserved, and an unparsable
// envelope as MalformedResponse. An empty result set is not an error.
func (c *Client) Invoke(ctx context.Context, endpoint string, reqData interface{}, token string) (*TabularResult, error) {
	ctx, span := system.NewSpan(ctx, system.GetTracer(), "pkg/registry.Client.Invoke")
	defer span.End()

	var body bytes.Buffer
	if err := json.NewEncoder(&body).Encode(reqData); err != nil {
		return nil, fcerrors.NewValidation(fmt.Errorf("registry: error encoding request body: %w", err))
	}

	addr := c.BaseURL + apiPrefix + endpoint
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, addr, &body)
	if err != nil {
		return nil, fcerrors.NewValidation(fmt.Errorf("registry: error creating request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	for header, value := range c.DefaultHeaders {
		req.Header.Set(header, value)
	}
	req.Close = true // don't keep connections lying around

	res, err := c.Client.Do(req) //nolint:bodyclose // closed by DrainAndCloseWithLogOnError
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		return nil, fcerrors.NewRemoteFailureFromError(endpoint, err)
	}
	defer closer.DrainAndCloseWithLogOnError(ctx, "registry response", res.Body)

	if res.StatusCode == http.StatusUnauthorized {
		return nil, fcerrors.NewAuthorizationRequired(endpoint, nil)
	}
	if res.StatusCode < http.StatusOK || res.StatusCode >= http.StatusMultipleChoices {
		log.Ctx(ctx).Warn().
			Str("Endpoint", endpoint).
			Int("StatusCode", res.StatusCode).
			Msg("registry call failed")
		return nil, fcerrors.NewRemoteFailure(endpoint, res.StatusCode)
	}

	result, err := DecodeEnvelope(res.Body)
	if err != nil {
		return nil, fcerrors.NewMalformedResponse(endpoint, err)
	}
	return result, nil
}
