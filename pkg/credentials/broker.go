package credentials

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/fedcompute-project/fedcompute/pkg/cache"
	"github.com/fedcompute-project/fedcompute/pkg/config"
	"github.com/fedcompute-project/fedcompute/pkg/fcerrors"
)

const (
	// tokens are considered expired slightly early so a cached token is
	// never handed out with only seconds of life left in it
	expiryLeeway = time.Minute

	cacheKeySeparator = "|"
)

// Broker acquires bearer tokens for (subject, target resource) pairs using
// the client-credential grant, caching one token per pair. The cache must
// be evicted by resource whenever a downstream call reports an
// authorization failure: a resource may have accumulated several entries
// across renewals and none of them may be reused silently.
type Broker struct {
	auth       config.AuthConfig
	cache      cache.Cache[*oauth2.Token]
	httpClient *http.Client
}

type Option func(b *Broker)

// WithHTTPClient overrides the transport used for token endpoint calls.
func WithHTTPClient(c *http.Client) Option {
	return func(b *Broker) {
		b.httpClient = c
	}
}

// WithCache overrides the backing token cache.
func WithCache(c cache.Cache[*oauth2.Token]) Option {
	return func(b *Broker) {
		b.cache = c
	}
}

func NewBroker(auth config.AuthConfig, options ...Option) *Broker {
	b := &Broker{
		auth:  auth,
		cache: cache.NewBasicCache[*oauth2.Token](),
	}
	for _, opt := range options {
		opt(b)
	}
	return b
}

// Acquire returns a bearer token scoped to the target resource, reusing a
// cached one when it is still live. Failures surface as
// AuthorizationRequired so callers can prompt for re-authentication.
func (b *Broker) Acquire(ctx context.Context, subjectID string, target config.TargetConfig) (*oauth2.Token, error) {
	key := cacheKey(subjectID, target.Resource)
	if token, ok := b.cache.Get(key); ok && token.Valid() {
		return token, nil
	}

	cc := clientcredentials.Config{
		ClientID:     b.auth.ClientID,
		ClientSecret: b.auth.ClientSecret,
		TokenURL:     target.TokenEndpoint,
		AuthStyle:    oauth2.AuthStyleInParams,
		EndpointParams: url.Values{
			"resource": {target.Resource},
		},
	}

	if b.httpClient != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, b.httpClient)
	}

	token, err := cc.TokenSource(ctx).Token()
	if err != nil {
		log.Ctx(ctx).Debug().Err(err).
			Str("Resource", target.Resource).
			Msg("token acquisition failed")
		return nil, fcerrors.NewAuthorizationRequired("", err)
	}

	expiresAt := int64(0)
	if !token.Expiry.IsZero() {
		expiresAt = token.Expiry.Add(-expiryLeeway).Unix()
	}
	b.cache.Set(key, token, expiresAt)

	return token, nil
}

// EvictResource drops every cached token for the given resource, across all
// subjects. Keyed by resource rather than by entry: stale tokens from
// earlier renewals must all go at once.
func (b *Broker) EvictResource(resource string) {
	suffix := cacheKeySeparator + resource
	b.cache.DeleteMatching(func(key string) bool {
		return strings.HasSuffix(key, suffix)
	})
}

func (b *Broker) Close() {
	b.cache.Close()
}

func cacheKey(subjectID, resource string) string {
	return subjectID + cacheKeySeparator + resource
}
