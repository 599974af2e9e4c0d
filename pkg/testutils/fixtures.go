package testutils

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/fedcompute-project/fedcompute/pkg/config"
	"github.com/fedcompute-project/fedcompute/pkg/credentials"
	"github.com/fedcompute-project/fedcompute/pkg/registry"
)

// TokenServer stands in for the identity provider's token endpoint. The
// returned counter reports how many tokens were actually issued, which is
// how tests observe cache hits versus fresh acquisitions.
func TokenServer(t testing.TB) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	issued := &atomic.Int32{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		issued.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"access_token": "test-token",
			"token_type":   "Bearer",
			"expires_in":   3600,
		})
	}))
	t.Cleanup(server.Close)
	return server, issued
}

// Target builds a TargetConfig wired to test servers.
func Target(tokenURL, baseURL, resource string) config.TargetConfig {
	return config.TargetConfig{
		TokenEndpoint: tokenURL,
		Resource:      resource,
		BaseAddress:   baseURL,
	}
}

// Session builds a ready-to-use registry session backed by a fresh broker
// and the given API server.
func Session(t testing.TB, baseURL string, target config.TargetConfig) *registry.Session {
	t.Helper()
	broker := credentials.NewBroker(config.AuthConfig{
		ClientID:     "test-client-id",
		ClientSecret: "test-client-secret",
	})
	t.Cleanup(broker.Close)
	return registry.NewSession(broker, registry.NewClient(baseURL), "test-subject", target)
}

// Envelope renders records into the registry's doubly-nested result
// envelope.
func Envelope(records ...[]interface{}) string {
	body := map[string]interface{}{
		"outputParameters": map[string]interface{}{
			"Result": [][][]interface{}{records},
		},
	}
	out, err := json.Marshal(body)
	if err != nil {
		panic(err)
	}
	return string(out)
}

// RegistryServer serves canned handlers by endpoint name under /api/ and
// counts calls per endpoint.
type RegistryServer struct {
	Server *httptest.Server
	calls  map[string]*atomic.Int32
}

func NewRegistryServer(t testing.TB, handlers map[string]http.HandlerFunc) *RegistryServer {
	t.Helper()
	rs := &RegistryServer{calls: map[string]*atomic.Int32{}}
	mux := http.NewServeMux()
	for endpoint, handler := range handlers {
		endpoint, handler := endpoint, handler
		counter := &atomic.Int32{}
		rs.calls[endpoint] = counter
		mux.HandleFunc("/api/"+endpoint, func(w http.ResponseWriter, r *http.Request) {
			counter.Add(1)
			handler(w, r)
		})
	}
	rs.Server = httptest.NewServer(mux)
	t.Cleanup(rs.Server.Close)
	return rs
}

func (rs *RegistryServer) Calls(endpoint string) int {
	counter, ok := rs.calls[endpoint]
	if !ok {
		return 0
	}
	return int(counter.Load())
}

// OKEnvelope replies with the given records wrapped in a result envelope.
func OKEnvelope(records ...[]interface{}) http.HandlerFunc {
	body := Envelope(records...)
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}
}
