package fedcompute

import (
	"context"
	"encoding/json"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/pkg/errors"

	"github.com/fedcompute-project/fedcompute/pkg/blobstore"
	"github.com/fedcompute-project/fedcompute/pkg/config"
	"github.com/fedcompute-project/fedcompute/pkg/credentials"
	"github.com/fedcompute-project/fedcompute/pkg/registry"
)

// apiContext wires the configured broker and sessions for one CLI
// invocation. Each command builds it on demand so flags are resolved first.
type apiContext struct {
	cfg    config.Config
	broker *credentials.Broker
}

func newAPIContext() (*apiContext, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	return &apiContext{
		cfg:    cfg,
		broker: credentials.NewBroker(cfg.Auth),
	}, nil
}

func (a *apiContext) close() {
	a.broker.Close()
}

// centralSession targets the central registry's API.
func (a *apiContext) centralSession() *registry.Session {
	client := registry.NewClient(a.cfg.CentralRegistry.BaseAddress)
	return registry.NewSession(a.broker, client, subjectID, a.cfg.CentralRegistry)
}

// localSession targets the participant's own API.
func (a *apiContext) localSession() *registry.Session {
	client := registry.NewClient(a.cfg.Local.BaseAddress)
	return registry.NewSession(a.broker, client, subjectID, a.cfg.Local)
}

func (a *apiContext) stager(ctx context.Context) (*blobstore.Stager, error) {
	awsConfig, err := blobstore.DefaultAWSConfig(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "loading blob storage credentials")
	}
	provider := blobstore.NewClientProvider(blobstore.ClientProviderParams{AWSConfig: awsConfig})
	return blobstore.NewStager(blobstore.StagerParams{
		Provider: provider,
		Bucket:   a.cfg.Storage.Bucket,
		Endpoint: a.cfg.Storage.Endpoint,
		Region:   a.cfg.Storage.Region,
	}), nil
}

func outputList(header table.Row, rows []table.Row, raw interface{}) error {
	if outputFormat == "json" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(raw)
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(header)
	t.AppendRows(rows)
	t.Render()
	return nil
}
