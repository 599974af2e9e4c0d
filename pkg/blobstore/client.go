package blobstore

import (
	"context"
	"fmt"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// ClientWrapper lazily builds the S3 sub-clients needed for staging: the
// raw client, the upload manager and the presign client.
type ClientWrapper struct {
	S3            *s3.Client
	presignClient *s3.PresignClient
	Uploader      *manager.Uploader
	Endpoint      string
	Region        string
	mu            sync.RWMutex
}

func (c *ClientWrapper) PresignClient() *s3.PresignClient {
	c.mu.RLock()
	if c.presignClient != nil {
		defer c.mu.RUnlock()
		return c.presignClient
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.presignClient != nil {
		return c.presignClient
	}
	c.presignClient = s3.NewPresignClient(c.S3)
	return c.presignClient
}

type ClientProviderParams struct {
	AWSConfig aws.Config
}

// ClientProvider hands out one ClientWrapper per (endpoint, region) pair.
type ClientProvider struct {
	awsConfig aws.Config
	clients   map[string]*ClientWrapper
	clientsMu sync.RWMutex
}

func NewClientProvider(params ClientProviderParams) *ClientProvider {
	return &ClientProvider{
		awsConfig: params.AWSConfig,
		clients:   make(map[string]*ClientWrapper),
	}
}

// DefaultAWSConfig loads credentials and settings from the environment.
func DefaultAWSConfig(ctx context.Context) (aws.Config, error) {
	return awsconfig.LoadDefaultConfig(ctx)
}

func (s *ClientProvider) GetConfig() aws.Config {
	return s.awsConfig
}

func (s *ClientProvider) GetClient(endpoint, region string) *ClientWrapper {
	clientIdentifier := fmt.Sprintf("%s-%s", endpoint, region)
	s.clientsMu.RLock()
	client, ok := s.clients[clientIdentifier]
	s.clientsMu.RUnlock()
	if ok {
		return client
	}

	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()

	client, ok = s.clients[clientIdentifier]
	if ok {
		return client
	}

	s3Config := s.awsConfig.Copy()
	if region != "" {
		s3Config.Region = region
	}
	if endpoint != "" {
		s3Config.EndpointResolverWithOptions =
			aws.EndpointResolverWithOptionsFunc(func(service, resolvedRegion string, options ...any) (aws.Endpoint, error) {
				if region != "" {
					resolvedRegion = region
				}
				return aws.Endpoint{
					PartitionID:       "aws",
					URL:               endpoint,
					SigningRegion:     resolvedRegion,
					HostnameImmutable: true,
				}, nil
			})
	}

	s3Client := s3.NewFromConfig(s3Config)

	client = &ClientWrapper{
		S3:       s3Client,
		Uploader: manager.NewUploader(s3Client),
		Endpoint: endpoint,
		Region:   region,
	}
	s.clients[clientIdentifier] = client
	return client
}
