package blobstore

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog/log"
)

const (
	// a minted download URL stays readable for this long
	DefaultExpiration = 24 * time.Hour

	// the URL's validity starts this far in the past, mitigating clock
	// skew between the issuer and the consumer
	DefaultSkewAllowance = 5 * time.Minute
)

type StagerParams struct {
	Provider      *ClientProvider
	Bucket        string
	Endpoint      string
	Region        string
	Expiration    time.Duration
	SkewAllowance time.Duration
}

// Stager implements phase one of data source ingestion: put the whole file
// into the blob store as a single object, then mint a time-limited
// read-only download URL for the compute node to fetch it with.
type Stager struct {
	provider      *ClientProvider
	bucket        string
	endpoint      string
	region        string
	expiration    time.Duration
	skewAllowance time.Duration
}

func NewStager(params StagerParams) *Stager {
	if params.Expiration == 0 {
		params.Expiration = DefaultExpiration
	}
	if params.SkewAllowance == 0 {
		params.SkewAllowance = DefaultSkewAllowance
	}
	return &Stager{
		provider:      params.Provider,
		bucket:        params.Bucket,
		endpoint:      params.Endpoint,
		region:        params.Region,
		expiration:    params.Expiration,
		skewAllowance: params.SkewAllowance,
	}
}

// Stage uploads the object under key and returns a presigned read-only GET
// URL. The signing time is backdated by the skew allowance so the URL is
// valid immediately even on consumers whose clocks run behind; the window
// is widened by the same amount so the read grant still lasts the full
// expiration from now.
func (s *Stager) Stage(ctx context.Context, key string, body io.Reader) (string, error) {
	client := s.provider.GetClient(s.endpoint, s.region)

	if _, err := client.Uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   body,
	}); err != nil {
		return "", err
	}
	log.Ctx(ctx).Debug().Str("Bucket", s.bucket).Str("Key", key).Msg("staged data source blob")

	request := &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}
	resp, err := client.PresignClient().PresignGetObject(ctx, request,
		s3.WithPresignExpires(s.expiration+s.skewAllowance),
		func(o *s3.PresignOptions) {
			o.Presigner = &backdatedPresigner{
				next: v4.NewSigner(func(so *v4.SignerOptions) {
					so.DisableURIPathEscaping = true
				}),
				skew: s.skewAllowance,
			}
		})
	if err != nil {
		return "", err
	}
	return resp.URL, nil
}

// backdatedPresigner shifts the SigV4 signing time into the past. SigV4
// validity runs [signingTime, signingTime+expires], so this is how a
// "starts five minutes ago" grant is expressed.
type backdatedPresigner struct {
	next s3.HTTPPresignerV4
	skew time.Duration
}

func (p *backdatedPresigner) PresignHTTP(
	ctx context.Context, credentials aws.Credentials, r *http.Request,
	payloadHash string, service string, region string, signingTime time.Time,
	optFns ...func(*v4.SignerOptions),
) (string, http.Header, error) {
	return p.next.PresignHTTP(ctx, credentials, r, payloadHash, service, region,
		signingTime.Add(-p.skew), optFns...)
}
