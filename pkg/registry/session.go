package registry

import (
	"context"

	"github.com/fedcompute-project/fedcompute/pkg/config"
	"github.com/fedcompute-project/fedcompute/pkg/credentials"
	"github.com/fedcompute-project/fedcompute/pkg/fcerrors"
)

// Session binds one caller's identity to one API target. Every invoke
// acquires (or reuses) the subject's token for the target resource, and a
// 401 from the target evicts every cached token for that resource before
// the error is surfaced — a stale token is never silently reused.
type Session struct {
	Broker    *credentials.Broker
	Client    *Client
	SubjectID string
	Target    config.TargetConfig
}

func NewSession(broker *credentials.Broker, client *Client, subjectID string, target config.TargetConfig) *Session {
	return &Session{
		Broker:    broker,
		Client:    client,
		SubjectID: subjectID,
		Target:    target,
	}
}

func (s *Session) Invoke(ctx context.Context, endpoint string, reqData interface{}) (*TabularResult, error) {
	token, err := s.Broker.Acquire(ctx, s.SubjectID, s.Target)
	if err != nil {
		return nil, err
	}

	result, err := s.Client.Invoke(ctx, endpoint, reqData, token.AccessToken)
	if fcerrors.IsAuthorizationRequired(err) {
		s.Broker.EvictResource(s.Target.Resource)
	}
	return result, err
}
