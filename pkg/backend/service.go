package backend

import (
	"context"
	"sync"

	"github.com/pkg/errors"
)

// ServiceAccount keeps a logged-in client for background work and logs in
// again once when the backend rejects the current token.
type ServiceAccount struct {
	base     *Client
	email    string
	password string

	mu    sync.Mutex
	token string
}

func NewServiceAccount(base *Client, email, password string) *ServiceAccount {
	return &ServiceAccount{base: base, email: email, password: password}
}

func (s *ServiceAccount) Configured() bool {
	return s.email != "" && s.password != ""
}

func (s *ServiceAccount) login(ctx context.Context) (*Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	token, err := s.base.Login(ctx, s.email, s.password)
	if err != nil {
		return nil, errors.Wrap(err, "service account login")
	}
	s.token = token
	return s.base.WithToken(token), nil
}

func (s *ServiceAccount) client(ctx context.Context) (*Client, error) {
	s.mu.Lock()
	token := s.token
	s.mu.Unlock()

	if token != "" {
		return s.base.WithToken(token), nil
	}
	return s.login(ctx)
}

// Do runs fn with an authenticated client, retrying once after a fresh login on 401.
func (s *ServiceAccount) Do(ctx context.Context, fn func(*Client) error) error {
	if !s.Configured() {
		return errors.New("service account credentials are not configured")
	}

	c, err := s.client(ctx)
	if err != nil {
		return err
	}

	err = fn(c)
	if err == nil || !IsUnauthorized(err) {
		return err
	}

	c, err = s.login(ctx)
	if err != nil {
		return err
	}
	return fn(c)
}
