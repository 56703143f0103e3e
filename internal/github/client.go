package github

import (
	"context"

	"github.com/google/go-github/v57/github"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
)

// Client wraps the GitHub REST API behind typed operations. Every method is
// a single request/response unit: one remote action, one typed result or a
// classified error. Composition, retries and rate limiting belong to the
// caller.
type Client struct {
	api    *github.Client
	logger *zap.Logger
}

// NewClient creates a new GitHub client authenticated with the given token.
func NewClient(accessToken string, logger *zap.Logger) *Client {
	ctx := context.Background()
	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: accessToken},
	)
	tc := oauth2.NewClient(ctx, ts)

	return &Client{
		api:    github.NewClient(tc),
		logger: logger,
	}
}

// NewClientWithAPI creates a client around an existing API client (for testing).
func NewClientWithAPI(api *github.Client, logger *zap.Logger) *Client {
	return &Client{
		api:    api,
		logger: logger,
	}
}
