// Package api talks to the zappy.sh URL-shortening service.
//
// Each call is a single synchronous round trip. Application-level outcomes
// (alias taken, unknown alias, bad key) come back as result variants; only
// transport and decoding failures are returned as errors.
package api

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/teranos/zappy/errors"
	"github.com/teranos/zappy/internal/httpclient"
	"github.com/teranos/zappy/logger"
)

// APIKey is the bearer credential for authenticated endpoints
type APIKey string

// Client calls the zappy.sh REST endpoints under a base URL
type Client struct {
	baseURL string
	http    *httpclient.Client
	logger  *zap.SugaredLogger
}

// NewClient creates a client for the service at baseURL (e.g. https://zappy.sh)
func NewClient(baseURL string, hc *httpclient.Client) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    hc,
		logger:  logger.ComponentLogger("api"),
	}
}

// BaseURL returns the endpoint the client was created with, without trailing slash
func (c *Client) BaseURL() string {
	return c.baseURL
}

// CreateAlias asks the service to map name to targetURL.
// targetURL is passed through unvalidated; the service decides what it accepts.
func (c *Client) CreateAlias(ctx context.Context, name, targetURL string) (AliasCreationResult, error) {
	if name == "" {
		return nil, errors.Wrap(errors.ErrInvalidArgument, "alias name cannot be empty")
	}

	endpoint := c.baseURL + "/alias/create"
	c.logger.Infow("creating alias", logger.FieldOperation, "create_alias", logger.FieldAlias, name, logger.FieldURL, endpoint)
	ctx = logger.WithComponent(ctx, "api")

	var resp createResponse
	body := AliasCreationRequest{Name: name, URL: targetURL}
	if err := c.http.DoJSON(ctx, http.MethodPost, endpoint, nil, body, &resp); err != nil {
		return nil, errors.Wrapf(err, "create alias %s", name)
	}

	return resp.Result, nil
}

// GetRequests fetches the request log of alias, authenticating with key.
// An empty key fails with ErrMissingCredential before anything is sent.
func (c *Client) GetRequests(ctx context.Context, key APIKey, alias string) (RequestLogQueryResult, error) {
	if key == "" {
		return nil, errors.Wrap(errors.ErrMissingCredential, "get requests")
	}
	if alias == "" {
		return nil, errors.Wrap(errors.ErrInvalidArgument, "alias name cannot be empty")
	}

	endpoint := c.baseURL + "/requests/" + url.PathEscape(alias)
	c.logger.Infow("fetching requests", logger.FieldOperation, "get_requests", logger.FieldAlias, alias, logger.FieldURL, endpoint)
	ctx = logger.WithComponent(ctx, "api")

	header := http.Header{}
	header.Set("Authorization", "Bearer "+string(key))

	var resp requestsResponse
	if err := c.http.DoJSON(ctx, http.MethodGet, endpoint, header, nil, &resp); err != nil {
		return nil, errors.Wrapf(err, "get requests for %s", alias)
	}

	if log, ok := resp.Result.(RequestLog); ok {
		c.logger.Infow("fetched requests", logger.FieldAlias, alias, logger.FieldCount, log.Count)
	}
	return resp.Result, nil
}
