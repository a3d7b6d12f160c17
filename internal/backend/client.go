package backend

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/oshokin/asset-sync/internal/logger"
)

// Record is one backend record. The synchronizer treats its shape as opaque;
// only the mapping policy decides which keys matter.
type Record map[string]any

// String returns the value stored under key if it is a string, or "" otherwise.
func (r Record) String(key string) string {
	value, _ := r[key].(string)
	return value
}

// Fetcher retrieves the ordered record sequence for a query.
type Fetcher interface {
	Fetch(ctx context.Context, query string) ([]Record, error)
}

// Connection parameter keys understood by the default client.
// The bag itself comes from configuration and is otherwise opaque.
const (
	// EndpointParameter holds the URL of the backend query endpoint.
	EndpointParameter = "endpoint"
	// TokenParameter optionally holds a bearer token sent with every query.
	TokenParameter = "token"

	// queryParameter is the URL parameter carrying the query string.
	queryParameter = "query"
)

var (
	errEndpointRequired = errors.New("backend endpoint must be provided")
	errBadHTTPStatus    = errors.New("unexpected http status")
)

// Client is the default Fetcher implementation speaking JSON over HTTP.
type Client struct {
	// endpoint is the parsed backend query URL.
	endpoint *url.URL
	// token is the optional bearer token for the backend.
	token string
	// httpClient issues the query requests.
	httpClient *http.Client
}

// NewClient constructs a backend client from the opaque connection parameters.
// A missing or malformed endpoint is a configuration error and is returned
// to the caller instead of being retried.
func NewClient(params map[string]string, timeout time.Duration) (*Client, error) {
	rawEndpoint := params[EndpointParameter]
	if rawEndpoint == "" {
		return nil, errEndpointRequired
	}

	endpoint, err := url.ParseRequestURI(rawEndpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid backend endpoint: %w", err)
	}

	return &Client{
		endpoint:   endpoint,
		token:      params[TokenParameter],
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

// Fetch issues the query and returns the records in backend order.
func (c *Client) Fetch(ctx context.Context, query string) ([]Record, error) {
	logger.DebugKV(ctx, "Querying content backend", "endpoint", c.endpoint.String(), "query", query)

	queryURL := *c.endpoint
	values := queryURL.Query()
	values.Set(queryParameter, query)
	queryURL.RawQuery = values.Encode()

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, queryURL.String(), http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("build backend request: %w", err)
	}

	request.Header.Set("Accept", "application/json")

	if c.token != "" {
		request.Header.Set("Authorization", "Bearer "+c.token)
	}

	response, err := c.httpClient.Do(request)
	if err != nil {
		return nil, fmt.Errorf("query backend: %w", err)
	}

	defer func() {
		_ = response.Body.Close()
	}()

	if response.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s, %s: %w", queryURL.String(), response.Status, errBadHTTPStatus)
	}

	var records []Record
	if err = json.NewDecoder(response.Body).Decode(&records); err != nil {
		return nil, fmt.Errorf("decode backend response: %w", err)
	}

	return records, nil
}
