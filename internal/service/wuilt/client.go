package wuilt

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

const (
	defaultEndpoint = "https://graphql.wuilt.com"
	defaultPageSize = 50
)

// listOrdersQuery fetches the most recent orders with nested customer and
// line-item/product-snapshot data.
const listOrdersQuery = `
  query ListOrders($storeId: ID!, $connection: OrdersConnectionInput) {
    orders(storeId: $storeId, connection: $connection) {
      nodes {
        id
        createdAt
        orderSerial
        customer { email name }
        items {
          title
          productSnapshot { handle title type }
        }
      }
    }
  }
`

// Client implements Service against the Wuilt GraphQL API.
type Client struct {
	httpClient *http.Client
	endpoint   string
	token      string
	storeID    string
	pageSize   int
}

// Option configures a Client.
type Option func(*Client)

// WithEndpoint sets a custom GraphQL endpoint (useful for testing).
func WithEndpoint(endpoint string) Option {
	return func(c *Client) {
		c.endpoint = endpoint
	}
}

// WithToken sets the Bearer token for authenticated requests.
func WithToken(token string) Option {
	return func(c *Client) {
		c.token = token
	}
}

// WithPageSize sets how many orders ListOrders requests per call.
func WithPageSize(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.pageSize = n
		}
	}
}

// NewClient creates a Wuilt GraphQL client scoped to one store.
func NewClient(httpClient *http.Client, storeID string, opts ...Option) *Client {
	c := &Client{
		httpClient: httpClient,
		endpoint:   defaultEndpoint,
		storeID:    storeID,
		pageSize:   defaultPageSize,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

type graphQLError struct {
	Message string `json:"message"`
}

type graphQLResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []graphQLError  `json:"errors"`
}

// Query posts a GraphQL document and returns the raw data field. A non-2xx
// status yields a *TransportError; a GraphQL errors array yields an
// *UpstreamError with the concatenated messages.
func (c *Client) Query(ctx context.Context, query string, variables map[string]any) (json.RawMessage, error) {
	body, err := json.Marshal(graphQLRequest{Query: query, Variables: variables})
	if err != nil {
		return nil, fmt.Errorf("encoding graphql request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("posting graphql query: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &TransportError{Status: resp.StatusCode}
	}

	var decoded graphQLResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decoding graphql response: %w", err)
	}
	if len(decoded.Errors) > 0 {
		messages := make([]string, len(decoded.Errors))
		for i, e := range decoded.Errors {
			messages[i] = e.Message
		}
		return nil, &UpstreamError{Messages: messages}
	}
	return decoded.Data, nil
}

// ListOrders fetches the newest orders for the configured store.
func (c *Client) ListOrders(ctx context.Context) ([]Order, error) {
	data, err := c.Query(ctx, listOrdersQuery, map[string]any{
		"storeId": c.storeID,
		"connection": map[string]any{
			"first":     c.pageSize,
			"sortBy":    "createdAt",
			"sortOrder": "desc",
		},
	})
	if err != nil {
		return nil, fmt.Errorf("listing orders: %w", err)
	}

	var decoded struct {
		Orders struct {
			Nodes []Order `json:"nodes"`
		} `json:"orders"`
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		return nil, fmt.Errorf("decoding orders: %w", err)
	}
	return decoded.Orders.Nodes, nil
}

// Compile-time interface check
var _ Service = (*Client)(nil)
