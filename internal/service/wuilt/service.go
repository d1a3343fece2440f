package wuilt

import (
	"context"
	"fmt"
	"strings"
)

// TransportError reports a non-2xx HTTP status from the GraphQL endpoint.
type TransportError struct {
	Status int
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("wuilt graphql http status %d", e.Status)
}

// UpstreamError reports a GraphQL-level errors array in an otherwise
// successful HTTP response.
type UpstreamError struct {
	Messages []string
}

func (e *UpstreamError) Error() string {
	return "wuilt graphql error: " + strings.Join(e.Messages, ", ")
}

// Order is a Wuilt order node. Sourced per-request, never persisted.
type Order struct {
	ID          string      `json:"id"`
	CreatedAt   string      `json:"createdAt"`
	OrderSerial int         `json:"orderSerial"`
	Customer    Customer    `json:"customer"`
	Items       []OrderItem `json:"items"`
}

// Customer identifies the purchaser on an order.
type Customer struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// OrderItem is a single line item on an order.
type OrderItem struct {
	Title           string          `json:"title"`
	ProductSnapshot ProductSnapshot `json:"productSnapshot"`
}

// ProductSnapshot is the product state captured at purchase time.
type ProductSnapshot struct {
	Handle string `json:"handle"`
	Title  string `json:"title"`
	Type   string `json:"type"`
}

// Service defines the upstream order operations the handlers depend on.
type Service interface {
	ListOrders(ctx context.Context) ([]Order, error)
}
