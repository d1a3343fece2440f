package wuilt

import "context"

// MockService implements Service for unit tests.
type MockService struct {
	Orders []Order
	Err    error
}

func (m *MockService) ListOrders(_ context.Context) ([]Order, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Orders, nil
}

// Compile-time interface check
var _ Service = (*MockService)(nil)
