package ports

import (
	"context"

	"github.com/jwtpizza/pizza-service/internal/core/domain"
)

// CreateOrderInput is a diner's order as submitted by the client.
type CreateOrderInput struct {
	FranchiseID int64
	StoreID     int64
	Items       []domain.OrderItem
}

// OrderReceipt is the outcome of an order the factory accepted.
type OrderReceipt struct {
	Order     *domain.Order
	ReportURL string
	JWT       string
}

// OrderService defines menu and ordering use cases.
type OrderService interface {
	Menu(ctx context.Context) ([]domain.MenuItem, error)
	// AddMenuItem stores item and returns the full updated menu.
	AddMenuItem(ctx context.Context, item domain.MenuItem) ([]domain.MenuItem, error)
	Orders(ctx context.Context, diner domain.Identity, page int) (*domain.OrderPage, error)
	// Create persists the order and then forwards it to the factory. A factory
	// rejection yields a 500 StatusError carrying the factory's report URL.
	Create(ctx context.Context, diner domain.Identity, in CreateOrderInput) (*OrderReceipt, error)
}
