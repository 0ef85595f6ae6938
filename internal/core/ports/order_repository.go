package ports

import (
	"context"

	"github.com/jwtpizza/pizza-service/internal/core/domain"
)

// MenuRepository persists the pizza menu.
type MenuRepository interface {
	List(ctx context.Context) ([]domain.MenuItem, error)
	Add(ctx context.Context, item *domain.MenuItem) (*domain.MenuItem, error)
	// Exists reports which of the given menu IDs are present.
	Exists(ctx context.Context, ids []int64) (map[int64]bool, error)
}

// OrderRepository persists diner orders.
type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) (*domain.Order, error)
	// ListByDiner returns page (1-based) of the diner's orders, newest first.
	ListByDiner(ctx context.Context, dinerID int64, page, limit int) ([]domain.Order, error)
	// StoreRevenue sums item prices of all orders placed at each store.
	StoreRevenue(ctx context.Context, storeIDs []int64) (map[int64]float64, error)
}
