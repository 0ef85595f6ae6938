package ports

import (
	"context"

	"github.com/jwtpizza/pizza-service/internal/core/domain"
)

// FactoryResponse is the factory's verdict on a submitted order.
type FactoryResponse struct {
	Accepted  bool
	ReportURL string
	JWT       string
}

// FactoryClient forwards orders to the external fulfillment service. An error
// means the factory could not be reached or answered garbage; a rejection is
// reported through FactoryResponse.Accepted.
type FactoryClient interface {
	SubmitOrder(ctx context.Context, diner domain.Identity, order *domain.Order) (*FactoryResponse, error)
}
