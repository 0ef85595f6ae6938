package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/jwtpizza/pizza-service/internal/core/domain"
	"github.com/jwtpizza/pizza-service/internal/core/ports"
	"github.com/jwtpizza/pizza-service/internal/pkg/metrics"
)

const ordersPerPage = 10

const factoryFailureMessage = "Failed to fulfill order at factory"

type OrderService struct {
	menu    ports.MenuRepository
	orders  ports.OrderRepository
	factory ports.FactoryClient
	log     zerolog.Logger
	now     func() time.Time
}

func NewOrderService(
	menu ports.MenuRepository,
	orders ports.OrderRepository,
	factory ports.FactoryClient,
	log zerolog.Logger,
) *OrderService {
	return &OrderService{
		menu:    menu,
		orders:  orders,
		factory: factory,
		log:     log,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

func (s *OrderService) Menu(ctx context.Context) ([]domain.MenuItem, error) {
	items, err := s.menu.List(ctx)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []domain.MenuItem{}
	}
	return items, nil
}

func (s *OrderService) AddMenuItem(ctx context.Context, item domain.MenuItem) ([]domain.MenuItem, error) {
	if item.Title == "" {
		return nil, domain.Validation("title is required")
	}

	added, err := s.menu.Add(ctx, &item)
	if err != nil {
		return nil, err
	}
	s.log.Info().Int64("menu_id", added.ID).Str("title", added.Title).Msg("menu item added")
	return s.Menu(ctx)
}

func (s *OrderService) Orders(ctx context.Context, diner domain.Identity, page int) (*domain.OrderPage, error) {
	if page < 1 {
		page = 1
	}

	orders, err := s.orders.ListByDiner(ctx, diner.ID, page, ordersPerPage)
	if err != nil {
		return nil, err
	}
	if orders == nil {
		orders = []domain.Order{}
	}
	return &domain.OrderPage{DinerID: diner.ID, Orders: orders, Page: page}, nil
}

// Create stores the order first and only then asks the factory to fulfill it,
// so a rejected order still exists locally.
func (s *OrderService) Create(ctx context.Context, diner domain.Identity, in ports.CreateOrderInput) (*ports.OrderReceipt, error) {
	if err := s.checkMenuItems(ctx, in.Items); err != nil {
		return nil, err
	}

	items := in.Items
	if items == nil {
		items = []domain.OrderItem{}
	}
	order, err := s.orders.Create(ctx, &domain.Order{
		DinerID:     diner.ID,
		FranchiseID: in.FranchiseID,
		StoreID:     in.StoreID,
		Date:        s.now(),
		Items:       items,
	})
	if err != nil {
		return nil, err
	}

	metrics.OrdersCreatedTotal.Inc()
	metrics.PizzasSoldTotal.Add(float64(len(order.Items)))
	metrics.RevenueTotal.Add(order.Total())

	start := time.Now()
	resp, err := s.factory.SubmitOrder(ctx, diner, order)
	metrics.FactoryRequestDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.FactoryRequestsTotal.WithLabelValues("error").Inc()
		s.log.Error().Err(err).Int64("order_id", order.ID).Msg("factory request failed")
		return nil, domain.Upstream(factoryFailureMessage)
	}

	if !resp.Accepted {
		metrics.FactoryRequestsTotal.WithLabelValues("rejected").Inc()
		s.log.Warn().
			Int64("order_id", order.ID).
			Str("report_url", resp.ReportURL).
			Msg("factory rejected order")
		return nil, domain.Upstream(factoryFailureMessage).With("followLinkToEndChaos", resp.ReportURL)
	}

	metrics.FactoryRequestsTotal.WithLabelValues("accepted").Inc()
	s.log.Info().
		Int64("order_id", order.ID).
		Int64("diner_id", diner.ID).
		Int("items", len(order.Items)).
		Msg("order fulfilled")

	return &ports.OrderReceipt{Order: order, ReportURL: resp.ReportURL, JWT: resp.JWT}, nil
}

// checkMenuItems rejects orders that reference menu items that do not exist.
func (s *OrderService) checkMenuItems(ctx context.Context, items []domain.OrderItem) error {
	if len(items) == 0 {
		return nil
	}

	ids := make([]int64, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.MenuID)
	}
	found, err := s.menu.Exists(ctx, ids)
	if err != nil {
		return err
	}
	for _, id := range ids {
		if !found[id] {
			return domain.NotFound("unknown menu item")
		}
	}
	return nil
}
