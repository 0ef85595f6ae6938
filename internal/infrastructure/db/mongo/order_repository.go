package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/jwtpizza/pizza-service/internal/core/domain"
)

type MenuRepository struct {
	db   *mongo.Database
	coll *mongo.Collection
}

func NewMenuRepository(db *mongo.Database) *MenuRepository {
	return &MenuRepository{db: db, coll: db.Collection(collectionMenu)}
}

type menuDocument struct {
	ID          int64   `bson:"_id"`
	Title       string  `bson:"title"`
	Description string  `bson:"description"`
	Image       string  `bson:"image"`
	Price       float64 `bson:"price"`
}

func (r *MenuRepository) List(ctx context.Context) ([]domain.MenuItem, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list menu: %w", err)
	}
	var docs []menuDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode menu: %w", err)
	}

	items := make([]domain.MenuItem, 0, len(docs))
	for _, d := range docs {
		items = append(items, domain.MenuItem(d))
	}
	return items, nil
}

func (r *MenuRepository) Add(ctx context.Context, item *domain.MenuItem) (*domain.MenuItem, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id, err := nextID(ctx, r.db, collectionMenu)
	if err != nil {
		return nil, err
	}

	doc := menuDocument(*item)
	doc.ID = id
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert menu item: %w", err)
	}
	added := domain.MenuItem(doc)
	return &added, nil
}

func (r *MenuRepository) Exists(ctx context.Context, ids []int64) (map[int64]bool, error) {
	found := make(map[int64]bool, len(ids))
	if len(ids) == 0 {
		return found, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.coll.Find(ctx,
		bson.M{"_id": bson.M{"$in": ids}},
		options.Find().SetProjection(bson.M{"_id": 1}),
	)
	if err != nil {
		return nil, fmt.Errorf("check menu items: %w", err)
	}
	var docs []struct {
		ID int64 `bson:"_id"`
	}
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode menu ids: %w", err)
	}
	for _, d := range docs {
		found[d.ID] = true
	}
	return found, nil
}

type OrderRepository struct {
	db   *mongo.Database
	coll *mongo.Collection
}

func NewOrderRepository(db *mongo.Database) *OrderRepository {
	return &OrderRepository{db: db, coll: db.Collection(collectionOrders)}
}

type orderItemDocument struct {
	ID          int64   `bson:"id"`
	MenuID      int64   `bson:"menu_id"`
	Description string  `bson:"description"`
	Price       float64 `bson:"price"`
}

type orderDocument struct {
	ID          int64               `bson:"_id"`
	DinerID     int64               `bson:"diner_id"`
	FranchiseID int64               `bson:"franchise_id"`
	StoreID     int64               `bson:"store_id"`
	Date        time.Time           `bson:"date"`
	Items       []orderItemDocument `bson:"items"`
}

func (d *orderDocument) toDomain() domain.Order {
	items := make([]domain.OrderItem, 0, len(d.Items))
	for _, it := range d.Items {
		items = append(items, domain.OrderItem(it))
	}
	return domain.Order{
		ID:          d.ID,
		DinerID:     d.DinerID,
		FranchiseID: d.FranchiseID,
		StoreID:     d.StoreID,
		Date:        d.Date.UTC(),
		Items:       items,
	}
}

// Create stores order and numbers its items from a sequence shared by all
// orders.
func (r *OrderRepository) Create(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id, err := nextID(ctx, r.db, collectionOrders)
	if err != nil {
		return nil, err
	}

	items := make([]orderItemDocument, len(order.Items))
	if n := int64(len(order.Items)); n > 0 {
		first, err := reserveIDs(ctx, r.db, "order_items", n)
		if err != nil {
			return nil, err
		}
		for i, it := range order.Items {
			items[i] = orderItemDocument{
				ID:          first + int64(i),
				MenuID:      it.MenuID,
				Description: it.Description,
				Price:       it.Price,
			}
		}
	}

	doc := orderDocument{
		ID:          id,
		DinerID:     order.DinerID,
		FranchiseID: order.FranchiseID,
		StoreID:     order.StoreID,
		Date:        order.Date.UTC(),
		Items:       items,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert order: %w", err)
	}
	created := doc.toDomain()
	return &created, nil
}

func (r *OrderRepository) ListByDiner(ctx context.Context, dinerID int64, page, limit int) ([]domain.Order, error) {
	if page < 1 {
		page = 1
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.coll.Find(ctx,
		bson.M{"diner_id": dinerID},
		options.Find().
			SetSort(bson.D{{Key: "_id", Value: -1}}).
			SetSkip(skipFor(page, limit)).
			SetLimit(int64(limit)),
	)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	var docs []orderDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode orders: %w", err)
	}

	orders := make([]domain.Order, 0, len(docs))
	for i := range docs {
		orders = append(orders, docs[i].toDomain())
	}
	return orders, nil
}

func (r *OrderRepository) StoreRevenue(ctx context.Context, storeIDs []int64) (map[int64]float64, error) {
	out := make(map[int64]float64, len(storeIDs))
	if len(storeIDs) == 0 {
		return out, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"store_id": bson.M{"$in": storeIDs}}}},
		{{Key: "$unwind", Value: "$items"}},
		{{Key: "$group", Value: bson.M{
			"_id":   "$store_id",
			"total": bson.M{"$sum": "$items.price"},
		}}},
	}
	cur, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate revenue: %w", err)
	}
	var rows []struct {
		StoreID int64   `bson:"_id"`
		Total   float64 `bson:"total"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("decode revenue: %w", err)
	}
	for _, row := range rows {
		out[row.StoreID] = row.Total
	}
	return out, nil
}
