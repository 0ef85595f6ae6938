package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/jwtpizza/pizza-service/internal/core/domain"
	"github.com/jwtpizza/pizza-service/internal/core/ports"
)

// FranchiseRepository stores franchises with their stores embedded.
type FranchiseRepository struct {
	db   *mongo.Database
	coll *mongo.Collection
}

func NewFranchiseRepository(db *mongo.Database) *FranchiseRepository {
	return &FranchiseRepository{db: db, coll: db.Collection(collectionFranchises)}
}

type storeDocument struct {
	ID   int64  `bson:"id"`
	Name string `bson:"name"`
}

type franchiseDocument struct {
	ID        int64           `bson:"_id"`
	Name      string          `bson:"name"`
	Stores    []storeDocument `bson:"stores"`
	CreatedAt time.Time       `bson:"created_at"`
}

func (d *franchiseDocument) toDomain() domain.Franchise {
	stores := make([]domain.Store, 0, len(d.Stores))
	for _, s := range d.Stores {
		stores = append(stores, domain.Store{ID: s.ID, Name: s.Name})
	}
	return domain.Franchise{ID: d.ID, Name: d.Name, Stores: stores}
}

func (r *FranchiseRepository) List(ctx context.Context, filter ports.ListFranchisesFilter) ([]domain.Franchise, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{}
	if p := namePattern(filter.Name); p != nil {
		query["name"] = *p
	}

	cur, err := r.coll.Find(ctx, query, pageOptions(filter.Page, filter.Limit))
	if err != nil {
		return nil, false, fmt.Errorf("list franchises: %w", err)
	}
	var docs []franchiseDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, false, fmt.Errorf("decode franchises: %w", err)
	}

	docs, more := trimPage(docs, filter.Limit)
	return toFranchises(docs), more, nil
}

func (r *FranchiseRepository) FindByID(ctx context.Context, id int64) (*domain.Franchise, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc franchiseDocument
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find franchise: %w", err)
	}
	f := doc.toDomain()
	return &f, nil
}

func (r *FranchiseRepository) FindByIDs(ctx context.Context, ids []int64) ([]domain.Franchise, error) {
	if len(ids) == 0 {
		return []domain.Franchise{}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.coll.Find(ctx,
		bson.M{"_id": bson.M{"$in": ids}},
		options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}),
	)
	if err != nil {
		return nil, fmt.Errorf("find franchises: %w", err)
	}
	var docs []franchiseDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode franchises: %w", err)
	}
	return toFranchises(docs), nil
}

func (r *FranchiseRepository) Create(ctx context.Context, name string) (*domain.Franchise, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id, err := nextID(ctx, r.db, collectionFranchises)
	if err != nil {
		return nil, err
	}

	doc := franchiseDocument{ID: id, Name: name, Stores: []storeDocument{}, CreatedAt: time.Now().UTC()}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrFranchiseExists
		}
		return nil, fmt.Errorf("insert franchise: %w", err)
	}
	f := doc.toDomain()
	return &f, nil
}

func (r *FranchiseRepository) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete franchise: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *FranchiseRepository) CreateStore(ctx context.Context, franchiseID int64, name string) (*domain.Store, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id, err := nextID(ctx, r.db, "stores")
	if err != nil {
		return nil, err
	}

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": franchiseID},
		bson.M{"$push": bson.M{"stores": storeDocument{ID: id, Name: name}}},
	)
	if err != nil {
		return nil, fmt.Errorf("insert store: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrNotFound
	}
	return &domain.Store{ID: id, FranchiseID: franchiseID, Name: name}, nil
}

func (r *FranchiseRepository) DeleteStore(ctx context.Context, franchiseID, storeID int64) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": franchiseID, "stores.id": storeID},
		bson.M{"$pull": bson.M{"stores": bson.M{"id": storeID}}},
	)
	if err != nil {
		return fmt.Errorf("delete store: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func toFranchises(docs []franchiseDocument) []domain.Franchise {
	out := make([]domain.Franchise, 0, len(docs))
	for i := range docs {
		out = append(out, docs[i].toDomain())
	}
	return out
}
