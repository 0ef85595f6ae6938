package mongo

import (
	"context"
	"fmt"
	"math"
	"regexp"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const defaultTimeout = 10 * time.Second

// maxSkip bounds the offset of paged queries.
const maxSkip = math.MaxInt32

const (
	collectionUsers      = "users"
	collectionFranchises = "franchises"
	collectionMenu       = "menu"
	collectionOrders     = "orders"
	collectionCounters   = "counters"
)

// Config captures the minimal settings required to establish a MongoDB connection.
type Config struct {
	URI      string
	Database string
	Timeout  time.Duration
}

// Connect establishes a MongoDB client, verifies connectivity with a ping, and
// returns both the client and the selected database. A default timeout is
// applied when none is provided.
func Connect(ctx context.Context, cfg Config) (*mongo.Client, *mongo.Database, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(connectCtx)
		return nil, nil, fmt.Errorf("mongo ping: %w", err)
	}

	return client, client.Database(cfg.Database), nil
}

// EnsureIndexes creates the indexes every repository relies on. Unique
// indexes back the duplicate email and franchise name checks.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	plan := map[string][]mongo.IndexModel{
		collectionUsers: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "roles.role", Value: 1}, {Key: "roles.object_id", Value: 1}}},
		},
		collectionFranchises: {
			{Keys: bson.D{{Key: "name", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		collectionOrders: {
			{Keys: bson.D{{Key: "diner_id", Value: 1}, {Key: "_id", Value: -1}}},
			{Keys: bson.D{{Key: "store_id", Value: 1}}},
		},
	}

	for coll, indexes := range plan {
		if _, err := db.Collection(coll).Indexes().CreateMany(ctx, indexes); err != nil {
			return fmt.Errorf("create %s indexes: %w", coll, err)
		}
	}
	return nil
}

// reserveIDs advances the named sequence by n and returns the first of the n
// reserved values. Sequences start at 1.
func reserveIDs(ctx context.Context, db *mongo.Database, name string, n int64) (int64, error) {
	var doc struct {
		Seq int64 `bson:"seq"`
	}
	err := db.Collection(collectionCounters).FindOneAndUpdate(ctx,
		bson.M{"_id": name},
		bson.M{"$inc": bson.M{"seq": n}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		return 0, fmt.Errorf("next %s id: %w", name, err)
	}
	return doc.Seq - n + 1, nil
}

func nextID(ctx context.Context, db *mongo.Database, name string) (int64, error) {
	return reserveIDs(ctx, db, name, 1)
}

// namePattern turns a wildcard name filter into a case-insensitive anchored
// regex. An empty filter or a lone "*" matches everything and yields nil.
func namePattern(name string) *bson.M {
	if name == "" || name == "*" {
		return nil
	}
	parts := strings.Split(name, "*")
	for i, p := range parts {
		parts[i] = regexp.QuoteMeta(p)
	}
	return &bson.M{"$regex": "^" + strings.Join(parts, ".*") + "$", "$options": "i"}
}

// pageOptions fetches one row past the page so the caller can tell whether
// more rows follow.
func pageOptions(page, limit int) *options.FindOptions {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	return options.Find().
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetSkip(skipFor(page, limit)).
		SetLimit(int64(limit + 1))
}

// skipFor returns the number of rows before page, clamped to maxSkip so an
// absurd page number yields an empty page rather than an overflowed skip.
func skipFor(page, limit int) int64 {
	if page < 1 || limit < 1 {
		return 0
	}
	p, l := int64(page-1), int64(limit)
	if p > maxSkip/l {
		return maxSkip
	}
	return p * l
}

func trimPage[T any](rows []T, limit int) ([]T, bool) {
	if limit < 1 {
		limit = 10
	}
	if len(rows) > limit {
		return rows[:limit], true
	}
	return rows, false
}
