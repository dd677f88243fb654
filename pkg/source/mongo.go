package source

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/matzehuels/lineage/pkg/cache"
	"github.com/matzehuels/lineage/pkg/config"
	"github.com/matzehuels/lineage/pkg/errors"
	"github.com/matzehuels/lineage/pkg/family"
)

// memberDoc is a member as stored in the collection. Order keeps the
// directory order, which MongoDB does not preserve on its own.
type memberDoc struct {
	family.Member `bson:",inline"`
	Order         int `bson:"order"`
}

// collection is the subset of *mongo.Collection used by Mongo.
type collection interface {
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) (*mongo.Cursor, error)
	DeleteMany(ctx context.Context, filter interface{}, opts ...*options.DeleteOptions) (*mongo.DeleteResult, error)
	InsertMany(ctx context.Context, documents []interface{}, opts ...*options.InsertManyOptions) (*mongo.InsertManyResult, error)
}

// Mongo reads members from a MongoDB collection, one document per member.
// Transient network failures are retried with backoff.
type Mongo struct {
	client   *mongo.Client
	coll     collection
	location string
}

// NewMongo connects to uri and returns a source for database.collection.
func NewMongo(ctx context.Context, uri, database, coll string) (*Mongo, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "mongo client")
	}
	err = cache.RetryWithBackoff(ctx, func() error {
		return classify(client.Ping(ctx, nil))
	})
	if err != nil {
		_ = client.Disconnect(context.Background())
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "connect to mongo")
	}
	return &Mongo{
		client:   client,
		coll:     client.Database(database).Collection(coll),
		location: database + "/" + coll,
	}, nil
}

func (m *Mongo) Name() string     { return config.SourceMongo }
func (m *Mongo) Location() string { return m.location }

// Members returns the stored members sorted by their directory position.
func (m *Mongo) Members(ctx context.Context) ([]family.Member, error) {
	var docs []memberDoc
	err := cache.RetryWithBackoff(ctx, func() error {
		sort := bson.D{{Key: "order", Value: 1}, {Key: "_id", Value: 1}}
		cur, err := m.coll.Find(ctx, bson.D{}, options.Find().SetSort(sort))
		if err != nil {
			return classify(err)
		}
		defer cur.Close(ctx)

		var batch []memberDoc
		if err := cur.All(ctx, &batch); err != nil {
			return classify(err)
		}
		docs = batch
		return nil
	})
	if err != nil {
		return nil, wrapStoreError(err, "read members from %s", m.location)
	}

	members := make([]family.Member, len(docs))
	for i, d := range docs {
		members[i] = d.Member
	}
	return members, nil
}

// ReplaceAll replaces the stored directory with members, keeping their order.
func (m *Mongo) ReplaceAll(ctx context.Context, members []family.Member) error {
	docs := make([]interface{}, len(members))
	for i, mem := range members {
		docs[i] = memberDoc{Member: mem, Order: i}
	}
	err := cache.RetryWithBackoff(ctx, func() error {
		if _, err := m.coll.DeleteMany(ctx, bson.D{}); err != nil {
			return classify(err)
		}
		if len(docs) == 0 {
			return nil
		}
		_, err := m.coll.InsertMany(ctx, docs)
		return classify(err)
	})
	if err != nil {
		return wrapStoreError(err, "write members to %s", m.location)
	}
	return nil
}

// Close disconnects the client.
func (m *Mongo) Close() error {
	if m.client == nil {
		return nil
	}
	if err := m.client.Disconnect(context.Background()); err != nil {
		return fmt.Errorf("disconnect: %w", err)
	}
	return nil
}

// classify marks network failures and timeouts as retryable.
func classify(err error) error {
	if err == nil {
		return nil
	}
	if mongo.IsNetworkError(err) || mongo.IsTimeout(err) {
		return cache.Retryable(err)
	}
	return err
}

func wrapStoreError(err error, format string, args ...any) error {
	code := errors.ErrCodeInternal
	if cache.IsRetryable(err) {
		code = errors.ErrCodeNetwork
	}
	return errors.Wrap(code, err, format, args...)
}

var (
	_ Source     = (*Mongo)(nil)
	_ collection = (*mongo.Collection)(nil)
)
