package source

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/matzehuels/vischart/pkg/data"
	"github.com/matzehuels/vischart/pkg/errors"
)

// Collection is the part of *mongo.Collection the resolver reads through.
type Collection interface {
	Find(ctx context.Context, filter any, opts ...*options.FindOptions) (*mongo.Cursor, error)
}

// MongoResolver reads datasets from MongoDB collections. A name is either
// "collection", looked up in the default database, or "database.collection".
type MongoResolver struct {
	// Limit caps the number of documents read. Zero reads everything.
	Limit int64

	database   string
	collection func(database, name string) Collection
	disconnect func(context.Context) error
}

// NewMongoResolver creates a resolver over an existing client.
func NewMongoResolver(client *mongo.Client, database string) *MongoResolver {
	return &MongoResolver{
		database: database,
		collection: func(db, name string) Collection {
			return client.Database(db).Collection(name)
		},
		disconnect: client.Disconnect,
	}
}

// ConnectMongo connects to uri and verifies the connection with a ping.
// Close the returned resolver to disconnect.
func ConnectMongo(ctx context.Context, uri, database string) (*MongoResolver, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "connect mongodb")
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "ping mongodb")
	}
	return NewMongoResolver(client, database), nil
}

// Close disconnects the underlying client.
func (r *MongoResolver) Close(ctx context.Context) error {
	if r.disconnect == nil {
		return nil
	}
	return r.disconnect(ctx)
}

// Resolve reads every document of the named collection. A collection without
// documents counts as unknown.
func (r *MongoResolver) Resolve(ctx context.Context, name string) ([]data.Row, error) {
	if err := errors.ValidateDataName(name); err != nil {
		return nil, err
	}
	db, coll := r.split(name)
	if db == "" || coll == "" {
		return nil, notFound(name)
	}

	opts := options.Find().SetProjection(bson.D{{Key: "_id", Value: 0}})
	if r.Limit > 0 {
		opts.SetLimit(r.Limit)
	}
	cur, err := r.collection(db, coll).Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", name, err)
	}
	defer cur.Close(ctx)

	var docs []bson.M
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	if len(docs) == 0 {
		return nil, notFound(name)
	}

	rows := make([]data.Row, len(docs))
	for i, doc := range docs {
		row := make(data.Row, len(doc))
		for k, v := range doc {
			row[k] = bsonValue(v)
		}
		rows[i] = row
	}
	return rows, nil
}

func (r *MongoResolver) split(name string) (string, string) {
	if db, coll, ok := strings.Cut(name, "."); ok {
		return db, coll
	}
	return r.database, name
}

// bsonValue converts driver types into row scalars.
func bsonValue(v any) any {
	switch x := v.(type) {
	case primitive.DateTime:
		return x.Time().UTC().Format(time.RFC3339)
	case primitive.ObjectID:
		return x.Hex()
	case primitive.Decimal128:
		if f, err := strconv.ParseFloat(x.String(), 64); err == nil {
			return f
		}
		return x.String()
	case primitive.Null, primitive.Undefined:
		return nil
	}
	return data.Normalize(v)
}

var _ Resolver = (*MongoResolver)(nil)
