package source

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/matzehuels/treepage/pkg/cache"
	errs "github.com/matzehuels/treepage/pkg/errors"
	"github.com/matzehuels/treepage/pkg/hierarchy"
)

// defaultMongoDatabase is used when the namespace has no "db." prefix.
const defaultMongoDatabase = "treepage"

// MongoSource stores one document per record in a collection. Documents
// carry a seq field that fixes insertion order.
type MongoSource struct {
	client *mongo.Client
	coll   *mongo.Collection
}

type mongoDoc struct {
	ID     string             `bson:"_id"`
	Parent string             `bson:"parent"`
	Title  string             `bson:"title"`
	Meta   hierarchy.Metadata `bson:"meta"`
	Seq    int64              `bson:"seq"`
}

func (d mongoDoc) record() (*hierarchy.Record, error) {
	return row{ID: d.ID, Parent: d.Parent, Title: d.Title, Meta: d.Meta}.record()
}

// NewMongoSource connects to the MongoDB server at uri. The namespace is
// either "collection" or "database.collection".
func NewMongoSource(ctx context.Context, uri, namespace string) (*MongoSource, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidInput, err, "connect %s", uri)
	}
	err = cache.RetryWithBackoff(ctx, func() error {
		if err := client.Ping(ctx, nil); err != nil {
			return cache.Retryable(errs.Wrap(errs.ErrCodeNetwork, err, "ping mongo"))
		}
		return nil
	})
	if err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	db, name := defaultMongoDatabase, namespace
	if before, after, ok := strings.Cut(namespace, "."); ok && before != "" && after != "" {
		db, name = before, after
	}
	coll := client.Database(db).Collection(name)
	_, err = coll.Indexes().CreateOne(ctx, mongo.IndexModel{Keys: bson.D{{Key: "seq", Value: 1}}})
	if err != nil {
		_ = client.Disconnect(context.Background())
		return nil, errs.Wrap(errs.ErrCodeSource, err, "create seq index")
	}
	return &MongoSource{client: client, coll: coll}, nil
}

// Load returns every record ordered by seq.
func (s *MongoSource) Load(ctx context.Context) ([]*hierarchy.Record, error) {
	cur, err := s.coll.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "seq", Value: 1}}))
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeSource, err, "find")
	}
	defer cur.Close(ctx)

	var out []*hierarchy.Record
	for cur.Next(ctx) {
		var d mongoDoc
		if err := cur.Decode(&d); err != nil {
			return nil, errs.Wrap(errs.ErrCodeCorruption, err, "decode record")
		}
		r, err := d.record()
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	if err := cur.Err(); err != nil {
		return nil, errs.Wrap(errs.ErrCodeSource, err, "read cursor")
	}
	return out, nil
}

// Save upserts records. New documents get the next seq value.
func (s *MongoSource) Save(ctx context.Context, recs ...*hierarchy.Record) error {
	if err := checkSave(recs); err != nil {
		return err
	}
	next, err := s.lastSeq(ctx)
	if err != nil {
		return err
	}

	for _, r := range recs {
		update := bson.M{
			"$set": bson.M{
				"parent": r.ParentID(),
				"title":  r.Title,
				"meta":   r.Meta,
			},
			"$setOnInsert": bson.M{"seq": next + 1},
		}
		res, err := s.coll.UpdateOne(ctx, bson.M{"_id": r.ID()}, update, options.Update().SetUpsert(true))
		if err != nil {
			return errs.Wrap(errs.ErrCodeSource, err, "upsert %s", r.ID())
		}
		if res.UpsertedCount > 0 {
			next++
		}
	}
	return nil
}

func (s *MongoSource) lastSeq(ctx context.Context) (int64, error) {
	var d mongoDoc
	err := s.coll.FindOne(ctx, bson.D{}, options.FindOne().SetSort(bson.D{{Key: "seq", Value: -1}})).Decode(&d)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return 0, nil
	}
	if err != nil {
		return 0, errs.Wrap(errs.ErrCodeSource, err, "read last seq")
	}
	return d.Seq, nil
}

// Drop removes the collection. Tests use it to clean up.
func (s *MongoSource) Drop(ctx context.Context) error {
	return s.coll.Drop(ctx)
}

// Close disconnects the client.
func (s *MongoSource) Close() error {
	return s.client.Disconnect(context.Background())
}

var _ Source = (*MongoSource)(nil)
