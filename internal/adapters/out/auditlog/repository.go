package auditlog

import (
	"context"
	"time"

	"roboshop/internal/core/domain/model/audit"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const CollectionName = "audit_logs"

// Connect opens a client and checks the server answers.
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	if err = client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	return client, nil
}

type MongoAuditLog struct {
	collection *mongo.Collection
}

func NewMongoAuditLog(db *mongo.Database) *MongoAuditLog {
	return &MongoAuditLog{collection: db.Collection(CollectionName)}
}

// EnsureIndexes creates the indexes behind the admin list filters.
func (l *MongoAuditLog) EnsureIndexes(ctx context.Context) error {
	_, err := l.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "at", Value: -1}}},
		{Keys: bson.D{{Key: "entity", Value: 1}, {Key: "entity_id", Value: 1}, {Key: "at", Value: -1}}},
		{Keys: bson.D{{Key: "actor_id", Value: 1}, {Key: "at", Value: -1}}},
	})
	return err
}

func (l *MongoAuditLog) Write(ctx context.Context, entry audit.Entry) error {
	_, err := l.collection.InsertOne(ctx, fromDomain(entry))
	return err
}

// List returns entries newest first. Page is 1-based.
func (l *MongoAuditLog) List(ctx context.Context, filter audit.Filter) ([]audit.Entry, int64, error) {
	query := bson.M{}
	if filter.Entity != "" {
		query["entity"] = string(filter.Entity)
	}
	if filter.EntityID != "" {
		query["entity_id"] = filter.EntityID
	}
	if filter.ActorID != nil {
		query["actor_id"] = filter.ActorID.String()
	}

	total, err := l.collection.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, err
	}

	page, size := filter.Page, filter.PageSize
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = 20
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "at", Value: -1}, {Key: "_id", Value: 1}}).
		SetSkip(int64((page - 1) * size)).
		SetLimit(int64(size))

	cursor, err := l.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var docs []entryDocument
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, 0, err
	}

	entries := make([]audit.Entry, 0, len(docs))
	for _, doc := range docs {
		e, err := toDomain(doc)
		if err != nil {
			return nil, 0, err
		}
		entries = append(entries, e)
	}
	return entries, total, nil
}
