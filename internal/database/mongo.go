package database

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/x/mongo/driver/connstring"
)

const defaultMongoDatabase = "restaurant_stats"

// MongoDriver stores each relation as a collection of flat documents keyed by
// column name. The database is taken from the DSN path.
type MongoDriver struct {
	client   *mongo.Client
	database string
}

func (md *MongoDriver) Connect(dsn string) error {
	cs, err := connstring.ParseAndValidate(dsn)
	if err != nil {
		return err
	}
	client, err := mongo.Connect(context.Background(), options.Client().ApplyURI(dsn))
	if err != nil {
		return err
	}
	if err := client.Ping(context.Background(), nil); err != nil {
		_ = client.Disconnect(context.Background())
		return err
	}
	md.client = client
	md.database = cs.Database
	if md.database == "" {
		md.database = defaultMongoDatabase
	}
	return nil
}

func (md *MongoDriver) Close() error {
	if md.client == nil {
		return nil
	}
	return md.client.Disconnect(context.Background())
}

func (md *MongoDriver) collection(name string) *mongo.Collection {
	return md.client.Database(md.database).Collection(name)
}

// ReplaceRelation drops and refills the collection. Collection drops cannot
// run inside a multi-document transaction, so the replace is not atomic here.
func (md *MongoDriver) ReplaceRelation(ctx context.Context, rel Relation, rows []Tuple) error {
	if err := checkArity(rel, rows); err != nil {
		return err
	}
	coll := md.collection(rel.Name)
	if err := coll.Drop(ctx); err != nil {
		return fmt.Errorf("drop %s: %w", rel.Name, err)
	}
	if len(rows) == 0 {
		return nil
	}

	docs := make([]interface{}, len(rows))
	for i, row := range rows {
		doc := make(bson.D, len(rel.Columns))
		for j, c := range rel.Columns {
			doc[j] = bson.E{Key: c.Name, Value: row[j]}
		}
		docs[i] = doc
	}
	if _, err := coll.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("insert %s: %w", rel.Name, err)
	}
	return nil
}

func (md *MongoDriver) ReadRelation(ctx context.Context, rel Relation) ([]Tuple, error) {
	cursor, err := md.collection(rel.Name).Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", rel.Name, err)
	}
	defer cursor.Close(ctx)

	var out []Tuple
	for cursor.Next(ctx) {
		var doc bson.M
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode %s: %w", rel.Name, err)
		}
		values := make(Tuple, len(rel.Columns))
		for i, c := range rel.Columns {
			values[i] = doc[c.Name]
		}
		out = append(out, values)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s: %w", rel.Name, err)
	}
	return out, nil
}

func (md *MongoDriver) DropRelations(ctx context.Context, names ...string) error {
	for _, name := range names {
		if err := md.collection(name).Drop(ctx); err != nil {
			return fmt.Errorf("drop %s: %w", name, err)
		}
	}
	return nil
}
