package mongodb

import (
	"context"
	"fmt"
	"log/slog"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

type DB struct {
	client *mongo.Client
	db     *mongo.Database
}

// Connect opens a client for uri and checks the primary is reachable.
func Connect(ctx context.Context, uri, database string) (DB, error) {
	const op = "mongodb.Connect"
	log := slog.With("op", op)

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return DB{}, fmt.Errorf("%s: %w", op, err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return DB{}, fmt.Errorf("%s: database is unavailable: %w", op, err)
	}

	log.Info("database is available", "database", database)
	return DB{client: client, db: client.Database(database)}, nil
}

func (d DB) Database() *mongo.Database {
	return d.db
}

func (d DB) Ping(ctx context.Context) error {
	return d.client.Ping(ctx, readpref.Primary())
}

func (d DB) Close(ctx context.Context) {
	const op = "DB.Close"
	log := slog.With("op", op)

	log.Info("closing database connection...")

	if err := d.client.Disconnect(ctx); err != nil {
		log.Error("failed to disconnect", "err", err)
		return
	}
	log.Info("database connection is closed")
}
