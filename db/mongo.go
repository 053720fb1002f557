package db

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"inkwell/config"
	"inkwell/logger"
)

var (
	clientOnce sync.Once
	client     *mongo.Client
	db         *mongo.Database
)

// Init initializes the global Mongo client and database using config values.
func Init(ctx context.Context) error {
	var initErr error
	clientOnce.Do(func() {
		cfg := config.GetConfig()
		uri := cfg.Mongo.URI
		if uri == "" {
			uri = "mongodb://localhost:27017/inkwell"
		}
		dbName := cfg.Mongo.DBName
		if dbName == "" {
			dbName = "inkwell"
		}

		ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()

		cl, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
		if err != nil {
			initErr = err
			return
		}
		// Ping to verify connection
		if err := cl.Ping(ctx, readpref.Primary()); err != nil {
			initErr = err
			return
		}
		client = cl
		db = client.Database(dbName)

		// Ensure indexes for all collections
		if err := ensureIndexes(ctx, db); err != nil {
			initErr = err
			return
		}
		logger.Log.Info("MongoDB connected and indexes ensured")
	})
	return initErr
}

func Client() *mongo.Client     { return client }
func Database() *mongo.Database { return db }

func ensureIndexes(ctx context.Context, d *mongo.Database) error {
	// users: unique email and username, both nested under personal_info
	{
		if _, err := d.Collection("users").Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys:    bson.D{{Key: "personal_info.email", Value: 1}},
			Options: options.Index().SetName("uniq_email").SetUnique(true),
		}); err != nil {
			return err
		}
		if _, err := d.Collection("users").Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys:    bson.D{{Key: "personal_info.username", Value: 1}},
			Options: options.Index().SetName("uniq_username").SetUnique(true),
		}); err != nil {
			return err
		}
	}

	// blogs: unique public id, plus the listing and search orders
	{
		if _, err := d.Collection("blogs").Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys:    bson.D{{Key: "blog_id", Value: 1}},
			Options: options.Index().SetName("uniq_blog_id").SetUnique(true),
		}); err != nil {
			return err
		}
		// latest / search order
		if _, err := d.Collection("blogs").Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys:    bson.D{{Key: "draft", Value: 1}, {Key: "publishedAt", Value: -1}},
			Options: options.Index().SetName("idx_draft_published_at_desc"),
		}); err != nil {
			return err
		}
		// trending order
		if _, err := d.Collection("blogs").Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys:    bson.D{{Key: "draft", Value: 1}, {Key: "activity.total_reads", Value: -1}},
			Options: options.Index().SetName("idx_draft_total_reads_desc"),
		}); err != nil {
			return err
		}
		// tag search
		if _, err := d.Collection("blogs").Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys:    bson.D{{Key: "tags", Value: 1}},
			Options: options.Index().SetName("idx_tags"),
		}); err != nil {
			return err
		}
	}
	return nil
}
