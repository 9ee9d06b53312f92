// Package db manages MongoDB connections and collections.
package db

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
)

// Client wraps mongo.Client and exposes collections.
type Client struct {
	// client is the underlying MongoDB connection (safe for concurrent use)
	client *mongo.Client

	// db holds the users, chats, messages, jobs and applications collections
	db *mongo.Database
}

// New connects to MongoDB, verifies the connection and returns a Client bound to
// the named database.
func New(ctx context.Context, mongoURI, database string) (*Client, error) {
	opts := options.Client().
		ApplyURI(mongoURI).
		SetConnectTimeout(10 * time.Second) // fail fast if MongoDB is unreachable

	client, err := mongo.Connect(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	// Connect is lazy; ping is the actual connection test
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	return &Client{
		client: client,
		db:     client.Database(database),
	}, nil
}

// UsersCollection returns the users collection.
func (c *Client) UsersCollection() *mongo.Collection {
	return c.db.Collection("users")
}

// ChatsCollection returns the per-owner chat copies collection.
func (c *Client) ChatsCollection() *mongo.Collection {
	return c.db.Collection("chats")
}

// MessagesCollection returns the messages collection.
func (c *Client) MessagesCollection() *mongo.Collection {
	return c.db.Collection("messages")
}

// JobsCollection returns the job postings collection.
func (c *Client) JobsCollection() *mongo.Collection {
	return c.db.Collection("jobs")
}

// ApplicationsCollection returns the job applications collection.
func (c *Client) ApplicationsCollection() *mongo.Collection {
	return c.db.Collection("applications")
}

// Close disconnects from MongoDB.
func (c *Client) Close(ctx context.Context) error {
	return c.client.Disconnect(ctx)
}

// CreateIndexes creates the indexes every store relies on.
func (c *Client) CreateIndexes(ctx context.Context) error {
	// ===== USERS =====
	// Unique email: prevents duplicate registration, serves GetUserByEmail
	_, err := c.UsersCollection().Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create users index: %w", err)
	}

	// ===== CHATS =====
	// (owner_id, chat_id) unique: at most one copy of a chat per owner, which is
	// what makes concurrent chat creation for the same pair collapse
	chatIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "owner_id", Value: 1}, {Key: "chat_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			// StartChat existence check
			Keys: bson.D{{Key: "owner_id", Value: 1}, {Key: "other_user_id", Value: 1}},
		},
		{
			// chat list ordering
			Keys: bson.D{{Key: "owner_id", Value: 1}, {Key: "timestamp", Value: -1}},
		},
	}
	if _, err := c.ChatsCollection().Indexes().CreateMany(ctx, chatIndexes); err != nil {
		return fmt.Errorf("failed to create chat indexes: %w", err)
	}

	// ===== MESSAGES =====
	_, err = c.MessagesCollection().Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "chat_id", Value: 1}, {Key: "sent_at", Value: -1}},
	})
	if err != nil {
		return fmt.Errorf("failed to create message indexes: %w", err)
	}

	// ===== JOBS =====
	_, err = c.JobsCollection().Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "recruiter_id", Value: 1}, {Key: "created_at", Value: -1}},
	})
	if err != nil {
		return fmt.Errorf("failed to create job indexes: %w", err)
	}

	// ===== APPLICATIONS =====
	appIndexes := []mongo.IndexModel{
		{
			// one application per candidate and job
			Keys:    bson.D{{Key: "job_id", Value: 1}, {Key: "candidate_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "recruiter_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "candidate_id", Value: 1}, {Key: "created_at", Value: -1}}},
	}
	if _, err := c.ApplicationsCollection().Indexes().CreateMany(ctx, appIndexes); err != nil {
		return fmt.Errorf("failed to create application indexes: %w", err)
	}

	return nil
}

// WatchChats follows the chats change stream and calls notify with the owner of
// every chat copy that is inserted, updated or deleted. It blocks until ctx is
// cancelled or the stream fails. Change streams need a replica set.
func (c *Client) WatchChats(ctx context.Context, notify func(ownerID string)) error {
	stream, err := c.ChatsCollection().Watch(ctx, mongo.Pipeline{})
	if err != nil {
		return fmt.Errorf("failed to open chats change stream: %w", err)
	}
	defer stream.Close(context.Background())

	for stream.Next(ctx) {
		var event struct {
			DocumentKey struct {
				ID string `bson:"_id"`
			} `bson:"documentKey"`
		}
		if err := stream.Decode(&event); err != nil {
			log.Printf("chats change stream: decode event: %v", err)
			continue
		}
		if owner, ok := OwnerFromCopyID(event.DocumentKey.ID); ok {
			notify(owner)
		}
	}

	if err := stream.Err(); err != nil && !errors.Is(ctx.Err(), context.Canceled) {
		return fmt.Errorf("chats change stream: %w", err)
	}
	return nil
}

// OwnerFromCopyID extracts the owner id from a chat copy document id.
func OwnerFromCopyID(id string) (string, bool) {
	owner, _, found := strings.Cut(id, "/")
	if !found || owner == "" {
		return "", false
	}
	return owner, true
}
