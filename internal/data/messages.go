package data

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// MessagesStore provides message database operations.
type MessagesStore struct {
	// coll is the "messages" collection
	coll *mongo.Collection
}

// NewMessagesStore returns a MessagesStore using given collection.
func NewMessagesStore(coll *mongo.Collection) *MessagesStore {
	return &MessagesStore{coll: coll}
}

// SaveMessage inserts a message document and returns the saved record with its id.
func (m *MessagesStore) SaveMessage(ctx context.Context, msg *Message) (*Message, error) {
	result, err := m.coll.InsertOne(ctx, msg)
	if err != nil {
		return nil, fmt.Errorf("%w: insert message: %w", ErrWrite, err)
	}

	msg.ID = result.InsertedID.(bson.ObjectID)
	return msg, nil
}

// GetMessageHistory returns the latest messages of a chat, ordered oldest→newest.
func (m *MessagesStore) GetMessageHistory(ctx context.Context, chatID string, limit int64) ([]*Message, error) {
	// newest first so the limit keeps the most recent window
	opts := options.Find().
		SetSort(bson.D{{Key: "sent_at", Value: -1}}).
		SetLimit(limit)

	cursor, err := m.coll.Find(ctx, bson.M{"chat_id": chatID}, opts)
	if err != nil {
		return nil, fmt.Errorf("%w: find messages: %w", ErrFetch, err)
	}
	defer cursor.Close(ctx)

	var messages []*Message
	if err = cursor.All(ctx, &messages); err != nil {
		return nil, fmt.Errorf("%w: decode messages: %w", ErrFetch, err)
	}

	// client expects chronological order
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}

	return messages, nil
}
