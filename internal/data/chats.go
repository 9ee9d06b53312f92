package data

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// ChatsStore stores the per-owner chat copies.
type ChatsStore struct {
	// coll is the "chats" collection; one document per (owner, chat) pair
	coll *mongo.Collection
}

// NewChatsStore returns a ChatsStore using the given collection.
func NewChatsStore(coll *mongo.Collection) *ChatsStore {
	return &ChatsStore{coll: coll}
}

// FindByOtherUser returns ownerID's chat with otherUserID, or ErrNotFound.
func (s *ChatsStore) FindByOtherUser(ctx context.Context, ownerID, otherUserID string) (*Chat, error) {
	return s.findOne(ctx, bson.M{"owner_id": ownerID, "other_user_id": otherUserID})
}

// Get returns ownerID's copy of chatID, or ErrNotFound.
func (s *ChatsStore) Get(ctx context.Context, ownerID, chatID string) (*Chat, error) {
	return s.findOne(ctx, bson.M{"_id": ChatCopyID(ownerID, chatID)})
}

func (s *ChatsStore) findOne(ctx context.Context, filter bson.M) (*Chat, error) {
	var c Chat
	if err := s.coll.FindOne(ctx, filter).Decode(&c); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("chat: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("%w: find chat: %w", ErrFetch, err)
	}
	return &c, nil
}

// Insert writes a chat copy. The document id is derived from owner and chat id,
// so a second insert of the same copy fails with ErrDuplicate.
func (s *ChatsStore) Insert(ctx context.Context, c *Chat) error {
	c.ID = ChatCopyID(c.OwnerID, c.ChatID)
	if _, err := s.coll.InsertOne(ctx, c); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("chat %s: %w", c.ID, ErrDuplicate)
		}
		return fmt.Errorf("%w: insert chat: %w", ErrWrite, err)
	}
	return nil
}

// Delete removes ownerID's copy of chatID. Deleting a missing copy is not an error.
func (s *ChatsStore) Delete(ctx context.Context, ownerID, chatID string) error {
	if _, err := s.coll.DeleteOne(ctx, bson.M{"_id": ChatCopyID(ownerID, chatID)}); err != nil {
		return fmt.Errorf("%w: delete chat: %w", ErrWrite, err)
	}
	return nil
}

// ListByOwner returns ownerID's chats, most recent activity first.
func (s *ChatsStore) ListByOwner(ctx context.Context, ownerID string, limit int64) ([]*Chat, error) {
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}

	cursor, err := s.coll.Find(ctx, bson.M{"owner_id": ownerID}, opts)
	if err != nil {
		return nil, fmt.Errorf("%w: list chats: %w", ErrFetch, err)
	}
	defer cursor.Close(ctx)

	var chats []*Chat
	if err := cursor.All(ctx, &chats); err != nil {
		return nil, fmt.Errorf("%w: decode chats: %w", ErrFetch, err)
	}
	return chats, nil
}

// RecordMessage moves both copies of chatID to the front of their owners' lists
// and bumps the recipient's unread counter.
func (s *ChatsStore) RecordMessage(ctx context.Context, chatID, senderID, recipientID string, last LastMessage) error {
	set := bson.M{"last_message": last, "timestamp": last.SentAt}
	models := []mongo.WriteModel{
		mongo.NewUpdateOneModel().
			SetFilter(bson.M{"_id": ChatCopyID(senderID, chatID)}).
			SetUpdate(bson.M{"$set": set}),
		mongo.NewUpdateOneModel().
			SetFilter(bson.M{"_id": ChatCopyID(recipientID, chatID)}).
			SetUpdate(bson.M{"$set": set, "$inc": bson.M{"unread_count": 1}}),
	}

	if _, err := s.coll.BulkWrite(ctx, models); err != nil {
		return fmt.Errorf("%w: record message: %w", ErrWrite, err)
	}
	return nil
}

// ResetUnread clears the unread counter on ownerID's copy of chatID.
func (s *ChatsStore) ResetUnread(ctx context.Context, ownerID, chatID string) error {
	res, err := s.coll.UpdateOne(ctx,
		bson.M{"_id": ChatCopyID(ownerID, chatID)},
		bson.M{"$set": bson.M{"unread_count": 0}},
	)
	if err != nil {
		return fmt.Errorf("%w: reset unread: %w", ErrWrite, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("chat: %w", ErrNotFound)
	}
	return nil
}
