// Package chat implements one-to-one chats: idempotent chat creation across the
// two participants' chat lists, messaging, and live chat list subscriptions.
package chat

import (
	"context"
	"time"

	"github.com/PaulBabatuyi/jobboard/internal/data"
)

// ChatStore is the subset of data.ChatsStore the service needs.
type ChatStore interface {
	FindByOtherUser(ctx context.Context, ownerID, otherUserID string) (*data.Chat, error)
	Get(ctx context.Context, ownerID, chatID string) (*data.Chat, error)
	Insert(ctx context.Context, c *data.Chat) error
	Delete(ctx context.Context, ownerID, chatID string) error
	ListByOwner(ctx context.Context, ownerID string, limit int64) ([]*data.Chat, error)
	RecordMessage(ctx context.Context, chatID, senderID, recipientID string, last data.LastMessage) error
	ResetUnread(ctx context.Context, ownerID, chatID string) error
}

// UserLookup resolves user ids to profiles.
type UserLookup interface {
	GetUserByID(ctx context.Context, id string) (*data.User, error)
}

// MessageStore is the subset of data.MessagesStore the service needs.
type MessageStore interface {
	SaveMessage(ctx context.Context, msg *data.Message) (*data.Message, error)
	GetMessageHistory(ctx context.Context, chatID string, limit int64) ([]*data.Message, error)
}

// Service ties the chat stores to the broker that signals chat list changes.
type Service struct {
	chats  ChatStore
	users  UserLookup
	msgs   MessageStore
	broker *Broker

	// ListLimit caps the chats loaded per chat list refresh; 0 means no limit.
	ListLimit int64
	// LookupTimeout bounds each counterpart lookup during a refresh.
	LookupTimeout time.Duration

	now func() time.Time
}

// NewService returns a Service. A nil broker gets a private one, which is fine
// for single-instance deployments.
func NewService(chats ChatStore, users UserLookup, msgs MessageStore, broker *Broker) *Service {
	if broker == nil {
		broker = NewBroker()
	}
	return &Service{
		chats:         chats,
		users:         users,
		msgs:          msgs,
		broker:        broker,
		ListLimit:     200,
		LookupTimeout: 5 * time.Second,
		now:           func() time.Time { return time.Now().UTC() },
	}
}

// Broker returns the broker the service signals on.
func (s *Service) Broker() *Broker { return s.broker }
