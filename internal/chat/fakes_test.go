package chat

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/PaulBabatuyi/jobboard/internal/data"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// memChats is an in-memory ChatStore with failure injection.
type memChats struct {
	mu     sync.Mutex
	copies map[string]*data.Chat // keyed by data.ChatCopyID

	inserts int
	deletes int

	failInsertFor string // owner whose insert fails
	failDelete    bool
	failList      bool
}

func newMemChats() *memChats {
	return &memChats{copies: map[string]*data.Chat{}}
}

func (m *memChats) FindByOtherUser(ctx context.Context, ownerID, otherUserID string) (*data.Chat, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.copies {
		if c.OwnerID == ownerID && c.OtherUserID == otherUserID {
			cp := *c
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("chat: %w", data.ErrNotFound)
}

func (m *memChats) Get(ctx context.Context, ownerID, chatID string) (*data.Chat, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.copies[data.ChatCopyID(ownerID, chatID)]
	if !ok {
		return nil, fmt.Errorf("chat: %w", data.ErrNotFound)
	}
	cp := *c
	return &cp, nil
}

func (m *memChats) Insert(ctx context.Context, c *data.Chat) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if c.OwnerID == m.failInsertFor {
		return fmt.Errorf("%w: injected insert failure", data.ErrWrite)
	}
	c.ID = data.ChatCopyID(c.OwnerID, c.ChatID)
	if _, ok := m.copies[c.ID]; ok {
		return fmt.Errorf("chat %s: %w", c.ID, data.ErrDuplicate)
	}
	cp := *c
	m.copies[c.ID] = &cp
	m.inserts++
	return nil
}

func (m *memChats) Delete(ctx context.Context, ownerID, chatID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failDelete {
		return errors.New("injected delete failure")
	}
	delete(m.copies, data.ChatCopyID(ownerID, chatID))
	m.deletes++
	return nil
}

func (m *memChats) ListByOwner(ctx context.Context, ownerID string, limit int64) ([]*data.Chat, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failList {
		return nil, fmt.Errorf("%w: injected list failure", data.ErrFetch)
	}
	var out []*data.Chat
	for _, c := range m.copies {
		if c.OwnerID == ownerID {
			cp := *c
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp.After(out[j].Timestamp) })
	return out, nil
}

func (m *memChats) RecordMessage(ctx context.Context, chatID, senderID, recipientID string, last data.LastMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, owner := range []string{senderID, recipientID} {
		if c, ok := m.copies[data.ChatCopyID(owner, chatID)]; ok {
			l := last
			c.LastMessage = &l
			c.Timestamp = last.SentAt
			if owner == recipientID {
				c.UnreadCount++
			}
		}
	}
	return nil
}

func (m *memChats) ResetUnread(ctx context.Context, ownerID, chatID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.copies[data.ChatCopyID(ownerID, chatID)]
	if !ok {
		return fmt.Errorf("chat: %w", data.ErrNotFound)
	}
	c.UnreadCount = 0
	return nil
}

func (m *memChats) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.copies)
}

// memUsers is an in-memory UserLookup.
type memUsers struct {
	mu      sync.Mutex
	byID    map[string]*data.User
	failFor map[string]bool
	delay   map[string]time.Duration
}

func newMemUsers(users ...*data.User) *memUsers {
	m := &memUsers{byID: map[string]*data.User{}, failFor: map[string]bool{}, delay: map[string]time.Duration{}}
	for _, u := range users {
		m.byID[u.IDHex()] = u
	}
	return m
}

func (m *memUsers) GetUserByID(ctx context.Context, id string) (*data.User, error) {
	m.mu.Lock()
	d := m.delay[id]
	fail := m.failFor[id]
	u, ok := m.byID[id]
	m.mu.Unlock()

	if d > 0 {
		select {
		case <-time.After(d):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if fail {
		return nil, fmt.Errorf("%w: injected lookup failure", data.ErrFetch)
	}
	if !ok {
		return nil, fmt.Errorf("user: %w", data.ErrNotFound)
	}
	return u, nil
}

// memMessages is an in-memory MessageStore.
type memMessages struct {
	mu   sync.Mutex
	msgs []*data.Message
}

func (m *memMessages) SaveMessage(ctx context.Context, msg *data.Message) (*data.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	msg.ID = bson.NewObjectID()
	m.msgs = append(m.msgs, msg)
	return msg, nil
}

func (m *memMessages) GetMessageHistory(ctx context.Context, chatID string, limit int64) ([]*data.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*data.Message
	for _, msg := range m.msgs {
		if msg.ChatID == chatID {
			out = append(out, msg)
		}
	}
	if int64(len(out)) > limit {
		out = out[int64(len(out))-limit:]
	}
	return out, nil
}

func newUser(name string) *data.User {
	return &data.User{ID: bson.NewObjectID(), DisplayName: name, Name: name, Email: name + "@example.com", Role: data.RoleCandidate}
}
