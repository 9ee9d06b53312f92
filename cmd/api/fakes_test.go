package main

import (
	"context"
	"fmt"
	"net"
	"sort"
	"sync"
	"testing"
	"time"

	v1 "github.com/PaulBabatuyi/jobboard/api/jobboard/v1"
	"github.com/PaulBabatuyi/jobboard/internal/auth"
	"github.com/PaulBabatuyi/jobboard/internal/chat"
	"github.com/PaulBabatuyi/jobboard/internal/data"
	"github.com/PaulBabatuyi/jobboard/internal/search"
	"go.mongodb.org/mongo-driver/v2/bson"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/test/bufconn"
)

const bufSize = 1024 * 1024

// fakeUsers is an in-memory user store that also serves as search directory.
type fakeUsers struct {
	mu    sync.Mutex
	users []*data.User
}

func (f *fakeUsers) CreateUser(ctx context.Context, email, hashedPassword, displayName string, role data.Role) (*data.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			return nil, fmt.Errorf("user %s: %w", email, data.ErrDuplicate)
		}
	}
	u := &data.User{
		ID:          bson.NewObjectID(),
		Email:       email,
		Password:    hashedPassword,
		DisplayName: displayName,
		Role:        role,
		CreatedAt:   time.Now(),
	}
	f.users = append(f.users, u)
	return u, nil
}

func (f *fakeUsers) GetUserByEmail(ctx context.Context, email string) (*data.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, fmt.Errorf("user: %w", data.ErrNotFound)
}

func (f *fakeUsers) GetUserByID(ctx context.Context, id string) (*data.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.IDHex() == id {
			return u, nil
		}
	}
	return nil, fmt.Errorf("user: %w", data.ErrNotFound)
}

func (f *fakeUsers) UpdateProfile(ctx context.Context, id string, p data.ProfileUpdate) (*data.User, error) {
	u, err := f.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.CompanyName != nil {
		u.CompanyName = *p.CompanyName
	}
	if p.Tags != nil {
		u.Tags = p.Tags
	}
	return u, nil
}

func (f *fakeUsers) ListUsers(ctx context.Context) ([]*data.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*data.User(nil), f.users...), nil
}

// fakeChats is an in-memory chat.ChatStore.
type fakeChats struct {
	mu     sync.Mutex
	copies map[string]*data.Chat
}

func newFakeChats() *fakeChats {
	return &fakeChats{copies: map[string]*data.Chat{}}
}

func (f *fakeChats) FindByOtherUser(ctx context.Context, ownerID, otherUserID string) (*data.Chat, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.copies {
		if c.OwnerID == ownerID && c.OtherUserID == otherUserID {
			cp := *c
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("chat: %w", data.ErrNotFound)
}

func (f *fakeChats) Get(ctx context.Context, ownerID, chatID string) (*data.Chat, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.copies[data.ChatCopyID(ownerID, chatID)]
	if !ok {
		return nil, fmt.Errorf("chat: %w", data.ErrNotFound)
	}
	cp := *c
	return &cp, nil
}

func (f *fakeChats) Insert(ctx context.Context, c *data.Chat) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	c.ID = data.ChatCopyID(c.OwnerID, c.ChatID)
	if _, ok := f.copies[c.ID]; ok {
		return fmt.Errorf("chat %s: %w", c.ID, data.ErrDuplicate)
	}
	cp := *c
	f.copies[c.ID] = &cp
	return nil
}

func (f *fakeChats) Delete(ctx context.Context, ownerID, chatID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.copies, data.ChatCopyID(ownerID, chatID))
	return nil
}

func (f *fakeChats) ListByOwner(ctx context.Context, ownerID string, limit int64) ([]*data.Chat, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*data.Chat
	for _, c := range f.copies {
		if c.OwnerID == ownerID {
			cp := *c
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp.After(out[j].Timestamp) })
	return out, nil
}

func (f *fakeChats) RecordMessage(ctx context.Context, chatID, senderID, recipientID string, last data.LastMessage) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, owner := range []string{senderID, recipientID} {
		if c, ok := f.copies[data.ChatCopyID(owner, chatID)]; ok {
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

func (f *fakeChats) ResetUnread(ctx context.Context, ownerID, chatID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.copies[data.ChatCopyID(ownerID, chatID)]
	if !ok {
		return fmt.Errorf("chat: %w", data.ErrNotFound)
	}
	c.UnreadCount = 0
	return nil
}

// fakeMessages is an in-memory chat.MessageStore.
type fakeMessages struct {
	mu   sync.Mutex
	msgs []*data.Message
}

func (f *fakeMessages) SaveMessage(ctx context.Context, msg *data.Message) (*data.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	msg.ID = bson.NewObjectID()
	f.msgs = append(f.msgs, msg)
	return msg, nil
}

func (f *fakeMessages) GetMessageHistory(ctx context.Context, chatID string, limit int64) ([]*data.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*data.Message
	for _, m := range f.msgs {
		if m.ChatID == chatID {
			out = append(out, m)
		}
	}
	if limit > 0 && int64(len(out)) > limit {
		out = out[int64(len(out))-limit:]
	}
	return out, nil
}

// testEnv is a JobBoard server over bufconn backed by in-memory stores.
type testEnv struct {
	client v1.JobBoardClient
	jwt    *auth.JWTManager
	users  *fakeUsers
	chats  *chat.Service
	search *search.Searcher
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	users := &fakeUsers{}
	jwtMgr := auth.NewJWTManager("test-secret", time.Hour)
	chatSvc := chat.NewService(newFakeChats(), users, &fakeMessages{}, chat.NewBroker())
	searcher := search.NewSearcher(users)

	lis := bufconn.Listen(bufSize)
	s := grpc.NewServer(
		grpc.UnaryInterceptor(authUnaryInterceptor(jwtMgr)),
		grpc.StreamInterceptor(authStreamInterceptor(jwtMgr)),
	)
	srv := newServer(users, jwtMgr, chatSvc, searcher, nil, nil)
	srv.debounce = 20 * time.Millisecond
	registerService(s, srv)

	go func() {
		_ = s.Serve(lis)
	}()

	dialer := func(ctx context.Context, _ string) (net.Conn, error) { return lis.Dial() }
	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(dialer),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		t.Fatalf("failed to dial bufnet: %v", err)
	}
	t.Cleanup(func() {
		_ = conn.Close()
		s.Stop()
	})

	return &testEnv{
		client: v1.NewJobBoardClient(conn),
		jwt:    jwtMgr,
		users:  users,
		chats:  chatSvc,
		search: searcher,
	}
}

// register creates an account and returns its id with an authenticated context.
func (e *testEnv) register(t *testing.T, email, name string) (string, context.Context) {
	t.Helper()
	resp, err := e.client.Register(context.Background(), &v1.RegisterRequest{
		Email:       email,
		Password:    "password123",
		DisplayName: name,
	})
	if err != nil {
		t.Fatalf("Register(%s) failed: %v", email, err)
	}
	ctx := metadata.AppendToOutgoingContext(context.Background(), "authorization", "Bearer "+resp.Token)
	return resp.User.ID, ctx
}
