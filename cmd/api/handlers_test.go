package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"testing"
	"time"

	v1 "github.com/PaulBabatuyi/jobboard/api/jobboard/v1"
	"github.com/PaulBabatuyi/jobboard/internal/data"
	"github.com/PaulBabatuyi/jobboard/internal/scoring"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestToStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want codes.Code
	}{
		{"status passes through", status.Error(codes.Aborted, "x"), codes.Aborted},
		{"invalid", fmt.Errorf("%w: bad", data.ErrInvalid), codes.InvalidArgument},
		{"not found", fmt.Errorf("job: %w", data.ErrNotFound), codes.NotFound},
		{"duplicate", fmt.Errorf("chat: %w", data.ErrDuplicate), codes.AlreadyExists},
		{"forbidden", fmt.Errorf("%w: not yours", data.ErrForbidden), codes.PermissionDenied},
		{"write", fmt.Errorf("%w: insert", data.ErrWrite), codes.Internal},
		{"rollback", errors.Join(data.ErrWrite, data.ErrRollback), codes.Internal},
		{"fetch", fmt.Errorf("%w: list", data.ErrFetch), codes.Unavailable},
		{"scoring", fmt.Errorf("score: %w", &scoring.APIError{StatusCode: 500, Message: "boom"}), codes.Unavailable},
		{"deadline", fmt.Errorf("load: %w", context.DeadlineExceeded), codes.DeadlineExceeded},
		{"canceled", context.Canceled, codes.Canceled},
		{"unknown", errors.New("boom"), codes.Internal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := status.Code(toStatus(tt.err)); got != tt.want {
				t.Fatalf("toStatus(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}

	if toStatus(nil) != nil {
		t.Fatalf("toStatus(nil) should be nil")
	}
}

func TestRegisterAndLogin(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	resp, err := env.client.Register(ctx, &v1.RegisterRequest{Email: " Alice@Example.com ", Password: "password123"})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if resp.User.Email != "alice@example.com" {
		t.Fatalf("email not normalized: %q", resp.User.Email)
	}
	if resp.User.DisplayName != "alice" {
		t.Fatalf("display name should default to the email prefix, got %q", resp.User.DisplayName)
	}
	if resp.User.Role != string(data.RoleCandidate) {
		t.Fatalf("role should default to candidate, got %q", resp.User.Role)
	}
	claims, err := env.jwt.VerifyToken(resp.Token)
	if err != nil {
		t.Fatalf("issued token does not verify: %v", err)
	}
	if claims.UserID != resp.User.ID {
		t.Fatalf("token user = %q, want %q", claims.UserID, resp.User.ID)
	}

	if _, err := env.client.Register(ctx, &v1.RegisterRequest{Email: "alice@example.com", Password: "password123"}); status.Code(err) != codes.AlreadyExists {
		t.Fatalf("duplicate register: got %v, want AlreadyExists", err)
	}

	login, err := env.client.Login(ctx, &v1.LoginRequest{Email: "ALICE@example.com", Password: "password123"})
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if login.User.ID != resp.User.ID {
		t.Fatalf("login user = %q, want %q", login.User.ID, resp.User.ID)
	}

	if _, err := env.client.Login(ctx, &v1.LoginRequest{Email: "alice@example.com", Password: "wrong-pass"}); status.Code(err) != codes.Unauthenticated {
		t.Fatalf("bad password: got %v, want Unauthenticated", err)
	}
	if _, err := env.client.Login(ctx, &v1.LoginRequest{Email: "nobody@example.com", Password: "password123"}); status.Code(err) != codes.Unauthenticated {
		t.Fatalf("unknown user: got %v, want Unauthenticated", err)
	}
}

func TestRegisterValidation(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name string
		req  *v1.RegisterRequest
	}{
		{"no at sign", &v1.RegisterRequest{Email: "alice", Password: "password123"}},
		{"short password", &v1.RegisterRequest{Email: "a@example.com", Password: "123"}},
		{"unknown role", &v1.RegisterRequest{Email: "a@example.com", Password: "password123", Role: "admin"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := env.client.Register(context.Background(), tt.req); status.Code(err) != codes.InvalidArgument {
				t.Fatalf("got %v, want InvalidArgument", err)
			}
		})
	}
}

func TestProtectedMethodsRequireToken(t *testing.T) {
	env := newTestEnv(t)

	if _, err := env.client.GetProfile(context.Background(), &v1.GetProfileRequest{}); status.Code(err) != codes.Unauthenticated {
		t.Fatalf("GetProfile without token: got %v, want Unauthenticated", err)
	}

	stream, err := env.client.WatchChats(context.Background(), &v1.WatchChatsRequest{})
	if err == nil {
		_, err = stream.Recv()
	}
	if status.Code(err) != codes.Unauthenticated {
		t.Fatalf("WatchChats without token: got %v, want Unauthenticated", err)
	}
}

func TestProfileUpdateAndSearch(t *testing.T) {
	env := newTestEnv(t)
	_, aliceCtx := env.register(t, "alice@example.com", "Alice")
	bobID, bobCtx := env.register(t, "bob@example.com", "Bob")

	name := "Bob Builder"
	company := "Acme"
	if _, err := env.client.UpdateProfile(bobCtx, &v1.UpdateProfileRequest{Name: &name, CompanyName: &company, Tags: []string{"go"}}); err != nil {
		t.Fatalf("UpdateProfile failed: %v", err)
	}

	p, err := env.client.GetProfile(aliceCtx, &v1.GetProfileRequest{UserID: bobID})
	if err != nil {
		t.Fatalf("GetProfile failed: %v", err)
	}
	if p.Name != name || p.CompanyName != company {
		t.Fatalf("profile not updated: %+v", p)
	}

	if _, err := env.client.GetProfile(aliceCtx, &v1.GetProfileRequest{UserID: "ffffffffffffffffffffffff"}); status.Code(err) != codes.NotFound {
		t.Fatalf("missing profile: got %v, want NotFound", err)
	}

	found, err := env.client.SearchProfiles(aliceCtx, &v1.SearchProfilesRequest{Query: "acme"})
	if err != nil {
		t.Fatalf("SearchProfiles failed: %v", err)
	}
	if len(found.Profiles) != 1 || found.Profiles[0].ID != bobID {
		t.Fatalf("SearchProfiles(acme) = %+v, want only bob", found.Profiles)
	}
}

func TestStartChatAndMessages(t *testing.T) {
	env := newTestEnv(t)
	aliceID, aliceCtx := env.register(t, "alice@example.com", "Alice")
	bobID, bobCtx := env.register(t, "bob@example.com", "Bob")

	started, err := env.client.StartChat(aliceCtx, &v1.StartChatRequest{RecipientID: bobID})
	if err != nil {
		t.Fatalf("StartChat failed: %v", err)
	}
	again, err := env.client.StartChat(bobCtx, &v1.StartChatRequest{RecipientID: aliceID})
	if err != nil {
		t.Fatalf("StartChat from the other side failed: %v", err)
	}
	if again.ChatID != started.ChatID {
		t.Fatalf("both sides should share one chat: %q vs %q", started.ChatID, again.ChatID)
	}

	if _, err := env.client.StartChat(aliceCtx, &v1.StartChatRequest{RecipientID: aliceID}); status.Code(err) != codes.InvalidArgument {
		t.Fatalf("self chat: got %v, want InvalidArgument", err)
	}

	for _, text := range []string{"hi bob", "are you there?"} {
		if _, err := env.client.SendMessage(aliceCtx, &v1.SendMessageRequest{ChatID: started.ChatID, Content: text}); err != nil {
			t.Fatalf("SendMessage(%q) failed: %v", text, err)
		}
	}

	stream, err := env.client.GetHistory(bobCtx, &v1.GetHistoryRequest{ChatID: started.ChatID, Limit: 10})
	if err != nil {
		t.Fatalf("GetHistory failed: %v", err)
	}
	var got []string
	for {
		m, err := stream.Recv()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("history recv: %v", err)
		}
		if m.SenderID != aliceID || m.RecipientID != bobID {
			t.Fatalf("unexpected message routing: %+v", m)
		}
		got = append(got, m.Content)
	}
	if len(got) != 2 || got[0] != "hi bob" || got[1] != "are you there?" {
		t.Fatalf("history = %v", got)
	}

	if _, err := env.client.MarkChatRead(bobCtx, &v1.MarkChatReadRequest{ChatID: started.ChatID}); err != nil {
		t.Fatalf("MarkChatRead failed: %v", err)
	}
	if _, err := env.client.MarkChatRead(bobCtx, &v1.MarkChatReadRequest{ChatID: "nope"}); status.Code(err) != codes.NotFound {
		t.Fatalf("MarkChatRead unknown chat: got %v, want NotFound", err)
	}
}

func TestWatchChats(t *testing.T) {
	env := newTestEnv(t)
	aliceID, aliceCtx := env.register(t, "alice@example.com", "Alice")
	bobID, bobCtx := env.register(t, "bob@example.com", "Bob")

	ctx, cancel := context.WithTimeout(bobCtx, 5*time.Second)
	defer cancel()
	stream, err := env.client.WatchChats(ctx, &v1.WatchChatsRequest{})
	if err != nil {
		t.Fatalf("WatchChats failed: %v", err)
	}

	first, err := stream.Recv()
	if err != nil {
		t.Fatalf("initial snapshot: %v", err)
	}
	if len(first.Chats) != 0 {
		t.Fatalf("expected an empty initial list, got %d chats", len(first.Chats))
	}

	started, err := env.client.StartChat(aliceCtx, &v1.StartChatRequest{RecipientID: bobID})
	if err != nil {
		t.Fatalf("StartChat failed: %v", err)
	}
	if _, err := env.client.SendMessage(aliceCtx, &v1.SendMessageRequest{ChatID: started.ChatID, Content: "hello"}); err != nil {
		t.Fatalf("SendMessage failed: %v", err)
	}

	for {
		u, err := stream.Recv()
		if err != nil {
			t.Fatalf("waiting for message snapshot: %v", err)
		}
		if len(u.Chats) != 1 {
			continue
		}
		c := u.Chats[0]
		if c.LastMessage == nil {
			continue
		}
		if c.ChatID != started.ChatID || c.OtherUserID != aliceID || c.OtherUserName != "Alice" {
			t.Fatalf("unexpected summary: %+v", c)
		}
		if c.LastMessage.Text != "hello" || c.UnreadCount != 1 {
			t.Fatalf("unexpected last message state: %+v unread=%d", c.LastMessage, c.UnreadCount)
		}
		return
	}
}

func TestSearchUsersStream(t *testing.T) {
	env := newTestEnv(t)
	_, aliceCtx := env.register(t, "alice@example.com", "Alice")
	bobID, _ := env.register(t, "bob@example.com", "Bob")
	env.register(t, "robert@example.com", "Robert")

	ctx, cancel := context.WithTimeout(aliceCtx, 5*time.Second)
	defer cancel()
	stream, err := env.client.SearchUsers(ctx)
	if err != nil {
		t.Fatalf("SearchUsers failed: %v", err)
	}

	for _, q := range []string{"b", "bo", "bob"} {
		if err := stream.Send(&v1.SearchUsersRequest{Query: q}); err != nil {
			t.Fatalf("send %q: %v", q, err)
		}
	}
	if err := stream.CloseSend(); err != nil {
		t.Fatalf("CloseSend: %v", err)
	}

	var last *v1.SearchUsersResponse
	for {
		resp, err := stream.Recv()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("recv: %v", err)
		}
		last = resp
	}

	if last == nil {
		t.Fatalf("expected an answer for the final query")
	}
	if last.Query != "bob" {
		t.Fatalf("last answered query = %q, want bob", last.Query)
	}
	if len(last.Users) != 1 || last.Users[0].ID != bobID {
		t.Fatalf("results for bob = %+v", last.Users)
	}
}
