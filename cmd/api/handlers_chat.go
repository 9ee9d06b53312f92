package main

import (
	"context"
	"io"
	"log"

	v1 "github.com/PaulBabatuyi/jobboard/api/jobboard/v1"
	"github.com/PaulBabatuyi/jobboard/internal/search"
	"google.golang.org/grpc"
	"google.golang.org/grpc/status"
)

// StartChat opens (or finds) the one-to-one chat between the caller and a recipient.
func (s *Server) StartChat(ctx context.Context, req *v1.StartChatRequest) (*v1.StartChatResponse, error) {
	caller, err := callerFrom(ctx)
	if err != nil {
		return nil, err
	}

	chatID, err := s.chats.StartChat(ctx, caller.UserID, req.RecipientID)
	if err != nil {
		return nil, toStatus(err)
	}
	return &v1.StartChatResponse{ChatID: chatID}, nil
}

// SendMessage stores a message in one of the caller's chats.
func (s *Server) SendMessage(ctx context.Context, req *v1.SendMessageRequest) (*v1.Message, error) {
	caller, err := callerFrom(ctx)
	if err != nil {
		return nil, err
	}

	msg, err := s.chats.SendMessage(ctx, caller.UserID, req.ChatID, req.Content)
	if err != nil {
		return nil, toStatus(err)
	}
	return toMessage(msg), nil
}

// MarkChatRead clears the caller's unread counter for a chat.
func (s *Server) MarkChatRead(ctx context.Context, req *v1.MarkChatReadRequest) (*v1.Empty, error) {
	caller, err := callerFrom(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.chats.MarkRead(ctx, caller.UserID, req.ChatID); err != nil {
		return nil, toStatus(err)
	}
	return &v1.Empty{}, nil
}

// WatchChats streams the caller's chat list: the current snapshot first, then
// a new snapshot after every change until the client goes away.
func (s *Server) WatchChats(_ *v1.WatchChatsRequest, stream grpc.ServerStreamingServer[v1.ChatListUpdate]) error {
	ctx := stream.Context()
	caller, err := callerFrom(ctx)
	if err != nil {
		return err
	}

	sub := s.chats.Subscribe(ctx, caller.UserID)
	defer sub.Close()

	for u := range sub.Updates() {
		if u.Err != nil {
			// keep the stream open; the next change retries the load
			log.Printf("chat list for %s: %v", caller.UserID, u.Err)
			continue
		}
		if err := stream.Send(toChatListUpdate(u.Chats)); err != nil {
			return err
		}
	}
	return status.FromContextError(ctx.Err()).Err()
}

// GetHistory streams the latest messages of a chat, oldest first.
func (s *Server) GetHistory(req *v1.GetHistoryRequest, stream grpc.ServerStreamingServer[v1.Message]) error {
	ctx := stream.Context()
	caller, err := callerFrom(ctx)
	if err != nil {
		return err
	}

	msgs, err := s.chats.History(ctx, caller.UserID, req.ChatID, req.Limit)
	if err != nil {
		return toStatus(err)
	}
	for _, m := range msgs {
		if err := stream.Send(toMessage(m)); err != nil {
			return err
		}
	}
	return nil
}

// SearchUsers answers search-as-you-type queries. Each query is debounced; only
// the last query of a burst is run and answered.
func (s *Server) SearchUsers(stream grpc.BidiStreamingServer[v1.SearchUsersRequest, v1.SearchUsersResponse]) error {
	ctx := stream.Context()
	caller, err := callerFrom(ctx)
	if err != nil {
		return err
	}

	// ready holds at most the latest debounced query.
	ready := make(chan string, 1)
	deb := search.NewDebouncer(s.debounce)
	defer deb.Stop()

	recvErr := make(chan error, 1)
	go func() {
		for {
			req, err := stream.Recv()
			if err != nil {
				recvErr <- err
				return
			}
			q := req.Query
			deb.Trigger(func() {
				select {
				case <-ready:
				default:
				}
				select {
				case ready <- q:
				default:
				}
			})
		}
	}()

	answer := func(q string) error {
		users, err := s.search.Users(ctx, caller.UserID, q)
		if err != nil {
			return toStatus(err)
		}
		return stream.Send(&v1.SearchUsersResponse{Query: q, Users: toProfiles(users)})
	}

	for {
		select {
		case q := <-ready:
			if err := answer(q); err != nil {
				return err
			}
		case err := <-recvErr:
			if err != io.EOF {
				return err
			}
			// client finished typing: answer a query still waiting out its delay
			deb.Flush()
			select {
			case q := <-ready:
				return answer(q)
			default:
				return nil
			}
		case <-ctx.Done():
			return status.FromContextError(ctx.Err()).Err()
		}
	}
}
