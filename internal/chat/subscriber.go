package chat

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/PaulBabatuyi/jobboard/internal/data"
	"golang.org/x/sync/errgroup"
)

// UnknownUser labels chats whose counterpart cannot be resolved.
const UnknownUser = "Unknown User"

// enrichLimit bounds concurrent counterpart lookups per refresh.
const enrichLimit = 8

// Counterpart is the denormalized view of the other participant.
type Counterpart struct {
	Name   string
	Avatar string
}

// Summary is one entry of a chat list.
type Summary struct {
	ChatID       string
	OtherUserID  string
	Participants []string
	LastMessage  *data.LastMessage
	UnreadCount  int
	CreatedAt    time.Time
	Timestamp    time.Time
	Counterpart  Counterpart
}

// Update is one delivery of a chat list subscription. Err is set when the list
// itself could not be loaded; the subscription stays open and retries on the
// next change.
type Update struct {
	Chats []Summary
	Err   error
}

// Subscription is a live view of one viewer's chat list.
type Subscription struct {
	updates chan Update
	cancel  context.CancelFunc
	done    chan struct{}
}

// Updates returns the channel updates are delivered on. It is closed once the
// subscription ends.
func (s *Subscription) Updates() <-chan Update { return s.updates }

// Close ends the subscription and waits until no further update can be sent.
func (s *Subscription) Close() {
	s.cancel()
	<-s.done
}

// Subscribe starts a live chat list for viewerID. The first update carries the
// current list; later ones follow every change signalled through the broker.
// The subscription ends when ctx is cancelled or Close is called.
func (s *Service) Subscribe(ctx context.Context, viewerID string) *Subscription {
	ctx, cancel := context.WithCancel(ctx)
	id, signal := s.broker.Register(viewerID)

	sub := &Subscription{
		updates: make(chan Update),
		cancel:  cancel,
		done:    make(chan struct{}),
	}

	go func() {
		defer close(sub.done)
		defer close(sub.updates)
		defer s.broker.Unregister(viewerID, id)

		for {
			u := s.loadChatList(ctx, viewerID)
			if ctx.Err() != nil {
				return
			}

			select {
			case sub.updates <- u:
			case <-ctx.Done():
				return
			}

			select {
			case <-signal:
			case <-ctx.Done():
				return
			}
		}
	}()

	return sub
}

// ChatList loads viewerID's chat list once.
func (s *Service) ChatList(ctx context.Context, viewerID string) ([]Summary, error) {
	u := s.loadChatList(ctx, viewerID)
	return u.Chats, u.Err
}

func (s *Service) loadChatList(ctx context.Context, viewerID string) Update {
	chats, err := s.chats.ListByOwner(ctx, viewerID, s.ListLimit)
	if err != nil {
		return Update{Err: fmt.Errorf("load chats for %s: %w", viewerID, err)}
	}

	summaries := make([]Summary, len(chats))
	var g errgroup.Group
	g.SetLimit(enrichLimit)
	for i, c := range chats {
		g.Go(func() error {
			summaries[i] = Summary{
				ChatID:       c.ChatID,
				OtherUserID:  c.OtherUserID,
				Participants: c.Participants,
				LastMessage:  c.LastMessage,
				UnreadCount:  c.UnreadCount,
				CreatedAt:    c.CreatedAt,
				Timestamp:    c.Timestamp,
				Counterpart:  s.counterpart(ctx, c.OtherUserID),
			}
			return nil
		})
	}
	_ = g.Wait()

	sort.SliceStable(summaries, func(i, j int) bool {
		return summaries[i].Timestamp.After(summaries[j].Timestamp)
	})
	return Update{Chats: summaries}
}

// counterpart resolves the display name and avatar of userID. Any failure
// degrades to UnknownUser for this entry only.
func (s *Service) counterpart(ctx context.Context, userID string) Counterpart {
	unknown := Counterpart{Name: UnknownUser}
	if userID == "" {
		return unknown
	}

	if s.LookupTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.LookupTimeout)
		defer cancel()
	}

	u, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		if !errors.Is(err, data.ErrNotFound) {
			log.Printf("chat list: lookup of %s failed: %v", userID, err)
		}
		return unknown
	}

	name := u.DisplayName
	if name == "" {
		name = u.Name
	}
	if name == "" {
		name = UnknownUser
	}
	return Counterpart{Name: name, Avatar: u.Avatar()}
}
