package chat

import (
	"context"
	"fmt"
	"html"
	"strings"
	"unicode/utf8"

	"github.com/PaulBabatuyi/jobboard/internal/data"
)

// MaxMessageLength is the longest message accepted, in characters.
const MaxMessageLength = 4000

// DefaultHistoryLimit is the history window returned when none is requested.
const DefaultHistoryLimit = 100

// SendMessage stores a message from senderID in chatID and moves the chat to the
// top of both participants' lists. The sender must own a copy of the chat.
func (s *Service) SendMessage(ctx context.Context, senderID, chatID, content string) (*data.Message, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, fmt.Errorf("%w: message is empty", data.ErrInvalid)
	}
	if utf8.RuneCountInString(content) > MaxMessageLength {
		return nil, fmt.Errorf("%w: message longer than %d characters", data.ErrInvalid, MaxMessageLength)
	}

	c, err := s.chats.Get(ctx, senderID, chatID)
	if err != nil {
		return nil, err
	}

	saved, err := s.msgs.SaveMessage(ctx, &data.Message{
		ChatID:      chatID,
		SenderID:    senderID,
		RecipientID: c.OtherUserID,
		Content:     html.EscapeString(content),
		SentAt:      s.now(),
	})
	if err != nil {
		return nil, err
	}

	last := data.LastMessage{Text: saved.Content, SenderID: senderID, SentAt: saved.SentAt}
	if err := s.chats.RecordMessage(ctx, chatID, senderID, c.OtherUserID, last); err != nil {
		return nil, err
	}

	s.broker.Notify(senderID, c.OtherUserID)
	return saved, nil
}

// History returns up to limit of the latest messages of chatID, oldest first.
func (s *Service) History(ctx context.Context, viewerID, chatID string, limit int64) ([]*data.Message, error) {
	if _, err := s.chats.Get(ctx, viewerID, chatID); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return s.msgs.GetMessageHistory(ctx, chatID, limit)
}

// MarkRead clears viewerID's unread counter for chatID.
func (s *Service) MarkRead(ctx context.Context, viewerID, chatID string) error {
	if err := s.chats.ResetUnread(ctx, viewerID, chatID); err != nil {
		return err
	}
	s.broker.Notify(viewerID)
	return nil
}
