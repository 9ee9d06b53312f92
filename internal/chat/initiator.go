package chat

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"

	"github.com/PaulBabatuyi/jobboard/internal/data"
)

// ChatID returns the canonical id of the chat between a and b. The ids are
// sorted first, so both participants derive the same value.
func ChatID(a, b string) string {
	ids := []string{a, b}
	sort.Strings(ids)
	return strings.Join(ids, "_")
}

// StartChat returns the id of the chat between viewerID and recipientID,
// creating both participants' copies if the viewer has none yet.
//
// The recipient must exist; otherwise nothing is written. If the recipient's
// copy cannot be written the viewer's copy is deleted again and the write error
// is returned. A copy that already exists (written by a concurrent call or by
// the recipient starting the same chat) counts as written.
func (s *Service) StartChat(ctx context.Context, viewerID, recipientID string) (string, error) {
	if viewerID == "" || recipientID == "" {
		return "", fmt.Errorf("%w: viewer and recipient are required", data.ErrInvalid)
	}
	if viewerID == recipientID {
		return "", fmt.Errorf("%w: cannot start a chat with yourself", data.ErrInvalid)
	}

	if _, err := s.users.GetUserByID(ctx, recipientID); err != nil {
		return "", fmt.Errorf("recipient %s: %w", recipientID, err)
	}

	existing, err := s.chats.FindByOtherUser(ctx, viewerID, recipientID)
	if err == nil {
		return existing.ChatID, nil
	}
	if !errors.Is(err, data.ErrNotFound) {
		return "", err
	}

	chatID := ChatID(viewerID, recipientID)
	now := s.now()
	participants := []string{viewerID, recipientID}

	viewerCopy := &data.Chat{
		ChatID:       chatID,
		OwnerID:      viewerID,
		OtherUserID:  recipientID,
		Participants: participants,
		CreatedAt:    now,
		Timestamp:    now,
	}
	createdViewerCopy := true
	if err := s.chats.Insert(ctx, viewerCopy); err != nil {
		if !errors.Is(err, data.ErrDuplicate) {
			return "", err
		}
		createdViewerCopy = false
	}

	recipientCopy := &data.Chat{
		ChatID:       chatID,
		OwnerID:      recipientID,
		OtherUserID:  viewerID,
		Participants: participants,
		CreatedAt:    now,
		Timestamp:    now,
	}
	if err := s.chats.Insert(ctx, recipientCopy); err != nil && !errors.Is(err, data.ErrDuplicate) {
		if createdViewerCopy {
			if rbErr := s.rollback(ctx, viewerID, chatID); rbErr != nil {
				return "", errors.Join(err, rbErr)
			}
		}
		return "", err
	}

	s.broker.Notify(viewerID, recipientID)
	return chatID, nil
}

// rollback deletes the viewer copy written by a failed StartChat. It runs even
// if ctx was cancelled mid-way, since the first write already happened.
func (s *Service) rollback(ctx context.Context, viewerID, chatID string) error {
	if err := s.chats.Delete(context.WithoutCancel(ctx), viewerID, chatID); err != nil {
		log.Printf("failed to clean up chat %s for %s: %v", chatID, viewerID, err)
		return fmt.Errorf("%w: delete chat %s for %s: %w", data.ErrRollback, chatID, viewerID, err)
	}
	return nil
}
