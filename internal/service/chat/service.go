package chat

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jwalitptl/hospiflow/internal/model"
	"github.com/jwalitptl/hospiflow/internal/repository"
	"github.com/jwalitptl/hospiflow/internal/service/event"
	apperrors "github.com/jwalitptl/hospiflow/pkg/errors"
)

type Service struct {
	repo   repository.ChatRepository
	events event.Emitter
	now    func() time.Time
}

func NewService(repo repository.ChatRepository, events event.Emitter) *Service {
	return &Service{repo: repo, events: events, now: time.Now}
}

func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

func (s *Service) ListMessages(ctx context.Context) ([]*model.ChatMessage, error) {
	msgs, err := s.repo.ListMessages(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	return msgs, nil
}

// Post appends a message from actor. The store assigns the id.
func (s *Service) Post(ctx context.Context, actor *model.Actor, text string) (*model.ChatMessage, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, apperrors.Validation("Message is required")
	}

	msg := &model.ChatMessage{
		SenderID:   actor.ID,
		SenderName: actor.FullName,
		Message:    text,
		Timestamp:  s.now().UTC().Format(time.RFC3339),
		Department: actor.Department,
	}
	if err := s.repo.AppendMessage(ctx, msg); err != nil {
		return nil, fmt.Errorf("failed to append message: %w", err)
	}

	s.events.Emit(ctx, model.EventChatPosted, actor.ID, msg)
	return msg, nil
}
