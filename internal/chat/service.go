package chat

import (
	"context"
	"strings"

	"github.com/sathvik70004-cmyk/mindfulmate/internal/logging"
	"github.com/sathvik70004-cmyk/mindfulmate/internal/model"
	"github.com/sathvik70004-cmyk/mindfulmate/internal/storage"
)

// historyWindow caps how many stored turns are replayed to the model.
const historyWindow = 20

// Reply is the outcome of one conversation turn.
type Reply struct {
	Text     string
	Crisis   bool
	Fallback bool
}

// Service runs conversation turns: it persists the transcript, replays
// recent history to the model, and applies the crisis protocol to the
// reply.
type Service struct {
	client  *Client
	history *storage.HistoryRepo
}

// NewService creates a chat service.
func NewService(client *Client, history *storage.HistoryRepo) *Service {
	return &Service{client: client, history: history}
}

// Send runs one turn. A transport failure never surfaces as an error;
// the user sees a fixed fallback reply instead.
func (s *Service) Send(ctx context.Context, text string) *Reply {
	text = strings.TrimSpace(text)

	history, err := s.history.Tail(historyWindow)
	if err != nil {
		logging.Warn("failed to load chat history", logging.KeyError, err)
		history = nil
	}

	if err := s.history.Append(model.NewMessage(model.RoleUser, text)); err != nil {
		logging.Warn("failed to persist user message", logging.KeyError, err)
	}

	raw, err := s.client.Generate(ctx, history, text)
	if err != nil {
		logging.Error("chat request failed", logging.KeyError, err)
		return s.finish(FallbackUnavailable, false, true)
	}

	if strings.TrimSpace(raw) == "" {
		return s.finish(FallbackEmpty, false, true)
	}

	cleaned, crisis := StripCrisisMarker(raw)
	if crisis {
		logging.Warn("crisis marker detected in reply")
	}

	return s.finish(cleaned, crisis, false)
}

// History returns the stored transcript, oldest first.
func (s *Service) History() ([]*model.Message, error) {
	return s.history.List()
}

// Clear deletes the stored transcript.
func (s *Service) Clear() error {
	_, err := s.history.Clear()
	return err
}

func (s *Service) finish(text string, crisis, fallback bool) *Reply {
	msg := model.NewMessage(model.RoleModel, text)
	msg.Crisis = crisis
	if err := s.history.Append(msg); err != nil {
		logging.Warn("failed to persist reply", logging.KeyError, err)
	}
	return &Reply{Text: text, Crisis: crisis, Fallback: fallback}
}
