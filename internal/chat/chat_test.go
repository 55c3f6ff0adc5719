package chat

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sathvik70004-cmyk/mindfulmate/internal/config"
	apperrors "github.com/sathvik70004-cmyk/mindfulmate/internal/errors"
	"github.com/sathvik70004-cmyk/mindfulmate/internal/model"
	"github.com/sathvik70004-cmyk/mindfulmate/internal/storage"
)

func geminiReply(text string) string {
	resp := map[string]interface{}{
		"candidates": []map[string]interface{}{
			{
				"content": map[string]interface{}{
					"parts": []map[string]string{{"text": text}},
				},
			},
		},
	}
	b, _ := json.Marshal(resp)
	return string(b)
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	config.Global.Chat.APIKey = "test-key"
	t.Cleanup(config.Global.Reset)

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient()
	require.NoError(t, err)
	client.SetBaseURL(server.URL)
	return client
}

func newTestService(t *testing.T, handler http.HandlerFunc) (*Service, *storage.HistoryRepo) {
	t.Helper()

	db, err := storage.Open(storage.Options{InMemory: true})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	history := storage.NewHistoryRepo(db)
	return NewService(newTestClient(t, handler), history), history
}

// =============================================================================
// Crisis Marker Tests
// =============================================================================

func TestStripCrisisMarker(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
		crisis   bool
	}{
		{"leading_marker", "[CRISIS_DETECTED] Please reach out.", "Please reach out.", true},
		{"marker_with_whitespace", "  [CRISIS_DETECTED]\nPlease reach out.", "Please reach out.", true},
		{"no_marker", "Try a short walk between classes.", "Try a short walk between classes.", false},
		{"marker_mid_text", "The token [CRISIS_DETECTED] is internal.", "The token [CRISIS_DETECTED] is internal.", false},
		{"marker_only", "[CRISIS_DETECTED]", "", true},
		{"empty", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cleaned, crisis := StripCrisisMarker(tt.input)
			assert.Equal(t, tt.expected, cleaned)
			assert.Equal(t, tt.crisis, crisis)
		})
	}
}

// =============================================================================
// Client Tests
// =============================================================================

func TestNewClientRequiresAPIKey(t *testing.T) {
	config.Global.Chat.APIKey = ""
	t.Cleanup(config.Global.Reset)

	_, err := NewClient()
	assert.ErrorIs(t, err, apperrors.ErrAPIKeyMissing)
}

func TestClientGenerate(t *testing.T) {
	var captured generateRequest
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		w.Write([]byte(geminiReply("Take three slow breaths first.")))
	})

	history := []*model.Message{
		model.NewMessage(model.RoleUser, "Exams are stressing me out"),
		model.NewMessage(model.RoleModel, "That sounds heavy. What part worries you most?"),
	}

	text, err := client.Generate(context.Background(), history, "The workload")
	require.NoError(t, err)
	assert.Equal(t, "Take three slow breaths first.", text)

	// Prior turns plus the new message, in order.
	require.Len(t, captured.Contents, 3)
	assert.Equal(t, "user", captured.Contents[0].Role)
	assert.Equal(t, "model", captured.Contents[1].Role)
	assert.Equal(t, "The workload", captured.Contents[2].Parts[0].Text)

	require.NotNil(t, captured.SystemInstruction)
	assert.Contains(t, captured.SystemInstruction.Parts[0].Text, "MindfulMate")
	assert.InDelta(t, 0.6, captured.GenerationConfig.Temperature, 0.001)
}

func TestClientGenerateAPIError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"error": {"code": 503, "message": "overloaded"}}`))
	})

	_, err := client.Generate(context.Background(), nil, "hello")
	assert.ErrorIs(t, err, apperrors.ErrChatUnavailable)
	assert.Contains(t, err.Error(), "overloaded")
}

// =============================================================================
// Service Tests
// =============================================================================

func TestServiceSendPersistsTranscript(t *testing.T) {
	service, history := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(geminiReply("Sleep matters more than one extra hour of revision.")))
	})

	reply := service.Send(context.Background(), "Should I pull an all-nighter?")
	assert.False(t, reply.Crisis)
	assert.False(t, reply.Fallback)

	messages, err := history.List()
	require.NoError(t, err)
	require.Len(t, messages, 2)
	assert.Equal(t, model.RoleUser, messages[0].Role)
	assert.Equal(t, "Should I pull an all-nighter?", messages[0].Text)
	assert.Equal(t, model.RoleModel, messages[1].Role)
	assert.Equal(t, reply.Text, messages[1].Text)
}

func TestServiceSendCrisisPath(t *testing.T) {
	service, history := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(geminiReply("[CRISIS_DETECTED] I hear how much pain you are in. Please reach out to the counselor now.")))
	})

	reply := service.Send(context.Background(), "I can't do this anymore")

	assert.True(t, reply.Crisis)
	assert.NotContains(t, reply.Text, CrisisMarker)
	assert.Contains(t, reply.Text, "counselor")

	// The stored reply is the stripped text with the crisis flag set.
	messages, err := history.List()
	require.NoError(t, err)
	require.Len(t, messages, 2)
	assert.True(t, messages[1].Crisis)
	assert.NotContains(t, messages[1].Text, CrisisMarker)
}

func TestServiceSendFallbackOnTransportError(t *testing.T) {
	service, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{}`))
	})

	reply := service.Send(context.Background(), "hello")

	assert.True(t, reply.Fallback)
	assert.False(t, reply.Crisis)
	assert.Equal(t, FallbackUnavailable, reply.Text)
}

func TestServiceSendFallbackOnEmptyReply(t *testing.T) {
	service, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates": []}`))
	})

	reply := service.Send(context.Background(), "hello")

	assert.True(t, reply.Fallback)
	assert.Equal(t, FallbackEmpty, reply.Text)
}

func TestServiceClear(t *testing.T) {
	service, history := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(geminiReply("Noted.")))
	})

	service.Send(context.Background(), "remember this")
	require.NoError(t, service.Clear())

	messages, err := history.List()
	require.NoError(t, err)
	assert.Empty(t, messages)
}
