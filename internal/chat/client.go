// Package chat provides the supportive conversation engine backed by
// the Gemini generateContent API.
package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/sathvik70004-cmyk/mindfulmate/internal/config"
	apperrors "github.com/sathvik70004-cmyk/mindfulmate/internal/errors"
	"github.com/sathvik70004-cmyk/mindfulmate/internal/logging"
	"github.com/sathvik70004-cmyk/mindfulmate/internal/model"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com"

// systemInstruction frames every conversation. The crisis protocol
// contract is the leading marker; see crisis.go.
const systemInstruction = `You are MindfulMate, a supportive, empathetic AI companion for students at IIIT Naya Raipur.
Your goal is to listen to their stresses and provide advice grounded in psychological research (CBT, DBT, and Mindfulness-Based Stress Reduction).

ADVICE GUIDELINES:
1. **Research-Based**: All advice must be based on established psychological frameworks. When offering coping strategies, briefly mention the underlying concept (e.g., "In CBT, this is called cognitive reframing..." or "Research shows that 4-7-8 breathing activates the parasympathetic nervous system...").
2. **Tone**: Warm, student-friendly, but professional and grounded.
3. **Conciseness**: Keep responses under 150 words unless a deep explanation is requested.

SAFETY & CRISIS PROTOCOL (CRITICAL):
If the user expresses clear intent of self-harm, suicide, severe depression, or violence:
1. You MUST begin your response with the exact string: "[CRISIS_DETECTED]"
2. Follow this with a short, compassionate message urging them to connect with the college counselor immediately.
3. Do NOT attempt to provide deep therapy for active suicidal ideation; your priority is to get them to human help.

Example of Crisis Response:
"[CRISIS_DETECTED] I hear how much pain you are in, and I am concerned for your safety. Please reach out to the college counselor immediately using the button below. You don't have to go through this alone."`

// Fallback replies shown when the model is unreachable or returns
// nothing. These exact strings are part of the user experience and
// are asserted in tests.
const (
	FallbackUnavailable = "I'm having a little trouble connecting right now. Please check your connection and try again."
	FallbackEmpty       = "I'm here listening, but I'm having trouble finding the right words right now. Can we try again?"
)

// Client talks to the Gemini API over plain HTTP.
type Client struct {
	apiKey      string
	model       string
	temperature float64
	baseURL     string
	httpClient  *http.Client
}

// NewClient creates a chat client from runtime config. It fails when
// no API key is configured.
func NewClient() (*Client, error) {
	cfg := config.Global.Chat
	if cfg.APIKey == "" {
		return nil, apperrors.ErrAPIKeyMissing
	}
	return &Client{
		apiKey:      cfg.APIKey,
		model:       cfg.Model,
		temperature: cfg.Temperature,
		baseURL:     defaultBaseURL,
		httpClient:  &http.Client{Timeout: cfg.Timeout},
	}, nil
}

// SetBaseURL overrides the API endpoint. Used in tests.
func (c *Client) SetBaseURL(url string) {
	c.baseURL = url
}

type generatePart struct {
	Text string `json:"text"`
}

type generateContent struct {
	Role  string         `json:"role,omitempty"`
	Parts []generatePart `json:"parts"`
}

type generateRequest struct {
	Contents          []generateContent `json:"contents"`
	SystemInstruction *generateContent  `json:"systemInstruction,omitempty"`
	GenerationConfig  struct {
		Temperature float64 `json:"temperature"`
	} `json:"generationConfig"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []generatePart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// Generate sends the conversation so far plus the new user message and
// returns the raw model reply. History carries earlier turns in order.
func (c *Client) Generate(ctx context.Context, history []*model.Message, userText string) (string, error) {
	req := generateRequest{
		SystemInstruction: &generateContent{
			Parts: []generatePart{{Text: systemInstruction}},
		},
	}
	req.GenerationConfig.Temperature = c.temperature

	for _, msg := range history {
		req.Contents = append(req.Contents, generateContent{
			Role:  string(msg.Role),
			Parts: []generatePart{{Text: msg.Text}},
		})
	}
	req.Contents = append(req.Contents, generateContent{
		Role:  string(model.RoleUser),
		Parts: []generatePart{{Text: userText}},
	})

	body, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	logging.DebugLog("sending chat request",
		logging.KeyURL, logging.MaskURL(url),
		"turns", len(req.Contents))

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("%w: %v", apperrors.ErrChatUnavailable, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: %v", apperrors.ErrChatUnavailable, err)
	}

	var parsed generateResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", apperrors.Wrapf(apperrors.ErrChatUnavailable, "unexpected response (HTTP %d)", resp.StatusCode)
	}

	if resp.StatusCode != http.StatusOK {
		if parsed.Error != nil {
			return "", apperrors.Wrapf(apperrors.ErrChatUnavailable, "API error %d: %s", parsed.Error.Code, parsed.Error.Message)
		}
		return "", apperrors.Wrapf(apperrors.ErrChatUnavailable, "HTTP %d", resp.StatusCode)
	}

	var text string
	if len(parsed.Candidates) > 0 {
		for _, part := range parsed.Candidates[0].Content.Parts {
			text += part.Text
		}
	}

	return text, nil
}
