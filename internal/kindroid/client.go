// Package kindroid is the HTTP client for the hosted Kindroid personality
// API. One network call per message; startup configuration is immutable.
package kindroid

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/puettse/cassian/internal/prompt"
)

// APIClient handles interactions with the Kindroid API
type APIClient struct {
	baseURL      string
	apiKey       string
	personaID    string
	personaName  string
	enableFilter bool
	timeout      time.Duration
	httpClient   *http.Client
	logger       *slog.Logger
	now          func() time.Time
}

// Option configures an APIClient
type Option func(*APIClient)

// WithTimeout overrides the per-request timeout
func WithTimeout(timeout time.Duration) Option {
	return func(c *APIClient) {
		c.timeout = timeout
		c.httpClient.Timeout = timeout
	}
}

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(client *http.Client) Option {
	return func(c *APIClient) {
		c.httpClient = client
	}
}

// WithClock replaces the timestamp source
func WithClock(now func() time.Time) Option {
	return func(c *APIClient) {
		c.now = now
	}
}

// NewAPIClient creates a new Kindroid client with proper timeouts
func NewAPIClient(baseURL, apiKey, personaID, personaName string, enableFilter bool, logger *slog.Logger, opts ...Option) *APIClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	client := &APIClient{
		baseURL:      strings.TrimRight(baseURL, "/"),
		apiKey:       apiKey,
		personaID:    personaID,
		personaName:  personaName,
		enableFilter: enableFilter,
		timeout:      DefaultTimeout,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		logger: logger,
		now:    time.Now,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// SendMessage sends a single composed prompt to /send-message and returns
// the reply text.
func (c *APIClient) SendMessage(ctx context.Context, p prompt.Prompt) (string, error) {
	body := sendMessageRequest{
		AIID:    c.personaID,
		Message: renderMessage(c.personaName, p),
	}

	return c.post(ctx, "/send-message", body, nil)
}

// DiscordBot sends the prompt through /discord-bot as a short conversation:
// a system entry carrying the static context, then the user entry.
func (c *APIClient) DiscordBot(ctx context.Context, p prompt.Prompt) (string, error) {
	now := c.now().UTC().Format(time.RFC3339)

	conversation := make([]conversationEntry, 0, 2)
	if p.Context != "" {
		conversation = append(conversation, conversationEntry{
			Username:  systemUsername,
			Text:      p.Context,
			Timestamp: now,
		})
	}
	conversation = append(conversation, conversationEntry{
		Username:  p.Author,
		Text:      p.Message,
		Timestamp: now,
	})

	body := discordBotRequest{
		ShareCode:    c.personaID,
		EnableFilter: c.enableFilter,
		Conversation: conversation,
	}

	headers := map[string]string{
		"X-Kindroid-Requester": requesterHash(p.Author),
	}

	return c.post(ctx, "/discord-bot", body, headers)
}

// post performs the request with a single retry on transport errors and
// 5xx responses. 4xx responses are returned immediately.
func (c *APIClient) post(ctx context.Context, path string, body any, headers map[string]string) (string, error) {
	jsonData, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var lastErr error
	for attempt := 0; attempt < 2; attempt++ {
		if attempt > 0 {
			c.logger.WarnContext(ctx, "retrying Kindroid request",
				"path", path,
				"error", lastErr)
		}

		reply, retry, err := c.doOnce(ctx, path, jsonData, headers)
		if err == nil {
			return reply, nil
		}
		if !retry {
			return "", err
		}
		lastErr = err
	}

	return "", lastErr
}

func (c *APIClient) doOnce(ctx context.Context, path string, jsonData []byte, headers map[string]string) (reply string, retry bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(jsonData))
	if err != nil {
		return "", false, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.apiKey))
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.ErrorContext(ctx, "Kindroid request failed",
			"path", path,
			"error", err)
		return "", ctx.Err() == nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		c.logger.ErrorContext(ctx, "Kindroid API error",
			"path", path,
			"status_code", resp.StatusCode,
			"response_body", string(respBody))
		return "", retryable(resp.StatusCode), NewAPIError(resp.StatusCode, string(respBody), nil)
	}

	var result replyResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", false, fmt.Errorf("failed to decode response: %w", err)
	}

	if result.Reply == "" {
		c.logger.ErrorContext(ctx, "empty reply from Kindroid", "path", path)
		return "", false, NewAPIError(resp.StatusCode, "no reply received", nil)
	}

	c.logger.InfoContext(ctx, "received Kindroid reply",
		"path", path,
		"reply_length", len(result.Reply))

	return result.Reply, false, nil
}

// renderMessage flattens a composed prompt into the single message string
// the /send-message endpoint expects.
func renderMessage(personaName string, p prompt.Prompt) string {
	var sb strings.Builder

	if p.Context != "" {
		sb.WriteString(p.Context)
		sb.WriteString("\n\n")
	}
	if p.Mood != "" && p.Mood != prompt.MoodNeutral {
		fmt.Fprintf(&sb, "State: %s\n\n", p.Mood)
	}
	fmt.Fprintf(&sb, "%s: %q\n%s:", p.Author, p.Message, personaName)

	return sb.String()
}

// requesterHash anonymizes the requester hint the way the hosted API
// expects: the first 32 hex chars of its sha256 digest.
func requesterHash(hint string) string {
	sum := sha256.Sum256([]byte(hint))
	return hex.EncodeToString(sum[:])[:requesterHashSize]
}
