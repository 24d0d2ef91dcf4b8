// Package assistant answers shop questions through an OpenAI compatible
// chat-completions API, keeping each user's conversation in chat.Repository.
package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/VS237/momshop/pkg/chat"
	"github.com/VS237/momshop/pkg/logger"
)

const (
	historyWindow = 10
	maxHistory    = 50
	maxTokens     = 1000
)

var (
	ErrNotConfigured = errors.New("assistant API key is not configured")
	ErrEmptyMessage  = errors.New("message cannot be empty")
)

// InventoryProvider describes the current stock for the system prompt
type InventoryProvider interface {
	InventorySummary(ctx context.Context) (string, error)
}

// Config holds the endpoint settings and the facts the assistant may quote
type Config struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration

	ShopName string
	Facts    []string
	Support  string

	// Referer is sent as HTTP-Referer, which OpenRouter requires
	Referer string
}

// Client talks to the completions endpoint
type Client struct {
	cfg        Config
	http       *http.Client
	repository chat.Repository
	inventory  InventoryProvider
	logger     logger.Logger
}

// NewClient creates a Client. A Client without an API key is valid but
// every Reply returns ErrNotConfigured.
func NewClient(cfg Config, repository chat.Repository, inventory InventoryProvider, log logger.Logger) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return &Client{
		cfg:        cfg,
		http:       &http.Client{Timeout: cfg.Timeout},
		repository: repository,
		inventory:  inventory,
		logger:     log,
	}
}

// Configured reports whether an API key is set
func (c *Client) Configured() bool {
	return c.cfg.APIKey != ""
}

// Message is a chat-completions message
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type completionRequest struct {
	Model     string    `json:"model"`
	Messages  []Message `json:"messages"`
	MaxTokens int       `json:"max_tokens,omitempty"`
}

type completionResponse struct {
	ID      string `json:"id"`
	Model   string `json:"model"`
	Choices []struct {
		Message      Message `json:"message"`
		FinishReason string  `json:"finish_reason"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
	} `json:"usage"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Reply stores the user's message, asks the model with the recent history
// and stores the answer
func (c *Client) Reply(ctx context.Context, userID, message string) (string, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return "", ErrEmptyMessage
	}
	if !c.Configured() {
		return "", ErrNotConfigured
	}

	userMessage := &chat.Message{
		UserID:  userID,
		Role:    chat.RoleUser,
		Content: message,
	}
	if err := c.repository.SaveMessage(ctx, userMessage); err != nil {
		return "", fmt.Errorf("error saving user message: %w", err)
	}

	history, err := c.repository.GetUserHistory(ctx, userID, historyWindow, 0)
	if err != nil {
		c.logger.Error("error loading chat history", "error", err)
	}

	messages := []Message{{Role: chat.RoleSystem, Content: c.systemPrompt(ctx)}}
	// history is newest first
	for i := len(history) - 1; i >= 0; i-- {
		msg := history[i]
		if msg.Role == chat.RoleSystem {
			continue
		}
		messages = append(messages, Message{Role: msg.Role, Content: msg.Content})
	}
	if len(history) == 0 || history[0].Content != message {
		messages = append(messages, Message{Role: chat.RoleUser, Content: message})
	}

	reply, err := c.complete(ctx, messages)
	if err != nil {
		return "", err
	}

	assistantMessage := &chat.Message{
		UserID:  userID,
		Role:    chat.RoleAssistant,
		Content: reply,
	}
	if err := c.repository.SaveMessage(ctx, assistantMessage); err != nil {
		c.logger.Error("error saving assistant message", "error", err)
	}
	return reply, nil
}

// History returns the user's latest messages, newest first
func (c *Client) History(ctx context.Context, userID string) ([]chat.Message, error) {
	messages, err := c.repository.GetUserHistory(ctx, userID, maxHistory, 0)
	if err != nil {
		return nil, fmt.Errorf("error getting chat history: %w", err)
	}
	return messages, nil
}

// ClearHistory deletes the user's conversation
func (c *Client) ClearHistory(ctx context.Context, userID string) error {
	if err := c.repository.DeleteUserHistory(ctx, userID); err != nil {
		return fmt.Errorf("error deleting chat history: %w", err)
	}
	return nil
}

func (c *Client) systemPrompt(ctx context.Context) string {
	inventory := ""
	if c.inventory != nil {
		summary, err := c.inventory.InventorySummary(ctx)
		if err != nil {
			c.logger.Warn("inventory summary unavailable", "error", err)
		}
		inventory = summary
	}

	var b strings.Builder
	fmt.Fprintf(&b, "You are the official AI assistant of %s, a mini market.\n\n", c.cfg.ShopName)
	if len(c.cfg.Facts) > 0 {
		b.WriteString("SHOP FACTS:\n")
		for _, f := range c.cfg.Facts {
			b.WriteString("- " + f + "\n")
		}
		b.WriteString("\n")
	}
	b.WriteString("INVENTORY:\n")
	if inventory == "" {
		b.WriteString("(no products listed)\n")
	} else {
		b.WriteString(inventory + "\n")
	}
	b.WriteString("\nINSTRUCTIONS:\n")
	b.WriteString("- When a customer asks about a product, check the inventory above.\n")
	fmt.Fprintf(&b, "- If you do not know the answer, or the question is a complaint, a refund or a product not in the list, "+
		"say you do not have that information and point to human support at %s.\n", c.cfg.Support)
	b.WriteString("- Keep answers helpful and concise.")
	return b.String()
}

func (c *Client) complete(ctx context.Context, messages []Message) (string, error) {
	reqJSON, err := json.Marshal(completionRequest{
		Model:     c.cfg.Model,
		Messages:  messages,
		MaxTokens: maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("error encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/chat/completions", bytes.NewReader(reqJSON))
	if err != nil {
		return "", fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	if c.cfg.Referer != "" {
		req.Header.Set("HTTP-Referer", c.cfg.Referer)
	}

	c.logger.Info("sending completion request", "model", c.cfg.Model, "messages", len(messages))

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("error calling assistant API: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("error reading assistant response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.Error("assistant API returned an error", "status", resp.Status, "body", string(body))
		return "", fmt.Errorf("assistant API error: %s", resp.Status)
	}

	var out completionResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return "", fmt.Errorf("error decoding assistant response: %w", err)
	}
	if out.Error != nil {
		return "", fmt.Errorf("assistant API error: %s", out.Error.Message)
	}
	if len(out.Choices) == 0 || strings.TrimSpace(out.Choices[0].Message.Content) == "" {
		return "", errors.New("assistant returned an empty reply")
	}

	c.logger.Info("completion received",
		"model", out.Model,
		"prompt_tokens", out.Usage.PromptTokens,
		"completion_tokens", out.Usage.CompletionTokens)

	return out.Choices[0].Message.Content, nil
}
