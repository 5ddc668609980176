// Package extraction reads receipt line items with a vision-capable chat model.
//
// Any OpenAI-compatible endpoint works; the default configuration points at
// Gemini's OpenAI compatibility layer.
package extraction

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"

	openai "github.com/sashabaranov/go-openai"

	"github.com/mmynk/billsplitter/internal/intake"
	"github.com/mmynk/billsplitter/internal/models"
)

var (
	ErrNotConfigured = errors.New("receipt extraction is not configured")
	ErrEmptyResponse = errors.New("empty extraction response")
)

const systemPrompt = `You extract line items from photographed receipts.

Read every purchased item and its price from the receipt image.
If a line covers more than one piece (for example "2 x Burger 25.98"),
split it into one item per piece, each with the unit price.
Ignore subtotals, taxes, service charges, tips and payment lines.

Respond with a single JSON object and nothing else:
{"items": [{"name": "Burger", "price": 12.99}, {"name": "Fries", "price": 4.99}]}`

const userPrompt = "Extract items and prices from the receipt."

// Config configures the extraction client.
type Config struct {
	APIKey  string
	BaseURL string
	Model   string
}

// Client implements intake.Extractor.
type Client struct {
	client *openai.Client
	model  string
}

var _ intake.Extractor = (*Client)(nil)

// NewClient creates an extraction client. A client without an API key is
// valid but every Extract call fails with ErrNotConfigured.
func NewClient(cfg Config) *Client {
	if cfg.APIKey == "" {
		return &Client{model: cfg.Model}
	}
	config := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		config.BaseURL = cfg.BaseURL
	}
	return &Client{
		client: openai.NewClientWithConfig(config),
		model:  cfg.Model,
	}
}

// Extract sends the receipt to the model and parses the items it reports.
func (c *Client) Extract(ctx context.Context, img intake.Image) ([]models.Candidate, error) {
	if c.client == nil {
		return nil, ErrNotConfigured
	}
	if err := img.Validate(); err != nil {
		return nil, err
	}

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: 0.2,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{Type: openai.ChatMessagePartTypeText, Text: userPrompt},
					{
						Type: openai.ChatMessagePartTypeImageURL,
						ImageURL: &openai.ChatMessageImageURL{
							URL:    imageURL(img),
							Detail: openai.ImageURLDetailAuto,
						},
					},
				},
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("extraction request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, ErrEmptyResponse
	}
	return ParseCandidates(resp.Choices[0].Message.Content)
}

// imageURL returns the URL as given, or the inline bytes as a data URL.
func imageURL(img intake.Image) string {
	if img.URL != "" {
		return img.URL
	}
	contentType := img.ContentType
	if contentType == "" {
		contentType = http.DetectContentType(img.Data)
	}
	return "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(img.Data)
}
