// ABOUTME: OpenAI client for embeddings, Q&A pair generation and moderation
// ABOUTME: Uses text-embedding-3-small for embeddings, gpt-4o-mini for generation (configurable)
package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/sfbu/campus-assistant/internal/config"
	"github.com/sfbu/campus-assistant/internal/models"
	"github.com/sfbu/campus-assistant/internal/util"
	openai "github.com/sashabaranov/go-openai"
)

// Client wraps the OpenAI API client with retry logic
type Client struct {
	client         *openai.Client
	chatModel      string
	embeddingModel openai.EmbeddingModel
	timeout        time.Duration
	maxRetries     int
	retryDelay     time.Duration
}

// NewClient creates a new OpenAI client from configuration
func NewClient(cfg *config.Config) (*Client, error) {
	if cfg.OpenAIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}

	return &Client{
		client:         openai.NewClient(cfg.OpenAIKey),
		chatModel:      cfg.ChatModel,
		embeddingModel: openai.EmbeddingModel(cfg.EmbeddingModel),
		timeout:        cfg.Timeout,
		maxRetries:     cfg.MaxRetries,
		retryDelay:     cfg.RetryDelay,
	}, nil
}

// GetClient returns the underlying OpenAI client for direct use
func (c *Client) GetClient() *openai.Client {
	return c.client
}

// GenerateEmbedding generates an embedding vector for the given text.
// Retries with exponential backoff; honors caller cancellation between
// and during attempts.
func (c *Client) GenerateEmbedding(ctx context.Context, text string) ([]float64, error) {
	var lastErr error

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			time.Sleep(util.CalculateBackoff(c.retryDelay, attempt))
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		attemptCtx, cancel := context.WithTimeout(ctx, c.timeout)

		resp, err := c.client.CreateEmbeddings(attemptCtx, openai.EmbeddingRequestStrings{
			Input: []string{text},
			Model: c.embeddingModel,
		})

		if err != nil {
			cancel()
			lastErr = fmt.Errorf("attempt %d: %w", attempt+1, err)
			continue
		}

		if len(resp.Data) == 0 {
			cancel()
			lastErr = fmt.Errorf("attempt %d: no embeddings returned", attempt+1)
			continue
		}

		// Convert []float32 to []float64
		embedding32 := resp.Data[0].Embedding
		embedding64 := make([]float64, len(embedding32))
		for i, v := range embedding32 {
			embedding64[i] = float64(v)
		}

		cancel()
		return embedding64, nil
	}

	return nil, fmt.Errorf("failed to generate embedding after %d attempts: %w", c.maxRetries+1, lastErr)
}

// GenerateQAPairs turns an extracted text section into question/answer
// training records using chat completion.
func (c *Client) GenerateQAPairs(ctx context.Context, section models.ExtractedSection) ([]models.TrainingRecord, error) {
	systemPrompt := `You are a training data assistant for a university chatbot. Given a section of university documentation, produce question-answer pairs a prospective or current student might ask.

Return ONLY a JSON array of objects, each with "question" and "answer" string fields. No additional text.`

	userPrompt := fmt.Sprintf("Section: %s\n\nContent:\n%s", section.Section, section.Content)

	var lastErr error

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			time.Sleep(util.CalculateBackoff(c.retryDelay, attempt))
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		attemptCtx, cancel := context.WithTimeout(ctx, c.timeout)

		resp, err := c.client.CreateChatCompletion(attemptCtx, openai.ChatCompletionRequest{
			Model: c.chatModel,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleSystem,
					Content: systemPrompt,
				},
				{
					Role:    openai.ChatMessageRoleUser,
					Content: userPrompt,
				},
			},
			Temperature: 0.7,
		})

		if err != nil {
			cancel()
			lastErr = fmt.Errorf("attempt %d: %w", attempt+1, err)
			continue
		}

		if len(resp.Choices) == 0 {
			cancel()
			lastErr = fmt.Errorf("attempt %d: no completion choices returned", attempt+1)
			continue
		}

		content := resp.Choices[0].Message.Content

		type qaPair struct {
			Question string `json:"question"`
			Answer   string `json:"answer"`
		}

		var pairs []qaPair
		if err := json.Unmarshal([]byte(content), &pairs); err != nil {
			cancel()
			lastErr = fmt.Errorf("attempt %d: failed to parse JSON: %w", attempt+1, err)
			continue
		}

		records := make([]models.TrainingRecord, len(pairs))
		for i, p := range pairs {
			records[i] = models.TrainingRecord{
				Question: p.Question,
				Answer:   p.Answer,
				Source:   section.Source,
			}
		}

		cancel()
		return records, nil
	}

	return nil, fmt.Errorf("failed to generate Q&A pairs after %d attempts: %w", c.maxRetries+1, lastErr)
}

// ModerateText runs the moderation endpoint over the given text and
// reports whether it was flagged.
func (c *Client) ModerateText(ctx context.Context, text string) (bool, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.client.Moderations(attemptCtx, openai.ModerationRequest{
		Input: text,
		Model: openai.ModerationOmniLatest,
	})
	if err != nil {
		return false, fmt.Errorf("moderation request: %w", err)
	}
	if len(resp.Results) == 0 {
		return false, fmt.Errorf("no moderation results returned")
	}

	return resp.Results[0].Flagged, nil
}
