// Package llm предоставляет интеграцию с OpenAI для обогащения профилей
// (определение пола, оценка возраста) и диалогового агента с инструментами.
// Все запросы проходят через rate limiter.
package llm

import (
	"context"

	"github.com/sashabaranov/go-openai"

	"linkedinAgent/internal/logger"
)

type Client struct {
	client      *openai.Client
	model       string
	maxTokens   int
	log         *logger.Zap
	rateLimiter *RateLimiter
}

func NewClient(apiKey, model string, maxTokens int, log *logger.Zap) *Client {
	return NewClientWithRateLimit(apiKey, model, maxTokens, log, 60, 90000)
}

func NewClientWithRateLimit(apiKey, model string, maxTokens int, log *logger.Zap, requestsPerMinute, tokensPerHour int) *Client {
	return &Client{
		client:      openai.NewClient(apiKey),
		model:       model,
		maxTokens:   maxTokens,
		log:         log,
		rateLimiter: NewRateLimiter(requestsPerMinute, tokensPerHour),
	}
}

// createChatCompletionWithRateLimit выполняет запрос с проверкой rate limit
func (c *Client) createChatCompletionWithRateLimit(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	if err := c.rateLimiter.AllowRequest(ctx); err != nil {
		return openai.ChatCompletionResponse{}, err
	}

	// Грубая оценка количества токенов: ~4 символа на токен
	estimatedTokens := 0
	for _, msg := range req.Messages {
		estimatedTokens += len(msg.Content) / 4
	}
	estimatedTokens += req.MaxTokens

	if err := c.rateLimiter.AllowTokens(ctx, estimatedTokens); err != nil {
		return openai.ChatCompletionResponse{}, err
	}

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return resp, err
	}

	// Корректируем по фактическому использованию
	if resp.Usage.TotalTokens > estimatedTokens {
		c.rateLimiter.ConsumeTokens(resp.Usage.TotalTokens - estimatedTokens)
	}

	return resp, nil
}

// Chat отправляет транскрипт сообщений с декларациями инструментов и
// возвращает ответное сообщение ассистента как есть (текст и/или tool calls).
func (c *Client) Chat(ctx context.Context, messages []openai.ChatCompletionMessage, tools []openai.Tool) (openai.ChatCompletionMessage, error) {
	resp, err := c.createChatCompletionWithRateLimit(ctx, openai.ChatCompletionRequest{
		Model:     c.model,
		MaxTokens: c.maxTokens,
		Messages:  messages,
		Tools:     tools,
	})
	if err != nil {
		return openai.ChatCompletionMessage{}, err
	}
	if len(resp.Choices) == 0 {
		return openai.ChatCompletionMessage{
			Role: openai.ChatMessageRoleAssistant,
		}, nil
	}
	return resp.Choices[0].Message, nil
}

func (c *Client) complete(ctx context.Context, prompt string) (string, error) {
	resp, err := c.createChatCompletionWithRateLimit(ctx, openai.ChatCompletionRequest{
		Model:     c.model,
		MaxTokens: c.maxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}
