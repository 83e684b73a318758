package llm

import (
	"context"
	"fmt"

	"github.com/sashabaranov/go-openai"
)

// OpenAIClient is an alternative provider for running the bot against any
// OpenAI-compatible chat completion API instead of the Modal endpoint.
type OpenAIClient struct {
	client    *openai.Client
	baseModel string
}

func NewOpenAI(apiKey, baseURL, baseModel string) *OpenAIClient {
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	return &OpenAIClient{
		client:    openai.NewClientWithConfig(config),
		baseModel: baseModel,
	}
}

func (c *OpenAIClient) Generate(ctx context.Context, messages []Message, params Params) (Response, error) {
	model := params.ModelID
	if model == "" {
		model = c.baseModel
	}

	var oaMsgs []openai.ChatCompletionMessage
	for _, m := range messages {
		oaMsgs = append(oaMsgs, openai.ChatCompletionMessage{Role: m.Role, Content: m.Content})
	}

	req := openai.ChatCompletionRequest{
		Model:       model,
		Messages:    oaMsgs,
		Temperature: float32(params.Temperature),
		MaxTokens:   params.MaxTokens,
		TopP:        float32(params.TopP),
	}

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return Response{}, fmt.Errorf("failed to create chat completion: %w", err)
	}

	return Response{
		Content: resp.Choices[0].Message.Content,
		Model:   model,
		Tokens:  resp.Usage.TotalTokens,
	}, nil
}
