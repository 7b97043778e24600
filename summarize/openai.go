package summarize

import (
	"context"
	"fmt"

	"github.com/sashabaranov/go-openai"
)

type OpenAI struct {
	client *openai.Client
}

func NewOpenAI(apiKey string) *OpenAI {
	return &OpenAI{
		client: openai.NewClient(apiKey),
	}
}

func (o *OpenAI) Generate(ctx context.Context, req GenerationRequest) (string, error) {
	// topK is not applied, the chat completion API has no such parameter
	resp, err := o.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model:       openai.GPT4,
			Temperature: req.Temperature,
			TopP:        req.TopP,
			MaxTokens:   int(req.MaxOutputTokens),
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: req.Prompt,
				},
			},
		})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrGeneration, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: empty response", ErrGeneration)
	}

	text := resp.Choices[len(resp.Choices)-1].Message.Content
	if text == "" {
		return "", fmt.Errorf("%w: empty response", ErrGeneration)
	}

	return text, nil
}
