package gpt

import (
	"context"
	"fmt"
	"strings"

	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"

	"github.com/notch-0314/heattech-backend/internal"
)

// Client wraps the OpenAI chat-completion API.
type Client struct {
	client openai.Client
	model  string
	logger internal.Logger
}

type ConnectProps struct {
	APIKey string
	Logger internal.Logger
}

func Connect(args ConnectProps) *Client {
	client := openai.NewClient(
		option.WithAPIKey(args.APIKey),
	)
	return &Client{
		client: client,
		model:  openai.ChatModelGPT4Turbo,
		logger: args.Logger,
	}
}

// Complete issues one chat completion with the given system prompt and user
// messages, returning the trimmed text of the first choice.
func (c *Client) Complete(ctx context.Context, system string, user ...string) (string, error) {
	messages := make([]openai.ChatCompletionMessageParamUnion, 0, len(user)+1)
	messages = append(messages, openai.SystemMessage(system))
	for _, u := range user {
		messages = append(messages, openai.UserMessage(u))
	}

	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:    c.model,
		Messages: messages,
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no completion choices returned")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
