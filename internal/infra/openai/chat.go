package openai

import (
	"context"
	"fmt"

	sdk "github.com/sashabaranov/go-openai"

	"lights-assistant/internal/infra"
)

// Complete issues one chat-completion request with the given history and
// tool definitions and returns the assistant message, which may carry tool
// calls for the caller to execute.
func (c *Client) Complete(ctx context.Context, messages []sdk.ChatCompletionMessage, tools []sdk.Tool) (sdk.ChatCompletionMessage, error) {
	req := sdk.ChatCompletionRequest{
		Model:    c.model,
		Messages: messages,
		Tools:    tools,
	}

	var resp sdk.ChatCompletionResponse
	retryErr := infra.WithRetry(ctx, c.retry, func() error {
		var err error
		resp, err = c.api.CreateChatCompletion(ctx, req)
		return err
	})
	if retryErr != nil {
		return sdk.ChatCompletionMessage{}, fmt.Errorf("chat completion: %w", retryErr)
	}

	if len(resp.Choices) == 0 {
		return sdk.ChatCompletionMessage{}, fmt.Errorf("empty response from completion service")
	}

	return resp.Choices[0].Message, nil
}
