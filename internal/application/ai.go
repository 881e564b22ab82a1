package application

import (
	"context"

	openai "github.com/sashabaranov/go-openai"

	"lights-assistant/internal/domain"
)

// Completer is the boundary to the external chat-completion service. The
// remote model owns all reasoning and function selection; this side only
// supplies the history and the tool definitions.
type Completer interface {
	Complete(ctx context.Context, messages []openai.ChatCompletionMessage, tools []openai.Tool) (openai.ChatCompletionMessage, error)
}

type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte) (string, error)
}

// InputSource yields user inputs, one per chat turn.
type InputSource interface {
	Start(ctx context.Context) error
	Stop() error
	Next(ctx context.Context) (domain.Input, error)
	Name() string
}
