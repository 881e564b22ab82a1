package application

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	openai "github.com/sashabaranov/go-openai"

	"lights-assistant/internal/tools"
)

// maxToolRounds caps model/tool round trips within one user turn.
const maxToolRounds = 8

// Session holds the conversation history for one process run and drives the
// tool-calling loop: send history plus tool definitions, execute whatever
// tool calls come back, feed the results in, and repeat until the model
// answers with plain text.
type Session struct {
	completer Completer
	tools     *tools.Table
	history   []openai.ChatCompletionMessage
	logger    *slog.Logger
}

func NewSession(completer Completer, table *tools.Table, deviceSummary string, logger *slog.Logger) *Session {
	return &Session{
		completer: completer,
		tools:     table,
		history: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: systemPrompt(deviceSummary),
			},
		},
		logger: logger,
	}
}

func systemPrompt(deviceSummary string) string {
	return fmt.Sprintf(`You are a home assistant that controls a small set of smart lights.

Use the get_lights function to check the lights and their current state, and
the change_state function to turn a light on or off. If a function reports an
error (for example an unknown light id), explain the problem to the user in
plain language instead of retrying.

Initial state of the lights:
%s
Answer briefly and conversationally.`, deviceSummary)
}

// Send appends the user text to the history and returns the model's final
// natural-language reply for this turn.
func (s *Session) Send(ctx context.Context, text string) (string, error) {
	s.history = append(s.history, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: text,
	})

	for round := 0; round < maxToolRounds; round++ {
		msg, err := s.completer.Complete(ctx, s.history, s.tools.Definitions())
		if err != nil {
			return "", fmt.Errorf("completing chat: %w", err)
		}

		s.history = append(s.history, msg)

		if len(msg.ToolCalls) == 0 {
			return msg.Content, nil
		}

		for _, call := range msg.ToolCalls {
			s.history = append(s.history, s.execute(ctx, call))
		}
	}

	return "", fmt.Errorf("no final reply after %d tool rounds", maxToolRounds)
}

func (s *Session) execute(ctx context.Context, call openai.ToolCall) openai.ChatCompletionMessage {
	s.logger.Info("tool call",
		"tool", call.Function.Name,
		"arguments", call.Function.Arguments,
	)

	content, err := s.tools.Dispatch(ctx, call.Function.Name, json.RawMessage(call.Function.Arguments))
	if err != nil {
		// Relayed to the model as the tool result so the reply can explain
		// the failure; the conversation continues.
		s.logger.Warn("tool call failed", "tool", call.Function.Name, "error", err)
		content = fmt.Sprintf("error: %s", err)
	}

	return openai.ChatCompletionMessage{
		Role:       openai.ChatMessageRoleTool,
		Content:    content,
		ToolCallID: call.ID,
	}
}
