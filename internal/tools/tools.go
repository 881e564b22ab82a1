package tools

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
	"github.com/sashabaranov/go-openai/jsonschema"

	"lights-assistant/internal/registry"
)

// Handler executes one tool call. The string result is handed back to the
// model verbatim as the tool message content; errors are relayed the same
// way, so the model can explain the failure conversationally.
type Handler func(ctx context.Context, args json.RawMessage) (string, error)

// Table is the control surface handed to the chat session: every function
// the model may call, described by name, parameter schema, and bound
// handler. It is built once at startup over the device registry.
type Table struct {
	defs     []openai.Tool
	handlers map[string]Handler
}

// ForRegistry builds the control surface for a device registry.
func ForRegistry(reg *registry.Registry) *Table {
	t := &Table{handlers: make(map[string]Handler)}

	t.register(openai.FunctionDefinition{
		Name:        "get_lights",
		Description: "Gets a list of lights and their current state",
		Parameters: jsonschema.Definition{
			Type:       jsonschema.Object,
			Properties: map[string]jsonschema.Definition{},
		},
	}, func(_ context.Context, _ json.RawMessage) (string, error) {
		return marshalResult(reg.Lights())
	})

	t.register(openai.FunctionDefinition{
		Name:        "change_state",
		Description: "Changes the state of the light with the given id",
		Parameters: jsonschema.Definition{
			Type: jsonschema.Object,
			Properties: map[string]jsonschema.Definition{
				"id": {
					Type:        jsonschema.Integer,
					Description: "The id of the light to change",
				},
				"is_on": {
					Type:        jsonschema.Boolean,
					Description: "The new state for the light (true for on, false for off)",
				},
			},
			Required: []string{"id", "is_on"},
		},
	}, func(_ context.Context, args json.RawMessage) (string, error) {
		var params struct {
			ID   *int  `json:"id"`
			IsOn *bool `json:"is_on"`
		}
		if err := strictUnmarshal(args, &params); err != nil {
			return "", fmt.Errorf("invalid change_state arguments: %w", err)
		}
		if params.ID == nil || params.IsOn == nil {
			return "", fmt.Errorf("invalid change_state arguments: id and is_on are required")
		}

		dev, err := reg.SetState(*params.ID, *params.IsOn)
		if err != nil {
			return "", err
		}
		return marshalResult(dev)
	})

	return t
}

func (t *Table) register(def openai.FunctionDefinition, h Handler) {
	t.defs = append(t.defs, openai.Tool{
		Type:     openai.ToolTypeFunction,
		Function: &def,
	})
	t.handlers[def.Name] = h
}

// Definitions returns the tool definitions to attach to completion requests.
func (t *Table) Definitions() []openai.Tool {
	return t.defs
}

// Dispatch runs the named tool with the given JSON arguments.
func (t *Table) Dispatch(ctx context.Context, name string, args json.RawMessage) (string, error) {
	h, ok := t.handlers[name]
	if !ok {
		return "", fmt.Errorf("unknown tool: %s", name)
	}
	return h(ctx, args)
}

func marshalResult(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("marshaling tool result: %w", err)
	}
	return string(data), nil
}

// strictUnmarshal rejects arguments with unknown fields or mistyped values
// instead of coercing them.
func strictUnmarshal(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
