package openai

import (
	"bytes"
	"context"
	"fmt"

	sdk "github.com/sashabaranov/go-openai"

	"lights-assistant/internal/infra"
)

// Transcribe sends captured WAV audio to Whisper and returns the text.
func (c *Client) Transcribe(ctx context.Context, audio []byte) (string, error) {
	req := sdk.AudioRequest{
		Model:    sdk.Whisper1,
		FilePath: "audio.wav",
		Reader:   bytes.NewReader(audio),
		Language: c.language,
	}

	var resp sdk.AudioResponse
	retryErr := infra.WithRetry(ctx, c.retry, func() error {
		var err error
		resp, err = c.api.CreateTranscription(ctx, req)
		return err
	})
	if retryErr != nil {
		return "", fmt.Errorf("transcribing audio: %w", retryErr)
	}

	return resp.Text, nil
}
