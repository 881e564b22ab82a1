package application

import (
	"context"
	"fmt"
	"io"
	"log/slog"
)

// Assistant runs the chat loop: read one input, resolve it to text, forward
// it to the session, print the reply. A literal "exit" ends the loop with
// success.
type Assistant struct {
	input   InputSource
	stt     Transcriber
	session *Session
	out     io.Writer
	logger  *slog.Logger
}

func NewAssistant(
	input InputSource,
	stt Transcriber,
	session *Session,
	out io.Writer,
	logger *slog.Logger,
) *Assistant {
	return &Assistant{
		input:   input,
		stt:     stt,
		session: session,
		out:     out,
		logger:  logger,
	}
}

func (a *Assistant) Run(ctx context.Context) error {
	a.logger.Info("starting input source", "source", a.input.Name())
	if err := a.input.Start(ctx); err != nil {
		return fmt.Errorf("starting input: %w", err)
	}
	defer a.input.Stop()

	a.logger.Info("assistant ready")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		done, err := a.processOneTurn(ctx)
		if done {
			return err
		}
		if err != nil {
			a.logger.Error("processing turn", "error", err)
		}
	}
}

// processOneTurn handles a single chat turn. done is true when the loop
// should stop: user exit, input exhausted, or context cancelled.
func (a *Assistant) processOneTurn(ctx context.Context) (done bool, err error) {
	in, err := a.input.Next(ctx)
	if err != nil {
		if err == io.EOF {
			return true, nil
		}
		if ctx.Err() != nil {
			return true, ctx.Err()
		}
		return false, fmt.Errorf("reading input: %w", err)
	}

	text := in.Text

	if len(in.Audio) > 0 {
		a.logger.Info("received audio", "bytes", len(in.Audio))
		text, err = a.stt.Transcribe(ctx, in.Audio)
		if err != nil {
			return false, fmt.Errorf("transcribing: %w", err)
		}
		a.logger.Info("transcribed", "text", text)
	} else if in.Text == "exit" {
		return true, nil
	}

	if text == "" {
		return false, nil
	}

	reply, err := a.session.Send(ctx, text)
	if err != nil {
		return false, fmt.Errorf("chat turn: %w", err)
	}

	fmt.Fprintf(a.out, "Assistant > %s\n", reply)
	return false, nil
}
