package console

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"lights-assistant/internal/domain"
)

// Source reads chat turns line by line, prompting before each one. It
// returns io.EOF when the input is exhausted.
type Source struct {
	out     io.Writer
	scanner *bufio.Scanner
}

func NewSource(in io.Reader, out io.Writer) *Source {
	return &Source{
		out:     out,
		scanner: bufio.NewScanner(in),
	}
}

func (s *Source) Name() string {
	return "console"
}

func (s *Source) Start(_ context.Context) error {
	return nil
}

func (s *Source) Stop() error {
	return nil
}

func (s *Source) Next(ctx context.Context) (domain.Input, error) {
	if err := ctx.Err(); err != nil {
		return domain.Input{}, err
	}

	fmt.Fprint(s.out, "User > ")

	if !s.scanner.Scan() {
		if err := s.scanner.Err(); err != nil {
			return domain.Input{}, fmt.Errorf("reading stdin: %w", err)
		}
		return domain.Input{}, io.EOF
	}

	return domain.Input{Text: s.scanner.Text()}, nil
}
