//go:build portaudio
// +build portaudio

package audio

import (
	"bytes"
	"context"
	"encoding/binary"
	"fmt"
	"log/slog"

	"github.com/gordonklaus/portaudio"

	"lights-assistant/internal/domain"
)

const framesPerBuffer = 1024

// MicrophoneSource captures one spoken command per chat turn: it records
// until roughly a second of silence (or a hard cap) and yields the samples
// as WAV audio for transcription.
type MicrophoneSource struct {
	stream     *portaudio.Stream
	frames     []int16
	sampleRate int
	logger     *slog.Logger
}

func NewMicrophoneSource(sampleRate int, logger *slog.Logger) *MicrophoneSource {
	return &MicrophoneSource{
		sampleRate: sampleRate,
		logger:     logger,
	}
}

func (m *MicrophoneSource) Name() string {
	return "microphone"
}

func (m *MicrophoneSource) Start(_ context.Context) error {
	if err := portaudio.Initialize(); err != nil {
		return fmt.Errorf("initializing portaudio: %w", err)
	}

	m.frames = make([]int16, framesPerBuffer)

	stream, err := portaudio.OpenDefaultStream(1, 0, float64(m.sampleRate), framesPerBuffer, m.frames)
	if err != nil {
		return fmt.Errorf("opening stream: %w", err)
	}
	m.stream = stream

	if err := m.stream.Start(); err != nil {
		return fmt.Errorf("starting stream: %w", err)
	}

	m.logger.Info("microphone started", "sampleRate", m.sampleRate)
	return nil
}

func (m *MicrophoneSource) Stop() error {
	if m.stream != nil {
		m.stream.Stop()
		m.stream.Close()
	}
	portaudio.Terminate()
	return nil
}

func (m *MicrophoneSource) Next(ctx context.Context) (domain.Input, error) {
	m.logger.Info("listening")

	samples := make([]int16, 0, m.sampleRate*5)
	silenceThreshold := int16(500)
	silenceFrames := 0
	maxSilenceFrames := m.sampleRate

	for {
		select {
		case <-ctx.Done():
			return domain.Input{}, ctx.Err()
		default:
		}

		if err := m.stream.Read(); err != nil {
			return domain.Input{}, fmt.Errorf("reading from stream: %w", err)
		}
		samples = append(samples, m.frames...)

		isSilent := true
		for _, sample := range m.frames {
			if sample > silenceThreshold || sample < -silenceThreshold {
				isSilent = false
				break
			}
		}

		if isSilent {
			silenceFrames += len(m.frames)
		} else {
			silenceFrames = 0
		}

		if silenceFrames > maxSilenceFrames && len(samples) > m.sampleRate {
			break
		}

		if len(samples) > m.sampleRate*10 {
			break
		}
	}

	wav, err := samplesToWav(samples, m.sampleRate)
	if err != nil {
		return domain.Input{}, err
	}
	return domain.Input{Audio: wav}, nil
}

func samplesToWav(samples []int16, sampleRate int) ([]byte, error) {
	var buf bytes.Buffer

	dataSize := len(samples) * 2
	fileSize := 36 + dataSize

	buf.WriteString("RIFF")
	binary.Write(&buf, binary.LittleEndian, int32(fileSize))
	buf.WriteString("WAVE")

	buf.WriteString("fmt ")
	binary.Write(&buf, binary.LittleEndian, int32(16))
	binary.Write(&buf, binary.LittleEndian, int16(1))
	binary.Write(&buf, binary.LittleEndian, int16(1))
	binary.Write(&buf, binary.LittleEndian, int32(sampleRate))
	binary.Write(&buf, binary.LittleEndian, int32(sampleRate*2))
	binary.Write(&buf, binary.LittleEndian, int16(2))
	binary.Write(&buf, binary.LittleEndian, int16(16))

	buf.WriteString("data")
	binary.Write(&buf, binary.LittleEndian, int32(dataSize))
	for _, sample := range samples {
		binary.Write(&buf, binary.LittleEndian, sample)
	}

	return buf.Bytes(), nil
}
