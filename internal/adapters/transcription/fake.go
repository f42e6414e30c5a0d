package transcription

import (
	"context"

	"github.com/airsenselabs/assistant/internal/domain"
)

// Fake returns a scripted transcript, or the configured error.
type Fake struct {
	Text string
	Err  error

	Calls int
}

func NewFake(text string, err error) *Fake {
	return &Fake{Text: text, Err: err}
}

func (f *Fake) Transcribe(_ context.Context, _ domain.AudioPayload) (string, error) {
	f.Calls++
	if f.Err != nil {
		return "", f.Err
	}
	return f.Text, nil
}
