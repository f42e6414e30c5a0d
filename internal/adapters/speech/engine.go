package speech

import (
	"context"
	"errors"
	"sync"

	"github.com/airsenselabs/assistant/internal/domain"
	"github.com/airsenselabs/assistant/internal/observability"
)

// Engine makes a Synthesizer fire-and-forget and enforces the overlap
// policy: a new utterance cancels the one still playing, so audio from
// two answers never overlaps.
type Engine struct {
	synth domain.Synthesizer

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

func NewEngine(synth domain.Synthesizer) *Engine {
	return &Engine{synth: synth}
}

// Speak starts the utterance and returns immediately.
func (e *Engine) Speak(ctx context.Context, text string, opts domain.SpeechOptions) error {
	e.mu.Lock()
	if e.cancel != nil {
		e.cancel()
		<-e.done
	}

	utterCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	done := make(chan struct{})
	e.cancel = cancel
	e.done = done
	e.mu.Unlock()

	go func() {
		defer close(done)
		defer cancel()

		if err := e.synth.Speak(utterCtx, text, opts); err != nil && !errors.Is(err, context.Canceled) {
			observability.Logger().Warn("speech synthesis failed", "error", err)
		}
	}()
	return nil
}

// Stop cancels the current utterance, if any.
func (e *Engine) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.cancel != nil {
		e.cancel()
		<-e.done
		e.cancel = nil
		e.done = nil
	}
}
