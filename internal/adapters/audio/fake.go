package audio

import (
	"context"
	"sync"

	"github.com/airsenselabs/assistant/internal/domain"
)

// FakeDevice is a scripted capture device for tests.
type FakeDevice struct {
	Payload  domain.AudioPayload
	StartErr error
	StopErr  error

	mu     sync.Mutex
	active bool
	Starts int
	Stops  int
}

func NewFakeDevice(payload domain.AudioPayload) *FakeDevice {
	return &FakeDevice{Payload: payload}
}

func (f *FakeDevice) Start(_ context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.StartErr != nil {
		return f.StartErr
	}
	if f.active {
		return domain.ErrRecordingInProgress
	}
	f.active = true
	f.Starts++
	return nil
}

func (f *FakeDevice) Stop(_ context.Context) (domain.AudioPayload, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.active {
		return domain.AudioPayload{}, domain.ErrNoActiveRecording
	}
	f.active = false
	f.Stops++
	if f.StopErr != nil {
		return domain.AudioPayload{}, f.StopErr
	}
	return f.Payload, nil
}

func (f *FakeDevice) Active() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.active
}
