package recording

import (
	"context"
	"sync"

	"github.com/airsenselabs/assistant/internal/domain"
	"github.com/airsenselabs/assistant/internal/observability"
)

// Controller owns the microphone capture lifecycle:
// Idle -> Recording -> Finalizing -> Idle. At most one recording session
// is open at a time; it toggles the listening indicator on the way.
type Controller struct {
	device domain.CaptureDevice
	events domain.EventSink

	mu    sync.Mutex
	state domain.RecordingState
}

func NewController(device domain.CaptureDevice, events domain.EventSink) *Controller {
	return &Controller{
		device: device,
		events: events,
		state:  domain.RecordingStateIdle,
	}
}

// Start acquires the microphone. Calling it while already recording is an
// error, and the running capture continues uninterrupted.
func (c *Controller) Start(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	log := observability.LoggerFromContext(ctx)

	if c.state != domain.RecordingStateIdle {
		log.Warn("start requested while recording")
		return domain.ErrRecordingInProgress
	}

	if err := c.device.Start(ctx); err != nil {
		log.Error("failed to acquire microphone", "error", err)
		return err
	}

	c.state = domain.RecordingStateRecording
	c.events.ListeningChanged(true)
	log.Info("recording started")
	return nil
}

// Stop finalizes the capture and returns the audio payload. The device is
// released and the state returns to Idle on every exit path.
func (c *Controller) Stop(ctx context.Context) (domain.AudioPayload, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	log := observability.LoggerFromContext(ctx)

	if c.state != domain.RecordingStateRecording {
		log.Warn("stop requested while idle")
		return domain.AudioPayload{}, domain.ErrNoActiveRecording
	}

	c.state = domain.RecordingStateFinalizing
	payload, err := c.device.Stop(ctx)

	c.state = domain.RecordingStateIdle
	c.events.ListeningChanged(false)

	if err != nil {
		log.Error("failed to finalize recording", "error", err)
		return domain.AudioPayload{}, err
	}

	log.Info("recording finished", "bytes", len(payload.Data))
	return payload, nil
}

// State reports the current lifecycle state.
func (c *Controller) State() domain.RecordingState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}
