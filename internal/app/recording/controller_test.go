package recording_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/airsenselabs/assistant/internal/adapters/audio"
	"github.com/airsenselabs/assistant/internal/app/recording"
	"github.com/airsenselabs/assistant/internal/domain"
)

type recordingEvents struct {
	mu        sync.Mutex
	listening []bool
}

func (e *recordingEvents) ListeningChanged(active bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.listening = append(e.listening, active)
}

func (e *recordingEvents) MessagesChanged([]*domain.Message) {}
func (e *recordingEvents) Alert(string, string)              {}

func TestStartStopRoundTrip(t *testing.T) {
	payload := domain.AudioPayload{Data: []byte("RIFF"), MIMEType: "audio/wav"}
	device := audio.NewFakeDevice(payload)
	events := &recordingEvents{}
	c := recording.NewController(device, events)

	require.Equal(t, domain.RecordingStateIdle, c.State())

	require.NoError(t, c.Start(context.Background()))
	require.Equal(t, domain.RecordingStateRecording, c.State())

	got, err := c.Stop(context.Background())
	require.NoError(t, err)
	require.Equal(t, payload, got)
	require.Equal(t, domain.RecordingStateIdle, c.State())

	require.Equal(t, []bool{true, false}, events.listening)
}

func TestDoubleStartKeepsRecording(t *testing.T) {
	device := audio.NewFakeDevice(domain.AudioPayload{Data: []byte("x")})
	c := recording.NewController(device, &recordingEvents{})

	require.NoError(t, c.Start(context.Background()))
	err := c.Start(context.Background())
	require.ErrorIs(t, err, domain.ErrRecordingInProgress)

	// The first capture is untouched.
	require.Equal(t, domain.RecordingStateRecording, c.State())
	require.Equal(t, 1, device.Starts)

	_, err = c.Stop(context.Background())
	require.NoError(t, err)
}

func TestStopWhileIdle(t *testing.T) {
	c := recording.NewController(audio.NewFakeDevice(domain.AudioPayload{}), &recordingEvents{})

	_, err := c.Stop(context.Background())
	require.ErrorIs(t, err, domain.ErrNoActiveRecording)
	require.Equal(t, domain.RecordingStateIdle, c.State())
}

func TestDeviceUnavailable(t *testing.T) {
	device := audio.NewFakeDevice(domain.AudioPayload{})
	device.StartErr = domain.ErrDeviceUnavailable
	events := &recordingEvents{}
	c := recording.NewController(device, events)

	err := c.Start(context.Background())
	require.ErrorIs(t, err, domain.ErrDeviceUnavailable)
	require.Equal(t, domain.RecordingStateIdle, c.State())
	require.Empty(t, events.listening)
}

func TestDeviceReleasedOnStopFailure(t *testing.T) {
	device := audio.NewFakeDevice(domain.AudioPayload{})
	device.StopErr = errors.New("flush failed")
	events := &recordingEvents{}
	c := recording.NewController(device, events)

	require.NoError(t, c.Start(context.Background()))
	_, err := c.Stop(context.Background())
	require.Error(t, err)

	// Back to Idle with the indicator off even though stop failed.
	require.Equal(t, domain.RecordingStateIdle, c.State())
	require.Equal(t, []bool{true, false}, events.listening)
	require.False(t, device.Active())
}
