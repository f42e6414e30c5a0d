package audio

import (
	"context"
	"fmt"
	"sync"

	"github.com/gen2brain/malgo"

	"github.com/airsenselabs/assistant/internal/domain"
)

// Microphone captures PCM from the default input device via malgo and
// hands back a WAV payload on Stop. Single-writer: a second Start while
// capturing is rejected, it never silently overlaps.
type Microphone struct {
	sampleRate uint32
	channels   uint32

	mu     sync.Mutex
	ctx    *malgo.AllocatedContext
	device *malgo.Device

	pcmMu sync.Mutex
	pcm   []byte
}

func NewMicrophone(sampleRate, channels int) *Microphone {
	if sampleRate <= 0 {
		sampleRate = 16000
	}
	if channels <= 0 {
		channels = 1
	}
	return &Microphone{
		sampleRate: uint32(sampleRate),
		channels:   uint32(channels),
	}
}

func (m *Microphone) Start(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.device != nil {
		return domain.ErrRecordingInProgress
	}

	ctx, err := malgo.InitContext(nil, malgo.ContextConfig{}, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrDeviceUnavailable, err)
	}

	deviceConfig := malgo.DefaultDeviceConfig(malgo.Capture)
	deviceConfig.Capture.Format = malgo.FormatS16
	deviceConfig.Capture.Channels = m.channels
	deviceConfig.SampleRate = m.sampleRate

	callbacks := malgo.DeviceCallbacks{
		Data: func(_, data []byte, _ uint32) {
			m.pcmMu.Lock()
			m.pcm = append(m.pcm, data...)
			m.pcmMu.Unlock()
		},
	}

	device, err := malgo.InitDevice(ctx.Context, deviceConfig, callbacks)
	if err != nil {
		ctx.Uninit()
		ctx.Free()
		return fmt.Errorf("%w: %v", domain.ErrDeviceUnavailable, err)
	}

	if err := device.Start(); err != nil {
		device.Uninit()
		ctx.Uninit()
		ctx.Free()
		return fmt.Errorf("%w: %v", domain.ErrDeviceUnavailable, err)
	}

	m.pcmMu.Lock()
	m.pcm = nil
	m.pcmMu.Unlock()

	m.ctx = ctx
	m.device = device
	return nil
}

// Stop releases the device on every path, then wraps the captured PCM
// into a WAV payload.
func (m *Microphone) Stop(_ context.Context) (domain.AudioPayload, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.device == nil {
		return domain.AudioPayload{}, domain.ErrNoActiveRecording
	}

	m.device.Stop()
	m.device.Uninit()
	m.ctx.Uninit()
	m.ctx.Free()
	m.device = nil
	m.ctx = nil

	m.pcmMu.Lock()
	pcm := m.pcm
	m.pcm = nil
	m.pcmMu.Unlock()

	return domain.AudioPayload{
		Data:     EncodeWAV(pcm, int(m.sampleRate), int(m.channels)),
		MIMEType: "audio/wav",
	}, nil
}
