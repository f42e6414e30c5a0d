package domain

import "time"

type ParticipantID string
type ConversationID string
type MessageID string

type Sender string

const (
	SenderUser      Sender = "user"
	SenderAssistant Sender = "assistant"
)

// RecordingState models the microphone capture lifecycle.
// Idle -> Recording -> Finalizing -> Idle; Idle never jumps to Finalizing.
type RecordingState string

const (
	RecordingStateIdle       RecordingState = "idle"
	RecordingStateRecording  RecordingState = "recording"
	RecordingStateFinalizing RecordingState = "finalizing"
)

// SpeechOptions carries synthesis parameters for a spoken reply.
type SpeechOptions struct {
	Language string
	Pitch    float64
	Rate     float64
}

// DefaultSpeechOptions is the voice used for assistant replies.
func DefaultSpeechOptions() SpeechOptions {
	return SpeechOptions{Language: "en", Pitch: 1.0, Rate: 1.0}
}

type Timestamp = time.Time
