package domain

import "context"

// AudioPayload is a finished capture, in the format the transcription
// service expects (WAV-equivalent, tagged with its MIME type).
type AudioPayload struct {
	Data     []byte
	MIMEType string
}

// AnswerReply mirrors the assist endpoint's wire shape: exactly one of the
// three fields is set on a well-formed reply.
type AnswerReply struct {
	Response string
	Status   string
	Error    string
}

// AnswerClient defines how the core reaches the remote answer service.
// Transport-level failures (network, timeout, malformed body) come back as
// a Go error; a service-reported error arrives in AnswerReply.Error.
type AnswerClient interface {
	Ask(ctx context.Context, query string) (AnswerReply, error)
}

// Transcriber converts a finished recording into text.
type Transcriber interface {
	Transcribe(ctx context.Context, audio AudioPayload) (string, error)
}

// CaptureDevice is the microphone. Start acquires it, Stop releases it and
// returns the captured payload. Single-writer: one open capture at a time.
type CaptureDevice interface {
	Start(ctx context.Context) error
	Stop(ctx context.Context) (AudioPayload, error)
}

// Synthesizer produces audible output for a piece of text.
type Synthesizer interface {
	Speak(ctx context.Context, text string, opts SpeechOptions) error
}

// Subscription is a live ordered view of one conversation's messages.
// Updates delivers the full snapshot on every change. Close is idempotent
// and halts delivery deterministically.
type Subscription interface {
	Updates() <-chan []*Message
	Close() error
}

// MessageStore defines the ordered, append-only conversation log.
type MessageStore interface {
	EnsureConversation(ctx context.Context, id ConversationID) error
	AppendMessage(ctx context.Context, msg *Message) error
	Subscribe(ctx context.Context, id ConversationID) (Subscription, error)
}

// EventSink surfaces session events to whatever hosts the session (the
// terminal front-end here, a screen in general).
type EventSink interface {
	ListeningChanged(active bool)
	MessagesChanged(msgs []*Message)
	Alert(title, detail string)
}
