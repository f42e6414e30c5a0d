package domain

import "errors"

// Failure taxonomy. Every collaborator failure is converted into one of
// these at the boundary of the component that invoked it; none are fatal.
var (
	// ErrDeviceUnavailable: microphone hardware or permission could not be
	// acquired. The session continues in text-only mode.
	ErrDeviceUnavailable = errors.New("microphone unavailable")

	// ErrRecordingInProgress: start() while already recording. Reported,
	// non-fatal; the running capture continues uninterrupted.
	ErrRecordingInProgress = errors.New("recording already in progress")

	// ErrNoActiveRecording: stop() while idle.
	ErrNoActiveRecording = errors.New("no active recording")

	// ErrTranscriptionFailed: the transcription service failed or returned
	// a malformed reply. The pending input buffer is left untouched.
	ErrTranscriptionFailed = errors.New("transcription failed")

	// ErrEmptyQuery: a submit with nothing but whitespace in the buffer.
	// Rejected locally, no network call is made.
	ErrEmptyQuery = errors.New("empty query")
)
