package session

import (
	"strings"
	"sync"
)

// PendingBuffer is the text staged for submission. One owned value with a
// single mutation entry point; both the typing path and the
// transcription-completion path go through Set, and Take is atomic with
// respect to a concurrent submit.
type PendingBuffer struct {
	mu   sync.Mutex
	text string
}

func (b *PendingBuffer) Set(text string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.text = text
}

func (b *PendingBuffer) Text() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.text
}

// Take returns the trimmed staged text and clears the buffer. Whitespace
// -only content is rejected and left untouched.
func (b *PendingBuffer) Take() (string, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	trimmed := strings.TrimSpace(b.text)
	if trimmed == "" {
		return "", false
	}
	b.text = ""
	return trimmed, true
}
