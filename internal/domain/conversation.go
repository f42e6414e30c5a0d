package domain

import (
	"sort"
	"strings"
)

// Message is one entry in a conversation timeline (user or assistant).
// Immutable once appended; ordering key is CreatedAt ascending.
type Message struct {
	ID             MessageID
	ConversationID ConversationID
	Sender         Sender
	Text           string
	CreatedAt      Timestamp
}

// Conversation is the ordered message thread between two participants.
// Created lazily on first use, never deleted.
type Conversation struct {
	ID        ConversationID
	CreatedAt Timestamp
}

// RoomKey derives the conversation id for a participant pair. It is
// order-independent: RoomKey(a, b) == RoomKey(b, a).
func RoomKey(a, b ParticipantID) ConversationID {
	ids := []string{string(a), string(b)}
	sort.Strings(ids)
	return ConversationID(strings.Join(ids, "-"))
}
