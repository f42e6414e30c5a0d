package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/airsenselabs/assistant/internal/domain"
)

// Store is the in-memory counterpart of the firestore store, used for
// local mode and tests. Snapshots are pushed to subscribers on every
// append, full collection each time, ordered by CreatedAt.
type Store struct {
	mu            sync.RWMutex
	conversations map[domain.ConversationID]*domain.Conversation
	messages      map[domain.ConversationID][]*domain.Message
	subs          map[domain.ConversationID][]*subscription
}

func NewStore() *Store {
	return &Store{
		conversations: make(map[domain.ConversationID]*domain.Conversation),
		messages:      make(map[domain.ConversationID][]*domain.Message),
		subs:          make(map[domain.ConversationID][]*subscription),
	}
}

func (s *Store) EnsureConversation(_ context.Context, id domain.ConversationID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.conversations[id]; exists {
		return nil
	}
	s.conversations[id] = &domain.Conversation{ID: id, CreatedAt: time.Now()}
	return nil
}

// ConversationCount reports how many conversation records exist.
func (s *Store) ConversationCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.conversations)
}

func (s *Store) AppendMessage(_ context.Context, msg *domain.Message) error {
	s.mu.Lock()

	copied := *msg
	s.messages[msg.ConversationID] = append(s.messages[msg.ConversationID], &copied)
	sort.SliceStable(s.messages[msg.ConversationID], func(i, j int) bool {
		a, b := s.messages[msg.ConversationID][i], s.messages[msg.ConversationID][j]
		return a.CreatedAt.Before(b.CreatedAt)
	})

	snapshot := s.snapshotLocked(msg.ConversationID)
	subs := append([]*subscription(nil), s.subs[msg.ConversationID]...)
	s.mu.Unlock()

	for _, sub := range subs {
		sub.deliver(snapshot)
	}
	return nil
}

func (s *Store) Subscribe(_ context.Context, id domain.ConversationID) (domain.Subscription, error) {
	sub := &subscription{
		updates: make(chan []*domain.Message, 1),
	}
	sub.release = func() { s.remove(id, sub) }

	s.mu.Lock()
	s.subs[id] = append(s.subs[id], sub)
	snapshot := s.snapshotLocked(id)
	s.mu.Unlock()

	sub.deliver(snapshot)
	return sub, nil
}

func (s *Store) snapshotLocked(id domain.ConversationID) []*domain.Message {
	msgs := s.messages[id]
	out := make([]*domain.Message, len(msgs))
	for i, m := range msgs {
		copied := *m
		out[i] = &copied
	}
	return out
}

func (s *Store) remove(id domain.ConversationID, target *subscription) {
	s.mu.Lock()
	defer s.mu.Unlock()

	subs := s.subs[id]
	for i, sub := range subs {
		if sub == target {
			s.subs[id] = append(subs[:i], subs[i+1:]...)
			return
		}
	}
}

type subscription struct {
	updates chan []*domain.Message
	release func()

	mu     sync.Mutex
	closed bool
}

func (sub *subscription) Updates() <-chan []*domain.Message {
	return sub.updates
}

func (sub *subscription) Close() error {
	sub.mu.Lock()
	if sub.closed {
		sub.mu.Unlock()
		return nil
	}
	sub.closed = true
	sub.mu.Unlock()

	sub.release()

	sub.mu.Lock()
	close(sub.updates)
	sub.mu.Unlock()
	return nil
}

func (sub *subscription) deliver(msgs []*domain.Message) {
	sub.mu.Lock()
	defer sub.mu.Unlock()
	if sub.closed {
		return
	}

	select {
	case <-sub.updates:
	default:
	}
	sub.updates <- msgs
}
