package firestore

import (
	"context"
	"fmt"
	"sync"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/airsenselabs/assistant/internal/domain"
	"github.com/airsenselabs/assistant/internal/observability"
)

type Store struct {
	client *firestore.Client
}

// NewStore creates a Firestore-backed message store.
// Uses the project passed (ASSIST_GCP_PROJECT).
func NewStore(ctx context.Context, projectID string) (*Store, error) {
	if projectID == "" {
		return nil, fmt.Errorf("projectID is required for Firestore store")
	}

	client, err := firestore.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("creating firestore client: %w", err)
	}

	return &Store{client: client}, nil
}

func (s *Store) Close() error {
	return s.client.Close()
}

// ─────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────

func (s *Store) roomsCol() *firestore.CollectionRef {
	return s.client.Collection("rooms")
}

func (s *Store) roomDoc(id domain.ConversationID) *firestore.DocumentRef {
	return s.roomsCol().Doc(string(id))
}

func (s *Store) messagesCol(id domain.ConversationID) *firestore.CollectionRef {
	return s.roomDoc(id).Collection("messages")
}

// ─────────────────────────────────────────
// Firestore Types
// ─────────────────────────────────────────

type roomDoc struct {
	RoomID    string    `firestore:"room_id"`
	CreatedAt time.Time `firestore:"created_at"`
}

type messageDoc struct {
	Sender    string    `firestore:"sender"`
	Text      string    `firestore:"text"`
	CreatedAt time.Time `firestore:"created_at"`
}

// ─────────────────────────────────────────
// MessageStore implementation
// ─────────────────────────────────────────

// EnsureConversation lazily creates the room record. Idempotent: an
// existing room keeps its created_at.
func (s *Store) EnsureConversation(ctx context.Context, id domain.ConversationID) error {
	doc := roomDoc{
		RoomID:    string(id),
		CreatedAt: time.Now(),
	}

	_, err := s.roomDoc(id).Create(ctx, doc)
	if err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return nil
		}
		return fmt.Errorf("firestore EnsureConversation: %w", err)
	}
	return nil
}

func (s *Store) AppendMessage(ctx context.Context, msg *domain.Message) error {
	doc := messageDoc{
		Sender:    string(msg.Sender),
		Text:      msg.Text,
		CreatedAt: msg.CreatedAt,
	}

	_, err := s.messagesCol(msg.ConversationID).Doc(string(msg.ID)).Set(ctx, doc)
	if err != nil {
		return fmt.Errorf("firestore AppendMessage: %w", err)
	}
	return nil
}

// Subscribe delivers the full ordered message collection on every change,
// until Close is called or ctx is cancelled.
func (s *Store) Subscribe(ctx context.Context, id domain.ConversationID) (domain.Subscription, error) {
	q := s.messagesCol(id).OrderBy("created_at", firestore.Asc)
	it := q.Snapshots(ctx)

	sub := &subscription{
		updates: make(chan []*domain.Message, 1),
		stop:    it.Stop,
	}
	go sub.run(it, id)
	return sub, nil
}

type subscription struct {
	updates chan []*domain.Message

	mu     sync.Mutex
	closed bool
	stop   func()
}

func (sub *subscription) Updates() <-chan []*domain.Message {
	return sub.updates
}

// Close halts delivery. Safe to call multiple times.
func (sub *subscription) Close() error {
	sub.mu.Lock()
	if sub.closed {
		sub.mu.Unlock()
		return nil
	}
	sub.closed = true
	sub.mu.Unlock()

	sub.stop()
	return nil
}

func (sub *subscription) run(it *firestore.QuerySnapshotIterator, id domain.ConversationID) {
	log := observability.WithFields("conversation_id", id)

	defer close(sub.updates)
	for {
		snap, err := it.Next()
		if err != nil {
			if status.Code(err) != codes.Canceled {
				log.Error("snapshot stream ended", "error", err)
			}
			return
		}

		msgs, err := decodeSnapshot(snap, id)
		if err != nil {
			log.Error("decoding snapshot", "error", err)
			continue
		}
		sub.deliver(msgs)
	}
}

func (sub *subscription) deliver(msgs []*domain.Message) {
	sub.mu.Lock()
	defer sub.mu.Unlock()
	if sub.closed {
		return
	}

	// Only the latest snapshot matters; drop a stale undelivered one.
	select {
	case <-sub.updates:
	default:
	}
	sub.updates <- msgs
}

func decodeSnapshot(snap *firestore.QuerySnapshot, id domain.ConversationID) ([]*domain.Message, error) {
	defer snap.Documents.Stop()

	var out []*domain.Message
	for {
		ds, err := snap.Documents.Next()
		if err != nil {
			if err == iterator.Done {
				break
			}
			return nil, fmt.Errorf("firestore snapshot iterate: %w", err)
		}

		var doc messageDoc
		if err := ds.DataTo(&doc); err != nil {
			return nil, fmt.Errorf("decode messageDoc: %w", err)
		}

		out = append(out, &domain.Message{
			ID:             domain.MessageID(ds.Ref.ID),
			ConversationID: id,
			Sender:         domain.Sender(doc.Sender),
			Text:           doc.Text,
			CreatedAt:      doc.CreatedAt,
		})
	}
	return out, nil
}
