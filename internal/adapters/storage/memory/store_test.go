package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/airsenselabs/assistant/internal/adapters/storage/memory"
	"github.com/airsenselabs/assistant/internal/domain"
)

func TestEnsureConversationIdempotent(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	id := domain.RoomKey("a", "b")

	require.NoError(t, store.EnsureConversation(ctx, id))
	require.NoError(t, store.EnsureConversation(ctx, id))
	require.Equal(t, 1, store.ConversationCount())
}

func TestSubscribeDeliversOrderedSnapshots(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	id := domain.RoomKey("a", "b")

	sub, err := store.Subscribe(ctx, id)
	require.NoError(t, err)
	t.Cleanup(func() { _ = sub.Close() })

	// Initial snapshot is empty.
	require.Empty(t, <-sub.Updates())

	now := time.Now()
	first := &domain.Message{ID: "1", ConversationID: id, Sender: domain.SenderUser, Text: "hi", CreatedAt: now}
	second := &domain.Message{ID: "2", ConversationID: id, Sender: domain.SenderAssistant, Text: "hello", CreatedAt: now.Add(time.Second)}

	require.NoError(t, store.AppendMessage(ctx, first))
	require.NoError(t, store.AppendMessage(ctx, second))

	var snapshot []*domain.Message
	require.Eventually(t, func() bool {
		select {
		case snapshot = <-sub.Updates():
		default:
		}
		return len(snapshot) == 2
	}, time.Second, 5*time.Millisecond)

	require.Equal(t, "hi", snapshot[0].Text)
	require.Equal(t, "hello", snapshot[1].Text)
}

func TestSubscriptionCloseHaltsDelivery(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	id := domain.RoomKey("a", "b")

	sub, err := store.Subscribe(ctx, id)
	require.NoError(t, err)

	require.NoError(t, sub.Close())
	require.NoError(t, sub.Close(), "double release is a no-op")

	msg := &domain.Message{ID: "1", ConversationID: id, Sender: domain.SenderUser, Text: "late", CreatedAt: time.Now()}
	require.NoError(t, store.AppendMessage(ctx, msg))

	// The channel is closed; nothing but the zero value comes out.
	snapshot, open := <-sub.Updates()
	for open {
		snapshot, open = <-sub.Updates()
	}
	require.Nil(t, snapshot)
}

func TestSnapshotsAreCopies(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	id := domain.RoomKey("a", "b")

	orig := &domain.Message{ID: "1", ConversationID: id, Sender: domain.SenderUser, Text: "hi", CreatedAt: time.Now()}
	require.NoError(t, store.AppendMessage(ctx, orig))

	sub, err := store.Subscribe(ctx, id)
	require.NoError(t, err)
	t.Cleanup(func() { _ = sub.Close() })

	snapshot := <-sub.Updates()
	require.Len(t, snapshot, 1)
	snapshot[0].Text = "mutated"

	sub2, err := store.Subscribe(ctx, id)
	require.NoError(t, err)
	t.Cleanup(func() { _ = sub2.Close() })

	fresh := <-sub2.Updates()
	require.Equal(t, "hi", fresh[0].Text)
}
