package session

import (
	"sync"
	"time"

	"github.com/airsenselabs/assistant/internal/domain"
)

// defaultDedupTolerance bounds the createdAt distance when matching an
// optimistic message against its authoritative copy.
const defaultDedupTolerance = 30 * time.Second

// view is the rendered conversation: the authoritative subscribed log
// plus locally optimistic messages awaiting confirmation. Optimistic
// entries are superseded, never duplicated, once the store reflects them.
type view struct {
	// notifyMu is taken for the whole mutate-then-notify span so onChange
	// sees snapshots in mutation order. It is always acquired before mu.
	notifyMu sync.Mutex

	mu            sync.Mutex
	authoritative []*domain.Message
	optimistic    []*domain.Message
	tolerance     time.Duration
	onChange      func([]*domain.Message)
}

func newView(tolerance time.Duration, onChange func([]*domain.Message)) *view {
	if tolerance <= 0 {
		tolerance = defaultDedupTolerance
	}
	return &view{tolerance: tolerance, onChange: onChange}
}

// appendOptimistic shows a message locally before the store confirms it.
func (v *view) appendOptimistic(msg *domain.Message) {
	v.notifyMu.Lock()
	defer v.notifyMu.Unlock()

	v.mu.Lock()
	v.optimistic = append(v.optimistic, msg)
	rendered := v.renderLocked()
	v.mu.Unlock()

	v.notify(rendered)
}

// applySnapshot replaces the authoritative log with the store's latest
// ordered collection and drops optimistic entries it now covers. The
// store's ordering is kept as delivered, never reordered locally.
func (v *view) applySnapshot(msgs []*domain.Message) {
	v.notifyMu.Lock()
	defer v.notifyMu.Unlock()

	v.mu.Lock()
	v.authoritative = msgs

	// Each authoritative entry may cover at most one optimistic entry, so
	// two identical local sends stay visible until both are confirmed.
	used := make(map[int]bool, len(v.optimistic))
	kept := v.optimistic[:0]
	for _, opt := range v.optimistic {
		if i := v.matchLocked(opt, used); i >= 0 {
			used[i] = true
		} else {
			kept = append(kept, opt)
		}
	}
	v.optimistic = kept

	rendered := v.renderLocked()
	v.mu.Unlock()

	v.notify(rendered)
}

// render returns the merged ordered view: the authoritative prefix, then
// optimistic messages in submission order.
func (v *view) render() []*domain.Message {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.renderLocked()
}

func (v *view) renderLocked() []*domain.Message {
	out := make([]*domain.Message, 0, len(v.authoritative)+len(v.optimistic))
	out = append(out, v.authoritative...)
	out = append(out, v.optimistic...)
	return out
}

// matchLocked finds the first unused authoritative entry covering opt,
// matching by sender + text + time tolerance; store-assigned ids do not
// exist on the optimistic side. Returns -1 when nothing covers it.
func (v *view) matchLocked(opt *domain.Message, used map[int]bool) int {
	for i, m := range v.authoritative {
		if used[i] || m.Sender != opt.Sender || m.Text != opt.Text {
			continue
		}
		diff := m.CreatedAt.Sub(opt.CreatedAt)
		if diff < 0 {
			diff = -diff
		}
		if diff <= v.tolerance {
			return i
		}
	}
	return -1
}

func (v *view) notify(rendered []*domain.Message) {
	if v.onChange != nil {
		v.onChange(rendered)
	}
}
