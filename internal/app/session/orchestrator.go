package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/airsenselabs/assistant/internal/app/dispatch"
	"github.com/airsenselabs/assistant/internal/app/recording"
	"github.com/airsenselabs/assistant/internal/domain"
	"github.com/airsenselabs/assistant/internal/observability"
)

// State is the orchestrator's submit-flow state.
type State string

const (
	StateIdle                  State = "idle"
	StateAwaitingTranscription State = "awaiting_transcription"
	StateAwaitingAnswer        State = "awaiting_answer"
)

// Orchestrator ties the session together: it owns the pending input
// buffer, sequences capture -> transcription -> dispatch -> append ->
// speak, and reconciles optimistic messages with the authoritative log
// stream. Concurrent submissions are queued FIFO; two in-flight requests
// never interleave against the log.
type Orchestrator struct {
	conversationID domain.ConversationID

	recorder    *recording.Controller
	transcriber domain.Transcriber
	dispatcher  *dispatch.Dispatcher
	store       domain.MessageStore
	speech      domain.Synthesizer
	events      domain.EventSink

	buffer PendingBuffer
	view   *view

	now   func() time.Time
	newID func() domain.MessageID

	submitMu sync.Mutex

	stateMu sync.Mutex
	state   State

	sub       domain.Subscription
	syncDone  chan struct{}
	closeOnce sync.Once
}

func NewOrchestrator(
	conversationID domain.ConversationID,
	recorder *recording.Controller,
	transcriber domain.Transcriber,
	dispatcher *dispatch.Dispatcher,
	store domain.MessageStore,
	speech domain.Synthesizer,
	events domain.EventSink,
) *Orchestrator {
	o := &Orchestrator{
		conversationID: conversationID,
		recorder:       recorder,
		transcriber:    transcriber,
		dispatcher:     dispatcher,
		store:          store,
		speech:         speech,
		events:         events,
		now:            time.Now,
		newID:          func() domain.MessageID { return domain.MessageID(uuid.NewString()) },
		state:          StateIdle,
		syncDone:       make(chan struct{}),
	}
	o.view = newView(defaultDedupTolerance, events.MessagesChanged)
	return o
}

// Start lazily creates the conversation record and opens the live
// subscription feeding the rendered view.
func (o *Orchestrator) Start(ctx context.Context) error {
	log := observability.LoggerFromContext(ctx).With("conversation_id", o.conversationID)

	if err := o.store.EnsureConversation(ctx, o.conversationID); err != nil {
		log.Error("failed to ensure conversation", "error", err)
		return fmt.Errorf("ensuring conversation: %w", err)
	}

	sub, err := o.store.Subscribe(ctx, o.conversationID)
	if err != nil {
		log.Error("failed to subscribe", "error", err)
		return fmt.Errorf("subscribing to conversation: %w", err)
	}
	o.sub = sub

	go o.syncLoop()
	log.Info("session started")
	return nil
}

// Close releases the log subscription. Safe to call multiple times.
func (o *Orchestrator) Close() error {
	o.closeOnce.Do(func() {
		if o.sub != nil {
			_ = o.sub.Close()
			<-o.syncDone
		} else {
			close(o.syncDone)
		}
	})
	return nil
}

func (o *Orchestrator) syncLoop() {
	defer close(o.syncDone)
	for snapshot := range o.sub.Updates() {
		o.view.applySnapshot(snapshot)
	}
}

// TypeInput stages typed text for the next submission.
func (o *Orchestrator) TypeInput(text string) {
	o.buffer.Set(text)
}

// PendingInput returns the currently staged text.
func (o *Orchestrator) PendingInput() string {
	return o.buffer.Text()
}

// StartVoice begins microphone capture. A failure is reported and the
// session continues in text-only mode.
func (o *Orchestrator) StartVoice(ctx context.Context) error {
	if err := o.recorder.Start(ctx); err != nil {
		o.events.Alert("Microphone", err.Error())
		return err
	}
	return nil
}

// StopVoice finalizes the capture and stages its transcript. On
// transcription failure the pending buffer keeps its previous content.
func (o *Orchestrator) StopVoice(ctx context.Context) error {
	o.setState(StateAwaitingTranscription)
	defer o.setState(StateIdle)

	payload, err := o.recorder.Stop(ctx)
	if err != nil {
		o.events.Alert("Microphone", err.Error())
		return err
	}

	text, err := o.transcriber.Transcribe(ctx, payload)
	if err != nil {
		observability.LoggerFromContext(ctx).Error("transcription failed", "error", err)
		o.events.Alert("Error", "Failed to transcribe the audio file.")
		return err
	}

	o.buffer.Set(text)
	return nil
}

// Submit sends the staged query. The buffer is cleared as soon as the
// query text is captured, the user message is shown optimistically, and
// the classified outcome is appended as one assistant message. Answer and
// Status outcomes are spoken; error outcomes raise an alert instead.
func (o *Orchestrator) Submit(ctx context.Context) (dispatch.Outcome, error) {
	o.submitMu.Lock()
	defer o.submitMu.Unlock()

	query, ok := o.buffer.Take()
	if !ok {
		return dispatch.Outcome{}, domain.ErrEmptyQuery
	}

	o.setState(StateAwaitingAnswer)
	defer o.setState(StateIdle)

	log := observability.LoggerFromContext(ctx).With("conversation_id", o.conversationID)

	userMsg := o.newMessage(domain.SenderUser, query)
	o.view.appendOptimistic(userMsg)
	o.persist(ctx, userMsg)

	outcome, err := o.dispatcher.Submit(ctx, query)
	if err != nil {
		return dispatch.Outcome{}, err
	}

	assistantMsg := o.newMessage(domain.SenderAssistant, outcome.MessageText())
	o.view.appendOptimistic(assistantMsg)
	o.persist(ctx, assistantMsg)

	if outcome.Speakable() {
		if err := o.speech.Speak(ctx, outcome.Text, domain.DefaultSpeechOptions()); err != nil {
			log.Warn("speech output failed", "error", err)
		}
	} else {
		o.events.Alert(outcome.AlertTitle(), outcome.Text)
	}

	log.Info("submit completed", "outcome", outcome.Kind)
	return outcome, nil
}

// Messages returns the rendered conversation view.
func (o *Orchestrator) Messages() []*domain.Message {
	return o.view.render()
}

// State reports the current submit-flow state.
func (o *Orchestrator) State() State {
	o.stateMu.Lock()
	defer o.stateMu.Unlock()
	return o.state
}

func (o *Orchestrator) setState(s State) {
	o.stateMu.Lock()
	o.state = s
	o.stateMu.Unlock()
}

func (o *Orchestrator) newMessage(sender domain.Sender, text string) *domain.Message {
	return &domain.Message{
		ID:             o.newID(),
		ConversationID: o.conversationID,
		Sender:         sender,
		Text:           text,
		CreatedAt:      o.now(),
	}
}

// persist appends to the authoritative log. On failure the optimistic
// copy stays visible; the turn is just not durable.
func (o *Orchestrator) persist(ctx context.Context, msg *domain.Message) {
	if err := o.store.AppendMessage(ctx, msg); err != nil {
		observability.LoggerFromContext(ctx).Error("failed to append message",
			"message_id", msg.ID,
			"error", err)
	}
}
