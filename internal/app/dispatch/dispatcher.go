package dispatch

import (
	"context"
	"strings"

	"github.com/airsenselabs/assistant/internal/domain"
	"github.com/airsenselabs/assistant/internal/observability"
)

// Kind tags the result of a query submission.
type Kind string

const (
	KindAnswer         Kind = "answer"
	KindStatus         Kind = "status"
	KindServiceError   Kind = "service_error"
	KindTransportError Kind = "transport_error"
)

// Outcome is the classified result of one submission. Exactly one is
// produced per non-empty query; the dispatcher never retries on its own.
type Outcome struct {
	Kind Kind
	Text string
}

// Speakable reports whether the outcome should be synthesized aloud.
func (o Outcome) Speakable() bool {
	return o.Kind == KindAnswer || o.Kind == KindStatus
}

func (o Outcome) IsError() bool {
	return o.Kind == KindServiceError || o.Kind == KindTransportError
}

// AlertTitle is the heading shown with an error outcome: "Error" when
// the service itself rejected the query, "Message" when the request
// never resolved.
func (o Outcome) AlertTitle() string {
	if o.Kind == KindTransportError {
		return "Message"
	}
	return "Error"
}

// MessageText is the text recorded in the conversation log. Errors keep
// a visible mark so the history retains a record of the failure.
func (o Outcome) MessageText() string {
	if o.IsError() {
		return "Error: " + o.Text
	}
	return o.Text
}

// Dispatcher submits finalized queries to the answer service and
// classifies the reply.
type Dispatcher struct {
	client domain.AnswerClient
}

func NewDispatcher(client domain.AnswerClient) *Dispatcher {
	return &Dispatcher{client: client}
}

// Submit sends one query. Whitespace-only input is rejected locally with
// domain.ErrEmptyQuery before any network call.
func (d *Dispatcher) Submit(ctx context.Context, query string) (Outcome, error) {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return Outcome{}, domain.ErrEmptyQuery
	}

	log := observability.LoggerFromContext(ctx)
	log.Info("submitting query", "text", trimmed)

	reply, err := d.client.Ask(ctx, trimmed)
	if err != nil {
		log.Error("answer request failed", "error", err)
		return Outcome{Kind: KindTransportError, Text: err.Error()}, nil
	}

	switch {
	case reply.Response != "":
		return Outcome{Kind: KindAnswer, Text: reply.Response}, nil
	case reply.Status != "":
		return Outcome{Kind: KindStatus, Text: reply.Status}, nil
	case reply.Error != "":
		log.Warn("answer service reported error", "error", reply.Error)
		return Outcome{Kind: KindServiceError, Text: reply.Error}, nil
	default:
		// Any other reply shape counts as a transport failure.
		return Outcome{Kind: KindTransportError, Text: "unrecognized answer reply"}, nil
	}
}
