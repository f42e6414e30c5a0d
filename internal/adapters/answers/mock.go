package answers

import (
	"context"
	"fmt"

	"github.com/airsenselabs/assistant/internal/domain"
)

// Mock is a deterministic AnswerClient for local runs and tests.
type Mock struct{}

func NewMock() *Mock {
	return &Mock{}
}

func (m *Mock) Ask(_ context.Context, query string) (domain.AnswerReply, error) {
	return domain.AnswerReply{
		Response: fmt.Sprintf("You asked %q. Live air quality data is not connected in mock mode.", query),
	}, nil
}
