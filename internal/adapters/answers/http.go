package answers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/airsenselabs/assistant/internal/domain"
)

// HTTPClient talks to the assist endpoint: POST {query}, reply carries
// exactly one of response / status / error. Anything else is a transport
// failure for the dispatcher to classify.
type HTTPClient struct {
	url    string
	client *http.Client
}

func NewHTTPClient(url string, timeout time.Duration) *HTTPClient {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &HTTPClient{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}
}

type askRequest struct {
	Query string `json:"query"`
}

type askResponse struct {
	Response string `json:"response"`
	Status   string `json:"status"`
	Error    string `json:"error"`
}

func (c *HTTPClient) Ask(ctx context.Context, query string) (domain.AnswerReply, error) {
	body, err := json.Marshal(askRequest{Query: query})
	if err != nil {
		return domain.AnswerReply{}, fmt.Errorf("encoding query: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return domain.AnswerReply{}, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return domain.AnswerReply{}, fmt.Errorf("answer service request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.AnswerReply{}, fmt.Errorf("reading answer reply: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return domain.AnswerReply{}, fmt.Errorf("answer service returned %d: %s", resp.StatusCode, raw)
	}

	var parsed askResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return domain.AnswerReply{}, fmt.Errorf("parsing answer reply: %w", err)
	}

	if parsed.Response == "" && parsed.Status == "" && parsed.Error == "" {
		return domain.AnswerReply{}, fmt.Errorf("answer reply carries none of response/status/error")
	}

	return domain.AnswerReply{
		Response: parsed.Response,
		Status:   parsed.Status,
		Error:    parsed.Error,
	}, nil
}
