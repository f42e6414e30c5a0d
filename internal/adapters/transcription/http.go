package transcription

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"

	"github.com/airsenselabs/assistant/internal/domain"
)

// HTTPClient uploads a finished recording to the speech-to-text endpoint
// as a multipart form (field "file", audio.wav) and reads back {text}.
// Every failure mode is reported as ErrTranscriptionFailed so the caller
// can keep its pending input untouched.
type HTTPClient struct {
	url    string
	client *http.Client
}

func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &HTTPClient{
		url:    strings.TrimRight(baseURL, "/") + "/speech-to-text",
		client: &http.Client{Timeout: timeout},
	}
}

type transcriptResponse struct {
	Text string `json:"text"`
}

func (c *HTTPClient) Transcribe(ctx context.Context, audio domain.AudioPayload) (string, error) {
	if len(audio.Data) == 0 {
		return "", fmt.Errorf("%w: empty audio payload", domain.ErrTranscriptionFailed)
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="file"; filename="audio.wav"`)
	header.Set("Content-Type", audio.MIMEType)
	part, err := writer.CreatePart(header)
	if err != nil {
		return "", fmt.Errorf("%w: building upload: %v", domain.ErrTranscriptionFailed, err)
	}
	if _, err := part.Write(audio.Data); err != nil {
		return "", fmt.Errorf("%w: building upload: %v", domain.ErrTranscriptionFailed, err)
	}
	writer.Close()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, &body)
	if err != nil {
		return "", fmt.Errorf("%w: building request: %v", domain.ErrTranscriptionFailed, err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrTranscriptionFailed, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: reading reply: %v", domain.ErrTranscriptionFailed, err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: service returned %d: %s", domain.ErrTranscriptionFailed, resp.StatusCode, raw)
	}

	var parsed transcriptResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("%w: parsing reply: %v", domain.ErrTranscriptionFailed, err)
	}
	if parsed.Text == "" {
		return "", fmt.Errorf("%w: reply carries no text", domain.ErrTranscriptionFailed)
	}

	return parsed.Text, nil
}
