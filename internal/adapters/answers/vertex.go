package answers

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/airsenselabs/assistant/internal/domain"
)

// VertexClient answers queries directly with Vertex AI (Gemini), skipping
// the intermediate assist endpoint. Selected with ASSIST_ANSWER_BACKEND=vertex.
type VertexClient struct {
	client    *genai.Client
	modelName string
}

func NewVertexClient(ctx context.Context, projectID, location, modelName string) (*VertexClient, error) {
	if projectID == "" || location == "" {
		return nil, fmt.Errorf("project and location are required for the vertex backend")
	}
	if modelName == "" {
		modelName = "gemini-2.5-flash"
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		Project:  projectID,
		Location: location,
		Backend:  genai.BackendVertexAI,
	})
	if err != nil {
		return nil, fmt.Errorf("creating Vertex AI client: %w", err)
	}

	return &VertexClient{
		client:    client,
		modelName: modelName,
	}, nil
}

// Ask implements domain.AnswerClient using Vertex AI.
func (v *VertexClient) Ask(ctx context.Context, query string) (domain.AnswerReply, error) {
	contents := []*genai.Content{
		genai.NewContentFromText(query, genai.RoleUser),
	}

	temp := float32(0.7)
	topP := float32(0.9)
	outputTokens := int32(8192)

	cfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(systemPrompt, genai.RoleUser),
		Temperature:       &temp,
		TopP:              &topP,
		MaxOutputTokens:   outputTokens,
	}

	res, err := v.client.Models.GenerateContent(ctx, v.modelName, contents, cfg)
	if err != nil {
		return domain.AnswerReply{}, fmt.Errorf("vertex generate content: %w", err)
	}

	text := res.Text()
	if text == "" {
		return domain.AnswerReply{}, fmt.Errorf("vertex returned empty text")
	}

	return domain.AnswerReply{Response: text}, nil
}
