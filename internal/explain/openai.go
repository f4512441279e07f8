package explain

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sashabaranov/go-openai"

	"irview/internal/ir"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "gpt-4o-mini"

const systemPrompt = "You are an expert on shader compilers and their " +
	"intermediate representations. Answer concisely, in plain prose, for a " +
	"reader inspecting an IR dump in a visualizer."

// chatCompleter is the slice of the OpenAI client the explainer needs;
// tests substitute a fake.
type chatCompleter interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// OpenAIExplainer implements Explainer against the OpenAI chat API.
type OpenAIExplainer struct {
	client chatCompleter
	model  string
}

// NewOpenAIExplainer creates an explainer for the given credential.
// Returns an error when the key is empty; callers fall back to Disabled.
func NewOpenAIExplainer(apiKey, model string) (*OpenAIExplainer, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("explain: OPENAI_API_KEY not set")
	}
	if model == "" {
		model = DefaultModel
		slog.Warn("explanation model not set, using default", "model", model)
	}
	return &OpenAIExplainer{client: openai.NewClient(apiKey), model: model}, nil
}

// ExplainNode asks the model to describe one parsed entity with its
// surrounding source lines.
func (e *OpenAIExplainer) ExplainNode(ctx context.Context, node *ir.Node, contextLines []string) (string, error) {
	return e.complete(ctx, nodePrompt(node, contextLines))
}

// ExplainPass asks the model for a flow analysis of a whole pass.
func (e *OpenAIExplainer) ExplainPass(ctx context.Context, passName, passText string) (string, error) {
	return e.complete(ctx, passPrompt(passName, passText))
}

func (e *OpenAIExplainer) complete(ctx context.Context, prompt string) (string, error) {
	resp, err := e.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: e.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		slog.Error("explanation request failed", "error", err)
		return "", fmt.Errorf("explain: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("explain: model returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}
