package agent

import (
	"context"
	"errors"
	"fmt"
	"strings"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// OpenAIModel implements Model using the official openai-go SDK (chat
// completions). It is text-only: tools are rejected and media references are
// passed as plain text.
type OpenAIModel struct {
	client openai.Client
}

// NewOpenAIModel creates a client for the OpenAI API or any compatible
// endpoint when baseURL is set.
func NewOpenAIModel(apiKey, baseURL string) (*OpenAIModel, error) {
	if apiKey == "" {
		return nil, errors.New("openai api key missing; provide openai.api_key")
	}
	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	return &OpenAIModel{client: openai.NewClient(opts...)}, nil
}

func (o *OpenAIModel) Generate(ctx context.Context, req *Request) (*Reply, error) {
	if len(req.Tools) > 0 {
		return nil, fmt.Errorf("openai: %w", ErrToolsUnsupported)
	}

	msgs := []openai.ChatCompletionMessageParamUnion{
		openai.SystemMessage(req.Instruction),
	}
	for _, t := range req.Turns {
		content := flattenText(t)
		switch t.Role {
		case RoleModel:
			msgs = append(msgs, openai.ChatCompletionMessageParamOfAssistant(content))
		default:
			msgs = append(msgs, openai.UserMessage(content))
		}
	}

	resp, err := o.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(req.Model),
		Messages: msgs,
	})
	if err != nil {
		return nil, err
	}
	if len(resp.Choices) == 0 {
		return nil, errors.New("openai: empty choices")
	}

	text := resp.Choices[0].Message.Content
	return &Reply{
		Text: text,
		Turn: Turn{Role: RoleModel, Parts: []Part{{Text: text}}},
	}, nil
}

// flattenText renders a turn as plain text for text-only backends.
func flattenText(t Turn) string {
	var sb strings.Builder
	for _, p := range t.Parts {
		if sb.Len() > 0 {
			sb.WriteString("\n")
		}
		switch {
		case p.Media != nil:
			fmt.Fprintf(&sb, "[media file: %s (%s)]", p.Media.URI, p.Media.MIMEType)
		default:
			sb.WriteString(p.Text)
		}
	}
	return sb.String()
}
