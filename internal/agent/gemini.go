package agent

import (
	"context"
	"errors"
	"strings"

	"google.golang.org/genai"
)

// GeminiModel implements Model with the Gemini API. It supports tools and
// file URIs.
type GeminiModel struct {
	client *genai.Client
}

// NewGeminiModel creates a Gemini client authenticated with apiKey.
func NewGeminiModel(ctx context.Context, apiKey string) (*GeminiModel, error) {
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}
	return &GeminiModel{client: client}, nil
}

// NewGeminiModelFromClient wraps an existing client, e.g. one shared with the
// Files API.
func NewGeminiModelFromClient(client *genai.Client) *GeminiModel {
	return &GeminiModel{client: client}
}

func (m *GeminiModel) Generate(ctx context.Context, req *Request) (*Reply, error) {
	config := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(req.Instruction, genai.RoleUser),
	}
	if len(req.Tools) > 0 {
		config.Tools = []*genai.Tool{{FunctionDeclarations: toFunctionDecls(req.Tools)}}
	}

	result, err := m.client.Models.GenerateContent(ctx, req.Model, toContents(req.Turns), config)
	if err != nil {
		return nil, err
	}
	if result == nil || len(result.Candidates) == 0 || result.Candidates[0].Content == nil {
		return nil, errors.New("empty response from Gemini")
	}

	content := result.Candidates[0].Content
	reply := &Reply{Turn: Turn{Role: RoleModel, native: content}}

	var text strings.Builder
	for _, part := range content.Parts {
		if part.FunctionCall != nil {
			reply.Calls = append(reply.Calls, ToolCall{
				ID:   part.FunctionCall.ID,
				Name: part.FunctionCall.Name,
				Args: part.FunctionCall.Args,
			})
			continue
		}
		if part.Text != "" && !part.Thought {
			text.WriteString(part.Text)
		}
	}
	reply.Text = text.String()
	return reply, nil
}

func toContents(turns []Turn) []*genai.Content {
	contents := make([]*genai.Content, 0, len(turns))
	for _, t := range turns {
		if c, ok := t.native.(*genai.Content); ok {
			contents = append(contents, c)
			continue
		}

		parts := make([]*genai.Part, 0, len(t.Parts))
		for _, p := range t.Parts {
			switch {
			case p.Media != nil:
				parts = append(parts, genai.NewPartFromURI(p.Media.URI, p.Media.MIMEType))
			case p.Call != nil:
				parts = append(parts, &genai.Part{FunctionCall: &genai.FunctionCall{
					ID:   p.Call.ID,
					Name: p.Call.Name,
					Args: p.Call.Args,
				}})
			case p.Result != nil:
				parts = append(parts, &genai.Part{FunctionResponse: &genai.FunctionResponse{
					ID:       p.Result.ID,
					Name:     p.Result.Name,
					Response: p.Result.Output,
				}})
			default:
				parts = append(parts, genai.NewPartFromText(p.Text))
			}
		}

		role := genai.RoleUser
		if t.Role == RoleModel {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromParts(parts, genai.Role(role)))
	}
	return contents
}

func toFunctionDecls(tools []ToolDecl) []*genai.FunctionDeclaration {
	decls := make([]*genai.FunctionDeclaration, 0, len(tools))
	for _, t := range tools {
		schema := &genai.Schema{
			Type:       genai.TypeObject,
			Properties: make(map[string]*genai.Schema, len(t.Params)),
		}
		for _, p := range t.Params {
			schema.Properties[p.Name] = &genai.Schema{
				Type:        schemaType(p.Type),
				Description: p.Description,
			}
			if p.Required {
				schema.Required = append(schema.Required, p.Name)
			}
		}
		decls = append(decls, &genai.FunctionDeclaration{
			Name:        t.Name,
			Description: t.Description,
			Parameters:  schema,
		})
	}
	return decls
}

func schemaType(t string) genai.Type {
	switch t {
	case "integer":
		return genai.TypeInteger
	case "number":
		return genai.TypeNumber
	case "boolean":
		return genai.TypeBoolean
	default:
		return genai.TypeString
	}
}
