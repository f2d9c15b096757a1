package agent

import "context"

// Agent is a named, instruction-configured wrapper around a hosted model.
type Agent interface {
	Name() string
	Query(ctx context.Context, prompt Prompt) (*Response, error)
}

// Model is one hosted generative-model backend.
type Model interface {
	Generate(ctx context.Context, req *Request) (*Reply, error)
}

// Tool is a local function the model may invoke while answering.
type Tool interface {
	Declaration() ToolDecl
	Call(ctx context.Context, args map[string]any) (map[string]any, error)
}
