package agent

import (
	"errors"
	"fmt"
)

var (
	ErrToolRounds       = errors.New("too many tool rounds")
	ErrToolsUnsupported = errors.New("provider does not support tools")
	ErrUnknownProvider  = errors.New("unknown model provider")
)

// Spec is the immutable configuration of one agent role.
type Spec struct {
	Name          string
	Description   string
	Provider      string
	Model         string
	Instruction   string
	MaxToolRounds int
}

// MediaRef points at a remote file the model can read.
type MediaRef struct {
	URI      string
	MIMEType string
}

// Prompt is the single text input of a query, with optional media references.
type Prompt struct {
	Text  string
	Media []MediaRef
}

// Response is the agent's textual answer.
type Response struct {
	Agent     string
	Text      string
	ToolCalls int
}

type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

type ToolCall struct {
	ID   string
	Name string
	Args map[string]any
}

type ToolResult struct {
	ID     string
	Name   string
	Output map[string]any
}

// Part is one piece of a conversation turn. Exactly one field is set.
type Part struct {
	Text   string
	Media  *MediaRef
	Call   *ToolCall
	Result *ToolResult
}

// Turn is one message in the conversation sent to a Model.
type Turn struct {
	Role  Role
	Parts []Part
	// native keeps the provider's own message so it can be replayed verbatim.
	native any
}

// Request is what an Agent sends to its Model on every round.
type Request struct {
	Agent       string
	Model       string
	Instruction string
	Turns       []Turn
	Tools       []ToolDecl
}

// Reply is the Model's answer for one round: either text or tool calls.
type Reply struct {
	Text  string
	Calls []ToolCall
	Turn  Turn
}

// ToolDecl describes a tool to the model.
type ToolDecl struct {
	Name        string
	Description string
	Params      []Param
}

// Param is one argument of a tool. Type is a JSON schema primitive name.
type Param struct {
	Name        string
	Type        string
	Description string
	Required    bool
}

// Providers resolves a provider name to its Model.
type Providers map[string]Model

func (p Providers) Get(provider string) (Model, error) {
	m, ok := p[provider]
	if !ok || m == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, provider)
	}
	return m, nil
}

// UserText builds a user turn from plain text.
func UserText(text string) Turn {
	return Turn{Role: RoleUser, Parts: []Part{{Text: text}}}
}
