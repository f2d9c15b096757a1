package agent

import (
	"context"
	"fmt"
)

func (a *implAgent) Name() string {
	return a.spec.Name
}

// Query sends prompt to the model and runs any tool calls it asks for until
// it answers with text.
func (a *implAgent) Query(ctx context.Context, prompt Prompt) (*Response, error) {
	first := Turn{Role: RoleUser}
	for i := range prompt.Media {
		first.Parts = append(first.Parts, Part{Media: &prompt.Media[i]})
	}
	first.Parts = append(first.Parts, Part{Text: prompt.Text})

	turns := []Turn{first}
	calls := 0

	for round := 0; ; round++ {
		a.logger.Debug(ctx, "%s: calling %s (round %d)", a.spec.Name, a.spec.Model, round+1)

		reply, err := a.model.Generate(ctx, &Request{
			Agent:       a.spec.Name,
			Model:       a.spec.Model,
			Instruction: a.spec.Instruction,
			Turns:       turns,
			Tools:       a.decls,
		})
		if err != nil {
			return nil, fmt.Errorf("%s: %w", a.spec.Name, err)
		}

		if len(reply.Calls) == 0 {
			return &Response{Agent: a.spec.Name, Text: reply.Text, ToolCalls: calls}, nil
		}

		if round >= a.spec.MaxToolRounds {
			return nil, fmt.Errorf("%s: %w (limit %d)", a.spec.Name, ErrToolRounds, a.spec.MaxToolRounds)
		}

		results := Turn{Role: RoleUser}
		for _, call := range reply.Calls {
			calls++
			out := a.callTool(ctx, call)
			results.Parts = append(results.Parts, Part{Result: &ToolResult{ID: call.ID, Name: call.Name, Output: out}})
		}
		turns = append(turns, modelTurn(reply), results)
	}
}

// callTool runs one tool call. Failures are handed back to the model as an
// "error" field so it can report them.
func (a *implAgent) callTool(ctx context.Context, call ToolCall) map[string]any {
	tool, ok := a.tools[call.Name]
	if !ok {
		a.logger.Warn(ctx, "%s: model requested unknown tool %q", a.spec.Name, call.Name)
		return map[string]any{"error": fmt.Sprintf("unknown tool %q", call.Name)}
	}

	a.logger.Info(ctx, "%s: running tool %s", a.spec.Name, call.Name)
	out, err := tool.Call(ctx, call.Args)
	if err != nil {
		a.logger.Warn(ctx, "%s: tool %s failed: %v", a.spec.Name, call.Name, err)
		return map[string]any{"error": err.Error()}
	}
	return out
}

// modelTurn returns the model's own turn for the history, rebuilding it from
// the tool calls when the backend did not supply one.
func modelTurn(reply *Reply) Turn {
	if reply.Turn.native != nil || len(reply.Turn.Parts) > 0 {
		return reply.Turn
	}
	t := Turn{Role: RoleModel}
	for i := range reply.Calls {
		t.Parts = append(t.Parts, Part{Call: &reply.Calls[i]})
	}
	return t
}
