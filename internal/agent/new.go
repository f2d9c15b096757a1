package agent

import (
	"errors"

	"github.com/nguyentantai21042004/docsquad/internal/logger"
)

type implAgent struct {
	spec   Spec
	model  Model
	tools  map[string]Tool
	decls  []ToolDecl
	logger logger.Logger
}

// New creates an Agent for spec backed by model. Tools are optional.
func New(spec Spec, model Model, log logger.Logger, tools ...Tool) (Agent, error) {
	if spec.Name == "" {
		return nil, errors.New("agent name is required")
	}
	if spec.Instruction == "" {
		return nil, errors.New("agent instruction is required")
	}
	if model == nil {
		return nil, errors.New("model is required")
	}
	if spec.MaxToolRounds <= 0 {
		spec.MaxToolRounds = 4
	}

	a := &implAgent{
		spec:   spec,
		model:  model,
		tools:  make(map[string]Tool, len(tools)),
		logger: log,
	}
	for _, t := range tools {
		d := t.Declaration()
		if _, dup := a.tools[d.Name]; dup {
			return nil, errors.New("duplicate tool " + d.Name)
		}
		a.tools[d.Name] = t
		a.decls = append(a.decls, d)
	}
	return a, nil
}
