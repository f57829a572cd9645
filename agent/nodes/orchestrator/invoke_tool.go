package orchestratornode

import (
	"context"
	"fmt"

	contractx "github.com/tanpawarit/capital-agent/agent/contract"
	toolx "github.com/tanpawarit/capital-agent/agent/tool"
)

func InvokeTool(
	ctx context.Context,
	in *GraphState,
	executor toolx.Executor,
	tracer contractx.Tracer,
) (*GraphState, error) {
	if err := requireState(in); err != nil {
		return nil, err
	}
	needs, ok := in.Intent.(contractx.NeedsTool)
	if !ok {
		return nil, fmt.Errorf("%w: invoke_tool without a country", contractx.ErrValidation)
	}

	res, err := executor(ctx, toolx.ToolGetCapitalCity, map[string]any{
		"country": needs.Country,
	})
	if err != nil {
		return nil, fmt.Errorf("execute tool=%s: %w", toolx.ToolGetCapitalCity, err)
	}

	call := &contractx.ToolCall{
		Tool:  toolx.ToolGetCapitalCity,
		Input: toolx.Normalize(needs.Country),
	}
	if out, ok := res.Result.(toolx.CapitalLookupOutput); ok && res.Error == "" && out.Found {
		call.Output = out.Capital
		call.Found = true
	}
	in.Tool = call

	outcome := "not found"
	if call.Found {
		outcome = fmt.Sprintf("'%s'", call.Output)
	}
	tracer.Emit(contractx.TraceEvent{
		Stage:   contractx.StageTool,
		Message: fmt.Sprintf("CALLED: %s('%s') -> %s", call.Tool, call.Input, outcome),
	})
	return in, nil
}
