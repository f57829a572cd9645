package tool

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/schema"
	contractx "github.com/tanpawarit/capital-agent/agent/contract"
)

type Executor func(ctx context.Context, tool string, args map[string]any) (contractx.ToolResult, error)

// Build returns the tool descriptions offered to the model and an executor
// bound to table.
func Build(table *Table) ([]*schema.ToolInfo, Executor) {
	return Infos(), NewExecutor(table)
}

func NewExecutor(table *Table) Executor {
	if table == nil {
		table = DefaultTable()
	}
	fallback := unavailableToolExecutor()
	return func(ctx context.Context, tool string, args map[string]any) (contractx.ToolResult, error) {
		switch tool {
		case ToolGetCapitalCity:
			return executeCapitalTool(table, tool, args)
		default:
			return fallback(ctx, tool, args)
		}
	}
}

func unavailableToolExecutor() Executor {
	return func(ctx context.Context, tool string, _ map[string]any) (contractx.ToolResult, error) {
		return contractx.ToolResult{
			Tool:  tool,
			Error: fmt.Sprintf("tool=%s is unavailable", tool),
		}, nil
	}
}

func Infos() []*schema.ToolInfo {
	return []*schema.ToolInfo{
		{
			Name: ToolGetCapitalCity,
			Desc: "Return the capital city for a given country.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"country": {Type: schema.String, Desc: "Country name in English, e.g. japan", Required: true},
			}),
		},
	}
}
