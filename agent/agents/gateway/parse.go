package gateway

import (
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
	contractx "github.com/tanpawarit/capital-agent/agent/contract"
	toolx "github.com/tanpawarit/capital-agent/agent/tool"
)

const (
	intentNeedsTool    = "needs_tool"
	intentDirectAnswer = "direct_answer"
)

// parseIntent reads the interpret reply. Models sometimes wrap the object in
// a code fence or a sentence, so the outermost braces are extracted first.
func parseIntent(content string) (contractx.Intent, error) {
	raw := extractJSONObject(content)
	if raw == "" || !gjson.Valid(raw) {
		return nil, fmt.Errorf("%w: interpret reply is not a JSON object", contractx.ErrMalformedResponse)
	}

	res := gjson.Parse(raw)
	intent := strings.ToLower(strings.TrimSpace(res.Get("intent").String()))
	switch intent {
	case intentNeedsTool:
		country := toolx.Normalize(res.Get("country").String())
		if country == "" {
			return nil, fmt.Errorf("%w: needs_tool without country", contractx.ErrMalformedResponse)
		}
		return contractx.NeedsTool{Country: country}, nil
	case intentDirectAnswer:
		answer := strings.TrimSpace(res.Get("answer").String())
		if answer == "" {
			return nil, fmt.Errorf("%w: direct_answer without answer", contractx.ErrMalformedResponse)
		}
		return contractx.DirectAnswer{Text: answer}, nil
	default:
		return nil, fmt.Errorf("%w: unknown intent=%q", contractx.ErrMalformedResponse, intent)
	}
}

func extractJSONObject(content string) string {
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start < 0 || end <= start {
		return ""
	}
	return content[start : end+1]
}
