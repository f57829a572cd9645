package prompt

import (
	_ "embed"
	"strings"
)

var (
	//go:embed template/interpret.txt
	interpretRaw string

	//go:embed template/compose.txt
	composeRaw string
)

// PromptSet holds the system prompts of the two model round trips.
type PromptSet struct {
	Interpret string
	Compose   string
}

func LoadPromptSet() PromptSet {
	return PromptSet{
		Interpret: strings.TrimSpace(interpretRaw),
		Compose:   strings.TrimSpace(composeRaw),
	}
}
