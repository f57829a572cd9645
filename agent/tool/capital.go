package tool

import (
	_ "embed"
	"fmt"
	"sort"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	contractx "github.com/tanpawarit/capital-agent/agent/contract"
)

const (
	ToolGetCapitalCity = "get_capital_city"

	// UnknownCountryReply is the fixed answer for countries outside the table.
	UnknownCountryReply = "I don't have that country in my database"
)

//go:embed capitals.toml
var capitalsRaw []byte

var defaultTable = mustParseTable(capitalsRaw)

type CapitalLookupOutput struct {
	Country string `json:"country"`
	Capital string `json:"capital,omitempty"`
	Found   bool   `json:"found"`
}

// Table maps normalized country names to capitals. It has no mutation API.
type Table struct {
	entries map[string]string
}

type tableFile struct {
	Capitals map[string]string `toml:"capitals"`
}

// DefaultTable returns the table embedded in the binary.
func DefaultTable() *Table {
	return defaultTable
}

func ParseTable(data []byte) (*Table, error) {
	var file tableFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("%w: decode capital table: %v", contractx.ErrValidation, err)
	}

	entries := make(map[string]string, len(file.Capitals))
	for country, capital := range file.Capitals {
		key := Normalize(country)
		if key == "" {
			return nil, fmt.Errorf("%w: empty country key", contractx.ErrValidation)
		}
		capital = strings.TrimSpace(capital)
		if capital == "" {
			return nil, fmt.Errorf("%w: empty capital for country=%q", contractx.ErrValidation, key)
		}
		if _, dup := entries[key]; dup {
			return nil, fmt.Errorf("%w: duplicate country=%q after normalization", contractx.ErrValidation, key)
		}
		entries[key] = capital
	}
	return &Table{entries: entries}, nil
}

func mustParseTable(data []byte) *Table {
	t, err := ParseTable(data)
	if err != nil {
		panic(err)
	}
	return t
}

func (t *Table) Lookup(country string) (string, bool) {
	if t == nil {
		return "", false
	}
	capital, ok := t.entries[Normalize(country)]
	return capital, ok
}

// Countries returns the normalized keys in sorted order.
func (t *Table) Countries() []string {
	if t == nil {
		return nil
	}
	out := make([]string, 0, len(t.entries))
	for k := range t.entries {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.entries)
}

// Normalize lowercases and trims a country name and collapses inner
// whitespace to single spaces.
func Normalize(country string) string {
	return strings.Join(strings.Fields(strings.ToLower(country)), " ")
}

// DisplayName renders a normalized country for a sentence: short names such
// as usa or uk are upper-cased, longer words are capitalized.
func DisplayName(country string) string {
	words := strings.Fields(Normalize(country))
	for i, w := range words {
		if len(w) <= 3 {
			words[i] = strings.ToUpper(w)
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

func executeCapitalTool(table *Table, tool string, args map[string]any) (contractx.ToolResult, error) {
	rawCountry, ok := args["country"]
	if !ok {
		return contractx.ToolResult{
			Tool:  tool,
			Error: "country is required",
		}, nil
	}

	country, ok := rawCountry.(string)
	if !ok {
		return contractx.ToolResult{
			Tool:  tool,
			Error: "country must be a string",
		}, nil
	}

	country = Normalize(country)
	if country == "" {
		return contractx.ToolResult{
			Tool:  tool,
			Error: "country is empty",
		}, nil
	}

	capital, found := table.Lookup(country)
	if !found {
		return contractx.ToolResult{
			Tool:   tool,
			Result: CapitalLookupOutput{Country: country},
			Error:  contractx.ErrUnknownCountry.Error(),
		}, nil
	}

	return contractx.ToolResult{
		Tool: tool,
		Result: CapitalLookupOutput{
			Country: country,
			Capital: capital,
			Found:   true,
		},
	}, nil
}
