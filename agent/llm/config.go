package llm

import (
	"fmt"
	"strings"
	"time"

	contractx "github.com/tanpawarit/capital-agent/agent/contract"
	openrouterx "github.com/tanpawarit/capital-agent/pkg/openrouter"
)

type Provider string

const (
	ProviderOpenRouter Provider = "openrouter"
	ProviderOpenAI     Provider = "openai"
	ProviderAnthropic  Provider = "anthropic"
)

// Phase is one of the two model round trips in a turn.
type Phase string

const (
	PhaseInterpret Phase = "interpret"
	PhaseCompose   Phase = "compose"
)

var defaultModels = map[Provider]string{
	ProviderOpenRouter: "google/gemini-2.0-flash-001",
	ProviderOpenAI:     "gpt-4o-mini",
	ProviderAnthropic:  "claude-3-5-haiku-latest",
}

var defaultBaseURLs = map[Provider]string{
	ProviderOpenRouter: openrouterx.DefaultBaseURL,
	ProviderOpenAI:     "https://api.openai.com/v1",
	ProviderAnthropic:  "https://api.anthropic.com",
}

type Config struct {
	Provider           string        `envconfig:"PROVIDER" split_words:"true" default:"openrouter"`
	APIKey             string        `envconfig:"API_KEY" split_words:"true" required:"true"`
	Model              string        `envconfig:"MODEL" split_words:"true"`
	BaseURL            string        `envconfig:"BASE_URL" split_words:"true"`
	MaxCompletionToken int           `envconfig:"MAX_COMPLETION_TOKEN" split_words:"true" default:"1024"`
	Temperature        float32       `envconfig:"TEMPERATURE" split_words:"true" default:"0.3"`
	Timeout            time.Duration `envconfig:"TIMEOUT" split_words:"true" default:"30s"`
	SiteURL            string        `envconfig:"SITE_URL" split_words:"true"`
	SiteName           string        `envconfig:"SITE_NAME" split_words:"true" default:"capital-agent"`

	InterpretModel       string  `envconfig:"INTERPRET_MODEL" split_words:"true"`
	ComposeModel         string  `envconfig:"COMPOSE_MODEL" split_words:"true"`
	InterpretTemperature float32 `envconfig:"INTERPRET_TEMPERATURE" split_words:"true" default:"-1"`
	ComposeTemperature   float32 `envconfig:"COMPOSE_TEMPERATURE" split_words:"true" default:"-1"`
}

// ModelConfig is the fully resolved setup for one phase.
type ModelConfig struct {
	Provider           Provider
	BaseURL            string
	APIKey             string
	Model              string
	MaxCompletionToken int
	Temperature        float32
	Timeout            time.Duration
	SiteURL            string
	SiteName           string
}

func (c Config) provider() Provider {
	p := Provider(strings.ToLower(strings.TrimSpace(c.Provider)))
	if p == "" {
		return ProviderOpenRouter
	}
	return p
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.APIKey) == "" {
		return fmt.Errorf("%w: LLM_API_KEY is required", contractx.ErrStartupConfigMissing)
	}
	if _, ok := defaultModels[c.provider()]; !ok {
		return fmt.Errorf("%w: unsupported provider=%q", contractx.ErrValidation, c.Provider)
	}
	if c.MaxCompletionToken <= 0 {
		return fmt.Errorf("%w: max completion token must be > 0", contractx.ErrValidation)
	}
	return nil
}

func (c Config) For(phase Phase) ModelConfig {
	provider := c.provider()

	modelName := strings.TrimSpace(c.Model)
	if modelName == "" {
		modelName = defaultModels[provider]
	}
	temp := c.Temperature

	switch phase {
	case PhaseInterpret:
		if v := strings.TrimSpace(c.InterpretModel); v != "" {
			modelName = v
		}
		if c.InterpretTemperature >= 0 {
			temp = c.InterpretTemperature
		}
	case PhaseCompose:
		if v := strings.TrimSpace(c.ComposeModel); v != "" {
			modelName = v
		}
		if c.ComposeTemperature >= 0 {
			temp = c.ComposeTemperature
		}
	}

	baseURL := strings.TrimSpace(c.BaseURL)
	if baseURL == "" {
		baseURL = defaultBaseURLs[provider]
	}

	return ModelConfig{
		Provider:           provider,
		BaseURL:            baseURL,
		APIKey:             strings.TrimSpace(c.APIKey),
		Model:              modelName,
		MaxCompletionToken: c.MaxCompletionToken,
		Temperature:        temp,
		Timeout:            c.Timeout,
		SiteURL:            strings.TrimSpace(c.SiteURL),
		SiteName:           strings.TrimSpace(c.SiteName),
	}
}

func (m ModelConfig) openRouter() openrouterx.Config {
	return openrouterx.Config{
		BaseURL:            m.BaseURL,
		APIKey:             m.APIKey,
		Model:              m.Model,
		MaxCompletionToken: m.MaxCompletionToken,
		Temperature:        m.Temperature,
		Timeout:            m.Timeout,
		SiteURL:            m.SiteURL,
		SiteName:           m.SiteName,
	}
}
