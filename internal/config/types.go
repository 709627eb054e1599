package config

// Watchlist is a named provider search that 'brickmind sync' keeps in the
// local catalog.
type Watchlist struct {
	Query string `yaml:"query"`
	Theme string `yaml:"theme,omitempty"`
	Limit int    `yaml:"limit,omitempty"`
}

// Provider holds per-provider overrides. API keys come from the
// environment, never from the config file.
type Provider struct {
	BaseURL string `yaml:"base_url,omitempty"`
}

type Providers struct {
	Brickset    Provider `yaml:"brickset,omitempty"`
	Rebrickable Provider `yaml:"rebrickable,omitempty"`
	BrickOwl    Provider `yaml:"brickowl,omitempty"`
}

type Config struct {
	// GlobalNote is injected into every assistant prompt.
	GlobalNote string `yaml:"global_note,omitempty"`
	// Notes are collector notes keyed by theme name.
	Notes      map[string]string    `yaml:"notes,omitempty"`
	Watchlists map[string]Watchlist `yaml:"watchlists"`
	Providers  Providers            `yaml:"providers,omitempty"`

	ChatModel  string `yaml:"chat_model,omitempty"`
	EmbedModel string `yaml:"embed_model,omitempty"`
	LLMBaseURL string `yaml:"llm_base_url,omitempty"`
}
