package config

import (
	"log"
	"strings"

	"github.com/caarlos0/env/v6"
)

// Store is one catalog source configured as "Name=URL".
type Store struct {
	Name string
	URL  string
}

type Config struct {
	// HTTP server
	Port string `env:"PORT" envDefault:"8000"`

	// WhatsApp (Evolution API) transport defaults. Inbound messages may
	// override these per message so replies go out on the same account.
	WhatsAppServerURL    string `env:"WHATSAPP_SERVER_URL"`
	WhatsAppInstanceName string `env:"WHATSAPP_INSTANCE_NAME"`
	WhatsAppAPIKey       string `env:"WHATSAPP_API_KEY"`

	// Text-generation providers, in chain priority order.
	GeminiAPIKey  string `env:"GOOGLE_GEMINI_API_KEY"`
	GeminiModel   string `env:"GEMINI_MODEL" envDefault:"gemini-1.5-flash"`
	OpenAIAPIKey  string `env:"OPENAI_API_KEY"`
	OpenAIBaseURL string `env:"OPENAI_BASE_URL"`
	OpenAIModel   string `env:"OPENAI_MODEL" envDefault:"gpt-3.5-turbo"`
	OllamaBaseURL string `env:"OLLAMA_BASE_URL" envDefault:"http://localhost:11434"`
	OllamaModel   string `env:"OLLAMA_MODEL" envDefault:"llama2"`

	// Catalog sources, ordered. Each entry is "Name=URL".
	CatalogStores []string `env:"CATALOG_STORES" envSeparator:"," envDefault:"MegaPack=https://megapack-nu.vercel.app/,MegaComputer=https://megacomputer.com.co/"`

	// Agent behaviour
	MaxResponseLength   int     `env:"MAX_RESPONSE_LENGTH" envDefault:"500"`
	ContextWindowLength int     `env:"CONTEXT_WINDOW_LENGTH" envDefault:"10"`
	DelayBetweenMsgs    float64 `env:"DELAY_BETWEEN_MESSAGES" envDefault:"2.0"`
	RequestTimeoutSecs  int     `env:"REQUEST_TIMEOUT_SECONDS" envDefault:"30"`
	RefreshSchedule     string  `env:"CATALOG_REFRESH_SCHEDULE" envDefault:"@every 30m"`

	// Prompts
	SystemPromptPath string `env:"SYSTEM_PROMPT_PATH"`

	// Storage
	ExchangeLogPath string `env:"EXCHANGE_LOG_PATH" envDefault:"logs/exchanges.jsonl"`
}

func New() *Config {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	return cfg
}

// Stores parses CATALOG_STORES preserving the configured order. Entries
// without a "=" separator are skipped.
func (c *Config) Stores() []Store {
	var stores []Store
	for _, entry := range c.CatalogStores {
		name, url, ok := strings.Cut(strings.TrimSpace(entry), "=")
		if !ok || name == "" || url == "" {
			continue
		}
		stores = append(stores, Store{Name: name, URL: url})
	}
	return stores
}

// Warnings reports configuration gaps that degrade but do not stop the
// agent. Missing provider keys leave only the rule-based responder.
func (c *Config) Warnings() []string {
	var warns []string
	if c.WhatsAppServerURL == "" || c.WhatsAppInstanceName == "" || c.WhatsAppAPIKey == "" {
		warns = append(warns, "WhatsApp transport not fully configured")
	}
	if c.GeminiAPIKey == "" && c.OpenAIAPIKey == "" {
		warns = append(warns, "no LLM provider configured, only rule-based responses available")
	}
	return warns
}
