package llm

import (
	"time"

	"sales-agent/internal/config"
)

// BuildChain assembles the configured providers in their fixed priority
// order: Gemini, then OpenAI, then a local Ollama host. Unconfigured
// providers are left out; an empty chain means only the rule-based
// responder remains.
func BuildChain(cfg *config.Config) []Client {
	timeout := time.Duration(cfg.RequestTimeoutSecs) * time.Second

	var chain []Client
	if cfg.GeminiAPIKey != "" {
		chain = append(chain, NewGemini(cfg.GeminiAPIKey, cfg.GeminiModel))
	}
	if cfg.OpenAIAPIKey != "" {
		chain = append(chain, NewOpenAI(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.OpenAIModel))
	}
	if cfg.OllamaBaseURL != "" {
		chain = append(chain, NewOllama(cfg.OllamaBaseURL, cfg.OllamaModel, timeout))
	}
	return chain
}
