package responder

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"sales-agent/internal/catalog"
	"sales-agent/internal/llm"
	"sales-agent/internal/memory"
)

const defaultSystemPrompt = `You are a professional sales assistant specialized in technology products.
Reply in at most 3 lines, use emojis like 💻📱🛒, never mention the source websites,
and when a product image is known, include a reference to it.

Specific instructions:
- Be friendly and professional
- Highlight product benefits
- Offer price and availability information
- Invite the customer to buy
- Keep replies concise but informative`

// No more than this many candidate products are rendered into a prompt.
const maxPromptProducts = 5

// Generator turns an inbound message plus candidate products into reply
// text. Providers are tried in fixed priority order; any error, timeout
// or empty result advances the chain. The terminal rule-based responder
// never fails, so Generate always returns non-empty text.
type Generator struct {
	chain        []llm.Client
	memory       *memory.Manager
	systemPrompt string
	maxLength    int
	timeout      time.Duration
}

func New(chain []llm.Client, mem *memory.Manager, systemPrompt string, maxLength int, timeout time.Duration) *Generator {
	if systemPrompt == "" {
		systemPrompt = defaultSystemPrompt
	}
	if maxLength <= 0 {
		maxLength = 500
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Generator{
		chain:        chain,
		memory:       mem,
		systemPrompt: systemPrompt,
		maxLength:    maxLength,
		timeout:      timeout,
	}
}

// Configured reports whether at least one networked provider is wired.
func (g *Generator) Configured() bool { return len(g.chain) > 0 }

func (g *Generator) Generate(ctx context.Context, content string, products []catalog.Product, chatID string) string {
	messages := g.buildMessages(content, products, chatID)

	for _, client := range g.chain {
		cctx, cancel := context.WithTimeout(ctx, g.timeout)
		text, err := client.Generate(cctx, messages)
		cancel()
		if err != nil {
			log.Printf("provider %s failed: %v", client.Name(), err)
			continue
		}
		if text == "" {
			log.Printf("provider %s returned empty response", client.Name())
			continue
		}
		return truncate(text, g.maxLength)
	}

	return truncate(g.fallback(content, products), g.maxLength)
}

func (g *Generator) buildMessages(content string, products []catalog.Product, chatID string) []llm.Message {
	messages := []llm.Message{{Role: llm.RoleSystem, Content: g.systemPrompt}}

	if chatID != "" {
		for _, turn := range g.memory.Recent(chatID) {
			messages = append(messages,
				llm.Message{Role: llm.RoleUser, Content: turn.User},
				llm.Message{Role: llm.RoleAssistant, Content: turn.Agent},
			)
		}
	}

	var user strings.Builder
	if len(products) > 0 {
		user.WriteString("Available products:\n")
		for i, p := range products {
			if i == maxPromptProducts {
				break
			}
			fmt.Fprintf(&user, "- %s\n", p.DisplayInfo())
		}
		user.WriteString("\n")
	}
	user.WriteString(content)

	return append(messages, llm.Message{Role: llm.RoleUser, Content: user.String()})
}

// fallback is the terminal rule-based responder. It inspects the
// message for a product-name-token overlap, then for price, stock and
// greeting tokens, and otherwise returns a generic prompt.
func (g *Generator) fallback(content string, products []catalog.Product) string {
	lower := strings.ToLower(content)

	for _, p := range products {
		for _, token := range strings.Fields(strings.ToLower(p.Name)) {
			if strings.Contains(lower, token) {
				return fmt.Sprintf("💻 Excellent choice! %s 📱 Would you like more details about price and availability? 🛒", p.DisplayInfo())
			}
		}
	}

	if containsAny(lower, "precio", "costo", "cuánto", "price", "cost") {
		return "💰 Our prices are competitive and vary by model. Which product are you interested in? 📱"
	}
	if containsAny(lower, "disponible", "stock", "existencia", "available") {
		return "📦 We have wide availability. Which product do you need? 🛒"
	}
	if containsAny(lower, "hola", "buenos", "saludos", "hello", "hi") {
		return "Hello! 👋 I'm your tech sales assistant. How can I help you? 💻📱"
	}

	return "💬 Hello! Which tech product can I help you with today? We carry laptops, phones and accessories 🛒"
}

func containsAny(s string, tokens ...string) bool {
	for _, tok := range tokens {
		if strings.Contains(s, tok) {
			return true
		}
	}
	return false
}

// truncate hard-caps the reply length regardless of provider.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
