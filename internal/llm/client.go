package llm

import "context"

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

type Message struct {
	Role    string
	Content string
}

// Client is one interchangeable text-generation backend. A nil error
// with empty content means the provider had nothing to say; callers
// treat that the same as an error and advance to the next provider.
type Client interface {
	Name() string
	Generate(ctx context.Context, messages []Message) (string, error)
}
