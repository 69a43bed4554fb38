package storage

import "time"

// Exchange is one delivered customer-message/agent-reply pair. Records
// are appended only after the outbound send succeeds, so the log
// reflects confirmed deliveries.
type Exchange struct {
	Timestamp     time.Time `json:"timestamp"`
	ChatID        string    `json:"chat_id"`
	UserMessage   string    `json:"user_message"`
	AgentResponse string    `json:"agent_response"`
}

// Recorder abstracts persistence of delivered exchanges.
// Implementations must be safe for concurrent use.
type Recorder interface {
	AppendExchange(ex Exchange) error
	LoadExchanges() ([]Exchange, error)
}
