package agent

import (
	"context"
	"log"
	"time"

	"sales-agent/internal/catalog"
	"sales-agent/internal/filter"
	"sales-agent/internal/memory"
	"sales-agent/internal/message"
	"sales-agent/internal/storage"
	"sales-agent/internal/whatsapp"
)

// Transport is the narrow view of the chat platform the agent needs.
// Failures are booleans and nil results, never errors.
type Transport interface {
	SendText(ctx context.Context, acct whatsapp.Account, chatID, text string) bool
	SendImage(ctx context.Context, acct whatsapp.Account, chatID, imageURL, caption string) bool
	DownloadMedia(ctx context.Context, acct whatsapp.Account, messageID string) []byte
	ValidateConnection(ctx context.Context) bool
	Configured() bool
}

// Transcriber converts a voice note into text; empty means failed.
type Transcriber interface {
	Transcribe(ctx context.Context, data []byte) string
	Configured() bool
}

// CatalogSource hands out the current catalog snapshot.
type CatalogSource interface {
	Snapshot() *catalog.Snapshot
	LastRefresh() time.Time
}

// Responder produces reply text; guaranteed non-empty.
type Responder interface {
	Generate(ctx context.Context, content string, products []catalog.Product, chatID string) string
	Configured() bool
}

// SalesAgent wires normalization, eligibility, matching, generation and
// delivery into the end-to-end pipeline.
type SalesAgent struct {
	transport   Transport
	transcriber Transcriber
	catalog     CatalogSource
	responder   Responder
	filter      *filter.Filter
	memory      *memory.Manager
	recorder    storage.Recorder
}

func New(
	transport Transport,
	transcriber Transcriber,
	cat CatalogSource,
	resp Responder,
	flt *filter.Filter,
	mem *memory.Manager,
	rec storage.Recorder,
) *SalesAgent {
	return &SalesAgent{
		transport:   transport,
		transcriber: transcriber,
		catalog:     cat,
		responder:   resp,
		filter:      flt,
		memory:      mem,
		recorder:    rec,
	}
}

// HandleInbound runs one webhook payload through the pipeline. Every
// step failure short-circuits with false and a logged cause; nothing
// is ever raised to the HTTP boundary.
func (a *SalesAgent) HandleInbound(ctx context.Context, raw map[string]any) bool {
	msg := message.Normalize(raw)

	ok, reason := a.filter.ShouldProcess(msg)
	if !ok {
		log.Printf("not responding to %s: %s", msg.ChatID, reason)
		return false
	}

	if msg.Kind == message.KindAudio {
		transcript, ok := a.transcribeAudio(ctx, msg)
		if !ok {
			return false
		}
		msg = msg.AsText(transcript)
	}

	result := a.catalog.Snapshot().Match(msg.Content)

	reply := a.responder.Generate(ctx, msg.Content, result.Alternatives, msg.ChatID)
	if reply == "" {
		log.Printf("no reply generated for %s", msg.ChatID)
		return false
	}

	acct := whatsapp.Account{ServerURL: msg.ServerURL, Instance: msg.Instance, APIKey: msg.APIKey}
	if !a.transport.SendText(ctx, acct, msg.ChatID, reply) {
		log.Printf("failed to deliver reply to %s", msg.ChatID)
		return false
	}

	// Memory and the exchange log track confirmed deliveries only,
	// which is why the append happens after the send.
	a.memory.Append(msg.ChatID, msg.Content, reply)
	a.recordExchange(msg.ChatID, msg.Content, reply)

	if result.Matched != nil && result.Matched.ImageURL != "" {
		if a.transport.SendImage(ctx, acct, msg.ChatID, result.Matched.ImageURL, result.Matched.DisplayInfo()) {
			log.Printf("product image sent: %s", result.Matched.Name)
		}
	}

	log.Printf("reply delivered to %s (%s)", msg.ChatID, reason)
	return true
}

func (a *SalesAgent) transcribeAudio(ctx context.Context, msg message.Message) (string, bool) {
	acct := whatsapp.Account{ServerURL: msg.ServerURL, Instance: msg.Instance, APIKey: msg.APIKey}
	data := a.transport.DownloadMedia(ctx, acct, msg.ID)
	if len(data) == 0 {
		log.Printf("could not download audio for %s", msg.ChatID)
		return "", false
	}
	transcript := a.transcriber.Transcribe(ctx, data)
	if transcript == "" {
		log.Printf("could not transcribe audio for %s", msg.ChatID)
		return "", false
	}
	log.Printf("audio transcribed for %s: %.100s", msg.ChatID, transcript)
	return transcript, true
}

func (a *SalesAgent) recordExchange(chatID, user, reply string) {
	if a.recorder == nil {
		return
	}
	ex := storage.Exchange{
		Timestamp:     time.Now().UTC(),
		ChatID:        chatID,
		UserMessage:   user,
		AgentResponse: reply,
	}
	if err := a.recorder.AppendExchange(ex); err != nil {
		log.Printf("failed to record exchange: %v", err)
	}
}

// Status is the health-endpoint view of the agent.
type Status struct {
	Running             bool       `json:"running"`
	ProductCount        int        `json:"product_count"`
	LastCatalogRefresh  *time.Time `json:"last_catalog_refresh,omitempty"`
	WhatsAppConfigured  bool       `json:"whatsapp_configured"`
	ResponderConfigured bool       `json:"responder_configured"`
	AudioConfigured     bool       `json:"audio_configured"`
}

func (a *SalesAgent) Status() Status {
	st := Status{
		Running:             true,
		ProductCount:        a.catalog.Snapshot().Total(),
		WhatsAppConfigured:  a.transport.Configured(),
		ResponderConfigured: a.responder.Configured(),
		AudioConfigured:     a.transcriber.Configured(),
	}
	if t := a.catalog.LastRefresh(); !t.IsZero() {
		st.LastCatalogRefresh = &t
	}
	return st
}
