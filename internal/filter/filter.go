package filter

import (
	"fmt"
	"hash/fnv"
	"strings"
	"sync"

	"sales-agent/internal/catalog"
	"sales-agent/internal/message"
)

const (
	ReasonInvalid    = "invalid message"
	ReasonDuplicate  = "duplicate"
	ReasonSelf       = "self message"
	ReasonProduct    = "product query"
	ReasonGreeting   = "greeting"
	ReasonPriceQuery = "price or availability query"
	ReasonNoResponse = "no response required"
)

// Display names the agent itself may appear under; messages from these
// senders are dropped to avoid bot loops.
var botLabels = map[string]bool{
	"bot": true, "asistente": true, "agente": true,
	"assistant": true, "agent": true,
}

var greetingTokens = []string{"hola", "buenos", "buenas", "saludos", "hello", "hi"}

var priceTokens = []string{"precio", "costo", "cuánto", "disponible", "stock", "existencia"}

const (
	dedupCap = 1000
	// Fraction of oldest keys pruned in bulk once the cap is exceeded.
	dedupEvict = dedupCap / 5
)

// Filter decides whether an inbound message warrants a reply. Pure
// decision logic over the message plus a bounded dedup record; it never
// touches the network or the catalog.
type Filter struct {
	mu    sync.Mutex
	seen  map[string]bool
	order []string
}

func New() *Filter {
	return &Filter{seen: make(map[string]bool)}
}

// ShouldProcess evaluates the eligibility rules in order, first match
// wins. It returns the decision and the matching rule's reason. A new
// message key is recorded as seen as part of the duplicate check.
func (f *Filter) ShouldProcess(msg message.Message) (bool, string) {
	if strings.TrimSpace(msg.Content) == "" || msg.ChatID == "" {
		return false, ReasonInvalid
	}
	if f.IsDuplicate(msg) {
		return false, ReasonDuplicate
	}
	if botLabels[strings.ToLower(msg.SenderName)] {
		return false, ReasonSelf
	}
	if len(catalog.ExtractKeywords(msg.Content)) > 0 {
		return true, ReasonProduct
	}
	content := strings.ToLower(msg.Content)
	for _, tok := range greetingTokens {
		if strings.Contains(content, tok) {
			return true, ReasonGreeting
		}
	}
	for _, tok := range priceTokens {
		if strings.Contains(content, tok) {
			return true, ReasonPriceQuery
		}
	}
	return false, ReasonNoResponse
}

// IsDuplicate reports whether this message was already observed and
// records it otherwise. Keys are capped; once the cap is exceeded the
// oldest fifth is evicted in bulk.
func (f *Filter) IsDuplicate(msg message.Message) bool {
	key := dedupKey(msg)

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.seen[key] {
		return true
	}
	f.seen[key] = true
	f.order = append(f.order, key)

	if len(f.order) > dedupCap {
		for _, old := range f.order[:dedupEvict] {
			delete(f.seen, old)
		}
		f.order = append(f.order[:0:0], f.order[dedupEvict:]...)
	}
	return false
}

func dedupKey(msg message.Message) string {
	h := fnv.New32a()
	_, _ = h.Write([]byte(msg.Content))
	return fmt.Sprintf("%s:%s:%d", msg.ChatID, msg.ID, h.Sum32())
}
