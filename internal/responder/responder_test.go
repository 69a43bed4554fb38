package responder

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"sales-agent/internal/catalog"
	"sales-agent/internal/llm"
	"sales-agent/internal/memory"
)

type fakeClient struct {
	name  string
	text  string
	err   error
	calls int
	seen  []llm.Message
}

func (f *fakeClient) Name() string { return f.name }

func (f *fakeClient) Generate(_ context.Context, messages []llm.Message) (string, error) {
	f.calls++
	f.seen = messages
	return f.text, f.err
}

func newGenerator(mem *memory.Manager, chain ...llm.Client) *Generator {
	if mem == nil {
		mem = memory.NewManager(10)
	}
	return New(chain, mem, "", 500, time.Second)
}

func TestFirstSuccessfulProviderWins(t *testing.T) {
	a := &fakeClient{name: "a", text: "reply from a"}
	b := &fakeClient{name: "b", text: "reply from b"}
	g := newGenerator(nil, a, b)

	got := g.Generate(context.Background(), "hola", nil, "chat")
	if got != "reply from a" {
		t.Fatalf("want first provider's reply, got %q", got)
	}
	if b.calls != 0 {
		t.Fatalf("second provider should not be tried after a success")
	}
}

func TestChainAdvancesOnErrorAndEmpty(t *testing.T) {
	a := &fakeClient{name: "a", err: fmt.Errorf("boom")}
	b := &fakeClient{name: "b", text: ""}
	c := &fakeClient{name: "c", text: "reply from c"}
	g := newGenerator(nil, a, b, c)

	got := g.Generate(context.Background(), "hola", nil, "chat")
	if got != "reply from c" {
		t.Fatalf("chain should advance past error and empty result, got %q", got)
	}
	if a.calls != 1 || b.calls != 1 || c.calls != 1 {
		t.Fatalf("unexpected call counts: a=%d b=%d c=%d", a.calls, b.calls, c.calls)
	}
}

func TestFallbackTotality(t *testing.T) {
	// No providers at all: the rule-based responder must still answer.
	g := newGenerator(nil)
	inputs := []string{"hola", "precio?", "stock disponible", "laptop lenovo", "xyz", ""}
	for _, in := range inputs {
		if got := g.Generate(context.Background(), in, nil, "chat"); got == "" {
			t.Fatalf("generate returned empty text for input %q", in)
		}
	}
}

func TestFallbackProductOverlap(t *testing.T) {
	g := newGenerator(nil)
	products := []catalog.Product{catalog.NewProduct("Lenovo ThinkPad E14", "MegaPack")}

	got := g.Generate(context.Background(), "busco un lenovo", products, "chat")
	if !strings.Contains(got, "Lenovo ThinkPad E14") {
		t.Fatalf("fallback should pitch the overlapping product, got %q", got)
	}
}

func TestFallbackTokenReplies(t *testing.T) {
	g := newGenerator(nil)
	cases := []struct {
		in   string
		want string
	}{
		{"cuál es el precio", "💰"},
		{"hay stock", "📦"},
		{"hola", "👋"},
		{"zzz", "💬"},
	}
	for _, tc := range cases {
		if got := g.Generate(context.Background(), tc.in, nil, "chat"); !strings.Contains(got, tc.want) {
			t.Fatalf("input %q: want reply containing %q, got %q", tc.in, tc.want, got)
		}
	}
}

func TestTruncation(t *testing.T) {
	long := strings.Repeat("x", 1200)
	a := &fakeClient{name: "a", text: long}
	g := New([]llm.Client{a}, memory.NewManager(10), "", 500, time.Second)

	got := g.Generate(context.Background(), "hola", nil, "chat")
	if len([]rune(got)) != 500 {
		t.Fatalf("want exactly 500 chars, got %d", len([]rune(got)))
	}
	if !strings.HasPrefix(long, got) {
		t.Fatalf("truncated text must be a prefix of the original")
	}
}

func TestPromptIncludesHistoryAndProducts(t *testing.T) {
	mem := memory.NewManager(10)
	mem.Append("chat", "hola", "¡Hola! 👋")
	a := &fakeClient{name: "a", text: "ok"}
	g := newGenerator(mem, a)

	products := []catalog.Product{
		catalog.NewProduct("Lenovo ThinkPad E14", "MegaPack"),
		catalog.NewProduct("iPhone 13", "MegaComputer"),
	}
	g.Generate(context.Background(), "precio del lenovo", products, "chat")

	if len(a.seen) != 4 {
		t.Fatalf("want system + 2 history + 1 user message, got %d", len(a.seen))
	}
	if a.seen[0].Role != llm.RoleSystem {
		t.Fatalf("first message should be the system instruction")
	}
	if a.seen[1].Content != "hola" || a.seen[2].Content != "¡Hola! 👋" {
		t.Fatalf("history not rendered: %+v", a.seen[1:3])
	}
	final := a.seen[3].Content
	if !strings.Contains(final, "Lenovo ThinkPad E14") || !strings.Contains(final, "precio del lenovo") {
		t.Fatalf("user message missing products or content: %q", final)
	}
}

func TestPromptCapsProductsAtFive(t *testing.T) {
	var products []catalog.Product
	for i := 0; i < 8; i++ {
		products = append(products, catalog.NewProduct(fmt.Sprintf("Laptop %d", i), "MegaPack"))
	}
	a := &fakeClient{name: "a", text: "ok"}
	g := newGenerator(nil, a)

	g.Generate(context.Background(), "laptops", products, "chat")
	final := a.seen[len(a.seen)-1].Content
	if strings.Contains(final, "Laptop 5") {
		t.Fatalf("more than 5 products rendered into prompt: %q", final)
	}
	if !strings.Contains(final, "Laptop 4") {
		t.Fatalf("first five products should be rendered: %q", final)
	}
}
