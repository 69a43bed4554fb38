package filter

import (
	"fmt"
	"testing"

	"sales-agent/internal/message"
)

func textMsg(id, chatID, content string) message.Message {
	return message.Message{ID: id, ChatID: chatID, Content: content, SenderName: "Customer", Kind: message.KindText}
}

func TestShouldProcessRuleOrder(t *testing.T) {
	cases := []struct {
		name   string
		msg    message.Message
		want   bool
		reason string
	}{
		{"empty content", textMsg("1", "chat", "   "), false, ReasonInvalid},
		{"empty chat id", textMsg("2", "", "hola"), false, ReasonInvalid},
		{"product query", textMsg("3", "chat", "busco una laptop"), true, ReasonProduct},
		{"greeting", textMsg("4", "chat", "hola"), true, ReasonGreeting},
		{"price query", textMsg("5", "chat", "¿cuánto es?"), true, ReasonPriceQuery},
		{"no response", textMsg("6", "chat", "ok si"), false, ReasonNoResponse},
	}

	for _, tc := range cases {
		f := New()
		got, reason := f.ShouldProcess(tc.msg)
		if got != tc.want || reason != tc.reason {
			t.Fatalf("%s: got (%v, %q), want (%v, %q)", tc.name, got, reason, tc.want, tc.reason)
		}
	}
}

func TestShouldProcessSelfMessage(t *testing.T) {
	f := New()
	for _, label := range []string{"bot", "Bot", "ASISTENTE", "agente", "Assistant", "agent"} {
		msg := textMsg("1", "chat", "hola")
		msg.SenderName = label
		if ok, reason := f.ShouldProcess(msg); ok || reason != ReasonSelf {
			t.Fatalf("sender %q: got (%v, %q), want self-message reject", label, ok, reason)
		}
	}
}

func TestDuplicateRejectedOnSecondDelivery(t *testing.T) {
	f := New()
	msg := textMsg("MSG1", "chat", "hola")

	if ok, reason := f.ShouldProcess(msg); !ok {
		t.Fatalf("first delivery rejected: %q", reason)
	}
	if ok, reason := f.ShouldProcess(msg); ok || reason != ReasonDuplicate {
		t.Fatalf("second delivery: got (%v, %q), want duplicate reject", ok, reason)
	}
}

func TestDuplicateKeyIncludesContent(t *testing.T) {
	f := New()
	a := textMsg("MSG1", "chat", "hola")
	b := textMsg("MSG1", "chat", "precio laptop")

	if f.IsDuplicate(a) {
		t.Fatalf("first message flagged duplicate")
	}
	if f.IsDuplicate(b) {
		t.Fatalf("different content with same id flagged duplicate")
	}
	if !f.IsDuplicate(a) {
		t.Fatalf("repeat not flagged duplicate")
	}
}

func TestDedupEviction(t *testing.T) {
	f := New()
	first := textMsg("id-0", "chat", "content-0")
	if f.IsDuplicate(first) {
		t.Fatalf("unexpected duplicate")
	}

	// Push past the cap so the oldest fifth gets evicted.
	for i := 1; i <= dedupCap; i++ {
		msg := textMsg(fmt.Sprintf("id-%d", i), "chat", fmt.Sprintf("content-%d", i))
		if f.IsDuplicate(msg) {
			t.Fatalf("unexpected duplicate at %d", i)
		}
	}

	if f.IsDuplicate(first) {
		t.Fatalf("oldest entry should have been evicted and re-admitted")
	}
	recent := textMsg(fmt.Sprintf("id-%d", dedupCap), "chat", fmt.Sprintf("content-%d", dedupCap))
	if !f.IsDuplicate(recent) {
		t.Fatalf("recent entry should survive eviction")
	}
}
