package message

import "strings"

type Kind string

const (
	KindText  Kind = "text"
	KindAudio Kind = "audio"
)

const defaultSenderName = "Customer"

// Message is the canonical form of one inbound chat event. It is never
// mutated after construction; transcribing an audio message produces a
// new text Message via AsText.
type Message struct {
	ID         string
	ChatID     string
	Content    string
	SenderName string
	Kind       Kind

	// Transport account the message arrived on, carried through so the
	// reply can be sent back on the same account.
	ServerURL string
	Instance  string
	APIKey    string
}

// AsText returns a copy of the message carrying transcript as its text
// content. Used after audio transcription.
func (m Message) AsText(transcript string) Message {
	out := m
	out.Kind = KindText
	out.Content = transcript
	return out
}

// Webhook payloads arrive in at least two field-naming conventions
// (localized Evolution-API exports and the plain English schema). Every
// logical field is resolved by trying its known key paths in priority
// order and taking the first non-empty hit.
var (
	serverURLPaths = [][]string{
		{"body", "URL del servidor"},
		{"body", "server_url"},
		{"URL del servidor"},
		{"server_url"},
	}
	instancePaths = [][]string{
		{"body", "nombreInstancia"},
		{"body", "instance"},
		{"body", "instancia"},
		{"nombreInstancia"},
		{"instance"},
	}
	apiKeyPaths = [][]string{
		{"body", "clave API"},
		{"body", "apikey"},
		{"clave API"},
		{"apikey"},
	}
	messageIDPaths = [][]string{
		{"body", "data", "identificación"},
		{"body", "data", "id"},
		{"body", "data", "ID del mensaje"},
		{"data", "identificación"},
		{"data", "id"},
	}
	chatIDPaths = [][]string{
		{"body", "data", "Jid remoto"},
		{"body", "data", "remoteJid"},
		{"body", "data", "ID de chat"},
		{"data", "Jid remoto"},
		{"data", "remoteJid"},
	}
	contentPaths = [][]string{
		{"body", "data", "mensaje", "conversación"},
		{"body", "data", "mensaje", "text"},
		{"body", "data", "contenido"},
		{"body", "data", "message", "conversation"},
		{"body", "data", "message", "text"},
		{"data", "mensaje", "conversación"},
		{"data", "mensaje", "text"},
		{"data", "contenido"},
		{"data", "message", "conversation"},
		{"data", "message", "text"},
	}
	senderNamePaths = [][]string{
		{"body", "data", "nombrePush"},
		{"body", "data", "pushName"},
		{"body", "data", "notifyName"},
		{"body", "data", "nombre de usuario"},
		{"data", "nombrePush"},
		{"data", "pushName"},
	}
	kindPaths = [][]string{
		{"body", "data", "tipo de mensaje"},
		{"body", "data", "messageType"},
		{"body", "data", "type"},
		{"data", "tipo de mensaje"},
		{"data", "messageType"},
		{"data", "type"},
	}
)

// Normalize converts a raw webhook payload into a canonical Message.
// It is a pure transform: missing or oddly nested keys resolve to the
// field's default, never an error.
func Normalize(raw map[string]any) Message {
	msg := Message{
		ID:         lookup(raw, messageIDPaths),
		ChatID:     lookup(raw, chatIDPaths),
		Content:    lookup(raw, contentPaths),
		SenderName: lookup(raw, senderNamePaths),
		ServerURL:  lookup(raw, serverURLPaths),
		Instance:   lookup(raw, instancePaths),
		APIKey:     lookup(raw, apiKeyPaths),
		Kind:       KindText,
	}
	if msg.SenderName == "" {
		msg.SenderName = defaultSenderName
	}
	if isAudioKind(lookup(raw, kindPaths)) {
		msg.Kind = KindAudio
	}
	return msg
}

func isAudioKind(kind string) bool {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "audio", "voice", "audiomessage":
		return true
	}
	return false
}

// lookup resolves the first non-empty string value among the given key
// paths inside a nested map payload.
func lookup(raw map[string]any, paths [][]string) string {
	for _, path := range paths {
		if v := dig(raw, path); v != "" {
			return v
		}
	}
	return ""
}

func dig(raw map[string]any, path []string) string {
	node := any(raw)
	for _, key := range path {
		m, ok := node.(map[string]any)
		if !ok {
			return ""
		}
		node, ok = m[key]
		if !ok {
			return ""
		}
	}
	s, _ := node.(string)
	return strings.TrimSpace(s)
}
