package audio

import (
	"bytes"
	"context"
	"log"
	"strings"

	"github.com/sashabaranov/go-openai"
)

// Transcriber turns voice notes into text through Whisper. An empty
// result means unconfigured or failed; the caller drops the message
// either way.
type Transcriber struct {
	client *openai.Client
}

func NewTranscriber(apiKey string) *Transcriber {
	if apiKey == "" {
		return &Transcriber{}
	}
	return &Transcriber{client: openai.NewClient(apiKey)}
}

func (t *Transcriber) Configured() bool { return t.client != nil }

func (t *Transcriber) Transcribe(ctx context.Context, data []byte) string {
	if t.client == nil {
		log.Printf("transcription requested but no OpenAI API key configured")
		return ""
	}
	if len(data) == 0 {
		return ""
	}

	resp, err := t.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    openai.Whisper1,
		Reader:   bytes.NewReader(data),
		FilePath: "voice-note.ogg",
		Format:   openai.AudioResponseFormatText,
	})
	if err != nil {
		log.Printf("transcription failed: %v", err)
		return ""
	}
	return strings.TrimSpace(resp.Text)
}
