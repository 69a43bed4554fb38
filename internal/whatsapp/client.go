package whatsapp

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"time"
)

// Account identifies one Evolution-API connection. Inbound messages
// carry their own account so replies go back the same way; empty fields
// fall back to the client's configured defaults.
type Account struct {
	ServerURL string
	Instance  string
	APIKey    string
}

// Client is a thin HTTP client over the Evolution API wire protocol.
// All failures surface as booleans or nil results; errors never cross
// into the message pipeline.
type Client struct {
	defaults  Account
	sendDelay time.Duration
	http      *http.Client
}

func New(defaults Account, sendDelay, timeout time.Duration) *Client {
	return &Client{
		defaults:  defaults,
		sendDelay: sendDelay,
		http:      &http.Client{Timeout: timeout},
	}
}

func (c *Client) resolve(acct Account) Account {
	if acct.ServerURL == "" {
		acct.ServerURL = c.defaults.ServerURL
	}
	if acct.Instance == "" {
		acct.Instance = c.defaults.Instance
	}
	if acct.APIKey == "" {
		acct.APIKey = c.defaults.APIKey
	}
	return acct
}

// Configured reports whether the default account is complete.
func (c *Client) Configured() bool {
	return c.defaults.ServerURL != "" && c.defaults.Instance != "" && c.defaults.APIKey != ""
}

// SendText delivers a text message to a chat. Returns false on any
// transport failure.
func (c *Client) SendText(ctx context.Context, acct Account, chatID, text string) bool {
	acct = c.resolve(acct)
	endpoint := fmt.Sprintf("%s/message/sendText/%s", acct.ServerURL, url.PathEscape(acct.Instance))
	payload := map[string]any{
		"number": chatID,
		"text":   text,
		"delay":  c.sendDelay.Milliseconds(),
	}
	if !c.post(ctx, acct, endpoint, payload, nil) {
		return false
	}
	log.Printf("text message sent to %s", chatID)
	return true
}

// SendImage delivers an image with a caption.
func (c *Client) SendImage(ctx context.Context, acct Account, chatID, imageURL, caption string) bool {
	acct = c.resolve(acct)
	endpoint := fmt.Sprintf("%s/message/sendImage/%s", acct.ServerURL, url.PathEscape(acct.Instance))
	payload := map[string]any{
		"number":  chatID,
		"image":   imageURL,
		"caption": caption,
	}
	if !c.post(ctx, acct, endpoint, payload, nil) {
		return false
	}
	log.Printf("image message sent to %s", chatID)
	return true
}

// DownloadMedia fetches the base64-encoded media of a message. Returns
// nil on any failure.
func (c *Client) DownloadMedia(ctx context.Context, acct Account, messageID string) []byte {
	acct = c.resolve(acct)
	endpoint := fmt.Sprintf("%s/chat/getBase64FromMediaMessage/%s", acct.ServerURL, url.PathEscape(acct.Instance))
	payload := map[string]any{
		"message.key.id": messageID,
		"convertToMp4":   false,
	}

	var out struct {
		Success bool   `json:"success"`
		Data    string `json:"data"`
	}
	if !c.post(ctx, acct, endpoint, payload, &out) {
		return nil
	}
	if !out.Success || out.Data == "" {
		log.Printf("media download for %s returned no data", messageID)
		return nil
	}
	data, err := base64.StdEncoding.DecodeString(out.Data)
	if err != nil {
		log.Printf("media download for %s: bad base64: %v", messageID, err)
		return nil
	}
	return data
}

// ValidateConnection checks the instance info endpoint.
func (c *Client) ValidateConnection(ctx context.Context) bool {
	if !c.Configured() {
		return false
	}
	acct := c.defaults
	endpoint := fmt.Sprintf("%s/instance/info/%s", acct.ServerURL, url.PathEscape(acct.Instance))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return false
	}
	req.Header.Set("apikey", acct.APIKey)
	resp, err := c.http.Do(req)
	if err != nil {
		log.Printf("connection validation failed: %v", err)
		return false
	}
	defer func() { _ = resp.Body.Close() }()
	return resp.StatusCode == http.StatusOK
}

func (c *Client) post(ctx context.Context, acct Account, endpoint string, payload any, out any) bool {
	body, err := json.Marshal(payload)
	if err != nil {
		log.Printf("marshal request for %s: %v", endpoint, err)
		return false
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		log.Printf("build request for %s: %v", endpoint, err)
		return false
	}
	req.Header.Set("apikey", acct.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		log.Printf("request to %s failed: %v", endpoint, err)
		return false
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		log.Printf("request to %s: status %d", endpoint, resp.StatusCode)
		return false
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			log.Printf("decode response from %s: %v", endpoint, err)
			return false
		}
	}
	return true
}
