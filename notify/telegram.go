package notify

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"time"
)

// Notifier delivers out-of-band notifications. Failures are logged,
// never surfaced to the request that triggered them.
type Notifier interface {
	Send(text string)
}

// Discard is the Notifier used when no relay is configured.
type Discard struct{}

func (Discard) Send(string) {}

// Telegram relays messages through the Bot API sendMessage endpoint.
type Telegram struct {
	Token  string
	ChatID string
	Client *http.Client
}

// NewTelegramFromEnv builds a Notifier from TELEGRAM_BOT_TOKEN and
// TELEGRAM_CHAT_ID, falling back to Discard when unset.
func NewTelegramFromEnv() Notifier {
	token := os.Getenv("TELEGRAM_BOT_TOKEN")
	chatID := os.Getenv("TELEGRAM_CHAT_ID")
	if token == "" || chatID == "" {
		return Discard{}
	}
	return &Telegram{
		Token:  token,
		ChatID: chatID,
		Client: &http.Client{Timeout: 10 * time.Second},
	}
}

func (t *Telegram) Send(text string) {
	body, err := json.Marshal(map[string]string{
		"chat_id": t.ChatID,
		"text":    text,
	})
	if err != nil {
		log.Printf("telegram: marshal failed: %v", err)
		return
	}
	url := "https://api.telegram.org/bot" + t.Token + "/sendMessage"
	resp, err := t.Client.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		log.Printf("telegram: send failed: %v", err)
		return
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		log.Printf("telegram: send returned status %d", resp.StatusCode)
	}
}
