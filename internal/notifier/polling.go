package notifier

import (
	"context"
	"log"
	"strconv"
	"strings"
	"time"
)

// pollTimeout is how long getUpdates may hold a request open.
const pollTimeout = 30 * time.Second

// CommandHandler is called when a user command is received and returns the reply, if any.
type CommandHandler func(command string) string

type update struct {
	UpdateID int `json:"update_id"`
	Message  *struct {
		Text string `json:"text"`
		Chat struct {
			ID int64 `json:"id"`
		} `json:"chat"`
	} `json:"message"`
}

// StartPolling long-polls for commands until ctx is cancelled.
// Only the configured chat is answered, since replies may carry salaries.
func (t *TelegramNotifier) StartPolling(ctx context.Context, handler CommandHandler) {
	if !t.Enabled() {
		log.Println("[INFO] telegram disabled, polling not started")
		return
	}
	log.Println("[INFO] Telegram polling started")
	offset := 0
	for {
		next, err := t.pollOnce(ctx, offset, handler)
		if ctx.Err() != nil {
			log.Println("[INFO] Telegram polling stopped")
			return
		}
		if err != nil {
			log.Printf("[WARN] polling failed: %v", err)
			select {
			case <-ctx.Done():
			case <-time.After(5 * time.Second):
			}
			continue
		}
		offset = next
	}
}

// pollOnce fetches one batch of updates, dispatches them and returns the next offset.
func (t *TelegramNotifier) pollOnce(ctx context.Context, offset int, handler CommandHandler) (int, error) {
	var updates []update
	payload := map[string]int{"offset": offset, "timeout": int(pollTimeout / time.Second)}
	if err := t.call(ctx, "getUpdates", payload, &updates); err != nil {
		return offset, err
	}
	for _, u := range updates {
		offset = u.UpdateID + 1
		if u.Message == nil || strings.TrimSpace(u.Message.Text) == "" {
			continue
		}
		if strconv.FormatInt(u.Message.Chat.ID, 10) != t.ChatID {
			log.Printf("[WARN] ignoring command from chat %d", u.Message.Chat.ID)
			continue
		}
		text := strings.TrimSpace(u.Message.Text)
		log.Printf("[INFO] received command: %s", text)
		if reply := dispatch(handler, text); reply != "" {
			if err := t.Send(ctx, reply); err != nil {
				log.Printf("[ERROR] send reply: %v", err)
			}
		}
	}
	return offset, nil
}

// dispatch runs handler, turning a panic into an error reply so polling keeps going.
func dispatch(handler CommandHandler, text string) (reply string) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[ERROR] command %q panicked: %v", text, r)
			reply = "❌ Erro interno ao processar o comando."
		}
	}()
	return handler(text)
}
