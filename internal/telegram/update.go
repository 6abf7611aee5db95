package telegram

import (
	"encoding/json"
	"errors"
	"fmt"

	tele "gopkg.in/telebot.v3"
)

// ErrNoChat marks a message event without a chat to reply to
var ErrNoChat = errors.New("message has no chat")

// Update is one inbound event. Err is set when the payload could not be
// decoded; ID is still filled in when the update_id was readable.
type Update struct {
	ID      int
	Message *Message
	Err     error
}

// Message is the part of an inbound message the bot acts on
type Message struct {
	ChatID   int64
	Username string
	Text     string
}

type updatesResponse struct {
	Result []json.RawMessage `json:"result"`
}

// decodeUpdates parses a getUpdates response. A malformed item becomes an
// Update carrying Err instead of failing the whole batch.
func decodeUpdates(data []byte) ([]Update, error) {
	var resp updatesResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("decode updates: %w", err)
	}

	updates := make([]Update, 0, len(resp.Result))
	for _, raw := range resp.Result {
		updates = append(updates, decodeUpdate(raw))
	}
	return updates, nil
}

func decodeUpdate(raw json.RawMessage) Update {
	var u tele.Update
	if err := json.Unmarshal(raw, &u); err != nil {
		var id struct {
			ID int `json:"update_id"`
		}
		_ = json.Unmarshal(raw, &id)
		return Update{ID: id.ID, Err: fmt.Errorf("decode update: %w", err)}
	}

	if u.Message == nil {
		return Update{ID: u.ID}
	}
	if u.Message.Chat == nil {
		return Update{ID: u.ID, Err: ErrNoChat}
	}

	msg := &Message{
		ChatID: u.Message.Chat.ID,
		Text:   u.Message.Text,
	}
	if u.Message.Sender != nil && u.Message.Sender.Username != "" {
		msg.Username = u.Message.Sender.Username
	} else {
		msg.Username = u.Message.Chat.Username
	}

	return Update{ID: u.ID, Message: msg}
}
