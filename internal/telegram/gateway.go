package telegram

import (
	"context"
	"fmt"
	"time"

	tele "gopkg.in/telebot.v3"
)

// Gateway is the transport the polling loop talks to
type Gateway interface {
	// Poll long-polls for updates with id >= offset, blocking up to timeout
	Poll(ctx context.Context, offset int, timeout time.Duration) ([]Update, error)
	Send(ctx context.Context, chatID int64, text string) error
}

// BotGateway implements Gateway over a telebot Bot.
// The bot must be created offline and never started; polling is driven by the caller.
type BotGateway struct {
	bot *tele.Bot
}

// NewBotGateway wraps an offline telebot Bot
func NewBotGateway(bot *tele.Bot) *BotGateway {
	return &BotGateway{bot: bot}
}

type pollResult struct {
	data []byte
	err  error
}

func (g *BotGateway) Poll(ctx context.Context, offset int, timeout time.Duration) ([]Update, error) {
	params := map[string]interface{}{
		"offset":          offset,
		"timeout":         int(timeout / time.Second),
		"allowed_updates": []string{"message"},
	}

	// telebot has no context-aware Raw, so an in-flight request is abandoned on cancel
	done := make(chan pollResult, 1)
	go func() {
		data, err := g.bot.Raw("getUpdates", params)
		done <- pollResult{data: data, err: err}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-done:
		if res.err != nil {
			return nil, fmt.Errorf("getUpdates: %w", res.err)
		}
		return decodeUpdates(res.data)
	}
}

func (g *BotGateway) Send(ctx context.Context, chatID int64, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := g.bot.Send(tele.ChatID(chatID), text, tele.NoPreview); err != nil {
		return fmt.Errorf("sendMessage: %w", err)
	}
	return nil
}

// HandlerFunc answers one inbound message. An empty reply sends nothing;
// an error means the message is dropped without a reply.
type HandlerFunc func(ctx context.Context, msg Message) (string, error)
