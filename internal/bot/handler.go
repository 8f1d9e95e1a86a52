package bot

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// Messenger is the part of the Telegram client handlers reply through;
// *bot.Bot satisfies it.
type Messenger interface {
	SendMessage(ctx context.Context, params *bot.SendMessageParams) (*models.Message, error)
}

// PhotoLoader fetches the bytes of a Telegram file.
type PhotoLoader interface {
	Load(ctx context.Context, fileID string) ([]byte, error)
}

type Handler interface {
	Handle(ctx context.Context, api Messenger, update *models.Update)
}

// userOf identifies the history owner of a message.
func userOf(msg *models.Message) int64 {
	if msg.From != nil {
		return msg.From.ID
	}
	return msg.Chat.ID
}
