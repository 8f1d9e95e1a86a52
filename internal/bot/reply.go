package bot

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// maxMessageLength is the Telegram limit for a single text message.
const maxMessageLength = 4096

// replyTo answers msg with text, splitting it when it is too long for one
// Telegram message.
func replyTo(ctx context.Context, api Messenger, msg *models.Message, text string) error {
	for _, chunk := range splitMessage(text, maxMessageLength) {
		_, err := api.SendMessage(ctx, &bot.SendMessageParams{
			ChatID:          msg.Chat.ID,
			Text:            chunk,
			ReplyParameters: &models.ReplyParameters{MessageID: msg.ID},
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func splitMessage(text string, limit int) []string {
	runes := []rune(text)
	if len(runes) <= limit {
		return []string{text}
	}

	var chunks []string
	for len(runes) > limit {
		cut := limit
		// prefer breaking after a newline in the second half of the window
		for j := limit - 1; j >= limit/2; j-- {
			if runes[j] == '\n' {
				cut = j + 1
				break
			}
		}
		chunks = append(chunks, string(runes[:cut]))
		runes = runes[cut:]
	}
	if len(runes) > 0 {
		chunks = append(chunks, string(runes))
	}
	return chunks
}
