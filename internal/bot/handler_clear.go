package bot

import (
	"calorieBot/internal/db/history"
	"context"
	"log"

	"github.com/go-telegram/bot/models"
)

type ClearHandler struct {
	Repository history.Repository
}

func NewClearHandler(r history.Repository) *ClearHandler {
	return &ClearHandler{Repository: r}
}

func (h *ClearHandler) Handle(ctx context.Context, api Messenger, update *models.Update) {
	if update == nil || update.Message == nil {
		return
	}
	msg := update.Message
	userID := userOf(msg)

	deleted, err := h.Repository.Clear(ctx, userID)
	if err != nil {
		log.Printf("[ClearHandler.Handle] Clear error userID=%d err=%v", userID, err)
		_ = replyTo(ctx, api, msg, historyUnavailableReply)
		return
	}
	log.Printf("[ClearHandler.Handle] history cleared userID=%d deleted=%d", userID, deleted)

	if err := replyTo(ctx, api, msg, historyClearedReply); err != nil {
		log.Printf("[ClearHandler.Handle] send reply userID=%d err=%v", userID, err)
	}
}
