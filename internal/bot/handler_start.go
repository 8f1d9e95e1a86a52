package bot

import (
	"calorieBot/internal/db/history"
	"context"
	"log"

	"github.com/go-telegram/bot/models"
)

type StartHandler struct {
	Repository history.Repository
}

func NewStartHandler(r history.Repository) *StartHandler {
	return &StartHandler{Repository: r}
}

func (h *StartHandler) Handle(ctx context.Context, api Messenger, update *models.Update) {
	if update == nil || update.Message == nil {
		return
	}
	msg := update.Message
	userID := userOf(msg)

	if err := replyTo(ctx, api, msg, welcomeReply); err != nil {
		log.Printf("[StartHandler.Handle] send welcome userID=%d err=%v", userID, err)
	}

	records, err := h.Repository.Recent(ctx, userID, startHistoryLimit)
	if err != nil {
		log.Printf("[StartHandler.Handle] Recent error userID=%d err=%v", userID, err)
		_ = replyTo(ctx, api, msg, historyUnavailableReply)
		return
	}

	if err := replyTo(ctx, api, msg, formatHistory(records)); err != nil {
		log.Printf("[StartHandler.Handle] send history userID=%d err=%v", userID, err)
	}
}
