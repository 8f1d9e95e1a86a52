package bot

import (
	"calorieBot/internal/db/history"
	"context"
	"log"

	"github.com/go-telegram/bot/models"
)

type HistoryHandler struct {
	Repository history.Repository
}

func NewHistoryHandler(r history.Repository) *HistoryHandler {
	return &HistoryHandler{Repository: r}
}

func (h *HistoryHandler) Handle(ctx context.Context, api Messenger, update *models.Update) {
	if update == nil || update.Message == nil {
		return
	}
	msg := update.Message
	userID := userOf(msg)

	records, err := h.Repository.Recent(ctx, userID, fullHistoryLimit)
	if err != nil {
		log.Printf("[HistoryHandler.Handle] Recent error userID=%d err=%v", userID, err)
		_ = replyTo(ctx, api, msg, historyUnavailableReply)
		return
	}

	if err := replyTo(ctx, api, msg, formatHistory(records)); err != nil {
		log.Printf("[HistoryHandler.Handle] send history userID=%d err=%v", userID, err)
	}
}
