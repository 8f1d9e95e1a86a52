package bot

import (
	"calorieBot/internal/ai_model"
	"calorieBot/internal/db/history"
	"context"
	"log"
	"time"

	"github.com/go-telegram/bot/models"
)

type PhotoHandler struct {
	Model      ai_model.Gateway
	Repository history.Repository
	Loader     PhotoLoader
	// Timeout bounds a single inference call; zero means no limit.
	Timeout time.Duration
	Now     func() time.Time
}

func NewPhotoHandler(model ai_model.Gateway, r history.Repository, loader PhotoLoader, timeout time.Duration) *PhotoHandler {
	return &PhotoHandler{
		Model:      model,
		Repository: r,
		Loader:     loader,
		Timeout:    timeout,
		Now:        time.Now,
	}
}

func (h *PhotoHandler) Handle(ctx context.Context, api Messenger, update *models.Update) {
	if update == nil || update.Message == nil {
		return
	}
	msg := update.Message
	userID := userOf(msg)

	photo, ok := largestPhoto(msg.Photo)
	if !ok {
		log.Printf("[PhotoHandler.Handle] no photo sizes userID=%d", userID)
		return
	}

	image, err := h.Loader.Load(ctx, photo.FileID)
	if err != nil {
		log.Printf("[PhotoHandler.Handle] load photo userID=%d fileID=%s err=%v", userID, photo.FileID, err)
		h.reply(ctx, api, msg, failureReply(ai_model.NewError(ai_model.Unknown, err)))
		return
	}

	result, err := h.analyze(ctx, image)
	if err != nil {
		log.Printf("[PhotoHandler.Handle] analyze userID=%d kind=%s err=%v", userID, ai_model.KindOf(err), err)
		h.reply(ctx, api, msg, failureReply(err))
		return
	}

	if result == "" {
		log.Printf("[PhotoHandler.Handle] empty analysis userID=%d", userID)
		h.reply(ctx, api, msg, emptyAnalysisReply)
		return
	}

	h.reply(ctx, api, msg, result)

	rec, err := h.Repository.Append(ctx, userID, h.Now(), result)
	if err != nil {
		log.Printf("[PhotoHandler.Handle] Append error userID=%d err=%v", userID, err)
		h.reply(ctx, api, msg, saveFailedReply)
		return
	}
	log.Printf("[PhotoHandler.Handle] record saved userID=%d id=%d", userID, rec.ID)

	h.reply(ctx, api, msg, recordSavedReply)
}

func (h *PhotoHandler) analyze(ctx context.Context, image []byte) (string, error) {
	if h.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.Timeout)
		defer cancel()
	}
	return h.Model.Analyze(ctx, image)
}

func (h *PhotoHandler) reply(ctx context.Context, api Messenger, msg *models.Message, text string) {
	if err := replyTo(ctx, api, msg, text); err != nil {
		log.Printf("[PhotoHandler.reply] send message chatID=%d err=%v", msg.Chat.ID, err)
	}
}

// largestPhoto picks the highest resolution size; on ties the later one wins
// since Telegram lists sizes in ascending order.
func largestPhoto(sizes []models.PhotoSize) (models.PhotoSize, bool) {
	if len(sizes) == 0 {
		return models.PhotoSize{}, false
	}
	best := sizes[0]
	for _, p := range sizes[1:] {
		if p.Width*p.Height >= best.Width*best.Height {
			best = p
		}
	}
	return best, true
}
