package bot

import (
	"calorieBot/internal/ai_model"
	"calorieBot/internal/db/history"
	"context"
	"log"
	"strings"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

type Event int

const (
	EventUnknown Event = iota
	EventStart
	EventPhoto
	EventHistory
	EventClear
)

func (e Event) String() string {
	switch e {
	case EventStart:
		return "command:start"
	case EventPhoto:
		return "photo"
	case EventHistory:
		return "command:history"
	case EventClear:
		return "command:clear"
	default:
		return "unknown"
	}
}

var commands = map[string]Event{
	"/start":   EventStart,
	"/history": EventHistory,
	"/clear":   EventClear,
}

// EventOf classifies an update. Photos win over any caption text; commands
// may carry a @botname suffix or trailing arguments.
func EventOf(update *models.Update) Event {
	if update == nil || update.Message == nil {
		return EventUnknown
	}
	msg := update.Message
	if len(msg.Photo) > 0 {
		return EventPhoto
	}

	fields := strings.Fields(msg.Text)
	if len(fields) == 0 {
		return EventUnknown
	}
	cmd, _, _ := strings.Cut(fields[0], "@")
	return commands[cmd]
}

// Router dispatches every update to exactly one handler.
type Router struct {
	handlers map[Event]Handler
}

func NewRouter(repository history.Repository, model ai_model.Gateway, loader PhotoLoader, inferenceTimeout time.Duration) *Router {
	return &Router{
		handlers: map[Event]Handler{
			EventStart:   NewStartHandler(repository),
			EventPhoto:   NewPhotoHandler(model, repository, loader, inferenceTimeout),
			EventHistory: NewHistoryHandler(repository),
			EventClear:   NewClearHandler(repository),
		},
	}
}

// Handle matches bot.HandlerFunc so the router can serve as the default handler.
func (r *Router) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	r.Dispatch(ctx, b, update)
}

func (r *Router) Dispatch(ctx context.Context, api Messenger, update *models.Update) {
	event := EventOf(update)
	h, ok := r.handlers[event]
	if !ok {
		if update != nil && update.Message != nil {
			log.Printf("[Router.Dispatch] ignored update chatID=%d", update.Message.Chat.ID)
		}
		return
	}

	defer func() {
		if rec := recover(); rec != nil {
			log.Printf("[Router.Dispatch] handler for %s panicked: %v", event, rec)
		}
	}()

	log.Printf("[Router.Dispatch] %s chatID=%d", event, update.Message.Chat.ID)
	h.Handle(ctx, api, update)
}
