package main

import (
	"calorieBot/internal/ai_model/hugging_face"
	internalbot "calorieBot/internal/bot"
	"calorieBot/internal/config"
	historysqlite "calorieBot/internal/db/history/sqlite"
	"calorieBot/internal/db/sqlite"
	"calorieBot/internal/telegram"
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

var router *internalbot.Router

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := sqlite.Open(cfg.DbPath)
	if err != nil {
		log.Fatal(err)
	}
	repository := historysqlite.NewRepositorySQlite(db)
	if err := repository.Init(ctx); err != nil {
		log.Fatal("Cannot initialize repository: ", err, cfg.DbPath)
	}
	defer func(repository *historysqlite.RepositorySQlite) {
		err := repository.Close()
		if err != nil {
			log.Println(err)
		}
	}(repository)

	model := hugging_face.NewVisionModel(cfg.HfToken, cfg.HfBaseURL, hugging_face.Model(cfg.HfModel))

	b, err := bot.New(cfg.BotToken,
		bot.WithDefaultHandler(handleUpdate),
		// one update at a time, including the inference call
		bot.WithNotAsyncHandlers(),
	)
	if err != nil {
		log.Fatal(err)
	}

	router = internalbot.NewRouter(repository, model, telegram.NewFileLoader(b), cfg.InferenceTimeout)

	log.Printf("Food calorie bot started, model=%s db=%s", model.Model.GetModelName(), cfg.DbPath)
	b.Start(ctx)
	log.Println("Food calorie bot stopped")
}

func handleUpdate(ctx context.Context, b *bot.Bot, update *models.Update) {
	router.Handle(ctx, b, update)
}
