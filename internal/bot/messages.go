package bot

import (
	"calorieBot/internal/ai_model"
	"calorieBot/internal/db/history"
	"errors"
	"fmt"
	"strings"
)

const (
	startHistoryLimit = 8
	fullHistoryLimit  = 20
)

const (
	welcomeReply = "Hi! 👋 Send me a photo of your food and I'll estimate the calories.\n\n" +
		"Your recent history is shown below ↓\n" +
		"Use /history for full list • /clear to delete all"
	noHistoryReply          = "No history yet. Send a food photo to start recording! 📸"
	recordSavedReply        = "✅ Record saved!"
	historyClearedReply     = "🗑️ Your history has been cleared!"
	emptyAnalysisReply      = "Couldn't analyze – try a clearer photo!"
	rateLimitedReply        = "Rate limit – wait 1–2 min ⏳"
	serviceUnavailableReply = "Model temporarily unavailable – try again soon"
	historyUnavailableReply = "⚠️ History is unavailable right now, please try again later."
	saveFailedReply         = "⚠️ Couldn't save the record, please try again later."
)

func formatHistory(records []history.Record) string {
	if len(records) == 0 {
		return noHistoryReply
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Your last %d calorie records:\n\n", len(records))
	for _, r := range records {
		fmt.Fprintf(&b, "📅 %s\n%s\n\n───\n", r.Timestamp.Format(history.TimestampLayout), r.ResultText)
	}
	return b.String()
}

func failureReply(err error) string {
	switch ai_model.KindOf(err) {
	case ai_model.RateLimited:
		return rateLimitedReply
	case ai_model.ServiceUnavailable:
		return serviceUnavailableReply
	}

	diagnostic := ai_model.Truncate(err.Error(), ai_model.DiagnosticLimit)
	var e *ai_model.Error
	if errors.As(err, &e) {
		diagnostic = e.Diagnostic()
	}
	return fmt.Sprintf("Error: %s...", diagnostic)
}
