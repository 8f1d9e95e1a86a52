package bot

import (
	"calorieBot/internal/ai_model"
	"calorieBot/internal/db/history"
	historysqlite "calorieBot/internal/db/history/sqlite"
	dbsqlite "calorieBot/internal/db/sqlite"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testUser int64 = 1001

type fakeMessenger struct {
	sent []*bot.SendMessageParams
	err  error
}

func (m *fakeMessenger) SendMessage(_ context.Context, params *bot.SendMessageParams) (*models.Message, error) {
	m.sent = append(m.sent, params)
	return &models.Message{}, m.err
}

func (m *fakeMessenger) texts() []string {
	out := make([]string, 0, len(m.sent))
	for _, p := range m.sent {
		out = append(out, p.Text)
	}
	return out
}

type fakeGateway struct {
	reply string
	err   error
	calls int
	got   []byte
}

func (g *fakeGateway) Analyze(_ context.Context, image []byte) (string, error) {
	g.calls++
	g.got = image
	return g.reply, g.err
}

type fakeLoader struct {
	data   []byte
	err    error
	gotIDs []string
}

func (l *fakeLoader) Load(_ context.Context, fileID string) ([]byte, error) {
	l.gotIDs = append(l.gotIDs, fileID)
	return l.data, l.err
}

type brokenRepository struct{}

func (brokenRepository) Init(context.Context) error { return nil }
func (brokenRepository) Close() error { return nil }
func (brokenRepository) Append(context.Context, int64, time.Time, string) (history.Record, error) {
	return history.Record{}, &history.StorageError{Op: "append", Err: errors.New("disk I/O error")}
}
func (brokenRepository) Recent(context.Context, int64, int) ([]history.Record, error) {
	return nil, &history.StorageError{Op: "recent", Err: errors.New("disk I/O error")}
}
func (brokenRepository) Clear(context.Context, int64) (int64, error) {
	return 0, &history.StorageError{Op: "clear", Err: errors.New("disk I/O error")}
}

func newRepository(t *testing.T) history.Repository {
	t.Helper()
	db, err := dbsqlite.Open(filepath.Join(t.TempDir(), "bot.db"))
	require.NoError(t, err)
	r := historysqlite.NewRepositorySQlite(db)
	require.NoError(t, r.Init(context.Background()))
	t.Cleanup(func() { _ = r.Close() })
	return r
}

func textUpdate(text string) *models.Update {
	return &models.Update{
		ID: 1,
		Message: &models.Message{
			ID:   77,
			From: &models.User{ID: testUser},
			Chat: models.Chat{ID: 5005},
			Text: text,
		},
	}
}

func photoUpdate() *models.Update {
	return &models.Update{
		ID: 2,
		Message: &models.Message{
			ID:   78,
			From: &models.User{ID: testUser},
			Chat: models.Chat{ID: 5005},
			Photo: []models.PhotoSize{
				{FileID: "small", Width: 90, Height: 90},
				{FileID: "large", Width: 1280, Height: 960},
				{FileID: "medium", Width: 320, Height: 240},
			},
		},
	}
}

type harness struct {
	router    *Router
	repo      history.Repository
	gateway   *fakeGateway
	loader    *fakeLoader
	messenger *fakeMessenger
}

func newHarness(t *testing.T, repo history.Repository) *harness {
	t.Helper()
	if repo == nil {
		repo = newRepository(t)
	}
	h := &harness{
		repo:      repo,
		gateway:   &fakeGateway{},
		loader:    &fakeLoader{data: []byte("jpeg")},
		messenger: &fakeMessenger{},
	}
	h.router = NewRouter(repo, h.gateway, h.loader, time.Second)
	return h
}

func (h *harness) dispatch(update *models.Update) []string {
	h.messenger.sent = nil
	h.router.Dispatch(context.Background(), h.messenger, update)
	return h.messenger.texts()
}

func (h *harness) seed(t *testing.T, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		_, err := h.repo.Append(context.Background(), testUser, time.Now(), fmt.Sprintf("meal #%02d", i))
		require.NoError(t, err)
	}
}

func TestEventOf(t *testing.T) {
	cases := map[string]Event{
		"/start":             EventStart,
		"/start@calorie_bot": EventStart,
		"/start deep-link":   EventStart,
		"/history":           EventHistory,
		"/clear":             EventClear,
		"/unknown":           EventUnknown,
		"hello":              EventUnknown,
		"":                   EventUnknown,
	}
	for text, want := range cases {
		assert.Equal(t, want, EventOf(textUpdate(text)), text)
	}

	p := photoUpdate()
	p.Message.Caption = "/clear"
	assert.Equal(t, EventPhoto, EventOf(p))
	assert.Equal(t, EventUnknown, EventOf(&models.Update{}))
	assert.Equal(t, EventUnknown, EventOf(nil))
}

func TestStart_NoHistory(t *testing.T) {
	h := newHarness(t, nil)

	got := h.dispatch(textUpdate("/start"))
	require.Len(t, got, 2)
	assert.Equal(t, welcomeReply, got[0])
	assert.Equal(t, "No history yet. Send a food photo to start recording! 📸", got[1])

	for _, p := range h.messenger.sent {
		assert.Equal(t, int64(5005), p.ChatID)
		require.NotNil(t, p.ReplyParameters)
		assert.Equal(t, 77, p.ReplyParameters.MessageID)
	}
}

func TestStart_ShowsAtMostEightRecords(t *testing.T) {
	h := newHarness(t, nil)
	h.seed(t, 12)

	got := h.dispatch(textUpdate("/start"))
	require.Len(t, got, 2)
	assert.True(t, strings.HasPrefix(got[1], "Your last 8 calorie records:"))
	assert.Equal(t, 8, strings.Count(got[1], "📅 "))
	assert.Contains(t, got[1], "meal #11")
	assert.NotContains(t, got[1], "meal #03")
}

func TestPhoto_SuccessAppendsOneRecord(t *testing.T) {
	h := newHarness(t, nil)
	h.gateway.reply = "Calories: 500 kcal"

	got := h.dispatch(photoUpdate())
	assert.Equal(t, []string{"Calories: 500 kcal", recordSavedReply}, got)
	assert.Equal(t, []string{"large"}, h.loader.gotIDs)
	assert.Equal(t, []byte("jpeg"), h.gateway.got)

	records, err := h.repo.Recent(context.Background(), testUser, 100)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Calories: 500 kcal", records[0].ResultText)
	assert.Equal(t, testUser, records[0].UserID)
}

func TestPhoto_FailuresAreNotPersisted(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want string
	}{
		{"rate limited", ai_model.NewError(ai_model.RateLimited, errors.New("429: rate limit reached")), rateLimitedReply},
		{"unavailable", ai_model.NewError(ai_model.ServiceUnavailable, errors.New("503")), serviceUnavailableReply},
		{"unknown", ai_model.NewError(ai_model.Unknown, errors.New("connection reset")), "Error: connection reset..."},
		{"unclassified", errors.New("boom"), "Error: boom..."},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := newHarness(t, nil)
			h.gateway.err = tc.err

			got := h.dispatch(photoUpdate())
			assert.Equal(t, []string{tc.want}, got)

			records, err := h.repo.Recent(context.Background(), testUser, 100)
			require.NoError(t, err)
			assert.Empty(t, records)
		})
	}
}

func TestPhoto_UnknownDiagnosticIsTruncated(t *testing.T) {
	h := newHarness(t, nil)
	h.gateway.err = ai_model.NewError(ai_model.Unknown, errors.New(strings.Repeat("x", 400)))

	got := h.dispatch(photoUpdate())
	require.Len(t, got, 1)
	assert.Equal(t, "Error: "+strings.Repeat("x", ai_model.DiagnosticLimit)+"...", got[0])
}

func TestPhoto_LoadFailureTakesUnknownPath(t *testing.T) {
	h := newHarness(t, nil)
	h.loader.err = errors.New("download file: unexpected status 404")

	got := h.dispatch(photoUpdate())
	assert.Equal(t, []string{"Error: download file: unexpected status 404..."}, got)
	assert.Zero(t, h.gateway.calls)
}

func TestPhoto_EmptyResultNotPersisted(t *testing.T) {
	h := newHarness(t, nil)
	h.gateway.reply = ""

	got := h.dispatch(photoUpdate())
	assert.Equal(t, []string{emptyAnalysisReply}, got)

	records, err := h.repo.Recent(context.Background(), testUser, 100)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestPhoto_StorageFailureIsReported(t *testing.T) {
	h := newHarness(t, brokenRepository{})
	h.gateway.reply = "Calories: 500 kcal"

	got := h.dispatch(photoUpdate())
	assert.Equal(t, []string{"Calories: 500 kcal", saveFailedReply}, got)
}

func TestHistory_ShowsTwentyNewest(t *testing.T) {
	h := newHarness(t, nil)
	h.seed(t, 25)

	got := h.dispatch(textUpdate("/history"))
	require.Len(t, got, 1)
	text := got[0]
	assert.True(t, strings.HasPrefix(text, "Your last 20 calorie records:\n\n"))
	assert.Equal(t, 20, strings.Count(text, "📅 "))

	prev := -1
	for i := 24; i >= 5; i-- {
		idx := strings.Index(text, fmt.Sprintf("meal #%02d", i))
		require.GreaterOrEqual(t, idx, 0, "missing meal #%02d", i)
		assert.Greater(t, idx, prev)
		prev = idx
	}
	for i := 0; i < 5; i++ {
		assert.NotContains(t, text, fmt.Sprintf("meal #%02d", i))
	}
}

func TestClear_ThenHistoryIsEmpty(t *testing.T) {
	h := newHarness(t, nil)
	h.seed(t, 3)

	assert.Equal(t, []string{historyClearedReply}, h.dispatch(textUpdate("/clear")))
	assert.Equal(t, []string{noHistoryReply}, h.dispatch(textUpdate("/history")))
}

func TestClear_WithoutRecords(t *testing.T) {
	h := newHarness(t, nil)
	assert.Equal(t, []string{historyClearedReply}, h.dispatch(textUpdate("/clear")))
}

func TestStorageErrorsBecomeReplies(t *testing.T) {
	h := newHarness(t, brokenRepository{})

	assert.Equal(t, []string{welcomeReply, historyUnavailableReply}, h.dispatch(textUpdate("/start")))
	assert.Equal(t, []string{historyUnavailableReply}, h.dispatch(textUpdate("/history")))
	assert.Equal(t, []string{historyUnavailableReply}, h.dispatch(textUpdate("/clear")))
}

func TestDispatch_IgnoresOtherUpdates(t *testing.T) {
	h := newHarness(t, nil)

	assert.Empty(t, h.dispatch(textUpdate("what's for dinner?")))
	assert.Empty(t, h.dispatch(&models.Update{ID: 3}))
	assert.Zero(t, h.gateway.calls)
}

func TestDispatch_SendFailureDoesNotStopSaving(t *testing.T) {
	h := newHarness(t, nil)
	h.gateway.reply = "Calories: 250 kcal"
	h.messenger.err = errors.New("telegram down")

	h.dispatch(photoUpdate())

	records, err := h.repo.Recent(context.Background(), testUser, 10)
	require.NoError(t, err)
	require.Len(t, records, 1)
}

func TestUserOf_FallsBackToChat(t *testing.T) {
	msg := &models.Message{Chat: models.Chat{ID: 321}}
	assert.Equal(t, int64(321), userOf(msg))
}
