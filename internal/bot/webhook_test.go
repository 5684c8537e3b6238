package bot

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tele "gopkg.in/telebot.v3"

	"telegram-quiz-bot/internal/config"
	"telegram-quiz-bot/internal/dialog"
	"telegram-quiz-bot/internal/relay"
	"telegram-quiz-bot/internal/session"
	"telegram-quiz-bot/internal/stats"
)

const (
	ownerID  int64 = 777
	userID   int64 = 555
	testPath       = "/api/telegram"
)

type sentMessage struct {
	chatID   int64
	text     string
	markdown bool
}

// fakeMessenger satisfies the relay and dialog messenger interfaces plus the
// callback acker, recording everything the bot sends out.
type fakeMessenger struct {
	sent  []sentMessage
	acked []string
}

func (f *fakeMessenger) Send(chatID int64, text string) error {
	f.sent = append(f.sent, sentMessage{chatID: chatID, text: text})
	return nil
}

func (f *fakeMessenger) SendMarkdown(chatID int64, text string) error {
	f.sent = append(f.sent, sentMessage{chatID: chatID, text: text, markdown: true})
	return nil
}

func (f *fakeMessenger) SendKeyboard(chatID int64, text string, _ *tele.ReplyMarkup) error {
	f.sent = append(f.sent, sentMessage{chatID: chatID, text: text})
	return nil
}

func (f *fakeMessenger) AckCallback(callbackID string) error {
	f.acked = append(f.acked, callbackID)
	return nil
}

func (f *fakeMessenger) toChat(chatID int64) []sentMessage {
	var out []sentMessage
	for _, m := range f.sent {
		if m.chatID == chatID {
			out = append(out, m)
		}
	}
	return out
}

type fakeGenerator struct {
	reply string
	err   error
}

func (f *fakeGenerator) Generate(_ context.Context, _ string) (string, error) {
	return f.reply, f.err
}

type fixture struct {
	msgr *fakeMessenger
	gen  *fakeGenerator
	bot  *Bot
}

func newFixture(chunkSize int) *fixture {
	cfg := &config.Config{
		Owner:  config.OwnerConfig{ID: ownerID},
		Relay:  config.RelayConfig{ChunkSize: chunkSize},
		Server: config.ServerConfig{Addr: ":0", WebhookPath: testPath},
	}

	msgr := &fakeMessenger{}
	gen := &fakeGenerator{}
	operatorRelay := relay.New(msgr, ownerID, chunkSize)
	router := dialog.NewRouter(
		msgr, gen, operatorRelay,
		session.NewStore(), session.NewFeedbackStore(), stats.NewStore(),
	)

	b := New(&Dependencies{Config: cfg, Acker: msgr, Router: router, Relay: operatorRelay})
	return &fixture{msgr: msgr, gen: gen, bot: b}
}

func (f *fixture) post(t *testing.T, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, testPath, strings.NewReader(body))
	rec := httptest.NewRecorder()
	f.bot.Handler().ServeHTTP(rec, req)
	return rec
}

func TestWebhook_MalformedJSON(t *testing.T) {
	f := newFixture(3900)

	rec := f.post(t, "{not json")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Bad JSON")
	assert.Empty(t, f.msgr.sent, "nothing is processed on a transport error")
}

func TestWebhook_AcknowledgesValidUpdate(t *testing.T) {
	f := newFixture(3900)

	rec := f.post(t, `{"update_id":1,"message":{"from":{"id":555,"first_name":"Аня"},"chat":{"id":555},"text":"/start"}}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())

	user := f.msgr.toChat(userID)
	require.Len(t, user, 1)
	assert.Contains(t, user[0].text, "Аня")
}

func TestWebhook_InternalFailureStillAcks(t *testing.T) {
	f := newFixture(3900)
	f.gen.err = assert.AnError

	rec := f.post(t, `{"update_id":2,"message":{"from":{"id":555,"first_name":"Аня"},"chat":{"id":555},"text":"Шарада"}}`)

	assert.Equal(t, http.StatusOK, rec.Code, "dialogue errors never become 5xx")
	assert.Equal(t, "ok", rec.Body.String())

	user := f.msgr.toChat(userID)
	require.NotEmpty(t, user)
	assert.Contains(t, user[len(user)-1].text, "Попробуй ещё")
}

func TestWebhook_NonOwnerUpdateRelayedInChunks(t *testing.T) {
	const chunkSize = 60
	f := newFixture(chunkSize)

	body := `{"update_id":42,"message":{"from":{"id":555,"first_name":"Аня"},"chat":{"id":555},"text":"` +
		strings.Repeat("а", 150) + `"}}`
	rec := f.post(t, body)
	require.Equal(t, http.StatusOK, rec.Code)

	owner := f.msgr.toChat(ownerID)
	require.Greater(t, len(owner), 1, "oversized payload must be split")

	var rebuilt strings.Builder
	for _, m := range owner {
		require.True(t, m.markdown)
		chunk := strings.TrimSuffix(strings.TrimPrefix(m.text, "```json\n"), "\n```")
		assert.LessOrEqual(t, utf8.RuneCountInString(chunk), chunkSize)
		rebuilt.WriteString(chunk)
	}
	assert.True(t, strings.HasSuffix(rebuilt.String(), body),
		"chunk bodies must reconstruct the serialized payload")
}

func TestWebhook_OwnerUpdateNotRelayed(t *testing.T) {
	f := newFixture(3900)

	f.post(t, `{"update_id":3,"message":{"from":{"id":777,"first_name":"Op"},"chat":{"id":777},"text":"привет"}}`)

	for _, m := range f.msgr.toChat(ownerID) {
		assert.False(t, m.markdown, "owner traffic is not echoed back as relay chunks")
	}
}

func TestWebhook_OwnerDirectedReply(t *testing.T) {
	f := newFixture(3900)

	f.post(t, `{"update_id":4,"message":{"from":{"id":777,"first_name":"Op"},"chat":{"id":777},"text":"/reply 12345 hello world"}}`)

	target := f.msgr.toChat(12345)
	require.Len(t, target, 1)
	assert.Equal(t, "hello world", target[0].text)

	owner := f.msgr.toChat(ownerID)
	require.Len(t, owner, 1)
	assert.Contains(t, owner[0].text, "12345")
}

func TestWebhook_NonOwnerReplyFallsThrough(t *testing.T) {
	f := newFixture(3900)

	f.post(t, `{"update_id":5,"message":{"from":{"id":555,"first_name":"Аня"},"chat":{"id":555},"text":"/reply 12345 hello"}}`)

	assert.Empty(t, f.msgr.toChat(12345), "no directed send for non-operators")

	user := f.msgr.toChat(userID)
	require.Len(t, user, 1)
	assert.Contains(t, user[0].text, "/start", "treated as ordinary text, lands on the fallback")
}

func TestWebhook_CallbackAcked(t *testing.T) {
	f := newFixture(3900)

	f.post(t, `{"update_id":6,"callback_query":{"id":"cb-1","from":{"id":555,"first_name":"Аня"},"message":{"chat":{"id":555}},"data":"Игры 🎲"}}`)

	require.Len(t, f.msgr.acked, 1)
	assert.Equal(t, "cb-1", f.msgr.acked[0])

	user := f.msgr.toChat(userID)
	require.NotEmpty(t, user)
	assert.Contains(t, user[len(user)-1].text, "Выбери игру")
}

func TestWebhook_InlineQueryOnlyRelayed(t *testing.T) {
	f := newFixture(3900)

	rec := f.post(t, `{"update_id":7,"inline_query":{"id":"q1","from":{"id":555},"query":"тест"}}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, f.msgr.toChat(ownerID), "inline queries are relayed to the operator")
	assert.Empty(t, f.msgr.toChat(userID), "no chat to answer into")
}

func TestWebhook_ContactForwarded(t *testing.T) {
	f := newFixture(3900)

	f.post(t, `{"update_id":8,"message":{"from":{"id":555,"first_name":"Иван"},"chat":{"id":555},"contact":{"phone_number":"79001234567","first_name":"Иван","user_id":555}}}`)

	user := f.msgr.toChat(userID)
	require.Len(t, user, 1)
	assert.Contains(t, user[0].text, "+79001234567")

	var contactRelayed bool
	for _, m := range f.msgr.toChat(ownerID) {
		if !m.markdown && strings.Contains(m.text, "79001234567") {
			contactRelayed = true
		}
	}
	assert.True(t, contactRelayed, "contact fields reach the operator")
}
