package bot

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/rs/zerolog/log"
	tele "gopkg.in/telebot.v3"

	"telegram-quiz-bot/internal/relay"
)

// maxUpdateBody caps the webhook request body; Telegram updates are far
// smaller than this.
const maxUpdateBody = 1 << 20

// handleWebhook processes one update envelope. Malformed JSON gets a 400;
// everything else gets a 200 acknowledgement no matter how the internal
// processing went. Dialogue errors and panics are contained here and logged,
// never surfaced as a 5xx.
func (b *Bot) handleWebhook(w http.ResponseWriter, req *http.Request) {
	raw, err := io.ReadAll(http.MaxBytesReader(w, req.Body, maxUpdateBody))
	if err != nil {
		http.Error(w, "Bad JSON", http.StatusBadRequest)
		return
	}

	var upd tele.Update
	if err := json.Unmarshal(raw, &upd); err != nil {
		log.Warn().Err(err).Msg("malformed update payload")
		http.Error(w, "Bad JSON", http.StatusBadRequest)
		return
	}

	func() {
		defer func() {
			if r := recover(); r != nil {
				log.Error().Interface("panic", r).Int("update_id", upd.ID).Msg("recovered while handling update")
			}
		}()
		b.process(req, raw, &upd)
	}()

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}

// process runs the relay and the dialogue state machine for one update.
func (b *Bot) process(req *http.Request, raw []byte, upd *tele.Update) {
	sender := senderOf(upd)
	text := textOf(upd)

	log.Debug().Int("update_id", upd.ID).Msg("update received")

	isOwner := sender != nil && b.relay.IsOwner(sender.ID)

	// Operator directed replies bypass the dialogue entirely. For anyone
	// else /reply is ordinary text and falls through to the router.
	if isOwner && relay.IsReplyCommand(text) {
		b.relay.HandleReply(text)
		return
	}

	if !isOwner {
		b.relay.ForwardUpdate(upd.ID, raw)
	}

	if upd.Callback != nil {
		_ = b.acker.AckCallback(upd.Callback.ID)
	}

	chatID, firstName := chatOf(upd)
	if chatID == 0 {
		// Inline queries carry no chat; relaying above is all we do.
		return
	}

	if upd.Message != nil && upd.Message.Contact != nil {
		b.router.HandleContact(chatID, upd.Message.Contact)
		return
	}

	b.router.HandleText(req.Context(), chatID, firstName, text)
}

// senderOf finds the sender across the mutually exclusive envelope shapes.
func senderOf(upd *tele.Update) *tele.User {
	switch {
	case upd.Message != nil:
		return upd.Message.Sender
	case upd.EditedMessage != nil:
		return upd.EditedMessage.Sender
	case upd.Callback != nil:
		return upd.Callback.Sender
	case upd.Query != nil:
		return upd.Query.Sender
	}
	return nil
}

// textOf finds the free text or button-callback data of the update.
func textOf(upd *tele.Update) string {
	switch {
	case upd.Message != nil:
		return upd.Message.Text
	case upd.EditedMessage != nil:
		return upd.EditedMessage.Text
	case upd.Callback != nil:
		return upd.Callback.Data
	case upd.Query != nil:
		return upd.Query.Text
	}
	return ""
}

// chatOf finds the chat the reply should go to, along with the sender's
// first name. Returns 0 when the update has no chat.
func chatOf(upd *tele.Update) (int64, string) {
	switch {
	case upd.Message != nil && upd.Message.Chat != nil:
		return upd.Message.Chat.ID, firstNameOf(upd.Message.Sender)
	case upd.EditedMessage != nil && upd.EditedMessage.Chat != nil:
		return upd.EditedMessage.Chat.ID, firstNameOf(upd.EditedMessage.Sender)
	case upd.Callback != nil && upd.Callback.Message != nil && upd.Callback.Message.Chat != nil:
		return upd.Callback.Message.Chat.ID, firstNameOf(upd.Callback.Sender)
	}
	return 0, ""
}

func firstNameOf(u *tele.User) string {
	if u == nil {
		return ""
	}
	return u.FirstName
}
