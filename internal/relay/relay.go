// Package relay forwards inbound traffic to the single configured operator
// and executes the operator's directed-reply commands.
package relay

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
	tele "gopkg.in/telebot.v3"
)

// ReplyCommand is the operator command that sends a message to an arbitrary
// chat: /reply <chat_id> <text...>.
const ReplyCommand = "/reply"

const replyUsage = "⚠ Формат: /reply <chat_id> <текст>"

// Messenger is the outbound delivery surface the relay needs.
type Messenger interface {
	Send(chatID int64, text string) error
	SendMarkdown(chatID int64, text string) error
}

// Relay forwards events to the operator in size-bounded chunks and handles
// the operator's /reply commands.
type Relay struct {
	msgr      Messenger
	ownerID   int64
	chunkSize int
}

// New creates a relay for the given operator. With ownerID zero the relay is
// inert: nothing is forwarded and nobody holds reply privileges.
func New(msgr Messenger, ownerID int64, chunkSize int) *Relay {
	return &Relay{msgr: msgr, ownerID: ownerID, chunkSize: chunkSize}
}

// IsOwner reports whether the user is the configured operator.
func (r *Relay) IsOwner(userID int64) bool {
	return r.ownerID != 0 && userID == r.ownerID
}

// IsReplyCommand reports whether text is a directed-reply command form.
func IsReplyCommand(text string) bool {
	return text == ReplyCommand || strings.HasPrefix(text, ReplyCommand+" ")
}

// HandleReply executes an operator /reply command: sends the text to the
// target chat and confirms delivery to the operator. Malformed commands get
// a usage notice instead.
func (r *Relay) HandleReply(text string) {
	parts := strings.SplitN(strings.TrimSpace(text), " ", 3)
	if len(parts) < 3 || strings.TrimSpace(parts[2]) == "" {
		_ = r.msgr.Send(r.ownerID, replyUsage)
		return
	}

	target, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		_ = r.msgr.Send(r.ownerID, replyUsage)
		return
	}

	if err := r.msgr.Send(target, parts[2]); err != nil {
		log.Warn().Err(err).Int64("target", target).Msg("directed reply failed")
		_ = r.msgr.Send(r.ownerID, fmt.Sprintf("⚠ Не удалось отправить сообщение пользователю %d", target))
		return
	}
	_ = r.msgr.Send(r.ownerID, fmt.Sprintf("✅ Сообщение отправлено пользователю %d", target))
}

// ForwardUpdate relays the serialized inbound event to the operator. The
// payload is split into chunks of at most chunkSize characters because the
// transport enforces a maximum message length; nothing is truncated, and the
// concatenation of chunk bodies reconstructs the payload.
func (r *Relay) ForwardUpdate(updateID int, raw []byte) {
	if r.ownerID == 0 {
		return
	}

	header := fmt.Sprintf("📡 Новое событие (update_id: %d)\nСодержимое апдейта (JSON):\n", updateID)
	payload := header + string(raw)

	for _, chunk := range ChunkString(payload, r.chunkSize) {
		if err := r.msgr.SendMarkdown(r.ownerID, "```json\n"+chunk+"\n```"); err != nil {
			log.Warn().Err(err).Int("update_id", updateID).Msg("update relay failed")
		}
	}
}

// ForwardFeedback relays a chat's feedback text, with the stored first name
// for context, to the operator.
func (r *Relay) ForwardFeedback(chatID int64, firstName, text string) {
	if r.ownerID == 0 {
		return
	}
	msg := fmt.Sprintf("💬 Отзыв от %s (chat_id: %d):\n%s", displayName(firstName), chatID, text)
	if err := r.msgr.Send(r.ownerID, msg); err != nil {
		log.Warn().Err(err).Int64("chat_id", chatID).Msg("feedback relay failed")
	}
}

// ForwardContact relays a shared contact's fields to the operator.
func (r *Relay) ForwardContact(contact *tele.Contact) {
	if r.ownerID == 0 || contact == nil {
		return
	}
	msg := fmt.Sprintf("📞 Новый контакт:\nИмя: %s\nТелефон: +%s\nID: %d",
		contact.FirstName, contact.PhoneNumber, contact.UserID)
	if err := r.msgr.Send(r.ownerID, msg); err != nil {
		log.Warn().Err(err).Int64("contact_user_id", contact.UserID).Msg("contact relay failed")
	}
}

func displayName(firstName string) string {
	if firstName == "" {
		return "пользователя"
	}
	return firstName
}

// ChunkString splits s into pieces of at most size characters, preserving
// order. Splitting is on rune boundaries so multi-byte characters are never
// cut. Joining the pieces reconstructs s exactly.
func ChunkString(s string, size int) []string {
	if size <= 0 || s == "" {
		return []string{s}
	}

	runes := []rune(s)
	chunks := make([]string, 0, (len(runes)+size-1)/size)
	for start := 0; start < len(runes); start += size {
		end := start + size
		if end > len(runes) {
			end = len(runes)
		}
		chunks = append(chunks, string(runes[start:end]))
	}
	return chunks
}
