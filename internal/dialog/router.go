// Package dialog drives the per-chat conversation state machine: menu
// navigation, quiz and game rounds, answer checking, feedback capture.
package dialog

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"
	tele "gopkg.in/telebot.v3"

	"telegram-quiz-bot/internal/game"
	"telegram-quiz-bot/internal/llm"
	"telegram-quiz-bot/internal/session"
	"telegram-quiz-bot/internal/stats"
)

// Messenger is the outbound delivery surface the router needs.
type Messenger interface {
	Send(chatID int64, text string) error
	SendKeyboard(chatID int64, text string, kb *tele.ReplyMarkup) error
}

// Generator produces one completion for a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Reporter forwards user-submitted material to the operator.
type Reporter interface {
	ForwardFeedback(chatID int64, firstName, text string)
	ForwardContact(contact *tele.Contact)
}

// Router decides, for each inbound text, which of menu navigation, game
// start, answer checking, feedback capture or fallback applies, and drives
// the session and stats stores and the completion gateway accordingly.
type Router struct {
	msgr     Messenger
	gen      Generator
	reporter Reporter
	sessions *session.Store
	feedback *session.FeedbackStore
	stats    *stats.Store
}

// NewRouter creates a dialogue router over the given collaborators.
func NewRouter(
	msgr Messenger,
	gen Generator,
	reporter Reporter,
	sessions *session.Store,
	feedback *session.FeedbackStore,
	statsStore *stats.Store,
) *Router {
	return &Router{
		msgr:     msgr,
		gen:      gen,
		reporter: reporter,
		sessions: sessions,
		feedback: feedback,
		stats:    statsStore,
	}
}

// HandleText runs one inbound text message through the state machine.
func (r *Router) HandleText(ctx context.Context, chatID int64, firstName, text string) {
	switch text {
	case CommandStart:
		// Reset wins over everything, including a pending feedback mark.
		r.feedback.Consume(chatID)
		r.sessions.Set(chatID, session.Session{FirstName: firstName})
		_ = r.msgr.SendKeyboard(chatID, greeting(firstName), MainMenu())
		return

	case CommandFeedback:
		r.feedback.Set(chatID)
		_ = r.msgr.Send(chatID, msgFeedbackPrompt)
		return
	}

	// A pending feedback mark captures the next message whatever it is.
	if r.feedback.Consume(chatID) {
		name := firstName
		if sess := r.sessions.Get(chatID); sess.FirstName != "" {
			name = sess.FirstName
		}
		r.reporter.ForwardFeedback(chatID, name, text)
		_ = r.msgr.Send(chatID, msgFeedbackThanks)
		return
	}

	if text == CommandStats {
		_ = r.msgr.Send(chatID, renderStats(r.stats.Snapshot(chatID)))
		return
	}

	// Pending expectations consume the message before any menu matching.
	sess := r.sessions.Get(chatID)
	switch sess.State {
	case session.AwaitingQuizAnswer:
		r.checkAnswer(chatID, sess, game.Quiz, text)
		return
	case session.AwaitingGameAnswer:
		r.checkAnswer(chatID, sess, sess.Game, text)
		return
	}

	switch {
	case text == ButtonGames:
		_ = r.msgr.SendKeyboard(chatID, msgGamesMenu, GamesMenu())

	case game.IsQuizTopic(text):
		r.startQuiz(ctx, chatID, firstName, text)

	default:
		if kind, ok := game.ByButton(text); ok {
			r.startGame(ctx, chatID, firstName, kind)
			return
		}
		_ = r.msgr.Send(chatID, msgFallback)
	}
}

// HandleContact acknowledges a shared contact and forwards it to the
// operator. Session state is unchanged.
func (r *Router) HandleContact(chatID int64, contact *tele.Contact) {
	if contact == nil {
		return
	}
	_ = r.msgr.Send(chatID, contactThanks(contact.PhoneNumber))
	r.reporter.ForwardContact(contact)
}

// startQuiz generates a topic question and arms the quiz expectation. On any
// failure the user gets a retry notice and the session is not advanced.
func (r *Router) startQuiz(ctx context.Context, chatID int64, firstName, topic string) {
	ex, ok := r.generate(ctx, chatID, game.Quiz, game.QuizPrompt(topic))
	if !ok {
		return
	}

	r.sessions.Set(chatID, session.Session{
		FirstName: firstName,
		State:     session.AwaitingQuizAnswer,
		Answer:    ex.Answer,
		Question:  ex.Question,
	})
	_ = r.msgr.Send(chatID, quizQuestion(topic, ex.Question))
}

// startGame generates a round for the kind and arms the game expectation.
func (r *Router) startGame(ctx context.Context, chatID int64, firstName string, kind game.Kind) {
	ex, ok := r.generate(ctx, chatID, kind, game.Def(kind).Prompt)
	if !ok {
		return
	}

	r.sessions.Set(chatID, session.Session{
		FirstName: firstName,
		State:     session.AwaitingGameAnswer,
		Game:      kind,
		Answer:    ex.Answer,
		Question:  ex.Question,
	})
	_ = r.msgr.Send(chatID, gamePrompt(kind, ex.Question))
}

// generate runs one gateway call plus extraction. On failure it sends the
// user-facing notice and reports !ok; no session is created.
func (r *Router) generate(ctx context.Context, chatID int64, kind game.Kind, prompt string) (game.Extraction, bool) {
	raw, err := r.gen.Generate(ctx, prompt)
	if err != nil {
		log.Warn().Err(err).Int64("chat_id", chatID).Stringer("game", kind).Msg("generation failed")
		if errors.Is(err, llm.ErrNoAPIKey) {
			_ = r.msgr.Send(chatID, msgNoAPIKey)
		} else {
			_ = r.msgr.Send(chatID, generationFailed(kind))
		}
		return game.Extraction{}, false
	}

	ex, err := game.Extract(kind, raw)
	if err != nil {
		log.Warn().Err(err).Int64("chat_id", chatID).Stringer("game", kind).Msg("extraction failed")
		_ = r.msgr.Send(chatID, generationFailed(kind))
		return game.Extraction{}, false
	}

	return ex, true
}

// checkAnswer compares the guess to the stored expectation, records the
// outcome and clears the session. Single-shot: right or wrong, the
// expectation is gone before the result is sent.
func (r *Router) checkAnswer(chatID int64, sess session.Session, kind game.Kind, guess string) {
	won := game.Def(kind).Check(guess, sess.Answer)

	r.sessions.Clear(chatID)
	r.stats.Record(chatID, kind.String(), won)

	log.Info().
		Int64("chat_id", chatID).
		Stringer("game", kind).
		Bool("won", won).
		Msg("answer checked")

	var result string
	if kind == game.Quiz {
		result = quizResult(won, sess.Answer)
	} else {
		result = gameResult(kind, won, sess.Answer)
	}
	_ = r.msgr.SendKeyboard(chatID, result, AfterGameMenu())
}
