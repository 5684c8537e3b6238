package dialog

import (
	"fmt"
	"sort"
	"strings"

	"telegram-quiz-bot/internal/game"
	"telegram-quiz-bot/internal/stats"
)

// Menu selector texts.
const (
	ButtonGames     = "Игры 🎲"
	ButtonContact   = "📤 Поделиться контактом"
	CommandStart    = "/start"
	CommandStats    = "/stats"
	CommandFeedback = "/feedback"
)

const (
	msgFeedbackPrompt = "✍️ Напиши свой отзыв одним сообщением — я передам его владельцу."
	msgFeedbackThanks = "✅ Спасибо за отзыв!"
	msgGamesMenu      = "Выбери игру:"
	msgFallback       = "⚠️ Напиши /start, чтобы начать сначала или выбери команду из меню."
	msgNoAPIKey       = "⚠️ Генерация недоступна: сервис не настроен."
	msgNoStats        = "📊 Ты ещё не играл. Выбери игру в меню!"
)

func greeting(firstName string) string {
	if firstName == "" {
		firstName = "друг"
	}
	return fmt.Sprintf("👋 Привет, %s! Выбери тему для теста или игру:", firstName)
}

func contactThanks(phone string) string {
	return fmt.Sprintf("✅ Спасибо! Я получил твой номер: +%s", phone)
}

func quizQuestion(topic, question string) string {
	return fmt.Sprintf("📚 Вопрос по теме «%s»:\n\n%s", topic, question)
}

// gamePrompt frames the generated question for one game kind, including the
// per-kind answer instruction.
func gamePrompt(kind game.Kind, question string) string {
	switch kind {
	case game.WordGuess:
		return fmt.Sprintf("🧠 Угадай слово:\n\n%s", question)
	case game.FindTheLie:
		return fmt.Sprintf("🕵️ Найди ложь:\n\n%s\n\nОтвет введи цифрой (1, 2 или 3).", question)
	case game.ContinueStory:
		return fmt.Sprintf("📖 Продолжи историю:\n\n%s\n\nВыбери номер продолжения (1, 2 или 3).", question)
	case game.Charade:
		return fmt.Sprintf("🧩 Шарада:\n\n%s\n\nНапиши свой ответ.", question)
	default:
		return question
	}
}

// generationFailed is the retry notice shown when a generation could not be
// produced or parsed for the given kind.
func generationFailed(kind game.Kind) string {
	switch kind {
	case game.Quiz:
		return "⚠️ Не удалось сгенерировать вопрос. Попробуй ещё."
	case game.WordGuess:
		return "⚠️ Не удалось сгенерировать описание. Попробуй ещё."
	case game.FindTheLie:
		return "⚠️ Не удалось сгенерировать утверждения. Попробуй ещё."
	case game.ContinueStory:
		return "⚠️ Не удалось сгенерировать историю. Попробуй ещё."
	case game.Charade:
		return "⚠️ Не удалось сгенерировать шараду. Попробуй ещё."
	default:
		return "⚠️ Не удалось сгенерировать. Попробуй ещё."
	}
}

func quizResult(won bool, answer string) string {
	if won {
		return "🎉 Правильно! Хочешь сыграть ещё?"
	}
	return fmt.Sprintf("❌ Неправильно. Правильный ответ: %s\nПопробуешь ещё?", answer)
}

func gameResult(kind game.Kind, won bool, answer string) string {
	if won {
		switch kind {
		case game.FindTheLie:
			return "🎉 Верно! Ты нашёл ложь!"
		case game.ContinueStory:
			return "🎉 Классное продолжение!"
		case game.Charade:
			return "🎉 Молодец! Правильно угадал!"
		default:
			return "🎉 Правильно! Хочешь сыграть ещё?"
		}
	}
	switch kind {
	case game.FindTheLie:
		return fmt.Sprintf("❌ Нет, ложь была под номером %s. Попробуешь ещё?", answer)
	case game.ContinueStory:
		return "❌ Не похоже на вариант из списка."
	case game.Charade:
		return fmt.Sprintf("❌ Неправильно. Правильный ответ: %s. Попробуешь ещё?", answer)
	default:
		return fmt.Sprintf("❌ Неправильно. Было загадано: %s\nПопробуешь ещё?", answer)
	}
}

// renderStats formats the per-game counters, sorted by game name for a
// stable layout.
func renderStats(snapshot map[string]stats.Entry) string {
	if len(snapshot) == 0 {
		return msgNoStats
	}

	names := make([]string, 0, len(snapshot))
	for name := range snapshot {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString("📊 Твоя статистика:")
	for _, name := range names {
		entry := snapshot[name]
		fmt.Fprintf(&b, "\n🎮 %s: сыграно %d, побед %d", name, entry.Played, entry.Wins)
	}
	return b.String()
}
