package dialog

import (
	tele "gopkg.in/telebot.v3"

	"telegram-quiz-bot/internal/game"
)

// MainMenu is the /start reply keyboard: quiz topics, the games menu, the
// feedback command and a request-contact button.
func MainMenu() *tele.ReplyMarkup {
	kb := &tele.ReplyMarkup{ResizeKeyboard: true}
	kb.Reply(
		kb.Row(kb.Text(game.QuizTopics[0]), kb.Text(game.QuizTopics[1])),
		kb.Row(kb.Text(game.QuizTopics[2]), kb.Text(ButtonGames)),
		kb.Row(kb.Text(CommandFeedback), kb.Contact(ButtonContact)),
	)
	return kb
}

// GamesMenu lists the four mini-games.
func GamesMenu() *tele.ReplyMarkup {
	kb := &tele.ReplyMarkup{ResizeKeyboard: true}
	kb.Reply(
		kb.Row(kb.Text(game.Def(game.WordGuess).Button), kb.Text(game.Def(game.FindTheLie).Button)),
		kb.Row(kb.Text(game.Def(game.ContinueStory).Button), kb.Text(game.Def(game.Charade).Button)),
		kb.Row(kb.Text(CommandStart), kb.Text(CommandStats)),
	)
	return kb
}

// AfterGameMenu is attached to win/lose messages.
func AfterGameMenu() *tele.ReplyMarkup {
	kb := &tele.ReplyMarkup{ResizeKeyboard: true}
	kb.Reply(
		kb.Row(kb.Text(ButtonGames)),
		kb.Row(kb.Text(CommandStart)),
	)
	return kb
}
