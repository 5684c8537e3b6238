// Package bot wires the webhook HTTP endpoint to the operator relay and the
// dialogue router.
package bot

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"telegram-quiz-bot/internal/config"
	"telegram-quiz-bot/internal/dialog"
	"telegram-quiz-bot/internal/relay"
)

// CallbackAcker acknowledges button-press callbacks.
type CallbackAcker interface {
	AckCallback(callbackID string) error
}

// Bot owns the webhook HTTP server and dispatches inbound updates.
type Bot struct {
	cfg    *config.Config
	acker  CallbackAcker
	router *dialog.Router
	relay  *relay.Relay
	srv    *http.Server
}

// Dependencies holds everything the bot needs.
type Dependencies struct {
	Config *config.Config
	Acker  CallbackAcker
	Router *dialog.Router
	Relay  *relay.Relay
}

// New creates a Bot with the given dependencies.
func New(deps *Dependencies) *Bot {
	b := &Bot{
		cfg:    deps.Config,
		acker:  deps.Acker,
		router: deps.Router,
		relay:  deps.Relay,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST "+deps.Config.Server.WebhookPath, b.handleWebhook)

	b.srv = &http.Server{
		Addr:              deps.Config.Server.Addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return b
}

// Handler exposes the HTTP handler, mainly for tests.
func (b *Bot) Handler() http.Handler {
	return b.srv.Handler
}

// Start runs the webhook server until Shutdown or failure.
func (b *Bot) Start() error {
	log.Info().
		Str("addr", b.cfg.Server.Addr).
		Str("path", b.cfg.Server.WebhookPath).
		Msg("Webhook server starting")
	err := b.srv.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Shutdown stops the webhook server gracefully.
func (b *Bot) Shutdown(ctx context.Context) error {
	log.Info().Msg("Webhook server stopping")
	return b.srv.Shutdown(ctx)
}
