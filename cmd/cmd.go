package cmd

import (
	"context"
	"net/http"
	"os"

	"codeck-client/internal/api"
	"codeck-client/internal/config"
	"codeck-client/internal/models"
	"codeck-client/internal/services"
	"codeck-client/internal/session"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Run wires the data layer together: configuration, session hydration, the
// API client and the feed consumer. Credentials come from CODECK_EMAIL and
// CODECK_PASSWORD when no persisted session can be restored.
func Run() {
	// Load configuration
	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Setup logger
	setupLogger(cfg.Log.Level)

	// Restore session from disk
	store := session.NewFileStore(cfg.Session.File)
	sess := session.New(store)
	if err := sess.Hydrate(); err != nil {
		log.Warn().Err(err).Msg("Failed to restore session, starting anonymous")
	}

	client := api.NewWithHTTPClient(cfg.API.BaseURL, sess.Token, &http.Client{
		Timeout: cfg.API.Timeout(),
	})

	ctx := context.Background()

	if !sess.IsAuthenticated() {
		email := os.Getenv("CODECK_EMAIL")
		password := os.Getenv("CODECK_PASSWORD")
		if email == "" || password == "" {
			log.Fatal().Msg("No session found, set CODECK_EMAIL and CODECK_PASSWORD to log in")
		}

		resp, err := client.Login(ctx, models.LoginRequest{Email: email, Password: password})
		if err != nil {
			log.Fatal().Err(err).Msg("Login failed")
		}
		if err := sess.Login(resp.User, resp.Token); err != nil {
			log.Warn().Err(err).Msg("Session established but not persisted")
		}
		log.Info().Str("user_id", resp.User.ID).Msg("Logged in")
	}

	user := sess.CurrentUser()
	log.Info().Str("user_id", user.ID).Str("name", user.Name).Msg("Session ready")

	// Load and render the cross-group feed
	feedService := services.NewFeedService(client)
	feed, err := feedService.Load(ctx, user.ID, "")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load feed")
	}
	feedService.Enrich(ctx, feed, user.ID)

	for _, entry := range feed {
		log.Info().
			Str("activity_id", entry.ID).
			Str("title", entry.Title).
			Str("creator", entry.CreatorName).
			Time("date", entry.Date).
			Int("comments", entry.CommentCount).
			Msg("Feed entry")
	}
}

// setupLogger configures zerolog logger
func setupLogger(level string) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	switch level {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "info":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}
