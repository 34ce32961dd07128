package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"wellness-bot/internal/adapters/bot"
	"wellness-bot/internal/adapters/repo"
	"wellness-bot/internal/adapters/sessions"
	"wellness-bot/internal/adapters/telegram"
	"wellness-bot/internal/adapters/vision"
	"wellness-bot/internal/domain"
	"wellness-bot/internal/infra/cache"
	"wellness-bot/internal/infra/config"
	"wellness-bot/internal/infra/db"
	httpinfra "wellness-bot/internal/infra/http"
	applog "wellness-bot/internal/infra/log"
	"wellness-bot/internal/infra/metrics"
	"wellness-bot/internal/infra/openai"
	"wellness-bot/internal/infra/settings"
	"wellness-bot/internal/usecase/food"
	"wellness-bot/internal/usecase/notify"
	"wellness-bot/internal/usecase/survey"
)

func main() {
	cfg := config.Load()
	logger := applog.NewLogger(cfg.AppEnv)
	metrics.MustRegister(prometheus.DefaultRegisterer)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	metrics.StartServer(ctx, applog.Component(logger, "metrics"), cfg.MetricsAddr)

	userSettings := settings.Open(cfg.SettingsFile, applog.Component(logger, "settings"))

	botAPI, err := tgbotapi.NewBotAPI(cfg.Telegram.Token)
	if err != nil {
		logger.Fatal().Err(err).Msg("не удалось создать бота")
	}
	sender := telegram.NewSender(botAPI, applog.Component(logger, "telegram"))

	var sessionStore domain.SessionStore = sessions.NewMemory()
	var dedupe domain.Cache
	if cfg.RedisAddr != "" {
		client, err := cache.Connect(ctx, cfg.RedisAddr)
		if err != nil {
			logger.Fatal().Err(err).Msg("не удалось подключиться к Redis")
		}
		defer client.Close()
		sessionStore = sessions.NewRedis(client, cfg.Survey.SessionTTL)
		dedupe = cache.NewRedis(client, "wellness:")
		logger.Info().Str("addr", cfg.RedisAddr).Msg("сессии хранятся в Redis")
	}

	var archive domain.ResultArchive
	if cfg.PGDSN != "" {
		pool, err := db.Connect(ctx, cfg.PGDSN)
		if err != nil {
			logger.Fatal().Err(err).Msg("не удалось подключиться к БД")
		}
		defer pool.Close()
		pg := repo.NewPostgres(pool)
		if err := pg.EnsureSchema(ctx); err != nil {
			logger.Fatal().Err(err).Msg("не удалось подготовить схему БД")
		}
		archive = pg
	}

	scheduler := notify.NewScheduler(sender, applog.Component(logger, "notify"))
	manager := survey.NewManager(sessionStore, sender, scheduler, archive, applog.Component(logger, "survey"), cfg.Survey.WelcomePhoto, cfg.Survey.ContactURL)

	llm := openai.NewClient(cfg.OpenAI.APIKey, cfg.OpenAI.BaseURL, cfg.OpenAI.Model, cfg.OpenAI.Timeout)
	classifier := vision.NewOpenAI(llm, llm.Model(), cfg.OpenAI.Timeout)
	foodService := food.NewService(telegram.NewFetcher(botAPI, nil), classifier, sender, applog.Component(logger, "food"))

	handler := bot.NewHandler(manager, foodService, dedupe, applog.Component(logger, "bot"))
	server := httpinfra.NewServer(applog.Component(logger, "http"))

	g, gctx := errgroup.WithContext(ctx)
	if cfg.Telegram.WebhookURL != "" {
		server.Router.Post("/bot/webhook", telegram.WebhookHandler(handler, applog.Component(logger, "webhook")))
		if err := telegram.SetWebhook(botAPI, cfg.Telegram.WebhookURL); err != nil {
			logger.Fatal().Err(err).Msg("не удалось установить вебхук")
		}
		logger.Info().Str("url", cfg.Telegram.WebhookURL).Msg("бот работает через вебхук")
	} else {
		poller := telegram.NewPoller(botAPI, handler, applog.Component(logger, "poller"), cfg.Telegram.PollTimeout)
		g.Go(func() error {
			return poller.Run(gctx)
		})
		logger.Info().Msg("бот работает через long polling")
	}
	g.Go(func() error {
		return server.Run(gctx, cfg.HTTPAddr)
	})

	err = g.Wait()

	handler.Close()
	scheduler.Stop()
	if saveErr := userSettings.Save(); saveErr != nil {
		logger.Error().Err(saveErr).Msg("не удалось сохранить настройки")
	}

	switch {
	case errors.Is(err, domain.ErrInstanceConflict):
		logger.Error().Err(err).Msg("запущен другой экземпляр бота, остановка")
		stop()
		os.Exit(1)
	case err != nil:
		logger.Error().Err(err).Msg("бот остановлен с ошибкой")
		stop()
		os.Exit(1)
	}
	logger.Info().Msg("бот остановлен")
}
