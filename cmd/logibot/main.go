package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	tele "gopkg.in/telebot.v4"

	"logitrack/internal/bot"
	"logitrack/internal/client"
	"logitrack/internal/config"
	"logitrack/internal/worker"
)

func main() {
	cfg := config.NewBot()
	if cfg.Token == "" {
		slog.Error("TELEGRAM_BOT_TOKEN is not set")
		os.Exit(1)
	}

	local, err := client.OpenLocal(cfg.LocalDBPath)
	if err != nil {
		slog.Error("failed to open local storage", "error", err)
		os.Exit(1)
	}
	defer local.Close()

	api := client.NewClient(cfg.APIBaseURL, client.Identity{})
	prober := client.NewProber(api.Health)

	tb, err := tele.NewBot(tele.Settings{
		Token:  cfg.Token,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	})
	if err != nil {
		slog.Error("failed to create bot", "error", err)
		os.Exit(1)
	}

	b := bot.New(tb, api, local, prober)
	statusWorker := worker.NewStatusWorker(cfg.PollInterval, b)
	b.SetWorker(statusWorker)

	ctx, cancel := context.WithCancel(context.Background())
	go statusWorker.Start(ctx)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		slog.Info("shutting down...")
		cancel()
		tb.Stop()
	}()

	slog.Info("starting bot", "api", cfg.APIBaseURL)
	tb.Start()
	slog.Info("bot stopped")
}
