package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"sales-agent/internal/agent"
	"sales-agent/internal/audio"
	"sales-agent/internal/catalog"
	"sales-agent/internal/config"
	"sales-agent/internal/filter"
	"sales-agent/internal/llm"
	"sales-agent/internal/memory"
	"sales-agent/internal/responder"
	"sales-agent/internal/scheduler"
	"sales-agent/internal/scraper"
	"sales-agent/internal/server"
	"sales-agent/internal/storage"
	"sales-agent/internal/whatsapp"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}

	cfg := config.New()
	for _, warn := range cfg.Warnings() {
		log.Printf("⚠️ %s", warn)
	}

	timeout := time.Duration(cfg.RequestTimeoutSecs) * time.Second
	sendDelay := time.Duration(cfg.DelayBetweenMsgs * float64(time.Second))

	transport := whatsapp.New(whatsapp.Account{
		ServerURL: cfg.WhatsAppServerURL,
		Instance:  cfg.WhatsAppInstanceName,
		APIKey:    cfg.WhatsAppAPIKey,
	}, sendDelay, timeout)

	refresher := catalog.NewRefresher(scraper.NewFetcher(timeout), cfg.Stores())

	mem := memory.NewManager(cfg.ContextWindowLength)
	gen := responder.New(
		llm.BuildChain(cfg),
		mem,
		readSystemPrompt(cfg.SystemPromptPath),
		cfg.MaxResponseLength,
		timeout,
	)

	var rec storage.Recorder
	if cfg.ExchangeLogPath != "" {
		fr, err := storage.NewFileRecorder(cfg.ExchangeLogPath)
		if err != nil {
			log.Printf("failed to init exchange recorder: %v", err)
		} else {
			rec = fr
		}
	}

	salesAgent := agent.New(
		transport,
		audio.NewTranscriber(cfg.OpenAIAPIKey),
		refresher,
		gen,
		filter.New(),
		mem,
		rec,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if !transport.ValidateConnection(ctx) {
		log.Printf("⚠️ could not validate WhatsApp connection")
	}

	// Initial catalog load before taking traffic.
	refresher.RefreshAll(ctx)

	sched := scheduler.New()
	sched.SetRefreshFunction(func(ctx context.Context) {
		refresher.RefreshAll(ctx)
	})
	if err := sched.Start(cfg.RefreshSchedule); err != nil {
		log.Fatalf("failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	srv := server.New(cfg.Port, salesAgent, refresher)
	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	select {
	case err := <-errCh:
		if err != nil {
			log.Fatalf("server error: %v", err)
		}
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("shutdown error: %v", err)
		}
	}
}

func readSystemPrompt(path string) string {
	if path == "" {
		return ""
	}
	data, err := os.ReadFile(path)
	if err != nil {
		log.Printf("system prompt file not found or unreadable at %s: %v", path, err)
		return ""
	}
	return string(data)
}
