package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gcanale/agendabot/internal/agent"
	"github.com/gcanale/agendabot/internal/config"
	"github.com/gcanale/agendabot/internal/database"
	"github.com/gcanale/agendabot/internal/gcal"
	"github.com/gcanale/agendabot/internal/llm"
	"github.com/gcanale/agendabot/internal/notify"
	"github.com/gcanale/agendabot/internal/server"
	"github.com/gcanale/agendabot/internal/telegram"
	"github.com/gcanale/agendabot/internal/timeutil"
)

// calendarAdapter maps the Google Calendar client onto the agent's calendar
// surface.
type calendarAdapter struct {
	client *gcal.Client
}

func (a calendarAdapter) CreateEvent(ctx context.Context, summary string, start, end time.Time) (agent.CreatedEvent, error) {
	created, err := a.client.CreateEvent(ctx, summary, start, end)
	if err != nil {
		return agent.CreatedEvent{}, err
	}
	return agent.CreatedEvent{ID: created.ID, HTMLLink: created.HTMLLink}, nil
}

func (a calendarAdapter) UpdateEvent(ctx context.Context, eventID, summary string, start, end time.Time) (agent.CreatedEvent, error) {
	updated, err := a.client.UpdateEvent(ctx, eventID, summary, start, end)
	if err != nil {
		return agent.CreatedEvent{}, err
	}
	return agent.CreatedEvent{ID: updated.ID, HTMLLink: updated.HTMLLink}, nil
}

func (a calendarAdapter) DeleteEvent(ctx context.Context, eventID string) error {
	return a.client.DeleteEvent(ctx, eventID)
}

func main() {
	cfg := config.LoadFromEnv()

	if cfg.TelegramToken == "" {
		fatal("configuration", fmt.Errorf("TELEGRAM_TOKEN is required"))
	}

	loc, fellBack := timeutil.ResolveLocation(cfg.Timezone)
	if fellBack {
		fmt.Fprintf(os.Stderr, "Warning: unknown timezone %q, falling back to UTC\n", cfg.Timezone)
	}

	// Phase 1: core infrastructure
	db, err := database.New(cfg.DBPath, loc)
	if err != nil {
		fatal("creating database", err)
	}
	defer db.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	gcalClient, err := gcal.NewClient(ctx, cfg.GoogleCredentialsFile, cfg.GoogleTokenFile)
	if err != nil {
		fatal("creating calendar client", err)
	}
	if !gcalClient.IsAuthenticated() {
		fatal("calendar client", fmt.Errorf("no OAuth token found, authorize first"))
	}

	notifyService := initNotifyService(ctx, gcalClient, cfg)

	llmClient, err := initLLMClient(cfg)
	if err != nil {
		fatal("creating llm client", err)
	}

	// Phase 2: the conversational agent and its transport
	assistant := agent.New(
		agent.NewParser(llmClient),
		calendarAdapter{client: gcalClient},
		db,
		notifyService,
		loc,
		nil,
	)

	bot, err := telegram.New(cfg.TelegramToken, assistant)
	if err != nil {
		fatal("creating telegram bot", err)
	}

	// Phase 3: background services
	var healthSrv *server.Server
	if cfg.HealthEnabled {
		healthSrv = server.New(cfg.HealthPort)
		go func() {
			if err := healthSrv.Start(); err != nil && err != http.ErrServerClosed {
				fmt.Fprintf(os.Stderr, "Health server error: %v\n", err)
			}
		}()
	}

	reconciler := gcal.NewReconciler(gcalClient, db,
		time.Duration(cfg.ReconcileInterval)*time.Minute)
	if err := reconciler.Start(); err != nil {
		fatal("starting reconcile worker", err)
	}

	go bot.Start(ctx)

	// Wait for shutdown signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	fmt.Println("Shutting down...")
	cancel()
	reconciler.Stop()
	if healthSrv != nil {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := healthSrv.Shutdown(shutdownCtx); err != nil {
			fmt.Fprintf(os.Stderr, "Health server shutdown error: %v\n", err)
		}
	}
}

// initNotifyService prefers Gmail on the calendar's OAuth credentials and
// falls back to Resend when an API key is configured.
func initNotifyService(ctx context.Context, gcalClient *gcal.Client, cfg *config.Config) *notify.Service {
	if httpClient := gcalClient.HTTPClient(ctx); httpClient != nil {
		gmailNotifier, err := notify.NewGmailNotifier(ctx, httpClient)
		if err == nil {
			fmt.Println("Notifications: using Gmail")
			return notify.NewService(gmailNotifier, cfg.NotifyEmailTo)
		}
		fmt.Fprintf(os.Stderr, "Gmail notifier unavailable: %v\n", err)
	}

	if resendNotifier := notify.NewResendNotifier(cfg.ResendAPIKey, cfg.NotifyEmailFrom); resendNotifier != nil {
		fmt.Println("Notifications: using Resend")
		return notify.NewService(resendNotifier, cfg.NotifyEmailTo)
	}

	fmt.Println("Notifications: disabled (no provider configured)")
	return notify.NewService(nil, cfg.NotifyEmailTo)
}

func initLLMClient(cfg *config.Config) (llm.Client, error) {
	apiKey := cfg.AnthropicAPIKey
	if cfg.LLMProvider == "openai" {
		apiKey = cfg.OpenAIAPIKey
	}
	return llm.New(llm.Options{
		Provider:    cfg.LLMProvider,
		APIKey:      apiKey,
		BaseURL:     cfg.OpenAIBaseURL,
		Model:       cfg.LLMModel,
		Temperature: cfg.LLMTemperature,
	})
}

func fatal(what string, err error) {
	fmt.Fprintf(os.Stderr, "Error %s: %v\n", what, err)
	os.Exit(1)
}
