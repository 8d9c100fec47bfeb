package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"event-rsvp/internal/admin"
	"event-rsvp/internal/attendance"
	"event-rsvp/internal/config"
	"event-rsvp/internal/event"
	"event-rsvp/internal/gifts"
	"event-rsvp/internal/handler"
	"event-rsvp/internal/identity"
	"event-rsvp/internal/storage"
	"event-rsvp/internal/whatsapp"
)

func main() {
	fmt.Println("🎉 Lista de Presentes & Confirmação de Presença")
	fmt.Println("===============================================")

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}
	log := newLogger(cfg.LogLevel)

	if err := run(cfg, log); err != nil {
		log.Fatal().Err(err).Msg("Fatal error")
	}
}

// run wires the application and serves the terminal until the user quits
// or a signal arrives. Resources are released before it returns.
func run(cfg *config.Config, log zerolog.Logger) error {
	store, err := storage.Open(cfg.StoreBackend, cfg.DataDir)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer store.Close()

	loc, err := time.LoadLocation(cfg.TimeZone)
	if err != nil {
		log.Warn().Err(err).Str("tz", cfg.TimeZone).Msg("Unknown time zone, using local time")
		loc = time.Local
	}

	gate, err := admin.NewGate(store, cfg.AdminPassphrase, 0, log)
	if err != nil {
		return fmt.Errorf("failed to initialize admin gate: %w", err)
	}
	register := attendance.NewRegister(store, log)

	deps := handler.Deps{
		Identity:   identity.NewResolver(store, register, log),
		Gifts:      gifts.NewCatalog(store, log),
		Attendance: register,
		Event:      event.NewStore(store, log, loc),
		Admin:      gate,
		Log:        log,
	}

	if cfg.WhatsAppNotify {
		whatsappService, err := whatsapp.NewService(&whatsapp.Config{DataDir: cfg.WhatsAppDataDir}, log)
		if err != nil {
			return fmt.Errorf("failed to initialize WhatsApp service: %w", err)
		}
		fmt.Println("Connecting to WhatsApp...")
		if err := whatsappService.Connect(); err != nil {
			return fmt.Errorf("failed to connect to WhatsApp: %w", err)
		}
		defer whatsappService.Disconnect()
		deps.Notifier = whatsappService
	}

	app := handler.NewApp(deps)
	ctx := context.Background()
	if err := app.Hydrate(ctx); err != nil {
		return fmt.Errorf("failed to restore session: %w", err)
	}

	done := make(chan struct{})
	go func() {
		newCLI(app, os.Stdin, os.Stdout).run(ctx)
		close(done)
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	select {
	case <-c:
	case <-done:
	}

	fmt.Println("\nAté logo! 👋")
	return nil
}

func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		Level(lvl).
		With().Timestamp().Logger()
}
