package whatsapp

import (
	"context"
	"fmt"
	"os"
	"strings"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"
	"github.com/skip2/go-qrcode"
	"go.mau.fi/whatsmeow"
	"go.mau.fi/whatsmeow/proto/waE2E"
	"go.mau.fi/whatsmeow/store/sqlstore"
	"go.mau.fi/whatsmeow/types/events"

	"event-rsvp/internal/phone"
)

type Config struct {
	DataDir string
}

// Service sends RSVP confirmations to guests over WhatsApp.
type Service struct {
	client *whatsmeow.Client
	cfg    *Config
	log    zerolog.Logger
}

// NewService creates a new WhatsApp service backed by a device store in
// cfg.DataDir.
func NewService(cfg *Config, log zerolog.Logger) (*Service, error) {
	ctx := context.Background()
	logger := log.With().Str("component", "WhatsApp").Logger()

	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	// Use nil logger - sqlstore will use a no-op logger by default
	container, err := sqlstore.New(ctx, "sqlite3", fmt.Sprintf("file:%s/whatsmeow.db?_foreign_keys=on", cfg.DataDir), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create database: %w", err)
	}

	deviceStore, err := container.GetFirstDevice(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get device: %w", err)
	}

	client := whatsmeow.NewClient(deviceStore, nil)

	service := &Service{
		client: client,
		cfg:    cfg,
		log:    logger,
	}
	client.AddEventHandler(service.eventHandler)

	return service, nil
}

// NormalizePhoneNumber converts a masked guest contact such as
// (11) 91234-5678 into the international digits WhatsApp expects.
func NormalizePhoneNumber(phoneNumber string) string {
	phoneNumber = strings.TrimPrefix(strings.TrimSpace(phoneNumber), "+")
	return phone.International(phoneNumber)
}

// Connect connects to WhatsApp, printing a pairing QR code on first use.
func (s *Service) Connect() error {
	if s.client.Store.ID != nil {
		if err := s.client.Connect(); err != nil {
			return fmt.Errorf("failed to connect: %w", err)
		}
		return nil
	}

	qrChan, _ := s.client.GetQRChannel(context.Background())
	if err := s.client.Connect(); err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}
	for evt := range qrChan {
		if evt.Event != "code" {
			s.log.Info().Str("event", evt.Event).Msg("Login event")
			continue
		}
		q, err := qrcode.New(evt.Code, qrcode.Medium)
		if err != nil {
			fmt.Printf("QR Code: %s\n", evt.Code)
			continue
		}
		fmt.Println("\n" + q.ToSmallString(false))
		fmt.Println("📱 Escaneie o QR code acima no WhatsApp:")
		fmt.Println("   Configurações > Aparelhos conectados > Conectar um aparelho")
	}
	return nil
}

// Disconnect disconnects from WhatsApp
func (s *Service) Disconnect() {
	s.client.Disconnect()
}

// SendMessage sends a simple text message
func (s *Service) SendMessage(phoneNumber, message string) error {
	phoneNumber = NormalizePhoneNumber(phoneNumber)
	ctx := context.Background()

	// Verify the number is on WhatsApp before sending
	resp, err := s.client.IsOnWhatsApp(ctx, []string{phoneNumber})
	if err != nil {
		return fmt.Errorf("failed to verify number on WhatsApp: %w", err)
	}
	if len(resp) == 0 || !resp[0].IsIn {
		return fmt.Errorf("number %s is not registered on WhatsApp", phoneNumber)
	}
	jid := resp[0].JID

	s.log.Debug().Str("jid", jid.String()).Str("phone", phoneNumber).Msg("Attempting to send message")

	sent, err := s.client.SendMessage(ctx, jid, &waE2E.Message{
		Conversation: &message,
	})
	if err != nil {
		return fmt.Errorf("failed to send message to %s: %w", phoneNumber, err)
	}

	s.log.Info().Str("id", sent.ID).Str("phone", phoneNumber).Msg("Message sent")
	return nil
}

// eventHandler handles incoming WhatsApp events
func (s *Service) eventHandler(evt interface{}) {
	switch evt := evt.(type) {
	case *events.Message:
		if evt.Info.IsFromMe {
			return
		}
		s.log.Info().
			Str("sender", evt.Info.Sender.String()).
			Str("message", evt.Message.GetConversation()).
			Msg("Received message")
	case *events.Connected:
		s.log.Info().Msg("Connected to WhatsApp")
	case *events.Disconnected:
		s.log.Info().Msg("Disconnected from WhatsApp")
	case *events.LoggedOut:
		s.log.Info().Msg("Logged out from WhatsApp")
	}
}
