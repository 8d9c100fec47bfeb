package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/skip2/go-qrcode"

	"event-rsvp/internal/apperr"
	"event-rsvp/internal/handler"
	"event-rsvp/internal/imageenc"
	"event-rsvp/internal/models"
	"event-rsvp/internal/phone"
)

type cli struct {
	app     *handler.App
	scanner *bufio.Scanner
	out     io.Writer
}

func newCLI(app *handler.App, in io.Reader, out io.Writer) *cli {
	return &cli{app: app, scanner: bufio.NewScanner(in), out: out}
}

func (c *cli) printf(format string, args ...any) {
	fmt.Fprintf(c.out, format, args...)
}

func (c *cli) prompt(label string) (string, bool) {
	c.printf("%s", label)
	if !c.scanner.Scan() {
		return "", false
	}
	return strings.TrimSpace(c.scanner.Text()), true
}

func (c *cli) run(ctx context.Context) {
	for {
		c.menu()
		command, ok := c.prompt("\nEscolha uma opção: ")
		if !ok {
			return
		}

		switch command {
		case "1":
			c.switchIdentity(ctx)
		case "2":
			c.showEvent(ctx)
		case "3":
			c.listGifts(ctx)
		case "4":
			c.reserveGift(ctx)
		case "5":
			c.cancelReservation(ctx)
		case "6":
			c.submitRSVP(ctx)
		case "7":
			c.toggleAdmin(ctx)
		case "8":
			c.addGift(ctx)
		case "9":
			c.removeGift(ctx)
		case "10":
			c.editEvent(ctx)
		case "11":
			c.guestList(ctx)
		case "0":
			return
		default:
			c.printf("Opção inválida.\n")
		}
	}
}

func (c *cli) menu() {
	guest := c.app.CurrentGuest()
	c.printf("\n")
	if guest != nil {
		c.printf("Olá, %s (%s)\n", guest.Name, guest.Contact)
	}
	if guest == nil {
		c.printf("  1. Identificar-se\n")
	} else {
		c.printf("  1. Trocar de convidado\n")
	}
	c.printf("  2. Detalhes do evento\n")
	c.printf("  3. Lista de presentes\n")
	c.printf("  4. Reservar presente\n")
	c.printf("  5. Cancelar reserva\n")
	c.printf("  6. Confirmar presença\n")
	if c.app.IsAdmin() {
		c.printf("  7. Sair do modo administrador\n")
		c.printf("  8. Adicionar presente\n")
		c.printf("  9. Remover presente\n")
		c.printf(" 10. Editar evento\n")
		c.printf(" 11. Lista de convidados\n")
	} else {
		c.printf("  7. Área do administrador\n")
	}
	c.printf("  0. Sair\n")
}

// report prints err the way the user should see it. Validation messages
// are shown per field.
func (c *cli) report(err error) {
	if fields := apperr.FieldMessages(err); fields != nil {
		names := make([]string, 0, len(fields))
		for name := range fields {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			c.printf("❌ %s: %s\n", name, fields[name])
		}
		return
	}
	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		c.printf("❌ %s\n", appErr.Message)
		return
	}
	c.printf("❌ Erro: %v\n", err)
}

// switchIdentity identifies a guest. The current guest is replaced only
// when the new identity is accepted; a blank phone signs them out.
func (c *cli) switchIdentity(ctx context.Context) {
	current := c.app.CurrentGuest()
	label := "Telefone (DDD + número): "
	if current != nil {
		label = "Telefone (DDD + número, em branco para sair): "
	}
	raw, ok := c.prompt(label)
	if !ok {
		return
	}
	if raw == "" && current != nil {
		if err := c.app.SignOut(ctx); err != nil {
			c.report(err)
			return
		}
		c.printf("Você saiu.\n")
		return
	}
	contact := phone.Mask(raw)

	name, recognized, err := c.app.LookupContact(ctx, contact)
	if err != nil {
		c.report(err)
		return
	}
	if recognized {
		c.printf("Bem-vindo(a) de volta, %s!\n", name)
	} else {
		if name, ok = c.prompt("Nome completo: "); !ok {
			return
		}
	}

	res, err := c.app.Identify(ctx, models.IdentityRequest{Name: name, Contact: contact})
	if err != nil {
		c.report(err)
		return
	}
	c.printf("✅ Identificado como %s (%s)\n", res.Identity.Name, res.Identity.Contact)
}

func (c *cli) showEvent(ctx context.Context) {
	cfg, err := c.app.Event(ctx)
	if err != nil {
		c.report(err)
		return
	}
	c.printf("\n📅 Data: %s às %s\n", cfg.EventDate, cfg.EventTime)
	c.printf("📍 Local: %s\n", cfg.Location)
	if cfg.LocationLink != "" {
		c.printf("🗺️  %s\n", cfg.LocationLink)
	}
	c.printf("⏰ Confirme presença até %s\n", cfg.RSVPDeadline)

	if cfg.GoogleCalendarLink != "" {
		c.printf("\nAdicione à sua agenda:\n")
		if q, err := qrcode.New(cfg.GoogleCalendarLink, qrcode.Medium); err == nil {
			c.printf("%s\n", q.ToSmallString(false))
		}
		c.printf("%s\n", cfg.GoogleCalendarLink)
	}
}

func (c *cli) listGifts(ctx context.Context) {
	items, err := c.app.Gifts(ctx)
	if err != nil {
		c.report(err)
		return
	}
	guest := c.app.CurrentGuest()
	admin := c.app.IsAdmin()

	c.printf("\n🎁 Presentes (%d):\n", len(items))
	c.printf("%s\n", strings.Repeat("-", 60))
	for i, it := range items {
		status := "disponível"
		if it.IsReserved {
			status = "reservado"
			if admin || (guest != nil && guest.Name == it.ReservedBy) {
				status = "reservado por " + it.ReservedBy
			}
		}
		c.printf("%d. %s [%s]\n   %s\n", i+1, it.Name, status, it.Description)
		if it.Link != "" {
			c.printf("   %s\n", it.Link)
		}
	}
	c.printf("%s\n", strings.Repeat("-", 60))
}

// pickGift lists the items matching keep and returns the chosen id.
func (c *cli) pickGift(ctx context.Context, keep func(models.GiftItem) bool) (string, bool) {
	items, err := c.app.Gifts(ctx)
	if err != nil {
		c.report(err)
		return "", false
	}
	var choices []models.GiftItem
	for _, it := range items {
		if keep(it) {
			choices = append(choices, it)
		}
	}
	if len(choices) == 0 {
		c.printf("Nenhum presente disponível para esta ação.\n")
		return "", false
	}
	for i, it := range choices {
		c.printf("  %d. %s\n", i+1, it.Name)
	}
	answer, ok := c.prompt("Número do presente: ")
	if !ok {
		return "", false
	}
	n, err := strconv.Atoi(answer)
	if err != nil || n < 1 || n > len(choices) {
		c.printf("Opção inválida.\n")
		return "", false
	}
	return choices[n-1].ID, true
}

func (c *cli) reserveGift(ctx context.Context) {
	if c.app.CurrentGuest() == nil {
		c.printf("Identifique-se antes de reservar um presente.\n")
		return
	}
	id, ok := c.pickGift(ctx, models.GiftItem.Available)
	if !ok {
		return
	}
	if err := c.app.ReserveGift(ctx, id); err != nil {
		c.report(err)
		return
	}
	c.printf("✅ Presente reservado. Obrigado!\n")
}

func (c *cli) cancelReservation(ctx context.Context) {
	guest := c.app.CurrentGuest()
	admin := c.app.IsAdmin()
	if guest == nil && !admin {
		c.printf("Identifique-se antes de cancelar uma reserva.\n")
		return
	}
	id, ok := c.pickGift(ctx, func(it models.GiftItem) bool {
		return it.IsReserved && (admin || it.ReservedBy == guest.Name)
	})
	if !ok {
		return
	}
	if err := c.app.CancelReservation(ctx, id); err != nil {
		c.report(err)
		return
	}
	c.printf("✅ Reserva cancelada.\n")
}

func (c *cli) submitRSVP(ctx context.Context) {
	if c.app.CurrentGuest() == nil {
		c.printf("Identifique-se antes de confirmar presença.\n")
		return
	}
	open, err := c.app.RSVPOpen(ctx)
	if err != nil {
		c.report(err)
		return
	}
	if !open {
		c.printf("O prazo para confirmar presença já terminou.\n")
		return
	}
	if prev, found, err := c.app.MyRSVP(ctx); err == nil && found {
		c.printf("Sua resposta atual: %s\n", describeRSVP(prev))
	}

	answer, ok := c.prompt("Você vai comparecer? (s/n): ")
	if !ok {
		return
	}
	form := handler.RSVPForm{Attending: strings.HasPrefix(strings.ToLower(answer), "s")}
	if form.Attending {
		if form.Adults, ok = c.promptInt("Quantos adultos (1-10)? "); !ok {
			return
		}
		if form.Children, ok = c.promptInt("Quantas crianças (0-10)? "); !ok {
			return
		}
	}

	rec, err := c.app.SubmitRSVP(ctx, form)
	if err != nil {
		c.report(err)
		return
	}
	c.printf("✅ Resposta registrada: %s\n", describeRSVP(rec))
}

func (c *cli) promptInt(label string) (int, bool) {
	answer, ok := c.prompt(label)
	if !ok {
		return 0, false
	}
	if answer == "" {
		return 0, true
	}
	n, err := strconv.Atoi(answer)
	if err != nil {
		c.printf("Digite um número.\n")
		return 0, false
	}
	return n, true
}

func describeRSVP(rec models.AttendanceRecord) string {
	if !rec.Attending {
		return "não vai comparecer"
	}
	return fmt.Sprintf("vai comparecer com %d pessoa(s) (%d adultos, %d crianças)",
		rec.TotalGuests, rec.AdultsCount, rec.ChildrenCount)
}

func (c *cli) toggleAdmin(ctx context.Context) {
	if c.app.IsAdmin() {
		if err := c.app.Logout(ctx); err != nil {
			c.report(err)
			return
		}
		c.printf("Modo administrador encerrado.\n")
		return
	}
	pass, ok := c.prompt("Senha do administrador: ")
	if !ok {
		return
	}
	if err := c.app.Login(ctx, pass); err != nil {
		c.report(err)
		return
	}
	c.printf("✅ Modo administrador ativado.\n")
}

func (c *cli) addGift(ctx context.Context) {
	var req models.NewGiftRequest
	var ok bool
	if req.Name, ok = c.prompt("Nome: "); !ok {
		return
	}
	if req.Description, ok = c.prompt("Descrição: "); !ok {
		return
	}
	if req.Link, ok = c.prompt("Link da loja (opcional): "); !ok {
		return
	}
	imagePath, ok := c.prompt("Arquivo de imagem (opcional): ")
	if !ok {
		return
	}
	if imagePath != "" {
		dataURL, err := imageenc.EncodeFile(imagePath)
		if err != nil {
			c.report(err)
			return
		}
		req.ImageURL = dataURL
	}

	item, err := c.app.AddGift(ctx, req)
	if err != nil {
		c.report(err)
		return
	}
	c.printf("✅ Presente %q adicionado.\n", item.Name)
}

func (c *cli) removeGift(ctx context.Context) {
	id, ok := c.pickGift(ctx, func(models.GiftItem) bool { return true })
	if !ok {
		return
	}
	if err := c.app.RemoveGift(ctx, id); err != nil {
		c.report(err)
		return
	}
	c.printf("✅ Presente removido.\n")
}

func (c *cli) editEvent(ctx context.Context) {
	cfg, err := c.app.Event(ctx)
	if err != nil {
		c.report(err)
		return
	}
	fields := []struct {
		label string
		value *string
	}{
		{"Data", &cfg.EventDate},
		{"Horário", &cfg.EventTime},
		{"Prazo para confirmação (AAAA-MM-DD)", &cfg.RSVPDeadline},
		{"Local", &cfg.Location},
		{"Link do local", &cfg.LocationLink},
		{"Link do Google Agenda", &cfg.GoogleCalendarLink},
	}
	c.printf("Deixe em branco para manter o valor atual.\n")
	for _, f := range fields {
		answer, ok := c.prompt(fmt.Sprintf("%s [%s]: ", f.label, *f.value))
		if !ok {
			return
		}
		if answer != "" {
			*f.value = answer
		}
	}

	if _, err := c.app.UpdateEvent(ctx, cfg); err != nil {
		c.report(err)
		return
	}
	c.printf("✅ Evento atualizado.\n")
}

func (c *cli) guestList(ctx context.Context) {
	records, summary, err := c.app.GuestList(ctx)
	if err != nil {
		c.report(err)
		return
	}
	if len(records) == 0 {
		c.printf("\nNenhuma resposta ainda.\n")
		return
	}

	c.printf("\n📋 Convidados (%d respostas):\n", len(records))
	c.printf("%s\n", strings.Repeat("-", 60))
	for _, rec := range records {
		c.printf("Nome: %s\n", rec.Name)
		c.printf("Telefone: %s\n", rec.Contact)
		c.printf("Resposta: %s\n", describeRSVP(rec))
		c.printf("Enviado em: %s\n", rec.SubmittedAt.Local().Format("2006-01-02 15:04:05"))
		c.printf("%s\n", strings.Repeat("-", 60))
	}
	c.printf("Total de pessoas: %d (%d adultos, %d crianças)\n",
		summary.TotalAttendees, summary.TotalAdults, summary.TotalChildren)
	c.printf("Não vão comparecer: %d\n", summary.TotalDeclines)
}
