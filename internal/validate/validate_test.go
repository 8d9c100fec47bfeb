package validate

import (
	"errors"
	"testing"

	"event-rsvp/internal/apperr"
	"event-rsvp/internal/models"
)

func TestStructReportsEachField(t *testing.T) {
	err := Struct(models.IdentityRequest{Name: "Jo", Contact: "11912345678"})
	if !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	fields := apperr.FieldMessages(err)
	if fields["name"] != "deve ter pelo menos 3 caracteres" {
		t.Fatalf("name message = %q", fields["name"])
	}
	if fields["phone"] != "telefone deve estar no formato (11) 91234-5678" {
		t.Fatalf("phone message = %q", fields["phone"])
	}
}

func TestStructAcceptsValidRequest(t *testing.T) {
	if err := Struct(models.IdentityRequest{Name: "Maria Clara", Contact: "(11) 91234-5678"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestStructOptionalURL(t *testing.T) {
	req := models.NewGiftRequest{Name: "Panela", Description: "Panela de pressão"}
	if err := Struct(req); err != nil {
		t.Fatalf("empty link should pass: %v", err)
	}
	req.Link = "not a link"
	fields := apperr.FieldMessages(Struct(req))
	if fields["link"] != "link inválido" {
		t.Fatalf("link message = %q", fields["link"])
	}
}

func TestField(t *testing.T) {
	if err := Field("adults", 1, "min=1,max=10"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	fields := apperr.FieldMessages(Field("adults", 0, "min=1,max=10"))
	if fields["adults"] != "deve ser no mínimo 1" {
		t.Fatalf("adults=0 message = %q", fields["adults"])
	}
	fields = apperr.FieldMessages(Field("adults", 11, "min=1,max=10"))
	if fields["adults"] != "deve ser no máximo 10" {
		t.Fatalf("adults=11 message = %q", fields["adults"])
	}
}

func TestNewValidatorRegistersPhoneTag(t *testing.T) {
	val := newValidator()
	if err := val.Var("(11) 91234-5678", "phone"); err != nil {
		t.Fatalf("valid phone rejected: %v", err)
	}
	if err := val.Var("11912345678", "phone"); err == nil {
		t.Fatal("unmasked phone accepted")
	}
}
