package request

import (
	"testing"
	"time"

	"autopro_rental/internal/domain/entities"
)

func TestPaymentCreateRequest_ToCommand(t *testing.T) {
	date := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	r := PaymentCreateRequest{
		Amount:        150.50,
		PaymentDate:   date,
		PaymentMethod: " check ",
		Reference:     " CHQ-42 ",
		Notes:         "acompte",
	}

	cmd := r.ToCommand()
	if cmd.Amount != 150.50 {
		t.Fatalf("expected amount 150.50, got %v", cmd.Amount)
	}
	if !cmd.PaymentDate.Equal(date) {
		t.Fatalf("expected payment date kept, got %v", cmd.PaymentDate)
	}
	if cmd.PaymentMethod != entities.PaymentMethodCheck {
		t.Fatalf("expected trimmed check method, got %q", cmd.PaymentMethod)
	}
	if cmd.Reference != "CHQ-42" {
		t.Fatalf("expected trimmed reference, got %q", cmd.Reference)
	}
}

func TestPaymentCreateRequest_ToCommandDefaultsDate(t *testing.T) {
	before := time.Now().UTC()
	cmd := PaymentCreateRequest{Amount: 10, PaymentMethod: "bank"}.ToCommand()
	after := time.Now().UTC()

	if cmd.PaymentDate.Before(before) || cmd.PaymentDate.After(after) {
		t.Fatalf("expected payment date defaulted to now, got %v", cmd.PaymentDate)
	}
}

func TestMarkPaidRequest_ResolveMethod(t *testing.T) {
	if got := (MarkPaidRequest{}).ResolveMethod(); got != entities.PaymentMethodBank {
		t.Fatalf("expected bank default, got %q", got)
	}
	if got := (MarkPaidRequest{PaymentMethod: " cash "}).ResolveMethod(); got != entities.PaymentMethodCash {
		t.Fatalf("expected cash, got %q", got)
	}
}
