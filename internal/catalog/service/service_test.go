package service

import (
	"context"
	"testing"

	"homewire_backend/internal/catalog/transport"
	"homewire_backend/platform/apperr"
)

// The self-reference and duplicate checks run before any catalog lookup, so
// they are testable without a database.

func TestValidateBOM_RejectsSelfReference(t *testing.T) {
	svc := New(nil)

	bom := []transport.BOMEntry{{ItemCode: "cat6-run", Quantity: 2}}
	err := svc.validateBOM(context.Background(), "cat6-run", bom)
	if err == nil {
		t.Fatal("expected self-referencing bill of materials to be rejected")
	}
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected a validation error, got %v", err)
	}
}

func TestValidateBOM_RejectsDuplicateReference(t *testing.T) {
	svc := New(nil)

	bom := []transport.BOMEntry{
		{ItemCode: "rj45-jack", Quantity: 2},
		{ItemCode: "wall-plate", Quantity: 1},
		{ItemCode: "rj45-jack", Quantity: 4},
	}
	err := svc.validateBOM(context.Background(), "cat6-run", bom)
	if err == nil {
		t.Fatal("expected duplicate references to be rejected")
	}
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected a validation error, got %v", err)
	}
}

func TestValidateBOM_AllowsEmpty(t *testing.T) {
	svc := New(nil)

	if err := svc.validateBOM(context.Background(), "cat6-run", nil); err != nil {
		t.Fatalf("empty bill of materials should pass, got %v", err)
	}
}
