package service

import (
	"context"
	"testing"

	"homewire_backend/platform/apperr"
)

type fakeNumberStore struct {
	taken map[string]bool
}

func (s *fakeNumberStore) ExistsByNumber(_ context.Context, number string) (bool, error) {
	return s.taken[number], nil
}

func TestNumberGenerator_ReturnsFirstFreeNumber(t *testing.T) {
	store := &fakeNumberStore{taken: map[string]bool{"10000001": true}}

	// The first draw collides, the second is free.
	draws := []int64{10000001, 10000002}
	i := 0
	gen := NewNumberGenerator(store, func() int64 {
		n := draws[i%len(draws)]
		i++
		return n
	})

	number, err := gen.Next(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if number != "10000002" {
		t.Fatalf("expected 10000002, got %q", number)
	}
}

func TestNumberGenerator_ExhaustionIsDistinctAndTransient(t *testing.T) {
	store := &fakeNumberStore{taken: map[string]bool{"10000001": true}}

	calls := 0
	gen := NewNumberGenerator(store, func() int64 {
		calls++
		return 10000001
	})

	_, err := gen.Next(context.Background())
	if err == nil {
		t.Fatal("expected exhaustion error")
	}
	if !apperr.Is(err, apperr.KindInternal) {
		t.Fatalf("exhaustion must be an internal (retryable) error, got %v", err)
	}
	if calls != 10 {
		t.Fatalf("expected exactly 10 attempts, got %d", calls)
	}
}

func TestNumberGenerator_DefaultRNGStaysInRange(t *testing.T) {
	store := &fakeNumberStore{taken: map[string]bool{}}
	gen := NewNumberGenerator(store, nil)

	for i := 0; i < 100; i++ {
		number, err := gen.Next(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(number) != 8 {
			t.Fatalf("expected an 8-digit number, got %q", number)
		}
		if number[0] == '0' {
			t.Fatalf("quote numbers must not have a leading zero, got %q", number)
		}
	}
}
