package service

import (
	"context"
	"fmt"
	"math/rand"

	"homewire_backend/platform/apperr"
)

const (
	quoteNumberMin     = 10000000
	quoteNumberMax     = 99999999
	quoteNumberRetries = 10
)

// NumberStore answers whether a quote number is already taken.
type NumberStore interface {
	ExistsByNumber(ctx context.Context, number string) (bool, error)
}

// NumberGenerator produces unique 8-digit quote numbers. The existence check
// is best effort; the unique index on quote_number is the real guarantee.
type NumberGenerator struct {
	store NumberStore
	rng   func() int64
}

// NewNumberGenerator creates a generator backed by the given store. rng may
// be nil, in which case math/rand is used; tests inject a deterministic one.
func NewNumberGenerator(store NumberStore, rng func() int64) *NumberGenerator {
	if rng == nil {
		rng = func() int64 {
			return quoteNumberMin + rand.Int63n(quoteNumberMax-quoteNumberMin+1)
		}
	}
	return &NumberGenerator{store: store, rng: rng}
}

// Next returns a quote number not currently in use, retrying on collisions.
// Exhausting the retries yields a transient internal error; the caller may
// retry the whole submission.
func (g *NumberGenerator) Next(ctx context.Context) (string, error) {
	for attempt := 0; attempt < quoteNumberRetries; attempt++ {
		number := fmt.Sprintf("%d", g.rng())

		exists, err := g.store.ExistsByNumber(ctx, number)
		if err != nil {
			return "", err
		}
		if !exists {
			return number, nil
		}
	}
	return "", apperr.Internal("quote number space exhausted, retry the submission")
}
