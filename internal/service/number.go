package service

import (
	"context"
	"fmt"
	"time"

	"github.com/SergeyBogomolovv/wholesale-order-service/internal/entities"
)

type SequenceRepo interface {
	// LastOrderNumber returns the highest order number with the given prefix or "".
	LastOrderNumber(ctx context.Context, prefix string) (string, error)
}

type numberGenerator struct {
	repo SequenceRepo
	loc  *time.Location
	now  func() time.Time
}

// NewNumberGenerator issues ORD<YYYYMMDD><NNNN> numbers. The day is taken in loc.
func NewNumberGenerator(repo SequenceRepo, loc *time.Location) *numberGenerator {
	if loc == nil {
		loc = time.UTC
	}
	return &numberGenerator{
		repo: repo,
		loc:  loc,
		now:  time.Now,
	}
}

// Generate is not race-free on its own: two callers may get the same number.
// The insert is guarded by a unique index and retried by the caller.
func (g *numberGenerator) Generate(ctx context.Context) (string, error) {
	today := g.now().In(g.loc)
	prefix := entities.OrderNumberPrefix(today)

	last, err := g.repo.LastOrderNumber(ctx, prefix)
	if err != nil {
		return "", fmt.Errorf("failed to get last order number: %w", err)
	}

	seq := 1
	if last != "" {
		_, lastSeq, err := entities.ParseOrderNumber(last)
		if err != nil {
			return "", err
		}
		seq = lastSeq + 1
	}

	if seq > entities.MaxDailySequence {
		return "", fmt.Errorf("%w: order numbers for %s are exhausted", entities.ErrValidation, prefix)
	}
	return entities.FormatOrderNumber(today, seq), nil
}
