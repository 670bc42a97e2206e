package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/SergeyBogomolovv/wholesale-order-service/internal/entities"
	"golang.org/x/sync/errgroup"
)

// SearchOrders runs the count and the page query concurrently and wraps the
// result into a page envelope.
func (s *OrderService) SearchOrders(ctx context.Context, q entities.OrderQuery) (entities.Page[entities.Order], error) {
	q, err := s.normalizeQuery(q)
	if err != nil {
		return entities.Page[entities.Order]{}, err
	}

	var (
		orders []entities.Order
		total  int
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		total, err = s.repo.CountOrders(gctx, q)
		return err
	})
	g.Go(func() error {
		var err error
		orders, err = s.repo.FindOrders(gctx, q)
		return err
	})
	if err := g.Wait(); err != nil {
		return entities.Page[entities.Order]{}, err
	}

	if orders == nil {
		orders = []entities.Order{}
	}
	return entities.NewPage(orders, total, q.Page, q.PageSize), nil
}

func (s *OrderService) normalizeQuery(q entities.OrderQuery) (entities.OrderQuery, error) {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize <= 0 {
		q.PageSize = s.cfg.DefaultPageSize
	}
	if s.cfg.MaxPageSize > 0 && q.PageSize > s.cfg.MaxPageSize {
		q.PageSize = s.cfg.MaxPageSize
	}

	if q.SortBy == "" {
		q.SortBy = entities.SortByCreatedAt
	}
	if q.SortOrder == "" {
		q.SortOrder = entities.SortDesc
	}
	if !q.SortBy.IsValid() {
		return q, fmt.Errorf("%w: unknown sort field %q", entities.ErrValidation, q.SortBy)
	}
	if !q.SortOrder.IsValid() {
		return q, fmt.Errorf("%w: unknown sort order %q", entities.ErrValidation, q.SortOrder)
	}

	if q.Status != "" && !q.Status.IsValid() {
		return q, fmt.Errorf("%w: unknown status %q", entities.ErrValidation, q.Status)
	}
	if q.From != nil && q.To != nil && q.From.After(*q.To) {
		return q, fmt.Errorf("%w: range start is after its end", entities.ErrValidation)
	}
	if q.MinAmount != nil && q.MaxAmount != nil && q.MinAmount.GreaterThan(*q.MaxAmount) {
		return q, fmt.Errorf("%w: min amount is greater than max amount", entities.ErrValidation)
	}

	q.Search = strings.TrimSpace(q.Search)
	q.Tags = normalizeTags(q.Tags)
	return q, nil
}
