package entities

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// AmountTolerance is the allowed gap between a declared total and the sum of line items.
var AmountTolerance = decimal.New(1, -2)

type Amounts struct {
	TotalBillAmount decimal.Decimal
	PendingAmount   decimal.Decimal
}

// Reconcile fills LineTotal for every item and checks the declared totals against them.
func Reconcile(items []LineItem, declaredTotal, declaredCollected decimal.Decimal) (Amounts, error) {
	if declaredTotal.IsNegative() || declaredCollected.IsNegative() {
		return Amounts{}, fmt.Errorf("%w: amounts must not be negative", ErrValidation)
	}

	if !isCents(declaredTotal) || !isCents(declaredCollected) {
		return Amounts{}, fmt.Errorf("%w: amounts must have at most 2 decimal places", ErrValidation)
	}

	computed := decimal.Zero
	for i := range items {
		if !isCents(items[i].UnitPrice) {
			return Amounts{}, fmt.Errorf("%w: unit price of %s must have at most 2 decimal places",
				ErrValidation, items[i].ProductRef)
		}
		items[i].LineTotal = items[i].UnitPrice.Mul(decimal.NewFromInt(int64(items[i].Quantity)))
		computed = computed.Add(items[i].LineTotal)
	}

	if computed.Sub(declaredTotal).Abs().GreaterThan(AmountTolerance) {
		return Amounts{}, fmt.Errorf("%w: declared %s, computed %s",
			ErrAmountMismatch, declaredTotal.StringFixed(2), computed.StringFixed(2))
	}
	// The computed total is what gets stored, so it bounds collection too.
	if declaredCollected.GreaterThan(declaredTotal) || declaredCollected.GreaterThan(computed) {
		return Amounts{}, fmt.Errorf("%w: collected %s, total %s",
			ErrOverCollection, declaredCollected.StringFixed(2), computed.StringFixed(2))
	}

	return Amounts{
		TotalBillAmount: computed,
		PendingAmount:   computed.Sub(declaredCollected),
	}, nil
}

// ApplyCollection sets the collected amount against the existing total and
// recomputes the pending balance. The total itself is never changed.
func (o *Order) ApplyCollection(collected decimal.Decimal) error {
	if collected.IsNegative() {
		return fmt.Errorf("%w: collected amount must not be negative", ErrValidation)
	}
	if !isCents(collected) {
		return fmt.Errorf("%w: collected amount must have at most 2 decimal places", ErrValidation)
	}
	if collected.GreaterThan(o.TotalBillAmount) {
		return fmt.Errorf("%w: collected %s, total %s",
			ErrOverCollection, collected.StringFixed(2), o.TotalBillAmount.StringFixed(2))
	}

	o.CollectedAmount = collected
	o.PendingAmount = o.TotalBillAmount.Sub(collected)
	return nil
}

// isCents reports whether d is representable in the store's NUMERIC(14, 2) columns.
func isCents(d decimal.Decimal) bool {
	return d.Equal(d.Round(2))
}
