package order

import (
	"fmt"
	"math"

	"marketplace/internal/pkg/errs"
)

// totalsEpsilon tolerates float rounding when checking the totals invariant.
const totalsEpsilon = 0.005

// Totals holds the monetary breakdown of an order. The invariant
// finalAmount = subtotal + shippingFee + taxes holds by construction;
// RestoreTotals re-checks it for rows coming back from storage.
type Totals struct {
	subtotal    float64
	shippingFee float64
	taxes       float64
	finalAmount float64

	isConstructed bool
}

// NewTotals creates totals from the component amounts, deriving finalAmount.
func NewTotals(subtotal, shippingFee, taxes float64) (Totals, error) {
	if subtotal < 0 {
		return Totals{}, errs.NewValueIsInvalidErrorWithCause(
			"subtotal", fmt.Errorf("%.2f is negative", subtotal))
	}
	if shippingFee < 0 {
		return Totals{}, errs.NewValueIsInvalidErrorWithCause(
			"shippingFee", fmt.Errorf("%.2f is negative", shippingFee))
	}
	if taxes < 0 {
		return Totals{}, errs.NewValueIsInvalidErrorWithCause(
			"taxes", fmt.Errorf("%.2f is negative", taxes))
	}

	return Totals{
		subtotal:      subtotal,
		shippingFee:   shippingFee,
		taxes:         taxes,
		finalAmount:   subtotal + shippingFee + taxes,
		isConstructed: true,
	}, nil
}

// RestoreTotals reconstructs totals from persistence and verifies the sum
// invariant. A stored finalAmount that disagrees with its components is a
// data defect, not a designed feature.
func RestoreTotals(subtotal, shippingFee, taxes, finalAmount float64) (Totals, error) {
	totals, err := NewTotals(subtotal, shippingFee, taxes)
	if err != nil {
		return Totals{}, err
	}
	if math.Abs(totals.finalAmount-finalAmount) > totalsEpsilon {
		return Totals{}, errs.NewValueIsInvalidErrorWithCause(
			"finalAmount", fmt.Errorf("%.2f does not equal %.2f + %.2f + %.2f",
				finalAmount, subtotal, shippingFee, taxes))
	}
	totals.finalAmount = finalAmount
	return totals, nil
}

// Subtotal returns the sum of item subtotals.
func (t Totals) Subtotal() float64 {
	return t.subtotal
}

// ShippingFee returns the delivery charge.
func (t Totals) ShippingFee() float64 {
	return t.shippingFee
}

// Taxes returns the tax amount.
func (t Totals) Taxes() float64 {
	return t.taxes
}

// FinalAmount returns the amount charged to the buyer.
func (t Totals) FinalAmount() float64 {
	return t.finalAmount
}
