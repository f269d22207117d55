package progress

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Kind identifies which contract budget a proposed amount draws on.
type Kind string

const (
	KindInvoice Kind = "invoice"
	KindReceipt Kind = "receipt"
)

func (k Kind) Valid() bool {
	return k == KindInvoice || k == KindReceipt
}

// OverLimitError is returned when a proposed invoice or receipt amount exceeds what is left
// on the contract.
type OverLimitError struct {
	Kind      Kind
	Proposed  decimal.Decimal
	Remaining decimal.Decimal
}

func (e *OverLimitError) Error() string {
	return fmt.Sprintf("%s amount %s exceeds remaining %s", e.Kind, Money(e.Proposed), Money(e.Remaining))
}

// Remaining returns the amount still available for the given kind: the debt amount for
// receipts and the uninvoiced amount for invoices. Both are floored at 0.
func Remaining(d Derived, kind Kind) decimal.Decimal {
	if kind == KindInvoice {
		return d.UninvoicedAmount
	}

	return d.DebtAmount
}

// CheckRemaining validates a proposed amount against the snapshot d.
// The check is advisory when run ahead of a write; callers re-run it under the contract lock.
func CheckRemaining(d Derived, proposed decimal.Decimal, kind Kind) error {
	remaining := Remaining(d, kind)
	if proposed.GreaterThan(remaining) {
		return &OverLimitError{Kind: kind, Proposed: proposed, Remaining: remaining}
	}

	return nil
}

// Excluding returns a copy of s with one entry of the given kind and amount removed.
// It lets an update be checked against what is left without the entry's own previous amount.
func (s Set) Excluding(kind Kind, amount decimal.Decimal) Set {
	out := s

	drop := func(values []decimal.Decimal) []decimal.Decimal {
		kept := make([]decimal.Decimal, 0, len(values))
		removed := false

		for _, v := range values {
			if !removed && v.Equal(amount) {
				removed = true
				continue
			}

			kept = append(kept, v)
		}

		return kept
	}

	switch kind {
	case KindInvoice:
		out.InvoiceAmounts = drop(s.InvoiceAmounts)
	case KindReceipt:
		out.ReceiptAmounts = drop(s.ReceiptAmounts)
	}

	return out
}
