package progress

import (
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Terms are the authored contract fields the derived figures depend on.
type Terms struct {
	UnitPrice     decimal.Decimal
	TotalQuantity int64
}

// TotalAmount returns unit price × total quantity.
func (t Terms) TotalAmount() decimal.Decimal {
	return t.UnitPrice.Mul(decimal.NewFromInt(t.TotalQuantity))
}

// Set is the current ledger of a contract, reduced to the values that feed the aggregation.
// Order carries no meaning.
type Set struct {
	ShipmentQuantities []int64
	InvoiceAmounts     []decimal.Decimal
	ReceiptAmounts     []decimal.Decimal
}

// Derived holds the recomputed contract figures at full precision.
// Rounding happens only when values are rendered (see Money and Percent).
type Derived struct {
	TotalAmount       decimal.Decimal
	ExecutedQuantity  int64
	ExecutionPercent  decimal.Decimal
	ReceiptedAmount   decimal.Decimal
	ReceiptPercent    decimal.Decimal
	DebtAmount        decimal.Decimal
	DebtPercent       decimal.Decimal
	InvoicedAmount    decimal.Decimal
	InvoicePercent    decimal.Decimal
	UninvoicedAmount  decimal.Decimal
	UninvoicedPercent decimal.Decimal
}

// Compute derives every progress figure of a contract from its terms and the full ledger set.
// It is a pure function: the same inputs always give the same output, whatever order the
// ledger entries were recorded in.
func Compute(terms Terms, set Set) Derived {
	var d Derived

	d.TotalAmount = terms.TotalAmount()

	for _, q := range set.ShipmentQuantities {
		d.ExecutedQuantity += q
	}

	d.ReceiptedAmount = sum(set.ReceiptAmounts)
	d.InvoicedAmount = sum(set.InvoiceAmounts)

	d.ExecutionPercent = clamp(percentOf(decimal.NewFromInt(d.ExecutedQuantity), decimal.NewFromInt(terms.TotalQuantity)))

	d.ReceiptPercent = percentOf(d.ReceiptedAmount, d.TotalAmount)
	d.DebtAmount = floorZero(d.TotalAmount.Sub(d.ReceiptedAmount))
	d.DebtPercent = percentOf(d.DebtAmount, d.TotalAmount)

	d.InvoicePercent = percentOf(d.InvoicedAmount, d.TotalAmount)
	d.UninvoicedAmount = floorZero(d.TotalAmount.Sub(d.InvoicedAmount))

	d.UninvoicedPercent = decimal.Zero
	if d.TotalAmount.IsPositive() {
		d.UninvoicedPercent = hundred.Sub(d.InvoicePercent)
	}

	return d
}

// UninvoicedShare is uninvoiced_amount / total_amount × 100.
// It equals UninvoicedPercent until the contract is over-invoiced: UninvoicedPercent then goes
// negative while UninvoicedShare stops at 0.
func (d Derived) UninvoicedShare() decimal.Decimal {
	return percentOf(d.UninvoicedAmount, d.TotalAmount)
}

// OverReceipted reports whether receipts exceed the contract value.
func (d Derived) OverReceipted() bool {
	return d.ReceiptedAmount.GreaterThan(d.TotalAmount)
}

// OverInvoiced reports whether invoices exceed the contract value.
func (d Derived) OverInvoiced() bool {
	return d.InvoicedAmount.GreaterThan(d.TotalAmount)
}

// Money renders a monetary value with 2 decimal places.
func Money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// Percent renders a percentage with 1 decimal place.
func Percent(d decimal.Decimal) string {
	return d.StringFixed(1)
}

// percentOf returns part / whole × 100, or 0 when whole is not positive.
func percentOf(part, whole decimal.Decimal) decimal.Decimal {
	if !whole.IsPositive() {
		return decimal.Zero
	}

	return part.Div(whole).Mul(hundred)
}

func sum(values []decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(v)
	}

	return total
}

func floorZero(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}

	return d
}

func clamp(p decimal.Decimal) decimal.Decimal {
	if p.IsNegative() {
		return decimal.Zero
	}

	if p.GreaterThan(hundred) {
		return hundred
	}

	return p
}
