// Package store reads the ledger set a contract's figures are computed from and writes the
// computed figures back. Both the contract and the ledger stores go through it so there is a
// single definition of "the current ledger".
package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/salesdesk/internal/database"
	"github.com/MrJamesThe3rd/salesdesk/internal/progress"
)

// A single statement, so the three ledgers come from one snapshot.
const ledgerSetQuery = `
	SELECT 'shipment', quantity::numeric FROM shipments WHERE contract_id = $1 AND deleted_at IS NULL
	UNION ALL
	SELECT 'invoice', amount FROM invoices WHERE contract_id = $1 AND deleted_at IS NULL
	UNION ALL
	SELECT 'receipt', amount FROM receipts WHERE contract_id = $1 AND deleted_at IS NULL
`

// LoadSet returns the live ledger set of a contract.
func LoadSet(ctx context.Context, q database.Querier, contractID uuid.UUID) (progress.Set, error) {
	rows, err := q.QueryContext(ctx, ledgerSetQuery, contractID)
	if err != nil {
		return progress.Set{}, fmt.Errorf("loading ledger set: %w", err)
	}
	defer rows.Close()

	var set progress.Set

	for rows.Next() {
		var (
			kind  string
			value decimal.Decimal
		)

		if err := rows.Scan(&kind, &value); err != nil {
			return progress.Set{}, fmt.Errorf("scanning ledger row: %w", err)
		}

		switch kind {
		case "shipment":
			set.ShipmentQuantities = append(set.ShipmentQuantities, value.IntPart())
		case "invoice":
			set.InvoiceAmounts = append(set.InvoiceAmounts, value)
		case "receipt":
			set.ReceiptAmounts = append(set.ReceiptAmounts, value)
		}
	}

	if err := rows.Err(); err != nil {
		return progress.Set{}, fmt.Errorf("iterating ledger rows: %w", err)
	}

	return set, nil
}

const saveDerivedQuery = `
	UPDATE contracts
	SET total_amount = $2, executed_quantity = $3, execution_percent = $4,
		receipted_amount = $5, receipt_percent = $6, debt_amount = $7, debt_percent = $8,
		invoiced_amount = $9, invoice_percent = $10, uninvoiced_amount = $11, uninvoiced_percent = $12,
		ledger_version = ledger_version + 1, updated_at = NOW()
	WHERE id = $1 AND deleted_at IS NULL`

// SaveDerived writes d onto the contract and bumps its ledger_version. When expectedVersion is
// non-nil the write only happens if ledger_version still matches; the returned bool reports
// whether a row was written.
func SaveDerived(ctx context.Context, q database.Querier, contractID uuid.UUID, d progress.Derived, expectedVersion *int64) (bool, error) {
	query := saveDerivedQuery
	args := []any{
		contractID,
		d.TotalAmount, d.ExecutedQuantity, d.ExecutionPercent,
		d.ReceiptedAmount, d.ReceiptPercent, d.DebtAmount, d.DebtPercent,
		d.InvoicedAmount, d.InvoicePercent, d.UninvoicedAmount, d.UninvoicedPercent,
	}

	if expectedVersion != nil {
		query += " AND ledger_version = $13"

		args = append(args, *expectedVersion)
	}

	res, err := q.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("saving derived fields: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("saving derived fields: %w", err)
	}

	return n == 1, nil
}
