package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/salesdesk/internal/contract"
	"github.com/MrJamesThe3rd/salesdesk/internal/progress"
	progressStore "github.com/MrJamesThe3rd/salesdesk/internal/progress/store"
)

// Tx holds a contract's row lock for the lifetime of a database transaction.
// It implements contract.Tx; the ledger store embeds it.
type Tx struct {
	tx       *sql.Tx
	contract *contract.Contract
}

// Begin opens a transaction and locks the contract row with SELECT ... FOR UPDATE.
func Begin(ctx context.Context, db *sql.DB, id uuid.UUID) (*Tx, error) {
	dbTx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning contract tx: %w", err)
	}

	query := `SELECT ` + selectContractColumns + fromContracts + `
		WHERE c.id = $1 AND c.deleted_at IS NULL
		FOR UPDATE OF c`

	c, err := scanContract(dbTx.QueryRowContext(ctx, query, id))
	if err != nil {
		dbTx.Rollback()

		if errors.Is(err, sql.ErrNoRows) {
			return nil, contract.ErrNotFound
		}

		return nil, fmt.Errorf("locking contract: %w", err)
	}

	return &Tx{tx: dbTx, contract: c}, nil
}

// SQL exposes the underlying transaction to stores that write alongside the contract.
func (t *Tx) SQL() *sql.Tx { return t.tx }

func (t *Tx) Contract() *contract.Contract { return t.contract }

func (t *Tx) Commit() error   { return t.tx.Commit() }
func (t *Tx) Rollback() error { return t.tx.Rollback() }

func (t *Tx) UpdateAuthored(ctx context.Context, c *contract.Contract) error {
	query := `
		UPDATE contracts
		SET no = $1, product_name = $2, customer_id = $3, unit_price = $4, total_quantity = $5,
			sign_date = $6, remark = $7, updated_at = NOW()
		WHERE id = $8
		RETURNING updated_at
	`

	err := t.tx.QueryRowContext(ctx, query,
		c.No, c.ProductName, c.CustomerID, c.UnitPrice, c.TotalQuantity, c.SignDate, c.Remark, t.contract.ID,
	).Scan(&c.UpdatedAt)
	if err != nil {
		return mapWriteError("updating contract", err)
	}

	var name sql.NullString
	if err := t.tx.QueryRowContext(ctx, `SELECT name FROM customers WHERE id = $1`, c.CustomerID).Scan(&name); err != nil {
		return fmt.Errorf("loading customer name: %w", err)
	}

	c.CustomerName = name.String

	return nil
}

func (t *Tx) UpdateStatus(ctx context.Context, status contract.Status) error {
	query := `UPDATE contracts SET status = $1, updated_at = NOW() WHERE id = $2`

	if _, err := t.tx.ExecContext(ctx, query, status, t.contract.ID); err != nil {
		return fmt.Errorf("updating status: %w", err)
	}

	return nil
}

func (t *Tx) LedgerSet(ctx context.Context) (progress.Set, error) {
	return progressStore.LoadSet(ctx, t.tx, t.contract.ID)
}

func (t *Tx) SaveDerived(ctx context.Context, d progress.Derived) error {
	written, err := progressStore.SaveDerived(ctx, t.tx, t.contract.ID, d, nil)
	if err != nil {
		return err
	}

	if !written {
		return contract.ErrNotFound
	}

	t.contract.LedgerVersion++

	return nil
}
