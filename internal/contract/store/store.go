package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/salesdesk/internal/contract"
	"github.com/MrJamesThe3rd/salesdesk/internal/database"
	"github.com/MrJamesThe3rd/salesdesk/internal/progress"
	progressStore "github.com/MrJamesThe3rd/salesdesk/internal/progress/store"
	"github.com/MrJamesThe3rd/salesdesk/internal/query"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

const selectContractColumns = `
	c.id, c.no, c.product_name, c.customer_id, cu.name AS customer_name, c.unit_price, c.total_quantity,
	c.sign_date, c.remark, c.status,
	c.total_amount, c.executed_quantity, c.execution_percent, c.receipted_amount, c.receipt_percent,
	c.debt_amount, c.debt_percent, c.invoiced_amount, c.invoice_percent, c.uninvoiced_amount, c.uninvoiced_percent,
	c.ledger_version, c.creator_id, c.created_at, c.updated_at, c.deleted_at
`

const fromContracts = `
	FROM contracts c
	LEFT JOIN customers cu ON cu.id = c.customer_id`

// scanContract reads a row selected with selectContractColumns.
func scanContract(s database.Scanner) (*contract.Contract, error) {
	var (
		c            contract.Contract
		customerName sql.NullString
		status       string
	)

	d := &c.Derived

	if err := s.Scan(
		&c.ID, &c.No, &c.ProductName, &c.CustomerID, &customerName, &c.UnitPrice, &c.TotalQuantity,
		&c.SignDate, &c.Remark, &status,
		&d.TotalAmount, &d.ExecutedQuantity, &d.ExecutionPercent, &d.ReceiptedAmount, &d.ReceiptPercent,
		&d.DebtAmount, &d.DebtPercent, &d.InvoicedAmount, &d.InvoicePercent, &d.UninvoicedAmount, &d.UninvoicedPercent,
		&c.LedgerVersion, &c.CreatorID, &c.CreatedAt, &c.UpdatedAt, &c.DeletedAt,
	); err != nil {
		return nil, err
	}

	c.CustomerName = customerName.String
	c.Status = contract.Status(status)

	return &c, nil
}

func mapWriteError(op string, err error) error {
	switch {
	case database.IsUniqueViolation(err):
		return contract.ErrDuplicateNo
	case database.IsForeignKeyViolation(err):
		return contract.ErrUnknownCustomer
	}

	return fmt.Errorf("%s: %w", op, err)
}

func (s *Store) CreateContract(ctx context.Context, c *contract.Contract) error {
	query := `
		INSERT INTO contracts (
			no, product_name, customer_id, unit_price, total_quantity, sign_date, remark, status,
			total_amount, executed_quantity, execution_percent, receipted_amount, receipt_percent,
			debt_amount, debt_percent, invoiced_amount, invoice_percent, uninvoiced_amount, uninvoiced_percent,
			creator_id, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, NOW())
		RETURNING id, ledger_version, created_at
	`

	d := c.Derived

	err := s.db.QueryRowContext(ctx, query,
		c.No, c.ProductName, c.CustomerID, c.UnitPrice, c.TotalQuantity, c.SignDate, c.Remark, c.Status,
		d.TotalAmount, d.ExecutedQuantity, d.ExecutionPercent, d.ReceiptedAmount, d.ReceiptPercent,
		d.DebtAmount, d.DebtPercent, d.InvoicedAmount, d.InvoicePercent, d.UninvoicedAmount, d.UninvoicedPercent,
		c.CreatorID,
	).Scan(&c.ID, &c.LedgerVersion, &c.CreatedAt)
	if err != nil {
		return mapWriteError("creating contract", err)
	}

	return nil
}

func (s *Store) GetContract(ctx context.Context, id uuid.UUID) (*contract.Contract, error) {
	query := `SELECT ` + selectContractColumns + fromContracts + `
		WHERE c.id = $1 AND c.deleted_at IS NULL`

	c, err := scanContract(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, contract.ErrNotFound
		}

		return nil, fmt.Errorf("getting contract: %w", err)
	}

	return c, nil
}

func listPredicates(filter contract.ListFilter) *query.Builder {
	return query.New().
		When(filter.Search != "", func() query.Predicate {
			return query.Any(
				query.Contains("c.no", filter.Search),
				query.Contains("c.product_name", filter.Search),
			)
		}).
		When(filter.Status != nil, func() query.Predicate { return query.Eq("c.status", *filter.Status) }).
		When(filter.CustomerID != nil, func() query.Predicate { return query.Eq("c.customer_id", *filter.CustomerID) })
}

var contractList = database.ListQuery{Columns: selectContractColumns, From: fromContracts, Alias: "c"}

func (s *Store) ListContracts(ctx context.Context, filter contract.ListFilter) (query.Result[*contract.Contract], error) {
	res, err := database.Paginate(ctx, s.db, contractList, listPredicates(filter), filter.Page, scanContract)
	if err != nil {
		return query.Result[*contract.Contract]{}, fmt.Errorf("listing contracts: %w", err)
	}

	return res, nil
}

// DeleteContract soft-deletes a contract that has no live ledger entries. The contract row is
// locked first so a concurrent ledger insert cannot slip in between the check and the delete.
func (s *Store) DeleteContract(ctx context.Context, id uuid.UUID) error {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer dbTx.Rollback()

	var locked uuid.UUID

	err = dbTx.QueryRowContext(ctx,
		`SELECT id FROM contracts WHERE id = $1 AND deleted_at IS NULL FOR UPDATE`, id,
	).Scan(&locked)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return contract.ErrNotFound
		}

		return fmt.Errorf("locking contract: %w", err)
	}

	set, err := progressStore.LoadSet(ctx, dbTx, id)
	if err != nil {
		return err
	}

	if len(set.ShipmentQuantities)+len(set.InvoiceAmounts)+len(set.ReceiptAmounts) > 0 {
		return contract.ErrHasLedger
	}

	if _, err := dbTx.ExecContext(ctx, `UPDATE contracts SET deleted_at = NOW() WHERE id = $1`, id); err != nil {
		return fmt.Errorf("deleting contract: %w", err)
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}

func (s *Store) LoadLedger(ctx context.Context, id uuid.UUID) (*contract.Contract, progress.Set, error) {
	c, err := s.GetContract(ctx, id)
	if err != nil {
		return nil, progress.Set{}, err
	}

	set, err := progressStore.LoadSet(ctx, s.db, id)
	if err != nil {
		return nil, progress.Set{}, err
	}

	return c, set, nil
}

func (s *Store) SaveDerived(ctx context.Context, id uuid.UUID, d progress.Derived, version int64) error {
	written, err := progressStore.SaveDerived(ctx, s.db, id, d, &version)
	if err != nil {
		return err
	}

	if written {
		return nil
	}

	if _, err := s.GetContract(ctx, id); err != nil {
		return err
	}

	return contract.ErrStaleRead
}

func (s *Store) BeginContract(ctx context.Context, id uuid.UUID) (contract.Tx, error) {
	return Begin(ctx, s.db, id)
}
