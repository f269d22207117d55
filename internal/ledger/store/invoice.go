package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/salesdesk/internal/database"
	"github.com/MrJamesThe3rd/salesdesk/internal/ledger"
	"github.com/MrJamesThe3rd/salesdesk/internal/query"
)

const selectInvoiceColumns = `
	i.id, i.contract_id, c.no, i.no, i.product_name, i.invoice_type, i.product_amount, i.amount,
	i.issue_date, i.remark, i.creator_id, i.created_at, i.updated_at
`

const fromInvoices = `
	FROM invoices i
	JOIN contracts c ON c.id = i.contract_id`

var invoiceList = database.ListQuery{Columns: selectInvoiceColumns, From: fromInvoices, Alias: "i"}

func scanInvoice(s database.Scanner) (*ledger.Invoice, error) {
	var inv ledger.Invoice

	if err := s.Scan(
		&inv.ID, &inv.ContractID, &inv.ContractNo, &inv.No, &inv.ProductName, &inv.InvoiceType, &inv.ProductAmount, &inv.Amount,
		&inv.IssueDate, &inv.Remark, &inv.CreatorID, &inv.CreatedAt, &inv.UpdatedAt,
	); err != nil {
		return nil, err
	}

	return &inv, nil
}

func getInvoice(ctx context.Context, q database.Querier, query string, args ...any) (*ledger.Invoice, error) {
	inv, err := scanInvoice(q.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ledger.ErrInvoiceNotFound
		}

		return nil, fmt.Errorf("getting invoice: %w", err)
	}

	return inv, nil
}

func (s *Store) GetInvoice(ctx context.Context, id uuid.UUID) (*ledger.Invoice, error) {
	return getInvoice(ctx, s.db, `SELECT `+selectInvoiceColumns+fromInvoices+`
		WHERE i.id = $1 AND i.deleted_at IS NULL`, id)
}

func (s *Store) ListInvoices(ctx context.Context, filter ledger.InvoiceFilter) (query.Result[*ledger.Invoice], error) {
	b := query.New().
		When(filter.ContractID != nil, func() query.Predicate { return query.Eq("i.contract_id", *filter.ContractID) }).
		When(filter.ContractNo != "", func() query.Predicate { return query.Contains("c.no", filter.ContractNo) }).
		When(filter.Search != "", func() query.Predicate {
			return query.Any(
				query.Contains("i.no", filter.Search),
				query.Contains("i.product_name", filter.Search),
				query.Contains("i.invoice_type", filter.Search),
			)
		})

	res, err := database.Paginate(ctx, s.db, invoiceList, b, filter.Page, scanInvoice)
	if err != nil {
		return query.Result[*ledger.Invoice]{}, fmt.Errorf("listing invoices: %w", err)
	}

	return res, nil
}

func (t *contractTx) CreateInvoice(ctx context.Context, inv *ledger.Invoice) error {
	query := `
		INSERT INTO invoices (
			contract_id, no, product_name, invoice_type, product_amount, amount, issue_date, remark,
			creator_id, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW())
		RETURNING id, created_at
	`

	err := t.SQL().QueryRowContext(ctx, query,
		t.Contract().ID, inv.No, inv.ProductName, inv.InvoiceType, inv.ProductAmount, inv.Amount, inv.IssueDate, inv.Remark,
		inv.CreatorID,
	).Scan(&inv.ID, &inv.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating invoice: %w", err)
	}

	return nil
}

func (t *contractTx) LockedInvoice(ctx context.Context, id uuid.UUID) (*ledger.Invoice, error) {
	return getInvoice(ctx, t.SQL(), `SELECT `+selectInvoiceColumns+fromInvoices+`
		WHERE i.id = $1 AND i.contract_id = $2 AND i.deleted_at IS NULL`, id, t.Contract().ID)
}

func (t *contractTx) UpdateInvoice(ctx context.Context, inv *ledger.Invoice) error {
	query := `
		UPDATE invoices
		SET no = $1, product_name = $2, invoice_type = $3, product_amount = $4, amount = $5,
			issue_date = $6, remark = $7, updated_at = NOW()
		WHERE id = $8 AND contract_id = $9 AND deleted_at IS NULL
	`

	res, err := t.SQL().ExecContext(ctx, query,
		inv.No, inv.ProductName, inv.InvoiceType, inv.ProductAmount, inv.Amount,
		inv.IssueDate, inv.Remark, inv.ID, t.Contract().ID,
	)
	if err != nil {
		return fmt.Errorf("updating invoice: %w", err)
	}

	return database.ExpectOne(res, ledger.ErrInvoiceNotFound)
}

func (t *contractTx) DeleteInvoice(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE invoices SET deleted_at = NOW() WHERE id = $1 AND contract_id = $2 AND deleted_at IS NULL`

	res, err := t.SQL().ExecContext(ctx, query, id, t.Contract().ID)
	if err != nil {
		return fmt.Errorf("deleting invoice: %w", err)
	}

	return database.ExpectOne(res, ledger.ErrInvoiceNotFound)
}
