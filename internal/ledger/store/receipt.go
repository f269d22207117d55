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

const selectReceiptColumns = `
	r.id, r.contract_id, c.no, r.product_name, r.amount, r.product_amount, r.receipt_date,
	r.method, r.account, r.remark, r.creator_id, r.created_at, r.updated_at
`

const fromReceipts = `
	FROM receipts r
	JOIN contracts c ON c.id = r.contract_id`

var receiptList = database.ListQuery{Columns: selectReceiptColumns, From: fromReceipts, Alias: "r"}

func scanReceipt(s database.Scanner) (*ledger.Receipt, error) {
	var r ledger.Receipt

	if err := s.Scan(
		&r.ID, &r.ContractID, &r.ContractNo, &r.ProductName, &r.Amount, &r.ProductAmount, &r.ReceiptDate,
		&r.Method, &r.Account, &r.Remark, &r.CreatorID, &r.CreatedAt, &r.UpdatedAt,
	); err != nil {
		return nil, err
	}

	return &r, nil
}

func getReceipt(ctx context.Context, q database.Querier, query string, args ...any) (*ledger.Receipt, error) {
	r, err := scanReceipt(q.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ledger.ErrReceiptNotFound
		}

		return nil, fmt.Errorf("getting receipt: %w", err)
	}

	return r, nil
}

func (s *Store) GetReceipt(ctx context.Context, id uuid.UUID) (*ledger.Receipt, error) {
	return getReceipt(ctx, s.db, `SELECT `+selectReceiptColumns+fromReceipts+`
		WHERE r.id = $1 AND r.deleted_at IS NULL`, id)
}

func (s *Store) ListReceipts(ctx context.Context, filter ledger.ReceiptFilter) (query.Result[*ledger.Receipt], error) {
	b := query.New().
		When(filter.ContractID != nil, func() query.Predicate { return query.Eq("r.contract_id", *filter.ContractID) }).
		When(filter.ContractNo != "", func() query.Predicate { return query.Contains("c.no", filter.ContractNo) }).
		When(filter.Search != "", func() query.Predicate {
			return query.Any(
				query.Contains("r.product_name", filter.Search),
				query.Contains("r.method", filter.Search),
				query.Contains("r.account", filter.Search),
			)
		})

	res, err := database.Paginate(ctx, s.db, receiptList, b, filter.Page, scanReceipt)
	if err != nil {
		return query.Result[*ledger.Receipt]{}, fmt.Errorf("listing receipts: %w", err)
	}

	return res, nil
}

func (t *contractTx) CreateReceipt(ctx context.Context, r *ledger.Receipt) error {
	query := `
		INSERT INTO receipts (
			contract_id, product_name, amount, product_amount, receipt_date, method, account, remark,
			creator_id, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW())
		RETURNING id, created_at
	`

	err := t.SQL().QueryRowContext(ctx, query,
		t.Contract().ID, r.ProductName, r.Amount, r.ProductAmount, r.ReceiptDate, r.Method, r.Account, r.Remark,
		r.CreatorID,
	).Scan(&r.ID, &r.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating receipt: %w", err)
	}

	return nil
}

func (t *contractTx) LockedReceipt(ctx context.Context, id uuid.UUID) (*ledger.Receipt, error) {
	return getReceipt(ctx, t.SQL(), `SELECT `+selectReceiptColumns+fromReceipts+`
		WHERE r.id = $1 AND r.contract_id = $2 AND r.deleted_at IS NULL`, id, t.Contract().ID)
}

func (t *contractTx) UpdateReceipt(ctx context.Context, r *ledger.Receipt) error {
	query := `
		UPDATE receipts
		SET product_name = $1, amount = $2, product_amount = $3, receipt_date = $4, method = $5,
			account = $6, remark = $7, updated_at = NOW()
		WHERE id = $8 AND contract_id = $9 AND deleted_at IS NULL
	`

	res, err := t.SQL().ExecContext(ctx, query,
		r.ProductName, r.Amount, r.ProductAmount, r.ReceiptDate, r.Method,
		r.Account, r.Remark, r.ID, t.Contract().ID,
	)
	if err != nil {
		return fmt.Errorf("updating receipt: %w", err)
	}

	return database.ExpectOne(res, ledger.ErrReceiptNotFound)
}

func (t *contractTx) DeleteReceipt(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE receipts SET deleted_at = NOW() WHERE id = $1 AND contract_id = $2 AND deleted_at IS NULL`

	res, err := t.SQL().ExecContext(ctx, query, id, t.Contract().ID)
	if err != nil {
		return fmt.Errorf("deleting receipt: %w", err)
	}

	return database.ExpectOne(res, ledger.ErrReceiptNotFound)
}
