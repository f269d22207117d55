package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/salesdesk/internal/customer"
	"github.com/MrJamesThe3rd/salesdesk/internal/database"
	"github.com/MrJamesThe3rd/salesdesk/internal/query"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

const selectCustomerColumns = `
	cu.id, cu.name, cu.contact, cu.phone, cu.email, cu.address, cu.industry, cu.region,
	cu.bank_name, cu.bank_account, cu.remark, cu.creator_id, cu.created_at, cu.updated_at, cu.deleted_at
`

const fromCustomers = `
	FROM customers cu`

var customerList = database.ListQuery{Columns: selectCustomerColumns, From: fromCustomers, Alias: "cu"}

func scanCustomer(s database.Scanner) (*customer.Customer, error) {
	var c customer.Customer

	if err := s.Scan(
		&c.ID, &c.Name, &c.Contact, &c.Phone, &c.Email, &c.Address, &c.Industry, &c.Region,
		&c.BankName, &c.BankAccount, &c.Remark, &c.CreatorID, &c.CreatedAt, &c.UpdatedAt, &c.DeletedAt,
	); err != nil {
		return nil, err
	}

	return &c, nil
}

const insertCustomer = `
	INSERT INTO customers (
		name, contact, phone, email, address, industry, region, bank_name, bank_account, remark,
		creator_id, created_at
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW())
	RETURNING id, created_at
`

func insert(ctx context.Context, q database.Querier, c *customer.Customer) error {
	return q.QueryRowContext(ctx, insertCustomer,
		c.Name, c.Contact, c.Phone, c.Email, c.Address, c.Industry, c.Region, c.BankName, c.BankAccount, c.Remark,
		c.CreatorID,
	).Scan(&c.ID, &c.CreatedAt)
}

func (s *Store) CreateCustomer(ctx context.Context, c *customer.Customer) error {
	if err := insert(ctx, s.db, c); err != nil {
		return fmt.Errorf("creating customer: %w", err)
	}

	return nil
}

// CreateCustomers inserts every customer in one transaction: all rows land or none do.
func (s *Store) CreateCustomers(ctx context.Context, cs []*customer.Customer) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning import: %w", err)
	}
	defer tx.Rollback()

	for i, c := range cs {
		if err := insert(ctx, tx, c); err != nil {
			return fmt.Errorf("importing customer %d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing import: %w", err)
	}

	return nil
}

func (s *Store) GetCustomer(ctx context.Context, id uuid.UUID) (*customer.Customer, error) {
	query := `SELECT ` + selectCustomerColumns + fromCustomers + `
		WHERE cu.id = $1 AND cu.deleted_at IS NULL`

	c, err := scanCustomer(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, customer.ErrNotFound
		}

		return nil, fmt.Errorf("getting customer: %w", err)
	}

	return c, nil
}

func (s *Store) ListCustomers(ctx context.Context, filter customer.ListFilter) (query.Result[*customer.Customer], error) {
	b := query.New().
		When(filter.Search != "", func() query.Predicate { return query.Contains("cu.name", filter.Search) }).
		When(filter.Region != "", func() query.Predicate { return query.Eq("cu.region", filter.Region) })

	res, err := database.Paginate(ctx, s.db, customerList, b, filter.Page, scanCustomer)
	if err != nil {
		return query.Result[*customer.Customer]{}, fmt.Errorf("listing customers: %w", err)
	}

	return res, nil
}

func (s *Store) UpdateCustomer(ctx context.Context, c *customer.Customer) error {
	query := `
		UPDATE customers
		SET name = $1, contact = $2, phone = $3, email = $4, address = $5, industry = $6, region = $7,
			bank_name = $8, bank_account = $9, remark = $10, updated_at = NOW()
		WHERE id = $11 AND deleted_at IS NULL
		RETURNING updated_at
	`

	err := s.db.QueryRowContext(ctx, query,
		c.Name, c.Contact, c.Phone, c.Email, c.Address, c.Industry, c.Region,
		c.BankName, c.BankAccount, c.Remark, c.ID,
	).Scan(&c.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return customer.ErrNotFound
		}

		return fmt.Errorf("updating customer: %w", err)
	}

	return nil
}

// DeleteCustomer soft-deletes a customer unless a live contract references it.
func (s *Store) DeleteCustomer(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE customers SET deleted_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
		AND NOT EXISTS (SELECT 1 FROM contracts WHERE customer_id = $1 AND deleted_at IS NULL)
	`

	res, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deleting customer: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting customer: %w", err)
	}

	if n == 1 {
		return nil
	}

	// Nothing was deleted: either the customer is gone or contracts still reference it.
	if _, err := s.GetCustomer(ctx, id); err != nil {
		return err
	}

	return customer.ErrInUse
}
