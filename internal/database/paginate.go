package database

import (
	"context"
	"fmt"

	"github.com/MrJamesThe3rd/salesdesk/internal/query"
)

// Scanner is satisfied by both *sql.Row and *sql.Rows.
type Scanner interface {
	Scan(dest ...any) error
}

// ListQuery describes a soft-deletable list: columns is the select list, from the FROM/JOIN
// part, and alias the table whose deleted_at and created_at drive filtering and ordering.
type ListQuery struct {
	Columns string
	From    string
	Alias   string
}

// Paginate runs the count and page queries of a filtered list, newest first.
func Paginate[T any](
	ctx context.Context,
	q Querier,
	lq ListQuery,
	b *query.Builder,
	page query.Page,
	scan func(Scanner) (T, error),
) (query.Result[T], error) {
	where, args := b.Build(1)
	filter := ` WHERE ` + lq.Alias + `.deleted_at IS NULL` + where

	var total int
	if err := q.QueryRowContext(ctx, `SELECT COUNT(*) `+lq.From+filter, args...).Scan(&total); err != nil {
		return query.Result[T]{}, fmt.Errorf("counting rows: %w", err)
	}

	page = page.Normalize()
	listQuery := `SELECT ` + lq.Columns + lq.From + filter +
		fmt.Sprintf(" ORDER BY %s.created_at DESC LIMIT $%d OFFSET $%d", lq.Alias, len(args)+1, len(args)+2)

	rows, err := q.QueryContext(ctx, listQuery, append(args, page.Limit(), page.Offset())...)
	if err != nil {
		return query.Result[T]{}, fmt.Errorf("listing rows: %w", err)
	}
	defer rows.Close()

	var items []T

	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return query.Result[T]{}, fmt.Errorf("scanning row: %w", err)
		}

		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return query.Result[T]{}, fmt.Errorf("iterating rows: %w", err)
	}

	return query.NewResult(items, page, total), nil
}

// ExpectOne reports notFound when an UPDATE or DELETE touched no row.
func ExpectOne(res interface{ RowsAffected() (int64, error) }, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("reading affected rows: %w", err)
	}

	if n == 0 {
		return notFound
	}

	return nil
}
