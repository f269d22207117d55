package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/salesdesk/internal/attachment"
	"github.com/MrJamesThe3rd/salesdesk/internal/database"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

const selectAttachmentColumns = `id, owner_kind, owner_id, filename, content_type, size, creator_id, created_at`

// ownerTables maps owner kinds to the table holding them. Values are fixed identifiers, never
// user input.
var ownerTables = map[attachment.OwnerKind]string{
	attachment.OwnerContract: "contracts",
	attachment.OwnerShipment: "shipments",
	attachment.OwnerInvoice:  "invoices",
	attachment.OwnerReceipt:  "receipts",
}

func scanAttachment(s database.Scanner) (*attachment.Attachment, error) {
	var (
		a    attachment.Attachment
		kind string
	)

	if err := s.Scan(&a.ID, &kind, &a.Owner.ID, &a.Filename, &a.ContentType, &a.Size, &a.CreatorID, &a.CreatedAt); err != nil {
		return nil, err
	}

	a.Owner.Kind = attachment.OwnerKind(kind)

	return &a, nil
}

func (s *Store) CreateAttachment(ctx context.Context, a *attachment.Attachment) error {
	query := `
		INSERT INTO attachments (id, owner_kind, owner_id, filename, content_type, size, creator_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
		RETURNING created_at
	`

	err := s.db.QueryRowContext(ctx, query,
		a.ID, string(a.Owner.Kind), a.Owner.ID, a.Filename, a.ContentType, a.Size, a.CreatorID,
	).Scan(&a.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating attachment: %w", err)
	}

	return nil
}

func (s *Store) GetAttachment(ctx context.Context, id uuid.UUID) (*attachment.Attachment, error) {
	query := `SELECT ` + selectAttachmentColumns + ` FROM attachments WHERE id = $1`

	a, err := scanAttachment(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, attachment.ErrNotFound
		}

		return nil, fmt.Errorf("getting attachment: %w", err)
	}

	return a, nil
}

func (s *Store) ListAttachments(ctx context.Context, owner attachment.Owner) ([]*attachment.Attachment, error) {
	query := `SELECT ` + selectAttachmentColumns + ` FROM attachments
		WHERE owner_kind = $1 AND owner_id = $2
		ORDER BY created_at ASC`

	rows, err := s.db.QueryContext(ctx, query, string(owner.Kind), owner.ID)
	if err != nil {
		return nil, fmt.Errorf("listing attachments: %w", err)
	}
	defer rows.Close()

	var out []*attachment.Attachment

	for rows.Next() {
		a, err := scanAttachment(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning attachment: %w", err)
		}

		out = append(out, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating attachments: %w", err)
	}

	return out, nil
}

func (s *Store) DeleteAttachment(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM attachments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting attachment: %w", err)
	}

	return database.ExpectOne(res, attachment.ErrNotFound)
}

func (s *Store) OwnerExists(ctx context.Context, owner attachment.Owner) (bool, error) {
	table, ok := ownerTables[owner.Kind]
	if !ok {
		return false, nil
	}

	var exists bool

	query := `SELECT EXISTS (SELECT 1 FROM ` + table + ` WHERE id = $1 AND deleted_at IS NULL)`
	if err := s.db.QueryRowContext(ctx, query, owner.ID).Scan(&exists); err != nil {
		return false, fmt.Errorf("checking attachment owner: %w", err)
	}

	return exists, nil
}
