package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	contractStore "github.com/MrJamesThe3rd/salesdesk/internal/contract/store"
	"github.com/MrJamesThe3rd/salesdesk/internal/ledger"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// contractTx adds ledger writes to a locked contract transaction.
type contractTx struct {
	*contractStore.Tx
}

func (s *Store) BeginContract(ctx context.Context, contractID uuid.UUID) (ledger.ContractTx, error) {
	tx, err := contractStore.Begin(ctx, s.db, contractID)
	if err != nil {
		return nil, err
	}

	return &contractTx{Tx: tx}, nil
}
