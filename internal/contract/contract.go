package contract

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/salesdesk/internal/progress"
)

// Status represents the lifecycle state of a contract.
type Status string

const (
	StatusExecuting Status = "executing"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

func (s Status) Valid() bool {
	switch s {
	case StatusExecuting, StatusCompleted, StatusCancelled:
		return true
	}

	return false
}

// CanTransition reports whether a user may move a contract from s to to.
// Only executing contracts move, and completed/cancelled are terminal.
func (s Status) CanTransition(to Status) bool {
	return s == StatusExecuting && (to == StatusCompleted || to == StatusCancelled)
}

// CompletionPolicy decides what happens when a contract is completed before it is fully executed.
type CompletionPolicy string

const (
	CompletionWarn  CompletionPolicy = "warn"
	CompletionBlock CompletionPolicy = "block"
)

// Contract is a sales agreement with a customer: the aggregate root of its shipments,
// invoices and receipts.
type Contract struct {
	ID            uuid.UUID
	No            string
	ProductName   string
	CustomerID    uuid.UUID
	CustomerName  string // Loaded via JOIN
	UnitPrice     decimal.Decimal
	TotalQuantity int64
	SignDate      time.Time
	Remark        string
	Status        Status

	// Derived is recomputed from the ledger on every ledger mutation and never authored.
	Derived progress.Derived
	// LedgerVersion increases with every write of Derived.
	LedgerVersion int64

	CreatorID *uuid.UUID
	CreatedAt time.Time
	UpdatedAt *time.Time
	DeletedAt *time.Time
}

func (c *Contract) Terms() progress.Terms {
	return progress.Terms{UnitPrice: c.UnitPrice, TotalQuantity: c.TotalQuantity}
}
