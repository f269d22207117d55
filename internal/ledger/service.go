package ledger

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/salesdesk/internal/contract"
	"github.com/MrJamesThe3rd/salesdesk/internal/progress"
	"github.com/MrJamesThe3rd/salesdesk/internal/query"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=ledger
type Repository interface {
	GetShipment(ctx context.Context, id uuid.UUID) (*Shipment, error)
	ListShipments(ctx context.Context, filter ShipmentFilter) (query.Result[*Shipment], error)
	GetInvoice(ctx context.Context, id uuid.UUID) (*Invoice, error)
	ListInvoices(ctx context.Context, filter InvoiceFilter) (query.Result[*Invoice], error)
	GetReceipt(ctx context.Context, id uuid.UUID) (*Receipt, error)
	ListReceipts(ctx context.Context, filter ReceiptFilter) (query.Result[*Receipt], error)

	// BeginContract locks the owning contract. All ledger writes go through the returned tx.
	BeginContract(ctx context.Context, contractID uuid.UUID) (ContractTx, error)
}

// ContractTx extends a locked contract unit of work with ledger writes. Reads and writes of
// entries are scoped to the locked contract: an entry of another contract is not found.
type ContractTx interface {
	contract.Tx

	CreateShipment(ctx context.Context, s *Shipment) error
	LockedShipment(ctx context.Context, id uuid.UUID) (*Shipment, error)
	UpdateShipment(ctx context.Context, s *Shipment) error
	DeleteShipment(ctx context.Context, id uuid.UUID) error

	CreateInvoice(ctx context.Context, inv *Invoice) error
	LockedInvoice(ctx context.Context, id uuid.UUID) (*Invoice, error)
	UpdateInvoice(ctx context.Context, inv *Invoice) error
	DeleteInvoice(ctx context.Context, id uuid.UUID) error

	CreateReceipt(ctx context.Context, r *Receipt) error
	LockedReceipt(ctx context.Context, id uuid.UUID) (*Receipt, error)
	UpdateReceipt(ctx context.Context, r *Receipt) error
	DeleteReceipt(ctx context.Context, id uuid.UUID) error
}

type Service struct {
	repo          Repository
	cache         contract.SnapshotCache
	allowOverride bool
}

type Option func(*Service)

// WithCache sets the contract snapshot cache to invalidate after each committed write.
func WithCache(c contract.SnapshotCache) Option {
	return func(s *Service) {
		if c != nil {
			s.cache = c
		}
	}
}

// WithOverridePolicy controls whether callers may book invoices and receipts beyond what is
// left on the contract by setting Override.
func WithOverridePolicy(allow bool) Option {
	return func(s *Service) { s.allowOverride = allow }
}

func NewService(repo Repository, opts ...Option) *Service {
	s := &Service{repo: repo, cache: noCache{}, allowOverride: true}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

type noCache struct{}

func (noCache) Get(context.Context, uuid.UUID) (*contract.Contract, bool) { return nil, false }
func (noCache) Set(context.Context, *contract.Contract)                   {}
func (noCache) Delete(context.Context, uuid.UUID)                         {}

// mutate runs fn against the locked contract, recomputes the contract's figures from the
// ledger as fn left it and commits both together.
func (s *Service) mutate(ctx context.Context, contractID uuid.UUID, fn func(tx ContractTx) error) error {
	tx, err := s.repo.BeginContract(ctx, contractID)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}

	if err := contract.Refresh(ctx, tx); err != nil {
		return fmt.Errorf("recomputing contract: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing ledger change: %w", err)
	}

	s.cache.Delete(ctx, contractID)

	return nil
}

func requireExecuting(tx ContractTx) error {
	if c := tx.Contract(); c.Status != contract.StatusExecuting {
		return fmt.Errorf("%w: %s is %s", contract.ErrNotExecuting, c.No, c.Status)
	}

	return nil
}

// checkLimit verifies, under the contract lock, that proposed fits in what is left for kind.
// previous is the entry's amount before an update (zero on create) and does not count against
// it. Lowering an amount is always accepted.
func (s *Service) checkLimit(ctx context.Context, tx ContractTx, kind progress.Kind, previous, proposed decimal.Decimal, override bool) error {
	if override && s.allowOverride {
		return nil
	}

	if previous.IsPositive() && proposed.LessThanOrEqual(previous) {
		return nil
	}

	set, err := tx.LedgerSet(ctx)
	if err != nil {
		return fmt.Errorf("reading ledger: %w", err)
	}

	if previous.IsPositive() {
		set = set.Excluding(kind, previous)
	}

	d := progress.Compute(tx.Contract().Terms(), set)

	return progress.CheckRemaining(d, proposed, kind)
}
