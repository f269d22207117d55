package contract

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/salesdesk/internal/progress"
	"github.com/MrJamesThe3rd/salesdesk/internal/query"
	"github.com/MrJamesThe3rd/salesdesk/internal/validation"
)

const maxRecomputeAttempts = 3

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=contract
type Repository interface {
	CreateContract(ctx context.Context, c *Contract) error
	GetContract(ctx context.Context, id uuid.UUID) (*Contract, error)
	ListContracts(ctx context.Context, filter ListFilter) (query.Result[*Contract], error)
	DeleteContract(ctx context.Context, id uuid.UUID) error

	// LoadLedger returns the contract (including its LedgerVersion) and its ledger set
	// without taking locks.
	LoadLedger(ctx context.Context, id uuid.UUID) (*Contract, progress.Set, error)
	// SaveDerived writes d only if the contract's ledger version still equals version,
	// returning ErrStaleRead otherwise.
	SaveDerived(ctx context.Context, id uuid.UUID, d progress.Derived, version int64) error

	// BeginContract starts a unit of work holding the contract's row lock.
	BeginContract(ctx context.Context, id uuid.UUID) (Tx, error)
}

// Tx is a unit of work on one locked contract. Ledger stores extend it with their own writes
// so that a ledger mutation and the recomputed figures commit together.
type Tx interface {
	Contract() *Contract
	UpdateAuthored(ctx context.Context, c *Contract) error
	UpdateStatus(ctx context.Context, status Status) error
	LedgerSet(ctx context.Context) (progress.Set, error)
	SaveDerived(ctx context.Context, d progress.Derived) error
	Commit() error
	Rollback() error
}

// SnapshotCache holds contract read models between writes. Implementations swallow their own
// failures: a cache miss must never fail a request.
type SnapshotCache interface {
	Get(ctx context.Context, id uuid.UUID) (*Contract, bool)
	Set(ctx context.Context, c *Contract)
	Delete(ctx context.Context, id uuid.UUID)
}

type nopCache struct{}

func (nopCache) Get(context.Context, uuid.UUID) (*Contract, bool) { return nil, false }
func (nopCache) Set(context.Context, *Contract)                   {}
func (nopCache) Delete(context.Context, uuid.UUID)                {}

type Service struct {
	repo   Repository
	cache  SnapshotCache
	policy CompletionPolicy
}

type Option func(*Service)

func WithCache(c SnapshotCache) Option {
	return func(s *Service) {
		if c != nil {
			s.cache = c
		}
	}
}

func WithCompletionPolicy(p CompletionPolicy) Option {
	return func(s *Service) { s.policy = p }
}

func NewService(repo Repository, opts ...Option) *Service {
	s := &Service{repo: repo, cache: nopCache{}, policy: CompletionWarn}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

type CreateParams struct {
	No            string          `json:"no" validate:"required,max=64"`
	ProductName   string          `json:"product_name" validate:"required"`
	CustomerID    uuid.UUID       `json:"customer" validate:"required"`
	UnitPrice     decimal.Decimal `json:"unit_price" validate:"gt=0"`
	TotalQuantity int64           `json:"total_quantity" validate:"gt=0"`
	SignDate      time.Time       `json:"sign_date" validate:"required"`
	Remark        string          `json:"remark"`
	CreatorID     *uuid.UUID      `json:"-"`
}

type UpdateParams struct {
	No            *string          `json:"no,omitempty" validate:"omitempty,min=1,max=64"`
	ProductName   *string          `json:"product_name,omitempty" validate:"omitempty,min=1"`
	CustomerID    *uuid.UUID       `json:"customer,omitempty"`
	UnitPrice     *decimal.Decimal `json:"unit_price,omitempty" validate:"omitempty,gt=0"`
	TotalQuantity *int64           `json:"total_quantity,omitempty" validate:"omitempty,gt=0"`
	SignDate      *time.Time       `json:"sign_date,omitempty"`
	Remark        *string          `json:"remark,omitempty"`
}

type ListFilter struct {
	Search     string
	Status     *Status
	CustomerID *uuid.UUID
	Page       query.Page
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Contract, error) {
	if err := validation.Struct(params); err != nil {
		return nil, err
	}

	c := &Contract{
		No:            params.No,
		ProductName:   params.ProductName,
		CustomerID:    params.CustomerID,
		UnitPrice:     params.UnitPrice,
		TotalQuantity: params.TotalQuantity,
		SignDate:      params.SignDate,
		Remark:        params.Remark,
		Status:        StatusExecuting,
		CreatorID:     params.CreatorID,
	}
	c.Derived = progress.Compute(c.Terms(), progress.Set{})

	if err := s.repo.CreateContract(ctx, c); err != nil {
		return nil, err
	}

	return c, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Contract, error) {
	if c, ok := s.cache.Get(ctx, id); ok {
		return c, nil
	}

	c, err := s.repo.GetContract(ctx, id)
	if err != nil {
		return nil, err
	}

	s.cache.Set(ctx, c)

	return c, nil
}

func (s *Service) List(ctx context.Context, filter ListFilter) (query.Result[*Contract], error) {
	if filter.Status != nil && !filter.Status.Valid() {
		return query.Result[*Contract]{}, validation.Field("status", "must be one of executing completed cancelled")
	}

	return s.repo.ListContracts(ctx, filter)
}

// Options lists the executing contracts new ledger entries can be recorded against.
func (s *Service) Options(ctx context.Context) ([]*Contract, error) {
	executing := StatusExecuting

	res, err := s.repo.ListContracts(ctx, ListFilter{
		Status: &executing,
		Page:   query.Page{Number: 1, Size: query.MaxPageSize},
	})
	if err != nil {
		return nil, err
	}

	return res.Items, nil
}

// Update changes authored fields and recomputes the figures in the same transaction, so a
// price or quantity change is never visible with stale totals.
func (s *Service) Update(ctx context.Context, id uuid.UUID, params UpdateParams) (*Contract, error) {
	if err := validation.Struct(params); err != nil {
		return nil, err
	}

	tx, err := s.repo.BeginContract(ctx, id)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	c := tx.Contract()
	applyUpdate(c, params)

	if err := tx.UpdateAuthored(ctx, c); err != nil {
		return nil, err
	}

	if err := Refresh(ctx, tx); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing contract update: %w", err)
	}

	s.cache.Delete(ctx, id)

	return c, nil
}

func applyUpdate(c *Contract, p UpdateParams) {
	if p.No != nil {
		c.No = *p.No
	}

	if p.ProductName != nil {
		c.ProductName = *p.ProductName
	}

	if p.CustomerID != nil {
		c.CustomerID = *p.CustomerID
	}

	if p.UnitPrice != nil {
		c.UnitPrice = *p.UnitPrice
	}

	if p.TotalQuantity != nil {
		c.TotalQuantity = *p.TotalQuantity
	}

	if p.SignDate != nil {
		c.SignDate = *p.SignDate
	}

	if p.Remark != nil {
		c.Remark = *p.Remark
	}
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.DeleteContract(ctx, id); err != nil {
		return err
	}

	s.cache.Delete(ctx, id)

	return nil
}

// TransitionResult carries the updated contract and, under the warn policy, a warning when a
// contract was completed before full execution.
type TransitionResult struct {
	Contract *Contract
	Warning  string
}

// Transition moves a contract to a new status on explicit user request. Progress never
// changes status by itself.
func (s *Service) Transition(ctx context.Context, id uuid.UUID, to Status) (*TransitionResult, error) {
	if !to.Valid() {
		return nil, validation.Field("status", "must be one of executing completed cancelled")
	}

	tx, err := s.repo.BeginContract(ctx, id)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	c := tx.Contract()
	if !c.Status.CanTransition(to) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, c.Status, to)
	}

	result := &TransitionResult{Contract: c}

	if to == StatusCompleted && c.Derived.ExecutionPercent.LessThan(decimal.NewFromInt(100)) {
		if s.policy == CompletionBlock {
			return nil, fmt.Errorf("%w: execution at %s%%", ErrIncompleteExecution, progress.Percent(c.Derived.ExecutionPercent))
		}

		result.Warning = fmt.Sprintf("contract completed at %s%% execution", progress.Percent(c.Derived.ExecutionPercent))
	}

	if err := tx.UpdateStatus(ctx, to); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing status change: %w", err)
	}

	c.Status = to
	s.cache.Delete(ctx, id)

	return result, nil
}

// Recompute rebuilds a contract's figures from its current ledger. It reads without locking
// and writes conditionally on the ledger version; when the ledger moves underneath it, it
// starts over, and after maxRecomputeAttempts it falls back to the locked path. ErrStaleRead
// never reaches the caller.
func (s *Service) Recompute(ctx context.Context, id uuid.UUID) (*Contract, error) {
	for attempt := 1; attempt <= maxRecomputeAttempts; attempt++ {
		c, set, err := s.repo.LoadLedger(ctx, id)
		if err != nil {
			return nil, err
		}

		d := progress.Compute(c.Terms(), set)

		err = s.repo.SaveDerived(ctx, id, d, c.LedgerVersion)
		if err == nil {
			c.Derived = d
			c.LedgerVersion++
			s.cache.Delete(ctx, id)

			return c, nil
		}

		if !errors.Is(err, ErrStaleRead) {
			return nil, err
		}

		slog.Warn("stale ledger read, recomputing", "contract_id", id, "attempt", attempt)
	}

	tx, err := s.repo.BeginContract(ctx, id)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	if err := Refresh(ctx, tx); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing recompute: %w", err)
	}

	s.cache.Delete(ctx, id)

	return tx.Contract(), nil
}

// CheckRemaining is the advisory pre-submit check for a proposed invoice or receipt amount.
// It returns what is left for that kind, and a *progress.OverLimitError when the amount
// does not fit.
func (s *Service) CheckRemaining(ctx context.Context, id uuid.UUID, amount decimal.Decimal, kind progress.Kind) (decimal.Decimal, error) {
	if !kind.Valid() {
		return decimal.Zero, validation.Field("kind", "must be one of invoice receipt")
	}

	if !amount.IsPositive() {
		return decimal.Zero, validation.Field("amount", "must be greater than 0")
	}

	c, err := s.Get(ctx, id)
	if err != nil {
		return decimal.Zero, err
	}

	return progress.Remaining(c.Derived, kind), progress.CheckRemaining(c.Derived, amount, kind)
}

// Refresh recomputes the locked contract's figures from the ledger as seen inside tx and
// stages the write. The caller commits.
func Refresh(ctx context.Context, tx Tx) error {
	set, err := tx.LedgerSet(ctx)
	if err != nil {
		return fmt.Errorf("reading ledger: %w", err)
	}

	c := tx.Contract()
	d := progress.Compute(c.Terms(), set)

	if err := tx.SaveDerived(ctx, d); err != nil {
		return err
	}

	c.Derived = d

	return nil
}
