package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/salesdesk/internal/progress"
	"github.com/MrJamesThe3rd/salesdesk/internal/query"
	"github.com/MrJamesThe3rd/salesdesk/internal/validation"
)

type CreateInvoiceParams struct {
	ContractID    uuid.UUID       `json:"contract" validate:"required"`
	No            string          `json:"no" validate:"required,max=64"`
	ProductName   string          `json:"product_name" validate:"required"`
	InvoiceType   string          `json:"invoice_type"`
	ProductAmount decimal.Decimal `json:"product_amount" validate:"gte=0"`
	Amount        decimal.Decimal `json:"amount" validate:"gt=0"`
	IssueDate     time.Time       `json:"issue_date" validate:"required"`
	Remark        string          `json:"remark"`
	// Override books the invoice even when it exceeds the uninvoiced amount, if policy allows.
	Override  bool       `json:"override"`
	CreatorID *uuid.UUID `json:"-"`
}

type UpdateInvoiceParams struct {
	No            *string          `json:"no,omitempty" validate:"omitempty,min=1,max=64"`
	ProductName   *string          `json:"product_name,omitempty" validate:"omitempty,min=1"`
	InvoiceType   *string          `json:"invoice_type,omitempty"`
	ProductAmount *decimal.Decimal `json:"product_amount,omitempty" validate:"omitempty,gte=0"`
	Amount        *decimal.Decimal `json:"amount,omitempty" validate:"omitempty,gt=0"`
	IssueDate     *time.Time       `json:"issue_date,omitempty"`
	Remark        *string          `json:"remark,omitempty"`
	Override      bool             `json:"override"`
}

type InvoiceFilter struct {
	ContractID *uuid.UUID
	ContractNo string
	Search     string
	Page       query.Page
}

func (s *Service) CreateInvoice(ctx context.Context, params CreateInvoiceParams) (*Invoice, error) {
	if err := validation.Struct(params); err != nil {
		return nil, err
	}

	inv := &Invoice{
		ContractID:    params.ContractID,
		No:            params.No,
		ProductName:   params.ProductName,
		InvoiceType:   params.InvoiceType,
		ProductAmount: params.ProductAmount,
		Amount:        params.Amount,
		IssueDate:     params.IssueDate,
		Remark:        params.Remark,
		CreatorID:     params.CreatorID,
	}

	err := s.mutate(ctx, inv.ContractID, func(tx ContractTx) error {
		if err := requireExecuting(tx); err != nil {
			return err
		}

		if err := s.checkLimit(ctx, tx, progress.KindInvoice, decimal.Zero, inv.Amount, params.Override); err != nil {
			return err
		}

		inv.ContractNo = tx.Contract().No

		return tx.CreateInvoice(ctx, inv)
	})
	if err != nil {
		return nil, err
	}

	return inv, nil
}

func (s *Service) GetInvoice(ctx context.Context, id uuid.UUID) (*Invoice, error) {
	return s.repo.GetInvoice(ctx, id)
}

func (s *Service) ListInvoices(ctx context.Context, filter InvoiceFilter) (query.Result[*Invoice], error) {
	return s.repo.ListInvoices(ctx, filter)
}

func (s *Service) UpdateInvoice(ctx context.Context, id uuid.UUID, params UpdateInvoiceParams) (*Invoice, error) {
	if err := validation.Struct(params); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetInvoice(ctx, id)
	if err != nil {
		return nil, err
	}

	var updated *Invoice

	err = s.mutate(ctx, existing.ContractID, func(tx ContractTx) error {
		inv, err := tx.LockedInvoice(ctx, id)
		if err != nil {
			return err
		}

		previous := inv.Amount
		applyInvoiceUpdate(inv, params)

		if err := s.checkLimit(ctx, tx, progress.KindInvoice, previous, inv.Amount, params.Override); err != nil {
			return err
		}

		if err := tx.UpdateInvoice(ctx, inv); err != nil {
			return err
		}

		updated = inv

		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

func applyInvoiceUpdate(inv *Invoice, p UpdateInvoiceParams) {
	if p.No != nil {
		inv.No = *p.No
	}

	if p.ProductName != nil {
		inv.ProductName = *p.ProductName
	}

	if p.InvoiceType != nil {
		inv.InvoiceType = *p.InvoiceType
	}

	if p.ProductAmount != nil {
		inv.ProductAmount = *p.ProductAmount
	}

	if p.Amount != nil {
		inv.Amount = *p.Amount
	}

	if p.IssueDate != nil {
		inv.IssueDate = *p.IssueDate
	}

	if p.Remark != nil {
		inv.Remark = *p.Remark
	}
}

func (s *Service) DeleteInvoice(ctx context.Context, id uuid.UUID) error {
	existing, err := s.repo.GetInvoice(ctx, id)
	if err != nil {
		return err
	}

	return s.mutate(ctx, existing.ContractID, func(tx ContractTx) error {
		return tx.DeleteInvoice(ctx, id)
	})
}
