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

type CreateReceiptParams struct {
	ContractID    uuid.UUID       `json:"contract" validate:"required"`
	ProductName   string          `json:"product_name" validate:"required"`
	Amount        decimal.Decimal `json:"amount" validate:"gt=0"`
	ProductAmount decimal.Decimal `json:"product_amount" validate:"gte=0"`
	ReceiptDate   time.Time       `json:"receipt_date" validate:"required"`
	Method        string          `json:"method"`
	Account       string          `json:"account"`
	Remark        string          `json:"remark"`
	// Override books the receipt even when it exceeds the outstanding debt, if policy allows.
	Override  bool       `json:"override"`
	CreatorID *uuid.UUID `json:"-"`
}

type UpdateReceiptParams struct {
	ProductName   *string          `json:"product_name,omitempty" validate:"omitempty,min=1"`
	Amount        *decimal.Decimal `json:"amount,omitempty" validate:"omitempty,gt=0"`
	ProductAmount *decimal.Decimal `json:"product_amount,omitempty" validate:"omitempty,gte=0"`
	ReceiptDate   *time.Time       `json:"receipt_date,omitempty"`
	Method        *string          `json:"method,omitempty"`
	Account       *string          `json:"account,omitempty"`
	Remark        *string          `json:"remark,omitempty"`
	Override      bool             `json:"override"`
}

type ReceiptFilter struct {
	ContractID *uuid.UUID
	ContractNo string
	Search     string
	Page       query.Page
}

func (s *Service) CreateReceipt(ctx context.Context, params CreateReceiptParams) (*Receipt, error) {
	if err := validation.Struct(params); err != nil {
		return nil, err
	}

	r := &Receipt{
		ContractID:    params.ContractID,
		ProductName:   params.ProductName,
		Amount:        params.Amount,
		ProductAmount: params.ProductAmount,
		ReceiptDate:   params.ReceiptDate,
		Method:        params.Method,
		Account:       params.Account,
		Remark:        params.Remark,
		CreatorID:     params.CreatorID,
	}

	err := s.mutate(ctx, r.ContractID, func(tx ContractTx) error {
		if err := requireExecuting(tx); err != nil {
			return err
		}

		if err := s.checkLimit(ctx, tx, progress.KindReceipt, decimal.Zero, r.Amount, params.Override); err != nil {
			return err
		}

		r.ContractNo = tx.Contract().No

		return tx.CreateReceipt(ctx, r)
	})
	if err != nil {
		return nil, err
	}

	return r, nil
}

func (s *Service) GetReceipt(ctx context.Context, id uuid.UUID) (*Receipt, error) {
	return s.repo.GetReceipt(ctx, id)
}

func (s *Service) ListReceipts(ctx context.Context, filter ReceiptFilter) (query.Result[*Receipt], error) {
	return s.repo.ListReceipts(ctx, filter)
}

func (s *Service) UpdateReceipt(ctx context.Context, id uuid.UUID, params UpdateReceiptParams) (*Receipt, error) {
	if err := validation.Struct(params); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetReceipt(ctx, id)
	if err != nil {
		return nil, err
	}

	var updated *Receipt

	err = s.mutate(ctx, existing.ContractID, func(tx ContractTx) error {
		r, err := tx.LockedReceipt(ctx, id)
		if err != nil {
			return err
		}

		previous := r.Amount
		applyReceiptUpdate(r, params)

		if err := s.checkLimit(ctx, tx, progress.KindReceipt, previous, r.Amount, params.Override); err != nil {
			return err
		}

		if err := tx.UpdateReceipt(ctx, r); err != nil {
			return err
		}

		updated = r

		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

func applyReceiptUpdate(r *Receipt, p UpdateReceiptParams) {
	if p.ProductName != nil {
		r.ProductName = *p.ProductName
	}

	if p.Amount != nil {
		r.Amount = *p.Amount
	}

	if p.ProductAmount != nil {
		r.ProductAmount = *p.ProductAmount
	}

	if p.ReceiptDate != nil {
		r.ReceiptDate = *p.ReceiptDate
	}

	if p.Method != nil {
		r.Method = *p.Method
	}

	if p.Account != nil {
		r.Account = *p.Account
	}

	if p.Remark != nil {
		r.Remark = *p.Remark
	}
}

func (s *Service) DeleteReceipt(ctx context.Context, id uuid.UUID) error {
	existing, err := s.repo.GetReceipt(ctx, id)
	if err != nil {
		return err
	}

	return s.mutate(ctx, existing.ContractID, func(tx ContractTx) error {
		return tx.DeleteReceipt(ctx, id)
	})
}
