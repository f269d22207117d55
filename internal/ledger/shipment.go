package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/salesdesk/internal/query"
	"github.com/MrJamesThe3rd/salesdesk/internal/validation"
)

type CreateShipmentParams struct {
	ContractID         uuid.UUID       `json:"contract" validate:"required"`
	ProductName        string          `json:"product_name" validate:"required"`
	TrackingContractNo string          `json:"tracking_contract_no"`
	Date               time.Time       `json:"date" validate:"required"`
	Quantity           int64           `json:"quantity" validate:"gt=0"`
	LogisticsCompany   string          `json:"logistics_company"`
	ShipmentAddress    string          `json:"shipment_address"`
	DeliveryAddress    string          `json:"delivery_address"`
	Freight            decimal.Decimal `json:"freight" validate:"gte=0"`
	FreightStatus      FreightStatus   `json:"freight_status" validate:"omitempty,oneof=paid unpaid"`
	FreightDate        *time.Time      `json:"freight_date"`
	InvoiceStatus      InvoiceStatus   `json:"invoice_status" validate:"omitempty,oneof=issued unissued"`
	Remark             string          `json:"remark"`
	CreatorID          *uuid.UUID      `json:"-"`
}

// UpdateShipmentParams carries the fields to change. The owning contract cannot change.
type UpdateShipmentParams struct {
	ProductName        *string          `json:"product_name,omitempty" validate:"omitempty,min=1"`
	TrackingContractNo *string          `json:"tracking_contract_no,omitempty"`
	Date               *time.Time       `json:"date,omitempty"`
	Quantity           *int64           `json:"quantity,omitempty" validate:"omitempty,gt=0"`
	LogisticsCompany   *string          `json:"logistics_company,omitempty"`
	ShipmentAddress    *string          `json:"shipment_address,omitempty"`
	DeliveryAddress    *string          `json:"delivery_address,omitempty"`
	Freight            *decimal.Decimal `json:"freight,omitempty" validate:"omitempty,gte=0"`
	FreightStatus      *FreightStatus   `json:"freight_status,omitempty" validate:"omitempty,oneof=paid unpaid"`
	FreightDate        *time.Time       `json:"freight_date,omitempty"`
	InvoiceStatus      *InvoiceStatus   `json:"invoice_status,omitempty" validate:"omitempty,oneof=issued unissued"`
	Remark             *string          `json:"remark,omitempty"`
}

type ShipmentFilter struct {
	ContractID    *uuid.UUID
	ContractNo    string
	Search        string
	FreightStatus *FreightStatus
	InvoiceStatus *InvoiceStatus
	Page          query.Page
}

func (s *Service) CreateShipment(ctx context.Context, params CreateShipmentParams) (*Shipment, error) {
	if err := validation.Struct(params); err != nil {
		return nil, err
	}

	sh := &Shipment{
		ContractID:         params.ContractID,
		ProductName:        params.ProductName,
		TrackingContractNo: params.TrackingContractNo,
		Date:               params.Date,
		Quantity:           params.Quantity,
		LogisticsCompany:   params.LogisticsCompany,
		ShipmentAddress:    params.ShipmentAddress,
		DeliveryAddress:    params.DeliveryAddress,
		Freight:            params.Freight,
		FreightStatus:      params.FreightStatus,
		FreightDate:        params.FreightDate,
		InvoiceStatus:      params.InvoiceStatus,
		Remark:             params.Remark,
		CreatorID:          params.CreatorID,
	}

	if sh.FreightStatus == "" {
		sh.FreightStatus = FreightUnpaid
	}

	if sh.InvoiceStatus == "" {
		sh.InvoiceStatus = InvoiceUnissued
	}

	err := s.mutate(ctx, sh.ContractID, func(tx ContractTx) error {
		if err := requireExecuting(tx); err != nil {
			return err
		}

		sh.ContractNo = tx.Contract().No

		return tx.CreateShipment(ctx, sh)
	})
	if err != nil {
		return nil, err
	}

	return sh, nil
}

func (s *Service) GetShipment(ctx context.Context, id uuid.UUID) (*Shipment, error) {
	return s.repo.GetShipment(ctx, id)
}

func (s *Service) ListShipments(ctx context.Context, filter ShipmentFilter) (query.Result[*Shipment], error) {
	if filter.FreightStatus != nil && !filter.FreightStatus.Valid() {
		return query.Result[*Shipment]{}, validation.Field("freight_status", "must be one of paid unpaid")
	}

	if filter.InvoiceStatus != nil && !filter.InvoiceStatus.Valid() {
		return query.Result[*Shipment]{}, validation.Field("invoice_status", "must be one of issued unissued")
	}

	return s.repo.ListShipments(ctx, filter)
}

func (s *Service) UpdateShipment(ctx context.Context, id uuid.UUID, params UpdateShipmentParams) (*Shipment, error) {
	if err := validation.Struct(params); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetShipment(ctx, id)
	if err != nil {
		return nil, err
	}

	var updated *Shipment

	err = s.mutate(ctx, existing.ContractID, func(tx ContractTx) error {
		sh, err := tx.LockedShipment(ctx, id)
		if err != nil {
			return err
		}

		applyShipmentUpdate(sh, params)

		if err := tx.UpdateShipment(ctx, sh); err != nil {
			return err
		}

		updated = sh

		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

func applyShipmentUpdate(sh *Shipment, p UpdateShipmentParams) {
	if p.ProductName != nil {
		sh.ProductName = *p.ProductName
	}

	if p.TrackingContractNo != nil {
		sh.TrackingContractNo = *p.TrackingContractNo
	}

	if p.Date != nil {
		sh.Date = *p.Date
	}

	if p.Quantity != nil {
		sh.Quantity = *p.Quantity
	}

	if p.LogisticsCompany != nil {
		sh.LogisticsCompany = *p.LogisticsCompany
	}

	if p.ShipmentAddress != nil {
		sh.ShipmentAddress = *p.ShipmentAddress
	}

	if p.DeliveryAddress != nil {
		sh.DeliveryAddress = *p.DeliveryAddress
	}

	if p.Freight != nil {
		sh.Freight = *p.Freight
	}

	if p.FreightStatus != nil {
		sh.FreightStatus = *p.FreightStatus
	}

	if p.FreightDate != nil {
		sh.FreightDate = p.FreightDate
	}

	if p.InvoiceStatus != nil {
		sh.InvoiceStatus = *p.InvoiceStatus
	}

	if p.Remark != nil {
		sh.Remark = *p.Remark
	}
}

func (s *Service) DeleteShipment(ctx context.Context, id uuid.UUID) error {
	existing, err := s.repo.GetShipment(ctx, id)
	if err != nil {
		return err
	}

	return s.mutate(ctx, existing.ContractID, func(tx ContractTx) error {
		return tx.DeleteShipment(ctx, id)
	})
}
