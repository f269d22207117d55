package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/salesdesk/internal/database"
	"github.com/MrJamesThe3rd/salesdesk/internal/ledger"
	"github.com/MrJamesThe3rd/salesdesk/internal/query"
)

const selectShipmentColumns = `
	s.id, s.contract_id, c.no, s.product_name, s.tracking_contract_no, s.date, s.quantity,
	s.logistics_company, s.shipment_address, s.delivery_address, s.freight, s.freight_status,
	s.freight_date, s.invoice_status, s.remark, s.creator_id, s.created_at, s.updated_at
`

const fromShipments = `
	FROM shipments s
	JOIN contracts c ON c.id = s.contract_id`

var shipmentList = database.ListQuery{Columns: selectShipmentColumns, From: fromShipments, Alias: "s"}

func scanShipment(s database.Scanner) (*ledger.Shipment, error) {
	var (
		sh            ledger.Shipment
		freightStatus string
		invoiceStatus string
	)

	if err := s.Scan(
		&sh.ID, &sh.ContractID, &sh.ContractNo, &sh.ProductName, &sh.TrackingContractNo, &sh.Date, &sh.Quantity,
		&sh.LogisticsCompany, &sh.ShipmentAddress, &sh.DeliveryAddress, &sh.Freight, &freightStatus,
		&sh.FreightDate, &invoiceStatus, &sh.Remark, &sh.CreatorID, &sh.CreatedAt, &sh.UpdatedAt,
	); err != nil {
		return nil, err
	}

	sh.FreightStatus = ledger.FreightStatus(freightStatus)
	sh.InvoiceStatus = ledger.InvoiceStatus(invoiceStatus)

	return &sh, nil
}

func getShipment(ctx context.Context, q database.Querier, query string, args ...any) (*ledger.Shipment, error) {
	sh, err := scanShipment(q.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ledger.ErrShipmentNotFound
		}

		return nil, fmt.Errorf("getting shipment: %w", err)
	}

	return sh, nil
}

func (s *Store) GetShipment(ctx context.Context, id uuid.UUID) (*ledger.Shipment, error) {
	return getShipment(ctx, s.db, `SELECT `+selectShipmentColumns+fromShipments+`
		WHERE s.id = $1 AND s.deleted_at IS NULL`, id)
}

func (s *Store) ListShipments(ctx context.Context, filter ledger.ShipmentFilter) (query.Result[*ledger.Shipment], error) {
	b := query.New().
		When(filter.ContractID != nil, func() query.Predicate { return query.Eq("s.contract_id", *filter.ContractID) }).
		When(filter.ContractNo != "", func() query.Predicate { return query.Contains("c.no", filter.ContractNo) }).
		When(filter.Search != "", func() query.Predicate {
			return query.Any(
				query.Contains("s.product_name", filter.Search),
				query.Contains("s.tracking_contract_no", filter.Search),
				query.Contains("s.logistics_company", filter.Search),
			)
		}).
		When(filter.FreightStatus != nil, func() query.Predicate { return query.Eq("s.freight_status", string(*filter.FreightStatus)) }).
		When(filter.InvoiceStatus != nil, func() query.Predicate { return query.Eq("s.invoice_status", string(*filter.InvoiceStatus)) })

	res, err := database.Paginate(ctx, s.db, shipmentList, b, filter.Page, scanShipment)
	if err != nil {
		return query.Result[*ledger.Shipment]{}, fmt.Errorf("listing shipments: %w", err)
	}

	return res, nil
}

func (t *contractTx) CreateShipment(ctx context.Context, sh *ledger.Shipment) error {
	query := `
		INSERT INTO shipments (
			contract_id, product_name, tracking_contract_no, date, quantity, logistics_company,
			shipment_address, delivery_address, freight, freight_status, freight_date, invoice_status,
			remark, creator_id, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, NOW())
		RETURNING id, created_at
	`

	err := t.SQL().QueryRowContext(ctx, query,
		t.Contract().ID, sh.ProductName, sh.TrackingContractNo, sh.Date, sh.Quantity, sh.LogisticsCompany,
		sh.ShipmentAddress, sh.DeliveryAddress, sh.Freight, string(sh.FreightStatus), sh.FreightDate, string(sh.InvoiceStatus),
		sh.Remark, sh.CreatorID,
	).Scan(&sh.ID, &sh.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating shipment: %w", err)
	}

	return nil
}

// LockedShipment reads a shipment of the locked contract inside the transaction.
func (t *contractTx) LockedShipment(ctx context.Context, id uuid.UUID) (*ledger.Shipment, error) {
	return getShipment(ctx, t.SQL(), `SELECT `+selectShipmentColumns+fromShipments+`
		WHERE s.id = $1 AND s.contract_id = $2 AND s.deleted_at IS NULL`, id, t.Contract().ID)
}

func (t *contractTx) UpdateShipment(ctx context.Context, sh *ledger.Shipment) error {
	query := `
		UPDATE shipments
		SET product_name = $1, tracking_contract_no = $2, date = $3, quantity = $4, logistics_company = $5,
			shipment_address = $6, delivery_address = $7, freight = $8, freight_status = $9, freight_date = $10,
			invoice_status = $11, remark = $12, updated_at = NOW()
		WHERE id = $13 AND contract_id = $14 AND deleted_at IS NULL
	`

	res, err := t.SQL().ExecContext(ctx, query,
		sh.ProductName, sh.TrackingContractNo, sh.Date, sh.Quantity, sh.LogisticsCompany,
		sh.ShipmentAddress, sh.DeliveryAddress, sh.Freight, string(sh.FreightStatus), sh.FreightDate,
		string(sh.InvoiceStatus), sh.Remark, sh.ID, t.Contract().ID,
	)
	if err != nil {
		return fmt.Errorf("updating shipment: %w", err)
	}

	return database.ExpectOne(res, ledger.ErrShipmentNotFound)
}

func (t *contractTx) DeleteShipment(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE shipments SET deleted_at = NOW() WHERE id = $1 AND contract_id = $2 AND deleted_at IS NULL`

	res, err := t.SQL().ExecContext(ctx, query, id, t.Contract().ID)
	if err != nil {
		return fmt.Errorf("deleting shipment: %w", err)
	}

	return database.ExpectOne(res, ledger.ErrShipmentNotFound)
}
