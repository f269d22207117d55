// Package ledger records the shipments, invoices and receipts booked against a contract.
// Every write recomputes the owning contract's figures before it commits.
package ledger

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrShipmentNotFound = errors.New("shipment not found")
	ErrInvoiceNotFound  = errors.New("invoice not found")
	ErrReceiptNotFound  = errors.New("receipt not found")
)

type FreightStatus string

const (
	FreightPaid   FreightStatus = "paid"
	FreightUnpaid FreightStatus = "unpaid"
)

func (s FreightStatus) Valid() bool {
	return s == FreightPaid || s == FreightUnpaid
}

type InvoiceStatus string

const (
	InvoiceIssued   InvoiceStatus = "issued"
	InvoiceUnissued InvoiceStatus = "unissued"
)

func (s InvoiceStatus) Valid() bool {
	return s == InvoiceIssued || s == InvoiceUnissued
}

// Shipment is a delivery of goods against a contract. Its quantity counts towards execution.
type Shipment struct {
	ID                 uuid.UUID
	ContractID         uuid.UUID
	ContractNo         string // Loaded via JOIN
	ProductName        string
	TrackingContractNo string
	Date               time.Time
	Quantity           int64
	LogisticsCompany   string
	ShipmentAddress    string
	DeliveryAddress    string
	Freight            decimal.Decimal
	FreightStatus      FreightStatus
	FreightDate        *time.Time
	InvoiceStatus      InvoiceStatus
	Remark             string
	CreatorID          *uuid.UUID
	CreatedAt          time.Time
	UpdatedAt          *time.Time
}

// Invoice is a tax invoice issued to the customer. Its amount counts towards invoiced_amount.
type Invoice struct {
	ID            uuid.UUID
	ContractID    uuid.UUID
	ContractNo    string // Loaded via JOIN
	No            string
	ProductName   string
	InvoiceType   string
	ProductAmount decimal.Decimal
	Amount        decimal.Decimal
	IssueDate     time.Time
	Remark        string
	CreatorID     *uuid.UUID
	CreatedAt     time.Time
	UpdatedAt     *time.Time
}

// Receipt is a payment received from the customer. Its amount counts towards receipted_amount.
type Receipt struct {
	ID            uuid.UUID
	ContractID    uuid.UUID
	ContractNo    string // Loaded via JOIN
	ProductName   string
	Amount        decimal.Decimal
	ProductAmount decimal.Decimal
	ReceiptDate   time.Time
	Method        string
	Account       string
	Remark        string
	CreatorID     *uuid.UUID
	CreatedAt     time.Time
	UpdatedAt     *time.Time
}
