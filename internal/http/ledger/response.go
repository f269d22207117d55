package ledger

import (
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/salesdesk/internal/ledger"
	"github.com/MrJamesThe3rd/salesdesk/internal/progress"
)

type shipmentResponse struct {
	ID                 uuid.UUID            `json:"id"`
	ContractID         uuid.UUID            `json:"contract"`
	ContractNo         string               `json:"contract_no"`
	ProductName        string               `json:"product_name"`
	TrackingContractNo string               `json:"tracking_contract_no,omitempty"`
	Date               string               `json:"date"`
	Quantity           int64                `json:"quantity"`
	LogisticsCompany   string               `json:"logistics_company,omitempty"`
	ShipmentAddress    string               `json:"shipment_address,omitempty"`
	DeliveryAddress    string               `json:"delivery_address,omitempty"`
	Freight            string               `json:"freight"`
	FreightStatus      ledger.FreightStatus `json:"freight_status"`
	FreightDate        *string              `json:"freight_date,omitempty"`
	InvoiceStatus      ledger.InvoiceStatus `json:"invoice_status"`
	Remark             string               `json:"remark,omitempty"`
	CreatedAt          time.Time            `json:"created_at"`
	UpdatedAt          *time.Time           `json:"updated_at,omitempty"`
}

func toShipmentResponse(s *ledger.Shipment) shipmentResponse {
	resp := shipmentResponse{
		ID:                 s.ID,
		ContractID:         s.ContractID,
		ContractNo:         s.ContractNo,
		ProductName:        s.ProductName,
		TrackingContractNo: s.TrackingContractNo,
		Date:               s.Date.Format(time.DateOnly),
		Quantity:           s.Quantity,
		LogisticsCompany:   s.LogisticsCompany,
		ShipmentAddress:    s.ShipmentAddress,
		DeliveryAddress:    s.DeliveryAddress,
		Freight:            progress.Money(s.Freight),
		FreightStatus:      s.FreightStatus,
		InvoiceStatus:      s.InvoiceStatus,
		Remark:             s.Remark,
		CreatedAt:          s.CreatedAt,
		UpdatedAt:          s.UpdatedAt,
	}

	if s.FreightDate != nil {
		fd := s.FreightDate.Format(time.DateOnly)
		resp.FreightDate = &fd
	}

	return resp
}

type invoiceResponse struct {
	ID            uuid.UUID  `json:"id"`
	ContractID    uuid.UUID  `json:"contract"`
	ContractNo    string     `json:"contract_no"`
	No            string     `json:"no"`
	ProductName   string     `json:"product_name"`
	InvoiceType   string     `json:"invoice_type,omitempty"`
	ProductAmount string     `json:"product_amount"`
	Amount        string     `json:"amount"`
	IssueDate     string     `json:"issue_date"`
	Remark        string     `json:"remark,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     *time.Time `json:"updated_at,omitempty"`
}

func toInvoiceResponse(inv *ledger.Invoice) invoiceResponse {
	return invoiceResponse{
		ID:            inv.ID,
		ContractID:    inv.ContractID,
		ContractNo:    inv.ContractNo,
		No:            inv.No,
		ProductName:   inv.ProductName,
		InvoiceType:   inv.InvoiceType,
		ProductAmount: progress.Money(inv.ProductAmount),
		Amount:        progress.Money(inv.Amount),
		IssueDate:     inv.IssueDate.Format(time.DateOnly),
		Remark:        inv.Remark,
		CreatedAt:     inv.CreatedAt,
		UpdatedAt:     inv.UpdatedAt,
	}
}

type receiptResponse struct {
	ID            uuid.UUID  `json:"id"`
	ContractID    uuid.UUID  `json:"contract"`
	ContractNo    string     `json:"contract_no"`
	ProductName   string     `json:"product_name"`
	Amount        string     `json:"amount"`
	ProductAmount string     `json:"product_amount"`
	ReceiptDate   string     `json:"receipt_date"`
	Method        string     `json:"method,omitempty"`
	Account       string     `json:"account,omitempty"`
	Remark        string     `json:"remark,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     *time.Time `json:"updated_at,omitempty"`
}

func toReceiptResponse(rc *ledger.Receipt) receiptResponse {
	return receiptResponse{
		ID:            rc.ID,
		ContractID:    rc.ContractID,
		ContractNo:    rc.ContractNo,
		ProductName:   rc.ProductName,
		Amount:        progress.Money(rc.Amount),
		ProductAmount: progress.Money(rc.ProductAmount),
		ReceiptDate:   rc.ReceiptDate.Format(time.DateOnly),
		Method:        rc.Method,
		Account:       rc.Account,
		Remark:        rc.Remark,
		CreatedAt:     rc.CreatedAt,
		UpdatedAt:     rc.UpdatedAt,
	}
}
