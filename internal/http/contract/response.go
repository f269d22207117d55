package contract

import (
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/salesdesk/internal/contract"
	"github.com/MrJamesThe3rd/salesdesk/internal/progress"
)

// Response is the JSON shape of a contract. Derived figures are rounded for display here and
// nowhere else.
type Response struct {
	ID            uuid.UUID        `json:"id"`
	No            string           `json:"no"`
	ProductName   string           `json:"product_name"`
	CustomerID    uuid.UUID        `json:"customer"`
	CustomerName  string           `json:"customer_name"`
	UnitPrice     string           `json:"unit_price"`
	TotalQuantity int64            `json:"total_quantity"`
	TotalAmount   string           `json:"total_amount"`
	SignDate      string           `json:"sign_date"`
	Remark        string           `json:"remark,omitempty"`
	Status        contract.Status  `json:"status"`
	Progress      progressResponse `json:"progress"`
	LedgerVersion int64            `json:"ledger_version"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     *time.Time       `json:"updated_at,omitempty"`
}

type progressResponse struct {
	ExecutedQuantity  int64  `json:"executed_quantity"`
	ExecutionPercent  string `json:"execution_percent"`
	ReceiptedAmount   string `json:"receipted_amount"`
	ReceiptPercent    string `json:"receipt_percent"`
	DebtAmount        string `json:"debt_amount"`
	DebtPercent       string `json:"debt_percent"`
	InvoicedAmount    string `json:"invoiced_amount"`
	InvoicePercent    string `json:"invoice_percent"`
	UninvoicedAmount  string `json:"uninvoiced_amount"`
	UninvoicedPercent string `json:"uninvoiced_percent"`
	OverReceipted     bool   `json:"over_receipted,omitempty"`
	OverInvoiced      bool   `json:"over_invoiced,omitempty"`
}

func NewResponse(c *contract.Contract) Response {
	d := c.Derived

	return Response{
		ID:            c.ID,
		No:            c.No,
		ProductName:   c.ProductName,
		CustomerID:    c.CustomerID,
		CustomerName:  c.CustomerName,
		UnitPrice:     progress.Money(c.UnitPrice),
		TotalQuantity: c.TotalQuantity,
		TotalAmount:   progress.Money(d.TotalAmount),
		SignDate:      c.SignDate.Format(time.DateOnly),
		Remark:        c.Remark,
		Status:        c.Status,
		Progress: progressResponse{
			ExecutedQuantity:  d.ExecutedQuantity,
			ExecutionPercent:  progress.Percent(d.ExecutionPercent),
			ReceiptedAmount:   progress.Money(d.ReceiptedAmount),
			ReceiptPercent:    progress.Percent(d.ReceiptPercent),
			DebtAmount:        progress.Money(d.DebtAmount),
			DebtPercent:       progress.Percent(d.DebtPercent),
			InvoicedAmount:    progress.Money(d.InvoicedAmount),
			InvoicePercent:    progress.Percent(d.InvoicePercent),
			UninvoicedAmount:  progress.Money(d.UninvoicedAmount),
			UninvoicedPercent: progress.Percent(d.UninvoicedPercent),
			OverReceipted:     d.OverReceipted(),
			OverInvoiced:      d.OverInvoiced(),
		},
		LedgerVersion: c.LedgerVersion,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}

type optionResponse struct {
	ID           uuid.UUID `json:"id"`
	No           string    `json:"no"`
	ProductName  string    `json:"product_name"`
	CustomerName string    `json:"customer_name"`
}

func toOptions(cs []*contract.Contract) []optionResponse {
	out := make([]optionResponse, len(cs))
	for i, c := range cs {
		out[i] = optionResponse{ID: c.ID, No: c.No, ProductName: c.ProductName, CustomerName: c.CustomerName}
	}

	return out
}

type transitionResponse struct {
	Contract Response `json:"contract"`
	Warning  string   `json:"warning,omitempty"`
}

type remainingResponse struct {
	Kind      progress.Kind `json:"kind"`
	Remaining string        `json:"remaining"`
}
