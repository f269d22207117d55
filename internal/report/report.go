// Package report renders contract progress as spreadsheets.
package report

import (
	"context"
	"fmt"
	"io"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/MrJamesThe3rd/salesdesk/internal/contract"
	"github.com/MrJamesThe3rd/salesdesk/internal/query"
)

const sheetName = "Contracts"

var header = []any{
	"Contract No.", "Customer", "Product", "Status", "Sign date",
	"Unit price", "Total quantity", "Total amount",
	"Executed quantity", "Execution %",
	"Receipted", "Receipt %", "Debt", "Debt %",
	"Invoiced", "Invoice %", "Uninvoiced", "Uninvoiced %",
}

//go:generate mockgen -source=report.go -destination=repository_mock.go -package=report

// ContractLister pages through contracts; satisfied by *contract.Service.
type ContractLister interface {
	List(ctx context.Context, filter contract.ListFilter) (query.Result[*contract.Contract], error)
}

type Service struct {
	contracts ContractLister
}

func NewService(contracts ContractLister) *Service {
	return &Service{contracts: contracts}
}

// ContractProgress writes an xlsx workbook with one row per contract matching filter.
// Amounts are rounded to 2 places and percentages to 1, as displayed elsewhere.
func (s *Service) ContractProgress(ctx context.Context, filter contract.ListFilter, w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}

	styles, err := newStyles(f)
	if err != nil {
		return err
	}

	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	if err := f.SetRowStyle(sheetName, 1, 1, styles.header); err != nil {
		return fmt.Errorf("styling header: %w", err)
	}

	row := 2
	filter.Page = query.Page{Number: 1, Size: query.MaxPageSize}

	for {
		res, err := s.contracts.List(ctx, filter)
		if err != nil {
			return fmt.Errorf("listing contracts: %w", err)
		}

		for _, c := range res.Items {
			if err := writeContract(f, row, c); err != nil {
				return err
			}

			row++
		}

		if filter.Page.Number >= res.TotalPages {
			break
		}

		filter.Page.Number++
	}

	if err := styles.apply(f, row-1); err != nil {
		return err
	}

	if err := f.SetPanes(sheetName, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"}); err != nil {
		return fmt.Errorf("freezing header: %w", err)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}

	return nil
}

func writeContract(f *excelize.File, row int, c *contract.Contract) error {
	d := c.Derived

	values := []any{
		c.No, c.CustomerName, c.ProductName, string(c.Status), c.SignDate.Format("2006-01-02"),
		money(c.UnitPrice), c.TotalQuantity, money(d.TotalAmount),
		d.ExecutedQuantity, percent(d.ExecutionPercent),
		money(d.ReceiptedAmount), percent(d.ReceiptPercent), money(d.DebtAmount), percent(d.DebtPercent),
		money(d.InvoicedAmount), percent(d.InvoicePercent), money(d.UninvoicedAmount), percent(d.UninvoicedPercent),
	}

	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}

	if err := f.SetSheetRow(sheetName, cell, &values); err != nil {
		return fmt.Errorf("writing contract %s: %w", c.No, err)
	}

	return nil
}

func money(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}

func percent(d decimal.Decimal) float64 {
	return d.Round(1).InexactFloat64()
}

type styles struct {
	header, money, percent int
}

func newStyles(f *excelize.File) (styles, error) {
	var (
		s   styles
		err error
	)

	if s.header, err = f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}}); err != nil {
		return s, fmt.Errorf("creating header style: %w", err)
	}

	moneyFmt := "#,##0.00"
	if s.money, err = f.NewStyle(&excelize.Style{CustomNumFmt: &moneyFmt}); err != nil {
		return s, fmt.Errorf("creating money style: %w", err)
	}

	percentFmt := "0.0"
	if s.percent, err = f.NewStyle(&excelize.Style{CustomNumFmt: &percentFmt}); err != nil {
		return s, fmt.Errorf("creating percent style: %w", err)
	}

	return s, nil
}

// Columns F, H, K, M, O, Q hold amounts; J, L, N, P, R hold percentages.
var (
	moneyColumns   = []string{"F", "H", "K", "M", "O", "Q"}
	percentColumns = []string{"J", "L", "N", "P", "R"}
)

func (s styles) apply(f *excelize.File, lastRow int) error {
	if lastRow < 2 {
		return nil
	}

	for _, col := range moneyColumns {
		if err := f.SetCellStyle(sheetName, fmt.Sprintf("%s2", col), fmt.Sprintf("%s%d", col, lastRow), s.money); err != nil {
			return fmt.Errorf("styling amounts: %w", err)
		}
	}

	for _, col := range percentColumns {
		if err := f.SetCellStyle(sheetName, fmt.Sprintf("%s2", col), fmt.Sprintf("%s%d", col, lastRow), s.percent); err != nil {
			return fmt.Errorf("styling percentages: %w", err)
		}
	}

	return f.SetColWidth(sheetName, "A", "R", 14)
}
