package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/MrJamesThe3rd/salesdesk/internal/customer"
	enc "github.com/MrJamesThe3rd/salesdesk/internal/encoding"
)

type csvReader struct{}

func (csvReader) Rows(r io.Reader) ([][]string, error) {
	utf8r, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	content, err := io.ReadAll(utf8r)
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	reader := csv.NewReader(strings.NewReader(string(content)))
	reader.Comma = sniffDelimiter(content)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	return rows, nil
}

// sniffDelimiter picks the most frequent of comma, semicolon and tab on the first line.
func sniffDelimiter(content []byte) rune {
	line, _, _ := strings.Cut(string(content), "\n")

	best, bestCount := ',', strings.Count(line, ",")

	for _, d := range []rune{';', '\t'} {
		if n := strings.Count(line, string(d)); n > bestCount {
			best, bestCount = d, n
		}
	}

	return best
}

type xlsxReader struct{}

// Rows reads the first sheet of the workbook.
func (xlsxReader) Rows(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("open workbook: no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}

	return rows, nil
}

// parseRows maps data rows onto CreateParams. Rows with every recognised cell blank are
// skipped so trailing spreadsheet padding imports cleanly.
func parseRows(cols colIndex, rows [][]string) []customer.CreateParams {
	var params []customer.CreateParams

	for _, row := range rows {
		get := func(f field) string {
			idx, ok := cols[f]
			if !ok {
				return ""
			}

			return cellValue(row, idx)
		}

		p := customer.CreateParams{
			Name:        get(fieldName),
			Contact:     get(fieldContact),
			Phone:       get(fieldPhone),
			Email:       get(fieldEmail),
			Address:     get(fieldAddress),
			Industry:    get(fieldIndustry),
			Region:      get(fieldRegion),
			BankName:    get(fieldBankName),
			BankAccount: get(fieldBankAccount),
			Remark:      get(fieldRemark),
		}

		if p == (customer.CreateParams{}) {
			continue
		}

		params = append(params, p)
	}

	return params
}

// cellValue returns the trimmed value at idx, or "" if the row is shorter.
func cellValue(row []string, idx int) string {
	if idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}
