// Package importer turns customer lists exported from spreadsheets into customer create params.
// It recognises the header row by column name, in English or Chinese, so exports with extra
// columns or a title block above the header import as-is.
package importer

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/MrJamesThe3rd/salesdesk/internal/customer"
)

var (
	ErrUnknownFormat = errors.New("unsupported import format")
	ErrNoHeader      = errors.New("no customer header row found")
	ErrEmpty         = errors.New("import contains no customers")
	ErrUnreadable    = errors.New("import file is unreadable")
)

type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// FormatOf picks the format from a file name's extension.
func FormatOf(filename string) (Format, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv", ".txt":
		return FormatCSV, nil
	case ".xlsx":
		return FormatXLSX, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, filepath.Ext(filename))
	}
}

// Reader extracts raw rows from one file format.
type Reader interface {
	Rows(r io.Reader) ([][]string, error)
}

type Service struct {
	readers map[Format]Reader
}

func NewService() *Service {
	return &Service{
		readers: map[Format]Reader{
			FormatCSV:  csvReader{},
			FormatXLSX: xlsxReader{},
		},
	}
}

// Customers parses r and returns one CreateParams per data row. Field validation is left to
// customer.Service.Import, which reports every bad row at once.
func (s *Service) Customers(format Format, r io.Reader) ([]customer.CreateParams, error) {
	reader, ok := s.readers[format]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}

	rows, err := reader.Rows(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadable, err)
	}

	cols, headerIdx, ok := detectHeader(rows)
	if !ok {
		return nil, fmt.Errorf("%w: expected a %q column", ErrNoHeader, aliases[fieldName][0])
	}

	params := parseRows(cols, rows[headerIdx+1:])
	if len(params) == 0 {
		return nil, ErrEmpty
	}

	return params, nil
}
