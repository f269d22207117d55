package respond_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/salesdesk/internal/attachment"
	"github.com/MrJamesThe3rd/salesdesk/internal/auth"
	"github.com/MrJamesThe3rd/salesdesk/internal/contract"
	"github.com/MrJamesThe3rd/salesdesk/internal/customer"
	"github.com/MrJamesThe3rd/salesdesk/internal/http/respond"
	"github.com/MrJamesThe3rd/salesdesk/internal/ledger"
	"github.com/MrJamesThe3rd/salesdesk/internal/progress"
	"github.com/MrJamesThe3rd/salesdesk/internal/validation"
)

func TestError(t *testing.T) {
	type testCase struct {
		name       string
		err        error
		wantStatus int
	}

	tests := []testCase{
		{name: "NotFound", err: fmt.Errorf("loading: %w", contract.ErrNotFound), wantStatus: http.StatusNotFound},
		{name: "LedgerNotFound", err: ledger.ErrReceiptNotFound, wantStatus: http.StatusNotFound},
		{name: "Duplicate", err: contract.ErrDuplicateNo, wantStatus: http.StatusConflict},
		{name: "InUse", err: customer.ErrInUse, wantStatus: http.StatusConflict},
		{name: "NotExecuting", err: fmt.Errorf("%w: completed", contract.ErrNotExecuting), wantStatus: http.StatusConflict},
		{name: "UnknownCustomer", err: contract.ErrUnknownCustomer, wantStatus: http.StatusBadRequest},
		{name: "BadToken", err: auth.ErrInvalidToken, wantStatus: http.StatusUnauthorized},
		{name: "Forbidden", err: auth.ErrForbidden, wantStatus: http.StatusForbidden},
		{name: "TooLarge", err: attachment.ErrTooLarge, wantStatus: http.StatusRequestEntityTooLarge},
		{name: "Unsupported", err: attachment.ErrUnsupportedType, wantStatus: http.StatusUnsupportedMediaType},
		{name: "Unknown", err: errors.New("connection reset"), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			respond.Error(rec, tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
		})
	}
}

func TestError_Bodies(t *testing.T) {
	rec := httptest.NewRecorder()
	respond.Error(rec, validation.Field("amount", "must be greater than 0"))

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var vBody struct {
		Fields map[string]string `json:"fields"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&vBody))
	assert.Equal(t, "must be greater than 0", vBody.Fields["amount"])

	rec = httptest.NewRecorder()
	respond.Error(rec, fmt.Errorf("creating invoice: %w", &progress.OverLimitError{
		Kind:      progress.KindInvoice,
		Proposed:  decimal.NewFromInt(5000),
		Remaining: decimal.RequireFromString("1234.5"),
	}))

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var olBody struct {
		Kind      string `json:"kind"`
		Remaining string `json:"remaining"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&olBody))
	assert.Equal(t, "invoice", olBody.Kind)
	assert.Equal(t, "1234.50", olBody.Remaining)

	rec = httptest.NewRecorder()
	respond.Error(rec, errors.New("pq: password authentication failed for user"))
	assert.NotContains(t, rec.Body.String(), "password")
}
