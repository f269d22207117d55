package contract_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/salesdesk/internal/auth"
	"github.com/MrJamesThe3rd/salesdesk/internal/contract"
	contracthttp "github.com/MrJamesThe3rd/salesdesk/internal/http/contract"
	"github.com/MrJamesThe3rd/salesdesk/internal/progress"
)

func newRouter(repo contract.Repository) http.Handler {
	r := chi.NewRouter()
	r.Route("/contracts", contracthttp.NewHandler(contract.NewService(repo)).Routes)

	return r
}

func newContract(invoiced ...string) *contract.Contract {
	c := &contract.Contract{
		ID:            uuid.New(),
		No:            "HT-2024-001",
		ProductName:   "Steel coil",
		CustomerID:    uuid.New(),
		CustomerName:  "Acme Steel",
		UnitPrice:     decimal.RequireFromString("50"),
		TotalQuantity: 200,
		SignDate:      time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		Status:        contract.StatusExecuting,
	}

	var set progress.Set
	for _, a := range invoiced {
		set.InvoiceAmounts = append(set.InvoiceAmounts, decimal.RequireFromString(a))
	}

	c.Derived = progress.Compute(c.Terms(), set)

	return c
}

func do(h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	return rec
}

func TestHandler_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := contract.NewMockRepository(ctrl)
	userID := uuid.New()
	customerID := uuid.New()

	repo.EXPECT().CreateContract(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, c *contract.Contract) error {
		assert.Equal(t, userID, *c.CreatorID)
		assert.Equal(t, customerID, c.CustomerID)

		c.ID = uuid.New()

		return nil
	})

	body := `{"no":"HT-2024-009","product_name":"Steel coil","customer":"` + customerID.String() +
		`","unit_price":"12.5","total_quantity":80,"sign_date":"2024-04-02T00:00:00Z"}`

	req := httptest.NewRequest(http.MethodPost, "/contracts/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req = req.WithContext(auth.WithSession(req.Context(), &auth.Session{UserID: userID, Role: auth.RoleSales}))

	rec := httptest.NewRecorder()
	newRouter(repo).ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var got contracthttp.Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Equal(t, "1000.00", got.TotalAmount)
	assert.Equal(t, "12.50", got.UnitPrice)
	assert.Equal(t, "2024-04-02", got.SignDate)
	assert.Equal(t, "100.0", got.Progress.DebtPercent)
	assert.Equal(t, contract.StatusExecuting, got.Status)
}

func TestHandler_Errors(t *testing.T) {
	type testCase struct {
		name       string
		method     string
		target     string
		body       string
		setupMock  func(m *contract.MockRepository)
		wantStatus int
		wantBody   string
	}

	id := uuid.New()

	tests := []testCase{
		{
			name:       "ValidationFailure",
			method:     http.MethodPost,
			target:     "/contracts/",
			body:       `{"no":"","total_quantity":0}`,
			setupMock:  func(*contract.MockRepository) {},
			wantStatus: http.StatusBadRequest,
			wantBody:   `"total_quantity"`,
		},
		{
			name:       "MalformedBody",
			method:     http.MethodPost,
			target:     "/contracts/",
			body:       `{"no":`,
			setupMock:  func(*contract.MockRepository) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:   "NotFound",
			method: http.MethodGet,
			target: "/contracts/" + id.String(),
			setupMock: func(m *contract.MockRepository) {
				m.EXPECT().GetContract(gomock.Any(), id).Return(nil, contract.ErrNotFound)
			},
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "BadID",
			method:     http.MethodGet,
			target:     "/contracts/not-an-id",
			setupMock:  func(*contract.MockRepository) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "BadCustomerFilter",
			method:     http.MethodGet,
			target:     "/contracts/?customer=nope",
			setupMock:  func(*contract.MockRepository) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "UnknownStatusFilter",
			method:     http.MethodGet,
			target:     "/contracts/?status=archived",
			setupMock:  func(*contract.MockRepository) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:   "DeleteWithLedger",
			method: http.MethodDelete,
			target: "/contracts/" + id.String(),
			setupMock: func(m *contract.MockRepository) {
				m.EXPECT().DeleteContract(gomock.Any(), id).Return(contract.ErrHasLedger)
			},
			wantStatus: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := contract.NewMockRepository(ctrl)
			tt.setupMock(repo)

			rec := do(newRouter(repo), tt.method, tt.target, tt.body)

			assert.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())

			if tt.wantBody != "" {
				assert.Contains(t, rec.Body.String(), tt.wantBody)
			}
		})
	}
}

func TestHandler_Transition(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := contract.NewMockRepository(ctrl)
	tx := contract.NewMockTx(ctrl)
	c := newContract()

	repo.EXPECT().BeginContract(gomock.Any(), c.ID).Return(tx, nil)
	tx.EXPECT().Contract().Return(c)
	tx.EXPECT().UpdateStatus(gomock.Any(), contract.StatusCompleted).Return(nil)
	tx.EXPECT().Commit().Return(nil)
	tx.EXPECT().Rollback().Return(nil)

	rec := do(newRouter(repo), http.MethodPatch, "/contracts/"+c.ID.String()+"/status", `{"status":"completed"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var got struct {
		Contract contracthttp.Response `json:"contract"`
		Warning  string                `json:"warning"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Equal(t, contract.StatusCompleted, got.Contract.Status)
	assert.Contains(t, got.Warning, "0.0%")
}

func TestHandler_CheckRemaining(t *testing.T) {
	type testCase struct {
		name          string
		body          string
		wantStatus    int
		wantRemaining string
	}

	tests := []testCase{
		{name: "Fits", body: `{"kind":"invoice","amount":"1500"}`, wantStatus: http.StatusOK, wantRemaining: "2000.00"},
		{name: "OverLimit", body: `{"kind":"invoice","amount":"2500"}`, wantStatus: http.StatusUnprocessableEntity, wantRemaining: "2000.00"},
		{name: "Receipt", body: `{"kind":"receipt","amount":"10000"}`, wantStatus: http.StatusOK, wantRemaining: "10000.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := contract.NewMockRepository(ctrl)
			c := newContract("5000", "3000")
			repo.EXPECT().GetContract(gomock.Any(), c.ID).Return(c, nil)

			rec := do(newRouter(repo), http.MethodPost, "/contracts/"+c.ID.String()+"/remaining-check", tt.body)
			require.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())

			var got struct {
				Remaining string `json:"remaining"`
			}
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
			assert.Equal(t, tt.wantRemaining, got.Remaining)
		})
	}
}
