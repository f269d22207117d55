package contract_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/salesdesk/internal/contract"
	"github.com/MrJamesThe3rd/salesdesk/internal/progress"
	"github.com/MrJamesThe3rd/salesdesk/internal/query"
	"github.com/MrJamesThe3rd/salesdesk/internal/validation"
)

func newContract(status contract.Status) *contract.Contract {
	c := &contract.Contract{
		ID:            uuid.New(),
		No:            "HT-2024-001",
		ProductName:   "Steel coil",
		CustomerID:    uuid.New(),
		UnitPrice:     decimal.RequireFromString("50"),
		TotalQuantity: 200,
		SignDate:      time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		Status:        status,
		LedgerVersion: 4,
	}
	c.Derived = progress.Compute(c.Terms(), progress.Set{})

	return c
}

func TestService_Create(t *testing.T) {
	valid := contract.CreateParams{
		No:            "HT-2024-001",
		ProductName:   "Steel coil",
		CustomerID:    uuid.New(),
		UnitPrice:     decimal.RequireFromString("50"),
		TotalQuantity: 200,
		SignDate:      time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
	}

	type testCase struct {
		name      string
		params    contract.CreateParams
		setupMock func(m *contract.MockRepository)
		wantErr   error
	}

	tests := []testCase{
		{
			name:   "Success",
			params: valid,
			setupMock: func(m *contract.MockRepository) {
				m.EXPECT().
					CreateContract(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, c *contract.Contract) error {
						c.ID = uuid.New()
						return nil
					})
			},
		},
		{
			name: "NonPositivePrice",
			params: func() contract.CreateParams {
				p := valid
				p.UnitPrice = decimal.Zero
				return p
			}(),
			wantErr: &validation.Error{},
		},
		{
			name: "DuplicateNo",
			params: valid,
			setupMock: func(m *contract.MockRepository) {
				m.EXPECT().CreateContract(gomock.Any(), gomock.Any()).Return(contract.ErrDuplicateNo)
			},
			wantErr: contract.ErrDuplicateNo,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := contract.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := contract.NewService(repo)
			got, err := svc.Create(context.Background(), tt.params)

			if tt.wantErr != nil {
				var vErr *validation.Error
				if errors.As(tt.wantErr, &vErr) {
					assert.ErrorAs(t, err, &vErr)
					assert.Contains(t, vErr.Fields, "unit_price")
				} else {
					assert.ErrorIs(t, err, tt.wantErr)
				}

				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			assert.NotEmpty(t, got.ID)
			assert.Equal(t, contract.StatusExecuting, got.Status)
			assert.True(t, got.Derived.TotalAmount.Equal(decimal.NewFromInt(10000)))
			assert.True(t, got.Derived.DebtPercent.Equal(decimal.NewFromInt(100)))
		})
	}
}

func TestService_Get_UsesCache(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := contract.NewMockRepository(ctrl)
	cache := contract.NewMockSnapshotCache(ctrl)
	svc := contract.NewService(repo, contract.WithCache(cache))

	c := newContract(contract.StatusExecuting)

	cache.EXPECT().Get(gomock.Any(), c.ID).Return(nil, false)
	repo.EXPECT().GetContract(gomock.Any(), c.ID).Return(c, nil)
	cache.EXPECT().Set(gomock.Any(), c)

	got, err := svc.Get(context.Background(), c.ID)
	require.NoError(t, err)
	assert.Equal(t, c, got)

	cache.EXPECT().Get(gomock.Any(), c.ID).Return(c, true)

	got, err = svc.Get(context.Background(), c.ID)
	require.NoError(t, err)
	assert.Equal(t, c, got)
}

func TestService_List(t *testing.T) {
	bogus := contract.Status("paused")

	type testCase struct {
		name      string
		filter    contract.ListFilter
		setupMock func(m *contract.MockRepository)
		wantLen   int
		wantErr   bool
	}

	tests := []testCase{
		{
			name:   "Success",
			filter: contract.ListFilter{Search: "HT"},
			setupMock: func(m *contract.MockRepository) {
				m.EXPECT().
					ListContracts(gomock.Any(), contract.ListFilter{Search: "HT"}).
					Return(query.Result[*contract.Contract]{
						Items:      []*contract.Contract{{ID: uuid.New()}, {ID: uuid.New()}},
						TotalItems: 2,
					}, nil)
			},
			wantLen: 2,
		},
		{
			name:    "InvalidStatus",
			filter:  contract.ListFilter{Status: &bogus},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := contract.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			got, err := contract.NewService(repo).List(context.Background(), tt.filter)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Len(t, got.Items, tt.wantLen)
		})
	}
}

func TestService_Update_RecomputesInSameTx(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := contract.NewMockRepository(ctrl)
	tx := contract.NewMockTx(ctrl)
	cache := contract.NewMockSnapshotCache(ctrl)
	svc := contract.NewService(repo, contract.WithCache(cache))

	c := newContract(contract.StatusExecuting)
	qty := int64(100)

	repo.EXPECT().BeginContract(gomock.Any(), c.ID).Return(tx, nil)
	tx.EXPECT().Contract().Return(c).AnyTimes()
	tx.EXPECT().UpdateAuthored(gomock.Any(), c).Return(nil)
	tx.EXPECT().LedgerSet(gomock.Any()).Return(progress.Set{ShipmentQuantities: []int64{50}}, nil)
	tx.EXPECT().SaveDerived(gomock.Any(), gomock.Any()).Return(nil)
	tx.EXPECT().Commit().Return(nil)
	tx.EXPECT().Rollback().Return(nil)
	cache.EXPECT().Delete(gomock.Any(), c.ID)

	got, err := svc.Update(context.Background(), c.ID, contract.UpdateParams{TotalQuantity: &qty})
	require.NoError(t, err)
	assert.Equal(t, int64(100), got.TotalQuantity)
	assert.True(t, got.Derived.TotalAmount.Equal(decimal.NewFromInt(5000)))
	assert.True(t, got.Derived.ExecutionPercent.Equal(decimal.NewFromInt(50)))
}

func TestService_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := contract.NewMockRepository(ctrl)
	svc := contract.NewService(repo)

	id := uuid.New()
	repo.EXPECT().DeleteContract(gomock.Any(), id).Return(contract.ErrHasLedger)

	err := svc.Delete(context.Background(), id)
	assert.ErrorIs(t, err, contract.ErrHasLedger)
}

func TestService_Transition(t *testing.T) {
	type testCase struct {
		name        string
		policy      contract.CompletionPolicy
		from        contract.Status
		to          contract.Status
		executed    []int64
		wantErr     error
		wantWarning bool
	}

	tests := []testCase{
		{name: "CompleteFullyExecuted", policy: contract.CompletionBlock, from: contract.StatusExecuting, to: contract.StatusCompleted, executed: []int64{200}},
		{name: "CompletePartialWarn", policy: contract.CompletionWarn, from: contract.StatusExecuting, to: contract.StatusCompleted, executed: []int64{60}, wantWarning: true},
		{name: "CompletePartialBlock", policy: contract.CompletionBlock, from: contract.StatusExecuting, to: contract.StatusCompleted, executed: []int64{60}, wantErr: contract.ErrIncompleteExecution},
		{name: "Cancel", policy: contract.CompletionWarn, from: contract.StatusExecuting, to: contract.StatusCancelled},
		{name: "FromTerminal", policy: contract.CompletionWarn, from: contract.StatusCompleted, to: contract.StatusCancelled, wantErr: contract.ErrInvalidTransition},
		{name: "BackToExecuting", policy: contract.CompletionWarn, from: contract.StatusCancelled, to: contract.StatusExecuting, wantErr: contract.ErrInvalidTransition},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := contract.NewMockRepository(ctrl)
			tx := contract.NewMockTx(ctrl)
			svc := contract.NewService(repo, contract.WithCompletionPolicy(tt.policy))

			c := newContract(tt.from)
			c.Derived = progress.Compute(c.Terms(), progress.Set{ShipmentQuantities: tt.executed})

			repo.EXPECT().BeginContract(gomock.Any(), c.ID).Return(tx, nil)
			tx.EXPECT().Contract().Return(c)
			tx.EXPECT().Rollback().Return(nil)

			if tt.wantErr == nil {
				tx.EXPECT().UpdateStatus(gomock.Any(), tt.to).Return(nil)
				tx.EXPECT().Commit().Return(nil)
			}

			got, err := svc.Transition(context.Background(), c.ID, tt.to)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.to, got.Contract.Status)

			if tt.wantWarning {
				assert.Contains(t, got.Warning, "30.0%")
			} else {
				assert.Empty(t, got.Warning)
			}
		})
	}
}

func TestService_Transition_InvalidStatus(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := contract.NewService(contract.NewMockRepository(ctrl))

	_, err := svc.Transition(context.Background(), uuid.New(), contract.Status("archived"))

	var vErr *validation.Error
	assert.ErrorAs(t, err, &vErr)
}

func TestService_Recompute_Optimistic(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := contract.NewMockRepository(ctrl)
	svc := contract.NewService(repo)

	c := newContract(contract.StatusExecuting)
	set := progress.Set{
		ShipmentQuantities: []int64{80},
		ReceiptAmounts:     []decimal.Decimal{decimal.RequireFromString("2500")},
	}

	repo.EXPECT().LoadLedger(gomock.Any(), c.ID).Return(c, set, nil)
	repo.EXPECT().
		SaveDerived(gomock.Any(), c.ID, gomock.Any(), int64(4)).
		DoAndReturn(func(_ context.Context, _ uuid.UUID, d progress.Derived, _ int64) error {
			assert.True(t, d.ReceiptPercent.Equal(decimal.NewFromInt(25)))
			return nil
		})

	got, err := svc.Recompute(context.Background(), c.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(5), got.LedgerVersion)
	assert.True(t, got.Derived.ExecutionPercent.Equal(decimal.NewFromInt(40)))
}

func TestService_Recompute_RetriesStaleReads(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := contract.NewMockRepository(ctrl)
	svc := contract.NewService(repo)

	id := uuid.New()

	gomock.InOrder(
		repo.EXPECT().LoadLedger(gomock.Any(), id).Return(newContract(contract.StatusExecuting), progress.Set{}, nil),
		repo.EXPECT().SaveDerived(gomock.Any(), id, gomock.Any(), gomock.Any()).Return(contract.ErrStaleRead),
		repo.EXPECT().LoadLedger(gomock.Any(), id).Return(newContract(contract.StatusExecuting), progress.Set{}, nil),
		repo.EXPECT().SaveDerived(gomock.Any(), id, gomock.Any(), gomock.Any()).Return(nil),
	)

	_, err := svc.Recompute(context.Background(), id)
	require.NoError(t, err)
}

func TestService_Recompute_FallsBackToLock(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := contract.NewMockRepository(ctrl)
	tx := contract.NewMockTx(ctrl)
	svc := contract.NewService(repo)

	c := newContract(contract.StatusExecuting)

	repo.EXPECT().LoadLedger(gomock.Any(), c.ID).Return(c, progress.Set{}, nil).Times(3)
	repo.EXPECT().SaveDerived(gomock.Any(), c.ID, gomock.Any(), gomock.Any()).Return(contract.ErrStaleRead).Times(3)

	repo.EXPECT().BeginContract(gomock.Any(), c.ID).Return(tx, nil)
	tx.EXPECT().Contract().Return(c).AnyTimes()
	tx.EXPECT().LedgerSet(gomock.Any()).Return(progress.Set{ShipmentQuantities: []int64{200}}, nil)
	tx.EXPECT().SaveDerived(gomock.Any(), gomock.Any()).Return(nil)
	tx.EXPECT().Commit().Return(nil)
	tx.EXPECT().Rollback().Return(nil)

	got, err := svc.Recompute(context.Background(), c.ID)
	require.NoError(t, err)
	assert.NotErrorIs(t, err, contract.ErrStaleRead)
	assert.True(t, got.Derived.ExecutionPercent.Equal(decimal.NewFromInt(100)))
}

func TestService_Recompute_ReadFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := contract.NewMockRepository(ctrl)
	svc := contract.NewService(repo)

	id := uuid.New()
	repo.EXPECT().LoadLedger(gomock.Any(), id).Return(nil, progress.Set{}, errors.New("connection reset"))

	got, err := svc.Recompute(context.Background(), id)
	assert.Error(t, err)
	assert.Nil(t, got)
}

func TestService_CheckRemaining(t *testing.T) {
	c := newContract(contract.StatusExecuting)
	c.Derived = progress.Compute(c.Terms(), progress.Set{
		InvoiceAmounts: []decimal.Decimal{decimal.RequireFromString("9000")},
		ReceiptAmounts: []decimal.Decimal{decimal.RequireFromString("4000")},
	})

	type testCase struct {
		name          string
		amount        string
		kind          progress.Kind
		wantRemaining string
		wantOverLimit bool
	}

	tests := []testCase{
		{name: "InvoiceFits", amount: "1000", kind: progress.KindInvoice, wantRemaining: "1000"},
		{name: "InvoiceOver", amount: "1000.01", kind: progress.KindInvoice, wantRemaining: "1000", wantOverLimit: true},
		{name: "ReceiptFits", amount: "5999.99", kind: progress.KindReceipt, wantRemaining: "6000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := contract.NewMockRepository(ctrl)
			repo.EXPECT().GetContract(gomock.Any(), c.ID).Return(c, nil)

			remaining, err := contract.NewService(repo).CheckRemaining(context.Background(), c.ID, decimal.RequireFromString(tt.amount), tt.kind)
			assert.True(t, remaining.Equal(decimal.RequireFromString(tt.wantRemaining)), remaining.String())

			if tt.wantOverLimit {
				var overErr *progress.OverLimitError
				require.ErrorAs(t, err, &overErr)
				assert.Equal(t, tt.kind, overErr.Kind)

				return
			}

			assert.NoError(t, err)
		})
	}
}
