package ledger_test

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
	"github.com/MrJamesThe3rd/salesdesk/internal/ledger"
	"github.com/MrJamesThe3rd/salesdesk/internal/progress"
	"github.com/MrJamesThe3rd/salesdesk/internal/validation"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// lockedContract is a 10,000 contract: 200 units at 50.
func lockedContract(status contract.Status) *contract.Contract {
	return &contract.Contract{
		ID:            uuid.New(),
		No:            "HT-2024-001",
		UnitPrice:     dec("50"),
		TotalQuantity: 200,
		Status:        status,
	}
}

// expectRefresh sets up the recompute-and-commit tail that every successful write ends with.
// after is the ledger as the tx sees it once the write is staged.
func expectRefresh(tx *ledger.MockContractTx, after progress.Set, saved *progress.Derived) {
	tx.EXPECT().LedgerSet(gomock.Any()).Return(after, nil)
	tx.EXPECT().SaveDerived(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, d progress.Derived) error {
		if saved != nil {
			*saved = d
		}
		return nil
	})
	tx.EXPECT().Commit().Return(nil)
}

func TestService_CreateShipment(t *testing.T) {
	date := time.Date(2024, 4, 2, 0, 0, 0, 0, time.UTC)

	type testCase struct {
		name     string
		status   contract.Status
		params   func(contractID uuid.UUID) ledger.CreateShipmentParams
		wantErr  error
		validate bool
	}

	tests := []testCase{
		{
			name:   "Success",
			status: contract.StatusExecuting,
			params: func(id uuid.UUID) ledger.CreateShipmentParams {
				return ledger.CreateShipmentParams{ContractID: id, ProductName: "Steel coil", Date: date, Quantity: 50}
			},
		},
		{
			name:   "ContractCompleted",
			status: contract.StatusCompleted,
			params: func(id uuid.UUID) ledger.CreateShipmentParams {
				return ledger.CreateShipmentParams{ContractID: id, ProductName: "Steel coil", Date: date, Quantity: 50}
			},
			wantErr: contract.ErrNotExecuting,
		},
		{
			name:   "ZeroQuantity",
			status: contract.StatusExecuting,
			params: func(id uuid.UUID) ledger.CreateShipmentParams {
				return ledger.CreateShipmentParams{ContractID: id, ProductName: "Steel coil", Date: date}
			},
			validate: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := ledger.NewMockRepository(ctrl)
			tx := ledger.NewMockContractTx(ctrl)
			cache := contract.NewMockSnapshotCache(ctrl)
			svc := ledger.NewService(repo, ledger.WithCache(cache))

			c := lockedContract(tt.status)
			var saved progress.Derived

			if !tt.validate {
				repo.EXPECT().BeginContract(gomock.Any(), c.ID).Return(tx, nil)
				tx.EXPECT().Contract().Return(c).AnyTimes()
				tx.EXPECT().Rollback().Return(nil)
			}

			if tt.wantErr == nil && !tt.validate {
				tx.EXPECT().CreateShipment(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, s *ledger.Shipment) error {
					s.ID = uuid.New()
					return nil
				})
				expectRefresh(tx, progress.Set{ShipmentQuantities: []int64{50}}, &saved)
				cache.EXPECT().Delete(gomock.Any(), c.ID)
			}

			got, err := svc.CreateShipment(context.Background(), tt.params(c.ID))

			if tt.validate {
				var vErr *validation.Error
				assert.ErrorAs(t, err, &vErr)

				return
			}

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			assert.NotEmpty(t, got.ID)
			assert.Equal(t, ledger.FreightUnpaid, got.FreightStatus)
			assert.Equal(t, ledger.InvoiceUnissued, got.InvoiceStatus)
			assert.Equal(t, c.No, got.ContractNo)
			assert.True(t, saved.ExecutionPercent.Equal(decimal.NewFromInt(25)))
			assert.True(t, c.Derived.ExecutionPercent.Equal(decimal.NewFromInt(25)))
		})
	}
}

func TestService_CreateInvoice_Limit(t *testing.T) {
	date := time.Date(2024, 4, 2, 0, 0, 0, 0, time.UTC)
	booked := progress.Set{InvoiceAmounts: []decimal.Decimal{dec("9000")}}

	type testCase struct {
		name          string
		amount        string
		override      bool
		allowOverride bool
		wantOverLimit bool
	}

	tests := []testCase{
		{name: "Fits", amount: "1000", allowOverride: true},
		{name: "OverLimit", amount: "1000.01", allowOverride: true, wantOverLimit: true},
		{name: "OverrideAllowed", amount: "5000", override: true, allowOverride: true},
		{name: "OverrideDisabled", amount: "5000", override: true, allowOverride: false, wantOverLimit: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := ledger.NewMockRepository(ctrl)
			tx := ledger.NewMockContractTx(ctrl)
			svc := ledger.NewService(repo, ledger.WithOverridePolicy(tt.allowOverride))

			c := lockedContract(contract.StatusExecuting)

			repo.EXPECT().BeginContract(gomock.Any(), c.ID).Return(tx, nil)
			tx.EXPECT().Contract().Return(c).AnyTimes()
			tx.EXPECT().Rollback().Return(nil)

			checked := !(tt.override && tt.allowOverride)
			if checked {
				tx.EXPECT().LedgerSet(gomock.Any()).Return(booked, nil)
			}

			if !tt.wantOverLimit {
				tx.EXPECT().CreateInvoice(gomock.Any(), gomock.Any()).Return(nil)
				after := progress.Set{InvoiceAmounts: append(append([]decimal.Decimal{}, booked.InvoiceAmounts...), dec(tt.amount))}
				expectRefresh(tx, after, nil)
			}

			got, err := svc.CreateInvoice(context.Background(), ledger.CreateInvoiceParams{
				ContractID:  c.ID,
				No:          "FP-001",
				ProductName: "Steel coil",
				Amount:      dec(tt.amount),
				IssueDate:   date,
				Override:    tt.override,
			})

			if tt.wantOverLimit {
				var overErr *progress.OverLimitError
				require.ErrorAs(t, err, &overErr)
				assert.Equal(t, progress.KindInvoice, overErr.Kind)
				assert.True(t, overErr.Remaining.Equal(dec("1000")))
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			assert.True(t, got.Amount.Equal(dec(tt.amount)))
		})
	}
}

func TestService_UpdateReceipt_ExcludesOwnAmount(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := ledger.NewMockRepository(ctrl)
	tx := ledger.NewMockContractTx(ctrl)
	svc := ledger.NewService(repo, ledger.WithOverridePolicy(false))

	c := lockedContract(contract.StatusCompleted)
	id := uuid.New()
	current := &ledger.Receipt{ID: id, ContractID: c.ID, ProductName: "Steel coil", Amount: dec("6000")}

	// 6000 + 4000 booked; raising this receipt to 6000.50 would overshoot by 0.50.
	booked := progress.Set{ReceiptAmounts: []decimal.Decimal{dec("6000"), dec("4000")}}

	repo.EXPECT().GetReceipt(gomock.Any(), id).Return(current, nil)
	repo.EXPECT().BeginContract(gomock.Any(), c.ID).Return(tx, nil)
	tx.EXPECT().Contract().Return(c).AnyTimes()
	tx.EXPECT().LockedReceipt(gomock.Any(), id).Return(current, nil)
	tx.EXPECT().LedgerSet(gomock.Any()).Return(booked, nil)
	tx.EXPECT().Rollback().Return(nil)

	amount := dec("6000.50")
	_, err := svc.UpdateReceipt(context.Background(), id, ledger.UpdateReceiptParams{Amount: &amount, Override: true})

	var overErr *progress.OverLimitError
	require.ErrorAs(t, err, &overErr)
	assert.True(t, overErr.Remaining.Equal(dec("6000")), overErr.Remaining.String())
}

func TestService_UpdateInvoice_LoweringSkipsCheck(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := ledger.NewMockRepository(ctrl)
	tx := ledger.NewMockContractTx(ctrl)
	svc := ledger.NewService(repo)

	c := lockedContract(contract.StatusExecuting)
	id := uuid.New()
	current := &ledger.Invoice{ID: id, ContractID: c.ID, No: "FP-001", Amount: dec("12000")}

	repo.EXPECT().GetInvoice(gomock.Any(), id).Return(current, nil)
	repo.EXPECT().BeginContract(gomock.Any(), c.ID).Return(tx, nil)
	tx.EXPECT().Contract().Return(c).AnyTimes()
	tx.EXPECT().LockedInvoice(gomock.Any(), id).Return(current, nil)
	tx.EXPECT().UpdateInvoice(gomock.Any(), current).Return(nil)
	tx.EXPECT().Rollback().Return(nil)

	var saved progress.Derived
	expectRefresh(tx, progress.Set{InvoiceAmounts: []decimal.Decimal{dec("11000")}}, &saved)

	amount := dec("11000")
	got, err := svc.UpdateInvoice(context.Background(), id, ledger.UpdateInvoiceParams{Amount: &amount})
	require.NoError(t, err)
	assert.True(t, got.Amount.Equal(amount))
	assert.True(t, saved.UninvoicedAmount.IsZero())
	assert.True(t, saved.OverInvoiced())
}

func TestService_DeleteShipment(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := ledger.NewMockRepository(ctrl)
	tx := ledger.NewMockContractTx(ctrl)
	svc := ledger.NewService(repo)

	c := lockedContract(contract.StatusCancelled)
	id := uuid.New()

	repo.EXPECT().GetShipment(gomock.Any(), id).Return(&ledger.Shipment{ID: id, ContractID: c.ID}, nil)
	repo.EXPECT().BeginContract(gomock.Any(), c.ID).Return(tx, nil)
	tx.EXPECT().Contract().Return(c).AnyTimes()
	tx.EXPECT().DeleteShipment(gomock.Any(), id).Return(nil)
	tx.EXPECT().Rollback().Return(nil)

	var saved progress.Derived
	expectRefresh(tx, progress.Set{}, &saved)

	require.NoError(t, svc.DeleteShipment(context.Background(), id))
	assert.Equal(t, int64(0), saved.ExecutedQuantity)
}

func TestService_DeleteShipment_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := ledger.NewMockRepository(ctrl)
	svc := ledger.NewService(repo)

	id := uuid.New()
	repo.EXPECT().GetShipment(gomock.Any(), id).Return(nil, ledger.ErrShipmentNotFound)

	err := svc.DeleteShipment(context.Background(), id)
	assert.ErrorIs(t, err, ledger.ErrShipmentNotFound)
}

func TestService_WriteFailureRollsBack(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := ledger.NewMockRepository(ctrl)
	tx := ledger.NewMockContractTx(ctrl)
	svc := ledger.NewService(repo)

	c := lockedContract(contract.StatusExecuting)

	repo.EXPECT().BeginContract(gomock.Any(), c.ID).Return(tx, nil)
	tx.EXPECT().Contract().Return(c).AnyTimes()
	tx.EXPECT().LedgerSet(gomock.Any()).Return(progress.Set{}, nil)
	tx.EXPECT().CreateReceipt(gomock.Any(), gomock.Any()).Return(nil)
	tx.EXPECT().LedgerSet(gomock.Any()).Return(progress.Set{}, errors.New("connection reset"))
	tx.EXPECT().Rollback().Return(nil)

	_, err := svc.CreateReceipt(context.Background(), ledger.CreateReceiptParams{
		ContractID:  c.ID,
		ProductName: "Steel coil",
		Amount:      dec("100"),
		ReceiptDate: time.Date(2024, 4, 2, 0, 0, 0, 0, time.UTC),
	})
	assert.Error(t, err)
}

func TestService_ListShipments_InvalidStatus(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := ledger.NewService(ledger.NewMockRepository(ctrl))
	bogus := ledger.FreightStatus("pending")

	_, err := svc.ListShipments(context.Background(), ledger.ShipmentFilter{FreightStatus: &bogus})

	var vErr *validation.Error
	assert.ErrorAs(t, err, &vErr)
}
