package contract

import "errors"

var (
	ErrNotFound            = errors.New("contract not found")
	ErrDuplicateNo         = errors.New("contract number already exists")
	ErrUnknownCustomer     = errors.New("customer does not exist")
	ErrInvalidTransition   = errors.New("invalid status transition")
	ErrIncompleteExecution = errors.New("contract is not fully executed")
	ErrHasLedger           = errors.New("contract has shipments, invoices or receipts")
	ErrNotExecuting        = errors.New("contract is not executing")

	// ErrStaleRead means the ledger changed between reading it and writing the figures.
	// Recompute handles it internally.
	ErrStaleRead = errors.New("ledger changed during recompute")
)
