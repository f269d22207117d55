// Package attachment stores the files users attach to contracts and ledger entries.
package attachment

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound        = errors.New("attachment not found")
	ErrOwnerNotFound   = errors.New("attachment owner not found")
	ErrTooLarge        = errors.New("attachment exceeds the upload limit")
	ErrUnsupportedType = errors.New("attachment type not allowed")
)

// OwnerKind names the record type an attachment belongs to.
type OwnerKind string

const (
	OwnerContract OwnerKind = "contract"
	OwnerShipment OwnerKind = "shipment"
	OwnerInvoice  OwnerKind = "invoice"
	OwnerReceipt  OwnerKind = "receipt"
)

func (k OwnerKind) Valid() bool {
	switch k {
	case OwnerContract, OwnerShipment, OwnerInvoice, OwnerReceipt:
		return true
	}

	return false
}

type Owner struct {
	Kind OwnerKind
	ID   uuid.UUID
}

type Attachment struct {
	ID          uuid.UUID
	Owner       Owner
	Filename    string
	ContentType string
	Size        int64
	CreatorID   *uuid.UUID
	CreatedAt   time.Time
}
