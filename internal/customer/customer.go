package customer

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound = errors.New("customer not found")
	// ErrInUse is returned when deleting a customer that live contracts still reference.
	ErrInUse = errors.New("customer is referenced by contracts")
)

// Customer is a buyer the business signs contracts with.
type Customer struct {
	ID          uuid.UUID
	Name        string
	Contact     string
	Phone       string
	Email       string
	Address     string
	Industry    string
	Region      string
	BankName    string
	BankAccount string
	Remark      string
	CreatorID   *uuid.UUID
	CreatedAt   time.Time
	UpdatedAt   *time.Time
	DeletedAt   *time.Time
}
