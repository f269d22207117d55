package customer

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/salesdesk/internal/contract"
	"github.com/MrJamesThe3rd/salesdesk/internal/query"
	"github.com/MrJamesThe3rd/salesdesk/internal/validation"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=customer
type Repository interface {
	CreateCustomer(ctx context.Context, c *Customer) error
	// CreateCustomers inserts all customers atomically.
	CreateCustomers(ctx context.Context, cs []*Customer) error
	GetCustomer(ctx context.Context, id uuid.UUID) (*Customer, error)
	ListCustomers(ctx context.Context, filter ListFilter) (query.Result[*Customer], error)
	UpdateCustomer(ctx context.Context, c *Customer) error
	// DeleteCustomer returns ErrInUse when live contracts reference the customer.
	DeleteCustomer(ctx context.Context, id uuid.UUID) error
}

// ContractLister lists contracts; satisfied by *contract.Service.
type ContractLister interface {
	List(ctx context.Context, filter contract.ListFilter) (query.Result[*contract.Contract], error)
}

type Service struct {
	repo      Repository
	contracts ContractLister
}

func NewService(repo Repository, contracts ContractLister) *Service {
	return &Service{repo: repo, contracts: contracts}
}

type CreateParams struct {
	Name        string     `json:"name" validate:"required,max=128"`
	Contact     string     `json:"contact"`
	Phone       string     `json:"phone"`
	Email       string     `json:"email" validate:"omitempty,email"`
	Address     string     `json:"address"`
	Industry    string     `json:"industry"`
	Region      string     `json:"region"`
	BankName    string     `json:"bank_name"`
	BankAccount string     `json:"bank_account"`
	Remark      string     `json:"remark"`
	CreatorID   *uuid.UUID `json:"-"`
}

type UpdateParams struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=1,max=128"`
	Contact     *string `json:"contact,omitempty"`
	Phone       *string `json:"phone,omitempty"`
	Email       *string `json:"email,omitempty" validate:"omitempty,email"`
	Address     *string `json:"address,omitempty"`
	Industry    *string `json:"industry,omitempty"`
	Region      *string `json:"region,omitempty"`
	BankName    *string `json:"bank_name,omitempty"`
	BankAccount *string `json:"bank_account,omitempty"`
	Remark      *string `json:"remark,omitempty"`
}

type ListFilter struct {
	Search string
	Region string
	Page   query.Page
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Customer, error) {
	if err := validation.Struct(params); err != nil {
		return nil, err
	}

	c := newCustomer(params)

	if err := s.repo.CreateCustomer(ctx, c); err != nil {
		return nil, err
	}

	return c, nil
}

// MaxImport caps the number of rows a single import may create.
const MaxImport = 5000

// Import validates every row before creating any customer, then creates them all in one
// transaction. Field errors are keyed by row, e.g. "rows[3].email", with rows counted from 1.
func (s *Service) Import(ctx context.Context, rows []CreateParams, creatorID *uuid.UUID) ([]*Customer, error) {
	if len(rows) == 0 {
		return nil, validation.Field("rows", "is required")
	}

	if len(rows) > MaxImport {
		return nil, validation.Field("rows", fmt.Sprintf("must contain at most %d customers", MaxImport))
	}

	failed := &validation.Error{Fields: make(map[string]string)}
	customers := make([]*Customer, len(rows))

	for i, params := range rows {
		if err := validation.Struct(params); err != nil {
			var vErr *validation.Error
			if !errors.As(err, &vErr) {
				return nil, err
			}

			for field, msg := range vErr.Fields {
				failed.Fields[fmt.Sprintf("rows[%d].%s", i+1, field)] = msg
			}

			continue
		}

		params.CreatorID = creatorID
		customers[i] = newCustomer(params)
	}

	if len(failed.Fields) > 0 {
		return nil, failed
	}

	if err := s.repo.CreateCustomers(ctx, customers); err != nil {
		return nil, err
	}

	return customers, nil
}

func newCustomer(params CreateParams) *Customer {
	return &Customer{
		Name:        params.Name,
		Contact:     params.Contact,
		Phone:       params.Phone,
		Email:       params.Email,
		Address:     params.Address,
		Industry:    params.Industry,
		Region:      params.Region,
		BankName:    params.BankName,
		BankAccount: params.BankAccount,
		Remark:      params.Remark,
		CreatorID:   params.CreatorID,
	}
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Customer, error) {
	return s.repo.GetCustomer(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) (query.Result[*Customer], error) {
	return s.repo.ListCustomers(ctx, filter)
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, params UpdateParams) (*Customer, error) {
	if err := validation.Struct(params); err != nil {
		return nil, err
	}

	c, err := s.repo.GetCustomer(ctx, id)
	if err != nil {
		return nil, err
	}

	applyUpdate(c, params)

	if err := s.repo.UpdateCustomer(ctx, c); err != nil {
		return nil, err
	}

	return c, nil
}

func applyUpdate(c *Customer, p UpdateParams) {
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}

	set(&c.Name, p.Name)
	set(&c.Contact, p.Contact)
	set(&c.Phone, p.Phone)
	set(&c.Email, p.Email)
	set(&c.Address, p.Address)
	set(&c.Industry, p.Industry)
	set(&c.Region, p.Region)
	set(&c.BankName, p.BankName)
	set(&c.BankAccount, p.BankAccount)
	set(&c.Remark, p.Remark)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteCustomer(ctx, id)
}

// Contracts lists the contracts signed with a customer, newest first.
func (s *Service) Contracts(ctx context.Context, id uuid.UUID, page query.Page) (query.Result[*contract.Contract], error) {
	if _, err := s.repo.GetCustomer(ctx, id); err != nil {
		return query.Result[*contract.Contract]{}, err
	}

	return s.contracts.List(ctx, contract.ListFilter{CustomerID: &id, Page: page})
}
