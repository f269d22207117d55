package customer

import (
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/salesdesk/internal/customer"
)

type Response struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Contact     string     `json:"contact,omitempty"`
	Phone       string     `json:"phone,omitempty"`
	Email       string     `json:"email,omitempty"`
	Address     string     `json:"address,omitempty"`
	Industry    string     `json:"industry,omitempty"`
	Region      string     `json:"region,omitempty"`
	BankName    string     `json:"bank_name,omitempty"`
	BankAccount string     `json:"bank_account,omitempty"`
	Remark      string     `json:"remark,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

func NewResponse(c *customer.Customer) Response {
	return Response{
		ID:          c.ID,
		Name:        c.Name,
		Contact:     c.Contact,
		Phone:       c.Phone,
		Email:       c.Email,
		Address:     c.Address,
		Industry:    c.Industry,
		Region:      c.Region,
		BankName:    c.BankName,
		BankAccount: c.BankAccount,
		Remark:      c.Remark,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}
