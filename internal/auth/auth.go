// Package auth authenticates back-office users and carries their session through a request.
package auth

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrForbidden          = errors.New("role not allowed")
)

// Role decides which parts of the back office a user sees.
type Role string

const (
	RoleSales      Role = "sales"
	RolePurchasing Role = "purchasing"
	RoleManager    Role = "manager"
)

func (r Role) Valid() bool {
	switch r {
	case RoleSales, RolePurchasing, RoleManager:
		return true
	}

	return false
}

// Label is the human-readable role name shown next to the user.
func (r Role) Label() string {
	switch r {
	case RoleSales:
		return "Sales"
	case RolePurchasing:
		return "Purchasing"
	case RoleManager:
		return "Manager"
	default:
		return "User"
	}
}

type MenuItem struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Path  string `json:"path"`
}

var menus = map[Role][]MenuItem{
	RoleSales: {
		{Key: "customers", Label: "Customers", Path: "/sales/customers"},
		{Key: "contracts", Label: "Sales contracts", Path: "/sales/contracts"},
		{Key: "shipments", Label: "Shipments", Path: "/sales/shipments"},
		{Key: "invoices", Label: "Invoices", Path: "/sales/invoices"},
		{Key: "receipts", Label: "Receipts", Path: "/sales/receipts"},
		{Key: "progress", Label: "Progress", Path: "/sales/progress"},
	},
	RolePurchasing: {
		{Key: "suppliers", Label: "Suppliers", Path: "/purchase/suppliers"},
		{Key: "contracts", Label: "Purchase contracts", Path: "/purchase/contracts"},
		{Key: "arrivals", Label: "Arrivals", Path: "/purchase/arrivals"},
		{Key: "invoices", Label: "Received invoices", Path: "/purchase/invoices"},
		{Key: "payments", Label: "Payments", Path: "/purchase/payments"},
		{Key: "progress", Label: "Progress", Path: "/purchase/progress"},
	},
	RoleManager: {
		{Key: "dashboard", Label: "Dashboard", Path: "/manager/dashboard"},
		{Key: "progress", Label: "Progress", Path: "/manager/progress"},
		{Key: "comparison", Label: "Comparison", Path: "/manager/comparison"},
		{Key: "reports", Label: "Reports", Path: "/manager/reports"},
		{Key: "history", Label: "History", Path: "/manager/history"},
	},
}

// Menu returns the navigation for a role. Unknown roles get an empty menu.
func Menu(r Role) []MenuItem {
	items := menus[r]
	out := make([]MenuItem, len(items))
	copy(out, items)

	return out
}

type User struct {
	ID           uuid.UUID
	Email        string
	Name         string
	Role         Role
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    *time.Time
}

// Session is the authenticated user of a request. The menu is resolved once when the session
// starts.
type Session struct {
	UserID    uuid.UUID  `json:"id"`
	Email     string     `json:"email"`
	Name      string     `json:"name"`
	Role      Role       `json:"role"`
	Menu      []MenuItem `json:"menu"`
	ExpiresAt time.Time  `json:"expires_at"`
}

// HasRole reports whether the session's role is one of roles.
func (s *Session) HasRole(roles ...Role) bool {
	for _, r := range roles {
		if s.Role == r {
			return true
		}
	}

	return false
}

type sessionKey struct{}

func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, s)
}

// FromContext returns the request's session, or nil outside an authenticated request.
func FromContext(ctx context.Context) *Session {
	s, _ := ctx.Value(sessionKey{}).(*Session)
	return s
}

// UserID returns the session's user id, or nil when there is no session.
func UserID(ctx context.Context) *uuid.UUID {
	if s := FromContext(ctx); s != nil {
		id := s.UserID
		return &id
	}

	return nil
}
