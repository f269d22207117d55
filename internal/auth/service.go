package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/MrJamesThe3rd/salesdesk/internal/validation"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=auth
type UserRepository interface {
	CreateUser(ctx context.Context, u *User) error
	GetUser(ctx context.Context, id uuid.UUID) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)
}

// Authenticator issues and checks session tokens.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (Token, *Session, error)
	Verify(ctx context.Context, token string) (*Session, error)
	Refresh(ctx context.Context, token string) (Token, error)
}

type Token struct {
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
}

type claims struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  Role   `json:"role"`
	jwt.RegisteredClaims
}

// Service is the Authenticator backed by HS256 tokens and bcrypt password hashes.
type Service struct {
	repo          UserRepository
	secret        []byte
	ttl           time.Duration
	refreshWindow time.Duration
	issuer        string
	now           func() time.Time
}

var _ Authenticator = (*Service)(nil)

type Option func(*Service)

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func WithIssuer(issuer string) Option {
	return func(s *Service) { s.issuer = issuer }
}

func NewService(repo UserRepository, secret string, ttl, refreshWindow time.Duration, opts ...Option) *Service {
	s := &Service{
		repo:          repo,
		secret:        []byte(secret),
		ttl:           ttl,
		refreshWindow: refreshWindow,
		issuer:        "salesdesk",
		now:           time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

func (s *Service) Login(ctx context.Context, email, password string) (Token, *Session, error) {
	u, err := s.repo.GetUserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return Token{}, nil, ErrInvalidCredentials
		}

		return Token{}, nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return Token{}, nil, ErrInvalidCredentials
	}

	tok, err := s.issue(u)
	if err != nil {
		return Token{}, nil, err
	}

	return tok, newSession(u.ID, u.Email, u.Name, u.Role, tok.ExpiresAt), nil
}

func (s *Service) Verify(_ context.Context, token string) (*Session, error) {
	c, err := s.parse(token, 0)
	if err != nil {
		return nil, err
	}

	id, err := uuid.Parse(c.Subject)
	if err != nil {
		return nil, ErrInvalidToken
	}

	return newSession(id, c.Email, c.Name, c.Role, c.ExpiresAt.Time), nil
}

// Refresh exchanges a valid token, or one that expired less than the refresh window ago, for a
// fresh one. The user is reloaded so role changes take effect.
func (s *Service) Refresh(ctx context.Context, token string) (Token, error) {
	c, err := s.parse(token, s.refreshWindow)
	if err != nil {
		return Token{}, err
	}

	id, err := uuid.Parse(c.Subject)
	if err != nil {
		return Token{}, ErrInvalidToken
	}

	u, err := s.repo.GetUser(ctx, id)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return Token{}, ErrInvalidToken
		}

		return Token{}, err
	}

	return s.issue(u)
}

type RegisterParams struct {
	Email    string `json:"email" validate:"required,email"`
	Name     string `json:"name" validate:"required"`
	Password string `json:"password" validate:"required,min=8"`
	Role     Role   `json:"role" validate:"required,oneof=sales purchasing manager"`
}

// Register creates a back-office user.
func (s *Service) Register(ctx context.Context, params RegisterParams) (*User, error) {
	if err := validation.Struct(params); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(params.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	u := &User{
		Email:        normalizeEmail(params.Email),
		Name:         params.Name,
		Role:         params.Role,
		PasswordHash: string(hash),
	}

	if err := s.repo.CreateUser(ctx, u); err != nil {
		return nil, err
	}

	return u, nil
}

// EnsureManager registers a manager account under email unless a user with that email exists.
// It reports whether an account was created.
func (s *Service) EnsureManager(ctx context.Context, email, password string) (bool, error) {
	_, err := s.repo.GetUserByEmail(ctx, normalizeEmail(email))
	if err == nil {
		return false, nil
	}

	if !errors.Is(err, ErrUserNotFound) {
		return false, err
	}

	_, err = s.Register(ctx, RegisterParams{
		Email:    email,
		Name:     RoleManager.Label(),
		Password: password,
		Role:     RoleManager,
	})
	if err != nil {
		return false, fmt.Errorf("creating manager account: %w", err)
	}

	return true, nil
}

func (s *Service) issue(u *User) (Token, error) {
	now := s.now()
	expires := now.Add(s.ttl)

	c := claims{
		Email: u.Email,
		Name:  u.Name,
		Role:  u.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID.String(),
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(s.secret)
	if err != nil {
		return Token{}, fmt.Errorf("signing token: %w", err)
	}

	return Token{AccessToken: signed, ExpiresAt: c.ExpiresAt.Time}, nil
}

func (s *Service) parse(token string, leeway time.Duration) (*claims, error) {
	var c claims

	_, err := jwt.ParseWithClaims(token, &c, func(*jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(leeway),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	if !c.Role.Valid() {
		return nil, ErrInvalidToken
	}

	return &c, nil
}

func newSession(id uuid.UUID, email, name string, role Role, expires time.Time) *Session {
	return &Session{
		UserID:    id,
		Email:     email,
		Name:      name,
		Role:      role,
		Menu:      Menu(role),
		ExpiresAt: expires,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
