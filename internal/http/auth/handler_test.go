package auth_test

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
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"

	"github.com/MrJamesThe3rd/salesdesk/internal/auth"
	authhttp "github.com/MrJamesThe3rd/salesdesk/internal/http/auth"
)

func newUser(t *testing.T, role auth.Role) *auth.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("correct horse"), bcrypt.MinCost)
	require.NoError(t, err)

	return &auth.User{ID: uuid.New(), Email: "li.na@example.test", Name: "Li Na", Role: role, PasswordHash: string(hash)}
}

func newRouter(repo auth.UserRepository) http.Handler {
	r := chi.NewRouter()
	r.Route("/auth", authhttp.NewHandler(auth.NewService(repo, "test-secret", time.Hour, time.Hour)).Routes)

	return r
}

func login(t *testing.T, router http.Handler) string {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"email":"li.na@example.test","password":"correct horse"}`))
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var got struct {
		AccessToken string `json:"access_token"`
		User        struct {
			Role string `json:"role"`
			Menu []struct {
				Key string `json:"key"`
			} `json:"menu"`
		} `json:"user"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	require.NotEmpty(t, got.AccessToken)
	assert.NotEmpty(t, got.User.Menu)

	return got.AccessToken
}

func TestHandler_LoginAndMe(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := auth.NewMockUserRepository(ctrl)
	u := newUser(t, auth.RoleSales)
	repo.EXPECT().GetUserByEmail(gomock.Any(), u.Email).Return(u, nil)

	router := newRouter(repo)
	token := login(t, router)

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), u.ID.String())

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/auth/me", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHandler_LoginWrongPassword(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := auth.NewMockUserRepository(ctrl)
	repo.EXPECT().GetUserByEmail(gomock.Any(), gomock.Any()).Return(newUser(t, auth.RoleSales), nil)

	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"email":"li.na@example.test","password":"nope"}`))
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	newRouter(repo).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHandler_Register(t *testing.T) {
	type testCase struct {
		name       string
		role       auth.Role
		wantStatus int
	}

	tests := []testCase{
		{name: "Manager", role: auth.RoleManager, wantStatus: http.StatusCreated},
		{name: "Sales", role: auth.RoleSales, wantStatus: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := auth.NewMockUserRepository(ctrl)
			u := newUser(t, tt.role)
			repo.EXPECT().GetUserByEmail(gomock.Any(), gomock.Any()).Return(u, nil)

			if tt.wantStatus == http.StatusCreated {
				repo.EXPECT().CreateUser(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, nu *auth.User) error {
					nu.ID = uuid.New()
					return nil
				})
			}

			router := newRouter(repo)
			token := login(t, router)

			req := httptest.NewRequest(http.MethodPost, "/auth/users",
				strings.NewReader(`{"email":"wang.wei@example.test","name":"Wang Wei","password":"s3cretpass","role":"purchasing"}`))
			req.Header.Set("Content-Type", "application/json")
			req.Header.Set("Authorization", "Bearer "+token)

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			require.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())

			if tt.wantStatus == http.StatusCreated {
				assert.Contains(t, rec.Body.String(), `"role":"purchasing"`)
				assert.NotContains(t, rec.Body.String(), "password")
			}
		})
	}
}

func TestHandler_Refresh(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := auth.NewMockUserRepository(ctrl)
	u := newUser(t, auth.RoleManager)
	repo.EXPECT().GetUserByEmail(gomock.Any(), gomock.Any()).Return(u, nil)
	repo.EXPECT().GetUser(gomock.Any(), u.ID).Return(u, nil)

	router := newRouter(repo)
	token := login(t, router)

	req := httptest.NewRequest(http.MethodPost, "/auth/refresh", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), "access_token")
}
