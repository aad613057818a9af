package auth

import (
	"context"
	"testing"

	"github.com/arhamhameed97/Timesheet-Management-sub000/internal/domain/auth"
	"github.com/arhamhameed97/Timesheet-Management-sub000/internal/domain/user"
	"github.com/arhamhameed97/Timesheet-Management-sub000/internal/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fakeUserRepo struct {
	users map[string]user.User // keyed by email
}

func (f *fakeUserRepo) Create(_ context.Context, u user.User) (user.User, error) {
	f.users[u.Email] = u
	return u, nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (user.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (user.User, error) {
	u, ok := f.users[email]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

func newTestService(t *testing.T) (auth.AuthService, *fakeUserRepo) {
	t.Helper()

	repo := &fakeUserRepo{users: make(map[string]user.User)}
	svc := NewAuthService(repo, jwt.NewJWTService("test-secret", "15m"))
	return svc, repo
}

func seedUser(t *testing.T, repo *fakeUserRepo, email, password string, role user.Role) {
	t.Helper()

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	hash := string(hashed)
	companyID := "company-1"
	employeeID := "employee-1"

	repo.users[email] = user.User{
		ID:           "user-1",
		CompanyID:    &companyID,
		Email:        email,
		PasswordHash: &hash,
		Role:         role,
		EmployeeID:   &employeeID,
	}
}

func TestLoginSuccess(t *testing.T) {
	svc, repo := newTestService(t)
	seedUser(t, repo, "jane@example.com", "s3cret-pass", user.RoleEmployee)

	resp, err := svc.Login(context.Background(), auth.LoginRequest{
		Email:    "jane@example.com",
		Password: "s3cret-pass",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.AccessToken)
	assert.Greater(t, resp.ExpiresAt, int64(0))
	assert.Equal(t, string(user.RoleEmployee), resp.Role)
	require.NotNil(t, resp.EmployeeID)
	assert.Equal(t, "employee-1", *resp.EmployeeID)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, repo := newTestService(t)
	seedUser(t, repo, "jane@example.com", "s3cret-pass", user.RoleEmployee)

	_, err := svc.Login(context.Background(), auth.LoginRequest{
		Email:    "jane@example.com",
		Password: "wrong",
	})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestLoginUnknownEmail(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Login(context.Background(), auth.LoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever",
	})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials, "unknown email reads the same as a bad password")
}

func TestLoginValidation(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Login(context.Background(), auth.LoginRequest{Email: "not-an-email", Password: "x"})
	assert.Error(t, err)

	_, err = svc.Login(context.Background(), auth.LoginRequest{Email: "jane@example.com"})
	assert.Error(t, err)
}
