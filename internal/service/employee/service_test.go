package employee

import (
	"context"
	"fmt"
	"sort"
	"testing"

	"github.com/arhamhameed97/Timesheet-Management-sub000/internal/domain/employee"
	"github.com/arhamhameed97/Timesheet-Management-sub000/internal/domain/user"
	"github.com/arhamhameed97/Timesheet-Management-sub000/internal/pkg/validator"
	"github.com/go-chi/jwtauth/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testCompanyID = "b3f5c7d0-0000-4000-8000-000000000001"

func adminContext(t *testing.T, companyID string) context.Context {
	t.Helper()

	ja := jwtauth.New("HS256", []byte("test-secret"), nil)
	tok, _, err := ja.Encode(map[string]interface{}{
		"user_id":    "user-1",
		"company_id": companyID,
		"role":       "COMPANY_ADMIN",
	})
	require.NoError(t, err)

	return jwtauth.NewContext(context.Background(), tok, nil)
}

// ========== in-memory fakes ==========

type fakeUserRepo struct {
	users  map[string]user.User // keyed by email
	nextID int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]user.User)}
}

func (f *fakeUserRepo) Create(_ context.Context, u user.User) (user.User, error) {
	if _, exists := f.users[u.Email]; exists {
		return user.User{}, user.ErrUserEmailExists
	}
	f.nextID++
	u.ID = fmt.Sprintf("user-%d", f.nextID)
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

type fakeEmployeeRepo struct {
	employees map[string]employee.Employee
	nextID    int
}

func newFakeEmployeeRepo() *fakeEmployeeRepo {
	return &fakeEmployeeRepo{employees: make(map[string]employee.Employee)}
}

func (f *fakeEmployeeRepo) GetByID(_ context.Context, id, companyID string) (employee.Employee, error) {
	e, ok := f.employees[id]
	if !ok || e.CompanyID != companyID {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}

func (f *fakeEmployeeRepo) GetActiveByCompanyID(_ context.Context, companyID string) ([]employee.Employee, error) {
	var out []employee.Employee
	for _, e := range f.employees {
		if e.CompanyID == companyID && e.EmploymentStatus == employee.EmploymentStatusActive {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeEmployeeRepo) Create(_ context.Context, e employee.Employee) (employee.Employee, error) {
	for _, existing := range f.employees {
		if existing.CompanyID != e.CompanyID {
			continue
		}
		if existing.EmployeeCode == e.EmployeeCode {
			return employee.Employee{}, employee.ErrEmployeeCodeExists
		}
		if existing.Email == e.Email {
			return employee.Employee{}, employee.ErrEmailExists
		}
	}
	f.nextID++
	e.ID = fmt.Sprintf("emp-%d", f.nextID)
	f.employees[e.ID] = e
	return e, nil
}

func (f *fakeEmployeeRepo) Update(_ context.Context, e employee.Employee) error {
	if _, ok := f.employees[e.ID]; !ok {
		return employee.ErrEmployeeNotFound
	}
	f.employees[e.ID] = e
	return nil
}

func newTestService() (employee.EmployeeService, *fakeUserRepo, *fakeEmployeeRepo) {
	userRepo := newFakeUserRepo()
	empRepo := newFakeEmployeeRepo()
	return NewEmployeeService(userRepo, empRepo), userRepo, empRepo
}

func createRequest() employee.CreateEmployeeRequest {
	rate := decimal.NewFromInt(20)
	return employee.CreateEmployeeRequest{
		EmployeeCode: "EMP-001",
		FullName:     "Ada Example",
		Email:        "ada@example.com",
		PaymentType:  string(employee.PaymentTypeHourly),
		HourlyRate:   &rate,
		HireDate:     "2025-01-15",
	}
}

// ========== tests ==========

func TestCreateEmployee(t *testing.T) {
	svc, userRepo, _ := newTestService()
	ctx := adminContext(t, testCompanyID)

	resp, err := svc.Create(ctx, createRequest())
	require.NoError(t, err)

	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, "EMP-001", resp.EmployeeCode)
	assert.Equal(t, employee.PaymentTypeHourly, resp.PaymentType)
	assert.Equal(t, "2025-01-15", resp.HireDate)
	assert.Equal(t, employee.EmploymentStatusActive, resp.EmploymentStatus)
	assert.Nil(t, resp.UserID, "no password means no login account")
	assert.Empty(t, userRepo.users)
}

func TestCreateEmployeeWithAccount(t *testing.T) {
	svc, userRepo, _ := newTestService()
	ctx := adminContext(t, testCompanyID)

	req := createRequest()
	password := "changeme123"
	req.Password = &password

	resp, err := svc.Create(ctx, req)
	require.NoError(t, err)
	require.NotNil(t, resp.UserID)

	account, err := userRepo.GetByEmail(context.Background(), req.Email)
	require.NoError(t, err)
	assert.Equal(t, *resp.UserID, account.ID)
	assert.Equal(t, user.RoleEmployee, account.Role)
	require.NotNil(t, account.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(*account.PasswordHash), []byte(password)))
}

func TestCreateEmployeeDuplicateCode(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := adminContext(t, testCompanyID)

	_, err := svc.Create(ctx, createRequest())
	require.NoError(t, err)

	dup := createRequest()
	dup.Email = "other@example.com"
	_, err = svc.Create(ctx, dup)
	assert.ErrorIs(t, err, employee.ErrEmployeeCodeExists)
}

func TestCreateEmployeeDuplicateAccountEmail(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := adminContext(t, testCompanyID)

	password := "changeme123"
	first := createRequest()
	first.Password = &password
	_, err := svc.Create(ctx, first)
	require.NoError(t, err)

	second := createRequest()
	second.EmployeeCode = "EMP-002"
	second.Password = &password
	_, err = svc.Create(ctx, second)
	assert.ErrorIs(t, err, user.ErrUserEmailExists)
}

func TestCreateEmployeeValidation(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := adminContext(t, testCompanyID)

	req := createRequest()
	req.Email = "not-an-email"
	req.PaymentType = "WEEKLY"
	short := "short"
	req.Password = &short

	_, err := svc.Create(ctx, req)
	var errs validator.ValidationErrors
	require.ErrorAs(t, err, &errs)

	fields := errs.ToMap()
	assert.Contains(t, fields, "email")
	assert.Contains(t, fields, "payment_type")
	assert.Contains(t, fields, "password")
}

func TestUpdateEmployeeStatus(t *testing.T) {
	svc, _, empRepo := newTestService()
	ctx := adminContext(t, testCompanyID)

	created, err := svc.Create(ctx, createRequest())
	require.NoError(t, err)

	resigned := string(employee.EmploymentStatusResigned)
	updated, err := svc.Update(ctx, employee.UpdateEmployeeRequest{
		ID:               created.ID,
		EmploymentStatus: &resigned,
	})
	require.NoError(t, err)
	assert.Equal(t, employee.EmploymentStatusResigned, updated.EmploymentStatus)

	stored := empRepo.employees[created.ID]
	assert.Equal(t, employee.EmploymentStatusResigned, stored.EmploymentStatus)
}

func TestUpdateUnknownEmployee(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := adminContext(t, testCompanyID)

	name := "New Name"
	_, err := svc.Update(ctx, employee.UpdateEmployeeRequest{ID: "missing", FullName: &name})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestListActiveEmployees(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := adminContext(t, testCompanyID)

	first, err := svc.Create(ctx, createRequest())
	require.NoError(t, err)

	second := createRequest()
	second.EmployeeCode = "EMP-002"
	second.Email = "grace@example.com"
	created, err := svc.Create(ctx, second)
	require.NoError(t, err)

	resigned := string(employee.EmploymentStatusResigned)
	_, err = svc.Update(ctx, employee.UpdateEmployeeRequest{ID: created.ID, EmploymentStatus: &resigned})
	require.NoError(t, err)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, first.ID, list[0].ID)
}
