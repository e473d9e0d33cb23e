package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"swiftcourier-console/internal/apperr"
	"swiftcourier-console/internal/domain"
	"swiftcourier-console/internal/http/middleware"
	"swiftcourier-console/internal/logx"
	"swiftcourier-console/internal/service/packages"
	"swiftcourier-console/internal/service/revenue"
	"swiftcourier-console/internal/session"
	"swiftcourier-console/internal/view"
)

// stubBackend implements the gateway surface the handlers and services use.
// Unset functions return zero values.
type stubBackend struct {
	registerFn        func(reg domain.Registration) error
	companiesFn       func() ([]domain.Company, error)
	saveCompanyFn     func(company domain.Company) error
	officesFn         func(companyID int64) ([]domain.Office, error)
	createOfficeFn    func(office domain.Office) error
	updateOfficeFn    func(office domain.Office) error
	employeesFn       func(companyID int64) ([]domain.Employee, error)
	clientsFn         func(companyID int64) ([]domain.Client, error)
	pkgsByCompanyFn   func(companyID int64) ([]domain.Package, error)
	pkgsByRecipientFn func(userID int64) ([]domain.Package, error)
	pkgsBySenderFn    func(userID int64) ([]domain.Package, error)
	guestPackageFn    func(id int64) (*domain.Package, error)
	createPackageFn   func(pkg domain.Package) error
	updatePackageFn   func(pkg domain.Package) error
	userByIDFn        func(id int64) (*domain.User, error)
	feeFn             func(companyID int64) (*domain.DeliveryFee, error)
	saveFeeFn         func(fee domain.DeliveryFee) error
	revenueSumFn      func(companyID int64, from, to string) ([]domain.RevenueEntry, error)
	loginFn           func(username, password string) (string, error)
	meFn              func() (*domain.Profile, error)
}

func (s *stubBackend) Register(_ context.Context, reg domain.Registration) error {
	if s.registerFn == nil {
		return nil
	}
	return s.registerFn(reg)
}

func (s *stubBackend) Companies(context.Context, string) ([]domain.Company, error) {
	if s.companiesFn == nil {
		return nil, nil
	}
	return s.companiesFn()
}

func (s *stubBackend) SaveCompany(_ context.Context, _ string, company domain.Company) error {
	if s.saveCompanyFn == nil {
		return nil
	}
	return s.saveCompanyFn(company)
}

func (s *stubBackend) OfficesByCompany(_ context.Context, _ string, companyID int64) ([]domain.Office, error) {
	if s.officesFn == nil {
		return nil, nil
	}
	return s.officesFn(companyID)
}

func (s *stubBackend) CreateOffice(_ context.Context, _ string, office domain.Office) error {
	if s.createOfficeFn == nil {
		return nil
	}
	return s.createOfficeFn(office)
}

func (s *stubBackend) UpdateOffice(_ context.Context, _ string, office domain.Office) error {
	if s.updateOfficeFn == nil {
		return nil
	}
	return s.updateOfficeFn(office)
}

func (s *stubBackend) EmployeesByCompany(_ context.Context, _ string, companyID int64) ([]domain.Employee, error) {
	if s.employeesFn == nil {
		return nil, nil
	}
	return s.employeesFn(companyID)
}

func (s *stubBackend) ClientsByCompany(_ context.Context, _ string, companyID int64) ([]domain.Client, error) {
	if s.clientsFn == nil {
		return nil, nil
	}
	return s.clientsFn(companyID)
}

func (s *stubBackend) PackagesByCompany(_ context.Context, _ string, companyID int64) ([]domain.Package, error) {
	if s.pkgsByCompanyFn == nil {
		return nil, nil
	}
	return s.pkgsByCompanyFn(companyID)
}

func (s *stubBackend) PackagesByRecipient(_ context.Context, _ string, userID int64) ([]domain.Package, error) {
	if s.pkgsByRecipientFn == nil {
		return nil, nil
	}
	return s.pkgsByRecipientFn(userID)
}

func (s *stubBackend) PackagesBySender(_ context.Context, _ string, userID int64) ([]domain.Package, error) {
	if s.pkgsBySenderFn == nil {
		return nil, nil
	}
	return s.pkgsBySenderFn(userID)
}

func (s *stubBackend) GuestPackage(_ context.Context, id int64) (*domain.Package, error) {
	if s.guestPackageFn == nil {
		return nil, apperr.NotFound
	}
	return s.guestPackageFn(id)
}

func (s *stubBackend) CreatePackage(_ context.Context, _ string, pkg domain.Package) error {
	if s.createPackageFn == nil {
		return nil
	}
	return s.createPackageFn(pkg)
}

func (s *stubBackend) UpdatePackage(_ context.Context, _ string, pkg domain.Package) error {
	if s.updatePackageFn == nil {
		return nil
	}
	return s.updatePackageFn(pkg)
}

func (s *stubBackend) UserByID(_ context.Context, _ string, id int64) (*domain.User, error) {
	if s.userByIDFn == nil {
		return nil, apperr.NotFound
	}
	return s.userByIDFn(id)
}

func (s *stubBackend) DeliveryFee(_ context.Context, _ string, companyID int64) (*domain.DeliveryFee, error) {
	if s.feeFn == nil {
		return nil, apperr.NotFound
	}
	return s.feeFn(companyID)
}

func (s *stubBackend) SaveDeliveryFee(_ context.Context, _ string, fee domain.DeliveryFee) error {
	if s.saveFeeFn == nil {
		return nil
	}
	return s.saveFeeFn(fee)
}

func (s *stubBackend) RevenueSum(_ context.Context, _ string, companyID int64, from, to string) ([]domain.RevenueEntry, error) {
	if s.revenueSumFn == nil {
		return nil, nil
	}
	return s.revenueSumFn(companyID, from, to)
}

// stubAuth adapts a stubBackend to the session authority.
type stubAuth struct {
	api *stubBackend
}

func (a stubAuth) Login(_ context.Context, username, password string) (string, error) {
	if a.api.loginFn == nil {
		return "", apperr.Unauthorized
	}
	return a.api.loginFn(username, password)
}

func (a stubAuth) Me(context.Context, string) (*domain.Profile, error) {
	if a.api.meFn == nil {
		return nil, apperr.Unauthorized
	}
	return a.api.meFn()
}

func newTestHandlers(t *testing.T, api *stubBackend) *Handlers {
	t.Helper()

	v, err := view.New(nil)
	require.NoError(t, err)

	store, err := session.NewStore("", time.Hour, nil)
	require.NoError(t, err)
	auth := session.NewAuthority(stubAuth{api: api}, store, nil, nil)

	return New(
		logx.Nop(),
		v,
		auth,
		api,
		packages.NewService(api, nil, 0),
		revenue.NewService(api, nil),
		"sc_session",
	)
}

func withSession(r *http.Request, role domain.Role, empType domain.EmployeeType) *http.Request {
	sess := &session.Session{
		ID:    "sid-1",
		Token: "tok",
		Profile: &domain.Profile{
			ID: 1, Username: "alice", UserID: 100,
			Role: role, EmployeeType: empType,
		},
		CreatedAt: time.Now(),
	}
	return r.WithContext(middleware.WithSession(r.Context(), sess))
}

func withURLParams(r *http.Request, params map[string]string) *http.Request {
	rctx := chi.NewRouteContext()
	for k, v := range params {
		rctx.URLParams.Add(k, v)
	}
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func postForm(target string, form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}
