package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"

	"swiftcourier-console/internal/domain"
)

func storedPackage() domain.Package {
	courier := int64(9)
	return domain.Package{
		ID:              10,
		SenderID:        3,
		RecipientID:     7,
		CourierID:       &courier,
		DeliveryType:    domain.DeliveryTypeAddress,
		DeliveryAddress: "12 Main St",
		Weight:          2.5,
		Price:           domain.MoneyFromFloat(30),
		Status:          domain.PackageStatusSent,
		CompanyID:       1,
		DeliveryFeeID:   4,
	}
}

func TestPackageListResolvesNames(t *testing.T) {
	t.Parallel()

	api := &stubBackend{
		pkgsByCompanyFn: func(int64) ([]domain.Package, error) {
			return []domain.Package{storedPackage()}, nil
		},
		userByIDFn: func(id int64) (*domain.User, error) {
			switch id {
			case 3:
				return &domain.User{ID: 3, Username: "alice"}, nil
			case 7:
				return &domain.User{ID: 7, Username: "bob"}, nil
			}
			return &domain.User{ID: id, Username: "carol"}, nil
		},
	}
	h := newTestHandlers(t, api)

	req := withSession(httptest.NewRequest(http.MethodGet, "/companies/1/packages", nil), domain.RoleAdmin, "")
	req = withURLParams(req, map[string]string{"companyID": "1"})
	rec := httptest.NewRecorder()
	h.PackageList(rec, req)

	body := rec.Body.String()
	require.Contains(t, body, "alice")
	require.Contains(t, body, "bob")
	require.Contains(t, body, "$30.00")
	require.Contains(t, body, "/companies/1/packages/new")
	require.Contains(t, body, "/companies/1/packages/10/edit")
}

func TestPackageListCourierCannotCreate(t *testing.T) {
	t.Parallel()

	api := &stubBackend{
		pkgsByCompanyFn: func(int64) ([]domain.Package, error) {
			return []domain.Package{storedPackage()}, nil
		},
	}
	h := newTestHandlers(t, api)

	req := withSession(httptest.NewRequest(http.MethodGet, "/companies/1/packages", nil), domain.RoleEmployee, domain.EmployeeTypeCourier)
	req = withURLParams(req, map[string]string{"companyID": "1"})
	rec := httptest.NewRecorder()
	h.PackageList(rec, req)

	body := rec.Body.String()
	require.NotContains(t, body, "/companies/1/packages/new")
	require.Contains(t, body, "/companies/1/packages/10/edit", "couriers may still open the form")
}

func TestPackageSaveCourierChangesOnlyStatus(t *testing.T) {
	t.Parallel()

	var updated domain.Package
	api := &stubBackend{
		pkgsByCompanyFn: func(int64) ([]domain.Package, error) {
			return []domain.Package{storedPackage()}, nil
		},
		updatePackageFn: func(pkg domain.Package) error {
			updated = pkg
			return nil
		},
	}
	h := newTestHandlers(t, api)

	// a tampered form posting every field
	form := url.Values{
		"id":               {"10"},
		"sender_id":        {"999"},
		"recipient_id":     {"999"},
		"courier_id":       {"999"},
		"delivery_type":    {"OFFICE"},
		"delivery_address": {"tampered"},
		"weight":           {"99"},
		"price":            {"0.01"},
		"status":           {"DELIVERED"},
		"delivery_fee_id":  {"999"},
	}
	req := withSession(postForm("/companies/1/packages", form), domain.RoleEmployee, domain.EmployeeTypeCourier)
	req = withURLParams(req, map[string]string{"companyID": "1"})
	rec := httptest.NewRecorder()
	h.PackageSave(rec, req)

	require.Equal(t, http.StatusSeeOther, rec.Code)

	want := storedPackage()
	require.Equal(t, domain.PackageStatusDelivered, updated.Status)
	require.Equal(t, want.SenderID, updated.SenderID)
	require.Equal(t, want.RecipientID, updated.RecipientID)
	require.Equal(t, want.DeliveryType, updated.DeliveryType)
	require.Equal(t, want.DeliveryAddress, updated.DeliveryAddress)
	require.Equal(t, want.Weight, updated.Weight)
	require.Equal(t, want.DeliveryFeeID, updated.DeliveryFeeID)
}

func TestPackageSaveCourierCannotRepointOfficeDelivery(t *testing.T) {
	t.Parallel()

	stored := storedPackage()
	stored.DeliveryType = domain.DeliveryTypeOffice
	stored.DeliveryAddress = "Central Office, 1 Hub Sq"

	var updated domain.Package
	api := &stubBackend{
		pkgsByCompanyFn: func(int64) ([]domain.Package, error) {
			return []domain.Package{stored}, nil
		},
		updatePackageFn: func(pkg domain.Package) error {
			updated = pkg
			return nil
		},
	}
	h := newTestHandlers(t, api)

	form := url.Values{
		"id":             {"10"},
		"office_address": {"Rogue Office, 99 Nowhere Ln"},
		"status":         {"DELIVERED"},
	}
	req := withSession(postForm("/companies/1/packages", form), domain.RoleEmployee, domain.EmployeeTypeCourier)
	req = withURLParams(req, map[string]string{"companyID": "1"})
	rec := httptest.NewRecorder()
	h.PackageSave(rec, req)

	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Equal(t, "Central Office, 1 Hub Sq", updated.DeliveryAddress)
	require.Equal(t, domain.PackageStatusDelivered, updated.Status)
}

func TestPackageSaveCourierCannotCreate(t *testing.T) {
	t.Parallel()

	api := &stubBackend{
		createPackageFn: func(domain.Package) error {
			t.Error("couriers must not create packages")
			return nil
		},
	}
	h := newTestHandlers(t, api)

	form := url.Values{
		"status": {"DELIVERED"},
	}
	req := withSession(postForm("/companies/1/packages", form), domain.RoleEmployee, domain.EmployeeTypeCourier)
	req = withURLParams(req, map[string]string{"companyID": "1"})
	rec := httptest.NewRecorder()
	h.PackageSave(rec, req)

	require.Equal(t, http.StatusForbidden, rec.Code)
}

func TestPackageNewForbiddenForCouriers(t *testing.T) {
	t.Parallel()

	h := newTestHandlers(t, &stubBackend{})

	req := withSession(httptest.NewRequest(http.MethodGet, "/companies/1/packages/new", nil), domain.RoleEmployee, domain.EmployeeTypeCourier)
	req = withURLParams(req, map[string]string{"companyID": "1"})
	rec := httptest.NewRecorder()
	h.PackageNew(rec, req)

	require.Equal(t, http.StatusForbidden, rec.Code)
}

func TestPackageEditCourierOfficeSelectDisabled(t *testing.T) {
	t.Parallel()

	stored := storedPackage()
	stored.DeliveryType = domain.DeliveryTypeOffice
	stored.DeliveryAddress = "1 Hub Sq"

	api := &stubBackend{
		pkgsByCompanyFn: func(int64) ([]domain.Package, error) {
			return []domain.Package{stored}, nil
		},
		officesFn: func(int64) ([]domain.Office, error) {
			return []domain.Office{{ID: 5, Name: "Central", Address: "1 Hub Sq", CompanyID: 1}}, nil
		},
	}
	h := newTestHandlers(t, api)

	req := withSession(httptest.NewRequest(http.MethodGet, "/companies/1/packages/10/edit", nil), domain.RoleEmployee, domain.EmployeeTypeCourier)
	req = withURLParams(req, map[string]string{"companyID": "1", "packageID": "10"})
	rec := httptest.NewRecorder()
	h.PackageEdit(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `name="office_address" disabled`)
}

func TestPackageSaveAdminCreates(t *testing.T) {
	t.Parallel()

	var created domain.Package
	api := &stubBackend{
		createPackageFn: func(pkg domain.Package) error {
			created = pkg
			return nil
		},
	}
	h := newTestHandlers(t, api)

	form := url.Values{
		"id":               {"0"},
		"sender_id":        {"3"},
		"recipient_id":     {"7"},
		"courier_id":       {"9"},
		"delivery_type":    {"ADDRESS"},
		"delivery_address": {"12 Main St"},
		"weight":           {"2.5"},
		"price":            {"30"},
		"status":           {"SENT"},
		"delivery_fee_id":  {"4"},
	}
	req := withSession(postForm("/companies/1/packages", form), domain.RoleAdmin, "")
	req = withURLParams(req, map[string]string{"companyID": "1"})
	rec := httptest.NewRecorder()
	h.PackageSave(rec, req)

	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Equal(t, "/companies/1/packages", rec.Header().Get("Location"))

	require.Equal(t, int64(3), created.SenderID)
	require.Equal(t, int64(7), created.RecipientID)
	require.NotNil(t, created.CourierID)
	require.Equal(t, int64(9), *created.CourierID)
	require.Equal(t, int64(1), created.CompanyID)
	require.Equal(t, "$30.00", created.Price.Display())
}

func TestPackageSaveOfficeDeliveryUsesOfficeAddress(t *testing.T) {
	t.Parallel()

	var created domain.Package
	api := &stubBackend{
		createPackageFn: func(pkg domain.Package) error {
			created = pkg
			return nil
		},
	}
	h := newTestHandlers(t, api)

	form := url.Values{
		"sender_id":        {"3"},
		"recipient_id":     {"7"},
		"delivery_type":    {"OFFICE"},
		"office_address":   {"Central Office, 1 Hub Sq"},
		"delivery_address": {"free text must be ignored"},
		"weight":           {"1"},
		"price":            {"10"},
		"delivery_fee_id":  {"4"},
	}
	req := withSession(postForm("/companies/1/packages", form), domain.RoleAdmin, "")
	req = withURLParams(req, map[string]string{"companyID": "1"})
	rec := httptest.NewRecorder()
	h.PackageSave(rec, req)

	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Equal(t, domain.DeliveryTypeOffice, created.DeliveryType)
	require.Equal(t, "Central Office, 1 Hub Sq", created.DeliveryAddress)
}

func TestPackageSaveClientForbidden(t *testing.T) {
	t.Parallel()

	api := &stubBackend{
		createPackageFn: func(domain.Package) error {
			t.Error("clients must never reach the backend")
			return nil
		},
	}
	h := newTestHandlers(t, api)

	req := withSession(postForm("/companies/1/packages", url.Values{"sender_id": {"3"}}), domain.RoleClient, "")
	req = withURLParams(req, map[string]string{"companyID": "1"})
	rec := httptest.NewRecorder()
	h.PackageSave(rec, req)

	require.Equal(t, http.StatusForbidden, rec.Code)
}

func TestPackageSaveReloadRendersFormAgain(t *testing.T) {
	t.Parallel()

	api := &stubBackend{
		officesFn: func(int64) ([]domain.Office, error) {
			return []domain.Office{{ID: 5, Name: "Central", Address: "1 Hub Sq", CompanyID: 1}}, nil
		},
		createPackageFn: func(domain.Package) error {
			t.Error("reload must not create")
			return nil
		},
	}
	h := newTestHandlers(t, api)

	form := url.Values{
		"delivery_type": {"OFFICE"},
		"reload":        {"1"},
	}
	req := withSession(postForm("/companies/1/packages", form), domain.RoleAdmin, "")
	req = withURLParams(req, map[string]string{"companyID": "1"})
	rec := httptest.NewRecorder()
	h.PackageSave(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	// office delivery binds the address to an office select
	require.Contains(t, rec.Body.String(), `name="office_address"`)
	require.Contains(t, rec.Body.String(), "Central")
}

func TestPackageNewForbiddenForClients(t *testing.T) {
	t.Parallel()

	h := newTestHandlers(t, &stubBackend{})

	req := withSession(httptest.NewRequest(http.MethodGet, "/companies/1/packages/new", nil), domain.RoleClient, "")
	req = withURLParams(req, map[string]string{"companyID": "1"})
	rec := httptest.NewRecorder()
	h.PackageNew(rec, req)

	require.Equal(t, http.StatusForbidden, rec.Code)
}
