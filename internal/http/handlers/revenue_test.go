package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"swiftcourier-console/internal/domain"
)

func TestRevenueReportTable(t *testing.T) {
	t.Parallel()

	api := &stubBackend{
		revenueSumFn: func(companyID int64, from, to string) ([]domain.RevenueEntry, error) {
			require.Equal(t, int64(1), companyID)
			require.Equal(t, "2025-01-01", from)
			require.Equal(t, "2025-02-01", to)
			return []domain.RevenueEntry{
				{Date: "2025-01-05", Amount: domain.MoneyFromFloat(120.5)},
				{Date: "2025-01-10", Amount: domain.MoneyFromFloat(40)},
			}, nil
		},
	}
	h := newTestHandlers(t, api)

	req := withSession(httptest.NewRequest(http.MethodGet, "/companies/1/revenue?from=2025-01-01&to=2025-02-01", nil), domain.RoleAdmin, "")
	req = withURLParams(req, map[string]string{"companyID": "1"})
	rec := httptest.NewRecorder()
	h.RevenueReport(rec, req)

	body := rec.Body.String()
	require.Contains(t, body, "2025-01-05")
	require.Contains(t, body, "$120.50")
	require.Contains(t, body, "$40.00")
}

func TestRevenueReportChartKeepsOrder(t *testing.T) {
	t.Parallel()

	api := &stubBackend{
		revenueSumFn: func(int64, string, string) ([]domain.RevenueEntry, error) {
			return []domain.RevenueEntry{
				{Date: "2025-01-05", Amount: domain.MoneyFromFloat(120.5)},
				{Date: "2025-01-10", Amount: domain.MoneyFromFloat(40)},
			}, nil
		},
	}
	h := newTestHandlers(t, api)

	req := withSession(httptest.NewRequest(http.MethodGet, "/companies/1/revenue?from=2025-01-01&to=2025-02-01&tab=chart", nil), domain.RoleAdmin, "")
	req = withURLParams(req, map[string]string{"companyID": "1"})
	rec := httptest.NewRecorder()
	h.RevenueReport(rec, req)

	body := rec.Body.String()
	require.Contains(t, body, `["2025-01-05","2025-01-10"]`)
	require.Contains(t, body, `[120.5,40]`)
}

func TestRevenueReportRejectsBadDates(t *testing.T) {
	t.Parallel()

	h := newTestHandlers(t, &stubBackend{})

	req := withSession(httptest.NewRequest(http.MethodGet, "/companies/1/revenue?from=garbage", nil), domain.RoleAdmin, "")
	req = withURLParams(req, map[string]string{"companyID": "1"})
	rec := httptest.NewRecorder()
	h.RevenueReport(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}
