package handlers

import (
	"errors"
	"net/http"

	"swiftcourier-console/internal/apperr"
	"swiftcourier-console/internal/service/revenue"
	"swiftcourier-console/internal/view"
)

type revenueVM struct {
	view.Page
	CompanyID int64
	Tab       string
	Report    *revenue.Report
}

func (h *Handlers) RevenueReport(w http.ResponseWriter, r *http.Request) {
	companyID, err := idFromURL(r, "companyID")
	if err != nil {
		h.renderError(w, r, http.StatusBadRequest, "Invalid company id")
		return
	}

	q := r.URL.Query()
	vm := revenueVM{Page: h.page(r, "Revenue"), CompanyID: companyID, Tab: q.Get("tab")}
	if vm.Tab != "chart" {
		vm.Tab = "table"
	}

	report, err := h.Revenue.Range(r.Context(), token(r), companyID, q.Get("from"), q.Get("to"))
	switch {
	case err == nil:
		vm.Report = report
	case errors.Is(err, apperr.Invalid):
		h.renderError(w, r, http.StatusBadRequest, "Invalid date range")
		return
	default:
		if h.degraded(w, r, err, "revenue") {
			return
		}
		from, to := h.Revenue.DefaultRange()
		vm.Report = &revenue.Report{From: from, To: to}
	}

	h.View.Render(w, http.StatusOK, "revenue", vm)
}
