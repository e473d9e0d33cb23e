package handlers

import (
	"net/http"

	"swiftcourier-console/internal/domain"
	"swiftcourier-console/internal/view"
)

type employeesVM struct {
	view.Page
	Company   *domain.Company
	Employees []domain.Employee
}

// EmployeeList shows a company's staff. The company header comes from the
// nested company record the employee payload already carries.
func (h *Handlers) EmployeeList(w http.ResponseWriter, r *http.Request) {
	companyID, err := idFromURL(r, "companyID")
	if err != nil {
		h.renderError(w, r, http.StatusBadRequest, "Invalid company id")
		return
	}

	vm := employeesVM{Page: h.page(r, "Employees")}

	employees, err := h.API.EmployeesByCompany(r.Context(), token(r), companyID)
	if h.degraded(w, r, err, "employees") {
		return
	}
	vm.Employees = employees
	if len(employees) > 0 {
		vm.Company = &employees[0].Company
	}

	h.View.Render(w, http.StatusOK, "employees", vm)
}
