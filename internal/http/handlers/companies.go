package handlers

import (
	"net/http"

	"swiftcourier-console/internal/apperr"
	"swiftcourier-console/internal/domain"
	"swiftcourier-console/internal/http/middleware"
	"swiftcourier-console/internal/view"
)

type companiesVM struct {
	view.Page
	CanManage bool
	Companies []domain.Company
}

type companyFormVM struct {
	view.Page
	Company domain.Company
}

func (h *Handlers) CompanyList(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFrom(r.Context())

	vm := companiesVM{
		Page:      h.page(r, "Companies"),
		CanManage: sess.Profile.Role == domain.RoleAdmin,
	}

	companies, err := h.API.Companies(r.Context(), sess.Token)
	if h.degraded(w, r, err, "companies") {
		return
	}
	vm.Companies = companies

	h.View.Render(w, http.StatusOK, "companies", vm)
}

func (h *Handlers) CompanyNew(w http.ResponseWriter, r *http.Request) {
	h.View.Render(w, http.StatusOK, "company_form", companyFormVM{Page: h.page(r, "New Company")})
}

// CompanyEdit loads the company to edit from the company list. The backend
// has no fetch-one endpoint for companies.
func (h *Handlers) CompanyEdit(w http.ResponseWriter, r *http.Request) {
	id, err := idFromURL(r, "companyID")
	if err != nil {
		h.renderError(w, r, http.StatusBadRequest, "Invalid company id")
		return
	}

	companies, err := h.API.Companies(r.Context(), token(r))
	if err != nil {
		h.fail(w, r, err)
		return
	}

	for _, c := range companies {
		if c.ID == id {
			h.View.Render(w, http.StatusOK, "company_form", companyFormVM{
				Page:    h.page(r, "Edit Company"),
				Company: c,
			})
			return
		}
	}
	h.fail(w, r, apperr.NotFound)
}

// CompanySave creates or updates a company; the backend distinguishes the
// two by the presence of an id in the payload.
func (h *Handlers) CompanySave(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderError(w, r, http.StatusBadRequest, "Invalid form")
		return
	}

	company := domain.Company{
		ID:      formInt64(r, "id"),
		Name:    r.PostFormValue("name"),
		Address: r.PostFormValue("address"),
		Phone:   r.PostFormValue("phone"),
		Email:   r.PostFormValue("email"),
	}

	if err := h.API.SaveCompany(r.Context(), token(r), company); err != nil {
		if msg, ok := apperr.ValidationMessage(err); ok {
			vm := companyFormVM{Page: h.page(r, "Company"), Company: company}
			vm.Error = msg
			h.View.Render(w, http.StatusBadRequest, "company_form", vm)
			return
		}
		h.fail(w, r, err)
		return
	}

	http.Redirect(w, r, "/companies", http.StatusSeeOther)
}
