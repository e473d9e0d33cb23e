package handlers

import (
	"fmt"
	"net/http"

	"swiftcourier-console/internal/apperr"
	"swiftcourier-console/internal/domain"
	"swiftcourier-console/internal/view"
)

type officesVM struct {
	view.Page
	CompanyID int64
	Offices   []domain.Office
}

type officeFormVM struct {
	view.Page
	CompanyID int64
	Office    domain.Office
}

func (h *Handlers) OfficeList(w http.ResponseWriter, r *http.Request) {
	companyID, err := idFromURL(r, "companyID")
	if err != nil {
		h.renderError(w, r, http.StatusBadRequest, "Invalid company id")
		return
	}

	vm := officesVM{Page: h.page(r, "Offices"), CompanyID: companyID}

	offices, err := h.API.OfficesByCompany(r.Context(), token(r), companyID)
	if h.degraded(w, r, err, "offices") {
		return
	}
	vm.Offices = offices

	h.View.Render(w, http.StatusOK, "offices", vm)
}

func (h *Handlers) OfficeNew(w http.ResponseWriter, r *http.Request) {
	companyID, err := idFromURL(r, "companyID")
	if err != nil {
		h.renderError(w, r, http.StatusBadRequest, "Invalid company id")
		return
	}
	h.View.Render(w, http.StatusOK, "office_form", officeFormVM{
		Page:      h.page(r, "New Office"),
		CompanyID: companyID,
	})
}

func (h *Handlers) OfficeEdit(w http.ResponseWriter, r *http.Request) {
	companyID, err := idFromURL(r, "companyID")
	if err != nil {
		h.renderError(w, r, http.StatusBadRequest, "Invalid company id")
		return
	}
	officeID, err := idFromURL(r, "officeID")
	if err != nil {
		h.renderError(w, r, http.StatusBadRequest, "Invalid office id")
		return
	}

	offices, err := h.API.OfficesByCompany(r.Context(), token(r), companyID)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	for _, o := range offices {
		if o.ID == officeID {
			h.View.Render(w, http.StatusOK, "office_form", officeFormVM{
				Page:      h.page(r, "Edit Office"),
				CompanyID: companyID,
				Office:    o,
			})
			return
		}
	}
	h.fail(w, r, apperr.NotFound)
}

func (h *Handlers) OfficeSave(w http.ResponseWriter, r *http.Request) {
	companyID, err := idFromURL(r, "companyID")
	if err != nil {
		h.renderError(w, r, http.StatusBadRequest, "Invalid company id")
		return
	}
	if err := r.ParseForm(); err != nil {
		h.renderError(w, r, http.StatusBadRequest, "Invalid form")
		return
	}

	office := domain.Office{
		ID:        formInt64(r, "id"),
		Name:      r.PostFormValue("name"),
		Address:   r.PostFormValue("address"),
		CompanyID: companyID,
	}

	if office.ID != 0 {
		err = h.API.UpdateOffice(r.Context(), token(r), office)
	} else {
		err = h.API.CreateOffice(r.Context(), token(r), office)
	}
	if err != nil {
		if msg, ok := apperr.ValidationMessage(err); ok {
			vm := officeFormVM{Page: h.page(r, "Office"), CompanyID: companyID, Office: office}
			vm.Error = msg
			h.View.Render(w, http.StatusBadRequest, "office_form", vm)
			return
		}
		h.fail(w, r, err)
		return
	}

	http.Redirect(w, r, fmt.Sprintf("/companies/%d/offices", companyID), http.StatusSeeOther)
}
