package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"swiftcourier-console/internal/apperr"
	"swiftcourier-console/internal/domain"
	"swiftcourier-console/internal/view"
)

type feeFormVM struct {
	view.Page
	Fee domain.DeliveryFee
}

// FeeForm shows the company's fee schedule for editing. A company without a
// fee yet gets a blank create form.
func (h *Handlers) FeeForm(w http.ResponseWriter, r *http.Request) {
	companyID, err := idFromURL(r, "companyID")
	if err != nil {
		h.renderError(w, r, http.StatusBadRequest, "Invalid company id")
		return
	}

	vm := feeFormVM{
		Page: h.page(r, "Delivery Fees"),
		Fee:  domain.DeliveryFee{CompanyID: companyID},
	}

	fee, err := h.API.DeliveryFee(r.Context(), token(r), companyID)
	switch {
	case err == nil:
		vm.Fee = *fee
		vm.Fee.CompanyID = companyID
	case errors.Is(err, apperr.NotFound):
		// no fee yet
	default:
		if h.degraded(w, r, err, "delivery fee") {
			return
		}
	}

	h.View.Render(w, http.StatusOK, "fee_form", vm)
}

func (h *Handlers) FeeSave(w http.ResponseWriter, r *http.Request) {
	companyID, err := idFromURL(r, "companyID")
	if err != nil {
		h.renderError(w, r, http.StatusBadRequest, "Invalid company id")
		return
	}
	if err := r.ParseForm(); err != nil {
		h.renderError(w, r, http.StatusBadRequest, "Invalid form")
		return
	}

	fee := domain.DeliveryFee{
		ID:                formInt64(r, "id"),
		CompanyID:         companyID,
		WeightPerKg:       formMoney(r, "weight_per_kg"),
		PricePerKgOffice:  formMoney(r, "price_per_kg_office"),
		PricePerKgAddress: formMoney(r, "price_per_kg_address"),
	}

	if err := h.API.SaveDeliveryFee(r.Context(), token(r), fee); err != nil {
		if msg, ok := apperr.ValidationMessage(err); ok {
			vm := feeFormVM{Page: h.page(r, "Delivery Fees"), Fee: fee}
			vm.Error = msg
			h.View.Render(w, http.StatusBadRequest, "fee_form", vm)
			return
		}
		h.fail(w, r, err)
		return
	}

	http.Redirect(w, r, fmt.Sprintf("/companies/%d/fees", companyID), http.StatusSeeOther)
}
