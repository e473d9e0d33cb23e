package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"swiftcourier-console/internal/apperr"
	"swiftcourier-console/internal/domain"
	"swiftcourier-console/internal/logx"
	"swiftcourier-console/internal/view"
)

// lostPackageMessage is shown verbatim whenever a guest lookup fails,
// regardless of the reason.
const lostPackageMessage = "Oops! This package is lost in another dimension 🛸🚀."

type homeVM struct {
	view.Page
	Query   string
	Package *domain.Package
	Message string
}

// Home renders the public landing page with the guest tracking search.
func (h *Handlers) Home(w http.ResponseWriter, r *http.Request) {
	vm := homeVM{Page: h.page(r, "SwiftCourier"), Query: r.URL.Query().Get("id")}

	if vm.Query != "" {
		id, err := strconv.ParseInt(vm.Query, 10, 64)
		if err != nil || id <= 0 {
			vm.Message = lostPackageMessage
		} else {
			pkg, err := h.API.GuestPackage(r.Context(), id)
			switch {
			case err == nil:
				vm.Package = pkg
			case errors.Is(err, apperr.NotFound):
				vm.Message = lostPackageMessage
			default:
				h.Logger.Warn("guest tracking lookup failed",
					logx.Int64("package_id", id),
					logx.String("req_id", reqID(r.Context())),
					logx.Err(err),
				)
				vm.Message = lostPackageMessage
			}
		}
	}

	h.View.Render(w, http.StatusOK, "home", vm)
}
