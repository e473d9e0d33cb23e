package handlers

import (
	"net/http"

	"swiftcourier-console/internal/domain"
	"swiftcourier-console/internal/http/middleware"
	"swiftcourier-console/internal/view"
)

type dashboardVM struct {
	view.Page
	IsClient bool
	Tab      string
	Packages []domain.Package
}

// Dashboard shows clients their received and sent packages; other roles get
// a plain landing card.
func (h *Handlers) Dashboard(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFrom(r.Context())

	vm := dashboardVM{
		Page:     h.page(r, "Dashboard"),
		IsClient: sess.Profile.Role == domain.RoleClient,
		Tab:      r.URL.Query().Get("tab"),
	}
	if vm.Tab != "sender" {
		vm.Tab = "recipient"
	}

	if vm.IsClient {
		var err error
		if vm.Tab == "sender" {
			vm.Packages, err = h.Packages.SentBy(r.Context(), sess.Token, sess.Profile.UserID)
		} else {
			vm.Packages, err = h.Packages.ReceivedBy(r.Context(), sess.Token, sess.Profile.UserID)
		}
		if h.degraded(w, r, err, "dashboard packages") {
			return
		}
	}

	h.View.Render(w, http.StatusOK, "dashboard", vm)
}
