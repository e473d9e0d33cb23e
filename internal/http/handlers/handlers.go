package handlers

import (
	"net/http"

	"swiftcourier-console/internal/logx"
	"swiftcourier-console/internal/service/packages"
	"swiftcourier-console/internal/service/revenue"
	"swiftcourier-console/internal/session"
	"swiftcourier-console/internal/view"
)

// Handlers renders the console screens on top of the backend gateway.
type Handlers struct {
	Logger   logx.Logger
	View     *view.Renderer
	Auth     *session.Authority
	API      backendAPI
	Packages *packages.Service
	Revenue  *revenue.Service
	Cookie   string
}

func New(
	logger logx.Logger,
	v *view.Renderer,
	auth *session.Authority,
	api backendAPI,
	pkgs *packages.Service,
	rev *revenue.Service,
	cookie string,
) *Handlers {
	return &Handlers{
		Logger:   logger,
		View:     v,
		Auth:     auth,
		API:      api,
		Packages: pkgs,
		Revenue:  rev,
		Cookie:   cookie,
	}
}

func (h *Handlers) Ping(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, r, http.StatusOK, map[string]string{"message": "pong"})
}

func (h *Handlers) HealthcheckHead(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) NotFound(w http.ResponseWriter, r *http.Request) {
	h.renderError(w, r, http.StatusNotFound, "Page not found")
}
