package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"swiftcourier-console/internal/apperr"
	"swiftcourier-console/internal/domain"
	"swiftcourier-console/internal/http/middleware"
	"swiftcourier-console/internal/logx"
	"swiftcourier-console/internal/view"
)

func reqID(ctx context.Context) string {
	if id := chimw.GetReqID(ctx); id != "" {
		return id
	}
	return "-"
}

func (h *Handlers) writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		h.Logger.Error("json encode error",
			logx.String("req_id", reqID(r.Context())), logx.Err(err))
	}
}

func idFromURL(r *http.Request, name string) (int64, error) {
	idStr := chi.URLParam(r, name)
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New("invalid id")
	}
	return id, nil
}

// page builds the common template fields from the request.
func (h *Handlers) page(r *http.Request, title string) view.Page {
	return view.Page{Title: title, Sess: middleware.SessionFrom(r.Context())}
}

func (h *Handlers) renderError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	h.View.Render(w, status, "error", view.Page{
		Title: "Error",
		Sess:  middleware.SessionFrom(r.Context()),
		Error: msg,
	})
}

// teardown clears the current session and sends the user to the login
// screen. It is the single 401 cleanup path for every screen.
func (h *Handlers) teardown(w http.ResponseWriter, r *http.Request) {
	if sess := middleware.SessionFrom(r.Context()); sess != nil {
		h.Auth.Invalidate(sess.ID)
	}
	middleware.ClearSessionCookie(w, h.Cookie)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// fail maps an error onto the user-facing failure pages.
func (h *Handlers) fail(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, apperr.Unauthorized):
		h.teardown(w, r)
	case errors.Is(err, apperr.NotFound):
		h.renderError(w, r, http.StatusNotFound, "Not found")
	case errors.Is(err, apperr.Invalid):
		h.renderError(w, r, http.StatusBadRequest, "Invalid input")
	default:
		h.Logger.Error("request failed",
			logx.String("req_id", reqID(r.Context())), logx.Err(err))
		h.renderError(w, r, http.StatusBadGateway, "Something went wrong. Please try again.")
	}
}

// degraded handles a failed list fetch: a 401 answers the request by tearing
// the session down (reported as true); any other failure is logged and the
// screen degrades to its empty state.
func (h *Handlers) degraded(w http.ResponseWriter, r *http.Request, err error, what string) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, apperr.Unauthorized) {
		h.teardown(w, r)
		return true
	}
	h.Logger.Warn("fetch failed",
		logx.String("what", what),
		logx.String("req_id", reqID(r.Context())),
		logx.Err(err),
	)
	return false
}

// token returns the backend token of the current session, if any.
func token(r *http.Request) string {
	if sess := middleware.SessionFrom(r.Context()); sess != nil {
		return sess.Token
	}
	return ""
}

func formInt64(r *http.Request, name string) int64 {
	v, err := strconv.ParseInt(r.PostFormValue(name), 10, 64)
	if err != nil {
		return 0
	}
	return v
}

func formInt64Ptr(r *http.Request, name string) *int64 {
	raw := r.PostFormValue(name)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil
	}
	return &v
}

func formFloat(r *http.Request, name string) float64 {
	v, err := strconv.ParseFloat(r.PostFormValue(name), 64)
	if err != nil {
		return 0
	}
	return v
}

func formMoney(r *http.Request, name string) domain.Money {
	m, err := domain.MoneyFromString(r.PostFormValue(name))
	if err != nil {
		return domain.Money{}
	}
	return m
}
