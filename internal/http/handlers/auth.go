package handlers

import (
	"errors"
	"net/http"

	"swiftcourier-console/internal/apperr"
	"swiftcourier-console/internal/domain"
	"swiftcourier-console/internal/http/middleware"
	"swiftcourier-console/internal/logx"
	"swiftcourier-console/internal/session"
	"swiftcourier-console/internal/view"
)

const loginFailedMessage = "Invalid username or password."

type registerVM struct {
	view.Page
	Username     string
	Role         string
	EmployeeType string
	CompanyID    int64
	OfficeID     int64
	Companies    []domain.Company
	Offices      []domain.Office
}

func (h *Handlers) LoginPage(w http.ResponseWriter, r *http.Request) {
	if sess := middleware.SessionFrom(r.Context()); sess.Authenticated() {
		http.Redirect(w, r, session.HomeFor(sess.Profile.Role), http.StatusSeeOther)
		return
	}
	h.View.Render(w, http.StatusOK, "login", h.page(r, "Login"))
}

func (h *Handlers) LoginSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderError(w, r, http.StatusBadRequest, "Invalid form")
		return
	}

	username := r.PostFormValue("username")
	password := r.PostFormValue("password")

	sess, err := h.Auth.Login(r.Context(), username, password)
	if err != nil {
		if errors.Is(err, apperr.Unauthorized) || errors.Is(err, apperr.Invalid) {
			p := h.page(r, "Login")
			p.Error = loginFailedMessage
			h.View.Render(w, http.StatusUnauthorized, "login", p)
			return
		}
		h.fail(w, r, err)
		return
	}

	h.Logger.Info("user logged in",
		logx.String("username", sess.Profile.Username),
		logx.String("role", string(sess.Profile.Role)),
	)
	middleware.SetSessionCookie(w, h.Cookie, sess)
	http.Redirect(w, r, session.HomeFor(sess.Profile.Role), http.StatusSeeOther)
}

func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	if sess := middleware.SessionFrom(r.Context()); sess != nil {
		h.Auth.Logout(sess.ID)
	}
	middleware.ClearSessionCookie(w, h.Cookie)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Handlers) RegisterPage(w http.ResponseWriter, r *http.Request) {
	vm := registerVM{Page: h.page(r, "Register"), Role: string(domain.RoleClient)}

	companies, err := h.API.Companies(r.Context(), token(r))
	if h.degraded(w, r, err, "companies") {
		return
	}
	vm.Companies = companies

	h.View.Render(w, http.StatusOK, "register", vm)
}

// RegisterSubmit serves both the office reload round-trip (the "Load
// offices" button posts with reload=1) and the final registration.
func (h *Handlers) RegisterSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderError(w, r, http.StatusBadRequest, "Invalid form")
		return
	}

	vm := registerVM{
		Page:         h.page(r, "Register"),
		Username:     r.PostFormValue("username"),
		Role:         r.PostFormValue("role"),
		EmployeeType: r.PostFormValue("employee_type"),
		CompanyID:    formInt64(r, "company_id"),
		OfficeID:     formInt64(r, "office_id"),
	}
	if vm.Role == "" {
		vm.Role = string(domain.RoleClient)
	}

	companies, err := h.API.Companies(r.Context(), token(r))
	if h.degraded(w, r, err, "companies") {
		return
	}
	vm.Companies = companies

	if vm.CompanyID != 0 {
		offices, err := h.API.OfficesByCompany(r.Context(), token(r), vm.CompanyID)
		if h.degraded(w, r, err, "offices") {
			return
		}
		vm.Offices = offices
	}

	if r.PostFormValue("reload") == "1" {
		h.View.Render(w, http.StatusOK, "register", vm)
		return
	}

	reg := domain.Registration{
		Username:  vm.Username,
		Password:  r.PostFormValue("password"),
		Role:      domain.Role(vm.Role),
		CompanyID: formInt64Ptr(r, "company_id"),
	}
	if reg.Role == domain.RoleEmployee {
		reg.OfficeID = formInt64Ptr(r, "office_id")
		if vm.EmployeeType != "" {
			et := domain.EmployeeType(vm.EmployeeType)
			reg.EmployeeType = &et
		}
	}

	if err := h.API.Register(r.Context(), reg); err != nil {
		if msg, ok := apperr.ValidationMessage(err); ok {
			vm.Error = msg
			h.View.Render(w, http.StatusBadRequest, "register", vm)
			return
		}
		h.fail(w, r, err)
		return
	}

	h.Logger.Info("user registered", logx.String("username", reg.Username))
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
