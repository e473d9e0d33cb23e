package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"swiftcourier-console/internal/apperr"
	"swiftcourier-console/internal/domain"
	"swiftcourier-console/internal/http/middleware"
	"swiftcourier-console/internal/policy"
	"swiftcourier-console/internal/service/packages"
	"swiftcourier-console/internal/view"
)

type packagesVM struct {
	view.Page
	CanCreate bool
	CanEdit   bool
	CompanyID int64
	Rows      []packages.Row
}

type packageFormVM struct {
	view.Page
	ID        int64
	CompanyID int64
	Form      policy.PackageForm

	SenderID        int64
	RecipientID     int64
	CourierID       int64
	DeliveryType    string
	DeliveryAddress string
	Weight          string
	Price           string
	Status          string
	FeeID           int64

	Clients   []domain.Client
	Employees []domain.Employee
	Offices   []domain.Office
	Fees      []domain.DeliveryFee
}

func (vm *packageFormVM) fromPackage(pkg *domain.Package) {
	vm.ID = pkg.ID
	vm.SenderID = pkg.SenderID
	vm.RecipientID = pkg.RecipientID
	if pkg.CourierID != nil {
		vm.CourierID = *pkg.CourierID
	}
	vm.DeliveryType = string(pkg.DeliveryType)
	vm.DeliveryAddress = pkg.DeliveryAddress
	vm.Weight = strconv.FormatFloat(pkg.Weight, 'f', -1, 64)
	vm.Price = pkg.Price.String()
	vm.Status = string(pkg.Status)
	vm.FeeID = pkg.DeliveryFeeID
}

func (h *Handlers) formPolicy(r *http.Request, deliveryType domain.DeliveryType) policy.PackageForm {
	p := middleware.SessionFrom(r.Context()).Profile
	return policy.ForPackageForm(p.Role, p.EmployeeType, deliveryType)
}

// findPackage locates one package in the company listing. The backend has no
// fetch-one endpoint for staff, only the company-wide list.
func (h *Handlers) findPackage(r *http.Request, companyID, packageID int64) (*domain.Package, error) {
	pkgs, err := h.API.PackagesByCompany(r.Context(), token(r), companyID)
	if err != nil {
		return nil, err
	}
	for i := range pkgs {
		if pkgs[i].ID == packageID {
			return &pkgs[i], nil
		}
	}
	return nil, apperr.NotFound
}

// loadPackageLookups fills the form's select sources: clients, couriers,
// offices and the company fee. A missing fee is fine, the select just stays
// empty. Reports true when it already answered the request.
func (h *Handlers) loadPackageLookups(w http.ResponseWriter, r *http.Request, companyID int64, vm *packageFormVM) bool {
	clients, err := h.API.ClientsByCompany(r.Context(), token(r), companyID)
	if h.degraded(w, r, err, "clients") {
		return true
	}
	vm.Clients = clients

	employees, err := h.API.EmployeesByCompany(r.Context(), token(r), companyID)
	if h.degraded(w, r, err, "employees") {
		return true
	}
	for _, e := range employees {
		if e.EmployeeType == domain.EmployeeTypeCourier {
			vm.Employees = append(vm.Employees, e)
		}
	}

	offices, err := h.API.OfficesByCompany(r.Context(), token(r), companyID)
	if h.degraded(w, r, err, "offices") {
		return true
	}
	vm.Offices = offices

	fee, err := h.API.DeliveryFee(r.Context(), token(r), companyID)
	if err == nil {
		vm.Fees = []domain.DeliveryFee{*fee}
	} else if h.degraded(w, r, err, "delivery fee") {
		return true
	}
	return false
}

func (h *Handlers) PackageList(w http.ResponseWriter, r *http.Request) {
	companyID, err := idFromURL(r, "companyID")
	if err != nil {
		h.renderError(w, r, http.StatusBadRequest, "Invalid company id")
		return
	}

	form := h.formPolicy(r, "")
	vm := packagesVM{
		Page:      h.page(r, "Packages"),
		CanCreate: form.CanOpen && form.Sender.Enabled(),
		CanEdit:   form.CanOpen,
		CompanyID: companyID,
	}

	rows, err := h.Packages.CompanyPackages(r.Context(), token(r), companyID)
	if h.degraded(w, r, err, "packages") {
		return
	}
	vm.Rows = rows

	h.View.Render(w, http.StatusOK, "packages", vm)
}

func (h *Handlers) PackageNew(w http.ResponseWriter, r *http.Request) {
	companyID, err := idFromURL(r, "companyID")
	if err != nil {
		h.renderError(w, r, http.StatusBadRequest, "Invalid company id")
		return
	}

	vm := packageFormVM{
		Page:         h.page(r, "New Package"),
		CompanyID:    companyID,
		DeliveryType: string(domain.DeliveryTypeAddress),
		Status:       string(domain.PackageStatusSent),
	}
	vm.Form = h.formPolicy(r, domain.DeliveryType(vm.DeliveryType))
	if !vm.Form.CanOpen || !vm.Form.Sender.Enabled() {
		h.renderError(w, r, http.StatusForbidden, "You are not allowed to manage packages.")
		return
	}

	if h.loadPackageLookups(w, r, companyID, &vm) {
		return
	}
	h.View.Render(w, http.StatusOK, "package_form", vm)
}

func (h *Handlers) PackageEdit(w http.ResponseWriter, r *http.Request) {
	companyID, err := idFromURL(r, "companyID")
	if err != nil {
		h.renderError(w, r, http.StatusBadRequest, "Invalid company id")
		return
	}
	packageID, err := idFromURL(r, "packageID")
	if err != nil {
		h.renderError(w, r, http.StatusBadRequest, "Invalid package id")
		return
	}

	pkg, err := h.findPackage(r, companyID, packageID)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	vm := packageFormVM{Page: h.page(r, "Edit Package"), CompanyID: companyID}
	vm.fromPackage(pkg)
	vm.Form = h.formPolicy(r, pkg.DeliveryType)
	if !vm.Form.CanOpen {
		h.renderError(w, r, http.StatusForbidden, "You are not allowed to manage packages.")
		return
	}

	if h.loadPackageLookups(w, r, companyID, &vm) {
		return
	}
	h.View.Render(w, http.StatusOK, "package_form", vm)
}

// PackageSave handles both the delivery-type reload round-trip and the final
// create/update. Disabled fields never reach the backend: the submitted
// values are merged onto the stored package only where the current user may
// edit them.
func (h *Handlers) PackageSave(w http.ResponseWriter, r *http.Request) {
	companyID, err := idFromURL(r, "companyID")
	if err != nil {
		h.renderError(w, r, http.StatusBadRequest, "Invalid company id")
		return
	}
	if err := r.ParseForm(); err != nil {
		h.renderError(w, r, http.StatusBadRequest, "Invalid form")
		return
	}

	packageID := formInt64(r, "id")

	base := domain.Package{
		CompanyID:    companyID,
		DeliveryType: domain.DeliveryTypeAddress,
		Status:       domain.PackageStatusSent,
	}
	if packageID != 0 {
		existing, err := h.findPackage(r, companyID, packageID)
		if err != nil {
			h.fail(w, r, err)
			return
		}
		base = *existing
	}

	form := h.formPolicy(r, base.DeliveryType)
	if !form.CanOpen {
		h.renderError(w, r, http.StatusForbidden, "You are not allowed to manage packages.")
		return
	}
	// Creating needs the identity fields. Roles limited to status edits may
	// only update existing packages.
	if packageID == 0 && !form.Sender.Enabled() {
		h.renderError(w, r, http.StatusForbidden, "You are not allowed to manage packages.")
		return
	}
	if form.DeliveryType.Enabled() {
		if dt := domain.DeliveryType(r.PostFormValue("delivery_type")); dt.Valid() {
			base.DeliveryType = dt
		}
	}
	// OFFICE deliveries bind the address to an office, so the policy has to
	// be re-evaluated once the delivery type is settled.
	form = h.formPolicy(r, base.DeliveryType)

	if form.Sender.Enabled() {
		base.SenderID = formInt64(r, "sender_id")
	}
	if form.Recipient.Enabled() {
		base.RecipientID = formInt64(r, "recipient_id")
	}
	if form.Courier.Enabled() {
		base.CourierID = formInt64Ptr(r, "courier_id")
	}
	if form.DeliveryAddress.Enabled() {
		if form.AddressFromOffice {
			if addr := r.PostFormValue("office_address"); addr != "" {
				base.DeliveryAddress = addr
			}
		} else {
			base.DeliveryAddress = r.PostFormValue("delivery_address")
		}
	}
	if form.Weight.Enabled() {
		base.Weight = formFloat(r, "weight")
	}
	if form.Price.Enabled() {
		base.Price = formMoney(r, "price")
	}
	if form.Status.Enabled() {
		if st := domain.PackageStatus(r.PostFormValue("status")); st.Valid() {
			base.Status = st
		}
	}
	if form.DeliveryFee.Enabled() {
		base.DeliveryFeeID = formInt64(r, "delivery_fee_id")
	}

	if r.PostFormValue("reload") == "1" {
		vm := packageFormVM{Page: h.page(r, "Package"), CompanyID: companyID, Form: form}
		vm.fromPackage(&base)
		vm.ID = packageID
		if h.loadPackageLookups(w, r, companyID, &vm) {
			return
		}
		h.View.Render(w, http.StatusOK, "package_form", vm)
		return
	}

	if !form.CanSubmit {
		h.renderError(w, r, http.StatusForbidden, "You are not allowed to manage packages.")
		return
	}

	if packageID != 0 {
		err = h.API.UpdatePackage(r.Context(), token(r), base)
	} else {
		err = h.API.CreatePackage(r.Context(), token(r), base)
	}
	if err != nil {
		if msg, ok := apperr.ValidationMessage(err); ok {
			vm := packageFormVM{Page: h.page(r, "Package"), CompanyID: companyID, Form: form}
			vm.fromPackage(&base)
			vm.ID = packageID
			vm.Error = msg
			if h.loadPackageLookups(w, r, companyID, &vm) {
				return
			}
			h.View.Render(w, http.StatusBadRequest, "package_form", vm)
			return
		}
		h.fail(w, r, err)
		return
	}

	http.Redirect(w, r, fmt.Sprintf("/companies/%d/packages", companyID), http.StatusSeeOther)
}
