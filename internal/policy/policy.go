// Package policy decides which package-form fields are interactive for a
// given role and employee type. It replaces scattered per-field conditionals
// with one pure function so the rules can be tested without rendering.
package policy

import "swiftcourier-console/internal/domain"

// FieldMode is the interactivity of a single form field.
type FieldMode int

// Field modes
const (
	Editable FieldMode = iota
	Disabled
)

// Enabled reports whether the field accepts input.
func (m FieldMode) Enabled() bool { return m == Editable }

// PackageForm is the per-field enablement of the package create/edit form.
type PackageForm struct {
	CanOpen   bool
	CanSubmit bool

	Sender          FieldMode
	Recipient       FieldMode
	Courier         FieldMode
	DeliveryType    FieldMode
	DeliveryAddress FieldMode
	Weight          FieldMode
	Price           FieldMode
	Status          FieldMode
	DeliveryFee     FieldMode

	// AddressFromOffice is set for OFFICE deliveries: the address must be
	// populated from the selected office rather than typed freely.
	// DeliveryAddress still decides whether the user may change it at all.
	AddressFromOffice bool
}

func allDisabled() PackageForm {
	return PackageForm{
		Sender:          Disabled,
		Recipient:       Disabled,
		Courier:         Disabled,
		DeliveryType:    Disabled,
		DeliveryAddress: Disabled,
		Weight:          Disabled,
		Price:           Disabled,
		Status:          Disabled,
		DeliveryFee:     Disabled,
	}
}

func allEditable() PackageForm {
	return PackageForm{
		CanOpen:   true,
		CanSubmit: true,
	}
}

// ForPackageForm evaluates the form policy for the given role, employee type
// and currently selected delivery type. It is pure and total: every
// combination, including unknown ones, yields a deterministic result.
//
// Rules:
//   - CLIENT may not open the form at all.
//   - ADMIN has no restrictions.
//   - EMPLOYEE/COURIER may only change the status.
//   - EMPLOYEE/CASHIER may change everything except the status.
//   - Any other combination opens the form read-only.
//   - When the delivery type is OFFICE the address field is bound to the
//     selected office's address and is never free text. Whether the office
//     may be changed still follows the role's address permission, so a
//     courier cannot repoint an OFFICE delivery.
func ForPackageForm(role domain.Role, empType domain.EmployeeType, deliveryType domain.DeliveryType) PackageForm {
	var form PackageForm

	switch {
	case role == domain.RoleClient:
		form = allDisabled()
		return form
	case role == domain.RoleAdmin:
		form = allEditable()
	case role == domain.RoleEmployee && empType == domain.EmployeeTypeCourier:
		form = allDisabled()
		form.CanOpen = true
		form.CanSubmit = true
		form.Status = Editable
	case role == domain.RoleEmployee && empType == domain.EmployeeTypeCashier:
		form = allEditable()
		form.Status = Disabled
	default:
		form = allDisabled()
		form.CanOpen = role == domain.RoleEmployee
	}

	if deliveryType == domain.DeliveryTypeOffice {
		form.AddressFromOffice = true
	}
	return form
}
