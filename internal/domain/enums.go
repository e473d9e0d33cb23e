package domain

type (
	// Role is the coarse permission tier of a user.
	Role string
	// EmployeeType is the sub-permission tier within the EMPLOYEE role.
	EmployeeType string
	// DeliveryType determines whether a package goes to a street address
	// or is picked up at a company office.
	DeliveryType string
	// PackageStatus represents the lifecycle state of a package.
	PackageStatus string
)

// List of possible user roles
const (
	RoleAdmin    Role = "ADMIN"
	RoleEmployee Role = "EMPLOYEE"
	RoleClient   Role = "CLIENT"
)

// List of possible employee types
const (
	EmployeeTypeCashier EmployeeType = "CASHIER"
	EmployeeTypeCourier EmployeeType = "COURIER"
)

// List of possible delivery types
const (
	DeliveryTypeAddress DeliveryType = "ADDRESS"
	DeliveryTypeOffice  DeliveryType = "OFFICE"
)

// List of possible package statuses
const (
	PackageStatusSent      PackageStatus = "SENT"
	PackageStatusDelivered PackageStatus = "DELIVERED"
)

var allowedRoles = [...]Role{RoleAdmin, RoleEmployee, RoleClient}

var allowedEmployeeTypes = [...]EmployeeType{EmployeeTypeCashier, EmployeeTypeCourier}

var allowedDeliveryTypes = [...]DeliveryType{DeliveryTypeAddress, DeliveryTypeOffice}

var allowedPackageStatuses = [...]PackageStatus{PackageStatusSent, PackageStatusDelivered}

// Valid checks if the Role is valid
func (r Role) Valid() bool {
	for _, v := range allowedRoles {
		if r == v {
			return true
		}
	}
	return false
}

// Staff reports whether the role may open the company-management screens.
func (r Role) Staff() bool {
	return r == RoleAdmin || r == RoleEmployee
}

// Valid checks if the EmployeeType is valid
func (t EmployeeType) Valid() bool {
	for _, v := range allowedEmployeeTypes {
		if t == v {
			return true
		}
	}
	return false
}

// Valid checks if the DeliveryType is valid
func (t DeliveryType) Valid() bool {
	for _, v := range allowedDeliveryTypes {
		if t == v {
			return true
		}
	}
	return false
}

// Valid checks if the PackageStatus is valid
func (s PackageStatus) Valid() bool {
	for _, v := range allowedPackageStatuses {
		if s == v {
			return true
		}
	}
	return false
}
