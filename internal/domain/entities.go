package domain

// Entities exchanged verbatim with the backend. The console does not own
// their lifecycle; each screen fetches, displays and re-fetches after edits.
// JSON tags follow the backend wire contract (a mix of camelCase and
// snake_case, kept as-is).

// Company represents a courier company.
type Company struct {
	ID      int64  `json:"id,omitempty"`
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Created string `json:"created,omitempty"`
	Updated string `json:"updated,omitempty"`
}

// Office represents a company office.
type Office struct {
	ID        int64  `json:"id,omitempty"`
	Name      string `json:"name"`
	Address   string `json:"address"`
	CompanyID int64  `json:"company_id"`
}

// User is the minimal user record returned by the user-lookup endpoint.
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Role     Role   `json:"role,omitempty"`
}

// Client is a customer account attached to a company.
type Client struct {
	ID   int64 `json:"id"`
	User User  `json:"user"`
}

// Employee is a staff account with its nested user, office and company.
type Employee struct {
	ID           int64        `json:"id"`
	User         User         `json:"user"`
	Office       Office       `json:"office"`
	Company      Company      `json:"company"`
	EmployeeType EmployeeType `json:"employeeType"`
}

// Package represents a shipment.
type Package struct {
	ID              int64         `json:"id,omitempty"`
	SenderID        int64         `json:"senderId"`
	RecipientID     int64         `json:"recipientId"`
	CourierID       *int64        `json:"courierId,omitempty"`
	DeliveryType    DeliveryType  `json:"deliveryType"`
	DeliveryAddress string        `json:"deliveryAddress"`
	Weight          float64       `json:"weight"`
	Price           Money         `json:"price"`
	Status          PackageStatus `json:"status"`
	CreatedAt       string        `json:"createdAt,omitempty"`
	CompanyID       int64         `json:"companyId"`
	DeliveryFeeID   int64         `json:"deliveryFeeId"`
}

// DeliveryFee is a company's per-kilogram fee schedule. One fee per company.
type DeliveryFee struct {
	ID                int64 `json:"id,omitempty"`
	CompanyID         int64 `json:"companyId"`
	WeightPerKg       Money `json:"weightPerKg"`
	PricePerKgOffice  Money `json:"pricePerKgOffice"`
	PricePerKgAddress Money `json:"pricePerKgAddress"`
}

// Profile is the resolved identity of the current user, fetched once per
// session and immutable for the session's duration.
type Profile struct {
	ID           int64        `json:"id"`
	Username     string       `json:"username"`
	UserID       int64        `json:"user_id"`
	Role         Role         `json:"role"`
	CompanyID    *int64       `json:"company_id,omitempty"`
	OfficeID     *int64       `json:"office_id,omitempty"`
	EmployeeType EmployeeType `json:"emp_type,omitempty"`
}

// Registration is the payload for creating a new account. Office and
// employee type are only meaningful for the EMPLOYEE role.
type Registration struct {
	Username     string        `json:"username"`
	Password     string        `json:"password"`
	Role         Role          `json:"role"`
	CompanyID    *int64        `json:"company_id"`
	OfficeID     *int64        `json:"office_id"`
	EmployeeType *EmployeeType `json:"employeeType"`
}

// RevenueEntry is one date's revenue sum. Entries keep the order in which
// the backend listed them.
type RevenueEntry struct {
	Date   string
	Amount Money
}
