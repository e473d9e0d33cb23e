package handlers

import (
	"context"

	"swiftcourier-console/internal/domain"
)

// backendAPI is the slice of the gateway the screens consume directly.
// Aggregated reads (package name resolution, revenue reports) go through
// the service layer instead.
type backendAPI interface {
	Register(ctx context.Context, reg domain.Registration) error
	Companies(ctx context.Context, token string) ([]domain.Company, error)
	SaveCompany(ctx context.Context, token string, company domain.Company) error
	OfficesByCompany(ctx context.Context, token string, companyID int64) ([]domain.Office, error)
	CreateOffice(ctx context.Context, token string, office domain.Office) error
	UpdateOffice(ctx context.Context, token string, office domain.Office) error
	EmployeesByCompany(ctx context.Context, token string, companyID int64) ([]domain.Employee, error)
	ClientsByCompany(ctx context.Context, token string, companyID int64) ([]domain.Client, error)
	PackagesByCompany(ctx context.Context, token string, companyID int64) ([]domain.Package, error)
	GuestPackage(ctx context.Context, id int64) (*domain.Package, error)
	CreatePackage(ctx context.Context, token string, pkg domain.Package) error
	UpdatePackage(ctx context.Context, token string, pkg domain.Package) error
	DeliveryFee(ctx context.Context, token string, companyID int64) (*domain.DeliveryFee, error)
	SaveDeliveryFee(ctx context.Context, token string, fee domain.DeliveryFee) error
}
