package packages

import (
	"context"

	"swiftcourier-console/internal/domain"
)

// backendAPI defines the backend operations required by the package service.
type backendAPI interface {
	PackagesByCompany(ctx context.Context, token string, companyID int64) ([]domain.Package, error)
	PackagesByRecipient(ctx context.Context, token string, userID int64) ([]domain.Package, error)
	PackagesBySender(ctx context.Context, token string, userID int64) ([]domain.Package, error)
	UserByID(ctx context.Context, token string, id int64) (*domain.User, error)
}
