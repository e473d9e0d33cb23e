// Package packages lists shipments with participant ids resolved to display
// names. Name lookups fan out concurrently and the table renders only after
// every lookup settles; a failed lookup degrades to a placeholder instead of
// aborting the whole page.
package packages

import (
	"context"
	"errors"
	"sync"

	"golang.org/x/sync/errgroup"

	"swiftcourier-console/internal/apperr"
	"swiftcourier-console/internal/domain"
	"swiftcourier-console/internal/logx"
)

// Name placeholders for unresolved participants.
const (
	UnknownName   = "Unknown"
	NoCourierName = "N/A"
)

const defaultLookupLimit = 8

// Row is a package with resolved participant names, ready for rendering.
type Row struct {
	domain.Package
	SenderName    string
	RecipientName string
	CourierName   string
}

// Service resolves package lists for the console screens.
type Service struct {
	api         backendAPI
	logger      logx.Logger
	lookupLimit int
}

// NewService creates the package service. lookupLimit bounds concurrent
// user lookups; values below one fall back to the default.
func NewService(api backendAPI, logger logx.Logger, lookupLimit int) *Service {
	if logger == nil {
		logger = logx.Nop()
	}
	if lookupLimit < 1 {
		lookupLimit = defaultLookupLimit
	}
	return &Service{api: api, logger: logger, lookupLimit: lookupLimit}
}

// CompanyPackages lists a company's packages with names resolved.
func (s *Service) CompanyPackages(ctx context.Context, token string, companyID int64) ([]Row, error) {
	pkgs, err := s.api.PackagesByCompany(ctx, token, companyID)
	if err != nil {
		return nil, err
	}
	return s.withNames(ctx, token, pkgs)
}

// ReceivedBy lists the packages addressed to the given user.
func (s *Service) ReceivedBy(ctx context.Context, token string, userID int64) ([]domain.Package, error) {
	return s.api.PackagesByRecipient(ctx, token, userID)
}

// SentBy lists the packages sent by the given user.
func (s *Service) SentBy(ctx context.Context, token string, userID int64) ([]domain.Package, error) {
	return s.api.PackagesBySender(ctx, token, userID)
}

// withNames resolves every distinct participant id concurrently and attaches
// the usernames to the rows. Lookup failures leave the id unresolved and the
// row shows UnknownName; only a 401 aborts, since it must tear the session
// down.
func (s *Service) withNames(ctx context.Context, token string, pkgs []domain.Package) ([]Row, error) {
	ids := make(map[int64]struct{})
	for _, p := range pkgs {
		ids[p.SenderID] = struct{}{}
		ids[p.RecipientID] = struct{}{}
		if p.CourierID != nil {
			ids[*p.CourierID] = struct{}{}
		}
	}

	var (
		mu    sync.Mutex
		names = make(map[int64]string, len(ids))
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.lookupLimit)
	for id := range ids {
		id := id
		g.Go(func() error {
			u, err := s.api.UserByID(gctx, token, id)
			if err != nil {
				if errors.Is(err, apperr.Unauthorized) {
					return err
				}
				s.logger.Warn("user lookup failed", logx.Int64("user_id", id), logx.Err(err))
				return nil
			}
			mu.Lock()
			names[id] = u.Username
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	rows := make([]Row, 0, len(pkgs))
	for _, p := range pkgs {
		row := Row{
			Package:       p,
			SenderName:    nameOr(names, p.SenderID),
			RecipientName: nameOr(names, p.RecipientID),
			CourierName:   NoCourierName,
		}
		if p.CourierID != nil {
			row.CourierName = nameOr(names, *p.CourierID)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func nameOr(names map[int64]string, id int64) string {
	if name, ok := names[id]; ok && name != "" {
		return name
	}
	return UnknownName
}
