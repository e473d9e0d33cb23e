// Package revenue prepares per-day revenue reports for the table and chart
// views. Entry order follows the backend response.
package revenue

import (
	"context"
	"time"

	"swiftcourier-console/internal/apperr"
	"swiftcourier-console/internal/domain"
	"swiftcourier-console/internal/logx"
)

// DateLayout is the wire format for range boundaries and row labels.
const DateLayout = "2006-01-02"

type revenueAPI interface {
	RevenueSum(ctx context.Context, token string, companyID int64, from, to string) ([]domain.RevenueEntry, error)
}

// Report is a resolved date-range revenue query.
type Report struct {
	From    string
	To      string
	Entries []domain.RevenueEntry
}

// Labels returns the category axis for the chart view, in backend order.
func (r *Report) Labels() []string {
	labels := make([]string, 0, len(r.Entries))
	for _, e := range r.Entries {
		labels = append(labels, e.Date)
	}
	return labels
}

// Amounts returns the chart values in the same order as Labels.
func (r *Report) Amounts() []float64 {
	amounts := make([]float64, 0, len(r.Entries))
	for _, e := range r.Entries {
		amounts = append(amounts, e.Amount.InexactFloat64())
	}
	return amounts
}

// Service runs revenue queries for the console.
type Service struct {
	api    revenueAPI
	logger logx.Logger
	now    func() time.Time
}

// NewService creates the revenue service.
func NewService(api revenueAPI, logger logx.Logger) *Service {
	if logger == nil {
		logger = logx.Nop()
	}
	return &Service{api: api, logger: logger, now: time.Now}
}

// DefaultRange returns the initial date range: one month back until today.
func (s *Service) DefaultRange() (from, to string) {
	today := s.now()
	return today.AddDate(0, -1, 0).Format(DateLayout), today.Format(DateLayout)
}

// Range fetches revenue sums for [from, to]. Empty boundaries take the
// default range; malformed dates fail validation before touching the backend.
func (s *Service) Range(ctx context.Context, token string, companyID int64, from, to string) (*Report, error) {
	defFrom, defTo := s.DefaultRange()
	if from == "" {
		from = defFrom
	}
	if to == "" {
		to = defTo
	}
	if !validDate(from) || !validDate(to) {
		return nil, apperr.Invalid
	}

	entries, err := s.api.RevenueSum(ctx, token, companyID, from, to)
	if err != nil {
		return nil, err
	}
	return &Report{From: from, To: to, Entries: entries}, nil
}

func validDate(s string) bool {
	_, err := time.Parse(DateLayout, s)
	return err == nil
}
