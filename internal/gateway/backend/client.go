// Package backend is the typed REST client for the courier backend. Every
// screen of the console goes through it; the backend owns all data.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"swiftcourier-console/internal/apperr"
	"swiftcourier-console/internal/domain"
	"swiftcourier-console/internal/logx"
)

const errBodyLimit = 1 << 16

// Client calls the courier backend REST API. A zero token means the request
// is sent unauthenticated (login, register, guest tracking).
type Client struct {
	baseURL string
	httpc   *http.Client
	logger  logx.Logger
}

// New creates a backend client. baseURL includes the API prefix,
// e.g. "http://127.0.0.1:8080/api".
func New(baseURL string, httpc *http.Client, logger logx.Logger) *Client {
	if httpc == nil {
		httpc = &http.Client{Timeout: 15 * time.Second}
	}
	if logger == nil {
		logger = logx.Nop()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   httpc,
		logger:  logger,
	}
}

// do performs a request and maps the response onto the apperr taxonomy:
// 401 -> Unauthorized, 404 -> NotFound, other 4xx -> Validation (with the
// backend message when present), 5xx and transport failures -> Unavailable.
func (c *Client) do(ctx context.Context, method, path, token string, in, out any) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("backend: encode %s %s: %w", method, path, err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("backend: build %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("backend: %s %s: %w: %v", method, path, apperr.Unavailable, err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			c.logger.Debug("backend response close failed", logx.Err(cerr))
		}
	}()

	if err := c.errorFromStatus(method, path, resp); err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("backend: decode %s %s: %w: %v", method, path, apperr.Unavailable, err)
	}
	return nil
}

func (c *Client) errorFromStatus(method, path string, resp *http.Response) error {
	switch {
	case resp.StatusCode < 400:
		return nil
	case resp.StatusCode == http.StatusUnauthorized:
		return fmt.Errorf("backend: %s %s: %w", method, path, apperr.Unauthorized)
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("backend: %s %s: %w", method, path, apperr.NotFound)
	case resp.StatusCode < 500:
		if msg := backendMessage(resp.Body); msg != "" {
			return &apperr.Validation{Message: msg}
		}
		return fmt.Errorf("backend: %s %s: status %d: %w", method, path, resp.StatusCode, apperr.Invalid)
	default:
		return fmt.Errorf("backend: %s %s: status %d: %w", method, path, resp.StatusCode, apperr.Unavailable)
	}
}

// backendMessage pulls the "message" field from an error response body.
func backendMessage(r io.Reader) string {
	var payload struct {
		Message string `json:"message"`
	}
	raw, err := io.ReadAll(io.LimitReader(r, errBodyLimit))
	if err != nil {
		return ""
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return ""
	}
	return payload.Message
}

// Login exchanges credentials for a bearer token.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	in := map[string]string{"username": username, "password": password}
	var out struct {
		Token string `json:"token"`
	}
	if err := c.do(ctx, http.MethodPost, "/auth/login", "", in, &out); err != nil {
		return "", err
	}
	if out.Token == "" {
		return "", fmt.Errorf("backend: login: empty token: %w", apperr.Unavailable)
	}
	return out.Token, nil
}

// Register creates a new account.
func (c *Client) Register(ctx context.Context, reg domain.Registration) error {
	return c.do(ctx, http.MethodPost, "/auth/register", "", reg, nil)
}

// Me resolves the profile behind the given token.
func (c *Client) Me(ctx context.Context, token string) (*domain.Profile, error) {
	var p domain.Profile
	if err := c.do(ctx, http.MethodPost, "/users/me", token, nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// UserByID looks up a user's id and username.
func (c *Client) UserByID(ctx context.Context, token string, id int64) (*domain.User, error) {
	var u domain.User
	if err := c.do(ctx, http.MethodGet, "/users/"+strconv.FormatInt(id, 10), token, nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// Companies lists all companies.
func (c *Client) Companies(ctx context.Context, token string) ([]domain.Company, error) {
	var list []domain.Company
	if err := c.do(ctx, http.MethodGet, "/companies", token, nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// SaveCompany creates or updates a company. The backend uses POST /companies
// for both; a populated ID means update.
func (c *Client) SaveCompany(ctx context.Context, token string, company domain.Company) error {
	return c.do(ctx, http.MethodPost, "/companies", token, company, nil)
}

// OfficesByCompany lists the offices of one company.
func (c *Client) OfficesByCompany(ctx context.Context, token string, companyID int64) ([]domain.Office, error) {
	var list []domain.Office
	path := "/offices/company/" + strconv.FormatInt(companyID, 10)
	if err := c.do(ctx, http.MethodGet, path, token, nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// CreateOffice creates an office.
func (c *Client) CreateOffice(ctx context.Context, token string, office domain.Office) error {
	return c.do(ctx, http.MethodPost, "/offices", token, office, nil)
}

// UpdateOffice updates an existing office.
func (c *Client) UpdateOffice(ctx context.Context, token string, office domain.Office) error {
	path := "/offices/" + strconv.FormatInt(office.ID, 10)
	return c.do(ctx, http.MethodPut, path, token, office, nil)
}

// EmployeesByCompany lists the employees of one company.
func (c *Client) EmployeesByCompany(ctx context.Context, token string, companyID int64) ([]domain.Employee, error) {
	var list []domain.Employee
	path := "/employees/company/" + strconv.FormatInt(companyID, 10)
	if err := c.do(ctx, http.MethodGet, path, token, nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// ClientsByCompany lists the client accounts of one company.
func (c *Client) ClientsByCompany(ctx context.Context, token string, companyID int64) ([]domain.Client, error) {
	var list []domain.Client
	path := "/clients/company/" + strconv.FormatInt(companyID, 10)
	if err := c.do(ctx, http.MethodGet, path, token, nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// PackagesByCompany lists the packages of one company.
func (c *Client) PackagesByCompany(ctx context.Context, token string, companyID int64) ([]domain.Package, error) {
	var list []domain.Package
	path := "/packages/company/" + strconv.FormatInt(companyID, 10)
	if err := c.do(ctx, http.MethodGet, path, token, nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// PackagesByRecipient lists the packages addressed to a user.
func (c *Client) PackagesByRecipient(ctx context.Context, token string, userID int64) ([]domain.Package, error) {
	var list []domain.Package
	path := "/packages/recipient/" + strconv.FormatInt(userID, 10)
	if err := c.do(ctx, http.MethodGet, path, token, nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// PackagesBySender lists the packages sent by a user.
func (c *Client) PackagesBySender(ctx context.Context, token string, userID int64) ([]domain.Package, error) {
	var list []domain.Package
	path := "/packages/sender/" + strconv.FormatInt(userID, 10)
	if err := c.do(ctx, http.MethodGet, path, token, nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// GuestPackage looks a package up by id without authentication.
func (c *Client) GuestPackage(ctx context.Context, id int64) (*domain.Package, error) {
	var p domain.Package
	path := "/packages/guest/" + strconv.FormatInt(id, 10)
	if err := c.do(ctx, http.MethodGet, path, "", nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// CreatePackage creates a package.
func (c *Client) CreatePackage(ctx context.Context, token string, pkg domain.Package) error {
	return c.do(ctx, http.MethodPost, "/packages", token, pkg, nil)
}

// UpdatePackage updates an existing package.
func (c *Client) UpdatePackage(ctx context.Context, token string, pkg domain.Package) error {
	path := "/packages/" + strconv.FormatInt(pkg.ID, 10)
	return c.do(ctx, http.MethodPut, path, token, pkg, nil)
}

// DeliveryFee fetches the single fee schedule of one company.
func (c *Client) DeliveryFee(ctx context.Context, token string, companyID int64) (*domain.DeliveryFee, error) {
	var fee domain.DeliveryFee
	path := "/deliveryfees/" + strconv.FormatInt(companyID, 10)
	if err := c.do(ctx, http.MethodGet, path, token, nil, &fee); err != nil {
		return nil, err
	}
	return &fee, nil
}

// SaveDeliveryFee creates or updates a company's fee schedule.
func (c *Client) SaveDeliveryFee(ctx context.Context, token string, fee domain.DeliveryFee) error {
	return c.do(ctx, http.MethodPost, "/deliveryfees", token, fee, nil)
}

// RevenueSum fetches per-day revenue sums for the date range, preserving the
// order in which the backend listed the dates.
func (c *Client) RevenueSum(ctx context.Context, token string, companyID int64, from, to string) ([]domain.RevenueEntry, error) {
	q := url.Values{}
	q.Set("from", from)
	q.Set("to", to)
	path := fmt.Sprintf("/revenues/company/%d/date-range/sum?%s", companyID, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("backend: build GET %s: %w", path, err)
	}
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("backend: GET %s: %w: %v", path, apperr.Unavailable, err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			c.logger.Debug("backend response close failed", logx.Err(cerr))
		}
	}()

	if err := c.errorFromStatus(http.MethodGet, path, resp); err != nil {
		return nil, err
	}
	entries, err := decodeOrderedSums(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("backend: decode GET %s: %w: %v", path, apperr.Unavailable, err)
	}
	return entries, nil
}
