// Package client is a thin typed facade over the blood desk HTTP API.
// It holds no session state: every authenticated call takes the Session
// returned by Login.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/SscSPs/blood_desk_app/internal/core/domain"
	"github.com/SscSPs/blood_desk_app/internal/dto"
)

const (
	DefaultBaseURL = "http://127.0.0.1:8080"
	DefaultTimeout = 10 * time.Second
)

// Session is an issued access token and the operator it belongs to.
type Session struct {
	Token     string           `json:"token"`
	ExpiresAt time.Time        `json:"expires_at"`
	User      dto.UserResponse `json:"user"`
}

// Expired reports whether the token is past its expiry at now.
func (s Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}

// Client talks to one server. It is safe for concurrent use.
type Client struct {
	BaseURL string
	HTTP    *http.Client
	log     *slog.Logger
}

// New creates a Client with the given base URL and request timeout.
func New(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: timeout},
		log:     logger.With("component", "client"),
	}
}

// Health checks server liveness.
func (c *Client) Health(ctx context.Context) error {
	var out dto.HealthResponse
	return c.do(ctx, nil, http.MethodGet, "/health", nil, nil, &out)
}

// Login exchanges credentials for a Session.
func (c *Client) Login(ctx context.Context, username, password string) (Session, error) {
	var out dto.LoginResponse
	err := c.do(ctx, nil, http.MethodPost, "/auth/login", nil, dto.LoginRequest{Username: username, Password: password}, &out)
	if err != nil {
		return Session{}, err
	}
	return Session{Token: out.Token, ExpiresAt: out.ExpiresAt, User: out.User}, nil
}

// Me asks the server who the session belongs to. It fails with ErrUnauthorized
// once the token is no longer accepted.
func (c *Client) Me(ctx context.Context, s Session) (dto.UserResponse, error) {
	var out dto.UserEnvelope
	err := c.do(ctx, &s, http.MethodGet, "/api/auth/me", nil, nil, &out)
	return out.User, err
}

// ListDonors returns donors newest first. A non-positive limit uses the server default.
func (c *Client) ListDonors(ctx context.Context, s Session, limit int) ([]dto.DonorResponse, error) {
	q := url.Values{}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	var out dto.DonorListEnvelope
	if err := c.do(ctx, &s, http.MethodGet, "/api/donors", q, nil, &out); err != nil {
		return nil, err
	}
	return out.Donors, nil
}

func (c *Client) GetDonor(ctx context.Context, s Session, id int64) (dto.DonorResponse, error) {
	var out dto.DonorEnvelope
	err := c.do(ctx, &s, http.MethodGet, donorPath(id), nil, nil, &out)
	return out.Donor, err
}

func (c *Client) CreateDonor(ctx context.Context, s Session, req dto.CreateDonorRequest) (dto.DonorResponse, error) {
	var out dto.DonorEnvelope
	err := c.do(ctx, &s, http.MethodPost, "/api/donors", nil, req, &out)
	return out.Donor, err
}

// UpdateDonor sends a partial update; only Set fields of req are transmitted.
func (c *Client) UpdateDonor(ctx context.Context, s Session, id int64, req dto.UpdateDonorRequest) (dto.DonorResponse, error) {
	var out dto.DonorEnvelope
	err := c.do(ctx, &s, http.MethodPut, donorPath(id), nil, updateBody(req), &out)
	return out.Donor, err
}

func (c *Client) DeleteDonor(ctx context.Context, s Session, id int64) error {
	var out dto.OKResponse
	return c.do(ctx, &s, http.MethodDelete, donorPath(id), nil, nil, &out)
}

// SearchDonors runs a filtered search. Zero-valued fields of query are omitted.
func (c *Client) SearchDonors(ctx context.Context, s Session, query dto.DonorSearchQuery) ([]dto.DonorResponse, error) {
	q := url.Values{}
	setIf := func(k, v string) {
		if v != "" {
			q.Set(k, v)
		}
	}
	setIf("q", query.Q)
	setIf("blood_group", query.BloodGroup)
	setIf("area", query.Area)
	setIf("last_after", query.LastAfter)
	setIf("last_before", query.LastBefore)
	if query.AgeMin != nil {
		q.Set("age_min", strconv.Itoa(*query.AgeMin))
	}
	if query.AgeMax != nil {
		q.Set("age_max", strconv.Itoa(*query.AgeMax))
	}
	if query.Limit > 0 {
		q.Set("limit", strconv.Itoa(query.Limit))
	}
	var out dto.DonorListEnvelope
	if err := c.do(ctx, &s, http.MethodGet, "/api/donors/search", q, nil, &out); err != nil {
		return nil, err
	}
	return out.Donors, nil
}

func (c *Client) GetStock(ctx context.Context, s Session) ([]dto.StockLevelResponse, error) {
	var out dto.StockListEnvelope
	if err := c.do(ctx, &s, http.MethodGet, "/api/stock", nil, nil, &out); err != nil {
		return nil, err
	}
	return out.Stock, nil
}

// AdjustStock applies delta to group. An empty reason is recorded as "adjust".
func (c *Client) AdjustStock(ctx context.Context, s Session, group domain.BloodGroup, delta int, reason domain.MovementReason) (dto.AdjustStockResponse, error) {
	var out dto.AdjustStockResponse
	req := dto.AdjustStockRequest{BloodGroup: string(group), Delta: delta, Reason: string(reason)}
	err := c.do(ctx, &s, http.MethodPost, "/api/stock/adjust", nil, req, &out)
	return out, err
}

func (c *Client) ListMovements(ctx context.Context, s Session, limit int) ([]dto.MovementResponse, error) {
	q := url.Values{}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	var out dto.MovementListEnvelope
	if err := c.do(ctx, &s, http.MethodGet, "/api/stock/movements", q, nil, &out); err != nil {
		return nil, err
	}
	return out.Movements, nil
}

func (c *Client) AnalyticsSummary(ctx context.Context, s Session, days int) (dto.AnalyticsSummaryResponse, error) {
	q := url.Values{}
	if days > 0 {
		q.Set("days", strconv.Itoa(days))
	}
	var out dto.AnalyticsSummaryResponse
	err := c.do(ctx, &s, http.MethodGet, "/api/analytics/summary", q, nil, &out)
	return out, err
}

// ExportDonorsCSV streams the donor export into w.
func (c *Client) ExportDonorsCSV(ctx context.Context, s Session, w io.Writer) error {
	resp, err := c.send(ctx, &s, http.MethodGet, "/api/export/donors.csv", nil, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeAPIError(resp)
	}
	if _, err := io.Copy(w, resp.Body); err != nil {
		return &TransportError{Op: "read export", Err: err}
	}
	return nil
}

func donorPath(id int64) string {
	return "/api/donors/" + strconv.FormatInt(id, 10)
}

// updateBody keeps only the fields the caller set, so absent keys stay absent on the wire.
func updateBody(req dto.UpdateDonorRequest) map[string]any {
	body := map[string]any{}
	add := func(key string, set bool, v any) {
		if set {
			body[key] = v
		}
	}
	add("name", req.Name.Set, req.Name)
	add("nic", req.NIC.Set, req.NIC)
	add("phone", req.Phone.Set, req.Phone)
	add("email", req.Email.Set, req.Email)
	add("address", req.Address.Set, req.Address)
	add("area", req.Area.Set, req.Area)
	add("blood_group", req.BloodGroup.Set, req.BloodGroup)
	add("age", req.Age.Set, req.Age)
	add("last_donation_date", req.LastDonationDate.Set, req.LastDonationDate)
	add("notes", req.Notes.Set, req.Notes)
	add("active", req.Active.Set, req.Active)
	return body
}

func (c *Client) send(ctx context.Context, s *Session, method, path string, query url.Values, in any) (*http.Response, error) {
	reqURL := c.BaseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if s != nil && s.Token != "" {
		req.Header.Set("Authorization", "Bearer "+s.Token)
	}

	c.log.DebugContext(ctx, "api request", slog.String("method", method), slog.String("path", path))
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, &TransportError{Op: method + " " + path, Err: err}
	}
	c.log.DebugContext(ctx, "api response", slog.String("path", path), slog.Int("status", resp.StatusCode))
	return resp, nil
}

func (c *Client) do(ctx context.Context, s *Session, method, path string, query url.Values, in, out any) error {
	resp, err := c.send(ctx, s, method, path, query, in)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeAPIError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &TransportError{Op: "decode " + path, Err: err}
	}
	return nil
}

func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	var body dto.ErrorResponse
	if json.Unmarshal(raw, &body) == nil && body.Error != "" {
		apiErr.Message = body.Error
	} else {
		apiErr.Message = strings.TrimSpace(string(raw))
	}
	return apiErr
}
