package api

import (
	"context"
	"fmt"

	"github.com/pkg/errors"

	"github.com/esther-pixel31/swiftsend-go/httpclient"
)

// AdminService covers the /admin endpoints. Every call requires an admin
// bearer token; the backend returns 403 otherwise.
type AdminService struct {
	httpc *httpclient.Client
}

// DashboardMetrics is the admin landing-page summary.
type DashboardMetrics struct {
	TotalUsers        int64   `json:"total_users"`
	ActiveUsers       int64   `json:"active_users"`
	TotalWalletVolume float64 `json:"total_wallet_volume"`
	PendingKYC        int64   `json:"pending_kyc"`
	OpenTickets       int64   `json:"open_tickets"`
	FlaggedTransfers  int64   `json:"flagged_transfers"`
}

// AdminUserUpdate is the subset of a user an admin may edit.
type AdminUserUpdate struct {
	Name     string `json:"name,omitempty"`
	Email    string `json:"email,omitempty"`
	Role     string `json:"role,omitempty"`
	IsActive *bool  `json:"is_active,omitempty"`
}

// AuditLogEntry is one row of the backend audit trail.
type AuditLogEntry struct {
	ID        int64  `json:"id"`
	UserID    int64  `json:"user_id"`
	Action    string `json:"action"`
	Detail    string `json:"detail"`
	RequestID string `json:"request_id"`
	CreatedAt string `json:"created_at"`
}

// FraudLogEntry is a transfer flagged by the backend's fraud checks.
type FraudLogEntry struct {
	ID        int64   `json:"id"`
	UserID    int64   `json:"user_id"`
	Reference string  `json:"reference"`
	Amount    float64 `json:"amount"`
	Reason    string  `json:"reason"`
	CreatedAt string  `json:"created_at"`
}

// Dashboard returns the metrics summary.
func (s *AdminService) Dashboard(ctx context.Context) (*DashboardMetrics, error) {
	var out DashboardMetrics
	if err := s.httpc.Get(ctx, "/admin/dashboard/metrics", &out); err != nil {
		return nil, errors.Wrap(err, "[AdminService.Dashboard]")
	}
	return &out, nil
}

// ListUsers returns all registered users.
func (s *AdminService) ListUsers(ctx context.Context) ([]Profile, error) {
	var out []Profile
	if err := s.httpc.Get(ctx, "/admin/users", &out); err != nil {
		return nil, errors.Wrap(err, "[AdminService.ListUsers]")
	}
	return out, nil
}

// GetUser returns a single user by ID.
func (s *AdminService) GetUser(ctx context.Context, id int64) (*Profile, error) {
	var out Profile
	if err := s.httpc.Get(ctx, fmt.Sprintf("/admin/users/%d", id), &out); err != nil {
		return nil, errors.Wrapf(err, "[AdminService.GetUser] id %d", id)
	}
	return &out, nil
}

// UpdateUser edits a user's details or role.
func (s *AdminService) UpdateUser(ctx context.Context, id int64, in AdminUserUpdate) (*Profile, error) {
	var out Profile
	if err := s.httpc.Put(ctx, fmt.Sprintf("/admin/users/%d", id), in, &out); err != nil {
		return nil, errors.Wrapf(err, "[AdminService.UpdateUser] id %d", id)
	}
	return &out, nil
}

// DeactivateUser soft-deletes a user; the account can be reactivated later.
func (s *AdminService) DeactivateUser(ctx context.Context, id int64) error {
	if err := s.httpc.Delete(ctx, fmt.Sprintf("/admin/users/%d", id), nil); err != nil {
		return errors.Wrapf(err, "[AdminService.DeactivateUser] id %d", id)
	}
	return nil
}

// ReactivateUser restores a deactivated account.
func (s *AdminService) ReactivateUser(ctx context.Context, id int64) error {
	if err := s.httpc.Post(ctx, fmt.Sprintf("/admin/users/%d/reactivate", id), nil, nil); err != nil {
		return errors.Wrapf(err, "[AdminService.ReactivateUser] id %d", id)
	}
	return nil
}

// ListWallets returns every wallet with its balance.
func (s *AdminService) ListWallets(ctx context.Context) ([]Wallet, error) {
	var out []Wallet
	if err := s.httpc.Get(ctx, "/admin/wallets", &out); err != nil {
		return nil, errors.Wrap(err, "[AdminService.ListWallets]")
	}
	return out, nil
}

// ListFXRates returns the configured conversion rates.
func (s *AdminService) ListFXRates(ctx context.Context) ([]FXRate, error) {
	var out []FXRate
	if err := s.httpc.Get(ctx, "/admin/fx-rates", &out); err != nil {
		return nil, errors.Wrap(err, "[AdminService.ListFXRates]")
	}
	return out, nil
}

// SetFXRate creates or updates the rate for a currency pair.
func (s *AdminService) SetFXRate(ctx context.Context, rate FXRate) (*FXRate, error) {
	var out FXRate
	if err := s.httpc.Post(ctx, "/admin/fx-rates", rate, &out); err != nil {
		return nil, errors.Wrapf(err, "[AdminService.SetFXRate] %s->%s", rate.Base, rate.Target)
	}
	return &out, nil
}

// ListKYCSubmissions returns documents awaiting or past review.
func (s *AdminService) ListKYCSubmissions(ctx context.Context) ([]KYCStatus, error) {
	var out []KYCStatus
	if err := s.httpc.Get(ctx, "/admin/kyc", &out); err != nil {
		return nil, errors.Wrap(err, "[AdminService.ListKYCSubmissions]")
	}
	return out, nil
}

// ReviewKYC approves or rejects a submission.
func (s *AdminService) ReviewKYC(ctx context.Context, id int64, status string) (*KYCStatus, error) {
	var out KYCStatus
	in := struct {
		Status string `json:"status"`
	}{Status: status}
	if err := s.httpc.Patch(ctx, fmt.Sprintf("/admin/kyc/%d", id), in, &out); err != nil {
		return nil, errors.Wrapf(err, "[AdminService.ReviewKYC] id %d", id)
	}
	return &out, nil
}

// ListSupportTickets returns the support queue.
func (s *AdminService) ListSupportTickets(ctx context.Context) ([]SupportTicket, error) {
	var out []SupportTicket
	if err := s.httpc.Get(ctx, "/admin/support/tickets", &out); err != nil {
		return nil, errors.Wrap(err, "[AdminService.ListSupportTickets]")
	}
	return out, nil
}

// RespondTicket writes the admin response onto a ticket, which also moves it
// out of the open queue.
func (s *AdminService) RespondTicket(ctx context.Context, id int64, response string) (*SupportTicket, error) {
	var out SupportTicket
	in := struct {
		Response string `json:"response"`
	}{Response: response}
	if err := s.httpc.Put(ctx, fmt.Sprintf("/admin/support/tickets/%d", id), in, &out); err != nil {
		return nil, errors.Wrapf(err, "[AdminService.RespondTicket] id %d", id)
	}
	return &out, nil
}

// AuditLogs returns the backend audit trail.
func (s *AdminService) AuditLogs(ctx context.Context) ([]AuditLogEntry, error) {
	var out []AuditLogEntry
	if err := s.httpc.Get(ctx, "/admin/audit-logs", &out); err != nil {
		return nil, errors.Wrap(err, "[AdminService.AuditLogs]")
	}
	return out, nil
}

// FraudLogs returns transfers flagged by the fraud checks.
func (s *AdminService) FraudLogs(ctx context.Context) ([]FraudLogEntry, error) {
	var out []FraudLogEntry
	if err := s.httpc.Get(ctx, "/admin/fraud/logs", &out); err != nil {
		return nil, errors.Wrap(err, "[AdminService.FraudLogs]")
	}
	return out, nil
}
