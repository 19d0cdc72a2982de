package api

import (
	"context"

	"github.com/pkg/errors"

	"github.com/esther-pixel31/swiftsend-go/httpclient"
)

// SupportService files and lists the user's support tickets. The endpoints
// live under /auth because tickets are bound to the authenticated account.
type SupportService struct {
	httpc *httpclient.Client
}

// SupportTicket is a support request and, once an admin has answered, the
// response.
type SupportTicket struct {
	ID        int64  `json:"id"`
	UserID    int64  `json:"user_id"`
	Subject   string `json:"subject"`
	Message   string `json:"message"`
	Response  string `json:"response,omitempty"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
}

type createTicketRequest struct {
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// CreateTicket files a new support request.
func (s *SupportService) CreateTicket(ctx context.Context, subject, message string) (*SupportTicket, error) {
	var out SupportTicket
	in := createTicketRequest{Subject: subject, Message: message}
	if err := s.httpc.Post(ctx, "/auth/support", in, &out); err != nil {
		return nil, errors.Wrap(err, "[SupportService.CreateTicket]")
	}
	return &out, nil
}

// MyTickets lists the authenticated user's tickets.
func (s *SupportService) MyTickets(ctx context.Context) ([]SupportTicket, error) {
	var out []SupportTicket
	if err := s.httpc.Get(ctx, "/auth/support", &out); err != nil {
		return nil, errors.Wrap(err, "[SupportService.MyTickets]")
	}
	return out, nil
}
