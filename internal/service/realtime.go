package service

import (
	"time"

	"github.com/deppfellow/restaurant-backend/internal/errs"
	"github.com/deppfellow/restaurant-backend/internal/lib/realtime"
	"github.com/deppfellow/restaurant-backend/internal/model"
)

type TicketIssuer interface {
	Issue(ac model.AdminContext) (string, time.Time, error)
	Verify(raw string) (model.AdminContext, error)
}

type RealtimeService struct {
	tickets TicketIssuer
}

func NewRealtimeService(tickets TicketIssuer) *RealtimeService {
	return &RealtimeService{tickets: tickets}
}

type Ticket struct {
	Ticket    string    `json:"ticket"`
	ExpiresAt time.Time `json:"expires_at"`
}

// IssueTicket hands an authenticated admin a short-lived token for the
// websocket handshake, which cannot carry the session header.
func (s *RealtimeService) IssueTicket(ac model.AdminContext) (*Ticket, error) {
	raw, expiresAt, err := s.tickets.Issue(ac)
	if err != nil {
		return nil, err
	}
	return &Ticket{Ticket: raw, ExpiresAt: expiresAt}, nil
}

func (s *RealtimeService) Authorize(raw string) (model.AdminContext, error) {
	ac, err := s.tickets.Verify(raw)
	if err != nil {
		msg := "Invalid or expired realtime ticket"
		if raw == "" {
			msg = "Missing realtime ticket"
		}
		return model.AdminContext{}, errs.NewUnauthorizedError(msg, true)
	}
	return ac, nil
}

var _ TicketIssuer = (*realtime.Tickets)(nil)
