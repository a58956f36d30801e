package realtime

import (
	"errors"
	"fmt"
	"time"

	"github.com/deppfellow/restaurant-backend/internal/clock"
	"github.com/deppfellow/restaurant-backend/internal/model"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	TicketTTL      = 60 * time.Second
	ticketAudience = "realtime"
	ticketLeeway   = 5 * time.Second
)

var (
	ErrMissingTicket = errors.New("missing realtime ticket")
	ErrInvalidTicket = errors.New("invalid realtime ticket")
)

type TicketClaims struct {
	RestaurantID string `json:"rid"`
	Role         string `json:"role"`
	jwt.RegisteredClaims
}

// Tickets issues and verifies the short-lived tokens a browser presents
// when opening the websocket, since it cannot send auth headers there.
type Tickets struct {
	secret []byte
	clock  clock.Clock
}

func NewTickets(secret string, clk clock.Clock) *Tickets {
	return &Tickets{secret: []byte(secret), clock: clk}
}

func (t *Tickets) Issue(ac model.AdminContext) (string, time.Time, error) {
	now := t.clock.Now()
	expiresAt := now.Add(TicketTTL)

	claims := TicketClaims{
		RestaurantID: ac.RestaurantID.String(),
		Role:         string(ac.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   ac.UserID,
			Audience:  jwt.ClaimStrings{ticketAudience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			ID:        uuid.NewString(),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign realtime ticket: %w", err)
	}
	return signed, expiresAt, nil
}

func (t *Tickets) Verify(raw string) (model.AdminContext, error) {
	if raw == "" {
		return model.AdminContext{}, ErrMissingTicket
	}

	claims := &TicketClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return t.secret, nil
	},
		jwt.WithLeeway(ticketLeeway),
		jwt.WithAudience(ticketAudience),
		jwt.WithTimeFunc(t.clock.Now),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !token.Valid {
		return model.AdminContext{}, ErrInvalidTicket
	}

	restaurantID, err := uuid.Parse(claims.RestaurantID)
	if err != nil || claims.Subject == "" {
		return model.AdminContext{}, ErrInvalidTicket
	}

	role := model.Role(claims.Role)
	if !role.Valid() {
		return model.AdminContext{}, ErrInvalidTicket
	}

	return model.AdminContext{
		UserID:       claims.Subject,
		RestaurantID: restaurantID,
		Role:         role,
	}, nil
}
