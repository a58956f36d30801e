package email

import (
	"context"
	"fmt"
)

// ReservationData is what every reservation template renders.
type ReservationData struct {
	GuestName       string
	RestaurantName  string
	RestaurantPhone string
	ReservedAt      string
	PartySize       int
	Reference       string
}

func reservationSubject(name Template, restaurant string) (string, error) {
	switch name {
	case TemplateReservationReceived:
		return fmt.Sprintf("We received your reservation at %s", restaurant), nil
	case TemplateReservationConfirmed:
		return fmt.Sprintf("Your reservation at %s is confirmed", restaurant), nil
	case TemplateReservationCancelled:
		return fmt.Sprintf("Your reservation at %s was cancelled", restaurant), nil
	default:
		return "", fmt.Errorf("unknown reservation template %q", name)
	}
}

func (c *Client) SendReservationEmail(ctx context.Context, to string, name Template, data ReservationData) error {
	subject, err := reservationSubject(name, data.RestaurantName)
	if err != nil {
		return err
	}
	return c.SendEmail(ctx, to, subject, name, data)
}
