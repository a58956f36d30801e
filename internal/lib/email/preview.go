package email

import "fmt"

var previewReservation = ReservationData{
	GuestName:       "Ada Lovelace",
	RestaurantName:  "Trattoria Demo",
	RestaurantPhone: "+1 555 0100",
	ReservedAt:      "Friday, 14 March 2026 at 19:30",
	PartySize:       4,
	Reference:       "7F3A2C1B",
}

// PreviewData holds sample data per template for local previews.
var PreviewData = map[Template]any{
	TemplateReservationReceived:  previewReservation,
	TemplateReservationConfirmed: previewReservation,
	TemplateReservationCancelled: previewReservation,
}

// Preview renders name with its sample data.
func Preview(name Template) (string, error) {
	data, ok := PreviewData[name]
	if !ok {
		return "", fmt.Errorf("no preview for template %q", name)
	}
	return Render(name, data)
}
