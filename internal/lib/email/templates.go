package email

import (
	"embed"
	"html/template"
)

// Template names a file under templates/ without its extension.
type Template string

const (
	TemplateReservationReceived  Template = "reservation_received"
	TemplateReservationConfirmed Template = "reservation_confirmed"
	TemplateReservationCancelled Template = "reservation_cancelled"
)

// Templates lists every renderable template.
var Templates = []Template{
	TemplateReservationReceived,
	TemplateReservationConfirmed,
	TemplateReservationCancelled,
}

//go:embed templates/*.html
var templateFS embed.FS

var parsed = template.Must(template.ParseFS(templateFS, "templates/*.html"))

func (t Template) file() string {
	return string(t) + ".html"
}
