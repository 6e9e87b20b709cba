// Package share arma el mensaje para compartir un producto y elige el canal
// disponible: share nativo de la plataforma, WhatsApp o correo.
package share

import (
	"net/url"
	"strings"

	"github.com/jhoicas/everest-site/internal/domain/entity"
)

// Payload datos del producto a compartir. Name y URL son obligatorios.
type Payload struct {
	Name           string
	Description    string
	Specifications entity.Specifications
	URL            string
	ImageURL       string
}

// Compose construye el texto:
//
//	*<nombre>*
//
//	<descripción>
//
//	Features:
//	- clave: valor
//
//	Check it out: <url>
//
//	Image: <imagen>
//
// Descripción, Features e Image solo aparecen si hay datos.
func Compose(p Payload) string {
	var b strings.Builder
	b.WriteString("*" + p.Name + "*\n\n")

	if p.Description != "" {
		b.WriteString(p.Description + "\n\n")
	}

	if len(p.Specifications) > 0 {
		b.WriteString("Features:\n")
		for _, s := range p.Specifications.Entries() {
			b.WriteString("- " + s.Key + ": " + s.Value + "\n")
		}
		b.WriteString("\n")
	}

	b.WriteString("Check it out: " + p.URL)

	if p.ImageURL != "" {
		b.WriteString("\n\nImage: " + p.ImageURL)
	}
	return b.String()
}

// Subject asunto del correo.
func Subject(name string) string {
	return "Check out " + name
}

// WhatsAppURL deep link de WhatsApp con el texto codificado.
func WhatsAppURL(text string) string {
	return "https://wa.me/?text=" + encodeComponent(text)
}

// MailtoURL enlace mailto con asunto y cuerpo.
func MailtoURL(name, text string) string {
	return "mailto:?subject=" + encodeComponent(Subject(name)) + "&body=" + encodeComponent(text)
}

// ChatURL enlace directo al número de WhatsApp de la empresa (solo dígitos).
func ChatURL(phone string) string {
	var digits strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	return "https://wa.me/" + digits.String()
}

// uriComponent deja sin escapar lo que encodeURIComponent no escapa y QueryEscape sí.
var uriComponent = strings.NewReplacer("+", "%20", "%21", "!", "%27", "'", "%28", "(", "%29", ")", "%2A", "*")

// encodeComponent codifica como encodeURIComponent: espacios como %20 y !'()* tal cual.
func encodeComponent(s string) string {
	return uriComponent.Replace(url.QueryEscape(s))
}
