package dto

import (
	"strings"

	"github.com/jhoicas/everest-site/internal/domain/entity"
	jsoniter "github.com/json-iterator/go"
)

// CategoryRequest alta/edición de categoría desde el panel. Nombre y slug obligatorios.
type CategoryRequest struct {
	Name        string `json:"name" form:"name" validate:"required,max=200"`
	Slug        string `json:"slug" form:"slug" validate:"required,max=200"`
	Description string `json:"description" form:"description"`
	ImageURL    string `json:"image_url" form:"image_url"`
}

// ProductRequest alta/edición de producto. Desde el formulario HTML las
// especificaciones llegan como texto "clave: valor" por línea (SpecificationsText);
// desde JSON como objeto.
type ProductRequest struct {
	Name               string                `json:"name" form:"name" validate:"required,max=200"`
	Slug               string                `json:"slug" form:"slug" validate:"omitempty,max=200"`
	CategoryID         string                `json:"category_id" form:"category_id" validate:"required"`
	Description        string                `json:"description" form:"description"`
	LongDescription    string                `json:"long_description" form:"long_description"`
	ImageURL           string                `json:"image_url" form:"image_url"`
	PriceRange         string                `json:"price_range" form:"price_range"`
	IsFeatured         bool                  `json:"is_featured" form:"is_featured"`
	Specifications     entity.Specifications `json:"specifications" form:"-"`
	SpecificationsText string                `json:"-" form:"specifications"`
}

// ServiceRequest alta/edición de servicio.
type ServiceRequest struct {
	Title       string `json:"title" form:"title" validate:"required,max=200"`
	Description string `json:"description" form:"description" validate:"required"`
	Icon        string `json:"icon" form:"icon" validate:"omitempty,oneof=zap settings headphones book"`
}

// GalleryImageRequest alta de imagen de galería. La URL puede venir vacía si se sube archivo.
type GalleryImageRequest struct {
	Title       string `json:"title" form:"title" validate:"max=200"`
	ImageURL    string `json:"image_url" form:"image_url"`
	Description string `json:"description" form:"description"`
}

// SettingsRequest edición completa del registro de configuración del sitio.
type SettingsRequest struct {
	CompanyName      string `json:"company_name" form:"company_name" validate:"max=200"`
	Tagline          string `json:"tagline" form:"tagline"`
	LogoURL          string `json:"logo_url" form:"logo_url"`
	PrimaryColor     string `json:"primary_color" form:"primary_color" validate:"omitempty,hexcolor"`
	SecondaryColor   string `json:"secondary_color" form:"secondary_color" validate:"omitempty,hexcolor"`
	AccentColor      string `json:"accent_color" form:"accent_color" validate:"omitempty,hexcolor"`
	CompanyNameColor string `json:"company_name_color" form:"company_name_color" validate:"omitempty,hexcolor"`
	Phone            string `json:"phone" form:"phone"`
	Email            string `json:"email" form:"email" validate:"omitempty,email"`
	Address          string `json:"address" form:"address"`
	WhatsApp         string `json:"whatsapp" form:"whatsapp"`
	WorkingHours     string `json:"working_hours" form:"working_hours"`
	GoogleMapsEmbed  string `json:"google_maps_embed" form:"google_maps_embed"`
	AboutText        string `json:"about_text" form:"about_text"`
	Mission          string `json:"mission" form:"mission"`
	Vision           string `json:"vision" form:"vision"`
	GSTNumber        string `json:"gst_number" form:"gst_number"`
}

// ContactRequest envío del formulario público de contacto.
type ContactRequest struct {
	Name       string `json:"name" form:"name" validate:"required,max=200"`
	Company    string `json:"company" form:"company" validate:"max=200"`
	Phone      string `json:"phone" form:"phone" validate:"required,max=50"`
	Email      string `json:"email" form:"email" validate:"required,email"`
	CategoryID string `json:"category_id" form:"category_id"`
	Message    string `json:"message" form:"message" validate:"required,max=5000"`
}

// MoveRequest dirección de reordenamiento ("up" | "down").
type MoveRequest struct {
	Direction string `json:"direction" form:"direction" query:"direction" validate:"required,oneof=up down"`
}

// DashboardCounts contadores del panel.
type DashboardCounts struct {
	Products   int `json:"products"`
	Inquiries  int `json:"inquiries"`
	Categories int `json:"categories"`
	Services   int `json:"services"`
}

// ShareResponse mensaje listo para compartir y sus enlaces.
type ShareResponse struct {
	Title       string `json:"title"`
	Text        string `json:"text"`
	URL         string `json:"url"`
	ImageURL    string `json:"image_url,omitempty"`
	WhatsAppURL string `json:"whatsapp_url"`
	MailtoURL   string `json:"mailto_url"`
}

// ResolveSpecifications devuelve las especificaciones del request. El texto del
// formulario acepta un objeto JSON o líneas "clave: valor"; las líneas vacías se ignoran.
func (r *ProductRequest) ResolveSpecifications() (entity.Specifications, error) {
	if r.Specifications != nil {
		return r.Specifications, nil
	}
	return ParseSpecificationsText(r.SpecificationsText)
}

// ParseSpecificationsText interpreta el textarea de especificaciones.
func ParseSpecificationsText(text string) (entity.Specifications, error) {
	text = strings.TrimSpace(text)
	specs := entity.Specifications{}
	if text == "" {
		return specs, nil
	}
	if strings.HasPrefix(text, "{") {
		if err := jsoniter.ConfigCompatibleWithStandardLibrary.UnmarshalFromString(text, &specs); err != nil {
			return nil, &ValidationError{Fields: []FieldDetail{{Field: "specifications", Message: "Invalid JSON object"}}}
		}
		return specs, nil
	}
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		key, value, ok := strings.Cut(line, ":")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, &ValidationError{Fields: []FieldDetail{{Field: "specifications", Message: "Each line must be key: value"}}}
		}
		specs[key] = strings.TrimSpace(value)
	}
	return specs, nil
}

// FormatSpecificationsText inverso de ParseSpecificationsText para precargar el formulario.
func FormatSpecificationsText(specs entity.Specifications) string {
	lines := make([]string, 0, len(specs))
	for _, s := range specs.Entries() {
		lines = append(lines, s.Key+": "+s.Value)
	}
	return strings.Join(lines, "\n")
}
