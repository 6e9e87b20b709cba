package entity

// SiteSettings registro único con la marca y los datos de contacto del sitio.
type SiteSettings struct {
	ID               string `db:"id" json:"id"`
	CompanyName      string `db:"company_name" json:"company_name"`
	Tagline          string `db:"tagline" json:"tagline"`
	LogoURL          string `db:"logo_url" json:"logo_url"`
	PrimaryColor     string `db:"primary_color" json:"primary_color"`
	SecondaryColor   string `db:"secondary_color" json:"secondary_color"`
	AccentColor      string `db:"accent_color" json:"accent_color"`
	CompanyNameColor string `db:"company_name_color" json:"company_name_color"`
	Phone            string `db:"phone" json:"phone"`
	Email            string `db:"email" json:"email"`
	Address          string `db:"address" json:"address"`
	WhatsApp         string `db:"whatsapp" json:"whatsapp"`
	WorkingHours     string `db:"working_hours" json:"working_hours"`
	GoogleMapsEmbed  string `db:"google_maps_embed" json:"google_maps_embed"`
	AboutText        string `db:"about_text" json:"about_text"`
	Mission          string `db:"mission" json:"mission"`
	Vision           string `db:"vision" json:"vision"`
	GSTNumber        string `db:"gst_number" json:"gst_number"`
}

// DefaultSiteSettings valores con los que se crea el registro la primera vez.
func DefaultSiteSettings() SiteSettings {
	return SiteSettings{
		CompanyName:    "Everest Hydro Pneumatic Solutions",
		Tagline:        "Reliable Hydraulic & Pneumatic Solutions",
		PrimaryColor:   "#003366",
		SecondaryColor: "#333333",
		AccentColor:    "#FF6B35",
	}
}
