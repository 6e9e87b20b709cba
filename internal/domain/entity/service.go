package entity

// Iconos disponibles para servicios. Una clave desconocida se muestra con IconSettings.
const (
	IconZap        = "zap"
	IconSettings   = "settings"
	IconHeadphones = "headphones"
	IconBook       = "book"
)

// ServiceIcons orden en que se ofrecen los iconos en el formulario.
var ServiceIcons = []string{IconZap, IconSettings, IconHeadphones, IconBook}

// Service representa un servicio ofrecido por la empresa.
type Service struct {
	ID          string `db:"id" json:"id"`
	Title       string `db:"title" json:"title"`
	Description string `db:"description" json:"description"`
	Icon        string `db:"icon" json:"icon"`
	SortOrder   int    `db:"sort_order" json:"sort_order"`
}

// IconKey devuelve el icono a dibujar, con fallback a IconSettings.
func (s Service) IconKey() string {
	for _, k := range ServiceIcons {
		if s.Icon == k {
			return k
		}
	}
	return IconSettings
}
