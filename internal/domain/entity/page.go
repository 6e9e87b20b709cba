package entity

// Page entrada del menú de navegación pública.
type Page struct {
	ID        string `db:"id" json:"id"`
	Label     string `db:"label" json:"label"`
	Path      string `db:"path" json:"path"`
	IsEnabled bool   `db:"is_enabled" json:"is_enabled"`
	SortOrder int    `db:"sort_order" json:"sort_order"`
}

// SetSortOrder permite reordenar páginas con ordering.Move.
func (p *Page) SetSortOrder(n int) { p.SortOrder = n }
