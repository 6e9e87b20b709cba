package entity

// Category representa una categoría del catálogo público.
type Category struct {
	ID          string `db:"id" json:"id"`
	Name        string `db:"name" json:"name"`
	Slug        string `db:"slug" json:"slug"` // único; se usa en /products?category=<slug>
	Description string `db:"description" json:"description"`
	ImageURL    string `db:"image_url" json:"image_url"`
	SortOrder   int    `db:"sort_order" json:"sort_order"`
}
