package entity

// GalleryImage imagen de la galería pública.
type GalleryImage struct {
	ID          string `db:"id" json:"id"`
	Title       string `db:"title" json:"title"`
	ImageURL    string `db:"image_url" json:"image_url"`
	Description string `db:"description" json:"description"`
	SortOrder   int    `db:"sort_order" json:"sort_order"`
}
