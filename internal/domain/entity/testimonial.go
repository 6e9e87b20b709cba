package entity

// Testimonial opinión de un cliente mostrada en la portada.
type Testimonial struct {
	ID            string `db:"id" json:"id"`
	AuthorName    string `db:"author_name" json:"author_name"`
	AuthorCompany string `db:"author_company" json:"author_company"`
	AuthorRole    string `db:"author_role" json:"author_role"`
	Content       string `db:"content" json:"content"`
	Rating        int    `db:"rating" json:"rating"`
	ImageURL      string `db:"image_url" json:"image_url"`
	IsActive      bool   `db:"is_active" json:"is_active"`
	SortOrder     int    `db:"sort_order" json:"sort_order"`
}
