package entity

import "time"

// Inquiry consulta enviada desde el formulario de contacto.
type Inquiry struct {
	ID         string    `db:"id" json:"id" csv:"id"`
	Name       string    `db:"name" json:"name" csv:"name"`
	Company    string    `db:"company" json:"company" csv:"company"`
	Phone      string    `db:"phone" json:"phone" csv:"phone"`
	Email      string    `db:"email" json:"email" csv:"email"`
	CategoryID string    `db:"category_id" json:"category_id" csv:"category_id"`
	Message    string    `db:"message" json:"message" csv:"message"`
	IsRead     bool      `db:"is_read" json:"is_read" csv:"is_read"`
	CreatedAt  time.Time `db:"created_at" json:"created_at" csv:"created_at"`
}
