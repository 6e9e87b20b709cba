package entity

import "time"

// Admin usuario de Supabase Auth con acceso al panel. ID = auth.users.id.
type Admin struct {
	ID        string    `db:"id" json:"id"`
	Email     string    `db:"email" json:"email"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
