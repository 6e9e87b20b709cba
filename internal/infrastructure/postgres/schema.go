package postgres

import (
	"fmt"

	"github.com/jhoicas/everest-site/internal/domain"
	"github.com/jhoicas/everest-site/internal/domain/repository"
)

// columns columnas permitidas por tabla. Nada fuera de esta lista llega al SQL.
var columns = map[string][]string{
	repository.TableSiteSettings: {
		"id", "company_name", "tagline", "logo_url", "primary_color", "secondary_color",
		"accent_color", "company_name_color", "phone", "email", "address", "whatsapp",
		"working_hours", "google_maps_embed", "about_text", "mission", "vision", "gst_number",
		"created_at", "updated_at",
	},
	repository.TablePages:         {"id", "label", "path", "is_enabled", "sort_order", "created_at"},
	repository.TableCategories:    {"id", "name", "slug", "description", "image_url", "sort_order", "created_at"},
	repository.TableProducts: {
		"id", "name", "slug", "category_id", "description", "long_description", "image_url",
		"price_range", "specifications", "is_featured", "sort_order", "created_at",
	},
	repository.TableProductImages: {"id", "product_id", "image_url", "alt_text", "sort_order", "created_at"},
	repository.TableServices:      {"id", "title", "description", "icon", "sort_order", "created_at"},
	repository.TableGalleryImages: {"id", "title", "image_url", "description", "sort_order", "created_at"},
	repository.TableTestimonials: {
		"id", "author_name", "author_company", "author_role", "content", "rating", "image_url",
		"is_active", "sort_order", "created_at",
	},
	repository.TableInquiries: {
		"id", "name", "company", "phone", "email", "category_id", "message", "is_read", "created_at",
	},
	repository.TableAdmins: {"id", "email", "created_at"},
}

var allowed = func() map[string]map[string]bool {
	out := make(map[string]map[string]bool, len(columns))
	for t, cols := range columns {
		set := make(map[string]bool, len(cols))
		for _, c := range cols {
			set[c] = true
		}
		out[t] = set
	}
	return out
}()

func checkTable(table string) error {
	if _, ok := allowed[table]; !ok {
		return fmt.Errorf("tabla %q: %w", table, domain.ErrInvalidInput)
	}
	return nil
}

func checkColumn(table, column string) error {
	if !allowed[table][column] {
		return fmt.Errorf("columna %s.%s: %w", table, column, domain.ErrInvalidInput)
	}
	return nil
}
