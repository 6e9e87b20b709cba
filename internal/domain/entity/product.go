package entity

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Product representa un producto del catálogo. Specifications es un objeto JSON libre (jsonb).
type Product struct {
	ID              string         `db:"id" json:"id"`
	Name            string         `db:"name" json:"name"`
	Slug            string         `db:"slug" json:"slug"`
	CategoryID      string         `db:"category_id" json:"category_id"`
	Description     string         `db:"description" json:"description"`
	LongDescription string         `db:"long_description" json:"long_description"`
	ImageURL        string         `db:"image_url" json:"image_url"`
	PriceRange      string         `db:"price_range" json:"price_range"`
	Specifications  Specifications `db:"specifications" json:"specifications"`
	IsFeatured      bool           `db:"is_featured" json:"is_featured"`
	SortOrder       int            `db:"sort_order" json:"sort_order"`
}

// ProductImage imagen adicional de un producto (tabla product_images).
type ProductImage struct {
	ID        string `db:"id" json:"id"`
	ProductID string `db:"product_id" json:"product_id"`
	ImageURL  string `db:"image_url" json:"image_url"`
	AltText   string `db:"alt_text" json:"alt_text"`
	SortOrder int    `db:"sort_order" json:"sort_order"`
}

// Specifications mapa clave/valor de características técnicas.
type Specifications map[string]any

// Spec una entrada de Specifications ya formateada.
type Spec struct {
	Key   string
	Value string
}

// Entries devuelve las entradas en el orden en que PostgreSQL guarda las claves de un
// jsonb (primero las más cortas, luego orden por bytes), que es el orden que ve
// cualquier cliente que lea la columna.
func (s Specifications) Entries() []Spec {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) < len(keys[j])
		}
		return keys[i] < keys[j]
	})
	out := make([]Spec, 0, len(keys))
	for _, k := range keys {
		out = append(out, Spec{Key: k, Value: formatSpecValue(s[k])})
	}
	return out
}

func formatSpecValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		// los números de jsonb llegan como float64; 1000000 se muestra completo, sin exponente
		return strconv.FormatFloat(t, 'f', -1, 64)
	case []any:
		parts := make([]string, 0, len(t))
		for _, e := range t {
			parts = append(parts, formatSpecValue(e))
		}
		return strings.Join(parts, ",")
	case map[string]any:
		b, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprint(t)
		}
		return string(b)
	default:
		return fmt.Sprint(t)
	}
}
