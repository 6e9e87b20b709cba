package repository

import "context"

// Tablas del backend gestionado.
const (
	TableSiteSettings  = "site_settings"
	TablePages         = "pages"
	TableCategories    = "categories"
	TableProducts      = "products"
	TableProductImages = "product_images"
	TableServices      = "services"
	TableGalleryImages = "gallery_images"
	TableTestimonials  = "testimonials"
	TableInquiries     = "inquiries"
	TableAdmins        = "admins"
)

// Row una fila como mapa columna -> valor.
type Row map[string]any

// Op operador de un filtro.
type Op string

const (
	OpEq  Op = "eq"
	OpNeq Op = "neq"
)

// Filter condición columna <op> valor. Los filtros de una Query se combinan con AND.
type Filter struct {
	Column string
	Op     Op
	Value  any
}

// Query describe un select sobre una tabla: filtros, orden y límite (0 = sin límite).
type Query struct {
	Filters []Filter
	OrderBy string
	Desc    bool
	Limit   int
}

// Where agrega un filtro de igualdad.
func (q Query) Where(column string, value any) Query {
	q.Filters = append(append([]Filter(nil), q.Filters...), Filter{Column: column, Op: OpEq, Value: value})
	return q
}

// WhereNot agrega un filtro de desigualdad.
func (q Query) WhereNot(column string, value any) Query {
	q.Filters = append(append([]Filter(nil), q.Filters...), Filter{Column: column, Op: OpNeq, Value: value})
	return q
}

// Order fija la columna de orden ascendente.
func (q Query) Order(column string) Query {
	q.OrderBy, q.Desc = column, false
	return q
}

// OrderDesc fija la columna de orden descendente.
func (q Query) OrderDesc(column string) Query {
	q.OrderBy, q.Desc = column, true
	return q
}

// Take fija el límite de filas.
func (q Query) Take(n int) Query {
	q.Limit = n
	return q
}

// SortUpdate nuevo sort_order para una fila.
type SortUpdate struct {
	ID        string
	SortOrder int
}

// Store es el único puerto de acceso a datos: todas las vistas y casos de uso leen y
// escriben a través de él, de modo que el backend se puede reemplazar o simular.
type Store interface {
	// Select devuelve las filas que cumplen la query.
	Select(ctx context.Context, table string, q Query) ([]Row, error)
	// SelectOne devuelve la primera fila o (nil, nil) si no hay ninguna.
	SelectOne(ctx context.Context, table string, q Query) (Row, error)
	// Insert crea la fila y devuelve la fila almacenada (id y valores por defecto incluidos).
	Insert(ctx context.Context, table string, values Row) (Row, error)
	// Update modifica la fila con ese id. domain.ErrNotFound si no existe.
	Update(ctx context.Context, table, id string, values Row) error
	// Delete elimina la fila con ese id.
	Delete(ctx context.Context, table, id string) error
	// Count cuenta exactamente las filas que cumplen los filtros de la query.
	Count(ctx context.Context, table string, q Query) (int, error)
	// Reorder aplica todos los sort_order en una sola operación atómica: o se
	// guardan todos o ninguno.
	Reorder(ctx context.Context, table string, updates []SortUpdate) error
}
