package ports

import (
	"context"

	"github.com/jhoicas/everest-site/internal/domain/entity"
)

// Datasheet datos de la ficha técnica de un producto.
type Datasheet struct {
	Product  entity.Product
	Category string // nombre de la categoría; puede ir vacío
	Settings entity.SiteSettings
	URL      string // detalle web del producto, va en el QR
}

// DatasheetGenerator genera la ficha técnica en PDF.
type DatasheetGenerator interface {
	Generate(ctx context.Context, d Datasheet) ([]byte, error)
}
