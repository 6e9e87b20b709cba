package usecase

import (
	"context"
	"strings"

	"github.com/jhoicas/everest-site/internal/application/dto"
	"github.com/jhoicas/everest-site/internal/domain"
	"github.com/jhoicas/everest-site/internal/domain/entity"
	"github.com/jhoicas/everest-site/internal/domain/share"
	"github.com/jhoicas/everest-site/pkg/imageurl"
)

// ShareUseCase arma el mensaje para compartir un producto.
type ShareUseCase struct {
	products *ProductUseCase
	baseURL  string
}

// NewShareUseCase construye el caso de uso. baseURL es la URL pública del sitio.
func NewShareUseCase(products *ProductUseCase, baseURL string) *ShareUseCase {
	return &ShareUseCase{products: products, baseURL: strings.TrimRight(baseURL, "/")}
}

// ProductURL URL pública del detalle de un producto.
func (uc *ShareUseCase) ProductURL(slug string) string {
	return uc.baseURL + "/products/" + slug
}

// PayloadFor datos a compartir de un producto ya cargado.
func (uc *ShareUseCase) PayloadFor(p entity.Product) share.Payload {
	return share.Payload{
		Name:           p.Name,
		Description:    p.Description,
		Specifications: p.Specifications,
		URL:            uc.ProductURL(p.Slug),
		ImageURL:       imageurl.Normalize(p.ImageURL),
	}
}

// Payload busca el producto por slug. domain.ErrNotFound si no existe.
func (uc *ShareUseCase) Payload(ctx context.Context, slug string) (share.Payload, error) {
	p, err := uc.products.GetBySlug(ctx, slug)
	if err != nil {
		return share.Payload{}, err
	}
	if p == nil {
		return share.Payload{}, domain.ErrNotFound
	}
	return uc.PayloadFor(*p), nil
}

// Response mensaje compuesto y enlaces de cada canal.
func (uc *ShareUseCase) Response(p share.Payload) dto.ShareResponse {
	text := share.Compose(p)
	return dto.ShareResponse{
		Title:       p.Name,
		Text:        text,
		URL:         p.URL,
		ImageURL:    p.ImageURL,
		WhatsAppURL: share.WhatsAppURL(text),
		MailtoURL:   share.MailtoURL(p.Name, text),
	}
}
