// Package catalog lógica de presentación del catálogo de productos.
package catalog

// Carousel imágenes de la ficha de producto: la principal primero y luego las de
// product_images. Las URLs vacías se descartan.
type Carousel struct {
	Images []string
	Index  int
}

// NewCarousel arma el carrusel y normaliza el índice inicial.
func NewCarousel(primary string, extra []string, index int) Carousel {
	images := make([]string, 0, len(extra)+1)
	if primary != "" {
		images = append(images, primary)
	}
	for _, u := range extra {
		if u != "" {
			images = append(images, u)
		}
	}
	c := Carousel{Images: images}
	c.Index = c.wrap(index)
	return c
}

// Len cantidad de imágenes.
func (c Carousel) Len() int { return len(c.Images) }

// HasMultiple indica si se muestran controles anterior/siguiente.
func (c Carousel) HasMultiple() bool { return len(c.Images) > 1 }

// Current URL de la imagen seleccionada; vacío si no hay imágenes.
func (c Carousel) Current() string {
	if len(c.Images) == 0 {
		return ""
	}
	return c.Images[c.Index]
}

// Next índice siguiente, volviendo al inicio después de la última.
func (c Carousel) Next() int { return c.wrap(c.Index + 1) }

// Prev índice anterior, volviendo a la última antes de la primera.
func (c Carousel) Prev() int { return c.wrap(c.Index - 1) }

func (c Carousel) wrap(i int) int {
	n := len(c.Images)
	if n == 0 {
		return 0
	}
	return ((i % n) + n) % n
}
