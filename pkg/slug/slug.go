// Package slug deriva identificadores de URL a partir de nombres.
package slug

import (
	"regexp"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// FromName pasa el nombre a minúsculas y reemplaza cada bloque de espacios por "-".
// "Air Compressors" -> "air-compressors". No elimina acentos ni signos: el slug
// debe coincidir con el que genera el formulario de categorías en el navegador.
func FromName(name string) string {
	lower := cases.Lower(language.Und).String(name)
	return whitespaceRun.ReplaceAllString(lower, "-")
}
