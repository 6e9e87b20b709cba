// Package imageurl normaliza URLs de imágenes cargadas por el administrador.
package imageurl

import (
	"regexp"
)

// Formatos de enlace compartido de Google Drive que no sirven como <img src>.
var drivePatterns = []*regexp.Regexp{
	regexp.MustCompile(`drive\.google\.com/file/d/([^/]+)`),
	regexp.MustCompile(`drive\.google\.com/open\?id=([^&]+)`),
	regexp.MustCompile(`drive\.google\.com/uc\?id=([^&]+)`),
}

// Normalize convierte enlaces de Google Drive en la URL de vista directa del archivo.
// Cualquier otra URL se devuelve sin cambios.
func Normalize(url string) string {
	if url == "" {
		return ""
	}
	for _, re := range drivePatterns {
		if m := re.FindStringSubmatch(url); len(m) > 1 && m[1] != "" {
			return "https://drive.google.com/uc?export=view&id=" + m[1]
		}
	}
	return url
}
