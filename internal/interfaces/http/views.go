package http

import (
	"embed"
	"html/template"
	"io/fs"
	nethttp "net/http"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/filesystem"
	"github.com/gofiber/template/html/v2"
	"github.com/jhoicas/everest-site/internal/application/dto"
	"github.com/jhoicas/everest-site/internal/domain/share"
	"github.com/jhoicas/everest-site/pkg/imageurl"
)

//go:embed templates static
var assets embed.FS

// NewViews motor de plantillas sobre los templates embebidos. Los nombres son la ruta
// sin extensión: "site/home", "admin/dashboard", "layouts/main".
func NewViews() *html.Engine {
	sub, err := fs.Sub(assets, "templates")
	if err != nil {
		panic("views: " + err.Error())
	}
	engine := html.NewFileSystem(nethttp.FS(sub), ".html")
	engine.AddFuncMap(viewFuncs())
	return engine
}

// StaticHandler sirve /static/* (css, js) desde el binario.
func StaticHandler() fiber.Handler {
	return filesystem.New(filesystem.Config{
		Root:       nethttp.FS(assets),
		PathPrefix: "static",
		MaxAge:     3600,
	})
}

func viewFuncs() template.FuncMap {
	return template.FuncMap{
		"img":     imageurl.Normalize,
		"chatURL": share.ChatURL,
		// trusted: HTML que escribe el administrador (iframe de Google Maps)
		"trusted": func(s string) template.HTML { return template.HTML(s) },
		"stars": func(n int) string {
			if n < 0 {
				n = 0
			}
			if n > 5 {
				n = 5
			}
			return strings.Repeat("★", n) + strings.Repeat("☆", 5-n)
		},
		"icon":     serviceIcon,
		"year":     func() int { return time.Now().Year() },
		"date":     func(t time.Time) string { return t.Format("02 Jan 2006") },
		"datetime": func(t time.Time) string { return t.Format("02 Jan 2006 15:04") },
		"specText": dto.FormatSpecificationsText,
		"lines":    func(s string) []string { return nonEmptyLines(s) },
		"inc":      func(i int) int { return i + 1 },
		// datos de partials/share: desde el listado se pide el mensaje a la API,
		// en la ficha ya viene armado
		"shareAPI": func(slug string) map[string]any {
			return map[string]any{"API": "/api/products/" + slug + "/share"}
		},
		"sharePayload": func(r dto.ShareResponse) map[string]any {
			return map[string]any{"Payload": r}
		},
	}
}

func nonEmptyLines(s string) []string {
	var out []string
	for _, l := range strings.Split(s, "\n") {
		if l = strings.TrimSpace(l); l != "" {
			out = append(out, l)
		}
	}
	return out
}

// ── Iconos de servicios ──────────────────────────────────────────────────────

var serviceIcons = map[string]template.HTML{
	"zap":        `<svg viewBox="0 0 24 24" width="40" height="40" fill="none" stroke="currentColor" stroke-width="2"><path d="M13 2 3 14h9l-1 8 10-12h-9l1-8z"/></svg>`,
	"settings":   `<svg viewBox="0 0 24 24" width="40" height="40" fill="none" stroke="currentColor" stroke-width="2"><circle cx="12" cy="12" r="3"/><path d="M19.4 15a1.7 1.7 0 0 0 .3 1.8l.1.1a2 2 0 1 1-2.8 2.8l-.1-.1a1.7 1.7 0 0 0-1.8-.3 1.7 1.7 0 0 0-1 1.5V21a2 2 0 1 1-4 0v-.1a1.7 1.7 0 0 0-1.1-1.5 1.7 1.7 0 0 0-1.8.3l-.1.1a2 2 0 1 1-2.8-2.8l.1-.1a1.7 1.7 0 0 0 .3-1.8 1.7 1.7 0 0 0-1.5-1H3a2 2 0 1 1 0-4h.1a1.7 1.7 0 0 0 1.5-1.1 1.7 1.7 0 0 0-.3-1.8l-.1-.1a2 2 0 1 1 2.8-2.8l.1.1a1.7 1.7 0 0 0 1.8.3H9a1.7 1.7 0 0 0 1-1.5V3a2 2 0 1 1 4 0v.1a1.7 1.7 0 0 0 1 1.5 1.7 1.7 0 0 0 1.8-.3l.1-.1a2 2 0 1 1 2.8 2.8l-.1.1a1.7 1.7 0 0 0-.3 1.8V9a1.7 1.7 0 0 0 1.5 1H21a2 2 0 1 1 0 4h-.1a1.7 1.7 0 0 0-1.5 1z"/></svg>`,
	"headphones": `<svg viewBox="0 0 24 24" width="40" height="40" fill="none" stroke="currentColor" stroke-width="2"><path d="M3 18v-6a9 9 0 0 1 18 0v6"/><path d="M21 19a2 2 0 0 1-2 2h-1a2 2 0 0 1-2-2v-3a2 2 0 0 1 2-2h3zM3 19a2 2 0 0 0 2 2h1a2 2 0 0 0 2-2v-3a2 2 0 0 0-2-2H3z"/></svg>`,
	"book":       `<svg viewBox="0 0 24 24" width="40" height="40" fill="none" stroke="currentColor" stroke-width="2"><path d="M4 19.5A2.5 2.5 0 0 1 6.5 17H20"/><path d="M6.5 2H20v20H6.5A2.5 2.5 0 0 1 4 19.5v-15A2.5 2.5 0 0 1 6.5 2z"/></svg>`,
}

// serviceIcon recibe la clave ya resuelta por entity.Service.IconKey.
func serviceIcon(key string) template.HTML {
	if svg, ok := serviceIcons[key]; ok {
		return svg
	}
	return serviceIcons["settings"]
}
