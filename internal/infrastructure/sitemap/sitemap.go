// Package sitemap arma sitemap.xml (protocolo sitemaps.org 0.9).
package sitemap

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/beevik/etree"
	"github.com/jhoicas/everest-site/internal/domain/entity"
)

const xmlns = "http://www.sitemaps.org/schemas/sitemap/0.9"

// Entry una URL del sitemap. Path relativo a la URL base.
type Entry struct {
	Path       string
	ChangeFreq string
	Priority   float64
}

// Entries URLs públicas: páginas visibles, catálogo por categoría y detalle de cada producto.
func Entries(pages []entity.Page, categories []entity.Category, products []entity.Product) []Entry {
	seen := map[string]bool{}
	var out []Entry
	add := func(e Entry) {
		if e.Path == "" || seen[e.Path] {
			return
		}
		seen[e.Path] = true
		out = append(out, e)
	}
	for _, p := range pages {
		if !p.IsEnabled {
			continue
		}
		prio := 0.8
		if p.Path == "/" {
			prio = 1.0
		}
		add(Entry{Path: p.Path, ChangeFreq: "weekly", Priority: prio})
	}
	for _, c := range categories {
		add(Entry{Path: "/products?category=" + url.QueryEscape(c.Slug), ChangeFreq: "weekly", Priority: 0.7})
	}
	for _, p := range products {
		if p.Slug == "" {
			continue
		}
		add(Entry{Path: "/products/" + url.PathEscape(p.Slug), ChangeFreq: "monthly", Priority: 0.6})
	}
	return out
}

// Build serializa las entradas como documento XML.
func Build(baseURL string, entries []Entry) ([]byte, error) {
	base := strings.TrimRight(baseURL, "/")
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	urlset := doc.CreateElement("urlset")
	urlset.CreateAttr("xmlns", xmlns)
	for _, e := range entries {
		u := urlset.CreateElement("url")
		u.CreateElement("loc").SetText(base + e.Path)
		if e.ChangeFreq != "" {
			u.CreateElement("changefreq").SetText(e.ChangeFreq)
		}
		if e.Priority > 0 {
			u.CreateElement("priority").SetText(fmt.Sprintf("%.1f", e.Priority))
		}
	}
	doc.Indent(2)
	out, err := doc.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("sitemap: serializar: %w", err)
	}
	return out, nil
}
