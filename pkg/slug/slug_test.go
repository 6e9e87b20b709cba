package slug_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/everest-site/pkg/slug"
)

func TestFromName(t *testing.T) {
	cases := map[string]string{
		"Air Compressors":         "air-compressors",
		"Hydraulic   Pumps":       "hydraulic-pumps",
		"Valves\tand\nFittings":   "valves-and-fittings",
		"Pneumatic (Heavy Duty)!": "pneumatic-(heavy-duty)!",
		"ÁGUA Bombas":             "água-bombas",
		"":                        "",
	}
	for in, want := range cases {
		assert.Equal(t, want, slug.FromName(in), "FromName(%q)", in)
	}
}
