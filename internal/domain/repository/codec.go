package repository

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// Decode vuelca una fila sobre una entidad usando las etiquetas `db`.
// Columnas sin campo se ignoran; NULL deja el valor cero.
func Decode[T any](row Row) (T, error) {
	var out T
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "db",
		Result:           &out,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return out, fmt.Errorf("decoder: %w", err)
	}
	if err := dec.Decode(map[string]any(row)); err != nil {
		return out, fmt.Errorf("decode row: %w", err)
	}
	return out, nil
}

// DecodeAll aplica Decode a cada fila.
func DecodeAll[T any](rows []Row) ([]T, error) {
	out := make([]T, 0, len(rows))
	for _, r := range rows {
		v, err := Decode[T](r)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
