package usecase

import (
	"context"
	"fmt"

	"github.com/jhoicas/everest-site/internal/domain/ordering"
	"github.com/jhoicas/everest-site/internal/domain/repository"
)

// selectAll lee y decodifica todas las filas de la query.
func selectAll[T any](ctx context.Context, store repository.Store, table string, q repository.Query) ([]T, error) {
	rows, err := store.Select(ctx, table, q)
	if err != nil {
		return nil, err
	}
	out, err := repository.DecodeAll[T](rows)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", table, err)
	}
	return out, nil
}

// selectOne lee la primera fila; (nil, nil) si no hay.
func selectOne[T any](ctx context.Context, store repository.Store, table string, q repository.Query) (*T, error) {
	row, err := store.SelectOne(ctx, table, q)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, nil
	}
	v, err := repository.Decode[T](row)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", table, err)
	}
	return &v, nil
}

// nextSortOrder sort_order para un elemento nuevo: al final de la lista.
func nextSortOrder(ctx context.Context, store repository.Store, table string) (int, error) {
	n, err := store.Count(ctx, table, repository.Query{})
	if err != nil {
		return 0, err
	}
	return (n + 1) * ordering.Step, nil
}

var bySortOrder = repository.Query{}.Order("sort_order")
