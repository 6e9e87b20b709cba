package memstore_test

import (
	"context"
	"errors"
	"go/parser"
	"go/token"
	"io/fs"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/everest-site/internal/domain"
	"github.com/jhoicas/everest-site/internal/domain/repository"
	"github.com/jhoicas/everest-site/internal/infrastructure/memstore"
)

func TestMemstore_NingunBinarioLoImporta(t *testing.T) {
	root := filepath.Join("..", "..", "..", "cmd")
	fset := token.NewFileSet()
	checked := 0
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() || !strings.HasSuffix(path, ".go") || strings.HasSuffix(path, "_test.go") {
			return err
		}
		f, err := parser.ParseFile(fset, path, nil, parser.ImportsOnly)
		if err != nil {
			return err
		}
		checked++
		for _, imp := range f.Imports {
			p, _ := strconv.Unquote(imp.Path.Value)
			assert.False(t, strings.HasSuffix(p, "/infrastructure/memstore"), "%s importa el store de pruebas", path)
		}
		return nil
	})
	require.NoError(t, err)
	assert.Positive(t, checked, "no se encontraron fuentes en cmd/")
}

func TestMemstore_SlugDuplicado(t *testing.T) {
	s := memstore.New()
	ctx := context.Background()

	_, err := s.Insert(ctx, repository.TableCategories, repository.Row{"name": "Pumps", "slug": "pumps"})
	require.NoError(t, err)
	_, err = s.Insert(ctx, repository.TableCategories, repository.Row{"name": "Otra", "slug": "pumps"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
	assert.Len(t, s.Rows(repository.TableCategories), 1)
}

func TestMemstore_ReorderConIDDesconocidoNoTocaNada(t *testing.T) {
	s := memstore.New()
	ctx := context.Background()

	row, err := s.Insert(ctx, repository.TableCategories, repository.Row{"name": "Pumps", "slug": "pumps", "sort_order": 0})
	require.NoError(t, err)
	id := row["id"].(string)

	err = s.Reorder(ctx, repository.TableCategories, []repository.SortUpdate{
		{ID: id, SortOrder: 5},
		{ID: "no-existe", SortOrder: 6},
	})
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Equal(t, 0, s.Rows(repository.TableCategories)[0]["sort_order"])
}

func TestMemstore_FailOn(t *testing.T) {
	s := memstore.New()
	boom := errors.New("sin conexión")

	s.FailOn("count", repository.TableProducts, boom)
	_, err := s.Count(context.Background(), repository.TableProducts, repository.Query{})
	assert.ErrorIs(t, err, boom)

	s.FailOn("count", repository.TableProducts, nil)
	n, err := s.Count(context.Background(), repository.TableProducts, repository.Query{})
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestMemstore_ContextoCancelado(t *testing.T) {
	s := memstore.New()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Select(ctx, repository.TableProducts, repository.Query{})
	assert.ErrorIs(t, err, context.Canceled)
}
