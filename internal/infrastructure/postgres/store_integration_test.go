package postgres_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/jhoicas/everest-site/internal/application/usecase"
	"github.com/jhoicas/everest-site/internal/domain"
	"github.com/jhoicas/everest-site/internal/domain/repository"
	"github.com/jhoicas/everest-site/internal/infrastructure/postgres"
	"github.com/jhoicas/everest-site/pkg/config"
	"github.com/jhoicas/everest-site/pkg/logger"
)

// newTestStore levanta PostgreSQL en un contenedor, aplica las migraciones y devuelve
// el Store. Solo corre con INTEGRATION=1 (necesita Docker).
func newTestStore(t *testing.T) *postgres.Store {
	t.Helper()
	if os.Getenv("INTEGRATION") == "" || testing.Short() {
		t.Skip("INTEGRATION=1 para correr contra PostgreSQL")
	}
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("everest_test"),
		tcpostgres.WithUsername("postgres"),
		tcpostgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err, "no se pudo iniciar el contenedor")
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	m, err := postgres.NewMigrator(dsn, logger.Nop())
	require.NoError(t, err)
	require.NoError(t, m.Up())
	version, dirty, err := m.Version()
	require.NoError(t, err)
	assert.False(t, dirty)
	assert.Equal(t, uint(1), version)
	require.NoError(t, m.Close())

	pool, err := postgres.NewPool(ctx, config.DBConfig{DatabaseURL: dsn, MaxConns: 4})
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	return postgres.NewStore(pool)
}

func insertCategory(t *testing.T, s *postgres.Store, name, slug string, order int) string {
	t.Helper()
	row, err := s.Insert(context.Background(), repository.TableCategories, repository.Row{
		"name": name, "slug": slug, "sort_order": order,
	})
	require.NoError(t, err)
	id, ok := row["id"].(string)
	require.True(t, ok, "el id vuelve como string")
	return id
}

func TestStore_Integracion(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	pumps := insertCategory(t, s, "Pumps", "pumps", 0)
	valves := insertCategory(t, s, "Valves", "valves", 1)

	t.Run("slug duplicado", func(t *testing.T) {
		_, err := s.Insert(ctx, repository.TableCategories, repository.Row{"name": "Otra", "slug": "pumps"})
		assert.ErrorIs(t, err, domain.ErrDuplicate)
	})

	t.Run("columna fuera del esquema", func(t *testing.T) {
		_, err := s.Insert(ctx, repository.TableCategories, repository.Row{"name": "x", "slug": "x", "drop table": 1})
		assert.Error(t, err)
	})

	t.Run("count y select filtrados", func(t *testing.T) {
		_, err := s.Insert(ctx, repository.TableProducts, repository.Row{
			"name": "Gear Pump", "slug": "gear-pump", "category_id": pumps, "is_featured": true,
		})
		require.NoError(t, err)
		_, err = s.Insert(ctx, repository.TableProducts, repository.Row{
			"name": "Ball Valve", "slug": "ball-valve", "category_id": valves,
		})
		require.NoError(t, err)

		n, err := s.Count(ctx, repository.TableProducts, repository.Query{}.Where("is_featured", true))
		require.NoError(t, err)
		assert.Equal(t, 1, n)

		rows, err := s.Select(ctx, repository.TableProducts, repository.Query{}.Where("category_id", valves))
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, "ball-valve", rows[0]["slug"])
	})

	t.Run("categoría con productos no se borra", func(t *testing.T) {
		err := s.Delete(ctx, repository.TableCategories, pumps)
		assert.ErrorIs(t, err, domain.ErrConflict)
	})

	t.Run("update de fila inexistente", func(t *testing.T) {
		err := s.Update(ctx, repository.TableCategories, uuid.NewString(), repository.Row{"name": "x"})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("reorder", func(t *testing.T) {
		require.NoError(t, s.Reorder(ctx, repository.TableCategories, []repository.SortUpdate{
			{ID: pumps, SortOrder: 1},
			{ID: valves, SortOrder: 0},
		}))

		list, err := usecase.NewCategoryUseCase(s).List(ctx)
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, "Valves", list[0].Name)
		assert.Equal(t, "Pumps", list[1].Name)
	})

	t.Run("reorder con id desconocido revierte todo", func(t *testing.T) {
		err := s.Reorder(ctx, repository.TableCategories, []repository.SortUpdate{
			{ID: pumps, SortOrder: 0},
			{ID: uuid.NewString(), SortOrder: 1},
		})
		assert.ErrorIs(t, err, domain.ErrConflict)

		row, err := s.SelectOne(ctx, repository.TableCategories, repository.Query{}.Where("id", pumps))
		require.NoError(t, err)
		assert.Equal(t, 1, row["sort_order"])
	})
}
