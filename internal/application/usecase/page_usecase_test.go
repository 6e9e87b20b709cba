package usecase_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/everest-site/internal/domain"
	"github.com/jhoicas/everest-site/internal/domain/ordering"
	"github.com/jhoicas/everest-site/internal/domain/repository"
)

func TestEnsureDefaults_CreaMenuUnaSolaVez(t *testing.T) {
	f := newFixture()

	n, err := f.pages.EnsureDefaults(ctx)
	require.NoError(t, err)
	assert.Equal(t, 6, n)

	n, err = f.pages.EnsureDefaults(ctx)
	require.NoError(t, err)
	assert.Zero(t, n, "con páginas existentes no crea nada")

	pages, err := f.pages.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Home", "About", "Products", "Services", "Gallery", "Contact"}, pageLabels(pages))
	for i, p := range pages {
		assert.Equal(t, (i+1)*ordering.Step, p.SortOrder)
		assert.True(t, p.IsEnabled)
	}
}

func TestPageMove_IntercambiaYPersiste(t *testing.T) {
	f := newFixture()
	_, err := f.pages.EnsureDefaults(ctx)
	require.NoError(t, err)
	pages, err := f.pages.List(ctx)
	require.NoError(t, err)

	moved, err := f.pages.Move(ctx, pages[2].ID, ordering.Up)
	require.NoError(t, err)
	assert.Equal(t, []string{"Home", "Products", "About", "Services", "Gallery", "Contact"}, pageLabels(moved))

	stored, err := f.pages.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, pageLabels(moved), pageLabels(stored), "el nuevo orden queda guardado")
}

func TestPageMove_BordeNoEscribe(t *testing.T) {
	f := newFixture()
	_, err := f.pages.EnsureDefaults(ctx)
	require.NoError(t, err)
	pages, err := f.pages.List(ctx)
	require.NoError(t, err)

	// si intentara escribir, Reorder fallaría
	f.store.FailOn("reorder", repository.TablePages, errors.New("no debería llamarse"))

	out, err := f.pages.Move(ctx, pages[0].ID, ordering.Up)
	require.NoError(t, err)
	assert.Equal(t, pageLabels(pages), pageLabels(out))

	out, err = f.pages.Move(ctx, pages[len(pages)-1].ID, ordering.Down)
	require.NoError(t, err)
	assert.Equal(t, pageLabels(pages), pageLabels(out))
}

func TestPageMove_FalloDeReorderNoDejaNadaAMedias(t *testing.T) {
	f := newFixture()
	_, err := f.pages.EnsureDefaults(ctx)
	require.NoError(t, err)
	before, err := f.pages.List(ctx)
	require.NoError(t, err)

	f.store.FailOn("reorder", repository.TablePages, errors.New("connection reset"))

	_, err = f.pages.Move(ctx, before[1].ID, ordering.Down)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrReorderFailed)

	after, err := f.pages.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, pageLabels(before), pageLabels(after))
}

func TestPageMove_IDDesconocido(t *testing.T) {
	f := newFixture()
	_, err := f.pages.EnsureDefaults(ctx)
	require.NoError(t, err)

	_, err = f.pages.Move(ctx, "no-existe", ordering.Up)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPageToggle_OcultaDelMenuPublico(t *testing.T) {
	f := newFixture()
	_, err := f.pages.EnsureDefaults(ctx)
	require.NoError(t, err)
	pages, err := f.pages.List(ctx)
	require.NoError(t, err)

	enabled, err := f.pages.Toggle(ctx, pages[4].ID) // Gallery
	require.NoError(t, err)
	assert.False(t, enabled)

	visible, err := f.pages.ListEnabled(ctx)
	require.NoError(t, err)
	assert.NotContains(t, pageLabels(visible), "Gallery")
	assert.Len(t, visible, 5)

	enabled, err = f.pages.Toggle(ctx, pages[4].ID)
	require.NoError(t, err)
	assert.True(t, enabled)

	_, err = f.pages.Toggle(ctx, "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
