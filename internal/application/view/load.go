// Package view modela la carga de datos de cada sección de una página:
// idle -> loading -> loaded | error. Cada carga queda atada al contexto de la
// petición, así un cliente que se va cancela las lecturas pendientes.
package view

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"
)

// State estado de carga de una sección.
type State string

const (
	StateIdle    State = "idle"
	StateLoading State = "loading"
	StateLoaded  State = "loaded"
	StateError   State = "error"
)

// Section resultado de cargar una sección.
type Section[T any] struct {
	State State
	Data  T
	Err   error
}

// Loaded true si la sección tiene datos.
func (s Section[T]) Loaded() bool { return s.State == StateLoaded }

// Failed true si la carga falló.
func (s Section[T]) Failed() bool { return s.State == StateError }

// Load ejecuta fn y devuelve la sección en su estado final. Si el contexto ya está
// cancelado no llama a fn.
func Load[T any](ctx context.Context, fn func(ctx context.Context) (T, error)) Section[T] {
	if err := ctx.Err(); err != nil {
		return Section[T]{State: StateError, Err: err}
	}
	data, err := fn(ctx)
	if err != nil {
		return Section[T]{State: StateError, Err: err}
	}
	if err := ctx.Err(); err != nil {
		// la respuesta llegó tarde: no se aplica
		return Section[T]{State: StateError, Err: err}
	}
	return Section[T]{State: StateLoaded, Data: data}
}

// Group carga varias secciones en paralelo. Un fallo en una sección no cancela las
// demás; cada una queda con su propio estado.
type Group struct {
	ctx context.Context
	g   errgroup.Group
}

// NewGroup crea un grupo ligado al contexto de la petición.
func NewGroup(ctx context.Context) *Group {
	return &Group{ctx: ctx}
}

// Go agrega una sección al grupo. dst recibe el resultado cuando termina.
func Go[T any](g *Group, dst *Section[T], fn func(ctx context.Context) (T, error)) {
	dst.State = StateLoading
	g.g.Go(func() error {
		*dst = Load(g.ctx, fn)
		return nil
	})
}

// Wait espera a todas las secciones. Devuelve el error del contexto si la petición
// se canceló mientras se cargaba.
func (g *Group) Wait() error {
	_ = g.g.Wait()
	if err := g.ctx.Err(); err != nil {
		return err
	}
	return nil
}

// IsCancelled true si err viene de una petición cancelada o vencida.
func IsCancelled(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
