// Package memstore implementa repository.Store en memoria. Es un doble de prueba:
// lo usan las pruebas de casos de uso y de handlers para no depender de PostgreSQL,
// y ningún binario de cmd/ lo importa (store_test.go lo verifica).
package memstore

import (
	"context"
	"fmt"
	"reflect"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/everest-site/internal/domain"
	"github.com/jhoicas/everest-site/internal/domain/repository"
	"github.com/spf13/cast"
)

var _ repository.Store = (*Store)(nil)

// Store tablas en memoria; el orden de inserción se conserva cuando la query no ordena.
type Store struct {
	mu     sync.Mutex
	tables map[string][]repository.Row
	fail   map[string]error
	now    func() time.Time
}

// New crea un store vacío.
func New() *Store {
	return &Store{
		tables: map[string][]repository.Row{},
		fail:   map[string]error{},
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// FailOn hace que la operación op ("select", "insert", "update", "delete", "count",
// "reorder") sobre table devuelva err. err nil quita la falla.
func (s *Store) FailOn(op, table string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := op + ":" + table
	if err == nil {
		delete(s.fail, key)
		return
	}
	s.fail[key] = err
}

// Rows copia de las filas de una tabla, en orden de inserción.
func (s *Store) Rows(table string) []repository.Row {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]repository.Row, 0, len(s.tables[table]))
	for _, r := range s.tables[table] {
		out = append(out, copyRow(r))
	}
	return out
}

func (s *Store) failure(op, table string) error {
	if err, ok := s.fail[op+":"+table]; ok {
		return fmt.Errorf("%s %s: %w", op, table, err)
	}
	return nil
}

// Select filtra, ordena y limita.
func (s *Store) Select(ctx context.Context, table string, q repository.Query) ([]repository.Row, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failure("select", table); err != nil {
		return nil, err
	}
	out := make([]repository.Row, 0)
	for _, r := range s.tables[table] {
		if matches(r, q.Filters) {
			out = append(out, copyRow(r))
		}
	}
	if q.OrderBy != "" {
		sort.SliceStable(out, func(i, j int) bool {
			c := compare(out[i][q.OrderBy], out[j][q.OrderBy])
			if q.Desc {
				return c > 0
			}
			return c < 0
		})
	}
	if q.Limit > 0 && len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out, nil
}

// SelectOne primera fila o (nil, nil).
func (s *Store) SelectOne(ctx context.Context, table string, q repository.Query) (repository.Row, error) {
	rows, err := s.Select(ctx, table, q.Take(1))
	if err != nil || len(rows) == 0 {
		return nil, err
	}
	return rows[0], nil
}

// Insert agrega la fila. Sin id se genera uno; sin created_at se usa la hora actual.
// Un slug o un id repetidos en la misma tabla devuelven domain.ErrDuplicate.
func (s *Store) Insert(ctx context.Context, table string, values repository.Row) (repository.Row, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failure("insert", table); err != nil {
		return nil, err
	}
	row := copyRow(values)
	if cast.ToString(row["id"]) == "" {
		row["id"] = uuid.New().String()
	}
	if _, ok := row["created_at"]; !ok {
		row["created_at"] = s.now()
	}
	for _, existing := range s.tables[table] {
		if existing["id"] == row["id"] {
			return nil, fmt.Errorf("insert %s: %w", table, domain.ErrDuplicate)
		}
		if sl, ok := row["slug"]; ok && sl != "" && existing["slug"] == sl {
			return nil, fmt.Errorf("insert %s: %w", table, domain.ErrDuplicate)
		}
	}
	s.tables[table] = append(s.tables[table], row)
	return copyRow(row), nil
}

// Update reemplaza las columnas indicadas. domain.ErrNotFound si no existe.
func (s *Store) Update(ctx context.Context, table, id string, values repository.Row) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failure("update", table); err != nil {
		return err
	}
	for _, r := range s.tables[table] {
		if cast.ToString(r["id"]) == id {
			for k, v := range values {
				r[k] = v
			}
			return nil
		}
	}
	return domain.ErrNotFound
}

// Delete elimina la fila id si existe.
func (s *Store) Delete(ctx context.Context, table, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failure("delete", table); err != nil {
		return err
	}
	rows := s.tables[table]
	for i, r := range rows {
		if cast.ToString(r["id"]) == id {
			s.tables[table] = append(rows[:i:i], rows[i+1:]...)
			return nil
		}
	}
	return nil
}

// Count filas que cumplen los filtros.
func (s *Store) Count(ctx context.Context, table string, q repository.Query) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failure("count", table); err != nil {
		return 0, err
	}
	n := 0
	for _, r := range s.tables[table] {
		if matches(r, q.Filters) {
			n++
		}
	}
	return n, nil
}

// Reorder aplica todos los cambios o ninguno: un id inexistente devuelve
// domain.ErrConflict sin tocar la tabla.
func (s *Store) Reorder(ctx context.Context, table string, updates []repository.SortUpdate) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failure("reorder", table); err != nil {
		return err
	}
	index := map[string]repository.Row{}
	for _, r := range s.tables[table] {
		index[cast.ToString(r["id"])] = r
	}
	for _, u := range updates {
		if _, ok := index[u.ID]; !ok {
			return fmt.Errorf("reorder %s: %s: %w", table, u.ID, domain.ErrConflict)
		}
	}
	for _, u := range updates {
		index[u.ID]["sort_order"] = u.SortOrder
	}
	return nil
}

func matches(r repository.Row, filters []repository.Filter) bool {
	for _, f := range filters {
		eq := equal(r[f.Column], f.Value)
		if f.Op == repository.OpNeq {
			eq = !eq
		}
		if !eq {
			return false
		}
	}
	return true
}

func equal(a, b any) bool {
	if reflect.DeepEqual(a, b) {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	return cast.ToString(a) == cast.ToString(b)
}

func compare(a, b any) int {
	switch x := a.(type) {
	case time.Time:
		y := cast.ToTime(b)
		switch {
		case x.Before(y):
			return -1
		case x.After(y):
			return 1
		}
		return 0
	case string:
		y := cast.ToString(b)
		switch {
		case x < y:
			return -1
		case x > y:
			return 1
		}
		return 0
	case bool:
		y := cast.ToBool(b)
		switch {
		case x == y:
			return 0
		case !x:
			return -1
		}
		return 1
	case nil:
		if b == nil {
			return 0
		}
		return -1
	default:
		fx, fy := cast.ToFloat64(a), cast.ToFloat64(b)
		switch {
		case fx < fy:
			return -1
		case fx > fy:
			return 1
		}
		return 0
	}
}

func copyRow(r repository.Row) repository.Row {
	out := make(repository.Row, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}
