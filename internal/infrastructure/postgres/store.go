package postgres

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/everest-site/internal/domain"
	"github.com/jhoicas/everest-site/internal/domain/repository"
)

var _ repository.Store = (*Store)(nil)

// Store implementación de repository.Store sobre PostgreSQL. Las tablas y columnas
// pasan por la lista blanca de schema.go antes de armar el SQL.
type Store struct {
	q  Querier
	tx *TxRunner
}

// NewStore construye el adaptador sobre el pool.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{q: pool, tx: NewTxRunner(pool)}
}

// Select ejecuta la query y devuelve las filas.
func (s *Store) Select(ctx context.Context, table string, q repository.Query) ([]repository.Row, error) {
	sql, args, err := buildSelect(table, q)
	if err != nil {
		return nil, err
	}
	rows, err := s.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, mapError("select", table, err)
	}
	maps, err := pgx.CollectRows(rows, pgx.RowToMap)
	if err != nil {
		return nil, mapError("select", table, err)
	}
	out := make([]repository.Row, 0, len(maps))
	for _, m := range maps {
		out = append(out, normalizeRow(m))
	}
	return out, nil
}

// SelectOne devuelve la primera fila o (nil, nil).
func (s *Store) SelectOne(ctx context.Context, table string, q repository.Query) (repository.Row, error) {
	rows, err := s.Select(ctx, table, q.Take(1))
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

// Insert crea la fila y la devuelve tal como quedó guardada.
func (s *Store) Insert(ctx context.Context, table string, values repository.Row) (repository.Row, error) {
	if err := checkTable(table); err != nil {
		return nil, err
	}
	cols, args, err := sortedValues(table, values)
	if err != nil {
		return nil, err
	}
	if len(cols) == 0 {
		return nil, fmt.Errorf("insert %s sin columnas: %w", table, domain.ErrInvalidInput)
	}
	placeholders := make([]string, len(cols))
	for i := range cols {
		placeholders[i] = "$" + strconv.Itoa(i+1)
	}
	sql := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING *",
		ident(table), identList(cols), strings.Join(placeholders, ", "))

	rows, err := s.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, mapError("insert", table, err)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToMap)
	if err != nil {
		return nil, mapError("insert", table, err)
	}
	return normalizeRow(m), nil
}

// Update modifica la fila id. domain.ErrNotFound si no existe.
func (s *Store) Update(ctx context.Context, table, id string, values repository.Row) error {
	if err := checkTable(table); err != nil {
		return err
	}
	cols, args, err := sortedValues(table, values)
	if err != nil {
		return err
	}
	if len(cols) == 0 {
		return nil
	}
	sets := make([]string, len(cols))
	for i, c := range cols {
		sets[i] = ident(c) + " = $" + strconv.Itoa(i+1)
	}
	args = append(args, id)
	sql := fmt.Sprintf("UPDATE %s SET %s WHERE id = $%d", ident(table), strings.Join(sets, ", "), len(args))

	tag, err := s.q.Exec(ctx, sql, args...)
	if err != nil {
		return mapError("update", table, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina la fila id. Borrar algo que no existe no es error.
func (s *Store) Delete(ctx context.Context, table, id string) error {
	if err := checkTable(table); err != nil {
		return err
	}
	sql := fmt.Sprintf("DELETE FROM %s WHERE id = $1", ident(table))
	if _, err := s.q.Exec(ctx, sql, id); err != nil {
		return mapError("delete", table, err)
	}
	return nil
}

// Count cuenta las filas que cumplen los filtros (orden y límite se ignoran).
func (s *Store) Count(ctx context.Context, table string, q repository.Query) (int, error) {
	if err := checkTable(table); err != nil {
		return 0, err
	}
	where, args, err := buildWhere(table, q.Filters)
	if err != nil {
		return 0, err
	}
	var n int64
	sql := "SELECT count(*) FROM " + ident(table) + where
	if err := s.q.QueryRow(ctx, sql, args...).Scan(&n); err != nil {
		return 0, mapError("count", table, err)
	}
	return int(n), nil
}

// Reorder guarda todos los sort_order con una sola sentencia dentro de una
// transacción. Si alguna fila ya no existe se revierte todo con domain.ErrConflict.
func (s *Store) Reorder(ctx context.Context, table string, updates []repository.SortUpdate) error {
	if err := checkColumn(table, "sort_order"); err != nil {
		return err
	}
	if len(updates) == 0 {
		return nil
	}
	ids := make([]string, len(updates))
	orders := make([]int32, len(updates))
	for i, u := range updates {
		ids[i] = u.ID
		orders[i] = int32(u.SortOrder)
	}
	sql := fmt.Sprintf(`UPDATE %s AS t SET sort_order = v.sort_order
		FROM unnest($1::text[], $2::int4[]) AS v(id, sort_order)
		WHERE t.id::text = v.id`, ident(table))

	return s.tx.Run(ctx, func(q Querier) error {
		tag, err := q.Exec(ctx, sql, ids, orders)
		if err != nil {
			return mapError("reorder", table, err)
		}
		if int(tag.RowsAffected()) != len(updates) {
			return fmt.Errorf("reorder %s: %d de %d filas: %w", table, tag.RowsAffected(), len(updates), domain.ErrConflict)
		}
		return nil
	})
}

func buildSelect(table string, q repository.Query) (string, []any, error) {
	if err := checkTable(table); err != nil {
		return "", nil, err
	}
	where, args, err := buildWhere(table, q.Filters)
	if err != nil {
		return "", nil, err
	}
	var b strings.Builder
	b.WriteString("SELECT * FROM ")
	b.WriteString(ident(table))
	b.WriteString(where)
	if q.OrderBy != "" {
		if err := checkColumn(table, q.OrderBy); err != nil {
			return "", nil, err
		}
		b.WriteString(" ORDER BY ")
		b.WriteString(ident(q.OrderBy))
		if q.Desc {
			b.WriteString(" DESC")
		}
	}
	if q.Limit > 0 {
		b.WriteString(" LIMIT ")
		b.WriteString(strconv.Itoa(q.Limit))
	}
	return b.String(), args, nil
}

func buildWhere(table string, filters []repository.Filter) (string, []any, error) {
	if len(filters) == 0 {
		return "", nil, nil
	}
	conds := make([]string, 0, len(filters))
	args := make([]any, 0, len(filters))
	for _, f := range filters {
		if err := checkColumn(table, f.Column); err != nil {
			return "", nil, err
		}
		args = append(args, f.Value)
		ph := "$" + strconv.Itoa(len(args))
		switch f.Op {
		case repository.OpEq, "":
			conds = append(conds, ident(f.Column)+" = "+ph)
		case repository.OpNeq:
			conds = append(conds, ident(f.Column)+" IS DISTINCT FROM "+ph)
		default:
			return "", nil, fmt.Errorf("operador %q: %w", f.Op, domain.ErrInvalidInput)
		}
	}
	return " WHERE " + strings.Join(conds, " AND "), args, nil
}

// sortedValues columnas en orden estable (SQL reproducible) con sus valores.
func sortedValues(table string, values repository.Row) ([]string, []any, error) {
	cols := make([]string, 0, len(values))
	for c := range values {
		if err := checkColumn(table, c); err != nil {
			return nil, nil, err
		}
		cols = append(cols, c)
	}
	sort.Strings(cols)
	args := make([]any, len(cols))
	for i, c := range cols {
		args[i] = values[c]
	}
	return cols, args, nil
}

func ident(name string) string {
	return pgx.Identifier{name}.Sanitize()
}

func identList(names []string) string {
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = ident(n)
	}
	return strings.Join(out, ", ")
}

// normalizeRow deja los valores en tipos simples: uuid como string, enteros como int.
func normalizeRow(m map[string]any) repository.Row {
	row := make(repository.Row, len(m))
	for k, v := range m {
		switch t := v.(type) {
		case [16]byte:
			row[k] = uuid.UUID(t).String()
		case int16:
			row[k] = int(t)
		case int32:
			row[k] = int(t)
		case int64:
			row[k] = int(t)
		default:
			row[k] = v
		}
	}
	return row
}
