package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jhoicas/everest-site/internal/domain"
)

// Códigos SQLSTATE que se traducen a errores de dominio.
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeInvalidText         = "22P02"
)

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	return pgCode(err) == codeUniqueViolation
}

// mapError traduce errores de PostgreSQL a errores de dominio y agrega contexto.
func mapError(op, table string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return err
	case errors.Is(err, pgx.ErrNoRows):
		return domain.ErrNotFound
	case isUniqueViolation(err):
		return fmt.Errorf("%s %s: %w", op, table, domain.ErrDuplicate)
	case pgCode(err) == codeForeignKeyViolation:
		return fmt.Errorf("%s %s: %w", op, table, domain.ErrConflict)
	case pgCode(err) == codeInvalidText:
		return fmt.Errorf("%s %s: %w", op, table, domain.ErrInvalidInput)
	default:
		return fmt.Errorf("%s %s: %w", op, table, err)
	}
}
