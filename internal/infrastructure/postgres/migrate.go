package postgres

import (
	"embed"
	"errors"
	"fmt"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jhoicas/everest-site/pkg/logger"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Migrator aplica las migraciones embebidas con golang-migrate.
type Migrator struct {
	m   *migrate.Migrate
	log *logger.Logger
}

// NewMigrator prepara las migraciones contra dsn (postgres:// o postgresql://).
func NewMigrator(dsn string, log *logger.Logger) (*Migrator, error) {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return nil, fmt.Errorf("migraciones embebidas: %w", err)
	}
	m, err := migrate.NewWithSourceInstance("iofs", src, pgx5URL(dsn))
	if err != nil {
		return nil, fmt.Errorf("crear migrate: %w", err)
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Migrator{m: m, log: log}, nil
}

// Up aplica las migraciones pendientes.
func (m *Migrator) Up() error {
	err := m.m.Up()
	if errors.Is(err, migrate.ErrNoChange) {
		m.log.Info().Msg("migraciones: nada que aplicar")
		return nil
	}
	if err != nil {
		return fmt.Errorf("migrate up: %w", err)
	}
	version, dirty, _ := m.m.Version()
	m.log.Info().Uint("version", version).Bool("dirty", dirty).Msg("migraciones aplicadas")
	return nil
}

// Down revierte n migraciones (n <= 0 revierte todas).
func (m *Migrator) Down(n int) error {
	var err error
	if n <= 0 {
		err = m.m.Down()
	} else {
		err = m.m.Steps(-n)
	}
	if errors.Is(err, migrate.ErrNoChange) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("migrate down: %w", err)
	}
	m.log.Info().Int("steps", n).Msg("migraciones revertidas")
	return nil
}

// Version versión actual del esquema.
func (m *Migrator) Version() (uint, bool, error) {
	v, dirty, err := m.m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	return v, dirty, err
}

// Close libera la fuente y la conexión.
func (m *Migrator) Close() error {
	srcErr, dbErr := m.m.Close()
	return errors.Join(srcErr, dbErr)
}

// pgx5URL cambia el esquema de la URL al que registra el driver pgx/v5 de migrate.
func pgx5URL(dsn string) string {
	for _, prefix := range []string{"postgresql://", "postgres://"} {
		if strings.HasPrefix(dsn, prefix) {
			return "pgx5://" + strings.TrimPrefix(dsn, prefix)
		}
	}
	return dsn
}
