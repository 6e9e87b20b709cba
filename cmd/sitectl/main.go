// sitectl tareas de operación del sitio: migraciones, datos iniciales, administradores,
// importación del catálogo, exportación de consultas y compartir fichas desde la terminal.
//
// Uso: go run ./cmd/sitectl <comando> [flags]
// Lee la misma configuración (.env / variables de entorno) que cmd/api.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jhoicas/everest-site/internal/domain/repository"
	"github.com/jhoicas/everest-site/internal/infrastructure/postgres"
	"github.com/jhoicas/everest-site/pkg/config"
	"github.com/jhoicas/everest-site/pkg/logger"
	"github.com/spf13/cobra"
)

var (
	verbose bool
	timeout time.Duration

	cfg *config.Config
	log *logger.Logger
)

var rootCmd = &cobra.Command{
	Use:           "sitectl",
	Short:         "Tareas de operación de Everest Site",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("cargar configuración: %w", err)
		}
		level := cfg.Log.Level
		if verbose {
			level = "debug"
		}
		log = logger.New(logger.Config{Env: cfg.App.Env, Level: level, Output: os.Stderr})
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log en nivel debug")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 2*time.Minute, "Tiempo máximo de la operación")

	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(adminCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(inquiriesCmd)
	rootCmd.AddCommand(shareCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// commandContext contexto con el --timeout global.
func commandContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), timeout)
}

// openStore abre el pool y devuelve el Store; close libera el pool.
func openStore(ctx context.Context) (repository.Store, func(), error) {
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
	}
	return postgres.NewStore(pool), pool.Close, nil
}
