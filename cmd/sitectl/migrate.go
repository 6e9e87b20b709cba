package main

import (
	"fmt"
	"strconv"

	"github.com/jhoicas/everest-site/internal/infrastructure/postgres"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Migraciones del esquema (golang-migrate)",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Aplica todas las migraciones pendientes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withMigrator(func(m *postgres.Migrator) error { return m.Up() })
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down [n]",
	Short: "Revierte las últimas n migraciones (por defecto 1)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		n := 1
		if len(args) == 1 {
			v, err := strconv.Atoi(args[0])
			if err != nil || v < 1 {
				return fmt.Errorf("n debe ser un entero positivo: %q", args[0])
			}
			n = v
		}
		return withMigrator(func(m *postgres.Migrator) error { return m.Down(n) })
	},
}

var migrateVersionCmd = &cobra.Command{
	Use:   "version",
	Short: "Muestra la versión actual del esquema",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withMigrator(func(m *postgres.Migrator) error {
			v, dirty, err := m.Version()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "version=%d dirty=%t\n", v, dirty)
			return nil
		})
	},
}

func init() {
	migrateCmd.AddCommand(migrateUpCmd, migrateDownCmd, migrateVersionCmd)
}

func withMigrator(fn func(m *postgres.Migrator) error) error {
	m, err := postgres.NewMigrator(cfg.DB.ConnectionString(), log)
	if err != nil {
		return err
	}
	defer m.Close()
	return fn(m)
}
