package main

import (
	"fmt"

	"github.com/jhoicas/everest-site/internal/application/usecase"
	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Crea las páginas del menú y la fila de configuración si faltan",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext(cmd)
		defer cancel()
		store, closeStore, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer closeStore()

		created, err := usecase.NewPageUseCase(store).EnsureDefaults(ctx)
		if err != nil {
			return fmt.Errorf("páginas por defecto: %w", err)
		}
		settings, err := usecase.NewSettingsUseCase(store).GetOrCreate(ctx)
		if err != nil {
			return fmt.Errorf("configuración del sitio: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "páginas creadas: %d\nconfiguración: %s (%s)\n", created, settings.CompanyName, settings.ID)
		return nil
	},
}
