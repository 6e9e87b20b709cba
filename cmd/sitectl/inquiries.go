package main

import (
	"fmt"
	"io"
	"os"

	"github.com/jhoicas/everest-site/internal/application/ports"
	"github.com/jhoicas/everest-site/internal/application/usecase"
	"github.com/spf13/cobra"
)

var exportOut string

var inquiriesCmd = &cobra.Command{
	Use:   "inquiries",
	Short: "Consultas recibidas por el formulario de contacto",
}

var inquiriesExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Exporta todas las consultas a CSV",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext(cmd)
		defer cancel()
		store, closeStore, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer closeStore()

		var w io.Writer = cmd.OutOrStdout()
		if exportOut != "" && exportOut != "-" {
			f, err := os.Create(exportOut)
			if err != nil {
				return fmt.Errorf("crear %s: %w", exportOut, err)
			}
			defer f.Close()
			w = f
		}
		uc := usecase.NewInquiryUseCase(store, ports.NopNotifier{}, "", log)
		n, err := uc.ExportCSV(ctx, w)
		if err != nil {
			return err
		}
		log.Info().Int("count", n).Str("out", exportOut).Msg("consultas exportadas")
		return nil
	},
}

func init() {
	inquiriesExportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "Archivo de salida (por defecto stdout)")
	inquiriesCmd.AddCommand(inquiriesExportCmd)
}
